package testhelpers

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkb"

	"github.com/waterway-crossing/internal/domain"
)

// SampleWaterways returns a small fixture set around the origin: two
// crossing-friendly lines, one far-away line and one lake polygon.
func SampleWaterways(t *testing.T) []domain.Waterway {
	t.Helper()

	return []domain.Waterway{
		{
			ID:           "way/1",
			FeatureType:  "way",
			Name:         "Spree",
			WaterwayType: "river",
			Geometry:     mustWKB(t, orb.LineString{{1, 0}, {1, 2}}),
		},
		{
			ID:           "way/2",
			FeatureType:  "way",
			Name:         "Landwehrkanal",
			WaterwayType: "canal",
			Geometry:     mustWKB(t, orb.LineString{{0, 0.5}, {2, 0.5}}),
		},
		{
			ID:           "way/3",
			FeatureType:  "way",
			Name:         "Isar",
			WaterwayType: "river",
			Geometry:     mustWKB(t, orb.LineString{{11.5, 48.1}, {11.6, 48.2}}),
		},
		{
			ID:           "relation/4",
			FeatureType:  "relation",
			Name:         "Müggelsee",
			WaterwayType: "",
			Geometry:     mustWKB(t, orb.Polygon{{{3, 3}, {5, 3}, {5, 5}, {3, 5}, {3, 3}}}),
		},
	}
}

func mustWKB(t *testing.T, g orb.Geometry) []byte {
	t.Helper()

	data, err := wkb.Marshal(g)
	if err != nil {
		t.Fatalf("failed to marshal fixture geometry: %v", err)
	}
	return data
}
