package geo

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanar_LineCrossing(t *testing.T) {
	p := NewPlanar()

	// Route heading east, waterway heading north, crossing at (1, 1).
	route := orb.LineString{{0, 1}, {2, 1}}
	river := orb.LineString{{1, 0}, {1, 2}}

	assert.True(t, p.Intersects(route, river))
}

func TestPlanar_BoundingBoxFalsePositive(t *testing.T) {
	p := NewPlanar()

	// The two L-shaped lines share a bounding box but never touch:
	// exactly the kind of candidate the broad phase lets through and
	// the exact predicate must reject.
	route := orb.LineString{{0, 0}, {0.4, 0}, {0.4, 0.4}}
	river := orb.LineString{{1, 1}, {0.6, 1}, {0.6, 0.6}}

	assert.True(t, route.Bound().Intersects(river.Bound()))
	assert.False(t, p.Intersects(route, river))
}

func TestPlanar_TouchingEndpointsCount(t *testing.T) {
	p := NewPlanar()

	route := orb.LineString{{0, 0}, {1, 1}}
	river := orb.LineString{{1, 1}, {2, 0}}

	assert.True(t, p.Intersects(route, river))
}

func TestPlanar_CollinearOverlap(t *testing.T) {
	p := NewPlanar()

	route := orb.LineString{{0, 0}, {2, 0}}
	river := orb.LineString{{1, 0}, {3, 0}}

	assert.True(t, p.Intersects(route, river))
}

func TestPlanar_MultiLineString(t *testing.T) {
	p := NewPlanar()

	route := orb.LineString{{0, 1}, {2, 1}}
	river := orb.MultiLineString{
		{{5, 5}, {6, 6}},
		{{1, 0}, {1, 2}},
	}

	assert.True(t, p.Intersects(route, river))
	assert.False(t, p.Intersects(route, orb.MultiLineString{{{5, 5}, {6, 6}}}))
}

func TestPlanar_PolygonEdgeCrossing(t *testing.T) {
	p := NewPlanar()

	lake := orb.Polygon{{{0, 0}, {4, 0}, {4, 4}, {0, 4}, {0, 0}}}

	// Route crosses the western shore.
	route := orb.LineString{{-1, 2}, {1, 2}}
	assert.True(t, p.Intersects(route, lake))
}

func TestPlanar_PolygonPassThrough(t *testing.T) {
	p := NewPlanar()

	lake := orb.Polygon{{{0, 0}, {4, 0}, {4, 4}, {0, 4}, {0, 0}}}

	// Route entirely inside the polygon touches no ring edge but still
	// counts: passing through a polygon waterway is an intersection.
	inside := orb.LineString{{1, 1}, {2, 2}, {3, 3}}
	assert.True(t, p.Intersects(inside, lake))

	outside := orb.LineString{{5, 5}, {6, 6}}
	assert.False(t, p.Intersects(outside, lake))
}

func TestPlanar_PolygonWithHole(t *testing.T) {
	p := NewPlanar()

	// Ring with an island; a route on the island is not in the water.
	lake := orb.Polygon{
		{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0}},
		{{4, 4}, {6, 4}, {6, 6}, {4, 6}, {4, 4}},
	}

	// A route strictly inside the island is not in the water and never
	// crosses a ring edge.
	onIsland := orb.LineString{{4.7, 4.9}, {5.3, 5.1}}
	assert.False(t, p.Intersects(onIsland, lake))

	inWater := orb.LineString{{1, 1}, {2, 1}}
	assert.True(t, p.Intersects(inWater, lake))
}

func TestPlanar_MultiPolygon(t *testing.T) {
	p := NewPlanar()

	lakes := orb.MultiPolygon{
		{{{0, 0}, {1, 0}, {1, 1}, {0, 1}, {0, 0}}},
		{{{5, 5}, {7, 5}, {7, 7}, {5, 7}, {5, 5}}},
	}

	assert.True(t, p.Intersects(orb.LineString{{6, 4}, {6, 8}}, lakes))
	assert.False(t, p.Intersects(orb.LineString{{3, 3}, {4, 4}}, lakes))
}

func TestPlanar_DegenerateRoute(t *testing.T) {
	p := NewPlanar()

	river := orb.LineString{{0, 0}, {1, 1}}

	assert.False(t, p.Intersects(orb.LineString{}, river))
	assert.False(t, p.Intersects(orb.LineString{{0, 0}}, river))
}

func TestDecodeWKB_RoundTrip(t *testing.T) {
	original := orb.LineString{{13.4, 52.5}, {13.5, 52.6}}

	data, err := wkb.Marshal(original)
	require.NoError(t, err)

	decoded, err := DecodeWKB(data)
	require.NoError(t, err)
	assert.Equal(t, original, decoded)
}

func TestDecodeWKB_Garbage(t *testing.T) {
	_, err := DecodeWKB([]byte{0xde, 0xad, 0xbe, 0xef})
	assert.Error(t, err)
}
