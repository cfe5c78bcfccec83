package domain

// Waterway is one named waterway segment as stored in the waterway
// table. Geometry is WKB as returned by the store; it is decoded on
// demand by the intersection predicate and never exposed over the API.
type Waterway struct {
	ID           string `json:"id" db:"osm_id"`
	FeatureType  string `json:"feature_type" db:"feature_type"`
	Name         string `json:"name" db:"name"`
	WaterwayType string `json:"waterway_type,omitempty" db:"waterway_type"`
	Geometry     []byte `json:"-" db:"geom"`
}

// Crossing is one reported match between a route and a waterway.
// Intersection is boolean per record, no derived geometry is carried.
type Crossing struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	WaterwayType string `json:"waterway_type,omitempty"`
}

// TypeCount is an aggregate row for the stats endpoint.
type TypeCount struct {
	Type  string `json:"type" db:"type"`
	Count int64  `json:"count" db:"count"`
}
