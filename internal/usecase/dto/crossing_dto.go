package dto

import "github.com/waterway-crossing/internal/domain"

// TrackCrossings is the pipeline result before the handler attaches
// the request-level wall-clock duration.
type TrackCrossings struct {
	Waterways []domain.Crossing
	Timings   StageTimings
	CacheHit  bool
}

// StageTimings is the per-stage breakdown in milliseconds.
type StageTimings struct {
	ParseMs     float64 `json:"gpx_parsing"`
	QueryMs     float64 `json:"intersection_query"`
	AggregateMs float64 `json:"aggregation"`
}

// CrossingsResponse is the wire shape of a processed route.
type CrossingsResponse struct {
	Waterways             []domain.Crossing `json:"waterways"`
	ProcessingTimeSeconds float64           `json:"processing_time_seconds"`
	TimingsMs             StageTimings      `json:"timings_ms"`
	Cached                bool              `json:"cached,omitempty"`
}

// StatsResponse summarizes the current store contents.
type StatsResponse struct {
	WaterwayCount  int64              `json:"waterway_count"`
	ByWaterwayType []domain.TypeCount `json:"by_waterway_type"`
	ByFeatureType  []domain.TypeCount `json:"by_feature_type"`
}
