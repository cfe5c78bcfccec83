package domain

// HealthStatus is the coarse liveness signal exposed by the health
// endpoint. The waterway count doubles as a signal that the store is
// loaded and non-empty.
type HealthStatus string

const (
	HealthOK       HealthStatus = "ok"
	HealthDegraded HealthStatus = "degraded"
	HealthDown     HealthStatus = "down"
)

type Health struct {
	Status        HealthStatus `json:"status"`
	WaterwayCount int64        `json:"waterway_count"`
}
