package models

// HealthStatus represents the status of the service.
type HealthStatus string

const (
	HealthStatusOK       HealthStatus = "OK"
	HealthStatusDegraded HealthStatus = "DEGRADED"
)

// Health is the body of GET /ops/health.
type Health struct {
	Status  HealthStatus           `json:"status"`
	Time    int64                  `json:"time"`
	Details map[string]interface{} `json:"details,omitempty"`
}
