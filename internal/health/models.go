package health

import "time"

// Status of the norm system as a whole.
type Status string

const (
	StatusHealthy  Status = "HEALTHY"
	StatusDegraded Status = "DEGRADED"
	StatusBlocked  Status = "BLOCKED"
)

// Report is one health evaluation over the active rule catalog. Details is
// human-oriented diagnostic text; Issues lists each finding separately.
type Report struct {
	Status       Status    `json:"status"`
	Message      string    `json:"message"`
	Details      string    `json:"details,omitempty"`
	Issues       []string  `json:"issues,omitempty"`
	PackVersion  string    `json:"pack_version,omitempty"`
	BreakerState string    `json:"breaker_state"`
	CheckedAt    time.Time `json:"checked_at"`
}
