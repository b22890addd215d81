// Package audit records engineering decisions: publication verdicts, status
// transitions and overrides. Events are appended to a store and optionally
// streamed to a broker for downstream consumers.
package audit

import "time"

// Kind classifies an audit event.
type Kind string

const (
	KindPublicationDecision Kind = "publication_decision"
	KindStatusTransition    Kind = "status_transition"
	KindConfigurationSaved  Kind = "configuration_saved"
	KindHealthTransition    Kind = "health_transition"
)

// Event is one immutable audit record. Subject identifies the configuration
// the decision applies to; Detail carries kind-specific payload.
type Event struct {
	ID         string         `json:"id"`
	Kind       Kind           `json:"kind"`
	Actor      string         `json:"actor"`
	Subject    string         `json:"subject"`
	Outcome    string         `json:"outcome"`
	Detail     map[string]any `json:"detail,omitempty"`
	RequestID  string         `json:"request_id,omitempty"`
	OccurredAt time.Time      `json:"occurred_at"`
}
