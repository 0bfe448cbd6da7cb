package entity

import "time"

// AuditEntry is an immutable record of one committed stage transition.
// Exactly one entry exists per committed transition; the history is
// append-only and never updated or deleted.
type AuditEntry struct {
	ID               int64     `json:"id"`
	RequestID        string    `json:"request_id"`
	FromStage        string    `json:"from_stage"`
	ToStage          string    `json:"to_stage"`
	ActorID          string    `json:"actor_id"`
	Decision         string    `json:"decision"`
	Comments         string    `json:"comments,omitempty"`
	ResultingVersion int64     `json:"resulting_version"`
	Timestamp        time.Time `json:"timestamp"`
}
