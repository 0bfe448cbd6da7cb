package entity

import "time"

// PurchaseRequest is the workflow subject. Everything except CurrentStage and
// Version is immutable once the request has been submitted; CurrentStage is
// mutated exclusively through the workflow engine.
type PurchaseRequest struct {
	ID          string `json:"id"`
	AmountCents int64  `json:"amount_cents"`
	Department  string `json:"department"`
	RequesterID string `json:"requester_id"`
	VendorName  string `json:"vendor_name"`
	Description string `json:"description"`
	Priority    string `json:"priority"`

	CurrentStage string `json:"current_stage"`
	Version      int64  `json:"version"`

	// RequiresTopApproval is resolved against the configured threshold when
	// the request is created and never re-evaluated, so later threshold
	// changes cannot alter an in-flight request's path.
	RequiresTopApproval bool `json:"requires_top_approval"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Actor is the identity snapshot supplied by the upstream auth layer for a
// single approval action.
type Actor struct {
	ID    string   `json:"id"`
	Roles []string `json:"roles"`
}

// HasRole reports whether the actor carries the given role.
func (a Actor) HasRole(role string) bool {
	for _, r := range a.Roles {
		if r == role {
			return true
		}
	}
	return false
}
