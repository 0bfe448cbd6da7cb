package workflow

import (
	"context"

	"github.com/zenithhr/procurement-workflow/internal/domain/entity"
	"github.com/zenithhr/procurement-workflow/internal/domain/stage"
)

// Engine orchestrates stage transitions for purchase requests. It is the only
// component permitted to commit a stage change.
type Engine interface {
	// Transition applies the actor's decision to the request at its current
	// stage: load, authorize, resolve the successor, commit atomically with
	// an audit entry. Version conflicts are retried a bounded number of
	// times against freshly loaded state before being surfaced.
	Transition(ctx context.Context, requestID string, actor entity.Actor, decision stage.Decision, comments string) (*entity.PurchaseRequest, error)
}
