package port

import (
	"context"

	"github.com/zenithhr/procurement-workflow/internal/domain/entity"
)

// RequestStore defines persistence operations for PurchaseRequest and its
// audit history. Commit is the single serialization point per request id; the
// workflow engine is the only component that may call it.
type RequestStore interface {
	// Create persists a new request at version 0. No audit entry is written;
	// creation is not a transition.
	Create(ctx context.Context, req *entity.PurchaseRequest) error

	// Load retrieves a request by id, returning ErrNotFound if absent
	Load(ctx context.Context, id string) (*entity.PurchaseRequest, error)

	// Commit atomically verifies the stored version equals expectedVersion,
	// writes the new stage, increments the version, and appends the audit
	// entry, all in one transaction. Returns ErrVersionConflict when the
	// version check fails and ErrNotFound when the request does not exist.
	Commit(ctx context.Context, id string, expectedVersion int64, newStage string, audit *entity.AuditEntry) (*entity.PurchaseRequest, error)

	// History returns the request's audit entries ordered by timestamp
	// ascending
	History(ctx context.Context, id string) ([]*entity.AuditEntry, error)

	// List retrieves requests ordered by creation time descending
	List(ctx context.Context, limit, offset int) ([]*entity.PurchaseRequest, error)

	// ListAll retrieves every request, used to build the kanban projection
	ListAll(ctx context.Context) ([]*entity.PurchaseRequest, error)
}
