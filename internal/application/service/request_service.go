package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/zenithhr/procurement-workflow/internal/application/dispatcher"
	"github.com/zenithhr/procurement-workflow/internal/application/port"
	"github.com/zenithhr/procurement-workflow/internal/application/projection"
	"github.com/zenithhr/procurement-workflow/internal/domain/entity"
	"github.com/zenithhr/procurement-workflow/internal/domain/event"
	"github.com/zenithhr/procurement-workflow/internal/domain/policy"
	"github.com/zenithhr/procurement-workflow/internal/domain/stage"
)

// Logger interface for minimal logging dependency
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// ErrValidation is returned when a creation request carries invalid fields
var ErrValidation = errors.New("validation failed")

// CreateRequestInput carries the fields supplied at submission. All of them
// are immutable once the request exists.
type CreateRequestInput struct {
	AmountCents int64
	Department  string
	RequesterID string
	VendorName  string
	Description string
	Priority    string
}

// RequestService manages purchase request creation and read-side queries.
// Stage mutation is not exposed here; that belongs to the workflow engine.
type RequestService interface {
	Create(ctx context.Context, input CreateRequestInput) (*entity.PurchaseRequest, error)
	Get(ctx context.Context, id string) (*entity.PurchaseRequest, error)
	History(ctx context.Context, id string) ([]*entity.AuditEntry, error)
	List(ctx context.Context, limit, offset int) ([]*entity.PurchaseRequest, error)
	Board(ctx context.Context) (projection.Board, error)
}

type requestServiceImpl struct {
	store      port.RequestStore
	policy     *policy.ApprovalPolicy
	dispatcher dispatcher.Dispatcher
	logger     Logger
}

// NewRequestService creates a new RequestService
func NewRequestService(store port.RequestStore, pol *policy.ApprovalPolicy, d dispatcher.Dispatcher, logger Logger) RequestService {
	return &requestServiceImpl{
		store:      store,
		policy:     pol,
		dispatcher: d,
		logger:     logger,
	}
}

// Create validates and persists a new purchase request at stage CREATED,
// version 0. The MD-approval path membership is resolved here, once, against
// the currently configured threshold and cached on the row for good.
func (s *requestServiceImpl) Create(ctx context.Context, input CreateRequestInput) (*entity.PurchaseRequest, error) {
	if err := validateCreateInput(input); err != nil {
		return nil, err
	}

	priority := input.Priority
	if priority == "" {
		priority = entity.PriorityMedium
	}

	now := time.Now()
	req := &entity.PurchaseRequest{
		ID:                  uuid.NewString(),
		AmountCents:         input.AmountCents,
		Department:          input.Department,
		RequesterID:         input.RequesterID,
		VendorName:          input.VendorName,
		Description:         input.Description,
		Priority:            priority,
		CurrentStage:        stage.StageCreated.String(),
		Version:             0,
		RequiresTopApproval: s.policy.RequiresTopApproval(input.AmountCents),
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	if err := s.store.Create(ctx, req); err != nil {
		s.logger.Error("Failed to create request", "error", err, "requester_id", input.RequesterID)
		return nil, err
	}

	s.logger.Info("Request created",
		"id", req.ID,
		"amount_cents", req.AmountCents,
		"requires_top_approval", req.RequiresTopApproval,
	)

	if s.dispatcher != nil {
		s.dispatcher.DispatchAsync(ctx, event.New(event.TypeRequestCreated, req.ID, map[string]interface{}{
			"amount_cents": req.AmountCents,
			"department":   req.Department,
			"requester_id": req.RequesterID,
		}))
	}

	return req, nil
}

// Get retrieves a request by id
func (s *requestServiceImpl) Get(ctx context.Context, id string) (*entity.PurchaseRequest, error) {
	return s.store.Load(ctx, id)
}

// History returns the request's audit trail ordered by timestamp ascending.
// The request must exist; an unknown id surfaces ErrNotFound rather than an
// empty history.
func (s *requestServiceImpl) History(ctx context.Context, id string) ([]*entity.AuditEntry, error) {
	if _, err := s.store.Load(ctx, id); err != nil {
		return nil, err
	}
	return s.store.History(ctx, id)
}

// List retrieves requests with pagination, newest first
func (s *requestServiceImpl) List(ctx context.Context, limit, offset int) ([]*entity.PurchaseRequest, error) {
	return s.store.List(ctx, limit, offset)
}

// Board returns the kanban grouping over the current request snapshot
func (s *requestServiceImpl) Board(ctx context.Context) (projection.Board, error) {
	requests, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return projection.Project(requests), nil
}

func validateCreateInput(input CreateRequestInput) error {
	if input.AmountCents <= 0 {
		return fmt.Errorf("%w: amount must be positive", ErrValidation)
	}
	if input.Department == "" {
		return fmt.Errorf("%w: department is required", ErrValidation)
	}
	if input.RequesterID == "" {
		return fmt.Errorf("%w: requester_id is required", ErrValidation)
	}
	if input.VendorName == "" {
		return fmt.Errorf("%w: vendor_name is required", ErrValidation)
	}
	if input.Priority != "" && !entity.IsValidPriority(input.Priority) {
		return fmt.Errorf("%w: unknown priority %q", ErrValidation, input.Priority)
	}
	return nil
}
