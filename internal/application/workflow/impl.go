package workflow

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/zenithhr/procurement-workflow/internal/application/dispatcher"
	"github.com/zenithhr/procurement-workflow/internal/application/port"
	"github.com/zenithhr/procurement-workflow/internal/domain/entity"
	"github.com/zenithhr/procurement-workflow/internal/domain/event"
	"github.com/zenithhr/procurement-workflow/internal/domain/policy"
	"github.com/zenithhr/procurement-workflow/internal/domain/stage"
)

// defaultMaxAttempts bounds automatic retries on version conflicts. The
// workflow is human-paced, so real contention is rare and a small bound is
// enough before asking the caller to refresh.
const defaultMaxAttempts = 3

// engineImpl is the concrete implementation of Engine
type engineImpl struct {
	store         port.RequestStore
	registry      *stage.Registry
	policy        *policy.ApprovalPolicy
	dispatcher    dispatcher.Dispatcher
	maxAttempts   int
	commitTimeout time.Duration
}

// EngineOption configures the workflow engine
type EngineOption func(*engineImpl)

// WithDispatcher sets the event dispatcher for emitting stage-change events
func WithDispatcher(d dispatcher.Dispatcher) EngineOption {
	return func(e *engineImpl) {
		e.dispatcher = d
	}
}

// WithMaxAttempts overrides the bounded retry count for version conflicts
func WithMaxAttempts(n int) EngineOption {
	return func(e *engineImpl) {
		if n > 0 {
			e.maxAttempts = n
		}
	}
}

// WithCommitTimeout bounds the persistence call of a single transition
func WithCommitTimeout(d time.Duration) EngineOption {
	return func(e *engineImpl) {
		if d > 0 {
			e.commitTimeout = d
		}
	}
}

// NewEngine creates a new workflow engine
func NewEngine(store port.RequestStore, registry *stage.Registry, pol *policy.ApprovalPolicy, opts ...EngineOption) Engine {
	e := &engineImpl{
		store:       store,
		registry:    registry,
		policy:      pol,
		maxAttempts: defaultMaxAttempts,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Transition applies the actor's decision to the request at its current stage
func (e *engineImpl) Transition(ctx context.Context, requestID string, actor entity.Actor, decision stage.Decision, comments string) (*entity.PurchaseRequest, error) {
	if !decision.IsValid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidDecision, decision)
	}

	var lastErr error
	for attempt := 0; attempt < e.maxAttempts; attempt++ {
		updated, err := e.attempt(ctx, requestID, actor, decision, comments)
		if err == nil {
			e.emitStageChanged(ctx, updated, actor, decision)
			return updated, nil
		}

		// Only a stale version is retryable; everything else is surfaced
		// as-is. Each retry re-loads and re-authorizes from scratch.
		if !errors.Is(err, port.ErrVersionConflict) {
			return nil, err
		}
		lastErr = err
	}

	return nil, lastErr
}

// attempt runs one full load-authorize-resolve-commit cycle. Steps before
// Commit are read-only and leave no partial state on failure.
func (e *engineImpl) attempt(ctx context.Context, requestID string, actor entity.Actor, decision stage.Decision, comments string) (*entity.PurchaseRequest, error) {
	req, err := e.store.Load(ctx, requestID)
	if err != nil {
		return nil, err
	}

	current := stage.Stage(req.CurrentStage)
	if current.IsTerminal() {
		return nil, fmt.Errorf("%w: %s is %s", ErrAlreadyTerminal, req.ID, req.CurrentStage)
	}

	if err := e.policy.Authorize(actor, req, decision); err != nil {
		return nil, err
	}

	path := stage.Path{RequiresTopApproval: req.RequiresTopApproval}
	next, err := e.registry.Successor(current, decision, path)
	if err != nil {
		return nil, err
	}

	audit := &entity.AuditEntry{
		RequestID:        req.ID,
		FromStage:        req.CurrentStage,
		ToStage:          next.String(),
		ActorID:          actor.ID,
		Decision:         decision.String(),
		Comments:         comments,
		ResultingVersion: req.Version + 1,
		Timestamp:        time.Now(),
	}

	commitCtx := ctx
	if e.commitTimeout > 0 {
		var cancel context.CancelFunc
		commitCtx, cancel = context.WithTimeout(ctx, e.commitTimeout)
		defer cancel()
	}

	return e.store.Commit(commitCtx, req.ID, req.Version, next.String(), audit)
}

func (e *engineImpl) emitStageChanged(ctx context.Context, req *entity.PurchaseRequest, actor entity.Actor, decision stage.Decision) {
	if e.dispatcher == nil {
		return
	}

	evt := event.New(event.TypeStageChanged, req.ID, map[string]interface{}{
		"stage":    req.CurrentStage,
		"version":  req.Version,
		"actor_id": actor.ID,
		"decision": decision.String(),
	})
	e.dispatcher.DispatchAsync(ctx, evt)

	if stage.Stage(req.CurrentStage).IsTerminal() {
		closed := event.NewWithCorrelation(event.TypeRequestClosed, req.ID, map[string]interface{}{
			"stage": req.CurrentStage,
		}, evt.CorrelationID)
		e.dispatcher.DispatchAsync(ctx, closed)
	}
}
