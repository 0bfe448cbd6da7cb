package policy

import (
	"github.com/zenithhr/procurement-workflow/internal/domain/entity"
	"github.com/zenithhr/procurement-workflow/internal/domain/stage"
)

// stageRoles maps each actionable stage to the single role allowed to act
// there. Terminal stages have no entry.
var stageRoles = map[stage.Stage]string{
	stage.StageCreated:              entity.RoleRequester,
	stage.StageManagerApproval:      entity.RoleManager,
	stage.StageProcurementReview:    entity.RoleProcurement,
	stage.StageFinanceApproval:      entity.RoleFinance,
	stage.StageMDApproval:           entity.RoleManagingDirector,
	stage.StagePaymentAuthorization: entity.RolePaymentAuthorizer,
	stage.StagePayVendor:            entity.RolePaymentAuthorizer,
}

// ApprovalPolicy decides who may act at each stage and whether a request
// must route through MD approval. It is a pure check over supplied
// actor/request snapshots and holds no mutable state.
type ApprovalPolicy struct {
	topApprovalThresholdCents int64
}

// New creates an ApprovalPolicy with the configured top-approval threshold
func New(topApprovalThresholdCents int64) *ApprovalPolicy {
	return &ApprovalPolicy{topApprovalThresholdCents: topApprovalThresholdCents}
}

// RequiresTopApproval reports whether a request of the given amount must
// route through the MD stage. Evaluated once at request creation; the result
// is cached on the request so later threshold changes never alter an
// in-flight path.
func (p *ApprovalPolicy) RequiresTopApproval(amountCents int64) bool {
	return amountCents >= p.topApprovalThresholdCents
}

// RoleForStage returns the role allowed to act at the given stage and whether
// the stage is actionable at all.
func (p *ApprovalPolicy) RoleForStage(s stage.Stage) (string, bool) {
	role, ok := stageRoles[s]
	return role, ok
}

// Authorize checks that the actor may apply a decision to the request at its
// current stage. The decision itself does not change who may act; approve and
// reject are gated by the same stage role.
func (p *ApprovalPolicy) Authorize(actor entity.Actor, req *entity.PurchaseRequest, _ stage.Decision) error {
	current := stage.Stage(req.CurrentStage)

	role, ok := stageRoles[current]
	if !ok {
		return &AuthorizationError{Kind: ErrStageMismatch, ActorID: actor.ID, Stage: req.CurrentStage}
	}

	if !actor.HasRole(role) {
		return &AuthorizationError{Kind: ErrInsufficientRole, ActorID: actor.ID, Stage: req.CurrentStage}
	}

	return nil
}
