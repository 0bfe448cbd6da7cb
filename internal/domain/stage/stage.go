package stage

// Stage represents a point in the purchase-request approval lifecycle
type Stage string

const (
	StageCreated              Stage = "CREATED"
	StageManagerApproval      Stage = "MANAGER_APPROVAL"
	StageProcurementReview    Stage = "PROCUREMENT_REVIEW"
	StageFinanceApproval      Stage = "FINANCE_APPROVAL"
	StageMDApproval           Stage = "MD_APPROVAL"
	StagePaymentAuthorization Stage = "PAYMENT_AUTHORIZATION"
	StagePayVendor            Stage = "PAY_VENDOR"
	StageCompleted            Stage = "COMPLETED"
	StageRejected             Stage = "REJECTED"
)

var validStages = map[Stage]bool{
	StageCreated:              true,
	StageManagerApproval:      true,
	StageProcurementReview:    true,
	StageFinanceApproval:      true,
	StageMDApproval:           true,
	StagePaymentAuthorization: true,
	StagePayVendor:            true,
	StageCompleted:            true,
	StageRejected:             true,
}

var terminalStages = map[Stage]bool{
	StageCompleted: true,
	StageRejected:  true,
}

// IsTerminal returns true if the stage accepts no further transitions
func (s Stage) IsTerminal() bool {
	return terminalStages[s]
}

// IsValid returns true if the stage is a registered workflow stage
func (s Stage) IsValid() bool {
	return validStages[s]
}

// String returns the string representation of the stage
func (s Stage) String() string {
	return string(s)
}

// DisplayStages is the fixed ordered taxonomy used by the kanban projection.
// It always includes the conditional MD column regardless of any individual
// request's resolved path.
var DisplayStages = []Stage{
	StageCreated,
	StageManagerApproval,
	StageProcurementReview,
	StageFinanceApproval,
	StageMDApproval,
	StagePaymentAuthorization,
	StagePayVendor,
	StageCompleted,
	StageRejected,
}
