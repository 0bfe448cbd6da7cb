package stage

// Path is a request's resolved route through the workflow. It is fixed when
// the request is created and determines whether the conditional MD stage is
// part of the approval chain.
type Path struct {
	RequiresTopApproval bool
}

// Stages returns the ordered approval chain for the path, excluding the
// terminal REJECTED stage.
func (p Path) Stages() []Stage {
	if p.RequiresTopApproval {
		return []Stage{
			StageCreated,
			StageManagerApproval,
			StageProcurementReview,
			StageFinanceApproval,
			StageMDApproval,
			StagePaymentAuthorization,
			StagePayVendor,
			StageCompleted,
		}
	}
	return []Stage{
		StageCreated,
		StageManagerApproval,
		StageProcurementReview,
		StageFinanceApproval,
		StagePaymentAuthorization,
		StagePayVendor,
		StageCompleted,
	}
}

// Contains reports whether s is part of the path's approval chain.
func (p Path) Contains(s Stage) bool {
	for _, st := range p.Stages() {
		if st == s {
			return true
		}
	}
	return false
}
