package stage

// NewPurchaseRegistry builds the transition graph for the purchase-request
// approval workflow. MD rejection and payment-authorization rejection return
// the request to finance approval for refinement instead of killing it;
// rejection at the earlier stages is final.
func NewPurchaseRegistry() *Registry {
	builder := NewBuilder()

	builder.Configure(StageCreated).
		OnApprove(StageManagerApproval).
		OnReject(StageRejected)

	builder.Configure(StageManagerApproval).
		OnApprove(StageProcurementReview).
		OnReject(StageRejected)

	builder.Configure(StageProcurementReview).
		OnApprove(StageFinanceApproval).
		OnReject(StageRejected)

	// Requests above the top-approval threshold route through the MD before
	// payment authorization; everyone else skips straight past it.
	builder.Configure(StageFinanceApproval).
		OnApproveIf(StageMDApproval, func(p Path) bool { return p.RequiresTopApproval }).
		OnApproveIf(StagePaymentAuthorization, func(p Path) bool { return !p.RequiresTopApproval }).
		OnReject(StageRejected)

	builder.Configure(StageMDApproval).
		OnApprove(StagePaymentAuthorization).
		OnReject(StageFinanceApproval)

	builder.Configure(StagePaymentAuthorization).
		OnApprove(StagePayVendor).
		OnReject(StageFinanceApproval)

	builder.Configure(StagePayVendor).
		OnApprove(StageCompleted).
		OnReject(StageRejected)

	// COMPLETED and REJECTED are terminal, registered with no outgoing edges
	builder.Configure(StageCompleted)
	builder.Configure(StageRejected)

	return builder.Build()
}
