package stage

// Decision is the action applied to a request at its current stage
type Decision string

const (
	DecisionApprove Decision = "APPROVE"
	DecisionReject  Decision = "REJECT"
)

// String returns the string representation of the decision
func (d Decision) String() string {
	return string(d)
}

// IsValid returns true if the decision is recognized
func (d Decision) IsValid() bool {
	return d == DecisionApprove || d == DecisionReject
}
