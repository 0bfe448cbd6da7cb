package event

// Type identifies the type of domain event
type Type string

const (
	TypeRequestCreated Type = "request.created"
	TypeStageChanged   Type = "request.stage_changed"
	TypeRequestClosed  Type = "request.closed"
)

// String returns the string representation of the event type
func (t Type) String() string {
	return string(t)
}

// IsValid checks if the event type is one of the defined constants
func (t Type) IsValid() bool {
	switch t {
	case TypeRequestCreated, TypeStageChanged, TypeRequestClosed:
		return true
	default:
		return false
	}
}
