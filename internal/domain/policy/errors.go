package policy

import (
	"errors"
	"fmt"
)

var (
	// ErrInsufficientRole is returned when the actor's role set does not
	// include the role mapped to the request's current stage
	ErrInsufficientRole = errors.New("insufficient role")

	// ErrStageMismatch is returned when the request's current stage has no
	// acting role at all (terminal or unregistered stages)
	ErrStageMismatch = errors.New("stage mismatch")
)

// AuthorizationError reports why an actor may not act on a request. It wraps
// one of the sentinel errors above so callers can branch with errors.Is.
type AuthorizationError struct {
	Kind    error
	ActorID string
	Stage   string
}

func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("actor %s not authorized at stage %s: %v", e.ActorID, e.Stage, e.Kind)
}

func (e *AuthorizationError) Unwrap() error {
	return e.Kind
}
