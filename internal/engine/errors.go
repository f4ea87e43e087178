package engine

import "matchd/pkg/types"

// matchNotFoundError signals an unknown match id for 404 mapping.
type matchNotFoundError struct{ id string }

func (e matchNotFoundError) Error() string { return "match not found: " + e.id }

// ErrMatchNotFound constructs a matchNotFoundError.
func ErrMatchNotFound(id string) error { return matchNotFoundError{id: id} }

// IsMatchNotFound reports whether err indicates an unknown match id.
func IsMatchNotFound(err error) bool {
	_, ok := err.(matchNotFoundError)
	return ok
}

// invalidTransitionError signals a StartMatch call outside the scheduled
// state so the HTTP layer can return 409 Conflict.
type invalidTransitionError struct {
	id     string
	status types.MatchStatus
}

func (e invalidTransitionError) Error() string {
	switch e.status {
	case types.StatusLive:
		return "match is already live"
	case types.StatusEnded:
		return "match has already ended"
	default:
		return "match cannot start from status " + string(e.status)
	}
}

// ErrInvalidTransition constructs an invalidTransitionError.
func ErrInvalidTransition(id string, status types.MatchStatus) error {
	return invalidTransitionError{id: id, status: status}
}

// IsInvalidTransition reports whether err indicates a rejected lifecycle
// transition.
func IsInvalidTransition(err error) bool {
	_, ok := err.(invalidTransitionError)
	return ok
}
