package game

import "github.com/pkg/errors"

// InvariantFailure wraps an internal contract violation (spec.md §7:
// "internal invariant violations may still raise a fatal error"),
// distinguishing it from the value-returning failures the public API
// uses for user mistakes.
type InvariantFailure struct {
	cause error
}

func (e *InvariantFailure) Error() string { return "invariant failure: " + e.cause.Error() }
func (e *InvariantFailure) Unwrap() error  { return e.cause }

func invariant(err error) error {
	if err == nil {
		return nil
	}
	return &InvariantFailure{cause: err}
}

// ErrIllegalMove is returned by Move/PlayMove when the requested move is
// not present in the current legal set (spec.md §7's IllegalMove).
var ErrIllegalMove = errors.New("illegal move")

// ErrNoDeploySession is returned by the deploy API when called with no
// active session.
var ErrNoDeploySession = errors.New("no active deploy session")
