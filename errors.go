package jaz

import (
	"errors"

	"github.com/emrekara37/jaz-go/spy"
)

// AssertionFailure is raised by matchers (see the sibling expect package)
// when an expectation is not satisfied. It always terminates the current
// test body and always translates the test outcome to Failed.
type AssertionFailure struct {
	Message string
}

func (e *AssertionFailure) Error() string { return e.Message }

// UnexpectedSpyCall is raised by the spy dispatcher when a spy is invoked
// but its behaviour queue is empty. It's an alias of spy.UnexpectedCallError
// so code that only imports jaz can still errors.As against it.
type UnexpectedSpyCall = spy.UnexpectedCallError

// SpyInternal is raised when the dispatcher cannot recover the original
// method identity, or another spy invariant is violated. An alias of
// spy.InternalError.
type SpyInternal = spy.InternalError

// UserError wraps any other error raised inside a hook or test body. The
// innermost cause is kept for display; the full chain survives for
// detailed reporting via errors.Unwrap.
type UserError struct {
	Cause error
}

func (e *UserError) Error() string { return e.Cause.Error() }
func (e *UserError) Unwrap() error { return e.Cause }

// ErrAlreadyRunning is returned by Execute when called on a run whose
// previous execution has not completed.
var ErrAlreadyRunning = errors.New("jaz: run is already executing")

// ErrCancelledBeforeStart describes a test that cancellation kept from
// starting. Execute neither returns nor records it: on
// cancellation it stops and returns results only for the tests that ran.
var ErrCancelledBeforeStart = errors.New("jaz: run cancelled before test could start")

// innermostCause walks an error's Unwrap chain and returns the deepest
// wrapped error, matching the §7 contract that the output buffer carries
// the innermost failure message while the full chain is preserved on the
// result record.
func innermostCause(err error) error {
	for {
		inner := errors.Unwrap(err)
		if inner == nil {
			return err
		}
		err = inner
	}
}
