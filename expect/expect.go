// Package expect provides pure value-level assertions that fail the
// current test by raising jaz.AssertionFailure - see the sibling jaz
// package for how that panic unwinds the test body and becomes a Failed
// result.
package expect

import (
	"fmt"

	jaz "github.com/emrekara37/jaz-go"
	"github.com/emrekara37/jaz-go/expect/internal/message"
)

// That raises jaz.AssertionFailure if result is false. The failure
// message is built by parsing the call site's source - the same
// technique the teacher's test.Assert used - so a call like
//
//	expect.That(user.Name == "Bob")
//
// reads as "user.Name is not equal to \"Bob\"" without the caller having
// to spell out a message by hand. That returns result, mirroring the
// teacher's Assert.
func That(result bool) bool {
	if !result {
		failFromCallSite(result, 2)
	}
	return result
}

// failFromCallSite renders the assertion message for the caller
// callerStackIndex frames up (see message.FromBool) and panics with it.
func failFromCallSite(result bool, callerStackIndex int) {
	msg, err := message.FromBool(callerStackIndex, result)
	if err != nil {
		msg = fmt.Sprintf("assertion failed (could not describe expression: %v)", err)
	}
	panic(&jaz.AssertionFailure{Message: msg})
}

func failWithMessage(msg string) {
	panic(&jaz.AssertionFailure{Message: msg})
}
