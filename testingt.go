package jaz

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/emrekara37/jaz-go/internal"
)

// TestingT mirrors the standard library's *testing.T surface - the same
// interface the teacher's assertion, logging, and double-testing helpers
// were built against. T adapts the ambient per-test context to it so that
// tooling written for it (logging.NewSlogHandler, logging.NewWriter, a
// double.Spy wrapping it) keeps working against a running jaz test
// instead of a bare *testing.T.
type TestingT = internal.TestingT

// ambientT adapts the currently running test to TestingT: Log/Logf append
// to the test's own output buffer (§4.7), Cleanup registers a function
// run at test teardown (LIFO, mirroring testing.T.Cleanup), and
// Fail/FailNow raise AssertionFailure so TestingT-shaped code written
// against *testing.T conventions still stops the test the way the rest of
// jaz expects.
type ambientT struct {
	rt RunningTest
}

// T returns a TestingT view of the currently running test. It panics
// outside of a running test, like Current.
func T() TestingT { return ambientT{rt: Current()} }

func (ambientT) Helper() {}

func (t ambientT) Cleanup(f func()) { t.rt.ctx.addCleanup(f) }

func (ambientT) Fail() { panic(&AssertionFailure{Message: "Fail() called on jaz.T()"}) }

func (ambientT) FailNow() { panic(&AssertionFailure{Message: "FailNow() called on jaz.T()"}) }

func (t ambientT) Log(args ...any) { t.rt.Log(strings.TrimSuffix(fmt.Sprintln(args...), "\n")) }

func (t ambientT) Logf(format string, args ...any) { t.rt.Log(fmt.Sprintf(format, args...)) }

func (t ambientT) Context() context.Context { return t.rt.ctx.goContext }

func (ambientT) Deadline() (time.Time, bool) { return time.Time{}, false }
