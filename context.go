package jaz

import (
	"context"
	"strings"
	"sync"

	"github.com/emrekara37/jaz-go/spy"
)

// outputBuffer accumulates the lines a running test or its hooks append,
// in order. It's only ever touched by the single test currently holding
// the run's single-test mutex, but it locks anyway so a spy fake calling
// back into Current() from a goroutine doesn't race.
type outputBuffer struct {
	mu    sync.Mutex
	lines []string
}

func (b *outputBuffer) append(line string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lines = append(b.lines, line)
}

func (b *outputBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return strings.Join(b.lines, "\n")
}

// testContext is the ambient state a running test reads to access its
// output buffer and its logical identity (§4.7). Exactly one is active on
// the executing control flow at any time.
type testContext struct {
	fullName  string
	output    *outputBuffer
	goContext context.Context

	cleanupMu sync.Mutex
	cleanups  []func()
}

func (c *testContext) addCleanup(f func()) {
	c.cleanupMu.Lock()
	defer c.cleanupMu.Unlock()
	c.cleanups = append(c.cleanups, f)
}

// runCleanups runs every registered cleanup in LIFO order, mirroring
// testing.T.Cleanup, and is itself safe to call even if no cleanup was
// ever registered.
func (c *testContext) runCleanups() {
	c.cleanupMu.Lock()
	cleanups := c.cleanups
	c.cleanups = nil
	c.cleanupMu.Unlock()

	for i := len(cleanups) - 1; i >= 0; i-- {
		cleanups[i]()
	}
}

//nolint:gochecknoglobals // process-wide ambient state is the whole point of §4.7/§5
var (
	currentMu sync.Mutex
	current   *testContext

	spies = spy.NewRegistry()
)

// RunningTest is the single access point test bodies and hooks use to
// reach side-band state: its own output buffer, its full name, and the
// shared spy registry. Obtain one with Current.
type RunningTest struct {
	ctx *testContext
}

// FullName returns the concatenated describe names and test name of the
// currently executing test.
func (r RunningTest) FullName() string { return r.ctx.fullName }

// Log appends a line to the current test's output buffer. The executor
// appends "Test completed successfully." or the innermost failure message
// after the test finishes, per §7.
func (r RunningTest) Log(line string) { r.ctx.output.append(line) }

// Spies returns the process-wide spy registry. Spies installed here are
// disposed of by the executor once the test completes (§4.1 clear_all).
func (r RunningTest) Spies() *spy.Registry { return spies }

// Current returns the ambient context of whichever test is presently
// executing on this process. It panics outside of a running test: there
// is no well-defined "current test" to hand back.
func Current() RunningTest {
	currentMu.Lock()
	defer currentMu.Unlock()

	if current == nil {
		panic("jaz: Current() called outside of a running test")
	}

	return RunningTest{ctx: current}
}

// Spies is a package-level shortcut for Current().Spies(), usable from
// hooks and test bodies without needing the rest of RunningTest.
func Spies() *spy.Registry { return spies }

// establishContext installs a fresh per-test context; called by the
// executor at test start (§4.6 step 2c), guarded by the run's
// single-test mutex. goContext is the context.Context the test body and
// its hooks are invoked with; it's also what jaz.T().Context() returns.
func establishContext(fullName string, goContext context.Context) *testContext {
	ctx := &testContext{fullName: fullName, output: &outputBuffer{}, goContext: goContext}

	currentMu.Lock()
	current = ctx
	currentMu.Unlock()

	return ctx
}

// clearContext runs any registered cleanups and tears down the active
// per-test context; called by the executor at test end (§4.6 step 2f).
func clearContext() {
	currentMu.Lock()
	ctx := current
	current = nil
	currentMu.Unlock()

	if ctx != nil {
		ctx.runCleanups()
	}
}
