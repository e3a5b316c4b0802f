package jaz

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/multierr"
)

// Outcome is the result of running a single compiled test.
type Outcome uint8

const (
	Passed Outcome = iota
	Failed
	Skipped
)

func (o Outcome) String() string {
	switch o {
	case Passed:
		return "Passed"
	case Failed:
		return "Failed"
	case Skipped:
		return "Skipped"
	default:
		return "Unknown"
	}
}

// Result is the per-test completion record §6 describes: the compiled
// test, its outcome, captured output, the causing error (if any), and how
// long it took to run.
type Result struct {
	Test       CompiledTest
	Outcome    Outcome
	SkipReason string
	Output     string
	Error      error
	Duration   time.Duration
}

// singleTestMutex guards the process-wide per-test context and spy
// registry so at most one test owns them at a time (§5), even if a host
// runs more than one TestRun concurrently - callers doing that simply
// serialise on this mutex.
//
//nolint:gochecknoglobals // the ambient state it protects is itself process-wide by design
var singleTestMutex sync.Mutex

// TestRun executes a compiled list of tests sequentially (§4.6). A run
// may execute at most once at a time; a second concurrent call to
// Execute fails with ErrAlreadyRunning.
type TestRun struct {
	tests []CompiledTest

	executing atomic.Bool
	cancelled atomic.Bool

	mu             sync.Mutex
	onTestComplete []func(Result)
	onAllComplete  []func()
}

// NewRun builds a TestRun over an already-compiled, ordered list of
// tests - see Compile.
func NewRun(tests []CompiledTest) *TestRun {
	return &TestRun{tests: tests}
}

// OnTestCompleted registers a listener invoked after each test finishes.
// A panic raised by the listener is swallowed (§7 propagation policy).
func (r *TestRun) OnTestCompleted(f func(Result)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onTestComplete = append(r.onTestComplete, f)
}

// OnAllCompleted registers a listener invoked once, after every test in
// the run has completed or the run was cancelled.
func (r *TestRun) OnAllCompleted(f func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onAllComplete = append(r.onAllComplete, f)
}

// Cancel requests the run stop pulling new tests. Cancellation is checked
// between tests only (§5): the test currently executing always runs to
// completion.
func (r *TestRun) Cancel() { r.cancelled.Store(true) }

// Execute runs the compiled list in order, establishing and tearing down
// the per-test context around each one, and returns every result once the
// run finishes or is cancelled.
func (r *TestRun) Execute(ctx context.Context) ([]Result, error) {
	if !r.executing.CompareAndSwap(false, true) {
		return nil, ErrAlreadyRunning
	}
	defer r.executing.Store(false)

	anyFocused := false
	for _, t := range r.tests {
		if t.IsFocused {
			anyFocused = true
			break
		}
	}

	results := make([]Result, 0, len(r.tests))

	for _, test := range r.tests {
		if r.cancelled.Load() || ctx.Err() != nil {
			break
		}

		result := r.runOne(ctx, test, anyFocused)
		results = append(results, result)
		r.notifyTestCompleted(result)
	}

	r.notifyAllCompleted()

	return results, nil
}

func (r *TestRun) notifyTestCompleted(result Result) {
	r.mu.Lock()
	listeners := append([]func(Result){}, r.onTestComplete...)
	r.mu.Unlock()

	for _, l := range listeners {
		swallowPanic(func() { l(result) })
	}
}

func (r *TestRun) notifyAllCompleted() {
	r.mu.Lock()
	listeners := append([]func(){}, r.onAllComplete...)
	r.mu.Unlock()

	for _, l := range listeners {
		swallowPanic(l)
	}
}

// swallowPanic runs f, discarding any panic it raises - §7 says errors
// raised by a completion listener must never escape execute. The panic is
// still surfaced as a Warn-level internal diagnostic rather than silently
// dropped.
func swallowPanic(f func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Warn("jaz: run completion listener panicked", "panic", r)
		}
	}()
	f()
}

// runOne establishes the per-test context, decides and runs the test, and
// tears the context down, all while holding the single-test mutex (§4.6
// steps 2b-2f).
func (r *TestRun) runOne(ctx context.Context, test CompiledTest, anyFocused bool) Result {
	singleTestMutex.Lock()
	defer singleTestMutex.Unlock()

	establishContext(test.FullName, ctx)
	defer func() {
		spies.ClearAll()
		clearContext()
	}()

	switch {
	case test.IsExcluded:
		return Result{Test: test, Outcome: Skipped, SkipReason: "excluded"}
	case anyFocused && !test.IsFocused:
		return Result{Test: test, Outcome: Skipped, SkipReason: "not focused"}
	}

	start := time.Now()
	failure := runCascade(ctx, test)
	duration := time.Since(start)

	rt := Current()
	if failure != nil {
		rt.Log(innermostCause(failure).Error())
	} else {
		rt.Log("Test completed successfully.")
	}

	outcome := Passed
	if failure != nil {
		outcome = Failed
	}

	if outcome == Passed && echoOutputOnSuccess() {
		logger.Debug("jaz: test passed", "test", test.FullName, "output", rt.ctx.output.String())
	}

	return Result{
		Test:     test,
		Outcome:  outcome,
		Output:   rt.ctx.output.String(),
		Error:    failure,
		Duration: duration,
	}
}

// runCascade plays before_cascade, the test body, and after_cascade, per
// §4.6 step e. The Open Question in §9 ("partial after-cascade on
// failure") is resolved here as jasmine-style always-run-pair, at whole-
// cascade granularity: every BeforeAll/BeforeEach hook that was reached
// stops the remaining before-stages on its first failure, but the
// complete after_cascade (every registered AfterEach, then every
// registered AfterAll for describes this test exits) always runs
// regardless of where, or whether, a before-stage failed.
func runCascade(ctx context.Context, test CompiledTest) error {
	var failure error

	runStage := func(hooks []Body) bool {
		if failure != nil {
			return false
		}
		for _, h := range hooks {
			if err := invokeHook(ctx, h); err != nil {
				failure = classifyBodyError(err)
				return false
			}
		}
		return true
	}

	if runStage(flattenDescribeHooks(test.enterDescribes, func(d *specNode) []Body { return d.beforeAll })) {
		if runStage(test.beforeCascade) {
			if err := invokeBody(ctx, test.Body); err != nil {
				failure = classifyBodyError(err)
			}
		}
	}

	var teardownErr error
	for _, h := range test.afterCascade {
		if err := invokeHook(ctx, h); err != nil {
			teardownErr = multierr.Append(teardownErr, err)
		}
	}
	for _, h := range flattenDescribeHooks(test.exitDescribes, func(d *specNode) []Body { return d.afterAll }) {
		if err := invokeHook(ctx, h); err != nil {
			teardownErr = multierr.Append(teardownErr, err)
		}
	}

	if teardownErr != nil {
		teardownErr = classifyBodyError(teardownErr)
		if failure == nil {
			failure = teardownErr
		} else {
			failure = classifyBodyError(multierr.Append(failure, teardownErr))
		}
	}

	return failure
}

// invokeHook wraps invokeBody with the configured DefaultHookTimeout
// (config.go), for BeforeEach/AfterEach/BeforeAll/AfterAll hooks only -
// the test body itself runs under the caller's ctx unmodified.
func invokeHook(ctx context.Context, hook Body) error {
	if timeout := hookTimeoutEnabled(); timeout > 0 {
		if _, hasDeadline := ctx.Deadline(); !hasDeadline {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
	}
	return invokeBody(ctx, hook)
}

// invokeBody runs a hook or test body and recovers a panicked
// *AssertionFailure into a regular error return, so the sibling expect
// package's matchers can stop the current body immediately (a matcher
// "always terminates the current test body", §7) by panicking rather than
// every test author having to thread a returned error through manually.
// Any other panic is treated like an ordinary error, wrapped as UserError
// downstream by classifyBodyError.
func invokeBody(ctx context.Context, body Body) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if af, ok := r.(*AssertionFailure); ok {
				err = af
				return
			}
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	return body(ctx)
}

// flattenDescribeHooks collects the hooks select returns for each describe
// in nodes, in the order nodes is given (enterDescribes is outer-to-inner,
// exitDescribes is inner-to-outer; see compile.go).
func flattenDescribeHooks(nodes []*specNode, selectHooks func(*specNode) []Body) []Body {
	var hooks []Body
	for _, d := range nodes {
		hooks = append(hooks, selectHooks(d)...)
	}
	return hooks
}

// classifyBodyError maps a raw error from a hook or test body onto the
// §7 error kinds: an AssertionFailure is passed through unchanged (it's
// already its own dedicated kind and always means Failed), anything else
// - including UnexpectedSpyCall and SpyInternal raised by a spy call
// within the body - is wrapped as UserError, matching §7's "errors in the
// interception hook itself (SpyInternal) propagate to the test as
// UserError".
func classifyBodyError(err error) error {
	var af *AssertionFailure
	if errors.As(err, &af) {
		return err
	}
	return &UserError{Cause: err}
}
