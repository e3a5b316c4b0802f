package jaz

import (
	"context"

	"github.com/emrekara37/jaz-go/internal/hook"
)

// Body is a hook or test body. It is called with a context.Context so
// asynchronous work can be cancelled; synchronous bodies may ignore it.
// See internal/hook for the Sync/Async unification this is built on.
type Body = hook.Body

// Sync adapts a plain, synchronous function into a Body.
func Sync(f func()) Body {
	return func(context.Context) error {
		f()
		return nil
	}
}

// SyncErr adapts a synchronous function that can fail into a Body.
func SyncErr(f func() error) Body {
	return func(context.Context) error { return f() }
}

// Async adapts a function that reports completion on a channel into a
// Body; the executor awaits it like any other body.
func Async(f func(ctx context.Context, done chan<- error)) Body {
	return hook.Async(f)
}

// Modifier narrows which tests in a run actually execute. Exclusion
// dominates focus: an excluded test is skipped even if it, or an
// ancestor describe, is also focused.
type Modifier uint8

const (
	ModifierNone Modifier = iota
	ModifierFocused
	ModifierExcluded
)

type nodeKind uint8

const (
	kindDescribe nodeKind = iota
	kindTest
)

// specNode is a single node of the tree built during construction. Only
// Describe (and the implicit root) carries children and hooks; only Test
// is a leaf target. Hooks attach to the nearest enclosing Describe.
type specNode struct {
	kind     nodeKind
	name     string
	modifier Modifier
	body     Body

	children []*specNode

	beforeEach []Body
	afterEach  []Body
	beforeAll  []Body
	afterAll   []Body
}

// Suite captures nested describe/it/before.../after... registrations
// during a construction phase: no body runs while the tree is being
// built. Call Compile once construction is complete to obtain the flat,
// ordered list of tests the executor runs.
type Suite struct {
	root  *specNode
	stack []*specNode
}

// NewSuite creates an empty suite ready for describe/it registration.
func NewSuite() *Suite {
	root := &specNode{kind: kindDescribe}
	return &Suite{root: root, stack: []*specNode{root}}
}

func (s *Suite) current() *specNode { return s.stack[len(s.stack)-1] }

// Describe registers a named grouping of tests and nested describes.
// Registrations made inside body attach to the new describe.
func (s *Suite) Describe(name string, body func()) { s.describe(name, ModifierNone, body) }

// FDescribe registers a focused describe: if any test in the run is
// focused, every test outside a focused describe/it is skipped.
func (s *Suite) FDescribe(name string, body func()) { s.describe(name, ModifierFocused, body) }

// XDescribe registers an excluded describe: every test nested within it
// is skipped, regardless of focus.
func (s *Suite) XDescribe(name string, body func()) { s.describe(name, ModifierExcluded, body) }

func (s *Suite) describe(name string, mod Modifier, body func()) {
	node := &specNode{kind: kindDescribe, name: name, modifier: mod}

	parent := s.current()
	parent.children = append(parent.children, node)

	s.stack = append(s.stack, node)
	body()
	s.stack = s.stack[:len(s.stack)-1]
}

// It registers a leaf test under the current describe.
func (s *Suite) It(name string, body Body) { s.it(name, ModifierNone, body) }

// FIt registers a focused test.
func (s *Suite) FIt(name string, body Body) { s.it(name, ModifierFocused, body) }

// XIt registers an excluded (skipped) test.
func (s *Suite) XIt(name string, body Body) { s.it(name, ModifierExcluded, body) }

func (s *Suite) it(name string, mod Modifier, body Body) {
	node := &specNode{kind: kindTest, name: name, modifier: mod, body: body}
	parent := s.current()
	parent.children = append(parent.children, node)
}

// BeforeEach attaches a hook that runs before every test registered
// directly in, or nested below, the current describe. Hooks registered
// earlier run earlier in the before cascade (see compile.go).
func (s *Suite) BeforeEach(body Body) {
	d := s.current()
	d.beforeEach = append(d.beforeEach, body)
}

// AfterEach attaches a hook that runs after every test registered
// directly in, or nested below, the current describe. In the after
// cascade, a nested describe's hooks run before its parent's; within one
// describe, hooks run in the order they were registered (see compile.go).
func (s *Suite) AfterEach(body Body) {
	d := s.current()
	d.afterEach = append(d.afterEach, body)
}

// BeforeAll attaches a hook that runs once, before the first test of the
// current describe's block (including nested describes) runs.
func (s *Suite) BeforeAll(body Body) {
	d := s.current()
	d.beforeAll = append(d.beforeAll, body)
}

// AfterAll attaches a hook that runs once, after the last test of the
// current describe's block (including nested describes) has run.
func (s *Suite) AfterAll(body Body) {
	d := s.current()
	d.afterAll = append(d.afterAll, body)
}

// BeforeAfterEach attaches a combined setup/teardown hook: f runs before
// each test like BeforeEach, and the teardown closure it returns runs
// after like AfterEach. Equivalent to calling BeforeEach and AfterEach
// separately but keeps a setup/teardown pair declared in one place, which
// reads better for spy installation/disposal. Modelled on testcase.Spec's
// Around hook. If f returns a non-nil error, no teardown runs.
func (s *Suite) BeforeAfterEach(f func(ctx context.Context) (teardown func(context.Context) error, err error)) {
	var teardown func(context.Context) error

	s.BeforeEach(func(ctx context.Context) error {
		td, err := f(ctx)
		if err != nil {
			return err
		}
		teardown = td
		return nil
	})

	s.AfterEach(func(ctx context.Context) error {
		if teardown == nil {
			return nil
		}
		td := teardown
		teardown = nil
		return td(ctx)
	})
}
