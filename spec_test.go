package jaz

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_Suite_tree_shape(t *testing.T) {
	s := NewSuite()

	var order []string
	s.Describe("outer", func() {
		s.BeforeEach(Sync(func() { order = append(order, "outer-before") }))
		s.It("leaf one", Sync(func() {}))

		s.Describe("inner", func() {
			s.It("leaf two", Sync(func() {}))
		})
	})

	require.Len(t, s.root.children, 1)
	outer := s.root.children[0]
	require.Equal(t, "outer", outer.name)
	require.Len(t, outer.beforeEach, 1)
	require.Len(t, outer.children, 2)
	require.Equal(t, kindTest, outer.children[0].kind)
	require.Equal(t, kindDescribe, outer.children[1].kind)
	require.Equal(t, "inner", outer.children[1].name)
}

func Test_Suite_modifiers(t *testing.T) {
	s := NewSuite()

	s.FDescribe("focused group", func() {
		s.It("regular", Sync(func() {}))
	})
	s.XDescribe("excluded group", func() {
		s.FIt("focused but excluded", Sync(func() {}))
	})
	s.XIt("excluded leaf", Sync(func() {}))

	require.Equal(t, ModifierFocused, s.root.children[0].modifier)
	require.Equal(t, ModifierExcluded, s.root.children[1].modifier)
	require.Equal(t, ModifierFocused, s.root.children[1].children[0].modifier)
	require.Equal(t, ModifierExcluded, s.root.children[2].modifier)
}

func Test_Suite_stack_unwinds_after_describe(t *testing.T) {
	s := NewSuite()

	s.Describe("a", func() {
		s.Describe("b", func() {})
	})
	s.BeforeEach(Sync(func() {}))

	require.Same(t, s.root, s.current())
	require.Len(t, s.root.beforeEach, 1)
}

func Test_Suite_BeforeAfterEach_runs_setup_and_matching_teardown(t *testing.T) {
	s := NewSuite()

	var trace []string
	s.Describe("group", func() {
		s.BeforeAfterEach(func(context.Context) (func(context.Context) error, error) {
			trace = append(trace, "setup")
			return func(context.Context) error {
				trace = append(trace, "teardown")
				return nil
			}, nil
		})
		s.It("t1", Sync(func() { trace = append(trace, "t1") }))
		s.It("t2", Sync(func() { trace = append(trace, "t2") }))
	})

	results, err := NewRun(Compile(s)).Execute(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 2)
	require.Equal(t, Passed, results[0].Outcome)
	require.Equal(t, Passed, results[1].Outcome)
	require.Equal(t, []string{"setup", "t1", "teardown", "setup", "t2", "teardown"}, trace)
}

func Test_Suite_BeforeAfterEach_skips_teardown_on_setup_error(t *testing.T) {
	s := NewSuite()

	var teardownRan bool
	s.Describe("group", func() {
		s.BeforeAfterEach(func(context.Context) (func(context.Context) error, error) {
			return func(context.Context) error {
				teardownRan = true
				return nil
			}, errors.New("setup failed")
		})
		s.It("t1", Sync(func() {}))
	})

	results, err := NewRun(Compile(s)).Execute(context.Background())
	require.NoError(t, err)
	require.Equal(t, Failed, results[0].Outcome)
	require.False(t, teardownRan)
}

func Test_Sync_SyncErr_Async(t *testing.T) {
	t.Run("Sync never errors", func(t *testing.T) {
		called := false
		body := Sync(func() { called = true })
		require.NoError(t, body(context.Background()))
		require.True(t, called)
	})

	t.Run("SyncErr propagates the error", func(t *testing.T) {
		boom := errors.New("boom")
		body := SyncErr(func() error { return boom })
		require.ErrorIs(t, body(context.Background()), boom)
	})

	t.Run("Async awaits completion", func(t *testing.T) {
		body := Async(func(_ context.Context, done chan<- error) {
			done <- nil
		})
		require.NoError(t, body(context.Background()))
	})

	t.Run("Async honours cancellation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		body := Async(func(ctx context.Context, done chan<- error) {
			<-ctx.Done()
		})
		require.ErrorIs(t, body(ctx), context.Canceled)
	})
}
