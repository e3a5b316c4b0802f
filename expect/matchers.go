package expect

import (
	"context"
	"errors"
	"fmt"
	"time"

	gocmp "github.com/google/go-cmp/cmp"

	jaz "github.com/emrekara37/jaz-go"
)

// Equal raises jaz.AssertionFailure if got and want differ structurally,
// reporting a go-cmp diff. Adapted from the teacher's check.Compare,
// reshaped from "(TestingT, bool, string)" to panic-on-mismatch.
func Equal[T any](got, want T, opts ...gocmp.Option) {
	if diff := gocmp.Diff(got, want, opts...); diff != "" {
		failWithMessage("comparison differs: \n" + diff)
	}
}

// Zero raises jaz.AssertionFailure if v is not the zero value of its
// type. Adapted from the teacher's check.ZeroValue.
func Zero[T comparable](v T) {
	var zero T
	if v != zero {
		failWithMessage(fmt.Sprintf("expected %v (%T's zero value), got %v", zero, v, v))
	}
}

// Not inverts a matcher call: it raises jaz.AssertionFailure if the
// wrapped matcher call does NOT fail.
//
//	expect.Not(func() { expect.Equal(got, want) })
//
// Adapted from the teacher's check.Not, reshaped for panic-based
// matchers: rather than negating a returned bool, it recovers the
// AssertionFailure the wrapped call would have raised and turns its
// absence into a failure of its own.
func Not(matcher func()) {
	failed := false

	func() {
		defer func() {
			r := recover()
			if r == nil {
				return
			}
			if _, ok := r.(*jaz.AssertionFailure); ok {
				failed = true
				return
			}
			panic(r)
		}()
		matcher()
	}()

	if !failed {
		failWithMessage("expected the wrapped matcher to fail, but it passed")
	}
}

// Panics raises jaz.AssertionFailure unless f panics. If assertReason is
// given, it additionally gets to reject the recovered value by returning
// a non-nil error. Adapted from the teacher's check.Panics.
func Panics(f func(), assertReason func(reason any) error) {
	if f == nil {
		failWithMessage("function to test for panic must not be nil")
		return
	}

	reason := func() (r any) {
		defer func() { r = recover() }()
		f()
		return nil
	}()

	if reason == nil {
		failWithMessage("expected function to panic")
		return
	}

	if assertReason != nil {
		if err := assertReason(reason); err != nil {
			failWithMessage(fmt.Sprintf("function panicked like expected, but reason assertion failed: %v", err))
		}
	}
}

// Eventually repeatedly runs check until it returns nil or ctx expires,
// raising jaz.AssertionFailure on expiry. Adapted near verbatim from the
// teacher's check.Eventually, reshaped to panic instead of returning
// (TestingT, bool, string).
func Eventually(ctx context.Context, check func(context.Context) error, timeBetweenRetries time.Duration) {
	startedAt := time.Now()
	ticker := time.NewTimer(0)
	tryC := make(chan struct{}, 1)

	var (
		errs    [2]error
		retries uint
	)

	for {
		select {
		case <-ctx.Done():
			failWithMessage(fmt.Sprintf(
				"check did not pass in %s with %d retries and now context is expired, last two errors: %s",
				time.Since(startedAt).String(), retries, errors.Join(errs[0], errs[1]),
			))
			return

		case <-tryC:
			if err := check(ctx); err != nil {
				errs[retries%2] = err
			} else {
				return
			}

			retries++
			ticker.Reset(timeBetweenRetries)

		case <-ticker.C:
			select {
			case tryC <- struct{}{}:
			default:
			}
		}
	}
}
