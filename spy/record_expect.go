package spy

import gocmp "github.com/google/go-cmp/cmp"

// ignoreArgType is a private marker type, mirroring the teacher's
// spyTestingTRecordIgnoreParam: a sentinel callers place in an expected
// CallRecord's Args to mean "don't compare this parameter".
type ignoreArgType uint

// IgnoreArg is placed in an expected CallRecord's Args to skip comparing
// that position, for calls whose parameters are unpredictable (a
// timestamp, a generated ID) or simply irrelevant to what's being
// asserted.
const IgnoreArg = ignoreArgType(42)

// seemsEqualTo compares two CallRecords the way ExpectCalls needs:
// same length, each position equal unless either side is IgnoreArg.
// Adapted from the teacher's double.SpyTestingTRecord.seemsEqualTo,
// generalised from "one fixed Method name" to a pure parameter-tuple
// comparison (the spied method is already fixed, since a Spy only ever
// records calls to itself).
func (c CallRecord) seemsEqualTo(other CallRecord) bool {
	if len(c.Args) != len(other.Args) {
		return false
	}

	for i := range c.Args {
		_, aIgnored := c.Args[i].(ignoreArgType)
		_, bIgnored := other.Args[i].(ignoreArgType)
		if aIgnored || bIgnored {
			continue
		}
		if !gocmp.Equal(c.Args[i], other.Args[i]) {
			return false
		}
	}

	return true
}

// ExpectCalls reports whether the spy's call log matches expected, in
// order, honouring IgnoreArg markers. Alongside ok it returns a go-cmp
// diff of actual against expected for logging on failure, and an empty
// string on success. It does not fail a test itself; the caller decides
// what to do with ok.
func (s *Spy) ExpectCalls(expected ...CallRecord) (ok bool, diff string) {
	actual := s.Calls()

	opts := []gocmp.Option{gocmp.Comparer(func(a, b CallRecord) bool { return a.seemsEqualTo(b) })}

	if d := gocmp.Diff(actual, expected, opts...); d != "" {
		return false, d
	}
	return true, ""
}

// CallCount reports how many times the spy has been invoked.
func (s *Spy) CallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}
