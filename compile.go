package jaz

import "strings"

// nameSeparator joins enclosing describe names and the test name into a
// CompiledTest's FullName.
const nameSeparator = " "

// CompiledTest is a single leaf test paired with the exact hook cascade
// its lexical position implies. The test compiler (Compile) produces an
// ordered, immutable list of these; the executor runs them in order.
type CompiledTest struct {
	FullName string
	Body     Body

	IsFocused  bool
	IsExcluded bool

	beforeCascade []Body
	afterCascade  []Body

	enterDescribes []*specNode // outer-to-inner: BeforeAll hooks run in this order
	exitDescribes  []*specNode // inner-to-outer: AfterAll hooks run in this order
}

// describeSpan tracks, for a given describe node, the index range (in the
// flattened test list) of tests nested under it. Because Compile walks the
// tree depth-first, every describe's tests form a contiguous range.
type describeSpan struct {
	node       *specNode
	firstIndex int
	lastIndex  int
}

// Compile walks the suite's tree depth-first and emits the ordered list of
// leaf tests, computing each one's full name, hook cascade, and
// focus/exclude flags. Compiling the same suite twice yields identical
// results: Compile reads the tree but never mutates it.
func Compile(s *Suite) []CompiledTest {
	var (
		tests []CompiledTest
		// ancestors-per-test, parallel to tests, used in the post-pass
		// that computes describe spans for BeforeAll/AfterAll.
		ancestorsPerTest [][]*specNode
	)

	var walk func(node *specNode, ancestors []*specNode, names []string, focused, excluded bool)
	walk = func(node *specNode, ancestors []*specNode, names []string, focused, excluded bool) {
		focused = focused || node.modifier == ModifierFocused
		excluded = excluded || node.modifier == ModifierExcluded

		switch node.kind {
		case kindTest:
			ct := CompiledTest{
				FullName:      strings.Join(append(append([]string{}, names...), node.name), nameSeparator),
				Body:          node.body,
				IsFocused:     focused,
				IsExcluded:    excluded,
				beforeCascade: flattenBeforeEach(ancestors),
				afterCascade:  flattenAfterEach(ancestors),
			}
			tests = append(tests, ct)
			ancestorsPerTest = append(ancestorsPerTest, ancestors)

		case kindDescribe:
			childAncestors := append(append([]*specNode{}, ancestors...), node)
			childNames := names
			if node.name != "" {
				childNames = append(append([]string{}, names...), node.name)
			}
			for _, child := range node.children {
				walk(child, childAncestors, childNames, focused, excluded)
			}
		}
	}

	walk(s.root, nil, nil, false, false)

	// post-pass: compute each describe's [firstIndex, lastIndex] span, then
	// assign enter/exit describes to the tests at those boundaries.
	spans := make(map[*specNode]*describeSpan)
	for i, ancestors := range ancestorsPerTest {
		for _, d := range ancestors {
			span, ok := spans[d]
			if !ok {
				span = &describeSpan{node: d, firstIndex: i, lastIndex: i}
				spans[d] = span
			}
			if i < span.firstIndex {
				span.firstIndex = i
			}
			if i > span.lastIndex {
				span.lastIndex = i
			}
		}
	}

	for i, ancestors := range ancestorsPerTest {
		// ancestors is outer-to-inner; entering describes must run BeforeAll
		// outer-first, exiting describes must run AfterAll inner-first.
		for _, d := range ancestors {
			if spans[d].firstIndex == i {
				tests[i].enterDescribes = append(tests[i].enterDescribes, d)
			}
		}
		for j := len(ancestors) - 1; j >= 0; j-- {
			d := ancestors[j]
			if spans[d].lastIndex == i {
				tests[i].exitDescribes = append(tests[i].exitDescribes, d)
			}
		}
	}

	return tests
}

// flattenBeforeEach concatenates, outer-to-inner, every ancestor
// describe's BeforeEach hooks, preserving registration order within each
// describe.
func flattenBeforeEach(ancestors []*specNode) []Body {
	var hooks []Body
	for _, d := range ancestors {
		hooks = append(hooks, d.beforeEach...)
	}
	return hooks
}

// flattenAfterEach concatenates, inner-to-outer, every ancestor describe's
// AfterEach hooks, preserving registration order within each describe.
func flattenAfterEach(ancestors []*specNode) []Body {
	var hooks []Body
	for i := len(ancestors) - 1; i >= 0; i-- {
		hooks = append(hooks, ancestors[i].afterEach...)
	}
	return hooks
}
