// Package spy implements the process-wide spy registry, FIFO behaviour
// queue, and invocation dispatcher described in spec.md §4.1-§4.3: it lets
// a test replace any named function or method, for the duration of a
// test, with an observable stand-in that records every call and can be
// programmed to return fixed values, throw, call through, or invoke a
// substitute.
//
// Go reflection cannot rewrite a call site the way the source's bytecode
// rewriter does (see spec.md §9): jaz treats that as an external
// "interception hook installer" and only implements the registry,
// behaviour queue and dispatcher. Code under test opts in by routing its
// calls through Dispatcher.Handle, typically via a method-expression field
// the production implementation already exposes for testability.
package spy

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"runtime"
)

// MethodKind distinguishes an instance method - whose first logical
// argument is always the receiver (§4.2 step 2) - from a static or free
// function. Go's reflection cannot tell these apart from a bare function
// value alone, so the caller states which one it means.
type MethodKind uint8

const (
	KindStatic MethodKind = iota
	KindInstance
)

func (k MethodKind) String() string {
	if k == KindInstance {
		return "instance"
	}
	return "static"
}

// MethodID is the stable key spec.md §3 calls the "root definition": the
// declaring type's original, non-generic, non-overridden method. Two
// MethodIDs derived from the same logical method are equal regardless of
// which generic instantiation produced the reflect.Value, so all registry
// operations can canonicalise to it.
type MethodID struct {
	name string
	kind MethodKind
}

func (id MethodID) String() string { return id.name }

// Kind reports whether id identifies an instance method or a static
// function.
func (id MethodID) Kind() MethodKind { return id.kind }

//nolint:gochecknoglobals // compiled once, used read-only by canonicalize
var (
	genericInstantiationSuffix = regexp.MustCompile(`\[.*\]$`)
	boundMethodValueSuffix     = regexp.MustCompile(`-fm$`)
)

// canonicalize derives the root definition name for fn: a plain function,
// a method expression (T.Method), or a bound method value. Generic
// instantiation suffixes (func[int], func[string]) and the "-fm" suffix
// the runtime appends to bound method values are stripped, so a spy
// created on one instantiation or binding matches calls coming through
// another, per §3's "independent of generic instantiation or virtual
// overriding" requirement.
func canonicalize(fn any) (string, error) {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func {
		return "", fmt.Errorf("%T is not a function or method expression", fn)
	}

	rf := runtime.FuncForPC(v.Pointer())
	if rf == nil {
		return "", errors.New("unable to resolve function for program counter")
	}

	name := rf.Name()
	name = boundMethodValueSuffix.ReplaceAllString(name, "")
	name = genericInstantiationSuffix.ReplaceAllString(name, "")

	return name, nil
}

// InstanceMethod derives the MethodID of an instance method. Pass a
// method expression, e.g. (*Repo).Save rather than repo.Save: a method
// expression's first parameter is always the receiver, matching how
// Dispatcher.Handle expects args to be laid out for instance-bound calls.
func InstanceMethod(methodExpr any) (MethodID, error) {
	name, err := canonicalize(methodExpr)
	if err != nil {
		return MethodID{}, fmt.Errorf("spy: unable to derive instance method id: %w", err)
	}
	return MethodID{name: name, kind: KindInstance}, nil
}

// StaticFunc derives the MethodID of a free function or a static method.
func StaticFunc(fn any) (MethodID, error) {
	name, err := canonicalize(fn)
	if err != nil {
		return MethodID{}, fmt.Errorf("spy: unable to derive static method id: %w", err)
	}
	return MethodID{name: name, kind: KindStatic}, nil
}

// InstanceKeyOf derives the stable instance_key for a receiver (§3):
// pointers, channels, funcs and unsafe pointers key on their runtime
// identity; other comparable values key on themselves. Receivers whose
// type is not comparable (e.g. a struct embedding a slice) cannot be used
// as a map key and are rejected with an explanation.
func InstanceKeyOf(receiver any) (any, error) {
	if receiver == nil {
		return nil, errors.New("spy: receiver must not be nil")
	}

	v := reflect.ValueOf(receiver)
	switch v.Kind() {
	case reflect.Ptr, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return v.Pointer(), nil
	}

	if !v.Type().Comparable() {
		return nil, fmt.Errorf("spy: receiver of type %s is not comparable, spy on a pointer receiver instead", v.Type())
	}

	return receiver, nil
}
