package spy

import (
	"fmt"
	"reflect"
)

// UnexpectedCallError is raised when a spy is invoked but its behaviour
// queue is empty (§4.1, §7 UnexpectedSpyCall).
type UnexpectedCallError struct{ MethodID MethodID }

func (e *UnexpectedCallError) Error() string {
	return fmt.Sprintf("unexpected spy call: %s has no remaining behaviour", e.MethodID)
}

// InternalError is raised when the dispatcher cannot recover the original
// method identity, or another invariant is violated (§7 SpyInternal).
type InternalError struct {
	Reason string
	Cause  error
}

func (e *InternalError) Error() string { return "spy internal error: " + e.Reason }
func (e *InternalError) Unwrap() error { return e.Cause }

func newInternalError(cause error) *InternalError {
	return &InternalError{Reason: cause.Error(), Cause: cause}
}

// NullReceiverError is raised when an instance-bound call arrives with a
// nil receiver (§4.2 step 2).
type NullReceiverError struct{ MethodID MethodID }

func (e *NullReceiverError) Error() string {
	return fmt.Sprintf("spy: nil receiver for instance method %s", e.MethodID)
}

//nolint:gochecknoglobals // reflect.Type of the error interface, computed once
var errType = reflect.TypeOf((*error)(nil)).Elem()

// Dispatcher is the single entry point every intercepted call funnels
// through (§4.2). It is agnostic to how interception is installed; the
// external "interception hook installer" (§9) only needs to call Handle
// with the original method, its kind, and the full argument list,
// including the receiver first for instance-bound calls.
type Dispatcher struct {
	registry *Registry
}

// NewDispatcher builds a dispatcher backed by registry.
func NewDispatcher(registry *Registry) *Dispatcher {
	return &Dispatcher{registry: registry}
}

// Handle resolves original's MethodID, looks up a spy for it, and either
// calls through or executes the spy's front behaviour - the five-step
// algorithm of §4.2.
//
// original must be a reflect-callable function value: a plain func for
// MethodKind Static, or a method expression (T.Method, not a bound method
// value) for MethodKind Instance, since then args[0] must be the
// receiver.
func (d *Dispatcher) Handle(kind MethodKind, original any, args []any) ([]any, error) {
	name, err := canonicalize(original)
	if err != nil {
		return nil, newInternalError(err)
	}
	id := MethodID{name: name, kind: kind}

	instanceKey := Static
	if kind == KindInstance {
		if len(args) == 0 {
			return nil, &NullReceiverError{MethodID: id}
		}
		if args[0] == nil || isNilValue(args[0]) {
			return nil, &NullReceiverError{MethodID: id}
		}

		instanceKey, err = InstanceKeyOf(args[0])
		if err != nil {
			return nil, newInternalError(err)
		}
	}

	s, ok := d.registry.Get(id, instanceKey)
	if !ok {
		return callThrough(original, args)
	}

	s.record(args)

	behaviour, ok := s.front()
	if !ok {
		if fallback := d.registry.defaultBehaviourFor(id); fallback != nil {
			return execute(fallback, original, args)
		}
		return nil, &UnexpectedCallError{MethodID: id}
	}
	defer s.consumeFront()

	return execute(behaviour, original, args)
}

func execute(b *Behaviour, original any, args []any) ([]any, error) {
	switch b.kind {
	case BehaviourCallThrough:
		return callThrough(original, args)
	case BehaviourReturns:
		return b.values, nil
	case BehaviourThrows:
		return zeroResults(original), b.err
	case BehaviourInvokeFake:
		return b.fake(args)
	case BehaviourDefault:
		return zeroResults(original), nil
	default:
		return nil, newInternalError(fmt.Errorf("unknown behaviour kind %d", b.kind))
	}
}

// callThrough invokes the original implementation with args (§4.3
// CallThrough); it's also what happens when no spy is installed at all
// (§4.2 step 4).
func callThrough(original any, args []any) ([]any, error) {
	v := reflect.ValueOf(original)
	t := v.Type()

	in := make([]reflect.Value, len(args))
	for i, a := range args {
		if a == nil {
			in[i] = reflect.Zero(t.In(i))
			continue
		}
		in[i] = reflect.ValueOf(a)
	}

	out := v.Call(in)
	return toResults(t, out)
}

// toResults converts the reflect.Values Call returned into a plain []any,
// and - the stack-preserving rethrow §9 asks for - surfaces a non-nil
// trailing error result as Handle's own error return as well, so
// call-through callers can check `err != nil` without picking it out of
// results themselves.
func toResults(t reflect.Type, out []reflect.Value) ([]any, error) {
	results := make([]any, len(out))
	for i, v := range out {
		results[i] = v.Interface()
	}

	if n := t.NumOut(); n > 0 && t.Out(n-1) == errType {
		if err, _ := results[n-1].(error); err != nil {
			return results, err
		}
	}

	return results, nil
}

// zeroResults produces the type-appropriate default for each of
// original's declared return values (§4.3 Default): numeric zero, nil for
// slices/maps/chans/pointers/interfaces/funcs, empty string, false.
func zeroResults(original any) []any {
	t := reflect.TypeOf(original)
	out := make([]any, t.NumOut())
	for i := range out {
		out[i] = reflect.Zero(t.Out(i)).Interface()
	}
	return out
}

func isNilValue(v any) bool {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func:
		return rv.IsNil()
	default:
		return false
	}
}
