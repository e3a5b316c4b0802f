package spy

import "sync"

// Static is the sentinel instance_key used for spies on static or free
// functions, which have no receiver to key on (§3).
//
//nolint:gochecknoglobals // a single unique sentinel value, never mutated
var Static any = new(struct{})

type spyKey struct {
	method   MethodID
	instance any
}

// Registry is the process-wide table of active spies keyed by
// (method_id, instance_key) (§4.1). The jaz package keeps one
// process-wide instance and clears it after each test; Dispatcher.Handle
// consults it on every intercepted call.
type Registry struct {
	mu    sync.Mutex
	spies map[spyKey]*Spy

	defaultBehaviour func(MethodID) *Behaviour
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{spies: make(map[spyKey]*Spy)}
}

// Create uses id as given (InstanceMethod and StaticFunc already build it
// from the root definition) and, disposing of any existing spy for
// (id, instanceKey), installs and returns a new one seeded with a single
// infinite Default behaviour (§4.1 create).
func (r *Registry) Create(id MethodID, instanceKey any) *Spy {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := spyKey{method: id, instance: instanceKey}

	if existing, ok := r.spies[key]; ok {
		existing.mu.Lock()
		existing.disposed = true
		existing.mu.Unlock()
	}

	s := newSpy(id, instanceKey, r)
	r.spies[key] = s
	return s
}

// Get returns the spy installed for (id, instanceKey), if any (§4.1 get).
func (r *Registry) Get(id MethodID, instanceKey any) (*Spy, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.spies[spyKey{method: id, instance: instanceKey}]
	return s, ok
}

// Dispose removes s from the registry; a subsequent call to its target
// reverts to call-through (§4.1 dispose). Disposing a spy that has
// already been replaced by a later Create on the same key is a no-op.
func (r *Registry) Dispose(s *Spy) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := spyKey{method: s.methodID, instance: s.instanceKey}
	if cur, ok := r.spies[key]; ok && cur == s {
		delete(r.spies, key)
	}

	s.mu.Lock()
	s.disposed = true
	s.mu.Unlock()
}

// ClearAll removes every spy from the registry (§4.1 clear_all). The
// executor calls this between tests and at teardown; calling it twice in
// a row is equivalent to calling it once.
func (r *Registry) ClearAll() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, s := range r.spies {
		s.mu.Lock()
		s.disposed = true
		s.mu.Unlock()
	}
	r.spies = make(map[spyKey]*Spy)
}

// Len reports how many spies are currently installed, mostly useful for
// asserting ClearAll actually emptied the registry.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.spies)
}

// SetDefaultBehaviour opts the registry into a softer failure mode than
// UnexpectedCallError when a spy's queue runs dry: behaviourFor is
// consulted for a fallback Behaviour before the dispatcher gives up.
// Grounded on godouble's TestDouble.SetDefaultCall (see DESIGN.md); off by
// default, so §4.1's documented UnexpectedSpyCall failure is unchanged
// unless a caller opts in.
func (r *Registry) SetDefaultBehaviour(behaviourFor func(MethodID) *Behaviour) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.defaultBehaviour = behaviourFor
}

func (r *Registry) defaultBehaviourFor(id MethodID) *Behaviour {
	r.mu.Lock()
	f := r.defaultBehaviour
	r.mu.Unlock()

	if f == nil {
		return nil
	}
	return f(id)
}
