package spy

import "sync"

// CallRecord is one entry of a spy's call log: the parameter tuple the
// dispatcher observed for a single invocation (§3 call_log). For
// instance-bound methods, Args[0] is the receiver.
type CallRecord struct {
	Args []any
}

// Spy is the observable stand-in installed over a method or function:
// `{ method_id, instance_key, call_log, behaviours }` per §3. At most one
// Spy exists per (MethodID, instance_key) at any time - Registry.Create
// disposes of any previous one.
type Spy struct {
	mu sync.Mutex

	methodID    MethodID
	instanceKey any
	registry    *Registry

	calls    []CallRecord
	queue    []*Behaviour
	disposed bool
}

func newSpy(id MethodID, instanceKey any, r *Registry) *Spy {
	return &Spy{
		methodID:    id,
		instanceKey: instanceKey,
		registry:    r,
		queue:       []*Behaviour{defaultBehaviour()},
	}
}

// MethodID returns the spy's canonicalised target.
func (s *Spy) MethodID() MethodID { return s.methodID }

// InstanceKey returns the receiver key the spy is bound to, or Static.
func (s *Spy) InstanceKey() any { return s.instanceKey }

// Disposed reports whether the spy has been removed from its registry,
// either explicitly via Dispose or implicitly by a second Create on the
// same (MethodID, instance_key).
func (s *Spy) Disposed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.disposed
}

// Calls returns an immutable snapshot of the call log (§4.1 calls()).
func (s *Spy) Calls() []CallRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]CallRecord, len(s.calls))
	copy(out, s.calls)
	return out
}

// Dispose removes this spy from its registry; the underlying function
// reverts to call-through.
func (s *Spy) Dispose() { s.registry.Dispose(s) }

// Enqueue appends a configured Behaviour to the back of the queue. The
// infinite Default a spy is seeded with only stands in until a behaviour
// is configured: while it is the sole entry, Enqueue replaces it.
func (s *Spy) Enqueue(b *Behaviour) *Spy {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.queue) == 1 && s.queue[0].kind == BehaviourDefault && s.queue[0].lifetime == infiniteLifetime {
		s.queue = s.queue[:0]
	}
	s.queue = append(s.queue, b)
	return s
}

// And exists only so configuration chains can read the way spec.md §4.1
// writes them: spy.And().Returns(v).
func (s *Spy) And() *Spy { return s }

// Returns enqueues a behaviour that returns values for the next call (or
// Times(n) calls if chained).
func (s *Spy) Returns(values ...any) *Behaviour {
	b := Returns(values...)
	s.Enqueue(b)
	return b
}

// Throws enqueues a behaviour that raises err for the next call.
func (s *Spy) Throws(err error) *Behaviour {
	b := Throws(err)
	s.Enqueue(b)
	return b
}

// CallsFake enqueues a behaviour that invokes fn for the next call.
func (s *Spy) CallsFake(fn FakeFunc) *Behaviour {
	b := InvokeFake(fn)
	s.Enqueue(b)
	return b
}

// CallsThrough enqueues a behaviour that calls the original
// implementation for the next call.
func (s *Spy) CallsThrough() *Behaviour {
	b := CallThrough()
	s.Enqueue(b)
	return b
}

// ReturnsDefault enqueues an infinite-lifetime behaviour that returns the
// zero value of the method's declared result type, same as the one every
// spy starts with.
func (s *Spy) ReturnsDefault() *Behaviour {
	b := defaultBehaviour()
	s.Enqueue(b)
	return b
}

// record appends args to the call log; only the dispatcher calls this.
func (s *Spy) record(args []any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, CallRecord{Args: append([]any{}, args...)})
}

// front returns the behaviour at the head of the queue without removing
// it, so the dispatcher can execute it before deciding whether it was
// consumed.
func (s *Spy) front() (*Behaviour, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.queue) == 0 {
		return nil, false
	}
	return s.queue[0], true
}

// consumeFront decrements the front behaviour's lifetime and dequeues it
// once that reaches zero (§3 "after executing, lifetime decrements").
func (s *Spy) consumeFront() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.queue) == 0 {
		return
	}

	b := s.queue[0]
	if b.lifetime == infiniteLifetime {
		return
	}

	b.lifetime--
	if b.lifetime <= 0 {
		s.queue = s.queue[1:]
	}
}

// QueueLen reports how many behaviours remain queued, for tests that
// assert on queue draining directly instead of through observed calls.
func (s *Spy) QueueLen() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue)
}
