package spy

// BehaviourKind enumerates what a queued Behaviour does when its turn to
// execute comes up (§4.3).
type BehaviourKind uint8

const (
	BehaviourCallThrough BehaviourKind = iota
	BehaviourReturns
	BehaviourThrows
	BehaviourInvokeFake
	BehaviourDefault
)

// infiniteLifetime marks a Behaviour that is never dequeued on its own:
// the Default behaviour seeded at spy construction (§3), or one
// configured explicitly with Forever / ReturnsDefault.
const infiniteLifetime = -1

// FakeFunc is the shape an InvokeFake behaviour's substitute must take:
// it receives the logical call arguments (including the receiver first,
// for instance-bound calls) and returns the logical results.
type FakeFunc func(args []any) ([]any, error)

// Behaviour is one element of a spy's FIFO queue: what a future call
// should do, and for how many calls (§3). Behaviours are constructed with
// CallThrough/Returns/Throws/InvokeFake and configured with Times/Forever
// before being handed to Spy.Enqueue, or more conveniently via the Spy's
// own fluent methods.
type Behaviour struct {
	kind     BehaviourKind
	values   []any
	err      error
	fake     FakeFunc
	lifetime int
}

// CallThrough builds a behaviour that invokes the original implementation.
func CallThrough() *Behaviour { return &Behaviour{kind: BehaviourCallThrough, lifetime: 1} }

// Returns builds a behaviour that returns the given values without
// invoking the original implementation.
func Returns(values ...any) *Behaviour {
	return &Behaviour{kind: BehaviourReturns, values: values, lifetime: 1}
}

// Throws builds a behaviour that raises err instead of returning.
func Throws(err error) *Behaviour {
	return &Behaviour{kind: BehaviourThrows, err: err, lifetime: 1}
}

// InvokeFake builds a behaviour that calls fn with the same parameters;
// fn's return value or error becomes the call's result.
func InvokeFake(fn FakeFunc) *Behaviour {
	return &Behaviour{kind: BehaviourInvokeFake, fake: fn, lifetime: 1}
}

// defaultBehaviour builds the infinite-lifetime Default behaviour every
// new spy is seeded with, and the one ReturnsDefault re-enqueues.
func defaultBehaviour() *Behaviour {
	return &Behaviour{kind: BehaviourDefault, lifetime: infiniteLifetime}
}

// Times sets how many calls this behaviour applies to before it's
// dequeued. The constructors above default it to 1.
func (b *Behaviour) Times(n int) *Behaviour {
	b.lifetime = n
	return b
}

// Forever gives this behaviour an infinite lifetime: once it reaches the
// front of the queue it is never dequeued, so behaviours queued after it
// are not reached.
func (b *Behaviour) Forever() *Behaviour {
	b.lifetime = infiniteLifetime
	return b
}

// remainingLifetime reports the behaviour's current lifetime counter, for
// tests and introspection. A value < 0 means infinite.
func (b *Behaviour) remainingLifetime() int { return b.lifetime }
