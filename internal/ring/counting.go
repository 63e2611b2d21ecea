package ring

// OpCounts holds the number of ring operations performed through a Counting
// ring.
type OpCounts struct {
	Adds int
	Subs int
	Negs int
	Muls int
}

// Total returns the total number of counted operations.
func (c OpCounts) Total() int { return c.Adds + c.Subs + c.Negs + c.Muls }

// Counting decorates another Ring and counts every operation dispatched
// through it. It is used in tests and benchmarks to verify that a plan
// executes exactly the operations it emitted, and by callers that want to
// measure the arithmetic cost of a plan on real data.
//
// The counters are plain integers; a single Counting instance must not be
// shared across concurrently running plan executions.
type Counting[T any] struct {
	Inner  Ring[T]
	Counts OpCounts
}

// NewCounting wraps inner in a counting decorator.
func NewCounting[T any](inner Ring[T]) *Counting[T] {
	return &Counting[T]{Inner: inner}
}

// Reset clears the counters.
func (c *Counting[T]) Reset() { c.Counts = OpCounts{} }

// Zero returns the inner ring's zero. Zero materialization is not counted;
// it performs no arithmetic.
func (c *Counting[T]) Zero() T { return c.Inner.Zero() }

// Add returns a + b and increments the add counter.
func (c *Counting[T]) Add(a, b T) T {
	c.Counts.Adds++
	return c.Inner.Add(a, b)
}

// Sub returns a - b and increments the sub counter.
func (c *Counting[T]) Sub(a, b T) T {
	c.Counts.Subs++
	return c.Inner.Sub(a, b)
}

// Neg returns -a and increments the neg counter.
func (c *Counting[T]) Neg(a T) T {
	c.Counts.Negs++
	return c.Inner.Neg(a)
}

// Mul returns a * b and increments the mul counter.
func (c *Counting[T]) Mul(a, b T) T {
	c.Counts.Muls++
	return c.Inner.Mul(a, b)
}
