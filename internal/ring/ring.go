// Package ring defines the arithmetic capabilities a value type must provide
// to be usable with a compiled convolution plan, together with adapters for
// common concrete types. The plan compiler itself never performs arithmetic;
// every operation of a compiled plan is dispatched through a Ring at
// execution time, so any type with addition, subtraction and multiplication
// can be convolved without the compiler knowing about it.
package ring

import "math/bits"

// Ring describes the operations a compiled plan needs from a value type.
// Implementations must treat values as immutable: every operation returns a
// fresh value (or a value that is never mutated afterwards), so the same
// plan can run concurrently from multiple goroutines.
type Ring[T any] interface {
	// Zero returns the additive identity.
	Zero() T
	// Add returns a + b.
	Add(a, b T) T
	// Sub returns a - b.
	Sub(a, b T) T
	// Neg returns -a.
	Neg(a T) T
	// Mul returns a * b.
	Mul(a, b T) T
}

// Int64 is the Ring over Go's native int64. Overflow wraps, as native
// integer arithmetic does.
type Int64 struct{}

// Zero returns 0.
func (Int64) Zero() int64 { return 0 }

// Add returns a + b.
func (Int64) Add(a, b int64) int64 { return a + b }

// Sub returns a - b.
func (Int64) Sub(a, b int64) int64 { return a - b }

// Neg returns -a.
func (Int64) Neg(a int64) int64 { return -a }

// Mul returns a * b.
func (Int64) Mul(a, b int64) int64 { return a * b }

// Mod64 is the Ring of integers modulo a fixed modulus. Operands must be
// reduced (< Modulus); results are always reduced. The full 128-bit product
// is reduced with bits.Mul64/Div64, so any modulus up to 2^64-1 works.
type Mod64 struct {
	// Modulus is the ring modulus. Must be non-zero.
	Modulus uint64
}

// Zero returns 0.
func (Mod64) Zero() uint64 { return 0 }

// Add returns (a + b) mod Modulus.
func (r Mod64) Add(a, b uint64) uint64 {
	s := a + b
	if s < a || s >= r.Modulus {
		s -= r.Modulus
	}
	return s
}

// Sub returns (a - b) mod Modulus.
func (r Mod64) Sub(a, b uint64) uint64 {
	if a >= b {
		return a - b
	}
	return a + (r.Modulus - b)
}

// Neg returns (-a) mod Modulus.
func (r Mod64) Neg(a uint64) uint64 {
	if a == 0 {
		return 0
	}
	return r.Modulus - a
}

// Mul returns (a * b) mod Modulus.
func (r Mod64) Mul(a, b uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	_, rem := bits.Div64(hi, lo, r.Modulus)
	return rem
}
