package ring

import "math/big"

// BigInt is the Ring over *big.Int (arbitrary precision integers).
// Every operation allocates a fresh value and never mutates its operands,
// which keeps compiled plans safe for concurrent execution.
type BigInt struct{}

// Zero returns a fresh zero.
func (BigInt) Zero() *big.Int { return new(big.Int) }

// Add returns a + b.
func (BigInt) Add(a, b *big.Int) *big.Int { return new(big.Int).Add(a, b) }

// Sub returns a - b.
func (BigInt) Sub(a, b *big.Int) *big.Int { return new(big.Int).Sub(a, b) }

// Neg returns -a.
func (BigInt) Neg(a *big.Int) *big.Int { return new(big.Int).Neg(a) }

// Mul returns a * b.
func (BigInt) Mul(a, b *big.Int) *big.Int { return new(big.Int).Mul(a, b) }

// BigRat is the Ring over *big.Rat (arbitrary precision rationals).
type BigRat struct{}

// Zero returns a fresh zero.
func (BigRat) Zero() *big.Rat { return new(big.Rat) }

// Add returns a + b.
func (BigRat) Add(a, b *big.Rat) *big.Rat { return new(big.Rat).Add(a, b) }

// Sub returns a - b.
func (BigRat) Sub(a, b *big.Rat) *big.Rat { return new(big.Rat).Sub(a, b) }

// Neg returns -a.
func (BigRat) Neg(a *big.Rat) *big.Rat { return new(big.Rat).Neg(a) }

// Mul returns a * b.
func (BigRat) Mul(a, b *big.Rat) *big.Rat { return new(big.Rat).Mul(a, b) }
