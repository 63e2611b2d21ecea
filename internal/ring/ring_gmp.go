//go:build gmp

// This file provides a GMP-backed ring, conditionally compiled with the
// "gmp" build tag. The build tag architecture ensures that:
//   - Projects can build without GMP (the default, using math/big)
//   - GMP support is opt-in, requiring: go build -tags=gmp
//   - The codebase remains portable across systems without libgmp installed
//
// System Requirements for GMP:
//   - Linux: sudo apt-get install libgmp-dev (Debian/Ubuntu)
//   - macOS: brew install gmp
//   - Windows: Requires MinGW or WSL with libgmp

package ring

import "github.com/ncw/gmp"

// GMP is the Ring over *gmp.Int, backed by the GNU multiple precision
// library. Convolutions over very large integers benefit from GMP's
// assembly-optimized arithmetic; for small operands the CGO call overhead
// makes BigInt faster.
type GMP struct{}

// Zero returns a fresh zero.
func (GMP) Zero() *gmp.Int { return new(gmp.Int) }

// Add returns a + b.
func (GMP) Add(a, b *gmp.Int) *gmp.Int { return new(gmp.Int).Add(a, b) }

// Sub returns a - b.
func (GMP) Sub(a, b *gmp.Int) *gmp.Int { return new(gmp.Int).Sub(a, b) }

// Neg returns -a.
func (GMP) Neg(a *gmp.Int) *gmp.Int { return new(gmp.Int).Neg(a) }

// Mul returns a * b.
func (GMP) Mul(a, b *gmp.Int) *gmp.Int { return new(gmp.Int).Mul(a, b) }
