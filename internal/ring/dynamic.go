package ring

import (
	"fmt"
	"math/big"

	apperrors "github.com/agbru/convplan/internal/errors"
)

// Dynamic is a Ring over untyped values, dispatching on the concrete type of
// its operands at every operation. It supports int64 and *big.Int operands
// (never mixed within one operation). It exists for callers that only learn
// their value type at run time; statically typed callers should use one of
// the concrete rings instead.
//
// An operation on an unsupported operand type panics with
// apperrors.UnsupportedOperationError. The panic propagates through plan
// execution unchanged, mirroring how a dynamic language would surface a
// missing operator.
type Dynamic struct{}

// Zero returns the int64 zero. The builder eliminates zero operands from
// every instruction, so this value only ever appears as a standalone output
// of an all-hole degree, never as an operand.
func (Dynamic) Zero() any { return int64(0) }

func unsupported(op string, v any) apperrors.UnsupportedOperationError {
	return apperrors.UnsupportedOperationError{Op: op, Operand: fmt.Sprintf("%T", v)}
}

// Add returns a + b.
func (Dynamic) Add(a, b any) any {
	switch x := a.(type) {
	case int64:
		if y, ok := b.(int64); ok {
			return x + y
		}
	case *big.Int:
		if y, ok := b.(*big.Int); ok {
			return new(big.Int).Add(x, y)
		}
	default:
		panic(unsupported("add", a))
	}
	panic(unsupported("add", b))
}

// Sub returns a - b.
func (Dynamic) Sub(a, b any) any {
	switch x := a.(type) {
	case int64:
		if y, ok := b.(int64); ok {
			return x - y
		}
	case *big.Int:
		if y, ok := b.(*big.Int); ok {
			return new(big.Int).Sub(x, y)
		}
	default:
		panic(unsupported("sub", a))
	}
	panic(unsupported("sub", b))
}

// Neg returns -a.
func (Dynamic) Neg(a any) any {
	switch x := a.(type) {
	case int64:
		return -x
	case *big.Int:
		return new(big.Int).Neg(x)
	default:
		panic(unsupported("neg", a))
	}
}

// Mul returns a * b.
func (Dynamic) Mul(a, b any) any {
	switch x := a.(type) {
	case int64:
		if y, ok := b.(int64); ok {
			return x * y
		}
	case *big.Int:
		if y, ok := b.(*big.Int); ok {
			return new(big.Int).Mul(x, y)
		}
	default:
		panic(unsupported("mul", a))
	}
	panic(unsupported("mul", b))
}
