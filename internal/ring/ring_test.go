package ring

import (
	"math/big"
	"testing"

	apperrors "github.com/agbru/convplan/internal/errors"
)

func TestInt64Ring(t *testing.T) {
	t.Parallel()
	r := Int64{}
	if got := r.Add(2, 3); got != 5 {
		t.Errorf("Add(2,3) = %d, want 5", got)
	}
	if got := r.Sub(2, 3); got != -1 {
		t.Errorf("Sub(2,3) = %d, want -1", got)
	}
	if got := r.Neg(7); got != -7 {
		t.Errorf("Neg(7) = %d, want -7", got)
	}
	if got := r.Mul(-4, 3); got != -12 {
		t.Errorf("Mul(-4,3) = %d, want -12", got)
	}
	if got := r.Zero(); got != 0 {
		t.Errorf("Zero() = %d, want 0", got)
	}
}

func TestMod64Ring(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		modulus uint64
	}{
		{"small prime", 97},
		{"32-bit prime", 4294967291},
		{"large prime above 2^63", 18446744073709551557},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := Mod64{Modulus: tt.modulus}
			m := new(big.Int).SetUint64(tt.modulus)

			a := tt.modulus - 3
			b := tt.modulus - 9
			bigA := new(big.Int).SetUint64(a)
			bigB := new(big.Int).SetUint64(b)

			wantAdd := new(big.Int).Add(bigA, bigB)
			wantAdd.Mod(wantAdd, m)
			if got := r.Add(a, b); got != wantAdd.Uint64() {
				t.Errorf("Add = %d, want %s", got, wantAdd)
			}

			wantMul := new(big.Int).Mul(bigA, bigB)
			wantMul.Mod(wantMul, m)
			if got := r.Mul(a, b); got != wantMul.Uint64() {
				t.Errorf("Mul = %d, want %s", got, wantMul)
			}

			if got := r.Sub(3, 9); got != tt.modulus-6 {
				t.Errorf("Sub(3,9) = %d, want %d", got, tt.modulus-6)
			}
			if got := r.Neg(0); got != 0 {
				t.Errorf("Neg(0) = %d, want 0", got)
			}
			if got := r.Add(r.Neg(5), 5); got != 0 {
				t.Errorf("Neg(5)+5 = %d, want 0", got)
			}
		})
	}
}

func TestBigIntRingDoesNotMutateOperands(t *testing.T) {
	t.Parallel()
	r := BigInt{}
	a := big.NewInt(10)
	b := big.NewInt(4)
	got := r.Sub(a, b)
	if got.Int64() != 6 {
		t.Errorf("Sub = %s, want 6", got)
	}
	if a.Int64() != 10 || b.Int64() != 4 {
		t.Errorf("operands mutated: a=%s b=%s", a, b)
	}
}

func TestBigRatRing(t *testing.T) {
	t.Parallel()
	r := BigRat{}
	half := big.NewRat(1, 2)
	third := big.NewRat(1, 3)
	got := r.Add(half, third)
	if got.Cmp(big.NewRat(5, 6)) != 0 {
		t.Errorf("1/2 + 1/3 = %s, want 5/6", got)
	}
	if got := r.Mul(half, third); got.Cmp(big.NewRat(1, 6)) != 0 {
		t.Errorf("1/2 * 1/3 = %s, want 1/6", got)
	}
}

func TestDynamicRing(t *testing.T) {
	t.Parallel()
	r := Dynamic{}
	if got := r.Mul(int64(6), int64(7)); got != int64(42) {
		t.Errorf("Mul(6,7) = %v, want 42", got)
	}
	got := r.Add(big.NewInt(1), big.NewInt(2))
	if got.(*big.Int).Int64() != 3 {
		t.Errorf("Add(1,2) = %v, want 3", got)
	}
}

func TestDynamicRingUnsupported(t *testing.T) {
	t.Parallel()
	defer func() {
		rec := recover()
		if rec == nil {
			t.Fatal("expected panic on unsupported operand")
		}
		opErr, ok := rec.(apperrors.UnsupportedOperationError)
		if !ok {
			t.Fatalf("panic value %T, want UnsupportedOperationError", rec)
		}
		if opErr.Op != "mul" {
			t.Errorf("Op = %q, want \"mul\"", opErr.Op)
		}
	}()
	Dynamic{}.Mul("not a number", int64(2))
}

func TestCountingRing(t *testing.T) {
	t.Parallel()
	c := NewCounting[int64](Int64{})
	c.Mul(2, 3)
	c.Add(1, 1)
	c.Add(1, 2)
	c.Sub(5, 2)
	c.Neg(9)

	want := OpCounts{Adds: 2, Subs: 1, Negs: 1, Muls: 1}
	if c.Counts != want {
		t.Errorf("Counts = %+v, want %+v", c.Counts, want)
	}
	if c.Counts.Total() != 5 {
		t.Errorf("Total() = %d, want 5", c.Counts.Total())
	}

	c.Reset()
	if c.Counts.Total() != 0 {
		t.Errorf("after Reset Total() = %d, want 0", c.Counts.Total())
	}
}
