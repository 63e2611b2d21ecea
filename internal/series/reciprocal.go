// Package series computes reciprocals of formal power series by Newton
// doubling on top of compiled convolution plans. It is the canonical
// consumer of masked plans: every doubling step compiles (or fetches from
// the cache) plans that compute only the newly determined high-order
// coefficients, so all arithmetic feeding unwanted degrees is pruned away.
package series

import (
	"context"

	apperrors "github.com/agbru/convplan/internal/errors"
	"github.com/agbru/convplan/internal/logging"
	"github.com/agbru/convplan/internal/plan"
	"github.com/agbru/convplan/internal/plancache"
	"github.com/agbru/convplan/internal/ring"
)

// Inverter computes power-series reciprocals over a fixed ring, reusing
// compiled plans through a shared cache across calls.
type Inverter[T any] struct {
	ring  ring.Ring[T]
	cache *plancache.Cache
	opts  plan.Options
	log   logging.Logger
}

// InverterOption configures an Inverter during construction.
type InverterOption[T any] func(*Inverter[T])

// WithCache sets a shared plan cache. Without it the inverter owns a
// private cache with the default configuration.
func WithCache[T any](c *plancache.Cache) InverterOption[T] {
	return func(iv *Inverter[T]) { iv.cache = c }
}

// WithPlanOptions sets the compilation options used for every plan.
func WithPlanOptions[T any](opts plan.Options) InverterOption[T] {
	return func(iv *Inverter[T]) { iv.opts = opts }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger[T any](log logging.Logger) InverterOption[T] {
	return func(iv *Inverter[T]) { iv.log = log }
}

// NewInverter creates an Inverter over the given ring.
func NewInverter[T any](r ring.Ring[T], opts ...InverterOption[T]) *Inverter[T] {
	iv := &Inverter[T]{ring: r, log: logging.Nop{}}
	for _, opt := range opts {
		opt(iv)
	}
	if iv.cache == nil {
		iv.cache = plancache.New(plancache.DefaultConfig())
	}
	return iv
}

// Reciprocal returns the first n coefficients of the series b with
// a·b = 1. The ring has no division, so the caller supplies a0Inv, the
// multiplicative inverse of a[0]; coefficients of a beyond len(a) are
// treated as zero.
//
// Each Newton doubling step k -> 2k determines the k new coefficients
//
//	b[k+i] = -(b · c)[i],  c[i] = (a · b)[k+i],  0 <= i < k
//
// using two masked plans: one selecting only the k high-order degrees of
// a·b, one selecting only the k low-order degrees of b·c.
func (iv *Inverter[T]) Reciprocal(ctx context.Context, a []T, a0Inv T, n int) ([]T, error) {
	if n <= 0 {
		return nil, apperrors.NewConfigError("reciprocal length must be positive, got %d", n)
	}
	if len(a) == 0 {
		return nil, apperrors.NewConfigError("reciprocal of an empty series")
	}

	b := make([]T, 1, n)
	b[0] = a0Inv

	for k := 1; len(b) < n; k *= 2 {
		c, err := iv.highProduct(ctx, a, b, k)
		if err != nil {
			return nil, err
		}
		d, err := iv.lowProduct(ctx, b, c, k)
		if err != nil {
			return nil, err
		}
		for i := 0; i < k && len(b) < n; i++ {
			b = append(b, iv.ring.Neg(d[i]))
		}
		iv.log.Debug("doubling step done",
			logging.Int("k", k),
			logging.Int("coefficients", len(b)))
	}
	return b, nil
}

// highProduct returns c[i] = (a·b)[k+i] for 0 <= i < k, where b has exactly
// k known coefficients. The plan pads a and b with holes and masks away all
// degrees except the k wanted high ones.
func (iv *Inverter[T]) highProduct(ctx context.Context, a, b []T, k int) ([]T, error) {
	size := 2 * k
	idxA := make([]int, size)
	for i := range idxA {
		if i < len(a) {
			idxA[i] = i
		} else {
			idxA[i] = plan.Hole
		}
	}
	idxB := make([]int, size)
	for i := range idxB {
		if i < k {
			idxB[i] = i
		} else {
			idxB[i] = plan.Hole
		}
	}
	mask := make([]bool, 2*size-1)
	for d := k; d < 2*k; d++ {
		mask[d] = true
	}
	p, err := iv.cache.GetOrCompile(ctx, plan.Request{Idx1: idxA, Idx2: idxB, Mask: mask}, iv.opts)
	if err != nil {
		return nil, apperrors.WrapError(err, "compiling high-product plan for k=%d", k)
	}
	return plan.Execute(p, iv.ring, a, b), nil
}

// lowProduct returns d[i] = (b·c)[i] for 0 <= i < k, masking away the upper
// half of the product.
func (iv *Inverter[T]) lowProduct(ctx context.Context, b, c []T, k int) ([]T, error) {
	mask := make([]bool, 2*k-1)
	for d := 0; d < k; d++ {
		mask[d] = true
	}
	p, err := iv.cache.GetOrCompile(ctx, plan.Request{Idx1: plan.Identity(k), Idx2: plan.Identity(k), Mask: mask}, iv.opts)
	if err != nil {
		return nil, apperrors.WrapError(err, "compiling low-product plan for k=%d", k)
	}
	return plan.Execute(p, iv.ring, b, c), nil
}
