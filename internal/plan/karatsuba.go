package plan

import "golang.org/x/sync/errgroup"

// DefaultBaseThreshold is the input size at or below which the builder emits
// the direct schoolbook convolution instead of splitting. The optimal value
// is workload-dependent; 1 reproduces the classic fully recursive Karatsuba
// construction and gives the minimal multiplication count.
const DefaultBaseThreshold = 1

// MaxParallelDepth limits the depth of parallel recursion to avoid excessive
// goroutine creation: each level spawns up to three concurrent sub-builds.
const MaxParallelDepth = 3

// builder constructs the full, unpruned convolution expression tree over an
// arena. It performs no arithmetic and discards nothing; sharing and pruning
// are the optimizer's job.
type builder struct {
	a    *arena
	base int
}

// conv returns the expression ids of the convolution of u and v, both of
// length n (a power of two). The returned slice has length 2n; its last
// entry is always the zero node, so the 2n-1 convolution degrees are the
// leading entries.
//
// The recursion follows the subtractive Karatsuba split: with u = lo1 +
// hi1·x^m and v = lo2 + hi2·x^m,
//
//	X = hi1*hi2, Y = lo1*lo2, Z = (hi1-lo1)*(hi2-lo2)
//	u*v = Y + (X + Y - Z)·x^m + X·x^2m
//
// trading the fourth half-size multiplication for additions. depth bounds
// how many more levels may fan the three independent sub-builds out to
// goroutines; at and below zero the build is sequential.
func (b *builder) conv(u, v []int, depth int) []int {
	n := len(u)
	if n <= b.base {
		return b.schoolbook(u, v)
	}
	m := n / 2
	lo1, hi1 := u[:m], u[m:]
	lo2, hi2 := v[:m], v[m:]

	// Half-difference sequences are built before the recursive calls so that
	// sequential and parallel builds lay out identical arenas.
	su := b.seqSub(hi1, lo1)
	sv := b.seqSub(hi2, lo2)

	var x, y, z []int
	if depth > 0 {
		x, y, z = b.convTriple(hi1, hi2, lo1, lo2, su, sv, depth)
	} else {
		x = b.conv(hi1, hi2, 0)
		y = b.conv(lo1, lo2, 0)
		z = b.conv(su, sv, 0)
	}

	out := make([]int, 2*n)
	copy(out[:m], y[:m])
	for j := 0; j < n; j++ {
		// The middle band overlaps y's upper half for j < m and x's lower
		// half afterwards; both slices only have length 2m, so the index must
		// stay on its own branch.
		var mid int
		if j < m {
			mid = y[m+j]
		} else {
			mid = x[j-m]
		}
		out[m+j] = b.a.sum(
			term{id: mid},
			term{id: x[j]},
			term{id: y[j]},
			term{neg: true, id: z[j]},
		)
	}
	copy(out[m+n:], x[m:])
	return out
}

// convTriple builds the three half-size sub-convolutions concurrently, each
// into its own arena, then merges them back in a fixed order so the result
// is independent of goroutine scheduling.
func (b *builder) convTriple(hi1, hi2, lo1, lo2, su, sv []int, depth int) (x, y, z []int) {
	type subBuild struct {
		b    *builder
		u, v []int
		out  []int
	}
	mk := func(u, v []int) *subBuild {
		cb := &builder{a: newArena(), base: b.base}
		return &subBuild{b: cb, u: cb.a.importLeaves(u), v: cb.a.importLeaves(v)}
	}
	subs := [3]*subBuild{mk(hi1, hi2), mk(lo1, lo2), mk(su, sv)}

	g := new(errgroup.Group)
	for _, s := range subs {
		g.Go(func() error {
			s.out = s.b.conv(s.u, s.v, depth-1)
			return nil
		})
	}
	// The sub-builds are pure tree construction and cannot fail.
	_ = g.Wait()

	x = b.a.merge(subs[0].b.a, subs[0].out)
	y = b.a.merge(subs[1].b.a, subs[1].out)
	z = b.a.merge(subs[2].b.a, subs[2].out)
	return x, y, z
}

// schoolbook emits the direct double-sum convolution for the base case:
// out[k] = sum over valid i of u[i]*v[k-i]. The result is padded to length
// 2n with a trailing zero to match the recursive case.
func (b *builder) schoolbook(u, v []int) []int {
	n := len(u)
	out := make([]int, 2*n)
	for k := 0; k <= 2*n-2; k++ {
		lo := k - n + 1
		if lo < 0 {
			lo = 0
		}
		hi := k
		if hi > n-1 {
			hi = n - 1
		}
		ts := make([]term, 0, hi-lo+1)
		for i := lo; i <= hi; i++ {
			ts = append(ts, term{id: b.a.product(u[i], v[k-i])})
		}
		out[k] = b.a.sum(ts...)
	}
	out[2*n-1] = zeroID
	return out
}

// seqSub returns the element-wise difference x-y of two id sequences.
func (b *builder) seqSub(x, y []int) []int {
	out := make([]int, len(x))
	for i := range x {
		out[i] = b.a.sub(x[i], y[i])
	}
	return out
}
