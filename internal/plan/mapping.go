package plan

import (
	"math/bits"

	apperrors "github.com/agbru/convplan/internal/errors"
)

// Hole marks an index entry as absent. The builder treats the corresponding
// input position as the ring's additive identity, so non-power-of-two
// problem sizes can be expressed by padding with holes.
const Hole = -1

// Request describes one plan compilation: the two index mappings and the
// optional output mask.
type Request struct {
	// Idx1 and Idx2 map each position of the symbolic input sequences to a
	// slot of the corresponding runtime sequence, or Hole. Both must have
	// the same length, which must be a power of two.
	Idx1, Idx2 []int

	// Mask selects which output degrees the plan computes. Position k is
	// true iff the coefficient of degree k is wanted. Must have length
	// 2*len(Idx1)-1; nil means all degrees.
	Mask []bool
}

// Identity returns the index mapping [0, 1, ..., n-1].
func Identity(n int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return idx
}

// normalize validates the request shape and returns the effective mask.
// All violations are reported as apperrors.ConfigError; nothing about the
// runtime sequences themselves is checked here.
func (r Request) normalize() ([]bool, error) {
	n := len(r.Idx1)
	if n == 0 {
		return nil, apperrors.NewConfigError("index sequences must not be empty")
	}
	if len(r.Idx2) != n {
		return nil, apperrors.NewConfigError(
			"index sequences have different lengths: %d vs %d", n, len(r.Idx2))
	}
	if bits.OnesCount(uint(n)) != 1 {
		return nil, apperrors.NewConfigError("index length %d is not a power of two", n)
	}
	for _, idx := range [2][]int{r.Idx1, r.Idx2} {
		for i, v := range idx {
			if v < 0 && v != Hole {
				return nil, apperrors.NewConfigError(
					"index entry %d at position %d is neither a position nor a hole", v, i)
			}
		}
	}
	if r.Mask == nil {
		mask := make([]bool, 2*n-1)
		for i := range mask {
			mask[i] = true
		}
		return mask, nil
	}
	if len(r.Mask) != 2*n-1 {
		return nil, apperrors.NewConfigError(
			"mask has length %d, want 2N-1 = %d", len(r.Mask), 2*n-1)
	}
	mask := make([]bool, len(r.Mask))
	copy(mask, r.Mask)
	return mask, nil
}

// leaves resolves one index mapping into arena leaves: an input reference
// per mapped position and the shared zero per hole.
func leaves(a *arena, side Side, idx []int) []int {
	out := make([]int, len(idx))
	for i, v := range idx {
		if v == Hole {
			out[i] = zeroID
			continue
		}
		out[i] = a.input(side, v)
	}
	return out
}
