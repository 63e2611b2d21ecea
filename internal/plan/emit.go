package plan

import (
	"fmt"
	"strings"

	"github.com/agbru/convplan/internal/ring"
)

// OpCode identifies the ring operation performed by one instruction.
type OpCode uint8

const (
	// OpMul computes Dst = A * B.
	OpMul OpCode = iota
	// OpAdd computes Dst = A + B.
	OpAdd
	// OpSub computes Dst = A - B.
	OpSub
	// OpNeg computes Dst = -A. B is unused.
	OpNeg
)

// Src identifies where an operand value is read from.
type Src uint8

const (
	// SrcU reads from the first runtime input sequence.
	SrcU Src = iota
	// SrcV reads from the second runtime input sequence.
	SrcV
	// SrcTmp reads a scratch slot written by an earlier instruction.
	SrcTmp
	// SrcZero is the ring's additive identity. It never appears as an
	// instruction operand (the builder eliminates zeros); it only encodes
	// outputs whose degree is entirely made of holes.
	SrcZero
)

// Operand addresses one input of an instruction or one plan output.
type Operand struct {
	Src   Src
	Index int
}

// Instruction is one step of a compiled plan: an op-code plus operand slots,
// interpreted by a small fixed evaluator loop at execution time.
type Instruction struct {
	Op  OpCode
	Dst int
	A   Operand
	B   Operand
}

// Stats counts the ring operations a plan performs per execution.
type Stats struct {
	Muls int
	Adds int
	Subs int
	Negs int
}

// Total returns the total arithmetic operation count.
func (s Stats) Total() int { return s.Muls + s.Adds + s.Subs + s.Negs }

// Plan is the compiled artifact: an ordered instruction sequence plus the
// metadata needed to run it. A Plan is immutable after compilation and holds
// no mutable state, so it may be executed concurrently from any number of
// goroutines.
type Plan struct {
	n       int
	idx1    []int
	idx2    []int
	mask    []bool
	code    []Instruction
	tmps    int
	outputs []Operand
	degrees []int
	stats   Stats
}

// N returns the input length the plan was compiled for.
func (p *Plan) N() int { return p.n }

// Mask returns a copy of the effective output mask.
func (p *Plan) Mask() []bool {
	mask := make([]bool, len(p.mask))
	copy(mask, p.mask)
	return mask
}

// OutputDegrees returns the convolution degrees the plan computes, in the
// order Execute returns them (ascending).
func (p *Plan) OutputDegrees() []int {
	degrees := make([]int, len(p.degrees))
	copy(degrees, p.degrees)
	return degrees
}

// Instructions returns a copy of the instruction sequence.
func (p *Plan) Instructions() []Instruction {
	code := make([]Instruction, len(p.code))
	copy(code, p.code)
	return code
}

// Temps returns the number of scratch slots an execution allocates.
func (p *Plan) Temps() int { return p.tmps }

// Stats returns the per-execution ring operation counts.
func (p *Plan) Stats() Stats { return p.stats }

// emit linearizes the optimized DAG into the plan's instruction sequence.
// The arena's ascending id order is already topological (operands precede
// their parents), so emission is a single forward walk; the ascending-id
// tie-break keeps the order deterministic. Sum nodes are lowered to a chain
// of binary instructions accumulating into the node's scratch slot.
func emit(a *arena, outputs, degrees []int) ([]Instruction, int, []Operand, Stats) {
	slot := make([]int, len(a.nodes))
	var code []Instruction
	var stats Stats
	tmps := 0

	operand := func(id int) Operand {
		n := a.nodes[id]
		switch n.kind {
		case kindZero:
			return Operand{Src: SrcZero}
		case kindInput:
			if n.side == SideU {
				return Operand{Src: SrcU, Index: n.index}
			}
			return Operand{Src: SrcV, Index: n.index}
		default:
			return Operand{Src: SrcTmp, Index: slot[id]}
		}
	}

	for id := 1; id < len(a.nodes); id++ {
		n := a.nodes[id]
		switch n.kind {
		case kindProduct:
			dst := tmps
			tmps++
			slot[id] = dst
			code = append(code, Instruction{Op: OpMul, Dst: dst, A: operand(n.left), B: operand(n.right)})
			stats.Muls++
		case kindSum:
			dst := tmps
			tmps++
			slot[id] = dst
			acc := Operand{Src: SrcTmp, Index: dst}
			next := 0
			if n.terms[0].neg {
				code = append(code, Instruction{Op: OpNeg, Dst: dst, A: operand(n.terms[0].id)})
				stats.Negs++
				next = 1
			} else if len(n.terms) == 1 {
				// A canonical sum has at least two terms or a leading
				// negation; a lone positive term was collapsed at build time.
				panic("plan: sum node with a single positive term")
			} else {
				first := n.terms[1]
				op := OpAdd
				if first.neg {
					op = OpSub
					stats.Subs++
				} else {
					stats.Adds++
				}
				code = append(code, Instruction{Op: op, Dst: dst, A: operand(n.terms[0].id), B: operand(first.id)})
				next = 2
			}
			for _, t := range n.terms[next:] {
				op := OpAdd
				if t.neg {
					op = OpSub
					stats.Subs++
				} else {
					stats.Adds++
				}
				code = append(code, Instruction{Op: op, Dst: dst, A: acc, B: operand(t.id)})
			}
		}
	}

	outs := make([]Operand, len(outputs))
	for i, id := range outputs {
		outs[i] = operand(id)
	}
	return code, tmps, outs, stats
}

// Execute runs the compiled plan over two runtime sequences using the
// supplied ring and returns one value per mask-true output degree, in
// ascending degree order.
//
// Each invocation is a pure function of its arguments: it allocates its own
// scratch slots and mutates nothing shared, so the same plan can execute
// concurrently. The sequences must be long enough to satisfy every index the
// plan's mappings reference; a short sequence fails with the runtime's own
// bounds error. Ring failures propagate unchanged.
func Execute[T any](p *Plan, r ring.Ring[T], u, v []T) []T {
	executionsTotal.Inc()
	tmp := make([]T, p.tmps)
	fetch := func(o Operand) T {
		switch o.Src {
		case SrcU:
			return u[o.Index]
		case SrcV:
			return v[o.Index]
		case SrcTmp:
			return tmp[o.Index]
		default:
			return r.Zero()
		}
	}
	for _, ins := range p.code {
		switch ins.Op {
		case OpMul:
			tmp[ins.Dst] = r.Mul(fetch(ins.A), fetch(ins.B))
		case OpAdd:
			tmp[ins.Dst] = r.Add(fetch(ins.A), fetch(ins.B))
		case OpSub:
			tmp[ins.Dst] = r.Sub(fetch(ins.A), fetch(ins.B))
		case OpNeg:
			tmp[ins.Dst] = r.Neg(fetch(ins.A))
		}
	}
	out := make([]T, len(p.outputs))
	for i, o := range p.outputs {
		out[i] = fetch(o)
	}
	return out
}

// Source renders the instruction sequence as a human-readable program,
// semantically identical to what Execute runs. It is a debugging and
// inspection aid, not an alternate execution path; it is also how tests
// verify that identical requests compile to identical plans.
func (p *Plan) Source() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "// convolution plan: n=%d, %d of %d outputs, %d temps\n",
		p.n, len(p.outputs), 2*p.n-1, p.tmps)
	for _, ins := range p.code {
		switch ins.Op {
		case OpMul:
			fmt.Fprintf(&sb, "t%d = %s * %s\n", ins.Dst, ins.A, ins.B)
		case OpAdd:
			fmt.Fprintf(&sb, "t%d = %s + %s\n", ins.Dst, ins.A, ins.B)
		case OpSub:
			fmt.Fprintf(&sb, "t%d = %s - %s\n", ins.Dst, ins.A, ins.B)
		case OpNeg:
			fmt.Fprintf(&sb, "t%d = -%s\n", ins.Dst, ins.A)
		}
	}
	for i, o := range p.outputs {
		fmt.Fprintf(&sb, "out[%d] = %s // degree %d\n", i, o, p.degrees[i])
	}
	fmt.Fprintf(&sb, "// ops: mul=%d add=%d sub=%d neg=%d\n",
		p.stats.Muls, p.stats.Adds, p.stats.Subs, p.stats.Negs)
	return sb.String()
}

// String renders an operand the way Source does: u[i], v[i], t<i> or 0.
func (o Operand) String() string {
	switch o.Src {
	case SrcU:
		return fmt.Sprintf("u[%d]", o.Index)
	case SrcV:
		return fmt.Sprintf("v[%d]", o.Index)
	case SrcTmp:
		return fmt.Sprintf("t%d", o.Index)
	default:
		return "0"
	}
}
