package plan

// Side identifies which of the two runtime input sequences a leaf reads.
type Side uint8

const (
	// SideU is the first runtime input sequence.
	SideU Side = iota
	// SideV is the second runtime input sequence.
	SideV
)

// nodeKind tags the variants of an expression node.
type nodeKind uint8

const (
	kindZero    nodeKind = iota // the additive identity
	kindInput                   // a slot of one runtime input sequence
	kindSum                     // signed sum of earlier nodes
	kindProduct                 // product of two earlier nodes
	kindExtern                  // reference into a parent arena (parallel builds only)
)

// term is one signed operand of a sum node.
type term struct {
	neg bool
	id  int
}

// node is one vertex of the expression arena. Operand ids always point at
// earlier nodes, so the expression graph is acyclic by construction and a
// plain ascending-id walk is a topological order.
type node struct {
	kind nodeKind
	side Side // kindInput
	// index is the slot in the caller's runtime sequence for kindInput, or
	// the parent arena id for kindExtern.
	index int
	left  int    // kindProduct
	right int    // kindProduct
	terms []term // kindSum
}

// zeroID is the arena id of the shared zero node.
const zeroID = 0

// arena is an append-only store of expression nodes addressed by index.
// Node 0 is always the shared zero. Addressing nodes by index rather than by
// pointer keeps structural-equality lookups during CSE independent of any
// object-identity mechanism and makes merging arenas a pure renumbering.
type arena struct {
	nodes []node
}

func newArena() *arena {
	return &arena{nodes: []node{{kind: kindZero}}}
}

func (a *arena) push(n node) int {
	a.nodes = append(a.nodes, n)
	return len(a.nodes) - 1
}

// input appends a leaf referencing one slot of one runtime sequence.
func (a *arena) input(side Side, index int) int {
	return a.push(node{kind: kindInput, side: side, index: index})
}

// product appends x*y, or returns the zero node if either factor is zero.
// The left factor always originates from SideU and the right from SideV, so
// no commutativity of multiplication is ever assumed.
func (a *arena) product(x, y int) int {
	if x == zeroID || y == zeroID {
		return zeroID
	}
	return a.push(node{kind: kindProduct, left: x, right: y})
}

// sum appends a signed sum of the given operands. Zero operands are dropped
// at construction; an empty sum collapses to zero and a single positive
// operand collapses to that operand itself, so no arithmetic is ever emitted
// for identities.
func (a *arena) sum(ts ...term) int {
	keep := make([]term, 0, len(ts))
	for _, t := range ts {
		if t.id != zeroID {
			keep = append(keep, t)
		}
	}
	switch {
	case len(keep) == 0:
		return zeroID
	case len(keep) == 1 && !keep[0].neg:
		return keep[0].id
	}
	return a.push(node{kind: kindSum, terms: keep})
}

// add appends x+y with zero elision.
func (a *arena) add(x, y int) int {
	return a.sum(term{id: x}, term{id: y})
}

// sub appends x-y with zero elision.
func (a *arena) sub(x, y int) int {
	return a.sum(term{id: x}, term{neg: true, id: y})
}

// merge appends every node of child into a, resolving kindExtern references
// back to their parent ids, and returns the child ids remapped into a.
// The child arena must only reference a through kindExtern nodes.
func (a *arena) merge(child *arena, ids []int) []int {
	remap := make([]int, len(child.nodes))
	remap[zeroID] = zeroID
	for i := 1; i < len(child.nodes); i++ {
		n := child.nodes[i]
		switch n.kind {
		case kindExtern:
			remap[i] = n.index
		case kindProduct:
			remap[i] = a.push(node{kind: kindProduct, left: remap[n.left], right: remap[n.right]})
		case kindSum:
			ts := make([]term, len(n.terms))
			for j, t := range n.terms {
				ts[j] = term{neg: t.neg, id: remap[t.id]}
			}
			remap[i] = a.push(node{kind: kindSum, terms: ts})
		case kindInput:
			remap[i] = a.push(n)
		}
	}
	out := make([]int, len(ids))
	for i, id := range ids {
		out[i] = remap[id]
	}
	return out
}

// importLeaves creates kindExtern leaves in a for the given parent ids.
// The parent zero maps to the local zero so that zero elision keeps working
// inside the child build.
func (a *arena) importLeaves(parentIDs []int) []int {
	out := make([]int, len(parentIDs))
	for i, pid := range parentIDs {
		if pid == zeroID {
			out[i] = zeroID
			continue
		}
		out[i] = a.push(node{kind: kindExtern, index: pid})
	}
	return out
}
