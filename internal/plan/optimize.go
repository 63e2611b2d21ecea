package plan

import (
	"sort"
	"strconv"
	"strings"
)

// The optimizer runs two passes over the expression arena, always in this
// order: common-subexpression elimination first, then output-driven
// dead-code elimination. Both are pure IR rewrites: no ring arithmetic
// happens here, and both are deterministic so that identical requests
// compile to byte-identical plans.

// cse collapses structurally identical nodes into one, turning the
// expression tree into a DAG. Nodes are visited in ascending id order, so
// operand remapping is already final when a node's canonical key is built.
// Sum operand lists are canonicalized by a fixed order, making sums compare
// equal regardless of construction order; product operands keep their order,
// since ring multiplication is not assumed commutative.
func cse(a *arena, outputs []int) (*arena, []int) {
	res := newArena()
	remap := make([]int, len(a.nodes))
	seen := make(map[string]int, len(a.nodes))

	var key strings.Builder
	for i := 1; i < len(a.nodes); i++ {
		n := a.nodes[i]
		var nn node
		key.Reset()
		switch n.kind {
		case kindInput:
			nn = n
			if n.side == SideU {
				key.WriteByte('u')
			} else {
				key.WriteByte('v')
			}
			key.WriteString(strconv.Itoa(n.index))
		case kindProduct:
			nn = node{kind: kindProduct, left: remap[n.left], right: remap[n.right]}
			key.WriteByte('*')
			key.WriteString(strconv.Itoa(nn.left))
			key.WriteByte(',')
			key.WriteString(strconv.Itoa(nn.right))
		case kindSum:
			ts := make([]term, len(n.terms))
			for j, t := range n.terms {
				ts[j] = term{neg: t.neg, id: remap[t.id]}
			}
			sort.Slice(ts, func(x, y int) bool {
				if ts[x].id != ts[y].id {
					return ts[x].id < ts[y].id
				}
				return !ts[x].neg && ts[y].neg
			})
			nn = node{kind: kindSum, terms: ts}
			for _, t := range ts {
				if t.neg {
					key.WriteByte('-')
				} else {
					key.WriteByte('+')
				}
				key.WriteString(strconv.Itoa(t.id))
			}
		}
		if id, ok := seen[key.String()]; ok {
			remap[i] = id
			continue
		}
		id := res.push(nn)
		seen[key.String()] = id
		remap[i] = id
	}
	return res, applyRemap(remap, outputs)
}

// dce drops every node that is not reachable, by reverse dependency, from a
// wanted output. outputs must already be filtered to the mask-true degrees.
// A node shared between a wanted and an unwanted output survives because the
// wanted output reaches it. The surviving nodes are compacted in their
// original (topological) order.
func dce(a *arena, outputs []int) (*arena, []int) {
	marked := make([]bool, len(a.nodes))
	stack := make([]int, 0, len(outputs))
	mark := func(id int) {
		if id != zeroID && !marked[id] {
			marked[id] = true
			stack = append(stack, id)
		}
	}
	for _, id := range outputs {
		mark(id)
	}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := a.nodes[id]
		switch n.kind {
		case kindProduct:
			mark(n.left)
			mark(n.right)
		case kindSum:
			for _, t := range n.terms {
				mark(t.id)
			}
		}
	}

	res := newArena()
	remap := make([]int, len(a.nodes))
	for i := 1; i < len(a.nodes); i++ {
		if !marked[i] {
			continue
		}
		n := a.nodes[i]
		switch n.kind {
		case kindProduct:
			remap[i] = res.push(node{kind: kindProduct, left: remap[n.left], right: remap[n.right]})
		case kindSum:
			ts := make([]term, len(n.terms))
			for j, t := range n.terms {
				ts[j] = term{neg: t.neg, id: remap[t.id]}
			}
			remap[i] = res.push(node{kind: kindSum, terms: ts})
		default:
			remap[i] = res.push(n)
		}
	}
	return res, applyRemap(remap, outputs)
}

func applyRemap(remap, ids []int) []int {
	out := make([]int, len(ids))
	for i, id := range ids {
		out[i] = remap[id]
	}
	return out
}
