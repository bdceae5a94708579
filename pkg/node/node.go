// Package node maps a circuit's node ids to contiguous MNA matrix
// rows and assigns branch-current rows to voltage sources and
// inductors.
package node

import (
	"sort"

	"circsim/pkg/element"
)

// Indexer holds the node-id → row mapping and the branch-row count
// for one circuit. Build with New; it is immutable afterward.
type Indexer struct {
	active []int       // sorted non-zero node ids
	rowOf  map[int]int // node id -> 1-based matrix row, 1..n

	n int // len(active)
	m int // branch-current unknowns (voltage sources + inductors)
}

// New scans elements for their terminal node ids and assigns rows.
// Voltage-source branch rows occupy n+1..n+mv (element insertion
// order); inductor branch rows follow at n+mv+1..n+mv+ml (element
// insertion order). Row assignment is written back onto each element
// via SetBranchRow.
func New(elements []*element.Element) *Indexer {
	seen := make(map[int]bool)
	for _, e := range elements {
		if e.N1 != 0 {
			seen[e.N1] = true
		}
		if e.N2 != 0 {
			seen[e.N2] = true
		}
	}

	active := make([]int, 0, len(seen))
	for id := range seen {
		active = append(active, id)
	}
	sort.Ints(active)

	rowOf := make(map[int]int, len(active))
	for i, id := range active {
		rowOf[id] = i + 1 // 1-based row
	}
	n := len(active)

	row := n
	for _, e := range elements {
		if e.Kind() == element.VSource {
			row++
			e.SetBranchRow(row)
		}
	}
	for _, e := range elements {
		if e.Kind() == element.Inductor {
			row++
			e.SetBranchRow(row)
		}
	}

	return &Indexer{active: active, rowOf: rowOf, n: n, m: row - n}
}

// Row returns the 1-based matrix row for a node id, or 0 for the
// datum node (the ⊥ "skip this row/column" convention).
func (ix *Indexer) Row(nodeID int) int {
	if nodeID == 0 {
		return 0
	}
	return ix.rowOf[nodeID]
}

// N is the number of active (non-datum) nodes.
func (ix *Indexer) N() int { return ix.n }

// M is the number of branch-current unknowns (voltage sources plus
// inductors).
func (ix *Indexer) M() int { return ix.m }

// Size is the total system dimension N = n + m.
func (ix *Indexer) Size() int { return ix.n + ix.m }

// ActiveNodes returns the sorted non-zero node ids.
func (ix *Indexer) ActiveNodes() []int { return ix.active }
