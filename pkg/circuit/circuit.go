// Package circuit holds the ordered element list, assembles the MNA
// system for one point in time (or one sweep step) via the node
// indexer and element stamps, and extracts the resulting node
// voltages and element currents from the solved system.
package circuit

import (
	"fmt"
	"sort"

	"circsim/pkg/cerr"
	"circsim/pkg/element"
	"circsim/pkg/matrix"
	"circsim/pkg/node"
)

// defaultTempK is the ambient temperature fed to every resistor's
// temperature-coefficient model unless a caller overrides it.
const defaultTempK = 300.15

// Circuit is an ordered sequence of elements plus the CRUD operations
// an editor needs to build and modify one. Node id 0 is always the
// implicit datum and is never stored as an element's "node in use".
type Circuit struct {
	Name  string
	TempK float64

	elements []*element.Element
	byName   map[string]*element.Element
}

func New(name string) *Circuit {
	return &Circuit{
		Name:   name,
		TempK:  defaultTempK,
		byName: make(map[string]*element.Element),
	}
}

// Add appends e, rejecting a duplicate name.
func (c *Circuit) Add(e *element.Element) error {
	if _, exists := c.byName[e.Name]; exists {
		return fmt.Errorf("%w: %s", cerr.ErrNameExists, e.Name)
	}
	c.elements = append(c.elements, e)
	c.byName[e.Name] = e
	return nil
}

// Remove deletes the named element, preserving the insertion order of
// everything else.
func (c *Circuit) Remove(name string) error {
	e, ok := c.byName[name]
	if !ok {
		return fmt.Errorf("%w: %s", cerr.ErrNotFound, name)
	}
	delete(c.byName, name)
	for i, el := range c.elements {
		if el == e {
			c.elements = append(c.elements[:i], c.elements[i+1:]...)
			break
		}
	}
	return nil
}

func (c *Circuit) Find(name string) (*element.Element, bool) {
	e, ok := c.byName[name]
	return e, ok
}

// Elements returns the ordered element list. Callers must not mutate
// the slice's order or membership directly; use Add/Remove.
func (c *Circuit) Elements() []*element.Element {
	return c.elements
}

// HasGround reports whether any element touches the datum node.
func (c *Circuit) HasGround() bool {
	for _, e := range c.elements {
		if e.N1 == 0 || e.N2 == 0 {
			return true
		}
	}
	return false
}

// NodeSet returns every node id referenced by an element, sorted,
// including 0 when some element touches ground.
func (c *Circuit) NodeSet() []int {
	seen := make(map[int]bool)
	for _, e := range c.elements {
		seen[e.N1] = true
		seen[e.N2] = true
	}
	ids := make([]int, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// RenameNode rewrites every element's reference to oldID as newID.
// The datum node is never a valid target (it always "exists") and
// merging into an already-used node is forbidden.
func (c *Circuit) RenameNode(oldID, newID int) error {
	if newID == 0 {
		return fmt.Errorf("%w: %d", cerr.ErrNodeConflict, newID)
	}

	foundOld := oldID == 0
	for _, id := range c.NodeSet() {
		if id == oldID {
			foundOld = true
		}
		if id == newID {
			return fmt.Errorf("%w: %d", cerr.ErrNodeConflict, newID)
		}
	}
	if !foundOld {
		return fmt.Errorf("%w: %d", cerr.ErrNodeMissing, oldID)
	}

	for _, e := range c.elements {
		if e.N1 == oldID {
			e.N1 = newID
		}
		if e.N2 == oldID {
			e.N2 = newID
		}
	}
	return nil
}

// History is the solver's mutable per-analysis state: node voltages
// and inductor currents carried from one accepted step to the next.
// Reset at the start of each analysis.
type History struct {
	VPrev map[int]float64
	IPrev map[string]float64
}

func NewHistory() *History {
	return &History{VPrev: make(map[int]float64), IPrev: make(map[string]float64)}
}

// Result is the raw extraction from one solved system: node voltages
// and element currents, keyed the way a Snapshot wants them. Analysis
// drivers wrap this with a Param and Status to form a full Snapshot.
type Result struct {
	NodeVoltages    map[int]float64
	ElementCurrents map[string]float64
}

// Assemble builds the (n+m)×(n+m) MNA system for time t, timestep h
// (h == 0 means DC: capacitors open, inductors short), against the
// given history. A nil matrix with a nil error means the circuit has
// no active nodes — the trivial all-zero solution applies directly;
// callers should use TrivialResult instead of solving.
func (c *Circuit) Assemble(t, h float64, hist *History) (*matrix.CircuitMatrix, *node.Indexer, error) {
	idx := node.New(c.elements)
	if idx.N() == 0 {
		return nil, idx, nil
	}

	mat, err := matrix.NewMatrix(idx.Size())
	if err != nil {
		return nil, idx, fmt.Errorf("circuit %s: %w", c.Name, err)
	}

	for _, e := range c.elements {
		ctx := element.StampContext{
			T: t, H: h,
			I1:        idx.Row(e.N1),
			I2:        idx.Row(e.N2),
			BranchRow: e.BranchRow(),
			VPrev1:    hist.VPrev[e.N1],
			VPrev2:    hist.VPrev[e.N2],
			IPrev:     hist.IPrev[e.Name],
			TempK:     c.tempK(),
		}
		e.Stamp(mat, ctx)
	}

	return mat, idx, nil
}

// Solve factors and solves an assembled system, reporting a pivot
// failure as cerr.ErrSingularCircuit.
func (c *Circuit) Solve(mat *matrix.CircuitMatrix) error {
	if err := mat.Solve(); err != nil {
		return fmt.Errorf("%w: %v", cerr.ErrSingularCircuit, err)
	}
	return nil
}

// TrivialResult is the n==0 shortcut: every node voltage is 0 (only
// the datum exists), resistor/capacitor/inductor/voltage-source
// currents are 0 (no loop to carry current), and current sources
// report their evaluated value.
func (c *Circuit) TrivialResult(t float64) Result {
	ec := make(map[string]float64, len(c.elements))
	for _, e := range c.elements {
		if e.Kind() == element.ISource {
			ec[e.Name] = e.Waveform().At(t)
		} else {
			ec[e.Name] = 0
		}
	}
	return Result{NodeVoltages: map[int]float64{0: 0}, ElementCurrents: ec}
}

// Extract reads the solved vector into node voltages and per-element
// currents.
func (c *Circuit) Extract(mat *matrix.CircuitMatrix, idx *node.Indexer, t, h float64, hist *History) Result {
	sol := mat.Solution()

	nv := map[int]float64{0: 0}
	for _, id := range idx.ActiveNodes() {
		nv[id] = sol[idx.Row(id)]
	}

	ec := make(map[string]float64, len(c.elements))
	for _, e := range c.elements {
		v1, v2 := nv[e.N1], nv[e.N2]

		switch e.Kind() {
		case element.Resistor:
			ec[e.Name] = (v1 - v2) / e.EffectiveR(c.tempK())

		case element.Capacitor:
			if h <= 0 {
				ec[e.Name] = 0
				continue
			}
			vp1, vp2 := hist.VPrev[e.N1], hist.VPrev[e.N2]
			ec[e.Name] = (e.C / h) * ((v1 - v2) - (vp1 - vp2))

		case element.Inductor, element.VSource:
			ec[e.Name] = sol[e.BranchRow()]

		case element.ISource:
			ec[e.Name] = e.Waveform().At(t)
		}
	}

	return Result{NodeVoltages: nv, ElementCurrents: ec}
}

// UpdateHistory copies a solved Result forward as the next step's
// prior state: every node voltage, and every inductor's branch
// current.
func (c *Circuit) UpdateHistory(hist *History, res Result) {
	for id, v := range res.NodeVoltages {
		hist.VPrev[id] = v
	}
	for _, e := range c.elements {
		if e.Kind() == element.Inductor {
			hist.IPrev[e.Name] = res.ElementCurrents[e.Name]
		}
	}
}

func (c *Circuit) tempK() float64 {
	if c.TempK == 0 {
		return defaultTempK
	}
	return c.TempK
}
