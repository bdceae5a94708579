package circuit

import (
	"errors"
	"math"
	"testing"

	"circsim/pkg/cerr"
	"circsim/pkg/element"
	"circsim/pkg/waveform"
)

func TestAddRejectsDuplicateName(t *testing.T) {
	c := New("test")
	r1, _ := element.NewResistor("R1", 1, 0, 100)
	r2, _ := element.NewResistor("R1", 1, 2, 200)

	if err := c.Add(r1); err != nil {
		t.Fatalf("Add(r1): %v", err)
	}
	if err := c.Add(r2); !errors.Is(err, cerr.ErrNameExists) {
		t.Errorf("Add(duplicate) err = %v, want ErrNameExists", err)
	}
}

func TestRemoveUnknown(t *testing.T) {
	c := New("test")
	if err := c.Remove("nope"); !errors.Is(err, cerr.ErrNotFound) {
		t.Errorf("Remove(unknown) err = %v, want ErrNotFound", err)
	}
}

func TestNodeSetAndHasGround(t *testing.T) {
	c := New("test")
	r, _ := element.NewResistor("R1", 1, 0, 100)
	c.Add(r)

	if !c.HasGround() {
		t.Error("HasGround() = false, want true")
	}
	nodes := c.NodeSet()
	if len(nodes) != 2 || nodes[0] != 0 || nodes[1] != 1 {
		t.Errorf("NodeSet() = %v, want [0 1]", nodes)
	}
}

func TestRenameNodeConflictAndMissing(t *testing.T) {
	c := New("test")
	r1, _ := element.NewResistor("R1", 1, 2, 100)
	c.Add(r1)

	if err := c.RenameNode(1, 2); !errors.Is(err, cerr.ErrNodeConflict) {
		t.Errorf("RenameNode to existing node err = %v, want ErrNodeConflict", err)
	}
	if err := c.RenameNode(1, 0); !errors.Is(err, cerr.ErrNodeConflict) {
		t.Errorf("RenameNode to 0 err = %v, want ErrNodeConflict", err)
	}
	if err := c.RenameNode(99, 3); !errors.Is(err, cerr.ErrNodeMissing) {
		t.Errorf("RenameNode from missing node err = %v, want ErrNodeMissing", err)
	}

	if err := c.RenameNode(2, 5); err != nil {
		t.Fatalf("RenameNode(2,5): %v", err)
	}
	if r1.N2 != 5 {
		t.Errorf("element N2 = %d, want 5 after rename", r1.N2)
	}
}

func TestVoltageDividerDC(t *testing.T) {
	// 10V source across node 1 to ground, two 100 ohm resistors in
	// series from node 1 to node 2 to ground: V(2) should be 5V.
	c := New("divider")
	vs := element.NewVSource("V1", 1, 0, waveform.NewDC(10))
	r1, _ := element.NewResistor("R1", 1, 2, 100)
	r2, _ := element.NewResistor("R2", 2, 0, 100)
	c.Add(vs)
	c.Add(r1)
	c.Add(r2)

	hist := NewHistory()
	mat, idx, err := c.Assemble(0, 0, hist)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if err := c.Solve(mat); err != nil {
		t.Fatalf("Solve: %v", err)
	}
	res := c.Extract(mat, idx, 0, 0, hist)
	mat.Destroy()

	if math.Abs(res.NodeVoltages[1]-10) > 1e-9 {
		t.Errorf("V(1) = %v, want 10", res.NodeVoltages[1])
	}
	if math.Abs(res.NodeVoltages[2]-5) > 1e-9 {
		t.Errorf("V(2) = %v, want 5", res.NodeVoltages[2])
	}
}

func TestTrivialResultNoActiveNodes(t *testing.T) {
	c := New("empty")
	res := c.TrivialResult(0)
	if res.NodeVoltages[0] != 0 {
		t.Errorf("trivial V(0) = %v, want 0", res.NodeVoltages[0])
	}
}

func TestSingularCircuitDetected(t *testing.T) {
	// A resistor between two nodes with no ground reference anywhere
	// in the circuit leaves the KCL rows linearly dependent (row 2 is
	// row 1 negated) — a classic singular MNA system.
	c := New("singular")
	r, _ := element.NewResistor("R1", 1, 2, 100)
	c.Add(r)

	hist := NewHistory()
	mat, idx, err := c.Assemble(0, 0, hist)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	err = c.Solve(mat)
	mat.Destroy()
	_ = idx
	if !errors.Is(err, cerr.ErrSingularCircuit) {
		t.Errorf("Solve() err = %v, want ErrSingularCircuit", err)
	}
}
