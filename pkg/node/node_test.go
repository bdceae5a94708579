package node

import (
	"testing"

	"circsim/pkg/element"
	"circsim/pkg/waveform"
)

func TestActiveNodesSortedAndOneBased(t *testing.T) {
	r1, _ := element.NewResistor("R1", 3, 1, 100)
	r2, _ := element.NewResistor("R2", 1, 0, 200)
	elements := []*element.Element{r1, r2}

	idx := New(elements)
	if idx.N() != 2 {
		t.Fatalf("N() = %d, want 2", idx.N())
	}
	if got := idx.Row(1); got != 1 {
		t.Errorf("Row(1) = %d, want 1", got)
	}
	if got := idx.Row(3); got != 2 {
		t.Errorf("Row(3) = %d, want 2", got)
	}
	if got := idx.Row(0); got != 0 {
		t.Errorf("Row(0) = %d, want 0", got)
	}
}

func TestBranchRowOrderingVSourceThenInductor(t *testing.T) {
	ind, _ := element.NewInductor("L1", 1, 0, 1e-3)
	vs := element.NewVSource("V1", 1, 0, waveform.NewDC(5))
	r, _ := element.NewResistor("R1", 1, 0, 50)

	elements := []*element.Element{ind, vs, r}
	idx := New(elements)

	if idx.N() != 1 {
		t.Fatalf("N() = %d, want 1", idx.N())
	}
	if idx.M() != 2 {
		t.Fatalf("M() = %d, want 2", idx.M())
	}

	// Voltage sources occupy rows n+1..n+mv regardless of element
	// insertion order relative to inductors; inductors follow.
	if vs.BranchRow() != 2 {
		t.Errorf("vsource branch row = %d, want 2", vs.BranchRow())
	}
	if ind.BranchRow() != 3 {
		t.Errorf("inductor branch row = %d, want 3", ind.BranchRow())
	}
	if idx.Size() != 3 {
		t.Errorf("Size() = %d, want 3", idx.Size())
	}
}

func TestNoActiveNodes(t *testing.T) {
	idx := New(nil)
	if idx.N() != 0 || idx.M() != 0 || idx.Size() != 0 {
		t.Errorf("empty indexer: N=%d M=%d Size=%d, want all 0", idx.N(), idx.M(), idx.Size())
	}
}
