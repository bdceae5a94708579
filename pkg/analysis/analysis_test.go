package analysis

import (
	"errors"
	"math"
	"testing"

	"circsim/pkg/cerr"
	"circsim/pkg/circuit"
	"circsim/pkg/element"
	"circsim/pkg/waveform"
)

func TestTransientRCCharging(t *testing.T) {
	// V1 (5V step) -> R1 -> node 1 -> C1 -> ground. Time constant
	// tau = R*C = 1ms; after 5 tau the node should be close to 5V.
	c := circuit.New("rc")
	r, _ := element.NewResistor("R1", 2, 1, 1000)
	cap_, _ := element.NewCapacitor("C1", 1, 0, 1e-6)
	vs := element.NewVSource("V1", 2, 0, waveform.NewDC(5))
	c.Add(vs)
	c.Add(r)
	c.Add(cap_)

	var last Snapshot
	err := Transient(c, 0, 5e-3, 1e-6, func(s Snapshot) { last = s }, nil)
	if err != nil {
		t.Fatalf("Transient: %v", err)
	}

	var v1 float64
	for _, nv := range last.Nodes {
		if nv.Node == 1 {
			v1 = nv.Voltage
		}
	}
	if math.Abs(v1-5) > 0.1 {
		t.Errorf("V(1) at 5 tau = %v, want close to 5", v1)
	}
}

func TestTransientRejectsBadTimestep(t *testing.T) {
	c := circuit.New("x")
	err := Transient(c, 0, 1, 0, func(Snapshot) {}, nil)
	if !errors.Is(err, cerr.ErrBadParameters) {
		t.Errorf("err = %v, want ErrBadParameters", err)
	}
}

func TestTransientRequiresGround(t *testing.T) {
	c := circuit.New("x")
	r, _ := element.NewResistor("R1", 1, 2, 100)
	c.Add(r)

	var snaps []Snapshot
	err := Transient(c, 0, 1e-3, 1e-4, func(s Snapshot) { snaps = append(snaps, s) }, nil)
	if !errors.Is(err, cerr.ErrGroundMissing) {
		t.Errorf("err = %v, want ErrGroundMissing", err)
	}
	if len(snaps) != 1 || snaps[0].Status != GroundMissing {
		t.Errorf("snaps = %v, want one GroundMissing snapshot", snaps)
	}
}

func TestTransientCancellation(t *testing.T) {
	c := circuit.New("x")
	r, _ := element.NewResistor("R1", 1, 0, 100)
	vs := element.NewVSource("V1", 1, 0, waveform.NewDC(1))
	c.Add(vs)
	c.Add(r)

	cancel := NewCancelToken()
	cancel.Cancel()

	var snaps []Snapshot
	err := Transient(c, 0, 1, 1e-2, func(s Snapshot) { snaps = append(snaps, s) }, cancel)
	if !errors.Is(err, cerr.ErrCancelled) {
		t.Errorf("err = %v, want ErrCancelled", err)
	}
	if len(snaps) != 1 || snaps[0].Status != Cancelled {
		t.Errorf("snaps = %v, want one Cancelled snapshot", snaps)
	}
}

func TestDCSweepVRestoresSourceOnSuccess(t *testing.T) {
	c := circuit.New("x")
	r, _ := element.NewResistor("R1", 1, 0, 100)
	vs := element.NewVSource("V1", 1, 0, waveform.NewDC(1))
	c.Add(vs)
	c.Add(r)

	var points int
	err := DCSweepV(c, "V1", 0, 5, 1, func(Snapshot) { points++ }, nil)
	if err != nil {
		t.Fatalf("DCSweepV: %v", err)
	}
	if points != 6 {
		t.Errorf("points = %d, want 6 (0..5 step 1)", points)
	}
	if vs.Waveform().DCValue() != 1 {
		t.Errorf("source value after sweep = %v, want restored to 1", vs.Waveform().DCValue())
	}
}

func TestDCSweepVRestoresSourceOnError(t *testing.T) {
	c := circuit.New("x")
	r, _ := element.NewResistor("R1", 1, 0, 100)
	vs := element.NewVSource("V1", 1, 0, waveform.NewDC(1))
	c.Add(vs)
	c.Add(r)

	cancel := NewCancelToken()
	cancel.Cancel()

	err := DCSweepV(c, "V1", 0, 5, 1, func(Snapshot) {}, cancel)
	if !errors.Is(err, cerr.ErrCancelled) {
		t.Errorf("err = %v, want ErrCancelled", err)
	}
	if vs.Waveform().DCValue() != 1 {
		t.Errorf("source value after cancelled sweep = %v, want restored to 1", vs.Waveform().DCValue())
	}
}

func TestDCSweepRejectsMismatchedDirection(t *testing.T) {
	c := circuit.New("x")
	r, _ := element.NewResistor("R1", 1, 0, 100)
	vs := element.NewVSource("V1", 1, 0, waveform.NewDC(1))
	c.Add(vs)
	c.Add(r)

	err := DCSweepV(c, "V1", 0, 5, -1, func(Snapshot) {}, nil)
	if !errors.Is(err, cerr.ErrBadParameters) {
		t.Errorf("err = %v, want ErrBadParameters", err)
	}
}

func TestDCSweepUnknownSource(t *testing.T) {
	c := circuit.New("x")
	r, _ := element.NewResistor("R1", 1, 0, 100)
	c.Add(r)

	err := DCSweepV(c, "NOPE", 0, 5, 1, func(Snapshot) {}, nil)
	if !errors.Is(err, cerr.ErrNoSuchSource) {
		t.Errorf("err = %v, want ErrNoSuchSource", err)
	}
}

func TestDCSweepUnnamedSourceResolvesUnambiguously(t *testing.T) {
	c := circuit.New("x")
	r, _ := element.NewResistor("R1", 1, 0, 100)
	vs := element.NewVSource("V1", 1, 0, waveform.NewDC(1))
	c.Add(vs)
	c.Add(r)

	var points int
	err := DCSweepV(c, "", 0, 5, 1, func(Snapshot) { points++ }, nil)
	if err != nil {
		t.Fatalf("DCSweepV with no name: %v", err)
	}
	if points != 6 {
		t.Errorf("points = %d, want 6", points)
	}
}

func TestDCSweepUnnamedSourceAmbiguous(t *testing.T) {
	c := circuit.New("x")
	r, _ := element.NewResistor("R1", 1, 0, 100)
	vs1 := element.NewVSource("V1", 1, 0, waveform.NewDC(1))
	vs2 := element.NewVSource("V2", 1, 0, waveform.NewDC(2))
	c.Add(vs1)
	c.Add(vs2)
	c.Add(r)

	err := DCSweepV(c, "", 0, 5, 1, func(Snapshot) {}, nil)
	if !errors.Is(err, cerr.ErrAmbiguousSweep) {
		t.Errorf("err = %v, want ErrAmbiguousSweep", err)
	}
}

func TestSingularCircuitReportsStatus(t *testing.T) {
	// R1 grounds node 1 so HasGround() is satisfied, but R2 links two
	// nodes (2, 3) with no path to ground anywhere — that block's KCL
	// rows are linearly dependent, so the overall system is singular.
	c := circuit.New("x")
	r1, _ := element.NewResistor("R1", 1, 0, 100)
	r2, _ := element.NewResistor("R2", 2, 3, 100)
	c.Add(r1)
	c.Add(r2)

	var statuses []Status
	err := Transient(c, 0, 1e-3, 1e-4, func(s Snapshot) { statuses = append(statuses, s.Status) }, nil)
	if !errors.Is(err, cerr.ErrSingularCircuit) {
		t.Errorf("err = %v, want ErrSingularCircuit", err)
	}
	if len(statuses) == 0 || statuses[0] != Singular {
		t.Errorf("statuses = %v, want first entry Singular", statuses)
	}
}
