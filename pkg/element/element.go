// Package element is the tagged two-terminal element variant the
// assembler stamps: resistors, capacitors, inductors, and independent
// voltage/current sources, dispatched by a single static switch over
// Kind rather than runtime interface polymorphism.
package element

import (
	"fmt"

	"circsim/internal/consts"
	"circsim/pkg/cerr"
	"circsim/pkg/waveform"
)

// Kind discriminates the five element variants.
type Kind int

const (
	Resistor Kind = iota
	Capacitor
	Inductor
	VSource
	ISource
)

func (k Kind) String() string {
	switch k {
	case Resistor:
		return "Resistor"
	case Capacitor:
		return "Capacitor"
	case Inductor:
		return "Inductor"
	case VSource:
		return "VoltageSource"
	case ISource:
		return "CurrentSource"
	default:
		return "Unknown"
	}
}

// defaultTnom is the resistor model's nominal temperature, Kelvin —
// 27C, a standard SPICE default — set by NewResistor and used whenever
// an element's Tnom is zero.
const defaultTnom = 27.0 + consts.KELVIN

// Element is a tagged variant: only the fields relevant to Kind are
// meaningful. Construct with NewResistor/NewCapacitor/NewInductor/
// NewVSource/NewISource, never directly.
type Element struct {
	Name string
	N1   int
	N2   int
	kind Kind

	// Resistor
	R    float64
	Tc1  float64
	Tc2  float64
	Tnom float64

	// Capacitor
	C float64

	// Inductor
	L float64

	// VSource / ISource
	wave waveform.Waveform

	// branchRow is this element's MNA branch-current row (voltage
	// sources and inductors only); 0 means "none", assigned by the
	// node indexer (pkg/node), never by the element itself.
	branchRow int
}

func NewResistor(name string, n1, n2 int, r float64) (*Element, error) {
	if r <= 0 {
		return nil, fmt.Errorf("%w: resistor %s: R must be > 0", cerr.ErrBadParameters, name)
	}
	return &Element{Name: name, N1: n1, N2: n2, kind: Resistor, R: r, Tnom: defaultTnom}, nil
}

func NewCapacitor(name string, n1, n2 int, c float64) (*Element, error) {
	if c <= 0 {
		return nil, fmt.Errorf("%w: capacitor %s: C must be > 0", cerr.ErrBadParameters, name)
	}
	return &Element{Name: name, N1: n1, N2: n2, kind: Capacitor, C: c}, nil
}

func NewInductor(name string, n1, n2 int, l float64) (*Element, error) {
	if l <= 0 {
		return nil, fmt.Errorf("%w: inductor %s: L must be > 0", cerr.ErrBadParameters, name)
	}
	return &Element{Name: name, N1: n1, N2: n2, kind: Inductor, L: l}, nil
}

func NewVSource(name string, n1, n2 int, w waveform.Waveform) *Element {
	return &Element{Name: name, N1: n1, N2: n2, kind: VSource, wave: w}
}

func NewISource(name string, n1, n2 int, w waveform.Waveform) *Element {
	return &Element{Name: name, N1: n1, N2: n2, kind: ISource, wave: w}
}

func (e *Element) Kind() Kind { return e.kind }

// NeedsBranchRow reports whether the node indexer must allocate this
// element a branch-current row: voltage sources always need one for
// their KVL constraint, and inductors need one under the
// branch-current companion form this package uses.
func (e *Element) NeedsBranchRow() bool {
	return e.kind == VSource || e.kind == Inductor
}

func (e *Element) BranchRow() int        { return e.branchRow }
func (e *Element) SetBranchRow(row int)  { e.branchRow = row }

// Waveform exposes the source waveform, valid only for VSource/ISource.
func (e *Element) Waveform() waveform.Waveform { return e.wave }

// SetWaveform overwrites the source waveform in place — used by DC
// sweeps to step a swept source without reallocating the element, and
// by the editor's modify-element path.
func (e *Element) SetWaveform(w waveform.Waveform) { e.wave = w }

// temperatureAdjustedR applies a linear/quadratic temperature-
// coefficient model; Tc1/Tc2 default to zero so an unconfigured
// resistor is simply R.
func (e *Element) temperatureAdjustedR(tempK float64) float64 {
	tnom := e.Tnom
	if tnom == 0 {
		tnom = defaultTnom
	}
	dt := tempK - tnom
	factor := 1.0 + e.Tc1*dt + e.Tc2*dt*dt
	return e.R * factor
}

// EffectiveR is the temperature-adjusted resistance, exported so
// result extraction can report a current consistent with what was
// stamped.
func (e *Element) EffectiveR(tempK float64) float64 {
	return e.temperatureAdjustedR(tempK)
}
