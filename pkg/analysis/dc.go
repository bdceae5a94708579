package analysis

import (
	"fmt"

	"circsim/pkg/cerr"
	"circsim/pkg/circuit"
	"circsim/pkg/element"
	"circsim/pkg/waveform"
)

// DCSweepV steps a DC voltage source from v0 to v1 in increments of
// dv, solving the DC operating point (t=0, h=0 — capacitors open,
// inductors short) at each step. srcName selects the source to sweep;
// pass "" to sweep the circuit's only DC voltage source, which fails
// with cerr.ErrAmbiguousSweep if more than one exists. The source's
// original value is restored on every exit path, including error and
// cancellation.
func DCSweepV(c *circuit.Circuit, srcName string, v0, v1, dv float64, sink Sink, cancel *CancelToken) error {
	return dcSweep(c, srcName, element.VSource, VSweep, v0, v1, dv, sink, cancel)
}

// DCSweepI is DCSweepV's symmetric counterpart on a DC current source.
func DCSweepI(c *circuit.Circuit, srcName string, i0, i1, di float64, sink Sink, cancel *CancelToken) error {
	return dcSweep(c, srcName, element.ISource, ISweep, i0, i1, di, sink, cancel)
}

func dcSweep(c *circuit.Circuit, srcName string, kind element.Kind, paramKind ParamKind, v0, v1, dv float64, sink Sink, cancel *CancelToken) error {
	if dv == 0 {
		return fmt.Errorf("%w: sweep step must be nonzero", cerr.ErrBadParameters)
	}
	if signOf(v1-v0) != signOf(dv) {
		return fmt.Errorf("%w: sweep direction must match sign(v1-v0)", cerr.ErrBadParameters)
	}
	if !c.HasGround() {
		sink(errorSnapshot(Param{Kind: paramKind, Value: v0}, GroundMissing))
		return cerr.ErrGroundMissing
	}

	src, err := findSweepSource(c, srcName, kind)
	if err != nil {
		return err
	}

	original := src.Waveform()
	defer src.SetWaveform(original)

	ascending := dv > 0
	hist := circuit.NewHistory()

	for v := v0; !sweepDone(ascending, v, v1, dv); v += dv {
		if cancel != nil && cancel.Cancelled() {
			sink(errorSnapshot(Param{Kind: paramKind, Value: v}, Cancelled))
			return cerr.ErrCancelled
		}

		w := src.Waveform()
		w.SetDCValue(v)
		src.SetWaveform(w)

		if err := solvePoint(c, Param{Kind: paramKind, Value: v}, 0, 0, hist, sink); err != nil {
			return err
		}
	}

	return nil
}

// findSweepSource resolves the element a sweep should drive: the
// named element when srcName is non-empty, or the circuit's sole
// matching DC source when it's empty. Multiple candidates with no
// name given is reported as cerr.ErrAmbiguousSweep rather than
// silently picking one.
func findSweepSource(c *circuit.Circuit, srcName string, kind element.Kind) (*element.Element, error) {
	if srcName != "" {
		src, ok := c.Find(srcName)
		if !ok || src.Kind() != kind || src.Waveform().Kind() != waveform.DC {
			return nil, fmt.Errorf("%w: %s", cerr.ErrNoSuchSource, srcName)
		}
		return src, nil
	}

	var candidates []*element.Element
	for _, e := range c.Elements() {
		if e.Kind() == kind && e.Waveform().Kind() == waveform.DC {
			candidates = append(candidates, e)
		}
	}
	switch len(candidates) {
	case 0:
		return nil, fmt.Errorf("%w: no DC %s in circuit", cerr.ErrNoSuchSource, kind)
	case 1:
		return candidates[0], nil
	default:
		return nil, fmt.Errorf("%w: %d DC %s sources, name one", cerr.ErrAmbiguousSweep, len(candidates), kind)
	}
}
