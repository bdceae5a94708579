package analysis

import (
	"fmt"

	"circsim/pkg/cerr"
	"circsim/pkg/circuit"
)

// Transient runs the fixed-timestep backward-Euler loop from t0 to
// t1 in steps of h, pushing one snapshot per accepted point. Tracking
// several node voltages or element currents at once ("multi-variable"
// transient analysis) is purely a matter of what a caller reads from
// each snapshot's Nodes/Currents — the loop itself is unchanged.
func Transient(c *circuit.Circuit, t0, t1, h float64, sink Sink, cancel *CancelToken) error {
	if h <= 0 {
		return fmt.Errorf("%w: timestep must be > 0", cerr.ErrBadParameters)
	}
	if t1 < t0 {
		return fmt.Errorf("%w: t1 must be >= t0", cerr.ErrBadParameters)
	}
	if !c.HasGround() {
		sink(errorSnapshot(Param{Kind: Time, Value: t0}, GroundMissing))
		return cerr.ErrGroundMissing
	}

	hist := circuit.NewHistory()

	for t := t0; t <= t1+h/2; t += h {
		if cancel != nil && cancel.Cancelled() {
			sink(errorSnapshot(Param{Kind: Time, Value: t}, Cancelled))
			return cerr.ErrCancelled
		}

		if err := solvePoint(c, Param{Kind: Time, Value: t}, t, h, hist, sink); err != nil {
			return err
		}
	}

	return nil
}
