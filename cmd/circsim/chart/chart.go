// Package chart renders a run's snapshots as a line chart, the one
// place in this repository that reaches for a presentation library
// rather than staying on the solver's own types — the CLI's optional
// "export chart" action, never the core.
package chart

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"circsim/pkg/analysis"
)

// ExportNodeVoltage writes a PNG line chart of one node's voltage
// across every snapshot in run, against each snapshot's Param.Value
// (time for a transient run, the swept value for a DC sweep).
func ExportNodeVoltage(run []analysis.Snapshot, node int, path string) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("V(%d)", node)
	p.X.Label.Text = paramLabel(run)
	p.Y.Label.Text = "V"

	pts := make(plotter.XYs, 0, len(run))
	for _, snap := range run {
		if snap.Status != analysis.Ok {
			continue
		}
		for _, nv := range snap.Nodes {
			if nv.Node == node {
				pts = append(pts, plotter.XY{X: snap.Param.Value, Y: nv.Voltage})
				break
			}
		}
	}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("chart: building line: %w", err)
	}
	p.Add(line)
	p.Add(plotter.NewGrid())

	if err := p.Save(8*vg.Inch, 5*vg.Inch, path); err != nil {
		return fmt.Errorf("chart: saving %s: %w", path, err)
	}
	return nil
}

// ExportElementCurrent is ExportNodeVoltage's counterpart for an
// element's current.
func ExportElementCurrent(run []analysis.Snapshot, name string, path string) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("I(%s)", name)
	p.X.Label.Text = paramLabel(run)
	p.Y.Label.Text = "A"

	pts := make(plotter.XYs, 0, len(run))
	for _, snap := range run {
		if snap.Status != analysis.Ok {
			continue
		}
		for _, ec := range snap.Currents {
			if ec.Name == name {
				pts = append(pts, plotter.XY{X: snap.Param.Value, Y: ec.Current})
				break
			}
		}
	}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("chart: building line: %w", err)
	}
	p.Add(line)
	p.Add(plotter.NewGrid())

	if err := p.Save(8*vg.Inch, 5*vg.Inch, path); err != nil {
		return fmt.Errorf("chart: saving %s: %w", path, err)
	}
	return nil
}

func paramLabel(run []analysis.Snapshot) string {
	if len(run) == 0 {
		return ""
	}
	switch run[0].Param.Kind {
	case analysis.Time:
		return "t (s)"
	case analysis.VSweep:
		return "V (V)"
	case analysis.ISweep:
		return "I (A)"
	default:
		return ""
	}
}
