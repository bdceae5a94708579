package analysis

import (
	"sort"

	"circsim/pkg/circuit"
	"circsim/pkg/element"
)

// solvePoint runs the shared assemble → solve → extract → emit →
// update-history sequence both Transient and the DC sweeps use for
// every point, differing only in what t/h mean and what the loop
// bound is.
func solvePoint(c *circuit.Circuit, param Param, t, h float64, hist *circuit.History, sink Sink) error {
	mat, idx, err := c.Assemble(t, h, hist)
	if err != nil {
		return err
	}

	if idx.N() == 0 {
		res := c.TrivialResult(t)
		sink(snapshotFromResult(param, res, c.Elements(), Ok))
		c.UpdateHistory(hist, res)
		return nil
	}

	if err := c.Solve(mat); err != nil {
		mat.Destroy()
		sink(errorSnapshot(param, Singular))
		return err
	}

	res := c.Extract(mat, idx, t, h, hist)
	mat.Destroy()

	sink(snapshotFromResult(param, res, c.Elements(), Ok))
	c.UpdateHistory(hist, res)
	return nil
}

func snapshotFromResult(param Param, res circuit.Result, elements []*element.Element, status Status) Snapshot {
	nodes := make([]NodeVoltage, 0, len(res.NodeVoltages))
	for id, v := range res.NodeVoltages {
		nodes = append(nodes, NodeVoltage{Node: id, Voltage: v})
	}
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].Node < nodes[j].Node })

	currents := make([]ElementCurrent, 0, len(elements))
	for _, e := range elements {
		currents = append(currents, ElementCurrent{Name: e.Name, Current: res.ElementCurrents[e.Name]})
	}

	return Snapshot{Param: param, Nodes: nodes, Currents: currents, Status: status}
}

func errorSnapshot(param Param, status Status) Snapshot {
	return Snapshot{Param: param, Status: status}
}

func signOf(x float64) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}

// sweepDone reports whether v has passed v1. The dv/2 half-step guard
// admits the endpoint against float rounding, symmetric for ascending
// and descending sweeps.
func sweepDone(ascending bool, v, v1, dv float64) bool {
	if ascending {
		return v > v1+dv/2
	}
	return v < v1+dv/2
}
