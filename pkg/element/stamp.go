package element

import "circsim/pkg/matrix"

// dcOpenConductance is the vanishing conductance a capacitor stamps in
// place of an open circuit at h=0, so the matrix keeps its topology
// without injecting a history current. A numerical floor, not a
// physical model: true zero conductance would leave a node with no
// resistive path to the rest of the circuit, risking a singular
// system when that node has no other connection.
const dcOpenConductance = 1e-12

// StampContext carries the per-step quantities a Stamp call needs:
// the node indexer's row assignment for this element's terminals, its
// branch row if it has one, and the history values from the previous
// accepted step.
type StampContext struct {
	T, H float64

	I1, I2    int // node row indices; 0 means datum (⊥), skip that row/col
	BranchRow int // 0 if this element carries no branch-current unknown

	VPrev1, VPrev2 float64 // capacitor: v_prev(n1), v_prev(n2)
	IPrev          float64 // inductor: i_prev (previous branch current)

	TempK float64 // resistor temperature-coefficient model input
}

// Stamp adds this element's contribution to A and z.
func (e *Element) Stamp(m matrix.DeviceMatrix, ctx StampContext) {
	switch e.kind {
	case Resistor:
		e.stampResistor(m, ctx)
	case Capacitor:
		e.stampCapacitor(m, ctx)
	case Inductor:
		e.stampInductor(m, ctx)
	case VSource:
		e.stampVSource(m, ctx)
	case ISource:
		e.stampISource(m, ctx)
	}
}

func (e *Element) stampResistor(m matrix.DeviceMatrix, ctx StampContext) {
	tempK := ctx.TempK
	if tempK == 0 {
		tempK = defaultTnom
	}
	g := 1.0 / e.temperatureAdjustedR(tempK)
	stampConductance(m, ctx.I1, ctx.I2, g)
}

func (e *Element) stampCapacitor(m matrix.DeviceMatrix, ctx StampContext) {
	if ctx.H <= 0 {
		stampConductance(m, ctx.I1, ctx.I2, dcOpenConductance)
		return
	}

	geq := e.C / ctx.H
	stampConductance(m, ctx.I1, ctx.I2, geq)

	ieq := geq * (ctx.VPrev1 - ctx.VPrev2)
	m.AddRHS(ctx.I1, ieq)
	m.AddRHS(ctx.I2, -ieq)
}

func (e *Element) stampInductor(m matrix.DeviceMatrix, ctx StampContext) {
	row := ctx.BranchRow
	i1, i2 := ctx.I1, ctx.I2

	if i1 != 0 {
		m.AddElement(i1, row, 1)
		m.AddElement(row, i1, 1)
	}
	if i2 != 0 {
		m.AddElement(i2, row, -1)
		m.AddElement(row, i2, -1)
	}

	if ctx.H <= 0 {
		// Short circuit: branch equation collapses to v(n1) = v(n2),
		// no resistive or history term.
		return
	}

	rl := e.L / ctx.H
	m.AddElement(row, row, -rl)
	m.AddRHS(row, -rl*ctx.IPrev)
}

func (e *Element) stampVSource(m matrix.DeviceMatrix, ctx StampContext) {
	row := ctx.BranchRow
	i1, i2 := ctx.I1, ctx.I2

	if i1 != 0 {
		m.AddElement(i1, row, 1)
		m.AddElement(row, i1, 1)
	}
	if i2 != 0 {
		m.AddElement(i2, row, -1)
		m.AddElement(row, i2, -1)
	}

	m.AddRHS(row, e.wave.At(ctx.T))
}

func (e *Element) stampISource(m matrix.DeviceMatrix, ctx StampContext) {
	current := e.wave.At(ctx.T)
	if ctx.I1 != 0 {
		m.AddRHS(ctx.I1, -current)
	}
	if ctx.I2 != 0 {
		m.AddRHS(ctx.I2, current)
	}
}

// stampConductance is the symmetric KCL stamp shared by resistors and
// the capacitor's backward-Euler companion conductance.
func stampConductance(m matrix.DeviceMatrix, i1, i2 int, g float64) {
	if i1 != 0 {
		m.AddElement(i1, i1, g)
		if i2 != 0 {
			m.AddElement(i1, i2, -g)
		}
	}
	if i2 != 0 {
		m.AddElement(i2, i2, g)
		if i1 != 0 {
			m.AddElement(i2, i1, -g)
		}
	}
}
