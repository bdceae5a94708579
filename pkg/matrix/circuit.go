package matrix

import (
	"errors"
	"fmt"

	"github.com/edp1096/sparse"
)

// ErrSingular wraps any factorization/solve failure the underlying
// sparse solver reports (zero pivot, singular row or column).
var ErrSingular = errors.New("matrix: singular system")

// CircuitMatrix holds the A matrix and z right-hand side of one MNA
// system (size N = n + m) and solves A·x = z.
type CircuitMatrix struct {
	Size     int
	matrix   *sparse.Matrix
	rhs      []float64
	solution []float64
}

// NewMatrix allocates an N×N real system. N is the active-node count
// plus the number of voltage-source and inductor branch rows.
func NewMatrix(size int) (*CircuitMatrix, error) {
	config := &sparse.Configuration{
		Real:           true,
		Expandable:     true,
		ModifiedNodal:  true,
		TiesMultiplier: 5,
		PrinterWidth:   140,
	}

	mat, err := sparse.Create(int64(size), config)
	if err != nil {
		return nil, fmt.Errorf("matrix: create: %w", err)
	}

	return &CircuitMatrix{
		Size:     size,
		matrix:   mat,
		rhs:      make([]float64, size+1), // 1-based indexing
		solution: make([]float64, size+1),
	}, nil
}

// AddElement adds value to A[i,j]. Either index may be 0 — the datum
// node's row/column — and AddElement silently no-ops, so every Stamp
// method can call it unconditionally rather than guarding n1/n2 != 0
// itself.
func (m *CircuitMatrix) AddElement(i, j int, value float64) {
	if i <= 0 || j <= 0 {
		return
	}
	m.matrix.GetElement(int64(i), int64(j)).Real += value
}

// AddRHS adds value to z[i]. i == 0 is a no-op.
func (m *CircuitMatrix) AddRHS(i int, value float64) {
	if i <= 0 {
		return
	}
	m.rhs[i] += value
}

// Clear zeroes the matrix and RHS ahead of the next timestep's or
// sweep point's re-stamp.
func (m *CircuitMatrix) Clear() {
	m.matrix.Clear()
	for i := range m.rhs {
		m.rhs[i] = 0
	}
}

// Solve factors A and solves A·x = z, reporting a pivot failure as
// ErrSingular.
func (m *CircuitMatrix) Solve() error {
	if err := m.matrix.Factor(); err != nil {
		return fmt.Errorf("%w: %v", ErrSingular, err)
	}

	solution, err := m.matrix.Solve(m.rhs)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSingular, err)
	}
	m.solution = solution
	return nil
}

// GetDiagElement exposes a diagonal element for tests that want to
// assert a conductance stamp landed without a full solve.
func (m *CircuitMatrix) GetDiagElement(i int) *sparse.Element {
	if i <= 0 || i > m.Size {
		return nil
	}
	return m.matrix.Diags[i]
}

// RHS exposes the current right-hand side.
func (m *CircuitMatrix) RHS() []float64 {
	return m.rhs
}

// Solution returns the solved vector, 1-based: Solution()[i] is x_i.
// Solution()[0] is unused (the datum node carries no unknown).
func (m *CircuitMatrix) Solution() []float64 {
	return m.solution
}

// Destroy releases the underlying sparse matrix's internal state.
func (m *CircuitMatrix) Destroy() {
	if m.matrix != nil {
		m.matrix.Destroy()
	}
}
