// Package cerr is the shared error taxonomy every layer of the solver
// and its collaborators report through: sentinel values meant to be
// tested with errors.Is, wrapped with fmt.Errorf("...: %w", ...) for
// context.
package cerr

import "errors"

var (
	// ErrGroundMissing — no element references node 0. Reported before
	// attempting a solve.
	ErrGroundMissing = errors.New("ground missing: no element references node 0")

	// ErrBadParameters — non-positive time step, inverted sweep
	// direction, zero sweep step, non-positive R/C/L.
	ErrBadParameters = errors.New("bad parameters")

	// ErrNameExists — editor boundary: add_element on a name already
	// present.
	ErrNameExists = errors.New("element name already exists")

	// ErrNotFound — editor boundary: operation on an unknown element.
	ErrNotFound = errors.New("element not found")

	// ErrNodeMissing — rename_node on a node id that isn't in use.
	ErrNodeMissing = errors.New("node not found")

	// ErrNodeConflict — rename_node to a node id already in use (no
	// merging allowed).
	ErrNodeConflict = errors.New("node already in use")

	// ErrSingularCircuit — pivot below tolerance during LU factor/solve.
	ErrSingularCircuit = errors.New("singular circuit")

	// ErrNoSuchSource — DC sweep requested against a source name that
	// doesn't exist, isn't the right element kind, or isn't DC.
	ErrNoSuchSource = errors.New("no such source")

	// ErrAmbiguousSweep — a DC sweep was requested with no source name
	// and more than one DC source of the swept kind exists in the
	// circuit, so there's no unambiguous default to pick.
	ErrAmbiguousSweep = errors.New("ambiguous sweep: multiple DC sources of this kind")

	// ErrCancelled — cooperative cancellation observed between
	// snapshots.
	ErrCancelled = errors.New("analysis cancelled")
)
