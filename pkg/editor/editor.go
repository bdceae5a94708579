// Package editor is the circuit CRUD contract an interactive session
// needs: add/remove/find element, rename-node, node enumeration, and
// the save/load round-trip over pkg/netlist. It never touches the
// solver directly — it hands the core a validated *circuit.Circuit.
package editor

import (
	"io"

	"circsim/pkg/circuit"
	"circsim/pkg/element"
	"circsim/pkg/netlist"
)

// Editor wraps one circuit with the CRUD operations an interactive
// session needs. Every element and node method delegates to
// circuit.Circuit, and Save/Load delegate to pkg/netlist; this
// type exists so the CLI has one place to call rather than reaching
// into the circuit package's lower-level primitives directly.
type Editor struct {
	Circuit *circuit.Circuit
}

func New(name string) *Editor {
	return &Editor{Circuit: circuit.New(name)}
}

func (ed *Editor) AddElement(e *element.Element) error {
	return ed.Circuit.Add(e)
}

func (ed *Editor) RemoveElement(name string) error {
	return ed.Circuit.Remove(name)
}

func (ed *Editor) FindElement(name string) (*element.Element, bool) {
	return ed.Circuit.Find(name)
}

func (ed *Editor) RenameNode(oldID, newID int) error {
	return ed.Circuit.RenameNode(oldID, newID)
}

func (ed *Editor) NodeSet() []int {
	return ed.Circuit.NodeSet()
}

func (ed *Editor) HasGround() bool {
	return ed.Circuit.HasGround()
}

func (ed *Editor) Elements() []*element.Element {
	return ed.Circuit.Elements()
}

// Save writes the wrapped circuit to w in the format pkg/netlist
// defines.
func (ed *Editor) Save(w io.Writer) error {
	return netlist.Save(w, ed.Circuit)
}

// Load replaces the wrapped circuit with one read from r.
func (ed *Editor) Load(r io.Reader) error {
	c, err := netlist.Load(r)
	if err != nil {
		return err
	}
	ed.Circuit = c
	return nil
}
