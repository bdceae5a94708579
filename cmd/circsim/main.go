// Command circsim is an interactive circuit editor and simulator: a
// numbered menu drives the element CRUD operations and the four
// analyses a circuit supports, printing one line per accepted
// snapshot as it is produced.
package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"sort"
	"strconv"
	"strings"

	"circsim/cmd/circsim/chart"
	"circsim/pkg/analysis"
	"circsim/pkg/cerr"
	"circsim/pkg/editor"
	"circsim/pkg/element"
	"circsim/pkg/engvalue"
	"circsim/pkg/waveform"
)

func main() {
	in := bufio.NewReader(os.Stdin)
	ed := editor.New("circuit1")

	for {
		displayMenu()
		switch getChoice(in) {
		case 1:
			handleAddElement(in, ed)
		case 2:
			displayCircuit(ed)
			pause(in)
		case 3:
			handleRemoveElement(in, ed)
		case 4:
			handleModifyElement(in, ed)
		case 5:
			handleTransient(in, ed)
		case 6:
			handleMultiVarTransient(in, ed)
		case 7:
			handleDCSweepV(in, ed)
		case 8:
			handleDCSweepI(in, ed)
		case 9:
			handleDisplayNodes(in, ed)
		case 10:
			handleRenameNode(in, ed)
		case 11:
			handleSave(in, ed)
		case 12:
			handleLoad(in, ed)
		case 13:
			fmt.Println("Exiting...")
			os.Exit(0)
		default:
			fmt.Println("Invalid choice. Please try again.")
			pause(in)
		}
	}
}

func displayMenu() {
	fmt.Println("\n=== Circuit Simulator ===")
	fmt.Println("1. Add element")
	fmt.Println("2. Display circuit")
	fmt.Println("3. Remove element")
	fmt.Println("4. Modify element")
	fmt.Println("5. Transient analysis")
	fmt.Println("6. Multi-variable transient analysis")
	fmt.Println("7. DC voltage sweep")
	fmt.Println("8. DC current sweep")
	fmt.Println("9. Display nodes")
	fmt.Println("10. Rename node")
	fmt.Println("11. Save circuit")
	fmt.Println("12. Load circuit")
	fmt.Println("13. Exit")
	fmt.Print("Enter your choice: ")
}

func getChoice(in *bufio.Reader) int {
	line, _ := in.ReadString('\n')
	n, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return -1
	}
	return n
}

func pause(in *bufio.Reader) {
	fmt.Print("\nPress Enter to continue...")
	in.ReadString('\n')
}

func readLine(in *bufio.Reader, prompt string) string {
	fmt.Print(prompt)
	line, _ := in.ReadString('\n')
	return strings.TrimSpace(line)
}

func readInt(in *bufio.Reader, prompt string) int {
	n, err := strconv.Atoi(readLine(in, prompt))
	if err != nil {
		return 0
	}
	return n
}

func readValue(in *bufio.Reader, prompt string) float64 {
	return engvalue.Parse(readLine(in, prompt))
}

func displayCircuit(ed *editor.Editor) {
	fmt.Printf("\nCircuit %q:\n", ed.Circuit.Name)
	for _, e := range ed.Elements() {
		printElement(e)
	}
}

func printElement(e *element.Element) {
	switch e.Kind() {
	case element.Resistor:
		fmt.Printf("  %-12s %-10s %s  (%d -> %d)\n", e.Kind(), e.Name, engvalue.Format(e.R, "Ohm"), e.N1, e.N2)
	case element.Capacitor:
		fmt.Printf("  %-12s %-10s %s  (%d -> %d)\n", e.Kind(), e.Name, engvalue.Format(e.C, "F"), e.N1, e.N2)
	case element.Inductor:
		fmt.Printf("  %-12s %-10s %s  (%d -> %d)\n", e.Kind(), e.Name, engvalue.Format(e.L, "H"), e.N1, e.N2)
	case element.VSource:
		fmt.Printf("  %-12s %-10s %s  (%d -> %d)\n", e.Kind(), e.Name, waveformString(e, "V"), e.N1, e.N2)
	case element.ISource:
		fmt.Printf("  %-12s %-10s %s  (%d -> %d)\n", e.Kind(), e.Name, waveformString(e, "A"), e.N1, e.N2)
	}
}

func waveformString(e *element.Element, unit string) string {
	w := e.Waveform()
	if w.Kind() == waveform.Sine {
		offset, amp, freq := w.SineParams()
		return fmt.Sprintf("SINE offset=%s amp=%s freq=%sHz", engvalue.Format(offset, unit), engvalue.Format(amp, unit), engvalue.Format(freq, ""))
	}
	return fmt.Sprintf("DC %s", engvalue.Format(w.DCValue(), unit))
}

func handleAddElement(in *bufio.Reader, ed *editor.Editor) {
	fmt.Println("\n--- Add Element ---")
	fmt.Println("1. Resistor  2. Capacitor  3. Inductor  4. Voltage source  5. Current source")
	kind := readInt(in, "Select type: ")

	name := readLine(in, "Name: ")
	n1 := readInt(in, "Node 1 (0 = ground): ")
	n2 := readInt(in, "Node 2 (0 = ground): ")

	var e *element.Element
	var err error

	switch kind {
	case 1:
		e, err = element.NewResistor(name, n1, n2, readValue(in, "Resistance: "))
	case 2:
		e, err = element.NewCapacitor(name, n1, n2, readValue(in, "Capacitance: "))
	case 3:
		e, err = element.NewInductor(name, n1, n2, readValue(in, "Inductance: "))
	case 4:
		e = element.NewVSource(name, n1, n2, readWaveform(in))
	case 5:
		e = element.NewISource(name, n1, n2, readWaveform(in))
	default:
		fmt.Println("Invalid element type.")
		pause(in)
		return
	}
	if err != nil {
		fmt.Println("Error:", err)
		pause(in)
		return
	}

	if err := ed.AddElement(e); err != nil {
		fmt.Println("Error:", err)
	} else {
		fmt.Printf("Added %s %s.\n", e.Kind(), e.Name)
	}
	pause(in)
}

func readWaveform(in *bufio.Reader) waveform.Waveform {
	fmt.Println("1. DC  2. Sine")
	switch readInt(in, "Select waveform: ") {
	case 2:
		offset := readValue(in, "Offset: ")
		amp := readValue(in, "Amplitude: ")
		freq := readValue(in, "Frequency (Hz): ")
		return waveform.NewSine(offset, amp, freq)
	default:
		return waveform.NewDC(readValue(in, "DC value: "))
	}
}

func handleRemoveElement(in *bufio.Reader, ed *editor.Editor) {
	name := readLine(in, "\nName of element to remove: ")
	if err := ed.RemoveElement(name); err != nil {
		fmt.Println("Error:", err)
	} else {
		fmt.Println("Removed.")
	}
	pause(in)
}

func handleModifyElement(in *bufio.Reader, ed *editor.Editor) {
	name := readLine(in, "\nName of element to modify: ")
	e, ok := ed.FindElement(name)
	if !ok {
		fmt.Println("Error:", cerr.ErrNotFound)
		pause(in)
		return
	}

	switch e.Kind() {
	case element.Resistor, element.Capacitor, element.Inductor:
		fmt.Println("Passive element values can't be changed in place; remove and re-add instead.")
	case element.VSource, element.ISource:
		e.SetWaveform(readWaveform(in))
		fmt.Println("Waveform updated.")
	}
	pause(in)
}

func handleTransient(in *bufio.Reader, ed *editor.Editor) {
	t0 := readValue(in, "\nStart time: ")
	t1 := readValue(in, "End time: ")
	h := readValue(in, "Timestep: ")

	fmt.Println()
	err := analysis.Transient(ed.Circuit, t0, t1, h, func(snap analysis.Snapshot) {
		printSnapshot(snap)
	}, nil)
	if err != nil {
		fmt.Println("Error:", err)
	}
	pause(in)
}

func handleMultiVarTransient(in *bufio.Reader, ed *editor.Editor) {
	t0 := readValue(in, "\nStart time: ")
	t1 := readValue(in, "End time: ")
	h := readValue(in, "Timestep: ")

	var snaps []analysis.Snapshot
	err := analysis.Transient(ed.Circuit, t0, t1, h, func(snap analysis.Snapshot) {
		printSnapshot(snap)
		snaps = append(snaps, snap)
	}, nil)
	if err != nil {
		fmt.Println("Error:", err)
		pause(in)
		return
	}

	if confirm(in, "Export a node voltage chart? (y/N): ") {
		node := readInt(in, "Node number: ")
		path := readLine(in, "Output PNG path: ")
		if err := chart.ExportNodeVoltage(snaps, node, path); err != nil {
			fmt.Println("Error:", err)
		} else {
			fmt.Println("Wrote", path)
		}
	}
	pause(in)
}

func handleDCSweepV(in *bufio.Reader, ed *editor.Editor) {
	name := readLine(in, "\nVoltage source name to sweep: ")
	v0 := readValue(in, "Start voltage: ")
	v1 := readValue(in, "End voltage: ")
	dv := readValue(in, "Voltage step: ")

	fmt.Println()
	if err := analysis.DCSweepV(ed.Circuit, name, v0, v1, dv, printSnapshot, nil); err != nil {
		fmt.Println("Error:", err)
	}
	pause(in)
}

func handleDCSweepI(in *bufio.Reader, ed *editor.Editor) {
	name := readLine(in, "\nCurrent source name to sweep: ")
	i0 := readValue(in, "Start current: ")
	i1 := readValue(in, "End current: ")
	di := readValue(in, "Current step: ")

	fmt.Println()
	if err := analysis.DCSweepI(ed.Circuit, name, i0, i1, di, printSnapshot, nil); err != nil {
		fmt.Println("Error:", err)
	}
	pause(in)
}

func printSnapshot(snap analysis.Snapshot) {
	if snap.Status != analysis.Ok {
		fmt.Printf("%-10s %s\n", snap.Param.Kind, snap.Status)
		return
	}

	fmt.Printf("%s=%s  ", snap.Param.Kind, engvalue.Format(snap.Param.Value, ""))
	for _, nv := range snap.Nodes {
		if nv.Node == 0 {
			continue
		}
		fmt.Printf("V(%d)=%s  ", nv.Node, engvalue.Format(nv.Voltage, "V"))
	}
	for _, ec := range snap.Currents {
		fmt.Printf("I(%s)=%s  ", ec.Name, engvalue.Format(ec.Current, "A"))
	}
	fmt.Println()
}

func handleDisplayNodes(in *bufio.Reader, ed *editor.Editor) {
	fmt.Println("\n--- Existing Nodes ---")
	nodes := ed.NodeSet()
	sort.Ints(nodes)
	for _, id := range nodes {
		if id == 0 {
			fmt.Println("  0 (ground)")
		} else {
			fmt.Printf("  %d\n", id)
		}
	}
	pause(in)
}

func handleRenameNode(in *bufio.Reader, ed *editor.Editor) {
	oldID := readInt(in, "\nExisting node to rename: ")
	newID := readInt(in, "New node id: ")
	if err := ed.RenameNode(oldID, newID); err != nil {
		fmt.Println("Error:", err)
	} else {
		fmt.Println("Renamed.")
	}
	pause(in)
}

func handleSave(in *bufio.Reader, ed *editor.Editor) {
	path := readLine(in, "\nSave to path: ")
	f, err := os.Create(path)
	if err != nil {
		fmt.Println("Error:", err)
		pause(in)
		return
	}
	defer f.Close()

	if err := ed.Save(f); err != nil {
		fmt.Println("Error:", err)
	} else {
		fmt.Println("Saved.")
	}
	pause(in)
}

func handleLoad(in *bufio.Reader, ed *editor.Editor) {
	path := readLine(in, "\nLoad from path: ")
	f, err := os.Open(path)
	if err != nil {
		fmt.Println("Error:", err)
		pause(in)
		return
	}
	defer f.Close()

	if err := ed.Load(f); err != nil {
		log.Println("load:", err)
	} else {
		fmt.Println("Loaded.")
	}
	pause(in)
}

func confirm(in *bufio.Reader, prompt string) bool {
	answer := strings.ToLower(readLine(in, prompt))
	return answer == "y" || answer == "yes"
}
