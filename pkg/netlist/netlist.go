// Package netlist saves and loads circuits in a simple per-element
// text format — not a SPICE deck, just one line per element plus an
// optional circuit-name header.
package netlist

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"circsim/pkg/circuit"
	"circsim/pkg/element"
	"circsim/pkg/engvalue"
	"circsim/pkg/waveform"
)

// Save writes c to w: an optional CIRCUIT_NAME header followed by one
// line per element, in insertion order.
func Save(w io.Writer, c *circuit.Circuit) error {
	bw := bufio.NewWriter(w)

	if c.Name != "" {
		if _, err := fmt.Fprintf(bw, "CIRCUIT_NAME %s\n", c.Name); err != nil {
			return err
		}
	}

	for _, e := range c.Elements() {
		line, err := formatElement(e)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(bw, line); err != nil {
			return err
		}
	}

	return bw.Flush()
}

func formatElement(e *element.Element) (string, error) {
	switch e.Kind() {
	case element.Resistor:
		return fmt.Sprintf("Resistor %s %g %d %d", e.Name, e.R, e.N1, e.N2), nil
	case element.Capacitor:
		return fmt.Sprintf("Capacitor %s %g %d %d", e.Name, e.C, e.N1, e.N2), nil
	case element.Inductor:
		return fmt.Sprintf("Inductor %s %g %d %d", e.Name, e.L, e.N1, e.N2), nil
	case element.VSource:
		return formatSource("VoltageSource", e), nil
	case element.ISource:
		return formatSource("CurrentSource", e), nil
	default:
		return "", fmt.Errorf("netlist: unknown element kind for %s", e.Name)
	}
}

func formatSource(keyword string, e *element.Element) string {
	w := e.Waveform()
	if w.Kind() == waveform.Sine {
		offset, amp, freq := w.SineParams()
		return fmt.Sprintf("%s %s SINE %g %g %g %d %d", keyword, e.Name, offset, amp, freq, e.N1, e.N2)
	}
	return fmt.Sprintf("%s %s DC %g 0 0 %d %d", keyword, e.Name, w.DCValue(), e.N1, e.N2)
}

// Load reads the format Save produces (or a hand-written equivalent)
// into a new circuit. Unknown or malformed lines are skipped with a
// logged warning — a bad line never aborts the load.
func Load(r io.Reader) (*circuit.Circuit, error) {
	scanner := bufio.NewScanner(r)
	c := circuit.New("")

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		if strings.EqualFold(fields[0], "CIRCUIT_NAME") {
			c.Name = strings.TrimSpace(strings.TrimPrefix(line, fields[0]))
			continue
		}

		if err := loadElement(c, fields); err != nil {
			log.Printf("netlist: skipping line %q: %v", line, err)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("netlist: reading: %w", err)
	}
	return c, nil
}

func loadElement(c *circuit.Circuit, fields []string) error {
	switch fields[0] {
	case "Resistor", "Capacitor", "Inductor":
		return loadPassive(c, fields)
	case "VoltageSource", "CurrentSource":
		return loadSource(c, fields)
	default:
		return fmt.Errorf("unknown element type %q", fields[0])
	}
}

func loadPassive(c *circuit.Circuit, fields []string) error {
	if len(fields) != 5 {
		return fmt.Errorf("expected 5 fields, got %d", len(fields))
	}
	name := fields[1]
	value := engvalue.Parse(fields[2])
	n1, n2, err := parseNodes(fields[3], fields[4])
	if err != nil {
		return err
	}

	var e *element.Element
	switch fields[0] {
	case "Resistor":
		e, err = element.NewResistor(name, n1, n2, value)
	case "Capacitor":
		e, err = element.NewCapacitor(name, n1, n2, value)
	case "Inductor":
		e, err = element.NewInductor(name, n1, n2, value)
	}
	if err != nil {
		return err
	}
	return c.Add(e)
}

func loadSource(c *circuit.Circuit, fields []string) error {
	if len(fields) != 8 {
		return fmt.Errorf("expected 8 fields, got %d", len(fields))
	}
	name := fields[1]
	n1, n2, err := parseNodes(fields[6], fields[7])
	if err != nil {
		return err
	}

	var w waveform.Waveform
	switch strings.ToUpper(fields[2]) {
	case "DC":
		w = waveform.NewDC(engvalue.Parse(fields[3]))
	case "SINE":
		offset := engvalue.Parse(fields[3])
		amp := engvalue.Parse(fields[4])
		freq := engvalue.Parse(fields[5])
		w = waveform.NewSine(offset, amp, freq)
	default:
		return fmt.Errorf("unknown source waveform %q", fields[2])
	}

	var e *element.Element
	if fields[0] == "VoltageSource" {
		e = element.NewVSource(name, n1, n2, w)
	} else {
		e = element.NewISource(name, n1, n2, w)
	}
	return c.Add(e)
}

func parseNodes(a, b string) (int, int, error) {
	n1, err := strconv.Atoi(a)
	if err != nil {
		return 0, 0, fmt.Errorf("bad node id %q", a)
	}
	n2, err := strconv.Atoi(b)
	if err != nil {
		return 0, 0, fmt.Errorf("bad node id %q", b)
	}
	return n1, n2, nil
}
