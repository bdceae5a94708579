// Package engvalue parses and formats the engineering-suffix numeric
// values the netlist/save format and CLI editor use: "1k" -> 1e3,
// "10u" -> 1e-5, and so on.
package engvalue

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var suffixMultiplier = map[string]float64{
	"p":   1e-12,
	"n":   1e-9,
	"u":   1e-6,
	"m":   1e-3,
	"k":   1e3,
	"meg": 1e6,
	"g":   1e9,
}

var valuePattern = regexp.MustCompile(`^([-+]?\d*\.?\d+(?:[eE][-+]?\d+)?)((?i:meg)|[pPnNuUmMkKgG])?$`)

// Parse reads an engineering-suffix value: a decimal mantissa
// optionally followed by one of p n u m k meg g (case-insensitive).
// A malformed string parses to 0 — there is deliberately no error
// return here; the editor layer is expected to validate inputs that
// matter before they reach the circuit.
func Parse(s string) float64 {
	matches := valuePattern.FindStringSubmatch(strings.TrimSpace(s))
	if matches == nil {
		return 0
	}

	num, err := strconv.ParseFloat(matches[1], 64)
	if err != nil {
		return 0
	}

	if matches[2] != "" {
		if mult, ok := suffixMultiplier[strings.ToLower(matches[2])]; ok {
			if mult < 1 {
				// Divide by the exact power of ten rather than multiply
				// by the inexact fraction, so "10u" equals 1e-5 exactly.
				num /= math.Round(1 / mult)
			} else {
				num *= mult
			}
		}
	}

	return num
}

// Format renders value with an engineering suffix and the given unit
// label (e.g. "V", "A", "Ohm"), picking the largest suffix that keeps
// the mantissa in [1, 1000).
func Format(value float64, unit string) string {
	abs := math.Abs(value)

	switch {
	case abs == 0:
		return fmt.Sprintf("0 %s", unit)
	case abs >= 1e9:
		return fmt.Sprintf("%.3fG%s", value/1e9, unit)
	case abs >= 1e6:
		return fmt.Sprintf("%.3fMeg%s", value/1e6, unit)
	case abs >= 1e3:
		return fmt.Sprintf("%.3fk%s", value/1e3, unit)
	case abs >= 1:
		return fmt.Sprintf("%.3f%s", value, unit)
	case abs >= 1e-3:
		return fmt.Sprintf("%.3fm%s", value*1e3, unit)
	case abs >= 1e-6:
		return fmt.Sprintf("%.3fu%s", value*1e6, unit)
	case abs >= 1e-9:
		return fmt.Sprintf("%.3fn%s", value*1e9, unit)
	default:
		return fmt.Sprintf("%.3fp%s", value*1e12, unit)
	}
}
