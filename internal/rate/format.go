package rate

import (
	"fmt"
	"math/bits"
	"strings"
)

// maxValueWidth caps the rendered value for fixed-width panel display. The
// cap can truncate a valid numeral; that is an accepted display limitation.
const maxValueWidth = 5

// Format renders a raw per-second rate as a scaled magnitude string and a
// unit suffix. The rate is rebased by powers of 1024: values of magnitude
// 2^10 and above gain a "K" prefix, 2^20 and above an "M" prefix. Format is
// deterministic and performs no I/O.
func Format(raw uint64, unit Unit) (value, suffix string) {
	var power int
	if raw > 0 {
		power = bits.Len64(raw) - 1
	}

	scaled := float64(raw) / float64(uint64(1)<<(power-power%10))

	switch {
	case power >= 20:
		return formatScaled(scaled), "M" + unit.Suffix()
	case power >= 10:
		return formatScaled(scaled), "K" + unit.Suffix()
	default:
		// Sub-K values render as a plain integer.
		return fmt.Sprintf("%.0f", scaled), unit.Suffix()
	}
}

// formatScaled applies the decimal-place rules for prefixed values: one
// decimal at three integer digits, two below that, trailing zeros stripped,
// then the hard width cap.
func formatScaled(scaled float64) string {
	var formatted string
	if scaled >= 100 {
		formatted = fmt.Sprintf("%.1f", scaled)
	} else {
		formatted = fmt.Sprintf("%.2f", scaled)
	}

	formatted = strings.TrimRight(formatted, "0")
	formatted = strings.TrimSuffix(formatted, ".")

	if len(formatted) > maxValueWidth {
		formatted = formatted[:maxValueWidth]
	}
	return formatted
}
