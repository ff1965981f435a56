package rate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name           string
		raw            uint64
		unit           Unit
		expectedValue  string
		expectedSuffix string
	}{
		{"zero", 0, Bits, "0", "b/s"},
		{"one", 1, Bits, "1", "b/s"},
		{"just under 1 Ki", 1023, Bits, "1023", "b/s"},
		{"exactly 1 Ki", 1024, Bits, "1", "Kb/s"},
		{"1.5 Ki", 1536, Bits, "1.5", "Kb/s"},
		{"10 Ki", 10240, Bits, "10", "Kb/s"},
		{"mid two-digit", 46203, Bits, "45.12", "Kb/s"},
		{"three digits", 104857600, Bits, "100", "Mb/s"},
		{"1.5 Mb typical", 1500000, Bits, "1.43", "Mb/s"},
		{"bytes suffix", 1500000, Bytes, "1.43", "MB/s"},
		{"sub-K bytes", 512, Bytes, "512", "B/s"},
		{"width cap truncates", 1048474, Bits, "1023.", "Kb/s"},
		{"giga range keeps M prefix", 1 << 30, Bits, "1", "Mb/s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, suffix := Format(tt.raw, tt.unit)
			assert.Equal(t, tt.expectedValue, value)
			assert.Equal(t, tt.expectedSuffix, suffix)
		})
	}
}

func TestFormat_BoundedWidth(t *testing.T) {
	// Spot-check a spread of magnitudes: the value never exceeds five
	// characters and the suffix is always well-formed.
	for raw := uint64(1); raw < 1<<40; raw = raw*3 + 1 {
		value, suffix := Format(raw, Bits)
		assert.LessOrEqual(t, len(value), 5, "raw=%d", raw)
		assert.Regexp(t, `^[KM]?b/s$`, suffix, "raw=%d", raw)
	}
}
