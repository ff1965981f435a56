// Package rate turns successive cumulative byte counters into per-second
// throughput values and renders them as compact fixed-width strings.
package rate

import "fmt"

// Unit selects whether rates are expressed in bits or bytes per second.
type Unit int

const (
	// Bits expresses rates in bits per second.
	Bits Unit = iota
	// Bytes expresses rates in bytes per second.
	Bytes
)

const (
	bitsName  = "bits"
	bytesName = "bytes"
)

func (u Unit) String() string {
	if u == Bytes {
		return bytesName
	}
	return bitsName
}

// Suffix returns the per-second unit suffix without a magnitude prefix.
func (u Unit) Suffix() string {
	if u == Bytes {
		return "B/s"
	}
	return "b/s"
}

// MarshalText implements encoding.TextMarshaler so the unit persists as
// "bits" or "bytes" in the configuration file.
func (u Unit) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (u *Unit) UnmarshalText(text []byte) error {
	switch string(text) {
	case bitsName:
		*u = Bits
	case bytesName:
		*u = Bytes
	default:
		return fmt.Errorf("unknown unit %q", text)
	}
	return nil
}
