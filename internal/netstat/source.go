// Package netstat reads live network interface state and cumulative byte
// counters from the host. All reads are point-in-time: nothing is cached,
// so every call reflects the host's current state.
package netstat

// Counters holds the cumulative byte counters of one interface. The values
// are monotonically non-decreasing while the interface stays up, but may
// drop back when the interface is reset or replaced.
type Counters struct {
	// Received is the total bytes received on the interface.
	Received uint64
	// Sent is the total bytes transmitted on the interface.
	Sent uint64
}

// LinkState holds the raw liveness attributes of one interface.
type LinkState struct {
	Operstate Operstate
	Carrier   Carrier
}

// Live reports whether the interface is administratively up and has an
// active link.
func (s LinkState) Live() bool {
	return s.Operstate.IsUp() && s.Carrier.Connected()
}

// Source provides point-in-time reads of interface state for a single host.
// Implementations must not cache between calls.
type Source interface {
	// Interfaces enumerates candidate interface names in a stable order.
	Interfaces() ([]string, error)
	// State reports the liveness attributes of the named interface.
	State(name string) (LinkState, error)
	// Counters reads the current cumulative byte counters of the named
	// interface. An error means the sample is unavailable (interface
	// removed, counters unreadable); callers should retain their previous
	// reading.
	Counters(name string) (Counters, error)
}
