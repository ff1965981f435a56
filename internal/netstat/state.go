package netstat

import "strings"

// Operstate is the raw operational state string of an interface, as exposed
// by the kernel ("up", "down", "unknown", "lowerlayerdown", ...).
type Operstate string

// IsUp reports whether the state describes an administratively up
// interface. Matching on the substring keeps sysfs trailing newlines
// harmless.
func (s Operstate) IsUp() bool {
	return strings.Contains(string(s), "up")
}

// Carrier is the raw carrier indicator of an interface. The kernel reports
// "1" when a physical or logical link is present.
type Carrier string

// Connected reports whether the interface currently has a link.
func (c Carrier) Connected() bool {
	return strings.TrimSpace(string(c)) == "1"
}
