package netstat

// loopbackName is skipped during default interface selection.
const loopbackName = "lo"

// SelectDefault picks the interface to monitor: the first candidate in
// enumeration order that is not the loopback, is administratively up, and
// has a carrier. The second return value is false when no interface
// qualifies, which callers must tolerate as a steady state.
func SelectDefault(src Source) (string, bool) {
	names, err := src.Interfaces()
	if err != nil {
		return "", false
	}

	for _, name := range names {
		if name == loopbackName {
			continue
		}

		state, err := src.State(name)
		if err != nil {
			continue
		}
		if state.Live() {
			return name, true
		}
	}
	return "", false
}
