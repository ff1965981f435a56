package netstat

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// DefaultSysfsPath is the kernel's network interface attribute tree.
const DefaultSysfsPath = "/sys/class/net"

// SysfsSource reads interface state from the sysfs attribute files under a
// base directory.
type SysfsSource struct {
	base string
}

// NewSysfsSource returns a source backed by /sys/class/net.
func NewSysfsSource() *SysfsSource {
	return &SysfsSource{base: DefaultSysfsPath}
}

// NewSysfsSourceAt returns a source backed by an alternative directory
// laid out like /sys/class/net. Used by tests.
func NewSysfsSourceAt(base string) *SysfsSource {
	return &SysfsSource{base: base}
}

// Interfaces lists the interface names present under the base directory,
// sorted for a stable enumeration order.
func (s *SysfsSource) Interfaces() ([]string, error) {
	entries, err := os.ReadDir(s.base)
	if err != nil {
		return nil, fmt.Errorf("failed to list interfaces: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}

// State reads the operstate and carrier attributes of the named interface.
// The carrier attribute is unreadable while an interface is down; that is
// reported as an empty (disconnected) carrier, not an error.
func (s *SysfsSource) State(name string) (LinkState, error) {
	operstate, err := s.readAttr(name, "operstate")
	if err != nil {
		return LinkState{}, fmt.Errorf("failed to read operstate for %s: %w", name, err)
	}

	carrier, err := s.readAttr(name, "carrier")
	if err != nil {
		carrier = ""
	}

	return LinkState{Operstate: Operstate(operstate), Carrier: Carrier(carrier)}, nil
}

// Counters reads the rx_bytes and tx_bytes statistics of the named
// interface.
func (s *SysfsSource) Counters(name string) (Counters, error) {
	received, err := s.readCounter(name, "rx_bytes")
	if err != nil {
		return Counters{}, err
	}

	sent, err := s.readCounter(name, "tx_bytes")
	if err != nil {
		return Counters{}, err
	}

	return Counters{Received: received, Sent: sent}, nil
}

func (s *SysfsSource) readCounter(name, stat string) (uint64, error) {
	raw, err := s.readAttr(name, filepath.Join("statistics", stat))
	if err != nil {
		return 0, fmt.Errorf("failed to read %s for %s: %w", stat, name, err)
	}

	value, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse %s for %s: %w", stat, name, err)
	}
	return value, nil
}

// readAttr reads a single attribute file. The path is validated to stay
// within the base directory, since interface names come from the host.
func (s *SysfsSource) readAttr(name, attr string) (string, error) {
	cleanPath := filepath.Clean(filepath.Join(s.base, name, attr))
	if !strings.HasPrefix(cleanPath, s.base+string(filepath.Separator)) {
		return "", fmt.Errorf("invalid attribute path: outside %s", s.base)
	}

	data, err := os.ReadFile(cleanPath) // #nosec G304 -- path validated above
	if err != nil {
		return "", err
	}
	return string(data), nil
}
