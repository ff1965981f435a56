package rate

import "github.com/bittin/bitrate/internal/netstat"

// Tracker converts pairs of counter readings taken a known interval apart
// into raw download/upload rates. The stored rates are expressed in the
// currently configured unit. A Tracker is owned by a single sampling loop
// and is not safe for concurrent use.
type Tracker struct {
	unit     Unit
	prev     netstat.Counters
	download uint64
	upload   uint64
}

// NewTracker returns a tracker that reports rates in the given unit.
func NewTracker(unit Unit) *Tracker {
	return &Tracker{unit: unit}
}

// Rebaseline stores cur as the comparison point for the next observation
// without emitting a rate. Used at startup and whenever the monitored
// interface changes, so the first sample against a new counter stream does
// not produce a bogus delta.
func (t *Tracker) Rebaseline(cur netstat.Counters) {
	t.prev = cur
}

// Observe computes new raw rates from the previous reading and cur, taken
// intervalSeconds apart. intervalSeconds must be at least 1; configuration
// guarantees this. The reading becomes the new baseline unconditionally.
func (t *Tracker) Observe(cur netstat.Counters, intervalSeconds uint32) {
	t.download = t.perSecond(cur.Received, t.prev.Received, intervalSeconds)
	t.upload = t.perSecond(cur.Sent, t.prev.Sent, intervalSeconds)
	t.prev = cur
}

// perSecond computes one direction's rate. A counter that moved backwards
// means the interface was reset or replaced; the sample resynchronizes the
// baseline and yields 0 instead of letting the subtraction wrap.
func (t *Tracker) perSecond(cur, prev uint64, intervalSeconds uint32) uint64 {
	if cur < prev {
		return 0
	}

	delta := cur - prev
	if t.unit == Bits {
		delta *= 8
	}
	return delta / uint64(intervalSeconds)
}

// SetUnit rescales the stored raw rates in place so displayed values change
// immediately, without waiting for fresh counter data. Switching from bits
// to bytes truncates rates that are not a multiple of 8; the error is at
// most 7 bit/s and disappears on the next sample.
func (t *Tracker) SetUnit(unit Unit) {
	if unit == t.unit {
		return
	}

	if unit == Bits {
		t.download *= 8
		t.upload *= 8
	} else {
		t.download /= 8
		t.upload /= 8
	}
	t.unit = unit
}

// Unit returns the unit the stored rates are expressed in.
func (t *Tracker) Unit() Unit {
	return t.unit
}

// Download returns the raw download rate in the current unit.
func (t *Tracker) Download() uint64 {
	return t.download
}

// Upload returns the raw upload rate in the current unit.
func (t *Tracker) Upload() uint64 {
	return t.upload
}
