// Package monitor drives the sampling loop. A Monitor owns the selected
// interface, the rate tracker, and the rendered display strings, and
// mutates them only while handling a timer tick or a reconfiguration call.
package monitor

import (
	"log/slog"
	"sync"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/bittin/bitrate/internal/netstat"
	"github.com/bittin/bitrate/internal/rate"
)

// ReselectInterval is the cadence at which the default interface is
// re-resolved, tracking hot-plug, Wi-Fi and VPN changes.
const ReselectInterval = 5 * time.Second

// Display is one formatted rate: a bounded-width value and its unit suffix.
type Display struct {
	Value  string
	Suffix string
}

// Snapshot is a point-in-time copy of the monitor's state for consumers.
// Interface is empty while no interface qualifies for monitoring.
type Snapshot struct {
	Interface   string
	Unit        rate.Unit
	DownloadRaw uint64
	UploadRaw   uint64
	Download    Display
	Upload      Display
}

// Options configures a Monitor.
type Options struct {
	// Unit is the initial unit for rates.
	Unit rate.Unit
	// UpdateRateSeconds is the initial sampling interval. Values below 1
	// are raised to 1.
	UpdateRateSeconds int
	// Clock drives the tickers; nil means the wall clock. Tests inject a
	// mock.
	Clock clock.Clock
}

// Monitor periodically samples the default interface's byte counters and
// keeps display-ready throughput strings. It is safe for concurrent use.
type Monitor struct {
	src netstat.Source
	clk clock.Clock

	mu         sync.RWMutex
	iface      string
	tracker    *rate.Tracker
	updateRate uint32
	download   Display
	upload     Display
	onUpdate   func(Snapshot)
	started    bool

	intervalCh chan time.Duration
	stopCh     chan struct{}
	stopOnce   sync.Once
	doneCh     chan struct{}
}

// New creates a monitor reading from src.
func New(src netstat.Source, opts Options) *Monitor {
	clk := opts.Clock
	if clk == nil {
		clk = clock.New()
	}
	updateRate := opts.UpdateRateSeconds
	if updateRate < 1 {
		updateRate = 1
	}

	m := &Monitor{
		src:        src,
		clk:        clk,
		tracker:    rate.NewTracker(opts.Unit),
		updateRate: uint32(updateRate),
		intervalCh: make(chan time.Duration, 1),
		stopCh:     make(chan struct{}),
		doneCh:     make(chan struct{}),
	}
	m.render()
	return m
}

// OnUpdate registers a callback invoked after every successful sample tick
// and after every unit change. The callback runs outside the monitor's
// lock.
func (m *Monitor) OnUpdate(callback func(Snapshot)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onUpdate = callback
}

// Start resolves the initial interface, baselines its counters, and begins
// the sampling loop.
func (m *Monitor) Start() {
	m.mu.Lock()
	if m.started {
		m.mu.Unlock()
		return
	}
	m.started = true
	interval := m.updateRate
	m.mu.Unlock()

	m.reselect()
	go m.loop()

	slog.Info("Monitor started", "interval_seconds", interval)
}

// Stop terminates the sampling loop and waits for it to exit. Safe to call
// multiple times.
func (m *Monitor) Stop() {
	m.mu.RLock()
	started := m.started
	m.mu.RUnlock()
	if !started {
		return
	}

	m.stopOnce.Do(func() { close(m.stopCh) })
	<-m.doneCh
}

// Snapshot returns a copy of the current state.
func (m *Monitor) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshotLocked()
}

// SetUnit rescales the current rates to the new unit and re-renders
// immediately, without waiting for fresh counter data.
func (m *Monitor) SetUnit(unit rate.Unit) {
	m.mu.Lock()
	if unit == m.tracker.Unit() {
		m.mu.Unlock()
		return
	}
	m.tracker.SetUnit(unit)
	m.render()
	snap := m.snapshotLocked()
	callback := m.onUpdate
	m.mu.Unlock()

	slog.Info("Unit changed", "unit", unit.String())
	if callback != nil {
		callback(snap)
	}
}

// UpdateRate returns the current sampling interval in seconds.
func (m *Monitor) UpdateRate() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int(m.updateRate)
}

// SetUpdateRate changes the sampling interval. The new interval is applied
// between ticks; the display is untouched until the next sample. Values
// outside the configured bounds are ignored by the config layer; the
// monitor only guards against zero.
func (m *Monitor) SetUpdateRate(seconds int) {
	if seconds < 1 {
		return
	}

	m.mu.Lock()
	m.updateRate = uint32(seconds)
	m.mu.Unlock()

	// Latest value wins if the loop has not consumed a prior change yet.
	select {
	case <-m.intervalCh:
	default:
	}
	m.intervalCh <- time.Duration(seconds) * time.Second
}

func (m *Monitor) loop() {
	defer close(m.doneCh)

	m.mu.RLock()
	interval := time.Duration(m.updateRate) * time.Second
	m.mu.RUnlock()

	sample := m.clk.Ticker(interval)
	defer sample.Stop()
	reselectTicker := m.clk.Ticker(ReselectInterval)
	defer reselectTicker.Stop()

	for {
		select {
		case <-m.stopCh:
			return
		case d := <-m.intervalCh:
			sample.Reset(d)
		case <-sample.C:
			m.sampleTick()
		case <-reselectTicker.C:
			m.reselect()
		}
	}
}

// sampleTick reads fresh counters and recomputes the rates. No interface
// or an unreadable sample leaves the previous rates on display.
func (m *Monitor) sampleTick() {
	m.mu.Lock()
	if m.iface == "" {
		m.mu.Unlock()
		return
	}

	cur, err := m.src.Counters(m.iface)
	if err != nil {
		slog.Debug("Counter read failed", "interface", m.iface, "error", err)
		m.mu.Unlock()
		return
	}

	m.tracker.Observe(cur, m.updateRate)
	m.render()
	snap := m.snapshotLocked()
	callback := m.onUpdate
	m.mu.Unlock()

	if callback != nil {
		callback(snap)
	}
}

// reselect re-resolves the default interface. On a change the tracker is
// re-baselined from the new interface's counters so the next sample does
// not span two counter streams.
func (m *Monitor) reselect() {
	name, ok := netstat.SelectDefault(m.src)

	m.mu.Lock()
	defer m.mu.Unlock()

	switch {
	case !ok:
		if m.iface != "" {
			slog.Info("Default interface lost", "interface", m.iface)
			m.iface = ""
		}
	case name != m.iface:
		slog.Info("Default interface changed", "from", m.iface, "to", name)
		m.iface = name
		if cur, err := m.src.Counters(name); err == nil {
			m.tracker.Rebaseline(cur)
		}
	}
}

// render recomputes the display strings from the raw rates. Callers must
// hold the lock.
func (m *Monitor) render() {
	unit := m.tracker.Unit()
	value, suffix := rate.Format(m.tracker.Download(), unit)
	m.download = Display{Value: value, Suffix: suffix}
	value, suffix = rate.Format(m.tracker.Upload(), unit)
	m.upload = Display{Value: value, Suffix: suffix}
}

func (m *Monitor) snapshotLocked() Snapshot {
	return Snapshot{
		Interface:   m.iface,
		Unit:        m.tracker.Unit(),
		DownloadRaw: m.tracker.Download(),
		UploadRaw:   m.tracker.Upload(),
		Download:    m.download,
		Upload:      m.upload,
	}
}
