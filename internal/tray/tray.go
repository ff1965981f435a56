// Package tray renders the current throughput in the system tray.
package tray

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"fyne.io/systray"

	"github.com/bittin/bitrate/internal/monitor"
	"github.com/bittin/bitrate/internal/rate"
)

var (
	// ErrAlreadyRunning is returned when attempting to modify callbacks after Run() has been called.
	ErrAlreadyRunning = errors.New("cannot modify callbacks after Tray.Run() is called")
	// ErrRunTwice is returned when Run() is called more than once.
	ErrRunTwice = errors.New("Tray.Run() called twice")
	// ErrMissingCallbacks is returned when Run() is called without all required callbacks set.
	ErrMissingCallbacks = errors.New("all callbacks (OnToggleUnit, OnQuit) must be set before calling Run()")
)

// Tray manages the system tray entry showing the two throughput strings.
type Tray struct {
	mu sync.RWMutex

	// State
	snap         monitor.Snapshot
	showDownload bool
	showUpload   bool
	updateRate   int

	// Menu items, nil until onReady builds the menu
	menuRate     *systray.MenuItem
	menuUnit     *systray.MenuItem
	menuInterval *systray.MenuItem
	menuDownload *systray.MenuItem
	menuUpload   *systray.MenuItem
	menuQuit     *systray.MenuItem

	// Callbacks - must be set before Run() is called
	onToggleUnit     func()
	onCycleRate      func()
	onToggleDownload func()
	onToggleUpload   func()
	onQuit           func()

	// Done channel to signal goroutine termination
	done chan struct{}

	// Lifecycle flags
	running   bool
	closeOnce sync.Once
}

// New creates a new tray manager with the given display filters.
func New(showDownload, showUpload bool) *Tray {
	return &Tray{
		showDownload: showDownload,
		showUpload:   showUpload,
		updateRate:   1,
		done:         make(chan struct{}),
	}
}

// OnToggleUnit registers a callback for when the unit toggle is clicked.
// Must be called before Run(). Returns ErrAlreadyRunning if called after Run().
func (t *Tray) OnToggleUnit(callback func()) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.running {
		return ErrAlreadyRunning
	}
	t.onToggleUnit = callback
	return nil
}

// OnCycleUpdateRate registers a callback for when the update rate item is
// clicked. Must be called before Run(). Returns ErrAlreadyRunning if called
// after Run().
func (t *Tray) OnCycleUpdateRate(callback func()) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.running {
		return ErrAlreadyRunning
	}
	t.onCycleRate = callback
	return nil
}

// OnToggleDownload registers a callback for when the download checkbox is
// clicked. Must be called before Run(). Returns ErrAlreadyRunning if called
// after Run().
func (t *Tray) OnToggleDownload(callback func()) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.running {
		return ErrAlreadyRunning
	}
	t.onToggleDownload = callback
	return nil
}

// OnToggleUpload registers a callback for when the upload checkbox is
// clicked. Must be called before Run(). Returns ErrAlreadyRunning if called
// after Run().
func (t *Tray) OnToggleUpload(callback func()) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.running {
		return ErrAlreadyRunning
	}
	t.onToggleUpload = callback
	return nil
}

// OnQuit registers a callback for when Quit is clicked.
// Must be called before Run(). Returns ErrAlreadyRunning if called after Run().
func (t *Tray) OnQuit(callback func()) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.running {
		return ErrAlreadyRunning
	}
	t.onQuit = callback
	return nil
}

// SetSnapshot updates the displayed throughput.
func (t *Tray) SetSnapshot(snap monitor.Snapshot) {
	t.mu.Lock()
	t.snap = snap
	t.mu.Unlock()
	t.refresh()
}

// SetDisplayFilters updates which directions are shown.
func (t *Tray) SetDisplayFilters(showDownload, showUpload bool) {
	t.mu.Lock()
	t.showDownload = showDownload
	t.showUpload = showUpload
	t.mu.Unlock()
	t.refresh()
}

// SetUpdateRate updates the sampling interval shown in the menu.
func (t *Tray) SetUpdateRate(seconds int) {
	t.mu.Lock()
	t.updateRate = seconds
	t.mu.Unlock()
	t.refresh()
}

// Run starts the system tray entry. It blocks until the tray is closed, so
// call it from the main goroutine. Both required callbacks must be
// registered first.
func (t *Tray) Run() error {
	t.mu.Lock()
	if t.running {
		t.mu.Unlock()
		return ErrRunTwice
	}
	if t.onToggleUnit == nil || t.onQuit == nil {
		t.mu.Unlock()
		return ErrMissingCallbacks
	}
	t.running = true
	t.mu.Unlock()

	systray.Run(t.onReady, t.onExit)
	return nil
}

// Quit closes the tray entry and terminates the click handler goroutine.
// Safe to call multiple times.
func (t *Tray) Quit() {
	t.closeOnce.Do(func() {
		close(t.done)
		systray.Quit()
	})
}

// onReady is called when the tray is ready to be configured.
func (t *Tray) onReady() {
	systray.SetIcon(iconArrowsPNG)
	systray.SetTooltip("bitrate - network throughput")

	t.mu.Lock()
	t.menuRate = systray.AddMenuItem("", "Current throughput")
	t.menuRate.Disable()

	systray.AddSeparator()

	t.menuUnit = systray.AddMenuItem("", "Toggle between bits and bytes")
	t.menuInterval = systray.AddMenuItem("", "Cycle the sampling interval")
	t.menuDownload = systray.AddMenuItemCheckbox("Show download", "Show the download rate", t.showDownload)
	t.menuUpload = systray.AddMenuItemCheckbox("Show upload", "Show the upload rate", t.showUpload)

	systray.AddSeparator()

	t.menuQuit = systray.AddMenuItem("Quit", "Quit the applet")
	t.mu.Unlock()

	go t.handleMenuClicks()

	t.refresh()
	slog.Info("System tray initialized")
}

// onExit is called when the tray is being closed.
func (t *Tray) onExit() {
	slog.Info("System tray closed")
}

// handleMenuClicks processes menu item clicks.
func (t *Tray) handleMenuClicks() {
	for {
		select {
		case <-t.done:
			return
		case _, ok := <-t.menuUnit.ClickedCh:
			if !ok {
				return
			}
			if t.onToggleUnit != nil {
				t.onToggleUnit()
			}
		case _, ok := <-t.menuInterval.ClickedCh:
			if !ok {
				return
			}
			if t.onCycleRate != nil {
				t.onCycleRate()
			}
		case _, ok := <-t.menuDownload.ClickedCh:
			if !ok {
				return
			}
			if t.onToggleDownload != nil {
				t.onToggleDownload()
			}
		case _, ok := <-t.menuUpload.ClickedCh:
			if !ok {
				return
			}
			if t.onToggleUpload != nil {
				t.onToggleUpload()
			}
		case _, ok := <-t.menuQuit.ClickedCh:
			if !ok {
				return
			}
			if t.onQuit != nil {
				t.onQuit()
			}
		}
	}
}

// refresh re-renders the title and menu from the current snapshot. The menu
// items are built under the lock in onReady, so one nil check covers them
// all.
func (t *Tray) refresh() {
	t.mu.RLock()
	menuRate := t.menuRate
	menuUnit := t.menuUnit
	menuInterval := t.menuInterval
	menuDownload := t.menuDownload
	menuUpload := t.menuUpload
	snap := t.snap
	showDownload := t.showDownload
	showUpload := t.showUpload
	updateRate := t.updateRate
	t.mu.RUnlock()

	if menuRate == nil {
		return // Menu not built yet
	}

	title := formatTitle(snap, showDownload, showUpload)
	systray.SetTitle(title)
	if title == "" {
		menuRate.SetTitle("Display disabled")
	} else {
		menuRate.SetTitle(title)
	}

	if snap.Unit == rate.Bits {
		menuUnit.SetTitle("Show bytes")
	} else {
		menuUnit.SetTitle("Show bits")
	}
	menuInterval.SetTitle(fmt.Sprintf("Update rate: %ds", updateRate))

	if showDownload {
		menuDownload.Check()
	} else {
		menuDownload.Uncheck()
	}
	if showUpload {
		menuUpload.Check()
	} else {
		menuUpload.Uncheck()
	}
}

// formatTitle builds the panel string from the two display pairs, honoring
// the display filters.
func formatTitle(snap monitor.Snapshot, showDownload, showUpload bool) string {
	parts := make([]string, 0, 2)
	if showDownload {
		parts = append(parts, fmt.Sprintf("↓ %s %s", snap.Download.Value, snap.Download.Suffix))
	}
	if showUpload {
		parts = append(parts, fmt.Sprintf("↑ %s %s", snap.Upload.Value, snap.Upload.Suffix))
	}
	return strings.Join(parts, "  ")
}
