package tray

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bittin/bitrate/internal/monitor"
	"github.com/bittin/bitrate/internal/rate"
)

func TestNew_InitializesCorrectly(t *testing.T) {
	tray := New(true, true)

	assert.NotNil(t, tray, "tray should not be nil")
	assert.True(t, tray.showDownload)
	assert.True(t, tray.showUpload)
	assert.NotNil(t, tray.done, "done channel should be initialized")
	assert.False(t, tray.running, "should not be running initially")
}

func TestTray_CallbackRegistration(t *testing.T) {
	tray := New(true, true)

	toggleCalled := false
	rateCalled := false
	downloadCalled := false
	uploadCalled := false
	quitCalled := false

	assert.NoError(t, tray.OnToggleUnit(func() { toggleCalled = true }))
	assert.NoError(t, tray.OnCycleUpdateRate(func() { rateCalled = true }))
	assert.NoError(t, tray.OnToggleDownload(func() { downloadCalled = true }))
	assert.NoError(t, tray.OnToggleUpload(func() { uploadCalled = true }))
	assert.NoError(t, tray.OnQuit(func() { quitCalled = true }))

	tray.onToggleUnit()
	tray.onCycleRate()
	tray.onToggleDownload()
	tray.onToggleUpload()
	tray.onQuit()

	assert.True(t, toggleCalled)
	assert.True(t, rateCalled)
	assert.True(t, downloadCalled)
	assert.True(t, uploadCalled)
	assert.True(t, quitCalled)
}

func TestTray_CallbackErrorsAfterRunning(t *testing.T) {
	tray := New(true, true)

	// Simulate running state without actually calling Run()
	// (Run() would block waiting for systray which requires a display)
	tray.mu.Lock()
	tray.running = true
	tray.mu.Unlock()

	assert.ErrorIs(t, tray.OnToggleUnit(func() {}), ErrAlreadyRunning)
	assert.ErrorIs(t, tray.OnCycleUpdateRate(func() {}), ErrAlreadyRunning)
	assert.ErrorIs(t, tray.OnToggleDownload(func() {}), ErrAlreadyRunning)
	assert.ErrorIs(t, tray.OnToggleUpload(func() {}), ErrAlreadyRunning)
	assert.ErrorIs(t, tray.OnQuit(func() {}), ErrAlreadyRunning)
}

func TestTray_RunRequiresCallbacks(t *testing.T) {
	tray := New(true, true)

	err := tray.Run()
	assert.ErrorIs(t, err, ErrMissingCallbacks)
}

func TestTray_SetSnapshot(t *testing.T) {
	tray := New(true, true)

	snap := monitor.Snapshot{
		Download: monitor.Display{Value: "1.43", Suffix: "Mb/s"},
		Upload:   monitor.Display{Value: "12", Suffix: "Kb/s"},
	}
	tray.SetSnapshot(snap)

	tray.mu.RLock()
	assert.Equal(t, snap, tray.snap)
	tray.mu.RUnlock()
}

func TestTray_SetDisplayFilters(t *testing.T) {
	tray := New(true, true)

	tray.SetDisplayFilters(false, true)

	tray.mu.RLock()
	assert.False(t, tray.showDownload)
	assert.True(t, tray.showUpload)
	tray.mu.RUnlock()
}

func TestTray_SetUpdateRate(t *testing.T) {
	tray := New(true, true)

	tray.SetUpdateRate(5)

	tray.mu.RLock()
	assert.Equal(t, 5, tray.updateRate)
	tray.mu.RUnlock()
}

func TestTray_UpdatesBeforeMenuBuilt(t *testing.T) {
	tray := New(true, true)

	// Updates may arrive from the monitor before the systray menu exists.
	// They must neither panic nor race the menu construction.
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(3)
		go func() {
			defer wg.Done()
			tray.SetSnapshot(monitor.Snapshot{Interface: "wlan0"})
		}()
		go func() {
			defer wg.Done()
			tray.SetDisplayFilters(true, false)
		}()
		go func() {
			defer wg.Done()
			tray.SetUpdateRate(2)
		}()
	}
	wg.Wait()
}

func TestTray_QuitSafeToCallMultipleTimes(t *testing.T) {
	tray := New(true, true)

	tray.Quit()
	tray.Quit()

	select {
	case <-tray.done:
		// closed as expected
	default:
		t.Fatal("done channel should be closed after Quit()")
	}
}

func TestFormatTitle(t *testing.T) {
	snap := monitor.Snapshot{
		Unit:     rate.Bits,
		Download: monitor.Display{Value: "1.43", Suffix: "Mb/s"},
		Upload:   monitor.Display{Value: "12", Suffix: "Kb/s"},
	}

	tests := []struct {
		name         string
		showDownload bool
		showUpload   bool
		expected     string
	}{
		{"both directions", true, true, "↓ 1.43 Mb/s  ↑ 12 Kb/s"},
		{"download only", true, false, "↓ 1.43 Mb/s"},
		{"upload only", false, true, "↑ 12 Kb/s"},
		{"neither", false, false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatTitle(snap, tt.showDownload, tt.showUpload))
		})
	}
}

func TestGenerateArrowsIcon(t *testing.T) {
	icon := iconArrowsPNG

	assert.NotNil(t, icon)
	// PNG magic bytes
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, icon[:4])
}
