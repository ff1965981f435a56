// Package main provides the entry point for bitrate, a panel applet that
// samples the default network interface's throughput and renders it as a
// compact, unit-scaled rate string.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bittin/bitrate/internal/config"
	"github.com/bittin/bitrate/internal/logging"
	"github.com/bittin/bitrate/internal/monitor"
	"github.com/bittin/bitrate/internal/netstat"
	"github.com/bittin/bitrate/internal/rate"
	"github.com/bittin/bitrate/internal/tray"
	"github.com/bittin/bitrate/internal/web"
)

func main() {
	var listenAddr string
	var interval int
	var sourceKind string
	var noTray bool

	flag.StringVar(&listenAddr, "listen", "", "HTTP listen address for /api/stats and /metrics (overrides config)")
	flag.IntVar(&interval, "interval", 0, "Sampling interval in seconds, 1-10 (overrides config)")
	flag.StringVar(&sourceKind, "source", "sysfs", "Counter source: sysfs or netlink")
	flag.BoolVar(&noTray, "no-tray", false, "Run headless without the system tray entry")
	flag.Parse()

	// Initialize structured logging
	logging.SetupFromEnv()

	manager, err := config.NewManager()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Flags override the persisted configuration for this run.
	cfg := manager.GetConfig()
	if listenAddr != "" {
		cfg.Listen = listenAddr
	}
	if interval != 0 {
		cfg.UpdateRateSeconds = interval
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	var src netstat.Source
	switch sourceKind {
	case "sysfs":
		src = netstat.NewSysfsSource()
	case "netlink":
		src = netstat.NewNetlinkSource()
	default:
		slog.Error("Unknown counter source", "source", sourceKind)
		os.Exit(1)
	}

	mon := monitor.New(src, monitor.Options{
		Unit:              cfg.Unit,
		UpdateRateSeconds: cfg.UpdateRateSeconds,
	})
	mon.Start()
	defer mon.Stop()

	var server *http.Server
	if cfg.Listen != "" {
		server = &http.Server{
			Addr:    cfg.Listen,
			Handler: web.NewServer(mon, manager).Handler(),
		}
		go func() {
			slog.Info("Web server listening", "address", cfg.Listen)
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				slog.Error("HTTP server error", "error", err)
			}
		}()
	}

	if noTray {
		runHeadless(mon)
	} else {
		runTray(mon, manager, cfg)
	}

	if server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(ctx)
	}
	slog.Info("Shutting down")
}

// updateRateSteps are the sampling intervals the tray cycles through. All
// within the config bounds.
var updateRateSteps = [...]int{1, 2, 5, 10}

// nextUpdateRate returns the first step above current, wrapping to the
// fastest one.
func nextUpdateRate(current int) int {
	for _, step := range updateRateSteps {
		if step > current {
			return step
		}
	}
	return updateRateSteps[0]
}

// runTray drives the tray presentation. Blocks until quit is requested from
// the tray menu or a termination signal arrives.
func runTray(mon *monitor.Monitor, manager *config.Manager, cfg *config.Config) {
	t := tray.New(cfg.ShowDownload, cfg.ShowUpload)
	t.SetUpdateRate(cfg.UpdateRateSeconds)

	mon.OnUpdate(t.SetSnapshot)

	if err := t.OnToggleUnit(func() {
		next := rate.Bits
		if mon.Snapshot().Unit == rate.Bits {
			next = rate.Bytes
		}
		mon.SetUnit(next)
		if err := manager.UpdateField(func(c *config.Config) { c.Unit = next }); err != nil {
			slog.Warn("Failed to persist unit change", "error", err)
		}
	}); err != nil {
		slog.Error("Failed to register tray callback", "error", err)
		return
	}
	if err := t.OnCycleUpdateRate(func() {
		next := nextUpdateRate(mon.UpdateRate())
		mon.SetUpdateRate(next)
		t.SetUpdateRate(next)
		if err := manager.UpdateField(func(c *config.Config) { c.UpdateRateSeconds = next }); err != nil {
			slog.Warn("Failed to persist update rate change", "error", err)
		}
	}); err != nil {
		slog.Error("Failed to register tray callback", "error", err)
		return
	}
	if err := t.OnToggleDownload(func() {
		if err := manager.UpdateField(func(c *config.Config) { c.ShowDownload = !c.ShowDownload }); err != nil {
			slog.Warn("Failed to persist display change", "error", err)
		}
		current := manager.GetConfig()
		t.SetDisplayFilters(current.ShowDownload, current.ShowUpload)
	}); err != nil {
		slog.Error("Failed to register tray callback", "error", err)
		return
	}
	if err := t.OnToggleUpload(func() {
		if err := manager.UpdateField(func(c *config.Config) { c.ShowUpload = !c.ShowUpload }); err != nil {
			slog.Warn("Failed to persist display change", "error", err)
		}
		current := manager.GetConfig()
		t.SetDisplayFilters(current.ShowDownload, current.ShowUpload)
	}); err != nil {
		slog.Error("Failed to register tray callback", "error", err)
		return
	}
	if err := t.OnQuit(t.Quit); err != nil {
		slog.Error("Failed to register tray callback", "error", err)
		return
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		t.Quit()
	}()

	if err := t.Run(); err != nil {
		slog.Error("Failed to run system tray", "error", err)
	}
}

// runHeadless waits for a termination signal, logging samples at debug
// level. Useful with -listen when only the HTTP surface is wanted.
func runHeadless(mon *monitor.Monitor) {
	mon.OnUpdate(func(snap monitor.Snapshot) {
		slog.Debug("Sample",
			"interface", snap.Interface,
			"download", snap.Download.Value+" "+snap.Download.Suffix,
			"upload", snap.Upload.Value+" "+snap.Upload.Suffix)
	})

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
}
