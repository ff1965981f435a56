// Package web serves the JSON stats API and the Prometheus metrics
// endpoint.
package web

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bittin/bitrate/internal/config"
	"github.com/bittin/bitrate/internal/metrics"
	"github.com/bittin/bitrate/internal/rate"
)

// ConfigProvider supplies the current display configuration.
type ConfigProvider interface {
	GetConfig() *config.Config
}

// Server exposes monitor state over HTTP.
type Server struct {
	mon      metrics.Snapshotter
	cfg      ConfigProvider
	registry *prometheus.Registry
}

// NewServer creates a server reading from mon. It owns its own Prometheus
// registry so repeated construction does not collide.
func NewServer(mon metrics.Snapshotter, cfg ConfigProvider) *Server {
	registry := prometheus.NewRegistry()
	registry.MustRegister(metrics.NewExporter(mon))

	return &Server{
		mon:      mon,
		cfg:      cfg,
		registry: registry,
	}
}

// Handler returns the HTTP handler serving /api/stats and /metrics.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/stats", s.handleStats)
	mux.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	return mux
}

// rateResponse is one direction's rendered rate. Raw is in the unit the
// display is configured for.
type rateResponse struct {
	Value  string `json:"value"`
	Suffix string `json:"suffix"`
	Raw    uint64 `json:"raw"`
}

type statsResponse struct {
	Interface string        `json:"interface"`
	Unit      rate.Unit     `json:"unit"`
	Download  *rateResponse `json:"download,omitempty"`
	Upload    *rateResponse `json:"upload,omitempty"`
}

// handleStats renders the current snapshot, honoring the configured
// download/upload display filters.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	snap := s.mon.Snapshot()
	cfg := s.cfg.GetConfig()

	response := statsResponse{
		Interface: snap.Interface,
		Unit:      snap.Unit,
	}
	if cfg.ShowDownload {
		response.Download = &rateResponse{
			Value:  snap.Download.Value,
			Suffix: snap.Download.Suffix,
			Raw:    snap.DownloadRaw,
		}
	}
	if cfg.ShowUpload {
		response.Upload = &rateResponse{
			Value:  snap.Upload.Value,
			Suffix: snap.Upload.Suffix,
			Raw:    snap.UploadRaw,
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		slog.Error("Failed to encode stats response", "error", err)
	}
}
