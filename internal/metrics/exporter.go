// Package metrics exposes monitor state as Prometheus metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/bittin/bitrate/internal/monitor"
	"github.com/bittin/bitrate/internal/rate"
)

// Snapshotter supplies the current monitor state.
type Snapshotter interface {
	Snapshot() monitor.Snapshot
}

// Exporter implements prometheus.Collector over a monitor. Rates are
// always exported in bytes per second, regardless of the display unit.
type Exporter struct {
	mon Snapshotter

	downloadDesc *prometheus.Desc
	uploadDesc   *prometheus.Desc
	upDesc       *prometheus.Desc
}

// NewExporter creates an exporter reading from mon.
func NewExporter(mon Snapshotter) *Exporter {
	return &Exporter{
		mon: mon,
		downloadDesc: prometheus.NewDesc(
			"bitrate_download_bytes_per_second",
			"Current download rate on the monitored interface.",
			[]string{"interface"}, nil,
		),
		uploadDesc: prometheus.NewDesc(
			"bitrate_upload_bytes_per_second",
			"Current upload rate on the monitored interface.",
			[]string{"interface"}, nil,
		),
		upDesc: prometheus.NewDesc(
			"bitrate_interface_up",
			"Whether a live interface is currently being monitored.",
			nil, nil,
		),
	}
}

// Describe implements prometheus.Collector.
func (e *Exporter) Describe(ch chan<- *prometheus.Desc) {
	ch <- e.downloadDesc
	ch <- e.uploadDesc
	ch <- e.upDesc
}

// Collect implements prometheus.Collector.
func (e *Exporter) Collect(ch chan<- prometheus.Metric) {
	snap := e.mon.Snapshot()

	download := snap.DownloadRaw
	upload := snap.UploadRaw
	if snap.Unit == rate.Bits {
		download /= 8
		upload /= 8
	}

	up := 0.0
	if snap.Interface != "" {
		up = 1.0
	}

	ch <- prometheus.MustNewConstMetric(e.downloadDesc, prometheus.GaugeValue,
		float64(download), snap.Interface)
	ch <- prometheus.MustNewConstMetric(e.uploadDesc, prometheus.GaugeValue,
		float64(upload), snap.Interface)
	ch <- prometheus.MustNewConstMetric(e.upDesc, prometheus.GaugeValue, up)
}
