package metrics

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/bittin/bitrate/internal/monitor"
	"github.com/bittin/bitrate/internal/rate"
)

// stubSnapshotter returns a fixed snapshot.
type stubSnapshotter struct {
	snap monitor.Snapshot
}

func (s *stubSnapshotter) Snapshot() monitor.Snapshot {
	return s.snap
}

func TestExporter_Collect_Bytes(t *testing.T) {
	exporter := NewExporter(&stubSnapshotter{snap: monitor.Snapshot{
		Interface:   "wlan0",
		Unit:        rate.Bytes,
		DownloadRaw: 2048,
		UploadRaw:   512,
	}})

	expected := `
# HELP bitrate_download_bytes_per_second Current download rate on the monitored interface.
# TYPE bitrate_download_bytes_per_second gauge
bitrate_download_bytes_per_second{interface="wlan0"} 2048
# HELP bitrate_interface_up Whether a live interface is currently being monitored.
# TYPE bitrate_interface_up gauge
bitrate_interface_up 1
# HELP bitrate_upload_bytes_per_second Current upload rate on the monitored interface.
# TYPE bitrate_upload_bytes_per_second gauge
bitrate_upload_bytes_per_second{interface="wlan0"} 512
`
	assert.NoError(t, testutil.CollectAndCompare(exporter, strings.NewReader(expected)))
}

func TestExporter_Collect_BitsConvertedToBytes(t *testing.T) {
	exporter := NewExporter(&stubSnapshotter{snap: monitor.Snapshot{
		Interface:   "eth0",
		Unit:        rate.Bits,
		DownloadRaw: 8000,
		UploadRaw:   1600,
	}})

	expected := `
# HELP bitrate_download_bytes_per_second Current download rate on the monitored interface.
# TYPE bitrate_download_bytes_per_second gauge
bitrate_download_bytes_per_second{interface="eth0"} 1000
# HELP bitrate_upload_bytes_per_second Current upload rate on the monitored interface.
# TYPE bitrate_upload_bytes_per_second gauge
bitrate_upload_bytes_per_second{interface="eth0"} 200
`
	assert.NoError(t, testutil.CollectAndCompare(exporter, strings.NewReader(expected),
		"bitrate_download_bytes_per_second", "bitrate_upload_bytes_per_second"))
}

func TestExporter_Collect_NoInterface(t *testing.T) {
	exporter := NewExporter(&stubSnapshotter{snap: monitor.Snapshot{}})

	expected := `
# HELP bitrate_interface_up Whether a live interface is currently being monitored.
# TYPE bitrate_interface_up gauge
bitrate_interface_up 0
`
	assert.NoError(t, testutil.CollectAndCompare(exporter, strings.NewReader(expected),
		"bitrate_interface_up"))
}
