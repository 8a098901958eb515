package rfcore

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrameCSVRow(t *testing.T) {
	var f = Frame{TimestampUs: 1000, FrequencyHz: 433920000, RSSIDbm: -72, Data: []byte{0xDE, 0xAD}}
	var row = FrameCSVRow(f)
	assert.Equal(t, [4]string{"1000", "433920000", "-72", "dead"}, row)
}

func TestWriteFramesCSV(t *testing.T) {
	var frames = []Frame{
		{TimestampUs: 1, FrequencyHz: 433920000, RSSIDbm: -50, Data: []byte{0x01}},
		{TimestampUs: 2, FrequencyHz: 433920000, RSSIDbm: -55, Data: []byte{0x02}},
	}
	var b strings.Builder
	assert.NoError(t, WriteFramesCSV(&b, frames))

	var lines = strings.Split(strings.TrimSpace(b.String()), "\n")
	assert.Equal(t, 3, len(lines))
	assert.Equal(t, "timestamp_us,frequency_hz,rssi_dbm,data_hex", lines[0])
}

func TestFormatReportTimestampIsStable(t *testing.T) {
	var a = formatReportTimestamp(0)
	var b = formatReportTimestamp(0)
	assert.Equal(t, a, b)
}
