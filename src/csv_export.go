package rfcore

/*------------------------------------------------------------------
 *
 * Purpose:	Result-to-CSV exporter contract from spec.md section 6:
 *		the core produces the (timestamp_us, frequency_hz,
 *		rssi_dbm, data_hex) tuple per frame; the storage
 *		collaborator writes the file. We additionally provide a
 *		convenience writer for the simulation harness and tests.
 *
 *----------------------------------------------------------------*/

import (
	"encoding/csv"
	"encoding/hex"
	"io"
	"strconv"
	"time"

	"github.com/lestrrat-go/strftime"
)

// FrameCSVRow produces the exporter-contract tuple for one frame.
func FrameCSVRow(f Frame) [4]string {
	return [4]string{
		strconv.FormatUint(uint64(f.TimestampUs), 10),
		strconv.FormatUint(uint64(f.FrequencyHz), 10),
		strconv.FormatInt(int64(f.RSSIDbm), 10),
		hex.EncodeToString(f.Data),
	}
}

// WriteFramesCSV writes a header plus one row per frame to w.
func WriteFramesCSV(w io.Writer, frames []Frame) error {
	var writer = csv.NewWriter(w)
	if err := writer.Write([]string{"timestamp_us", "frequency_hz", "rssi_dbm", "data_hex"}); err != nil {
		return err
	}
	for _, f := range frames {
		var row = FrameCSVRow(f)
		if err := writer.Write(row[:]); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// formatReportTimestamp renders a unix-microsecond timestamp for the
// human-readable threat report, in the teacher's strftime-based style.
func formatReportTimestamp(epochUs uint32) string {
	var t = time.UnixMicro(int64(epochUs)).UTC()
	var formatted, err = strftime.Format("%Y-%m-%d %H:%M:%S", t)
	if err != nil {
		return t.Format("2006-01-02 15:04:05")
	}
	return formatted
}
