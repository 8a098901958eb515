package main

/*------------------------------------------------------------------
 *
 * Name:	rfcore-sim
 *
 * Purpose:	Replay a recorded sub-GHz capture (CSV: timestamp_us,
 *		frequency_hz, rssi_dbm, data_hex) through a CoreContext
 *		and print fingerprinting, protocol-inference, and
 *		threat-model results.
 *
 * Usage:	rfcore-sim [OPTIONS] capture.csv
 *
 *---------------------------------------------------------------*/

import (
	"encoding/csv"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/pflag"

	rfcore "github.com/flipper-rf/rfcore/src"
)

func main() {
	var configPath = pflag.StringP("config", "c", "", "YAML config file (only log_level takes effect).")
	var verbose = pflag.BoolP("verbose", "v", false, "Log at debug level.")
	var help = pflag.Bool("help", false, "Display help text.")

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "rfcore-sim - replay a sub-GHz capture through the rfcore analysis pipeline\n")
		fmt.Fprintf(os.Stderr, "\n")
		fmt.Fprintf(os.Stderr, "Usage: %s [OPTIONS] capture.csv\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\n")
		fmt.Fprintf(os.Stderr, "capture.csv columns: timestamp_us,frequency_hz,rssi_dbm,data_hex\n")
		pflag.PrintDefaults()
	}

	pflag.Parse()

	if *help {
		pflag.Usage()
		os.Exit(0)
	}

	if len(pflag.Args()) != 1 {
		fmt.Fprintf(os.Stderr, "Exactly one argument required (capture.csv) - got %v\n", pflag.Args())
		os.Exit(1)
	}

	var cfg = rfcore.DefaultConfig()
	if *configPath != "" {
		var loaded, err = rfcore.LoadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Can't load config %s: %s\n", *configPath, err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if *verbose {
		cfg.LogLevel = "debug"
	}

	var fp, err = os.Open(pflag.Arg(0)) //nolint:gosec
	if err != nil {
		fmt.Fprintf(os.Stderr, "Can't open %s: %s\n", pflag.Arg(0), err)
		os.Exit(1)
	}
	defer fp.Close()

	var frames, readErr = read_capture_csv(fp)
	if readErr != nil {
		fmt.Fprintf(os.Stderr, "Can't parse capture: %s\n", readErr)
		os.Exit(1)
	}

	if len(frames) == 0 {
		fmt.Fprintf(os.Stderr, "Capture contained no frames.\n")
		os.Exit(1)
	}

	var core = rfcore.NewCoreContext(cfg)
	core.StartFingerprinting()
	core.StartThreatAnalysis()

	var lastUs uint32
	for _, f := range frames {
		core.OnFrame(f)
		lastUs = f.TimestampUs
	}
	core.StopFingerprinting()

	var hypothesis = core.AnalyzeProtocol()
	core.AssessThreat()

	fmt.Printf("Frames replayed: %d\n", len(frames))
	var fp_result = core.SnapshotFingerprint()
	fmt.Printf("Fingerprint hash: %04x  clock stability: %d ppm\n",
		fp_result.UniqueHash(), fp_result.ClockStabilityPPM())
	fmt.Printf("Modulation: %s (confidence %d)   Encoding: %s (confidence %d)\n",
		hypothesis.ModulationName(), hypothesis.ModulationConfidence(),
		hypothesis.EncodingName(), hypothesis.EncodingConfidence())
	fmt.Printf("Overall protocol confidence: %d\n", hypothesis.OverallConfidence())
	fmt.Println()
	fmt.Println(core.ThreatReportText(lastUs, 2000))
}

// read_capture_csv parses the four-column capture format WriteFramesCSV
// produces, tolerating a header row.
func read_capture_csv(r io.Reader) ([]rfcore.Frame, error) {
	var reader = csv.NewReader(r)
	reader.FieldsPerRecord = 4

	var frames []rfcore.Frame
	var first = true
	for {
		var record, err = reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		if first {
			first = false
			if record[0] == "timestamp_us" {
				continue
			}
		}

		var timestampUs, terr = strconv.ParseUint(record[0], 10, 32)
		if terr != nil {
			return nil, fmt.Errorf("bad timestamp_us %q: %w", record[0], terr)
		}
		var freqHz, ferr = strconv.ParseUint(record[1], 10, 32)
		if ferr != nil {
			return nil, fmt.Errorf("bad frequency_hz %q: %w", record[1], ferr)
		}
		var rssi, rerr = strconv.ParseInt(record[2], 10, 16)
		if rerr != nil {
			return nil, fmt.Errorf("bad rssi_dbm %q: %w", record[2], rerr)
		}
		var data, herr = hex.DecodeString(record[3])
		if herr != nil {
			return nil, fmt.Errorf("bad data_hex %q: %w", record[3], herr)
		}

		frames = append(frames, rfcore.Frame{
			TimestampUs: uint32(timestampUs),
			FrequencyHz: uint32(freqHz),
			RSSIDbm:     int16(rssi),
			Data:        data,
		})
	}
	return frames, nil
}
