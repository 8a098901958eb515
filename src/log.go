package rfcore

/*------------------------------------------------------------------
 *
 * Purpose:	Structured diagnostic logging for the core, analogous to
 *		the teacher's CSV-oriented log.go but carrying
 *		engine-state transitions and saturation events instead
 *		of decoded packets.
 *
 *----------------------------------------------------------------*/

import (
	"os"

	"github.com/charmbracelet/log"
)

var coreLogger = log.NewWithOptions(os.Stderr, log.Options{
	Prefix: "rfcore",
})

// setLogLevel applies a Config's LogLevel string, defaulting to Info
// on an unrecognized value rather than failing init.
func setLogLevel(level string) {
	parsed, err := log.ParseLevel(level)
	if err != nil {
		parsed = log.InfoLevel
	}
	coreLogger.SetLevel(parsed)
}

func logSaturation(component string, capacity int) {
	coreLogger.Warn("capacity exceeded", "component", component, "capacity", capacity)
}

func logStateTransition(component, from, to string) {
	coreLogger.Debug("state transition", "component", component, "from", from, "to", to)
}

func logInvariantBroken(component, detail string) {
	coreLogger.Error("internal invariant broken", "component", component, "detail", detail)
}
