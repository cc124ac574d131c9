package report

import (
	"io"
	"os"
	"sync"
)

// Reporter is responsible for reporting errors, warnings, and other kinds of
// messages to the user.  The reporter respects the set log level and is
// synchronized: its methods can be safely called from multiple goroutines.
type Reporter struct {
	// The mutex used to synchonize different error method calls.
	m *sync.Mutex

	// The selected log level of the reporter.  This must be one of the
	// enumerated log levels below.
	logLevel int

	// Indicates whether or not an error has been detected.
	isErr bool

	// The writer all messages are displayed to.  Generated IR may be written to
	// standard out so diagnostics never go there.
	out io.Writer
}

// Enumeration of the different possible log levels.
const (
	LogLevelSilent  = iota // Displays no output.
	LogLevelError          // Displays only errors to the user.
	LogLevelWarn           // Displays only warnings and errors to the user.
	LogLevelVerbose        // Displays all compilation messages to the user (default).
)

// LogLevelNames maps the CLI names of the log levels to their values.
var LogLevelNames = map[string]int{
	"silent":  LogLevelSilent,
	"error":   LogLevelError,
	"warn":    LogLevelWarn,
	"verbose": LogLevelVerbose,
}

// rep is the global reporter instance.
var rep = newReporter(os.Stderr, LogLevelVerbose)

func newReporter(out io.Writer, logLevel int) *Reporter {
	return &Reporter{
		m:        &sync.Mutex{},
		logLevel: logLevel,
		out:      out,
	}
}

// InitReporter initializes the global reporter to the given log level writing
// to standard error.
func InitReporter(logLevel int) {
	rep = newReporter(os.Stderr, logLevel)
}

// InitReporterTo initializes the global reporter to write to out.
func InitReporterTo(out io.Writer, logLevel int) {
	rep = newReporter(out, logLevel)
}
