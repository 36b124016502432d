package report

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Reporter is responsible for reporting errors, warnings, and other kinds of
// messages to the user during a run.  The reporter respects the set log level
// and is synchronized: its methods can be safely called from multiple
// goroutines.
type Reporter struct {
	// The mutex used to synchonize different report method calls.
	m *sync.Mutex

	// The selected log level of the reporter.  This must be one of the
	// enumerated log levels below.
	logLevel int

	// The number of errors reported so far.
	errorCount int

	// The identifier of the current run, shown in the header and attached to
	// error banners so logs of separate runs can be told apart.
	runID string

	// When the run started.
	startTime time.Time
}

// Enumeration of the different possible log levels.
const (
	LogLevelSilent  = iota // Displays no output.
	LogLevelError          // Displays only errors to the user.
	LogLevelWarn           // Displays only warnings and errors to the user.
	LogLevelVerbose        // Displays all messages to the user (default).
)

// rep is the global reporter instance.  It starts out verbose so that
// messages reported before InitReporter is called are not lost.
var rep = newReporter(LogLevelVerbose)

// newReporter creates a new reporter with a fresh run id.
func newReporter(logLevel int) *Reporter {
	return &Reporter{
		m:         &sync.Mutex{},
		logLevel:  logLevel,
		runID:     uuid.Must(uuid.NewV7()).String(),
		startTime: time.Now(),
	}
}

// InitReporter initializes the global reporter to the given log level and
// starts a new run.
func InitReporter(logLevel int) {
	rep = newReporter(logLevel)
}

// ParseLogLevel converts a log level name into its log level.  Unknown names
// fall back to verbose.
func ParseLogLevel(name string) int {
	switch name {
	case "silent":
		return LogLevelSilent
	case "error":
		return LogLevelError
	case "warn", "warning":
		return LogLevelWarn
	default:
		return LogLevelVerbose
	}
}

// LogLevel returns the log level of the global reporter.
func LogLevel() int {
	return rep.logLevel
}

// RunID returns the identifier of the current run.
func RunID() string {
	return rep.runID
}

// ErrorCount returns the number of errors reported during the current run.
func ErrorCount() int {
	rep.m.Lock()
	defer rep.m.Unlock()

	return rep.errorCount
}
