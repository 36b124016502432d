package report

import (
	"fmt"
	"os"
	"time"
)

// NOTE: All report functions will only display if the appropriate log level is
// set.  Report functions fail silently when below their log level.

// ReportInfo reports an informational message.
func ReportInfo(tag, msg string, args ...interface{}) {
	if rep.logLevel < LogLevelVerbose {
		return
	}

	rep.m.Lock()
	defer rep.m.Unlock()

	displayInfo(tag, fmt.Sprintf(msg, args...))
}

// ReportWarning reports a warning.
func ReportWarning(tag, msg string, args ...interface{}) {
	if rep.logLevel < LogLevelWarn {
		return
	}

	rep.m.Lock()
	defer rep.m.Unlock()

	displayWarning(tag, fmt.Sprintf(msg, args...))
}

// ReportError reports a non-fatal error.  The run continues but is counted as
// failed.
func ReportError(tag string, err error) {
	rep.m.Lock()
	defer rep.m.Unlock()

	rep.errorCount++

	if rep.logLevel >= LogLevelError {
		displayEndPhase(false)
		displayError(tag, err)
	}
}

// ReportFatal reports a fatal error and exits the program.  It also
// automatically formats error messages as necessary.
func ReportFatal(msg string, args ...interface{}) {
	rep.errorCount++

	displayEndPhase(false)
	displayFatal(fmt.Sprintf(msg, args...), rep.runID)

	os.Exit(1)
}

// -----------------------------------------------------------------------------
// Below are all the "aesthetic" reporting functions that will only run if the
// log level is verbose.  These tell the user what the harness is doing.

// ReportHeader reports the run header: the selected mode and target.
func ReportHeader(mode, target string) {
	if rep.logLevel == LogLevelVerbose {
		displayHeader(mode, target, rep.runID)
	}
}

// ReportBeginPhase reports the beginning of a phase such as verification or
// object emission.
func ReportBeginPhase(phase string) {
	if rep.logLevel == LogLevelVerbose {
		displayBeginPhase(phase)
	}
}

// ReportEndPhase reports the end of the current phase.
func ReportEndPhase(success bool) {
	if rep.logLevel == LogLevelVerbose {
		displayEndPhase(success)
	}
}

// ReportFinished reports the concluding message of a run.
func ReportFinished(success bool) {
	if rep.logLevel == LogLevelVerbose {
		displayFinished(success, ErrorCount(), time.Since(rep.startTime))
	}
}
