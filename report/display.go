package report

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/pterm/pterm"
)

var (
	SuccessColorFG = pterm.FgLightGreen
	SuccessStyleBG = pterm.NewStyle(pterm.BgLightGreen, pterm.FgBlack)
	WarnColorFG    = pterm.FgYellow
	WarnStyleBG    = pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)
	ErrorColorFG   = pterm.FgRed
	ErrorStyleBG   = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	InfoColorFG    = pterm.FgLightCyan
	InfoStyleBG    = pterm.NewStyle(pterm.BgLightCyan, pterm.FgBlack)
)

// output is where reports are written.  Stdout is left to the programs being
// run.
var output io.Writer = os.Stderr

func init() {
	pterm.SetDefaultOutput(output)
}

// SetOutput redirects all reports to w.
func SetOutput(w io.Writer) {
	output = w
	pterm.SetDefaultOutput(w)
}

// displayInfo displays an informational message.
func displayInfo(tag, msg string) {
	InfoStyleBG.Print(" " + tag + " ")
	fmt.Fprintln(output, " "+msg)
}

// displayWarning displays a warning message.
func displayWarning(tag, msg string) {
	WarnStyleBG.Print(" " + tag + " ")
	WarnColorFG.Println(" " + msg)
}

// displayError displays a standard Go error.  Multi-line errors, such as
// verifier or linker output, are indented under the banner.
func displayError(tag string, err error) {
	ErrorStyleBG.Print(" " + tag + " ")

	lines := strings.Split(strings.TrimRight(err.Error(), "\n"), "\n")
	ErrorColorFG.Println(" " + lines[0])
	for _, line := range lines[1:] {
		fmt.Fprintln(output, "    "+line)
	}
}

// displayFatal displays a fatal error message.
func displayFatal(msg, runID string) {
	fmt.Fprint(output, "\n")
	ErrorStyleBG.Print(" Fatal Error ")
	ErrorColorFG.Println(" " + msg)
	fmt.Fprintln(output, "run "+runID)
}

// -----------------------------------------------------------------------------

// displayHeader displays the mode and target before a run starts.
func displayHeader(mode, target, runID string) {
	fmt.Fprint(output, "nullgen ")
	InfoColorFG.Print(mode)
	fmt.Fprint(output, " -- target: ")
	InfoColorFG.Println(target)

	bannerLen := pterm.GetTerminalWidth() / 2
	if bannerLen > 50 {
		bannerLen = 50
	}
	fmt.Fprintln(output, strings.Repeat("-", bannerLen))
	fmt.Fprintln(output, "run "+runID)
}

// The phase currently in progress, if any.
var currentPhase string
var phaseStartTime time.Time

const maxPhaseLength = len("Assembling")

var (
	phaseSuccessPrinter = pterm.PrefixPrinter{
		MessageStyle: pterm.NewStyle(pterm.FgDefault),
		Prefix: pterm.Prefix{
			Style: SuccessStyleBG,
			Text:  "Done",
		},
	}

	phaseFailPrinter = pterm.PrefixPrinter{
		MessageStyle: pterm.NewStyle(pterm.FgDefault),
		Prefix: pterm.Prefix{
			Style: ErrorStyleBG,
			Text:  "Fail",
		},
	}
)

// padPhase pads a phase name so that phase results line up.
func padPhase(phase string) string {
	if len(phase) >= maxPhaseLength {
		return phase + "  "
	}

	return phase + strings.Repeat(" ", maxPhaseLength-len(phase)+2)
}

// displayBeginPhase displays the beginning of a phase.  A phase that is still
// open is closed as successful first.
func displayBeginPhase(phase string) {
	displayEndPhase(true)

	currentPhase = phase
	phaseStartTime = time.Now()
}

// displayEndPhase displays the end of the current phase if there is one.
func displayEndPhase(success bool) {
	if currentPhase == "" {
		return
	}

	if success {
		phaseSuccessPrinter.Println(
			padPhase(currentPhase),
			fmt.Sprintf("(%.3fs)", time.Since(phaseStartTime).Seconds()),
		)
	} else {
		phaseFailPrinter.Println(padPhase(currentPhase))
	}

	currentPhase = ""
}

// displayFinished displays the closing message of a run.
func displayFinished(success bool, errorCount int, elapsed time.Duration) {
	displayEndPhase(success)
	fmt.Fprint(output, "\n")

	if success {
		SuccessColorFG.Print("All done! ")
	} else {
		ErrorColorFG.Print("Oh no! ")
	}

	fmt.Fprint(output, "(")
	switch errorCount {
	case 0:
		SuccessColorFG.Print(0)
		fmt.Fprint(output, " errors")
	case 1:
		ErrorColorFG.Print(1)
		fmt.Fprint(output, " error")
	default:
		ErrorColorFG.Print(errorCount)
		fmt.Fprint(output, " errors")
	}
	fmt.Fprintf(output, ", %.3fs)\n", elapsed.Seconds())
}
