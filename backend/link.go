package backend

import (
	"errors"
	"fmt"
	"nullgen/report"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// LinkRequest describes one invocation of the C compiler driver used as the
// linker.
type LinkRequest struct {
	// The compiler driver command.
	CC string

	// Arguments placed before the objects.
	Args []string

	Objects []string

	// Libraries or linker flags placed after the objects.
	Libraries []string

	Output string
}

// LinkResult is the outcome of a successful link.
type LinkResult struct {
	Command string

	// Anything the driver wrote to stderr.  A successful link may still
	// produce warnings.
	Stderr string
}

// Link runs the compiler driver to link an executable.  It blocks until the
// driver exits.  The driver's exit status alone decides success.
func Link(req LinkRequest) (LinkResult, error) {
	if err := os.MkdirAll(filepath.Dir(req.Output), 0o755); err != nil {
		return LinkResult{}, fmt.Errorf("failed to create output directory: %w", err)
	}

	args := append([]string{}, req.Args...)
	args = append(args, req.Objects...)
	args = append(args, req.Libraries...)
	args = append(args, "-o", req.Output)

	stderr, err := runTool(req.CC, args...)
	result := LinkResult{Command: commandLine(req.CC, args), Stderr: stderr}
	if err != nil {
		return result, err
	}

	if strings.TrimSpace(stderr) != "" {
		report.ReportWarning("Linker", "%s", strings.TrimSpace(stderr))
	}

	return result, nil
}

// Archive bundles objects into the static library at output.  Any existing
// library at output is replaced.
func Archive(output string, objects ...string) error {
	if _, err := exec.LookPath("ar"); err != nil {
		return &LinkError{Command: "ar", ExitCode: -1, Err: err}
	}

	if err := os.Remove(output); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	_, err := runTool("ar", append([]string{"rcs", output}, objects...)...)
	return err
}

// SharedLib links objects into the shared library at output using the
// compiler driver cc.
func SharedLib(cc, output string, objects ...string) error {
	args := append([]string{"-shared", "-o", output}, objects...)
	_, err := runTool(cc, args...)
	return err
}

// runTool runs an external tool to completion and returns its stderr.  Its
// stdout is passed through.
func runTool(name string, args ...string) (string, error) {
	report.ReportInfo("Exec", "%s", commandLine(name, args))

	cmd := exec.Command(name, args...)
	cmd.Stdout = os.Stdout

	var stderr strings.Builder
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		lerr := &LinkError{
			Command:  commandLine(name, args),
			ExitCode: -1,
			Stderr:   stderr.String(),
			Err:      err,
		}

		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			lerr.ExitCode = exitErr.ExitCode()
		}

		return stderr.String(), lerr
	}

	return stderr.String(), nil
}

// commandLine formats a command for display.
func commandLine(name string, args []string) string {
	return strings.Join(append([]string{name}, args...), " ")
}
