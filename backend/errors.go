package backend

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoTarget is returned when no registered LLVM target matches the host.
var ErrNoTarget = errors.New("no code generator target for host")

// VerifyError is returned when a module fails LLVM verification.
type VerifyError struct {
	// The verifier's diagnostic text.
	Diagnostic string
}

func (e *VerifyError) Error() string {
	return "module verification failed:\n" + strings.TrimSpace(e.Diagnostic)
}

// UnresolvedSymbolsError is returned when external functions declared by a
// module cannot be found in the running process or in a loaded library.
type UnresolvedSymbolsError struct {
	Symbols []string
}

func (e *UnresolvedSymbolsError) Error() string {
	return "unresolved external symbols: " + strings.Join(e.Symbols, ", ")
}

// EngineError is returned when the execution engine cannot be created.
type EngineError struct {
	Err error
}

func (e *EngineError) Error() string {
	return fmt.Sprintf("failed to create execution engine: %s", e.Err)
}

func (e *EngineError) Unwrap() error {
	return e.Err
}

// EmitError is returned when an object file cannot be emitted.
type EmitError struct {
	Path string
	Err  error
}

func (e *EmitError) Error() string {
	return fmt.Sprintf("failed to emit %s: %s", e.Path, e.Err)
}

func (e *EmitError) Unwrap() error {
	return e.Err
}

// LinkError is returned when an external tool such as the linker or archiver
// fails.  The exit code is -1 if the tool could not be started.
type LinkError struct {
	Command  string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *LinkError) Error() string {
	var sb strings.Builder
	if e.ExitCode < 0 {
		fmt.Fprintf(&sb, "failed to run `%s`: %s", e.Command, e.Err)
	} else {
		fmt.Fprintf(&sb, "`%s` exited with status %d", e.Command, e.ExitCode)
	}

	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		sb.WriteString(":\n")
		sb.WriteString(stderr)
	}

	return sb.String()
}

func (e *LinkError) Unwrap() error {
	return e.Err
}
