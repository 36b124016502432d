package backend

import (
	"errors"
	"fmt"
	"io/fs"
	"nullgen/llvm"
	"nullgen/report"
	"os"
	"path/filepath"
)

// DumpIR writes the textual IR of mod to path, replacing any file already
// there.  The parent directory is created if necessary.
func DumpIR(mod llvm.Module, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create IR directory: %w", err)
	}

	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove old IR dump: %w", err)
	}

	if err := mod.WriteToFile(path); err != nil {
		return fmt.Errorf("failed to write IR to %s: %w", path, err)
	}

	report.ReportInfo("IR", "wrote %s", path)
	return nil
}
