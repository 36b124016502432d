package backend

import (
	"nullgen/codegen"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDumpIRReplacesOldDump(t *testing.T) {
	sess, _ := assemble(t, func(f *codegen.Frame) error {
		f.PrintLiteral("dumped\n")
		return nil
	})

	path := filepath.Join(t.TempDir(), "nested", "output.ll")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("stale contents that are much longer than nothing"), 0o644))

	require.NoError(t, DumpIR(sess.Module, path))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, sess.Module.String(), string(got))
	assert.NotContains(t, string(got), "stale")
}

func TestDumpIRCreatesDirectory(t *testing.T) {
	sess, _ := assemble(t, func(f *codegen.Frame) error { return nil })

	path := filepath.Join(t.TempDir(), "a", "b", "out.ll")
	require.NoError(t, DumpIR(sess.Module, path))
	assert.FileExists(t, path)
}
