//go:build linux

package backend

import (
	"io"
	"nullgen/codegen"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

// captureStdout runs fn with file descriptor 1 redirected into a pipe and
// returns everything written to it, including output from native code.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()

	saved, err := unix.Dup(unix.Stdout)
	require.NoError(t, err)

	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer r.Close()

	require.NoError(t, unix.Dup3(int(w.Fd()), unix.Stdout, 0))

	fn()

	require.NoError(t, unix.Dup3(saved, unix.Stdout, 0))
	require.NoError(t, unix.Close(saved))
	require.NoError(t, w.Close())

	out, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(out)
}

func TestRunJITHello(t *testing.T) {
	sess, mainFn := assemble(t, func(f *codegen.Frame) error {
		f.PrintLiteral("hello from the jit\n")
		return nil
	})

	var status int
	out := captureStdout(t, func() {
		var err error
		status, err = RunJIT(sess, mainFn, nil)
		require.NoError(t, err)
	})

	assert.Equal(t, 0, status)
	assert.Equal(t, "hello from the jit\n", out)
}

func TestRunJITFailedCheck(t *testing.T) {
	sess, mainFn := assemble(t, func(f *codegen.Frame) error {
		f.Check(f.Builder.ConstI32(7), "constant")
		f.PrintLiteral("unreachable\n")
		return nil
	})

	var status int
	out := captureStdout(t, func() {
		var err error
		status, err = RunJIT(sess, mainFn, nil)
		require.NoError(t, err)
	})

	assert.Equal(t, 7, status)
	assert.Equal(t, "constant failed with status 7\n", out)
}
