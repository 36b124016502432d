package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"nullgen/backend"
	"nullgen/config"
	"nullgen/demo"
	"nullgen/report"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	report.InitReporter(report.LogLevelSilent)
	os.Exit(m.Run())
}

// testConfig returns the default configuration rooted in a temporary
// directory.
func testConfig(t *testing.T) *config.Config {
	t.Helper()

	cfg, err := config.Default(t.TempDir())
	require.NoError(t, err)
	return cfg
}

// requireTools skips the test unless every tool is on the PATH.
func requireTools(t *testing.T, tools ...string) {
	t.Helper()

	for _, tool := range tools {
		if _, err := exec.LookPath(tool); err != nil {
			t.Skipf("%s is not available", tool)
		}
	}
}

func TestUsage(t *testing.T) {
	text := usage()
	for _, name := range demo.Names() {
		assert.Contains(t, text, name)
	}

	assert.Equal(t, 0, execute([]string{"nullgen"}))
}

func TestErrorTag(t *testing.T) {
	assert.Equal(t, "Verify Error", errorTag(&backend.VerifyError{}))
	assert.Equal(t, "Link Error", errorTag(fmt.Errorf("building: %w", &backend.LinkError{ExitCode: 1})))
	assert.Equal(t, "Error", errorTag(errors.New("other")))
}

func TestExistingLibraries(t *testing.T) {
	dir := t.TempDir()
	present := filepath.Join(dir, "libpresent.a")
	require.NoError(t, os.WriteFile(present, nil, 0o644))

	libs := existingLibraries([]string{present, filepath.Join(dir, "libmissing.a"), "-lm"})
	assert.Equal(t, []string{present, "-lm"}, libs)
}

func TestStubsMissing(t *testing.T) {
	dir := t.TempDir()
	present := filepath.Join(dir, "libmpstub.a")
	require.NoError(t, os.WriteFile(present, nil, 0o644))
	missing := filepath.Join(dir, "libffidemo.a")

	hello, err := demo.Lookup("hello")
	require.NoError(t, err)
	bigadd, err := demo.Lookup("bigadd")
	require.NoError(t, err)

	assert.False(t, stubsMissing(hello, []string{missing}))
	assert.False(t, stubsMissing(bigadd, []string{present, "-lm"}))
	assert.True(t, stubsMissing(bigadd, []string{present, missing}))
}

func TestRunExecHello(t *testing.T) {
	cfg := testConfig(t)

	status, err := RunExec(cfg, "hello")
	require.NoError(t, err)
	assert.Equal(t, 0, status)

	ir, err := os.ReadFile(cfg.IRPath())
	require.NoError(t, err)
	assert.Contains(t, string(ir), "define i32 @main()")
}

func TestRunExecUnknownProgram(t *testing.T) {
	_, err := RunExec(testConfig(t), "nope")
	assert.ErrorContains(t, err, "unknown program")
}

func TestRunExecWithoutStubs(t *testing.T) {
	cfg := testConfig(t)

	_, err := RunExec(cfg, "bigadd")

	var uerr *backend.UnresolvedSymbolsError
	require.True(t, errors.As(err, &uerr))
	assert.Contains(t, uerr.Symbols, "mp_init")

	// The IR is dumped before the run.
	assert.FileExists(t, cfg.IRPath())
}

func TestRunCompileHello(t *testing.T) {
	requireTools(t, "cc")
	cfg := testConfig(t)

	require.NoError(t, RunCompile(cfg, "hello"))
	assert.FileExists(t, cfg.ObjectPath())

	out, err := exec.Command(cfg.Link.Output).Output()
	require.NoError(t, err)
	assert.Equal(t, "Hello from nullgen!\n", string(out))
}

func TestStubsEndToEnd(t *testing.T) {
	requireTools(t, "cc", "ar")
	cfg := testConfig(t)

	require.NoError(t, RunStubs(cfg))

	require.NoError(t, RunCompile(cfg, "bigadd"))
	out, err := exec.Command(cfg.Link.Output).Output()
	require.NoError(t, err)
	assert.Equal(t, "Number: 110\nDigits used: 1\n", string(out))

	cfg.OutputName = "badadd"
	cfg.Link.Output = filepath.Join(cfg.ArtifactsDir, "badadd")
	require.NoError(t, RunCompile(cfg, "badadd"))
	assert.FileExists(t, filepath.Join(cfg.ArtifactsDir, "badadd.o"))

	out, err = exec.Command(cfg.Link.Output).Output()
	var exitErr *exec.ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.NotEqual(t, 0, exitErr.ExitCode())
	assert.Contains(t, string(out), "mp_read_radix failed with status -3")

	cfg.OutputName = "ffi"
	cfg.Link.Output = filepath.Join(cfg.ArtifactsDir, "ffi")
	require.NoError(t, RunCompile(cfg, "ffi"))
	out, err = exec.Command(cfg.Link.Output).Output()
	require.NoError(t, err)
	assert.Equal(t, "Hello world\n"+
		"create_i8: 123\n"+
		"create_str: some string\n"+
		"create_test: 23\n"+
		"create_slice: 1\n"+
		"create_slice: 2\n"+
		"create_slice: 3\n"+
		"Hello, Bob\n", string(out))

	status, err := RunExec(cfg, "bigadd")
	require.NoError(t, err)
	assert.Equal(t, 0, status)

	status, err = RunExec(cfg, "badadd")
	require.NoError(t, err)
	assert.Equal(t, -3, status)
}

func TestRunLayout(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RunLayout(testConfig(t), &buf))

	out := buf.String()
	assert.Contains(t, out, "struct mp_int: size 24, align 8")
	assert.Contains(t, out, "struct test_pair: size 8, align 4")
	assert.Contains(t, out, "struct test_triple: size 12, align 4")
}
