package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefault(t *testing.T) {
	root := t.TempDir()

	cfg, err := Default(root)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(root, "target"), cfg.ArtifactsDir)
	assert.Equal(t, "output", cfg.OutputName)
	assert.Equal(t, "cc", cfg.Link.CC)
	assert.Equal(t, "default", cfg.Reloc)
	assert.Equal(t, filepath.Join(root, "target", "output.o"), cfg.ObjectPath())
	assert.Equal(t, filepath.Join(root, "target", "output.ll"), cfg.IRPath())
	assert.Len(t, cfg.Link.Libraries, 2)
	assert.Len(t, cfg.JIT.Libraries, 2)
}

func TestLoadTOML(t *testing.T) {
	root := t.TempDir()
	path := writeFile(t, root, "harness.toml", `
artifacts-dir = "build"
output-name = "demo"
log-level = "warn"

[codegen]
reloc = "pic"

[link]
cc = "./tools/cc"
args = ["-v"]
libraries = ["lib/libtommath.a", "-lm"]
output = "bin/demo"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(root, "build"), cfg.ArtifactsDir)
	assert.Equal(t, "demo", cfg.OutputName)
	assert.Equal(t, "nullgen", cfg.ModuleName)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "pic", cfg.Reloc)
	assert.Equal(t, filepath.Join(root, "tools", "cc"), cfg.Link.CC)
	assert.Equal(t, []string{"-v"}, cfg.Link.Args)
	assert.Equal(t, []string{filepath.Join(root, "lib", "libtommath.a"), "-lm"}, cfg.Link.Libraries)
	assert.Equal(t, filepath.Join(root, "bin", "demo"), cfg.Link.Output)

	// Keys the file leaves out keep their defaults.
	assert.Len(t, cfg.JIT.Libraries, 2)
}

func TestLoadYAML(t *testing.T) {
	root := t.TempDir()
	path := writeFile(t, root, "harness.yaml", `
module-name: bignum
link:
  cc: clang
jit:
  libraries:
    - /opt/lib/libtommath.so
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "bignum", cfg.ModuleName)
	assert.Equal(t, "clang", cfg.Link.CC)
	assert.Equal(t, []string{"/opt/lib/libtommath.so"}, cfg.JIT.Libraries)
}

func TestLoadRejectsBadValues(t *testing.T) {
	root := t.TempDir()

	_, err := Load(writeFile(t, root, "reloc.toml", "[codegen]\nreloc = \"ropi\"\n"))
	assert.ErrorContains(t, err, "relocation model")

	_, err = Load(writeFile(t, root, "name.toml", "output-name = \"a/b\"\n"))
	assert.ErrorContains(t, err, "path separators")

	_, err = Load(writeFile(t, root, "syntax.toml", "output-name = \n"))
	assert.ErrorContains(t, err, "error parsing config file")

	_, err = Load(filepath.Join(root, "missing.toml"))
	assert.ErrorContains(t, err, "unable to read config file")
}

func TestSetOutputName(t *testing.T) {
	cfg, err := Default(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, cfg.SetOutputName("bigadd"))
	assert.Equal(t, filepath.Join(cfg.ArtifactsDir, "bigadd.o"), cfg.ObjectPath())

	for _, name := range []string{"../escape", `..\escape`, "sub/name"} {
		assert.ErrorContains(t, cfg.SetOutputName(name), "path separators", name)
	}
	assert.Equal(t, "bigadd", cfg.OutputName)
}
