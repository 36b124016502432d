package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"
)

// DefaultFileName is the name of the configuration file looked up in the
// working directory when no path is given.
const DefaultFileName = "harness.toml"

// Config is the resolved harness configuration.  All paths in it are
// absolute except for the compiler driver, which may be a bare command name
// looked up on the PATH.
type Config struct {
	// The directory IR dumps, object files and stub libraries are written to.
	ArtifactsDir string

	// The name of the LLVM module built for each run.
	ModuleName string

	// The base name of the emitted `.ll` and `.o` files.
	OutputName string

	// The log level name; empty if the configuration does not set one.
	LogLevel string

	// The relocation model used for object emission: `default`, `static` or
	// `pic`.
	Reloc string

	Link LinkConfig
	JIT  JITConfig
}

// LinkConfig configures the C compiler driver used to link executables.
type LinkConfig struct {
	// The compiler driver command.
	CC string

	// Arguments passed to the driver before the object file.
	Args []string

	// Static libraries or linker flags passed after the object file.
	Libraries []string

	// The path of the linked executable.
	Output string
}

// JITConfig configures the JIT backend.
type JITConfig struct {
	// Shared libraries loaded into the process before the JIT runs.
	Libraries []string
}

// fileConfig is the configuration as it is encoded in TOML or YAML.
type fileConfig struct {
	ArtifactsDir string      `toml:"artifacts-dir" yaml:"artifacts-dir"`
	ModuleName   string      `toml:"module-name" yaml:"module-name"`
	OutputName   string      `toml:"output-name" yaml:"output-name"`
	LogLevel     string      `toml:"log-level" yaml:"log-level"`
	Codegen      fileCodegen `toml:"codegen" yaml:"codegen"`
	Link         fileLink    `toml:"link" yaml:"link"`
	JIT          fileJIT     `toml:"jit" yaml:"jit"`
}

type fileCodegen struct {
	Reloc string `toml:"reloc" yaml:"reloc"`
}

type fileLink struct {
	CC        string   `toml:"cc" yaml:"cc"`
	Args      []string `toml:"args" yaml:"args"`
	Libraries []string `toml:"libraries" yaml:"libraries"`
	Output    string   `toml:"output" yaml:"output"`
}

type fileJIT struct {
	Libraries []string `toml:"libraries" yaml:"libraries"`
}

// SharedLibExt returns the file extension of shared libraries on the host.
func SharedLibExt() string {
	if runtime.GOOS == "darwin" {
		return ".dylib"
	}

	return ".so"
}

// defaultFileConfig returns the configuration used for keys a file leaves
// out.  The default libraries are the stub libraries built by `stubs`.
func defaultFileConfig() fileConfig {
	var linkArgs []string
	if runtime.GOOS == "linux" {
		// Objects are emitted with the default relocation model, which is
		// not position independent on Linux.
		linkArgs = []string{"-no-pie"}
	}

	return fileConfig{
		ArtifactsDir: "target",
		ModuleName:   "nullgen",
		OutputName:   "output",
		Codegen:      fileCodegen{Reloc: "default"},
		Link: fileLink{
			CC:   "cc",
			Args: linkArgs,
			Libraries: []string{
				"target/stubs/libffidemo.a",
				"target/stubs/libmpstub.a",
			},
			Output: "target/out",
		},
		JIT: fileJIT{
			Libraries: []string{
				"target/stubs/libffidemo" + SharedLibExt(),
				"target/stubs/libmpstub" + SharedLibExt(),
			},
		},
	}
}

// Default returns the default configuration rooted at root.
func Default(root string) (*Config, error) {
	return resolve(defaultFileConfig(), root)
}

// Load loads the configuration file at path.  If path is empty, the default
// file name is looked up in the working directory and the defaults are used
// if it does not exist.
func Load(path string) (*Config, error) {
	if path == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, err
		}

		path = filepath.Join(wd, DefaultFileName)
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			return Default(wd)
		}
	}

	abspath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	buff, err := os.ReadFile(abspath)
	if err != nil {
		return nil, fmt.Errorf("unable to read config file at `%s`: %w", path, err)
	}

	fc, err := decode(abspath, buff)
	if err != nil {
		return nil, fmt.Errorf("error parsing config file at `%s`: %w", path, err)
	}

	return resolve(mergeDefaults(fc), filepath.Dir(abspath))
}

// decode decodes a configuration file based on its extension.
func decode(path string, buff []byte) (fileConfig, error) {
	var fc fileConfig

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(buff, &fc); err != nil {
			return fc, err
		}
	default:
		if err := toml.Unmarshal(buff, &fc); err != nil {
			return fc, err
		}
	}

	return fc, nil
}

// mergeDefaults fills every key fc leaves empty with its default value.
// Lists are only defaulted when absent so that an explicit empty list clears
// them.
func mergeDefaults(fc fileConfig) fileConfig {
	def := defaultFileConfig()

	if fc.ArtifactsDir == "" {
		fc.ArtifactsDir = def.ArtifactsDir
	}
	if fc.ModuleName == "" {
		fc.ModuleName = def.ModuleName
	}
	if fc.OutputName == "" {
		fc.OutputName = def.OutputName
	}
	if fc.Codegen.Reloc == "" {
		fc.Codegen.Reloc = def.Codegen.Reloc
	}
	if fc.Link.CC == "" {
		fc.Link.CC = def.Link.CC
	}
	if fc.Link.Args == nil {
		fc.Link.Args = def.Link.Args
	}
	if fc.Link.Libraries == nil {
		fc.Link.Libraries = def.Link.Libraries
	}
	if fc.Link.Output == "" {
		fc.Link.Output = def.Link.Output
	}
	if fc.JIT.Libraries == nil {
		fc.JIT.Libraries = def.JIT.Libraries
	}

	return fc
}

// validRelocs lists the accepted relocation model names.
var validRelocs = map[string]struct{}{
	"default": {},
	"static":  {},
	"pic":     {},
}

// resolve validates fc and converts it into a Config rooted at root.
func resolve(fc fileConfig, root string) (*Config, error) {
	if err := checkOutputName(fc.OutputName); err != nil {
		return nil, err
	}

	if _, ok := validRelocs[fc.Codegen.Reloc]; !ok {
		return nil, fmt.Errorf("unknown relocation model `%s`", fc.Codegen.Reloc)
	}

	cfg := &Config{
		ArtifactsDir: resolvePath(root, fc.ArtifactsDir),
		ModuleName:   fc.ModuleName,
		OutputName:   fc.OutputName,
		LogLevel:     fc.LogLevel,
		Reloc:        fc.Codegen.Reloc,
		Link: LinkConfig{
			CC:     fc.Link.CC,
			Args:   fc.Link.Args,
			Output: resolvePath(root, fc.Link.Output),
		},
	}

	// A driver given as a relative path is relative to the config file; a bare
	// name is left for PATH lookup.
	if strings.ContainsRune(cfg.Link.CC, filepath.Separator) {
		cfg.Link.CC = resolvePath(root, cfg.Link.CC)
	}

	for _, lib := range fc.Link.Libraries {
		// Linker flags such as `-lm` are passed through untouched.
		if strings.HasPrefix(lib, "-") {
			cfg.Link.Libraries = append(cfg.Link.Libraries, lib)
		} else {
			cfg.Link.Libraries = append(cfg.Link.Libraries, resolvePath(root, lib))
		}
	}

	for _, lib := range fc.JIT.Libraries {
		cfg.JIT.Libraries = append(cfg.JIT.Libraries, resolvePath(root, lib))
	}

	return cfg, nil
}

// resolvePath makes path absolute relative to root.
func resolvePath(root, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}

	return filepath.Join(root, path)
}

// checkOutputName checks that name stays inside the artifacts directory.
func checkOutputName(name string) error {
	if strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("output name `%s` must not contain path separators", name)
	}

	return nil
}

// SetOutputName sets the base name of the emitted files.
func (c *Config) SetOutputName(name string) error {
	if err := checkOutputName(name); err != nil {
		return err
	}

	c.OutputName = name
	return nil
}

// ObjectPath returns the path of the object file emitted for the run.
func (c *Config) ObjectPath() string {
	return filepath.Join(c.ArtifactsDir, c.OutputName+".o")
}

// IRPath returns the path of the textual IR dumped for the run.
func (c *Config) IRPath() string {
	return filepath.Join(c.ArtifactsDir, c.OutputName+".ll")
}

// StubsDir returns the directory the stub libraries are built into.
func (c *Config) StubsDir() string {
	return filepath.Join(c.ArtifactsDir, "stubs")
}
