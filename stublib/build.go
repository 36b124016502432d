// Package stublib generates small native libraries standing in for the
// arbitrary precision arithmetic library and the FFI demonstration library
// the demo programs link against.
package stublib

import (
	"fmt"
	"nullgen/backend"
	"nullgen/config"
	"nullgen/llvm"
	"nullgen/report"
	"os"
	"path/filepath"

	"github.com/llir/llvm/ir"
)

// Library is a stub library and the IR it is built from.
type Library struct {
	Name   string
	Module func() *ir.Module
}

// Libraries lists every stub library.
var Libraries = []Library{
	{Name: "ffidemo", Module: FFIDemo},
	{Name: "mpstub", Module: MPStub},
}

// Artifact is a built stub library.
type Artifact struct {
	Name   string
	Object string
	Static string
	Shared string
}

// Build builds every stub library into dir as a static library for linking
// and a shared library for the JIT.  cc is the compiler driver used to link
// the shared libraries.
func Build(dir, cc string) ([]Artifact, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create stubs directory: %w", err)
	}

	var artifacts []Artifact
	for _, lib := range Libraries {
		art, err := buildLibrary(lib, dir, cc)
		if err != nil {
			return artifacts, fmt.Errorf("building %s: %w", lib.Name, err)
		}

		report.ReportInfo("Stubs", "built %s and %s", art.Static, art.Shared)
		artifacts = append(artifacts, art)
	}

	return artifacts, nil
}

// buildLibrary builds a single stub library.
func buildLibrary(lib Library, dir, cc string) (Artifact, error) {
	art := Artifact{
		Name:   lib.Name,
		Object: filepath.Join(dir, lib.Name+".o"),
		Static: filepath.Join(dir, "lib"+lib.Name+".a"),
		Shared: filepath.Join(dir, "lib"+lib.Name+config.SharedLibExt()),
	}

	ctx := llvm.NewContext()
	defer ctx.Dispose()

	mod, err := ctx.NewModuleFromIR(lib.Module().String())
	if err != nil {
		return art, fmt.Errorf("failed to parse generated IR: %w", err)
	}

	if err := mod.Verify(); err != nil {
		return art, &backend.VerifyError{Diagnostic: err.Error()}
	}

	// Shared libraries need position independent code.
	if err := backend.EmitModuleObject(ctx, mod, art.Object, llvm.RelocPIC); err != nil {
		return art, err
	}

	if err := backend.Archive(art.Static, art.Object); err != nil {
		return art, err
	}

	if err := backend.SharedLib(cc, art.Shared, art.Object); err != nil {
		return art, err
	}

	return art, nil
}
