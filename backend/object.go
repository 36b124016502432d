package backend

import (
	"fmt"
	"nullgen/codegen"
	"nullgen/llvm"
	"nullgen/report"
	"os"
	"path/filepath"
)

// ParseRelocMode converts a relocation model name into its LLVM relocation
// mode.
func ParseRelocMode(name string) (llvm.RelocMode, error) {
	switch name {
	case "", "default":
		return llvm.RelocDefault, nil
	case "static":
		return llvm.RelocStatic, nil
	case "pic":
		return llvm.RelocPIC, nil
	default:
		return llvm.RelocDefault, fmt.Errorf("unknown relocation model `%s`", name)
	}
}

// HostMachine creates a target machine for the host with the default
// optimization level and code model.  All targets are initialized first.  The
// machine is owned by ctx.
func HostMachine(ctx *llvm.Context, reloc llvm.RelocMode) (llvm.TargetMachine, error) {
	llvm.InitializeAllTargets()

	triple := llvm.HostTriple()
	cpu := llvm.HostCPUName()
	features := llvm.HostCPUFeatures()
	report.ReportInfo("Target", "%s (cpu %s)", triple, cpu)

	target, err := llvm.GetTargetFromTriple(triple)
	if err != nil {
		return llvm.TargetMachine{}, fmt.Errorf("%w: %s: %s", ErrNoTarget, triple, err)
	}

	return ctx.NewMachine(
		target,
		triple,
		cpu,
		features,
		llvm.CodeGenLevelDefault,
		reloc,
		llvm.CodeModelDefault,
	), nil
}

// EmitModuleObject emits mod as an object file for the host at path.  The
// module is verified first: a broken module aborts the process since it
// indicates a bug in whatever built it.
func EmitModuleObject(ctx *llvm.Context, mod llvm.Module, path string, reloc llvm.RelocMode) error {
	if err := mod.VerifyWith(llvm.AbortProcessAction); err != nil {
		return &VerifyError{Diagnostic: err.Error()}
	}

	tm, err := HostMachine(ctx, reloc)
	if err != nil {
		return err
	}
	defer tm.Dispose()

	mod.SetTargetTriple(tm.Triple())
	mod.SetDataLayout(tm.DataLayout())

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return &EmitError{Path: path, Err: err}
	}

	if err := tm.CompileModule(mod, path, llvm.ObjectFile); err != nil {
		return &EmitError{Path: path, Err: err}
	}

	report.ReportInfo("Object", "wrote %s", path)
	return nil
}

// EmitObject emits the session's module as an object file at path.
func EmitObject(sess *codegen.Session, path string, reloc llvm.RelocMode) error {
	return EmitModuleObject(sess.Ctx, sess.Module, path, reloc)
}
