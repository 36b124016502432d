package cmd

import (
	"errors"
	"fmt"
	"io"
	"nullgen/backend"
	"nullgen/codegen"
	"nullgen/config"
	"nullgen/demo"
	"nullgen/llvm"
	"nullgen/report"
	"nullgen/stublib"
	"os"
	"strings"
)

// phase runs fn as a reported phase.  A failed phase is closed by the error
// report.
func phase(name string, fn func() error) error {
	report.ReportBeginPhase(name)
	if err := fn(); err != nil {
		return err
	}

	report.ReportEndPhase(true)
	return nil
}

// assemble assembles prog in sess and dumps its IR.  The IR is dumped even if
// the module turns out to be broken so that it can be inspected.
func assemble(cfg *config.Config, sess *codegen.Session, prog demo.Program) (llvm.Function, error) {
	var mainFn llvm.Function
	err := phase("Assembling", func() (err error) {
		mainFn, err = codegen.NewAssembler(sess).Assemble(prog.Build)
		return
	})
	if err != nil {
		return mainFn, err
	}

	err = phase("Dumping", func() error {
		return backend.DumpIR(sess.Module, cfg.IRPath())
	})
	return mainFn, err
}

// stubsMissing returns whether prog calls into the stub libraries but any of
// libs has not been built.
func stubsMissing(prog demo.Program, libs []string) bool {
	if !prog.NeedsStubs {
		return false
	}

	for _, lib := range libs {
		if strings.HasPrefix(lib, "-") {
			continue
		}

		if _, err := os.Stat(lib); err != nil {
			return true
		}
	}

	return false
}

// RunExec builds the program called progName and runs it with the JIT.  It
// returns the program's status.
func RunExec(cfg *config.Config, progName string) (int, error) {
	prog, err := demo.Lookup(progName)
	if err != nil {
		return 0, err
	}

	if stubsMissing(prog, cfg.JIT.Libraries) {
		report.ReportWarning("Stubs", "`%s` needs the stub libraries (run `nullgen stubs`)", prog.Name)
	}

	sess := codegen.NewSession(cfg.ModuleName)
	defer sess.Teardown()

	mainFn, err := assemble(cfg, sess, prog)
	if err != nil {
		return 0, err
	}

	var status int
	err = phase("Running", func() (err error) {
		status, err = backend.RunJIT(sess, mainFn, cfg.JIT.Libraries)
		return
	})

	return status, err
}

// RunCompile builds the program called progName, emits it as an object file
// and links it into an executable.
func RunCompile(cfg *config.Config, progName string) error {
	prog, err := demo.Lookup(progName)
	if err != nil {
		return err
	}

	reloc, err := backend.ParseRelocMode(cfg.Reloc)
	if err != nil {
		return err
	}

	if stubsMissing(prog, cfg.Link.Libraries) {
		report.ReportWarning("Stubs", "`%s` needs the stub libraries (run `nullgen stubs`)", prog.Name)
	}

	sess := codegen.NewSession(cfg.ModuleName)
	defer sess.Teardown()

	if _, err := assemble(cfg, sess, prog); err != nil {
		return err
	}

	err = phase("Emitting", func() error {
		return backend.EmitObject(sess, cfg.ObjectPath(), reloc)
	})
	if err != nil {
		return err
	}

	return phase("Linking", func() error {
		_, err := backend.Link(backend.LinkRequest{
			CC:        cfg.Link.CC,
			Args:      cfg.Link.Args,
			Objects:   []string{cfg.ObjectPath()},
			Libraries: existingLibraries(cfg.Link.Libraries),
			Output:    cfg.Link.Output,
		})
		return err
	})
}

// existingLibraries filters out the library files in libs which do not
// exist.  Linker flags are kept as is.
func existingLibraries(libs []string) []string {
	var existing []string
	for _, lib := range libs {
		if !strings.HasPrefix(lib, "-") {
			if _, err := os.Stat(lib); errors.Is(err, os.ErrNotExist) {
				report.ReportWarning("Link", "library %s does not exist, skipping (run `nullgen stubs`)", lib)
				continue
			}
		}

		existing = append(existing, lib)
	}

	return existing
}

// RunStubs builds the stub native libraries.
func RunStubs(cfg *config.Config) error {
	return phase("Building", func() error {
		_, err := stublib.Build(cfg.StubsDir(), cfg.Link.CC)
		return err
	})
}

// RunLayout writes the layout of every struct the programs share with native
// code on the host to w.  It fails if any of them does not match the C
// layout.
func RunLayout(cfg *config.Config, w io.Writer) error {
	reloc, err := backend.ParseRelocMode(cfg.Reloc)
	if err != nil {
		return err
	}

	sess := codegen.NewSession(cfg.ModuleName)
	defer sess.Teardown()

	types := sess.Types
	codegen.DeclareMPInt(types)
	if _, err := types.NamedStruct(stublib.PairStruct, types.I32(), types.I32()); err != nil {
		return err
	}
	if _, err := types.NamedStruct(stublib.TripleStruct, types.I32(), types.I32(), types.I32()); err != nil {
		return err
	}

	tm, err := backend.HostMachine(sess.Ctx, reloc)
	if err != nil {
		return err
	}
	td := tm.DataLayout()

	var mismatched []string
	for _, name := range types.StructNames() {
		sl, err := types.CheckLayout(name, td)

		var lerr *codegen.LayoutMismatchError
		if errors.As(err, &lerr) {
			report.ReportError("Layout Error", err)
			mismatched = append(mismatched, name)
		} else if err != nil {
			return err
		}

		fmt.Fprint(w, sl.String())
	}

	if len(mismatched) > 0 {
		return fmt.Errorf("layouts of %s do not match the C ABI", strings.Join(mismatched, ", "))
	}

	return nil
}
