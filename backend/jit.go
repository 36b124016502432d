package backend

import (
	"errors"
	"fmt"
	"io/fs"
	"nullgen/codegen"
	"nullgen/llvm"
	"nullgen/report"
	"os"
)

// RunJIT compiles the session's module in process and runs mainFn, which must
// be an `i32 ()` function.  The shared libraries in libs are loaded first so
// the module's external declarations can resolve against them.  The module is
// handed over to the execution engine: it remains valid until the session is
// torn down but must not be emitted afterwards.
func RunJIT(sess *codegen.Session, mainFn llvm.Function, libs []string) (int, error) {
	if err := checkMain(mainFn); err != nil {
		return 0, err
	}

	if err := sess.Module.Verify(); err != nil {
		return 0, &VerifyError{Diagnostic: err.Error()}
	}

	if err := llvm.InitializeNativeTarget(); err != nil {
		return 0, err
	}

	target, err := llvm.GetTargetFromTriple(llvm.HostTriple())
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrNoTarget, err)
	}

	if !target.HasJIT() {
		return 0, &EngineError{Err: fmt.Errorf("target `%s` has no JIT", target.Name())}
	}

	llvm.LinkInMCJIT()

	if err := llvm.LoadProcessSymbols(); err != nil {
		return 0, err
	}

	for _, lib := range libs {
		if _, err := os.Stat(lib); errors.Is(err, fs.ErrNotExist) {
			report.ReportWarning("JIT", "library %s does not exist, skipping (run `nullgen stubs`)", lib)
			continue
		}

		if err := llvm.LoadLibraryPermanently(lib); err != nil {
			return 0, err
		}

		report.ReportInfo("JIT", "loaded %s", lib)
	}

	if missing := unresolved(sess.Symbols.Externals()); len(missing) > 0 {
		return 0, &UnresolvedSymbolsError{Symbols: missing}
	}

	ee, err := sess.Ctx.NewExecutionEngine(sess.Module)
	if err != nil {
		return 0, &EngineError{Err: err}
	}

	result := ee.RunFunction(mainFn)
	defer result.Dispose()

	// Output written by the program through C stdio is still buffered.
	llvm.FlushCStdio()

	status := int(result.Int(true))
	if status != 0 {
		report.ReportWarning("JIT", "`%s` returned status %d", mainFn.Name(), status)
	}

	return status, nil
}

// unresolved returns the names which cannot be resolved by the process
// symbol search.
func unresolved(names []string) []string {
	var missing []string
	for _, name := range names {
		if !llvm.SymbolAvailable(name) {
			missing = append(missing, name)
		}
	}

	return missing
}

// checkMain checks that fn has the signature of a program entry point.
func checkMain(fn llvm.Function) error {
	ft := fn.FuncType()
	it, ok := llvm.AsIntegerType(ft.ReturnType())
	if !ok || it.BitWidth() != 32 || ft.NumParams() != 0 {
		return fmt.Errorf("`%s` must have type `i32 ()`, got `%s`", fn.Name(), ft)
	}

	return nil
}
