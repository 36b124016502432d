package codegen

import (
	"fmt"
	"nullgen/llvm"
)

// Names of the functions and blocks the assembler creates.
const (
	EntryFuncName  = "entry"
	MainFuncName   = "main"
	EntryBlockName = "entrypoint"
)

// BuildFunc emits the body of the entry function through f.  It runs
// synchronously with the cursor at the end of the entry block.
type BuildFunc func(f *Frame) error

// Frame gives a build routine access to the function being assembled and to
// the session's builder, types and symbols.
type Frame struct {
	Builder *Builder
	Types   *Registry
	Symbols *SymbolTable

	fn   llvm.Function
	sess *Session
}

// Function returns the function being assembled.
func (f *Frame) Function() llvm.Function {
	return f.fn
}

// Printf calls printf with format and args.
func (f *Frame) Printf(format string, args ...llvm.Value) llvm.Value {
	fmtStr := f.Builder.GlobalString("fmt", format)
	return f.Builder.Call(f.Symbols.Printf(), "printed", append([]llvm.Value{fmtStr}, args...)...)
}

// PrintLiteral prints text exactly as given.
func (f *Frame) PrintLiteral(text string) {
	f.Printf("%s", f.Builder.GlobalString("str", text))
}

// Check checks the native status code status returned by what.  If it is not
// zero, the program prints the failure, records the status in the status
// global and returns from the entry function.  Emission continues in the
// success path.
func (f *Frame) Check(status llvm.Value, what string) {
	if !llvm.TypesEqual(status.Type(), f.Types.I32()) {
		panic(fmt.Sprintf("error: status of `%s` must be `i32`, got `%s`", what, status.Type()))
	}

	b := f.Builder
	failBlock := b.NewBlock(f.fn, what+".failed")
	okBlock := b.NewBlock(f.fn, what+".ok")

	failed := b.ICmpNE(status, b.ConstI32(0), what+".nonzero")
	b.CondBranch(failed, failBlock, okBlock)

	b.PositionAtEnd(failBlock)
	f.Fail(status, what)

	b.PositionAtEnd(okBlock)
}

// Fail prints that what failed with status, records the status in the status
// global and returns from the entry function.  It terminates the block at the
// cursor.
func (f *Frame) Fail(status llvm.Value, what string) {
	b := f.Builder
	f.Printf("%s failed with status %d\n", b.GlobalString("what", what), status)
	b.Store(status, f.sess.StatusGlobal())
	b.ReturnVoid()
}

// -----------------------------------------------------------------------------

// Assembler composes the entry function of a program and the `main` wrapper
// that runs it.
type Assembler struct {
	sess *Session
}

// NewAssembler creates a new assembler building into sess.
func NewAssembler(sess *Session) *Assembler {
	return &Assembler{sess: sess}
}

// AssembleEntry creates the `void entry()` function, runs build with the
// cursor in its `entrypoint` block, and terminates the last block with
// `ret void` unless build already terminated it.
func (a *Assembler) AssembleEntry(build BuildFunc) (llvm.Function, error) {
	if _, exists := a.sess.Module.GetFunction(EntryFuncName); exists {
		return llvm.Function{}, fmt.Errorf("function `%s` is already defined", EntryFuncName)
	}

	fn := a.sess.Module.AddFunction(EntryFuncName, llvm.NewFunctionType(a.sess.Types.Void()))
	a.sess.StatusGlobal()

	a.sess.Builder.AppendBlock(fn, EntryBlockName)

	frame := &Frame{
		Builder: a.sess.Builder,
		Types:   a.sess.Types,
		Symbols: a.sess.Symbols,
		fn:      fn,
		sess:    a.sess,
	}

	if err := build(frame); err != nil {
		return fn, fmt.Errorf("building `%s`: %w", EntryFuncName, err)
	}

	if !a.sess.Builder.Terminated() {
		a.sess.Builder.ReturnVoid()
	}

	return fn, nil
}

// AssembleMain creates `i32 main()` which calls entry and returns the status
// global: zero unless a native call failed.
func (a *Assembler) AssembleMain(entry llvm.Function) (llvm.Function, error) {
	if _, exists := a.sess.Module.GetFunction(MainFuncName); exists {
		return llvm.Function{}, fmt.Errorf("function `%s` is already defined", MainFuncName)
	}

	b := a.sess.Builder
	fn := a.sess.Module.AddFunction(MainFuncName, llvm.NewFunctionType(a.sess.Types.I32()))

	b.AppendBlock(fn, EntryBlockName)
	b.Call(entry, "")
	b.Return(b.Load(a.sess.StatusGlobal(), "status"))

	return fn, nil
}

// Assemble assembles the entry function from build and the `main` wrapper
// around it, returning `main`.
func (a *Assembler) Assemble(build BuildFunc) (llvm.Function, error) {
	entry, err := a.AssembleEntry(build)
	if err != nil {
		return llvm.Function{}, err
	}

	return a.AssembleMain(entry)
}
