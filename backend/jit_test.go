package backend

import (
	"errors"
	"nullgen/codegen"
	"nullgen/llvm"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunJITRejectsBrokenModule(t *testing.T) {
	sess := codegen.NewSession("broken")
	defer sess.Teardown()

	mainFn := sess.Module.AddFunction(codegen.MainFuncName, llvm.NewFunctionType(sess.Types.I32()))
	sess.Builder.AppendBlock(mainFn, codegen.EntryBlockName)

	_, err := RunJIT(sess, mainFn, nil)

	var verr *VerifyError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Diagnostic, "terminator")
}

func TestRunJITRejectsBadMain(t *testing.T) {
	sess := codegen.NewSession("bad_main")
	defer sess.Teardown()

	entry, err := codegen.NewAssembler(sess).AssembleEntry(func(f *codegen.Frame) error { return nil })
	require.NoError(t, err)

	_, err = RunJIT(sess, entry, nil)
	assert.ErrorContains(t, err, "must have type `i32 ()`")
}

func TestRunJITUnresolvedSymbols(t *testing.T) {
	sess, mainFn := assemble(t, func(f *codegen.Frame) error {
		missing := f.Symbols.Declare("nullgen_missing_symbol", codegen.Signature{Return: f.Types.Void()})
		f.Builder.Call(missing, "")
		return nil
	})

	_, err := RunJIT(sess, mainFn, []string{"/nonexistent/libnothing.so"})

	var uerr *UnresolvedSymbolsError
	require.True(t, errors.As(err, &uerr))
	assert.Equal(t, []string{"nullgen_missing_symbol"}, uerr.Symbols)
}
