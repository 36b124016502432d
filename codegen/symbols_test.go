package codegen

import (
	"nullgen/llvm"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countFunctions(mod llvm.Module) int {
	n := 0
	for it := mod.Functions(); it.Next(); {
		n++
	}

	return n
}

func TestDeclareIsIdempotent(t *testing.T) {
	sess := newTestSession(t)
	syms := sess.Symbols

	first := syms.Printf()
	second := syms.Printf()

	assert.Equal(t, first.String(), second.String())
	assert.Equal(t, 1, countFunctions(sess.Module))
	assert.Equal(t, []string{"printf"}, syms.Externals())

	// A conflicting signature keeps the original declaration.
	third := syms.Declare("printf", Signature{Return: sess.Types.Void()})
	assert.True(t, third.FuncType().IsVarArg())
	assert.Equal(t, 1, countFunctions(sess.Module))
}

func TestDeclareReusesModuleFunction(t *testing.T) {
	sess := newTestSession(t)

	ft := llvm.NewFunctionType(sess.Types.Void(), sess.Types.BytePtr())
	sess.Module.AddFunction("free", ft)

	fn := sess.Symbols.Free()
	assert.Equal(t, "free", fn.Name())
	assert.Equal(t, 1, countFunctions(sess.Module))

	found, ok := sess.Symbols.Lookup("free")
	require.True(t, ok)
	assert.Equal(t, fn.Name(), found.Name())

	_, ok = sess.Symbols.Lookup("malloc")
	assert.False(t, ok)
}

func TestCLibrarySignatures(t *testing.T) {
	sess := newTestSession(t)
	syms := sess.Symbols

	assert.Equal(t, "i8* (i64)", syms.Malloc().FuncType().String())
	assert.Equal(t, "void (i8*)", syms.Free().FuncType().String())
	assert.Equal(t, "i32 (i8*, ...)", syms.Printf().FuncType().String())
	assert.Equal(t, "i32 (i8*, ...)", syms.Scanf().FuncType().String())
}

func TestMPSignatures(t *testing.T) {
	sess := newTestSession(t)
	syms := sess.Symbols

	assert.Equal(t, "i32 (%mp_int*)", syms.MPInit().FuncType().String())
	assert.Equal(t, "i32 (%mp_int*, i8*, i32)", syms.MPReadRadix().FuncType().String())
	assert.Equal(t, "i32 (%mp_int*, %mp_int*, %mp_int*)", syms.MPAdd().FuncType().String())
	assert.Equal(t, "i32 (%mp_int*, i32, i32*)", syms.MPRadixSize().FuncType().String())
	assert.Equal(t, "i32 (%mp_int*, i8*, i32)", syms.MPToRadix().FuncType().String())

	// Every declaration shares the one `mp_int` struct.
	assert.Equal(t, []string{MPIntStruct}, sess.Types.StructNames())
	assert.Equal(t, 5, countFunctions(sess.Module))
}
