package stublib

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

// libc holds the C library functions the stubs call.
type libc struct {
	printf   *ir.Func
	sprintf  *ir.Func
	snprintf *ir.Func
	malloc   *ir.Func
	strtoll  *ir.Func
}

// declareLibC declares the C library functions used by the stubs in m.
func declareLibC(m *ir.Module) *libc {
	lc := &libc{
		printf: m.NewFunc("printf", types.I32, ir.NewParam("format", types.I8Ptr)),
		sprintf: m.NewFunc(
			"sprintf",
			types.I32,
			ir.NewParam("str", types.I8Ptr),
			ir.NewParam("format", types.I8Ptr),
		),
		snprintf: m.NewFunc(
			"snprintf",
			types.I32,
			ir.NewParam("str", types.I8Ptr),
			ir.NewParam("size", types.I64),
			ir.NewParam("format", types.I8Ptr),
		),
		malloc: m.NewFunc("malloc", types.I8Ptr, ir.NewParam("size", types.I64)),
		strtoll: m.NewFunc(
			"strtoll",
			types.I64,
			ir.NewParam("str", types.I8Ptr),
			ir.NewParam("endptr", types.NewPointer(types.I8Ptr)),
			ir.NewParam("base", types.I32),
		),
	}

	lc.printf.Sig.Variadic = true
	lc.sprintf.Sig.Variadic = true
	lc.snprintf.Sig.Variadic = true

	return lc
}

// globalString defines a private NUL-terminated string constant and returns
// an `i8*` to its first byte.
func globalString(m *ir.Module, name, s string) constant.Constant {
	arr := constant.NewCharArrayFromString(s + "\x00")

	g := m.NewGlobalDef(name, arr)
	g.Immutable = true
	g.Linkage = enum.LinkagePrivate

	zero := constant.NewInt(types.I64, 0)
	return constant.NewGetElementPtr(arr.Typ, g, zero, zero)
}

// i32 returns the `i32` constant n.
func i32(n int64) *constant.Int {
	return constant.NewInt(types.I32, n)
}

// fieldPtr returns the address of the field at ndx of the struct of type st
// that ptr points to.
func fieldPtr(b *ir.Block, st types.Type, ptr value.Value, ndx int64) value.Value {
	return b.NewGetElementPtr(st, ptr, i32(0), i32(ndx))
}

// mallocAs allocates size bytes and casts the result to typ.
func mallocAs(b *ir.Block, lc *libc, size int64, typ types.Type) value.Value {
	raw := b.NewCall(lc.malloc, constant.NewInt(types.I64, size))
	return b.NewBitCast(raw, typ)
}
