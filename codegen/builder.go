package codegen

import (
	"fmt"
	"nullgen/llvm"
)

// Builder emits instructions at a single cursor which always sits at the end
// of some basic block.  The cursor only moves when a block is appended with
// AppendBlock or when it is explicitly repositioned with PositionAtEnd.
//
// Misuse of the builder (wrong argument counts, non-struct field access,
// emitting after a terminator) is a programming error and panics.
type Builder struct {
	irb   llvm.IRBuilder
	types *Registry
}

// NewBuilder creates a new instruction builder on top of irb.
func NewBuilder(irb llvm.IRBuilder, types *Registry) *Builder {
	return &Builder{irb: irb, types: types}
}

// Block returns the block the cursor is positioned at.
func (b *Builder) Block() llvm.BasicBlock {
	bb, ok := b.irb.Block()
	if !ok {
		panic("error: builder is not positioned in a block")
	}

	return bb
}

// Terminated returns whether the block at the cursor already ends with a
// terminator.
func (b *Builder) Terminated() bool {
	last, ok := b.Block().Last()
	return ok && last.IsTerminator()
}

// open returns the block at the cursor, panicking if it is terminated.
func (b *Builder) open() llvm.BasicBlock {
	bb := b.Block()
	if _, ok := bb.Terminator(); ok {
		panic(fmt.Sprintf("error: block `%s` is already terminated", bb.Name()))
	}

	return bb
}

// AppendBlock appends a new block named name to fn and moves the cursor to it.
func (b *Builder) AppendBlock(fn llvm.Function, name string) llvm.BasicBlock {
	bb := fn.Body().AppendNamed(name)
	b.irb.MoveToEnd(bb)
	return bb
}

// NewBlock appends a new block named name to fn without moving the cursor.
func (b *Builder) NewBlock(fn llvm.Function, name string) llvm.BasicBlock {
	return fn.Body().AppendNamed(name)
}

// PositionAtEnd moves the cursor to the end of bb.
func (b *Builder) PositionAtEnd(bb llvm.BasicBlock) {
	b.irb.MoveToEnd(bb)
}

// -----------------------------------------------------------------------------

// StackAlloc reserves stack space for one value of typ.
func (b *Builder) StackAlloc(name string, typ llvm.Type) llvm.Value {
	b.open()
	return b.irb.BuildAlloca(typ, name)
}

// pointee returns the element type of the pointer value ptr.
func pointee(ptr llvm.Value, op string) llvm.Type {
	pt, ok := llvm.AsPointerType(ptr.Type())
	if !ok {
		panic(fmt.Sprintf("error: %s expects a pointer, got `%s`", op, ptr.Type()))
	}

	return pt.ElemType()
}

// Load loads the value ptr points to.
func (b *Builder) Load(ptr llvm.Value, name string) llvm.Value {
	b.open()
	return b.irb.BuildLoad(pointee(ptr, "load"), ptr, name)
}

// Store stores val at the location ptr points to.
func (b *Builder) Store(val, ptr llvm.Value) {
	b.open()

	if elem := pointee(ptr, "store"); !llvm.TypesEqual(elem, val.Type()) {
		panic(fmt.Sprintf("error: cannot store `%s` through `%s`", val.Type(), ptr.Type()))
	}

	b.irb.BuildStore(val, ptr)
}

// FieldAddress returns the address of the field at index of the struct
// structPtr points to.
func (b *Builder) FieldAddress(structPtr llvm.Value, index int, name string) llvm.Value {
	b.open()

	st, ok := llvm.AsStructType(pointee(structPtr, "field address"))
	if !ok {
		panic(fmt.Sprintf("error: field address expects a struct pointer, got `%s`", structPtr.Type()))
	}

	if index < 0 || index >= st.NumFields() {
		panic(fmt.Sprintf("error: field index %d out of bounds for `%s`", index, st))
	}

	return b.irb.BuildStructGEP(st, structPtr, index, name)
}

// ElementAddress returns the address of the element at index of the array
// arrayPtr points to.
func (b *Builder) ElementAddress(arrayPtr llvm.Value, index int, name string) llvm.Value {
	b.open()

	at, ok := llvm.AsArrayType(pointee(arrayPtr, "element address"))
	if !ok {
		panic(fmt.Sprintf("error: element address expects an array pointer, got `%s`", arrayPtr.Type()))
	}

	if index < 0 || index >= at.Len() {
		panic(fmt.Sprintf("error: element index %d out of bounds for `%s`", index, at))
	}

	indices := []llvm.Value{b.ConstI64(0), b.ConstI64(int64(index))}
	return b.irb.BuildInBoundsGEP(at, arrayPtr, indices, name)
}

// SignExtend widens the integer val to target, preserving its sign.
func (b *Builder) SignExtend(val llvm.Value, target llvm.IntegerType, name string) llvm.Value {
	b.open()

	src, ok := llvm.AsIntegerType(val.Type())
	if !ok || src.BitWidth() >= target.BitWidth() {
		panic(fmt.Sprintf("error: cannot sign extend `%s` to `%s`", val.Type(), target))
	}

	return b.irb.BuildSExt(val, target, name)
}

// PointerCast reinterprets the pointer val as a pointer of type target.
func (b *Builder) PointerCast(val llvm.Value, target llvm.PointerType, name string) llvm.Value {
	b.open()

	if _, ok := llvm.AsPointerType(val.Type()); !ok {
		panic(fmt.Sprintf("error: pointer cast expects a pointer, got `%s`", val.Type()))
	}

	return b.irb.BuildBitCast(val, target, name)
}

// Call calls fn with args.  The result of a void function is not a usable
// value.
func (b *Builder) Call(fn llvm.Function, name string, args ...llvm.Value) llvm.Value {
	b.open()

	ft := fn.FuncType()
	params := ft.Params()

	if len(args) < len(params) || (!ft.IsVarArg() && len(args) != len(params)) {
		panic(fmt.Sprintf("error: `%s` expects %d arguments, got %d", fn.Name(), len(params), len(args)))
	}

	for i, param := range params {
		if !llvm.TypesEqual(param, args[i].Type()) {
			panic(fmt.Sprintf(
				"error: argument %d of `%s` must be `%s`, got `%s`",
				i, fn.Name(), param, args[i].Type(),
			))
		}
	}

	return b.irb.BuildCall(ft, fn, args, name)
}

// ICmpNE compares two integers for inequality.
func (b *Builder) ICmpNE(lhs, rhs llvm.Value, name string) llvm.Value {
	b.open()
	return b.irb.BuildICmp(llvm.IntNE, lhs, rhs, name)
}

// Branch ends the current block with a jump to dest.
func (b *Builder) Branch(dest llvm.BasicBlock) {
	b.open()
	b.irb.BuildBr(dest)
}

// CondBranch ends the current block with a jump to then if cond holds and to
// els otherwise.
func (b *Builder) CondBranch(cond llvm.Value, then, els llvm.BasicBlock) {
	b.open()
	b.irb.BuildCondBr(cond, then, els)
}

// ReturnVoid ends the current block by returning from a void function.
func (b *Builder) ReturnVoid() {
	b.open()
	b.irb.BuildRet()
}

// Return ends the current block by returning val.
func (b *Builder) Return(val llvm.Value) {
	b.open()
	b.irb.BuildRet(val)
}

// -----------------------------------------------------------------------------

// GlobalString creates a private constant global holding literal followed by
// a NUL byte and returns an `i8*` to it.
func (b *Builder) GlobalString(name, literal string) llvm.Value {
	b.open()
	return b.irb.BuildGlobalStringPtr(literal, name)
}

// ConstI32 returns the `i32` constant n.
func (b *Builder) ConstI32(n int32) llvm.Value {
	return llvm.ConstInt(b.types.I32(), uint64(n), true)
}

// ConstI64 returns the `i64` constant n.
func (b *Builder) ConstI64(n int64) llvm.Value {
	return llvm.ConstInt(b.types.I64(), uint64(n), true)
}
