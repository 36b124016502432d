package llvm

/*
#include "llvm-c/Core.h"
*/
import "C"

import "fortio.org/safecast"

// IRBuilder represents an LLVM IR builder.  Every instruction it builds is
// inserted at its cursor.
type IRBuilder struct {
	c   C.LLVMBuilderRef
	ctx *Context
}

// NewBuilder creates a new IR builder in the given context.
func (c *Context) NewBuilder() (irb IRBuilder) {
	irb.c = C.LLVMCreateBuilderInContext(c.c)
	irb.ctx = c

	c.takeOwnership(irb)
	return
}

// dispose disposes of the builder.
func (irb IRBuilder) dispose() {
	C.LLVMDisposeBuilder(irb.c)
}

// name converts a value name to a C string owned by the builder's context.
func (irb IRBuilder) name(name string) *C.char {
	return irb.ctx.strs.cstr(name)
}

// -----------------------------------------------------------------------------

// Block returns the current basic block the builder is positioned over.  The
// returned block is invalid if the builder has never been positioned.
func (irb IRBuilder) Block() (BasicBlock, bool) {
	bb := BasicBlock{c: C.LLVMGetInsertBlock(irb.c)}
	return bb, bb.c != nil
}

// MoveToEnd moves the builder to the end of bb.
func (irb IRBuilder) MoveToEnd(bb BasicBlock) {
	C.LLVMPositionBuilderAtEnd(irb.c, bb.c)
}

// -----------------------------------------------------------------------------

// BuildRet builds a `ret` instruction.  An empty value list returns void.
func (irb IRBuilder) BuildRet(values ...Value) (ret Terminator) {
	switch len(values) {
	case 0:
		ret.c = C.LLVMBuildRetVoid(irb.c)
	case 1:
		ret.c = C.LLVMBuildRet(irb.c, values[0].ptr())
	default:
		panic("error: aggregate returns are not supported")
	}

	return
}

// BuildBr builds an unconditional `br` instruction.
func (irb IRBuilder) BuildBr(dest BasicBlock) (br Terminator) {
	br.c = C.LLVMBuildBr(irb.c, dest.c)
	return
}

// BuildCondBr builds a conditional `br` instruction.
func (irb IRBuilder) BuildCondBr(cond Value, thenBlock, elseBlock BasicBlock) (cbr Terminator) {
	cbr.c = C.LLVMBuildCondBr(irb.c, cond.ptr(), thenBlock.c, elseBlock.c)
	return
}

// BuildAlloca builds an `alloca` instruction.
func (irb IRBuilder) BuildAlloca(typ Type, name string) (ain Instruction) {
	ain.c = C.LLVMBuildAlloca(irb.c, typ.ptr(), irb.name(name))
	return
}

// BuildLoad builds a `load` instruction.
func (irb IRBuilder) BuildLoad(loadedType Type, ptr Value, name string) (in Instruction) {
	in.c = C.LLVMBuildLoad2(irb.c, loadedType.ptr(), ptr.ptr(), irb.name(name))
	return
}

// BuildStore builds a `store` instruction.
func (irb IRBuilder) BuildStore(val, ptr Value) (in Instruction) {
	in.c = C.LLVMBuildStore(irb.c, val.ptr(), ptr.ptr())
	return
}

// BuildStructGEP builds a `getelementptr` instruction for struct fields.
func (irb IRBuilder) BuildStructGEP(structTyp StructType, ptr Value, ndx int, name string) (in Instruction) {
	in.c = C.LLVMBuildStructGEP2(irb.c, structTyp.c, ptr.ptr(), safecast.MustConv[C.uint](ndx), irb.name(name))
	return
}

// BuildInBoundsGEP builds an `inbounds getelementptr` instruction indexing
// into the value of type typ that ptr points to.
func (irb IRBuilder) BuildInBoundsGEP(typ Type, ptr Value, indices []Value, name string) (in Instruction) {
	ndxArr, n := valueArray(indices)
	in.c = C.LLVMBuildInBoundsGEP2(irb.c, typ.ptr(), ptr.ptr(), ndxArr, safecast.MustConv[C.uint](n), irb.name(name))
	return
}

// BuildSExt builds a `sext` instruction.
func (irb IRBuilder) BuildSExt(src Value, dest Type, name string) (in Instruction) {
	in.c = C.LLVMBuildSExt(irb.c, src.ptr(), dest.ptr(), irb.name(name))
	return
}

// BuildBitCast builds a `bitcast` instruction.
func (irb IRBuilder) BuildBitCast(src Value, dest Type, name string) (in Instruction) {
	in.c = C.LLVMBuildBitCast(irb.c, src.ptr(), dest.ptr(), irb.name(name))
	return
}

// BuildICmp builds an `icmp` instruction.
func (irb IRBuilder) BuildICmp(pred IntPredicate, lhs, rhs Value, name string) (icmp ICmpInstruction) {
	icmp.c = C.LLVMBuildICmp(irb.c, (C.LLVMIntPredicate)(pred), lhs.ptr(), rhs.ptr(), irb.name(name))
	return
}

// BuildCall builds a `call` instruction.  Calls to functions returning void
// cannot be named so name is ignored for them.
func (irb IRBuilder) BuildCall(fnType FunctionType, fn Value, args []Value, name string) (call CallInstruction) {
	if fnType.ReturnType().Kind() == VoidTypeKind {
		name = ""
	}

	argsArr, n := valueArray(args)
	call.c = C.LLVMBuildCall2(irb.c, fnType.c, fn.ptr(), argsArr, safecast.MustConv[C.uint](n), irb.name(name))
	return
}

// BuildGlobalStringPtr builds a private global holding the null-terminated
// string str and returns an `i8*` pointing at its first character.
func (irb IRBuilder) BuildGlobalStringPtr(str, name string) (gs Constant) {
	gs.c = C.LLVMBuildGlobalStringPtr(irb.c, irb.name(str), irb.name(name))
	return
}
