package llvm

/*
#include "llvm-c/Core.h"
*/
import "C"

// OpCode represents an LLVM instruction opcode.
type OpCode C.LLVMOpcode

// Enumeration of the LLVM opcodes the harness emits.
const (
	RetOpCode           OpCode = C.LLVMRet
	BrOpCode            OpCode = C.LLVMBr
	AllocaOpCode        OpCode = C.LLVMAlloca
	LoadOpCode          OpCode = C.LLVMLoad
	StoreOpCode         OpCode = C.LLVMStore
	GetElementPtrOpCode OpCode = C.LLVMGetElementPtr
	SExtOpCode          OpCode = C.LLVMSExt
	ICmpOpCode          OpCode = C.LLVMICmp
	CallOpCode          OpCode = C.LLVMCall
)

// Instruction represents an LLVM instruction.
type Instruction struct {
	valueBase
}

// OpCode returns the LLVM op code of the instruction.
func (instr Instruction) OpCode() OpCode {
	return OpCode(C.LLVMGetInstructionOpcode(instr.c))
}

// IsTerminator returns whether the instruction is a terminator.
func (instr Instruction) IsTerminator() bool {
	return C.LLVMIsATerminatorInst(instr.c) != nil
}

// -----------------------------------------------------------------------------

// IntPredicate represents the predicate of an `icmp` instruction.
type IntPredicate C.LLVMIntPredicate

// Enumeration of valid int predicates.
const (
	IntNE IntPredicate = C.LLVMIntNE
)

// ICmpInstruction represents an `icmp` instruction.
type ICmpInstruction struct {
	Instruction
}

// Predicate returns the int predicate of the `icmp` instruction.
func (ici ICmpInstruction) Predicate() IntPredicate {
	return IntPredicate(C.LLVMGetICmpPredicate(ici.c))
}

// -----------------------------------------------------------------------------

// CallInstruction represents an `call` instruction.
type CallInstruction struct {
	Instruction
}

// NumArgs returns the number of arguments passed to the call instruction.
func (ci CallInstruction) NumArgs() int {
	return int(C.LLVMGetNumArgOperands(ci.c))
}

// -----------------------------------------------------------------------------

// Terminator represents a terminator instruction.
type Terminator struct {
	Instruction
}

// NumSuccessors returns the number of successors of this terminator.
func (term Terminator) NumSuccessors() int {
	return int(C.LLVMGetNumSuccessors(term.c))
}

// GetSuccessor gets the successor of this terminator at ndx.
func (term Terminator) GetSuccessor(ndx int) BasicBlock {
	if 0 <= ndx && ndx < term.NumSuccessors() {
		return BasicBlock{c: C.LLVMGetSuccessor(term.c, (C.uint)(ndx))}
	}

	panic("error: successor index out of bounds")
}

// -----------------------------------------------------------------------------

// BasicBlock represents an LLVM basic block.
type BasicBlock struct {
	c C.LLVMBasicBlockRef
}

// Name returns the name of the basic block.
func (bb BasicBlock) Name() string {
	return C.GoString(C.LLVMGetBasicBlockName(bb.c))
}

// Terminator returns the terminator instruction of a basic block.
func (bb BasicBlock) Terminator() (term Terminator, exists bool) {
	termPtr := C.LLVMGetBasicBlockTerminator(bb.c)

	if termPtr != nil {
		term.c = termPtr
		exists = true
	}

	return
}

// Last returns the last instruction in a basic block.
func (bb BasicBlock) Last() (instr Instruction, exists bool) {
	instrPtr := C.LLVMGetLastInstruction(bb.c)

	if instrPtr != nil {
		instr.c = instrPtr
		exists = true
	}

	return
}

// -----------------------------------------------------------------------------

// Function represents an LLVM function.
type Function struct {
	GlobalValue

	// The context owning the function's module.
	ctx *Context
}

// FuncType returns the signature of the function.
func (f Function) FuncType() FunctionType {
	return FunctionType{typeBase{c: f.ValueType().ptr()}}
}

// NumParams returns the number of parameters of the function.
func (f Function) NumParams() int {
	return int(C.LLVMCountParams(f.c))
}

// Body returns the body of the function.
func (f Function) Body() FuncBody {
	return FuncBody{c: f.c, ctx: f.ctx}
}

// -----------------------------------------------------------------------------

// FuncBody represents an LLVM function body.
type FuncBody struct {
	c   C.LLVMValueRef
	ctx *Context
}

// Len returns the number of basic blocks in the function body.
func (fb FuncBody) Len() int {
	return int(C.LLVMCountBasicBlocks(fb.c))
}

// bodyIter is an iterator over the body of a function.
type bodyIter struct {
	curr, next C.LLVMBasicBlockRef
}

func (it *bodyIter) Item() (bb BasicBlock) {
	bb.c = it.curr
	return
}

func (it *bodyIter) Next() bool {
	it.curr = it.next
	if it.curr != nil {
		it.next = C.LLVMGetNextBasicBlock(it.curr)
	}
	return it.curr != nil
}

// Blocks returns an iterator over the blocks of a function body.
func (fb FuncBody) Blocks() Iterator[BasicBlock] {
	return &bodyIter{next: C.LLVMGetFirstBasicBlock(fb.c)}
}

// AppendNamed appends a new block to the function named name.
func (fb FuncBody) AppendNamed(name string) (bb BasicBlock) {
	bb.c = C.LLVMAppendBasicBlockInContext(fb.ctx.c, fb.c, fb.ctx.strs.cstr(name))
	return
}
