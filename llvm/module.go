package llvm

/*
#include <stdlib.h>

#include "llvm-c/Core.h"
#include "llvm-c/Analysis.h"
#include "llvm-c/IRReader.h"
*/
import "C"

import (
	"errors"
	"unsafe"
)

// Module represents an LLVM module.
type Module struct {
	c   C.LLVMModuleRef
	ctx *Context
}

// NewModule creates a new module with the given name in the current context.
func (c *Context) NewModule(name string) (m Module) {
	m.c = C.LLVMModuleCreateWithNameInContext(c.strs.cstr(name), c.c)
	m.ctx = c
	c.takeOwnership(m)
	return
}

// NewModuleFromIR creates a new module from the given string of textual LLVM
// IR in the given context.
func (c *Context) NewModuleFromIR(irString string) (Module, error) {
	// The memory buffer does not copy the IR, and the parser takes ownership
	// of the buffer itself, so only the C string is kept by the context.
	cir := c.strs.cstr(irString)
	memBuff := C.LLVMCreateMemoryBufferWithMemoryRange(
		cir,
		(C.size_t)(len(irString)),
		c.strs.cstr("ir"),
		0,
	)

	var modPtr C.LLVMModuleRef
	var msg *C.char
	if C.LLVMParseIRInContext(c.c, memBuff, byref(&modPtr), byref(&msg)) == 0 {
		m := Module{c: modPtr, ctx: c}
		c.takeOwnership(m)
		return m, nil
	}

	defer C.LLVMDisposeMessage(msg)
	return Module{}, errors.New(C.GoString(msg))
}

// dispose disposes of the current module.
func (m Module) dispose() {
	C.LLVMDisposeModule(m.c)
}

// String returns the textual IR of the module.
func (m Module) String() string {
	cstr := C.LLVMPrintModuleToString(m.c)
	defer C.LLVMDisposeMessage(cstr)
	return C.GoString(cstr)
}

// WriteToFile writes the LLVM IR of the module to a file.
func (m Module) WriteToFile(filepath string) error {
	var errMsg *C.char

	cfpath := C.CString(filepath)
	defer C.free(unsafe.Pointer(cfpath))

	if C.LLVMPrintModuleToFile(m.c, cfpath, byref(&errMsg)) != 0 {
		defer C.LLVMDisposeMessage(errMsg)
		return errors.New(C.GoString(errMsg))
	}

	return nil
}

// -----------------------------------------------------------------------------

// Name returns the name of the module.
func (m Module) Name() string {
	var strlen C.size_t
	str := C.LLVMGetModuleIdentifier(m.c, byref(&strlen))
	return C.GoStringN(str, (C.int)(strlen))
}

// DataLayout returns the data layout string of the module.
func (m Module) DataLayout() string {
	return C.GoString(C.LLVMGetDataLayoutStr(m.c))
}

// TargetTriple returns the target triple string of the module.
func (m Module) TargetTriple() string {
	return C.GoString(C.LLVMGetTarget(m.c))
}

// SetTargetTriple sets the target triple string of the module.
func (m Module) SetTargetTriple(triple string) {
	C.LLVMSetTarget(m.c, m.ctx.strs.cstr(triple))
}

// -----------------------------------------------------------------------------

// AddFunction adds a new function the module.
func (m Module) AddFunction(name string, funcType FunctionType) (fn Function) {
	fn.c = C.LLVMAddFunction(m.c, m.ctx.strs.cstr(name), funcType.c)
	fn.ctx = m.ctx
	return
}

// GetFunction returns the declared function corresponding to name.
func (m Module) GetFunction(name string) (fn Function, exists bool) {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))

	fnPtr := C.LLVMGetNamedFunction(m.c, cname)
	if fnPtr != nil {
		fn.c = fnPtr
		fn.ctx = m.ctx
		exists = true
	}

	return
}

// funcIter is an iterator over the functions of a module.
type funcIter struct {
	ctx        *Context
	curr, next C.LLVMValueRef
}

func (it *funcIter) Item() (fn Function) {
	fn.c = it.curr
	fn.ctx = it.ctx
	return
}

func (it *funcIter) Next() bool {
	it.curr = it.next
	if it.curr != nil {
		it.next = C.LLVMGetNextFunction(it.curr)
	}
	return it.curr != nil
}

// Functions returns an iterator of the functions of the module.
func (m Module) Functions() Iterator[Function] {
	return &funcIter{ctx: m.ctx, next: C.LLVMGetFirstFunction(m.c)}
}

// AddGlobal adds a new global variable of type typ to the module.
func (m Module) AddGlobal(typ Type, name string) (gv GlobalVariable) {
	gv.c = C.LLVMAddGlobal(m.c, typ.ptr(), m.ctx.strs.cstr(name))
	return
}

// GetGlobal returns the global variable named name.
func (m Module) GetGlobal(name string) (gv GlobalVariable, exists bool) {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))

	gvPtr := C.LLVMGetNamedGlobal(m.c, cname)
	if gvPtr != nil {
		gv.c = gvPtr
		exists = true
	}

	return
}

// -----------------------------------------------------------------------------

// VerifierAction is the action the LLVM verifier takes when a module is broken.
type VerifierAction C.LLVMVerifierFailureAction

// Enumeration of verifier actions.
const (
	// ReturnStatusAction reports the failure through the returned error.
	ReturnStatusAction VerifierAction = C.LLVMReturnStatusAction

	// PrintMessageAction also prints the diagnostic to standard error.
	PrintMessageAction VerifierAction = C.LLVMPrintMessageAction

	// AbortProcessAction prints the diagnostic and aborts the process.
	AbortProcessAction VerifierAction = C.LLVMAbortProcessAction
)

// Verify verifies that the module is correct/well-formed.
func (m Module) Verify() error {
	return m.VerifyWith(ReturnStatusAction)
}

// VerifyWith verifies the module using the given failure action.
func (m Module) VerifyWith(action VerifierAction) error {
	var cmsg *C.char

	broken := C.LLVMVerifyModule(m.c, (C.LLVMVerifierFailureAction)(action), byref(&cmsg))

	var msg string
	if cmsg != nil {
		msg = C.GoString(cmsg)
		C.LLVMDisposeMessage(cmsg)
	}

	if broken == 1 {
		return errors.New(msg)
	}

	return nil
}
