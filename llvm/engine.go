package llvm

/*
#include <stdio.h>
#include <stdlib.h>

#include "llvm-c/Core.h"
#include "llvm-c/ExecutionEngine.h"
#include "llvm-c/Support.h"
*/
import "C"

import (
	"errors"
	"fmt"
	"unsafe"
)

// ExecutionEngine represents an LLVM execution engine: an in-process JIT that
// compiles a module and runs its functions.
type ExecutionEngine struct {
	c C.LLVMExecutionEngineRef
}

// LinkInMCJIT makes the MCJIT compiler available to new execution engines.
func LinkInMCJIT() {
	C.LLVMLinkInMCJIT()
}

// NewExecutionEngine creates an execution engine for m.  The engine becomes
// the owner of m: the module is disposed with the engine and must not be
// disposed separately.
func (c *Context) NewExecutionEngine(m Module) (ExecutionEngine, error) {
	var ee ExecutionEngine
	var cerr *C.char

	if C.LLVMCreateExecutionEngineForModule(byref(&ee.c), m.c, byref(&cerr)) != 0 {
		defer C.LLVMDisposeMessage(cerr)
		return ExecutionEngine{}, errors.New(C.GoString(cerr))
	}

	// The module now belongs to the engine.
	c.releaseOwnership(m)
	c.takeOwnership(ee)
	return ee, nil
}

// dispose disposes of the engine and the module it owns.
func (ee ExecutionEngine) dispose() {
	C.LLVMDisposeExecutionEngine(ee.c)
}

// RunFunction runs fn with the given arguments and returns its result.  The
// returned value must be disposed by the caller.
func (ee ExecutionEngine) RunFunction(fn Function, args ...GenericValue) GenericValue {
	var argsPtr *C.LLVMGenericValueRef
	if len(args) > 0 {
		argsArr := make([]C.LLVMGenericValueRef, len(args))
		for i, arg := range args {
			argsArr[i] = arg.c
		}

		argsPtr = byref(&argsArr[0])
	}

	return GenericValue{c: C.LLVMRunFunction(ee.c, fn.c, C.uint(len(args)), argsPtr)}
}

// -----------------------------------------------------------------------------

// GenericValue represents a value passed to or returned from a function run by
// an execution engine.
type GenericValue struct {
	c C.LLVMGenericValueRef
}

// Int returns the integer held by the generic value.
func (gv GenericValue) Int(signed bool) int64 {
	return int64(C.LLVMGenericValueToInt(gv.c, llvmBool(signed)))
}

// Dispose releases the generic value.
func (gv GenericValue) Dispose() {
	C.LLVMDisposeGenericValue(gv.c)
}

// -----------------------------------------------------------------------------

// LoadLibraryPermanently loads the shared library at path into the process so
// that its symbols can be resolved by the JIT.
func LoadLibraryPermanently(path string) error {
	cpath := C.CString(path)
	defer C.free(unsafe.Pointer(cpath))

	if C.LLVMLoadLibraryPermanently(cpath) != 0 {
		return fmt.Errorf("failed to load library %s", path)
	}

	return nil
}

// LoadProcessSymbols makes the symbols of the running process (and the C
// library it links) visible to symbol searches.
func LoadProcessSymbols() error {
	if C.LLVMLoadLibraryPermanently(nil) != 0 {
		return errors.New("failed to load the symbols of the running process")
	}

	return nil
}

// SymbolAvailable returns whether name resolves to an address in the process
// or in a permanently loaded library.
func SymbolAvailable(name string) bool {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))

	return C.LLVMSearchForAddressOfSymbol(cname) != nil
}

// FlushCStdio flushes every C standard I/O stream so that output written by
// JIT-compiled code reaches its file descriptors.
func FlushCStdio() {
	C.fflush(nil)
}
