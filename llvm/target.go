package llvm

/*
#include <stdlib.h>

#include "llvm-c/Core.h"
#include "llvm-c/Target.h"
#include "llvm-c/TargetMachine.h"
*/
import "C"

import (
	"errors"
	"unsafe"

	"fortio.org/safecast"
)

// CodeGenOptLevel represents an LLVM code generation optimization level.
type CodeGenOptLevel C.LLVMCodeGenOptLevel

// Enumeration of LLVM codegen optimization levels.
const (
	CodeGenLevelNone       CodeGenOptLevel = C.LLVMCodeGenLevelNone
	CodeGenLevelLess       CodeGenOptLevel = C.LLVMCodeGenLevelLess
	CodeGenLevelDefault    CodeGenOptLevel = C.LLVMCodeGenLevelDefault
	CodeGenLevelAggressive CodeGenOptLevel = C.LLVMCodeGenLevelAggressive
)

// CodeModel represents an LLVM code model.
type CodeModel C.LLVMCodeModel

// Enumeration of LLVM code models.
const (
	CodeModelDefault CodeModel = C.LLVMCodeModelDefault
	CodeModelSmall   CodeModel = C.LLVMCodeModelSmall
	CodeModelLarge   CodeModel = C.LLVMCodeModelLarge
)

// RelocMode represents an LLVM relocation mode.
type RelocMode C.LLVMRelocMode

// Enumeration of LLVM relocation modes.
const (
	RelocDefault      RelocMode = C.LLVMRelocDefault
	RelocStatic       RelocMode = C.LLVMRelocStatic
	RelocPIC          RelocMode = C.LLVMRelocPIC
	RelocDynamicNoPic RelocMode = C.LLVMRelocDynamicNoPic
)

// CodeGenFileType represents a possible code generation output type.
type CodeGenFileType C.LLVMCodeGenFileType

// Enumeration of LLVM codegen file types.
const (
	AssemblyFile CodeGenFileType = C.LLVMAssemblyFile
	ObjectFile   CodeGenFileType = C.LLVMObjectFile
)

// -----------------------------------------------------------------------------

// TargetData represents an LLVM target data layout.
type TargetData struct {
	c C.LLVMTargetDataRef
}

// NewTargetData creates a new target data from the data layout string layout.
func (c *Context) NewTargetData(layout string) (td TargetData) {
	td.c = C.LLVMCreateTargetData(c.strs.cstr(layout))
	c.takeOwnership(td)
	return
}

// SetDataLayout sets the data layout of a module to the layout of td.
func (m Module) SetDataLayout(td TargetData) {
	C.LLVMSetModuleDataLayout(m.c, td.c)
}

// dispose disposes of the target data.
func (td TargetData) dispose() {
	C.LLVMDisposeTargetData(td.c)
}

// String returns the data layout string of the target data.
func (td TargetData) String() string {
	cstr := C.LLVMCopyStringRepOfTargetData(td.c)
	defer C.LLVMDisposeMessage(cstr)
	return C.GoString(cstr)
}

// PointerSize returns the pointer size in bytes from the target data.
func (td TargetData) PointerSize() uint {
	return uint(C.LLVMPointerSize(td.c))
}

// ABISizeOf returns the ABI size of typ in bytes on the target: the offset
// in bytes between successive objects of the typ, including alignment padding.
func (td TargetData) ABISizeOf(typ Type) uint64 {
	return uint64(C.LLVMABISizeOfType(td.c, typ.ptr()))
}

// ABIAlignOf returns the minimum ABI-required alignment of typ on the target.
func (td TargetData) ABIAlignOf(typ Type) uint64 {
	return uint64(C.LLVMABIAlignmentOfType(td.c, typ.ptr()))
}

// OffsetOfField returns the byte offset of the field at ndx within st.
func (td TargetData) OffsetOfField(st StructType, ndx int) uint64 {
	return uint64(C.LLVMOffsetOfElement(td.c, st.c, safecast.MustConv[C.uint](ndx)))
}

// -----------------------------------------------------------------------------

// Target represents an LLVM output target.
type Target struct {
	c C.LLVMTargetRef
}

// HostTriple returns the target triple of the host system.
func HostTriple() string {
	ctriple := C.LLVMGetDefaultTargetTriple()
	defer C.LLVMDisposeMessage(ctriple)
	return C.GoString(ctriple)
}

// HostCPUName returns the name of the host CPU.
func HostCPUName() string {
	ccpu := C.LLVMGetHostCPUName()
	defer C.LLVMDisposeMessage(ccpu)
	return C.GoString(ccpu)
}

// HostCPUFeatures returns the feature string of the host CPU.
func HostCPUFeatures() string {
	cfeatures := C.LLVMGetHostCPUFeatures()
	defer C.LLVMDisposeMessage(cfeatures)
	return C.GoString(cfeatures)
}

// GetTargetFromTriple finds the target corresponding to triple.  The error
// carries LLVM's explanation when no registered target matches.
func GetTargetFromTriple(triple string) (Target, error) {
	ctriple := C.CString(triple)
	defer C.free(unsafe.Pointer(ctriple))

	var targetPtr C.LLVMTargetRef
	var cerr *C.char
	if C.LLVMGetTargetFromTriple(ctriple, byref(&targetPtr), byref(&cerr)) == 0 {
		return Target{c: targetPtr}, nil
	}

	defer C.LLVMDisposeMessage(cerr)
	return Target{}, errors.New(C.GoString(cerr))
}

// Name returns the name of the target.
func (t Target) Name() string {
	return C.GoString(C.LLVMGetTargetName(t.c))
}

// HasJIT returns if the target has a JIT.
func (t Target) HasJIT() bool {
	return C.LLVMTargetHasJIT(t.c) == 1
}

// -----------------------------------------------------------------------------

// TargetMachine represents an LLVM target machine: used to generate output.
type TargetMachine struct {
	c   C.LLVMTargetMachineRef
	ctx *Context
}

// NewMachine creates a new target machine for target.
func (c *Context) NewMachine(
	target Target,
	triple, cpu, features string,
	level CodeGenOptLevel,
	reloc RelocMode,
	model CodeModel,
) (tm TargetMachine) {
	tm.c = C.LLVMCreateTargetMachine(
		target.c,
		c.strs.cstr(triple),
		c.strs.cstr(cpu),
		c.strs.cstr(features),
		(C.LLVMCodeGenOptLevel)(level),
		(C.LLVMRelocMode)(reloc),
		(C.LLVMCodeModel)(model),
	)
	tm.ctx = c
	c.takeOwnership(tm)
	return
}

// dispose disposes of target machine.
func (tm TargetMachine) dispose() {
	C.LLVMDisposeTargetMachine(tm.c)
}

// Dispose releases the target machine before its context is disposed.
func (tm TargetMachine) Dispose() {
	tm.ctx.disposeOwned(tm)
}

// Triple returns the target triple of the target machine.
func (tm TargetMachine) Triple() string {
	ctriple := C.LLVMGetTargetMachineTriple(tm.c)
	defer C.LLVMDisposeMessage(ctriple)
	return C.GoString(ctriple)
}

// DataLayout creates the target data layout of the target machine.  The
// layout is owned by the machine's context.
func (tm TargetMachine) DataLayout() (td TargetData) {
	td.c = C.LLVMCreateTargetDataLayout(tm.c)
	tm.ctx.takeOwnership(td)
	return
}

// CompileModule compiles mod to fileType and outputs it to path.
func (tm TargetMachine) CompileModule(mod Module, path string, fileType CodeGenFileType) error {
	var cerr *C.char

	cpath := C.CString(path)
	defer C.free(unsafe.Pointer(cpath))

	if C.LLVMTargetMachineEmitToFile(tm.c, mod.c, cpath, (C.LLVMCodeGenFileType)(fileType), byref(&cerr)) == 0 {
		return nil
	}

	defer C.LLVMDisposeMessage(cerr)
	return errors.New(C.GoString(cerr))
}

// -----------------------------------------------------------------------------

// InitializeAllTargets initializes every target LLVM was built with along
// with their target infos, MC layers, assembly parsers and printers.
func InitializeAllTargets() {
	C.LLVMInitializeAllTargetInfos()
	C.LLVMInitializeAllTargets()
	C.LLVMInitializeAllTargetMCs()
	C.LLVMInitializeAllAsmParsers()
	C.LLVMInitializeAllAsmPrinters()
}

// InitializeNativeTarget initializes the host target and its assembly
// printer, which is all the JIT needs.
func InitializeNativeTarget() error {
	if C.LLVMInitializeNativeTarget() != 0 {
		return errors.New("native target is not available")
	}

	if C.LLVMInitializeNativeAsmPrinter() != 0 {
		return errors.New("native assembly printer is not available")
	}

	return nil
}
