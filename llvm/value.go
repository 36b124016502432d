package llvm

/*
#include "llvm-c/Core.h"
*/
import "C"

// ValueKind represents a kind of LLVM value.
type ValueKind C.LLVMValueKind

// Enumeration of the LLVM value kinds the harness inspects.
const (
	FunctionValueKind       ValueKind = C.LLVMFunctionValueKind
	GlobalVariableValueKind ValueKind = C.LLVMGlobalVariableValueKind
	ConstantExprValueKind   ValueKind = C.LLVMConstantExprValueKind
	ConstantIntValueKind    ValueKind = C.LLVMConstantIntValueKind
	InstructionValueKind    ValueKind = C.LLVMInstructionValueKind
)

// Value is an interface used to represent all LLVM values.
type Value interface {
	// ptr returns the internal LLVM object pointer to the value.
	ptr() C.LLVMValueRef

	// Type returns the type of the LLVM value.
	Type() Type

	// Kind returns the kind of the LLVM value.
	Kind() ValueKind

	// Name returns the name of the value.
	Name() string

	// IsConstant returns whether the value is constant.
	IsConstant() bool

	// String returns the textual IR form of the value.
	String() string
}

// valueBase is the base type for all values.
type valueBase struct {
	c C.LLVMValueRef
}

func (v valueBase) ptr() C.LLVMValueRef {
	return v.c
}

func (v valueBase) Type() Type {
	return typeBase{c: C.LLVMTypeOf(v.c)}
}

func (v valueBase) Kind() ValueKind {
	return ValueKind(C.LLVMGetValueKind(v.c))
}

func (v valueBase) Name() string {
	var strlen C.size_t
	return C.GoStringN(C.LLVMGetValueName2(v.c, byref(&strlen)), C.int(strlen))
}

func (v valueBase) IsConstant() bool {
	return C.LLVMIsConstant(v.c) == 1
}

func (v valueBase) String() string {
	cstr := C.LLVMPrintValueToString(v.c)
	defer C.LLVMDisposeMessage(cstr)
	return C.GoString(cstr)
}

// valueArray converts a list of values into an array of LLVM value
// references.  It returns nil if there are no values.
func valueArray(values []Value) (*C.LLVMValueRef, int) {
	if len(values) == 0 {
		return nil, 0
	}

	arr := make([]C.LLVMValueRef, len(values))
	for i, value := range values {
		arr[i] = value.ptr()
	}

	return byref(&arr[0]), len(values)
}

// -----------------------------------------------------------------------------

// Constant represents an LLVM constant value.
type Constant struct {
	valueBase
}

// ConstInt creates a new integer constant of type intType, with value n, and
// signedness signed.
func ConstInt(intType IntegerType, n uint64, signed bool) (c Constant) {
	c.c = C.LLVMConstInt(intType.c, (C.ulonglong)(n), llvmBool(signed))
	return
}

// ZExtValue returns the zero extended value of an integer constant.
func (c Constant) ZExtValue() uint64 {
	return uint64(C.LLVMConstIntGetZExtValue(c.c))
}

// -----------------------------------------------------------------------------

// Linkage represents an LLVM linkage.
type Linkage C.LLVMLinkage

// Enumeration of the different linkages.
const (
	ExternalLinkage Linkage = C.LLVMExternalLinkage
	InternalLinkage Linkage = C.LLVMInternalLinkage
)

// GlobalValue represents an LLVM global value.
type GlobalValue struct {
	valueBase
}

// IsDeclaration returns whether the global value is a declaration.
func (gv GlobalValue) IsDeclaration() bool {
	return C.LLVMIsDeclaration(gv.c) == 1
}

// ValueType returns the value type of the global value.
func (gv GlobalValue) ValueType() Type {
	return typeBase{c: C.LLVMGlobalGetValueType(gv.c)}
}

// Linkage returns the linkage of the global value.
func (gv GlobalValue) Linkage() Linkage {
	return Linkage(C.LLVMGetLinkage(gv.c))
}

// SetLinkage sets the linkage of the global value to linkage.
func (gv GlobalValue) SetLinkage(linkage Linkage) {
	C.LLVMSetLinkage(gv.c, (C.LLVMLinkage)(linkage))
}

// -----------------------------------------------------------------------------

// GlobalVariable represents an LLVM global variable.
type GlobalVariable struct {
	GlobalValue
}

// Initializer returns the initial value of the global variable.
func (gv GlobalVariable) Initializer() Constant {
	return Constant{valueBase{c: C.LLVMGetInitializer(gv.c)}}
}

// SetInitializer sets the initial value of the global variable.
func (gv GlobalVariable) SetInitializer(init Constant) {
	C.LLVMSetInitializer(gv.c, init.c)
}
