package llvm

/*
#include "llvm-c/Core.h"
*/
import "C"

import (
	"fortio.org/safecast"
)

// TypeKind identifies a specific kind of LLVM type.
type TypeKind C.LLVMTypeKind

// Enumeration of the type kinds the harness works with.
const (
	VoidTypeKind     TypeKind = C.LLVMVoidTypeKind
	LabelTypeKind    TypeKind = C.LLVMLabelTypeKind
	IntegerTypeKind  TypeKind = C.LLVMIntegerTypeKind
	FunctionTypeKind TypeKind = C.LLVMFunctionTypeKind
	StructTypeKind   TypeKind = C.LLVMStructTypeKind
	ArrayTypeKind    TypeKind = C.LLVMArrayTypeKind
	PointerTypeKind  TypeKind = C.LLVMPointerTypeKind
)

// Type is an interface used to represent all LLVM types.
type Type interface {
	// ptr returns the internal LLVM object pointer to the type.
	ptr() C.LLVMTypeRef

	// Kind returns the type's type kind.
	Kind() TypeKind

	// Sized returns whether or not the type is sized.
	Sized() bool

	// String returns the textual IR form of the type.
	String() string
}

// typeBase is the base struct used to build LLVM types.
type typeBase struct {
	c C.LLVMTypeRef
}

func (tb typeBase) ptr() C.LLVMTypeRef {
	return tb.c
}

func (tb typeBase) Kind() TypeKind {
	return TypeKind(C.LLVMGetTypeKind(tb.c))
}

func (tb typeBase) Sized() bool {
	return C.LLVMTypeIsSized(tb.c) == 1
}

func (tb typeBase) String() string {
	cstr := C.LLVMPrintTypeToString(tb.c)
	defer C.LLVMDisposeMessage(cstr)
	return C.GoString(cstr)
}

// IsNilType returns whether typ is missing: either a nil interface or a type
// handle that refers to no LLVM type.
func IsNilType(typ Type) bool {
	return typ == nil || typ.ptr() == nil
}

// TypesEqual returns whether a and b are the same LLVM type.  Types are
// uniqued by their context so this is an identity comparison.
func TypesEqual(a, b Type) bool {
	if a == nil || b == nil {
		return a == b
	}

	return a.ptr() == b.ptr()
}

// typeArray converts a list of types into an array of LLVM type references.
// It returns nil if there are no types.
func typeArray(types []Type) (*C.LLVMTypeRef, C.uint) {
	if len(types) == 0 {
		return nil, 0
	}

	arr := make([]C.LLVMTypeRef, len(types))
	for i, typ := range types {
		arr[i] = typ.ptr()
	}

	return byref(&arr[0]), safecast.MustConv[C.uint](len(types))
}

// -----------------------------------------------------------------------------

// IntegerType represents an LLVM integer type.
type IntegerType struct {
	typeBase
}

// BitWidth returns the bit width of the integer type.
func (it IntegerType) BitWidth() uint {
	return uint(C.LLVMGetIntTypeWidth(it.c))
}

// AsIntegerType converts typ to an integer type if it is one.
func AsIntegerType(typ Type) (IntegerType, bool) {
	if IsNilType(typ) || typ.Kind() != IntegerTypeKind {
		return IntegerType{}, false
	}

	return IntegerType{typeBase{c: typ.ptr()}}, true
}

// Int1Type returns the `i1` type of the context.
func (c *Context) Int1Type() (it IntegerType) {
	it.c = C.LLVMInt1TypeInContext(c.c)
	return
}

// Int8Type returns the `i8` type of the context.
func (c *Context) Int8Type() (it IntegerType) {
	it.c = C.LLVMInt8TypeInContext(c.c)
	return
}

// Int32Type returns the `i32` type of the context.
func (c *Context) Int32Type() (it IntegerType) {
	it.c = C.LLVMInt32TypeInContext(c.c)
	return
}

// Int64Type returns the `i64` type of the context.
func (c *Context) Int64Type() (it IntegerType) {
	it.c = C.LLVMInt64TypeInContext(c.c)
	return
}

// VoidType returns the `void` type of the context.
func (c *Context) VoidType() Type {
	return typeBase{c: C.LLVMVoidTypeInContext(c.c)}
}

// -----------------------------------------------------------------------------

// PointerType represents an LLVM pointer type.
type PointerType struct {
	typeBase
}

// NewPointerType returns a new pointer type to elemType in address space 0.
func NewPointerType(elemType Type) (pt PointerType) {
	pt.c = C.LLVMPointerType(elemType.ptr(), 0)
	return
}

// AsPointerType converts typ to a pointer type if it is one.
func AsPointerType(typ Type) (PointerType, bool) {
	if IsNilType(typ) || typ.Kind() != PointerTypeKind {
		return PointerType{}, false
	}

	return PointerType{typeBase{c: typ.ptr()}}, true
}

// ElemType returns the element type of the pointer.
func (pt PointerType) ElemType() Type {
	return typeBase{c: C.LLVMGetElementType(pt.c)}
}

// -----------------------------------------------------------------------------

// ArrayType represents an LLVM fixed-size array type.
type ArrayType struct {
	typeBase
}

// NewArrayType returns a new array type of length elements of elemType.
func NewArrayType(elemType Type, length int) (at ArrayType) {
	at.c = C.LLVMArrayType(elemType.ptr(), safecast.MustConv[C.uint](length))
	return
}

// AsArrayType converts typ to an array type if it is one.
func AsArrayType(typ Type) (ArrayType, bool) {
	if IsNilType(typ) || typ.Kind() != ArrayTypeKind {
		return ArrayType{}, false
	}

	return ArrayType{typeBase{c: typ.ptr()}}, true
}

// ElemType returns the element type of the array.
func (at ArrayType) ElemType() Type {
	return typeBase{c: C.LLVMGetElementType(at.c)}
}

// Len returns the number of elements in the array.
func (at ArrayType) Len() int {
	return int(C.LLVMGetArrayLength(at.c))
}

// -----------------------------------------------------------------------------

// StructType represents an LLVM struct type.
type StructType struct {
	typeBase
}

// NewNamedStruct creates a new opaque struct type named name.  Its body is
// set later with SetBody: the two phases allow self-referential structs.
func (c *Context) NewNamedStruct(name string) (st StructType) {
	st.c = C.LLVMStructCreateNamed(c.c, c.strs.cstr(name))
	return
}

// AsStructType converts typ to a struct type if it is one.
func AsStructType(typ Type) (StructType, bool) {
	if IsNilType(typ) || typ.Kind() != StructTypeKind {
		return StructType{}, false
	}

	return StructType{typeBase{c: typ.ptr()}}, true
}

// SetBody sets the fields of a named struct.
func (st StructType) SetBody(packed bool, fields ...Type) {
	fieldArr, n := typeArray(fields)
	C.LLVMStructSetBody(st.c, fieldArr, n, llvmBool(packed))
}

// Name returns the name of the struct.  Literal structs have no name.
func (st StructType) Name() string {
	cname := C.LLVMGetStructName(st.c)
	if cname == nil {
		return ""
	}

	return C.GoString(cname)
}

// IsOpaque returns whether the struct has no body yet.
func (st StructType) IsOpaque() bool {
	return C.LLVMIsOpaqueStruct(st.c) == 1
}

// NumFields returns the number of fields in the struct.
func (st StructType) NumFields() int {
	return int(C.LLVMCountStructElementTypes(st.c))
}

// Fields returns the field types of the struct in declaration order.
func (st StructType) Fields() []Type {
	numFields := st.NumFields()
	if numFields == 0 {
		return nil
	}

	fieldArr := make([]C.LLVMTypeRef, numFields)
	C.LLVMGetStructElementTypes(st.c, byref(&fieldArr[0]))

	fields := make([]Type, numFields)
	for i, fieldPtr := range fieldArr {
		fields[i] = typeBase{c: fieldPtr}
	}

	return fields
}

// -----------------------------------------------------------------------------

// FunctionType represents an LLVM function type.
type FunctionType struct {
	typeBase
}

// NewFunctionType returns a new function type with no variadic argument.
func NewFunctionType(returnType Type, paramTypes ...Type) (ft FunctionType) {
	paramArr, n := typeArray(paramTypes)
	ft.c = C.LLVMFunctionType(returnType.ptr(), paramArr, n, llvmBool(false))
	return
}

// NewVariadicFunctionType returns a new function type accepting a variadic
// argument list after paramTypes.
func NewVariadicFunctionType(returnType Type, paramTypes ...Type) (ft FunctionType) {
	paramArr, n := typeArray(paramTypes)
	ft.c = C.LLVMFunctionType(returnType.ptr(), paramArr, n, llvmBool(true))
	return
}

// IsVarArg returns whether or not the function is variadic.
func (ft FunctionType) IsVarArg() bool {
	return C.LLVMIsFunctionVarArg(ft.c) == 1
}

// ReturnType returns the return type of the function.
func (ft FunctionType) ReturnType() Type {
	return typeBase{c: C.LLVMGetReturnType(ft.c)}
}

// NumParams returns the number of parameters of the function.
func (ft FunctionType) NumParams() int {
	return int(C.LLVMCountParamTypes(ft.c))
}

// Params returns the parameter types of the function.
func (ft FunctionType) Params() []Type {
	numParams := ft.NumParams()

	if numParams == 0 {
		return nil
	}

	paramArr := make([]C.LLVMTypeRef, numParams)
	C.LLVMGetParamTypes(ft.c, byref(&paramArr[0]))

	params := make([]Type, numParams)
	for i, paramPtr := range paramArr {
		params[i] = typeBase{c: paramPtr}
	}

	return params
}
