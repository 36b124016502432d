package codegen

import (
	"errors"
	"fmt"
	"nullgen/llvm"
)

// Kind enumerates the primitive types the registry hands out.
type Kind int

const (
	KindVoid Kind = iota
	KindI1
	KindI8
	KindI32
	KindI64
)

// Registry creates and caches the LLVM types used to build a module.  Asking
// for the same type twice always yields the identical descriptor, and every
// named struct keeps the field list it was declared with.
type Registry struct {
	ctx *llvm.Context

	prims   map[Kind]llvm.Type
	ptrs    map[string]llvm.PointerType
	arrays  map[arrayKey]llvm.ArrayType
	structs map[string]*structEntry

	// The names of the named structs in declaration order.
	structOrder []string
}

// arrayKey identifies a cached array type.
type arrayKey struct {
	elem  string
	count int
}

// structEntry records a named struct and its declared fields.
type structEntry struct {
	typ    llvm.StructType
	fields []llvm.Type
}

// NewRegistry creates a new type registry for ctx.
func NewRegistry(ctx *llvm.Context) *Registry {
	return &Registry{
		ctx:     ctx,
		prims:   make(map[Kind]llvm.Type),
		ptrs:    make(map[string]llvm.PointerType),
		arrays:  make(map[arrayKey]llvm.ArrayType),
		structs: make(map[string]*structEntry),
	}
}

// Primitive returns the primitive type of kind.
func (r *Registry) Primitive(kind Kind) llvm.Type {
	if typ, ok := r.prims[kind]; ok {
		return typ
	}

	var typ llvm.Type
	switch kind {
	case KindVoid:
		typ = r.ctx.VoidType()
	case KindI1:
		typ = r.ctx.Int1Type()
	case KindI8:
		typ = r.ctx.Int8Type()
	case KindI32:
		typ = r.ctx.Int32Type()
	case KindI64:
		typ = r.ctx.Int64Type()
	default:
		panic(fmt.Sprintf("error: unknown primitive kind %d", kind))
	}

	r.prims[kind] = typ
	return typ
}

// Void returns the `void` type.
func (r *Registry) Void() llvm.Type {
	return r.Primitive(KindVoid)
}

// I8 returns the `i8` type.
func (r *Registry) I8() llvm.IntegerType {
	return r.Primitive(KindI8).(llvm.IntegerType)
}

// I32 returns the `i32` type.
func (r *Registry) I32() llvm.IntegerType {
	return r.Primitive(KindI32).(llvm.IntegerType)
}

// I64 returns the `i64` type.
func (r *Registry) I64() llvm.IntegerType {
	return r.Primitive(KindI64).(llvm.IntegerType)
}

// BytePtr returns the `i8*` type used for C strings and untyped buffers.
func (r *Registry) BytePtr() llvm.PointerType {
	pt, _ := r.PointerTo(r.I8())
	return pt
}

// validElem checks that typ can be used as an element or field type.
func validElem(typ llvm.Type) error {
	if llvm.IsNilType(typ) {
		return errors.New("missing type")
	}

	if typ.Kind() == llvm.VoidTypeKind {
		return errors.New("void is not a value type")
	}

	return nil
}

// PointerTo returns the pointer type to elem.
func (r *Registry) PointerTo(elem llvm.Type) (llvm.PointerType, error) {
	if err := validElem(elem); err != nil {
		return llvm.PointerType{}, fmt.Errorf("invalid pointer element: %w", err)
	}

	key := elem.String()
	if pt, ok := r.ptrs[key]; ok {
		return pt, nil
	}

	pt := llvm.NewPointerType(elem)
	r.ptrs[key] = pt
	return pt, nil
}

// ArrayOf returns the array type of count elements of elem.
func (r *Registry) ArrayOf(elem llvm.Type, count int) (llvm.ArrayType, error) {
	if err := validElem(elem); err != nil {
		return llvm.ArrayType{}, fmt.Errorf("invalid array element: %w", err)
	}

	if count < 1 {
		return llvm.ArrayType{}, fmt.Errorf("array length must be at least 1, got %d", count)
	}

	key := arrayKey{elem: elem.String(), count: count}
	if at, ok := r.arrays[key]; ok {
		return at, nil
	}

	at := llvm.NewArrayType(elem, count)
	r.arrays[key] = at
	return at, nil
}

// DeclareStruct returns the named struct called name, creating it opaque if
// it does not exist yet.  Declaring before defining allows a struct to contain
// pointers to itself.
func (r *Registry) DeclareStruct(name string) llvm.StructType {
	if entry, ok := r.structs[name]; ok {
		return entry.typ
	}

	entry := &structEntry{typ: r.ctx.NewNamedStruct(name)}
	r.structs[name] = entry
	r.structOrder = append(r.structOrder, name)
	return entry.typ
}

// DefineStruct sets the fields of the named struct called name, declaring it
// first if necessary.  A struct can only be defined once.
func (r *Registry) DefineStruct(name string, fields ...llvm.Type) (llvm.StructType, error) {
	if len(fields) == 0 {
		return llvm.StructType{}, fmt.Errorf("struct `%s` must have at least one field", name)
	}

	for i, field := range fields {
		if err := validElem(field); err != nil {
			return llvm.StructType{}, fmt.Errorf("invalid field %d of struct `%s`: %w", i, name, err)
		}
	}

	st := r.DeclareStruct(name)
	entry := r.structs[name]
	if entry.fields != nil {
		return llvm.StructType{}, fmt.Errorf("struct `%s` is already defined", name)
	}

	st.SetBody(false, fields...)
	entry.fields = append([]llvm.Type(nil), fields...)
	return st, nil
}

// NamedStruct declares and defines the named struct called name in one step.
func (r *Registry) NamedStruct(name string, fields ...llvm.Type) (llvm.StructType, error) {
	return r.DefineStruct(name, fields...)
}

// Struct returns the named struct called name if it has been declared.
func (r *Registry) Struct(name string) (llvm.StructType, bool) {
	entry, ok := r.structs[name]
	if !ok {
		return llvm.StructType{}, false
	}

	return entry.typ, true
}

// Fields returns the field list the struct called name was defined with.
func (r *Registry) Fields(name string) ([]llvm.Type, bool) {
	entry, ok := r.structs[name]
	if !ok || entry.fields == nil {
		return nil, false
	}

	return append([]llvm.Type(nil), entry.fields...), true
}

// StructNames returns the names of all declared structs in declaration order.
func (r *Registry) StructNames() []string {
	return append([]string(nil), r.structOrder...)
}
