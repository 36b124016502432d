package codegen

import "nullgen/llvm"

// MPIntStruct is the name of the arbitrary precision integer struct.
const MPIntStruct = "mp_int"

// DeclareMPInt returns the `mp_int` struct, defining it on first use.  Its
// layout must match libtommath's:
//
//	typedef struct {
//		int used, alloc;
//		mp_sign sign;
//		mp_digit *dp;
//	} mp_int;
//
// which is 24 bytes with 8 byte alignment on LP64 targets.
func DeclareMPInt(types *Registry) llvm.StructType {
	if fields, ok := types.Fields(MPIntStruct); ok && len(fields) > 0 {
		st, _ := types.Struct(MPIntStruct)
		return st
	}

	digitPtr, _ := types.PointerTo(types.I64())

	// The field list is fixed and valid, so this cannot fail.
	st, err := types.NamedStruct(MPIntStruct, types.I32(), types.I32(), types.I32(), digitPtr)
	if err != nil {
		panic(err)
	}

	return st
}
