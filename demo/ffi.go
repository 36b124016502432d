package demo

import (
	"nullgen/codegen"
	"nullgen/llvm"
	"nullgen/stublib"
)

// buildFFITour calls each function of the FFI demonstration library and
// prints what it returns.  Structs returned by the library are freed.
func buildFFITour(f *codegen.Frame) error {
	b := f.Builder
	types := f.Types
	syms := f.Symbols
	void := types.Void()

	b.Call(syms.Declare("hello_world", codegen.Signature{Return: void}), "")

	i8Val := b.Call(syms.Declare("create_i8", codegen.Signature{Return: types.I8()}), "i8")
	f.Printf("create_i8: %d\n", b.SignExtend(i8Val, types.I32(), "i8.wide"))

	str := b.Call(syms.Declare("create_str", codegen.Signature{Return: types.BytePtr()}), "str")
	f.Printf("create_str: %s\n", str)

	pair, err := types.NamedStruct(stublib.PairStruct, types.I32(), types.I32())
	if err != nil {
		return err
	}

	if err := printFields(f, "create_test", pair, 1); err != nil {
		return err
	}

	triple, err := types.NamedStruct(stublib.TripleStruct, types.I32(), types.I32(), types.I32())
	if err != nil {
		return err
	}

	if err := printFields(f, "create_slice", triple, 0, 1, 2); err != nil {
		return err
	}

	hello := syms.Declare("hello_one", codegen.Signature{
		Return: void,
		Params: []llvm.Type{types.BytePtr()},
	})
	b.Call(hello, "", b.GlobalString("name", "Bob"))

	return nil
}

// printFields calls the library function name returning a pointer to a new
// st, prints the fields at indices and frees the struct.
func printFields(f *codegen.Frame, name string, st llvm.StructType, indices ...int) error {
	b := f.Builder

	stPtr, err := f.Types.PointerTo(st)
	if err != nil {
		return err
	}

	create := f.Symbols.Declare(name, codegen.Signature{Return: stPtr})
	obj := b.Call(create, name+".result")

	for _, ndx := range indices {
		field := b.Load(b.FieldAddress(obj, ndx, name+".field"), name+".value")
		f.Printf(name+": %d\n", field)
	}

	b.Call(f.Symbols.Free(), "", b.PointerCast(obj, f.Types.BytePtr(), name+".raw"))
	return nil
}
