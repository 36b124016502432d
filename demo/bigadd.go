package demo

import (
	"nullgen/codegen"
	"nullgen/llvm"
)

// decimal is the radix numbers are read and printed in.
const decimal = 10

// buildBigAdd adds two constant decimal numbers.
func buildBigAdd(f *codegen.Frame) error {
	b := f.Builder
	return addDecimal(f, b.GlobalString("num1.str", "100"), b.GlobalString("num2.str", "10"))
}

// buildBadAdd adds a malformed number, which the library rejects.
func buildBadAdd(f *codegen.Frame) error {
	b := f.Builder
	return addDecimal(f, b.GlobalString("num1.str", "12x"), b.GlobalString("num2.str", "10"))
}

// addDecimal emits code parsing the decimal strings lhs and rhs into
// arbitrary precision integers, adding them and printing the sum.  Every
// library status is checked.
func addDecimal(f *codegen.Frame, lhs, rhs llvm.Value) error {
	b := f.Builder
	syms := f.Symbols
	mpInt := codegen.DeclareMPInt(f.Types)
	radix := b.ConstI32(decimal)

	num1 := b.StackAlloc("num1", mpInt)
	num2 := b.StackAlloc("num2", mpInt)
	resNum := b.StackAlloc("res_num", mpInt)
	resStr := b.StackAlloc("res_str", f.Types.BytePtr())
	strSize := b.StackAlloc("str_size", f.Types.I32())

	for _, num := range []llvm.Value{num1, num2, resNum} {
		f.Check(b.Call(syms.MPInit(), "init.status", num), "mp_init")
	}

	f.Check(b.Call(syms.MPReadRadix(), "read.status", num1, lhs, radix), "mp_read_radix")
	f.Check(b.Call(syms.MPReadRadix(), "read.status", num2, rhs, radix), "mp_read_radix")
	f.Check(b.Call(syms.MPAdd(), "add.status", num1, num2, resNum), "mp_add")
	f.Check(b.Call(syms.MPRadixSize(), "size.status", resNum, radix, strSize), "mp_radix_size")

	size := b.SignExtend(b.Load(strSize, "size"), f.Types.I64(), "size.wide")
	b.Store(b.Call(syms.Malloc(), "buf", size), resStr)

	str := b.Load(resStr, "str")
	f.Check(b.Call(syms.MPToRadix(), "toradix.status", resNum, str, radix), "mp_toradix")

	f.Printf("Number: %s\n", str)
	f.Printf("Digits used: %d\n", b.Load(b.FieldAddress(resNum, 0, "used.addr"), "used"))

	b.Call(syms.Free(), "", str)
	return nil
}
