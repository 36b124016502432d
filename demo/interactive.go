package demo

import (
	"nullgen/codegen"
)

// inputLen is the size of the buffers numbers are read into.
const inputLen = 64

// buildInteractive reads two numbers from standard input and adds them.
func buildInteractive(f *codegen.Frame) error {
	b := f.Builder

	bufType, err := f.Types.ArrayOf(f.Types.I8(), inputLen)
	if err != nil {
		return err
	}

	lhsBuf := b.StackAlloc("lhs_buf", bufType)
	rhsBuf := b.StackAlloc("rhs_buf", bufType)
	lhs := b.ElementAddress(lhsBuf, 0, "lhs")
	rhs := b.ElementAddress(rhsBuf, 0, "rhs")

	// Leave room for the NUL terminator.
	format := b.GlobalString("scan.fmt", "%63s %63s")

	f.PrintLiteral("Enter two numbers: ")
	read := b.Call(f.Symbols.Scanf(), "scanned", format, lhs, rhs)

	// scanf returns the number of items matched.
	incomplete := b.ICmpNE(read, b.ConstI32(2), "scan.incomplete")
	failBlock := b.NewBlock(f.Function(), "scan.failed")
	okBlock := b.NewBlock(f.Function(), "scan.ok")
	b.CondBranch(incomplete, failBlock, okBlock)

	b.PositionAtEnd(failBlock)
	f.PrintLiteral("expected two numbers\n")
	f.Fail(b.ConstI32(1), "scanf")

	b.PositionAtEnd(okBlock)
	return addDecimal(f, lhs, rhs)
}
