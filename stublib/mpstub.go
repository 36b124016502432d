package stublib

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

// Status codes returned by the arithmetic stub, matching libtommath's.
const (
	MPOkay = 0
	MPMem  = -2
	MPVal  = -3
)

// mpIntField enumerates the fields of `mp_int`.
const (
	mpUsed = iota
	mpAlloc
	mpSign
	mpDigits
)

// mpStub builds the functions of the arithmetic stub.  It exposes the subset
// of libtommath's API the programs call, backed by a single 64-bit digit:
// numbers are limited to the range of `long long`, and only radix 10 can be
// printed.
type mpStub struct {
	m  *ir.Module
	lc *libc

	mpInt types.Type
	mpPtr types.Type
}

// MPStub returns the IR module of the arithmetic stub library.
func MPStub() *ir.Module {
	m := ir.NewModule()
	m.SourceFilename = "mpstub"

	mpInt := m.NewTypeDef("mp_int", types.NewStruct(
		types.I32,
		types.I32,
		types.I32,
		types.NewPointer(types.I64),
	))

	s := &mpStub{
		m:     m,
		lc:    declareLibC(m),
		mpInt: mpInt,
		mpPtr: types.NewPointer(mpInt),
	}

	s.genInit()
	s.genReadRadix()
	s.genAdd()
	s.genRadixSize()
	s.genToRadix()

	return m
}

// digit loads the value stored in the digit buffer of a.
func (s *mpStub) digit(b *ir.Block, a value.Value) value.Value {
	dpPtr := fieldPtr(b, s.mpInt, a, mpDigits)
	dp := b.NewLoad(types.NewPointer(types.I64), dpPtr)
	return b.NewLoad(types.I64, dp)
}

// setDigit stores v into the digit buffer of a and marks it as used.
func (s *mpStub) setDigit(b *ir.Block, a, v value.Value) {
	dpPtr := fieldPtr(b, s.mpInt, a, mpDigits)
	dp := b.NewLoad(types.NewPointer(types.I64), dpPtr)
	b.NewStore(v, dp)
	b.NewStore(i32(1), fieldPtr(b, s.mpInt, a, mpUsed))
}

// checkRadix branches to a block returning MPVal unless radix is 10, and
// returns the block to continue in.
func (s *mpStub) checkRadix(fn *ir.Func, b *ir.Block, radix value.Value) *ir.Block {
	fail := fn.NewBlock("bad_radix")
	fail.NewRet(i32(MPVal))

	ok := fn.NewBlock("radix_ok")
	b.NewCondBr(b.NewICmp(enum.IPredEQ, radix, i32(10)), ok, fail)
	return ok
}

// genInit generates `mp_err mp_init(mp_int *a)`.
func (s *mpStub) genInit() {
	a := ir.NewParam("a", s.mpPtr)
	fn := s.m.NewFunc("mp_init", types.I32, a)

	entry := fn.NewBlock("entry")
	fail := fn.NewBlock("no_mem")
	ok := fn.NewBlock("ok")

	raw := entry.NewCall(s.lc.malloc, constant.NewInt(types.I64, 8))
	isNull := entry.NewICmp(enum.IPredEQ, raw, constant.NewNull(types.I8Ptr))
	entry.NewCondBr(isNull, fail, ok)

	fail.NewRet(i32(MPMem))

	dp := ok.NewBitCast(raw, types.NewPointer(types.I64))
	ok.NewStore(constant.NewInt(types.I64, 0), dp)
	ok.NewStore(dp, fieldPtr(ok, s.mpInt, a, mpDigits))
	ok.NewStore(i32(0), fieldPtr(ok, s.mpInt, a, mpUsed))
	ok.NewStore(i32(1), fieldPtr(ok, s.mpInt, a, mpAlloc))
	ok.NewStore(i32(0), fieldPtr(ok, s.mpInt, a, mpSign))
	ok.NewRet(i32(MPOkay))
}

// genReadRadix generates `mp_err mp_read_radix(mp_int *a, const char *str,
// int radix)`.  The whole string must be a valid number.
func (s *mpStub) genReadRadix() {
	a := ir.NewParam("a", s.mpPtr)
	str := ir.NewParam("str", types.I8Ptr)
	radix := ir.NewParam("radix", types.I32)
	fn := s.m.NewFunc("mp_read_radix", types.I32, a, str, radix)

	entry := fn.NewBlock("entry")
	fail := fn.NewBlock("malformed")
	ok := fn.NewBlock("ok")

	end := entry.NewAlloca(types.I8Ptr)
	v := entry.NewCall(s.lc.strtoll, str, end, radix)
	endPtr := entry.NewLoad(types.I8Ptr, end)
	empty := entry.NewICmp(enum.IPredEQ, endPtr, str)
	trailing := entry.NewICmp(enum.IPredNE, entry.NewLoad(types.I8, endPtr), constant.NewInt(types.I8, 0))
	entry.NewCondBr(entry.NewOr(empty, trailing), fail, ok)

	fail.NewRet(i32(MPVal))

	s.setDigit(ok, a, v)
	ok.NewRet(i32(MPOkay))
}

// genAdd generates `mp_err mp_add(const mp_int *a, const mp_int *b, mp_int
// *c)`.
func (s *mpStub) genAdd() {
	a := ir.NewParam("a", s.mpPtr)
	b := ir.NewParam("b", s.mpPtr)
	c := ir.NewParam("c", s.mpPtr)
	fn := s.m.NewFunc("mp_add", types.I32, a, b, c)

	entry := fn.NewBlock("entry")
	sum := entry.NewAdd(s.digit(entry, a), s.digit(entry, b))
	s.setDigit(entry, c, sum)
	entry.NewRet(i32(MPOkay))
}

// genRadixSize generates `mp_err mp_radix_size(const mp_int *a, int radix,
// int *size)`.  The size includes the NUL terminator.
func (s *mpStub) genRadixSize() {
	a := ir.NewParam("a", s.mpPtr)
	radix := ir.NewParam("radix", types.I32)
	size := ir.NewParam("size", types.NewPointer(types.I32))
	fn := s.m.NewFunc("mp_radix_size", types.I32, a, radix, size)

	format := globalString(s.m, "radix_size.fmt", "%lld")

	entry := fn.NewBlock("entry")
	ok := s.checkRadix(fn, entry, radix)

	n := ok.NewCall(
		s.lc.snprintf,
		constant.NewNull(types.I8Ptr),
		constant.NewInt(types.I64, 0),
		format,
		s.digit(ok, a),
	)
	ok.NewStore(ok.NewAdd(n, i32(1)), size)
	ok.NewRet(i32(MPOkay))
}

// genToRadix generates `mp_err mp_toradix(const mp_int *a, char *str, int
// radix)`.  str must hold at least as many bytes as mp_radix_size reports.
func (s *mpStub) genToRadix() {
	a := ir.NewParam("a", s.mpPtr)
	str := ir.NewParam("str", types.I8Ptr)
	radix := ir.NewParam("radix", types.I32)
	fn := s.m.NewFunc("mp_toradix", types.I32, a, str, radix)

	format := globalString(s.m, "toradix.fmt", "%lld")

	entry := fn.NewBlock("entry")
	ok := s.checkRadix(fn, entry, radix)

	ok.NewCall(s.lc.sprintf, str, format, s.digit(ok, a))
	ok.NewRet(i32(MPOkay))
}
