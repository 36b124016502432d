package codegen

import (
	"nullgen/llvm"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestFunc adds a `void fn()` to the session's module and positions the
// builder in its first block.
func newTestFunc(t *testing.T, sess *Session) llvm.Function {
	t.Helper()

	fn := sess.Module.AddFunction("fn", llvm.NewFunctionType(sess.Types.Void()))
	sess.Builder.AppendBlock(fn, "start")
	return fn
}

func TestBuilderMemoryOps(t *testing.T) {
	sess := newTestSession(t)
	newTestFunc(t, sess)
	b := sess.Builder

	pair, err := sess.Types.NamedStruct("pair", sess.Types.I32(), sess.Types.I64())
	require.NoError(t, err)

	slot := b.StackAlloc("slot", pair)
	second := b.FieldAddress(slot, 1, "second")
	assert.Equal(t, "i64*", second.Type().String())

	b.Store(b.ConstI64(7), second)
	loaded := b.Load(second, "loaded")
	assert.Equal(t, "i64", loaded.Type().String())

	narrow := b.Load(b.FieldAddress(slot, 0, "first"), "first.val")
	wide := b.SignExtend(narrow, sess.Types.I64(), "first.wide")
	assert.Equal(t, "i64", wide.Type().String())

	b.ReturnVoid()
	require.NoError(t, sess.Module.Verify())
}

func TestBuilderMisusePanics(t *testing.T) {
	sess := newTestSession(t)
	newTestFunc(t, sess)
	b := sess.Builder

	i32Slot := b.StackAlloc("n", sess.Types.I32())

	assert.Panics(t, func() { b.Store(b.ConstI64(1), i32Slot) })
	assert.Panics(t, func() { b.FieldAddress(i32Slot, 0, "bad") })
	assert.Panics(t, func() { b.Load(b.ConstI32(1), "bad") })
	assert.Panics(t, func() { b.SignExtend(b.ConstI64(1), sess.Types.I32(), "bad") })

	malloc := sess.Symbols.Malloc()
	assert.Panics(t, func() { b.Call(malloc, "bad") })
	assert.Panics(t, func() { b.Call(malloc, "bad", b.ConstI32(8)) })

	printf := sess.Symbols.Printf()
	assert.Panics(t, func() { b.Call(printf, "bad") })
}

func TestBuilderVariadicCall(t *testing.T) {
	sess := newTestSession(t)
	newTestFunc(t, sess)
	b := sess.Builder

	format := b.GlobalString("fmt", "%d %d\n")
	b.Call(sess.Symbols.Printf(), "printed", format, b.ConstI32(1), b.ConstI64(2))
	b.ReturnVoid()

	require.NoError(t, sess.Module.Verify())
	assert.Contains(t, sess.Module.String(), "call i32 (i8*, ...) @printf(")
}

func TestBuilderRejectsTerminatedBlock(t *testing.T) {
	sess := newTestSession(t)
	fn := newTestFunc(t, sess)
	b := sess.Builder

	assert.False(t, b.Terminated())
	b.ReturnVoid()
	assert.True(t, b.Terminated())

	assert.Panics(t, func() { b.ReturnVoid() })
	assert.Panics(t, func() { b.StackAlloc("late", sess.Types.I32()) })

	// A new block accepts instructions again.
	next := b.NewBlock(fn, "next")
	assert.Equal(t, "start", b.Block().Name())

	b.PositionAtEnd(next)
	assert.Equal(t, "next", b.Block().Name())
	assert.False(t, b.Terminated())
	b.ReturnVoid()
}

func TestBuilderBranches(t *testing.T) {
	sess := newTestSession(t)
	fn := newTestFunc(t, sess)
	b := sess.Builder

	yes := b.NewBlock(fn, "yes")
	no := b.NewBlock(fn, "no")

	cond := b.ICmpNE(b.ConstI32(1), b.ConstI32(0), "cond")
	b.CondBranch(cond, yes, no)

	b.PositionAtEnd(yes)
	b.Branch(no)

	b.PositionAtEnd(no)
	b.ReturnVoid()

	require.NoError(t, sess.Module.Verify())
	assert.Equal(t, 3, fn.Body().Len())

	it := fn.Body().Blocks()
	require.True(t, it.Next())

	term, ok := it.Item().Terminator()
	require.True(t, ok)
	assert.Equal(t, 2, term.NumSuccessors())
	assert.Equal(t, "yes", term.GetSuccessor(0).Name())
}

func TestBuilderElementAddress(t *testing.T) {
	sess := newTestSession(t)
	newTestFunc(t, sess)
	b := sess.Builder

	buf, err := sess.Types.ArrayOf(sess.Types.I8(), 64)
	require.NoError(t, err)

	slot := b.StackAlloc("buf", buf)
	first := b.ElementAddress(slot, 0, "buf.start")
	assert.Equal(t, "i8*", first.Type().String())

	assert.Panics(t, func() { b.ElementAddress(slot, 64, "bad") })
	assert.Panics(t, func() { b.ElementAddress(b.StackAlloc("n", sess.Types.I32()), 0, "bad") })

	b.Store(llvm.ConstInt(sess.Types.I8(), 0, false), first)
	b.ReturnVoid()
	require.NoError(t, sess.Module.Verify())
}

func TestBuilderPointerCast(t *testing.T) {
	sess := newTestSession(t)
	newTestFunc(t, sess)
	b := sess.Builder

	slot := b.StackAlloc("n", sess.Types.I64())
	raw := b.PointerCast(slot, sess.Types.BytePtr(), "n.raw")
	assert.Equal(t, "i8*", raw.Type().String())

	assert.Panics(t, func() { b.PointerCast(b.ConstI32(0), sess.Types.BytePtr(), "bad") })

	b.ReturnVoid()
	require.NoError(t, sess.Module.Verify())
}
