package codegen

import (
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// x86_64 Linux data layout.
const lp64DataLayout = "e-m:e-p270:32:32-p271:32:32-p272:64:64-i64:64-f80:128-n8:16:32:64-S128"

func TestMPIntLayout(t *testing.T) {
	sess := newTestSession(t)
	DeclareMPInt(sess.Types)

	td := sess.Ctx.NewTargetData(lp64DataLayout)

	sl, err := sess.Types.CheckLayout(MPIntStruct, td)
	require.NoError(t, err)

	assert.Equal(t, uint64(24), sl.Size)
	assert.Equal(t, uint64(8), sl.Align)
	require.Len(t, sl.Fields, 4)
	assert.Equal(t, uint64(16), sl.Fields[3].Offset)

	g := goldie.New(t)
	g.Assert(t, "mp_int_layout", []byte(sl.String()))
}

func TestLayoutUnknownOrOpaque(t *testing.T) {
	sess := newTestSession(t)
	td := sess.Ctx.NewTargetData(lp64DataLayout)

	_, err := sess.Types.Layout("missing", td)
	assert.ErrorContains(t, err, "unknown struct")

	sess.Types.DeclareStruct("later")
	_, err = sess.Types.CheckLayout("later", td)
	assert.ErrorContains(t, err, "opaque")
}

func TestCLayoutPadding(t *testing.T) {
	sl := CLayout("padded", []FieldLayout{
		{Type: "i8", Size: 1, Align: 1},
		{Type: "i64", Size: 8, Align: 8},
		{Type: "i8", Size: 1, Align: 1},
	})

	assert.Equal(t, uint64(0), sl.Fields[0].Offset)
	assert.Equal(t, uint64(8), sl.Fields[1].Offset)
	assert.Equal(t, uint64(16), sl.Fields[2].Offset)
	assert.Equal(t, uint64(24), sl.Size)
	assert.Equal(t, uint64(8), sl.Align)
}

func TestRoundUp(t *testing.T) {
	assert.Equal(t, uint64(0), roundUp(0, 8))
	assert.Equal(t, uint64(8), roundUp(1, 8))
	assert.Equal(t, uint64(8), roundUp(8, 8))
	assert.Equal(t, uint64(13), roundUp(13, 1))
}

func TestLayoutMismatchError(t *testing.T) {
	want := CLayout("pair", []FieldLayout{{Type: "i32", Size: 4, Align: 4}, {Type: "i64", Size: 8, Align: 8}})
	got := want
	got.Size = 12

	err := &LayoutMismatchError{Name: "pair", Want: want, Got: got}
	assert.Contains(t, err.Error(), "struct `pair` does not match the C ABI")
	assert.Contains(t, err.Error(), "size 12")
}
