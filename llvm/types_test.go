package llvm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNamedStructTwoPhase(t *testing.T) {
	ctx := NewContext()
	defer ctx.Dispose()

	node := ctx.NewNamedStruct("node")
	assert.True(t, node.IsOpaque())
	assert.Equal(t, "node", node.Name())

	node.SetBody(false, ctx.Int32Type(), NewPointerType(node))
	assert.False(t, node.IsOpaque())

	fields := node.Fields()
	require.Len(t, fields, 2)
	assert.True(t, TypesEqual(fields[0], ctx.Int32Type()))

	next, ok := AsPointerType(fields[1])
	require.True(t, ok)
	assert.True(t, TypesEqual(next.ElemType(), node))
}

func TestTypeConversions(t *testing.T) {
	ctx := NewContext()
	defer ctx.Dispose()

	arr := NewArrayType(ctx.Int8Type(), 64)
	assert.Equal(t, 64, arr.Len())
	assert.Equal(t, "[64 x i8]", arr.String())

	_, ok := AsStructType(arr)
	assert.False(t, ok)

	it, ok := AsIntegerType(ctx.Int64Type())
	require.True(t, ok)
	assert.Equal(t, uint(64), it.BitWidth())

	ft := NewVariadicFunctionType(ctx.Int32Type(), NewPointerType(ctx.Int8Type()))
	assert.True(t, ft.IsVarArg())
	assert.Equal(t, 1, ft.NumParams())
	assert.Equal(t, "i32 (i8*, ...)", ft.String())
}
