package codegen

import (
	"nullgen/llvm"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestSession creates a session that is torn down when the test ends.
func newTestSession(t *testing.T) *Session {
	t.Helper()

	sess := NewSession("test")
	t.Cleanup(func() {
		if !sess.TornDown() {
			require.NoError(t, sess.Teardown())
		}
	})

	return sess
}

func TestTeardownTwiceRejected(t *testing.T) {
	sess := NewSession("teardown")
	sess.Symbols.Printf()

	require.NoError(t, sess.Teardown())
	assert.True(t, sess.Ctx.Disposed())

	assert.ErrorIs(t, sess.Teardown(), ErrTornDown)
}

func TestStatusGlobalCreatedOnce(t *testing.T) {
	sess := newTestSession(t)

	first := sess.StatusGlobal()
	second := sess.StatusGlobal()
	assert.Equal(t, first.Name(), second.Name())
	assert.Equal(t, StatusGlobalName, first.Name())
	assert.Equal(t, uint64(0), first.Initializer().ZExtValue())
	assert.Equal(t, llvm.InternalLinkage, first.Linkage())

	_, ok := sess.Module.GetGlobal(StatusGlobalName)
	assert.True(t, ok)
}
