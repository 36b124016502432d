package backend

import (
	"nullgen/codegen"
	"nullgen/config"
	"nullgen/llvm"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmitObjectAndLink(t *testing.T) {
	if _, err := exec.LookPath("cc"); err != nil {
		t.Skip("cc is not available")
	}

	sess, _ := assemble(t, func(f *codegen.Frame) error {
		f.PrintLiteral("hello from an object\n")
		return nil
	})

	dir := t.TempDir()
	cfg, err := config.Default(dir)
	require.NoError(t, err)

	objPath := filepath.Join(dir, "hello.o")
	require.NoError(t, EmitObject(sess, objPath, llvm.RelocDefault))
	assert.FileExists(t, objPath)
	assert.Equal(t, llvm.HostTriple(), sess.Module.TargetTriple())
	assert.NotEmpty(t, sess.Module.DataLayout())

	exePath := filepath.Join(dir, "bin", "hello")
	_, err = Link(LinkRequest{
		CC:      cfg.Link.CC,
		Args:    cfg.Link.Args,
		Objects: []string{objPath},
		Output:  exePath,
	})
	require.NoError(t, err)

	out, err := exec.Command(exePath).Output()
	require.NoError(t, err)
	assert.Equal(t, "hello from an object\n", string(out))
}

func TestHostMachine(t *testing.T) {
	ctx := llvm.NewContext()
	defer ctx.Dispose()

	tm, err := HostMachine(ctx, llvm.RelocPIC)
	require.NoError(t, err)
	assert.Equal(t, llvm.HostTriple(), tm.Triple())
	assert.Equal(t, uint(8), tm.DataLayout().PointerSize())
}
