package demo

import (
	"nullgen/codegen"
	"nullgen/report"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	report.InitReporter(report.LogLevelSilent)
	os.Exit(m.Run())
}

// assemble builds prog in a new session and returns the module's IR.
func assemble(t *testing.T, prog Program) (*codegen.Session, string) {
	t.Helper()

	sess := codegen.NewSession(prog.Name)
	t.Cleanup(func() { _ = sess.Teardown() })

	_, err := codegen.NewAssembler(sess).Assemble(prog.Build)
	require.NoError(t, err)
	require.NoError(t, sess.Module.Verify())

	return sess, sess.Module.String()
}

func TestEveryProgramVerifies(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			prog, err := Lookup(name)
			require.NoError(t, err)
			assemble(t, prog)
		})
	}
}

func TestLookup(t *testing.T) {
	prog, err := Lookup(DefaultProgram)
	require.NoError(t, err)
	assert.True(t, prog.NeedsStubs)

	_, err = Lookup("nope")
	assert.ErrorContains(t, err, "unknown program `nope`")

	assert.Equal(t, []string{"badadd", "bigadd", "ffi", "hello", "interactive"}, Names())
}

func TestBigAddCallSequence(t *testing.T) {
	prog, err := Lookup("bigadd")
	require.NoError(t, err)

	sess, ir := assemble(t, prog)

	assert.Equal(t, []string{
		"mp_init",
		"printf",
		"mp_read_radix",
		"mp_add",
		"mp_radix_size",
		"malloc",
		"mp_toradix",
		"free",
	}, sess.Symbols.Externals())

	assert.Contains(t, ir, "%mp_int = type { i32, i32, i32, i64* }")
	assert.Contains(t, ir, `c"100\00"`)
	assert.Contains(t, ir, `c"Number: %s\0A\00"`)
	assert.Contains(t, ir, "sext i32 %size to i64")
}

func TestFFITourDeclarations(t *testing.T) {
	prog, err := Lookup("ffi")
	require.NoError(t, err)

	_, ir := assemble(t, prog)

	assert.Contains(t, ir, "declare void @hello_world()")
	assert.Contains(t, ir, "declare i8 @create_i8()")
	assert.Contains(t, ir, "declare %test_pair* @create_test()")
	assert.Contains(t, ir, "declare %test_triple* @create_slice()")
	assert.Contains(t, ir, "declare void @hello_one(i8*)")
	assert.Contains(t, ir, "bitcast %test_pair* %create_test.result to i8*")
}

func TestInteractiveReadsIntoStackBuffers(t *testing.T) {
	prog, err := Lookup("interactive")
	require.NoError(t, err)

	_, ir := assemble(t, prog)

	assert.Contains(t, ir, "alloca [64 x i8]")
	assert.Contains(t, ir, "@scanf(")
	assert.Contains(t, ir, `c"%63s %63s\00"`)
}
