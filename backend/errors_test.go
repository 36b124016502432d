package backend

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessages(t *testing.T) {
	cause := errors.New("no JIT for target")

	assert.Equal(t, "unresolved external symbols: mp_add, hello_one",
		(&UnresolvedSymbolsError{Symbols: []string{"mp_add", "hello_one"}}).Error())

	eerr := &EngineError{Err: cause}
	assert.ErrorIs(t, eerr, cause)
	assert.Contains(t, eerr.Error(), "no JIT for target")

	emerr := &EmitError{Path: "target/output.o", Err: cause}
	assert.ErrorIs(t, emerr, cause)
	assert.Contains(t, emerr.Error(), "target/output.o")

	verr := &VerifyError{Diagnostic: "Basic Block in function 'entry' does not have terminator!\n"}
	assert.Equal(t, "module verification failed:\nBasic Block in function 'entry' does not have terminator!", verr.Error())
}

func TestParseRelocMode(t *testing.T) {
	for _, name := range []string{"", "default", "static", "pic"} {
		_, err := ParseRelocMode(name)
		assert.NoError(t, err, name)
	}

	_, err := ParseRelocMode("dynamic")
	assert.ErrorContains(t, err, "unknown relocation model")
}
