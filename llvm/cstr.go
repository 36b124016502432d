package llvm

/*
#include <stdlib.h>
*/
import "C"

import (
	"strings"
	"unsafe"
)

// cstrArena owns the null-terminated copies of Go strings handed to LLVM.
// LLVM may keep pointers into these buffers (eg. a module identifier), so
// they stay alive until the owning context is disposed.
type cstrArena struct {
	bufs []unsafe.Pointer
}

// cstr copies s into a new C string owned by the arena.  Strings containing
// NUL bytes cannot be represented and are rejected.
func (a *cstrArena) cstr(s string) *C.char {
	if strings.IndexByte(s, 0) >= 0 {
		panic("error: string passed to LLVM contains a NUL byte")
	}

	cs := C.CString(s)
	a.bufs = append(a.bufs, unsafe.Pointer(cs))
	return cs
}

// len returns the number of buffers owned by the arena.
func (a *cstrArena) len() int {
	return len(a.bufs)
}

// free releases every buffer in the arena.
func (a *cstrArena) free() {
	for _, buf := range a.bufs {
		C.free(buf)
	}

	a.bufs = nil
}
