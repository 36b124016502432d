//go:build byollvm

package llvm

// Builds tagged byollvm take their LLVM flags from CGO_CFLAGS and
// CGO_LDFLAGS, usually set from `llvm-config --cflags --ldflags --libs`.
