package codegen

import (
	"errors"
	"nullgen/llvm"
)

// ErrTornDown is returned when a session is torn down a second time.
var ErrTornDown = errors.New("session already torn down")

// Session owns everything needed to build one module: the LLVM context, the
// module, the instruction builder and the type and symbol tables.  A session
// must be torn down exactly once, on every exit path, which releases every
// LLVM object it created in reverse creation order.
type Session struct {
	Ctx     *llvm.Context
	Module  llvm.Module
	Types   *Registry
	Symbols *SymbolTable
	Builder *Builder

	// The module's status global, created on first use.
	status    llvm.GlobalVariable
	hasStatus bool

	tornDown bool
}

// NewSession creates a new session building a module named moduleName.
func NewSession(moduleName string) *Session {
	ctx := llvm.NewContext()
	mod := ctx.NewModule(moduleName)
	types := NewRegistry(ctx)

	return &Session{
		Ctx:     ctx,
		Module:  mod,
		Types:   types,
		Symbols: NewSymbolTable(mod, types),
		Builder: NewBuilder(ctx.NewBuilder(), types),
	}
}

// Teardown disposes of the session's LLVM context and everything it owns.
func (s *Session) Teardown() error {
	if s.tornDown {
		return ErrTornDown
	}

	s.Ctx.Dispose()
	s.tornDown = true
	return nil
}

// TornDown returns whether the session has been torn down.
func (s *Session) TornDown() bool {
	return s.tornDown
}

// StatusGlobalName is the name of the global holding the program status.
const StatusGlobalName = "nullgen.status"

// StatusGlobal returns the module's `i32` status global.  It starts at zero
// and holds the first failing native status code otherwise.
func (s *Session) StatusGlobal() llvm.GlobalVariable {
	if !s.hasStatus {
		s.status = s.Module.AddGlobal(s.Types.I32(), StatusGlobalName)
		s.status.SetInitializer(llvm.ConstInt(s.Types.I32(), 0, true))
		s.status.SetLinkage(llvm.InternalLinkage)
		s.hasStatus = true
	}

	return s.status
}
