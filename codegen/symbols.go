package codegen

import (
	"nullgen/llvm"
	"nullgen/report"
)

// Signature is the C signature of an external function.
type Signature struct {
	Return   llvm.Type
	Params   []llvm.Type
	Variadic bool
}

// funcType converts the signature into an LLVM function type.
func (sig Signature) funcType() llvm.FunctionType {
	if sig.Variadic {
		return llvm.NewVariadicFunctionType(sig.Return, sig.Params...)
	}

	return llvm.NewFunctionType(sig.Return, sig.Params...)
}

// SymbolTable declares the external functions a module calls.  Each name is
// declared at most once per module.
type SymbolTable struct {
	mod   llvm.Module
	types *Registry

	funcs map[string]llvm.Function

	// The declared names in declaration order.
	order []string
}

// NewSymbolTable creates a new symbol table for mod.
func NewSymbolTable(mod llvm.Module, types *Registry) *SymbolTable {
	return &SymbolTable{
		mod:   mod,
		types: types,
		funcs: make(map[string]llvm.Function),
	}
}

// Declare declares the external function name with signature sig.  If name
// is already declared, the existing declaration is returned unchanged.
func (st *SymbolTable) Declare(name string, sig Signature) llvm.Function {
	if fn, ok := st.funcs[name]; ok {
		if !llvm.TypesEqual(fn.FuncType(), sig.funcType()) {
			report.ReportWarning(
				"Symbol Warning",
				"`%s` redeclared as `%s`, keeping `%s`",
				name, sig.funcType(), fn.FuncType(),
			)
		}

		return fn
	}

	// The function may already exist if it was added to the module directly.
	fn, ok := st.mod.GetFunction(name)
	if !ok {
		fn = st.mod.AddFunction(name, sig.funcType())
	}

	st.funcs[name] = fn
	st.order = append(st.order, name)
	return fn
}

// Lookup returns the declaration of name if it has been declared.
func (st *SymbolTable) Lookup(name string) (llvm.Function, bool) {
	fn, ok := st.funcs[name]
	return fn, ok
}

// Externals returns the declared names in declaration order.
func (st *SymbolTable) Externals() []string {
	return append([]string(nil), st.order...)
}

// -----------------------------------------------------------------------------
// C library functions.

// Malloc declares `i8* malloc(i64)`.
func (st *SymbolTable) Malloc() llvm.Function {
	return st.Declare("malloc", Signature{
		Return: st.types.BytePtr(),
		Params: []llvm.Type{st.types.I64()},
	})
}

// Free declares `void free(i8*)`.
func (st *SymbolTable) Free() llvm.Function {
	return st.Declare("free", Signature{
		Return: st.types.Void(),
		Params: []llvm.Type{st.types.BytePtr()},
	})
}

// Printf declares `i32 printf(i8*, ...)`.
func (st *SymbolTable) Printf() llvm.Function {
	return st.Declare("printf", Signature{
		Return:   st.types.I32(),
		Params:   []llvm.Type{st.types.BytePtr()},
		Variadic: true,
	})
}

// Scanf declares `i32 scanf(i8*, ...)`.
func (st *SymbolTable) Scanf() llvm.Function {
	return st.Declare("scanf", Signature{
		Return:   st.types.I32(),
		Params:   []llvm.Type{st.types.BytePtr()},
		Variadic: true,
	})
}

// -----------------------------------------------------------------------------
// Arbitrary precision arithmetic functions.  All of them return an `mp_err`
// status: zero on success.

// mpPtr returns the `mp_int*` type.
func (st *SymbolTable) mpPtr() llvm.Type {
	pt, _ := st.types.PointerTo(DeclareMPInt(st.types))
	return pt
}

// MPInit declares `i32 mp_init(mp_int*)`.
func (st *SymbolTable) MPInit() llvm.Function {
	return st.Declare("mp_init", Signature{
		Return: st.types.I32(),
		Params: []llvm.Type{st.mpPtr()},
	})
}

// MPReadRadix declares `i32 mp_read_radix(mp_int*, i8*, i32)`.
func (st *SymbolTable) MPReadRadix() llvm.Function {
	return st.Declare("mp_read_radix", Signature{
		Return: st.types.I32(),
		Params: []llvm.Type{st.mpPtr(), st.types.BytePtr(), st.types.I32()},
	})
}

// MPAdd declares `i32 mp_add(mp_int*, mp_int*, mp_int*)`.
func (st *SymbolTable) MPAdd() llvm.Function {
	return st.Declare("mp_add", Signature{
		Return: st.types.I32(),
		Params: []llvm.Type{st.mpPtr(), st.mpPtr(), st.mpPtr()},
	})
}

// MPRadixSize declares `i32 mp_radix_size(mp_int*, i32, i32*)`.
func (st *SymbolTable) MPRadixSize() llvm.Function {
	i32Ptr, _ := st.types.PointerTo(st.types.I32())

	return st.Declare("mp_radix_size", Signature{
		Return: st.types.I32(),
		Params: []llvm.Type{st.mpPtr(), st.types.I32(), i32Ptr},
	})
}

// MPToRadix declares `i32 mp_toradix(mp_int*, i8*, i32)`.
func (st *SymbolTable) MPToRadix() llvm.Function {
	return st.Declare("mp_toradix", Signature{
		Return: st.types.I32(),
		Params: []llvm.Type{st.mpPtr(), st.types.BytePtr(), st.types.I32()},
	})
}
