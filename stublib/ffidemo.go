package stublib

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
)

// Struct names shared with the FFI tour program.
const (
	PairStruct   = "test_pair"
	TripleStruct = "test_triple"
)

// FFIDemo returns the IR module of the FFI demonstration library.  Structs it
// returns are allocated with malloc and must be freed by the caller.
func FFIDemo() *ir.Module {
	m := ir.NewModule()
	m.SourceFilename = "ffidemo"

	lc := declareLibC(m)

	// void hello_world()
	{
		fn := m.NewFunc("hello_world", types.Void)
		b := fn.NewBlock("entry")
		b.NewCall(lc.printf, globalString(m, "hello_world.msg", "Hello world\n"))
		b.NewRet(nil)
	}

	// void hello_one(const char *name)
	{
		name := ir.NewParam("name", types.I8Ptr)
		fn := m.NewFunc("hello_one", types.Void, name)
		b := fn.NewBlock("entry")
		b.NewCall(lc.printf, globalString(m, "hello_one.fmt", "Hello, %s\n"), name)
		b.NewRet(nil)
	}

	// const char *create_str()
	{
		fn := m.NewFunc("create_str", types.I8Ptr)
		b := fn.NewBlock("entry")
		b.NewRet(globalString(m, "create_str.str", "some string"))
	}

	// int8_t create_i8()
	{
		fn := m.NewFunc("create_i8", types.I8)
		b := fn.NewBlock("entry")
		b.NewRet(constant.NewInt(types.I8, 123))
	}

	// struct test_pair *create_test()
	{
		pair := m.NewTypeDef(PairStruct, types.NewStruct(types.I32, types.I32))
		pairPtr := types.NewPointer(pair)

		fn := m.NewFunc("create_test", pairPtr)
		b := fn.NewBlock("entry")
		p := mallocAs(b, lc, 8, pairPtr)
		b.NewStore(i32(1), fieldPtr(b, pair, p, 0))
		b.NewStore(i32(23), fieldPtr(b, pair, p, 1))
		b.NewRet(p)
	}

	// struct test_triple *create_slice()
	{
		triple := m.NewTypeDef(TripleStruct, types.NewStruct(types.I32, types.I32, types.I32))
		triplePtr := types.NewPointer(triple)

		fn := m.NewFunc("create_slice", triplePtr)
		b := fn.NewBlock("entry")
		p := mallocAs(b, lc, 12, triplePtr)
		for i := int64(0); i < 3; i++ {
			b.NewStore(i32(i+1), fieldPtr(b, triple, p, i))
		}
		b.NewRet(p)
	}

	return m
}
