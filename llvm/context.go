package llvm

/*
#include "llvm-c/Core.h"
#include "llvm-c/Initialization.h"
*/
import "C"
import "unsafe"

// OwnedObject represents an LLVM object that can be disposed.
type OwnedObject interface {
	// dispose frees all the resources associated with the LLVM object.
	dispose()
}

// Context represents an LLVM context.  A context is the single owner of every
// LLVM object created through it: modules, builders, target machines,
// execution engines and the C strings handed to LLVM.
type Context struct {
	c C.LLVMContextRef

	// The list of LLVM objects owned by this context in creation order.
	ownedObjects []OwnedObject

	// The arena holding the C strings passed to LLVM through this context.
	strs cstrArena

	// Whether the context has already been disposed.
	disposed bool
}

// NewContext creates a new LLVM context.
func NewContext() *Context {
	return &Context{c: C.LLVMContextCreate()}
}

// takeOwnership marks the given disposable LLVM object as being owned by this
// context: this context is responsible for its disposal.
func (c *Context) takeOwnership(obj OwnedObject) {
	c.ownedObjects = append(c.ownedObjects, obj)
}

// releaseOwnership removes obj from the ownership list without disposing it.
// It is used when another LLVM object (eg. an execution engine) becomes the
// owner of obj.  It returns whether obj was owned by the context.
func (c *Context) releaseOwnership(obj OwnedObject) bool {
	for i, owned := range c.ownedObjects {
		if owned == obj {
			c.ownedObjects = append(c.ownedObjects[:i], c.ownedObjects[i+1:]...)
			return true
		}
	}

	return false
}

// disposeOwned disposes of obj immediately and forgets it so that the context
// does not dispose it a second time.
func (c *Context) disposeOwned(obj OwnedObject) {
	if c.releaseOwnership(obj) {
		obj.dispose()
	}
}

// Dispose frees all the resources associated with this context: the owned
// objects in reverse creation order, the string arena, and then the context
// itself.  Calling Dispose more than once is a no-op.
func (c *Context) Dispose() {
	if c.disposed {
		return
	}

	for i := len(c.ownedObjects) - 1; i >= 0; i-- {
		c.ownedObjects[i].dispose()
	}
	c.ownedObjects = nil

	c.strs.free()

	C.LLVMContextDispose(c.c)
	c.disposed = true
}

// Disposed returns whether the context has been disposed.
func (c *Context) Disposed() bool {
	return c.disposed
}

// NumOwned returns the number of LLVM objects currently owned by the context.
func (c *Context) NumOwned() int {
	return len(c.ownedObjects)
}

// -----------------------------------------------------------------------------

// Iterator represents an iterator of LLVM objects.  This is needed because many
// LLVM C API's don't expose a way to access elements by index but do allow you
// to iterate over them.  The pattern for using iterators is as follows:
//
//	for it := v.Items(); it.Next(); {
//		item := it.Item()
//		..
//	}
type Iterator[T any] interface {
	// Item returns the current item the iterator is positioned over if it
	// exists.  If the item does not exist, the return value is invalid.
	Item() T

	// Next moves the iterator forward one element if an element exists. It
	// returns whether or not it was able to move the iterator forward. Next
	// should be called to get the first element.
	Next() bool
}

// -----------------------------------------------------------------------------

// byref passes a Go value by reference to C.
func byref[T any](v *T) *T {
	return (*T)(unsafe.Pointer(v))
}

// llvmBool converts a boolean value to an LLVMBool.
func llvmBool(v bool) C.LLVMBool {
	if v {
		return 1
	}

	return 0
}

// -----------------------------------------------------------------------------

func init() {
	// Initialize the LLVM passes every output path relies on.  Target
	// initialization is left to the backends since the JIT only needs the
	// native target.
	pr := C.LLVMGetGlobalPassRegistry()
	C.LLVMInitializeCore(pr)
	C.LLVMInitializeAnalysis(pr)
	C.LLVMInitializeCodeGen(pr)
	C.LLVMInitializeTarget(pr)
}
