package alias

import (
	"unsafe"

	"github.com/vkngwrapper/aliasptr/memutils"
)

type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Box is the owning handle to a heap allocation of T. Close releases the allocation, so
// the usual shape is
//
//	box := alias.NewBox(value)
//	defer box.Close()
//
// A Box must not be copied; go vet reports copies. Aliases produced by UnsafeAlias share the
// allocation without owning it.
//
// A Box is exactly one machine word, and the zero Box holds no allocation.
type Box[T any] struct {
	_      noCopy
	target *T
}

// NewBox allocates a T on the heap, moves value into it, and returns the Box that owns it
func NewBox[T any](value T) Box[T] {
	target := new(T)
	*target = value
	trackAllocation(target)

	return Box[T]{target: target}
}

// NewBoxFunc allocates a zero T on the heap and hands it to init before returning the Box that
// owns it
func NewBoxFunc[T any](init func(value *T)) Box[T] {
	target := new(T)
	if init != nil {
		init(target)
	}
	trackAllocation(target)

	return Box[T]{target: target}
}

// UnsafeBoxFromAddress takes ownership of an existing allocation. It panics if target is nil.
//
// No other handle may release target, and target must not be owned by another Box.
func UnsafeBoxFromAddress[T any](target *T) Box[T] {
	if target == nil {
		panic(memutils.NilAddressError)
	}
	trackAllocation(target)

	return Box[T]{target: target}
}

// UnsafeBoxFromAddressUnchecked takes ownership of an existing allocation without checking it for nil
func UnsafeBoxFromAddressUnchecked[T any](target *T) Box[T] {
	trackAllocation(target)
	return Box[T]{target: target}
}

// Get returns the allocation. It is valid for as long as the Box has not been closed.
func (b *Box[T]) Get() *T {
	checkLive(b.target)
	return b.target
}

// Address exposes the allocation's address. It is valid for as long as the Box has not been closed.
func (b *Box[T]) Address() unsafe.Pointer {
	return unsafe.Pointer(b.target)
}

// IsNil reports whether the Box holds no allocation, either because it is the zero Box or
// because it has been closed or converted
func (b *Box[T]) IsNil() bool {
	return b.target == nil
}

// UnsafeAlias returns a non-owning Ptr to the Box's allocation.
//
// The returned Ptr and all of its copies must never be released, and must not be dereferenced
// once the Box is closed.
func (b *Box[T]) UnsafeAlias() Ptr[T] {
	return Ptr[T]{target: b.target}
}

// IntoPtr gives up ownership of the allocation, returning it as a Ptr that must later be released
// through exactly one of its copies. The Box is left empty.
func (b *Box[T]) IntoPtr() Ptr[T] {
	return Ptr[T]{target: b.take()}
}

// Close releases the allocation: it calls Destroy if *T implements Destroyer and then zeroes the
// storage. Every alias of the Box dangles afterwards. Closing an empty Box does nothing.
func (b *Box[T]) Close() {
	if b.target == nil {
		return
	}

	release(b.take())
}

func (b *Box[T]) take() *T {
	target := b.target
	b.target = nil
	return target
}
