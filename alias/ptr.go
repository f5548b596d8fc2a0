package alias

import (
	"unsafe"

	"github.com/vkngwrapper/aliasptr/memutils"
)

// Ptr is a copyable, non-counting handle to a heap allocation of T. Any number of copies
// may exist, and exactly one of them must call UnsafeRelease. Once that happens every copy
// dangles.
//
// A Ptr is exactly one machine word. The zero Ptr holds no allocation and takes the place
// of an optional handle.
type Ptr[T any] struct {
	target *T
}

// New allocates a T on the heap, moves value into it, and returns a Ptr to it
func New[T any](value T) Ptr[T] {
	target := new(T)
	*target = value
	trackAllocation(target)

	return Ptr[T]{target: target}
}

// NewFunc allocates a zero T on the heap and hands it to init before returning a Ptr to it.
// Use it for values that must not be copied after construction, such as anything containing
// a sync.Mutex.
func NewFunc[T any](init func(value *T)) Ptr[T] {
	target := new(T)
	if init != nil {
		init(target)
	}
	trackAllocation(target)

	return Ptr[T]{target: target}
}

// UnsafeFromAddress wraps an existing allocation. It panics if target is nil.
//
// target must have come from new, a composite literal address, or another handle's Address,
// and exactly one handle over it may ever be released.
func UnsafeFromAddress[T any](target *T) Ptr[T] {
	if target == nil {
		panic(memutils.NilAddressError)
	}
	trackAllocation(target)

	return Ptr[T]{target: target}
}

// UnsafeFromAddressUnchecked wraps an existing allocation without checking it for nil. It has the
// same preconditions as UnsafeFromAddress, and additionally target must not be nil.
func UnsafeFromAddressUnchecked[T any](target *T) Ptr[T] {
	trackAllocation(target)
	return Ptr[T]{target: target}
}

// Clone returns another handle to the same allocation. It does not touch the allocation.
func (p Ptr[T]) Clone() Ptr[T] {
	return p
}

// Get returns the allocation. The result is valid until any handle to this allocation
// is released.
func (p Ptr[T]) Get() *T {
	checkLive(p.target)
	return p.target
}

// Address exposes the allocation's address without affecting the handle
func (p Ptr[T]) Address() unsafe.Pointer {
	return unsafe.Pointer(p.target)
}

// IsNil reports whether this is the zero Ptr
func (p Ptr[T]) IsNil() bool {
	return p.target == nil
}

// Is reports whether both handles refer to the same allocation
func (p Ptr[T]) Is(other Ptr[T]) bool {
	return p.target == other.target
}

// UnsafeRelease destroys the allocation: it calls Destroy if *T implements Destroyer and then zeroes
// the storage. Afterwards this handle and every copy of it dangles.
//
// This must be the only release of the allocation across all of its handles, no other goroutine may be
// using the allocation, and the allocation must not have come from Box.UnsafeAlias. The receiver is taken
// by value so that it can be called on a field of a struct that is itself only reachable through a
// shared handle; the call must still be treated as consuming p.
func (p Ptr[T]) UnsafeRelease() {
	release(p.target)
}

// AddressOf exposes the allocation's address without affecting the handle
func AddressOf[T any](p Ptr[T]) unsafe.Pointer {
	return p.Address()
}
