//go:build debug_mem_utils

package memutils

import (
	"sync"
	"unsafe"

	cerrors "github.com/cockroachdb/errors"
	"github.com/dolthub/swiss"
)

const (
	// DebugTracking reports whether the debug_mem_utils build tag is present and allocation
	// lifetimes are being tracked
	DebugTracking bool = true
)

type allocationState uint8

const (
	allocationLive allocationState = iota + 1
	allocationReleased
)

// Keys are raw addresses, so only heap allocations may be tracked; a stack address can move.
// Released addresses are never removed: they stay in the map until the collector hands the
// address out again and DebugTrackAllocation flips it back to live, so the map grows with the
// number of distinct addresses ever tracked.
var tracker = struct {
	sync.Mutex
	states *swiss.Map[uintptr, allocationState]
}{
	states: swiss.NewMap[uintptr, allocationState](64),
}

// DebugValidate will call Validate on the provided object and panics if any errors are returned. This
// method no-ops unless the debug_mem_utils build tag is present
func DebugValidate(validatable Validatable) {
	err := validatable.Validate()
	if err != nil {
		panic(err)
	}
}

// DebugTrackAllocation records that a live allocation is reachable at the provided address,
// which must be a heap address.
// This method no-ops unless the debug_mem_utils build tag is present.
func DebugTrackAllocation(ptr unsafe.Pointer) {
	tracker.Lock()
	defer tracker.Unlock()

	tracker.states.Put(uintptr(ptr), allocationLive)
}

// DebugCheckLive panics if the allocation at the provided address has been released.
// This method no-ops unless the debug_mem_utils build tag is present.
func DebugCheckLive(ptr unsafe.Pointer) {
	tracker.Lock()
	state, ok := tracker.states.Get(uintptr(ptr))
	tracker.Unlock()

	if ok && state == allocationReleased {
		panic(cerrors.Wrapf(UseAfterReleaseError, "address %#x", uintptr(ptr)))
	}
}

// DebugMarkReleased records that the heap allocation at the provided address has been released, and panics
// if it had already been released. This method no-ops unless the debug_mem_utils build tag is present.
func DebugMarkReleased(ptr unsafe.Pointer) {
	tracker.Lock()
	defer tracker.Unlock()

	state, ok := tracker.states.Get(uintptr(ptr))
	if ok && state == allocationReleased {
		panic(cerrors.Wrapf(DoubleReleaseError, "address %#x", uintptr(ptr)))
	}

	tracker.states.Put(uintptr(ptr), allocationReleased)
}
