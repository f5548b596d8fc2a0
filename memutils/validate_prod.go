//go:build !debug_mem_utils

package memutils

import "unsafe"

const (
	// DebugTracking reports whether the debug_mem_utils build tag is present and allocation
	// lifetimes are being tracked
	DebugTracking bool = false
)

// DebugValidate will call Validate on the provided object and panics if any errors are returned. This
// method no-ops unless the debug_mem_utils build tag is present
func DebugValidate(validatable Validatable) {
}

// DebugTrackAllocation records that a live allocation is reachable at the provided address,
// which must be a heap address.
// This method no-ops unless the debug_mem_utils build tag is present.
func DebugTrackAllocation(ptr unsafe.Pointer) {
}

// DebugCheckLive panics if the allocation at the provided address has been released.
// This method no-ops unless the debug_mem_utils build tag is present.
func DebugCheckLive(ptr unsafe.Pointer) {
}

// DebugMarkReleased records that the heap allocation at the provided address has been released, and panics
// if it had already been released. This method no-ops unless the debug_mem_utils build tag is present.
func DebugMarkReleased(ptr unsafe.Pointer) {
}
