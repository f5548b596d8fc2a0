package alias

import (
	"unsafe"

	"github.com/vkngwrapper/aliasptr/memutils"
)

//go:generate mockgen -source destroyer.go -destination ./mocks/destroyer.go -package mocks

// Destroyer is implemented by values that must run cleanup when their allocation is released.
// Destroy is called exactly once, immediately before the value's storage is zeroed.
type Destroyer interface {
	Destroy()
}

// Destroy runs the target's Destroyer, if it has one, and then overwrites the target with
// its zero value so anything it referenced can be collected.
func Destroy[T any](target *T) {
	if destroyer, ok := any(target).(Destroyer); ok {
		destroyer.Destroy()
	}

	var zero T
	*target = zero
}

// Zero-sized values all share one address, so their lifetimes can't be told apart
func trackable[T any]() bool {
	var zero T
	return unsafe.Sizeof(zero) != 0
}

func trackAllocation[T any](target *T) {
	if trackable[T]() {
		memutils.DebugTrackAllocation(unsafe.Pointer(target))
	}
}

func checkLive[T any](target *T) {
	if trackable[T]() {
		memutils.DebugCheckLive(unsafe.Pointer(target))
	}
}

func release[T any](target *T) {
	if trackable[T]() {
		memutils.DebugMarkReleased(unsafe.Pointer(target))
	}

	Destroy(target)
}
