package alias

import "sync"

// Scalar is the set of plain value types that hold no references, and so may be copied between
// goroutines freely
type Scalar interface {
	~bool | ~string |
		~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr |
		~float32 | ~float64 | ~complex64 | ~complex128
}

// Value carries a Scalar with both the Send and Sync markers, so plain values can be placed in a
// Cell or SyncCell
type Value[T Scalar] struct {
	Send
	Sync
	value T
}

func ValueOf[T Scalar](value T) Value[T] {
	return Value[T]{value: value}
}

func (v Value[T]) Get() T {
	return v.value
}

// Cell gives interior mutability to a value reached through a shared handle. It does no
// synchronization, so it is Send but not Sync, and it may only hold values that are Send
// themselves.
type Cell[T Sendable] struct {
	Send
	value T
}

func NewCell[T Sendable](value T) Cell[T] {
	return Cell[T]{value: value}
}

func (c *Cell[T]) Get() T {
	return c.value
}

func (c *Cell[T]) Set(value T) {
	c.value = value
}

// Replace stores value and returns the previous contents
func (c *Cell[T]) Replace(value T) T {
	old := c.value
	c.value = value
	return old
}

// SyncCell is a Cell guarded by a read-write mutex. It is both Send and Sync. The mutex only
// serializes access to the cell itself, so it may only hold values that are Send: a Ptr, or a
// Cell reached through one, would still be reachable from other goroutines without the lock.
//
// SyncCell must not be copied after first use; build it in place with NewFunc or NewBoxFunc.
type SyncCell[T Sendable] struct {
	Send
	Sync

	mutex sync.RWMutex
	value T
}

func (c *SyncCell[T]) Get() T {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return c.value
}

func (c *SyncCell[T]) Set(value T) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.value = value
}

// Update replaces the contents with the result of fn while holding the write lock
func (c *SyncCell[T]) Update(fn func(value T) T) T {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.value = fn(c.value)
	return c.value
}
