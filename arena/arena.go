package arena

import (
	"context"
	"fmt"
	"math"
	"unsafe"

	cerrors "github.com/cockroachdb/errors"
	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
	"github.com/pkg/errors"
	"github.com/vkngwrapper/aliasptr/alias"
	"github.com/vkngwrapper/aliasptr/internal/utils"
	"github.com/vkngwrapper/aliasptr/memutils"
	"golang.org/x/exp/slices"
	"golang.org/x/exp/slog"
)

// Handle refers to one value in an Arena. The zero Handle refers to nothing.
type Handle struct {
	index      uint32
	generation uint32
}

func (h Handle) IsNil() bool {
	return h.generation == 0
}

func (h Handle) Index() int {
	return int(h.index)
}

func (h Handle) Generation() uint32 {
	return h.generation
}

func (h Handle) String() string {
	return fmt.Sprintf("%d@%d", h.index, h.generation)
}

type slot[T any] struct {
	value      T
	generation uint32
	occupied   bool
	// A retired slot has used up its generations and is never handed out again
	retired bool
}

// Arena owns a set of values of type T and hands out generational handles to them. Slot
// storage is never moved, so pointers returned from Get remain valid until the handle is freed.
type Arena[T any] struct {
	mutex       utils.OptionalRWMutex
	logger      *slog.Logger
	createFlags CreateFlags

	slots        []*slot[T]
	freeList     []uint32
	liveCount    int
	releaseCount int
	retiredCount int
}

var _ memutils.Validatable = &Arena[int]{}

// Alloc moves value into a free slot and returns its handle
func (a *Arena[T]) Alloc(value T) Handle {
	h := a.alloc(value)
	memutils.DebugValidate(a)

	return h
}

func (a *Arena[T]) alloc(value T) Handle {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	var index uint32
	if len(a.freeList) > 0 {
		index = a.freeList[len(a.freeList)-1]
		a.freeList = a.freeList[:len(a.freeList)-1]
	} else {
		if uint64(len(a.slots)) >= math.MaxUint32 {
			panic("arena has run out of slot indices")
		}
		index = uint32(len(a.slots))
		a.slots = append(a.slots, &slot[T]{generation: 1})
	}

	s := a.slots[index]
	s.value = value
	s.occupied = true
	a.liveCount++

	return Handle{index: index, generation: s.generation}
}

func (a *Arena[T]) lookup(h Handle) (*slot[T], error) {
	if h.IsNil() {
		return nil, cerrors.Wrap(memutils.StaleHandleError, "nil handle")
	}
	if int(h.index) >= len(a.slots) {
		return nil, cerrors.Wrapf(memutils.StaleHandleError, "handle %s is out of range for %d slots", h, len(a.slots))
	}

	s := a.slots[h.index]
	if !s.occupied || s.generation != h.generation {
		return nil, cerrors.Wrapf(memutils.StaleHandleError, "handle %s does not match slot generation %d", h, s.generation)
	}

	return s, nil
}

// Get returns the value the handle refers to, or an error wrapping memutils.StaleHandleError
// if it has been freed
func (a *Arena[T]) Get(h Handle) (*T, error) {
	a.mutex.RLock()
	defer a.mutex.RUnlock()

	s, err := a.lookup(h)
	if err != nil {
		return nil, err
	}

	return &s.value, nil
}

// Contains reports whether the handle still refers to a live value
func (a *Arena[T]) Contains(h Handle) bool {
	a.mutex.RLock()
	defer a.mutex.RUnlock()

	_, err := a.lookup(h)
	return err == nil
}

// Free destroys the value the handle refers to and makes its slot available again. Destroy
// runs with the arena locked and must not call back into the arena.
func (a *Arena[T]) Free(h Handle) error {
	err := a.free(h)
	if err != nil {
		return err
	}

	memutils.DebugValidate(a)
	return nil
}

func (a *Arena[T]) free(h Handle) error {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	s, err := a.lookup(h)
	if err != nil {
		return err
	}

	a.freeSlot(h.index, s)
	return nil
}

func (a *Arena[T]) freeSlot(index uint32, s *slot[T]) {
	alias.Destroy(&s.value)
	s.occupied = false
	a.liveCount--
	a.releaseCount++

	if s.generation == math.MaxUint32 {
		// Wrapping would make old handles match again
		s.retired = true
		a.retiredCount++
		return
	}

	s.generation++
	a.freeList = append(a.freeList, index)
}

func (a *Arena[T]) Len() int {
	a.mutex.RLock()
	defer a.mutex.RUnlock()

	return a.liveCount
}

// Each calls fn for every live value in slot order until fn returns false. fn must not
// call back into the arena.
func (a *Arena[T]) Each(fn func(h Handle, value *T) bool) {
	a.mutex.RLock()
	defer a.mutex.RUnlock()

	for index, s := range a.slots {
		if !s.occupied {
			continue
		}

		if !fn(Handle{index: uint32(index), generation: s.generation}, &s.value) {
			return
		}
	}
}

// Clear frees every live value. Values that were still live are reported to the logger as
// unreleased, and an error is returned if there were any.
func (a *Arena[T]) Clear() error {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	leaked := a.liveCount
	for index, s := range a.slots {
		if !s.occupied {
			continue
		}

		a.logger.LogAttrs(context.Background(), slog.LevelError, "[UNRELEASED MEMORY] unfreed arena value",
			slog.Int("index", index),
			slog.Int("generation", int(s.generation)),
			slog.String("flags", a.createFlags.String()),
		)
		a.freeSlot(uint32(index), s)
	}

	if leaked > 0 {
		return errors.Errorf("%d arena values were not freed before the arena was cleared", leaked)
	}

	return nil
}

func (a *Arena[T]) Validate() error {
	a.mutex.RLock()
	defer a.mutex.RUnlock()

	occupied := 0
	retired := 0
	for index, s := range a.slots {
		if s.generation == 0 {
			return errors.Errorf("slot %d has the reserved generation 0", index)
		}
		if s.occupied && s.retired {
			return errors.Errorf("slot %d is retired but occupied", index)
		}
		if s.occupied {
			occupied++
		}
		if s.retired {
			retired++
		}
	}

	if retired != a.retiredCount {
		return errors.Errorf("the listed number of retired slots (%d) does not match the actual number of retired slots (%d)", a.retiredCount, retired)
	}

	if occupied != a.liveCount {
		return errors.Errorf("the listed number of live values (%d) does not match the actual number of occupied slots (%d)", a.liveCount, occupied)
	}

	if len(a.freeList)+a.liveCount+a.retiredCount != len(a.slots) {
		return errors.Errorf("free list holds %d slots, %d are live and %d are retired, but the arena has %d slots", len(a.freeList), a.liveCount, a.retiredCount, len(a.slots))
	}

	sorted := slices.Clone(a.freeList)
	slices.Sort(sorted)
	for i, index := range sorted {
		if i > 0 && sorted[i-1] == index {
			return errors.Errorf("slot %d appears in the free list more than once", index)
		}
		if a.slots[index].occupied || a.slots[index].retired {
			return errors.Errorf("slot %d is in the free list but is occupied or retired", index)
		}
	}

	return nil
}

func (a *Arena[T]) AddStatistics(stats *memutils.Statistics) {
	a.mutex.RLock()
	defer a.mutex.RUnlock()

	var zero T
	size := int(unsafe.Sizeof(zero))

	stats.SlotCount += len(a.slots)
	stats.SlotBytes += len(a.slots) * size
	stats.ReleaseCount += a.releaseCount
	for _, s := range a.slots {
		if s.occupied {
			stats.AddAllocation(size)
		}
	}
}

func (a *Arena[T]) BuildStatsString(writer *jwriter.Writer) {
	var stats memutils.Statistics
	a.AddStatistics(&stats)

	a.mutex.RLock()
	defer a.mutex.RUnlock()

	obj := writer.Object()
	defer obj.End()

	obj.Name("Flags").String(a.createFlags.String())
	obj.Name("SlotCount").Int(stats.SlotCount)
	obj.Name("AllocationCount").Int(stats.AllocationCount)
	obj.Name("SlotBytes").Int(stats.SlotBytes)
	obj.Name("AllocationBytes").Int(stats.AllocationBytes)
	obj.Name("ReleaseCount").Int(stats.ReleaseCount)
	obj.Name("RetiredCount").Int(a.retiredCount)

	live := obj.Name("Live").Array()
	for index, s := range a.slots {
		if !s.occupied {
			continue
		}

		item := live.Object()
		item.Name("Index").Int(index)
		item.Name("Generation").Int(int(s.generation))
		item.End()
	}
	live.End()
}
