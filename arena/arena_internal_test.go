package arena

import (
	"math"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
	"github.com/vkngwrapper/aliasptr/memutils"
)

func TestArenaRetiresExhaustedSlot(t *testing.T) {
	a := New[int](nil, CreateOptions{})

	h := a.Alloc(1)
	a.slots[h.index].generation = math.MaxUint32
	last := Handle{index: h.index, generation: math.MaxUint32}

	value, err := a.Get(last)
	require.NoError(t, err)
	require.Equal(t, 1, *value)

	require.NoError(t, a.Free(last))
	require.NoError(t, a.Validate())

	next := a.Alloc(2)
	require.NotEqual(t, h.index, next.index)

	for _, stale := range []Handle{h, last, {index: h.index, generation: 1}} {
		_, err = a.Get(stale)
		require.True(t, errors.Is(err, memutils.StaleHandleError))
	}

	var stats memutils.Statistics
	a.AddStatistics(&stats)
	require.Equal(t, 2, stats.SlotCount)
	require.Equal(t, 1, stats.AllocationCount)
	require.Equal(t, 1, stats.ReleaseCount)

	require.NoError(t, a.Free(next))
	require.NoError(t, a.Validate())
	require.Equal(t, 0, a.Len())
}
