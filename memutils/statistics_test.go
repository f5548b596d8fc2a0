package memutils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStatisticsAccumulate(t *testing.T) {
	var total Statistics
	total.AddAllocation(16)

	other := Statistics{SlotCount: 2, SlotBytes: 32, AllocationCount: 1, AllocationBytes: 16, ReleaseCount: 1}
	total.AddStatistics(&other)

	require.Equal(t, Statistics{
		SlotCount:       2,
		AllocationCount: 2,
		SlotBytes:       32,
		AllocationBytes: 32,
		ReleaseCount:    1,
	}, total)

	total.Clear()
	require.Equal(t, Statistics{}, total)
}
