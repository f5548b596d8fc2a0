package memutils

// Statistics counts the allocations held by a container. Slots are the storage a container has
// reserved, allocations are the slots that currently hold a live value.
type Statistics struct {
	SlotCount       int
	AllocationCount int
	SlotBytes       int
	AllocationBytes int
	ReleaseCount    int
}

func (s *Statistics) Clear() {
	s.SlotCount = 0
	s.AllocationCount = 0
	s.SlotBytes = 0
	s.AllocationBytes = 0
	s.ReleaseCount = 0
}

func (s *Statistics) AddStatistics(other *Statistics) {
	s.SlotCount += other.SlotCount
	s.AllocationCount += other.AllocationCount
	s.SlotBytes += other.SlotBytes
	s.AllocationBytes += other.AllocationBytes
	s.ReleaseCount += other.ReleaseCount
}

func (s *Statistics) AddAllocation(size int) {
	s.AllocationCount++
	s.AllocationBytes += size
}
