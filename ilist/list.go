// Package ilist is a doubly linked list whose nodes are linked to each other with alias.Ptr
// instead of counted references. The list is the one owner of every node: it releases a node
// when the node is removed, and releases every remaining node when it is cleared.
package ilist

import (
	"unsafe"

	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
	"github.com/pkg/errors"
	"github.com/vkngwrapper/aliasptr/alias"
	"github.com/vkngwrapper/aliasptr/internal/utils"
	"github.com/vkngwrapper/aliasptr/memutils"
)

type Node[T any] struct {
	Value T

	prev alias.Ptr[Node[T]]
	next alias.Ptr[Node[T]]
}

// Destroy forwards to the node's value so that values implementing alias.Destroyer are
// cleaned up when the node is released
func (n *Node[T]) Destroy() {
	if destroyer, ok := any(&n.Value).(alias.Destroyer); ok {
		destroyer.Destroy()
	}
}

// Next returns the following node, or the zero Ptr at the back of the list
func (n *Node[T]) Next() alias.Ptr[Node[T]] {
	return n.next
}

// Prev returns the preceding node, or the zero Ptr at the front of the list
func (n *Node[T]) Prev() alias.Ptr[Node[T]] {
	return n.prev
}

type List[T any] struct {
	mutex utils.OptionalRWMutex

	count int
	head  alias.Ptr[Node[T]]
	tail  alias.Ptr[Node[T]]
}

// Init prepares the list for use. When useMutex is false the caller must synchronize access.
func (l *List[T]) Init(useMutex bool) {
	l.mutex = utils.NewOptionalRWMutex(useMutex)
}

func (l *List[T]) Validate() error {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	declaredCount := l.count
	actualCount := 0

	var prev alias.Ptr[Node[T]]
	for node := l.head; !node.IsNil(); node = node.Get().next {
		if !node.Get().prev.Is(prev) {
			return errors.Errorf("node %d does not link back to its predecessor", actualCount)
		}
		prev = node
		actualCount++
	}

	if !prev.Is(l.tail) {
		return errors.New("the last node reachable from the head is not the tail")
	}

	if declaredCount != actualCount {
		return errors.Errorf("the listed number of nodes in the list (%d) does not match the actual number of nodes (%d)", declaredCount, actualCount)
	}

	return nil
}

func (l *List[T]) AddStatistics(stats *memutils.Statistics) {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	var node Node[T]
	size := int(unsafe.Sizeof(node))

	stats.SlotCount += l.count
	stats.SlotBytes += l.count * size
	stats.AllocationCount += l.count
	stats.AllocationBytes += l.count * size
}

// BuildStatsString writes the list as a JSON array, using printNode to fill in one object per node
func (l *List[T]) BuildStatsString(writer *jwriter.Writer, printNode func(json *jwriter.ObjectState, value *T)) {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	s := writer.Array()
	defer s.End()

	for node := l.head; !node.IsNil(); node = node.Get().next {
		o := s.Object()
		printNode(&o, &node.Get().Value)
		o.End()
	}
}

func (l *List[T]) IsEmpty() bool {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	return l.count == 0
}

func (l *List[T]) Len() int {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	return l.count
}

func (l *List[T]) Front() alias.Ptr[Node[T]] {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	return l.head
}

func (l *List[T]) Back() alias.Ptr[Node[T]] {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	return l.tail
}

// PushBack appends value and returns its node. The returned Ptr is an alias owned by the list:
// it must not be released, and must not be used after the node is removed.
func (l *List[T]) PushBack(value T) alias.Ptr[Node[T]] {
	node := alias.New(Node[T]{Value: value})

	l.mutex.Lock()
	l.pushBack(node)
	l.mutex.Unlock()

	memutils.DebugValidate(l)
	return node
}

// PushFront prepends value and returns its node, with the same restrictions as PushBack
func (l *List[T]) PushFront(value T) alias.Ptr[Node[T]] {
	node := alias.New(Node[T]{Value: value})

	l.mutex.Lock()
	l.pushFront(node)
	l.mutex.Unlock()

	memutils.DebugValidate(l)
	return node
}

// Remove unlinks the node and releases it. node must belong to this list; it and every copy
// of it dangle afterwards.
func (l *List[T]) Remove(node alias.Ptr[Node[T]]) {
	l.mutex.Lock()
	l.removeNode(node)
	l.mutex.Unlock()

	node.UnsafeRelease()
	memutils.DebugValidate(l)
}

// Each calls fn on every value from front to back until fn returns false
func (l *List[T]) Each(fn func(value *T) bool) {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	for node := l.head; !node.IsNil(); node = node.Get().next {
		if !fn(&node.Get().Value) {
			return
		}
	}
}

// Clear releases every node in the list
func (l *List[T]) Clear() {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	node := l.head
	for !node.IsNil() {
		next := node.Get().next
		node.UnsafeRelease()
		node = next
	}

	l.head = alias.Ptr[Node[T]]{}
	l.tail = alias.Ptr[Node[T]]{}
	l.count = 0
}

func (l *List[T]) removeNode(node alias.Ptr[Node[T]]) {
	n := node.Get()
	prev := n.prev
	next := n.next

	if !prev.IsNil() {
		prev.Get().next = next
	} else {
		l.head = next
	}

	if !next.IsNil() {
		next.Get().prev = prev
	} else {
		l.tail = prev
	}

	n.prev = alias.Ptr[Node[T]]{}
	n.next = alias.Ptr[Node[T]]{}

	l.count--
}

func (l *List[T]) pushBack(node alias.Ptr[Node[T]]) {
	if l.count == 0 {
		l.head = node
		l.tail = node
		l.count = 1
	} else {
		node.Get().prev = l.tail
		l.tail.Get().next = node

		l.tail = node
		l.count++
	}
}

func (l *List[T]) pushFront(node alias.Ptr[Node[T]]) {
	if l.count == 0 {
		l.head = node
		l.tail = node
		l.count = 1
	} else {
		node.Get().next = l.head
		l.head.Get().prev = node

		l.head = node
		l.count++
	}
}
