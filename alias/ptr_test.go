package alias_test

import (
	"sync"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
	"github.com/vkngwrapper/aliasptr/alias"
	"github.com/vkngwrapper/aliasptr/alias/mocks"
	"github.com/vkngwrapper/aliasptr/memutils"
	"go.uber.org/mock/gomock"
)

type destroyHook struct {
	mock *mocks.MockDestroyer
}

func (h *destroyHook) Destroy() {
	h.mock.Destroy()
}

type intCell = alias.Cell[alias.Value[int]]

func newIntCell(value int) intCell {
	return alias.NewCell(alias.ValueOf(value))
}

type countedCell struct {
	intCell
	drops *int
}

func (c *countedCell) Destroy() {
	*c.drops++
}

func TestHandleSize(t *testing.T) {
	word := unsafe.Sizeof(uintptr(0))

	require.Equal(t, word, unsafe.Sizeof(alias.Ptr[int]{}))
	require.Equal(t, word, unsafe.Sizeof(alias.Ptr[[64]byte]{}))
	require.Equal(t, word, unsafe.Sizeof(alias.Box[int]{}))
	require.Equal(t, word, unsafe.Sizeof(alias.Box[[64]byte]{}))

	var none alias.Ptr[int]
	require.True(t, none.IsNil())
	require.Nil(t, none.Address())

	var emptyBox alias.Box[int]
	require.True(t, emptyBox.IsNil())
}

func TestCloneObservesMutation(t *testing.T) {
	original := alias.New(newIntCell(1))
	duplicate := original.Clone()

	require.True(t, original.Is(duplicate))
	require.Equal(t, original.Address(), duplicate.Address())

	duplicate.Get().Set(alias.ValueOf(42))
	require.Equal(t, 42, original.Get().Get().Get())

	require.Equal(t, 42, original.Get().Replace(alias.ValueOf(7)).Get())
	require.Equal(t, 7, duplicate.Get().Get().Get())

	original.UnsafeRelease()
}

func TestAddress(t *testing.T) {
	p := alias.New(5)
	require.Equal(t, unsafe.Pointer(p.Get()), p.Address())
	require.Equal(t, p.Address(), alias.AddressOf(p))
	p.UnsafeRelease()
}

func TestReleaseDestroysOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	destroyer := mocks.NewMockDestroyer(ctrl)
	destroyer.EXPECT().Destroy().Times(1)

	p := alias.New(destroyHook{mock: destroyer})
	q := p.Clone()
	q.UnsafeRelease()
}

func TestReleaseZeroesStorage(t *testing.T) {
	if memutils.DebugTracking {
		t.Skip("dereferencing a released allocation panics in debug builds")
	}

	drops := 0
	p := alias.New(countedCell{intCell: newIntCell(9), drops: &drops})
	stale := p.Clone()
	p.UnsafeRelease()

	require.Equal(t, 1, drops)
	require.Equal(t, 0, stale.Get().Get().Get())
	require.Nil(t, stale.Get().drops)
}

func TestSharedScenario(t *testing.T) {
	drops := 0
	original := alias.New(countedCell{intCell: newIntCell(1), drops: &drops})
	duplicate := original.Clone()

	duplicate.Get().Set(alias.ValueOf(42))
	require.Equal(t, 42, original.Get().Get().Get())

	original.UnsafeRelease()
	require.Equal(t, 1, drops)
}

func TestFromAddressChecksNil(t *testing.T) {
	require.PanicsWithValue(t, memutils.NilAddressError, func() {
		alias.UnsafeFromAddress[int](nil)
	})
	require.PanicsWithValue(t, memutils.NilAddressError, func() {
		alias.UnsafeBoxFromAddress[int](nil)
	})
}

func TestFromAddress(t *testing.T) {
	drops := 0
	value := &countedCell{intCell: newIntCell(3), drops: &drops}

	checked := alias.UnsafeFromAddress(value)
	trusted := alias.UnsafeFromAddressUnchecked(value)
	require.True(t, checked.Is(trusted))

	trusted.Get().Set(alias.ValueOf(4))
	require.Equal(t, 4, value.Get().Get())

	checked.UnsafeRelease()
	require.Equal(t, 1, drops)
}

func TestNewFunc(t *testing.T) {
	p := alias.NewFunc(func(cell *alias.SyncCell[alias.Value[string]]) {
		cell.Set(alias.ValueOf("ready"))
	})
	require.Equal(t, "ready", p.Get().Get().Get())
	p.UnsafeRelease()

	empty := alias.NewFunc[int](nil)
	require.Equal(t, 0, *empty.Get())
	empty.UnsafeRelease()
}

func TestZeroSizedValue(t *testing.T) {
	first := alias.New(struct{}{})
	second := alias.New(struct{}{})

	first.UnsafeRelease()
	second.UnsafeRelease()
}

func TestConcurrentShare(t *testing.T) {
	p := alias.NewFunc(func(cell *alias.SyncCell[alias.Value[int]]) {})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		alias.Go(p, func(p alias.Ptr[alias.SyncCell[alias.Value[int]]]) {
			defer wg.Done()
			p.Get().Update(func(value alias.Value[int]) alias.Value[int] {
				return alias.ValueOf(value.Get() + 1)
			})
		})
	}
	wg.Wait()

	shared := alias.Share(p)
	require.Equal(t, 8, shared.Get().Get().Get())
	alias.Transfer(p).UnsafeRelease()
}
