//go:build debug_mem_utils

package memutils

import (
	"testing"
	"unsafe"

	cerrors "github.com/cockroachdb/errors"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

type failingValidatable struct{}

func (failingValidatable) Validate() error {
	return errors.New("broken")
}

func TestDebugValidatePanics(t *testing.T) {
	require.Panics(t, func() {
		DebugValidate(failingValidatable{})
	})
}

func recoverError(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err, _ = r.(error)
		}
	}()

	fn()
	return nil
}

// Tracked addresses must be heap addresses, and a value that doesn't escape may live on a
// stack that moves while the test runs
var trackedSink *int64

func TestDebugTrackerLifecycle(t *testing.T) {
	value := new(int64)
	trackedSink = value
	ptr := unsafe.Pointer(value)

	DebugTrackAllocation(ptr)
	require.NoError(t, recoverError(func() { DebugCheckLive(ptr) }))

	DebugMarkReleased(ptr)

	err := recoverError(func() { DebugCheckLive(ptr) })
	require.True(t, cerrors.Is(err, UseAfterReleaseError))

	err = recoverError(func() { DebugMarkReleased(ptr) })
	require.True(t, cerrors.Is(err, DoubleReleaseError))

	DebugTrackAllocation(ptr)
	require.NoError(t, recoverError(func() { DebugCheckLive(ptr) }))
}
