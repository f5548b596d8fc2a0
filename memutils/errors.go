package memutils

import "github.com/pkg/errors"

// NilAddressError is the error carried by the panic raised when a checked constructor receives a nil address
var NilAddressError error = errors.New("address must not be nil")

// UseAfterReleaseError is the error carried by the panic raised in debug builds when a released allocation
// is dereferenced
var UseAfterReleaseError error = errors.New("allocation was dereferenced after it was released")

// DoubleReleaseError is the error carried by the panic raised in debug builds when an allocation is released
// a second time
var DoubleReleaseError error = errors.New("allocation was released more than once")

// StaleHandleError is returned from checked containers when a handle refers to a slot that has since been
// freed or reused
var StaleHandleError error = errors.New("handle refers to a released allocation")
