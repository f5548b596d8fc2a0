// Package alias supplies pointer-sized handles to a single heap allocation that may be freely
// aliased without reference counting.
//
// Box is the owning handle: it releases its target when Close is called, and aliases derived
// from it with UnsafeAlias must not be used after that. Ptr is the aliasing handle: it can be
// copied at will, and exactly one copy of each allocation must eventually call UnsafeRelease.
// After the allocation is released every handle to it dangles. Nothing detects that in an
// ordinary build; building with the debug_mem_utils tag makes dereferencing or releasing a
// released allocation panic.
//
// Handles give shared access only. Mutation goes through a value that carries its own interior
// mutability, such as Cell or SyncCell. Those only accept payloads that are Send themselves;
// wrap plain scalars in Value.
//
// Every operation whose soundness depends on caller discipline is prefixed with Unsafe, so the
// call sites that need review can be found with grep.
//
// Handles may cross goroutine boundaries only through Transfer, Share, TransferBox, ShareBox or
// Go. Those functions constrain the contained type with the Sendable and Syncable markers, which
// a type opts into by embedding Send and Sync.
package alias
