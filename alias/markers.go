package alias

// Send marks a type as safe to hand to another goroutine. Embed it in a struct to opt in.
type Send struct{}

func (Send) SendMarker() {}

// Sync marks a type as safe to read from several goroutines at once. Embed it in a struct to opt in.
type Sync struct{}

func (Sync) SyncMarker() {}

type Sendable interface {
	SendMarker()
}

type Syncable interface {
	SyncMarker()
}

type SendSyncable interface {
	Sendable
	Syncable
}

// Transfer is the checkpoint for moving a Ptr to another goroutine. It requires Sync as well as
// Send: the copies left behind can still read the allocation, and a transferred copy must not be
// the one that releases it unless the caller has stopped every other reader.
func Transfer[T SendSyncable](p Ptr[T]) Ptr[T] {
	return p
}

// Share is the checkpoint for dereferencing copies of a Ptr from several goroutines at once
func Share[T SendSyncable](p Ptr[T]) Ptr[T] {
	return p
}

// TransferBox moves ownership of a Box's allocation into a new Box that can be handed to another
// goroutine. T must be Sync too, because aliases of the old Box may still be read on this goroutine.
// The source Box is left empty.
func TransferBox[T SendSyncable](b *Box[T]) Box[T] {
	return Box[T]{target: b.take()}
}

// ShareBox is the checkpoint for reading a Box from several goroutines at once
func ShareBox[T Syncable](b *Box[T]) *Box[T] {
	return b
}

// Go runs fn on a new goroutine with a transferred copy of p
func Go[T SendSyncable](p Ptr[T], fn func(p Ptr[T])) {
	sent := Transfer(p)
	go fn(sent)
}
