// Package trailer packs a fixed-size header value and a variable-length
// byte buffer into one contiguous allocation, so that a record with a
// typed metadata block and an attached payload needs a single allocation
// and a single free.
package trailer

import (
	"io"
	"math"
	"unsafe"

	"github.com/memtail/trailer/internal/utils"
)

// Trailer owns a single block of Sizeof(T)+capacity bytes, aligned to T's
// alignment. The first Sizeof(T) bytes hold a live value of type T, the
// remaining bytes are an opaque buffer. The capacity is fixed at creation.
// A trailer must be passed around by pointer and never copied.
type Trailer[T any] struct {
	data     []byte
	alloc    Allocator
	headSize int
}

// Initialize a new trailer whose header is the zero value of T and whose
// buffer is `capacity` zero bytes. An allocator may be provided; the heap
// allocator is used otherwise. The provided type (`T`) MUST NOT contain
// any pointer nor slice.
func New[T any](capacity int, alloc ...Allocator) (t *Trailer[T], err error) {
	// A zeroed block already holds the zero value of T.
	return allocate[T](capacity, alloc)
}

// Initialize a new trailer with the header copied from val. The buffer is
// `capacity` zero bytes, as with New.
func From[T any](val T, capacity int, alloc ...Allocator) (t *Trailer[T], err error) {
	if t, err = allocate[T](capacity, alloc); err != nil {
		return
	}

	copy(t.data[:t.headSize], utils.PointerToBytes(&val, t.headSize))
	return
}

func allocate[T any](capacity int, alloc []Allocator) (t *Trailer[T], err error) {
	if capacity < 0 {
		return nil, ErrInvalidCapacity
	}

	var head T

	t = &Trailer[T]{
		alloc:    HeapAllocator{},
		headSize: int(unsafe.Sizeof(head)),
	}

	if alloc != nil {
		t.alloc = alloc[0]
	}

	if capacity > math.MaxInt-t.headSize {
		return nil, ErrCapacityOverflow
	}

	size := t.headSize + capacity

	if size == 0 {
		return nil, ErrZeroSize
	}

	if t.data, err = t.alloc.Allocate(size, int(unsafe.Alignof(head))); err != nil {
		return nil, err
	}

	return
}

// Head returns a pointer to the header value, valid until Close.
func (t *Trailer[T]) Head() *T {
	return utils.BytesToPointer[T](t.data)
}

// Bytes returns a view of the buffer. The returned slice must be treated
// as read-only and must not be retained past Close.
func (t *Trailer[T]) Bytes() []byte {
	return t.data[t.headSize:]
}

// BytesMut returns a writable view of the buffer. Writes through it never
// touch the header region. It must not be retained past Close.
func (t *Trailer[T]) BytesMut() []byte {
	return t.data[t.headSize:]
}

// Raw returns the whole block, header bytes included.
func (t *Trailer[T]) Raw() []byte {
	return t.data
}

func (t *Trailer[T]) Size() int {
	return len(t.data)
}

func (t *Trailer[T]) Cap() int {
	return len(t.data) - t.headSize
}

func (t *Trailer[T]) HeadSize() int {
	return t.headSize
}

// Close finalizes the header and releases the whole block in one
// deallocation. If *T implements io.Closer, its Close runs first, exactly
// once; the block is released even if it fails. Further calls return
// ErrClosed. Any use of the trailer or of views obtained from it after
// Close is invalid.
func (t *Trailer[T]) Close() (err error) {
	if t.data == nil {
		return ErrClosed
	}

	if c, ok := any(t.Head()).(io.Closer); ok {
		err = c.Close()
	}

	t.alloc.Free(t.data)
	t.data = nil

	return
}
