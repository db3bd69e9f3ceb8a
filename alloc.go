package trailer

import (
	"os"

	"github.com/edsrzf/mmap-go"
	"github.com/memtail/trailer/internal/utils"
	"github.com/pkg/errors"
)

// Allocator provides the backing block of a trailer. Allocate returns a
// zeroed slice of exactly `size` bytes whose first byte is aligned to
// `align` (a power of two). Free releases a block obtained from Allocate
// and must be called at most once per block.
type Allocator interface {
	Allocate(size, align int) ([]byte, error)
	Free(b []byte)
}

// HeapAllocator allocates on the Go heap, over-allocating and shifting to
// reach the requested alignment. Free is a no-op; the garbage collector
// reclaims the block once unreferenced.
type HeapAllocator struct{}

func (HeapAllocator) Allocate(size, align int) ([]byte, error) {
	buf := make([]byte, size+align)

	if shift := utils.AlignShift(buf, align); shift != 0 {
		return buf[shift : size+shift : size+shift], nil
	}

	return buf[:size:size], nil
}

func (HeapAllocator) Free(b []byte) {}

// MmapAllocator backs trailers with anonymous page-aligned mappings
// outside the Go heap. Free unmaps the block, so releasing a trailer is a
// single munmap.
type MmapAllocator struct{}

func (MmapAllocator) Allocate(size, align int) ([]byte, error) {
	if pageSize := os.Getpagesize(); align > pageSize {
		return nil, errors.Errorf("alignment %d exceeds page size %d", align, pageSize)
	}

	m, err := mmap.MapRegion(nil, size, mmap.RDWR, mmap.ANON, 0)

	if err != nil {
		return nil, errors.Wrap(err, "anonymous mapping failed")
	}

	return m, nil
}

func (MmapAllocator) Free(b []byte) {
	m := mmap.MMap(b)
	_ = m.Unmap()
}
