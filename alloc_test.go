package trailer

import (
	"os"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

func TestHeapAllocator(t *testing.T) {
	var a HeapAllocator

	for _, align := range []int{1, 2, 8, 64, 512} {
		b, err := a.Allocate(4096, align)
		require.NoError(t, err)
		require.Len(t, b, 4096)

		addr := uintptr(unsafe.Pointer(&b[0]))
		require.Zero(t, addr%uintptr(align), "alignment %d", align)
		require.Equal(t, make([]byte, 4096), b)
	}
}

func TestMmapAllocator(t *testing.T) {
	var a MmapAllocator

	b, err := a.Allocate(4096, 8)
	require.NoError(t, err)
	require.Len(t, b, 4096)

	addr := uintptr(unsafe.Pointer(&b[0]))
	require.Zero(t, addr%uintptr(os.Getpagesize()))
	require.Equal(t, make([]byte, 4096), b)

	a.Free(b)

	_, err = a.Allocate(16, os.Getpagesize()*2)
	require.Error(t, err)
}
