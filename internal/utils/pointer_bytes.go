package utils

import (
	"unsafe"
)

func PointerToBytes[T any](val *T, length int) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(val)), length)
}

func BytesToPointer[T any](b []byte) *T {
	return (*T)(unsafe.Pointer(unsafe.SliceData(b)))
}

// AlignShift returns how many bytes the start of b must advance to reach
// the given power-of-two alignment.
func AlignShift(b []byte, align int) int {
	addr := int(uintptr(unsafe.Pointer(unsafe.SliceData(b))))

	if rem := addr & (align - 1); rem != 0 {
		return align - rem
	}

	return 0
}
