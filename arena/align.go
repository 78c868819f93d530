package arena

import "unsafe"

const (
	// CacheLineSize is a common cache line size, typically 64 bytes.
	// Adjust if targeting specific architectures with different cache line sizes.
	CacheLineSize = 64
)

// AlignUp rounds n up to the nearest multiple of align. align must be a
// power of two.
func AlignUp(n, align int) int {
	return (n + align - 1) &^ (align - 1)
}

// AlignedBytes allocates a byte slice whose backing array starts on a
// cache line boundary. Returns nil for size zero.
func AlignedBytes(size int) []byte {
	if size == 0 {
		return nil
	}
	// Over-allocate by up to one cache line, then slice from the first
	// aligned byte.
	buf := make([]byte, size+CacheLineSize-1)
	ptr := uintptr(unsafe.Pointer(&buf[0]))
	offset := uintptr(0)
	if mod := ptr % CacheLineSize; mod != 0 {
		offset = CacheLineSize - mod
	}
	return buf[offset : offset+uintptr(size)]
}
