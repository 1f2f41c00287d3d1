package bitmap

import "unsafe"

// asBytes views a word slice as raw bytes for Wrap tests.
func asBytes(words []uint64) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(words))), len(words)*wordBytes)
}
