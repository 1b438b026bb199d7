// Package checksum implements the per-block checksums stored in cabinet
// CFDATA entries.
//
// Both functions are non-cryptographic accumulators intended for corruption
// detection only.
package checksum

import "github.com/arloliu/mscab/endian"

// Compute XORs data into seed one little-endian 32-bit group at a time.
//
// A trailing group of 1-3 bytes is read as the low bytes of a little-endian
// word (missing high bytes are zero) and XORed in once.
func Compute(seed uint32, data []byte) uint32 {
	engine := endian.GetLittleEndianEngine()
	csum := seed

	n := len(data) &^ 3
	for i := 0; i < n; i += 4 {
		csum ^= engine.Uint32(data[i : i+4])
	}

	var tail uint32
	for i, b := range data[n:] {
		tail |= uint32(b) << (8 * i)
	}

	return csum ^ tail
}

// csum is the vendor accumulation: identical to Compute for whole words, but
// the tail bytes are folded most significant first.
func csum(seed uint32, data []byte) uint32 {
	engine := endian.GetLittleEndianEngine()
	sum := seed

	n := len(data) &^ 3
	for i := 0; i < n; i += 4 {
		sum ^= engine.Uint32(data[i : i+4])
	}

	var tail uint32
	for _, b := range data[n:] {
		tail = tail<<8 | uint32(b)
	}

	return sum ^ tail
}

// Cabinet computes the checksum the way Windows FDI and cabextract verify
// it: the payload is accumulated first, then the CFDATA size fields
// (cbData, cbUncomp) are folded in as one little-endian word.
func Cabinet(payload []byte, compressedSize, uncompressedSize uint16) uint32 {
	var sizes [4]byte
	engine := endian.GetLittleEndianEngine()
	engine.PutUint16(sizes[0:2], compressedSize)
	engine.PutUint16(sizes[2:4], uncompressedSize)

	return csum(csum(0, payload), sizes[:])
}
