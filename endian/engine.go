// Package endian provides the byte order engine used to read and write
// cabinet structures.
//
// The cabinet format is little-endian throughout, so unlike general purpose
// binary formats there is no byte order negotiation: every section obtains
// its engine from GetLittleEndianEngine.
//
//	engine := endian.GetLittleEndianEngine()
//	b = engine.AppendUint32(b, header.TotalSize)
//	size := engine.Uint16(b[4:6])
//
// # Thread Safety
//
// The returned EndianEngine is immutable and stateless.
package endian

import "encoding/binary"

// EndianEngine combines ByteOrder and AppendByteOrder from encoding/binary
// into a single interface.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// PutUint16s writes consecutive 16-bit values starting at b[0].
// It panics if b is shorter than 2*len(vals).
func PutUint16s(engine EndianEngine, b []byte, vals ...uint16) {
	for i, v := range vals {
		engine.PutUint16(b[2*i:], v)
	}
}
