package section

import (
	"github.com/arloliu/mscab/endian"
	"github.com/arloliu/mscab/errs"
)

// DataEntry represents the fixed part of CFDATA. The payload follows the
// optional reserve area.
type DataEntry struct {
	Checksum         uint32 // byte offset 0-3
	CompressedSize   uint16 // byte offset 4-5
	UncompressedSize uint16 // byte offset 6-7
	Reserve          []byte
}

// Size returns the encoded size of the entry, excluding the payload.
func (e *DataEntry) Size() int {
	return DataEntrySize + len(e.Reserve)
}

// AppendTo appends the encoded entry to b.
func (e *DataEntry) AppendTo(b []byte) []byte {
	engine := endian.GetLittleEndianEngine()
	b = engine.AppendUint32(b, e.Checksum)
	b = engine.AppendUint16(b, e.CompressedSize)
	b = engine.AppendUint16(b, e.UncompressedSize)

	return append(b, e.Reserve...)
}

// Bytes serializes the data entry.
func (e *DataEntry) Bytes() []byte {
	return e.AppendTo(make([]byte, 0, e.Size()))
}

// Parse parses a data entry followed by reserveSize reserve bytes and
// returns the number of bytes consumed.
func (e *DataEntry) Parse(data []byte, reserveSize int) (int, error) {
	size := DataEntrySize + reserveSize
	if len(data) < size {
		return 0, errs.ErrTruncated
	}

	engine := endian.GetLittleEndianEngine()
	e.Checksum = engine.Uint32(data[0:4])
	e.CompressedSize = engine.Uint16(data[4:6])
	e.UncompressedSize = engine.Uint16(data[6:8])
	e.Reserve = nil
	if reserveSize > 0 {
		e.Reserve = append([]byte(nil), data[8:size]...)
	}

	return size, nil
}
