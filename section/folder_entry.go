package section

import (
	"github.com/arloliu/mscab/endian"
	"github.com/arloliu/mscab/errs"
	"github.com/arloliu/mscab/format"
)

// FolderEntry represents CFFOLDER.
type FolderEntry struct {
	// DataOffset is the absolute offset of the folder's first CFDATA.
	//
	// Offset: 0, Size: 4 bytes
	DataOffset uint32
	// DataCount is the number of CFDATA blocks in the folder.
	//
	// Offset: 4, Size: 2 bytes
	DataCount uint16
	// Compression is the folder's compression type.
	//
	// Offset: 6, Size: 2 bytes
	Compression format.CompressionType
	// Reserve is the per-folder reserve area (cbCFFolder bytes).
	Reserve []byte
}

// Size returns the encoded size of the entry.
func (e *FolderEntry) Size() int {
	return FolderEntrySize + len(e.Reserve)
}

// Bytes serializes the folder entry.
func (e *FolderEntry) Bytes() []byte {
	b := make([]byte, e.Size())
	engine := endian.GetLittleEndianEngine()

	engine.PutUint32(b[0:4], e.DataOffset)
	engine.PutUint16(b[4:6], e.DataCount)
	engine.PutUint16(b[6:8], uint16(e.Compression))
	copy(b[8:], e.Reserve)

	return b
}

// Parse parses a folder entry followed by reserveSize reserve bytes and
// returns the number of bytes consumed.
func (e *FolderEntry) Parse(data []byte, reserveSize int) (int, error) {
	size := FolderEntrySize + reserveSize
	if len(data) < size {
		return 0, errs.ErrTruncated
	}

	engine := endian.GetLittleEndianEngine()
	e.DataOffset = engine.Uint32(data[0:4])
	e.DataCount = engine.Uint16(data[4:6])
	e.Compression = format.CompressionType(engine.Uint16(data[6:8]))
	e.Reserve = nil
	if reserveSize > 0 {
		e.Reserve = append([]byte(nil), data[8:size]...)
	}

	return size, nil
}
