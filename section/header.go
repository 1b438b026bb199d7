package section

import (
	"fmt"

	"github.com/arloliu/mscab/endian"
	"github.com/arloliu/mscab/errs"
	"github.com/arloliu/mscab/format"
)

// Header represents CFHEADER together with the optional CFRESERVE fields.
//
// The reserve fields are only encoded when Flags carries
// format.FlagReservePresent.
type Header struct {
	Reserved1    uint32 // byte offset 4-7
	TotalSize    uint32 // byte offset 8-11
	Reserved2    uint32 // byte offset 12-15
	OffsetFiles  uint32 // byte offset 16-19
	Reserved3    uint32 // byte offset 20-23
	VersionMinor uint8  // byte offset 24
	VersionMajor uint8  // byte offset 25
	NumFolders   uint16 // byte offset 26-27
	NumFiles     uint16 // byte offset 28-29
	Flags        format.CabinetFlag
	SetID        uint16
	CabNumber    uint16

	// FolderReserve and DataReserve are the per-entry reserve sizes of
	// CFFOLDER and CFDATA.
	FolderReserve uint8
	DataReserve   uint8
	// ReserveData is the per-cabinet reserve area; its length is cbCFHeader.
	ReserveData []byte
}

// NewHeader creates a header for a cabinet with the given folder and file
// counts. Sizes and offsets are filled in by the layout planner.
func NewHeader(numFolders, numFiles uint16) *Header {
	return &Header{
		VersionMinor: VersionMinor,
		VersionMajor: VersionMajor,
		NumFolders:   numFolders,
		NumFiles:     numFiles,
	}
}

// HasReserve reports whether the reserve fields are present.
func (h *Header) HasReserve() bool {
	return h.Flags.Has(format.FlagReservePresent)
}

// Size returns the encoded size of the header including reserve fields.
func (h *Header) Size() int {
	if !h.HasReserve() {
		return HeaderSize
	}

	return HeaderSize + ReserveHeaderSize + len(h.ReserveData)
}

// Bytes serializes the header.
func (h *Header) Bytes() []byte {
	b := make([]byte, h.Size())
	engine := endian.GetLittleEndianEngine()

	engine.PutUint32(b[0:4], Magic)
	engine.PutUint32(b[4:8], h.Reserved1)
	engine.PutUint32(b[8:12], h.TotalSize)
	engine.PutUint32(b[12:16], h.Reserved2)
	engine.PutUint32(b[16:20], h.OffsetFiles)
	engine.PutUint32(b[20:24], h.Reserved3)
	b[24] = h.VersionMinor
	b[25] = h.VersionMajor
	endian.PutUint16s(engine, b[26:36], h.NumFolders, h.NumFiles, uint16(h.Flags), h.SetID, h.CabNumber)

	if h.HasReserve() {
		engine.PutUint16(b[36:38], uint16(len(h.ReserveData))) //nolint: gosec
		b[38] = h.FolderReserve
		b[39] = h.DataReserve
		copy(b[40:], h.ReserveData)
	}

	return b
}

// Parse parses the header from the start of data and returns the number of
// bytes consumed.
//
// Returns:
//   - int: Bytes consumed (HeaderSize, plus reserve fields when present)
//   - error: ErrInvalidHeaderSize, ErrInvalidSignature or ErrTruncated
func (h *Header) Parse(data []byte) (int, error) {
	if len(data) < HeaderSize {
		return 0, errs.ErrInvalidHeaderSize
	}

	engine := endian.GetLittleEndianEngine()
	if engine.Uint32(data[0:4]) != Magic {
		return 0, errs.ErrInvalidSignature
	}

	h.Reserved1 = engine.Uint32(data[4:8])
	h.TotalSize = engine.Uint32(data[8:12])
	h.Reserved2 = engine.Uint32(data[12:16])
	h.OffsetFiles = engine.Uint32(data[16:20])
	h.Reserved3 = engine.Uint32(data[20:24])
	h.VersionMinor = data[24]
	h.VersionMajor = data[25]
	h.NumFolders = engine.Uint16(data[26:28])
	h.NumFiles = engine.Uint16(data[28:30])
	h.Flags = format.CabinetFlag(engine.Uint16(data[30:32]))
	h.SetID = engine.Uint16(data[32:34])
	h.CabNumber = engine.Uint16(data[34:36])
	h.FolderReserve, h.DataReserve, h.ReserveData = 0, 0, nil

	if !h.HasReserve() {
		return HeaderSize, nil
	}

	if len(data) < HeaderSize+ReserveHeaderSize {
		return 0, fmt.Errorf("%w: reserve header", errs.ErrTruncated)
	}
	cbHeader := int(engine.Uint16(data[36:38]))
	if cbHeader > MaxHeaderReserve {
		return 0, fmt.Errorf("%w: header reserve of %d bytes", errs.ErrUnsupportedCabinet, cbHeader)
	}
	h.FolderReserve = data[38]
	h.DataReserve = data[39]

	end := HeaderSize + ReserveHeaderSize + cbHeader
	if len(data) < end {
		return 0, fmt.Errorf("%w: header reserve data", errs.ErrTruncated)
	}
	h.ReserveData = append([]byte(nil), data[HeaderSize+ReserveHeaderSize:end]...)

	return end, nil
}
