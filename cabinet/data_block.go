package cabinet

import (
	"github.com/arloliu/mscab/checksum"
	"github.com/arloliu/mscab/format"
	"github.com/arloliu/mscab/section"
)

// DataBlock is one CFDATA entry of the folder.
type DataBlock struct {
	Checksum         uint32
	CompressedSize   uint16 // len(Payload)
	UncompressedSize uint16 // at most compress.MaxChunkSize
	Payload          []byte // "CK" + deflate fragment
}

// Entry returns the CFDATA header of the block.
func (b *DataBlock) Entry() section.DataEntry {
	return section.DataEntry{
		Checksum:         b.Checksum,
		CompressedSize:   b.CompressedSize,
		UncompressedSize: b.UncompressedSize,
	}
}

// Size returns the encoded size of the block without reserve bytes.
func (b *DataBlock) Size() int {
	return section.DataEntrySize + len(b.Payload)
}

// blockChecksum computes the value stored in the checksum field of a block.
func blockChecksum(mode format.ChecksumMode, payload []byte, compressedSize, uncompressedSize uint16) uint32 {
	switch mode {
	case format.ChecksumCabinet:
		return checksum.Cabinet(payload, compressedSize, uncompressedSize)
	case format.ChecksumNone:
		return 0
	default:
		return checksum.Compute(0, payload)
	}
}
