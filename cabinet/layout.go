package cabinet

import (
	"fmt"
	"math"

	"github.com/arloliu/mscab/compress"
	"github.com/arloliu/mscab/errs"
	"github.com/arloliu/mscab/format"
	"github.com/arloliu/mscab/section"
)

// Layout holds the fully resolved header, folder and file records of a
// single-folder, single-file cabinet.
type Layout struct {
	Header section.Header
	Folder section.FolderEntry
	File   section.FileEntry
}

// DataOffset returns the absolute offset of the first CFDATA entry.
func (l *Layout) DataOffset() int64 {
	return int64(l.Folder.DataOffset)
}

// Planner resolves the offsets and sizes of a cabinet from its data blocks.
type Planner struct {
	// SetID is stored in the header to tie related cabinets together.
	SetID uint16
}

// Plan computes the cabinet layout.
//
// The header is followed directly by the folder entry, the file entry and
// the data blocks, so:
//
//	coffFiles    = 36 + 8
//	dataOffset   = coffFiles + 16 + len(name) + 1
//	cabinetSize  = dataOffset + sum(8 + len(payload))
//
// Parameters:
//   - blocks: Data blocks in folder order
//   - member: Name, timestamp and attributes of the stored file
//   - declaredSize: Uncompressed size of the member
//
// Returns:
//   - Layout: Resolved records
//   - error: ErrInconsistentSize, ErrInvalidMemberName, ErrMemberTooLarge or ErrTooManyDataBlocks
func (p *Planner) Plan(blocks []DataBlock, member Member, declaredSize int64) (Layout, error) {
	if err := section.ValidateName(member.Name); err != nil {
		return Layout{}, err
	}
	if len(blocks) == 0 {
		return Layout{}, fmt.Errorf("%w: folder has no data blocks", errs.ErrInconsistentSize)
	}
	if len(blocks) > MaxDataBlocks {
		return Layout{}, fmt.Errorf("%w: %d blocks", errs.ErrTooManyDataBlocks, len(blocks))
	}
	if declaredSize < 0 || declaredSize > math.MaxUint32 {
		return Layout{}, fmt.Errorf("%w: member size %d", errs.ErrMemberTooLarge, declaredSize)
	}

	var uncompressed, blockBytes int64
	for i := range blocks {
		b := &blocks[i]
		if int(b.CompressedSize) != len(b.Payload) {
			return Layout{}, fmt.Errorf("%w: block %d declares %d payload bytes, has %d",
				errs.ErrInconsistentSize, i, b.CompressedSize, len(b.Payload))
		}
		if b.UncompressedSize > compress.MaxChunkSize {
			return Layout{}, fmt.Errorf("%w: block %d declares %d uncompressed bytes",
				errs.ErrInconsistentSize, i, b.UncompressedSize)
		}
		uncompressed += int64(b.UncompressedSize)
		blockBytes += int64(b.Size())
	}
	if uncompressed != declaredSize {
		return Layout{}, fmt.Errorf("%w: blocks hold %d bytes, member declares %d",
			errs.ErrInconsistentSize, uncompressed, declaredSize)
	}

	header := section.NewHeader(1, 1)
	header.SetID = p.SetID
	folder := section.FolderEntry{
		DataCount:   uint16(len(blocks)), //nolint: gosec
		Compression: format.CompressionMSZIP,
	}
	file := section.NewFileEntry(member.Name, uint32(declaredSize), member.Modified, member.Attributes) //nolint: gosec

	offsetFiles := int64(header.Size() + folder.Size())
	dataOffset := offsetFiles + int64(file.Size())
	total := dataOffset + blockBytes
	if total > math.MaxUint32 {
		return Layout{}, fmt.Errorf("%w: cabinet of %d bytes", errs.ErrMemberTooLarge, total)
	}

	header.OffsetFiles = uint32(offsetFiles) //nolint: gosec
	header.TotalSize = uint32(total)         //nolint: gosec
	folder.DataOffset = uint32(dataOffset)   //nolint: gosec

	return Layout{Header: *header, Folder: folder, File: *file}, nil
}
