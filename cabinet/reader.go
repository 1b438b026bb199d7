package cabinet

import (
	"fmt"

	"github.com/arloliu/mscab/compress"
	"github.com/arloliu/mscab/errs"
	"github.com/arloliu/mscab/format"
	"github.com/arloliu/mscab/section"
)

// Cabinet is a parsed cabinet held in memory.
//
// Block payloads alias the buffer passed to Open, which must not be
// modified while the Cabinet is in use.
type Cabinet struct {
	Header  section.Header
	Folders []section.FolderEntry
	Files   []section.FileEntry

	// blocks holds the data blocks of each folder, indexed like Folders.
	blocks [][]DataBlock
}

// Open parses a complete cabinet.
//
// Returns:
//   - *Cabinet: Parsed cabinet
//   - error: ErrInvalidHeaderSize, ErrInvalidSignature, ErrTruncated or
//     ErrUnsupportedCabinet for cabinets that belong to a split set
func Open(data []byte) (*Cabinet, error) {
	cab := &Cabinet{}

	offset, err := cab.Header.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse cabinet header: %w", err)
	}
	if cab.Header.VersionMajor != section.VersionMajor {
		return nil, fmt.Errorf("%w: version %d.%d", errs.ErrUnsupportedCabinet,
			cab.Header.VersionMajor, cab.Header.VersionMinor)
	}
	if cab.Header.Flags.Has(format.FlagPrevCabinet) || cab.Header.Flags.Has(format.FlagNextCabinet) {
		return nil, fmt.Errorf("%w: split cabinet", errs.ErrUnsupportedCabinet)
	}
	if int(cab.Header.TotalSize) < offset {
		return nil, fmt.Errorf("%w: header declares %d bytes", errs.ErrInvalidHeaderSize, cab.Header.TotalSize)
	}
	if int64(cab.Header.TotalSize) > int64(len(data)) {
		return nil, fmt.Errorf("%w: header declares %d bytes, have %d", errs.ErrTruncated, cab.Header.TotalSize, len(data))
	}
	data = data[:cab.Header.TotalSize]

	cab.Folders = make([]section.FolderEntry, cab.Header.NumFolders)
	for i := range cab.Folders {
		n, err := cab.Folders[i].Parse(data[offset:], int(cab.Header.FolderReserve))
		if err != nil {
			return nil, fmt.Errorf("failed to parse folder %d: %w", i, err)
		}
		offset += n
	}

	offset = int(cab.Header.OffsetFiles)
	cab.Files = make([]section.FileEntry, cab.Header.NumFiles)
	for i := range cab.Files {
		if offset > len(data) {
			return nil, fmt.Errorf("failed to parse file %d: %w", i, errs.ErrTruncated)
		}
		n, err := cab.Files[i].Parse(data[offset:])
		if err != nil {
			return nil, fmt.Errorf("failed to parse file %d: %w", i, err)
		}
		offset += n
	}

	cab.blocks = make([][]DataBlock, len(cab.Folders))
	for i := range cab.Folders {
		blocks, err := parseBlocks(data, &cab.Folders[i], int(cab.Header.DataReserve))
		if err != nil {
			return nil, fmt.Errorf("failed to parse data blocks of folder %d: %w", i, err)
		}
		cab.blocks[i] = blocks
	}

	return cab, nil
}

func parseBlocks(data []byte, folder *section.FolderEntry, reserveSize int) ([]DataBlock, error) {
	offset := int(folder.DataOffset)
	blocks := make([]DataBlock, folder.DataCount)

	for i := range blocks {
		if offset > len(data) {
			return nil, errs.ErrTruncated
		}

		var entry section.DataEntry
		n, err := entry.Parse(data[offset:], reserveSize)
		if err != nil {
			return nil, err
		}
		offset += n

		end := offset + int(entry.CompressedSize)
		if end > len(data) {
			return nil, fmt.Errorf("%w: block %d payload", errs.ErrTruncated, i)
		}

		blocks[i] = DataBlock{
			Checksum:         entry.Checksum,
			CompressedSize:   entry.CompressedSize,
			UncompressedSize: entry.UncompressedSize,
			Payload:          data[offset:end:end],
		}
		offset = end
	}

	return blocks, nil
}

// Blocks returns the data blocks of folder index.
func (c *Cabinet) Blocks(index int) []DataBlock {
	if index < 0 || index >= len(c.blocks) {
		return nil
	}

	return c.blocks[index]
}

// VerifyChecksums checks the stored checksum of every data block against
// mode. Blocks storing zero carry no checksum and are skipped, as is every
// block when mode is format.ChecksumNone.
func (c *Cabinet) VerifyChecksums(mode format.ChecksumMode) error {
	if mode == format.ChecksumNone {
		return nil
	}

	for fi, blocks := range c.blocks {
		for bi := range blocks {
			b := &blocks[bi]
			if b.Checksum == 0 {
				continue
			}

			want := blockChecksum(mode, b.Payload, b.CompressedSize, b.UncompressedSize)
			if b.Checksum != want {
				return fmt.Errorf("%w: folder %d block %d stores %#08x, %s checksum is %#08x",
					errs.ErrChecksumMismatch, fi, bi, b.Checksum, mode, want)
			}
		}
	}

	return nil
}

// ExtractFolder returns the uncompressed contents of folder index.
func (c *Cabinet) ExtractFolder(index int) ([]byte, error) {
	if index < 0 || index >= len(c.Folders) {
		return nil, fmt.Errorf("%w: no folder %d", errs.ErrUnsupportedCabinet, index)
	}

	blocks := c.blocks[index]
	size := 0
	for i := range blocks {
		size += int(blocks[i].UncompressedSize)
	}
	out := make([]byte, 0, size)

	switch ct := c.Folders[index].Compression; ct.Method() {
	case format.CompressionNone:
		for i := range blocks {
			if blocks[i].CompressedSize != blocks[i].UncompressedSize {
				return nil, fmt.Errorf("%w: stored block %d size mismatch", errs.ErrCorruptBlock, i)
			}
			out = append(out, blocks[i].Payload...)
		}
	default:
		decoder, err := compress.GetBlockDecoder(ct)
		if err != nil {
			return nil, err
		}

		window := compress.NewWindow()
		for i := range blocks {
			chunk, err := decoder.DecodeBlock(blocks[i].Payload, int(blocks[i].UncompressedSize), window)
			if err != nil {
				return nil, fmt.Errorf("failed to decode block %d of folder %d: %w", i, index, err)
			}
			out = append(out, chunk...)
		}
	}

	return out, nil
}

// ReadFile returns the contents of the member called name.
func (c *Cabinet) ReadFile(name string) ([]byte, error) {
	for i := range c.Files {
		if c.Files[i].Name == name {
			return c.readFile(&c.Files[i])
		}
	}

	return nil, fmt.Errorf("%w: %q", errs.ErrMemberNotFound, name)
}

// Extract returns the contents of the first member, which for cabinets
// written by Builder is the only one.
func (c *Cabinet) Extract() ([]byte, error) {
	if len(c.Files) == 0 {
		return nil, fmt.Errorf("%w: cabinet is empty", errs.ErrMemberNotFound)
	}

	return c.readFile(&c.Files[0])
}

func (c *Cabinet) readFile(file *section.FileEntry) ([]byte, error) {
	folder, err := c.ExtractFolder(int(file.FolderIndex))
	if err != nil {
		return nil, err
	}

	start := int64(file.FolderOffset)
	end := start + int64(file.UncompressedSize)
	if end > int64(len(folder)) {
		return nil, fmt.Errorf("%w: %q ends at %d, folder holds %d bytes", errs.ErrTruncated, file.Name, end, len(folder))
	}

	return folder[start:end], nil
}
