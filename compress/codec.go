package compress

import (
	"fmt"

	"github.com/klauspost/compress/flate"

	"github.com/arloliu/mscab/errs"
	"github.com/arloliu/mscab/format"
)

// BlockEncoder compresses one bounded chunk into one folder data block.
//
// The window holds the folder history before the call and is advanced by
// the chunk on success. Implementations must not retain the window.
type BlockEncoder interface {
	EncodeBlock(input []byte, window *Window) ([]byte, error)
}

// BlockDecoder replays one folder data block.
//
// size is the declared uncompressed size of the block. The window is
// advanced by the produced bytes on success.
type BlockDecoder interface {
	DecodeBlock(payload []byte, size int, window *Window) ([]byte, error)
}

// BlockCodec combines both directions.
type BlockCodec interface {
	BlockEncoder
	BlockDecoder
}

// CompressionStats summarizes the compression of one folder.
type CompressionStats struct {
	// Algorithm identifies the compression algorithm used
	Algorithm format.CompressionType

	// Blocks is the number of data blocks produced
	Blocks int

	// OriginalSize is the size of input data before compression
	OriginalSize int64

	// CompressedSize is the total size of all block payloads
	CompressedSize int64

	// CompressionTimeNs is the time spent compressing all blocks
	CompressionTimeNs int64
}

// CompressionRatio returns the compression ratio (compressed size / original size).
//
// Values less than 1.0 indicate successful compression.
// Returns 0.0 if the original size is zero.
func (s CompressionStats) CompressionRatio() float64 {
	if s.OriginalSize == 0 {
		return 0.0
	}

	return float64(s.CompressedSize) / float64(s.OriginalSize)
}

// SpaceSavings returns the space savings as a percentage.
// It is negative when the framing outweighs the compression gain.
func (s CompressionStats) SpaceSavings() float64 {
	return (1.0 - s.CompressionRatio()) * 100.0
}

// CreateBlockCodec is a factory function that creates a BlockCodec for the
// given folder compression type.
//
// Parameters:
//   - compressionType: Folder compression type; only MSZIP is supported
//   - level: Deflate level passed to the MSZIP encoder
//
// Returns:
//   - BlockCodec: Codec instance for the specified type
//   - error: ErrUnsupportedCompression or ErrInvalidLevel
func CreateBlockCodec(compressionType format.CompressionType, level int) (BlockCodec, error) {
	switch compressionType.Method() {
	case format.CompressionMSZIP:
		codec, err := NewMSZipCodec(level)
		if err != nil {
			return nil, err
		}

		return codec, nil
	default:
		return nil, fmt.Errorf("%w: %s", errs.ErrUnsupportedCompression, compressionType)
	}
}

// GetBlockDecoder returns a decoder for the given folder compression type.
func GetBlockDecoder(compressionType format.CompressionType) (BlockDecoder, error) {
	return CreateBlockCodec(compressionType, flate.DefaultCompression)
}
