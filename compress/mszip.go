package compress

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/flate"

	"github.com/arloliu/mscab/errs"
	"github.com/arloliu/mscab/internal/pool"
)

const (
	// MaxChunkSize is the largest number of uncompressed bytes in one block.
	MaxChunkSize = 32768
	// MaxBlockSize is the largest MSZIP payload readers accept: one chunk
	// plus the 6144-byte growth allowance of the cabinet format.
	MaxBlockSize = MaxChunkSize + 6144
	// SignatureSize is the length of the "CK" block signature.
	SignatureSize = 2
)

// Signature prefixes every MSZIP block payload.
var Signature = [SignatureSize]byte{'C', 'K'}

// MSZipEncoder compresses folder chunks into MSZIP blocks.
//
// The encoder itself holds only its configuration; all history lives in the
// Window passed to EncodeBlock. It is safe for concurrent use with distinct
// windows.
type MSZipEncoder struct {
	level int
}

var _ BlockEncoder = (*MSZipEncoder)(nil)

// NewMSZipEncoder creates an encoder using the given deflate level.
//
// Parameters:
//   - level: flate.HuffmanOnly, flate.DefaultCompression or 0-9
//
// Returns:
//   - *MSZipEncoder: New encoder
//   - error: ErrInvalidLevel for any other level
func NewMSZipEncoder(level int) (*MSZipEncoder, error) {
	if level < flate.HuffmanOnly || level > flate.BestCompression {
		return nil, fmt.Errorf("%w: %d", errs.ErrInvalidLevel, level)
	}

	return &MSZipEncoder{level: level}, nil
}

// Level returns the deflate level.
func (e *MSZipEncoder) Level() int {
	return e.level
}

// EncodeBlock compresses input into one MSZIP block payload.
//
// The deflate writer is primed with window.Bytes() so the block may refer
// back into earlier blocks of the folder, and it is closed at the end of
// input so the fragment ends byte-aligned. On success window is advanced
// by input.
//
// Parameters:
//   - input: Chunk of at most MaxChunkSize bytes; may be empty
//   - window: Folder history, must not be nil
//
// Returns:
//   - []byte: "CK" followed by the deflate fragment, owned by the caller
//   - error: ErrInputTooLarge or ErrCompressionFailure
func (e *MSZipEncoder) EncodeBlock(input []byte, window *Window) ([]byte, error) {
	if len(input) > MaxChunkSize {
		return nil, fmt.Errorf("%w: %d bytes, limit %d", errs.ErrInputTooLarge, len(input), MaxChunkSize)
	}

	buf := pool.GetBlockBuffer()
	defer pool.PutBlockBuffer(buf)

	buf.MustWrite(Signature[:])

	var (
		fw  *flate.Writer
		err error
	)
	if dict := window.Bytes(); len(dict) > 0 {
		fw, err = flate.NewWriterDict(buf, e.level, dict)
	} else {
		fw, err = flate.NewWriter(buf, e.level)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrCompressionFailure, err)
	}

	if _, err := fw.Write(input); err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrCompressionFailure, err)
	}
	if err := fw.Close(); err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrCompressionFailure, err)
	}

	if buf.Len() > MaxBlockSize {
		return nil, fmt.Errorf("%w: block payload of %d bytes exceeds %d", errs.ErrCompressionFailure, buf.Len(), MaxBlockSize)
	}

	window.Append(input)

	return buf.Clone(), nil
}

// MSZipDecoder replays MSZIP block payloads.
type MSZipDecoder struct{}

var _ BlockDecoder = MSZipDecoder{}

// DecodeBlock inflates one block payload that must produce exactly size bytes.
//
// Parameters:
//   - payload: "CK" followed by a deflate fragment
//   - size: Declared uncompressed size, at most MaxChunkSize
//   - window: Folder history, advanced by the output on success
//
// Returns:
//   - []byte: Uncompressed block contents
//   - error: ErrInvalidBlockSignature, ErrInputTooLarge or ErrCorruptBlock
func (MSZipDecoder) DecodeBlock(payload []byte, size int, window *Window) ([]byte, error) {
	if size < 0 || size > MaxChunkSize {
		return nil, fmt.Errorf("%w: declared %d bytes", errs.ErrInputTooLarge, size)
	}
	if len(payload) < SignatureSize || !bytes.Equal(payload[:SignatureSize], Signature[:]) {
		return nil, errs.ErrInvalidBlockSignature
	}

	fr := flate.NewReaderDict(bytes.NewReader(payload[SignatureSize:]), window.Bytes())
	defer fr.Close()

	out := make([]byte, size)
	if _, err := io.ReadFull(fr, out); err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrCorruptBlock, err)
	}

	var extra [1]byte
	if n, _ := io.ReadFull(fr, extra[:]); n > 0 {
		return nil, fmt.Errorf("%w: inflates past declared size %d", errs.ErrCorruptBlock, size)
	}

	window.Append(out)

	return out, nil
}

// MSZipCodec bundles the encoder and decoder.
type MSZipCodec struct {
	*MSZipEncoder
	MSZipDecoder
}

var _ BlockCodec = (*MSZipCodec)(nil)

// NewMSZipCodec creates a codec whose encoder uses the given deflate level.
func NewMSZipCodec(level int) (*MSZipCodec, error) {
	enc, err := NewMSZipEncoder(level)
	if err != nil {
		return nil, err
	}

	return &MSZipCodec{MSZipEncoder: enc}, nil
}
