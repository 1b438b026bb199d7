// Package errs defines the sentinel errors returned by mscab packages.
//
// Errors are wrapped with context as they travel up the stack, so callers
// should match them with errors.Is rather than by equality.
package errs

import "errors"

// Build errors. All of them are fatal to the current build.
var (
	// ErrInputTooLarge is returned when a chunk handed to the MSZIP block
	// encoder exceeds the 32768-byte block bound.
	ErrInputTooLarge = errors.New("mscab: input chunk exceeds block size limit")
	// ErrCompressionFailure is returned when the deflate primitive fails or
	// produces a block that cannot be framed.
	ErrCompressionFailure = errors.New("mscab: compression failure")
	// ErrInconsistentSize is returned when the declared member size does not
	// match the sum of the data block sizes.
	ErrInconsistentSize = errors.New("mscab: inconsistent member size")
	// ErrInvalidMemberName is returned for empty, overlong or NUL-containing names.
	ErrInvalidMemberName = errors.New("mscab: invalid member name")
	// ErrMemberTooLarge is returned when the member or cabinet overflows a 32-bit size field.
	ErrMemberTooLarge = errors.New("mscab: member too large for a cabinet")
	// ErrTooManyDataBlocks is returned when a folder would need more than 65535 data blocks.
	ErrTooManyDataBlocks = errors.New("mscab: too many data blocks in folder")
)

// Configuration errors.
var (
	ErrInvalidLevel        = errors.New("mscab: invalid compression level")
	ErrInvalidChecksumMode = errors.New("mscab: invalid checksum mode")
)

// Reader errors.
var (
	ErrInvalidHeaderSize      = errors.New("mscab: invalid header size")
	ErrInvalidSignature       = errors.New("mscab: not a cabinet file")
	ErrInvalidBlockSignature  = errors.New("mscab: invalid MSZIP block signature")
	ErrUnsupportedCabinet     = errors.New("mscab: unsupported cabinet layout")
	ErrUnsupportedCompression = errors.New("mscab: unsupported compression type")
	ErrChecksumMismatch       = errors.New("mscab: data block checksum mismatch")
	ErrTruncated              = errors.New("mscab: truncated cabinet")
)

// ErrCorruptBlock is returned when an MSZIP block does not inflate to its
// declared size.
var ErrCorruptBlock = errors.New("mscab: corrupt MSZIP block")

// ErrMemberNotFound is returned when a cabinet holds no member of the requested name.
var ErrMemberNotFound = errors.New("mscab: member not found")
