// Package mscab writes Microsoft Cabinet (.cab) archives holding a single
// MSZIP-compressed member, without any native Windows component.
//
// The cabinets produced have one folder and one file. The input is cut into
// data blocks of at most 32768 bytes that are deflated in order with a
// history window carried across block boundaries, the way the MSZIP method
// requires. Every size, offset and checksum is resolved before the first
// byte is written, so the output can go to any io.Writer, including pipes.
//
// # Basic Usage
//
// Building a cabinet from a file:
//
//	src, _ := os.Open("setup.inf")
//	defer src.Close()
//	info, _ := src.Stat()
//
//	var out bytes.Buffer
//	result, err := mscab.MakeCabinet(&out, src, mscab.NewMember("setup.inf", info.ModTime()))
//
// Building from memory with the defaults used by the makecab command:
//
//	data, err := mscab.MakeCabinetBytes(content, mscab.NewMember("hello.txt", time.Now()),
//	    mscab.DefaultOptions()...)
//
// Reading it back:
//
//	cab, _ := mscab.Open(data)
//	content, _ := cab.Extract()
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the cabinet
// package. For direct access to the build phases (sequencing, layout
// planning, serialization) use the cabinet package.
package mscab

import (
	"io"
	"time"

	"github.com/arloliu/mscab/cabinet"
	"github.com/arloliu/mscab/format"
	"github.com/arloliu/mscab/internal/hash"
)

// DefaultOptions returns the builder options that give the widest reader
// compatibility: vendor CSUM checksums and a set id derived from the input.
func DefaultOptions() []cabinet.BuilderOption {
	return []cabinet.BuilderOption{
		cabinet.WithChecksumMode(format.ChecksumCabinet),
		cabinet.WithDerivedSetID(),
	}
}

// NewMember returns member metadata with the archive attribute set.
func NewMember(name string, modified time.Time) cabinet.Member {
	return cabinet.NewMember(name, modified)
}

// NewBuilder creates a reusable cabinet builder.
//
// Available options:
//   - cabinet.WithCompressionLevel(-2..9)
//   - cabinet.WithChecksumMode(format.ChecksumPayload|ChecksumCabinet|ChecksumNone)
//   - cabinet.WithSetID(id) / cabinet.WithDerivedSetID()
//   - cabinet.WithLogger(logger)
func NewBuilder(opts ...cabinet.BuilderOption) (*cabinet.Builder, error) {
	return cabinet.NewBuilder(opts...)
}

// MakeCabinet reads src to the end and writes a cabinet holding it as
// member to dst.
//
// Parameters:
//   - dst: Destination of the cabinet bytes
//   - src: Member content
//   - member: Name, timestamp and attributes of the stored file
//   - opts: Builder options
//
// Returns:
//   - *cabinet.Result: Layout, block count and compression statistics
//   - error: Configuration, build or I/O error
//
// Example:
//
//	result, err := mscab.MakeCabinet(w, r, mscab.NewMember("app.exe", modTime),
//	    cabinet.WithCompressionLevel(9))
func MakeCabinet(dst io.Writer, src io.Reader, member cabinet.Member, opts ...cabinet.BuilderOption) (*cabinet.Result, error) {
	builder, err := cabinet.NewBuilder(opts...)
	if err != nil {
		return nil, err
	}

	return builder.Build(dst, src, member)
}

// MakeCabinetBytes returns a cabinet holding content as member.
func MakeCabinetBytes(content []byte, member cabinet.Member, opts ...cabinet.BuilderOption) ([]byte, error) {
	builder, err := cabinet.NewBuilder(opts...)
	if err != nil {
		return nil, err
	}

	data, _, err := builder.BuildBytes(content, member)

	return data, err
}

// Open parses a cabinet held in memory.
func Open(data []byte) (*cabinet.Cabinet, error) {
	return cabinet.Open(data)
}

// SetID returns the set id cabinet.WithDerivedSetID stores for a member
// name and content.
func SetID(name string, content []byte) uint16 {
	return hash.SetID(name, content)
}
