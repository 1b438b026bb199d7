package cabinet

import (
	"fmt"
	"io"
	"time"

	"github.com/arloliu/mscab/compress"
	"github.com/arloliu/mscab/format"
	"github.com/arloliu/mscab/internal/hash"
	"github.com/arloliu/mscab/internal/options"
	"github.com/arloliu/mscab/internal/pool"
)

// Result describes a finished build.
type Result struct {
	Layout       Layout
	Blocks       int
	Stats        compress.CompressionStats
	BytesWritten int64
}

// Builder assembles single-member MSZIP cabinets.
//
// Note: A Builder is NOT thread-safe, but it is reusable: each build creates
// its own compression window.
type Builder struct {
	*BuilderConfig

	encoder *compress.MSZipEncoder
}

// NewBuilder creates a builder with the given options.
func NewBuilder(opts ...BuilderOption) (*Builder, error) {
	config := NewBuilderConfig()
	if err := options.Apply(config, opts...); err != nil {
		return nil, err
	}

	encoder, err := compress.NewMSZipEncoder(config.level)
	if err != nil {
		return nil, err
	}

	return &Builder{BuilderConfig: config, encoder: encoder}, nil
}

// Build reads src to the end and writes a cabinet holding it as member to dst.
func (b *Builder) Build(dst io.Writer, src io.Reader, member Member) (*Result, error) {
	input, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}

	return b.BuildTo(dst, input, member)
}

// BuildBytes returns the cabinet holding input as member.
func (b *Builder) BuildBytes(input []byte, member Member) ([]byte, *Result, error) {
	buf := pool.GetCabinetBuffer()
	defer pool.PutCabinetBuffer(buf)

	result, err := b.BuildTo(buf, input, member)
	if err != nil {
		return nil, nil, err
	}

	return buf.Clone(), result, nil
}

// BuildTo writes a cabinet holding input as member to dst.
//
// The three phases run to completion in order; nothing is written to dst
// unless sequencing and planning succeed.
func (b *Builder) BuildTo(dst io.Writer, input []byte, member Member) (*Result, error) {
	log := b.logger.With().Str("member", member.Name).Logger()

	start := time.Now()
	blocks, err := NewSequencer(b.encoder, b.checksumMode).Sequence(input)
	if err != nil {
		return nil, err
	}
	elapsed := time.Since(start)

	stats := compress.CompressionStats{
		Algorithm:         format.CompressionMSZIP,
		Blocks:            len(blocks),
		OriginalSize:      int64(len(input)),
		CompressionTimeNs: elapsed.Nanoseconds(),
	}
	for i := range blocks {
		stats.CompressedSize += int64(blocks[i].CompressedSize)
	}
	log.Debug().
		Int("blocks", stats.Blocks).
		Int64("input_size", stats.OriginalSize).
		Int64("compressed_size", stats.CompressedSize).
		Dur("elapsed", elapsed).
		Stringer("checksum", b.checksumMode).
		Msg("sequenced data blocks")

	planner := Planner{SetID: b.setID}
	if b.deriveSetID {
		planner.SetID = hash.SetID(member.Name, input)
	}
	layout, err := planner.Plan(blocks, member, int64(len(input)))
	if err != nil {
		return nil, err
	}
	log.Debug().
		Uint32("cabinet_size", layout.Header.TotalSize).
		Uint32("offset_files", layout.Header.OffsetFiles).
		Uint32("data_offset", layout.Folder.DataOffset).
		Uint16("set_id", layout.Header.SetID).
		Msg("planned cabinet layout")

	n, err := Serialize(dst, &layout, blocks)
	if err != nil {
		return nil, err
	}
	log.Debug().Int64("bytes_written", n).Msg("serialized cabinet")

	return &Result{
		Layout:       layout,
		Blocks:       len(blocks),
		Stats:        stats,
		BytesWritten: n,
	}, nil
}
