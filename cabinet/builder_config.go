package cabinet

import (
	"fmt"

	"github.com/klauspost/compress/flate"
	"github.com/rs/zerolog"

	"github.com/arloliu/mscab/errs"
	"github.com/arloliu/mscab/format"
	"github.com/arloliu/mscab/internal/options"
)

// BuilderConfig holds the settings shared by every build of a Builder.
type BuilderConfig struct {
	level        int
	checksumMode format.ChecksumMode
	setID        uint16
	deriveSetID  bool
	logger       zerolog.Logger
}

// NewBuilderConfig returns the default configuration: default deflate
// level, payload checksums, set id 0 and no logging.
func NewBuilderConfig() *BuilderConfig {
	return &BuilderConfig{
		level:        flate.DefaultCompression,
		checksumMode: format.ChecksumPayload,
		logger:       zerolog.Nop(),
	}
}

// Level returns the deflate level.
func (c *BuilderConfig) Level() int {
	return c.level
}

// ChecksumMode returns the checksum mode stored in data blocks.
func (c *BuilderConfig) ChecksumMode() format.ChecksumMode {
	return c.checksumMode
}

func (c *BuilderConfig) setLevel(level int) error {
	if level < flate.HuffmanOnly || level > flate.BestCompression {
		return fmt.Errorf("%w: %d", errs.ErrInvalidLevel, level)
	}
	c.level = level

	return nil
}

func (c *BuilderConfig) setChecksumMode(mode format.ChecksumMode) error {
	switch mode {
	case format.ChecksumPayload, format.ChecksumCabinet, format.ChecksumNone:
		c.checksumMode = mode
		return nil
	default:
		return fmt.Errorf("%w: %d", errs.ErrInvalidChecksumMode, mode)
	}
}

// BuilderOption represents a functional option for configuring the BuilderConfig.
type BuilderOption = options.Option[*BuilderConfig]

// WithCompressionLevel sets the deflate level: flate.HuffmanOnly (-2),
// flate.DefaultCompression (-1) or 0-9.
func WithCompressionLevel(level int) BuilderOption {
	return options.New(func(c *BuilderConfig) error {
		return c.setLevel(level)
	})
}

// WithChecksumMode selects how data block checksums are computed.
// The default is format.ChecksumPayload; format.ChecksumCabinet produces
// cabinets that Windows and cabextract verify.
func WithChecksumMode(mode format.ChecksumMode) BuilderOption {
	return options.New(func(c *BuilderConfig) error {
		return c.setChecksumMode(mode)
	})
}

// WithSetID stores a fixed set id in the header.
func WithSetID(id uint16) BuilderOption {
	return options.NoError(func(c *BuilderConfig) {
		c.setID = id
		c.deriveSetID = false
	})
}

// WithDerivedSetID derives the set id from the member name and content, so
// identical inputs yield byte-identical cabinets.
func WithDerivedSetID() BuilderOption {
	return options.NoError(func(c *BuilderConfig) {
		c.deriveSetID = true
	})
}

// WithLogger sets the logger receiving per-phase debug events.
func WithLogger(logger zerolog.Logger) BuilderOption {
	return options.NoError(func(c *BuilderConfig) {
		c.logger = logger
	})
}
