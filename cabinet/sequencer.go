package cabinet

import (
	"fmt"
	"math"

	"github.com/arloliu/mscab/compress"
	"github.com/arloliu/mscab/errs"
	"github.com/arloliu/mscab/format"
)

// MaxDataBlocks is the largest number of CFDATA entries one folder can hold.
const MaxDataBlocks = math.MaxUint16

// Sequencer turns the folder's uncompressed bytes into ordered DataBlocks.
type Sequencer struct {
	encoder compress.BlockEncoder
	mode    format.ChecksumMode
}

// NewSequencer creates a sequencer that compresses with encoder and stores
// checksums computed according to mode.
func NewSequencer(encoder compress.BlockEncoder, mode format.ChecksumMode) *Sequencer {
	return &Sequencer{encoder: encoder, mode: mode}
}

// BlockCount returns the number of blocks an input of size bytes occupies.
// An empty input still needs one block.
func BlockCount(size int) int {
	if size == 0 {
		return 1
	}

	return (size + compress.MaxChunkSize - 1) / compress.MaxChunkSize
}

// Sequence splits input into chunks of at most compress.MaxChunkSize bytes
// and encodes them in order, sharing one window across the whole input.
//
// Each call starts from an empty window, so successive calls are
// independent.
//
// Returns:
//   - []DataBlock: At least one block; the uncompressed sizes sum to len(input)
//   - error: ErrTooManyDataBlocks, or an encoder error
func (s *Sequencer) Sequence(input []byte) ([]DataBlock, error) {
	count := BlockCount(len(input))
	if count > MaxDataBlocks {
		return nil, fmt.Errorf("%w: %d bytes need %d blocks", errs.ErrTooManyDataBlocks, len(input), count)
	}

	window := compress.NewWindow()
	blocks := make([]DataBlock, 0, count)

	for i := 0; i < count; i++ {
		start := i * compress.MaxChunkSize
		end := min(start+compress.MaxChunkSize, len(input))
		chunk := input[start:end]

		payload, err := s.encoder.EncodeBlock(chunk, window)
		if err != nil {
			return nil, fmt.Errorf("failed to encode data block %d: %w", i, err)
		}
		if len(payload) > math.MaxUint16 {
			return nil, fmt.Errorf("%w: block %d payload of %d bytes", errs.ErrCompressionFailure, i, len(payload))
		}

		cbData := uint16(len(payload)) //nolint: gosec
		cbUncomp := uint16(len(chunk)) //nolint: gosec
		blocks = append(blocks, DataBlock{
			Checksum:         blockChecksum(s.mode, payload, cbData, cbUncomp),
			CompressedSize:   cbData,
			UncompressedSize: cbUncomp,
			Payload:          payload,
		})
	}

	return blocks, nil
}
