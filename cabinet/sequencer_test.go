package cabinet

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/klauspost/compress/flate"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/mscab/checksum"
	"github.com/arloliu/mscab/compress"
	"github.com/arloliu/mscab/errs"
	"github.com/arloliu/mscab/format"
)

func newTestSequencer(t *testing.T, mode format.ChecksumMode) *Sequencer {
	t.Helper()

	enc, err := compress.NewMSZipEncoder(flate.DefaultCompression)
	require.NoError(t, err)

	return NewSequencer(enc, mode)
}

func testInput(size int) []byte {
	rng := rand.New(rand.NewSource(int64(size))) //nolint:gosec
	words := []string{"cabinet ", "folder ", "block ", "deflate ", "window ", "member "}

	var buf bytes.Buffer
	for buf.Len() < size {
		buf.WriteString(words[rng.Intn(len(words))])
	}

	return buf.Bytes()[:size]
}

func TestBlockCount(t *testing.T) {
	tests := []struct {
		size int
		want int
	}{
		{0, 1},
		{1, 1},
		{compress.MaxChunkSize - 1, 1},
		{compress.MaxChunkSize, 1},
		{compress.MaxChunkSize + 1, 2},
		{70000, 3},
		{compress.MaxChunkSize * MaxDataBlocks, MaxDataBlocks},
		{compress.MaxChunkSize*MaxDataBlocks + 1, MaxDataBlocks + 1},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, BlockCount(tt.size), "size %d", tt.size)
	}
}

func TestSequencer_SeventyThousandBytes(t *testing.T) {
	s := newTestSequencer(t, format.ChecksumPayload)

	blocks, err := s.Sequence(testInput(70000))
	require.NoError(t, err)
	require.Len(t, blocks, 3)
	require.Equal(t, uint16(32768), blocks[0].UncompressedSize)
	require.Equal(t, uint16(32768), blocks[1].UncompressedSize)
	require.Equal(t, uint16(4464), blocks[2].UncompressedSize)
}

func TestSequencer_EmptyInput(t *testing.T) {
	s := newTestSequencer(t, format.ChecksumPayload)

	blocks, err := s.Sequence(nil)
	require.NoError(t, err)
	require.Len(t, blocks, 1)
	require.Equal(t, uint16(0), blocks[0].UncompressedSize)
	require.Equal(t, []byte("CK"), blocks[0].Payload[:2])
}

func TestSequencer_SizesAndBounds(t *testing.T) {
	s := newTestSequencer(t, format.ChecksumPayload)

	for _, size := range []int{1, 1000, compress.MaxChunkSize, compress.MaxChunkSize + 1, 5*compress.MaxChunkSize + 123} {
		blocks, err := s.Sequence(testInput(size))
		require.NoError(t, err)
		require.Len(t, blocks, BlockCount(size))

		total := 0
		for i, b := range blocks {
			require.LessOrEqual(t, int(b.UncompressedSize), compress.MaxChunkSize)
			require.Equal(t, len(b.Payload), int(b.CompressedSize))
			require.LessOrEqual(t, len(b.Payload), compress.MaxBlockSize)
			if i < len(blocks)-1 {
				require.Equal(t, compress.MaxChunkSize, int(b.UncompressedSize), "only the last block may be short")
			}
			total += int(b.UncompressedSize)
		}
		require.Equal(t, size, total)
	}
}

func TestSequencer_ChecksumModes(t *testing.T) {
	input := testInput(3 * compress.MaxChunkSize)

	t.Run("payload", func(t *testing.T) {
		blocks, err := newTestSequencer(t, format.ChecksumPayload).Sequence(input)
		require.NoError(t, err)
		for _, b := range blocks {
			require.Equal(t, checksum.Compute(0, b.Payload), b.Checksum)
		}
	})

	t.Run("cabinet", func(t *testing.T) {
		blocks, err := newTestSequencer(t, format.ChecksumCabinet).Sequence(input)
		require.NoError(t, err)
		for _, b := range blocks {
			require.Equal(t, checksum.Cabinet(b.Payload, b.CompressedSize, b.UncompressedSize), b.Checksum)
		}
	})

	t.Run("none", func(t *testing.T) {
		blocks, err := newTestSequencer(t, format.ChecksumNone).Sequence(input)
		require.NoError(t, err)
		for _, b := range blocks {
			require.Zero(t, b.Checksum)
		}
	})
}

func TestSequencer_CallsAreIndependent(t *testing.T) {
	s := newTestSequencer(t, format.ChecksumPayload)
	input := testInput(2*compress.MaxChunkSize + 10)

	first, err := s.Sequence(input)
	require.NoError(t, err)
	second, err := s.Sequence(input)
	require.NoError(t, err)

	require.Equal(t, first, second)
}

type failingEncoder struct{}

func (failingEncoder) EncodeBlock([]byte, *compress.Window) ([]byte, error) {
	return nil, errs.ErrCompressionFailure
}

func TestSequencer_EncoderFailure(t *testing.T) {
	s := NewSequencer(failingEncoder{}, format.ChecksumPayload)

	_, err := s.Sequence([]byte("data"))
	require.ErrorIs(t, err, errs.ErrCompressionFailure)
}
