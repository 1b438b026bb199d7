package cabinet

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/mscab/compress"
	"github.com/arloliu/mscab/errs"
	"github.com/arloliu/mscab/format"
	"github.com/arloliu/mscab/section"
)

func buildCabinet(t *testing.T, input []byte, opts ...BuilderOption) []byte {
	t.Helper()

	out, _, err := newTestBuilder(t, opts...).BuildBytes(input, NewMember("member.txt", testModTime))
	require.NoError(t, err)

	return out
}

func TestOpen_Structure(t *testing.T) {
	input := testInput(70000)
	cab, err := Open(buildCabinet(t, input))
	require.NoError(t, err)

	require.Equal(t, uint16(1), cab.Header.NumFolders)
	require.Len(t, cab.Folders, 1)
	require.Equal(t, format.CompressionMSZIP, cab.Folders[0].Compression)
	require.Len(t, cab.Files, 1)
	require.Equal(t, "member.txt", cab.Files[0].Name)
	require.Equal(t, uint32(70000), cab.Files[0].UncompressedSize)
	require.Equal(t, testModTime, cab.Files[0].Modified())

	blocks := cab.Blocks(0)
	require.Len(t, blocks, 3)
	require.Equal(t, uint16(4464), blocks[2].UncompressedSize)
	require.Nil(t, cab.Blocks(1))
}

func TestOpen_Errors(t *testing.T) {
	valid := buildCabinet(t, []byte("hello\n"))

	t.Run("short header", func(t *testing.T) {
		_, err := Open(valid[:20])
		require.ErrorIs(t, err, errs.ErrInvalidHeaderSize)
	})

	t.Run("bad signature", func(t *testing.T) {
		bad := bytes.Clone(valid)
		bad[0] = 'X'
		_, err := Open(bad)
		require.ErrorIs(t, err, errs.ErrInvalidSignature)
	})

	t.Run("truncated", func(t *testing.T) {
		_, err := Open(valid[:len(valid)-1])
		require.ErrorIs(t, err, errs.ErrTruncated)
	})

	t.Run("split cabinet", func(t *testing.T) {
		bad := bytes.Clone(valid)
		bad[30] = byte(format.FlagNextCabinet)
		_, err := Open(bad)
		require.ErrorIs(t, err, errs.ErrUnsupportedCabinet)
	})

	t.Run("unknown version", func(t *testing.T) {
		bad := bytes.Clone(valid)
		bad[25] = 2
		_, err := Open(bad)
		require.ErrorIs(t, err, errs.ErrUnsupportedCabinet)
	})
}

func TestCabinet_VerifyChecksums(t *testing.T) {
	input := testInput(40000)

	payloadCab, err := Open(buildCabinet(t, input))
	require.NoError(t, err)
	require.NoError(t, payloadCab.VerifyChecksums(format.ChecksumPayload))
	require.ErrorIs(t, payloadCab.VerifyChecksums(format.ChecksumCabinet), errs.ErrChecksumMismatch)
	require.NoError(t, payloadCab.VerifyChecksums(format.ChecksumNone))

	vendorCab, err := Open(buildCabinet(t, input, WithChecksumMode(format.ChecksumCabinet)))
	require.NoError(t, err)
	require.NoError(t, vendorCab.VerifyChecksums(format.ChecksumCabinet))

	noneCab, err := Open(buildCabinet(t, input, WithChecksumMode(format.ChecksumNone)))
	require.NoError(t, err)
	require.NoError(t, noneCab.VerifyChecksums(format.ChecksumCabinet), "zero checksums are skipped")
}

func TestCabinet_CorruptPayload(t *testing.T) {
	out := buildCabinet(t, testInput(5000))
	cab, err := Open(out)
	require.NoError(t, err)

	// flip a byte inside the first payload, after the signature
	off := int(cab.Folders[0].DataOffset) + section.DataEntrySize + 4
	out[off] ^= 0xff

	cab, err = Open(out)
	require.NoError(t, err)
	require.ErrorIs(t, cab.VerifyChecksums(format.ChecksumPayload), errs.ErrChecksumMismatch)
}

func TestCabinet_ReadFileMissing(t *testing.T) {
	cab, err := Open(buildCabinet(t, []byte("x")))
	require.NoError(t, err)

	_, err = cab.ReadFile("other.txt")
	require.ErrorIs(t, err, errs.ErrMemberNotFound)

	_, err = cab.ExtractFolder(3)
	require.ErrorIs(t, err, errs.ErrUnsupportedCabinet)
}

// assembleReserved writes a cabinet with reserve areas in every record, the
// way signing tools leave them.
func assembleReserved(t *testing.T, input []byte, compression format.CompressionType) []byte {
	t.Helper()

	var blocks []DataBlock
	if compression == format.CompressionNone {
		blocks = []DataBlock{{CompressedSize: uint16(len(input)), UncompressedSize: uint16(len(input)), Payload: input}}
	} else {
		var err error
		blocks, err = NewSequencer(newTestBuilder(t).encoder, format.ChecksumPayload).Sequence(input)
		require.NoError(t, err)
	}

	layout, err := (&Planner{}).Plan(blocks, NewMember("reserved.bin", testModTime), int64(len(input)))
	require.NoError(t, err)

	header := layout.Header
	header.Flags |= format.FlagReservePresent
	header.ReserveData = []byte{1, 2, 3, 4, 5}
	header.FolderReserve = 2
	header.DataReserve = 3

	folder := layout.Folder
	folder.Compression = compression
	folder.Reserve = []byte{9, 9}
	file := layout.File

	offsetFiles := header.Size() + folder.Size()
	dataOffset := offsetFiles + file.Size()
	total := dataOffset
	for i := range blocks {
		total += blocks[i].Size() + 3
	}
	header.OffsetFiles = uint32(offsetFiles)
	header.TotalSize = uint32(total)
	folder.DataOffset = uint32(dataOffset)

	var buf bytes.Buffer
	buf.Write(header.Bytes())
	buf.Write(folder.Bytes())
	buf.Write(file.Bytes())
	for i := range blocks {
		entry := blocks[i].Entry()
		entry.Reserve = []byte{7, 7, 7}
		buf.Write(entry.Bytes())
		buf.Write(blocks[i].Payload)
	}
	require.Equal(t, total, buf.Len())

	return buf.Bytes()
}

func TestOpen_ReserveAreas(t *testing.T) {
	input := testInput(2*compress.MaxChunkSize + 99)

	cab, err := Open(assembleReserved(t, input, format.CompressionMSZIP))
	require.NoError(t, err)
	require.True(t, cab.Header.HasReserve())
	require.Equal(t, []byte{1, 2, 3, 4, 5}, cab.Header.ReserveData)
	require.Equal(t, []byte{9, 9}, cab.Folders[0].Reserve)
	require.Equal(t, "reserved.bin", cab.Files[0].Name)
	require.NoError(t, cab.VerifyChecksums(format.ChecksumPayload))

	content, err := cab.Extract()
	require.NoError(t, err)
	require.True(t, bytes.Equal(input, content))
}

func TestOpen_StoredFolder(t *testing.T) {
	input := []byte("stored without compression")

	cab, err := Open(assembleReserved(t, input, format.CompressionNone))
	require.NoError(t, err)

	content, err := cab.Extract()
	require.NoError(t, err)
	require.Equal(t, input, content)
}

func TestOpen_UnsupportedCompression(t *testing.T) {
	out := buildCabinet(t, []byte("hello\n"))
	out[42] = byte(format.CompressionLZX)

	cab, err := Open(out)
	require.NoError(t, err)

	_, err = cab.Extract()
	require.ErrorIs(t, err, errs.ErrUnsupportedCompression)
}
