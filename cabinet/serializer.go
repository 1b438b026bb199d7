package cabinet

import (
	"fmt"
	"io"

	"github.com/arloliu/mscab/errs"
	"github.com/arloliu/mscab/internal/pool"
)

// flushThreshold is the buffered size at which Serialize hands data to the writer.
const flushThreshold = 1024 * 64

// Serialize writes the cabinet described by layout and blocks to w.
//
// Records are emitted in file order (header, folder, file, data blocks)
// in a single forward pass; w never needs to seek. The blocks must be the
// ones the layout was planned from.
//
// Returns:
//   - int64: Number of bytes written to w
//   - error: ErrInconsistentSize when blocks do not match layout, or the
//     wrapped writer error
func Serialize(w io.Writer, layout *Layout, blocks []DataBlock) (int64, error) {
	expected := layout.DataOffset()
	for i := range blocks {
		expected += int64(blocks[i].Size())
	}
	if len(blocks) != int(layout.Folder.DataCount) || expected != int64(layout.Header.TotalSize) {
		return 0, fmt.Errorf("%w: layout expects %d blocks and %d bytes, got %d blocks and %d bytes",
			errs.ErrInconsistentSize, layout.Folder.DataCount, layout.Header.TotalSize, len(blocks), expected)
	}

	buf := pool.GetCabinetBuffer()
	defer pool.PutCabinetBuffer(buf)

	var written int64
	flush := func() error {
		n, err := buf.WriteTo(w)
		written += n
		buf.Reset()
		if err != nil {
			return fmt.Errorf("failed to write cabinet: %w", err)
		}

		return nil
	}

	buf.MustWrite(layout.Header.Bytes())
	buf.MustWrite(layout.Folder.Bytes())
	buf.MustWrite(layout.File.Bytes())

	for i := range blocks {
		entry := blocks[i].Entry()
		buf.B = entry.AppendTo(buf.B)
		buf.MustWrite(blocks[i].Payload)

		if buf.Len() >= flushThreshold {
			if err := flush(); err != nil {
				return written, err
			}
		}
	}

	if err := flush(); err != nil {
		return written, err
	}

	return written, nil
}
