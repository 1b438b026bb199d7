package section

import (
	"bytes"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/arloliu/mscab/endian"
	"github.com/arloliu/mscab/errs"
	"github.com/arloliu/mscab/format"
)

// FileEntry represents CFFILE, a fixed 16-byte record followed by the
// NUL-terminated member name.
type FileEntry struct {
	UncompressedSize uint32               // byte offset 0-3
	FolderOffset     uint32               // byte offset 4-7, offset within the uncompressed folder
	FolderIndex      uint16               // byte offset 8-9
	Date             uint16               // byte offset 10-11, MS-DOS date
	Time             uint16               // byte offset 12-13, MS-DOS time
	Attributes       format.FileAttribute // byte offset 14-15
	Name             string
}

// NewFileEntry creates an entry for a member stored at the start of folder 0.
//
// The format.AttrNameIsUTF bit is set when name contains bytes outside
// 7-bit ASCII and cleared otherwise.
func NewFileEntry(name string, size uint32, modified time.Time, attrs format.FileAttribute) *FileEntry {
	date, tm := ToDOSDateTime(modified)

	attrs &^= format.AttrNameIsUTF
	if !isASCII(name) {
		attrs |= format.AttrNameIsUTF
	}

	return &FileEntry{
		UncompressedSize: size,
		Date:             date,
		Time:             tm,
		Attributes:       attrs,
		Name:             name,
	}
}

// ValidateName checks that name can be stored in a CFFILE entry.
func ValidateName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: empty name", errs.ErrInvalidMemberName)
	case len(name) > MaxNameLength:
		return fmt.Errorf("%w: %d bytes exceeds %d", errs.ErrInvalidMemberName, len(name), MaxNameLength)
	case strings.IndexByte(name, 0) >= 0:
		return fmt.Errorf("%w: contains NUL", errs.ErrInvalidMemberName)
	case !utf8.ValidString(name):
		return fmt.Errorf("%w: not valid UTF-8", errs.ErrInvalidMemberName)
	}

	return nil
}

// Size returns the encoded size including the name and its terminator.
func (e *FileEntry) Size() int {
	return FileEntrySize + len(e.Name) + 1
}

// Modified returns the decoded last-modified time.
func (e *FileEntry) Modified() time.Time {
	return FromDOSDateTime(e.Date, e.Time)
}

// Bytes serializes the file entry.
func (e *FileEntry) Bytes() []byte {
	b := make([]byte, e.Size())
	engine := endian.GetLittleEndianEngine()

	engine.PutUint32(b[0:4], e.UncompressedSize)
	engine.PutUint32(b[4:8], e.FolderOffset)
	endian.PutUint16s(engine, b[8:16], e.FolderIndex, e.Date, e.Time, uint16(e.Attributes))
	copy(b[FileEntrySize:], e.Name)
	// trailing NUL already zero

	return b
}

// Parse parses a file entry and returns the number of bytes consumed.
func (e *FileEntry) Parse(data []byte) (int, error) {
	if len(data) < FileEntrySize+1 {
		return 0, errs.ErrTruncated
	}

	engine := endian.GetLittleEndianEngine()
	e.UncompressedSize = engine.Uint32(data[0:4])
	e.FolderOffset = engine.Uint32(data[4:8])
	e.FolderIndex = engine.Uint16(data[8:10])
	e.Date = engine.Uint16(data[10:12])
	e.Time = engine.Uint16(data[12:14])
	e.Attributes = format.FileAttribute(engine.Uint16(data[14:16]))

	name := data[FileEntrySize:]
	if len(name) > MaxNameLength+1 {
		name = name[:MaxNameLength+1]
	}
	n := bytes.IndexByte(name, 0)
	if n < 0 {
		return 0, fmt.Errorf("%w: unterminated file name", errs.ErrTruncated)
	}
	e.Name = string(name[:n])

	return FileEntrySize + n + 1, nil
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}

	return true
}
