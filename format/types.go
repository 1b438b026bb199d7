package format

import "strings"

type (
	CompressionType uint16
	CabinetFlag     uint16
	FileAttribute   uint16
	ChecksumMode    uint8
)

const (
	CompressionNone    CompressionType = 0x0 // CompressionNone represents stored data.
	CompressionMSZIP   CompressionType = 0x1 // CompressionMSZIP represents MSZIP (deflate) compression.
	CompressionQuantum CompressionType = 0x2 // CompressionQuantum represents Quantum compression.
	CompressionLZX     CompressionType = 0x3 // CompressionLZX represents LZX compression.

	// CompressionTypeMask selects the method bits; the upper bits carry method parameters.
	CompressionTypeMask CompressionType = 0x000F
)

const (
	FlagPrevCabinet    CabinetFlag = 1 << iota // FlagPrevCabinet marks a cabinet continued from a previous one.
	FlagNextCabinet                            // FlagNextCabinet marks a cabinet continued in a next one.
	FlagReservePresent                         // FlagReservePresent marks the presence of reserve areas.
)

const (
	AttrReadOnly  FileAttribute = 0x01
	AttrHidden    FileAttribute = 0x02
	AttrSystem    FileAttribute = 0x04
	AttrArchive   FileAttribute = 0x20
	AttrExecute   FileAttribute = 0x40
	AttrNameIsUTF FileAttribute = 0x80 // AttrNameIsUTF marks a UTF-8 encoded member name.
)

const (
	// ChecksumPayload stores the plain XOR accumulation of the payload with seed 0.
	ChecksumPayload ChecksumMode = iota
	// ChecksumCabinet stores the CSUM variant verified by Windows and cabextract.
	ChecksumCabinet
	// ChecksumNone stores zero, which readers treat as "not computed".
	ChecksumNone
)

func (c CompressionType) String() string {
	switch c & CompressionTypeMask {
	case CompressionNone:
		return "None"
	case CompressionMSZIP:
		return "MSZIP"
	case CompressionQuantum:
		return "Quantum"
	case CompressionLZX:
		return "LZX"
	default:
		return "Unknown"
	}
}

// Method returns the compression method with parameter bits stripped.
func (c CompressionType) Method() CompressionType {
	return c & CompressionTypeMask
}

func (f CabinetFlag) Has(flag CabinetFlag) bool {
	return f&flag != 0
}

func (a FileAttribute) Has(attr FileAttribute) bool {
	return a&attr != 0
}

// String renders the attribute bits as letters in attrib.exe order.
func (a FileAttribute) String() string {
	var sb strings.Builder
	for _, bit := range []struct {
		attr FileAttribute
		ch   byte
	}{
		{AttrReadOnly, 'R'},
		{AttrHidden, 'H'},
		{AttrSystem, 'S'},
		{AttrArchive, 'A'},
		{AttrExecute, 'X'},
		{AttrNameIsUTF, 'U'},
	} {
		if a.Has(bit.attr) {
			sb.WriteByte(bit.ch)
		}
	}

	return sb.String()
}

func (m ChecksumMode) String() string {
	switch m {
	case ChecksumPayload:
		return "payload"
	case ChecksumCabinet:
		return "cabinet"
	case ChecksumNone:
		return "none"
	default:
		return "unknown"
	}
}

// ParseChecksumMode maps the textual mode names used on the command line.
func ParseChecksumMode(s string) (ChecksumMode, bool) {
	switch strings.ToLower(s) {
	case "payload":
		return ChecksumPayload, true
	case "cabinet", "csum":
		return ChecksumCabinet, true
	case "none", "off":
		return ChecksumNone, true
	default:
		return 0, false
	}
}
