package section

const (
	// Magic is "MSCF" read as a little-endian uint32.
	Magic = 0x4643534d

	VersionMinor = 3
	VersionMajor = 1
)

// fixed structure sizes in bytes
const (
	HeaderSize        = 36 // CFHEADER without reserve fields
	ReserveHeaderSize = 4  // cbCFHeader, cbCFFolder, cbCFData
	FolderEntrySize   = 8  // CFFOLDER without reserve
	FileEntrySize     = 16 // CFFILE without name
	DataEntrySize     = 8  // CFDATA without reserve and payload

	// MaxNameLength is the longest member name, excluding the NUL terminator.
	MaxNameLength = 255
	// MaxHeaderReserve is the largest per-cabinet reserve area.
	MaxHeaderReserve = 60000
)
