// Package section defines the binary structures and constants of the
// Microsoft Cabinet format.
//
// Every structure knows its encoded size, serializes itself with Bytes and
// parses itself back with Parse. All integers are little-endian.
//
// # Cabinet Structure
//
// A single-folder, single-file cabinet is laid out as:
//
//	┌─────────────────────────────────────────────────────────┐
//	│ CFHEADER (36 bytes)                                     │
//	│  + CFRESERVE (4 bytes + reserve data, optional)         │
//	├─────────────────────────────────────────────────────────┤
//	│ CFFOLDER (8 bytes + folder reserve)                     │
//	├─────────────────────────────────────────────────────────┤
//	│ CFFILE (16 bytes + name + NUL)      <- coffFiles        │
//	├─────────────────────────────────────────────────────────┤
//	│ CFDATA (8 bytes + data reserve + payload) × N           │
//	│  <- coffCabStart of the folder                          │
//	└─────────────────────────────────────────────────────────┘
//
// # Header Format
//
//	Bytes  | Field        | Type   | Description
//	-------|--------------|--------|----------------------------------
//	0-3    | Signature    | [4]u8  | "MSCF"
//	4-7    | Reserved1    | uint32 | 0
//	8-11   | TotalSize    | uint32 | Size of the whole cabinet
//	12-15  | Reserved2    | uint32 | 0
//	16-19  | OffsetFiles  | uint32 | Offset of the first CFFILE
//	20-23  | Reserved3    | uint32 | 0
//	24     | VersionMinor | uint8  | 3
//	25     | VersionMajor | uint8  | 1
//	26-27  | NumFolders   | uint16 |
//	28-29  | NumFiles     | uint16 |
//	30-31  | Flags        | uint16 | format.CabinetFlag
//	32-33  | SetID        | uint16 |
//	34-35  | CabNumber    | uint16 | Index within the set
//
// # Data Block Format
//
//	Bytes  | Field            | Type   | Description
//	-------|------------------|--------|--------------------------------
//	0-3    | Checksum         | uint32 | 0 means "not computed"
//	4-5    | CompressedSize   | uint16 | Payload bytes that follow
//	6-7    | UncompressedSize | uint16 | At most 32768
//
// # Timestamps
//
// CFFILE stores its last-modified time as separate MS-DOS date and time
// words; see ToDOSDateTime and FromDOSDateTime.
package section
