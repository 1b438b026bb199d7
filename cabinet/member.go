package cabinet

import (
	"time"

	"github.com/arloliu/mscab/format"
)

// Member describes the single file stored in a cabinet.
type Member struct {
	// Name is stored verbatim in CFFILE; it must be 1-255 bytes of UTF-8
	// without NUL.
	Name string
	// Modified is encoded as an MS-DOS date and time in its own location.
	Modified time.Time
	// Attributes are stored as given, except format.AttrNameIsUTF which is
	// derived from Name.
	Attributes format.FileAttribute
}

// NewMember returns a member with the archive attribute set.
func NewMember(name string, modified time.Time) Member {
	return Member{
		Name:       name,
		Modified:   modified,
		Attributes: format.AttrArchive,
	}
}
