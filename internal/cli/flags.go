package cli

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/arloliu/mscab/cabinet"
	"github.com/arloliu/mscab/format"
)

// compressionDefine is the only -D definition makecab accepts.
const compressionDefine = "CompressionType=MSZIP"

// autoSetID selects a set id derived from the member name and content.
const autoSetID = "auto"

// NormalizeArgs rewrites a bare "-V" into "-V1" so that verbosity can be
// given with or without a level, as with the Windows makecab.
func NormalizeArgs(args []string) []string {
	out := make([]string, len(args))
	for i, arg := range args {
		if arg == "-V" {
			arg = "-V1"
		}
		out[i] = arg
	}

	return out
}

// checkDefines rejects any definition other than CompressionType=MSZIP.
func checkDefines(defines []string) error {
	for _, d := range defines {
		if !strings.EqualFold(d, compressionDefine) {
			return fmt.Errorf("only '-D %s' is supported, got %q", compressionDefine, d)
		}
	}

	return nil
}

// DefaultDestination derives the cabinet name from the source file name by
// replacing its last character with an underscore: setup.exe becomes
// setup.ex_.
func DefaultDestination(source string) string {
	base := []rune(filepath.Base(source))
	if len(base) == 0 {
		return "_"
	}
	base[len(base)-1] = '_'

	return string(base)
}

// ParseAttributes converts attribute letters (r, h, s, a, x) into file
// attributes. Letters are case-insensitive and may repeat.
func ParseAttributes(s string) (format.FileAttribute, error) {
	var attrs format.FileAttribute
	for _, ch := range strings.ToLower(s) {
		switch ch {
		case 'r':
			attrs |= format.AttrReadOnly
		case 'h':
			attrs |= format.AttrHidden
		case 's':
			attrs |= format.AttrSystem
		case 'a':
			attrs |= format.AttrArchive
		case 'x':
			attrs |= format.AttrExecute
		default:
			return 0, fmt.Errorf("unknown attribute %q in %q", ch, s)
		}
	}

	return attrs, nil
}

// parseSetID maps --set-id to a builder option.
func parseSetID(s string) (cabinet.BuilderOption, error) {
	if strings.EqualFold(s, autoSetID) {
		return cabinet.WithDerivedSetID(), nil
	}

	id, err := strconv.ParseUint(s, 0, 16)
	if err != nil {
		return nil, fmt.Errorf("invalid set id %q: must be %q or a number in 0..65535", s, autoSetID)
	}

	return cabinet.WithSetID(uint16(id)), nil
}

// parseChecksum maps --checksum to a checksum mode.
func parseChecksum(s string) (format.ChecksumMode, error) {
	mode, ok := format.ParseChecksumMode(s)
	if !ok {
		return 0, fmt.Errorf("invalid checksum mode %q: must be payload, cabinet or none", s)
	}

	return mode, nil
}

// parseModTime parses --mtime; an empty value keeps fallback.
func parseModTime(s string, fallback time.Time) (time.Time, error) {
	if s == "" {
		return fallback, nil
	}

	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --mtime %q: %w", s, err)
	}

	return t, nil
}

// logLevel maps the -V verbosity to a zerolog level.
func logLevel(verbosity int) zerolog.Level {
	switch {
	case verbosity <= 0:
		return zerolog.WarnLevel
	case verbosity == 1:
		return zerolog.InfoLevel
	case verbosity == 2:
		return zerolog.DebugLevel
	default:
		return zerolog.TraceLevel
	}
}
