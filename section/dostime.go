package section

import "time"

var (
	minDOSTime = time.Date(1980, 1, 1, 0, 0, 0, 0, time.UTC)
	maxDOSTime = time.Date(2107, 12, 31, 23, 59, 58, 0, time.UTC)
)

// ToDOSDateTime converts t to MS-DOS date and time words using t's own
// location. Seconds are stored with 2-second resolution and times outside
// 1980-01-01 .. 2107-12-31 are clamped.
func ToDOSDateTime(t time.Time) (date uint16, tm uint16) {
	wall := time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC)
	if wall.Before(minDOSTime) {
		wall = minDOSTime
	} else if wall.After(maxDOSTime) {
		wall = maxDOSTime
	}

	date = uint16(wall.Day() + int(wall.Month())<<5 + (wall.Year()-1980)<<9) //nolint: gosec
	tm = uint16(wall.Second()/2 + wall.Minute()<<5 + wall.Hour()<<11)        //nolint: gosec

	return date, tm
}

// FromDOSDateTime converts MS-DOS date and time words to a UTC time.
func FromDOSDateTime(date, tm uint16) time.Time {
	return time.Date(
		int(date>>9)+1980,
		time.Month(date>>5&0xf),
		int(date&0x1f),
		int(tm>>11),
		int(tm>>5&0x3f),
		int(tm&0x1f)*2,
		0,
		time.UTC,
	)
}
