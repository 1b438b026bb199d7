package hash

import "github.com/cespare/xxhash/v2"

// Sum64 computes the xxHash64 of the member name and content.
// A NUL separates the two so that ("ab", "c") and ("a", "bc") differ.
func Sum64(name string, content []byte) uint64 {
	d := xxhash.New()
	_, _ = d.WriteString(name)
	_, _ = d.Write([]byte{0})
	_, _ = d.Write(content)

	return d.Sum64()
}

// SetID folds Sum64 into a 16-bit cabinet set identifier.
func SetID(name string, content []byte) uint16 {
	h := Sum64(name, content)

	return uint16(h ^ h>>16 ^ h>>32 ^ h>>48) //nolint: gosec
}
