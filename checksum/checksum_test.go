package checksum

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCompute(t *testing.T) {
	tests := []struct {
		name string
		seed uint32
		data []byte
		want uint32
	}{
		{"empty", 0, nil, 0},
		{"empty keeps seed", 0xDEADBEEF, nil, 0xDEADBEEF},
		{"one word", 0, []byte{0x01, 0x02, 0x03, 0x04}, 0x04030201},
		{"two words cancel", 0, []byte{1, 2, 3, 4, 1, 2, 3, 4}, 0},
		{"tail of one", 0, []byte{0xAB}, 0x000000AB},
		{"tail of two", 0, []byte{0xAB, 0xCD}, 0x0000CDAB},
		{"tail of three", 0, []byte{0x01, 0x02, 0x03}, 0x00030201},
		{"word plus tail", 0, []byte{0, 0, 0, 0x80, 0x01}, 0x80000001},
		{"seeded", 0xFFFFFFFF, []byte{0xFF, 0xFF, 0xFF, 0xFF}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Compute(tt.seed, tt.data))
		})
	}
}

func TestCompute_Deterministic(t *testing.T) {
	data := []byte("CK some payload bytes that are not word aligned")
	first := Compute(0, data)
	for j := 0; j < 10; j++ {
		require.Equal(t, first, Compute(0, data))
	}
}

func TestCompute_SeedChaining(t *testing.T) {
	// Whole-word prefixes can be chained through the seed.
	a := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	b := []byte{9, 10, 11}
	require.Equal(t, Compute(0, append(append([]byte{}, a...), b...)), Compute(Compute(0, a), b))
}

func TestCabinet(t *testing.T) {
	t.Run("aligned payload only differs by size word", func(t *testing.T) {
		payload := []byte{0x43, 0x4B, 0x01, 0x02}
		got := Cabinet(payload, 4, 2)
		require.Equal(t, Compute(0, payload)^0x00020004, got)
	})

	t.Run("tail folded most significant first", func(t *testing.T) {
		got := Cabinet([]byte{0x01, 0x02, 0x03}, 0, 0)
		require.Equal(t, uint32(0x00010203), got)
	})

	t.Run("differs from Compute on unaligned tails", func(t *testing.T) {
		payload := []byte{0x43, 0x4B, 0x03, 0x00, 0x10, 0x20}
		require.NotEqual(t, Compute(0, payload), Cabinet(payload, 0, 0))
	})
}

func BenchmarkCompute(b *testing.B) {
	data := make([]byte, 32768+12)
	for i := range data {
		data[i] = byte(i)
	}
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		Compute(0, data)
	}
}
