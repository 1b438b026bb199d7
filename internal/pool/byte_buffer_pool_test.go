package pool

import (
	"bytes"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewByteBuffer(t *testing.T) {
	capacity := 1024
	bb := NewByteBuffer(capacity)

	require.NotNil(t, bb)
	require.NotNil(t, bb.B)
	assert.Equal(t, 0, len(bb.B), "new buffer should have zero length")
	assert.Equal(t, capacity, cap(bb.B), "new buffer should have specified capacity")
}

func TestByteBuffer_Reset(t *testing.T) {
	bb := NewByteBuffer(BlockBufferDefaultSize)
	bb.MustWrite([]byte("some data"))
	originalCap := bb.Cap()

	bb.Reset()

	assert.Equal(t, 0, bb.Len(), "Reset should clear the buffer length")
	assert.Equal(t, originalCap, bb.Cap(), "Reset should preserve capacity")
}

func TestByteBuffer_Write(t *testing.T) {
	bb := NewByteBuffer(16)

	n, err := bb.Write([]byte("CK"))
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = bb.Write([]byte("payload"))
	require.NoError(t, err)
	assert.Equal(t, 7, n)

	assert.Equal(t, []byte("CKpayload"), bb.Bytes())
}

func TestByteBuffer_Clone(t *testing.T) {
	bb := NewByteBuffer(16)
	bb.MustWrite([]byte("hello"))

	clone := bb.Clone()
	bb.Reset()
	bb.MustWrite([]byte("world"))

	assert.Equal(t, []byte("hello"), clone, "clone must not alias the buffer")
}

func TestByteBuffer_WriteTo(t *testing.T) {
	bb := NewByteBuffer(16)
	bb.MustWrite([]byte("MSCF"))

	var out bytes.Buffer
	n, err := bb.WriteTo(&out)

	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
	assert.Equal(t, "MSCF", out.String())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestByteBuffer_WriteTo_ErrorPropagation(t *testing.T) {
	bb := NewByteBuffer(16)
	bb.MustWrite([]byte("data"))

	_, err := bb.WriteTo(failingWriter{})
	require.EqualError(t, err, "disk full")
}

func TestGetBlockBuffer(t *testing.T) {
	bb := GetBlockBuffer()
	defer PutBlockBuffer(bb)

	require.NotNil(t, bb)
	assert.Equal(t, 0, bb.Len())
	assert.GreaterOrEqual(t, bb.Cap(), BlockBufferDefaultSize)
}

func TestPutBlockBuffer_NilBuffer(t *testing.T) {
	require.NotPanics(t, func() {
		PutBlockBuffer(nil)
	})
}

func TestPool_ResetsClearsData(t *testing.T) {
	p := NewByteBufferPool(64, 0)

	bb := p.Get()
	bb.MustWrite([]byte("stale"))
	p.Put(bb)

	again := p.Get()
	assert.Equal(t, 0, again.Len(), "buffers from the pool must be empty")
}

func TestByteBufferPool_MaxThreshold(t *testing.T) {
	t.Run("Discard", func(t *testing.T) {
		p := NewByteBufferPool(16, 32)
		bb := p.Get()
		bb.MustWrite(make([]byte, 128))

		require.NotPanics(t, func() { p.Put(bb) })
	})

	t.Run("Zero means unlimited", func(t *testing.T) {
		p := NewByteBufferPool(16, 0)
		bb := p.Get()
		bb.MustWrite(make([]byte, 1024))

		require.NotPanics(t, func() { p.Put(bb) })
	})
}

func TestCabinetBuffer_ReusePattern(t *testing.T) {
	bb := GetCabinetBuffer()
	require.NotNil(t, bb)
	assert.GreaterOrEqual(t, bb.Cap(), CabinetBufferDefaultSize)

	bb.MustWrite([]byte("MSCF"))
	PutCabinetBuffer(bb)

	next := GetCabinetBuffer()
	defer PutCabinetBuffer(next)
	assert.Equal(t, 0, next.Len())
}

func TestPool_ConcurrentAccess(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				bb := GetBlockBuffer()
				bb.MustWrite([]byte{byte(id)})
				if bb.Len() != 1 || bb.Bytes()[0] != byte(id) {
					t.Errorf("buffer shared between goroutines")
				}
				PutBlockBuffer(bb)
			}
		}(i)
	}
	wg.Wait()
}
