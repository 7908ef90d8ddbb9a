package radio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolAcquireAllocatesWhenEmpty(t *testing.T) {
	p := NewPool(2)
	buf := p.Acquire(10)
	assert.Len(t, buf, 10)
}

func TestPoolAcquireReturnsOldestMatchingLength(t *testing.T) {
	p := NewPool(4)
	a := p.Acquire(5)
	b := p.Acquire(5)
	a[0] = 1
	b[0] = 2
	p.Release(a)
	p.Release(b)

	got := p.Acquire(5)
	require.Len(t, got, 5)
	assert.Equal(t, 1.0, got[0], "acquire should hand back the oldest pooled array of this length")
}

func TestPoolEvictsOldestOnFullRelease(t *testing.T) {
	p := NewPool(1)
	a := make([]float64, 3)
	a[0] = 111
	p.Release(a)

	b := make([]float64, 3)
	b[0] = 222
	p.Release(b) // evicts a, since capacity is 1

	got := p.Acquire(3)
	assert.Equal(t, 222.0, got[0])
}

func TestBytePoolRoundTrip(t *testing.T) {
	p := NewBytePool(2)
	buf := p.Acquire(16)
	buf[0] = 9
	p.Release(buf)

	got := p.Acquire(16)
	assert.Equal(t, byte(9), got[0])
}

func TestRingBufferOverwritesOldest(t *testing.T) {
	r := NewRingBuffer(3)
	r.Write([]float64{1, 2, 3, 4, 5})
	assert.Equal(t, 3, r.Len())
	assert.Equal(t, []float64{3, 4, 5}, r.Last(3))
}

func TestRingBufferLastClampsToFilled(t *testing.T) {
	r := NewRingBuffer(10)
	r.Write([]float64{1, 2})
	assert.Equal(t, []float64{1, 2}, r.Last(100))
}
