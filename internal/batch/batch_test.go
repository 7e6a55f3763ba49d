package batch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ints(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func TestChunk_TrailingPartial(t *testing.T) {
	chunks := Chunk(ints(101), 100)
	require.Len(t, chunks, 2)
	assert.Len(t, chunks[0], 100)
	assert.Len(t, chunks[1], 1)
	assert.Equal(t, 100, chunks[1][0])
}

func TestChunk_ExactMultiple(t *testing.T) {
	// No empty trailing chunk when the input divides evenly.
	chunks := Chunk(ints(200), 100)
	require.Len(t, chunks, 2)
	assert.Len(t, chunks[0], 100)
	assert.Len(t, chunks[1], 100)
}

func TestChunk_SmallerThanSize(t *testing.T) {
	chunks := Chunk(ints(3), 100)
	require.Len(t, chunks, 1)
	assert.Len(t, chunks[0], 3)
}

func TestChunk_Empty(t *testing.T) {
	chunks := Chunk([]int{}, 100)
	require.Len(t, chunks, 1)
	assert.Empty(t, chunks[0])
}

func TestChunk_EveryItemExactlyOnce(t *testing.T) {
	items := ints(257)
	chunks := Chunk(items, 10)

	var flat []int
	for _, c := range chunks {
		flat = append(flat, c...)
	}
	assert.Equal(t, items, flat)
}

func TestChunk_InvalidSizePanics(t *testing.T) {
	assert.Panics(t, func() { Chunk(ints(5), 0) })
	assert.Panics(t, func() { Chunk(ints(5), -1) })
}
