package memimg

import (
	"image"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStoreAndGet(t *testing.T) {
	_, _, ok := GetFrameFromMemory("g1")
	require.False(t, ok)

	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	Store("g1", 7, img)
	got, ticks, ok := GetFrameFromMemory("g1")
	require.True(t, ok)
	require.Equal(t, uint64(7), ticks)
	require.Same(t, img, got)

	// a restarted game renders from tick zero again
	fresh := image.NewRGBA(image.Rect(0, 0, 2, 2))
	Store("g1", 0, fresh)
	got, ticks, _ = GetFrameFromMemory("g1")
	require.Zero(t, ticks)
	require.Same(t, fresh, got)

	Delete("g1")
	_, _, ok = GetFrameFromMemory("g1")
	require.False(t, ok)
}
