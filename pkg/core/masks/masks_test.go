// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package masks

import (
	"math/rand/v2"
	"testing"

	"github.com/gomlx/inpainting/pkg/core/tensors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRNG(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15))
}

// requireBinary checks the mask shape and that it only holds 0s and 1s.
func requireBinary(t *testing.T, m *Mask, size ImageSize) {
	t.Helper()
	require.Equal(t, []int{size.Height, size.Width, 1}, m.Shape())
	require.Len(t, m.Data, size.Area())
	for ii, v := range m.Data {
		if v > 1 {
			require.Failf(t, "non-binary mask", "value %d at flat position %d", v, ii)
		}
	}
}

func TestBBoxToMask(t *testing.T) {
	size := ImageSize{Height: 6, Width: 5}
	m, err := BBoxToMask(size, BBox{Top: 1, Left: 2, Height: 3, Width: 2})
	require.NoError(t, err)
	requireBinary(t, m, size)
	assert.Equal(t, []uint8{
		0, 0, 0, 0, 0,
		0, 0, 1, 1, 0,
		0, 0, 1, 1, 0,
		0, 0, 1, 1, 0,
		0, 0, 0, 0, 0,
		0, 0, 0, 0, 0,
	}, m.Data)

	// Deterministic.
	m2, err := BBoxToMask(size, BBox{Top: 1, Left: 2, Height: 3, Width: 2})
	require.NoError(t, err)
	assert.True(t, m.Equal(m2))

	_, err = BBoxToMask(size, BBox{Top: 4, Left: 0, Height: 3, Width: 1})
	require.ErrorIs(t, err, ErrInvalidConfiguration)
}

func TestCenterBBox(t *testing.T) {
	for _, size := range []ImageSize{{64, 64}, {256, 128}, {30, 50}} {
		m, err := BBoxToMask(size, CenterBBox(size))
		require.NoError(t, err)
		requireBinary(t, m, size)
		h, w := size.Height, size.Width
		for y := range h {
			for x := range w {
				inside := y >= h/4 && y < h/4+h/2 && x >= w/4 && x < w/4+w/2
				if inside != (m.At(y, x) == 1) {
					require.Failf(t, "wrong center mask", "size %s, pixel (%d, %d)", size, y, x)
				}
			}
		}
	}
}

func TestUnion(t *testing.T) {
	size := ImageSize{Height: 4, Width: 4}
	a, err := BBoxToMask(size, BBox{Top: 0, Left: 0, Height: 2, Width: 2})
	require.NoError(t, err)
	b, err := BBoxToMask(size, BBox{Top: 1, Left: 1, Height: 3, Width: 1})
	require.NoError(t, err)
	u, err := Union(a, b)
	require.NoError(t, err)
	assert.Equal(t, 6, u.Count())
	for ii := range u.Data {
		assert.Equal(t, a.Data[ii]|b.Data[ii], u.Data[ii])
	}
	// Inputs are not modified.
	assert.Equal(t, 4, a.Count())
	assert.Equal(t, 3, b.Count())

	_, err = Union(a, New(ImageSize{Height: 2, Width: 2}))
	require.Error(t, err)
}

func TestFlips(t *testing.T) {
	size := ImageSize{Height: 3, Width: 4}
	m, err := BBoxToMask(size, BBox{Top: 0, Left: 0, Height: 1, Width: 1})
	require.NoError(t, err)
	m.FlipHorizontal()
	assert.Equal(t, uint8(1), m.At(0, 3))
	m.FlipVertical()
	assert.Equal(t, uint8(1), m.At(2, 3))
	assert.Equal(t, 1, m.Count())
}

func TestToTensor(t *testing.T) {
	size := ImageSize{Height: 3, Width: 2}
	m, err := BBoxToMask(size, BBox{Top: 1, Left: 1, Height: 1, Width: 1})
	require.NoError(t, err)
	mt := m.ToTensor(tensors.Float32)
	assert.Equal(t, []int{1, 3, 2}, mt.Dimensions())
	assert.Equal(t, []float32{0, 0, 0, 1, 0, 0}, tensors.CopyFlatData[float32](mt))

	img := m.ToImage()
	assert.Equal(t, uint8(0xFF), img.GrayAt(1, 1).Y)
	assert.Equal(t, uint8(0), img.GrayAt(0, 1).Y)
}

func TestFillPolygon(t *testing.T) {
	size := ImageSize{Height: 10, Width: 10}
	m := New(size)
	// Square from (2,2) to (6,6): exactly 16 pixels.
	m.FillPolygon([]Point{{2, 2}, {6, 2}, {6, 6}, {2, 6}})
	requireBinary(t, m, size)
	assert.Equal(t, 16, m.Count())
	assert.Equal(t, uint8(1), m.At(2, 2))
	assert.Equal(t, uint8(0), m.At(6, 6))

	// Polygons partially outside are clipped.
	m = New(size)
	m.FillPolygon([]Point{{-5, -5}, {3, -5}, {3, 3}, {-5, 3}})
	assert.Equal(t, 9, m.Count())

	// Fully outside does nothing.
	m = New(size)
	m.FillPolygon([]Point{{20, 20}, {30, 20}, {30, 30}})
	assert.Equal(t, 0, m.Count())
}

func TestDrawLine(t *testing.T) {
	size := ImageSize{Height: 20, Width: 20}
	m := New(size)
	m.DrawLine(Point{X: 2, Y: 10}, Point{X: 17, Y: 10}, 4)
	requireBinary(t, m, size)
	// Horizontal line 4 pixels thick, rounded ends.
	assert.Equal(t, uint8(1), m.At(10, 10))
	assert.Equal(t, uint8(1), m.At(9, 2))
	assert.Equal(t, uint8(0), m.At(4, 10))
	assert.Equal(t, uint8(0), m.At(16, 10))
	count := m.Count()
	assert.Greater(t, count, 15*4-4)
	assert.Less(t, count, 15*4+20)
}
