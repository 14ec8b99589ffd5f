// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package datasets

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/gomlx/inpainting/pkg/core/masks"
	"github.com/gomlx/inpainting/pkg/core/tensors"
	"github.com/janpfeifer/must"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader(t *testing.T) {
	dir := t.TempDir()
	size := masks.ImageSize{Height: 8, Width: 8}
	loader := must.M1(NewLoader(size, tensors.Float32))

	whitePath := filepath.Join(dir, "white.png")
	saveImage(t, whitePath, solidImage(32, 16, color.White))
	white := must.M1(loader.Load(whitePath))
	require.Equal(t, []int{3, 8, 8}, white.Dimensions())
	for _, v := range white.Float32() {
		require.Equal(t, float32(1), v)
	}

	blackPath := filepath.Join(dir, "black.jpg")
	saveImage(t, blackPath, solidImage(8, 8, color.Black))
	for _, v := range must.M1(loader.Load(blackPath)).Float32() {
		require.InDelta(t, -1.0, v, 0.02)
	}

	noisyPath := filepath.Join(dir, "noise.bmp")
	saveImage(t, noisyPath, noiseImage(20, 30, 7))
	for _, v := range must.M1(loader.Load(noisyPath)).Float32() {
		require.True(t, v >= -1 && v <= 1, "value %g out of [-1, 1]", v)
	}
}

func TestLoaderNetpbm(t *testing.T) {
	path := filepath.Join(t.TempDir(), "red.ppm")
	data := []byte("P6 1 1 255\n")
	data = append(data, 255, 0, 0)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	loader := must.M1(NewLoader(masks.ImageSize{Height: 2, Width: 2}, tensors.Float16))
	img := must.M1(loader.Load(path))
	assert.Equal(t, tensors.Float16, img.DType())
	assert.Equal(t, []float32{1, 1, 1, 1, -1, -1, -1, -1, -1, -1, -1, -1}, img.Float32())

	// Plain (ASCII) grayscale.
	path = filepath.Join(t.TempDir(), "black.pgm")
	require.NoError(t, os.WriteFile(path, []byte("P2\n# black\n1 1\n255\n0\n"), 0o644))
	img = must.M1(loader.Load(path))
	assert.Equal(t, []float32{-1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1}, img.Float32())
}

func TestLoaderTransparentPixels(t *testing.T) {
	// Transparent white in a mask-indicator image is not the sentinel: only its color counts.
	path := filepath.Join(t.TempDir(), "indicator.png")
	indicator := solidImage(8, 8, color.NRGBA{R: 255, G: 255, B: 255, A: 0})
	indicator.Set(2, 3, color.NRGBA{A: 0})
	saveImage(t, path, indicator)
	loader := must.M1(NewLoader(masks.ImageSize{Height: 8, Width: 8}, tensors.Float32))
	img := must.M1(loader.Load(path))
	mask := must.M1(masks.FromSentinel(img, masks.SentinelOccluded))
	assert.Equal(t, 1, mask.Count())
	assert.Equal(t, uint8(1), mask.At(3, 2))
}

func TestLoaderErrors(t *testing.T) {
	dir := t.TempDir()
	loader := must.M1(NewLoader(masks.ImageSize{Height: 8, Width: 8}, tensors.Float32))
	_, err := loader.Load(filepath.Join(dir, "missing.png"))
	require.ErrorIs(t, err, ErrMissingAsset)

	corrupt := filepath.Join(dir, "corrupt.png")
	require.NoError(t, os.WriteFile(corrupt, []byte("not a png"), 0o644))
	_, err = loader.Load(corrupt)
	require.ErrorIs(t, err, ErrMissingAsset)

	_, err = NewLoader(masks.ImageSize{Height: 8, Width: 8}, tensors.Uint8)
	require.ErrorIs(t, err, masks.ErrInvalidConfiguration)
	_, err = NewLoader(masks.ImageSize{Height: 0, Width: 8}, tensors.Float32)
	require.ErrorIs(t, err, masks.ErrInvalidConfiguration)
}
