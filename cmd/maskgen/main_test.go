// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package main

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/gomlx/inpainting/pkg/core/masks"
	"github.com/gomlx/inpainting/pkg/ml/masking"
	"github.com/janpfeifer/must"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	outputDir := filepath.Join(t.TempDir(), "masks")
	opts := &options{
		config:      masking.Config{Mode: masking.ModeBBox},
		context:     masking.Inpainting,
		size:        masks.ImageSize{Height: 32, Width: 48},
		num:         10,
		seed:        3,
		outputDir:   outputDir,
		parallelism: 3,
	}
	result, err := generate(opts)
	require.NoError(t, err)
	require.Len(t, result.coverage, 10)
	assert.IsType(t, masking.BBoxStrategy{}, result.strategy)
	assert.Zero(t, result.emptyMasks)
	assert.Positive(t, result.bytesWritten)
	for ii, coverage := range result.coverage {
		assert.Greater(t, coverage, 0.0)
		assert.Less(t, coverage, 1.0)
		img, err := imaging.Open(filepath.Join(outputDir, maskFileName(ii)))
		require.NoError(t, err)
		assert.Equal(t, image.Rect(0, 0, 48, 32), img.Bounds())
	}

	// Results don't depend on the parallelism.
	opts.parallelism = 1
	opts.outputDir = ""
	sequential := must.M1(generate(opts))
	assert.Equal(t, result.coverage, sequential.coverage)
	assert.Zero(t, sequential.bytesWritten)
}

func TestGenerateErrors(t *testing.T) {
	opts := &options{
		config:  masking.Config{Mode: masking.ModeFile},
		context: masking.Inpainting,
		size:    masks.ImageSize{Height: 32, Width: 32},
		num:     1,
	}
	_, err := generate(opts)
	require.ErrorIs(t, err, masks.ErrInvalidConfiguration)

	opts.config.Mode = masking.ModeManual
	_, err = generate(opts)
	require.ErrorIs(t, err, masks.ErrInvalidConfiguration)

	opts.config.Shape = &masks.BBox{Top: 30, Left: 30, Height: 8, Width: 8}
	_, err = generate(opts)
	require.ErrorIs(t, err, masks.ErrInvalidConfiguration)
}

func TestCoverageStats(t *testing.T) {
	s := newCoverageStats([]float64{0.5, 0.1, 0.3})
	assert.InDelta(t, 0.3, s.mean, 1e-9)
	assert.InDelta(t, 0.2, s.stdDev, 1e-9)
	assert.Equal(t, 0.1, s.min)
	assert.Equal(t, 0.3, s.median)
	assert.Equal(t, 0.5, s.max)
	assert.Equal(t, coverageStats{}, newCoverageStats(nil))
	assert.Equal(t, "12.5%", percent(0.125))
}

func TestPlotCoverage(t *testing.T) {
	result := &generation{
		strategy: masking.CenterStrategy{},
		coverage: []float64{0.25, 0.25, 0.3, 0.1},
	}
	path := filepath.Join(t.TempDir(), "coverage.png")
	require.NoError(t, plotCoverage(result, 5, path))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
	require.Error(t, plotCoverage(result, 0, path))
}

func TestPreview(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "images"), 0o755))
	for ii := range 3 {
		img := imaging.New(20, 20, color.NRGBA{R: uint8(50 * ii), G: 100, B: 200, A: 255})
		require.NoError(t, imaging.Save(img, filepath.Join(root, "images", "img_"+strconv.Itoa(ii)+".png")))
	}
	configPath := filepath.Join(root, "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(`
which: uncropping
data_root: images
image_size: [16, 16]
seed: 1
mask_config:
  mask_mode: onedirection
`), 0o644))
	outputDir := filepath.Join(root, "preview")
	require.NoError(t, preview(configPath, 2, outputDir))
	entries, err := os.ReadDir(outputDir)
	require.NoError(t, err)
	assert.Len(t, entries, 2*4)

	require.Error(t, preview(filepath.Join(root, "missing.yaml"), 2, ""))
}
