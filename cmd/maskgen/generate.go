// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/disintegration/imaging"
	"github.com/gomlx/inpainting/internal/workerspool"
	"github.com/gomlx/inpainting/pkg/core/masks"
	"github.com/gomlx/inpainting/pkg/ml/masking"
	"github.com/muesli/termenv"
	"github.com/pkg/errors"
	"github.com/schollz/progressbar/v3"
	"k8s.io/klog/v2"
)

// options of the mask generation.
type options struct {
	config      masking.Config
	context     masking.Context
	size        masks.ImageSize
	num         int
	seed        uint64
	outputDir   string
	parallelism int
	progress    bool
}

// generation holds the results of generate.
type generation struct {
	strategy masking.Strategy

	// coverage of each mask, indexed by the mask number.
	coverage []float64

	// emptyMasks is the number of masks with no occluded pixel, and fullMasks the number of masks fully occluded.
	emptyMasks, fullMasks int

	// bytesWritten to the output directory.
	bytesWritten int64

	elapsed time.Duration
}

// maskRNG returns the random number generator of the mask ii: masks don't depend on the order they are generated.
func maskRNG(seed uint64, ii int) *rand.Rand {
	return rand.New(rand.NewPCG(seed, uint64(ii)))
}

// maskFileName of the mask ii, when saved to the output directory.
func maskFileName(ii int) string {
	return fmt.Sprintf("mask_%06d.png", ii)
}

// generate opts.num masks in parallel and, if opts.outputDir is set, saves them as PNG files.
func generate(opts *options) (*generation, error) {
	generator, err := masking.NewGenerator(opts.config, opts.context, opts.size)
	if err != nil {
		return nil, err
	}
	if generator.FromFile() {
		return nil, errors.Wrapf(masks.ErrInvalidConfiguration, "mask mode %q reads masks from disk, it can't generate them", masking.ModeFile)
	}
	if opts.outputDir != "" {
		if err := os.MkdirAll(opts.outputDir, 0o755); err != nil {
			return nil, errors.Wrapf(err, "failed to create output directory %q", opts.outputDir)
		}
	}

	result := &generation{
		strategy: generator.Strategy(),
		coverage: make([]float64, opts.num),
	}
	var bar *progressbar.ProgressBar
	if opts.progress {
		term := termenv.NewOutput(os.Stdout)
		term.HideCursor()
		defer term.ShowCursor()
		bar = progressbar.NewOptions(opts.num,
			progressbar.OptionSetDescription("Generating"),
			progressbar.OptionUseANSICodes(true),
			progressbar.OptionEnableColorCodes(true),
			progressbar.OptionShowIts(),
			progressbar.OptionSetItsString("masks"),
			progressbar.OptionSetTheme(progressbar.ThemeUnicode),
		)
	}

	var mu sync.Mutex
	var firstErr error
	pool := workerspool.New(opts.parallelism)
	klog.V(1).Infof("generating %d masks %s with %s, parallelism %d", opts.num, opts.size, generator.Strategy().Mode(), pool.MaxParallelism())
	start := time.Now()
	pool.ForEach(opts.num, func(ii int) {
		mask, err := generator.Generate(maskRNG(opts.seed, ii))
		var written int64
		if err == nil && opts.outputDir != "" {
			written, err = saveMask(mask, filepath.Join(opts.outputDir, maskFileName(ii)))
		}
		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			if firstErr == nil {
				firstErr = errors.WithMessagef(err, "mask #%d", ii)
			}
			return
		}
		count := mask.Count()
		result.coverage[ii] = mask.Coverage()
		switch count {
		case 0:
			result.emptyMasks++
		case opts.size.Area():
			result.fullMasks++
		}
		result.bytesWritten += written
		if bar != nil {
			_ = bar.Add(1)
		}
	})
	result.elapsed = time.Since(start)
	if bar != nil {
		_ = bar.Finish()
		fmt.Println()
	}
	if firstErr != nil {
		return nil, firstErr
	}
	return result, nil
}

// saveMask as a grayscale PNG with occluded pixels in white. It returns the size of the file.
func saveMask(mask *masks.Mask, path string) (int64, error) {
	if err := imaging.Save(mask.ToImage(), path); err != nil {
		return 0, errors.Wrapf(err, "failed to save mask to %q", path)
	}
	info, err := os.Stat(path)
	if err != nil {
		return 0, errors.Wrapf(err, "failed to stat %q", path)
	}
	return info.Size(), nil
}
