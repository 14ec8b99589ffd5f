// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// maskgen generates masks for inpainting and uncropping, reports their coverage statistics and
// optionally saves them as PNG files.
//
// With -config it instead builds a few records of the dataset described by the configuration
// file, and saves their images.
//
// Example:
//
//	maskgen -mode=hybrid -size=256,256 -n=1000 -out=/tmp/masks -hist=/tmp/coverage.png
package main

import (
	"flag"
	"fmt"
	"strconv"

	"github.com/gomlx/inpainting/pkg/core/masks"
	"github.com/gomlx/inpainting/pkg/ml/masking"
	"github.com/gomlx/inpainting/pkg/support/xslices"
	"github.com/janpfeifer/must"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

var (
	flagMode    = flag.String("mode", "hybrid", fmt.Sprintf("Mask mode, one of %q.", masking.ModeStrings()))
	flagContext = flag.String("context", "inpainting",
		fmt.Sprintf("Dataset context, which selects the \"hybrid\" behavior, one of %q.", masking.ContextStrings()))
	flagSize = xslices.Flag(flag.CommandLine, "size", []int{256, 256},
		"Image size as a comma-separated \"height,width\".", strconv.Atoi)
	flagShape = xslices.Flag(flag.CommandLine, "shape", nil,
		"Box as a comma-separated \"top,left,height,width\", required by mode \"manual\".", strconv.Atoi)
	flagNum         = flag.Int("n", 16, "Number of masks to generate.")
	flagSeed        = flag.Uint64("seed", 0, "Seed for the random number generators.")
	flagOutput      = flag.String("out", "", "Directory where to save the generated masks or records as PNG files.")
	flagParallelism = flag.Int("parallelism", 0, "Number of masks generated in parallel. If 0, the number of cores.")
	flagHistogram   = flag.String("hist", "", "If set, path of a PNG file where to plot the histogram of coverage.")
	flagBins        = flag.Int("bins", 20, "Number of bins of the -hist histogram.")
	flagQuiet       = flag.Bool("quiet", false, "Don't display a progress bar.")

	flagConfig = flag.String("config", "",
		"Dataset configuration file (YAML or JSON). If set, -preview records of the dataset are built instead of masks.")
	flagPreview = flag.Int("preview", 4, "Number of records to build with -config.")
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()
	if flag.NArg() > 0 {
		klog.Exitf("Unexpected arguments %q. See 'maskgen -help'.", flag.Args())
	}
	if *flagConfig != "" {
		must.M(preview(*flagConfig, *flagPreview, *flagOutput))
		return
	}
	opts, err := optionsFromFlags()
	if err != nil {
		klog.Exitf("Invalid flags: %+v", err)
	}
	result := must.M1(generate(opts))
	report(opts, result)
	if *flagHistogram != "" {
		must.M(plotCoverage(result, *flagBins, *flagHistogram))
		fmt.Printf("Coverage histogram saved to %q\n", *flagHistogram)
	}
}

// optionsFromFlags builds the generation options from the command-line flags.
func optionsFromFlags() (*options, error) {
	mode, err := masking.ModeString(*flagMode)
	if err != nil {
		return nil, errors.Wrapf(masking.ErrUnsupportedMaskMode, "-mode=%q", *flagMode)
	}
	ctx, err := masking.ContextString(*flagContext)
	if err != nil {
		return nil, errors.Wrapf(masks.ErrInvalidConfiguration, "-context must be one of %q, got %q",
			masking.ContextStrings(), *flagContext)
	}
	opts := &options{
		config:      masking.Config{Mode: mode},
		num:         *flagNum,
		seed:        *flagSeed,
		outputDir:   *flagOutput,
		parallelism: *flagParallelism,
		progress:    !*flagQuiet,
		context:     ctx,
	}
	if len(*flagSize) != 2 {
		return nil, errors.Wrapf(masks.ErrInvalidConfiguration, "-size must be \"height,width\", got %v", *flagSize)
	}
	opts.size = masks.ImageSize{Height: (*flagSize)[0], Width: (*flagSize)[1]}
	if len(*flagShape) > 0 {
		if len(*flagShape) != 4 {
			return nil, errors.Wrapf(masks.ErrInvalidConfiguration, "-shape must be \"top,left,height,width\", got %v", *flagShape)
		}
		s := *flagShape
		opts.config.Shape = &masks.BBox{Top: s[0], Left: s[1], Height: s[2], Width: s[3]}
	}
	if opts.num <= 0 {
		return nil, errors.Wrapf(masks.ErrInvalidConfiguration, "-n must be positive, got %d", opts.num)
	}
	return opts, nil
}
