// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package datasets

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/gomlx/inpainting/pkg/core/masks"
	"github.com/gomlx/inpainting/pkg/ml/masking"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// maskedDataset implements the datasets whose records combine an image with a mask:
// InpaintDataset and UncroppingDataset.
type maskedDataset struct {
	name      string
	loader    *Loader
	generator *masking.Generator

	// paths of the images, when masks are generated.
	paths []string

	// paired layout, when masks come from files (masking.ModeFile).
	paired *pairedLayout

	// withPath includes the image base name in the records.
	withPath bool
}

func newMaskedDataset(cfg *Config, ctx masking.Context) (*maskedDataset, error) {
	loader, err := cfg.newLoader()
	if err != nil {
		return nil, err
	}
	maskCfg, err := cfg.Masking()
	if err != nil {
		return nil, err
	}
	generator, err := masking.NewGenerator(maskCfg, ctx, loader.Size())
	if err != nil {
		return nil, err
	}
	ds := &maskedDataset{
		name:      fmt.Sprintf("%s [%s, %s]", strings.ToLower(ctx.String()), maskCfg.Mode, loader.Size()),
		loader:    loader,
		generator: generator,
	}
	if generator.FromFile() {
		ds.paired, err = newPairedLayout(cfg.DataRoot, cfg.DataFlist, cfg.DataLen)
	} else {
		var paths []string
		paths, err = MakeDataset(cfg.DataRoot)
		ds.paths = truncate(paths, cfg.DataLen)
	}
	if err != nil {
		return nil, err
	}
	if ds.Len() == 0 {
		klog.Warningf("dataset %s in %q is empty", ds.name, cfg.DataRoot)
	}
	klog.V(1).Infof("created dataset %s with %d examples", ds.name, ds.Len())
	return ds, nil
}

// Name implements Dataset.
func (ds *maskedDataset) Name() string { return ds.name }

// Len implements Dataset.
func (ds *maskedDataset) Len() int {
	if ds.paired != nil {
		return len(ds.paired.names)
	}
	return len(ds.paths)
}

// Generator used for the masks.
func (ds *maskedDataset) Generator() *masking.Generator { return ds.generator }

// Get implements Dataset.
func (ds *maskedDataset) Get(rng *rand.Rand, index int) (*Record, error) {
	if index < 0 || index >= ds.Len() {
		return nil, errors.Errorf("index %d out of range for dataset %s with %d examples", index, ds.name, ds.Len())
	}
	if ds.paired != nil {
		return ds.getPaired(index)
	}

	path := ds.paths[index]
	img, err := ds.loader.Load(path)
	if err != nil {
		return nil, err
	}
	mask, err := ds.generator.Generate(rng)
	if err != nil {
		return nil, errors.WithMessagef(err, "generating mask for %q", path)
	}
	record := &Record{
		GTImage:   img,
		CondImage: NoisyComposite(rng, img, mask),
		MaskImage: MaskedComposite(img, mask),
		Mask:      MaskTensor(mask),
	}
	if ds.withPath {
		record.Path = baseName(path)
	}
	return record, nil
}

// getPaired builds the record from the paired layout: the condition image is read from disk, and
// the mask is derived from the mask-indicator image, where the sentinel marks occluded pixels.
func (ds *maskedDataset) getPaired(index int) (*Record, error) {
	gt, cond, err := ds.paired.loadPair(ds.loader, index)
	if err != nil {
		return nil, err
	}
	mask, err := ds.paired.loadMask(ds.loader, index, masks.SentinelOccluded)
	if err != nil {
		return nil, err
	}
	record := &Record{
		GTImage:   gt,
		CondImage: cond,
		MaskImage: MaskedComposite(gt, mask),
		Mask:      MaskTensor(mask),
	}
	if ds.withPath {
		record.Path = ds.paired.fileName(index)
	}
	return record, nil
}

// baseName returns the last element of path, for either `/` or `\` separators.
func baseName(path string) string {
	return path[strings.LastIndexAny(path, `/\`)+1:]
}

// InpaintDataset pairs images with masks for inpainting: masks are generated by the configured
// mask mode, or read from a paired layout for mask mode "file".
//
// Records have the ground truth image, the condition image (occluded pixels replaced by
// Gaussian noise, or read from disk in the paired layout), the masked image (occluded pixels
// set to 1) and the mask.
type InpaintDataset struct {
	*maskedDataset
}

var _ Dataset = (*InpaintDataset)(nil)

// NewInpaint creates an InpaintDataset. The mask mode "hybrid" is the union of a random box
// and brush strokes.
func NewInpaint(cfg *Config) (*InpaintDataset, error) {
	ds, err := newMaskedDataset(cfg, masking.Inpainting)
	if err != nil {
		return nil, err
	}
	return &InpaintDataset{ds}, nil
}
