// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package datasets

import (
	"fmt"
	"math/rand/v2"

	"github.com/gomlx/inpainting/pkg/core/masks"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// ColorizationDataset reads ground truth and condition images from a paired layout
// (see PairedGTDir and PairedCondDir), for the names in a name list.
//
// Records have GTImage, CondImage and Path (the file name). Optionally, see WithSentinelMask,
// they also have Mask and MaskImage, derived from the mask-indicator images.
type ColorizationDataset struct {
	name     string
	loader   *Loader
	paired   *pairedLayout
	polarity *masks.SentinelPolarity
}

var _ Dataset = (*ColorizationDataset)(nil)

// NewColorization creates a ColorizationDataset from cfg.DataRoot and the name list cfg.DataFlist.
// If cfg.SentinelMask is set, it is used as in WithSentinelMask.
func NewColorization(cfg *Config) (*ColorizationDataset, error) {
	loader, err := cfg.newLoader()
	if err != nil {
		return nil, err
	}
	paired, err := newPairedLayout(cfg.DataRoot, cfg.DataFlist, cfg.DataLen)
	if err != nil {
		return nil, err
	}
	ds := &ColorizationDataset{
		name:   fmt.Sprintf("colorization [%s]", loader.Size()),
		loader: loader,
		paired: paired,
	}
	polarity, found, err := cfg.Polarity()
	if err != nil {
		return nil, err
	}
	if found {
		ds.WithSentinelMask(polarity)
	}
	if ds.Len() == 0 {
		klog.Warningf("dataset %s in %q is empty", ds.name, cfg.DataRoot)
	}
	klog.V(1).Infof("created dataset %s with %d examples", ds.name, ds.Len())
	return ds, nil
}

// WithSentinelMask includes in the records the mask derived from the mask-indicator images
// (see PairedMaskDir), with the given polarity. Colorization indicator images usually mark the
// kept pixels with the sentinel, that is, masks.SentinelUnoccluded.
//
// It returns the dataset, so calls can be cascaded.
func (ds *ColorizationDataset) WithSentinelMask(polarity masks.SentinelPolarity) *ColorizationDataset {
	ds.polarity = &polarity
	ds.name = fmt.Sprintf("colorization [%s, mask %s]", ds.loader.Size(), polarity)
	return ds
}

// Name implements Dataset.
func (ds *ColorizationDataset) Name() string { return ds.name }

// Len implements Dataset.
func (ds *ColorizationDataset) Len() int { return len(ds.paired.names) }

// Get implements Dataset. The rng is not used.
func (ds *ColorizationDataset) Get(_ *rand.Rand, index int) (*Record, error) {
	if index < 0 || index >= ds.Len() {
		return nil, errors.Errorf("index %d out of range for dataset %s with %d examples", index, ds.name, ds.Len())
	}
	gt, cond, err := ds.paired.loadPair(ds.loader, index)
	if err != nil {
		return nil, err
	}
	record := &Record{
		GTImage:   gt,
		CondImage: cond,
		Path:      ds.paired.fileName(index),
	}
	if ds.polarity != nil {
		mask, err := ds.paired.loadMask(ds.loader, index, *ds.polarity)
		if err != nil {
			return nil, err
		}
		record.Mask = MaskTensor(mask)
		record.MaskImage = MaskedComposite(gt, mask)
	}
	return record, nil
}
