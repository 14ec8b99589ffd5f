// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package datasets

import (
	"path/filepath"

	"github.com/gomlx/inpainting/pkg/core/masks"
	"github.com/gomlx/inpainting/pkg/core/tensors"
	"github.com/pkg/errors"
)

// Sub-directories and file extension of the paired layout: for each name in the name list,
// `<root>/train_C/<name>.png` is the ground truth, `<root>/train_A/<name>.png` the condition image
// and `<root>/train_B/<name>.png` the mask-indicator image.
const (
	PairedGTDir   = "train_C"
	PairedCondDir = "train_A"
	PairedMaskDir = "train_B"
	PairedExt     = ".png"
)

// pairedLayout resolves names of the name list to the files of one example.
type pairedLayout struct {
	root  string
	names []string
}

func newPairedLayout(root, nameList string, dataLen int) (*pairedLayout, error) {
	if nameList == "" {
		return nil, errors.Wrapf(masks.ErrInvalidConfiguration, "paired dataset in %q requires a name list (data_flist)", root)
	}
	names, err := MakeDataset(nameList)
	if err != nil {
		return nil, err
	}
	return &pairedLayout{root: root, names: truncate(names, dataLen)}, nil
}

// fileName of the example at index.
func (p *pairedLayout) fileName(index int) string {
	return p.names[index] + PairedExt
}

func (p *pairedLayout) path(dir string, index int) string {
	return filepath.Join(p.root, dir, p.fileName(index))
}

// loadPair loads the ground truth and condition images of the example.
func (p *pairedLayout) loadPair(loader *Loader, index int) (gt, cond *tensors.Tensor, err error) {
	if gt, err = loader.Load(p.path(PairedGTDir, index)); err != nil {
		return
	}
	cond, err = loader.Load(p.path(PairedCondDir, index))
	return
}

// loadMask loads the mask-indicator image of the example and derives the mask with the given polarity.
func (p *pairedLayout) loadMask(loader *Loader, index int, polarity masks.SentinelPolarity) (*masks.Mask, error) {
	indicator, err := loader.Load(p.path(PairedMaskDir, index))
	if err != nil {
		return nil, err
	}
	return masks.FromSentinel(indicator, polarity)
}
