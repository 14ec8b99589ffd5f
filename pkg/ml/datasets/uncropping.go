// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package datasets

import "github.com/gomlx/inpainting/pkg/ml/masking"

// UncroppingDataset pairs images with masks for uncropping (outpainting).
// Records are like the ones of InpaintDataset, plus the image base name as Path.
type UncroppingDataset struct {
	*maskedDataset
}

var _ Dataset = (*UncroppingDataset)(nil)

// NewUncropping creates an UncroppingDataset. The mask mode "hybrid" randomly occludes
// one side or the four sides of the image.
func NewUncropping(cfg *Config) (*UncroppingDataset, error) {
	ds, err := newMaskedDataset(cfg, masking.Uncropping)
	if err != nil {
		return nil, err
	}
	ds.withPath = true
	return &UncroppingDataset{ds}, nil
}
