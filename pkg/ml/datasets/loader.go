// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package datasets

import (
	"image"

	"github.com/disintegration/imaging"
	"github.com/gomlx/inpainting/pkg/core/masks"
	"github.com/gomlx/inpainting/pkg/core/tensors"
	"github.com/gomlx/inpainting/pkg/core/tensors/images"
	"github.com/pkg/errors"

	// Decoders for the formats of ImageExtensions not registered by imaging.
	_ "github.com/spakin/netpbm"
	_ "golang.org/x/image/bmp"
)

// Loader reads images from disk, resizes them and converts them to normalized tensors.
type Loader struct {
	size  masks.ImageSize
	dtype tensors.DType
}

// NewLoader returns a Loader for images of the given size. dtype must be a float dtype.
func NewLoader(size masks.ImageSize, dtype tensors.DType) (*Loader, error) {
	if err := size.Validate(1); err != nil {
		return nil, err
	}
	if !dtype.IsFloat() {
		return nil, errors.Wrapf(masks.ErrInvalidConfiguration, "images must be loaded as a float dtype, got %s", dtype)
	}
	return &Loader{size: size, dtype: dtype}, nil
}

// Size of the loaded images.
func (l *Loader) Size() masks.ImageSize { return l.size }

// DType of the loaded tensors.
func (l *Loader) DType() tensors.DType { return l.dtype }

// Open decodes the image file and resizes it to the Loader size with bilinear interpolation.
//
// It returns ErrMissingAsset if the file can't be opened or decoded.
func (l *Loader) Open(path string) (image.Image, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, errors.Wrapf(ErrMissingAsset, "failed to load image %q: %v", path, err)
	}
	if b := img.Bounds(); b.Dx() != l.size.Width || b.Dy() != l.size.Height {
		img = imaging.Resize(img, l.size.Width, l.size.Height, imaging.Linear)
	}
	return img, nil
}

// ToTensor converts an image to a `[3, height, width]` tensor with values normalized to [-1, 1].
// The alpha channel, if any, is dropped.
func (l *Loader) ToTensor(img image.Image) *tensors.Tensor {
	return images.ToTensor(l.dtype).
		ChannelsAxis(images.ChannelsFirst).
		Normalize(images.MinusOneToOne).
		Single(img)
}

// Load opens the image file and converts it to a tensor: see Open and ToTensor.
func (l *Loader) Load(path string) (*tensors.Tensor, error) {
	img, err := l.Open(path)
	if err != nil {
		return nil, err
	}
	return l.ToTensor(img), nil
}
