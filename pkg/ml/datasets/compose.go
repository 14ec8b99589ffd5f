// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package datasets

import (
	"math/rand/v2"

	"github.com/gomlx/exceptions"
	"github.com/gomlx/inpainting/pkg/core/masks"
	"github.com/gomlx/inpainting/pkg/core/tensors"
)

// composite returns `img*(1-m) + m*fill()` for a channels-first img and a mask of the same
// spatial size. fill is called once per occluded value.
func composite(img *tensors.Tensor, mask *masks.Mask, fill func() float32) *tensors.Tensor {
	dims := img.Dimensions()
	area := mask.Size.Area()
	if len(dims) != 3 || dims[1] != mask.Size.Height || dims[2] != mask.Size.Width {
		exceptions.Panicf("cannot composite image %s with mask of size %s", img, mask.Size)
	}
	values := img.Float32()
	for c := range dims[0] {
		channel := values[c*area : (c+1)*area]
		for ii, m := range mask.Data {
			if m != 0 {
				channel[ii] = fill()
			}
		}
	}
	return tensors.FromFloat32(img.DType(), values, dims...)
}

// NoisyComposite replaces the occluded pixels of img with standard normal noise drawn from rng.
// It is the condition image of generated-mask records.
func NoisyComposite(rng *rand.Rand, img *tensors.Tensor, mask *masks.Mask) *tensors.Tensor {
	return composite(img, mask, func() float32 { return float32(rng.NormFloat64()) })
}

// MaskedComposite replaces the occluded pixels of img with 1 (white).
func MaskedComposite(img *tensors.Tensor, mask *masks.Mask) *tensors.Tensor {
	return composite(img, mask, func() float32 { return 1 })
}

// MaskTensor converts the mask to a `[1, height, width]` Uint8 tensor.
func MaskTensor(mask *masks.Mask) *tensors.Tensor {
	return mask.ToTensor(tensors.Uint8)
}
