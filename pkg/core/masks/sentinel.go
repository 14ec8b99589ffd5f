// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package masks

import (
	"math"

	"github.com/gomlx/inpainting/pkg/core/tensors"
	"github.com/pkg/errors"
)

const (
	// SentinelValue marks mask membership in normalized (to [-1, 1]) mask-indicator images:
	// it is the value of black pixels.
	SentinelValue = -1.0

	// SentinelTolerance is the maximum distance to SentinelValue for a value to be considered equal to it.
	SentinelTolerance = 1e-10
)

// SentinelPolarity selects which pixels of a mask-indicator image become occluded.
//
// The paired inpainting data and the colorization data use opposite conventions, so callers
// must choose one explicitly.
type SentinelPolarity uint8

//go:generate go tool enumer -type=SentinelPolarity -trimprefix=Sentinel -transform=lower -text -json -yaml -output=gen_sentinelpolarity_enumer.go sentinel.go

const (
	// SentinelOccluded occludes pixels equal to SentinelValue (black pixels are the holes).
	SentinelOccluded SentinelPolarity = iota

	// SentinelUnoccluded occludes pixels different from SentinelValue (black pixels are kept).
	SentinelUnoccluded
)

// IsSentinel returns whether v equals SentinelValue within SentinelTolerance.
func IsSentinel(v float64) bool {
	return math.Abs(v-SentinelValue) <= SentinelTolerance
}

// FromSentinelPlane derives a mask from a single row-major plane of normalized values,
// one per pixel, using the given polarity.
func FromSentinelPlane(plane []float32, size ImageSize, polarity SentinelPolarity) (*Mask, error) {
	if len(plane) != size.Area() {
		return nil, errors.Wrapf(ErrInvalidConfiguration, "mask-indicator plane has %d values, but image size is %s",
			len(plane), size)
	}
	if polarity != SentinelOccluded && polarity != SentinelUnoccluded {
		return nil, errors.Wrapf(ErrInvalidConfiguration, "unknown sentinel polarity %s", polarity)
	}
	occludeSentinel := polarity == SentinelOccluded
	m := New(size)
	for ii, v := range plane {
		if IsSentinel(float64(v)) == occludeSentinel {
			m.Data[ii] = 1
		}
	}
	return m, nil
}

// FromSentinel derives a mask from the first channel of a normalized mask-indicator image
// tensor shaped `[channels, height, width]`.
func FromSentinel(indicator *tensors.Tensor, polarity SentinelPolarity) (*Mask, error) {
	dims := indicator.Dimensions()
	if len(dims) != 3 || dims[0] < 1 {
		return nil, errors.Wrapf(ErrInvalidConfiguration,
			"mask-indicator tensor must be shaped [channels, height, width], got %s", indicator)
	}
	size := ImageSize{Height: dims[1], Width: dims[2]}
	values := indicator.Float32()
	return FromSentinelPlane(values[:size.Area()], size, polarity)
}
