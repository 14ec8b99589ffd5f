// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package masks

import (
	"math"
	"math/rand/v2"
	"sort"

	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// IrregularOptions configures IrregularMask.
type IrregularOptions struct {
	// MinBlobs and MaxBlobs (inclusive) bound the number of blobs.
	MinBlobs int `yaml:"min_blobs"`
	MaxBlobs int `yaml:"max_blobs"`

	// MinVertices and MaxVertices (inclusive) bound the number of vertices of each blob outline.
	MinVertices int `yaml:"min_vertices"`
	MaxVertices int `yaml:"max_vertices"`

	// MinRadiusFraction and MaxRadiusFraction of the smaller image side bound the distance of the
	// blob outline to its center.
	MinRadiusFraction float64 `yaml:"min_radius_fraction"`
	MaxRadiusFraction float64 `yaml:"max_radius_fraction"`

	// AreaRatioRange is the accepted [min, max] fraction of occluded pixels. Masks outside it
	// are regenerated, up to MaxAttempts times.
	AreaRatioRange [2]float64 `yaml:"area_ratio_range"`
	MaxAttempts    int        `yaml:"max_attempts"`
}

// DefaultIrregularOptions returns the default settings for irregular masks.
func DefaultIrregularOptions() IrregularOptions {
	return IrregularOptions{
		MinBlobs:          1,
		MaxBlobs:          4,
		MinVertices:       8,
		MaxVertices:       20,
		MinRadiusFraction: 1.0 / 8,
		MaxRadiusFraction: 1.0 / 3,
		AreaRatioRange:    [2]float64{0.05, 0.5},
		MaxAttempts:       20,
	}
}

// Validate the options.
func (opts IrregularOptions) Validate() error {
	switch {
	case opts.MinBlobs < 1 || opts.MaxBlobs < opts.MinBlobs:
		return errors.Wrapf(ErrInvalidConfiguration, "invalid number of blobs [%d, %d]", opts.MinBlobs, opts.MaxBlobs)
	case opts.MinVertices < 3 || opts.MaxVertices < opts.MinVertices:
		return errors.Wrapf(ErrInvalidConfiguration, "invalid number of blob vertices [%d, %d]",
			opts.MinVertices, opts.MaxVertices)
	case opts.MinRadiusFraction <= 0 || opts.MaxRadiusFraction < opts.MinRadiusFraction:
		return errors.Wrapf(ErrInvalidConfiguration, "invalid blob radius fractions [%g, %g]",
			opts.MinRadiusFraction, opts.MaxRadiusFraction)
	case opts.AreaRatioRange[0] < 0 || opts.AreaRatioRange[1] > 1 || opts.AreaRatioRange[1] < opts.AreaRatioRange[0]:
		return errors.Wrapf(ErrInvalidConfiguration, "invalid area ratio range %v", opts.AreaRatioRange)
	case opts.MaxAttempts < 1:
		return errors.Wrapf(ErrInvalidConfiguration, "MaxAttempts must be at least 1, got %d", opts.MaxAttempts)
	}
	return nil
}

// randomBlob returns the outline of a star-shaped blob: vertices at sorted random angles
// around a random center, each at a random distance from it.
func randomBlob(rng *rand.Rand, size ImageSize, opts IrregularOptions) []Point {
	minSide := float64(min(size.Height, size.Width))
	minRadius, maxRadius := opts.MinRadiusFraction*minSide, opts.MaxRadiusFraction*minSide
	center := Point{X: rng.Float64() * float64(size.Width), Y: rng.Float64() * float64(size.Height)}
	numVertices := randomInRange(rng, opts.MinVertices, opts.MaxVertices)
	angles := make([]float64, numVertices)
	for ii := range angles {
		angles[ii] = rng.Float64() * 2 * math.Pi
	}
	sort.Float64s(angles)
	points := make([]Point, numVertices)
	for ii, angle := range angles {
		radius := minRadius + rng.Float64()*(maxRadius-minRadius)
		points[ii] = Point{X: center.X + radius*math.Cos(angle), Y: center.Y + radius*math.Sin(angle)}
	}
	return points
}

// distanceToRange returns how far v is from the [low, high] range, 0 if inside.
func distanceToRange(v float64, r [2]float64) float64 {
	if v < r[0] {
		return r[0] - v
	} else if v > r[1] {
		return v - r[1]
	}
	return 0
}

// IrregularMask returns a mask made of the union of a few random blobs.
//
// The mask is regenerated until its occluded area ratio falls inside opts.AreaRatioRange. After
// opts.MaxAttempts tries, the mask closest to the range is returned.
func IrregularMask(rng *rand.Rand, size ImageSize, opts IrregularOptions) (*Mask, error) {
	if err := size.Validate(MinImageSide); err != nil {
		return nil, err
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	var best *Mask
	bestDistance := math.Inf(1)
	for range opts.MaxAttempts {
		m := New(size)
		numBlobs := randomInRange(rng, opts.MinBlobs, opts.MaxBlobs)
		for range numBlobs {
			m.FillPolygon(randomBlob(rng, size, opts))
		}
		distance := distanceToRange(m.Coverage(), opts.AreaRatioRange)
		if distance == 0 {
			return m, nil
		}
		if distance < bestDistance {
			best, bestDistance = m, distance
		}
	}
	klog.V(2).Infof("IrregularMask(%s): no mask within area ratio %v after %d attempts, using coverage %.3f",
		size, opts.AreaRatioRange, opts.MaxAttempts, best.Coverage())
	return best, nil
}
