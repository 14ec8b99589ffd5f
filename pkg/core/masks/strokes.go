// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package masks

import (
	"math"
	"math/rand/v2"

	"github.com/pkg/errors"
)

// StrokeOptions configures BrushStrokeMask.
//
// Lengths and widths are fractions of the image dimensions, so the same options
// produce similar looking masks at any resolution.
type StrokeOptions struct {
	// MinStrokes and MaxStrokes (inclusive) bound the number of strokes.
	MinStrokes int `yaml:"min_strokes"`
	MaxStrokes int `yaml:"max_strokes"`

	// MinVertices and MaxVertices (inclusive) bound the number of vertices of each stroke.
	MinVertices int `yaml:"min_vertices"`
	MaxVertices int `yaml:"max_vertices"`

	// MeanAngle is the mean turning angle between segments, and AngleRange the maximum deviation from it.
	// Consecutive segments alternate the direction of the turn.
	MeanAngle  float64 `yaml:"mean_angle"`
	AngleRange float64 `yaml:"angle_range"`

	// RadiusFraction of the image diagonal is the mean segment length. Lengths are drawn from a
	// normal distribution with that mean and half of it as standard deviation, clipped to [0, 2*mean].
	RadiusFraction float64 `yaml:"radius_fraction"`

	// MinWidthFraction and MaxWidthFraction of the average image side bound the brush width.
	MinWidthFraction float64 `yaml:"min_width_fraction"`
	MaxWidthFraction float64 `yaml:"max_width_fraction"`

	// RandomFlips randomly mirrors the final mask horizontally and vertically.
	RandomFlips bool `yaml:"random_flips"`
}

// DefaultStrokeOptions returns the default free-form brush settings.
func DefaultStrokeOptions() StrokeOptions {
	return StrokeOptions{
		MinStrokes:       1,
		MaxStrokes:       4,
		MinVertices:      4,
		MaxVertices:      18,
		MeanAngle:        2 * math.Pi / 5,
		AngleRange:       2 * math.Pi / 15,
		RadiusFraction:   1.0 / 8,
		MinWidthFraction: 0.03,
		MaxWidthFraction: 0.07,
		RandomFlips:      true,
	}
}

// Scale returns a copy of the options with the brush width and the number of strokes multiplied by factor.
func (opts StrokeOptions) Scale(factor float64) StrokeOptions {
	opts.MinWidthFraction *= factor
	opts.MaxWidthFraction *= factor
	opts.MinStrokes = max(1, int(math.Round(float64(opts.MinStrokes)*factor)))
	opts.MaxStrokes = max(opts.MinStrokes, int(math.Round(float64(opts.MaxStrokes)*factor)))
	return opts
}

// Validate the options.
func (opts StrokeOptions) Validate() error {
	switch {
	case opts.MinStrokes < 1 || opts.MaxStrokes < opts.MinStrokes:
		return errors.Wrapf(ErrInvalidConfiguration, "invalid number of strokes [%d, %d]",
			opts.MinStrokes, opts.MaxStrokes)
	case opts.MinVertices < 2 || opts.MaxVertices < opts.MinVertices:
		return errors.Wrapf(ErrInvalidConfiguration, "invalid number of stroke vertices [%d, %d]",
			opts.MinVertices, opts.MaxVertices)
	case opts.MinWidthFraction <= 0 || opts.MaxWidthFraction < opts.MinWidthFraction:
		return errors.Wrapf(ErrInvalidConfiguration, "invalid brush width fractions [%g, %g]",
			opts.MinWidthFraction, opts.MaxWidthFraction)
	case opts.RadiusFraction <= 0:
		return errors.Wrapf(ErrInvalidConfiguration, "invalid stroke radius fraction %g", opts.RadiusFraction)
	}
	return nil
}

// Stroke is one brush path: its vertices and the brush width, in pixels.
type Stroke struct {
	Vertices []Point
	Width    float64
}

// RandomStrokes returns the random brush strokes used by BrushStrokeMask, before rasterization.
func RandomStrokes(rng *rand.Rand, size ImageSize, opts StrokeOptions) []Stroke {
	h, w := float64(size.Height), float64(size.Width)
	meanRadius := math.Hypot(h, w) * opts.RadiusFraction
	averageSide := (h + w) / 2

	numStrokes := randomInRange(rng, opts.MinStrokes, opts.MaxStrokes)
	strokes := make([]Stroke, 0, numStrokes)
	for range numStrokes {
		numVertices := randomInRange(rng, opts.MinVertices, opts.MaxVertices)
		angleMin := opts.MeanAngle - rng.Float64()*opts.AngleRange
		angleMax := opts.MeanAngle + rng.Float64()*opts.AngleRange
		vertices := make([]Point, 0, numVertices)
		vertices = append(vertices, Point{X: float64(rng.IntN(size.Width)), Y: float64(rng.IntN(size.Height))})
		for ii := 1; ii < numVertices; ii++ {
			angle := angleMin + rng.Float64()*(angleMax-angleMin)
			if ii%2 == 0 {
				angle = 2*math.Pi - angle
			}
			length := rng.NormFloat64()*meanRadius/2 + meanRadius
			length = math.Max(0, math.Min(2*meanRadius, length))
			last := vertices[len(vertices)-1]
			vertices = append(vertices, Point{
				X: math.Max(0, math.Min(w-1, last.X+length*math.Cos(angle))),
				Y: math.Max(0, math.Min(h-1, last.Y+length*math.Sin(angle))),
			})
		}
		widthFraction := opts.MinWidthFraction + rng.Float64()*(opts.MaxWidthFraction-opts.MinWidthFraction)
		strokes = append(strokes, Stroke{
			Vertices: vertices,
			Width:    math.Max(1, widthFraction*averageSide),
		})
	}
	return strokes
}

// BrushStrokeMask returns a free-form mask made of random thick brush strokes.
//
// Each stroke starts at a random point and moves through segments of random length, turning by
// angles that alternate direction, which avoids the stroke folding back on itself too often.
// Points are clipped to the image. Segments are drawn with the stroke width and rounded joins.
func BrushStrokeMask(rng *rand.Rand, size ImageSize, opts StrokeOptions) (*Mask, error) {
	if err := size.Validate(MinImageSide); err != nil {
		return nil, err
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	m := New(size)
	for _, stroke := range RandomStrokes(rng, size, opts) {
		m.DrawPolyline(stroke.Vertices, stroke.Width)
	}
	if opts.RandomFlips {
		if rng.IntN(2) == 1 {
			m.FlipHorizontal()
		}
		if rng.IntN(2) == 1 {
			m.FlipVertical()
		}
	}
	return m, nil
}
