// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package masks

import (
	"fmt"
	"math/rand/v2"

	"github.com/pkg/errors"
)

// BBox is an axis-aligned rectangle given by its top-left corner and its height and width, in pixels.
type BBox struct {
	Top, Left, Height, Width int
}

// String implements fmt.Stringer.
func (b BBox) String() string {
	return fmt.Sprintf("(top=%d, left=%d, height=%d, width=%d)", b.Top, b.Left, b.Height, b.Width)
}

// Validate checks that the box is not empty and fits inside an image of the given size.
func (b BBox) Validate(size ImageSize) error {
	if b.Top < 0 || b.Left < 0 || b.Height <= 0 || b.Width <= 0 ||
		b.Top+b.Height > size.Height || b.Left+b.Width > size.Width {
		return errors.Wrapf(ErrInvalidConfiguration, "box %s doesn't fit image of size %s", b, size)
	}
	return nil
}

// CenterBBox returns the box covering the center of the image, with half its height and width.
func CenterBBox(size ImageSize) BBox {
	return BBox{
		Top:    size.Height / 4,
		Left:   size.Width / 4,
		Height: size.Height / 2,
		Width:  size.Width / 2,
	}
}

// BBoxOptions configures RandomBBox.
//
// The box starts at MaxHeight x MaxWidth, placed at least MarginH/MarginW pixels away from the image
// borders, and then shrinks its top/left sides by a random delta of up to half of MaxDeltaH/MaxDeltaW.
type BBoxOptions struct {
	MaxHeight int `yaml:"max_height"`
	MaxWidth  int `yaml:"max_width"`
	MaxDeltaH int `yaml:"max_delta_h"`
	MaxDeltaW int `yaml:"max_delta_w"`
	MarginH   int `yaml:"margin_h"`
	MarginW   int `yaml:"margin_w"`
}

// DefaultBBoxOptions scales the classic settings for 256x256 images (box of 128, delta of 40,
// margin of 20) to the given image size.
func DefaultBBoxOptions(size ImageSize) BBoxOptions {
	return BBoxOptions{
		MaxHeight: size.Height / 2,
		MaxWidth:  size.Width / 2,
		MaxDeltaH: size.Height * 40 / 256,
		MaxDeltaW: size.Width * 40 / 256,
		MarginH:   size.Height * 20 / 256,
		MarginW:   size.Width * 20 / 256,
	}
}

// Validate checks that boxes with these options fit an image of the given size.
func (opts BBoxOptions) Validate(size ImageSize) error {
	if err := size.Validate(MinImageSide); err != nil {
		return err
	}
	switch {
	case opts.MaxHeight <= 0 || opts.MaxWidth <= 0:
		return errors.Wrapf(ErrInvalidConfiguration, "empty maximum box %dx%d", opts.MaxHeight, opts.MaxWidth)
	case opts.MaxDeltaH < 0 || opts.MaxDeltaW < 0 || opts.MarginH < 0 || opts.MarginW < 0:
		return errors.Wrapf(ErrInvalidConfiguration, "negative box delta or margin in %+v", opts)
	case opts.MaxHeight > size.Height || opts.MaxWidth > size.Width:
		return errors.Wrapf(ErrInvalidConfiguration, "maximum box %dx%d larger than image %s",
			opts.MaxHeight, opts.MaxWidth, size)
	case opts.MaxDeltaH/2*2 >= opts.MaxHeight || opts.MaxDeltaW/2*2 >= opts.MaxWidth:
		return errors.Wrapf(ErrInvalidConfiguration, "box delta (%d, %d) too large for box %dx%d",
			opts.MaxDeltaH, opts.MaxDeltaW, opts.MaxHeight, opts.MaxWidth)
	case size.Height-opts.MaxHeight <= 2*opts.MarginH || size.Width-opts.MaxWidth <= 2*opts.MarginW:
		return errors.Wrapf(ErrInvalidConfiguration, "margins (%d, %d) leave no room for box %dx%d in image %s",
			opts.MarginH, opts.MarginW, opts.MaxHeight, opts.MaxWidth, size)
	}
	return nil
}

// RandomBBox returns a random box that fits inside the image.
//
// It fails with ErrInvalidConfiguration if the image is too small for the options.
func RandomBBox(rng *rand.Rand, size ImageSize, opts BBoxOptions) (BBox, error) {
	if err := opts.Validate(size); err != nil {
		return BBox{}, err
	}
	maxTop := size.Height - opts.MarginH - opts.MaxHeight
	maxLeft := size.Width - opts.MarginW - opts.MaxWidth
	top := opts.MarginH + rng.IntN(maxTop-opts.MarginH)
	left := opts.MarginW + rng.IntN(maxLeft-opts.MarginW)
	deltaTop := rng.IntN(opts.MaxDeltaH/2 + 1)
	deltaLeft := rng.IntN(opts.MaxDeltaW/2 + 1)
	return BBox{
		Top:    top + deltaTop,
		Left:   left + deltaLeft,
		Height: opts.MaxHeight - deltaTop,
		Width:  opts.MaxWidth - deltaLeft,
	}, nil
}

// CropDirection selects how RandomCroppingBBoxes places its boxes.
type CropDirection uint8

//go:generate go tool enumer -type=CropDirection -transform=snake -text -json -yaml -output=gen_cropdirection_enumer.go bbox.go

const (
	// OneDirection occludes one side of the image: a single box spanning the full width or height,
	// anchored at a random edge.
	OneDirection CropDirection = iota

	// FourDirections occludes a strip along each of the four edges.
	FourDirections
)

// Edge of an image.
type Edge uint8

const (
	TopEdge Edge = iota
	BottomEdge
	LeftEdge
	RightEdge
	numEdges
)

// EdgeBBox returns the box spanning the whole given edge of the image, with the given extent
// (height for top/bottom, width for left/right).
func EdgeBBox(size ImageSize, edge Edge, extent int) BBox {
	switch edge {
	case TopEdge:
		return BBox{Top: 0, Left: 0, Height: extent, Width: size.Width}
	case BottomEdge:
		return BBox{Top: size.Height - extent, Left: 0, Height: extent, Width: size.Width}
	case LeftEdge:
		return BBox{Top: 0, Left: 0, Height: size.Height, Width: extent}
	default:
		return BBox{Top: 0, Left: size.Width - extent, Height: size.Height, Width: extent}
	}
}

// randomInRange returns a uniform random int in [low, high].
func randomInRange(rng *rand.Rand, low, high int) int {
	if high <= low {
		return low
	}
	return low + rng.IntN(high-low+1)
}

// RandomCroppingBBoxes returns the boxes to occlude for uncropping.
//
//   - OneDirection: one box along a random edge, with extent in [side/4, side/2].
//   - FourDirections: one box per edge, each with an independent extent in [side/8, side/4].
//
// The side is the image height for top/bottom edges and the width for left/right.
func RandomCroppingBBoxes(rng *rand.Rand, size ImageSize, direction CropDirection) ([]BBox, error) {
	if err := size.Validate(MinImageSide); err != nil {
		return nil, err
	}
	side := func(edge Edge) int {
		if edge == TopEdge || edge == BottomEdge {
			return size.Height
		}
		return size.Width
	}
	switch direction {
	case OneDirection:
		edge := Edge(rng.IntN(int(numEdges)))
		s := side(edge)
		return []BBox{EdgeBBox(size, edge, randomInRange(rng, s/4, s/2))}, nil
	case FourDirections:
		boxes := make([]BBox, 0, numEdges)
		for edge := range numEdges {
			s := side(edge)
			boxes = append(boxes, EdgeBBox(size, edge, randomInRange(rng, max(1, s/8), s/4)))
		}
		return boxes, nil
	}
	return nil, errors.Wrapf(ErrInvalidConfiguration, "unknown crop direction %s", direction)
}
