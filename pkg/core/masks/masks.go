// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package masks generates binary occlusion masks used to build inpainting,
// uncropping and colorization training examples.
//
// A Mask marks pixels to be inpainted with 1 and pixels to keep with 0. Masks
// are produced from bounding boxes (see BBoxToMask), from synthesized brush
// strokes (see BrushStrokeMask), from irregular blobs (see IrregularMask) or
// recovered from an image holding a sentinel value (see FromSentinel).
//
// None of the generators keep state: randomness always comes from the
// *rand.Rand passed by the caller, so each worker can own its random source
// and results are reproducible given a seed.
package masks

import (
	"fmt"
	"image"

	"github.com/gomlx/inpainting/pkg/core/tensors"
	"github.com/pkg/errors"
)

// ErrInvalidConfiguration is returned when an image size, a box or a generator
// option cannot produce a valid mask.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// MinImageSide is the smallest height or width accepted by the random generators.
const MinImageSide = 8

// ImageSize holds the height and width of the images (and masks) of a dataset.
type ImageSize struct {
	Height, Width int
}

// String implements fmt.Stringer.
func (s ImageSize) String() string {
	return fmt.Sprintf("%dx%d", s.Height, s.Width)
}

// Area is the number of pixels.
func (s ImageSize) Area() int {
	return s.Height * s.Width
}

// Validate returns an ErrInvalidConfiguration if any of the dimensions is
// smaller than minSide.
func (s ImageSize) Validate(minSide int) error {
	if s.Height < minSide || s.Width < minSide {
		return errors.Wrapf(ErrInvalidConfiguration, "image size %s smaller than the minimum %dx%d",
			s, minSide, minSide)
	}
	return nil
}

// Mask is a dense binary mask shaped (height, width, 1), stored row-major.
// Values are either 0 (keep) or 1 (occluded).
type Mask struct {
	Size ImageSize
	Data []uint8
}

// New returns a zero-filled mask of the given size.
func New(size ImageSize) *Mask {
	return &Mask{
		Size: size,
		Data: make([]uint8, size.Area()),
	}
}

// Shape returns the dimensions of the mask, (height, width, 1).
func (m *Mask) Shape() []int {
	return []int{m.Size.Height, m.Size.Width, 1}
}

// At returns the value at row y, column x.
func (m *Mask) At(y, x int) uint8 {
	return m.Data[y*m.Size.Width+x]
}

// Set marks the pixel at row y, column x as occluded.
func (m *Mask) Set(y, x int) {
	m.Data[y*m.Size.Width+x] = 1
}

// Count returns the number of occluded pixels.
func (m *Mask) Count() (count int) {
	for _, v := range m.Data {
		count += int(v)
	}
	return
}

// Coverage returns the fraction of occluded pixels.
func (m *Mask) Coverage() float64 {
	if len(m.Data) == 0 {
		return 0
	}
	return float64(m.Count()) / float64(len(m.Data))
}

// Clone returns a copy of the mask.
func (m *Mask) Clone() *Mask {
	c := New(m.Size)
	copy(c.Data, m.Data)
	return c
}

// Equal returns whether both masks have the same size and values.
func (m *Mask) Equal(other *Mask) bool {
	if m.Size != other.Size {
		return false
	}
	for ii, v := range m.Data {
		if other.Data[ii] != v {
			return false
		}
	}
	return true
}

// UnionInPlace sets every pixel occluded in other as occluded in m.
func (m *Mask) UnionInPlace(other *Mask) error {
	if m.Size != other.Size {
		return errors.Errorf("cannot union masks of sizes %s and %s", m.Size, other.Size)
	}
	for ii, v := range other.Data {
		m.Data[ii] |= v
	}
	return nil
}

// Union returns a new mask with the pixels occluded in any of the given masks.
func Union(first *Mask, others ...*Mask) (*Mask, error) {
	result := first.Clone()
	for _, other := range others {
		if err := result.UnionInPlace(other); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// FlipHorizontal mirrors the mask left to right, in place.
func (m *Mask) FlipHorizontal() {
	w := m.Size.Width
	for y := range m.Size.Height {
		row := m.Data[y*w : (y+1)*w]
		for left, right := 0, w-1; left < right; left, right = left+1, right-1 {
			row[left], row[right] = row[right], row[left]
		}
	}
}

// FlipVertical mirrors the mask top to bottom, in place.
func (m *Mask) FlipVertical() {
	w := m.Size.Width
	for top, bottom := 0, m.Size.Height-1; top < bottom; top, bottom = top+1, bottom-1 {
		topRow := m.Data[top*w : (top+1)*w]
		bottomRow := m.Data[bottom*w : (bottom+1)*w]
		for x := range w {
			topRow[x], bottomRow[x] = bottomRow[x], topRow[x]
		}
	}
}

// ToTensor converts the mask to a channel-first tensor shaped `[1, height, width]`.
func (m *Mask) ToTensor(dtype tensors.DType) *tensors.Tensor {
	return tensors.FromFloat32(dtype, m.Float32(), 1, m.Size.Height, m.Size.Width)
}

// Float32 returns the mask values as a flat float32 slice, one value per pixel.
func (m *Mask) Float32() []float32 {
	values := make([]float32, len(m.Data))
	for ii, v := range m.Data {
		values[ii] = float32(v)
	}
	return values
}

// ToImage renders the mask as a grayscale image: occluded pixels are white.
func (m *Mask) ToImage() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, m.Size.Width, m.Size.Height))
	for y := range m.Size.Height {
		for x := range m.Size.Width {
			if m.At(y, x) != 0 {
				img.Pix[y*img.Stride+x] = 0xFF
			}
		}
	}
	return img
}
