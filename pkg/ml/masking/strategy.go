// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package masking

import (
	"math/rand/v2"

	"github.com/gomlx/inpainting/pkg/core/masks"
	"github.com/pkg/errors"
)

// Strategy generates masks for one Mode. The implementations are the variants below, one per
// mode, each holding only the configuration its mode uses.
type Strategy interface {
	// Mode this strategy implements.
	Mode() Mode

	// Validate returns an error if the strategy can't generate masks of the given size.
	Validate(size masks.ImageSize) error

	// Generate a new mask. It returns a nil mask for ModeFile.
	Generate(rng *rand.Rand, size masks.ImageSize) (*masks.Mask, error)

	isStrategy()
}

var (
	_ Strategy = BBoxStrategy{}
	_ Strategy = CenterStrategy{}
	_ Strategy = IrregularStrategy{}
	_ Strategy = FreeFormStrategy{}
	_ Strategy = InpaintHybridStrategy{}
	_ Strategy = CropHybridStrategy{}
	_ Strategy = ManualStrategy{}
	_ Strategy = DirectionalStrategy{}
	_ Strategy = FileStrategy{}
)

// BBoxStrategy occludes a random box. If Options is nil, masks.DefaultBBoxOptions is used.
type BBoxStrategy struct {
	Options *masks.BBoxOptions
}

func (BBoxStrategy) isStrategy() {}

// Mode implements Strategy.
func (BBoxStrategy) Mode() Mode { return ModeBBox }

func (s BBoxStrategy) options(size masks.ImageSize) masks.BBoxOptions {
	if s.Options != nil {
		return *s.Options
	}
	return masks.DefaultBBoxOptions(size)
}

// Validate implements Strategy.
func (s BBoxStrategy) Validate(size masks.ImageSize) error {
	return s.options(size).Validate(size)
}

// Generate implements Strategy.
func (s BBoxStrategy) Generate(rng *rand.Rand, size masks.ImageSize) (*masks.Mask, error) {
	box, err := masks.RandomBBox(rng, size, s.options(size))
	if err != nil {
		return nil, err
	}
	return masks.BBoxToMask(size, box)
}

// CenterStrategy occludes the central box.
type CenterStrategy struct{}

func (CenterStrategy) isStrategy() {}

// Mode implements Strategy.
func (CenterStrategy) Mode() Mode { return ModeCenter }

// Validate implements Strategy.
func (CenterStrategy) Validate(size masks.ImageSize) error {
	return masks.CenterBBox(size).Validate(size)
}

// Generate implements Strategy.
func (CenterStrategy) Generate(_ *rand.Rand, size masks.ImageSize) (*masks.Mask, error) {
	return masks.BBoxToMask(size, masks.CenterBBox(size))
}

// IrregularStrategy occludes random blobs.
type IrregularStrategy struct {
	Options masks.IrregularOptions
}

func (IrregularStrategy) isStrategy() {}

// Mode implements Strategy.
func (IrregularStrategy) Mode() Mode { return ModeIrregular }

// Validate implements Strategy.
func (s IrregularStrategy) Validate(size masks.ImageSize) error {
	if err := size.Validate(masks.MinImageSide); err != nil {
		return err
	}
	return s.Options.Validate()
}

// Generate implements Strategy.
func (s IrregularStrategy) Generate(rng *rand.Rand, size masks.ImageSize) (*masks.Mask, error) {
	return masks.IrregularMask(rng, size, s.Options)
}

// FreeFormStrategy occludes random brush strokes.
type FreeFormStrategy struct {
	Options masks.StrokeOptions
}

func (FreeFormStrategy) isStrategy() {}

// Mode implements Strategy.
func (FreeFormStrategy) Mode() Mode { return ModeFreeForm }

// Validate implements Strategy.
func (s FreeFormStrategy) Validate(size masks.ImageSize) error {
	if err := size.Validate(masks.MinImageSide); err != nil {
		return err
	}
	return s.Options.Validate()
}

// Generate implements Strategy.
func (s FreeFormStrategy) Generate(rng *rand.Rand, size masks.ImageSize) (*masks.Mask, error) {
	return masks.BrushStrokeMask(rng, size, s.Options)
}

// InpaintHybridStrategy occludes the union of a random box and random brush strokes.
type InpaintHybridStrategy struct {
	BBox    BBoxStrategy
	Strokes FreeFormStrategy
}

func (InpaintHybridStrategy) isStrategy() {}

// Mode implements Strategy.
func (InpaintHybridStrategy) Mode() Mode { return ModeHybrid }

// Validate implements Strategy.
func (s InpaintHybridStrategy) Validate(size masks.ImageSize) error {
	if err := s.BBox.Validate(size); err != nil {
		return err
	}
	return s.Strokes.Validate(size)
}

// Generate implements Strategy.
func (s InpaintHybridStrategy) Generate(rng *rand.Rand, size masks.ImageSize) (*masks.Mask, error) {
	regular, err := s.BBox.Generate(rng, size)
	if err != nil {
		return nil, err
	}
	irregular, err := s.Strokes.Generate(rng, size)
	if err != nil {
		return nil, err
	}
	if err = regular.UnionInPlace(irregular); err != nil {
		return nil, err
	}
	return regular, nil
}

// CropHybridStrategy randomly occludes one side or the four sides of the image, with equal probability.
type CropHybridStrategy struct{}

func (CropHybridStrategy) isStrategy() {}

// Mode implements Strategy.
func (CropHybridStrategy) Mode() Mode { return ModeHybrid }

// Validate implements Strategy.
func (CropHybridStrategy) Validate(size masks.ImageSize) error {
	return size.Validate(masks.MinImageSide)
}

// Generate implements Strategy.
func (CropHybridStrategy) Generate(rng *rand.Rand, size masks.ImageSize) (*masks.Mask, error) {
	direction := masks.OneDirection
	if rng.IntN(2) == 1 {
		direction = masks.FourDirections
	}
	return DirectionalStrategy{Direction: direction}.Generate(rng, size)
}

// ManualStrategy occludes a fixed box.
type ManualStrategy struct {
	Box masks.BBox
}

func (ManualStrategy) isStrategy() {}

// Mode implements Strategy.
func (ManualStrategy) Mode() Mode { return ModeManual }

// Validate implements Strategy.
func (s ManualStrategy) Validate(size masks.ImageSize) error {
	return s.Box.Validate(size)
}

// Generate implements Strategy.
func (s ManualStrategy) Generate(_ *rand.Rand, size masks.ImageSize) (*masks.Mask, error) {
	return masks.BBoxToMask(size, s.Box)
}

// DirectionalStrategy occludes image sides for uncropping.
type DirectionalStrategy struct {
	Direction masks.CropDirection
}

func (DirectionalStrategy) isStrategy() {}

// Mode implements Strategy.
func (s DirectionalStrategy) Mode() Mode {
	if s.Direction == masks.FourDirections {
		return ModeFourDirection
	}
	return ModeOneDirection
}

// Validate implements Strategy.
func (DirectionalStrategy) Validate(size masks.ImageSize) error {
	return size.Validate(masks.MinImageSide)
}

// Generate implements Strategy.
func (s DirectionalStrategy) Generate(rng *rand.Rand, size masks.ImageSize) (*masks.Mask, error) {
	boxes, err := masks.RandomCroppingBBoxes(rng, size, s.Direction)
	if err != nil {
		return nil, err
	}
	return masks.BBoxesToMask(size, boxes...)
}

// FileStrategy doesn't generate masks: they are derived from mask-indicator images
// (see masks.FromSentinel).
type FileStrategy struct{}

func (FileStrategy) isStrategy() {}

// Mode implements Strategy.
func (FileStrategy) Mode() Mode { return ModeFile }

// Validate implements Strategy.
func (FileStrategy) Validate(masks.ImageSize) error { return nil }

// Generate implements Strategy. It always returns a nil mask.
func (FileStrategy) Generate(*rand.Rand, masks.ImageSize) (*masks.Mask, error) { return nil, nil }

// NewStrategy returns the Strategy variant for the configured mode.
//
// It returns ErrUnsupportedMaskMode for unknown modes, and masks.ErrInvalidConfiguration if
// ModeManual has no box.
func NewStrategy(cfg Config, ctx Context) (Strategy, error) {
	switch cfg.Mode {
	case ModeBBox:
		return BBoxStrategy{Options: cfg.BBox}, nil
	case ModeCenter:
		return CenterStrategy{}, nil
	case ModeIrregular:
		return IrregularStrategy{Options: cfg.irregularOptions()}, nil
	case ModeFreeForm:
		return FreeFormStrategy{Options: cfg.strokeOptions()}, nil
	case ModeHybrid:
		switch ctx {
		case Inpainting:
			return InpaintHybridStrategy{
				BBox:    BBoxStrategy{Options: cfg.BBox},
				Strokes: FreeFormStrategy{Options: cfg.strokeOptions()},
			}, nil
		case Uncropping:
			return CropHybridStrategy{}, nil
		}
		return nil, errors.Wrapf(ErrUnsupportedMaskMode, "mask mode %s has no variant for context %s", cfg.Mode, ctx)
	case ModeManual:
		if cfg.Shape == nil {
			return nil, errors.Wrapf(masks.ErrInvalidConfiguration, "mask mode %s requires the key %q", cfg.Mode, KeyShape)
		}
		return ManualStrategy{Box: *cfg.Shape}, nil
	case ModeFourDirection:
		return DirectionalStrategy{Direction: masks.FourDirections}, nil
	case ModeOneDirection:
		return DirectionalStrategy{Direction: masks.OneDirection}, nil
	case ModeFile:
		return FileStrategy{}, nil
	default:
		return nil, errors.Wrapf(ErrUnsupportedMaskMode, "mask mode %s has not been implemented", cfg.Mode)
	}
}
