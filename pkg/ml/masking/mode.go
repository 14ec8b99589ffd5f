// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package masking selects and runs the mask generation strategy configured for a dataset.
//
// The configuration names a Mode (the `mask_mode` key of a mask configuration). NewStrategy
// resolves it to one Strategy variant carrying only the fields that mode needs, and a Generator
// produces one fresh mask per training example from it.
package masking

import "github.com/pkg/errors"

// ErrUnsupportedMaskMode is returned for mask mode names (or values) that are not known.
var ErrUnsupportedMaskMode = errors.New("unsupported mask mode")

// Mode enumerates the mask generation strategies. The zero value is not a valid mode.
//
// String and ModeString convert to and from the configuration names, e.g. "free_form".
type Mode uint8

//go:generate go tool enumer -type=Mode -trimprefix=Mode -transform=lower -linecomment -values -text -json -yaml -output=gen_mode_enumer.go mode.go

const (
	// ModeBBox occludes a random bounding box.
	ModeBBox Mode = iota + 1

	// ModeCenter occludes the central box, with half the image height and width.
	ModeCenter

	// ModeIrregular occludes a union of random blobs.
	ModeIrregular

	// ModeFreeForm occludes random brush strokes.
	ModeFreeForm // free_form

	// ModeHybrid depends on the Context: for inpainting it is the union of a random box and brush strokes;
	// for uncropping it randomly picks ModeOneDirection or ModeFourDirection.
	ModeHybrid

	// ModeManual occludes a box given in the configuration.
	ModeManual

	// ModeFourDirection occludes a strip along each image edge.
	ModeFourDirection

	// ModeOneDirection occludes one side of the image.
	ModeOneDirection

	// ModeFile takes the mask from a mask-indicator image on disk.
	ModeFile
)

// Context of the dataset using the mask: it disambiguates ModeHybrid.
type Context uint8

//go:generate go tool enumer -type=Context -transform=lower -text -json -yaml -output=gen_context_enumer.go mode.go

const (
	Inpainting Context = iota
	Uncropping
)
