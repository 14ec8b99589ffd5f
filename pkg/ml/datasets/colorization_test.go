// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package datasets

import (
	"image"
	"path/filepath"
	"testing"

	"github.com/gomlx/inpainting/pkg/core/masks"
	"github.com/gomlx/inpainting/pkg/core/tensors"
	"github.com/janpfeifer/must"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColorization(t *testing.T) {
	box := image.Rect(0, 0, 4, 4)
	root, nameList := makePairedDir(t, []string{"b", "a", "c"}, 8, box)
	ds := must.M1(NewColorization(&Config{DataRoot: root, DataFlist: nameList, DataLen: 2, ImageSize: []int{8, 8}}))
	require.Equal(t, 2, ds.Len())

	record := must.M1(ds.Get(nil, 1))
	// Name list order is kept.
	assert.Equal(t, "a.png", record.Path)
	assert.Equal(t, []int{3, 8, 8}, record.GTImage.Dimensions())
	assert.Equal(t, []int{3, 8, 8}, record.CondImage.Dimensions())
	assert.Nil(t, record.Mask)
	assert.Nil(t, record.MaskImage)
	asMap := record.AsMap()
	assert.Len(t, asMap, 3)
	assert.Equal(t, "a.png", asMap[KeyPath])

	_, err := ds.Get(nil, 2)
	require.Error(t, err)
}

func TestColorizationSentinelMask(t *testing.T) {
	box := image.Rect(0, 0, 4, 4)
	root, nameList := makePairedDir(t, []string{"x"}, 8, box)
	for _, polarity := range []masks.SentinelPolarity{masks.SentinelOccluded, masks.SentinelUnoccluded} {
		ds := must.M1(NewColorization(&Config{DataRoot: root, DataFlist: nameList, ImageSize: []int{8, 8}}))
		ds.WithSentinelMask(polarity)
		record := must.M1(ds.Get(nil, 0))
		require.NotNil(t, record.Mask)
		mask := tensors.CopyFlatData[uint8](record.Mask)
		for y := range 8 {
			for x := range 8 {
				inBox := image.Pt(x, y).In(box)
				occluded := mask[y*8+x] == 1
				if polarity == masks.SentinelOccluded {
					require.Equal(t, inBox, occluded)
				} else {
					require.Equal(t, !inBox, occluded)
				}
			}
		}
	}

	// From configuration.
	ds := must.M1(NewColorization(&Config{DataRoot: root, DataFlist: nameList, ImageSize: []int{8, 8}, SentinelMask: "unoccluded"}))
	record := must.M1(ds.Get(nil, 0))
	assert.Equal(t, 64-16, countOnes(record.Mask))
	_, err := NewColorization(&Config{DataRoot: root, DataFlist: nameList, SentinelMask: "sideways"})
	require.ErrorIs(t, err, masks.ErrInvalidConfiguration)
}

func countOnes(t *tensors.Tensor) (count int) {
	for _, v := range tensors.CopyFlatData[uint8](t) {
		count += int(v)
	}
	return
}

func TestColorizationErrors(t *testing.T) {
	root, _ := makePairedDir(t, []string{"x"}, 8, image.Rectangle{})
	_, err := NewColorization(&Config{DataRoot: root})
	require.ErrorIs(t, err, masks.ErrInvalidConfiguration)

	nameList := filepath.Join(root, "unknown_names.txt")
	saveManifest(t, nameList, "y")
	ds := must.M1(NewColorization(&Config{DataRoot: root, DataFlist: nameList, ImageSize: []int{8, 8}}))
	_, err = ds.Get(nil, 0)
	require.ErrorIs(t, err, ErrMissingAsset)
}
