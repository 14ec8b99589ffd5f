// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package images converts images to tensors and back, with the channels axis first or last and an
// optional normalization of the values.
package images

import (
	"image"
	"math"

	"github.com/disintegration/imaging"
	"github.com/gomlx/exceptions"
	"github.com/gomlx/inpainting/pkg/core/tensors"
	"k8s.io/klog/v2"
)

// ChannelsAxisConfig is the position of the channels axis of an image tensor: after the optional
// batch axis (ChannelsFirst) or as the last axis (ChannelsLast).
type ChannelsAxisConfig uint8

//go:generate go tool enumer -type=ChannelsAxisConfig -output=gen_channelsaxisconfig_enumer.go images.go

const (
	ChannelsFirst ChannelsAxisConfig = iota
	ChannelsLast
)

// Normalization maps a channel value v in [0, 1] to (v-Mean)/Std.
type Normalization struct {
	Mean, Std float64
}

// MinusOneToOne maps [0, 1] to [-1, 1].
var MinusOneToOne = Normalization{Mean: 0.5, Std: 0.5}

// ToTensorConfig is built by ToTensor, and converts with Single or Batch.
type ToTensorConfig struct {
	channels      int
	maxValue      float64
	dtype         tensors.DType
	channelsAxis  ChannelsAxisConfig
	normalization *Normalization
}

// ToTensor starts the configuration of an image to tensor conversion, into the given dtype.
// Channels are read with 8 bits and not premultiplied by alpha.
//
//	t := images.ToTensor(tensors.Float32).ChannelsAxis(images.ChannelsFirst).Normalize(images.MinusOneToOne).Single(img)
func ToTensor(dtype tensors.DType) *ToTensorConfig {
	tt := &ToTensorConfig{
		channels:     3,
		maxValue:     1.0,
		dtype:        dtype,
		channelsAxis: ChannelsLast,
	}
	if !dtype.IsFloat() {
		tt.maxValue = 255.0
	}
	return tt
}

// WithAlpha keeps the alpha channel, for 4 channels. By default, it is dropped.
func (tt *ToTensorConfig) WithAlpha() *ToTensorConfig {
	tt.channels = 4
	return tt
}

// MaxValue is the value of a saturated channel: 1.0 by default for float dtypes, 255 otherwise.
func (tt *ToTensorConfig) MaxValue(v float64) *ToTensorConfig {
	tt.maxValue = v
	return tt
}

// ChannelsAxis of the output tensor, ChannelsLast by default.
func (tt *ToTensorConfig) ChannelsAxis(config ChannelsAxisConfig) *ToTensorConfig {
	tt.channelsAxis = config
	return tt
}

// Normalize scales channel values to [0, 1] and then applies n, ignoring MaxValue.
// It panics for non-float dtypes.
func (tt *ToTensorConfig) Normalize(n Normalization) *ToTensorConfig {
	if !tt.dtype.IsFloat() {
		exceptions.Panicf("images.ToTensor(%s): only float dtypes can be normalized", tt.dtype)
	}
	if n.Std == 0 {
		exceptions.Panicf("images.ToTensor: normalization with zero standard deviation")
	}
	tt.normalization = &n
	return tt
}

// Single returns img as a rank-3 tensor, `[height, width, channels]` or `[channels, height, width]`.
func (tt *ToTensorConfig) Single(img image.Image) *tensors.Tensor {
	return tt.convert([]image.Image{img}, false)
}

// Batch returns images as a rank-4 tensor, with the batch axis first.
// It panics if the images have different sizes.
func (tt *ToTensorConfig) Batch(images []image.Image) *tensors.Tensor {
	if len(images) == 0 {
		exceptions.Panicf("images.ToTensor: no images given to Batch")
	}
	return tt.convert(images, true)
}

// channelValue converts an 8 bits, non-premultiplied, color channel.
func (tt *ToTensorConfig) channelValue(val uint8) float32 {
	v := float64(val) / 255.0
	if tt.normalization != nil {
		return float32((v - tt.normalization.Mean) / tt.normalization.Std)
	}
	return float32(v * tt.maxValue)
}

// toNRGBA returns img with non-premultiplied 8 bits channels: the color of transparent pixels is
// preserved.
func toNRGBA(img image.Image) *image.NRGBA {
	if nrgba, ok := img.(*image.NRGBA); ok {
		return nrgba
	}
	return imaging.Clone(img)
}

func (tt *ToTensorConfig) convert(images []image.Image, batch bool) *tensors.Tensor {
	imgSize := images[0].Bounds().Size()
	height, width, channels := imgSize.Y, imgSize.X, tt.channels
	imageLen := height * width * channels
	values := make([]float32, len(images)*imageLen)
	for imgIdx, img := range images {
		if !img.Bounds().Size().Eq(imgSize) {
			exceptions.Panicf(
				"image[%d] has size %s, but image[0] has size %s -- they must all be the same",
				imgIdx, img.Bounds().Size(), imgSize)
		}
		flat := values[imgIdx*imageLen : (imgIdx+1)*imageLen]
		nrgba := toNRGBA(img)
		minPoint := nrgba.Bounds().Min
		for y := range height {
			for x := range width {
				pixel := nrgba.Pix[nrgba.PixOffset(minPoint.X+x, minPoint.Y+y):]
				for c := range channels {
					var pos int
					if tt.channelsAxis == ChannelsFirst {
						pos = (c*height+y)*width + x
					} else {
						pos = (y*width+x)*channels + c
					}
					flat[pos] = tt.channelValue(pixel[c])
				}
			}
		}
	}

	var dims []int
	if tt.channelsAxis == ChannelsFirst {
		dims = []int{channels, height, width}
	} else {
		dims = []int{height, width, channels}
	}
	if batch {
		dims = append([]int{len(images)}, dims...)
	}
	return tensors.FromFloat32(tt.dtype, values, dims...)
}

// ToImageConfig is built by ToImage, and converts with Single or Batch.
type ToImageConfig struct {
	maxValue      float64
	channelsAxis  ChannelsAxisConfig
	normalization *Normalization
}

// ToImage starts the configuration of a tensor to image conversion. Images are `*image.NRGBA`.
func ToImage() *ToImageConfig {
	return &ToImageConfig{channelsAxis: ChannelsLast}
}

// MaxValue is the value of a saturated channel: 1.0 by default for float dtypes, 255 otherwise.
func (ti *ToImageConfig) MaxValue(v float64) *ToImageConfig {
	ti.maxValue = v
	return ti
}

// ChannelsAxis of the input tensor, ChannelsLast by default.
func (ti *ToImageConfig) ChannelsAxis(config ChannelsAxisConfig) *ToImageConfig {
	ti.channelsAxis = config
	return ti
}

// Denormalize reverts n, ignoring MaxValue. Values out of range saturate.
func (ti *ToImageConfig) Denormalize(n Normalization) *ToImageConfig {
	ti.normalization = &n
	return ti
}

// Single converts a rank-3 tensor. It panics on invalid shapes.
func (ti *ToImageConfig) Single(t *tensors.Tensor) image.Image {
	if t.Rank() != 3 {
		exceptions.Panicf("invalid tensor %s for images.ToImage().Single conversion, must be rank-3", t)
	}
	return ti.convert(t)[0]
}

// Batch converts a rank-4 tensor, batch axis first. It panics on invalid shapes.
func (ti *ToImageConfig) Batch(t *tensors.Tensor) []image.Image {
	if t.Rank() != 4 {
		exceptions.Panicf("invalid tensor %s for images.ToImage().Batch conversion, must be rank-4", t)
	}
	return ti.convert(t)
}

func (ti *ToImageConfig) convert(imagesTensor *tensors.Tensor) (images []image.Image) {
	dims := imagesTensor.Dimensions()
	numImages := 1
	if len(dims) == 4 {
		numImages = dims[0]
		dims = dims[1:]
	}
	var height, width, channels int
	if ti.channelsAxis == ChannelsFirst {
		channels, height, width = dims[0], dims[1], dims[2]
	} else {
		height, width, channels = dims[0], dims[1], dims[2]
	}
	if channels != 1 && channels != 3 && channels != 4 {
		exceptions.Panicf(
			"images.ToImage invalid tensor %s, with %d channels: only images with 1, 3 or 4 channels are supported",
			imagesTensor, channels)
	}
	maxValue := ti.maxValue
	if maxValue == 0 {
		if imagesTensor.DType().IsFloat() {
			maxValue = 1.0
		} else {
			maxValue = 255.0
		}
	}
	toUint8 := func(v float64) uint8 {
		if ti.normalization != nil {
			v = v*ti.normalization.Std + ti.normalization.Mean
		} else {
			v /= maxValue
		}
		return uint8(math.Round(255 * math.Max(0, math.Min(1, v))))
	}

	values := imagesTensor.Float32()
	imageLen := height * width * channels
	images = make([]image.Image, 0, numImages)
	for imgIdx := range numImages {
		flat := values[imgIdx*imageLen : (imgIdx+1)*imageLen]
		img := image.NewNRGBA(image.Rect(0, 0, width, height))
		for y := range height {
			for x := range width {
				pix := img.Pix[y*img.Stride+x*4 : y*img.Stride+x*4+4]
				pix[3] = 255 // Alpha channel, if not given.
				for c := range channels {
					var pos int
					if ti.channelsAxis == ChannelsFirst {
						pos = (c*height+y)*width + x
					} else {
						pos = (y*width+x)*channels + c
					}
					pix[c] = toUint8(float64(flat[pos]))
				}
				if channels == 1 {
					pix[1], pix[2] = pix[0], pix[0]
				}
			}
		}
		images = append(images, img)
	}
	klog.V(2).Infof("images.ToImage: converted %s to %d images of %dx%d", imagesTensor, numImages, width, height)
	return
}
