// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package tensors implement a host-only `Tensor`, a multidimensional array
// stored as a flat slice of its DType.
//
// It is the container of the training records: image values shaped
// `[channels, height, width]` and masks shaped `[1, height, width]`.
//
// Constructors:
//
//   - FromShape(dtype, dimensions...): zero-filled tensor.
//   - FromFlatDataAndDimensions[T](data []T, dimensions...): copies data.
//   - FromFloat32(dtype, data []float32, dimensions...): converts float32 values to the dtype.
//
// Tensors are not safe for concurrent mutation; records own their tensors.
package tensors

import (
	"fmt"
	"math"
	"slices"

	"github.com/gomlx/exceptions"
	"github.com/x448/float16"
)

// Tensor is a multidimensional array with a DType, dimensions and its flat content.
type Tensor struct {
	dtype      DType
	dimensions []int
	flat       any
}

func sizeOf(dimensions []int) int {
	size := 1
	for _, dim := range dimensions {
		if dim < 0 {
			exceptions.Panicf("negative dimension in %v", dimensions)
		}
		size *= dim
	}
	return size
}

// FromShape creates a tensor with the given dtype and dimensions, filled with zeros.
func FromShape(dtype DType, dimensions ...int) *Tensor {
	size := sizeOf(dimensions)
	t := &Tensor{dtype: dtype, dimensions: slices.Clone(dimensions)}
	switch dtype {
	case Float32:
		t.flat = make([]float32, size)
	case Float64:
		t.flat = make([]float64, size)
	case Float16:
		t.flat = make([]float16.Float16, size)
	case Uint8:
		t.flat = make([]uint8, size)
	default:
		exceptions.Panicf("tensors.FromShape: unsupported dtype %s", dtype)
	}
	return t
}

// FromFlatDataAndDimensions creates a tensor with the given dimensions, filled with the flattened values given in `data`.
// The data is copied to the Tensor.
//
// It panics if the size of data is wrong for the dimensions.
func FromFlatDataAndDimensions[T Supported](data []T, dimensions ...int) *Tensor {
	if len(data) != sizeOf(dimensions) {
		exceptions.Panicf("FromFlatDataAndDimensions(%v): data size is %d, but dimensions size is %d",
			dimensions, len(data), sizeOf(dimensions))
	}
	return &Tensor{
		dtype:      FromGenericsType[T](),
		dimensions: slices.Clone(dimensions),
		flat:       slices.Clone(data),
	}
}

// FromFloat32 creates a tensor of the given dtype from float32 values.
// Conversion to Uint8 rounds and saturates to [0, 255].
func FromFloat32(dtype DType, data []float32, dimensions ...int) *Tensor {
	if dtype == Float32 {
		return FromFlatDataAndDimensions(data, dimensions...)
	}
	t := FromShape(dtype, dimensions...)
	if len(data) != t.Size() {
		exceptions.Panicf("FromFloat32(%s, %v): data size is %d, but dimensions size is %d",
			dtype, dimensions, len(data), t.Size())
	}
	switch flat := t.flat.(type) {
	case []float64:
		for ii, v := range data {
			flat[ii] = float64(v)
		}
	case []float16.Float16:
		for ii, v := range data {
			flat[ii] = float16.Fromfloat32(v)
		}
	case []uint8:
		for ii, v := range data {
			flat[ii] = uint8(math.Round(math.Max(0, math.Min(255, float64(v)))))
		}
	}
	return t
}

// DType of the tensor elements.
func (t *Tensor) DType() DType { return t.dtype }

// Dimensions returns a copy of the tensor dimensions.
func (t *Tensor) Dimensions() []int { return slices.Clone(t.dimensions) }

// Rank is the number of axes.
func (t *Tensor) Rank() int { return len(t.dimensions) }

// Size is the total number of elements.
func (t *Tensor) Size() int { return sizeOf(t.dimensions) }

// Memory returns the number of bytes used by the flat data.
func (t *Tensor) Memory() uintptr { return uintptr(t.Size() * t.dtype.Size()) }

// ConstFlatData calls accessFn with the flat data, a slice of the tensor's DType.
// The data must not be modified.
func (t *Tensor) ConstFlatData(accessFn func(flat any)) {
	accessFn(t.flat)
}

// MutableFlatData calls accessFn with the flat data, which can be modified in place.
func (t *Tensor) MutableFlatData(accessFn func(flat any)) {
	accessFn(t.flat)
}

// ConstFlatData is the generic version of Tensor.ConstFlatData.
// It panics if T doesn't match the tensor DType.
func ConstFlatData[T Supported](t *Tensor, accessFn func(flat []T)) {
	flat, ok := t.flat.([]T)
	if !ok {
		exceptions.Panicf("ConstFlatData[%T]: tensor has dtype %s", *new(T), t.dtype)
	}
	accessFn(flat)
}

// MutableFlatData is the generic version of Tensor.MutableFlatData.
// It panics if T doesn't match the tensor DType.
func MutableFlatData[T Supported](t *Tensor, accessFn func(flat []T)) {
	ConstFlatData(t, accessFn)
}

// CopyFlatData returns a copy of the flat data.
// It panics if T doesn't match the tensor DType.
func CopyFlatData[T Supported](t *Tensor) (flat []T) {
	ConstFlatData(t, func(data []T) {
		flat = slices.Clone(data)
	})
	return
}

// Float32 returns a copy of the values converted to float32.
func (t *Tensor) Float32() []float32 {
	values := make([]float32, t.Size())
	switch flat := t.flat.(type) {
	case []float32:
		copy(values, flat)
	case []float64:
		for ii, v := range flat {
			values[ii] = float32(v)
		}
	case []float16.Float16:
		for ii, v := range flat {
			values[ii] = v.Float32()
		}
	case []uint8:
		for ii, v := range flat {
			values[ii] = float32(v)
		}
	}
	return values
}

// Equal checks whether t and other have the same dtype, dimensions and values.
func (t *Tensor) Equal(other *Tensor) bool {
	if t == other {
		return true
	}
	if t.dtype != other.dtype || !slices.Equal(t.dimensions, other.dimensions) {
		return false
	}
	switch flat := t.flat.(type) {
	case []float32:
		return slices.Equal(flat, other.flat.([]float32))
	case []float64:
		return slices.Equal(flat, other.flat.([]float64))
	case []float16.Float16:
		return slices.Equal(flat, other.flat.([]float16.Float16))
	case []uint8:
		return slices.Equal(flat, other.flat.([]uint8))
	}
	return false
}

// String returns the dtype and dimensions.
func (t *Tensor) String() string {
	return fmt.Sprintf("(%s)%v", t.dtype, t.dimensions)
}
