// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package tensors

import "github.com/x448/float16"

// DType is the data type of the tensor elements.
//
// DTypeString parses the names, case-insensitive. It accepts "InvalidDType", use IsValid to exclude it.
type DType uint8

//go:generate go tool enumer -type=DType -text -json -yaml -output=gen_dtype_enumer.go dtypes.go

const (
	InvalidDType DType = iota
	Float32
	Float64
	Float16
	Uint8
)

// IsValid returns whether dtype is one of the supported data types.
func (dtype DType) IsValid() bool {
	return dtype != InvalidDType && dtype.IsADType()
}

// IsFloat returns whether the dtype is a floating point type.
func (dtype DType) IsFloat() bool {
	return dtype == Float32 || dtype == Float64 || dtype == Float16
}

// Size returns the number of bytes used by one element.
func (dtype DType) Size() int {
	switch dtype {
	case Float64:
		return 8
	case Float32:
		return 4
	case Float16:
		return 2
	case Uint8:
		return 1
	default:
		return 0
	}
}

// Supported lists the Go types that can back a Tensor.
type Supported interface {
	float32 | float64 | float16.Float16 | uint8
}

// FromGenericsType returns the DType for the generic parameter T.
func FromGenericsType[T Supported]() DType {
	var dummy T
	switch any(dummy).(type) {
	case float32:
		return Float32
	case float64:
		return Float64
	case float16.Float16:
		return Float16
	case uint8:
		return Uint8
	}
	return InvalidDType
}
