// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package xslices provide missing functionality to the slices package.
package xslices

import (
	"flag"
	"fmt"
	"strings"
)

// Map executes the given function sequentially for every element on in, and returns a mapped slice.
func Map[In, Out any](in []In, fn func(e In) Out) (out []Out) {
	out = make([]Out, len(in))
	for ii, e := range in {
		out[ii] = fn(e)
	}
	return
}

// Flag defines on the flag set a flag for []T given as a comma-separated list, with the given
// name, default value and usage. parserFn parses an individual T value.
func Flag[T any](flags *flag.FlagSet, name string, defaultValue []T, usage string,
	parserFn func(valueStr string) (T, error)) *[]T {
	f := &sliceFlag[T]{values: defaultValue, parserFn: parserFn}
	flags.Var(f, name, usage)
	return &f.values
}

// sliceFlag implements flag.Value for a list of T.
type sliceFlag[T any] struct {
	values   []T
	parserFn func(valueStr string) (T, error)
}

func (f *sliceFlag[T]) String() string {
	if f == nil {
		return ""
	}
	return strings.Join(Map(f.values, func(e T) string { return fmt.Sprint(e) }), ",")
}

func (f *sliceFlag[T]) Set(listStr string) error {
	if listStr == "" {
		f.values = nil
		return nil
	}
	parts := strings.Split(listStr, ",")
	values := make([]T, 0, len(parts))
	for _, part := range parts {
		value, err := f.parserFn(strings.TrimSpace(part))
		if err != nil {
			return err
		}
		values = append(values, value)
	}
	f.values = values
	return nil
}
