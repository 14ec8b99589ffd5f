// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package masking

import (
	"encoding/json"
	"math/rand/v2"
	"testing"

	"github.com/gomlx/inpainting/pkg/core/masks"
	"github.com/janpfeifer/must"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func newRNG(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15))
}

func TestModeNames(t *testing.T) {
	assert.Equal(t, []string{"bbox", "center", "irregular", "free_form", "hybrid", "manual",
		"fourdirection", "onedirection", "file"}, ModeStrings())
	for _, mode := range ModeValues() {
		parsed, err := ModeString(mode.String())
		require.NoError(t, err)
		require.Equal(t, mode, parsed)
		require.True(t, mode.IsAMode())
	}
	mode, err := ModeString("Free_Form")
	require.NoError(t, err)
	assert.Equal(t, ModeFreeForm, mode)

	_, err = ModeString("bogus")
	require.Error(t, err)

	// The zero value is not a mode.
	var m Mode
	assert.False(t, m.IsAMode())
	assert.Equal(t, "Mode(0)", m.String())
	_, err = ModeString("invalid")
	require.Error(t, err)

	require.NoError(t, m.UnmarshalText([]byte("onedirection")))
	assert.Equal(t, ModeOneDirection, m)
	text, err := m.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "onedirection", string(text))
	require.NoError(t, yaml.Unmarshal([]byte("free_form"), &m))
	assert.Equal(t, ModeFreeForm, m)
	data, err := json.Marshal(ModeHybrid)
	require.NoError(t, err)
	assert.Equal(t, `"hybrid"`, string(data))

	ctx, err := ContextString("Uncropping")
	require.NoError(t, err)
	assert.Equal(t, Uncropping, ctx)
	assert.Equal(t, "inpainting", Inpainting.String())
}

func TestParseConfig(t *testing.T) {
	cfg, err := ParseConfig(map[string]any{"mask_mode": "hybrid"})
	require.NoError(t, err)
	assert.Equal(t, ModeHybrid, cfg.Mode)
	assert.Nil(t, cfg.Shape)

	// Numbers as decoded from JSON or YAML.
	cfg, err = ParseConfig(map[string]any{"mask_mode": "manual", "shape": []any{10, 20.0, 30, int64(40)}})
	require.NoError(t, err)
	require.NotNil(t, cfg.Shape)
	assert.Equal(t, masks.BBox{Top: 10, Left: 20, Height: 30, Width: 40}, *cfg.Shape)

	_, err = ParseConfig(map[string]any{"mask_mode": "bogus"})
	require.ErrorIs(t, err, ErrUnsupportedMaskMode)
	_, err = ParseConfig(map[string]any{})
	require.ErrorIs(t, err, masks.ErrInvalidConfiguration)
	_, err = ParseConfig(map[string]any{"mask_mode": 3})
	require.ErrorIs(t, err, masks.ErrInvalidConfiguration)
	_, err = ParseConfig(map[string]any{"mask_mode": "manual"})
	require.ErrorIs(t, err, masks.ErrInvalidConfiguration)
	_, err = ParseConfig(map[string]any{"mask_mode": "manual", "shape": []int{1, 2, 3}})
	require.ErrorIs(t, err, masks.ErrInvalidConfiguration)
	_, err = ParseConfig(map[string]any{"mask_mode": "manual", "shape": []any{1, 2, 3, 4.5}})
	require.ErrorIs(t, err, masks.ErrInvalidConfiguration)
}

func TestParseConfigOptions(t *testing.T) {
	// Values as decoded from YAML or JSON: JSON numbers are float64.
	cfg, err := ParseConfig(map[string]any{
		"mask_mode": "hybrid",
		"bbox":      map[string]any{"max_height": 20, "max_width": 30.0, "margin_h": 2},
		"strokes":   map[string]any{"max_strokes": 8, "random_flips": false},
		"irregular": map[string]any{"area_ratio_range": []any{0.1, 0.2}, "max_attempts": 3},
	})
	require.NoError(t, err)
	assert.Equal(t, &masks.BBoxOptions{MaxHeight: 20, MaxWidth: 30, MarginH: 2}, cfg.BBox)
	wantStrokes := masks.DefaultStrokeOptions()
	wantStrokes.MaxStrokes = 8
	wantStrokes.RandomFlips = false
	assert.Equal(t, &wantStrokes, cfg.Strokes)
	wantIrregular := masks.DefaultIrregularOptions()
	wantIrregular.AreaRatioRange = [2]float64{0.1, 0.2}
	wantIrregular.MaxAttempts = 3
	assert.Equal(t, &wantIrregular, cfg.Irregular)

	// The options reach the strategies.
	strategy := must.M1(NewStrategy(cfg, Inpainting))
	assert.Equal(t, InpaintHybridStrategy{
		BBox:    BBoxStrategy{Options: cfg.BBox},
		Strokes: FreeFormStrategy{Options: wantStrokes},
	}, strategy)
	gen := must.M1(NewGenerator(cfg, Inpainting, masks.ImageSize{Height: 64, Width: 64}))
	require.NotNil(t, must.M1(gen.Generate(newRNG(1))))

	for _, params := range []map[string]any{
		{"mask_mode": "free_form", "strokes": map[string]any{"max_stroke": 8}},
		{"mask_mode": "free_form", "strokes": []any{8}},
		{"mask_mode": "irregular", "irregular": map[string]any{"area_ratio_range": []any{0.1}}},
		{"mask_mode": "bbox", "bbox": map[string]any{"max_height": "big"}},
	} {
		_, err = ParseConfig(params)
		require.ErrorIs(t, err, masks.ErrInvalidConfiguration, "params=%v", params)
	}

	// Invalid values are caught when the generator is built.
	cfg = must.M1(ParseConfig(map[string]any{"mask_mode": "bbox", "bbox": map[string]any{"max_width": 10}}))
	_, err = NewGenerator(cfg, Inpainting, masks.ImageSize{Height: 64, Width: 64})
	require.ErrorIs(t, err, masks.ErrInvalidConfiguration)
}

func TestNewStrategy(t *testing.T) {
	for _, tc := range []struct {
		mode Mode
		ctx  Context
		want Strategy
	}{
		{ModeBBox, Inpainting, BBoxStrategy{}},
		{ModeCenter, Inpainting, CenterStrategy{}},
		{ModeIrregular, Inpainting, IrregularStrategy{Options: masks.DefaultIrregularOptions()}},
		{ModeFreeForm, Inpainting, FreeFormStrategy{Options: masks.DefaultStrokeOptions()}},
		{ModeHybrid, Inpainting, InpaintHybridStrategy{Strokes: FreeFormStrategy{Options: masks.DefaultStrokeOptions()}}},
		{ModeHybrid, Uncropping, CropHybridStrategy{}},
		{ModeFourDirection, Uncropping, DirectionalStrategy{Direction: masks.FourDirections}},
		{ModeOneDirection, Uncropping, DirectionalStrategy{Direction: masks.OneDirection}},
		{ModeFile, Inpainting, FileStrategy{}},
	} {
		got, err := NewStrategy(Config{Mode: tc.mode}, tc.ctx)
		require.NoError(t, err, "mode=%s", tc.mode)
		assert.Equal(t, tc.want, got, "mode=%s", tc.mode)
	}

	_, err := NewStrategy(Config{Mode: ModeManual}, Inpainting)
	require.ErrorIs(t, err, masks.ErrInvalidConfiguration)
	_, err = NewStrategy(Config{}, Inpainting)
	require.ErrorIs(t, err, ErrUnsupportedMaskMode)
	_, err = NewStrategy(Config{Mode: Mode(200)}, Inpainting)
	require.ErrorIs(t, err, ErrUnsupportedMaskMode)
	_, err = NewStrategy(Config{Mode: ModeHybrid}, Context(9))
	require.ErrorIs(t, err, ErrUnsupportedMaskMode)
}

func TestGeneratorAllModes(t *testing.T) {
	manual := masks.BBox{Top: 5, Left: 6, Height: 20, Width: 10}
	for _, size := range []masks.ImageSize{{64, 64}, {256, 256}, {96, 160}} {
		for _, mode := range ModeValues() {
			if mode == ModeFile {
				continue
			}
			for _, ctx := range []Context{Inpainting, Uncropping} {
				gen, err := NewGenerator(Config{Mode: mode, Shape: &manual}, ctx, size)
				require.NoError(t, err, "mode=%s, size=%s", mode, size)
				rng := newRNG(uint64(mode))
				for range 10 {
					m, err := gen.Generate(rng)
					require.NoError(t, err)
					require.NotNil(t, m)
					require.Equal(t, []int{size.Height, size.Width, 1}, m.Shape())
					for _, v := range m.Data {
						require.LessOrEqual(t, v, uint8(1))
					}
				}
			}
		}
	}
}

func TestGeneratorCenter(t *testing.T) {
	size := masks.ImageSize{Height: 64, Width: 64}
	gen := must.M1(NewGenerator(Config{Mode: ModeCenter}, Inpainting, size))
	m := must.M1(gen.Generate(newRNG(0)))
	for y := range size.Height {
		for x := range size.Width {
			want := uint8(0)
			if y >= 16 && y < 48 && x >= 16 && x < 48 {
				want = 1
			}
			require.Equal(t, want, m.At(y, x), "pixel (%d, %d)", y, x)
		}
	}
	require.Equal(t, 32*32, m.Count())
}

func TestGeneratorInpaintHybridIsUnion(t *testing.T) {
	size := masks.ImageSize{Height: 128, Width: 128}
	gen := must.M1(NewGenerator(Config{Mode: ModeHybrid}, Inpainting, size))
	strategy, ok := gen.Strategy().(InpaintHybridStrategy)
	require.True(t, ok)
	for seed := range uint64(20) {
		hybrid := must.M1(gen.Generate(newRNG(seed)))

		// Rebuild the two parts with the same random sequence.
		rng := newRNG(seed)
		box := must.M1(strategy.BBox.Generate(rng, size))
		strokes := must.M1(strategy.Strokes.Generate(rng, size))
		for ii := range hybrid.Data {
			if box.Data[ii] == 1 || strokes.Data[ii] == 1 {
				require.Equal(t, uint8(1), hybrid.Data[ii])
			} else {
				require.Equal(t, uint8(0), hybrid.Data[ii])
			}
		}
	}
}

func TestGeneratorCropHybrid(t *testing.T) {
	size := masks.ImageSize{Height: 64, Width: 64}
	gen := must.M1(NewGenerator(Config{Mode: ModeHybrid}, Uncropping, size))
	rng := newRNG(3)
	for range 50 {
		m := must.M1(gen.Generate(rng))
		require.Positive(t, m.Count())
		// Either variant occludes at least one image corner.
		corners := m.At(0, 0) + m.At(0, 63) + m.At(63, 0) + m.At(63, 63)
		require.Positive(t, corners)
	}
}

func TestGeneratorFile(t *testing.T) {
	gen := must.M1(NewGenerator(Config{Mode: ModeFile}, Inpainting, masks.ImageSize{Height: 32, Width: 32}))
	assert.True(t, gen.FromFile())
	m, err := gen.Generate(newRNG(0))
	require.NoError(t, err)
	assert.Nil(t, m)
}

func TestGeneratorEagerValidation(t *testing.T) {
	size := masks.ImageSize{Height: 64, Width: 64}
	_, err := NewGenerator(Config{Mode: ModeManual, Shape: &masks.BBox{Top: 60, Left: 0, Height: 10, Width: 10}}, Inpainting, size)
	require.ErrorIs(t, err, masks.ErrInvalidConfiguration)
	_, err = NewGenerator(Config{Mode: ModeFreeForm}, Inpainting, masks.ImageSize{Height: 4, Width: 64})
	require.ErrorIs(t, err, masks.ErrInvalidConfiguration)
	_, err = NewGenerator(Config{Mode: ModeBBox}, Inpainting, masks.ImageSize{Height: 2, Width: 2})
	require.ErrorIs(t, err, masks.ErrInvalidConfiguration)
	_, err = NewGenerator(Config{Mode: Mode(99)}, Inpainting, size)
	require.ErrorIs(t, err, ErrUnsupportedMaskMode)
}
