// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package masking

import (
	"bytes"
	"math"
	"math/rand/v2"
	"sort"
	"strings"

	"github.com/gomlx/inpainting/pkg/core/masks"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
	"k8s.io/klog/v2"
)

// Keys of a mask configuration map.
const (
	KeyMaskMode  = "mask_mode"
	KeyShape     = "shape"
	KeyBBox      = "bbox"
	KeyStrokes   = "strokes"
	KeyIrregular = "irregular"
)

// Config of the mask generation. Only Mode is required; Shape is required by ModeManual.
// The option fields are optional overrides of the defaults of the masks package.
type Config struct {
	Mode Mode

	// Shape is the fixed box of ModeManual.
	Shape *masks.BBox

	BBox      *masks.BBoxOptions
	Strokes   *masks.StrokeOptions
	Irregular *masks.IrregularOptions
}

func (cfg Config) strokeOptions() masks.StrokeOptions {
	if cfg.Strokes != nil {
		return *cfg.Strokes
	}
	return masks.DefaultStrokeOptions()
}

func (cfg Config) irregularOptions() masks.IrregularOptions {
	if cfg.Irregular != nil {
		return *cfg.Irregular
	}
	return masks.DefaultIrregularOptions()
}

// ParseConfig parses a mask configuration map, as found under the `mask_config` key of a
// dataset configuration: `mask_mode` names the Mode and `shape` is a `[top, left, height, width]` box.
//
// The optional maps `strokes` and `irregular` override some fields of masks.DefaultStrokeOptions
// and masks.DefaultIrregularOptions, using the yaml names of the fields (e.g. `max_strokes`).
// The default box options depend on the image size, so a `bbox` map replaces them as a whole:
// its missing fields are zero.
//
// It fails with masks.ErrInvalidConfiguration if a key is missing or malformed, and with
// ErrUnsupportedMaskMode if the mode is unknown.
func ParseConfig(params map[string]any) (Config, error) {
	var cfg Config
	value, found := params[KeyMaskMode]
	if !found {
		return cfg, errors.Wrapf(masks.ErrInvalidConfiguration, "mask configuration is missing the key %q", KeyMaskMode)
	}
	name, ok := value.(string)
	if !ok {
		return cfg, errors.Wrapf(masks.ErrInvalidConfiguration, "mask configuration %q must be a string, got %T", KeyMaskMode, value)
	}
	var err error
	cfg.Mode, err = ModeString(name)
	if err != nil {
		return cfg, errors.Wrapf(ErrUnsupportedMaskMode, "mask mode %q has not been implemented", name)
	}

	if value, found = params[KeyShape]; found {
		box, err := parseBox(value)
		if err != nil {
			return cfg, err
		}
		cfg.Shape = &box
	} else if cfg.Mode == ModeManual {
		return cfg, errors.Wrapf(masks.ErrInvalidConfiguration, "mask mode %s requires the key %q", cfg.Mode, KeyShape)
	}

	if value, found = params[KeyBBox]; found {
		var opts masks.BBoxOptions
		if err := decodeOptions(KeyBBox, value, &opts); err != nil {
			return cfg, err
		}
		cfg.BBox = &opts
	}
	if value, found = params[KeyStrokes]; found {
		opts := masks.DefaultStrokeOptions()
		if err := decodeOptions(KeyStrokes, value, &opts); err != nil {
			return cfg, err
		}
		cfg.Strokes = &opts
	}
	if value, found = params[KeyIrregular]; found {
		opts := masks.DefaultIrregularOptions()
		if err := decodeOptions(KeyIrregular, value, &opts); err != nil {
			return cfg, err
		}
		cfg.Irregular = &opts
	}

	var unknown []string
	for key := range params {
		switch key {
		case KeyMaskMode, KeyShape, KeyBBox, KeyStrokes, KeyIrregular:
		default:
			unknown = append(unknown, key)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		klog.Warningf("mask configuration keys ignored: %s", strings.Join(unknown, ", "))
	}
	return cfg, nil
}

// decodeOptions decodes the map under key into opts. Fields of opts not in the map keep their
// values, and keys that don't match a field are errors.
func decodeOptions(key string, value any, opts any) error {
	if _, ok := value.(map[string]any); !ok {
		return errors.Wrapf(masks.ErrInvalidConfiguration, "mask configuration %q must be a map, got %T", key, value)
	}
	contents, err := yaml.Marshal(value)
	if err != nil {
		return errors.Wrapf(masks.ErrInvalidConfiguration, "mask configuration %q: %v", key, err)
	}
	decoder := yaml.NewDecoder(bytes.NewReader(contents))
	decoder.KnownFields(true)
	if err = decoder.Decode(opts); err != nil {
		return errors.Wrapf(masks.ErrInvalidConfiguration, "mask configuration %q: %v", key, err)
	}
	return nil
}

// parseBox converts a list of 4 integer values to a BBox. Whole floats are accepted since
// JSON numbers may be decoded as float64.
func parseBox(value any) (masks.BBox, error) {
	var values []int
	switch v := value.(type) {
	case []int:
		values = v
	case []any:
		values = make([]int, 0, len(v))
		for _, elem := range v {
			switch n := elem.(type) {
			case int:
				values = append(values, n)
			case int64:
				values = append(values, int(n))
			case float64:
				if n != math.Trunc(n) {
					return masks.BBox{}, errors.Wrapf(masks.ErrInvalidConfiguration,
						"mask configuration %q must hold integers, got %g", KeyShape, n)
				}
				values = append(values, int(n))
			default:
				return masks.BBox{}, errors.Wrapf(masks.ErrInvalidConfiguration,
					"mask configuration %q must hold integers, got %T", KeyShape, elem)
			}
		}
	default:
		return masks.BBox{}, errors.Wrapf(masks.ErrInvalidConfiguration,
			"mask configuration %q must be a list [top, left, height, width], got %T", KeyShape, value)
	}
	if len(values) != 4 {
		return masks.BBox{}, errors.Wrapf(masks.ErrInvalidConfiguration,
			"mask configuration %q must be a list [top, left, height, width], got %d values", KeyShape, len(values))
	}
	return masks.BBox{Top: values[0], Left: values[1], Height: values[2], Width: values[3]}, nil
}

// Generator generates masks of a fixed size with one Strategy.
type Generator struct {
	strategy Strategy
	size     masks.ImageSize
}

// NewGenerator creates a Generator for the configuration, dataset context and image size.
// Configuration errors are all reported here, before any mask is generated.
func NewGenerator(cfg Config, ctx Context, size masks.ImageSize) (*Generator, error) {
	strategy, err := NewStrategy(cfg, ctx)
	if err != nil {
		return nil, err
	}
	if err = strategy.Validate(size); err != nil {
		return nil, errors.WithMessagef(err, "mask mode %s for image size %s", cfg.Mode, size)
	}
	klog.V(1).Infof("mask generator: mode=%s, strategy=%T, size=%s", strategy.Mode(), strategy, size)
	return &Generator{strategy: strategy, size: size}, nil
}

// Strategy used by the generator.
func (g *Generator) Strategy() Strategy { return g.strategy }

// Size of the generated masks.
func (g *Generator) Size() masks.ImageSize { return g.size }

// FromFile returns whether masks come from mask-indicator files instead of being generated.
func (g *Generator) FromFile() bool { return g.strategy.Mode() == ModeFile }

// Generate a new mask. In ModeFile it returns a nil mask and no error.
func (g *Generator) Generate(rng *rand.Rand) (*masks.Mask, error) {
	return g.strategy.Generate(rng, g.size)
}
