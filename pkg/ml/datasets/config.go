// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package datasets

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/gomlx/inpainting/pkg/core/masks"
	"github.com/gomlx/inpainting/pkg/core/tensors"
	"github.com/gomlx/inpainting/pkg/ml/masking"
	"github.com/gomlx/inpainting/pkg/support/fsutil"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
	"k8s.io/klog/v2"
)

// Values of Config.Which.
const (
	WhichInpaint      = "inpaint"
	WhichUncropping   = "uncropping"
	WhichColorization = "colorization"
)

// DefaultImageSize is used when Config.ImageSize is not set.
var DefaultImageSize = masks.ImageSize{Height: 256, Width: 256}

// Config of a dataset, as read from a YAML or JSON file by LoadConfig.
type Config struct {
	// Which dataset: "inpaint", "uncropping" or "colorization".
	Which string `yaml:"which"`

	// DataRoot is a directory of images or a manifest file. For the paired layout
	// (colorization, or mask mode "file") it is the directory holding train_A, train_B and train_C.
	DataRoot string `yaml:"data_root"`

	// DataFlist is the name list of the paired layout.
	DataFlist string `yaml:"data_flist"`

	// DataLen truncates the dataset, if > 0.
	DataLen int `yaml:"data_len"`

	// ImageSize is [height, width].
	ImageSize []int `yaml:"image_size"`

	// MaskConfig holds `mask_mode` and, for mode "manual", `shape`. See masking.ParseConfig.
	MaskConfig map[string]any `yaml:"mask_config"`

	// Seed for the Sampler.
	Seed uint64 `yaml:"seed"`

	// DType of the image tensors: "float32" (default), "float64" or "float16".
	DType string `yaml:"dtype"`

	// SentinelMask enables the mask of the colorization dataset: "occluded" or "unoccluded" is
	// the meaning of the sentinel value in the mask-indicator images.
	SentinelMask string `yaml:"sentinel_mask"`
}

// LoadConfig reads a dataset configuration file. JSON is accepted as well as YAML.
// Relative paths are resolved against the directory of the configuration file.
func LoadConfig(configPath string) (*Config, error) {
	configPath, err := fsutil.ReplaceTilde(configPath)
	if err != nil {
		return nil, err
	}
	contents, err := os.ReadFile(configPath)
	if err != nil {
		return nil, errors.Wrapf(ErrMissingAsset, "failed to read dataset configuration %q: %v", configPath, err)
	}
	cfg, err := ParseConfig(contents)
	if err != nil {
		return nil, errors.WithMessagef(err, "dataset configuration %q", configPath)
	}
	baseDir := filepath.Dir(configPath)
	if cfg.DataRoot, err = fsutil.ResolvePath(baseDir, cfg.DataRoot); err != nil {
		return nil, err
	}
	if cfg.DataFlist, err = fsutil.ResolvePath(baseDir, cfg.DataFlist); err != nil {
		return nil, err
	}
	klog.V(1).Infof("loaded dataset configuration %q: %+v", configPath, *cfg)
	return cfg, nil
}

// ParseConfig parses the YAML (or JSON) contents of a dataset configuration.
func ParseConfig(contents []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(contents, cfg); err != nil {
		return nil, errors.Wrapf(masks.ErrInvalidConfiguration, "failed to parse dataset configuration: %v", err)
	}
	return cfg, nil
}

// Size returns the configured image size, or DefaultImageSize if not set.
func (cfg *Config) Size() (masks.ImageSize, error) {
	switch len(cfg.ImageSize) {
	case 0:
		return DefaultImageSize, nil
	case 2:
		size := masks.ImageSize{Height: cfg.ImageSize[0], Width: cfg.ImageSize[1]}
		return size, size.Validate(1)
	}
	return masks.ImageSize{}, errors.Wrapf(masks.ErrInvalidConfiguration,
		"image_size must be [height, width], got %v", cfg.ImageSize)
}

// TensorDType returns the configured dtype of the image tensors, Float32 by default.
func (cfg *Config) TensorDType() (tensors.DType, error) {
	if cfg.DType == "" {
		return tensors.Float32, nil
	}
	dtype, err := tensors.DTypeString(cfg.DType)
	if err != nil || !dtype.IsValid() {
		return tensors.InvalidDType, errors.Wrapf(masks.ErrInvalidConfiguration, "unknown dtype %q", cfg.DType)
	}
	return dtype, nil
}

// Masking parses MaskConfig.
func (cfg *Config) Masking() (masking.Config, error) {
	return masking.ParseConfig(cfg.MaskConfig)
}

// Polarity parses SentinelMask. found is false if it is not set.
func (cfg *Config) Polarity() (polarity masks.SentinelPolarity, found bool, err error) {
	if cfg.SentinelMask == "" {
		return
	}
	polarity, err = masks.SentinelPolarityString(cfg.SentinelMask)
	if err != nil {
		err = errors.Wrapf(masks.ErrInvalidConfiguration, "sentinel_mask must be one of %q, got %q",
			masks.SentinelPolarityStrings(), cfg.SentinelMask)
		return
	}
	return polarity, true, nil
}

// newLoader creates the Loader for the configured size and dtype.
func (cfg *Config) newLoader() (*Loader, error) {
	size, err := cfg.Size()
	if err != nil {
		return nil, err
	}
	dtype, err := cfg.TensorDType()
	if err != nil {
		return nil, err
	}
	return NewLoader(size, dtype)
}

// New creates the dataset selected by cfg.Which.
// Configuration errors (including unsupported mask modes) are reported here.
func New(cfg *Config) (Dataset, error) {
	switch strings.ToLower(cfg.Which) {
	case WhichInpaint:
		return NewInpaint(cfg)
	case WhichUncropping:
		return NewUncropping(cfg)
	case WhichColorization:
		return NewColorization(cfg)
	}
	return nil, errors.Wrapf(masks.ErrInvalidConfiguration,
		"unknown dataset %q, valid values are %q, %q and %q", cfg.Which, WhichInpaint, WhichUncropping, WhichColorization)
}
