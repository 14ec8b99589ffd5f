// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/disintegration/imaging"
	"github.com/dustin/go-humanize"
	"github.com/gomlx/inpainting/pkg/core/tensors"
	"github.com/gomlx/inpainting/pkg/core/tensors/images"
	"github.com/gomlx/inpainting/pkg/ml/datasets"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// preview builds n records of the dataset configured in configPath, prints a table describing them and,
// if outputDir is set, saves their images there.
func preview(configPath string, n int, outputDir string) error {
	cfg, err := datasets.LoadConfig(configPath)
	if err != nil {
		return err
	}
	ds, err := datasets.New(cfg)
	if err != nil {
		return err
	}
	if outputDir != "" {
		if err := os.MkdirAll(outputDir, 0o755); err != nil {
			return errors.Wrapf(err, "failed to create output directory %q", outputDir)
		}
	}
	records, err := buildRecords(ds, cfg.Seed, n)
	if err != nil {
		return err
	}

	fmt.Println(titleStyle.Render(ds.Name()))
	table := newPlainTable(lipgloss.Right, lipgloss.Left)
	table.Headers("#", "path", "gt_image", "mask", "coverage", "memory")
	for ii, record := range records {
		row := []string{strconv.Itoa(ii), record.Path, record.GTImage.String(), "", "", ""}
		var memory uintptr
		for _, t := range record.AsMap() {
			if t, ok := t.(*tensors.Tensor); ok {
				memory += t.Memory()
			}
		}
		row[5] = humanize.Bytes(uint64(memory))
		if record.Mask != nil {
			row[3] = record.Mask.String()
			row[4] = percent(maskCoverage(record.Mask))
		}
		table.Row(row...)
		if outputDir != "" {
			if err := saveRecord(record, outputDir, ii); err != nil {
				return err
			}
		}
	}
	fmt.Println(table.Render())
	klog.V(1).Infof("built %d records of %s with %d examples", len(records), ds.Name(), ds.Len())
	return nil
}

// buildRecords yields up to n records of ds, built in parallel.
func buildRecords(ds datasets.Dataset, seed uint64, n int) ([]*datasets.Record, error) {
	sampler := datasets.NewSampler(ds, seed).Shuffle()
	pd := datasets.CustomParallel(datasets.Take(sampler, n)).Buffer(n).Start()
	defer pd.Cancel()
	var records []*datasets.Record
	for {
		record, err := pd.Yield()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

// maskCoverage returns the fraction of occluded pixels of a mask tensor.
func maskCoverage(mask *tensors.Tensor) float64 {
	var count int
	for _, v := range mask.Float32() {
		if v != 0 {
			count++
		}
	}
	return float64(count) / float64(mask.Size())
}

// saveRecord saves the images of the record ii to outputDir, as PNG files.
func saveRecord(record *datasets.Record, outputDir string, ii int) error {
	name := fmt.Sprintf("record_%03d", ii)
	if record.Path != "" {
		name += "_" + strings.TrimSuffix(record.Path, filepath.Ext(record.Path))
	}
	toImage := images.ToImage().ChannelsAxis(images.ChannelsFirst).Denormalize(images.MinusOneToOne)
	for key, t := range map[string]*tensors.Tensor{
		datasets.KeyGTImage:   record.GTImage,
		datasets.KeyCondImage: record.CondImage,
		datasets.KeyMaskImage: record.MaskImage,
	} {
		if t == nil {
			continue
		}
		path := filepath.Join(outputDir, name+"_"+key+".png")
		if err := imaging.Save(toImage.Single(t), path); err != nil {
			return errors.Wrapf(err, "failed to save %s to %q", key, path)
		}
	}
	if record.Mask != nil {
		path := filepath.Join(outputDir, name+"_"+datasets.KeyMask+".png")
		img := images.ToImage().ChannelsAxis(images.ChannelsFirst).MaxValue(1).Single(record.Mask)
		if err := imaging.Save(img, path); err != nil {
			return errors.Wrapf(err, "failed to save mask to %q", path)
		}
	}
	return nil
}
