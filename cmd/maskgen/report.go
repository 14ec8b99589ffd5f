// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"slices"

	"github.com/charmbracelet/lipgloss"
	lgtable "github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var (
	headerRowStyle = lipgloss.NewStyle().Reverse(true).
			Padding(0, 2, 0, 2).Align(lipgloss.Center)
	oddRowStyle = lipgloss.NewStyle().Faint(false).
			PaddingLeft(1).PaddingRight(1)
	evenRowStyle = lipgloss.NewStyle().Faint(true).
			PaddingLeft(1).PaddingRight(1)
	titleStyle = lipgloss.NewStyle().Bold(true).Padding(1, 4, 1, 4)
)

func newPlainTable(alignments ...lipgloss.Position) *lgtable.Table {
	return lgtable.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("99"))).
		StyleFunc(func(row, col int) (s lipgloss.Style) {
			if row < 0 {
				return headerRowStyle
			}
			if row%2 == 0 {
				s = oddRowStyle
			} else {
				s = evenRowStyle
			}
			alignment := lipgloss.Left
			if col < len(alignments) {
				alignment = alignments[col]
			}
			return s.Align(alignment)
		})
}

// coverageStats summarizes the fraction of occluded pixels of the masks.
type coverageStats struct {
	mean, stdDev, min, median, max float64
}

func newCoverageStats(coverage []float64) coverageStats {
	sorted := slices.Clone(coverage)
	slices.Sort(sorted)
	var s coverageStats
	if len(sorted) == 0 {
		return s
	}
	s.mean, s.stdDev = stat.MeanStdDev(sorted, nil)
	if len(sorted) == 1 {
		s.stdDev = 0
	}
	s.min, s.max = sorted[0], sorted[len(sorted)-1]
	s.median = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	return s
}

func percent(v float64) string {
	return fmt.Sprintf("%.1f%%", 100*v)
}

// report prints a summary table of the generated masks.
func report(opts *options, result *generation) {
	s := newCoverageStats(result.coverage)
	fmt.Println(titleStyle.Render("Masks"))
	table := newPlainTable(lipgloss.Right, lipgloss.Left)
	table.Row("strategy", fmt.Sprintf("%T", result.strategy))
	table.Row("mode", result.strategy.Mode().String())
	table.Row("context", opts.context.String())
	table.Row("size", opts.size.String())
	table.Row("seed", fmt.Sprintf("%d", opts.seed))
	table.Row("# masks", humanize.Comma(int64(len(result.coverage))))
	table.Row("# pixels", humanize.Comma(int64(len(result.coverage)*opts.size.Area())))
	table.Row("elapsed", result.elapsed.String())
	if opts.outputDir != "" {
		table.Row("output", opts.outputDir)
		table.Row("written", humanize.Bytes(uint64(result.bytesWritten)))
	}
	fmt.Println(table.Render())

	fmt.Println(titleStyle.Render("Coverage"))
	table = newPlainTable(lipgloss.Right, lipgloss.Left)
	table.Row("mean", percent(s.mean))
	table.Row("std dev", percent(s.stdDev))
	table.Row("min", percent(s.min))
	table.Row("median", percent(s.median))
	table.Row("max", percent(s.max))
	table.Row("empty masks", humanize.Comma(int64(result.emptyMasks)))
	table.Row("full masks", humanize.Comma(int64(result.fullMasks)))
	fmt.Println(table.Render())
}

// plotCoverage saves the histogram of coverage to the PNG (or SVG, PDF) file at path.
func plotCoverage(result *generation, bins int, path string) error {
	if bins <= 0 {
		return errors.Errorf("number of bins must be positive, got %d", bins)
	}
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Coverage of %d %s masks", len(result.coverage), result.strategy.Mode())
	p.X.Label.Text = "fraction of occluded pixels"
	p.Y.Label.Text = "masks"
	p.X.Min, p.X.Max = 0, 1
	hist, err := plotter.NewHist(plotter.Values(result.coverage), bins)
	if err != nil {
		return errors.Wrap(err, "failed to build the coverage histogram")
	}
	p.Add(hist)
	if err := p.Save(8*vg.Inch, 5*vg.Inch, path); err != nil {
		return errors.Wrapf(err, "failed to save the coverage histogram to %q", path)
	}
	return nil
}
