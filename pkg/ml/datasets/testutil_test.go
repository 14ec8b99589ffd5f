// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package datasets

import (
	"image"
	"image/color"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func newRNG(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15))
}

// solidImage returns an image of the given size filled with c.
func solidImage(width, height int, c color.Color) *image.NRGBA {
	return imaging.New(width, height, c)
}

// noiseImage returns an image of the given size with random colors.
func noiseImage(width, height int, seed uint64) *image.NRGBA {
	rng := newRNG(seed)
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for ii := range img.Pix {
		if ii%4 == 3 {
			img.Pix[ii] = 0xFF
		} else {
			img.Pix[ii] = uint8(rng.IntN(256))
		}
	}
	return img
}

// saveImage saves img to path, creating the directories as needed. The format is given by the extension.
func saveImage(t *testing.T, path string, img image.Image) {
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, imaging.Save(img, path))
}

// makeImageDir creates n noise images named img_<ii>.png in a new temporary directory.
func makeImageDir(t *testing.T, n, width, height int) string {
	dir := t.TempDir()
	for ii := range n {
		saveImage(t, filepath.Join(dir, "img_"+strconv.Itoa(ii)+".png"), noiseImage(width, height, uint64(ii)))
	}
	return dir
}

// makePairedDir creates a paired layout with the given names and a name list file, returning
// the root directory and the name list path. The mask-indicator images are black inside box and
// white elsewhere.
func makePairedDir(t *testing.T, names []string, size int, box image.Rectangle) (root, nameList string) {
	root = t.TempDir()
	var list []byte
	for ii, name := range names {
		saveImage(t, filepath.Join(root, PairedGTDir, name+PairedExt), noiseImage(size, size, uint64(ii)))
		saveImage(t, filepath.Join(root, PairedCondDir, name+PairedExt), solidImage(size, size, color.Gray{Y: 128}))
		indicator := solidImage(size, size, color.White)
		for y := box.Min.Y; y < box.Max.Y; y++ {
			for x := box.Min.X; x < box.Max.X; x++ {
				indicator.Set(x, y, color.Black)
			}
		}
		saveImage(t, filepath.Join(root, PairedMaskDir, name+PairedExt), indicator)
		list = append(list, []byte(name+"\n")...)
	}
	nameList = filepath.Join(root, "flist.txt")
	require.NoError(t, os.WriteFile(nameList, list, 0o644))
	return
}

// fakeDataset returns records whose Path is the index. It fails or panics on the given indices.
type fakeDataset struct {
	n               int
	failAt, panicAt int
}

func (ds *fakeDataset) Name() string { return "fake" }

func (ds *fakeDataset) Len() int { return ds.n }

func (ds *fakeDataset) Get(rng *rand.Rand, index int) (*Record, error) {
	if index == ds.failAt {
		return nil, errors.Errorf("failed at %d", index)
	}
	if index == ds.panicAt {
		panic(errors.Errorf("panicked at %d", index))
	}
	return &Record{Path: strconv.Itoa(index) + ":" + strconv.FormatUint(rng.Uint64(), 16)}, nil
}

func newFakeDataset(n int) *fakeDataset {
	return &fakeDataset{n: n, failAt: -1, panicAt: -1}
}

// saveManifest writes the entries, one per line, to path.
func saveManifest(t *testing.T, path string, entries ...string) {
	var contents []byte
	for _, entry := range entries {
		contents = append(contents, entry...)
		contents = append(contents, '\n')
	}
	require.NoError(t, os.WriteFile(path, contents, 0o644))
}
