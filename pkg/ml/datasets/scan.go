// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package datasets

import (
	"bufio"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/gomlx/inpainting/pkg/support/fsutil"
	"github.com/gomlx/inpainting/pkg/support/sets"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// ImageExtensions is the allow-list of image file extensions used when scanning directories.
// Matching is case-sensitive.
var ImageExtensions = sets.MakeWith(
	".jpg", ".JPG", ".jpeg", ".JPEG",
	".png", ".PNG", ".ppm", ".PPM", ".bmp", ".BMP",
)

// IsImageFile returns whether the file name has one of the ImageExtensions.
func IsImageFile(name string) bool {
	return ImageExtensions.Has(filepath.Ext(name))
}

// MakeDataset lists the entries of a dataset.
//
// If root is a file, it is a manifest: each whitespace separated token is one entry, in order.
// If root is a directory, it is walked recursively and all image files are returned, sorted.
//
// It returns ErrMissingAsset if root doesn't exist.
func MakeDataset(root string) ([]string, error) {
	root, err := fsutil.ReplaceTilde(root)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrapf(ErrMissingAsset, "dataset root %q doesn't exist", root)
		}
		return nil, errors.Wrapf(err, "failed to access dataset root %q", root)
	}
	if !info.IsDir() {
		return readManifest(root)
	}

	var paths []string
	err = filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !entry.IsDir() && IsImageFile(entry.Name()) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to scan dataset directory %q", root)
	}
	sort.Strings(paths)
	klog.V(1).Infof("dataset directory %q: %d images", root, len(paths))
	return paths, nil
}

// readManifest returns the whitespace separated entries of the file.
func readManifest(manifestPath string) ([]string, error) {
	f, err := os.Open(manifestPath)
	if err != nil {
		return nil, errors.Wrapf(ErrMissingAsset, "failed to open manifest %q: %v", manifestPath, err)
	}
	defer func() { _ = f.Close() }()
	scanner := bufio.NewScanner(f)
	scanner.Split(bufio.ScanWords)
	var entries []string
	for scanner.Scan() {
		entries = append(entries, scanner.Text())
	}
	if err = scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to read manifest %q", manifestPath)
	}
	klog.V(1).Infof("dataset manifest %q: %d entries", manifestPath, len(entries))
	return entries, nil
}

// truncate entries to dataLen, if dataLen > 0.
func truncate(entries []string, dataLen int) []string {
	if dataLen > 0 && dataLen < len(entries) {
		return entries[:dataLen]
	}
	return entries
}
