// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package fsutil contains utilities for working with the file system.
package fsutil

import (
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// FileExists returns whether the file or directory exists or an error if something went wrong in the filesystem.
func FileExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, errors.Wrapf(err, "failed to check whether %q exists", path)
}

// IsDir returns whether path exists and is a directory.
func IsDir(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, errors.Wrapf(err, "failed to stat %q", path)
	}
	return info.IsDir(), nil
}

// ReplaceTilde replaces a leading "~" or "~user" by the corresponding home directory.
// Other paths are returned unchanged.
func ReplaceTilde(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}
	userName, rest, _ := strings.Cut(path[1:], string(filepath.Separator))
	var home string
	if userName == "" {
		var err error
		home, err = os.UserHomeDir()
		if err != nil {
			return "", errors.Wrapf(err, "failed to find home directory for %q", path)
		}
	} else {
		usr, err := user.Lookup(userName)
		if err != nil {
			return "", errors.Wrapf(err, "failed to find home directory of user %q in %q", userName, path)
		}
		home = usr.HomeDir
	}
	return filepath.Join(home, rest), nil
}

// ResolvePath replaces a leading tilde and, if base is given and path is relative, joins them.
func ResolvePath(base, path string) (string, error) {
	path, err := ReplaceTilde(path)
	if err != nil {
		return "", err
	}
	if base != "" && path != "" && !filepath.IsAbs(path) {
		path = filepath.Join(base, path)
	}
	return path, nil
}
