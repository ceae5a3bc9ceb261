// Package fs provides directory-backed resource stores and plugin discovery.
package fs

import (
	"io/fs"
	"iter"
	"path/filepath"
	"strings"
)

// Walker provides file walking functionality.
type Walker struct{}

// NewWalker creates a new Walker.
func NewWalker() *Walker {
	return &Walker{}
}

// WalkFiles yields all regular files below root in lexical order, skipping hidden
// directories.
func (w *Walker) WalkFiles(root string) iter.Seq[string] {
	return func(yield func(string) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if d.IsDir() && path != root && IsHidden(d.Name()) {
				return filepath.SkipDir
			}

			if !d.Type().IsRegular() {
				return nil
			}

			if !yield(path) {
				return filepath.SkipAll
			}

			return nil
		})
	}
}

// WalkDirs yields root and every directory below it that is not hidden.
// Unreadable directories are skipped.
func (w *Walker) WalkDirs(root string) iter.Seq[string] {
	return func(yield func(string) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil //nolint:nilerr // skip problematic directories
			}
			if !d.IsDir() {
				return nil
			}
			if path != root && IsHidden(d.Name()) {
				return fs.SkipDir
			}
			if !yield(path) {
				return filepath.SkipAll
			}
			return nil
		})
	}
}

// IsHidden reports whether a file or directory name is a dotfile.
func IsHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}
