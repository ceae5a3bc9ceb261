package fs

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"

	"go.trai.ch/assetd/internal/core/domain"
	"go.trai.ch/assetd/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ResourceStore = (*Directory)(nil)

// Directory is a ResourceStore over a plain directory.
// A non-empty plugin id selects the subdirectory of that name.
type Directory struct {
	root string
}

// NewDirectory creates a Directory rooted at root.
func NewDirectory(root string) *Directory {
	return &Directory{root: root}
}

// Root returns the directory the store reads from.
func (d *Directory) Root() string {
	return d.root
}

// Lookup reads resourcePath below the root.
func (d *Directory) Lookup(ctx context.Context, pluginID, resourcePath string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	dir := d.root
	if pluginID != "" {
		dir = filepath.Join(dir, pluginID)
	}
	return readResource(dir, resourcePath)
}

// readResource reads resourcePath below dir. Missing files and directories are
// reported as not found.
func readResource(dir, resourcePath string) ([]byte, bool, error) {
	clean, ok := domain.NormalizePath(resourcePath)
	if !ok {
		return nil, false, nil
	}
	full := filepath.Join(dir, filepath.FromSlash(clean))

	info, err := os.Stat(full)
	if err != nil {
		if isAbsent(err) {
			return nil, false, nil
		}
		return nil, false, zerr.With(zerr.Wrap(err, "failed to stat resource"), "path", full)
	}
	if info.IsDir() {
		return nil, false, nil
	}

	content, err := os.ReadFile(full) //nolint:gosec // path is normalized and confined to dir
	if err != nil {
		if isAbsent(err) {
			return nil, false, nil
		}
		return nil, false, zerr.With(zerr.Wrap(err, "failed to read resource"), "path", full)
	}
	return content, true, nil
}

func isAbsent(err error) bool {
	return errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR)
}
