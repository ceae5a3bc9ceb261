package fs_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/assetd/internal/adapters/fs"
)

func TestDirectory_Lookup(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "css/site.css", "body{}")
	writeFile(t, root, "alpha/app.js", "alpha")

	store := fs.NewDirectory(root)
	ctx := context.Background()

	tests := []struct {
		name      string
		pluginID  string
		path      string
		wantFound bool
		want      string
	}{
		{name: "file", path: "css/site.css", wantFound: true, want: "body{}"},
		{name: "leading slash", path: "/css/site.css", wantFound: true, want: "body{}"},
		{name: "plugin subdirectory", pluginID: "alpha", path: "app.js", wantFound: true, want: "alpha"},
		{name: "missing", path: "css/missing.css"},
		{name: "directory", path: "css"},
		{name: "through a file", path: "css/site.css/x"},
		{name: "escape", path: "../etc/passwd"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content, found, err := store.Lookup(ctx, tt.pluginID, tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.wantFound, found)
			if tt.wantFound {
				assert.Equal(t, tt.want, string(content))
			}
		})
	}
}

func TestDirectory_LookupCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := fs.NewDirectory(t.TempDir()).Lookup(ctx, "", "app.js")
	assert.ErrorIs(t, err, context.Canceled)
}
