// Copyright (c) 2026 Motoria. All rights reserved.
// Author: danu.arta.dev@gmail.com

package media_test

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danuarta/motoria/internal/platform/media"
)

func newTestStore(t *testing.T) *media.DiskStore {
	t.Helper()
	store, err := media.NewDiskStore(t.TempDir(), "/media", slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	return store
}

func TestDiskStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store, err := media.NewDiskStore(dir, "/media/", slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	url, err := store.Upload(ctx, "Front View.JPG", strings.NewReader("jpeg-bytes"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/media/"))
	assert.True(t, strings.HasSuffix(url, "-front-view.jpg"))

	key := strings.TrimPrefix(url, "/media/")
	content, err := os.ReadFile(filepath.Join(dir, key))
	require.NoError(t, err)
	assert.Equal(t, "jpeg-bytes", string(content))

	require.NoError(t, store.Delete(ctx, url))
	_, err = os.Stat(filepath.Join(dir, key))
	assert.True(t, os.IsNotExist(err))
}

func TestDiskStoreUniqueKeys(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	first, err := store.Upload(ctx, "car.jpg", strings.NewReader("a"))
	require.NoError(t, err)
	second, err := store.Upload(ctx, "car.jpg", strings.NewReader("b"))
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestDiskStoreDeleteRejectsForeignURLs(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	tests := []struct {
		name string
		url  string
	}{
		{"other_origin", "https://cdn.example.com/media/x.jpg"},
		{"path_traversal", "/media/../secrets.txt"},
		{"nested_path", "/media/a/b.jpg"},
		{"empty_key", "/media/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, store.Delete(ctx, tt.url))
		})
	}
}

func TestDiskStoreHonorsCancellation(t *testing.T) {
	store := newTestStore(t)

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.Upload(cancelled, "car.jpg", strings.NewReader("a"))
	assert.ErrorIs(t, err, context.Canceled)
}
