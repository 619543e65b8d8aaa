// Copyright (c) 2026 Motoria. All rights reserved.
// Author: danu.arta.dev@gmail.com

package media

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/danuarta/motoria/pkg/slug"
	"github.com/danuarta/motoria/pkg/uuidv7"
)

// DiskStore implements [Store] on top of a local directory.
//
// # Key Scheme
//
// Objects are stored flat as "<uuidv7>-<slugged-name><ext>". The UUIDv7 prefix
// guarantees uniqueness and keeps directory listings time-ordered; the slugged
// original name keeps keys human-debuggable.
type DiskStore struct {
	dir     string
	baseURL string
	logger  *slog.Logger
}

// NewDiskStore creates the media directory if needed and returns a DiskStore.
func NewDiskStore(dir, baseURL string, logger *slog.Logger) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("media: failed to create directory %s: %w", dir, err)
	}

	return &DiskStore{
		dir:     dir,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger,
	}, nil
}

// Upload writes the blob to disk and returns its public URL.
func (store *DiskStore) Upload(context context.Context, filename string, reader io.Reader) (string, error) {

	// Honor request cancellation before doing disk I/O.
	if err := context.Err(); err != nil {
		return "", err
	}

	key := storageKey(filename)
	path := filepath.Join(store.dir, key)

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("media: failed to create %s: %w", key, err)
	}

	if _, err := io.Copy(file, reader); err != nil {
		file.Close()
		// Partial writes are unusable; remove them eagerly.
		_ = os.Remove(path)
		return "", fmt.Errorf("media: failed to write %s: %w", key, err)
	}

	if err := file.Close(); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("media: failed to close %s: %w", key, err)
	}

	url := store.baseURL + "/" + key
	store.logger.Debug("media_blob_stored", slog.String("key", key))

	return url, nil
}

// Delete removes a blob previously stored by this DiskStore.
func (store *DiskStore) Delete(context context.Context, url string) error {
	if err := context.Err(); err != nil {
		return err
	}

	key, ok := strings.CutPrefix(url, store.baseURL+"/")
	if !ok {
		return fmt.Errorf("media: url %q does not belong to this store", url)
	}

	// Reject anything that could escape the media directory.
	if key == "" || strings.Contains(key, "/") || strings.Contains(key, "..") {
		return fmt.Errorf("media: invalid storage key %q", key)
	}

	if err := os.Remove(filepath.Join(store.dir, key)); err != nil {
		return fmt.Errorf("media: failed to delete %s: %w", key, err)
	}

	store.logger.Debug("media_blob_deleted", slog.String("key", key))

	return nil
}

// storageKey derives a unique, filesystem-safe key from the original file name.
func storageKey(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))

	cleaned := slug.From(base)
	if cleaned == "" {
		cleaned = "upload"
	}

	return uuidv7.New() + "-" + cleaned + ext
}
