// Copyright (c) 2026 Motoria. All rights reserved.
// Author: danu.arta.dev@gmail.com

/*
Package media provides the blob-storage collaborator used for showroom images.

The inventory domain never touches the filesystem or any object-storage SDK
directly; it depends on the [Store] interface only. This keeps the compensating
cleanup logic (delete blobs uploaded during a failed create) testable with an
in-memory fake.

Core Responsibilities:

  - Upload: Persist an image stream and return its public URL.
  - Delete: Remove a previously stored blob by its URL.

The default implementation is [DiskStore], a local-directory store whose
objects are served by a reverse proxy (or the static file route in dev).
*/
package media

import (
	"context"
	"io"
)

// Upload is an inbound image carried from the HTTP layer into a service.
// Content is consumed once, streaming, never buffered whole.
type Upload struct {
	Filename string
	Content  io.Reader
}

// Store is the contract for the external blob-storage collaborator.
type Store interface {

	/*
		Upload persists the content of reader under a storage key derived
		from filename and returns the public URL of the stored blob.

		Parameters:
		  - context: context.Context
		  - filename: string (Original client file name; sanitized internally)
		  - reader: io.Reader (Blob content)

		Returns:
		  - string: Public URL of the stored blob
		  - error: Storage I/O failures
	*/
	Upload(context context.Context, filename string, reader io.Reader) (string, error)

	/*
		Delete removes a stored blob by its public URL.

		Description: Deleting a URL that does not belong to this store, or
		that was already removed, returns an error; callers decide whether
		that error is fatal (create-time compensation logs and continues).

		Parameters:
		  - context: context.Context
		  - url: string (URL previously returned by Upload)

		Returns:
		  - error: Removal failures
	*/
	Delete(context context.Context, url string) error
}
