package blob

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound is returned when a blob does not exist.
//
// Implementations return errors satisfying errors.Is(err, ErrNotFound).
var ErrNotFound = errors.New("blob not found")

// Store keeps dataset payloads.
//
// Blobs are immutable: written once at upload, read whole for each
// analysis, removed together with their dataset record.
type Store interface {
	// Put writes the payload under key. size is the payload length
	// in bytes, or -1 when unknown.
	//
	// Putting over an existing key replaces the payload.
	Put(ctx context.Context, key string, r io.Reader, size int64) error

	// Open opens the blob for reading. The caller closes it.
	//
	// Returns
	//
	// - io.ReadCloser
	//
	// - error: ErrNotFound when no blob is stored under key.
	Open(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes a blob. Deleting an absent blob is not an error.
	Delete(ctx context.Context, key string) error
}
