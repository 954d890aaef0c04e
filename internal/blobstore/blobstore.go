// Package blobstore writes uploaded product photos to durable storage.
package blobstore

import (
	"context"
	"errors"
	"io"
)

// ErrInvalidName is returned for names that would escape the store root
var ErrInvalidName = errors.New("invalid blob name")

// Store accepts a named byte stream and writes it to durable storage
type Store interface {
	Put(ctx context.Context, name string, r io.Reader) error
}
