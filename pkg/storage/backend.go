// Package storage provides blob persistence for session artifacts.
package storage

import "context"

// BlobStore is the abstract storage backend for analysis artifacts.
type BlobStore interface {
	Put(ctx context.Context, key string, data []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
	List(ctx context.Context, prefix string) ([]string, error)
}
