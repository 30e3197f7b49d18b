package object

import (
	"context"
	"io"
)

// ObjectStore defines the contract for persisting uploaded document bytes.
// Save generates a unique stored name from the original file name; Delete
// tolerates a missing object.
type ObjectStore interface {
	Save(ctx context.Context, fileName string, r io.Reader) (storedName string, sizeBytes int64, err error)
	Open(ctx context.Context, storedName string) (io.ReadCloser, error)
	Delete(ctx context.Context, storedName string) error
}
