package storage

import (
	"context"
	"io"
)

// Storage persists uploaded campaign images and returns the public path or
// URL under which the image can be fetched. Uploads are synchronous; a
// create request is not accepted until the file is fully written.
type Storage interface {
	Save(ctx context.Context, filename, contentType string, r io.Reader, size int64) (string, error)
}
