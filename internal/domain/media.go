package domain

import "context"

// MediaStore is the external media-hosting collaborator. Implementations
// return a stable public URL for the stored object.
type MediaStore interface {
	Upload(ctx context.Context, key, contentType string, data []byte) (string, error)
}
