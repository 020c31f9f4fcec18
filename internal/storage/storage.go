package storage

import "context"

// ObjectStorage captures the minimal S3-compatible operations the sweep
// report archiver needs.
type ObjectStorage interface {
	UploadObject(ctx context.Context, key string, data []byte) error
}
