// Package storage defines the read-only object-storage contract used for
// Supabase Storage. Supabase exposes an S3-compatible endpoint per project;
// callers depend only on this package, never on the S3 client directly.
package storage

import (
	"context"
	"io"
	"time"
)

// Store is the interface every object-storage backend implements.
// Scoped to read operations.
type Store interface {
	// Ping verifies the storage endpoint is reachable with the
	// configured credentials.
	Ping(ctx context.Context) error

	// Close releases any held resources.
	Close() error

	// ListBuckets returns all buckets accessible with the configured
	// credentials.
	ListBuckets(ctx context.Context) ([]BucketInfo, error)

	// ListObjects returns the objects in bucket that match opts.
	ListObjects(ctx context.Context, bucket string, opts ListOptions) ([]ObjectInfo, error)

	// StatObject returns metadata for one object without downloading it.
	StatObject(ctx context.Context, bucket, key string) (*ObjectInfo, error)

	// GetObject opens a streaming handle to one object. The caller must
	// close it after reading.
	GetObject(ctx context.Context, bucket, key string) (io.ReadCloser, error)
}

// BucketInfo describes a storage bucket.
type BucketInfo struct {
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at,omitzero"`
}

// ObjectInfo describes one stored object.
type ObjectInfo struct {
	// Key is the full object path within the bucket.
	Key string `json:"key"`

	// Size is the byte size of the object. -1 if unknown.
	Size int64 `json:"size"`

	// ContentType is the MIME type.
	ContentType string `json:"content_type,omitempty"`

	// ETag is the object's entity tag as returned by the backend.
	ETag string `json:"etag,omitempty"`

	// LastModified is when the object was last written.
	LastModified time.Time `json:"last_modified,omitzero"`
}

// ListOptions controls how ListObjects filters results.
type ListOptions struct {
	// Prefix restricts results to keys starting with this string.
	Prefix string

	// Recursive lists everything under the prefix instead of grouping
	// by virtual directories.
	Recursive bool

	// Limit caps the number of results. 0 means no cap.
	Limit int
}
