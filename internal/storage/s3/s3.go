// Package s3 provides the minio-backed implementation of storage.Store
// used for Supabase Storage's S3-compatible endpoint.
package s3

import (
	"context"
	"errors"
	"io"
	"strings"

	miniogo "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/fedra-io/fedra/internal/errs"
	"github.com/fedra-io/fedra/internal/storage"
)

// Config holds the settings for one S3-compatible storage endpoint.
type Config struct {
	// Endpoint is the host[:port] of the storage endpoint. A scheme
	// prefix is accepted and controls TLS (https implies TLS on).
	Endpoint string

	// AccessKey is the access key ID.
	AccessKey string

	// SecretKey is the secret access key.
	SecretKey string

	// Region is used by region-aware endpoints. Usually empty.
	Region string
}

// Client is the minio implementation of storage.Store.
// Safe for concurrent use by multiple goroutines.
type Client struct {
	client *miniogo.Client
}

// New connects to the storage endpoint and verifies the credentials by
// listing buckets before returning.
func New(ctx context.Context, cfg *Config) (*Client, error) {
	endpoint, secure := splitEndpoint(cfg.Endpoint)

	mc, err := miniogo.New(endpoint, &miniogo.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: secure,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, errs.Wrap(errs.ErrKindInvalidConfig, "invalid storage endpoint", err)
	}

	c := &Client{client: mc}
	if err := c.Ping(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

// splitEndpoint strips an optional scheme from an endpoint. TLS is on
// unless the scheme is explicitly http — storage endpoints are hosted.
func splitEndpoint(endpoint string) (host string, secure bool) {
	switch {
	case strings.HasPrefix(endpoint, "https://"):
		return strings.TrimPrefix(endpoint, "https://"), true
	case strings.HasPrefix(endpoint, "http://"):
		return strings.TrimPrefix(endpoint, "http://"), false
	default:
		return endpoint, true
	}
}

// --- storage.Store implementation ---

// Ping verifies the endpoint is reachable by listing buckets.
func (c *Client) Ping(ctx context.Context) error {
	if _, err := c.client.ListBuckets(ctx); err != nil {
		return mapError(err, "storage ping failed")
	}
	return nil
}

// Close is a no-op — the SDK client holds no persistent connections.
func (c *Client) Close() error {
	return nil
}

// ListBuckets returns all buckets accessible with the configured credentials.
func (c *Client) ListBuckets(ctx context.Context) ([]storage.BucketInfo, error) {
	raw, err := c.client.ListBuckets(ctx)
	if err != nil {
		return nil, mapError(err, "failed to list buckets")
	}

	buckets := make([]storage.BucketInfo, len(raw))
	for i, b := range raw {
		buckets[i] = storage.BucketInfo{Name: b.Name, CreatedAt: b.CreationDate}
	}
	return buckets, nil
}

// ListObjects returns the objects in bucket that match opts.
func (c *Client) ListObjects(ctx context.Context, bucket string, opts storage.ListOptions) ([]storage.ObjectInfo, error) {
	listOpts := miniogo.ListObjectsOptions{
		Prefix:    opts.Prefix,
		Recursive: opts.Recursive,
	}

	var results []storage.ObjectInfo
	for obj := range c.client.ListObjects(ctx, bucket, listOpts) {
		if obj.Err != nil {
			return nil, mapError(obj.Err, "failed to list objects")
		}
		results = append(results, objectInfo(obj))
		if opts.Limit > 0 && len(results) >= opts.Limit {
			break
		}
	}
	return results, nil
}

// StatObject returns metadata for one object without downloading it.
func (c *Client) StatObject(ctx context.Context, bucket, key string) (*storage.ObjectInfo, error) {
	info, err := c.client.StatObject(ctx, bucket, key, miniogo.StatObjectOptions{})
	if err != nil {
		return nil, mapError(err, "failed to stat object")
	}
	oi := objectInfo(info)
	return &oi, nil
}

// GetObject opens a streaming handle to one object.
func (c *Client) GetObject(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
	obj, err := c.client.GetObject(ctx, bucket, key, miniogo.GetObjectOptions{})
	if err != nil {
		return nil, mapError(err, "failed to get object")
	}
	return obj, nil
}

func objectInfo(obj miniogo.ObjectInfo) storage.ObjectInfo {
	return storage.ObjectInfo{
		Key:          obj.Key,
		Size:         obj.Size,
		ContentType:  obj.ContentType,
		ETag:         obj.ETag,
		LastModified: obj.LastModified,
	}
}

// mapError translates minio errors into *errs.Error.
func mapError(err error, msg string) *errs.Error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return errs.Wrap(errs.ErrKindTimeout, msg, err)
	}

	resp := miniogo.ToErrorResponse(err)
	switch resp.Code {
	case "NoSuchBucket", "NoSuchKey", "NotFound":
		return errs.Wrap(errs.ErrKindNotFound, msg, err)
	case "AccessDenied", "InvalidAccessKeyId", "SignatureDoesNotMatch":
		return errs.Wrap(errs.ErrKindConnectionFailed, msg, err)
	case "":
		// No S3 error body — network-level failure.
		return errs.Wrap(errs.ErrKindConnectionFailed, msg, err)
	default:
		return errs.Wrap(errs.ErrKindQueryFailed, msg, err)
	}
}
