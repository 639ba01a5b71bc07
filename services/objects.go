// ABOUTME: Object readers for bulk inventory documents
// ABOUTME: S3 via aws-sdk-go and a local directory layout for offline runs

package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
)

// ErrObjectTooLarge is returned when an object exceeds the configured limit.
var ErrObjectTooLarge = errors.New("object exceeds size limit")

// S3ObjectStore reads objects from S3.
type S3ObjectStore struct {
	client   s3iface.S3API
	maxBytes int64
}

// NewS3ObjectStore creates an S3 reader. maxBytes <= 0 means no limit.
func NewS3ObjectStore(client s3iface.S3API, maxBytes int64) *S3ObjectStore {
	return &S3ObjectStore{client: client, maxBytes: maxBytes}
}

func (s *S3ObjectStore) GetObject(ctx context.Context, bucket, key string) ([]byte, error) {
	out, err := s.client.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get s3://%s/%s: %w", bucket, key, err)
	}
	defer out.Body.Close()

	data, err := readLimited(out.Body, s.maxBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to read s3://%s/%s: %w", bucket, key, err)
	}
	return data, nil
}

// DirObjectStore maps bucket/key onto root/bucket/key on the local filesystem.
type DirObjectStore struct {
	root     string
	maxBytes int64
}

// NewDirObjectStore creates a reader rooted at dir
func NewDirObjectStore(dir string, maxBytes int64) *DirObjectStore {
	return &DirObjectStore{root: dir, maxBytes: maxBytes}
}

func (d *DirObjectStore) GetObject(ctx context.Context, bucket, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	key = filepath.FromSlash(key)
	if !filepath.IsLocal(bucket) || !filepath.IsLocal(key) {
		return nil, fmt.Errorf("invalid object path %s/%s", bucket, key)
	}
	rel := filepath.Join(bucket, key)

	f, err := os.Open(filepath.Join(d.root, rel))
	if err != nil {
		return nil, fmt.Errorf("failed to open %s/%s: %w", bucket, key, err)
	}
	defer f.Close()

	data, err := readLimited(f, d.maxBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s/%s: %w", bucket, key, err)
	}
	return data, nil
}

func readLimited(r io.Reader, maxBytes int64) ([]byte, error) {
	if maxBytes <= 0 {
		return io.ReadAll(r)
	}
	data, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > maxBytes {
		return nil, fmt.Errorf("%w of %d bytes", ErrObjectTooLarge, maxBytes)
	}
	return data, nil
}
