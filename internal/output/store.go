package output

import (
	"context"
	"fmt"
)

const contentType = "application/json"

// ObjectStore is the object storage used to publish records.
type ObjectStore interface {
	EnsureBucket(ctx context.Context, bucket string) error
	PutObject(ctx context.Context, bucket, key, contentType string, data []byte) error
	GetObject(ctx context.Context, bucket, key string) ([]byte, error)
	DeleteObject(ctx context.Context, bucket, key string) error
}

// Remote stores records under one bucket key.
type Remote struct {
	store  ObjectStore
	bucket string
	key    string
}

// NewRemote creates a Remote writing to s3://bucket/key.
func NewRemote(store ObjectStore, bucket, key string) *Remote {
	return &Remote{store: store, bucket: bucket, key: key}
}

// URI returns the object location.
func (r *Remote) URI() string {
	return fmt.Sprintf("s3://%s/%s", r.bucket, r.key)
}

// Publish uploads the record, creating the bucket if needed.
func (r *Remote) Publish(ctx context.Context, rec *Record) error {
	data, err := rec.Marshal()
	if err != nil {
		return err
	}
	if err := r.store.EnsureBucket(ctx, r.bucket); err != nil {
		return fmt.Errorf("failed to publish record: %w", err)
	}
	if err := r.store.PutObject(ctx, r.bucket, r.key, contentType, data); err != nil {
		return fmt.Errorf("failed to publish record: %w", err)
	}
	return nil
}

// Fetch downloads the record.
func (r *Remote) Fetch(ctx context.Context) (*Record, error) {
	data, err := r.store.GetObject(ctx, r.bucket, r.key)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch record: %w", err)
	}
	return Unmarshal(data)
}

// Remove deletes the record.
func (r *Remote) Remove(ctx context.Context) error {
	if err := r.store.DeleteObject(ctx, r.bucket, r.key); err != nil {
		return fmt.Errorf("failed to remove record: %w", err)
	}
	return nil
}
