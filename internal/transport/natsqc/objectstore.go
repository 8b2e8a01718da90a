// Package natsqc serves audio checks over NATS request/reply, reading the
// audio from a JetStream object store bucket.
package natsqc

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	apperrors "github.com/killallgit/dialogue-qc/pkg/errors"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// Store is a key-value blob store holding rendered audio
type Store interface {
	Download(ctx context.Context, key string) ([]byte, error)
	Upload(ctx context.Context, key string, data []byte) error
}

// ObjectStore implements Store on a JetStream object store bucket
type ObjectStore struct {
	bucket string
	store  nats.ObjectStore
}

// NewObjectStore binds to bucket, creating it when it does not exist yet
func NewObjectStore(js nats.JetStreamContext, bucket string) (*ObjectStore, error) {
	store, err := js.CreateObjectStore(&nats.ObjectStoreConfig{
		Bucket:      bucket,
		Description: fmt.Sprintf("Rendered dialogue audio for %s.", bucket),
		Storage:     nats.FileStorage,
		Replicas:    1,
	})
	if err != nil {
		if !errors.Is(err, jetstream.ErrBucketExists) && !errors.Is(err, nats.ErrStreamNameAlreadyInUse) {
			return nil, fmt.Errorf("failed to create object store bucket '%s': %w", bucket, err)
		}
		store, err = js.ObjectStore(bucket)
		if err != nil {
			return nil, fmt.Errorf("failed to bind to object store bucket '%s': %w", bucket, err)
		}
	}

	return &ObjectStore{bucket: bucket, store: store}, nil
}

// Download retrieves an object's bytes
func (o *ObjectStore) Download(ctx context.Context, key string) ([]byte, error) {
	data, err := o.store.GetBytes(key, nats.Context(ctx))
	if err != nil {
		return nil, apperrors.StorageError(key, err).WithDetail("bucket", o.bucket)
	}
	return data, nil
}

// Upload stores data under key, replacing any previous object
func (o *ObjectStore) Upload(ctx context.Context, key string, data []byte) error {
	_, err := o.store.Put(&nats.ObjectMeta{Name: key}, bytes.NewReader(data), nats.Context(ctx))
	if err != nil {
		return fmt.Errorf("failed to put object '%s' to bucket '%s': %w", key, o.bucket, err)
	}
	return nil
}
