package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/kurin/blazer/b2"
	"github.com/pkg/errors"
)

// B2Store stores images in a Backblaze B2 bucket
type B2Store struct {
	client *b2.Client
	bucket *b2.Bucket
}

func NewB2Store(ctx context.Context, accountID, appKey, bucketName string) (*B2Store, error) {
	client, err := b2.NewClient(ctx, accountID, appKey)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create b2 client")
	}

	bucket, err := client.Bucket(ctx, bucketName)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get bucket")
	}

	return &B2Store{client: client, bucket: bucket}, nil
}

func (s *B2Store) Upload(ctx context.Context, key string, r io.Reader, contentType string) (string, error) {
	w := s.bucket.Object(key).NewWriter(ctx).WithAttrs(&b2.Attrs{ContentType: contentType})

	if _, err := io.Copy(w, r); err != nil {
		w.Close()
		return "", errors.Wrap(err, "failed to write object")
	}
	if err := w.Close(); err != nil {
		return "", errors.Wrap(err, "failed to close writer")
	}

	return fmt.Sprintf("%s/file/%s/%s", s.bucket.BaseURL(), s.bucket.Name(), key), nil
}
