package sink

import (
	"bytes"
	"context"
	"errors"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/orayew2002/rast-words/domain"
	"github.com/remiges-tech/logharbour/logharbour"
)

// XLSXContentType is the MIME type of uploaded workbooks.
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ObjectStore uploads objects to a bucket.
type ObjectStore interface {
	Put(ctx context.Context, bucket, obj string, reader io.Reader, size int64, contentType string) error
}

// MinioStore implements ObjectStore on an S3-compatible server.
type MinioStore struct {
	client *minio.Client
}

// NewMinioStore connects to endpoint with static credentials.
func NewMinioStore(endpoint, accessKey, secretKey string, secure bool) (*MinioStore, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: secure,
	})
	if err != nil {
		return nil, unavailable("connect object store", err)
	}
	return &MinioStore{client: client}, nil
}

// Put uploads reader as bucket/obj.
func (s *MinioStore) Put(ctx context.Context, bucket, obj string, reader io.Reader, size int64, contentType string) error {
	_, err := s.client.PutObject(ctx, bucket, obj, reader, size, minio.PutObjectOptions{ContentType: contentType})
	return err
}

// Object renders rows into a workbook and uploads it as Bucket/Key.
type Object struct {
	Store  ObjectStore
	Bucket string
	Key    string
	logger *logharbour.Logger
}

// NewObject creates an Object sink.
func NewObject(store ObjectStore, bucket, key string, logger *logharbour.Logger) *Object {
	return &Object{Store: store, Bucket: bucket, Key: key, logger: logger.WithModule("objstore")}
}

// Persist renders the workbook and uploads it, replacing any previous object.
func (o *Object) Persist(ctx context.Context, rng Range, rows []domain.Row) error {
	if o.Bucket == "" || o.Key == "" {
		return unavailable("upload workbook", errors.New("bucket and object key are required"))
	}

	data, err := Render(rng, rows)
	if err != nil {
		if errors.Is(err, ErrUnavailable) {
			return err
		}
		return unavailable("render workbook", err)
	}

	if err := o.Store.Put(ctx, o.Bucket, o.Key, bytes.NewReader(data), int64(len(data)), XLSXContentType); err != nil {
		o.logger.Error(err).LogActivity("Error uploading workbook", map[string]any{
			"bucket": o.Bucket,
			"object": o.Key,
		})
		return unavailable("upload workbook", err)
	}

	o.logger.Info().LogActivity("Workbook uploaded", map[string]any{
		"bucket":  o.Bucket,
		"object":  o.Key,
		"range":   rng.A1(),
		"entries": len(rows),
		"bytes":   len(data),
	})
	return nil
}
