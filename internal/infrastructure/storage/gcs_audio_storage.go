// Package storage uploads recording audio to Google Cloud Storage.
package storage

import (
	"context"
	"io"

	gcs "cloud.google.com/go/storage"
	"github.com/google/uuid"

	"github.com/oksasatya/quiz-history-api/pkg/helpers"
)

type uploadFunc func(ctx context.Context, objectPath, contentType string, r io.Reader) (string, error)

type GCSAudioStorage struct {
	Bucket string
	upload uploadFunc
	newID  func() string
}

func NewGCSAudioStorage(client *gcs.Client, bucket string) *GCSAudioStorage {
	return &GCSAudioStorage{
		Bucket: bucket,
		upload: func(ctx context.Context, objectPath, contentType string, r io.Reader) (string, error) {
			return helpers.UploadObject(ctx, client, bucket, objectPath, contentType, r)
		},
		newID: uuid.NewString,
	}
}

// Upload writes r to recordings/<userID>/<uuid><ext> and returns the public URL.
func (s *GCSAudioStorage) Upload(ctx context.Context, userID, filename, contentType string, r io.Reader) (string, error) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return s.upload(ctx, helpers.RecordingObjectPath(userID, s.newID(), filename), contentType, r)
}
