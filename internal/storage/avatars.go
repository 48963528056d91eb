package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// AvatarStorage stores profile pictures in an S3-compatible bucket and hands
// back public URLs for display.
type AvatarStorage struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

// NewAvatarStorage connects to the object store and ensures the bucket exists
func NewAvatarStorage(endpoint, accessKey, secretKey string, useSSL bool, bucket, publicURL string) (*AvatarStorage, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to object storage: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return &AvatarStorage{
		client:    client,
		bucket:    bucket,
		publicURL: publicURL,
	}, nil
}

// UploadAvatar stores the image under <principal>/<random>.<ext> and returns
// its public URL
func (s *AvatarStorage) UploadAvatar(ctx context.Context, userID, filename string, data io.Reader, size int64, contentType string) (string, error) {
	object := fmt.Sprintf("%s/%s%s", userID, uuid.New().String(), path.Ext(filename))

	_, err := s.client.PutObject(ctx, s.bucket, object, data, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload avatar: %w", err)
	}

	return fmt.Sprintf("%s/%s/%s", s.publicURL, s.bucket, object), nil
}
