package utils

import (
	"adhya/config"
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Document files live in an S3-compatible bucket (MinIO). The browser uploads
// directly via a presigned PUT URL; the backend only issues presigns and
// deletes objects by key.

var storageClient *minio.Client

// InitStorage connects the object storage client and ensures the bucket
// exists. Storage stays disabled when no endpoint is configured.
func InitStorage() error {
	cfg := config.AppConfig
	if cfg.StorageEndpoint == "" {
		log.Println("Warning: STORAGE_ENDPOINT is not set. Document storage is disabled.")
		return nil
	}

	client, err := minio.New(cfg.StorageEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.StorageAccessKey, cfg.StorageSecretKey, ""),
		Secure: cfg.StorageUseSSL,
	})
	if err != nil {
		return fmt.Errorf("create storage client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, cfg.StorageBucket)
	if err != nil {
		return fmt.Errorf("check bucket existence: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.StorageBucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("create bucket: %w", err)
		}
	}

	storageClient = client
	log.Println("Connected to object storage, bucket:", cfg.StorageBucket)
	return nil
}

// StorageEnabled reports whether an object storage client is configured.
func StorageEnabled() bool {
	return storageClient != nil
}

// PresignUpload returns a time-limited PUT URL for a browser-direct upload,
// along with the object key and its public URL.
func PresignUpload(fileName string) (uploadURL, publicURL, key string, err error) {
	if storageClient == nil {
		return "", "", "", errors.New("object storage is not configured")
	}

	cfg := config.AppConfig
	key = uuid.NewString() + filepath.Ext(fileName)

	u, err := storageClient.PresignedPutObject(context.Background(), cfg.StorageBucket, key, 15*time.Minute)
	if err != nil {
		return "", "", "", err
	}

	scheme := "http"
	if cfg.StorageUseSSL {
		scheme = "https"
	}
	publicURL = fmt.Sprintf("%s://%s/%s/%s", scheme, cfg.StorageEndpoint, cfg.StorageBucket, url.PathEscape(key))

	return u.String(), publicURL, key, nil
}

// RemoveObject is the indirection used by all delete paths; tests replace it
// to observe storage deletes without a live bucket.
var RemoveObject = DeleteStoredObject

// DeleteStoredObject removes an object by key. Deleting a missing object is
// not an error, so the call is safe to retry.
func DeleteStoredObject(publicID string) error {
	if storageClient == nil {
		return errors.New("object storage is not configured")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return storageClient.RemoveObject(ctx, config.AppConfig.StorageBucket, publicID, minio.RemoveObjectOptions{})
}
