package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"scout/internal/config"
	"scout/internal/keys"
	"scout/internal/models"
)

// S3Service stores and loads batch requests in S3-compatible storage.
type S3Service struct {
	client *minio.Client
	bucket string
}

// NewS3Service connects to the MinIO endpoint named in cfg.
func NewS3Service(cfg *config.Batch) (*S3Service, error) {
	minioClient, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: cfg.MinioUseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	log.Println("Successfully connected to MinIO endpoint:", cfg.MinioEndpoint)
	return &S3Service{client: minioClient, bucket: cfg.BucketName}, nil
}

func (s *S3Service) Bucket() string {
	return s.bucket
}

func (s *S3Service) CreateBucket(ctx context.Context, location string) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("error checking bucket existence: %w", err)
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{Region: location}); err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", s.bucket, err)
	}
	log.Printf("Created bucket %s", s.bucket)
	return nil
}

// StoreBatch writes b under keys.Batch. It does not overwrite a batch that
// already exists.
func (s *S3Service) StoreBatch(ctx context.Context, b models.BatchRequest) (string, error) {
	objectKey := keys.Batch(b)

	_, err := s.client.StatObject(ctx, s.bucket, objectKey, minio.StatObjectOptions{})
	if err == nil {
		return "", fmt.Errorf("batch %s already exists at %s", b.ID, objectKey)
	}
	if minio.ToErrorResponse(err).Code != "NoSuchKey" {
		return "", fmt.Errorf("failed to check for existing object: %w", err)
	}

	data, err := json.Marshal(b)
	if err != nil {
		return "", fmt.Errorf("failed to marshal batch to JSON: %w", err)
	}
	_, err = s.client.PutObject(
		ctx,
		s.bucket,
		objectKey,
		bytes.NewReader(data),
		int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/json"},
	)
	if err != nil {
		return "", fmt.Errorf("failed to store object in S3: %w", err)
	}

	log.Printf("Stored batch %s (%d queries) at %s/%s", b.ID, len(b.Queries), s.bucket, objectKey)
	return objectKey, nil
}

// GetBatch loads the batch request at objectKey in bucket.
func (s *S3Service) GetBatch(ctx context.Context, bucket, objectKey string) (*models.BatchRequest, error) {
	object, err := s.client.GetObject(ctx, bucket, objectKey, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get object from S3: %w", err)
	}
	defer object.Close()

	b, err := DecodeBatch(object)
	if err != nil {
		return nil, fmt.Errorf("%s/%s: %w", bucket, objectKey, err)
	}
	log.Printf("Retrieved batch %s from %s/%s", b.ID, bucket, objectKey)
	return b, nil
}
