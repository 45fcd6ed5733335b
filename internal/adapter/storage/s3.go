package storage

import (
	"bytes"
	"context"
	"fmt"
	"mime"
	"strings"

	"cups-server/internal/config"
	"cups-server/internal/domain/provider"
	"cups-server/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// s3Storage uploads blobs to an S3 bucket and returns their public URLs.
type s3Storage struct {
	client *s3.Client
	bucket string
	region string
	logger *zap.Logger
}

// NewS3Storage builds an S3-backed BlobStorage from static credentials.
func NewS3Storage(ctx context.Context, cfg config.S3Config, logger *zap.Logger) (provider.BlobStorage, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		),
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load AWS configuration")
	}

	return &s3Storage{
		client: s3.NewFromConfig(awsCfg),
		bucket: cfg.BucketName,
		region: cfg.Region,
		logger: logger,
	}, nil
}

func (s *s3Storage) Upload(ctx context.Context, data []byte, contentType, folder string) (string, error) {
	key := fmt.Sprintf("%s/%s%s", folder, uuid.New().String(), extensionFor(contentType))

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		s.logger.Error("Failed to upload object", zap.String("key", key), zap.Error(err))
		return "", errors.Storage("failed to upload object", err)
	}

	s.logger.Info("Object uploaded", zap.String("key", key), zap.Int("size", len(data)))

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key), nil
}

func extensionFor(contentType string) string {
	// mime.ExtensionsByType can return several candidates; the common image
	// types all resolve to a single sensible extension.
	exts, err := mime.ExtensionsByType(contentType)
	if err != nil || len(exts) == 0 {
		return ""
	}
	for _, ext := range exts {
		if strings.HasPrefix(ext, ".jp") || ext == ".png" || ext == ".gif" || ext == ".webp" {
			return ext
		}
	}
	return exts[0]
}
