// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/MKhiriev/go-file-keeper/internal/config"
	"github.com/MKhiriev/go-file-keeper/internal/logger"
)

const (
	objectContentType = "application/octet-stream"
	minioNoSuchKey    = "NoSuchKey"
)

// minioObjectStorage keeps encrypted bodies in an S3-compatible bucket.
type minioObjectStorage struct {
	client *minio.Client
	bucket string
	logger *logger.Logger
}

// NewMinioObjectStorage connects to the S3 service described by cfg and
// creates the bucket when it does not exist yet.
func NewMinioObjectStorage(ctx context.Context, cfg config.Objects, log *logger.Logger) (ObjectStorage, error) {
	log.Debug().Msg("creating minio object storage")

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		log.Err(err).Str("func", "NewMinioObjectStorage").Msg("error creating minio client")
		return nil, fmt.Errorf("%w: %w", ErrObjectStorage, err)
	}

	s := &minioObjectStorage{
		client: client,
		bucket: cfg.Bucket,
		logger: log,
	}
	if err = s.ensureBucket(ctx, cfg.Region); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *minioObjectStorage) ensureBucket(ctx context.Context, region string) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		s.logger.Err(err).Str("func", "*minioObjectStorage.ensureBucket").Str("bucket", s.bucket).Msg("error checking bucket")
		return fmt.Errorf("%w: %w", ErrObjectStorage, err)
	}
	if exists {
		return nil
	}

	if err = s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{Region: region}); err != nil {
		s.logger.Err(err).Str("func", "*minioObjectStorage.ensureBucket").Str("bucket", s.bucket).Msg("error creating bucket")
		return fmt.Errorf("%w: %w", ErrObjectStorage, err)
	}
	s.logger.Info().Str("bucket", s.bucket).Msg("bucket created")

	return nil
}

func (s *minioObjectStorage) PutObject(ctx context.Context, key string, data []byte) error {
	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: objectContentType,
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*minioObjectStorage.PutObject").Str("key", key).Msg("error uploading object")
		return fmt.Errorf("%w: %w", ErrObjectStorage, err)
	}
	return nil
}

func (s *minioObjectStorage) GetObject(ctx context.Context, key string) ([]byte, error) {
	object, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, s.getError(ctx, key, err)
	}
	defer object.Close()

	data, err := io.ReadAll(object)
	if err != nil {
		return nil, s.getError(ctx, key, err)
	}
	return data, nil
}

func (s *minioObjectStorage) getError(ctx context.Context, key string, err error) error {
	if minio.ToErrorResponse(err).Code == minioNoSuchKey {
		return ErrObjectNotFound
	}
	logger.FromContext(ctx).Err(err).Str("func", "*minioObjectStorage.GetObject").Str("key", key).Msg("error downloading object")
	return fmt.Errorf("%w: %w", ErrObjectStorage, err)
}

// DeleteObject removes key. S3 reports success for missing keys, and so
// does this method.
func (s *minioObjectStorage) DeleteObject(ctx context.Context, key string) error {
	err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{})
	if err != nil && minio.ToErrorResponse(err).Code != minioNoSuchKey {
		logger.FromContext(ctx).Err(err).Str("func", "*minioObjectStorage.DeleteObject").Str("key", key).Msg("error removing object")
		return fmt.Errorf("%w: %w", ErrObjectStorage, err)
	}
	return nil
}
