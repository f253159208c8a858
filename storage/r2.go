package storage

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"railshift/models"
)

type R2Config struct {
	Bucket          string
	AccountID       string
	PublicURL       string // e.g. https://<bucket>.<account_id>.r2.cloudflarestorage.com
	AccessKeyID     string
	SecretAccessKey string
}

// ObjectAPI is the part of the S3 client the store needs.
type ObjectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// R2Store keeps documents in a Cloudflare R2 bucket through the S3 API.
type R2Store struct {
	client     ObjectAPI
	bucket     string
	publicBase string
}

func NewR2Store(ctx context.Context, cfg R2Config) (*R2Store, error) {
	if cfg.Bucket == "" || cfg.AccountID == "" || cfg.PublicURL == "" {
		return nil, fmt.Errorf("storage: missing required R2 settings")
	}
	endpoint := fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.AccountID)

	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion("auto"), // Important for R2
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("storage: load R2 config: %w", err)
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
	})
	return NewR2StoreWithClient(client, cfg.Bucket, cfg.PublicURL), nil
}

func NewR2StoreWithClient(client ObjectAPI, bucket, publicBase string) *R2Store {
	return &R2Store{client: client, bucket: bucket, publicBase: publicBase}
}

func (s *R2Store) Put(ctx context.Context, name, contentType string, data []byte) (models.Document, error) {
	key := objectKey(name)
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return models.Document{}, fmt.Errorf("storage: upload to R2: %w", err)
	}
	doc := newDocument(key, name, contentType, int64(len(data)))
	doc.URL = fmt.Sprintf("%s/%s", strings.TrimRight(s.publicBase, "/"), url.PathEscape(key))
	return doc, nil
}

func (s *R2Store) Delete(ctx context.Context, doc models.Document) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(doc.Path),
	})
	if err != nil {
		return fmt.Errorf("storage: delete R2 object: %w", err)
	}
	return nil
}
