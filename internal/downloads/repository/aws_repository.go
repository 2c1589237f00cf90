package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/amankumarsingh77/channel-monitor/internal/downloads"
	"github.com/amankumarsingh77/channel-monitor/internal/models"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type awsRepository struct {
	client        *s3.Client
	preSignClient *s3.PresignClient
}

func NewAwsRepository(awsClient *s3.Client, preSignClient *s3.PresignClient) downloads.AWSRepository {
	return &awsRepository{
		preSignClient: preSignClient,
		client:        awsClient,
	}
}

func (a *awsRepository) PutObject(ctx context.Context, input models.ArchiveInput) error {
	_, err := a.client.PutObject(
		ctx,
		&s3.PutObjectInput{
			Bucket:        &input.BucketName,
			Key:           &input.Key,
			ContentType:   &input.MimeType,
			ContentLength: &input.Size,
			Body:          input.File,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to upload file : %w", err)
	}
	return nil
}

func (a *awsRepository) GetPresignedURL(ctx context.Context, bucket, key string, expires time.Duration) (string, error) {
	req, err := a.preSignClient.PresignGetObject(
		ctx,
		&s3.GetObjectInput{
			Bucket: &bucket,
			Key:    &key,
		},
		s3.WithPresignExpires(expires),
	)
	if err != nil {
		return "", fmt.Errorf("failed to presign get object : %w", err)
	}
	return req.URL, nil
}
