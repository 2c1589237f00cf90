package downloads

import (
	"context"
	"time"

	"github.com/amankumarsingh77/channel-monitor/internal/models"
)

type AWSRepository interface {
	PutObject(ctx context.Context, input models.ArchiveInput) error
	GetPresignedURL(ctx context.Context, bucket, key string, expires time.Duration) (string, error)
}
