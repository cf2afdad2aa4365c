// utils/r2.go
package utils

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// R2Mirror uploads state snapshots to a Cloudflare R2 bucket. It satisfies
// the repository's mirror hook; uploads are best-effort and never block
// local durability.
type R2Mirror struct {
	client *s3.Client
	bucket string
	prefix string
}

// NewR2MirrorFromEnv builds the mirror from CLOUDFLARE_ACCOUNT_ID,
// R2_ACCESS_KEY_ID, R2_ACCESS_KEY_SECRET and R2_BUCKET_NAME. Returns
// (nil, nil) when the account ID is unset so callers can treat the mirror
// as optional.
func NewR2MirrorFromEnv() (*R2Mirror, error) {
	accountID := os.Getenv("CLOUDFLARE_ACCOUNT_ID")
	if accountID == "" {
		return nil, nil
	}
	accessKeyID := os.Getenv("R2_ACCESS_KEY_ID")
	accessKeySecret := os.Getenv("R2_ACCESS_KEY_SECRET")
	bucket := os.Getenv("R2_BUCKET_NAME")
	if accessKeyID == "" || accessKeySecret == "" || bucket == "" {
		return nil, fmt.Errorf("R2 mirror misconfigured: access keys and R2_BUCKET_NAME are required")
	}

	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion("auto"),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			accessKeyID, accessKeySecret, "",
		)),
		config.WithEndpointResolver(aws.EndpointResolverFunc(
			func(service, region string) (aws.Endpoint, error) {
				return aws.Endpoint{
					URL: fmt.Sprintf("https://%s.r2.cloudflarestorage.com", accountID),
				}, nil
			}),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load R2 config: %w", err)
	}

	prefix := os.Getenv("R2_SNAPSHOT_PREFIX")
	if prefix == "" {
		prefix = "snapshots"
	}

	return &R2Mirror{
		client: s3.NewFromConfig(cfg),
		bucket: bucket,
		prefix: prefix,
	}, nil
}

// Upload writes the snapshot under a timestamped key plus a stable "latest"
// key for easy recovery.
func (m *R2Mirror) Upload(ctx context.Context, data []byte) error {
	keys := []string{
		fmt.Sprintf("%s/%s.json", m.prefix, time.Now().UTC().Format("20060102T150405Z")),
		fmt.Sprintf("%s/latest.json", m.prefix),
	}
	for _, key := range keys {
		_, err := m.client.PutObject(ctx, &s3.PutObjectInput{
			Bucket:      aws.String(m.bucket),
			Key:         aws.String(key),
			Body:        bytes.NewReader(data),
			ContentType: aws.String("application/json"),
		})
		if err != nil {
			return fmt.Errorf("failed to upload snapshot to R2 (%s): %w", key, err)
		}
	}
	return nil
}
