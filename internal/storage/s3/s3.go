package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	appcfg "github.com/5w1tchy/password-meter/internal/config"
)

// S3Client writes tally snapshots to an S3-compatible bucket (R2, MinIO, AWS).
type S3Client struct {
	Client *s3.Client
	Bucket string
}

// NewClient builds a client from PM_S3_* settings.
func NewClient(ctx context.Context, c appcfg.S3Config) (*S3Client, error) {
	if !c.Enabled() {
		return nil, errors.New("s3: bucket not configured")
	}

	creds := credentials.NewStaticCredentialsProvider(c.AccessKeyID, c.SecretAccessKey, "")

	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(c.Region),
		config.WithCredentialsProvider(creds),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if c.Endpoint != "" {
			o.BaseEndpoint = aws.String(c.Endpoint)
		}
		o.UsePathStyle = c.PathStyle
		o.RequestChecksumCalculation = aws.RequestChecksumCalculationWhenRequired
	})

	return &S3Client{Client: client, Bucket: c.Bucket}, nil
}

// PutJSON uploads body under objectKey with a JSON content type.
func (s *S3Client) PutJSON(ctx context.Context, objectKey string, body []byte) error {
	_, err := s.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.Bucket),
		Key:           aws.String(objectKey),
		Body:          bytes.NewReader(body),
		ContentLength: aws.Int64(int64(len(body))),
		ContentType:   aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("s3: put object %s: %w", objectKey, err)
	}
	return nil
}
