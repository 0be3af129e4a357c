package s3

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// BucketCredentials holds a company's storage-bucket access data as
// persisted in its registry record.
type BucketCredentials struct {
	Bucket    string
	Region    string
	AccessKey string
	SecretKey string
}

// Presigner builds short-lived presigned URLs against a company's own
// bucket. A fresh client is constructed per call because every company
// brings its own credentials and region.
type Presigner struct {
	expiry time.Duration
}

func NewPresigner(expiry time.Duration) *Presigner {
	if expiry <= 0 {
		expiry = 15 * time.Minute
	}
	return &Presigner{expiry: expiry}
}

// Expiry returns the configured URL lifetime.
func (p *Presigner) Expiry() time.Duration {
	return p.expiry
}

func (p *Presigner) presignClient(ctx context.Context, creds BucketCredentials) (*s3.PresignClient, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(creds.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			creds.AccessKey,
			creds.SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return s3.NewPresignClient(s3.NewFromConfig(cfg)), nil
}

// PresignPut returns a presigned PUT URL for uploading objectKey into the
// company's bucket.
func (p *Presigner) PresignPut(ctx context.Context, creds BucketCredentials, objectKey, contentType string) (string, error) {
	client, err := p.presignClient(ctx, creds)
	if err != nil {
		return "", err
	}

	req, err := client.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(creds.Bucket),
		Key:         aws.String(objectKey),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(p.expiry))
	if err != nil {
		return "", fmt.Errorf("failed to presign PUT for %q: %w", objectKey, err)
	}

	return req.URL, nil
}

// PresignGet returns a presigned GET URL for downloading objectKey from
// the company's bucket.
func (p *Presigner) PresignGet(ctx context.Context, creds BucketCredentials, objectKey string) (string, error) {
	client, err := p.presignClient(ctx, creds)
	if err != nil {
		return "", err
	}

	req, err := client.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(creds.Bucket),
		Key:    aws.String(objectKey),
	}, s3.WithPresignExpires(p.expiry))
	if err != nil {
		return "", fmt.Errorf("failed to presign GET for %q: %w", objectKey, err)
	}

	return req.URL, nil
}
