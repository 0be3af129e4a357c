package s3

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCreds() BucketCredentials {
	return BucketCredentials{
		Bucket:    "acme-backups",
		Region:    "eu-west-1",
		AccessKey: "AKIAEXAMPLE",
		SecretKey: "secret",
	}
}

func TestNewPresigner_DefaultExpiry(t *testing.T) {
	assert.Equal(t, 15*time.Minute, NewPresigner(0).Expiry())
	assert.Equal(t, time.Hour, NewPresigner(time.Hour).Expiry())
}

func TestPresignPut(t *testing.T) {
	p := NewPresigner(10 * time.Minute)

	url, err := p.PresignPut(context.Background(), testCreds(), "acme/2026/report.pdf", "application/pdf")
	require.NoError(t, err)

	assert.Contains(t, url, "acme-backups")
	assert.Contains(t, url, "acme/2026/report.pdf")
	assert.Contains(t, url, "X-Amz-Signature=")
	assert.Contains(t, url, "X-Amz-Expires=600")
	assert.True(t, strings.Contains(url, "AKIAEXAMPLE"), "credential must be embedded in the signed URL")
}

func TestPresignGet(t *testing.T) {
	p := NewPresigner(10 * time.Minute)

	url, err := p.PresignGet(context.Background(), testCreds(), "acme/2026/report.pdf")
	require.NoError(t, err)

	assert.Contains(t, url, "acme-backups")
	assert.Contains(t, url, "acme/2026/report.pdf")
	assert.Contains(t, url, "X-Amz-Signature=")
}
