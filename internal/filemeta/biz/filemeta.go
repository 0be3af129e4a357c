package biz

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	companybiz "github.com/shbkp/shbkp-backend/internal/company/biz"
	"github.com/shbkp/shbkp-backend/internal/pkg/s3"
)

// FileMeta describes one file transaction against a company's bucket.
// Records are written once and never updated or deleted.
type FileMeta struct {
	ID          string
	CompanyID   string
	FileName    string
	FileSize    int64
	FileKey     string
	FileTxnType int
	FileTxnMeta string
	CreatedAt   time.Time
}

// FileMetaRepo defines the interface for file metadata persistence
type FileMetaRepo interface {
	Create(ctx context.Context, meta *FileMeta) error
	ListByCompany(ctx context.Context, companyID string, offset, limit int) ([]*FileMeta, error)
}

// Presigner issues presigned URLs against a company's own bucket
type Presigner interface {
	PresignPut(ctx context.Context, creds s3.BucketCredentials, objectKey, contentType string) (string, error)
	PresignGet(ctx context.Context, creds s3.BucketCredentials, objectKey string) (string, error)
	Expiry() time.Duration
}

// InsertParams carries the caller-supplied metadata fields
type InsertParams struct {
	FileName    string
	FileSize    int64
	FileKey     string
	FileTxnType int
	FileTxnMeta string
}

// PresignedURL is the result of a presign request
type PresignedURL struct {
	URL       string
	ObjectKey string
	ExpiresAt time.Time
}

// FileMetaUseCase contains business logic for the file metadata store
type FileMetaUseCase struct {
	repo      FileMetaRepo
	companies companybiz.CompanyRepo
	presigner Presigner
}

func NewFileMetaUseCase(repo FileMetaRepo, companies companybiz.CompanyRepo, presigner Presigner) *FileMetaUseCase {
	return &FileMetaUseCase{
		repo:      repo,
		companies: companies,
		presigner: presigner,
	}
}

// Insert records one file transaction for the company holding apiKey.
// Quota accounting is a separate call by contract; this never touches
// used_quota.
func (uc *FileMetaUseCase) Insert(ctx context.Context, apiKey string, params *InsertParams) (*FileMeta, error) {
	if params.FileKey == "" {
		return nil, ErrFileKeyRequired
	}
	if params.FileSize < 0 {
		return nil, ErrFileSizeNegative
	}

	txnType := params.FileTxnType
	if txnType == 0 {
		txnType = companybiz.TxnTypeUpload
	}
	if txnType != companybiz.TxnTypeUpload && txnType != companybiz.TxnTypeDelete {
		return nil, companybiz.ErrInvalidTxnType
	}

	company, err := uc.companies.GetByAPIKey(ctx, apiKey)
	if err != nil {
		return nil, err
	}

	meta := &FileMeta{
		ID:          uuid.NewString(),
		CompanyID:   company.ID,
		FileName:    params.FileName,
		FileSize:    params.FileSize,
		FileKey:     params.FileKey,
		FileTxnType: txnType,
		FileTxnMeta: params.FileTxnMeta,
		CreatedAt:   time.Now().UTC(),
	}

	if err := uc.repo.Create(ctx, meta); err != nil {
		return nil, err
	}

	return meta, nil
}

// List returns the company's file records, newest first.
func (uc *FileMetaUseCase) List(ctx context.Context, apiKey string, page, pageSize int) ([]*FileMeta, error) {
	company, err := uc.companies.GetByAPIKey(ctx, apiKey)
	if err != nil {
		return nil, err
	}

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	return uc.repo.ListByCompany(ctx, company.ID, (page-1)*pageSize, pageSize)
}

// PresignUpload builds a presigned PUT URL into the company's bucket
// using the credentials stored on its registry record.
func (uc *FileMetaUseCase) PresignUpload(ctx context.Context, apiKey, fileName, contentType string) (*PresignedURL, error) {
	if fileName == "" {
		return nil, ErrFileNameRequired
	}

	company, err := uc.companies.GetByAPIKey(ctx, apiKey)
	if err != nil {
		return nil, err
	}
	if company.AWSBucketName == "" || company.AWSAccessKey == "" {
		return nil, ErrNoBucketConfigured
	}

	objectKey := buildObjectKey(company.ID, fileName)

	url, err := uc.presigner.PresignPut(ctx, bucketCredentials(company), objectKey, contentType)
	if err != nil {
		return nil, err
	}

	return &PresignedURL{
		URL:       url,
		ObjectKey: objectKey,
		ExpiresAt: time.Now().UTC().Add(uc.presigner.Expiry()),
	}, nil
}

// PresignDownload builds a presigned GET URL for an object already stored
// in the company's bucket.
func (uc *FileMetaUseCase) PresignDownload(ctx context.Context, apiKey, objectKey string) (*PresignedURL, error) {
	if objectKey == "" {
		return nil, ErrObjectKeyRequired
	}

	company, err := uc.companies.GetByAPIKey(ctx, apiKey)
	if err != nil {
		return nil, err
	}
	if company.AWSBucketName == "" || company.AWSAccessKey == "" {
		return nil, ErrNoBucketConfigured
	}

	url, err := uc.presigner.PresignGet(ctx, bucketCredentials(company), objectKey)
	if err != nil {
		return nil, err
	}

	return &PresignedURL{
		URL:       url,
		ObjectKey: objectKey,
		ExpiresAt: time.Now().UTC().Add(uc.presigner.Expiry()),
	}, nil
}

func bucketCredentials(company *companybiz.Company) s3.BucketCredentials {
	return s3.BucketCredentials{
		Bucket:    company.AWSBucketName,
		Region:    company.AWSBucketRegion,
		AccessKey: company.AWSAccessKey,
		SecretKey: company.AWSSecretKey,
	}
}

// buildObjectKey namespaces uploads per company and day so bucket
// listings stay navigable.
func buildObjectKey(companyID, fileName string) string {
	d := time.Now().UTC()
	return fmt.Sprintf("%s/%d/%02d/%02d/%s_%s", companyID, d.Year(), d.Month(), d.Day(), uuid.NewString(), fileName)
}
