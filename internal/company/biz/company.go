package biz

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// File transaction types, shared with the file metadata store.
const (
	TxnTypeUpload = 1 // consumes quota
	TxnTypeDelete = 2 // releases quota
)

// Company represents the domain model
type Company struct {
	ID              string
	CompanyName     string
	CompanyAPIKey   string
	StartDate       time.Time
	EndDate         time.Time
	TotalUsageQuota int64
	UsedQuota       int64
	AWSBucketName   string
	AWSBucketRegion string
	AWSAccessKey    string
	AWSSecretKey    string
	CreatedAt       time.Time
}

// CompanyRepo defines the interface for company data operations
type CompanyRepo interface {
	Create(ctx context.Context, company *Company) error
	GetByAPIKey(ctx context.Context, apiKey string) (*Company, error)
	ExistsByName(ctx context.Context, name string) (bool, error)

	// ApplyQuotaDelta atomically adds delta to used_quota of the company
	// identified by apiKey and returns the updated record. The read,
	// bounds check and write must happen under a single row lock so
	// concurrent updates never lose each other's effect. Returns
	// ErrCompanyNotFound, ErrQuotaExceeded or ErrQuotaBelowZero.
	ApplyQuotaDelta(ctx context.Context, apiKey string, delta int64) (*Company, error)
}

// RegisterParams carries the caller-supplied registration fields
type RegisterParams struct {
	CompanyName     string
	TotalUsageQuota int64
	UsedQuota       int64
	AWSBucketName   string
	AWSBucketRegion string
	AWSAccessKey    string
	AWSSecretKey    string
}

// CompanyUseCase contains business logic for the company registry
type CompanyUseCase struct {
	repo         CompanyRepo
	validityDays int
}

func NewCompanyUseCase(repo CompanyRepo, validityDays int) *CompanyUseCase {
	if validityDays <= 0 {
		validityDays = 365
	}
	return &CompanyUseCase{
		repo:         repo,
		validityDays: validityDays,
	}
}

// Register creates a new company with a generated id, API key and
// active window. The API key is returned exactly once, here.
func (uc *CompanyUseCase) Register(ctx context.Context, params *RegisterParams) (*Company, error) {
	if params.CompanyName == "" {
		return nil, ErrCompanyNameRequired
	}
	if params.TotalUsageQuota < 0 || params.UsedQuota < 0 {
		return nil, ErrQuotaNegative
	}
	if params.UsedQuota > params.TotalUsageQuota {
		return nil, ErrQuotaExceedsTotal
	}

	exists, err := uc.repo.ExistsByName(ctx, params.CompanyName)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrCompanyNameExists
	}

	apiKey, err := GenerateAPIKey()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	start := now.Truncate(24 * time.Hour)

	company := &Company{
		ID:              uuid.NewString(),
		CompanyName:     params.CompanyName,
		CompanyAPIKey:   apiKey,
		StartDate:       start,
		EndDate:         start.AddDate(0, 0, uc.validityDays),
		TotalUsageQuota: params.TotalUsageQuota,
		UsedQuota:       params.UsedQuota,
		AWSBucketName:   params.AWSBucketName,
		AWSBucketRegion: params.AWSBucketRegion,
		AWSAccessKey:    params.AWSAccessKey,
		AWSSecretKey:    params.AWSSecretKey,
		CreatedAt:       now,
	}

	if err := uc.repo.Create(ctx, company); err != nil {
		return nil, err
	}

	return company, nil
}

// FindByAPIKey resolves the unique company holding the presented key.
// Side-effect free.
func (uc *CompanyUseCase) FindByAPIKey(ctx context.Context, apiKey string) (*Company, error) {
	return uc.repo.GetByAPIKey(ctx, apiKey)
}

// UpdateQuota applies a quota transaction to the company identified by
// apiKey. An upload consumes amount, a delete releases it. The resulting
// used quota must stay within [0, total_usage_quota].
func (uc *CompanyUseCase) UpdateQuota(ctx context.Context, apiKey string, amount int64, txnType int) (*Company, error) {
	if amount < 0 {
		return nil, ErrQuotaNegative
	}

	var delta int64
	switch txnType {
	case TxnTypeUpload:
		delta = amount
	case TxnTypeDelete:
		delta = -amount
	default:
		return nil, ErrInvalidTxnType
	}

	return uc.repo.ApplyQuotaDelta(ctx, apiKey, delta)
}
