package service

import (
	"time"

	"github.com/shbkp/shbkp-backend/internal/company/biz"
)

// DefaultTotalQuota is granted when registration omits a quota budget (250 MiB).
const DefaultTotalQuota = 250 * 1024 * 1024

type RegisterCompanyRequest struct {
	CompanyName     string `json:"company_name" binding:"required"`
	TotalUsageQuota *int64 `json:"total_usage_quota" binding:"omitempty,gte=0"`
	UsedQuota       int64  `json:"used_quota" binding:"gte=0"`
	AWSBucketName   string `json:"aws_bucket_name" binding:"required"`
	AWSBucketRegion string `json:"aws_bucket_region" binding:"required"`
	AWSAccessKey    string `json:"aws_access_key" binding:"required"`
	AWSSecretKey    string `json:"aws_secret_key" binding:"required"`
}

type QuotaUpdateRequest struct {
	UsedQuota   *int64 `json:"used_quota" binding:"required,gte=0"`
	FileTxnType int    `json:"file_txn_type" binding:"omitempty"`
}

type QuotaAvailabilityResponse struct {
	IsAvailable     bool  `json:"is_available"`
	UsedQuota       int64 `json:"used_quota"`
	TotalUsageQuota int64 `json:"total_usage_quota"`
}

type CompanyResponse struct {
	ID              string `json:"id"`
	CompanyName     string `json:"company_name"`
	CompanyAPIKey   string `json:"company_api_key"`
	StartDate       string `json:"start_date"`
	EndDate         string `json:"end_date"`
	TotalUsageQuota int64  `json:"total_usage_quota"`
	UsedQuota       int64  `json:"used_quota"`
	AWSBucketName   string `json:"aws_bucket_name"`
	AWSBucketRegion string `json:"aws_bucket_region"`
	AWSAccessKey    string `json:"aws_access_key"`
	AWSSecretKey    string `json:"aws_secret_key"`
	CreatedAt       string `json:"created_at"`
}

func toCompanyResponse(c *biz.Company) *CompanyResponse {
	return &CompanyResponse{
		ID:              c.ID,
		CompanyName:     c.CompanyName,
		CompanyAPIKey:   c.CompanyAPIKey,
		StartDate:       c.StartDate.Format("2006-01-02"),
		EndDate:         c.EndDate.Format("2006-01-02"),
		TotalUsageQuota: c.TotalUsageQuota,
		UsedQuota:       c.UsedQuota,
		AWSBucketName:   c.AWSBucketName,
		AWSBucketRegion: c.AWSBucketRegion,
		AWSAccessKey:    c.AWSAccessKey,
		AWSSecretKey:    c.AWSSecretKey,
		CreatedAt:       c.CreatedAt.Format(time.RFC3339),
	}
}
