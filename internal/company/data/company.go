package data

import (
	"context"
	"errors"
	"time"

	"github.com/shbkp/shbkp-backend/internal/company/biz"
	"github.com/shbkp/shbkp-backend/internal/pkg/database"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CompanyPO represents the database model
type CompanyPO struct {
	ID              string    `gorm:"type:uuid;primarykey"`
	CompanyName     string    `gorm:"size:144;not null;uniqueIndex:idx_companies_name"`
	CompanyAPIKey   string    `gorm:"size:255;not null;uniqueIndex:idx_companies_api_key"`
	StartDate       time.Time `gorm:"type:date"`
	EndDate         time.Time `gorm:"type:date"`
	TotalUsageQuota int64     `gorm:"not null;default:0"`
	UsedQuota       int64     `gorm:"not null;default:0"`
	AWSBucketName   string    `gorm:"size:64"`
	AWSBucketRegion string    `gorm:"size:50"`
	AWSAccessKey    string    `gorm:"size:128"`
	AWSSecretKey    string    `gorm:"size:128"`
	CreatedAt       time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (CompanyPO) TableName() string {
	return "companies"
}

// CompanyRepo implements biz.CompanyRepo
type CompanyRepo struct {
	db *database.DB
}

func NewCompanyRepo(db *database.DB) biz.CompanyRepo {
	return &CompanyRepo{db: db}
}

func (r *CompanyRepo) Create(ctx context.Context, company *biz.Company) error {
	po := toCompanyPO(company)

	if err := r.db.WithContext(ctx).Create(po).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return biz.ErrCompanyNameExists
		}
		return err
	}

	return nil
}

func (r *CompanyRepo) GetByAPIKey(ctx context.Context, apiKey string) (*biz.Company, error) {
	var po CompanyPO
	err := r.db.WithContext(ctx).
		Where("company_api_key = ?", apiKey).
		First(&po).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, biz.ErrCompanyNotFound
		}
		return nil, err
	}

	return toCompany(&po), nil
}

func (r *CompanyRepo) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&CompanyPO{}).
		Where("company_name = ?", name).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ApplyQuotaDelta performs the read-modify-write under SELECT ... FOR UPDATE
// so two concurrent updates against the same company serialize instead of
// losing one another's effect.
func (r *CompanyRepo) ApplyQuotaDelta(ctx context.Context, apiKey string, delta int64) (*biz.Company, error) {
	var po CompanyPO

	err := r.db.ReadCommitted(ctx, func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("company_api_key = ?", apiKey).
			First(&po).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return biz.ErrCompanyNotFound
			}
			return err
		}

		next := po.UsedQuota + delta
		if next < 0 {
			return biz.ErrQuotaBelowZero
		}
		if next > po.TotalUsageQuota {
			return biz.ErrQuotaExceeded
		}

		po.UsedQuota = next
		return tx.Model(&CompanyPO{}).
			Where("id = ?", po.ID).
			Update("used_quota", next).Error
	})
	if err != nil {
		return nil, err
	}

	return toCompany(&po), nil
}

func toCompanyPO(c *biz.Company) *CompanyPO {
	return &CompanyPO{
		ID:              c.ID,
		CompanyName:     c.CompanyName,
		CompanyAPIKey:   c.CompanyAPIKey,
		StartDate:       c.StartDate,
		EndDate:         c.EndDate,
		TotalUsageQuota: c.TotalUsageQuota,
		UsedQuota:       c.UsedQuota,
		AWSBucketName:   c.AWSBucketName,
		AWSBucketRegion: c.AWSBucketRegion,
		AWSAccessKey:    c.AWSAccessKey,
		AWSSecretKey:    c.AWSSecretKey,
		CreatedAt:       c.CreatedAt,
	}
}

func toCompany(po *CompanyPO) *biz.Company {
	return &biz.Company{
		ID:              po.ID,
		CompanyName:     po.CompanyName,
		CompanyAPIKey:   po.CompanyAPIKey,
		StartDate:       po.StartDate,
		EndDate:         po.EndDate,
		TotalUsageQuota: po.TotalUsageQuota,
		UsedQuota:       po.UsedQuota,
		AWSBucketName:   po.AWSBucketName,
		AWSBucketRegion: po.AWSBucketRegion,
		AWSAccessKey:    po.AWSAccessKey,
		AWSSecretKey:    po.AWSSecretKey,
		CreatedAt:       po.CreatedAt,
	}
}
