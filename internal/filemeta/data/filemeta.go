package data

import (
	"context"
	"time"

	companydata "github.com/shbkp/shbkp-backend/internal/company/data"
	"github.com/shbkp/shbkp-backend/internal/filemeta/biz"
	"github.com/shbkp/shbkp-backend/internal/pkg/database"
)

// FileMetaPO represents the database model
type FileMetaPO struct {
	ID          string    `gorm:"type:uuid;primarykey"`
	CompanyID   string    `gorm:"type:uuid;not null;index:idx_files_meta_company_id"`
	FileName    string    `gorm:"size:255"`
	FileSize    int64     `gorm:"not null;default:0"`
	FileKey     string    `gorm:"size:255;not null"`
	FileTxnType int16     `gorm:"not null;default:1"`
	FileTxnMeta string    `gorm:"size:255"`
	CreatedAt   time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`

	Company companydata.CompanyPO `gorm:"foreignKey:CompanyID;references:ID"`
}

func (FileMetaPO) TableName() string {
	return "files_meta"
}

// FileMetaRepo implements biz.FileMetaRepo
type FileMetaRepo struct {
	db *database.DB
}

func NewFileMetaRepo(db *database.DB) biz.FileMetaRepo {
	return &FileMetaRepo{db: db}
}

func (r *FileMetaRepo) Create(ctx context.Context, meta *biz.FileMeta) error {
	po := &FileMetaPO{
		ID:          meta.ID,
		CompanyID:   meta.CompanyID,
		FileName:    meta.FileName,
		FileSize:    meta.FileSize,
		FileKey:     meta.FileKey,
		FileTxnType: int16(meta.FileTxnType),
		FileTxnMeta: meta.FileTxnMeta,
		CreatedAt:   meta.CreatedAt,
	}

	return r.db.WithContext(ctx).Create(po).Error
}

func (r *FileMetaRepo) ListByCompany(ctx context.Context, companyID string, offset, limit int) ([]*biz.FileMeta, error) {
	var pos []FileMetaPO
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&pos).Error
	if err != nil {
		return nil, err
	}

	metas := make([]*biz.FileMeta, len(pos))
	for i, po := range pos {
		metas[i] = toFileMeta(&po)
	}

	return metas, nil
}

func toFileMeta(po *FileMetaPO) *biz.FileMeta {
	return &biz.FileMeta{
		ID:          po.ID,
		CompanyID:   po.CompanyID,
		FileName:    po.FileName,
		FileSize:    po.FileSize,
		FileKey:     po.FileKey,
		FileTxnType: int(po.FileTxnType),
		FileTxnMeta: po.FileTxnMeta,
		CreatedAt:   po.CreatedAt,
	}
}
