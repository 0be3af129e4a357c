package data

import (
	"context"
	"errors"
	"time"

	"github.com/shbkp/shbkp-backend/internal/admin/biz"
	"github.com/shbkp/shbkp-backend/internal/pkg/database"
	"gorm.io/gorm"
)

// AdminClientPO represents the database model
type AdminClientPO struct {
	ID           string    `gorm:"type:uuid;primarykey"`
	ClientID     string    `gorm:"size:128;not null;uniqueIndex:idx_admin_clients_client_id"`
	HashedSecret string    `gorm:"size:255;not null"`
	CreatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (AdminClientPO) TableName() string {
	return "admin_clients"
}

// AdminClientRepo implements biz.AdminClientRepo
type AdminClientRepo struct {
	db *database.DB
}

func NewAdminClientRepo(db *database.DB) biz.AdminClientRepo {
	return &AdminClientRepo{db: db}
}

func (r *AdminClientRepo) Create(ctx context.Context, client *biz.AdminClient) error {
	po := &AdminClientPO{
		ID:           client.ID,
		ClientID:     client.ClientID,
		HashedSecret: client.HashedSecret,
		CreatedAt:    client.CreatedAt,
	}

	if err := r.db.WithContext(ctx).Create(po).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return biz.ErrClientExists
		}
		return err
	}

	return nil
}

func (r *AdminClientRepo) GetByClientID(ctx context.Context, clientID string) (*biz.AdminClient, error) {
	var po AdminClientPO
	err := r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		First(&po).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, biz.ErrClientNotFound
		}
		return nil, err
	}

	return &biz.AdminClient{
		ID:           po.ID,
		ClientID:     po.ClientID,
		HashedSecret: po.HashedSecret,
		CreatedAt:    po.CreatedAt,
	}, nil
}
