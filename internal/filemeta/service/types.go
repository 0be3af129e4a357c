package service

import (
	"time"

	"github.com/shbkp/shbkp-backend/internal/filemeta/biz"
)

type InsertFileMetaRequest struct {
	FileName    string `json:"file_name"`
	FileSize    *int64 `json:"file_size" binding:"required,gte=0"`
	FileKey     string `json:"file_key" binding:"required"`
	FileTxnType int    `json:"file_txn_type" binding:"omitempty"`
	FileTxnMeta string `json:"file_txn_meta"`
}

type ListFileMetaRequest struct {
	Page     int `form:"page"`
	PageSize int `form:"page_size"`
}

type PresignUploadRequest struct {
	FileName    string `json:"file_name" binding:"required"`
	ContentType string `json:"content_type" binding:"required"`
}

type PresignDownloadRequest struct {
	ObjectKey string `form:"object_key" binding:"required"`
}

type FileMetaResponse struct {
	ID          string `json:"id"`
	CompanyID   string `json:"company_id"`
	FileName    string `json:"file_name"`
	FileSize    int64  `json:"file_size"`
	FileKey     string `json:"file_key"`
	FileTxnType int    `json:"file_txn_type"`
	FileTxnMeta string `json:"file_txn_meta"`
	CreatedAt   string `json:"created_at"`
}

type PresignUploadResponse struct {
	UploadURL string `json:"upload_url"`
	ObjectKey string `json:"object_key"`
	ExpiresAt string `json:"expires_at"`
}

type PresignDownloadResponse struct {
	DownloadURL string `json:"download_url"`
	ObjectKey   string `json:"object_key"`
	ExpiresAt   string `json:"expires_at"`
}

func toFileMetaResponse(m *biz.FileMeta) *FileMetaResponse {
	return &FileMetaResponse{
		ID:          m.ID,
		CompanyID:   m.CompanyID,
		FileName:    m.FileName,
		FileSize:    m.FileSize,
		FileKey:     m.FileKey,
		FileTxnType: m.FileTxnType,
		FileTxnMeta: m.FileTxnMeta,
		CreatedAt:   m.CreatedAt.Format(time.RFC3339),
	}
}
