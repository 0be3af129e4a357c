package service

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	companybiz "github.com/shbkp/shbkp-backend/internal/company/biz"
	companyservice "github.com/shbkp/shbkp-backend/internal/company/service"
	"github.com/shbkp/shbkp-backend/internal/filemeta/biz"
	apperrors "github.com/shbkp/shbkp-backend/internal/pkg/errors"
	"github.com/shbkp/shbkp-backend/internal/pkg/logger"
	"github.com/shbkp/shbkp-backend/internal/pkg/response"
	"go.uber.org/zap"
)

// FileMetaService exposes the file metadata store over HTTP
type FileMetaService struct {
	uc     *biz.FileMetaUseCase
	logger *logger.Logger
}

func NewFileMetaService(uc *biz.FileMetaUseCase, logger *logger.Logger) *FileMetaService {
	return &FileMetaService{
		uc:     uc,
		logger: logger,
	}
}

// InsertFileMeta handles POST /filemeta
func (s *FileMetaService) InsertFileMeta(c *gin.Context) {
	apiKey := c.GetHeader(companyservice.APIKeyHeader)
	if apiKey == "" {
		response.ErrorWithCode(c, apperrors.ErrAPIKeyRequired)
		return
	}

	var req InsertFileMetaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.UnprocessableEntity(c, err.Error())
		return
	}

	meta, err := s.uc.Insert(c.Request.Context(), apiKey, &biz.InsertParams{
		FileName:    req.FileName,
		FileSize:    *req.FileSize,
		FileKey:     req.FileKey,
		FileTxnType: req.FileTxnType,
		FileTxnMeta: req.FileTxnMeta,
	})
	if err != nil {
		s.handleError(c, err)
		return
	}

	s.logger.Info("file metadata recorded",
		zap.String("file_id", meta.ID),
		zap.String("company_id", meta.CompanyID),
		zap.Int64("file_size", meta.FileSize),
		zap.Int("file_txn_type", meta.FileTxnType),
	)

	response.Created(c, toFileMetaResponse(meta))
}

// ListFileMeta handles GET /filemeta
func (s *FileMetaService) ListFileMeta(c *gin.Context) {
	apiKey := c.GetHeader(companyservice.APIKeyHeader)
	if apiKey == "" {
		response.ErrorWithCode(c, apperrors.ErrAPIKeyRequired)
		return
	}

	var req ListFileMetaRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.UnprocessableEntity(c, err.Error())
		return
	}

	metas, err := s.uc.List(c.Request.Context(), apiKey, req.Page, req.PageSize)
	if err != nil {
		s.handleError(c, err)
		return
	}

	responses := make([]*FileMetaResponse, len(metas))
	for i, m := range metas {
		responses[i] = toFileMetaResponse(m)
	}

	response.Success(c, gin.H{"files": responses})
}

// PresignUpload handles POST /filemeta/presigned-url
func (s *FileMetaService) PresignUpload(c *gin.Context) {
	apiKey := c.GetHeader(companyservice.APIKeyHeader)
	if apiKey == "" {
		response.ErrorWithCode(c, apperrors.ErrAPIKeyRequired)
		return
	}

	var req PresignUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.UnprocessableEntity(c, err.Error())
		return
	}

	upload, err := s.uc.PresignUpload(c.Request.Context(), apiKey, req.FileName, req.ContentType)
	if err != nil {
		s.handleError(c, err)
		return
	}

	response.Success(c, &PresignUploadResponse{
		UploadURL: upload.URL,
		ObjectKey: upload.ObjectKey,
		ExpiresAt: upload.ExpiresAt.Format(time.RFC3339),
	})
}

// PresignDownload handles GET /filemeta/download-url
func (s *FileMetaService) PresignDownload(c *gin.Context) {
	apiKey := c.GetHeader(companyservice.APIKeyHeader)
	if apiKey == "" {
		response.ErrorWithCode(c, apperrors.ErrAPIKeyRequired)
		return
	}

	var req PresignDownloadRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.UnprocessableEntity(c, err.Error())
		return
	}

	download, err := s.uc.PresignDownload(c.Request.Context(), apiKey, req.ObjectKey)
	if err != nil {
		s.handleError(c, err)
		return
	}

	response.Success(c, &PresignDownloadResponse{
		DownloadURL: download.URL,
		ObjectKey:   download.ObjectKey,
		ExpiresAt:   download.ExpiresAt.Format(time.RFC3339),
	})
}

func (s *FileMetaService) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, companybiz.ErrCompanyNotFound):
		response.ErrorWithCode(c, apperrors.ErrCompanyNotFound)
	case errors.Is(err, companybiz.ErrInvalidTxnType):
		response.ErrorWithCode(c, apperrors.ErrInvalidTxnType)
	case errors.Is(err, biz.ErrFileKeyRequired),
		errors.Is(err, biz.ErrFileNameRequired),
		errors.Is(err, biz.ErrObjectKeyRequired),
		errors.Is(err, biz.ErrFileSizeNegative):
		response.ErrorWithCode(c, apperrors.ErrFileMetaInvalid, err.Error())
	case errors.Is(err, biz.ErrNoBucketConfigured):
		response.ErrorWithCode(c, apperrors.ErrPresignFailed, err.Error())
	default:
		s.logger.Error("file metadata operation failed", zap.Error(err))
		response.ErrorWithCode(c, apperrors.ErrInternalServer)
	}
}

// RegisterRoutes mounts the file metadata endpoints on the root router
func (s *FileMetaService) RegisterRoutes(r *gin.RouterGroup) {
	files := r.Group("/filemeta")
	{
		files.POST("", s.InsertFileMeta)
		files.GET("", s.ListFileMeta)
		files.POST("/presigned-url", s.PresignUpload)
		files.GET("/download-url", s.PresignDownload)
	}
}
