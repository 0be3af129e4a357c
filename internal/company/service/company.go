package service

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/shbkp/shbkp-backend/internal/company/biz"
	apperrors "github.com/shbkp/shbkp-backend/internal/pkg/errors"
	"github.com/shbkp/shbkp-backend/internal/pkg/logger"
	"github.com/shbkp/shbkp-backend/internal/pkg/response"
	"go.uber.org/zap"
)

// APIKeyHeader identifies the company on all authenticated operations.
const APIKeyHeader = "company-api-key"

// CompanyService exposes the company registry over HTTP
type CompanyService struct {
	uc     *biz.CompanyUseCase
	logger *logger.Logger
}

func NewCompanyService(uc *biz.CompanyUseCase, logger *logger.Logger) *CompanyService {
	return &CompanyService{
		uc:     uc,
		logger: logger,
	}
}

// RegisterCompany handles POST /register/company
func (s *CompanyService) RegisterCompany(c *gin.Context) {
	var req RegisterCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.UnprocessableEntity(c, err.Error())
		return
	}

	totalQuota := int64(DefaultTotalQuota)
	if req.TotalUsageQuota != nil {
		totalQuota = *req.TotalUsageQuota
	}

	company, err := s.uc.Register(c.Request.Context(), &biz.RegisterParams{
		CompanyName:     req.CompanyName,
		TotalUsageQuota: totalQuota,
		UsedQuota:       req.UsedQuota,
		AWSBucketName:   req.AWSBucketName,
		AWSBucketRegion: req.AWSBucketRegion,
		AWSAccessKey:    req.AWSAccessKey,
		AWSSecretKey:    req.AWSSecretKey,
	})
	if err != nil {
		s.handleError(c, err)
		return
	}

	s.logger.Info("company registered",
		zap.String("company_id", company.ID),
		zap.String("company_name", company.CompanyName),
	)

	response.Created(c, toCompanyResponse(company))
}

// FindByAPIKey handles GET /companies/by-api-key
func (s *CompanyService) FindByAPIKey(c *gin.Context) {
	apiKey := c.GetHeader(APIKeyHeader)
	if apiKey == "" {
		response.ErrorWithCode(c, apperrors.ErrAPIKeyRequired)
		return
	}

	company, err := s.uc.FindByAPIKey(c.Request.Context(), apiKey)
	if err != nil {
		s.handleError(c, err)
		return
	}

	response.Success(c, toCompanyResponse(company))
}

// QuotaAvailability handles GET /companies/quota/is-available
func (s *CompanyService) QuotaAvailability(c *gin.Context) {
	apiKey := c.GetHeader(APIKeyHeader)
	if apiKey == "" {
		response.ErrorWithCode(c, apperrors.ErrAPIKeyRequired)
		return
	}

	company, err := s.uc.FindByAPIKey(c.Request.Context(), apiKey)
	if err != nil {
		s.handleError(c, err)
		return
	}

	response.Success(c, &QuotaAvailabilityResponse{
		IsAvailable:     company.UsedQuota < company.TotalUsageQuota,
		UsedQuota:       company.UsedQuota,
		TotalUsageQuota: company.TotalUsageQuota,
	})
}

// UpdateQuota handles PATCH /companies/quota
func (s *CompanyService) UpdateQuota(c *gin.Context) {
	apiKey := c.GetHeader(APIKeyHeader)
	if apiKey == "" {
		response.ErrorWithCode(c, apperrors.ErrAPIKeyRequired)
		return
	}

	var req QuotaUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.UnprocessableEntity(c, err.Error())
		return
	}

	txnType := req.FileTxnType
	if txnType == 0 {
		txnType = biz.TxnTypeUpload
	}

	company, err := s.uc.UpdateQuota(c.Request.Context(), apiKey, *req.UsedQuota, txnType)
	if err != nil {
		s.handleError(c, err)
		return
	}

	s.logger.Info("company quota updated",
		zap.String("company_id", company.ID),
		zap.Int64("used_quota", company.UsedQuota),
		zap.Int("file_txn_type", txnType),
	)

	response.Success(c, toCompanyResponse(company))
}

func (s *CompanyService) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, biz.ErrCompanyNotFound):
		response.ErrorWithCode(c, apperrors.ErrCompanyNotFound)
	case errors.Is(err, biz.ErrCompanyNameExists):
		response.ErrorWithCode(c, apperrors.ErrCompanyNameExists)
	case errors.Is(err, biz.ErrQuotaExceeded):
		response.ErrorWithCode(c, apperrors.ErrQuotaExceeded)
	case errors.Is(err, biz.ErrQuotaBelowZero):
		response.ErrorWithCode(c, apperrors.ErrQuotaBelowZero)
	case errors.Is(err, biz.ErrInvalidTxnType):
		response.ErrorWithCode(c, apperrors.ErrInvalidTxnType)
	case errors.Is(err, biz.ErrCompanyNameRequired),
		errors.Is(err, biz.ErrQuotaNegative),
		errors.Is(err, biz.ErrQuotaExceedsTotal):
		response.ErrorWithCode(c, apperrors.ErrValidation, err.Error())
	default:
		s.logger.Error("company operation failed", zap.Error(err))
		response.ErrorWithCode(c, apperrors.ErrInternalServer)
	}
}

// RegisterRoutes mounts the company endpoints on the root router
func (s *CompanyService) RegisterRoutes(r *gin.RouterGroup, registerMiddleware ...gin.HandlerFunc) {
	register := append([]gin.HandlerFunc{}, registerMiddleware...)
	register = append(register, s.RegisterCompany)
	r.POST("/register/company", register...)

	companies := r.Group("/companies")
	{
		companies.GET("/by-api-key", s.FindByAPIKey)
		companies.PATCH("/quota", s.UpdateQuota)
		companies.GET("/quota/is-available", s.QuotaAvailability)
	}
}
