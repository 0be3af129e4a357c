package service

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shbkp/shbkp-backend/internal/admin/biz"
	apperrors "github.com/shbkp/shbkp-backend/internal/pkg/errors"
	"github.com/shbkp/shbkp-backend/internal/pkg/logger"
	"github.com/shbkp/shbkp-backend/internal/pkg/response"
	"go.uber.org/zap"
)

// AdminService exposes admin client management over HTTP
type AdminService struct {
	uc     *biz.AdminUseCase
	logger *logger.Logger
}

func NewAdminService(uc *biz.AdminUseCase, logger *logger.Logger) *AdminService {
	return &AdminService{
		uc:     uc,
		logger: logger,
	}
}

type ClientRequest struct {
	ClientID     string `json:"client_id" binding:"required"`
	ClientSecret string `json:"client_secret" binding:"required"`
}

type ClientResponse struct {
	ClientID string `json:"client_id"`
	Message  string `json:"message,omitempty"`
}

type TokenRequest struct {
	ClientID     string `form:"client_id" binding:"required"`
	ClientSecret string `form:"client_secret" binding:"required"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// RegisterClient handles POST /api/admin/auth/client/new
func (s *AdminService) RegisterClient(c *gin.Context) {
	var req ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.UnprocessableEntity(c, err.Error())
		return
	}

	client, err := s.uc.RegisterClient(c.Request.Context(), req.ClientID, req.ClientSecret)
	if err != nil {
		s.handleError(c, err)
		return
	}

	s.logger.Info("admin client registered", zap.String("client_id", client.ClientID))

	response.Created(c, &ClientResponse{ClientID: client.ClientID})
}

// ValidateClient handles POST /api/admin/auth/client/validate
func (s *AdminService) ValidateClient(c *gin.Context) {
	var req ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.UnprocessableEntity(c, err.Error())
		return
	}

	client, err := s.uc.ValidateClient(c.Request.Context(), req.ClientID, req.ClientSecret)
	if err != nil {
		s.handleError(c, err)
		return
	}

	response.Success(c, &ClientResponse{ClientID: client.ClientID})
}

// Token handles POST /api/admin/auth/token
func (s *AdminService) Token(c *gin.Context) {
	var req TokenRequest
	if err := c.ShouldBind(&req); err != nil {
		response.UnprocessableEntity(c, err.Error())
		return
	}

	token, err := s.uc.IssueToken(c.Request.Context(), req.ClientID, req.ClientSecret)
	if err != nil {
		s.handleError(c, err)
		return
	}

	response.Success(c, &TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}

// ValidateToken handles GET /api/admin/auth/token/validate
func (s *AdminService) ValidateToken(c *gin.Context) {
	token := bearerToken(c)
	if token == "" {
		response.ErrorWithCode(c, apperrors.ErrTokenInvalid)
		return
	}

	clientID, err := s.uc.VerifyToken(c.Request.Context(), token)
	if err != nil {
		s.handleError(c, err)
		return
	}

	response.Success(c, &ClientResponse{
		ClientID: clientID,
		Message:  "Token is valid",
	})
}

func bearerToken(c *gin.Context) string {
	auth := c.GetHeader("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(auth, prefix) {
		return ""
	}
	return strings.TrimPrefix(auth, prefix)
}

func (s *AdminService) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, biz.ErrClientExists):
		response.ErrorWithCode(c, apperrors.ErrClientExists)
	case errors.Is(err, biz.ErrClientNotFound):
		response.ErrorWithCode(c, apperrors.ErrClientNotFound)
	case errors.Is(err, biz.ErrInvalidCredentials):
		response.ErrorWithCode(c, apperrors.ErrClientUnauthorized)
	case errors.Is(err, biz.ErrInvalidToken):
		response.ErrorWithCode(c, apperrors.ErrTokenInvalid)
	case errors.Is(err, biz.ErrClientIDRequired), errors.Is(err, biz.ErrClientSecretRequired):
		response.ErrorWithCode(c, apperrors.ErrValidation, err.Error())
	default:
		s.logger.Error("admin operation failed", zap.Error(err))
		response.ErrorWithCode(c, apperrors.ErrInternalServer)
	}
}

// RegisterRoutes mounts the admin auth endpoints
func (s *AdminService) RegisterRoutes(r *gin.RouterGroup) {
	auth := r.Group("/api/admin/auth")
	{
		auth.POST("/client/new", s.RegisterClient)
		auth.POST("/client/validate", s.ValidateClient)
		auth.POST("/token", s.Token)
		auth.GET("/token/validate", s.ValidateToken)
	}
}
