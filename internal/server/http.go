package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	adminservice "github.com/shbkp/shbkp-backend/internal/admin/service"
	companyservice "github.com/shbkp/shbkp-backend/internal/company/service"
	"github.com/shbkp/shbkp-backend/internal/conf"
	filemetaservice "github.com/shbkp/shbkp-backend/internal/filemeta/service"
	"github.com/shbkp/shbkp-backend/internal/pkg/logger"
	"go.uber.org/zap"
)

// HTTPServer wraps the gin engine with lifecycle management
type HTTPServer struct {
	server *http.Server
	logger *logger.Logger
}

func NewHTTPServer(
	config *conf.Config,
	log *logger.Logger,
	companyService *companyservice.CompanyService,
	fileMetaService *filemetaservice.FileMetaService,
	adminService *adminservice.AdminService,
	redisClient *redis.Client,
) *HTTPServer {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(logger.GinMiddleware(log))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// Registration is the only unauthenticated write, so it alone gets
	// the rate limiter.
	registerLimiter := RateLimiter(redisClient, RateLimiterConfig{
		MaxRequests:   config.Server.RegisterRateLimit,
		WindowSeconds: config.Server.RegisterRateWindow,
	}, log)

	root := router.Group("")
	companyService.RegisterRoutes(root, registerLimiter)
	fileMetaService.RegisterRoutes(root)
	adminService.RegisterRoutes(root)

	addr := fmt.Sprintf("%s:%d", config.Server.Host, config.Server.Port)

	return &HTTPServer{
		server: &http.Server{
			Addr:    addr,
			Handler: router,
		},
		logger: log,
	}
}

func (s *HTTPServer) Start() error {
	s.logger.Info("starting HTTP server", zap.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	return nil
}

func (s *HTTPServer) Stop(ctx context.Context) error {
	s.logger.Info("stopping HTTP server")
	return s.server.Shutdown(ctx)
}
