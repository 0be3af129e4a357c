package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	adminbiz "github.com/shbkp/shbkp-backend/internal/admin/biz"
	admindata "github.com/shbkp/shbkp-backend/internal/admin/data"
	adminservice "github.com/shbkp/shbkp-backend/internal/admin/service"
	companybiz "github.com/shbkp/shbkp-backend/internal/company/biz"
	companydata "github.com/shbkp/shbkp-backend/internal/company/data"
	companyservice "github.com/shbkp/shbkp-backend/internal/company/service"
	"github.com/shbkp/shbkp-backend/internal/conf"
	"github.com/shbkp/shbkp-backend/internal/data"
	filemetabiz "github.com/shbkp/shbkp-backend/internal/filemeta/biz"
	filemetadata "github.com/shbkp/shbkp-backend/internal/filemeta/data"
	filemetaservice "github.com/shbkp/shbkp-backend/internal/filemeta/service"
	"github.com/shbkp/shbkp-backend/internal/pkg/logger"
	"github.com/shbkp/shbkp-backend/internal/pkg/s3"
	"github.com/shbkp/shbkp-backend/internal/server"
	"go.uber.org/zap"
)

var configFile = flag.String("config", "config.yaml", "config file path")

func main() {
	flag.Parse()

	// Load configuration
	config, err := conf.LoadConfig(*configFile)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize logger with config
	log, err := logger.New(&config.Log)
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer log.Sync()

	log.Info("config loaded successfully")

	// Initialize data layer
	d, cleanup, err := data.NewData(config, log)
	if err != nil {
		log.Fatal("failed to initialize data layer", zap.Error(err))
	}
	defer cleanup()

	// Initialize repositories
	companyRepo := companydata.NewCompanyRepo(d.DB)
	fileMetaRepo := filemetadata.NewFileMetaRepo(d.DB)
	adminClientRepo := admindata.NewAdminClientRepo(d.DB)

	// Initialize use cases
	presigner := s3.NewPresigner(config.S3.PresignExpiry)
	tokenManager := adminbiz.NewTokenManager(config.Auth.JWTSecret, config.Auth.JWTIssuer, config.Auth.TokenTTL)

	companyUseCase := companybiz.NewCompanyUseCase(companyRepo, config.Server.ValidityDays)
	fileMetaUseCase := filemetabiz.NewFileMetaUseCase(fileMetaRepo, companyRepo, presigner)
	adminUseCase := adminbiz.NewAdminUseCase(adminClientRepo, tokenManager)

	// Initialize services
	companyService := companyservice.NewCompanyService(companyUseCase, log)
	fileMetaService := filemetaservice.NewFileMetaService(fileMetaUseCase, log)
	adminService := adminservice.NewAdminService(adminUseCase, log)

	// Initialize HTTP server
	httpServer := server.NewHTTPServer(config, log, companyService, fileMetaService, adminService, d.RedisClient)

	go func() {
		if err := httpServer.Start(); err != nil {
			log.Fatal("failed to start HTTP server", zap.Error(err))
		}
	}()

	log.Info("server started successfully")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Stop(ctx); err != nil {
		log.Error("HTTP server forced to shutdown", zap.Error(err))
	}

	log.Info("server exited")
}
