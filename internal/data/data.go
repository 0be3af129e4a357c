package data

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	admindata "github.com/shbkp/shbkp-backend/internal/admin/data"
	companydata "github.com/shbkp/shbkp-backend/internal/company/data"
	"github.com/shbkp/shbkp-backend/internal/conf"
	filemetadata "github.com/shbkp/shbkp-backend/internal/filemeta/data"
	"github.com/shbkp/shbkp-backend/internal/pkg/database"
	"github.com/shbkp/shbkp-backend/internal/pkg/logger"
)

// Data bundles the shared persistence clients
type Data struct {
	DB          *database.DB
	RedisClient *redis.Client
}

// NewData initializes the database and redis clients and returns a
// cleanup function releasing both.
func NewData(config *conf.Config, log *logger.Logger) (*Data, func(), error) {
	db, err := database.New(&config.Database, log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to init database: %w", err)
	}

	if err := db.AutoMigrate(
		&companydata.CompanyPO{},
		&filemetadata.FileMetaPO{},
		&admindata.AdminClientPO{},
	); err != nil {
		return nil, nil, fmt.Errorf("failed to auto migrate: %w", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     config.Redis.RedisAddr(),
		Password: config.Redis.Password,
		DB:       config.Redis.DB,
	})
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	d := &Data{
		DB:          db,
		RedisClient: redisClient,
	}

	cleanup := func() {
		log.Info("cleaning up data resources")

		if err := db.Close(); err != nil {
			log.Warn("failed to close database: " + err.Error())
		}
		if err := redisClient.Close(); err != nil {
			log.Warn("failed to close redis client: " + err.Error())
		}
	}

	return d, cleanup, nil
}
