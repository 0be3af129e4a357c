package conf

import (
	"fmt"
	"time"

	"github.com/shbkp/shbkp-backend/internal/pkg/database"
	"github.com/shbkp/shbkp-backend/internal/pkg/logger"
	"github.com/spf13/viper"
)

// Config is the process-wide configuration, built once at startup and
// passed by reference to every component.
type Config struct {
	Server   ServerConfig    `mapstructure:"server"`
	Database database.Config `mapstructure:"database"`
	Redis    RedisConfig     `mapstructure:"redis"`
	Log      logger.Config   `mapstructure:"log"`
	Auth     AuthConfig      `mapstructure:"auth"`
	S3       S3Config        `mapstructure:"s3"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`

	// Length of the active window assigned to a company at registration.
	ValidityDays int `mapstructure:"validity_days"`

	// Sliding-window rate limit applied to the open registration endpoint.
	RegisterRateLimit  int `mapstructure:"register_rate_limit"`
	RegisterRateWindow int `mapstructure:"register_rate_window"` // seconds
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type AuthConfig struct {
	JWTSecret string        `mapstructure:"jwt_secret"`
	JWTIssuer string        `mapstructure:"jwt_issuer"`
	TokenTTL  time.Duration `mapstructure:"token_ttl"`
}

type S3Config struct {
	PresignExpiry time.Duration `mapstructure:"presign_expiry"`
}

// LoadConfig reads the configuration file and applies env overrides
func LoadConfig(path string) (*Config, error) {
	viper.SetConfigFile(path)
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	config.applyDefaults()
	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.Server.ValidityDays <= 0 {
		c.Server.ValidityDays = 365
	}
	if c.Server.RegisterRateLimit <= 0 {
		c.Server.RegisterRateLimit = 20
	}
	if c.Server.RegisterRateWindow <= 0 {
		c.Server.RegisterRateWindow = 60
	}
	if c.Auth.TokenTTL <= 0 {
		c.Auth.TokenTTL = 15 * time.Minute
	}
	if c.S3.PresignExpiry <= 0 {
		c.S3.PresignExpiry = 15 * time.Minute
	}
}

// RedisAddr builds the host:port address for the redis client
func (c *RedisConfig) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
