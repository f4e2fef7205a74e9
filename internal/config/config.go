package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Cache    CacheConfig
	JWT      JWTConfig
	SMTP     SMTPConfig
	Uploads  UploadsConfig
	Log      LogConfig
}

type ServerConfig struct {
	Host         string
	Port         int
	Env          string
	AllowOrigins []string
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxConns        int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CacheConfig struct {
	TaxonomyCacheTTL time.Duration
}

type JWTConfig struct {
	Secret     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	StartTLS bool
	// TemplateDirs are tried in order when resolving a template name.
	TemplateDirs []string
}

type UploadsConfig struct {
	Dir       string
	PublicURL string
	// ReconcileInterval is how often the orphaned-upload sweep runs.
	ReconcileInterval time.Duration
}

type LogConfig struct {
	Level string
}

func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:         viper.GetString("API_HOST"),
			Port:         viper.GetInt("API_PORT"),
			Env:          viper.GetString("API_ENV"),
			AllowOrigins: parseList(viper.GetString("CORS_ALLOW_ORIGINS")),
		},
		Database: DatabaseConfig{
			Host:            viper.GetString("DB_HOST"),
			Port:            viper.GetInt("DB_PORT"),
			User:            viper.GetString("DB_USER"),
			Password:        viper.GetString("DB_PASSWORD"),
			DBName:          viper.GetString("DB_NAME"),
			SSLMode:         viper.GetString("DB_SSLMODE"),
			MaxConns:        viper.GetInt("DB_MAX_CONNS"),
			MaxIdleConns:    viper.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: time.Duration(viper.GetInt("DB_CONN_MAX_LIFETIME")) * time.Second,
			ConnMaxIdleTime: time.Duration(viper.GetInt("DB_CONN_MAX_IDLE_TIME")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetInt("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Cache: CacheConfig{
			TaxonomyCacheTTL: time.Duration(viper.GetInt("TAXONOMY_CACHE_TTL")) * time.Second,
		},
		JWT: JWTConfig{
			Secret:     viper.GetString("JWT_SECRET"),
			AccessTTL:  time.Duration(viper.GetInt("JWT_ACCESS_TTL")) * time.Minute,
			RefreshTTL: time.Duration(viper.GetInt("JWT_REFRESH_TTL")) * time.Minute,
		},
		SMTP: SMTPConfig{
			Host:         viper.GetString("SMTP_HOST"),
			Port:         viper.GetInt("SMTP_PORT"),
			User:         viper.GetString("SMTP_USER"),
			Password:     viper.GetString("SMTP_PASSWORD"),
			From:         viper.GetString("SMTP_FROM"),
			StartTLS:     viper.GetBool("SMTP_STARTTLS"),
			TemplateDirs: parseList(viper.GetString("EMAIL_TEMPLATE_DIRS")),
		},
		Uploads: UploadsConfig{
			Dir:               viper.GetString("FILE_UPLOADS_DIR"),
			PublicURL:         viper.GetString("FILE_UPLOADS_PUBLIC_URL"),
			ReconcileInterval: time.Duration(viper.GetInt("FILE_RECONCILE_INTERVAL")) * time.Minute,
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
	}

	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	// Set default values if not provided
	if cfg.Cache.TaxonomyCacheTTL == 0 {
		cfg.Cache.TaxonomyCacheTTL = 300 * time.Second
	}
	if cfg.JWT.AccessTTL == 0 {
		cfg.JWT.AccessTTL = 30 * time.Minute
	}
	if cfg.JWT.RefreshTTL == 0 {
		cfg.JWT.RefreshTTL = 7 * 24 * time.Hour
	}
	if cfg.Uploads.Dir == "" {
		cfg.Uploads.Dir = "uploads"
	}
	if cfg.Uploads.PublicURL == "" {
		cfg.Uploads.PublicURL = "/uploads"
	}
	if cfg.Uploads.ReconcileInterval == 0 {
		cfg.Uploads.ReconcileInterval = time.Hour
	}
	if len(cfg.SMTP.TemplateDirs) == 0 {
		cfg.SMTP.TemplateDirs = []string{"templates/emails", "public/templates"}
	}
	if len(cfg.Server.AllowOrigins) == 0 {
		cfg.Server.AllowOrigins = []string{"http://localhost:3000", "http://localhost:5173"}
	}

	return cfg, nil
}

func parseList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
		c.Database.SSLMode,
	)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}

func (c *Config) GetSMTPAddr() string {
	return fmt.Sprintf("%s:%d", c.SMTP.Host, c.SMTP.Port)
}
