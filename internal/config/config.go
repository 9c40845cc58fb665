package config

import (
	"crypto/rsa"
	"fmt"
	"os"
	"strings"

	"github.com/golang-jwt/jwt/v4"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Security SecurityConfig `mapstructure:"security"`

	// Parsed from the PEM material in Security, populated by Load.
	JWTPrivateKey *rsa.PrivateKey `mapstructure:"-"`
	JWTPublicKey  *rsa.PublicKey  `mapstructure:"-"`
}

type ServerConfig struct {
	Address     string `mapstructure:"address"`
	Mode        string `mapstructure:"mode"`
	TLSEnabled  bool   `mapstructure:"tls_enabled"`
	CertFile    string `mapstructure:"cert_file"`
	KeyFile     string `mapstructure:"key_file"`
	MaxRequests int    `mapstructure:"max_requests"`
}

type DatabaseConfig struct {
	PostgreSQL PostgreSQLConfig `mapstructure:"postgresql"`
	InfluxDB   InfluxDBConfig   `mapstructure:"influxdb"`
	Redis      RedisConfig      `mapstructure:"redis"`
}

type PostgreSQLConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	Database        string `mapstructure:"database"`
	SSLMode         string `mapstructure:"sslmode"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
}

type InfluxDBConfig struct {
	URL           string `mapstructure:"url"`
	Token         string `mapstructure:"token"`
	Org           string `mapstructure:"org"`
	Bucket        string `mapstructure:"bucket"`
	RetentionDays int    `mapstructure:"retention_days"`
	BatchSize     int    `mapstructure:"batch_size"`
}

type RedisConfig struct {
	Address      string `mapstructure:"address"`
	Password     string `mapstructure:"password"`
	DB           int    `mapstructure:"db"`
	PoolSize     int    `mapstructure:"pool_size"`
	MinIdleConns int    `mapstructure:"min_idle_conns"`
	MaxRetries   int    `mapstructure:"max_retries"`
}

type StorageConfig struct {
	MinIO MinIOConfig `mapstructure:"minio"`
}

type MinIOConfig struct {
	Endpoint       string   `mapstructure:"endpoint"`
	AccessKey      string   `mapstructure:"access_key"`
	SecretKey      string   `mapstructure:"secret_key"`
	UseSSL         bool     `mapstructure:"use_ssl"`
	Bucket         string   `mapstructure:"bucket"`
	Region         string   `mapstructure:"region"`
	MaxFileSize    int64    `mapstructure:"max_file_size"`
	AllowedFormats []string `mapstructure:"allowed_formats"`
}

type SecurityConfig struct {
	// JWTPrivateKeyPEM / JWTPublicKeyPEM take the key material inline;
	// the *File variants point at PEM files on disk. Inline wins.
	JWTPrivateKeyPEM     string          `mapstructure:"jwt_private_key"`
	JWTPublicKeyPEM      string          `mapstructure:"jwt_public_key"`
	JWTPrivateKeyFile    string          `mapstructure:"jwt_private_key_file"`
	JWTPublicKeyFile     string          `mapstructure:"jwt_public_key_file"`
	AccessTokenTTLMin    int             `mapstructure:"access_token_ttl_min"`
	RefreshTokenTTLHours int             `mapstructure:"refresh_token_ttl_hours"`
	MaxFailedLogins      int             `mapstructure:"max_failed_logins"`
	BcryptCost           int             `mapstructure:"bcrypt_cost"`
	AllowedOrigins       []string        `mapstructure:"allowed_origins"`
	TrustedProxies       []string        `mapstructure:"trusted_proxies"`
	RateLimits           RateLimitConfig `mapstructure:"rate_limits"`
}

// RateLimitConfig holds the per-route request budgets (requests per minute).
type RateLimitConfig struct {
	Auth          int `mapstructure:"auth"`
	Reports       int `mapstructure:"reports"`
	Evidence      int `mapstructure:"evidence"`
	Comments      int `mapstructure:"comments"`
	Votes         int `mapstructure:"votes"`
	Chat          int `mapstructure:"chat"`
	Notifications int `mapstructure:"notifications"`
	Default       int `mapstructure:"default"`
}

func Load() (*Config, error) {
	viper.SetConfigName("app")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("/etc/ctrip")
	viper.AddConfigPath("$HOME/.ctrip")

	// Environment variables
	viper.AutomaticEnv()
	viper.SetEnvPrefix("CTRIP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Set default values
	setDefaults()

	// Read config file
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found, use defaults and environment variables
		fmt.Println("⚠️  Config file not found, using defaults and environment variables")
	} else {
		fmt.Printf("✅ Using config file: %s\n", viper.ConfigFileUsed())
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := loadKeys(&config); err != nil {
		return nil, fmt.Errorf("failed to load signing keys: %w", err)
	}

	// Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// loadKeys parses the RS256 key pair from inline PEM or key files.
func loadKeys(config *Config) error {
	privPEM := config.Security.JWTPrivateKeyPEM
	if privPEM == "" && config.Security.JWTPrivateKeyFile != "" {
		data, err := os.ReadFile(config.Security.JWTPrivateKeyFile)
		if err != nil {
			return fmt.Errorf("read private key file: %w", err)
		}
		privPEM = string(data)
	}
	pubPEM := config.Security.JWTPublicKeyPEM
	if pubPEM == "" && config.Security.JWTPublicKeyFile != "" {
		data, err := os.ReadFile(config.Security.JWTPublicKeyFile)
		if err != nil {
			return fmt.Errorf("read public key file: %w", err)
		}
		pubPEM = string(data)
	}

	if privPEM == "" && pubPEM == "" {
		return nil
	}

	if privPEM != "" {
		key, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(privPEM))
		if err != nil {
			return fmt.Errorf("parse private key: %w", err)
		}
		config.JWTPrivateKey = key
		config.JWTPublicKey = &key.PublicKey
	}
	if pubPEM != "" {
		key, err := jwt.ParseRSAPublicKeyFromPEM([]byte(pubPEM))
		if err != nil {
			return fmt.Errorf("parse public key: %w", err)
		}
		config.JWTPublicKey = key
	}
	return nil
}

func setDefaults() {
	// Server defaults
	viper.SetDefault("server.address", ":5000")
	viper.SetDefault("server.mode", "debug")
	viper.SetDefault("server.tls_enabled", false)
	viper.SetDefault("server.max_requests", 1000)

	// Database defaults
	viper.SetDefault("database.postgresql.host", "localhost")
	viper.SetDefault("database.postgresql.port", 5432)
	viper.SetDefault("database.postgresql.user", "ctrip_user")
	viper.SetDefault("database.postgresql.password", "ctrip_password")
	viper.SetDefault("database.postgresql.database", "ctrip_db")
	viper.SetDefault("database.postgresql.sslmode", "disable")
	viper.SetDefault("database.postgresql.max_idle_conns", 10)
	viper.SetDefault("database.postgresql.max_open_conns", 100)
	viper.SetDefault("database.postgresql.conn_max_lifetime", 3600)

	// InfluxDB defaults
	viper.SetDefault("database.influxdb.url", "http://localhost:8086")
	viper.SetDefault("database.influxdb.token", "")
	viper.SetDefault("database.influxdb.org", "ctrip-org")
	viper.SetDefault("database.influxdb.bucket", "report-events")
	viper.SetDefault("database.influxdb.retention_days", 90)
	viper.SetDefault("database.influxdb.batch_size", 1000)

	viper.SetDefault("database.redis.address", "localhost:6379")
	viper.SetDefault("database.redis.db", 0)
	viper.SetDefault("database.redis.pool_size", 10)
	viper.SetDefault("database.redis.min_idle_conns", 5)
	viper.SetDefault("database.redis.max_retries", 3)

	// Storage defaults
	viper.SetDefault("storage.minio.endpoint", "localhost:9000")
	viper.SetDefault("storage.minio.bucket", "ctrip-evidence")
	viper.SetDefault("storage.minio.use_ssl", false)
	viper.SetDefault("storage.minio.region", "us-east-1")
	viper.SetDefault("storage.minio.max_file_size", 10*1024*1024) // 10MB
	viper.SetDefault("storage.minio.allowed_formats", []string{
		".jpg", ".jpeg", ".png", ".gif", ".pdf", ".doc", ".docx", ".txt", ".log", ".json", ".csv",
	})

	// Security defaults
	viper.SetDefault("security.access_token_ttl_min", 15)
	viper.SetDefault("security.refresh_token_ttl_hours", 168) // 7 days
	viper.SetDefault("security.max_failed_logins", 5)
	viper.SetDefault("security.bcrypt_cost", 10)
	viper.SetDefault("security.allowed_origins", []string{"*"})

	// Rate limit defaults (requests per minute per user)
	viper.SetDefault("security.rate_limits.auth", 5)
	viper.SetDefault("security.rate_limits.reports", 10)
	viper.SetDefault("security.rate_limits.evidence", 5)
	viper.SetDefault("security.rate_limits.comments", 20)
	viper.SetDefault("security.rate_limits.votes", 30)
	viper.SetDefault("security.rate_limits.chat", 15)
	viper.SetDefault("security.rate_limits.notifications", 60)
	viper.SetDefault("security.rate_limits.default", 100)
}

func validateConfig(config *Config) error {
	// Validate server config
	if config.Server.Address == "" {
		return fmt.Errorf("server address cannot be empty")
	}

	if config.Server.Mode != "debug" && config.Server.Mode != "release" && config.Server.Mode != "production" {
		return fmt.Errorf("invalid server mode: %s", config.Server.Mode)
	}

	// Validate database config
	if config.Database.PostgreSQL.Host == "" {
		return fmt.Errorf("PostgreSQL host cannot be empty")
	}

	if config.Database.PostgreSQL.Port < 1 || config.Database.PostgreSQL.Port > 65535 {
		return fmt.Errorf("invalid PostgreSQL port: %d", config.Database.PostgreSQL.Port)
	}

	if config.Database.Redis.Address == "" {
		return fmt.Errorf("Redis address cannot be empty")
	}

	// Validate security config
	if config.JWTPrivateKey == nil {
		return fmt.Errorf("JWT private key is required (security.jwt_private_key or security.jwt_private_key_file)")
	}

	if config.Security.AccessTokenTTLMin < 1 {
		return fmt.Errorf("access token TTL must be at least 1 minute")
	}

	if config.Security.RefreshTokenTTLHours < 1 {
		return fmt.Errorf("refresh token TTL must be at least 1 hour")
	}

	if config.Security.MaxFailedLogins < 1 {
		return fmt.Errorf("max failed logins must be at least 1")
	}

	return nil
}

// PrintConfig prints the current configuration (with sensitive data masked)
func PrintConfig(config *Config) {
	fmt.Println("📋 Current Configuration:")
	fmt.Printf("   Server: %s (mode: %s)\n", config.Server.Address, config.Server.Mode)
	fmt.Printf("   PostgreSQL: %s:%d/%s\n", config.Database.PostgreSQL.Host,
		config.Database.PostgreSQL.Port, config.Database.PostgreSQL.Database)
	fmt.Printf("   InfluxDB: %s/%s\n", config.Database.InfluxDB.URL, config.Database.InfluxDB.Bucket)
	fmt.Printf("   Redis: %s (DB: %d)\n", config.Database.Redis.Address, config.Database.Redis.DB)
	fmt.Printf("   MinIO: %s/%s\n", config.Storage.MinIO.Endpoint, config.Storage.MinIO.Bucket)
	fmt.Printf("   Tokens: access %dm, refresh %dh\n",
		config.Security.AccessTokenTTLMin, config.Security.RefreshTokenTTLHours)
}
