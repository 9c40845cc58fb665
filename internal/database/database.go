package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"ctrip-server/internal/config"
	"ctrip-server/internal/models"

	"github.com/go-redis/redis/v8"
	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InitPostgreSQL initializes PostgreSQL connection
func InitPostgreSQL(cfg config.PostgreSQLConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Database, cfg.SSLMode,
	)

	// Configure GORM
	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error), // Only log errors, not all SQL queries
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}

	db, err := gorm.Open(postgres.Open(dsn), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}

	// Get underlying sql.DB
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	// Configure connection pool
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Second)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping PostgreSQL: %w", err)
	}

	// Enable UUID extension
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\"").Error; err != nil {
		return nil, fmt.Errorf("failed to create uuid-ossp extension: %w", err)
	}

	// Auto migrate models
	if err := AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	// Create indexes
	if err := createIndexes(db); err != nil {
		return nil, fmt.Errorf("failed to create indexes: %w", err)
	}

	// Insert default data
	if err := SeedDefaultUsers(db); err != nil {
		return nil, fmt.Errorf("failed to seed default users: %w", err)
	}

	return db, nil
}

// InitInfluxDB initializes InfluxDB connection
func InitInfluxDB(cfg config.InfluxDBConfig) (influxdb2.Client, error) {
	client := influxdb2.NewClient(cfg.URL, cfg.Token)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	health, err := client.Health(ctx)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to check InfluxDB health: %w", err)
	}

	if health.Status != "pass" {
		client.Close()
		return nil, fmt.Errorf("InfluxDB health check failed: status=%s, message=%s",
			health.Status, *health.Message)
	}

	return client, nil
}

// InitRedis initializes Redis connection
func InitRedis(cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
		MaxRetries:   cfg.MaxRetries,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolTimeout:  4 * time.Second,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := client.Ping(ctx).Result()
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}

	return client, nil
}

// InitMinIO initializes MinIO connection
func InitMinIO(cfg config.MinIOConfig) (*minio.Client, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Check if bucket exists
	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check if MinIO bucket exists: %w", err)
	}

	// Create bucket if it doesn't exist
	if !exists {
		err = client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{
			Region: cfg.Region,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create MinIO bucket: %w", err)
		}
	}

	return client, nil
}

// AutoMigrate runs database migrations
func AutoMigrate(db *gorm.DB) error {
	entities := []interface{}{
		&models.User{},
		&models.Report{},
		&models.Evidence{},
		&models.Comment{},
		&models.Vote{},
		&models.InvestigationInstance{},
		&models.Notification{},
		&models.AuditLog{},
		&models.ChatMessage{},
	}

	for _, entity := range entities {
		if err := db.AutoMigrate(entity); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", entity, err)
		}
	}

	return nil
}

// createIndexes creates additional database indexes for performance
func createIndexes(db *gorm.DB) error {
	indexes := []string{
		// Reports indexes
		"CREATE INDEX CONCURRENTLY IF NOT EXISTS idx_reports_status_priority ON reports(status, priority)",
		"CREATE INDEX CONCURRENTLY IF NOT EXISTS idx_reports_author_created ON reports(author_id, created_at DESC)",
		"CREATE INDEX CONCURRENTLY IF NOT EXISTS idx_reports_type_status ON reports(type, status)",

		// Notifications indexes
		"CREATE INDEX CONCURRENTLY IF NOT EXISTS idx_notifications_user_unread ON notifications(user_id, is_read, created_at DESC)",

		// Instances indexes
		"CREATE INDEX CONCURRENTLY IF NOT EXISTS idx_instances_report_status ON investigation_instances(report_id, status)",
		"CREATE INDEX CONCURRENTLY IF NOT EXISTS idx_instances_creator ON investigation_instances(creator_id, created_at DESC)",

		// Audit Logs indexes
		"CREATE INDEX CONCURRENTLY IF NOT EXISTS idx_audit_logs_action_created ON audit_logs(action, created_at DESC)",
		"CREATE INDEX CONCURRENTLY IF NOT EXISTS idx_audit_logs_user_created ON audit_logs(user_id, created_at DESC)",

		// Chat indexes
		"CREATE INDEX CONCURRENTLY IF NOT EXISTS idx_chat_messages_user_created ON chat_messages(user_id, created_at DESC)",
	}

	for _, indexSQL := range indexes {
		if err := db.Exec(indexSQL).Error; err != nil {
			// Log warning but don't fail - index might already exist
			if !strings.Contains(err.Error(), "already exists") && !strings.Contains(err.Error(), "duplicate key") {
				fmt.Printf("Warning: failed to create index: %v\n", err)
			}
		}
	}

	return nil
}

// SeedDefaultUsers inserts one account per role on first boot.
func SeedDefaultUsers(db *gorm.DB) error {
	var count int64
	db.Model(&models.User{}).Count(&count)
	if count > 0 {
		fmt.Println("✅ Default users already exist, skipping...")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("Admin123!"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash default password: %w", err)
	}

	defaultUsers := []models.User{
		{Email: "admin@veritas.edu", PasswordHash: string(hash), Role: models.RoleAdmin},
		{Email: "security@veritas.edu", PasswordHash: string(hash), Role: models.RoleSecurity},
		{Email: "staff@veritas.edu", PasswordHash: string(hash), Role: models.RoleStaff},
		{Email: "student@veritas.edu", PasswordHash: string(hash), Role: models.RoleStudent},
	}

	for _, user := range defaultUsers {
		if err := db.Create(&user).Error; err != nil {
			return fmt.Errorf("failed to create default user %s: %w", user.Email, err)
		}
	}

	return nil
}

// HealthCheck performs a comprehensive health check of all backing services
func HealthCheck(db *gorm.DB, influxClient influxdb2.Client, redisClient *redis.Client, minioClient *minio.Client) map[string]interface{} {
	health := make(map[string]interface{})
	ctx := context.Background()

	// PostgreSQL health
	sqlDB, err := db.DB()
	if err != nil {
		health["postgresql"] = map[string]interface{}{"status": "error", "error": err.Error()}
	} else {
		err = sqlDB.Ping()
		if err != nil {
			health["postgresql"] = map[string]interface{}{"status": "error", "error": err.Error()}
		} else {
			stats := sqlDB.Stats()
			health["postgresql"] = map[string]interface{}{
				"status":           "healthy",
				"open_connections": stats.OpenConnections,
				"in_use":           stats.InUse,
				"idle":             stats.Idle,
			}
		}
	}

	// InfluxDB health (optional component)
	if influxClient != nil {
		healthResult, err := influxClient.Health(ctx)
		if err != nil {
			health["influxdb"] = map[string]interface{}{"status": "error", "error": err.Error()}
		} else {
			health["influxdb"] = map[string]interface{}{
				"status":  healthResult.Status,
				"message": healthResult.Message,
			}
		}
	} else {
		health["influxdb"] = map[string]interface{}{"status": "disabled"}
	}

	// Redis health (optional component)
	if redisClient != nil {
		_, err = redisClient.Ping(ctx).Result()
		if err != nil {
			health["redis"] = map[string]interface{}{"status": "error", "error": err.Error()}
		} else {
			health["redis"] = map[string]interface{}{"status": "healthy"}
		}
	} else {
		health["redis"] = map[string]interface{}{"status": "disabled"}
	}

	// MinIO health (optional component)
	if minioClient != nil {
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()

		_, err = minioClient.ListBuckets(ctx)
		if err != nil {
			health["minio"] = map[string]interface{}{"status": "error", "error": err.Error()}
		} else {
			health["minio"] = map[string]interface{}{"status": "healthy"}
		}
	} else {
		health["minio"] = map[string]interface{}{"status": "disabled"}
	}

	return health
}
