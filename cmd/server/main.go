package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ctrip-server/internal/api"
	"ctrip-server/internal/config"
	"ctrip-server/internal/database"
	"ctrip-server/internal/middleware"
	"ctrip-server/internal/models"
	"ctrip-server/internal/services"
	"ctrip-server/internal/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/minio/minio-go/v7"
	"gorm.io/gorm"
)

var startTime = time.Now()

// provisionDelay is how long a spawned investigation instance stays in
// PROVISIONING before the provisioner flips it to RUNNING.
const provisionDelay = 15 * time.Second

func main() {
	log.Println("🚀 Starting V-CTRIP Server...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}

	// Initialize database connections
	log.Println("📊 Connecting to databases...")

	var influxDB influxdb2.Client
	var redisClient *redis.Client
	var minioClient *minio.Client

	// PostgreSQL is the system of record, there is no running without it
	db, err := database.InitPostgreSQL(cfg.Database.PostgreSQL)
	if err != nil {
		log.Fatalf("❌ PostgreSQL connection failed: %v", err)
	}
	log.Println("✅ PostgreSQL connected")

	// InfluxDB, Redis and MinIO are optional, degrade gracefully
	influxDB, err = database.InitInfluxDB(cfg.Database.InfluxDB)
	if err != nil {
		log.Printf("⚠️  InfluxDB connection failed: %v, trend analytics disabled", err)
		influxDB = nil
	} else {
		log.Println("✅ InfluxDB connected")
	}

	redisClient, err = database.InitRedis(cfg.Database.Redis)
	if err != nil {
		log.Printf("⚠️  Redis connection failed: %v, rate limiting disabled", err)
		redisClient = nil
	} else {
		log.Println("✅ Redis connected")
	}

	minioClient, err = database.InitMinIO(cfg.Storage.MinIO)
	if err != nil {
		log.Printf("⚠️  MinIO connection failed: %v, evidence files stored as metadata only", err)
		minioClient = nil
	} else {
		log.Println("✅ MinIO connected")
	}

	// Initialize services
	log.Println("⚙️  Initializing services...")

	auditService := services.NewAuditService(db)
	authService := services.NewAuthService(db, auditService,
		cfg.JWTPrivateKey,
		time.Duration(cfg.Security.AccessTokenTTLMin)*time.Minute,
		time.Duration(cfg.Security.RefreshTokenTTLHours)*time.Hour,
		cfg.Security.MaxFailedLogins,
		cfg.Security.BcryptCost)
	notificationService := services.NewNotificationService(db)
	eventService := services.NewEventService(influxDB, cfg.Database.InfluxDB.Org, cfg.Database.InfluxDB.Bucket)

	// The hub comes up before the report service so urgent reports can
	// be broadcast to connected staff dashboards
	wsHub := websocket.NewHub()
	go wsHub.Run()
	log.Println("✅ WebSocket hub started")

	reportService := services.NewReportService(db, notificationService, auditService,
		eventService, wsHub, minioClient,
		cfg.Storage.MinIO.Bucket, cfg.Storage.MinIO.MaxFileSize, cfg.Storage.MinIO.AllowedFormats)
	labService := services.NewLabService(db, auditService, provisionDelay)
	chatbotService := services.NewChatbotService(db, auditService)
	analyticsService := services.NewAnalyticsService(db, eventService)
	adminService := services.NewAdminService(db, auditService)

	authMiddleware := middleware.NewAuthMiddleware(cfg.JWTPublicKey, redisClient)

	log.Println("✅ Services initialized")

	// Initialize HTTP router
	router := setupRouter(cfg,
		authService, reportService, notificationService, analyticsService,
		labService, chatbotService, adminService, auditService,
		wsHub, authMiddleware,
		db, influxDB, redisClient, minioClient)

	// Start HTTP server
	srv := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("🌐 V-CTRIP Server listening on %s", cfg.Server.Address)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("❌ Server forced to shutdown:", err)
	}

	// Stop pending provisioning timers after the HTTP server drains
	labService.Shutdown()

	log.Println("✅ Server exited")
}

func setupRouter(cfg *config.Config,
	authService *services.AuthService, reportService *services.ReportService,
	notificationService *services.NotificationService, analyticsService *services.AnalyticsService,
	labService *services.LabService, chatbotService *services.ChatbotService,
	adminService *services.AdminService, auditService *services.AuditService,
	wsHub *websocket.Hub, authMiddleware *middleware.AuthMiddleware,
	db *gorm.DB, influxDB influxdb2.Client, redisClient *redis.Client, minioClient *minio.Client) *gin.Engine {

	if cfg.Server.Mode == "production" || cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		return fmt.Sprintf("%s - [%s] \"%s %s %s %d %s \"%s\" %s\"\n",
			param.ClientIP,
			param.TimeStamp.Format(time.RFC1123),
			param.Method,
			param.Path,
			param.Request.Proto,
			param.StatusCode,
			param.Latency,
			param.Request.UserAgent(),
			param.ErrorMessage,
		)
	}))

	router.Use(gin.Recovery())

	if len(cfg.Security.TrustedProxies) > 0 {
		if err := router.SetTrustedProxies(cfg.Security.TrustedProxies); err != nil {
			log.Printf("⚠️  Invalid trusted proxy list: %v", err)
		}
	}

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	if len(cfg.Security.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.Security.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowHeaders = []string{
		"Origin", "Content-Length", "Content-Type", "Authorization",
	}
	corsConfig.AllowMethods = []string{
		"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS",
	}
	router.Use(cors.New(corsConfig))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":     "healthy",
			"timestamp":  time.Now().Unix(),
			"version":    "1.0.0",
			"service":    "V-CTRIP Server",
			"uptime":     time.Since(startTime).Seconds(),
			"components": database.HealthCheck(db, influxDB, redisClient, minioClient),
		})
	})

	// WebSocket endpoint for real-time staff dashboard updates
	router.GET("/ws", func(c *gin.Context) {
		websocket.HandleWebSocket(wsHub, c.Writer, c.Request)
	})

	limits := cfg.Security.RateLimits

	// API routes
	apiRouter := router.Group("/api/v1")
	{
		apiRouter.Use(authMiddleware.RateLimit("default", limits.Default))

		// Authentication
		authRouter := apiRouter.Group("/auth")
		authRouter.Use(authMiddleware.RateLimit("auth", limits.Auth))
		{
			authHandler := api.NewAuthHandler(authService)
			authRouter.POST("/register", authHandler.Register)
			authRouter.POST("/login", authHandler.Login)
			authRouter.POST("/refresh", authHandler.Refresh)
			authRouter.POST("/logout", authMiddleware.RequireAuth(), authHandler.Logout)
			authRouter.POST("/users",
				authMiddleware.RequireAuth(),
				authMiddleware.RequireRoles(models.RoleAdmin),
				authHandler.CreateUser)
		}

		// Incident reports
		reportRouter := apiRouter.Group("/reports")
		reportRouter.Use(authMiddleware.RequireAuth())
		{
			reportHandler := api.NewReportHandler(reportService)
			reportRouter.POST("", authMiddleware.RateLimit("reports", limits.Reports), reportHandler.Create)
			reportRouter.GET("", reportHandler.List)
			reportRouter.GET("/my", reportHandler.ListMine)
			reportRouter.GET("/:id", reportHandler.Get)
			reportRouter.PATCH("/:id/status",
				authMiddleware.RequireRoles(models.RoleStaff, models.RoleSecurity, models.RoleAdmin),
				reportHandler.UpdateStatus)
			reportRouter.POST("/:id/vote", authMiddleware.RateLimit("votes", limits.Votes), reportHandler.Vote)
			reportRouter.POST("/:id/comments", authMiddleware.RateLimit("comments", limits.Comments), reportHandler.Comment)
			reportRouter.POST("/:id/evidence", authMiddleware.RateLimit("evidence", limits.Evidence), reportHandler.UploadEvidence)
		}

		// Investigation lab instances (staff only)
		labRouter := apiRouter.Group("/labs")
		labRouter.Use(authMiddleware.RequireAuth())
		labRouter.Use(authMiddleware.RequireRoles(models.RoleStaff, models.RoleSecurity, models.RoleAdmin))
		{
			labHandler := api.NewLabHandler(labService)
			labRouter.POST("/spawn/:reportId", labHandler.Spawn)
			labRouter.GET("/my", labHandler.ListMine)
			labRouter.GET("/:id", labHandler.Get)
			labRouter.DELETE("/:id", labHandler.Terminate)
		}

		// Notifications
		notificationRouter := apiRouter.Group("/notifications")
		notificationRouter.Use(authMiddleware.RequireAuth())
		notificationRouter.Use(authMiddleware.RateLimit("notifications", limits.Notifications))
		{
			notificationHandler := api.NewNotificationHandler(notificationService)
			notificationRouter.GET("", notificationHandler.List)
			notificationRouter.GET("/unread-count", notificationHandler.UnreadCount)
			notificationRouter.PATCH("/:id/read", notificationHandler.MarkRead)
			notificationRouter.PATCH("/read-all", notificationHandler.MarkAllRead)
		}

		// Security assistant chatbot
		chatRouter := apiRouter.Group("/chat")
		chatRouter.Use(authMiddleware.RequireAuth())
		chatRouter.Use(authMiddleware.RateLimit("chat", limits.Chat))
		{
			chatHandler := api.NewChatHandler(chatbotService)
			chatRouter.POST("", chatHandler.Ask)
			chatRouter.GET("/history", chatHandler.History)
		}

		// Analytics (privileged)
		analyticsRouter := apiRouter.Group("/analytics")
		analyticsRouter.Use(authMiddleware.RequireAuth())
		analyticsRouter.Use(authMiddleware.RequireRoles(models.RoleSecurity, models.RoleAdmin))
		{
			analyticsHandler := api.NewAnalyticsHandler(analyticsService)
			analyticsRouter.GET("", analyticsHandler.Overview)
			analyticsRouter.GET("/trends", analyticsHandler.Trends)
		}

		// Administration
		adminRouter := apiRouter.Group("/admin")
		adminRouter.Use(authMiddleware.RequireAuth())
		adminRouter.Use(authMiddleware.RequireRoles(models.RoleSecurity, models.RoleAdmin))
		{
			adminHandler := api.NewAdminHandler(adminService, auditService)
			adminRouter.GET("/users", adminHandler.ListUsers)
			adminRouter.PATCH("/users/:id/role", authMiddleware.RequireRoles(models.RoleAdmin), adminHandler.UpdateRole)
			adminRouter.PATCH("/users/:id/lock", authMiddleware.RequireRoles(models.RoleAdmin), adminHandler.SetLocked)
			adminRouter.DELETE("/users/:id", authMiddleware.RequireRoles(models.RoleAdmin), adminHandler.DeleteUser)
			adminRouter.GET("/audit-logs", adminHandler.ListAuditLogs)
		}
	}

	return router
}
