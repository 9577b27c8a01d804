package main

import (
	"github.com/NehaKoffeeKodes/fintech-core-backend-sub001/internal/export"
	"github.com/NehaKoffeeKodes/fintech-core-backend-sub001/internal/handler"
	"github.com/NehaKoffeeKodes/fintech-core-backend-sub001/internal/middleware"
	"github.com/NehaKoffeeKodes/fintech-core-backend-sub001/internal/service"
	"github.com/NehaKoffeeKodes/fintech-core-backend-sub001/pkg/config"
	"github.com/NehaKoffeeKodes/fintech-core-backend-sub001/pkg/database"
	"github.com/NehaKoffeeKodes/fintech-core-backend-sub001/pkg/jwtutil"
	"github.com/NehaKoffeeKodes/fintech-core-backend-sub001/pkg/logger"
	"github.com/NehaKoffeeKodes/fintech-core-backend-sub001/prometheus"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

func main() {
	// Load configuration from .env file and environment variables
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger with config
	logger.InitLogger(cfg)
	log := logger.GetLogger()
	log.Info("Starting admin service...", cfg.LogConfig()...)

	// Initialize central registry database
	if err := database.Initialize(database.DBConfig{
		DSN:             cfg.DB.GetDSN(),
		MaxIdleConns:    cfg.DB.MaxIdleConns,
		MaxOpenConns:    cfg.DB.MaxOpenConns,
		ConnMaxLifetime: cfg.DB.ConnMaxLifetime,
		LogLevel:        cfg.DB.LogLevel,
	}); err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established")

	// Per-tenant database connections
	tenantDBs := database.NewTenantManager(&cfg.TenantDB)

	// Initialize JWT utility
	jwtutil.Initialize(&cfg.JWT)
	log.Info("JWT utility initialized")

	// Wire services
	registry := service.NewRegistryStore(database.GetDB())
	audit := service.NewAuditStore(database.GetDB())
	toggler := service.NewToggler(registry, service.NewPrincipalStore(tenantDBs), audit)
	contacts := service.NewContactService(registry, service.NewContactStore(tenantDBs), audit)
	exporter := export.NewExporter(&cfg.Media)

	tenantHandler := handler.NewTenantHandler(toggler, exporter)
	contactHandler := handler.NewContactHandler(contacts)

	// Initialize Echo framework
	e := echo.New()

	// Apply global middleware - order matters
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	e.Use(middleware.RequestIDMiddleware)
	e.Use(logger.Middleware(log))
	e.Use(prometheus.MetricsMiddleware())

	// Serve generated export files
	e.Static(cfg.Media.URLPath, cfg.Media.StorageRoot)

	// Public routes - no authentication required
	e.GET("/health", handler.HealthCheck)
	e.GET("/metrics", handler.MetricsHandler)

	// API routes - all require authentication
	api := e.Group("/api")
	api.Use(middleware.AuthMiddleware)

	// Tenant directory and block/unblock - superadmin only
	tenants := api.Group("/tenants")
	tenants.Use(middleware.RequireSuperadmin)
	tenants.GET("", tenantHandler.List)
	tenants.GET("/export", tenantHandler.Export)
	tenants.POST("/:tenant_id/toggle-status", tenantHandler.ToggleStatus)

	// Contact info - requires tenant context
	contact := api.Group("/contact-info")
	contact.Use(middleware.RequireTenantContext)
	contact.GET("", contactHandler.Get)
	contact.PUT("", contactHandler.Upsert)

	// Get server port from configuration
	port := cfg.Server.Port

	// Start server
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Failed to start server", zap.Error(err))
	}
}
