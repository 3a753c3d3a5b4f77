package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"kalasangam_backend/database"
	"kalasangam_backend/internal/auth"
	"kalasangam_backend/internal/config"
	"kalasangam_backend/internal/email"
	"kalasangam_backend/internal/events"
	"kalasangam_backend/internal/handlers"
	"kalasangam_backend/internal/imageprocessor"
	"kalasangam_backend/internal/inflight"
	"kalasangam_backend/internal/logger"
	"kalasangam_backend/internal/metrics"
	"kalasangam_backend/internal/middleware"
	"kalasangam_backend/internal/repositories"
	"kalasangam_backend/internal/routes"
	"kalasangam_backend/internal/services"
	"kalasangam_backend/internal/storage"
	"kalasangam_backend/internal/validator"
	"kalasangam_backend/internal/workers"
	"kalasangam_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// App - процесс сервиса: общие зависимости, текущий роутер и подключение к БД.
// До настройки подключения отдает роутер режима setup.
type App struct {
	cfg       *config.Config
	metrics   *metrics.Manager
	bus       events.Bus
	storage   storage.Storage
	validator *validator.Validator
	handler   *switchHandler

	setupMu  sync.Mutex // один POST /setup за раз
	mu       sync.Mutex
	db       *gorm.DB
	services *services.ServiceContainer
	redis    *redis.Client

	stopWorkers context.CancelFunc
}

// Run стартует HTTP сервер и блокируется до отмены ctx.
func Run(ctx context.Context, cfg *config.Config) error {
	a, err := New(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:              address,
		Handler:           a.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info(fmt.Sprintf("🚀 Server starting on %s", address), "setup_mode", !a.Configured())
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server startup error: %w", err)
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// New собирает общие зависимости. Если URL и anon key известны, сразу
// подключается к БД; иначе остается в режиме setup.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	apperrors.SetDebug(cfg.IsDevelopment())

	a := &App{
		cfg:       cfg,
		metrics:   metrics.NewManager(),
		validator: validator.New(),
		handler:   newSwitchHandler(),
	}

	if err := a.initEvents(ctx); err != nil {
		return nil, err
	}

	storageInstance, err := storage.NewStorage(storage.Config{
		Type:       cfg.Storage.Type,
		BasePath:   cfg.Storage.BasePath,
		BaseURL:    cfg.Storage.BaseURL,
		Bucket:     cfg.Storage.Bucket,
		Region:     cfg.Storage.Region,
		AccessKey:  cfg.Storage.AccessKey,
		SecretKey:  cfg.Storage.SecretKey,
		Endpoint:   cfg.Storage.Endpoint,
		AccountID:  cfg.Storage.AccountID,
		PublicRead: cfg.Storage.PublicRead,
	})
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	a.storage = storageInstance
	logger.Info("Storage initialized", "type", cfg.Storage.Type)

	conn, err := cfg.ResolveConnection()
	if err != nil {
		a.Close()
		return nil, err
	}
	if !conn.Complete() {
		logger.Warn("Backend connection is not configured, starting in setup mode", "connection_file", cfg.ConnectionFile)
		a.handler.Swap(a.setupRouter())
		return a, nil
	}

	if err := a.connect(ctx, conn); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

// Handler - корневой http.Handler (CORS поверх переключаемого роутера).
func (a *App) Handler() http.Handler {
	return middleware.CORS(a.cfg.CORS.AllowedOrigins)(a.handler)
}

func (a *App) Configured() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.db != nil
}

// DB - текущее подключение (nil в режиме setup).
func (a *App) DB() *gorm.DB {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.db
}

func (a *App) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopWorkers != nil {
		a.stopWorkers()
		a.stopWorkers = nil
	}
	if a.services != nil {
		a.services.Close()
		a.services = nil
	}
	if a.bus != nil {
		if err := a.bus.Close(); err != nil {
			logger.Warn("Failed to close event bus", "error", err)
		}
	}
	if a.redis != nil {
		_ = a.redis.Close()
	}
	if a.db != nil {
		if sqlDB, err := a.db.DB(); err == nil {
			_ = sqlDB.Close()
		}
		a.db = nil
	}
}

func (a *App) initEvents(ctx context.Context) error {
	switch a.cfg.Events.Driver {
	case "", "memory":
		a.bus = events.NewMemoryBus(0)
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr: a.cfg.Events.RedisAddr,
			DB:   a.cfg.Events.RedisDB,
		})
		bus, err := events.NewRedisBus(ctx, client, a.cfg.Events.Channel)
		if err != nil {
			_ = client.Close()
			return fmt.Errorf("failed to initialize redis event bus: %w", err)
		}
		a.redis = client
		a.bus = bus
	default:
		return fmt.Errorf("unsupported events driver: %s", a.cfg.Events.Driver)
	}
	logger.Info("Event bus initialized", "driver", a.cfg.Events.Driver)
	return nil
}

// connect подключается, мигрирует схему и включает полный роутер.
func (a *App) connect(ctx context.Context, conn config.Connection) error {
	logger.Info("Connecting to database...", "driver", a.cfg.Database.Driver)
	gormDB, err := database.Connect(database.Options{
		Driver:   a.cfg.Database.Driver,
		DSN:      conn.URL,
		Replicas: a.cfg.Database.Replicas,
		LogSQL:   a.cfg.Database.LogSQL,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := gormDB.DB()
	if err == nil {
		err = sqlDB.PingContext(ctx)
	}
	if err == nil {
		err = database.AutoMigrate(gormDB)
	}
	if err != nil {
		if sqlDB != nil {
			_ = sqlDB.Close()
		}
		return fmt.Errorf("database unavailable: %w", err)
	}
	logger.Info("Database connected")

	serviceContainer := a.initializeServices()
	appHandlers := a.initializeHandlers(serviceContainer, gormDB)
	router := a.initializeGinRouter(gormDB)

	routes.RegisterRoutes(router, appHandlers, routes.Middlewares{
		APIKey:      middleware.APIKeyMiddleware(conn.AnonKey),
		RequireAuth: middleware.AuthMiddleware(serviceContainer.AuthService),
		AuthLimit:   middleware.RateLimitMiddleware(middleware.NewIPRateLimiter(a.cfg.RateLimit.AuthPerMinute, a.cfg.RateLimit.Burst)),
	})
	a.serveUploads(router)

	// воркеры живут до Close, а не до конца запроса setup
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	workers.NewSessionWorker(gormDB,
		repositories.NewSessionRepository(),
		repositories.NewLoginTokenRepository(),
		a.cfg.SessionCleanupInterval(),
	).Start(workerCtx)

	a.mu.Lock()
	a.db = gormDB
	a.services = serviceContainer
	a.stopWorkers = stopWorkers
	a.mu.Unlock()

	a.handler.Swap(router)
	return nil
}

func (a *App) initializeServices() *services.ServiceContainer {
	cfg := a.cfg

	var emailService email.Provider
	if cfg.Email.Enabled {
		emailService = email.NewSMTPProvider(email.WithDefaults(email.SMTPConfig{
			Host:      cfg.Email.SMTPHost,
			Port:      cfg.Email.SMTPPort,
			Username:  cfg.Email.SMTPUsername,
			Password:  cfg.Email.SMTPPassword,
			FromEmail: cfg.Email.FromEmail,
			FromName:  cfg.Email.FromName,
		}), email.NewTemplateManager(), cfg.MagicLink.TTL)
	} else {
		logger.Warn("SMTP disabled, magic links are written to the log")
		emailService = email.NewLogProvider()
	}

	// --- Инициализация репозиториев ---
	userRepo := repositories.NewUserRepository()
	sessionRepo := repositories.NewSessionRepository()
	loginTokenRepo := repositories.NewLoginTokenRepository()
	profileRepo := repositories.NewProfileRepository()
	specsRepo := repositories.NewSpecsRepository()
	portfolioRepo := repositories.NewPortfolioRepository()
	projectRepo := repositories.NewProjectRepository()
	applicationRepo := repositories.NewApplicationRepository()

	// --- Инициализация сервисов ---
	guard := inflight.NewGuard()
	demoStore := services.NewDemoStore(a.bus)
	compressor := imageprocessor.NewCompressor(imageprocessor.Options{
		Threshold:    cfg.Upload.CompressThreshold,
		MaxDimension: cfg.Upload.MaxDimension,
		Quality:      cfg.Upload.ImageQuality,
		Timeout:      cfg.Watchdog(),
	})

	authService := services.NewAuthService(userRepo, sessionRepo, loginTokenRepo,
		auth.NewTokenManager(cfg.JWT.Secret), emailService, a.bus, a.metrics,
		services.AuthConfig{
			SessionTTL:   cfg.JWTTTL(),
			MagicLinkTTL: cfg.MagicLinkTTL(),
			MagicLinkURL: cfg.MagicLink.BaseURL,
		})
	profileService := services.NewProfileService(profileRepo, specsRepo, portfolioRepo, guard, a.bus, a.metrics)
	mediaService := services.NewMediaService(profileRepo, portfolioRepo, a.storage, compressor, a.bus, a.metrics, services.MediaConfig{
		MaxSize:      cfg.Upload.MaxSize,
		AllowedTypes: cfg.Upload.AllowedTypes,
	})
	projectService := services.NewProjectService(projectRepo, applicationRepo)
	applicationService := services.NewApplicationService(projectRepo, applicationRepo, demoStore, guard, a.metrics)

	container := &services.ServiceContainer{
		AuthService:        authService,
		SessionGate:        services.NewSessionGate(authService, profileService, a.bus),
		ProfileService:     profileService,
		MediaService:       mediaService,
		ProjectService:     projectService,
		ApplicationService: applicationService,
		DashboardService:   services.NewDashboardService(profileService, applicationService),
		SkillingService:    services.NewSkillingService(),
		CoachService:       services.NewCoachService(cfg.CoachDelay()),
		ShellService:       services.NewShellService(a.bus),
		EmailService:       emailService,
		Bus:                a.bus,
	}
	container.SetDemoStore(demoStore)
	return container
}

func (a *App) initializeHandlers(services *services.ServiceContainer, gormDB *gorm.DB) *handlers.AppHandlers {
	baseHandler := handlers.NewBaseHandler(a.validator)

	return &handlers.AppHandlers{
		AuthHandler:      handlers.NewAuthHandler(baseHandler, services.AuthService),
		SessionHandler:   handlers.NewSessionHandler(baseHandler, services.SessionGate, services.ShellService, services.Bus),
		ProfileHandler:   handlers.NewProfileHandler(baseHandler, services.ProfileService, services.MediaService),
		ProjectHandler:   handlers.NewProjectHandler(baseHandler, services.ProjectService, services.ApplicationService),
		DashboardHandler: handlers.NewDashboardHandler(baseHandler, services.DashboardService),
		SkillingHandler:  handlers.NewSkillingHandler(baseHandler, services.SkillingService),
		CoachHandler:     handlers.NewCoachHandler(baseHandler, services.CoachService),
		SetupHandler:     a.newSetupHandler(baseHandler),
		HealthHandler:    handlers.NewHealthHandler(gormDB, a.metrics),
	}
}

func (a *App) initializeGinRouter(db *gorm.DB) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.MetricsMiddleware(a.metrics))
	if db != nil {
		router.Use(middleware.DBMiddleware(db))
	}
	return router
}

// serveUploads отдает файлы локального storage по его публичному пути.
func (a *App) serveUploads(router *gin.Engine) {
	local, ok := a.storage.(*storage.LocalStorage)
	if !ok || !strings.HasPrefix(local.PublicPath(), "/") {
		return
	}
	router.Static(local.PublicPath(), local.Root())
}
