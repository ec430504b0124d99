package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sehat-sathi-server/config"
	deliveryHttp "sehat-sathi-server/internal/delivery/http"
	"sehat-sathi-server/internal/delivery/http/handler"
	"sehat-sathi-server/internal/delivery/http/middleware"
	"sehat-sathi-server/internal/domain/entity"
	"sehat-sathi-server/internal/infrastructure/cache"
	"sehat-sathi-server/internal/infrastructure/database"
	"sehat-sathi-server/internal/notification"
	"sehat-sathi-server/internal/repository"
	"sehat-sathi-server/internal/scheduler"
	"sehat-sathi-server/internal/usecase"
	"sehat-sathi-server/pkg/jwt"
	"sehat-sathi-server/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config        *config.Config
	DB            *gorm.DB
	RedisClient   *redis.Client
	CallScheduler *scheduler.CallScheduler
	Server        *http.Server
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Setup logger
	setupLogger()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg
	logrus.Info("Configuration loaded successfully")

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db
	logrus.Info("Database connected successfully")

	// Apply pending schema migrations
	if err := database.RunMigrations(db); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient
	logrus.Info("Redis connected successfully")

	// Initialize all layers
	server, callScheduler := initializeServer(cfg, db, redisClient)
	app.Server = server
	app.CallScheduler = callScheduler

	// Re-arm reminder timers for calls that were pending when the previous
	// process stopped. Must finish before traffic is accepted, otherwise a
	// status update could race an un-rearmed reminder.
	rehydrateCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := callScheduler.Rehydrate(rehydrateCtx); err != nil {
		return nil, fmt.Errorf("failed to rehydrate call reminders: %w", err)
	}
	logrus.Info("Call reminders rehydrated")

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*http.Server, *scheduler.CallScheduler) {
	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize repositories
	userRepo := repository.NewUserRepository()
	roleRepo := repository.NewRoleRepository()
	doctorProfileRepo := repository.NewDoctorProfileRepository()
	patientProfileRepo := repository.NewPatientProfileRepository()
	weeklyScheduleRepo := repository.NewWeeklyScheduleRepository()
	appointmentRepo := repository.NewAppointmentRepository()
	callRecordRepo := repository.NewCallRecordRepository()

	// Initialize logger
	log := logrus.StandardLogger()

	// Pick the notification sink. Without a provider URL every reminder is
	// silently dropped instead of failing.
	var notifier notification.Notifier
	if cfg.SMS.URL != "" {
		notifier = notification.NewSMSNotifier(cfg.SMS)
		log.Info("SMS notifications enabled")
	} else {
		notifier = notification.NewNoopNotifier()
		log.Warn("No SMS provider configured, call reminders will not be delivered")
	}

	// Initialize the call reminder scheduler
	callScheduler := scheduler.NewCallScheduler(db, log, callRecordRepo, redisClient, notifier, cfg.Call.NotifyLead)

	// A fired reminder changes how the call set should render for its
	// patient, so push a change signal to live subscribers.
	callScheduler.AddNotificationCallback(func(call *entity.CallRecord) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		callScheduler.PublishChange(ctx, call.PatientID)
	})

	location := cfg.Location()

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(db, log, userRepo, roleRepo, doctorProfileRepo, patientProfileRepo, jwtService, redisClient)
	doctorUsecase := usecase.NewDoctorUsecase(db, log, doctorProfileRepo)
	scheduleUsecase := usecase.NewScheduleUsecase(db, log, weeklyScheduleRepo, doctorProfileRepo)
	availabilityUsecase := usecase.NewAvailabilityUsecase(db, log, location, weeklyScheduleRepo, appointmentRepo, doctorProfileRepo)
	appointmentUsecase := usecase.NewAppointmentUsecase(db, log, location, appointmentRepo, availabilityUsecase)
	callUsecase := usecase.NewCallUsecase(db, log, cfg.Call.LinkBase, callRecordRepo, patientProfileRepo, doctorProfileRepo, callScheduler)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUsecase, customValidator, jwtService)
	doctorHandler := handler.NewDoctorHandler(doctorUsecase)
	scheduleHandler := handler.NewScheduleHandler(scheduleUsecase, availabilityUsecase, customValidator)
	appointmentHandler := handler.NewAppointmentHandler(appointmentUsecase, customValidator)
	callHandler := handler.NewCallHandler(callUsecase, customValidator)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, redisClient)
	corsMiddleware := middleware.NewCORSMiddleware()

	// Initialize router
	router := deliveryHttp.NewRouter(authHandler, doctorHandler, scheduleHandler, appointmentHandler, callHandler, authMiddleware, corsMiddleware)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	server := &http.Server{
		Addr:    serverAddr,
		Handler: httpRouter,
	}

	return server, callScheduler
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start server in goroutine
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	// Stop pending reminder timers; they re-arm from the database on the
	// next startup.
	if app.CallScheduler != nil {
		app.CallScheduler.Stop()
	}

	// Close connections
	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close closes all connections (database, redis, etc.)
func (app *App) Close() {
	// Close database connection
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	// Close Redis connection
	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
