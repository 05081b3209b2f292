package app

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/velocity-rentals/velocity_rental_service/internal/adapter/clock"
	"github.com/velocity-rentals/velocity_rental_service/internal/adapter/handler/http"
	"github.com/velocity-rentals/velocity_rental_service/internal/adapter/logger"
	"github.com/velocity-rentals/velocity_rental_service/internal/adapter/payment"
	"github.com/velocity-rentals/velocity_rental_service/internal/adapter/postgres"
	"github.com/velocity-rentals/velocity_rental_service/internal/adapter/prometheus"
	"github.com/velocity-rentals/velocity_rental_service/internal/adapter/redis"
	"github.com/velocity-rentals/velocity_rental_service/internal/adapter/storage"
	"github.com/velocity-rentals/velocity_rental_service/internal/config"
	"github.com/velocity-rentals/velocity_rental_service/internal/core/ports"
	"github.com/velocity-rentals/velocity_rental_service/internal/core/services"

	"github.com/go-playground/validator/v10"
	"github.com/pressly/goose"
	redisClient "github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
)

type App struct {
	Config       *config.Container
	Logger       ports.LoggerPort
	DB           *sql.DB
	RedisClient  *redisClient.Client
	RedisAdapter ports.CachePort
	HTTPRouter   *http.Router
	Cron         *cron.Cron
}

func New(ctx context.Context, cfg *config.Container) (*App, error) {
	// Set logger
	loggerAdapter := logger.NewLoggerAdapter(cfg.App.Env)
	loggerAdapter.Info("Starting the application", map[string]interface{}{
		"app":     cfg.App.Name,
		"env":     cfg.App.Env,
		"storage": cfg.Storage.DriverOrDefault(),
	})

	// Set redis
	redisConn := redisClient.NewClient(&redisClient.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       0,
	})
	if _, err := redisConn.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	cacheAdapter := redis.NewRedisAdapter(redisConn)

	// Repositories, per storage driver
	var (
		db              *sql.DB
		reservationRepo ports.ReservationRepository
		fleetRepo       ports.FleetRepository
		userRepo        ports.UserRepository
	)
	switch cfg.Storage.DriverOrDefault() {
	case "postgres":
		dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			cfg.DB.Host, cfg.DB.Port, cfg.DB.User, cfg.DB.Password, cfg.DB.Name)
		pg, err := sql.Open("postgres", dsn)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := pg.Ping(); err != nil {
			return nil, fmt.Errorf("failed to ping database: %w", err)
		}

		// Migrate DB
		if err := goose.Up(pg, "./internal/adapter/postgres/migrations"); err != nil {
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}

		db = pg
		pgFleet := postgres.NewFleetRepository(pg)
		if err := pgFleet.SeedInstances(ctx, storage.DefaultInstances()); err != nil {
			return nil, fmt.Errorf("failed to seed fleet instances: %w", err)
		}
		reservationRepo = postgres.NewReservationRepository(pg)
		fleetRepo = pgFleet
		userRepo = postgres.NewUserRepository(pg)

	case "file":
		fileStore, err := storage.NewFileStore(cfg.Storage.DataDirOrDefault(), loggerAdapter)
		if err != nil {
			return nil, fmt.Errorf("failed to open data directory: %w", err)
		}
		fleetStore, err := storage.NewFleetStore(fileStore)
		if err != nil {
			return nil, fmt.Errorf("failed to init fleet store: %w", err)
		}
		userStore, err := storage.NewUserStore(fileStore)
		if err != nil {
			return nil, fmt.Errorf("failed to init user store: %w", err)
		}
		reservationRepo = storage.NewReservationStore(fileStore)
		fleetRepo = fleetStore
		userRepo = userStore

	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}

	// Validate
	validate := validator.New()

	// Observability
	metrics := prometheus.NewPrometheusAdapter()

	// Clock and payment simulator
	systemClock := clock.New()
	paymentProcessor := payment.NewSimulator(cfg.Payment.LatencyOrDefault(), cfg.Payment.DeclineRateOrDefault(), loggerAdapter)

	// Services
	pricingService := services.NewPricingService(services.PricingConfig{BaseDailyRate: cfg.Pricing.BaseDailyRateOrDefault()}, loggerAdapter)
	rentalService := services.NewRentalService(reservationRepo, fleetRepo, pricingService, paymentProcessor, systemClock, loggerAdapter, validate, cacheAdapter)
	userService := services.NewUserService(userRepo, systemClock, loggerAdapter, validate)
	fleetService := services.NewFleetService(fleetRepo, loggerAdapter)
	analyticsService := services.NewAnalyticsService(reservationRepo, fleetRepo, pricingService, systemClock, loggerAdapter)
	receiptService := services.NewReceiptService(fleetRepo, pricingService, loggerAdapter)

	// HTTP Handlers
	tokenService := http.NewJWTTokenService(cfg.Token.Secret, cfg.Token.DurationOrDefault(), loggerAdapter)
	authHandler := http.NewAuthHandler(userService, tokenService, loggerAdapter, metrics)
	rentalHandler := http.NewRentalHandler(rentalService, pricingService, receiptService, userService, loggerAdapter, metrics)
	fleetHandler := http.NewFleetHandler(fleetService, metrics)
	adminHandler := http.NewAdminHandler(userService, rentalService, analyticsService, systemClock, loggerAdapter, metrics)

	// Init HTTP router
	router, err := http.NewRouter(
		cfg.HTTP,
		tokenService,
		authHandler,
		rentalHandler,
		fleetHandler,
		adminHandler,
	)
	if err != nil {
		if db != nil {
			db.Close()
		}
		redisConn.Close()
		return nil, fmt.Errorf("failed to initialize router: %w", err)
	}

	// Nightly sweep: materializes the completed status for trips whose end
	// date has passed. Reads do the same promotion lazily, the job just keeps
	// the stored data fresh between reads.
	scheduler := cron.New()
	if _, err := scheduler.AddFunc("@daily", func() {
		if _, err := rentalService.PromoteExpiredSweep(context.Background()); err != nil {
			loggerAdapter.Error("Promotion sweep failed", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}); err != nil {
		if db != nil {
			db.Close()
		}
		redisConn.Close()
		return nil, fmt.Errorf("failed to schedule promotion sweep: %w", err)
	}

	return &App{
		Config:       cfg,
		Logger:       loggerAdapter,
		DB:           db,
		RedisClient:  redisConn,
		RedisAdapter: cacheAdapter,
		HTTPRouter:   router,
		Cron:         scheduler,
	}, nil
}

// Runs all services
func (a *App) Run() error {
	a.Cron.Start()

	listenAddr := fmt.Sprintf("%s:%s", a.Config.HTTP.URL, a.Config.HTTP.Port)
	a.Logger.Info("Starting HTTP server", map[string]interface{}{
		"addr": listenAddr,
	})

	if err := a.HTTPRouter.Serve(listenAddr); err != nil {
		a.Logger.Error("HTTP server error", map[string]interface{}{
			"error": err.Error(),
		})
		return err
	}
	return nil
}

// Stops all services
func (a *App) Stop(ctx context.Context) error {
	a.Logger.Info("Shutting down gracefully...", nil)

	cronCtx := a.Cron.Stop()
	select {
	case <-cronCtx.Done():
	case <-ctx.Done():
	}

	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			a.Logger.Error("Database close error", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	if err := a.RedisClient.Close(); err != nil {
		a.Logger.Error("Redis close error", map[string]interface{}{
			"error": err.Error(),
		})
	}

	a.Logger.Info("Application stopped successfully", nil)
	return nil
}
