package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.uber.org/zap"

	"github.com/mvaldes/digital-toolkit/internal/config"
	"github.com/mvaldes/digital-toolkit/internal/database"
	"github.com/mvaldes/digital-toolkit/internal/handlers"
	"github.com/mvaldes/digital-toolkit/internal/icons"
	"github.com/mvaldes/digital-toolkit/internal/logger"
	"github.com/mvaldes/digital-toolkit/internal/middleware"
	"github.com/mvaldes/digital-toolkit/internal/notify"
	"github.com/mvaldes/digital-toolkit/internal/prefs"
	"github.com/mvaldes/digital-toolkit/internal/services/oidc"
	"github.com/mvaldes/digital-toolkit/internal/store"
	"github.com/mvaldes/digital-toolkit/internal/telemetry"
)

func main() {
	debugFlag := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	debugMode := cfg.ServerDebugMode || *debugFlag

	zapLogger, err := logger.NewProductionLogger(debugMode)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() {
		if syncErr := zapLogger.Sync(); syncErr != nil {
			_ = syncErr
		}
	}()

	zapLogger.Info("starting_server",
		zap.Bool("debug_mode", debugMode),
		zap.String("server_port", cfg.ServerPort),
		zap.String("frontend_url", cfg.FrontendURL),
		zap.Bool("otel_enabled", cfg.OTELEnabled),
	)

	rootCtx, rootCancel := context.WithCancel(context.Background())
	defer rootCancel()

	if cfg.OTELEnabled && cfg.OTELEndpoint != "" {
		tp, err := telemetry.InitTracer(rootCtx, "digital-toolkit-api", handlers.Version, cfg.OTELEndpoint)
		if err != nil {
			zapLogger.Warn("failed_to_initialize_otel_tracer", zap.Error(err))
		} else {
			defer func() {
				shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer shutdownCancel()
				if err := telemetry.Shutdown(shutdownCtx, tp); err != nil {
					zapLogger.Error("failed_to_shutdown_otel_tracer", zap.Error(err))
				}
			}()
		}
	}

	db, err := database.New(cfg.DatabaseURL)
	if err != nil {
		zapLogger.Fatal("failed_to_connect_to_database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			zapLogger.Warn("failed_to_close_database_connection", zap.Error(err))
		}
	}()
	zapLogger.Info("connected_to_database")

	redisClient, err := prefs.Connect(cfg.RedisURL)
	if err != nil {
		zapLogger.Fatal("failed_to_connect_to_redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			zapLogger.Warn("failed_to_close_redis_connection", zap.Error(err))
		}
	}()
	zapLogger.Info("connected_to_redis")

	sink := connectNotificationSink(cfg.RabbitMQURL, zapLogger)
	defer func() {
		if err := sink.Close(); err != nil {
			zapLogger.Warn("failed_to_close_rabbitmq_connection", zap.Error(err))
		}
	}()

	toolRepo := database.NewToolRepository(db)
	userRepo := database.NewUserRepository(db)
	metaRepo := database.NewCategoryMetaRepository(db)

	verifier, err := oidc.NewVerifier(rootCtx, cfg.OIDCIssuer, cfg.OIDCJWKSURL)
	if err != nil {
		zapLogger.Fatal("failed_to_initialize_oidc_verifier", zap.Error(err))
	}
	oidcClient := oidc.NewClient(cfg.OIDCIssuer, cfg.OIDCClientID, cfg.BaseURL+"/auth/callback")

	storeManager := store.NewManager(toolRepo, sink, zapLogger)
	prefStore := prefs.NewStore(redisClient)

	toolHandler := handlers.NewToolHandler(storeManager, prefStore, zapLogger)
	categoryHandler := handlers.NewCategoryHandler(storeManager, metaRepo, icons.NewRegistry(), zapLogger)
	prefHandler := handlers.NewPreferenceHandler(prefStore)
	authHandler := handlers.NewAuthHandler(oidcClient, cfg.OIDCIssuer, cfg.OIDCClientID, storeManager)
	healthChecker := handlers.NewHealthChecker(db, redisClient, sink)

	r := mux.NewRouter()

	if cfg.OTELEnabled {
		r.Use(otelmux.Middleware("digital-toolkit-api"))
	}
	r.Use(middleware.SecurityHeaders(cfg.EnableHSTS))
	r.Use(middleware.CORS(cfg.FrontendURL))
	r.Use(middleware.MaxRequestSize(middleware.DefaultMaxRequestSize))
	r.Use(middleware.ContentType)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(middleware.ErrorHandler(zapLogger))
	r.Use(middleware.Logging(zapLogger))

	rateLimitMW, err := middleware.RateLimit(redisClient, cfg.RateLimit)
	if err != nil {
		zapLogger.Fatal("failed_to_create_rate_limiter", zap.Error(err))
	}
	authMW := middleware.Auth(userRepo, verifier, zapLogger)

	r.HandleFunc("/healthz", healthChecker.HealthCheck).Methods("GET")
	r.HandleFunc("/version", handlers.GetVersion).Methods("GET")

	apiRouter := r.PathPrefix("/api/v1").Subrouter()

	authRouter := apiRouter.PathPrefix("/auth").Subrouter()
	publicAuthRouter := authRouter.PathPrefix("").Subrouter()
	publicAuthRouter.Use(rateLimitMW)
	authHandler.RegisterPublicRoutes(publicAuthRouter)

	protectedAuthRouter := authRouter.PathPrefix("").Subrouter()
	protectedAuthRouter.Use(authMW, rateLimitMW)
	authHandler.RegisterProtectedRoutes(protectedAuthRouter)

	toolsRouter := apiRouter.PathPrefix("/tools").Subrouter()
	toolsRouter.Use(authMW, rateLimitMW)
	toolHandler.RegisterRoutes(toolsRouter)

	indexRouter := apiRouter.PathPrefix("").Subrouter()
	indexRouter.Use(authMW, rateLimitMW)
	categoryHandler.RegisterRoutes(indexRouter)

	prefsRouter := apiRouter.PathPrefix("/preferences").Subrouter()
	prefsRouter.Use(authMW, rateLimitMW)
	prefHandler.RegisterRoutes(prefsRouter)

	// Preflight fallback; the CORS middleware has already set the headers.
	r.Methods("OPTIONS").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	srv := &http.Server{
		Addr:           ":" + cfg.ServerPort,
		Handler:        r,
		ReadTimeout:    15 * time.Second,
		WriteTimeout:   15 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	go func() {
		zapLogger.Info("server_starting", zap.String("port", cfg.ServerPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("server_failed_to_start", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("server_shutting_down")
	rootCancel()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Fatal("server_forced_to_shutdown", zap.Error(err))
	}

	zapLogger.Info("server_exited")
}

// connectNotificationSink retries the RabbitMQ connection with exponential
// backoff to ride out broker startup delays.
func connectNotificationSink(amqpURL string, zapLogger *zap.Logger) *notify.RabbitMQSink {
	const maxRetries = 10
	const initialDelay = 2 * time.Second

	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		sink, err := notify.NewRabbitMQSink(amqpURL)
		if err == nil {
			zapLogger.Info("connected_to_rabbitmq")
			return sink
		}

		lastErr = err
		delay := initialDelay * time.Duration(1<<uint(attempt))
		if delay > 30*time.Second {
			delay = 30 * time.Second
		}
		zapLogger.Warn("failed_to_connect_to_rabbitmq_retrying",
			zap.Int("attempt", attempt+1),
			zap.Int("max_retries", maxRetries),
			zap.Error(err),
			zap.Duration("retry_delay", delay),
		)
		time.Sleep(delay)
	}

	zapLogger.Fatal("failed_to_connect_to_rabbitmq_after_retries",
		zap.Int("max_retries", maxRetries),
		zap.Error(lastErr),
	)
	return nil
}
