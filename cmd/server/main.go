package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"

	"github.com/tiiiiiimmy/nextJS-login-ui/internal/clock"
	"github.com/tiiiiiimmy/nextJS-login-ui/internal/handlers"
	jwtpkg "github.com/tiiiiiimmy/nextJS-login-ui/internal/jwt"
	"github.com/tiiiiiimmy/nextJS-login-ui/internal/logger"
	"github.com/tiiiiiimmy/nextJS-login-ui/internal/middlewares"
	"github.com/tiiiiiimmy/nextJS-login-ui/internal/repositories"
	"github.com/tiiiiiimmy/nextJS-login-ui/internal/services"
	"github.com/tiiiiiimmy/nextJS-login-ui/internal/validation"

	_ "github.com/jackc/pgx/v5/stdlib"
	httpSwagger "github.com/swaggo/http-swagger"
	_ "github.com/tiiiiiimmy/nextJS-login-ui/docs"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the service
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

// config holds everything the service needs at startup.
type config struct {
	appHost  string
	appPort  string
	logLevel string

	storageDriver string

	pgHost         string
	pgPort         int
	pgUser         string
	pgPassword     string
	pgDB           string
	pgMaxOpenConns int
	pgMaxIdleConns int

	redisHost     string
	redisPort     int
	redisDB       int
	redisPassword string

	kafkaBrokers string
	kafkaTopic   string

	jwtSecretKey string
	jwtExpSecond int

	signupVariant string
	reservedEmail string
}

// @title signup service API
// @version 1.0.0
// @description Registration endpoint with mirrored client/server form validation
// @host localhost:8080
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	printBuildInfo()
	configPath := parseFlags()

	cfg, err := parseConfig(configPath)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	if err := run(context.Background(), cfg); err != nil {
		log.Fatalf("application stopped with error: %v", err)
	}
}

// printBuildInfo prints the build version, commit hash, and build date.
func printBuildInfo() {
	fmt.Printf("Starting service version %s, commit %s, build %s\n", buildVersion, buildCommit, buildDate)
}

// parseFlags parses command-line flags and returns the config file path.
func parseFlags() string {
	c := flag.String("c", "config.env", "Path to configuration file")
	flag.Parse()
	return *c
}

// parseConfig loads environment variables from a file and fills the
// service configuration with defaults for anything unset.
func parseConfig(path string) (cfg config, err error) {
	_ = godotenv.Load(path)

	getEnv := func(key, defaultValue string) string {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			return val
		}
		return defaultValue
	}

	// Application config
	cfg.appHost = getEnv("APP_HOST", "localhost")
	cfg.appPort = getEnv("APP_PORT", "8080")
	cfg.logLevel = getEnv("APP_LOG_LEVEL", "info")

	// Storage backend: postgres or redis
	cfg.storageDriver = getEnv("STORAGE_DRIVER", "postgres")

	// PostgreSQL config
	cfg.pgHost = getEnv("POSTGRES_HOST", "localhost")
	cfg.pgUser = getEnv("POSTGRES_USER", "user")
	cfg.pgPassword = getEnv("POSTGRES_PASSWORD", "password")
	cfg.pgDB = getEnv("POSTGRES_DB", "database")
	if cfg.pgPort, err = strconv.Atoi(getEnv("POSTGRES_PORT", "5432")); err != nil {
		return
	}
	if cfg.pgMaxOpenConns, err = strconv.Atoi(getEnv("POSTGRES_MAX_OPEN_CONNS", "16")); err != nil {
		return
	}
	if cfg.pgMaxIdleConns, err = strconv.Atoi(getEnv("POSTGRES_MAX_IDLE_CONNS", "8")); err != nil {
		return
	}

	// Redis config
	cfg.redisHost = getEnv("REDIS_HOST", "localhost")
	if cfg.redisPort, err = strconv.Atoi(getEnv("REDIS_PORT", "6379")); err != nil {
		return
	}
	if cfg.redisDB, err = strconv.Atoi(getEnv("REDIS_DB", "0")); err != nil {
		return
	}
	cfg.redisPassword = getEnv("REDIS_PASSWORD", "")

	// Kafka config; empty broker list disables event publishing
	cfg.kafkaBrokers = getEnv("KAFKA_BROKERS", "")
	cfg.kafkaTopic = getEnv("KAFKA_TOPIC", "user.registered")

	// JWT config
	cfg.jwtSecretKey = getEnv("JWT_SECRET_KEY", "my_super_secret_key")
	if cfg.jwtExpSecond, err = strconv.Atoi(getEnv("JWT_EXP_SECOND", "3600")); err != nil {
		return
	}

	// Signup flow config
	cfg.signupVariant = getEnv("SIGNUP_VARIANT", "names")
	cfg.reservedEmail = getEnv("RESERVED_EMAIL", "test@gmail.com")

	return
}

// parseVariant maps the configured flow name to a validation variant.
func parseVariant(name string) (validation.Variant, error) {
	switch name {
	case "full":
		return validation.FullVariant, nil
	case "names":
		return validation.NamesVariant, nil
	case "minimal":
		return validation.Variant{}, nil
	}
	return validation.Variant{}, fmt.Errorf("unknown signup variant %q", name)
}

// run initializes the logger, the storage backend, Kafka, and the HTTP
// server. It sets up routes, applies middleware, and handles graceful
// shutdown.
func run(ctx context.Context, cfg config) error {
	if err := logger.Initialize(cfg.logLevel); err != nil {
		fmt.Println("failed to initialize logger:", err)
		return err
	}
	defer logger.Sync()
	logger.Log.Infof("Logger initialized with level %s", cfg.logLevel)

	variant, err := parseVariant(cfg.signupVariant)
	if err != nil {
		return err
	}

	// Storage backend
	var (
		reader services.UserReader
		writer services.UserWriter
	)
	switch cfg.storageDriver {
	case "postgres":
		dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
			cfg.pgUser, cfg.pgPassword, cfg.pgHost, cfg.pgPort, cfg.pgDB)
		logger.Log.Infof("Connecting to PostgreSQL at %s:%d", cfg.pgHost, cfg.pgPort)

		db, err := sqlx.ConnectContext(ctx, "pgx", dsn)
		if err != nil {
			return fmt.Errorf("postgres connection error: %w", err)
		}
		defer db.Close()
		db.SetMaxOpenConns(cfg.pgMaxOpenConns)
		db.SetMaxIdleConns(cfg.pgMaxIdleConns)
		if err := db.PingContext(ctx); err != nil {
			return fmt.Errorf("postgres ping failed: %w", err)
		}

		reader = repositories.NewUserReadRepository(db)
		writer = repositories.NewUserWriteRepository(db)

	case "redis":
		rdb := redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%d", cfg.redisHost, cfg.redisPort),
			Password: cfg.redisPassword,
			DB:       cfg.redisDB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("redis connection error: %w", err)
		}
		defer rdb.Close()

		repo := repositories.NewRedisUserRepository(rdb)
		reader, writer = repo, repo

	default:
		return fmt.Errorf("unknown storage driver %q", cfg.storageDriver)
	}

	// Kafka event publishing
	var kafkaWriter services.KafkaWriter
	if cfg.kafkaBrokers != "" {
		w := &kafka.Writer{
			Addr:     kafka.TCP(strings.Split(cfg.kafkaBrokers, ",")...),
			Topic:    cfg.kafkaTopic,
			Balancer: &kafka.LeastBytes{},
		}
		defer w.Close()
		kafkaWriter = w
		logger.Log.Infof("Publishing registration events to %s", cfg.kafkaTopic)
	}

	// Shared validation rules: the reserved email stands in for a real
	// uniqueness lookup and must match the client's fixture.
	reserved := validation.Normalize(cfg.reservedEmail)
	rules := validation.NewRules(variant, func(email string) bool {
		return email == reserved
	}, clock.New())

	// Token service
	tokens := jwtpkg.New(cfg.jwtSecretKey, time.Duration(cfg.jwtExpSecond)*time.Second)

	// Services
	registrationService := services.NewRegistrationService(reader, writer, kafkaWriter)
	authService := services.NewAuthService(reader, tokens)

	// Router
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middlewares.LoggingMiddleware())

	r.With(middlewares.ValidationMiddleware(rules)).
		Post("/register", handlers.NewRegisterHandler(registrationService))
	r.Post("/login", handlers.NewLoginHandler(authService))
	r.Get("/users", handlers.NewListUsersHandler(registrationService))
	r.Delete("/users/{email}", handlers.NewDeleteUserHandler(registrationService))
	r.With(middlewares.AuthMiddleware(tokens)).
		Get("/me", handlers.NewMeHandler(registrationService))
	r.Get("/health", handlers.NewHealthHandler())

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://%s:%s/swagger/doc.json", cfg.appHost, cfg.appPort)),
	))

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", cfg.appHost, cfg.appPort),
		Handler: r,
	}

	// Graceful shutdown
	errChan := make(chan error, 1)
	ctxShutdown, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	go func() {
		logger.Log.Infof("HTTP server listening on %s:%s", cfg.appHost, cfg.appPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()

	select {
	case <-ctxShutdown.Done():
		logger.Log.Info("Shutdown signal received, stopping HTTP server...")
	case serveErr := <-errChan:
		return serveErr
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Errorw("HTTP server shutdown error", "error", err)
	}

	logger.Log.Info("HTTP server stopped gracefully")
	return nil
}
