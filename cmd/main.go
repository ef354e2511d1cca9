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
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"

	"github.com/sbilibin2017/gw-social-wallet/internal/handlers"
	appjwt "github.com/sbilibin2017/gw-social-wallet/internal/jwt"
	"github.com/sbilibin2017/gw-social-wallet/internal/logger"
	"github.com/sbilibin2017/gw-social-wallet/internal/middlewares"
	"github.com/sbilibin2017/gw-social-wallet/internal/repositories"
	"github.com/sbilibin2017/gw-social-wallet/internal/services"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/sbilibin2017/gw-social-wallet/docs"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the service
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

// config holds everything parsed from the environment.
type config struct {
	appHost  string
	appPort  string
	logLevel string

	storage string // "postgres" or "memory"

	pgHost         string
	pgPort         int
	pgUser         string
	pgPassword     string
	pgDB           string
	pgMaxOpenConns int
	pgMaxIdleConns int

	redisEnabled      bool
	redisHost         string
	redisPort         int
	redisDB           int
	redisPassword     string
	redisPoolSize     int
	redisMinIdleConns int
	cacheTTLSecond    int

	kafkaEnabled bool
	kafkaBrokers string
	kafkaTopic   string

	jwtSecretKey string
	jwtExpSecond int
}

// @title gw-social-wallet API
// @version 1.0.0
// @description Microservice for managing member friendships, wallets, and contribution shares
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

// parseConfig loads environment variables from a file and returns the
// application configuration.
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

	// Storage backend: postgres or memory
	cfg.storage = getEnv("STORAGE", "postgres")

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
	cfg.redisEnabled = getEnv("REDIS_ENABLED", "true") == "true"
	cfg.redisHost = getEnv("REDIS_HOST", "localhost")
	if cfg.redisPort, err = strconv.Atoi(getEnv("REDIS_PORT", "6379")); err != nil {
		return
	}
	if cfg.redisDB, err = strconv.Atoi(getEnv("REDIS_DB", "0")); err != nil {
		return
	}
	cfg.redisPassword = getEnv("REDIS_PASSWORD", "")
	if cfg.redisPoolSize, err = strconv.Atoi(getEnv("REDIS_POOL_SIZE", "10")); err != nil {
		return
	}
	if cfg.redisMinIdleConns, err = strconv.Atoi(getEnv("REDIS_MIN_IDLE_CONNS", "2")); err != nil {
		return
	}
	if cfg.cacheTTLSecond, err = strconv.Atoi(getEnv("CONNECTION_CACHE_TTL_SECOND", "60")); err != nil {
		return
	}

	// Kafka config
	cfg.kafkaEnabled = getEnv("KAFKA_ENABLED", "false") == "true"
	cfg.kafkaBrokers = getEnv("KAFKA_BROKERS", "localhost:9092")
	cfg.kafkaTopic = getEnv("KAFKA_TOPIC", "wallet-contributions")

	// JWT config
	cfg.jwtSecretKey = getEnv("JWT_SECRET_KEY", "my_super_secret_key")
	if cfg.jwtExpSecond, err = strconv.Atoi(getEnv("JWT_EXP_SECOND", "3600")); err != nil {
		return
	}

	return
}

// newRouter assembles the HTTP route table. txWare wraps every mutating
// route in a database transaction; pass nil when the storage backend has
// no transactions (in-memory).
func newRouter(
	authService *services.AuthService,
	userService *services.UserService,
	walletService *services.WalletService,
	tokener *appjwt.JWT,
	txWare func(http.Handler) http.Handler,
	swaggerURL string,
) chi.Router {
	if txWare == nil {
		txWare = func(next http.Handler) http.Handler { return next }
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middlewares.LoggingMiddleware)

	// Public routes; registration writes, so it runs inside a transaction
	r.With(txWare).Post("/register", handlers.NewRegisterHandler(authService))
	r.Post("/login", handlers.NewLoginHandler(authService))

	// Protected routes with JWT middleware. Auth runs before the
	// transaction middleware so rejected requests never open one.
	r.Group(func(r chi.Router) {
		r.Use(middlewares.AuthMiddleware(tokener))
		r.Use(txWare)

		r.Post("/users", handlers.NewUserCreateHandler(userService, tokener))
		r.Get("/users/{userID}", handlers.NewUserGetHandler(userService, tokener))
		r.Delete("/users/{userID}", handlers.NewUserDeleteHandler(userService, tokener))
		r.Post("/users/{userID}/friends", handlers.NewFriendshipAddHandler(userService, tokener))
		r.Get("/users/{userID}/friends/common/{otherID}", handlers.NewCommonFriendsHandler(userService, tokener))
		r.Get("/users/{userID}/connections/{targetID}", handlers.NewConnectionListHandler(userService, tokener))

		r.Post("/wallets", handlers.NewWalletCreateHandler(walletService, tokener))
		r.Get("/wallets/{walletID}", handlers.NewWalletGetHandler(walletService, tokener))
		r.Post("/wallets/{walletID}/contribute", handlers.NewWalletContributeHandler(walletService, tokener))
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(swaggerURL),
	))

	return r
}

// run initializes the logger, storage, Redis, Kafka, and HTTP server. It
// sets up routes, applies middleware, and handles graceful shutdown.
func run(ctx context.Context, cfg config) error {
	if err := logger.Initialize(cfg.logLevel); err != nil {
		fmt.Println("failed to initialize logger:", err)
		return err
	}
	defer logger.Sync()
	logger.Log.Infof("Logger initialized with level %s", cfg.logLevel)

	var (
		userReadRepo    services.UserReader
		userWriteRepo   services.UserWriter
		walletReadRepo  services.WalletReader
		walletWriteRepo services.WalletWriter
		accountReadRepo services.AccountReader
		accountWrite    services.AccountWriter
		txWare          func(http.Handler) http.Handler
	)

	switch cfg.storage {
	case "memory":
		logger.Log.Info("Using in-memory storage")
		memUsers := repositories.NewMemoryUserRepository()
		memWallets := repositories.NewMemoryWalletRepository()
		memAccounts := repositories.NewMemoryAccountRepository()
		userReadRepo, userWriteRepo = memUsers, memUsers
		walletReadRepo, walletWriteRepo = memWallets, memWallets
		accountReadRepo, accountWrite = memAccounts, memAccounts
	default:
		dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
			cfg.pgUser, cfg.pgPassword, cfg.pgHost, cfg.pgPort, cfg.pgDB)
		logger.Log.Infof("Connecting to PostgreSQL: %s:%d/%s", cfg.pgHost, cfg.pgPort, cfg.pgDB)

		db, err := sqlx.ConnectContext(ctx, "pgx", dsn)
		if err != nil {
			logger.Log.Fatal("PostgreSQL connection error:", err)
		}
		defer db.Close()
		db.SetMaxOpenConns(cfg.pgMaxOpenConns)
		db.SetMaxIdleConns(cfg.pgMaxIdleConns)
		if err := db.PingContext(ctx); err != nil {
			logger.Log.Fatal("PostgreSQL ping failed:", err)
		}

		userReadRepo = repositories.NewUserReadRepository(db)
		userWriteRepo = repositories.NewUserWriteRepository(db, middlewares.GetTxFromContext)
		walletReadRepo = repositories.NewWalletReadRepository(db)
		walletWriteRepo = repositories.NewWalletWriteRepository(db, middlewares.GetTxFromContext)
		accountReadRepo = repositories.NewAccountReadRepository(db)
		accountWrite = repositories.NewAccountWriteRepository(db, middlewares.GetTxFromContext)

		// Write repositories pick the transaction up from the request context,
		// so mutating routes must run inside TxMiddleware.
		txWare = middlewares.TxMiddleware(db)
	}

	// Connect to Redis
	var connectionCache services.ConnectionCache
	if cfg.redisEnabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:         fmt.Sprintf("%s:%d", cfg.redisHost, cfg.redisPort),
			Password:     cfg.redisPassword,
			DB:           cfg.redisDB,
			PoolSize:     cfg.redisPoolSize,
			MinIdleConns: cfg.redisMinIdleConns,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Log.Fatal("Redis connection error:", err)
		}
		defer rdb.Close()
		connectionCache = repositories.NewConnectionCacheRepository(rdb, time.Duration(cfg.cacheTTLSecond)*time.Second)
	}

	// Connect to Kafka
	var kafkaWriter services.KafkaWriter
	if cfg.kafkaEnabled {
		w := &kafka.Writer{
			Addr:     kafka.TCP(cfg.kafkaBrokers),
			Topic:    cfg.kafkaTopic,
			Balancer: &kafka.LeastBytes{},
		}
		defer w.Close()
		kafkaWriter = w
	}

	// Initialize JWT service
	tokener := appjwt.New(
		appjwt.WithSecretKey(cfg.jwtSecretKey),
		appjwt.WithExpiration(time.Duration(cfg.jwtExpSecond)*time.Second),
	)

	// Initialize services
	authService := services.NewAuthService(accountReadRepo, accountWrite, userWriteRepo, tokener)
	userService := services.NewUserService(userReadRepo, userWriteRepo, connectionCache)
	walletService := services.NewWalletService(walletReadRepo, walletWriteRepo, userReadRepo, kafkaWriter)

	// Setup router
	r := newRouter(authService, userService, walletService, tokener, txWare,
		fmt.Sprintf("http://%s:%s/swagger/doc.json", cfg.appHost, cfg.appPort))

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
