package app

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/cradoe/safetrain/internal/cache"
	"github.com/cradoe/safetrain/internal/config"
	"github.com/cradoe/safetrain/internal/env"
	"github.com/cradoe/safetrain/internal/errHandler"
	"github.com/cradoe/safetrain/internal/file"
	"github.com/cradoe/safetrain/internal/helper"
	"github.com/cradoe/safetrain/internal/password"
	"github.com/cradoe/safetrain/internal/repository"
	"github.com/cradoe/safetrain/internal/session"
	"github.com/cradoe/safetrain/internal/smtp"
	"github.com/cradoe/safetrain/internal/stream"
	"github.com/cradoe/safetrain/internal/worker"
	"github.com/joho/godotenv"
)

// Essential services and resources are exposed to the application
// this makes it possible for methods to have access to these items and when they need them
type Application struct {
	Config       config.Config
	DB           repository.Database
	Logger       *slog.Logger
	Mailer       *smtp.Mailer
	WG           sync.WaitGroup
	errorHandler *errHandler.ErrorHandler
	helper       *helper.HelperRepository
	sessions     *session.Manager
	hasher       *password.Hasher
	redis        *cache.Cache
	memory       *cache.MemoryStore
	Publisher    stream.Publisher
	Kafka        *stream.KafkaStream
	FileUploader *file.FileUploader
}

const defaultBcryptCost = 10

// LoadConfig reads the configuration from the environment after loading .env if one exists.
func LoadConfig(logger *slog.Logger) config.Config {
	if err := godotenv.Load(); err != nil {
		logger.Warn("no .env file loaded", "error", err)
	}

	var cfg config.Config

	// Default values are provided for these items and these should strictly be values for development mode only
	// make sure no production-level value is exposed as default value here
	cfg.BaseURL = env.GetString("BASE_URL", "http://localhost:4444")
	cfg.HttpPort = env.GetInt("HTTP_PORT", 4444)
	cfg.TLS.CertFile = env.GetString("TLS_CERT_FILE", "")
	cfg.TLS.KeyFile = env.GetString("TLS_KEY_FILE", "")

	cfg.Db.Dsn = env.GetString("DB_DSN", "user:pass@localhost:5432/db")
	cfg.Db.Automigrate = env.GetBool("DB_AUTOMIGRATE", true)

	cfg.Jwt.SecretKey = env.GetString("JWT_SECRET_KEY", "ajf5nx3qmp6zquevllxocxqvyz42ypuo")

	cfg.Session.CookieName = env.GetString("SESSION_COOKIE_NAME", "safetrain_session")
	cfg.Session.TTL = env.GetDuration("SESSION_TTL", 24*time.Hour)
	cfg.Session.Secure = env.GetBool("SESSION_SECURE", false)

	cfg.Auth.BcryptCost = env.GetInt("BCRYPT_COST", defaultBcryptCost)
	cfg.Auth.LegacyPlaintextSignin = env.GetBool("AUTH_LEGACY_PLAINTEXT_SIGNIN", false)

	cfg.RateLimit.Enabled = env.GetBool("LOGIN_RATE_LIMIT_ENABLED", true)
	cfg.RateLimit.RPS = env.GetFloat("LOGIN_RATE_LIMIT_RPS", 1)
	cfg.RateLimit.Burst = env.GetInt("LOGIN_RATE_LIMIT_BURST", 5)

	cfg.Cors.AllowedOrigins = env.GetStrings("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"})

	// sessions are kept in process memory when REDIS_ADDR is empty
	cfg.Redis.Addr = env.GetString("REDIS_ADDR", "")
	cfg.Redis.DB = env.GetInt("REDIS_DB", 0)

	// server errors won't be sent via email if the NOTIFICATIONS_EMAIL wasn't set in the .env file
	cfg.Notifications.Email = env.GetString("NOTIFICATIONS_EMAIL", "")

	cfg.Smtp.Host = env.GetString("SMTP_HOST", "example.smtp.host")
	cfg.Smtp.Port = env.GetInt("SMTP_PORT", 25)
	cfg.Smtp.Username = env.GetString("SMTP_USERNAME", "example_username")
	cfg.Smtp.Password = env.GetString("SMTP_PASSWORD", "pa55word")
	cfg.Smtp.From = env.GetString("SMTP_FROM", "Safetrain <no_reply@example.org>")

	cfg.FileUploader.CloudName = env.GetString("CLOUDINARY_CLOUD_NAME", "")
	cfg.FileUploader.ApiKey = env.GetString("CLOUDINARY_API_KEY", "")
	cfg.FileUploader.ApiSecret = env.GetString("CLOUDINARY_API_SECRET", "")

	// events are dropped when KAFKA_SERVERS is empty
	cfg.KafkaServers = env.GetString("KAFKA_SERVERS", "")

	return cfg
}

func NewApplication(cfg config.Config, logger *slog.Logger) (*Application, error) {
	db, err := repository.New(cfg.Db.Dsn, cfg.Db.Automigrate)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	mailer, err := smtp.NewMailer(cfg.Smtp.Host, cfg.Smtp.Port, cfg.Smtp.Username, cfg.Smtp.Password, cfg.Smtp.From)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize mailer: %w", err)
	}

	fileUploader, err := file.New(cfg.FileUploader.CloudName, cfg.FileUploader.ApiKey, cfg.FileUploader.ApiSecret)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize file uploader: %w", err)
	}

	app := &Application{
		Config:       cfg,
		DB:           db,
		Logger:       logger,
		Mailer:       mailer,
		FileUploader: fileUploader,
		hasher:       password.NewHasher(cfg.Auth.BcryptCost),
	}

	app.errorHandler = errHandler.New(cfg.Notifications.Email, cfg.BaseURL, mailer, logger)
	app.helper = helper.New(cfg.BaseURL, &app.WG, app.errorHandler)

	var store cache.Store
	if cfg.Redis.Addr != "" {
		app.redis = cache.New(cfg.Redis.Addr, cfg.Redis.DB)

		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()

		if err := app.redis.Ping(ctx); err != nil {
			app.Close()
			return nil, fmt.Errorf("failed to reach redis: %w", err)
		}
		store = app.redis
	} else {
		logger.Warn("REDIS_ADDR is empty, sessions are kept in memory")
		app.memory = cache.NewMemoryStore()
		store = app.memory
	}

	app.sessions = session.NewManager(store, session.Options{
		CookieName: cfg.Session.CookieName,
		TTL:        cfg.Session.TTL,
		Secure:     cfg.Session.Secure,
		Secret:     cfg.Jwt.SecretKey,
		Issuer:     cfg.BaseURL,
	})

	app.Publisher = stream.NoopPublisher{}
	if cfg.KafkaServers != "" {
		app.Kafka, err = stream.New(cfg.KafkaServers, logger)
		if err != nil {
			app.Close()
			return nil, fmt.Errorf("failed to initialize kafka producer: %w", err)
		}
		app.Publisher = app.Kafka
	} else {
		logger.Warn("KAFKA_SERVERS is empty, domain events are not published")
	}

	return app, nil
}

type kycConsumer interface {
	KycSubmittedWorker(ctx context.Context) error
}

// StartWorker runs the KYC consumer until ctx is done. The returned func blocks until it has returned.
func (app *Application) StartWorker(ctx context.Context, consumer kycConsumer) (wait func()) {
	done := make(chan struct{})

	go func() {
		defer close(done)

		if err := consumer.KycSubmittedWorker(ctx); err != nil {
			app.Logger.Error("kyc worker stopped", "error", err)
		}
	}()

	return func() { <-done }
}

// Worker builds the event consumers. It returns nil when no Kafka cluster is configured.
func (app *Application) Worker() *worker.Worker {
	if app.Kafka == nil {
		return nil
	}

	return worker.New(&worker.Worker{
		KafkaStream: app.Kafka,
		DB:          app.DB,
		Mailer:      app.Mailer,
		Archiver:    app.FileUploader,
		Helper:      app.helper,
		Logger:      app.Logger,
	})
}

// Close releases the connections held by the application. Background tasks must be finished first.
func (app *Application) Close() {
	if app.Publisher != nil {
		app.Publisher.Close()
	}

	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.Logger.Error("closing redis", "error", err)
		}
	}

	if err := app.DB.Close(); err != nil {
		app.Logger.Error("closing database", "error", err)
	}
}
