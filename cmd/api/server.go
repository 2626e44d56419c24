package main

import (
	"context"
	"crypto/tls"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	mw "github.com/5w1tchy/portfolio-api/internal/api/middlewares"
	"github.com/5w1tchy/portfolio-api/internal/api/router"
	"github.com/5w1tchy/portfolio-api/internal/auth"
	"github.com/5w1tchy/portfolio-api/internal/config"
	"github.com/5w1tchy/portfolio-api/internal/logging"
	"github.com/5w1tchy/portfolio-api/internal/maintenance"
	"github.com/5w1tchy/portfolio-api/internal/repository/redisconnect"
	"github.com/5w1tchy/portfolio-api/internal/repository/sqlconnect"
	jwtutil "github.com/5w1tchy/portfolio-api/internal/security/jwt"
	"github.com/5w1tchy/portfolio-api/internal/security/password"
	"github.com/5w1tchy/portfolio-api/internal/storage"
	s3store "github.com/5w1tchy/portfolio-api/internal/storage/s3"
	"github.com/5w1tchy/portfolio-api/internal/store/books"
	"github.com/5w1tchy/portfolio-api/internal/store/contacts"
	"github.com/5w1tchy/portfolio-api/internal/store/contents"
	"github.com/5w1tchy/portfolio-api/internal/validate"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	_ = godotenv.Load("../../.env")
	logging.Setup()

	cfg := config.Load()
	if err := validate.Env(cfg); err != nil {
		logging.Fatal("invalid configuration", "error", err)
	}
	for _, w := range validate.HardeningWarnings(cfg) {
		slog.Warn("[config] " + w)
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	db, err := sqlconnect.ConnectDB(ctx, cfg.DatabaseURL)
	if err != nil {
		logging.Fatal("database connection failed", "error", err)
	}
	defer db.Close()
	slog.Info("connected to postgres")

	rdb, err := redisconnect.Connect(ctx, cfg)
	if err != nil {
		logging.Fatal("redis connection failed", "error", err)
	}
	if rdb != nil {
		defer rdb.Close()
		slog.Info("connected to redis")
	}

	var images storage.ImageStore
	if s3cfg := s3store.ConfigFromEnv(); s3cfg.Enabled() {
		client, err := s3store.New(ctx, s3cfg)
		if err != nil {
			logging.Fatal("object storage setup failed", "error", err)
		}
		images = client
		slog.Info("image uploads enabled", "bucket", s3cfg.Bucket)
	} else {
		slog.Warn("[config] AWS_BUCKET/credentials not set: image uploads disabled")
	}

	maintenance.StartInboxRetention(ctx, db, maintenance.RetentionConfig{
		KeepDays: cfg.ContactRetentionDays,
		At:       cfg.ContactRetentionAt,
		TZ:       cfg.ContactRetentionTZ,
	})

	hasher := password.NewHasher(password.ParamsFromEnv())
	admins := auth.NewSQLStore(db)
	sessions := auth.NewSessions(jwtutil.NewManager(jwtutil.ConfigFromEnv()), rdb)

	api := router.Router(router.Deps{
		Config:   cfg,
		DB:       db,
		RDB:      rdb,
		Contents: contents.New(db),
		Books:    books.New(db),
		Contacts: contacts.New(db),
		Verifier: auth.NewPasswordVerifier(admins, hasher),
		Sessions: sessions,
		Images:   images,
	})

	tb := mw.NewRedisTokenBucket(rdb, cfg.RateLimitRPS, cfg.RateLimitBurst, mw.PerIPKey("tb"))

	handler := mw.Chain(api,
		mw.RequestID,
		mw.Recovery,
		mw.RequestLogger,
		mw.Cors(cfg.CORSOrigins),
		mw.SecurityHeaders,
		mw.BodySizeLimit(cfg.MaxBodySize),
		mw.Compression,
		tb.Middleware,
	)

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       2 * time.Minute,
		TLSConfig:         &tls.Config{MinVersion: tls.VersionTLS12},
	}

	go func() {
		slog.Info("server listening", "addr", server.Addr, "tls", cfg.TLSEnabled(), "admin_auth", cfg.AdminAuth)
		var err error
		if cfg.TLSEnabled() {
			err = server.ListenAndServeTLS(cfg.TLSCert, cfg.TLSKey)
		} else {
			err = server.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
	slog.Info("server stopped")
}
