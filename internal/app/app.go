package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/heartmarshall/signroom-backend/internal/adapter/blob/localfs"
	"github.com/heartmarshall/signroom-backend/internal/adapter/blob/s3store"
	"github.com/heartmarshall/signroom-backend/internal/adapter/postgres"
	auditrepo "github.com/heartmarshall/signroom-backend/internal/adapter/postgres/audit"
	enveloperepo "github.com/heartmarshall/signroom-backend/internal/adapter/postgres/envelope"
	"github.com/heartmarshall/signroom-backend/internal/adapter/provider/template"
	"github.com/heartmarshall/signroom-backend/internal/auth"
	"github.com/heartmarshall/signroom-backend/internal/config"
	"github.com/heartmarshall/signroom-backend/internal/seal"
	"github.com/heartmarshall/signroom-backend/internal/service/envelope"
	"github.com/heartmarshall/signroom-backend/internal/service/signing"
	"github.com/heartmarshall/signroom-backend/internal/transport/middleware"
	"github.com/heartmarshall/signroom-backend/internal/transport/rest"
	"github.com/heartmarshall/signroom-backend/migrations"
)

// blobBackend is what the services and health checks need from a store.
type blobBackend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte, contentType string) error
	URL(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
}

// Run is the application entry point. It loads configuration, connects to
// PostgreSQL, wires the services and serves HTTP until ctx is cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)
	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("storage_backend", cfg.Storage.Backend),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()

	if cfg.Database.MigrateOnStart {
		if err := postgres.Migrate(ctx, pool, migrations.FS, logger); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	blobs, files, err := newBlobBackend(ctx, cfg)
	if err != nil {
		return err
	}

	txm := postgres.NewTxManager(pool)
	envelopes := enveloperepo.New(pool)
	audit := auditrepo.New(pool)

	signingSvc := signing.NewService(
		logger, envelopes, audit, blobs,
		template.NewFetcher(logger, cfg.Storage.TemplateTimeout, cfg.Storage.MaxTemplateSize),
		seal.NewSealer(logger, cfg.Signing.LegacyRenderWidth),
		txm,
		signing.Config{
			SealLease:         cfg.Signing.SealLease,
			MaxSignatureBytes: cfg.Signing.MaxSignatureBytes,
			VerifyBaseURL:     cfg.Server.PublicBaseURL,
		},
	)
	envelopeSvc := envelope.NewService(logger, envelopes, audit, blobs, txm, envelope.Config{
		AccessTokenBytes: cfg.Signing.AccessTokenBytes,
		LinkBaseURL:      cfg.Signing.LinkBaseURL,
	})

	handlers := Handlers{
		Signing:   rest.NewSigningHandler(signingSvc, logger),
		Envelopes: rest.NewEnvelopeHandler(envelopeSvc, logger),
		Health: rest.NewHealthHandler(BuildVersion(), map[string]rest.Checker{
			"database": rest.CheckerFunc(pool.Ping),
			"storage":  blobs,
		}),
	}
	if files != nil {
		handlers.Files = rest.NewFilesHandler(files.FS())
	}

	rl := middleware.NewRateLimiter(time.Minute)
	defer rl.Stop()

	jwt := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)

	srv := &http.Server{
		Addr:              net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:           NewRouter(cfg, logger, handlers, jwt, rl),
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelWarn),
	}

	return serve(ctx, srv, cfg.Server.ShutdownTimeout, logger)
}

// serve runs srv until ctx is cancelled, then drains in-flight requests for
// at most shutdownTimeout.
func serve(ctx context.Context, srv *http.Server, shutdownTimeout time.Duration, logger *slog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	return <-errCh
}

// newBlobBackend opens the configured store. The local store is also
// returned on its own so the router can serve its files.
func newBlobBackend(ctx context.Context, cfg *config.Config) (blobBackend, *localfs.Store, error) {
	switch cfg.Storage.Backend {
	case config.StorageBackendS3:
		s, err := s3store.New(ctx, cfg.Storage)
		if err != nil {
			return nil, nil, fmt.Errorf("s3 store: %w", err)
		}
		return s, nil, nil
	default:
		s, err := localfs.New(cfg.Storage.LocalDir, cfg.Server.PublicBaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("local store: %w", err)
		}
		return s, s, nil
	}
}
