// Command release-seals returns envelopes stuck in pending_seal to sent
// once their claim is older than the seal lease. Submissions normally
// release their own claim; this covers processes that died mid-seal.
// It is intended to be invoked by an external cron job.
//
// Flags:
//
//	--older-than  claim age threshold (default: signing.seal_lease)
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/signroom-backend/internal/adapter/postgres"
	"github.com/heartmarshall/signroom-backend/internal/adapter/postgres/audit"
	"github.com/heartmarshall/signroom-backend/internal/adapter/postgres/envelope"
	"github.com/heartmarshall/signroom-backend/internal/app"
	"github.com/heartmarshall/signroom-backend/internal/config"
	"github.com/heartmarshall/signroom-backend/internal/domain"
)

func main() {
	olderThan := flag.Duration("older-than", 0, "claim age threshold (default: signing.seal_lease)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	age := cfg.Signing.SealLease
	if *olderThan > 0 {
		age = *olderThan
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	txm := postgres.NewTxManager(pool)
	envelopes := envelope.New(pool)
	events := audit.New(pool)
	cutoff := time.Now().Add(-age)

	var released []domain.EnvelopeKey
	err = txm.RunInTx(ctx, func(ctx context.Context) error {
		keys, err := envelopes.ReleaseStaleSeals(ctx, cutoff)
		if err != nil {
			return err
		}
		for _, k := range keys {
			if err := events.LogEvent(ctx, domain.EnvelopeEvent{
				CompanyID: k.CompanyID,
				RequestID: k.RequestID,
				Event:     domain.EnvelopeEventSealReleased,
				Actor:     "system:release-seals",
				Details:   map[string]any{"cutoff": cutoff.UTC().Format(time.RFC3339)},
			}); err != nil {
				return err
			}
		}
		released = keys
		return nil
	})
	if err != nil {
		logger.Error("release stale seals failed",
			slog.String("error", err.Error()),
			slog.Time("cutoff", cutoff),
		)
		os.Exit(1)
	}

	for _, k := range released {
		logger.Info("seal claim released", slog.String("company_id", k.CompanyID), slog.String("request_id", k.RequestID))
	}
	logger.Info("release stale seals completed",
		slog.Int("released", len(released)),
		slog.Time("cutoff", cutoff),
	)
}
