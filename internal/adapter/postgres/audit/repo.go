// Package audit implements the signing audit and envelope history
// repositories using PostgreSQL. Both tables are append-only; the schema
// rejects UPDATE and DELETE.
package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/signroom-backend/internal/adapter/postgres"
	"github.com/heartmarshall/signroom-backend/internal/domain"
)

const (
	auditColumns = `id, company_id, request_id, ip, client_ip, user_agent, client_timestamp,
	received_at, template_sha256, sealed_sha256, created_at`
	eventColumns = `id, company_id, request_id, event, actor, details, created_at`
)

// Repo provides audit persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new audit repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// CreateSigningRecord inserts the proof-of-consent record for an envelope.
// Returns domain.ErrAlreadyExists if the envelope already has one.
func (r *Repo) CreateSigningRecord(ctx context.Context, rec domain.SigningAudit) (domain.SigningAudit, error) {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}

	b := postgres.Builder.Insert("signing_audit").
		Columns("id", "company_id", "request_id", "ip", "client_ip", "user_agent", "client_timestamp",
			"received_at", "template_sha256", "sealed_sha256").
		Values(rec.ID, rec.CompanyID, rec.RequestID, rec.IP, rec.ClientIP, rec.UserAgent, rec.ClientTimestamp,
			rec.ReceivedAt, rec.TemplateSHA256, rec.SealedSHA256).
		Suffix("RETURNING " + auditColumns)

	got, err := scanSigningAudit(postgres.QueryRow(ctx, postgres.QuerierFromCtx(ctx, r.pool), b))
	if err != nil {
		return domain.SigningAudit{}, postgres.MapError(err, "signing_audit", keyString(rec.CompanyID, rec.RequestID))
	}
	return got, nil
}

// LogEvent appends an entry to the envelope's history.
func (r *Repo) LogEvent(ctx context.Context, ev domain.EnvelopeEvent) error {
	if ev.ID == uuid.Nil {
		ev.ID = uuid.New()
	}

	var details []byte
	if len(ev.Details) > 0 {
		var err error
		if details, err = json.Marshal(ev.Details); err != nil {
			return fmt.Errorf("envelope_event marshal details: %w", err)
		}
	}

	b := postgres.Builder.Insert("envelope_events").
		Columns("id", "company_id", "request_id", "event", "actor", "details").
		Values(ev.ID, ev.CompanyID, ev.RequestID, string(ev.Event), ev.Actor, details)

	if _, err := postgres.Exec(ctx, postgres.QuerierFromCtx(ctx, r.pool), b); err != nil {
		return postgres.MapError(err, "envelope_event", ev.ID.String())
	}
	return nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetSigningRecord returns the envelope's signing record or domain.ErrNotFound.
func (r *Repo) GetSigningRecord(ctx context.Context, key domain.EnvelopeKey) (domain.SigningAudit, error) {
	b := postgres.Builder.Select(auditColumns).From("signing_audit").
		Where(sq.Eq{"company_id": key.CompanyID, "request_id": key.RequestID})

	rec, err := scanSigningAudit(postgres.QueryRow(ctx, postgres.QuerierFromCtx(ctx, r.pool), b))
	if err != nil {
		return domain.SigningAudit{}, postgres.MapError(err, "signing_audit", key.String())
	}
	return rec, nil
}

// ListEvents returns the envelope's history, oldest first.
func (r *Repo) ListEvents(ctx context.Context, key domain.EnvelopeKey) ([]domain.EnvelopeEvent, error) {
	b := postgres.Builder.Select(eventColumns).From("envelope_events").
		Where(sq.Eq{"company_id": key.CompanyID, "request_id": key.RequestID}).
		OrderBy("created_at", "id")

	rows, err := postgres.Query(ctx, postgres.QuerierFromCtx(ctx, r.pool), b)
	if err != nil {
		return nil, fmt.Errorf("list envelope_events for %s: %w", key, err)
	}

	events, err := pgx.CollectRows(rows, scanEvent)
	if err != nil {
		return nil, fmt.Errorf("list envelope_events for %s: %w", key, err)
	}
	return events, nil
}

// ---------------------------------------------------------------------------
// Mapping helpers
// ---------------------------------------------------------------------------

func scanSigningAudit(row pgx.Row) (domain.SigningAudit, error) {
	var (
		rec      domain.SigningAudit
		clientTS *time.Time
	)
	err := row.Scan(&rec.ID, &rec.CompanyID, &rec.RequestID, &rec.IP, &rec.ClientIP, &rec.UserAgent, &clientTS,
		&rec.ReceivedAt, &rec.TemplateSHA256, &rec.SealedSHA256, &rec.CreatedAt)
	if err != nil {
		return domain.SigningAudit{}, err
	}
	rec.ClientTimestamp = clientTS
	return rec, nil
}

func scanEvent(row pgx.CollectableRow) (domain.EnvelopeEvent, error) {
	var (
		ev      domain.EnvelopeEvent
		event   string
		details []byte
	)
	if err := row.Scan(&ev.ID, &ev.CompanyID, &ev.RequestID, &event, &ev.Actor, &details, &ev.CreatedAt); err != nil {
		return domain.EnvelopeEvent{}, err
	}
	ev.Event = domain.EnvelopeEventType(event)

	// details: JSONB -> map[string]any
	if len(details) > 0 {
		ev.Details = make(map[string]any)
		if err := json.Unmarshal(details, &ev.Details); err != nil {
			return domain.EnvelopeEvent{}, fmt.Errorf("envelope_event %s unmarshal details: %w", ev.ID, err)
		}
	}
	return ev, nil
}

func keyString(companyID, requestID string) string {
	return domain.EnvelopeKey{CompanyID: companyID, RequestID: requestID}.String()
}
