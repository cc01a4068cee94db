// Package envelope implements the Envelope repository using PostgreSQL.
// Every status change is a guarded UPDATE, so concurrent callers racing on
// the same envelope see exactly one winner.
package envelope

import (
	"context"
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
	table  = "envelopes"
	entity = "envelope"
)

// columns is the SELECT / RETURNING list scanned by scanEnvelope.
const columns = `company_id, request_id, title, recipient_name, recipient_email, pdf_url, template_path,
	status, fields, field_values, access_token_hash, token_rotated_at, seal_claim, seal_claimed_at,
	signed_pdf_url, storage_path, signed_at, created_by, created_at, updated_at`

// Repo provides envelope persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new envelope repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a new envelope and returns it with database timestamps.
// Returns domain.ErrAlreadyExists if the key is taken.
func (r *Repo) Create(ctx context.Context, e *domain.Envelope) (*domain.Envelope, error) {
	fieldsJSON, err := marshalFields(e.Fields)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", entity, e.Key(), err)
	}

	b := postgres.Builder.Insert(table).
		Columns("company_id", "request_id", "title", "recipient_name", "recipient_email",
			"pdf_url", "template_path", "status", "fields", "access_token_hash", "created_by").
		Values(e.CompanyID, e.RequestID, e.Title, e.RecipientName, e.RecipientEmail,
			e.PDFURL, nullString(e.TemplatePath), string(e.Status), fieldsJSON, e.AccessTokenHash, e.CreatedBy).
		Suffix("RETURNING " + columns)

	out, err := scanEnvelope(postgres.QueryRow(ctx, postgres.QuerierFromCtx(ctx, r.pool), b))
	if err != nil {
		return nil, postgres.MapError(err, entity, e.Key().String())
	}
	return out, nil
}

// TransitionStatus moves the envelope to `to` if its current status is one
// of `from`. Every from -> to pair must be an edge of the state machine,
// otherwise domain.ErrValidation is returned without touching the row.
// Returns domain.ErrConflict when the guard does not hold.
func (r *Repo) TransitionStatus(ctx context.Context, key domain.EnvelopeKey, from []domain.EnvelopeStatus, to domain.EnvelopeStatus) (*domain.Envelope, error) {
	if len(from) == 0 {
		return nil, fmt.Errorf("transition to %s: no source status: %w", to, domain.ErrValidation)
	}
	for _, f := range from {
		if !f.CanTransitionTo(to) {
			return nil, fmt.Errorf("transition %s -> %s: %w", f, to, domain.ErrValidation)
		}
	}

	b := postgres.Builder.Update(table).
		Set("status", string(to)).
		Set("updated_at", sq.Expr("now()")).
		Where(keyEq(key)).
		Where(sq.Eq{"status": statusStrings(from)}).
		Suffix("RETURNING " + columns)

	return r.guardedUpdate(ctx, key, b)
}

// UpdateAccessToken replaces the stored token hash. Allowed only while the
// envelope is draft or sent.
func (r *Repo) UpdateAccessToken(ctx context.Context, key domain.EnvelopeKey, hash string, at time.Time) (*domain.Envelope, error) {
	b := postgres.Builder.Update(table).
		Set("access_token_hash", hash).
		Set("token_rotated_at", at).
		Set("updated_at", sq.Expr("now()")).
		Where(keyEq(key)).
		Where(sq.Eq{"status": []string{string(domain.EnvelopeStatusDraft), string(domain.EnvelopeStatusSent)}}).
		Suffix("RETURNING " + columns)

	return r.guardedUpdate(ctx, key, b)
}

// ClaimSeal takes the single sealing slot: sent -> pending_seal, or takes
// over a pending_seal claim older than leaseCutoff. tokenHash must still be
// the envelope's access token hash. Returns domain.ErrConflict if another
// claim is live, the envelope is signed or the token was rotated.
func (r *Repo) ClaimSeal(ctx context.Context, key domain.EnvelopeKey, tokenHash string, claim uuid.UUID, now, leaseCutoff time.Time) (*domain.Envelope, error) {
	b := postgres.Builder.Update(table).
		Set("status", string(domain.EnvelopeStatusPendingSeal)).
		Set("seal_claim", claim).
		Set("seal_claimed_at", now).
		Set("updated_at", sq.Expr("now()")).
		Where(keyEq(key)).
		Where(sq.Eq{"access_token_hash": tokenHash}).
		Where(sq.Or{
			sq.Eq{"status": string(domain.EnvelopeStatusSent)},
			sq.And{
				sq.Eq{"status": string(domain.EnvelopeStatusPendingSeal)},
				sq.Lt{"seal_claimed_at": leaseCutoff},
			},
		}).
		Suffix("RETURNING " + columns)

	return r.guardedUpdate(ctx, key, b)
}

// ReleaseSeal returns a claimed envelope to sent. Only the holder of claim
// may release it; otherwise domain.ErrConflict.
func (r *Repo) ReleaseSeal(ctx context.Context, key domain.EnvelopeKey, claim uuid.UUID) error {
	b := postgres.Builder.Update(table).
		Set("status", string(domain.EnvelopeStatusSent)).
		Set("seal_claim", nil).
		Set("seal_claimed_at", nil).
		Set("updated_at", sq.Expr("now()")).
		Where(keyEq(key)).
		Where(sq.Eq{"status": string(domain.EnvelopeStatusPendingSeal), "seal_claim": claim}).
		Suffix("RETURNING " + columns)

	_, err := r.guardedUpdate(ctx, key, b)
	return err
}

// CompleteSeal finishes sealing: pending_seal -> signed with values, artifact
// URL, storage path and signing time written by the same statement.
// Returns domain.ErrConflict if claim no longer holds the slot.
func (r *Repo) CompleteSeal(ctx context.Context, key domain.EnvelopeKey, claim uuid.UUID, values domain.FieldValues, signedURL, storagePath string, signedAt time.Time) (*domain.Envelope, error) {
	valuesJSON, err := marshalValues(values)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", entity, key, err)
	}

	b := postgres.Builder.Update(table).
		Set("status", string(domain.EnvelopeStatusSigned)).
		Set("field_values", valuesJSON).
		Set("signed_pdf_url", signedURL).
		Set("storage_path", storagePath).
		Set("signed_at", signedAt).
		Set("seal_claim", nil).
		Set("seal_claimed_at", nil).
		Set("updated_at", sq.Expr("now()")).
		Where(keyEq(key)).
		Where(sq.Eq{"status": string(domain.EnvelopeStatusPendingSeal), "seal_claim": claim}).
		Suffix("RETURNING " + columns)

	return r.guardedUpdate(ctx, key, b)
}

// ReleaseStaleSeals resets every pending_seal claim taken before cutoff and
// returns the affected keys.
func (r *Repo) ReleaseStaleSeals(ctx context.Context, cutoff time.Time) ([]domain.EnvelopeKey, error) {
	b := postgres.Builder.Update(table).
		Set("status", string(domain.EnvelopeStatusSent)).
		Set("seal_claim", nil).
		Set("seal_claimed_at", nil).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"status": string(domain.EnvelopeStatusPendingSeal)}).
		Where(sq.Lt{"seal_claimed_at": cutoff}).
		Suffix("RETURNING company_id, request_id")

	rows, err := postgres.Query(ctx, postgres.QuerierFromCtx(ctx, r.pool), b)
	if err != nil {
		return nil, fmt.Errorf("release stale seals: %w", err)
	}

	keys, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.EnvelopeKey, error) {
		var k domain.EnvelopeKey
		err := row.Scan(&k.CompanyID, &k.RequestID)
		return k, err
	})
	if err != nil {
		return nil, fmt.Errorf("release stale seals: %w", err)
	}
	return keys, nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByKey returns the envelope or domain.ErrNotFound.
func (r *Repo) GetByKey(ctx context.Context, key domain.EnvelopeKey) (*domain.Envelope, error) {
	b := postgres.Builder.Select(columns).From(table).Where(keyEq(key))

	e, err := scanEnvelope(postgres.QueryRow(ctx, postgres.QuerierFromCtx(ctx, r.pool), b))
	if err != nil {
		return nil, postgres.MapError(err, entity, key.String())
	}
	return e, nil
}

// ListByCompany returns a page of the company's envelopes, newest first.
func (r *Repo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]domain.Envelope, error) {
	b := postgres.Builder.Select(columns).From(table).
		Where(sq.Eq{"company_id": companyID}).
		OrderBy("created_at DESC", "request_id DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset))

	rows, err := postgres.Query(ctx, postgres.QuerierFromCtx(ctx, r.pool), b)
	if err != nil {
		return nil, fmt.Errorf("list envelopes for %s: %w", companyID, err)
	}

	envelopes, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Envelope, error) {
		e, err := scanEnvelope(row)
		if err != nil {
			return domain.Envelope{}, err
		}
		return *e, nil
	})
	if err != nil {
		return nil, fmt.Errorf("list envelopes for %s: %w", companyID, err)
	}
	return envelopes, nil
}

// CountByCompany returns the number of envelopes owned by the company.
func (r *Repo) CountByCompany(ctx context.Context, companyID string) (int, error) {
	b := postgres.Builder.Select("count(*)").From(table).Where(sq.Eq{"company_id": companyID})

	var n int
	if err := postgres.QueryRow(ctx, postgres.QuerierFromCtx(ctx, r.pool), b).Scan(&n); err != nil {
		return 0, fmt.Errorf("count envelopes for %s: %w", companyID, err)
	}
	return n, nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// guardedUpdate runs a conditional UPDATE ... RETURNING. When no row
// matches it tells a missing envelope (ErrNotFound) from a failed guard
// (ErrConflict).
func (r *Repo) guardedUpdate(ctx context.Context, key domain.EnvelopeKey, b sq.UpdateBuilder) (*domain.Envelope, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	e, err := scanEnvelope(postgres.QueryRow(ctx, q, b))
	if err == nil {
		return e, nil
	}
	if mapped := postgres.MapError(err, entity, key.String()); !isNotFound(mapped) {
		return nil, mapped
	}

	exists, err := r.exists(ctx, q, key)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%s %s: %w", entity, key, domain.ErrNotFound)
	}
	return nil, fmt.Errorf("%s %s: %w", entity, key, domain.ErrConflict)
}

func (r *Repo) exists(ctx context.Context, q postgres.Querier, key domain.EnvelopeKey) (bool, error) {
	b := postgres.Builder.Select("1").From(table).Where(keyEq(key)).Prefix("SELECT EXISTS (").Suffix(")")

	var ok bool
	if err := postgres.QueryRow(ctx, q, b).Scan(&ok); err != nil {
		return false, postgres.MapError(err, entity, key.String())
	}
	return ok, nil
}

func keyEq(key domain.EnvelopeKey) sq.Eq {
	return sq.Eq{"company_id": key.CompanyID, "request_id": key.RequestID}
}

func statusStrings(ss []domain.EnvelopeStatus) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = string(s)
	}
	return out
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
