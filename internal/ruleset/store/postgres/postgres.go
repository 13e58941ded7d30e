// Package postgres persists rule set versions in PostgreSQL.
//
// Every mutation is a single statement, so the lifecycle guarantees in
// ruleset.Store (atomic publish on approve, draft-only patches, per-pair
// version numbering) hold without explicit transactions.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"visapath/internal/ruleset"
	"visapath/pkg/domain"
	"visapath/pkg/platform/sentinel"
)

// Schema is the table backing the store. The unique constraint enforces the
// per-pair version numbering invariant at the database level.
const Schema = `
CREATE TABLE IF NOT EXISTS rule_set_versions (
    id           UUID PRIMARY KEY,
    country_code TEXT NOT NULL,
    visa_type    TEXT NOT NULL,
    version      INT NOT NULL,
    approved     BOOLEAN NOT NULL DEFAULT FALSE,
    documents    JSONB NOT NULL,
    financial    JSONB,
    processing   JSONB,
    fees         JSONB,
    created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
    approved_at  TIMESTAMPTZ,
    UNIQUE (country_code, visa_type, version)
);`

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Open connects to PostgreSQL and verifies the connection.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

func (s *Store) ActiveVersion(ctx context.Context, country domain.CountryCode, visaType domain.VisaType) (*ruleset.Version, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, country_code, visa_type, version, approved, documents,
		       financial, processing, fees, created_at, approved_at
		FROM rule_set_versions
		WHERE country_code = $1 AND visa_type = $2 AND approved = TRUE
		ORDER BY version DESC
		LIMIT 1`,
		country.String(), visaType.String(),
	)
	return scanVersion(row)
}

func (s *Store) FindByID(ctx context.Context, id domain.RuleSetID) (*ruleset.Version, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, country_code, visa_type, version, approved, documents,
		       financial, processing, fees, created_at, approved_at
		FROM rule_set_versions
		WHERE id = $1`,
		id.String(),
	)
	return scanVersion(row)
}

func (s *Store) CreateDraft(ctx context.Context, draft *ruleset.Version) (*ruleset.Version, error) {
	documents, err := json.Marshal(draft.Documents)
	if err != nil {
		return nil, fmt.Errorf("marshal documents: %w", err)
	}

	// GREATEST keeps the condition-schema invariant for brand new pairs: a
	// first draft that already carries conditions starts at version 2.
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO rule_set_versions
			(id, country_code, visa_type, version, approved, documents, financial, processing, fees)
		SELECT $1, $2, $3,
		       GREATEST(COALESCE(MAX(version), 0) + 1, CASE WHEN $4 THEN 2 ELSE 1 END),
		       FALSE, $5, $6, $7, $8
		FROM rule_set_versions
		WHERE country_code = $2 AND visa_type = $3
		RETURNING id, country_code, visa_type, version, approved, documents,
		          financial, processing, fees, created_at, approved_at`,
		draft.ID.String(), draft.CountryCode.String(), draft.VisaType.String(),
		ruleset.AnyConditioned(draft.Documents), documents,
		nullableJSON(draft.Financial), nullableJSON(draft.Processing), nullableJSON(draft.Fees),
	)
	return scanVersion(row)
}

func (s *Store) Approve(ctx context.Context, id domain.RuleSetID) (*ruleset.Version, error) {
	row := s.db.QueryRowContext(ctx, `
		UPDATE rule_set_versions
		SET approved = TRUE, approved_at = now()
		WHERE id = $1 AND approved = FALSE
		RETURNING id, country_code, visa_type, version, approved, documents,
		          financial, processing, fees, created_at, approved_at`,
		id.String(),
	)
	version, err := scanVersion(row)
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, s.classifyMiss(ctx, id, sentinel.ErrAlreadyApproved)
	}
	return version, err
}

func (s *Store) Patch(ctx context.Context, id domain.RuleSetID, documents []ruleset.Document) (*ruleset.Version, error) {
	encoded, err := json.Marshal(documents)
	if err != nil {
		return nil, fmt.Errorf("marshal documents: %w", err)
	}

	// The conditioned bump out of version 1 lands on the pair's next free
	// number so it can never collide with a sibling draft.
	row := s.db.QueryRowContext(ctx, `
		UPDATE rule_set_versions
		SET documents = $2,
		    version = CASE
		        WHEN version = 1 AND $3 THEN (
		            SELECT GREATEST(COALESCE(MAX(o.version), 0) + 1, 2)
		            FROM rule_set_versions o
		            WHERE o.country_code = rule_set_versions.country_code
		              AND o.visa_type = rule_set_versions.visa_type
		              AND o.id <> rule_set_versions.id
		        )
		        ELSE version
		    END
		WHERE id = $1 AND approved = FALSE
		RETURNING id, country_code, visa_type, version, approved, documents,
		          financial, processing, fees, created_at, approved_at`,
		id.String(), encoded, ruleset.AnyConditioned(documents),
	)
	version, err := scanVersion(row)
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, s.classifyMiss(ctx, id, sentinel.ErrImmutableVersion)
	}
	return version, err
}

// classifyMiss distinguishes "id unknown" from "id exists but is approved"
// after a guarded mutation touched no rows.
func (s *Store) classifyMiss(ctx context.Context, id domain.RuleSetID, whenApproved error) error {
	var approved bool
	err := s.db.QueryRowContext(ctx,
		`SELECT approved FROM rule_set_versions WHERE id = $1`, id.String(),
	).Scan(&approved)
	if errors.Is(err, sql.ErrNoRows) {
		return sentinel.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("classify mutation miss: %w", err)
	}
	if approved {
		return whenApproved
	}
	return sentinel.ErrConflict
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanVersion(row rowScanner) (*ruleset.Version, error) {
	var (
		idText     string
		country    string
		visaType   string
		version    ruleset.Version
		documents  []byte
		financial  sql.Null[[]byte]
		processing sql.Null[[]byte]
		fees       sql.Null[[]byte]
		approvedAt sql.NullTime
	)
	err := row.Scan(
		&idText, &country, &visaType, &version.Number, &version.Approved,
		&documents, &financial, &processing, &fees,
		&version.CreatedAt, &approvedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		// A unique violation here means a concurrent writer took the
		// (country_code, visa_type, version) slot first.
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return nil, sentinel.ErrConflict
		}
		return nil, fmt.Errorf("scan rule set version: %w", err)
	}

	id, err := domain.ParseRuleSetID(idText)
	if err != nil {
		return nil, fmt.Errorf("stored rule set id %q: %w", idText, err)
	}
	version.ID = id
	version.CountryCode = domain.CountryCode(country)
	version.VisaType = domain.VisaType(visaType)
	if err := json.Unmarshal(documents, &version.Documents); err != nil {
		return nil, fmt.Errorf("decode documents for %s: %w", idText, err)
	}
	if financial.Valid {
		version.Financial = json.RawMessage(financial.V)
	}
	if processing.Valid {
		version.Processing = json.RawMessage(processing.V)
	}
	if fees.Valid {
		version.Fees = json.RawMessage(fees.V)
	}
	if approvedAt.Valid {
		at := approvedAt.Time
		version.ApprovedAt = &at
	}
	return &version, nil
}

func nullableJSON(raw json.RawMessage) any {
	if len(raw) == 0 {
		return nil
	}
	return []byte(raw)
}
