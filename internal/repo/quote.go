// Package repo contains all database access logic for the quote builder API.
// Each resource has its own file with an interface and a Postgres implementation.
// No business logic lives here, only SQL and type mapping.
package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/tourcraft/quote-builder/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// QuoteRepo defines the persistence operations for the Quote aggregate.
// Days, allocation, and summary travel as JSONB: the aggregate is always read
// and written whole, which is what lets the service layer apply the ledger
// rules on a plain in-memory value.
type QuoteRepo interface {
	// Create inserts a new quote. The caller assigns ID and Reference; the DB
	// fills created_at and updated_at.
	Create(ctx context.Context, quote domain.Quote) (domain.Quote, error)

	// GetByID retrieves a single quote by its UUID primary key.
	// Returns domain.ErrNotFound if no quote with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Quote, error)

	// List returns quotes ordered by created_at descending, paginated.
	List(ctx context.Context, p domain.PaginationParams) ([]domain.Quote, error)

	// Update overwrites the whole aggregate and returns the updated record.
	// Returns domain.ErrNotFound if no quote with that ID exists.
	Update(ctx context.Context, quote domain.Quote) (domain.Quote, error)

	// Delete removes a quote by ID. Returns domain.ErrNotFound if it does not
	// exist. Pricing tiers cascade.
	Delete(ctx context.Context, id uuid.UUID) error
}

// pgQuoteRepo is the Postgres implementation of QuoteRepo.
type pgQuoteRepo struct {
	db db
}

// NewQuoteRepo constructs a QuoteRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewQuoteRepo(db db) QuoteRepo {
	return &pgQuoteRepo{db: db}
}

const quoteColumns = `id, reference, customer_name, customer_email, customer_phone,
	adults, children, start_date, end_date, allocation, days, summary,
	timeline_signature, status, created_at, updated_at`

func (r *pgQuoteRepo) Create(ctx context.Context, quote domain.Quote) (domain.Quote, error) {
	const q = `
		INSERT INTO quotes (id, reference, customer_name, customer_email, customer_phone,
			adults, children, start_date, end_date, allocation, days, summary,
			timeline_signature, status)
		VALUES (@id, @reference, @customer_name, @customer_email, @customer_phone,
			@adults, @children, @start_date, @end_date, @allocation, @days, @summary,
			@timeline_signature, @status)
		RETURNING ` + quoteColumns

	row := r.db.QueryRow(ctx, q, quoteArgs(quote))
	result, err := scanQuote(row)
	if err != nil {
		return domain.Quote{}, fmt.Errorf("repo.QuoteRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgQuoteRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Quote, error) {
	const q = `SELECT ` + quoteColumns + ` FROM quotes WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanQuote(row)
	if err != nil {
		return domain.Quote{}, fmt.Errorf("repo.QuoteRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgQuoteRepo) List(ctx context.Context, p domain.PaginationParams) ([]domain.Quote, error) {
	const q = `
		SELECT ` + quoteColumns + `
		FROM quotes
		ORDER BY created_at DESC, id
		LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"limit": p.Limit, "offset": p.Offset()})
	if err != nil {
		return nil, fmt.Errorf("repo.QuoteRepo.List: %w", err)
	}
	defer rows.Close()

	var quotes []domain.Quote
	for rows.Next() {
		quote, err := scanQuote(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.QuoteRepo.List: scan: %w", err)
		}
		quotes = append(quotes, quote)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.QuoteRepo.List: rows: %w", err)
	}

	return quotes, nil
}

func (r *pgQuoteRepo) Update(ctx context.Context, quote domain.Quote) (domain.Quote, error) {
	const q = `
		UPDATE quotes
		SET customer_name      = @customer_name,
		    customer_email     = @customer_email,
		    customer_phone     = @customer_phone,
		    adults             = @adults,
		    children           = @children,
		    start_date         = @start_date,
		    end_date           = @end_date,
		    allocation         = @allocation,
		    days               = @days,
		    summary            = @summary,
		    timeline_signature = @timeline_signature,
		    status             = @status,
		    updated_at         = now()
		WHERE id = @id
		RETURNING ` + quoteColumns

	row := r.db.QueryRow(ctx, q, quoteArgs(quote))
	result, err := scanQuote(row)
	if err != nil {
		return domain.Quote{}, fmt.Errorf("repo.QuoteRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgQuoteRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM quotes WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.QuoteRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.QuoteRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func quoteArgs(quote domain.Quote) pgx.NamedArgs {
	return pgx.NamedArgs{
		"id":                 quote.ID,
		"reference":          quote.Reference,
		"customer_name":      quote.CustomerName,
		"customer_email":     quote.CustomerEmail,
		"customer_phone":     quote.CustomerPhone,
		"adults":             quote.Adults,
		"children":           quote.Children,
		"start_date":         quote.StartDate,
		"end_date":           quote.EndDate,
		"allocation":         quote.Allocation,
		"days":               quote.Days,
		"summary":            quote.Summary,
		"timeline_signature": quote.TimelineSignature,
		"status":             quote.Status,
	}
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing the scan
// helpers to be reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// scanQuote maps a single database row into a domain.Quote. The JSONB
// columns (allocation, days, summary) unmarshal straight into the domain
// types through pgx's JSON codec.
func scanQuote(s scanner) (domain.Quote, error) {
	var (
		q         domain.Quote
		id        pgtype.UUID
		startDate pgtype.Date
		endDate   pgtype.Date
	)

	err := s.Scan(&id, &q.Reference, &q.CustomerName, &q.CustomerEmail, &q.CustomerPhone,
		&q.Adults, &q.Children, &startDate, &endDate, &q.Allocation, &q.Days, &q.Summary,
		&q.TimelineSignature, &q.Status, &q.CreatedAt, &q.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Quote{}, domain.ErrNotFound
		}
		return domain.Quote{}, err
	}

	q.ID = uuid.UUID(id.Bytes)
	q.StartDate = startDate.Time
	q.EndDate = endDate.Time

	return q, nil
}
