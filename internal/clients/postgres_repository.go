package clients

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// clientsDB defines the database interface needed by PostgresRepository
type clientsDB interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// PostgresRepository stores clients in the relational database.
type PostgresRepository struct {
	db clientsDB
}

// NewPostgresRepository initializes a repo backed by pgxpool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	if pool == nil {
		panic("clients: pgx pool required")
	}
	return &PostgresRepository{db: pool}
}

// NewPostgresRepositoryWithDB allows injecting a mock database for testing.
func NewPostgresRepositoryWithDB(db clientsDB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const selectColumns = `id, username, COALESCE(domain, ''), email, calendly_link, smartlead_api_key, created_at, updated_at`

// FindByUsername fetches the client owning the given username.
func (r *PostgresRepository) FindByUsername(ctx context.Context, username string) (*Client, error) {
	query := `SELECT ` + selectColumns + ` FROM clients WHERE username = $1`
	return r.scanOne(r.db.QueryRow(ctx, query, username))
}

// FindByDomain fetches the client owning the given custom domain.
func (r *PostgresRepository) FindByDomain(ctx context.Context, domain string) (*Client, error) {
	query := `SELECT ` + selectColumns + ` FROM clients WHERE domain = $1`
	return r.scanOne(r.db.QueryRow(ctx, query, domain))
}

// Insert creates a new row. Empty domains are stored as NULL so the unique
// index only applies to real custom domains.
func (r *PostgresRepository) Insert(ctx context.Context, req *UpsertClientRequest) (*Client, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	id := uuid.New()
	query := `
		INSERT INTO clients (id, username, domain, email, calendly_link, smartlead_api_key)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6)
		RETURNING created_at, updated_at
	`
	var createdAt, updatedAt time.Time
	if err := r.db.QueryRow(ctx, query,
		id,
		req.Username,
		req.Domain,
		req.Email,
		req.CalendlyLink,
		req.SmartLeadAPIKey,
	).Scan(&createdAt, &updatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrDuplicateClient
		}
		return nil, fmt.Errorf("clients: insert failed: %w", err)
	}

	return &Client{
		ID:              id.String(),
		Username:        req.Username,
		Domain:          req.Domain,
		Email:           req.Email,
		CalendlyLink:    req.CalendlyLink,
		SmartLeadAPIKey: req.SmartLeadAPIKey,
		CreatedAt:       createdAt,
		UpdatedAt:       updatedAt,
	}, nil
}

// UpdateByEmail updates the row keyed by email and reports rows affected.
func (r *PostgresRepository) UpdateByEmail(ctx context.Context, req *UpsertClientRequest) (int64, error) {
	if err := req.Validate(); err != nil {
		return 0, err
	}

	query := `
		UPDATE clients
		SET username = $1, domain = NULLIF($2, ''), calendly_link = $3, smartlead_api_key = $4, updated_at = NOW()
		WHERE email = $5
	`
	tag, err := r.db.Exec(ctx, query,
		req.Username,
		req.Domain,
		req.CalendlyLink,
		req.SmartLeadAPIKey,
		req.Email,
	)
	if err != nil {
		return 0, fmt.Errorf("clients: update failed: %w", err)
	}
	return tag.RowsAffected(), nil
}

// DeleteByEmail removes the row keyed by email and reports rows affected.
func (r *PostgresRepository) DeleteByEmail(ctx context.Context, email string) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM clients WHERE email = $1`, email)
	if err != nil {
		return 0, fmt.Errorf("clients: delete failed: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *PostgresRepository) scanOne(row pgx.Row) (*Client, error) {
	var c Client
	if err := row.Scan(
		&c.ID,
		&c.Username,
		&c.Domain,
		&c.Email,
		&c.CalendlyLink,
		&c.SmartLeadAPIKey,
		&c.CreatedAt,
		&c.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("clients: select failed: %w", err)
	}
	return &c, nil
}
