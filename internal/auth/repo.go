package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jobboard/jobboard/internal/platform/db"
	"github.com/jobboard/jobboard/internal/shared"
)

// Repository defines persistence operations for accounts.
type Repository interface {
	WithTx(ctx context.Context, fn func(context.Context, Repository) error) error
	FindByEmail(ctx context.Context, email string) (*Account, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, email, passwordHash string) (*Account, error)
}

type dbtx interface {
	Exec(context.Context, string, ...any) (pgconn.CommandTag, error)
	Query(context.Context, string, ...any) (pgx.Rows, error)
	QueryRow(context.Context, string, ...any) pgx.Row
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	db   dbtx
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{db: pool, pool: pool}
}

// WithTx runs fn against a repository bound to a single transaction.
func (r *PGRepository) WithTx(ctx context.Context, fn func(context.Context, Repository) error) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(ctx, &PGRepository{db: tx, pool: r.pool})
	})
}

// FindByEmail fetches an account by its exact email.
func (r *PGRepository) FindByEmail(ctx context.Context, email string) (*Account, error) {
	var acc Account
	err := r.db.QueryRow(ctx,
		`SELECT id, email, password_hash, created_at FROM accounts WHERE email = $1`, email,
	).Scan(&acc.ID, &acc.Email, &acc.PasswordHash, &acc.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("auth: find account: %w", err)
	}
	return &acc, nil
}

// EmailExists reports whether an account already uses email.
func (r *PGRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM accounts WHERE email = $1)`, email,
	).Scan(&exists); err != nil {
		return false, fmt.Errorf("auth: check email: %w", err)
	}
	return exists, nil
}

// Create inserts a new account. A unique violation surfaces as a conflict.
func (r *PGRepository) Create(ctx context.Context, email, passwordHash string) (*Account, error) {
	var acc Account
	err := r.db.QueryRow(ctx,
		`INSERT INTO accounts (email, password_hash) VALUES ($1, $2)
		 RETURNING id, email, password_hash, created_at`, email, passwordHash,
	).Scan(&acc.ID, &acc.Email, &acc.PasswordHash, &acc.CreatedAt)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("auth: create account: %w", err)
	}
	return &acc, nil
}

var _ Repository = (*PGRepository)(nil)
