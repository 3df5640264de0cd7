package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/givehub/marketplace-api/internal/domain"
)

// Duplicate sentinels let the service attribute a conflict to a field. The
// unique indexes are authoritative: a racing insert loses with one of these,
// never with a corrupted row.
var (
	ErrDuplicateEmail    = errors.New("email already registered")
	ErrDuplicateUsername = errors.New("username already taken")
	ErrDuplicateAccount  = errors.New("account already exists")
)

const uniqueViolation = "23505"

// AccountRepository defines persistence access for marketplace accounts.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	GetByUsername(ctx context.Context, username string) (*domain.Account, error)
	SetVerified(ctx context.Context, id string, verified bool) error
	List(ctx context.Context) ([]domain.Account, error)
}

type accountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository returns a Postgres-backed implementation.
func NewAccountRepository(pool *pgxpool.Pool) AccountRepository {
	return &accountRepository{pool: pool}
}

func (r *accountRepository) Create(ctx context.Context, account *domain.Account) error {
	const query = `
        INSERT INTO accounts (email, username, password_hash, role, verified)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at, updated_at`

	err := r.pool.QueryRow(ctx, query,
		account.Email,
		account.Username,
		account.PasswordHash,
		account.Role,
		account.Verified,
	).Scan(&account.ID, &account.CreatedAt, &account.UpdatedAt)
	if err != nil {
		return mapUniqueViolation(err)
	}
	return nil
}

func (r *accountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	return r.getBy(ctx, "id=$1", id)
}

func (r *accountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	return r.getBy(ctx, "lower(email)=lower($1)", email)
}

func (r *accountRepository) GetByUsername(ctx context.Context, username string) (*domain.Account, error) {
	return r.getBy(ctx, "username=$1", username)
}

func (r *accountRepository) getBy(ctx context.Context, where, arg string) (*domain.Account, error) {
	query := `
        SELECT id, email, username, password_hash, role, verified, created_at, updated_at
        FROM accounts WHERE ` + where

	var account domain.Account
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&account.ID,
		&account.Email,
		&account.Username,
		&account.PasswordHash,
		&account.Role,
		&account.Verified,
		&account.CreatedAt,
		&account.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *accountRepository) SetVerified(ctx context.Context, id string, verified bool) error {
	const query = `UPDATE accounts SET verified=$1, updated_at=NOW() WHERE id=$2`

	cmd, err := r.pool.Exec(ctx, query, verified, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *accountRepository) List(ctx context.Context) ([]domain.Account, error) {
	const query = `
        SELECT id, email, username, password_hash, role, verified, created_at, updated_at
        FROM accounts ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		var account domain.Account
		if err := rows.Scan(
			&account.ID,
			&account.Email,
			&account.Username,
			&account.PasswordHash,
			&account.Role,
			&account.Verified,
			&account.CreatedAt,
			&account.UpdatedAt,
		); err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}
	return accounts, rows.Err()
}

func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolation {
		return err
	}
	switch pgErr.ConstraintName {
	case "accounts_email_lower_idx":
		return ErrDuplicateEmail
	case "accounts_username_key":
		return ErrDuplicateUsername
	}
	// unknown unique constraint: report a conflict without naming a field
	return ErrDuplicateAccount
}
