package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/givehub/marketplace-api/internal/domain"
)

// CharityRepository defines persistence access for charities.
type CharityRepository interface {
	Create(ctx context.Context, charity *domain.Charity) error
	GetByID(ctx context.Context, id string) (*domain.Charity, error)
	ListApproved(ctx context.Context) ([]domain.Charity, error)
}

type charityRepository struct {
	pool *pgxpool.Pool
}

// NewCharityRepository returns a Postgres-backed implementation.
func NewCharityRepository(pool *pgxpool.Pool) CharityRepository {
	return &charityRepository{pool: pool}
}

func (r *charityRepository) Create(ctx context.Context, charity *domain.Charity) error {
	const query = `
        INSERT INTO charities (name, description, website, approved)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		charity.Name,
		charity.Description,
		charity.Website,
		charity.Approved,
	).Scan(&charity.ID, &charity.CreatedAt, &charity.UpdatedAt)
}

func (r *charityRepository) GetByID(ctx context.Context, id string) (*domain.Charity, error) {
	const query = `
        SELECT id, name, description, website, approved, created_at, updated_at
        FROM charities WHERE id=$1`

	var charity domain.Charity
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&charity.ID,
		&charity.Name,
		&charity.Description,
		&charity.Website,
		&charity.Approved,
		&charity.CreatedAt,
		&charity.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &charity, nil
}

func (r *charityRepository) ListApproved(ctx context.Context) ([]domain.Charity, error) {
	const query = `
        SELECT id, name, description, website, approved, created_at, updated_at
        FROM charities WHERE approved ORDER BY name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var charities []domain.Charity
	for rows.Next() {
		var charity domain.Charity
		if err := rows.Scan(
			&charity.ID,
			&charity.Name,
			&charity.Description,
			&charity.Website,
			&charity.Approved,
			&charity.CreatedAt,
			&charity.UpdatedAt,
		); err != nil {
			return nil, err
		}
		charities = append(charities, charity)
	}
	return charities, rows.Err()
}
