package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/givehub/marketplace-api/internal/domain"
)

// ProductRepository defines persistence access for listings.
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	ListByStatus(ctx context.Context, status domain.ProductStatus) ([]domain.Product, error)
	ListBySeller(ctx context.Context, sellerID string) ([]domain.Product, error)
	SetStatus(ctx context.Context, id string, status domain.ProductStatus) error
}

type productRepository struct {
	pool *pgxpool.Pool
}

// NewProductRepository returns a Postgres-backed implementation.
func NewProductRepository(pool *pgxpool.Pool) ProductRepository {
	return &productRepository{pool: pool}
}

const productColumns = `id, seller_id, charity_id, category_id, title, description,
        price_cents, donation_percent, status, created_at, updated_at`

func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	const query = `
        INSERT INTO products (seller_id, charity_id, category_id, title, description,
            price_cents, donation_percent, status)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		product.SellerID,
		product.CharityID,
		product.CategoryID,
		product.Title,
		product.Description,
		product.PriceCents,
		product.DonationPercent,
		product.Status,
	).Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)
}

func (r *productRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id=$1`

	var product domain.Product
	if err := scanProduct(r.pool.QueryRow(ctx, query, id), &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) ListByStatus(ctx context.Context, status domain.ProductStatus) ([]domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE status=$1 ORDER BY created_at DESC`
	return r.list(ctx, query, string(status))
}

func (r *productRepository) ListBySeller(ctx context.Context, sellerID string) ([]domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE seller_id=$1 ORDER BY created_at DESC`
	return r.list(ctx, query, sellerID)
}

func (r *productRepository) SetStatus(ctx context.Context, id string, status domain.ProductStatus) error {
	const query = `UPDATE products SET status=$1, updated_at=NOW() WHERE id=$2`

	cmd, err := r.pool.Exec(ctx, query, status, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *productRepository) list(ctx context.Context, query, arg string) ([]domain.Product, error) {
	rows, err := r.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var product domain.Product
		if err := scanProduct(rows, &product); err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, rows.Err()
}

func scanProduct(row pgx.Row, product *domain.Product) error {
	return row.Scan(
		&product.ID,
		&product.SellerID,
		&product.CharityID,
		&product.CategoryID,
		&product.Title,
		&product.Description,
		&product.PriceCents,
		&product.DonationPercent,
		&product.Status,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
}
