package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"borrowbay-backend/internal/domain"
	"borrowbay-backend/internal/repository"

	"github.com/lib/pq"
)

type productRepository struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) repository.ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, p *domain.Product) error {
	query := `INSERT INTO products (owner_id, title, description, price_paise, period, deposit_paise, images, status, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW()) RETURNING id`
	return r.db.QueryRowContext(ctx, query,
		p.OwnerID, p.Title, p.Description, p.PricePaise, p.Period, p.DepositPaise,
		pq.Array(p.Images), p.Status,
	).Scan(&p.ID)
}

func (r *productRepository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	p := &domain.Product{}
	var createdOn time.Time
	query := `SELECT id, owner_id, title, description, price_paise, period, deposit_paise, images, status, created_on
	          FROM products WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.OwnerID, &p.Title, &p.Description, &p.PricePaise, &p.Period,
		&p.DepositPaise, pq.Array(&p.Images), &p.Status, &createdOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: product %d", domain.ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	p.CreatedOn = createdOn.Format(time.RFC3339)
	return p, nil
}

func (r *productRepository) Update(ctx context.Context, p *domain.Product) error {
	query := `UPDATE products SET title=$1, description=$2, price_paise=$3, period=$4,
	          deposit_paise=$5, images=$6, status=$7 WHERE id=$8`
	result, err := r.db.ExecContext(ctx, query,
		p.Title, p.Description, p.PricePaise, p.Period, p.DepositPaise,
		pq.Array(p.Images), p.Status, p.ID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("%w: product %d", domain.ErrNotFound, p.ID)
	}
	return nil
}

func (r *productRepository) ListByOwner(ctx context.Context, ownerID int64, page, pageSize int64) ([]domain.Product, int64, error) {
	return r.list(ctx, "owner_id = $1", ownerID, page, pageSize)
}

func (r *productRepository) ListAvailable(ctx context.Context, page, pageSize int64) ([]domain.Product, int64, error) {
	return r.list(ctx, "status = $1", string(domain.ProductStatusAvailable), page, pageSize)
}

func (r *productRepository) list(ctx context.Context, where string, arg interface{}, page, pageSize int64) ([]domain.Product, int64, error) {
	offset := (page - 1) * pageSize

	var count int64
	countQuery := `SELECT count(*) FROM products WHERE ` + where
	if err := r.db.QueryRowContext(ctx, countQuery, arg).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT id, owner_id, title, description, price_paise, period, deposit_paise, images, status, created_on
	          FROM products WHERE ` + where + ` ORDER BY created_on DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, arg, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var p domain.Product
		var createdOn time.Time
		if err := rows.Scan(&p.ID, &p.OwnerID, &p.Title, &p.Description, &p.PricePaise,
			&p.Period, &p.DepositPaise, pq.Array(&p.Images), &p.Status, &createdOn); err != nil {
			return nil, 0, err
		}
		p.CreatedOn = createdOn.Format(time.RFC3339)
		products = append(products, p)
	}
	return products, count, rows.Err()
}
