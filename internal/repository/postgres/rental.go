package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"borrowbay-backend/internal/domain"
	"borrowbay-backend/internal/repository"
)

const rentalColumns = `id, product_id, borrower_id, owner_id, start_date, end_date,
	price_paise, period, total_amount_paise, deposit_paise, status, version, created_on, updated_on`

type rentalRepository struct {
	db *sql.DB
}

func NewRentalRepository(db *sql.DB) repository.RentalRepository {
	return &rentalRepository{db: db}
}

func (r *rentalRepository) Create(ctx context.Context, rt *domain.Rental) error {
	query := `INSERT INTO rentals (product_id, borrower_id, owner_id, start_date, end_date,
	          price_paise, period, total_amount_paise, deposit_paise, status, version, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, 1, NOW(), NOW()) RETURNING id, version`
	return r.db.QueryRowContext(ctx, query,
		rt.ProductID, rt.BorrowerID, rt.OwnerID, rt.StartDate, rt.EndDate,
		rt.PricePaise, rt.Period, rt.TotalAmountPaise, rt.DepositPaise, rt.Status,
	).Scan(&rt.ID, &rt.Version)
}

func (r *rentalRepository) GetByID(ctx context.Context, id int64) (*domain.Rental, error) {
	rt := &domain.Rental{}
	var createdOn, updatedOn time.Time
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&rt.ID, &rt.ProductID, &rt.BorrowerID, &rt.OwnerID, &rt.StartDate, &rt.EndDate,
		&rt.PricePaise, &rt.Period, &rt.TotalAmountPaise, &rt.DepositPaise, &rt.Status,
		&rt.Version, &createdOn, &updatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: rental %d", domain.ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	rt.CreatedOn = createdOn.Format(time.RFC3339)
	rt.UpdatedOn = updatedOn.Format(time.RFC3339)
	return rt, nil
}

// Update commits end date, total and status together, guarded by the version
// the caller read. A lost race surfaces as ErrConflict, never as a partial
// write.
func (r *rentalRepository) Update(ctx context.Context, rt *domain.Rental) error {
	query := `UPDATE rentals SET end_date=$1, total_amount_paise=$2, status=$3,
	          version=version+1, updated_on=NOW()
	          WHERE id=$4 AND version=$5`
	result, err := r.db.ExecContext(ctx, query, rt.EndDate, rt.TotalAmountPaise, rt.Status, rt.ID, rt.Version)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("%w: rental %d version %d", domain.ErrConflict, rt.ID, rt.Version)
	}
	rt.Version++
	return nil
}

func (r *rentalRepository) ListByBorrower(ctx context.Context, borrowerID int64, status string, page, pageSize int64) ([]domain.Rental, int64, error) {
	return r.list(ctx, "borrower_id", borrowerID, status, page, pageSize)
}

func (r *rentalRepository) ListByOwner(ctx context.Context, ownerID int64, status string, page, pageSize int64) ([]domain.Rental, int64, error) {
	return r.list(ctx, "owner_id", ownerID, status, page, pageSize)
}

func (r *rentalRepository) list(ctx context.Context, column string, userID int64, status string, page, pageSize int64) ([]domain.Rental, int64, error) {
	offset := (page - 1) * pageSize
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE ` + column + ` = $1`

	args := []interface{}{userID}
	argIdx := 2
	if status != "" {
		query += " AND status = $2"
		args = append(args, status)
		argIdx++
	}

	var count int64
	countQuery := "SELECT count(*) FROM (" + query + ") AS sub"
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(" ORDER BY created_on DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var rentals []domain.Rental
	for rows.Next() {
		var rt domain.Rental
		var createdOn, updatedOn time.Time
		if err := rows.Scan(
			&rt.ID, &rt.ProductID, &rt.BorrowerID, &rt.OwnerID, &rt.StartDate, &rt.EndDate,
			&rt.PricePaise, &rt.Period, &rt.TotalAmountPaise, &rt.DepositPaise, &rt.Status,
			&rt.Version, &createdOn, &updatedOn); err != nil {
			return nil, 0, err
		}
		rt.CreatedOn = createdOn.Format(time.RFC3339)
		rt.UpdatedOn = updatedOn.Format(time.RFC3339)
		rentals = append(rentals, rt)
	}
	return rentals, count, rows.Err()
}

func (r *rentalRepository) CountOverlapping(ctx context.Context, productID int64, start, end time.Time) (int64, error) {
	query := `SELECT count(*) FROM rentals
	          WHERE product_id = $1
	            AND status IN ('PENDING', 'ACTIVE')
	            AND start_date < $3
	            AND end_date > $2`
	var count int64
	err := r.db.QueryRowContext(ctx, query, productID, start, end).Scan(&count)
	return count, err
}
