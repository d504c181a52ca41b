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

type extensionRepository struct {
	db *sql.DB
}

func NewExtensionRepository(db *sql.DB) repository.ExtensionRepository {
	return &extensionRepository{db: db}
}

func (r *extensionRepository) Create(ctx context.Context, ext *domain.ExtensionRequest) error {
	query := `INSERT INTO extension_requests (rental_id, requested_end_date, additional_cost_paise, status, created_on)
	          VALUES ($1, $2, $3, $4, NOW()) RETURNING id`
	return r.db.QueryRowContext(ctx, query,
		ext.RentalID, ext.RequestedEndDate, ext.AdditionalCostPaise, ext.Status,
	).Scan(&ext.ID)
}

func (r *extensionRepository) GetByID(ctx context.Context, id int64) (*domain.ExtensionRequest, error) {
	ext := &domain.ExtensionRequest{}
	var createdOn time.Time
	var resolvedOn sql.NullTime
	query := `SELECT id, rental_id, requested_end_date, additional_cost_paise, status, created_on, resolved_on
	          FROM extension_requests WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&ext.ID, &ext.RentalID, &ext.RequestedEndDate, &ext.AdditionalCostPaise,
		&ext.Status, &createdOn, &resolvedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: extension request %d", domain.ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	ext.CreatedOn = createdOn.Format(time.RFC3339)
	if resolvedOn.Valid {
		s := resolvedOn.Time.Format(time.RFC3339)
		ext.ResolvedOn = &s
	}
	return ext, nil
}

// Resolve only moves a request out of PENDING; a second resolution attempt
// matches zero rows and reports ErrConflict.
func (r *extensionRepository) Resolve(ctx context.Context, id int64, status domain.ExtensionStatus) error {
	query := `UPDATE extension_requests SET status = $1, resolved_on = NOW()
	          WHERE id = $2 AND status = 'PENDING'`
	result, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("%w: extension request %d already resolved", domain.ErrConflict, id)
	}
	return nil
}

func (r *extensionRepository) ListByRental(ctx context.Context, rentalID int64) ([]domain.ExtensionRequest, error) {
	query := `SELECT id, rental_id, requested_end_date, additional_cost_paise, status, created_on, resolved_on
	          FROM extension_requests WHERE rental_id = $1 ORDER BY created_on DESC`
	rows, err := r.db.QueryContext(ctx, query, rentalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var exts []domain.ExtensionRequest
	for rows.Next() {
		var ext domain.ExtensionRequest
		var createdOn time.Time
		var resolvedOn sql.NullTime
		if err := rows.Scan(&ext.ID, &ext.RentalID, &ext.RequestedEndDate,
			&ext.AdditionalCostPaise, &ext.Status, &createdOn, &resolvedOn); err != nil {
			return nil, err
		}
		ext.CreatedOn = createdOn.Format(time.RFC3339)
		if resolvedOn.Valid {
			s := resolvedOn.Time.Format(time.RFC3339)
			ext.ResolvedOn = &s
		}
		exts = append(exts, ext)
	}
	return exts, rows.Err()
}
