package repository

import (
	"context"
	"time"

	"borrowbay-backend/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	Update(ctx context.Context, product *domain.Product) error
	ListByOwner(ctx context.Context, ownerID int64, page, pageSize int64) ([]domain.Product, int64, error)
	ListAvailable(ctx context.Context, page, pageSize int64) ([]domain.Product, int64, error)
}

type RentalRepository interface {
	Create(ctx context.Context, rental *domain.Rental) error
	GetByID(ctx context.Context, id int64) (*domain.Rental, error)
	// Update applies the mutable fields (end date, total, status) guarded by
	// the rental's version; returns domain.ErrConflict on a stale version.
	Update(ctx context.Context, rental *domain.Rental) error
	ListByBorrower(ctx context.Context, borrowerID int64, status string, page, pageSize int64) ([]domain.Rental, int64, error)
	ListByOwner(ctx context.Context, ownerID int64, status string, page, pageSize int64) ([]domain.Rental, int64, error)
	// CountOverlapping counts pending/active rentals of the product whose
	// [start_date, end_date) range intersects [start, end).
	CountOverlapping(ctx context.Context, productID int64, start, end time.Time) (int64, error)
}

type ExtensionRepository interface {
	Create(ctx context.Context, ext *domain.ExtensionRequest) error
	GetByID(ctx context.Context, id int64) (*domain.ExtensionRequest, error)
	// Resolve stamps a pending request approved or rejected; returns
	// domain.ErrConflict if the request was already resolved.
	Resolve(ctx context.Context, id int64, status domain.ExtensionStatus) error
	ListByRental(ctx context.Context, rentalID int64) ([]domain.ExtensionRequest, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, note *domain.Notification) error
	List(ctx context.Context, userID int64, limit, offset int64) ([]domain.Notification, int64, error)
	MarkAsRead(ctx context.Context, id, userID int64) error
}
