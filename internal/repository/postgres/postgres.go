package postgres

import (
	"database/sql"

	"borrowbay-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.UserRepository
	repository.ProductRepository
	repository.RentalRepository
	repository.ExtensionRepository
	repository.NotificationRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                     db,
		UserRepository:         NewUserRepository(db),
		ProductRepository:      NewProductRepository(db),
		RentalRepository:       NewRentalRepository(db),
		ExtensionRepository:    NewExtensionRepository(db),
		NotificationRepository: NewNotificationRepository(db),
	}
}
