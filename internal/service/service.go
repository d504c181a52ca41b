package service

import (
	"context"
	"time"

	"borrowbay-backend/internal/domain"
)

// Decision is an owner's verdict on a pending booking or extension request.
type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
)

// ExtensionOutcome is the result of RequestExtension: exactly one of the two
// fields is set. Rental is set when the request fell inside the auto-approve
// window and was applied immediately; Extension is set when owner sign-off is
// required.
type ExtensionOutcome struct {
	Rental    *domain.Rental           `json:"rental,omitempty"`
	Extension *domain.ExtensionRequest `json:"extension,omitempty"`
}

type RentalService interface {
	CreateRental(ctx context.Context, borrowerID, productID int64, startDate, endDate time.Time) (*domain.Rental, error)
	DecideBooking(ctx context.Context, actingUserID, rentalID int64, decision Decision) (*domain.Rental, error)
	RequestExtension(ctx context.Context, actingUserID, rentalID int64, newEndDate time.Time) (*ExtensionOutcome, error)
	DecideExtension(ctx context.Context, actingUserID, extensionID int64, decision Decision) (*domain.Rental, error)
	CompleteRental(ctx context.Context, actingUserID, rentalID int64) (*domain.Rental, error)
	GetRental(ctx context.Context, actingUserID, rentalID int64) (*domain.Rental, error)
	ListBorrowed(ctx context.Context, userID int64, status string, page, pageSize int64) ([]domain.Rental, int64, error)
	ListOwned(ctx context.Context, userID int64, status string, page, pageSize int64) ([]domain.Rental, int64, error)
	ListExtensions(ctx context.Context, actingUserID, rentalID int64) ([]domain.ExtensionRequest, error)
}

type CartService interface {
	CartTotal(ctx context.Context, items []domain.CartItem) (int64, error)
	CheckoutTotal(ctx context.Context, items []domain.CartItem) (int64, error)
}

type ProductService interface {
	AddProduct(ctx context.Context, product *domain.Product) error
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
	UpdateProduct(ctx context.Context, actingUserID int64, product *domain.Product) error
	ListMyProducts(ctx context.Context, ownerID int64, page, pageSize int64) ([]domain.Product, int64, error)
	ListAvailableProducts(ctx context.Context, page, pageSize int64) ([]domain.Product, int64, error)
}

type NotificationService interface {
	GetNotifications(ctx context.Context, userID int64, page, pageSize int64) ([]domain.Notification, int64, error)
	MarkAsRead(ctx context.Context, userID, notificationID int64) error
}

type AuthService interface {
	Signup(ctx context.Context, name, email, phone, password string) (*domain.User, string, error)
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
}

type EmailService interface {
	SendBookingRequest(ctx context.Context, ownerEmail, borrowerName, productTitle string) error
	SendBookingDecision(ctx context.Context, borrowerEmail, productTitle string, approved bool) error
	SendExtensionRequest(ctx context.Context, ownerEmail, borrowerName, productTitle, requestedEndDate string) error
	SendExtensionDecision(ctx context.Context, borrowerEmail, productTitle string, approved bool) error
	SendRentalCompleted(ctx context.Context, borrowerEmail, productTitle string, totalPaise int64) error
}
