package service_test

import (
	"context"
	"time"

	"borrowbay-backend/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// MockProductRepo
type MockProductRepo struct {
	mock.Mock
}

func (m *MockProductRepo) Create(ctx context.Context, product *domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}
func (m *MockProductRepo) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}
func (m *MockProductRepo) Update(ctx context.Context, product *domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}
func (m *MockProductRepo) ListByOwner(ctx context.Context, ownerID int64, page, pageSize int64) ([]domain.Product, int64, error) {
	args := m.Called(ctx, ownerID, page, pageSize)
	return args.Get(0).([]domain.Product), args.Get(1).(int64), args.Error(2)
}
func (m *MockProductRepo) ListAvailable(ctx context.Context, page, pageSize int64) ([]domain.Product, int64, error) {
	args := m.Called(ctx, page, pageSize)
	return args.Get(0).([]domain.Product), args.Get(1).(int64), args.Error(2)
}

// MockRentalRepo
type MockRentalRepo struct {
	mock.Mock
}

func (m *MockRentalRepo) Create(ctx context.Context, rental *domain.Rental) error {
	args := m.Called(ctx, rental)
	return args.Error(0)
}
func (m *MockRentalRepo) GetByID(ctx context.Context, id int64) (*domain.Rental, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) Update(ctx context.Context, rental *domain.Rental) error {
	args := m.Called(ctx, rental)
	return args.Error(0)
}
func (m *MockRentalRepo) ListByBorrower(ctx context.Context, borrowerID int64, status string, page, pageSize int64) ([]domain.Rental, int64, error) {
	args := m.Called(ctx, borrowerID, status, page, pageSize)
	return args.Get(0).([]domain.Rental), args.Get(1).(int64), args.Error(2)
}
func (m *MockRentalRepo) ListByOwner(ctx context.Context, ownerID int64, status string, page, pageSize int64) ([]domain.Rental, int64, error) {
	args := m.Called(ctx, ownerID, status, page, pageSize)
	return args.Get(0).([]domain.Rental), args.Get(1).(int64), args.Error(2)
}
func (m *MockRentalRepo) CountOverlapping(ctx context.Context, productID int64, start, end time.Time) (int64, error) {
	args := m.Called(ctx, productID, start, end)
	return args.Get(0).(int64), args.Error(1)
}

// MockExtensionRepo
type MockExtensionRepo struct {
	mock.Mock
}

func (m *MockExtensionRepo) Create(ctx context.Context, ext *domain.ExtensionRequest) error {
	args := m.Called(ctx, ext)
	return args.Error(0)
}
func (m *MockExtensionRepo) GetByID(ctx context.Context, id int64) (*domain.ExtensionRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExtensionRequest), args.Error(1)
}
func (m *MockExtensionRepo) Resolve(ctx context.Context, id int64, status domain.ExtensionStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}
func (m *MockExtensionRepo) ListByRental(ctx context.Context, rentalID int64) ([]domain.ExtensionRequest, error) {
	args := m.Called(ctx, rentalID)
	return args.Get(0).([]domain.ExtensionRequest), args.Error(1)
}

// MockNotificationRepo
type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(ctx context.Context, note *domain.Notification) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}
func (m *MockNotificationRepo) List(ctx context.Context, userID int64, limit, offset int64) ([]domain.Notification, int64, error) {
	args := m.Called(ctx, userID, limit, offset)
	return args.Get(0).([]domain.Notification), args.Get(1).(int64), args.Error(2)
}
func (m *MockNotificationRepo) MarkAsRead(ctx context.Context, id, userID int64) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendBookingRequest(ctx context.Context, ownerEmail, borrowerName, productTitle string) error {
	args := m.Called(ctx, ownerEmail, borrowerName, productTitle)
	return args.Error(0)
}
func (m *MockEmailService) SendBookingDecision(ctx context.Context, borrowerEmail, productTitle string, approved bool) error {
	args := m.Called(ctx, borrowerEmail, productTitle, approved)
	return args.Error(0)
}
func (m *MockEmailService) SendExtensionRequest(ctx context.Context, ownerEmail, borrowerName, productTitle, requestedEndDate string) error {
	args := m.Called(ctx, ownerEmail, borrowerName, productTitle, requestedEndDate)
	return args.Error(0)
}
func (m *MockEmailService) SendExtensionDecision(ctx context.Context, borrowerEmail, productTitle string, approved bool) error {
	args := m.Called(ctx, borrowerEmail, productTitle, approved)
	return args.Error(0)
}
func (m *MockEmailService) SendRentalCompleted(ctx context.Context, borrowerEmail, productTitle string, totalPaise int64) error {
	args := m.Called(ctx, borrowerEmail, productTitle, totalPaise)
	return args.Error(0)
}
