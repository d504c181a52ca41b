package service_test

import (
	"context"
	"testing"
	"time"

	"borrowbay-backend/internal/clock"
	"borrowbay-backend/internal/domain"
	"borrowbay-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type rentalMocks struct {
	rentalRepo  *MockRentalRepo
	productRepo *MockProductRepo
	userRepo    *MockUserRepo
	extRepo     *MockExtensionRepo
	noteRepo    *MockNotificationRepo
	emailSvc    *MockEmailService
}

func newRentalService(clk clock.Clock) (service.RentalService, *rentalMocks) {
	m := &rentalMocks{
		rentalRepo:  new(MockRentalRepo),
		productRepo: new(MockProductRepo),
		userRepo:    new(MockUserRepo),
		extRepo:     new(MockExtensionRepo),
		noteRepo:    new(MockNotificationRepo),
		emailSvc:    new(MockEmailService),
	}
	svc := service.NewRentalService(m.rentalRepo, m.productRepo, m.userRepo, m.extRepo, m.noteRepo, m.emailSvc, clk)
	return svc, m
}

func TestRentalService_CreateRental(t *testing.T) {
	ctx := context.Background()

	product := &domain.Product{
		ID:         2,
		OwnerID:    10,
		Title:      "Pressure Washer",
		PricePaise: 30000, // ₹300 per week
		Period:     domain.RatePeriodWeek,
		Status:     domain.ProductStatusAvailable,
	}

	t.Run("WeeklyRateForSevenDays", func(t *testing.T) {
		svc, m := newRentalService(clock.NewFixed(date(2026, 3, 1)))

		m.productRepo.On("GetByID", ctx, int64(2)).Return(product, nil)
		m.rentalRepo.On("CountOverlapping", ctx, int64(2), date(2026, 3, 1), date(2026, 3, 8)).Return(int64(0), nil)
		m.rentalRepo.On("Create", ctx, mock.MatchedBy(func(rt *domain.Rental) bool {
			return rt.Status == domain.RentalStatusPending &&
				rt.TotalAmountPaise == 30000 &&
				rt.PricePaise == 30000 &&
				rt.OwnerID == 10
		})).Run(func(args mock.Arguments) {
			rt := args.Get(1).(*domain.Rental)
			rt.ID = 1
			rt.Version = 1
		}).Return(nil).Once()
		m.noteRepo.On("Create", ctx, mock.MatchedBy(func(n *domain.Notification) bool {
			return n.UserID == 10 && n.Type == domain.NotificationBookingRequested &&
				n.DedupeKey == "booking_requested:rental:1"
		})).Return(nil).Once()
		m.userRepo.On("GetByID", ctx, int64(3)).Return(&domain.User{ID: 3, Name: "Asha", Email: "asha@test.com"}, nil)
		m.userRepo.On("GetByID", ctx, int64(10)).Return(&domain.User{ID: 10, Email: "owner@test.com"}, nil)
		m.emailSvc.On("SendBookingRequest", ctx, "owner@test.com", "Asha", "Pressure Washer").Return(nil).Once()

		rental, err := svc.CreateRental(ctx, 3, 2, date(2026, 3, 1), date(2026, 3, 8))
		assert.NoError(t, err)
		assert.Equal(t, domain.RentalStatusPending, rental.Status)
		assert.Equal(t, int64(30000), rental.TotalAmountPaise)

		m.rentalRepo.AssertExpectations(t)
		m.noteRepo.AssertExpectations(t)
		m.emailSvc.AssertExpectations(t)
	})

	t.Run("OverlappingDatesRejected", func(t *testing.T) {
		svc, m := newRentalService(clock.NewFixed(date(2026, 3, 1)))

		m.productRepo.On("GetByID", ctx, int64(2)).Return(product, nil)
		m.rentalRepo.On("CountOverlapping", ctx, int64(2), date(2026, 3, 1), date(2026, 3, 8)).Return(int64(1), nil)

		_, err := svc.CreateRental(ctx, 3, 2, date(2026, 3, 1), date(2026, 3, 8))
		assert.ErrorIs(t, err, domain.ErrConflict)
	})

	t.Run("OwnBookingRejected", func(t *testing.T) {
		svc, m := newRentalService(clock.NewFixed(date(2026, 3, 1)))

		m.productRepo.On("GetByID", ctx, int64(2)).Return(product, nil)

		_, err := svc.CreateRental(ctx, 10, 2, date(2026, 3, 1), date(2026, 3, 8))
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("EndNotAfterStart", func(t *testing.T) {
		svc, m := newRentalService(clock.NewFixed(date(2026, 3, 1)))

		m.productRepo.On("GetByID", ctx, int64(2)).Return(product, nil)

		_, err := svc.CreateRental(ctx, 3, 2, date(2026, 3, 8), date(2026, 3, 8))
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("UnavailableProduct", func(t *testing.T) {
		svc, m := newRentalService(clock.NewFixed(date(2026, 3, 1)))

		unavailable := *product
		unavailable.Status = domain.ProductStatusUnavailable
		m.productRepo.On("GetByID", ctx, int64(2)).Return(&unavailable, nil)

		_, err := svc.CreateRental(ctx, 3, 2, date(2026, 3, 1), date(2026, 3, 8))
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestRentalService_DecideBooking(t *testing.T) {
	ctx := context.Background()

	pending := func() *domain.Rental {
		return &domain.Rental{
			ID:         1,
			ProductID:  2,
			BorrowerID: 3,
			OwnerID:    10,
			Status:     domain.RentalStatusPending,
			Version:    1,
		}
	}

	t.Run("Approve", func(t *testing.T) {
		svc, m := newRentalService(clock.NewFixed(date(2026, 3, 1)))

		m.rentalRepo.On("GetByID", ctx, int64(1)).Return(pending(), nil)
		m.rentalRepo.On("Update", ctx, mock.MatchedBy(func(rt *domain.Rental) bool {
			return rt.Status == domain.RentalStatusActive
		})).Return(nil).Once()
		m.productRepo.On("GetByID", ctx, int64(2)).Return(&domain.Product{ID: 2, Title: "Pressure Washer"}, nil)
		m.noteRepo.On("Create", ctx, mock.MatchedBy(func(n *domain.Notification) bool {
			return n.UserID == 3 && n.Type == domain.NotificationBookingApproved
		})).Return(nil).Once()
		m.userRepo.On("GetByID", ctx, int64(3)).Return(&domain.User{ID: 3, Email: "asha@test.com"}, nil)
		m.emailSvc.On("SendBookingDecision", ctx, "asha@test.com", "Pressure Washer", true).Return(nil).Once()

		rental, err := svc.DecideBooking(ctx, 10, 1, service.DecisionApprove)
		assert.NoError(t, err)
		assert.Equal(t, domain.RentalStatusActive, rental.Status)
		m.rentalRepo.AssertExpectations(t)
		m.noteRepo.AssertExpectations(t)
	})

	t.Run("Reject", func(t *testing.T) {
		svc, m := newRentalService(clock.NewFixed(date(2026, 3, 1)))

		m.rentalRepo.On("GetByID", ctx, int64(1)).Return(pending(), nil)
		m.rentalRepo.On("Update", ctx, mock.MatchedBy(func(rt *domain.Rental) bool {
			return rt.Status == domain.RentalStatusCancelled
		})).Return(nil).Once()
		m.productRepo.On("GetByID", ctx, int64(2)).Return(&domain.Product{ID: 2, Title: "Pressure Washer"}, nil)
		m.noteRepo.On("Create", ctx, mock.Anything).Return(nil)
		m.userRepo.On("GetByID", ctx, int64(3)).Return(&domain.User{ID: 3, Email: "asha@test.com"}, nil)
		m.emailSvc.On("SendBookingDecision", ctx, "asha@test.com", "Pressure Washer", false).Return(nil).Once()

		rental, err := svc.DecideBooking(ctx, 10, 1, service.DecisionReject)
		assert.NoError(t, err)
		assert.Equal(t, domain.RentalStatusCancelled, rental.Status)
	})

	t.Run("NonOwnerForbidden", func(t *testing.T) {
		svc, m := newRentalService(clock.NewFixed(date(2026, 3, 1)))

		m.rentalRepo.On("GetByID", ctx, int64(1)).Return(pending(), nil)

		_, err := svc.DecideBooking(ctx, 99, 1, service.DecisionApprove)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("AlreadyDecided", func(t *testing.T) {
		svc, m := newRentalService(clock.NewFixed(date(2026, 3, 1)))

		cancelled := pending()
		cancelled.Status = domain.RentalStatusCancelled
		m.rentalRepo.On("GetByID", ctx, int64(1)).Return(cancelled, nil)

		_, err := svc.DecideBooking(ctx, 10, 1, service.DecisionApprove)
		assert.ErrorIs(t, err, domain.ErrInvalidState)
	})

	t.Run("UnknownDecision", func(t *testing.T) {
		svc, m := newRentalService(clock.NewFixed(date(2026, 3, 1)))

		m.rentalRepo.On("GetByID", ctx, int64(1)).Return(pending(), nil)

		_, err := svc.DecideBooking(ctx, 10, 1, service.Decision("maybe"))
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestRentalService_RequestExtension(t *testing.T) {
	ctx := context.Background()

	active := func(end time.Time) *domain.Rental {
		return &domain.Rental{
			ID:               1,
			ProductID:        2,
			BorrowerID:       3,
			OwnerID:          10,
			StartDate:        date(2026, 3, 1),
			EndDate:          end,
			PricePaise:       30000, // ₹300 per week
			Period:           domain.RatePeriodWeek,
			TotalAmountPaise: 30000,
			Status:           domain.RentalStatusActive,
			Version:          2,
		}
	}

	t.Run("AutoApproveWithinWindow", func(t *testing.T) {
		// 7 days to the end date: applies immediately, no owner involved.
		svc, m := newRentalService(clock.NewFixed(date(2026, 3, 1)))

		rt := active(date(2026, 3, 8))
		m.rentalRepo.On("GetByID", ctx, int64(1)).Return(rt, nil)
		m.rentalRepo.On("Update", ctx, mock.MatchedBy(func(r *domain.Rental) bool {
			// 3 extra days at ₹300/week: ceil(300*3/7) = ₹129
			return r.EndDate.Equal(date(2026, 3, 11)) && r.TotalAmountPaise == 30000+12900
		})).Return(nil).Once()

		outcome, err := svc.RequestExtension(ctx, 3, 1, date(2026, 3, 11))
		assert.NoError(t, err)
		assert.NotNil(t, outcome.Rental)
		assert.Nil(t, outcome.Extension)
		assert.Equal(t, int64(42900), outcome.Rental.TotalAmountPaise)
		m.rentalRepo.AssertExpectations(t)
		m.noteRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("OwnerApprovalBeyondWindow", func(t *testing.T) {
		// 8 days to the end date: one past the window, so the owner decides.
		svc, m := newRentalService(clock.NewFixed(date(2026, 3, 1)))

		rt := active(date(2026, 3, 9))
		m.rentalRepo.On("GetByID", ctx, int64(1)).Return(rt, nil)
		m.extRepo.On("Create", ctx, mock.MatchedBy(func(ext *domain.ExtensionRequest) bool {
			return ext.RentalID == 1 &&
				ext.Status == domain.ExtensionStatusPending &&
				ext.RequestedEndDate.Equal(date(2026, 3, 12))
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.ExtensionRequest).ID = 5
		}).Return(nil).Once()
		m.noteRepo.On("Create", ctx, mock.MatchedBy(func(n *domain.Notification) bool {
			return n.UserID == 10 && n.Type == domain.NotificationExtensionRequested &&
				n.DedupeKey == "extension_requested:extension:5"
		})).Return(nil).Once()
		m.userRepo.On("GetByID", ctx, int64(3)).Return(&domain.User{ID: 3, Name: "Asha", Email: "asha@test.com"}, nil)
		m.userRepo.On("GetByID", ctx, int64(10)).Return(&domain.User{ID: 10, Email: "owner@test.com"}, nil)
		m.productRepo.On("GetByID", ctx, int64(2)).Return(&domain.Product{ID: 2, Title: "Pressure Washer"}, nil)
		m.emailSvc.On("SendExtensionRequest", ctx, "owner@test.com", "Asha", "Pressure Washer", "2026-03-12").Return(nil).Once()

		outcome, err := svc.RequestExtension(ctx, 3, 1, date(2026, 3, 12))
		assert.NoError(t, err)
		assert.Nil(t, outcome.Rental)
		assert.NotNil(t, outcome.Extension)
		assert.Equal(t, domain.ExtensionStatusPending, outcome.Extension.Status)
		m.extRepo.AssertExpectations(t)
		m.rentalRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("ExpiredRental", func(t *testing.T) {
		svc, m := newRentalService(clock.NewFixed(date(2026, 3, 10)))

		rt := active(date(2026, 3, 8))
		m.rentalRepo.On("GetByID", ctx, int64(1)).Return(rt, nil)

		_, err := svc.RequestExtension(ctx, 3, 1, date(2026, 3, 15))
		assert.ErrorIs(t, err, domain.ErrRentalExpired)
	})

	t.Run("NonBorrowerForbidden", func(t *testing.T) {
		svc, m := newRentalService(clock.NewFixed(date(2026, 3, 1)))

		rt := active(date(2026, 3, 8))
		m.rentalRepo.On("GetByID", ctx, int64(1)).Return(rt, nil)

		_, err := svc.RequestExtension(ctx, 10, 1, date(2026, 3, 11))
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("NotActive", func(t *testing.T) {
		svc, m := newRentalService(clock.NewFixed(date(2026, 3, 1)))

		rt := active(date(2026, 3, 8))
		rt.Status = domain.RentalStatusPending
		m.rentalRepo.On("GetByID", ctx, int64(1)).Return(rt, nil)

		_, err := svc.RequestExtension(ctx, 3, 1, date(2026, 3, 11))
		assert.ErrorIs(t, err, domain.ErrInvalidState)
	})

	t.Run("NewEndNotAfterCurrent", func(t *testing.T) {
		svc, m := newRentalService(clock.NewFixed(date(2026, 3, 1)))

		rt := active(date(2026, 3, 8))
		m.rentalRepo.On("GetByID", ctx, int64(1)).Return(rt, nil)

		_, err := svc.RequestExtension(ctx, 3, 1, date(2026, 3, 8))
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestRentalService_DecideExtension(t *testing.T) {
	ctx := context.Background()

	active := func() *domain.Rental {
		return &domain.Rental{
			ID:               1,
			ProductID:        2,
			BorrowerID:       3,
			OwnerID:          10,
			EndDate:          date(2026, 3, 9),
			PricePaise:       30000,
			Period:           domain.RatePeriodWeek,
			TotalAmountPaise: 30000,
			Status:           domain.RentalStatusActive,
			Version:          2,
		}
	}
	pendingExt := func() *domain.ExtensionRequest {
		return &domain.ExtensionRequest{
			ID:                  5,
			RentalID:            1,
			RequestedEndDate:    date(2026, 3, 12),
			AdditionalCostPaise: 12900,
			Status:              domain.ExtensionStatusPending,
		}
	}

	t.Run("Approve", func(t *testing.T) {
		svc, m := newRentalService(clock.NewFixed(date(2026, 3, 1)))

		m.extRepo.On("GetByID", ctx, int64(5)).Return(pendingExt(), nil)
		m.rentalRepo.On("GetByID", ctx, int64(1)).Return(active(), nil)
		m.rentalRepo.On("Update", ctx, mock.MatchedBy(func(rt *domain.Rental) bool {
			return rt.EndDate.Equal(date(2026, 3, 12)) && rt.TotalAmountPaise == 42900
		})).Return(nil).Once()
		m.extRepo.On("Resolve", ctx, int64(5), domain.ExtensionStatusApproved).Return(nil).Once()
		m.noteRepo.On("Create", ctx, mock.MatchedBy(func(n *domain.Notification) bool {
			return n.UserID == 3 && n.Type == domain.NotificationExtensionApproved
		})).Return(nil).Once()
		m.userRepo.On("GetByID", ctx, int64(3)).Return(&domain.User{ID: 3, Email: "asha@test.com"}, nil)
		m.productRepo.On("GetByID", ctx, int64(2)).Return(&domain.Product{ID: 2, Title: "Pressure Washer"}, nil)
		m.emailSvc.On("SendExtensionDecision", ctx, "asha@test.com", "Pressure Washer", true).Return(nil).Once()

		rental, err := svc.DecideExtension(ctx, 10, 5, service.DecisionApprove)
		assert.NoError(t, err)
		assert.Equal(t, int64(42900), rental.TotalAmountPaise)
		m.rentalRepo.AssertExpectations(t)
		m.extRepo.AssertExpectations(t)
	})

	t.Run("Reject", func(t *testing.T) {
		svc, m := newRentalService(clock.NewFixed(date(2026, 3, 1)))

		m.extRepo.On("GetByID", ctx, int64(5)).Return(pendingExt(), nil)
		m.rentalRepo.On("GetByID", ctx, int64(1)).Return(active(), nil)
		m.extRepo.On("Resolve", ctx, int64(5), domain.ExtensionStatusRejected).Return(nil).Once()
		m.noteRepo.On("Create", ctx, mock.MatchedBy(func(n *domain.Notification) bool {
			return n.Type == domain.NotificationExtensionRejected
		})).Return(nil).Once()
		m.userRepo.On("GetByID", ctx, int64(3)).Return(&domain.User{ID: 3, Email: "asha@test.com"}, nil)
		m.productRepo.On("GetByID", ctx, int64(2)).Return(&domain.Product{ID: 2, Title: "Pressure Washer"}, nil)
		m.emailSvc.On("SendExtensionDecision", ctx, "asha@test.com", "Pressure Washer", false).Return(nil).Once()

		rental, err := svc.DecideExtension(ctx, 10, 5, service.DecisionReject)
		assert.NoError(t, err)
		// Rejection leaves the rental untouched.
		assert.Equal(t, int64(30000), rental.TotalAmountPaise)
		assert.True(t, rental.EndDate.Equal(date(2026, 3, 9)))
		m.rentalRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("NonOwnerForbidden", func(t *testing.T) {
		svc, m := newRentalService(clock.NewFixed(date(2026, 3, 1)))

		m.extRepo.On("GetByID", ctx, int64(5)).Return(pendingExt(), nil)
		m.rentalRepo.On("GetByID", ctx, int64(1)).Return(active(), nil)

		_, err := svc.DecideExtension(ctx, 3, 5, service.DecisionApprove)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("AlreadyResolved", func(t *testing.T) {
		svc, m := newRentalService(clock.NewFixed(date(2026, 3, 1)))

		resolved := pendingExt()
		resolved.Status = domain.ExtensionStatusRejected
		m.extRepo.On("GetByID", ctx, int64(5)).Return(resolved, nil)
		m.rentalRepo.On("GetByID", ctx, int64(1)).Return(active(), nil)

		_, err := svc.DecideExtension(ctx, 10, 5, service.DecisionApprove)
		assert.ErrorIs(t, err, domain.ErrInvalidState)
	})

	t.Run("RequestedDateAlreadyPassed", func(t *testing.T) {
		// An auto-approved extension moved the rental past the requested
		// date; approving now would shrink the rental.
		svc, m := newRentalService(clock.NewFixed(date(2026, 3, 1)))

		rt := active()
		rt.EndDate = date(2026, 3, 15)
		m.extRepo.On("GetByID", ctx, int64(5)).Return(pendingExt(), nil)
		m.rentalRepo.On("GetByID", ctx, int64(1)).Return(rt, nil)

		_, err := svc.DecideExtension(ctx, 10, 5, service.DecisionApprove)
		assert.ErrorIs(t, err, domain.ErrInvalidState)
	})
}

func TestRentalService_CompleteRental(t *testing.T) {
	ctx := context.Background()

	t.Run("Complete", func(t *testing.T) {
		svc, m := newRentalService(clock.NewFixed(date(2026, 3, 20)))

		rt := &domain.Rental{
			ID: 1, ProductID: 2, BorrowerID: 3, OwnerID: 10,
			TotalAmountPaise: 30000,
			Status:           domain.RentalStatusActive,
			Version:          3,
		}
		m.rentalRepo.On("GetByID", ctx, int64(1)).Return(rt, nil)
		m.rentalRepo.On("Update", ctx, mock.MatchedBy(func(r *domain.Rental) bool {
			return r.Status == domain.RentalStatusCompleted
		})).Return(nil).Once()
		m.noteRepo.On("Create", ctx, mock.MatchedBy(func(n *domain.Notification) bool {
			return n.Type == domain.NotificationRentalCompleted && n.DedupeKey == "rental_completed:rental:1"
		})).Return(nil).Once()
		m.userRepo.On("GetByID", ctx, int64(3)).Return(&domain.User{ID: 3, Email: "asha@test.com"}, nil)
		m.productRepo.On("GetByID", ctx, int64(2)).Return(&domain.Product{ID: 2, Title: "Pressure Washer"}, nil)
		m.emailSvc.On("SendRentalCompleted", ctx, "asha@test.com", "Pressure Washer", int64(30000)).Return(nil).Once()

		rental, err := svc.CompleteRental(ctx, 10, 1)
		assert.NoError(t, err)
		assert.Equal(t, domain.RentalStatusCompleted, rental.Status)
		m.rentalRepo.AssertExpectations(t)
	})

	t.Run("AlreadyCompletedIsNoOp", func(t *testing.T) {
		svc, m := newRentalService(clock.NewFixed(date(2026, 3, 20)))

		rt := &domain.Rental{ID: 1, OwnerID: 10, Status: domain.RentalStatusCompleted}
		m.rentalRepo.On("GetByID", ctx, int64(1)).Return(rt, nil)

		rental, err := svc.CompleteRental(ctx, 10, 1)
		assert.NoError(t, err)
		assert.Equal(t, domain.RentalStatusCompleted, rental.Status)
		m.rentalRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("CancelledCannotComplete", func(t *testing.T) {
		svc, m := newRentalService(clock.NewFixed(date(2026, 3, 20)))

		rt := &domain.Rental{ID: 1, OwnerID: 10, Status: domain.RentalStatusCancelled}
		m.rentalRepo.On("GetByID", ctx, int64(1)).Return(rt, nil)

		_, err := svc.CompleteRental(ctx, 10, 1)
		assert.ErrorIs(t, err, domain.ErrInvalidState)
	})

	t.Run("NonOwnerForbidden", func(t *testing.T) {
		svc, m := newRentalService(clock.NewFixed(date(2026, 3, 20)))

		rt := &domain.Rental{ID: 1, OwnerID: 10, Status: domain.RentalStatusActive}
		m.rentalRepo.On("GetByID", ctx, int64(1)).Return(rt, nil)

		_, err := svc.CompleteRental(ctx, 3, 1)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})
}

func TestRentalService_GetRental(t *testing.T) {
	ctx := context.Background()
	svc, m := newRentalService(clock.NewFixed(date(2026, 3, 1)))

	rt := &domain.Rental{ID: 1, BorrowerID: 3, OwnerID: 10}
	m.rentalRepo.On("GetByID", ctx, int64(1)).Return(rt, nil)

	_, err := svc.GetRental(ctx, 3, 1)
	assert.NoError(t, err)
	_, err = svc.GetRental(ctx, 10, 1)
	assert.NoError(t, err)
	_, err = svc.GetRental(ctx, 99, 1)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
