package service

import (
	"context"
	"fmt"
	"time"

	"borrowbay-backend/internal/clock"
	"borrowbay-backend/internal/domain"
	"borrowbay-backend/internal/logger"
	"borrowbay-backend/internal/metrics"
	"borrowbay-backend/internal/pricing"
	"borrowbay-backend/internal/repository"
)

// autoApproveThresholdDays is the boundary below which an extension applies
// immediately without owner sign-off. Fixed policy, not configurable.
const autoApproveThresholdDays = 7

type rentalService struct {
	rentalRepo  repository.RentalRepository
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
	extRepo     repository.ExtensionRepository
	noteRepo    repository.NotificationRepository
	emailSvc    EmailService
	clk         clock.Clock
}

func NewRentalService(
	rentalRepo repository.RentalRepository,
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
	extRepo repository.ExtensionRepository,
	noteRepo repository.NotificationRepository,
	emailSvc EmailService,
	clk clock.Clock,
) RentalService {
	return &rentalService{
		rentalRepo:  rentalRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
		extRepo:     extRepo,
		noteRepo:    noteRepo,
		emailSvc:    emailSvc,
		clk:         clk,
	}
}

func (s *rentalService) CreateRental(ctx context.Context, borrowerID, productID int64, startDate, endDate time.Time) (*domain.Rental, error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product.Status != domain.ProductStatusAvailable {
		return nil, fmt.Errorf("%w: product %d is not available", domain.ErrValidation, productID)
	}
	if product.OwnerID == borrowerID {
		return nil, fmt.Errorf("%w: cannot rent your own product", domain.ErrValidation)
	}

	start := pricing.DateOnly(startDate)
	end := pricing.DateOnly(endDate)
	if !end.After(start) {
		return nil, fmt.Errorf("%w: end date must be after start date", domain.ErrValidation)
	}

	overlapping, err := s.rentalRepo.CountOverlapping(ctx, productID, start, end)
	if err != nil {
		return nil, err
	}
	if overlapping > 0 {
		return nil, fmt.Errorf("%w: product %d already booked in that date range", domain.ErrConflict, productID)
	}

	total, err := pricing.RentalTotalPaise(product.PricePaise, product.Period, start, end)
	if err != nil {
		return nil, err
	}

	rental := &domain.Rental{
		ProductID:        productID,
		BorrowerID:       borrowerID,
		OwnerID:          product.OwnerID,
		StartDate:        start,
		EndDate:          end,
		PricePaise:       product.PricePaise,
		Period:           product.Period,
		TotalAmountPaise: total,
		DepositPaise:     product.DepositPaise,
		Status:           domain.RentalStatusPending,
	}
	if err := s.rentalRepo.Create(ctx, rental); err != nil {
		return nil, err
	}
	metrics.RentalTransitionsTotal.WithLabelValues(string(rental.Status)).Inc()

	s.notify(ctx, product.OwnerID, domain.NotificationBookingRequested,
		fmt.Sprintf("New booking request for %s", product.Title), rental.ID,
		fmt.Sprintf("booking_requested:rental:%d", rental.ID))
	if borrower, err := s.userRepo.GetByID(ctx, borrowerID); err == nil {
		if owner, err := s.userRepo.GetByID(ctx, product.OwnerID); err == nil {
			s.sendEmail(ctx, "SendBookingRequest",
				s.emailSvc.SendBookingRequest(ctx, owner.Email, borrower.Name, product.Title))
		}
	}

	return rental, nil
}

func (s *rentalService) DecideBooking(ctx context.Context, actingUserID, rentalID int64, decision Decision) (*domain.Rental, error) {
	rt, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if rt.OwnerID != actingUserID {
		return nil, fmt.Errorf("%w: only the product owner may decide a booking", domain.ErrUnauthorized)
	}
	if rt.Status != domain.RentalStatusPending {
		return nil, fmt.Errorf("%w: booking is %s, not pending", domain.ErrInvalidState, rt.Status)
	}

	var noteType domain.NotificationType
	var approved bool
	switch decision {
	case DecisionApprove:
		rt.Status = domain.RentalStatusActive
		noteType = domain.NotificationBookingApproved
		approved = true
	case DecisionReject:
		rt.Status = domain.RentalStatusCancelled
		noteType = domain.NotificationBookingRejected
	default:
		return nil, fmt.Errorf("%w: unknown decision %q", domain.ErrValidation, decision)
	}

	if err := s.rentalRepo.Update(ctx, rt); err != nil {
		return nil, err
	}
	metrics.RentalTransitionsTotal.WithLabelValues(string(rt.Status)).Inc()

	product, perr := s.productRepo.GetByID(ctx, rt.ProductID)
	title := fmt.Sprintf("product %d", rt.ProductID)
	if perr == nil {
		title = product.Title
	}
	s.notify(ctx, rt.BorrowerID, noteType,
		fmt.Sprintf("Your booking for %s was %sd", title, decision), rt.ID,
		fmt.Sprintf("%s:rental:%d", noteType, rt.ID))
	if borrower, err := s.userRepo.GetByID(ctx, rt.BorrowerID); err == nil {
		s.sendEmail(ctx, "SendBookingDecision",
			s.emailSvc.SendBookingDecision(ctx, borrower.Email, title, approved))
	}

	return rt, nil
}

func (s *rentalService) RequestExtension(ctx context.Context, actingUserID, rentalID int64, newEndDate time.Time) (*ExtensionOutcome, error) {
	rt, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if rt.BorrowerID != actingUserID {
		return nil, fmt.Errorf("%w: only the borrower may extend a rental", domain.ErrUnauthorized)
	}
	if rt.Status != domain.RentalStatusActive {
		return nil, fmt.Errorf("%w: rental is %s, not active", domain.ErrInvalidState, rt.Status)
	}

	today := pricing.DateOnly(s.clk.Now())
	currentEnd := pricing.DateOnly(rt.EndDate)
	newEnd := pricing.DateOnly(newEndDate)

	// A lapsed rental cannot be extended, regardless of the requested date.
	if currentEnd.Before(today) {
		return nil, fmt.Errorf("%w: rental ended on %s", domain.ErrRentalExpired, currentEnd.Format("2006-01-02"))
	}
	if !newEnd.After(currentEnd) {
		return nil, fmt.Errorf("%w: new end date must be after the current end date", domain.ErrValidation)
	}

	additionalCost, err := pricing.ExtensionCostPaise(rt.PricePaise, rt.Period, currentEnd, newEnd)
	if err != nil {
		return nil, err
	}

	daysTillEnd := pricing.DaysBetween(today, currentEnd)
	if daysTillEnd <= autoApproveThresholdDays {
		rt.EndDate = newEnd
		rt.TotalAmountPaise += additionalCost
		if err := s.rentalRepo.Update(ctx, rt); err != nil {
			return nil, err
		}
		// Synchronous confirmation suffices; no notification for auto-approval.
		return &ExtensionOutcome{Rental: rt}, nil
	}

	ext := &domain.ExtensionRequest{
		RentalID:            rt.ID,
		RequestedEndDate:    newEnd,
		AdditionalCostPaise: additionalCost,
		Status:              domain.ExtensionStatusPending,
	}
	if err := s.extRepo.Create(ctx, ext); err != nil {
		return nil, err
	}

	s.notify(ctx, rt.OwnerID, domain.NotificationExtensionRequested,
		fmt.Sprintf("Extension requested until %s", newEnd.Format("2006-01-02")), rt.ID,
		fmt.Sprintf("extension_requested:extension:%d", ext.ID))
	if borrower, err := s.userRepo.GetByID(ctx, rt.BorrowerID); err == nil {
		if owner, err := s.userRepo.GetByID(ctx, rt.OwnerID); err == nil {
			title := fmt.Sprintf("product %d", rt.ProductID)
			if product, perr := s.productRepo.GetByID(ctx, rt.ProductID); perr == nil {
				title = product.Title
			}
			s.sendEmail(ctx, "SendExtensionRequest",
				s.emailSvc.SendExtensionRequest(ctx, owner.Email, borrower.Name, title, newEnd.Format("2006-01-02")))
		}
	}

	return &ExtensionOutcome{Extension: ext}, nil
}

func (s *rentalService) DecideExtension(ctx context.Context, actingUserID, extensionID int64, decision Decision) (*domain.Rental, error) {
	ext, err := s.extRepo.GetByID(ctx, extensionID)
	if err != nil {
		return nil, err
	}
	rt, err := s.rentalRepo.GetByID(ctx, ext.RentalID)
	if err != nil {
		return nil, err
	}
	if rt.OwnerID != actingUserID {
		return nil, fmt.Errorf("%w: only the product owner may decide an extension", domain.ErrUnauthorized)
	}
	if ext.Status != domain.ExtensionStatusPending {
		return nil, fmt.Errorf("%w: extension request is already %s", domain.ErrInvalidState, ext.Status)
	}

	switch decision {
	case DecisionApprove:
		if rt.Status != domain.RentalStatusActive {
			return nil, fmt.Errorf("%w: rental is %s, not active", domain.ErrInvalidState, rt.Status)
		}
		// An auto-approved extension may have moved the end date past the
		// requested one in the meantime; applying would shrink the rental.
		if !pricing.DateOnly(ext.RequestedEndDate).After(pricing.DateOnly(rt.EndDate)) {
			return nil, fmt.Errorf("%w: rental already ends on or after the requested date", domain.ErrInvalidState)
		}
		rt.EndDate = pricing.DateOnly(ext.RequestedEndDate)
		rt.TotalAmountPaise += ext.AdditionalCostPaise
		if err := s.rentalRepo.Update(ctx, rt); err != nil {
			return nil, err
		}
		if err := s.extRepo.Resolve(ctx, ext.ID, domain.ExtensionStatusApproved); err != nil {
			logger.Error("Failed to mark extension request approved", "extensionID", ext.ID, "error", err)
		}
	case DecisionReject:
		if err := s.extRepo.Resolve(ctx, ext.ID, domain.ExtensionStatusRejected); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: unknown decision %q", domain.ErrValidation, decision)
	}

	noteType := domain.NotificationExtensionApproved
	if decision == DecisionReject {
		noteType = domain.NotificationExtensionRejected
	}
	s.notify(ctx, rt.BorrowerID, noteType,
		fmt.Sprintf("Your extension request was %sd", decision), rt.ID,
		fmt.Sprintf("%s:extension:%d", noteType, ext.ID))
	if borrower, err := s.userRepo.GetByID(ctx, rt.BorrowerID); err == nil {
		title := fmt.Sprintf("product %d", rt.ProductID)
		if product, perr := s.productRepo.GetByID(ctx, rt.ProductID); perr == nil {
			title = product.Title
		}
		s.sendEmail(ctx, "SendExtensionDecision",
			s.emailSvc.SendExtensionDecision(ctx, borrower.Email, title, decision == DecisionApprove))
	}

	return rt, nil
}

func (s *rentalService) CompleteRental(ctx context.Context, actingUserID, rentalID int64) (*domain.Rental, error) {
	rt, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if rt.OwnerID != actingUserID {
		return nil, fmt.Errorf("%w: only the product owner may complete a rental", domain.ErrUnauthorized)
	}
	// Completing an already-completed rental is a no-op, not an error.
	if rt.Status == domain.RentalStatusCompleted {
		return rt, nil
	}
	if rt.Status != domain.RentalStatusActive {
		return nil, fmt.Errorf("%w: rental is %s, not active", domain.ErrInvalidState, rt.Status)
	}

	rt.Status = domain.RentalStatusCompleted
	if err := s.rentalRepo.Update(ctx, rt); err != nil {
		return nil, err
	}
	metrics.RentalTransitionsTotal.WithLabelValues(string(rt.Status)).Inc()

	s.notify(ctx, rt.BorrowerID, domain.NotificationRentalCompleted,
		"Your rental is complete", rt.ID,
		fmt.Sprintf("rental_completed:rental:%d", rt.ID))
	if borrower, err := s.userRepo.GetByID(ctx, rt.BorrowerID); err == nil {
		title := fmt.Sprintf("product %d", rt.ProductID)
		if product, perr := s.productRepo.GetByID(ctx, rt.ProductID); perr == nil {
			title = product.Title
		}
		s.sendEmail(ctx, "SendRentalCompleted",
			s.emailSvc.SendRentalCompleted(ctx, borrower.Email, title, rt.TotalAmountPaise))
	}

	return rt, nil
}

func (s *rentalService) GetRental(ctx context.Context, actingUserID, rentalID int64) (*domain.Rental, error) {
	rt, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if rt.BorrowerID != actingUserID && rt.OwnerID != actingUserID {
		return nil, fmt.Errorf("%w: rental %d", domain.ErrUnauthorized, rentalID)
	}
	return rt, nil
}

func (s *rentalService) ListBorrowed(ctx context.Context, userID int64, status string, page, pageSize int64) ([]domain.Rental, int64, error) {
	return s.rentalRepo.ListByBorrower(ctx, userID, status, page, pageSize)
}

func (s *rentalService) ListOwned(ctx context.Context, userID int64, status string, page, pageSize int64) ([]domain.Rental, int64, error) {
	return s.rentalRepo.ListByOwner(ctx, userID, status, page, pageSize)
}

func (s *rentalService) ListExtensions(ctx context.Context, actingUserID, rentalID int64) ([]domain.ExtensionRequest, error) {
	rt, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if rt.BorrowerID != actingUserID && rt.OwnerID != actingUserID {
		return nil, fmt.Errorf("%w: rental %d", domain.ErrUnauthorized, rentalID)
	}
	return s.extRepo.ListByRental(ctx, rentalID)
}

// notify records an inbox notification. Delivery is best effort; a failure is
// logged and never rolls back the transition that triggered it.
func (s *rentalService) notify(ctx context.Context, userID int64, noteType domain.NotificationType, content string, relatedID int64, dedupeKey string) {
	note := &domain.Notification{
		UserID:    userID,
		Type:      noteType,
		Content:   content,
		RelatedID: relatedID,
		DedupeKey: dedupeKey,
	}
	if err := s.noteRepo.Create(ctx, note); err != nil {
		logger.Error("Failed to record notification", "userID", userID, "type", noteType, "error", err)
	}
}

func (s *rentalService) sendEmail(ctx context.Context, operation string, err error) {
	logger.ExternalServiceResult("email", operation, err)
}
