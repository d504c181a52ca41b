// Package pricing holds the monetary arithmetic for rentals and carts. All
// amounts are integer paise. Rental proration and cart totals are distinct
// computations and must stay separate functions.
package pricing

import (
	"fmt"
	"time"

	"borrowbay-backend/internal/domain"
)

const (
	// PaisePerRupee is the minor-unit scale for all stored amounts.
	PaisePerRupee = 100

	// DeliveryFeePaise is the fixed checkout delivery fee (₹99).
	DeliveryFeePaise = 9900

	hoursPerDay = 24
)

// canonicalDays returns the fixed day count a rate period covers. Month is
// deliberately 30, not calendar-accurate; changing it would silently change
// every quoted price.
func canonicalDays(period domain.RatePeriod) (int64, error) {
	switch period {
	case domain.RatePeriodDay:
		return 1, nil
	case domain.RatePeriodWeek:
		return 7, nil
	case domain.RatePeriodMonth:
		return 30, nil
	default:
		return 0, fmt.Errorf("%w: no canonical day count for period %q", domain.ErrValidation, period)
	}
}

// DaysBetween returns the number of days from a to b, rounding partial days
// up. Inputs are truncated to calendar dates first, so time of day never
// shifts the result.
func DaysBetween(a, b time.Time) int64 {
	a = DateOnly(a)
	b = DateOnly(b)
	hours := b.Sub(a).Hours()
	days := int64(hours) / hoursPerDay
	if hours > float64(days*hoursPerDay) {
		days++
	}
	return days
}

// DateOnly truncates t to midnight UTC.
func DateOnly(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ProratedCostPaise prices a span of days at the product's rate. The result
// rounds up to the whole rupee, so the borrower never underpays by a
// fraction. Hour-priced products bill 24 hourly units per day.
func ProratedCostPaise(pricePaise int64, period domain.RatePeriod, days int64) (int64, error) {
	if pricePaise < 0 {
		return 0, fmt.Errorf("%w: negative price", domain.ErrValidation)
	}
	if days <= 0 {
		return 0, fmt.Errorf("%w: non-positive day count %d", domain.ErrValidation, days)
	}
	if period == domain.RatePeriodHour {
		return pricePaise * hoursPerDay * days, nil
	}
	canon, err := canonicalDays(period)
	if err != nil {
		return 0, err
	}
	rupees := ceilDiv(pricePaise*days, canon*PaisePerRupee)
	return rupees * PaisePerRupee, nil
}

// RentalTotalPaise prices the full booked span [start, end).
func RentalTotalPaise(pricePaise int64, period domain.RatePeriod, start, end time.Time) (int64, error) {
	span := DaysBetween(start, end)
	if span <= 0 {
		return 0, fmt.Errorf("%w: end date must be after start date", domain.ErrValidation)
	}
	return ProratedCostPaise(pricePaise, period, span)
}

// ExtensionCostPaise prices the added span from the current end date to the
// requested one.
func ExtensionCostPaise(pricePaise int64, period domain.RatePeriod, currentEnd, newEnd time.Time) (int64, error) {
	added := DaysBetween(currentEnd, newEnd)
	if added <= 0 {
		return 0, fmt.Errorf("%w: new end date must be after the current end date", domain.ErrValidation)
	}
	return ProratedCostPaise(pricePaise, period, added)
}

// CartTotalPaise sums price × quantity across items. No period proration
// happens at the cart level.
func CartTotalPaise(items []domain.CartItem) (int64, error) {
	var total int64
	for _, item := range items {
		if item.Quantity <= 0 {
			return 0, fmt.Errorf("%w: quantity must be positive for product %d", domain.ErrValidation, item.ProductID)
		}
		if item.PricePaise < 0 {
			return 0, fmt.Errorf("%w: negative price for product %d", domain.ErrValidation, item.ProductID)
		}
		total += item.PricePaise * item.Quantity
	}
	return total, nil
}

// CheckoutTotalPaise adds the fixed delivery fee to a cart total.
func CheckoutTotalPaise(cartTotalPaise int64) int64 {
	return cartTotalPaise + DeliveryFeePaise
}

func ceilDiv(a, b int64) int64 {
	return (a + b - 1) / b
}
