package service

import (
	"context"

	"borrowbay-backend/internal/domain"
	"borrowbay-backend/internal/pricing"
)

// cartService computes cart and checkout totals. Cart math is deliberately
// separate from rental proration: carts sum price × quantity with no period
// awareness.
type cartService struct{}

func NewCartService() CartService {
	return &cartService{}
}

func (s *cartService) CartTotal(ctx context.Context, items []domain.CartItem) (int64, error) {
	return pricing.CartTotalPaise(items)
}

func (s *cartService) CheckoutTotal(ctx context.Context, items []domain.CartItem) (int64, error) {
	cartTotal, err := pricing.CartTotalPaise(items)
	if err != nil {
		return 0, err
	}
	return pricing.CheckoutTotalPaise(cartTotal), nil
}
