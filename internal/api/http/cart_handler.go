package http

import (
	"encoding/json"
	"net/http"

	"borrowbay-backend/internal/domain"
	"borrowbay-backend/internal/pricing"
	"borrowbay-backend/internal/service"
)

// CartHandler computes totals for client-held carts. Nothing is persisted.
type CartHandler struct {
	carts service.CartService
}

func NewCartHandler(carts service.CartService) *CartHandler {
	return &CartHandler{carts: carts}
}

type cartRequest struct {
	Items []domain.CartItem `json:"items"`
}

type cartTotalResponse struct {
	TotalPaise int64 `json:"total_paise"`
}

type checkoutTotalResponse struct {
	CartTotalPaise   int64 `json:"cart_total_paise"`
	DeliveryFeePaise int64 `json:"delivery_fee_paise"`
	TotalPaise       int64 `json:"total_paise"`
}

// Total handles POST /api/cart/total.
func (h *CartHandler) Total(w http.ResponseWriter, r *http.Request) {
	var req cartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	total, err := h.carts.CartTotal(r.Context(), req.Items)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cartTotalResponse{TotalPaise: total})
}

// CheckoutTotal handles POST /api/cart/checkout-total.
func (h *CartHandler) CheckoutTotal(w http.ResponseWriter, r *http.Request) {
	var req cartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	total, err := h.carts.CheckoutTotal(r.Context(), req.Items)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, checkoutTotalResponse{
		CartTotalPaise:   total - pricing.DeliveryFeePaise,
		DeliveryFeePaise: pricing.DeliveryFeePaise,
		TotalPaise:       total,
	})
}
