package http

import (
	"encoding/json"
	"net/http"

	"borrowbay-backend/internal/domain"
	"borrowbay-backend/internal/service"
)

type ProductHandler struct {
	products service.ProductService
}

func NewProductHandler(products service.ProductService) *ProductHandler {
	return &ProductHandler{products: products}
}

type productRequest struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	PricePaise   int64    `json:"price_paise"`
	Period       string   `json:"period"`
	DepositPaise int64    `json:"deposit_paise"`
	Images       []string `json:"images"`
	Status       string   `json:"status"`
}

type productListResponse struct {
	Products   []domain.Product `json:"products"`
	TotalCount int64            `json:"total_count"`
	Page       int64            `json:"page"`
	PageSize   int64            `json:"page_size"`
}

// Create handles POST /api/products.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	product := &domain.Product{
		OwnerID:      userID,
		Title:        req.Title,
		Description:  req.Description,
		PricePaise:   req.PricePaise,
		Period:       domain.RatePeriod(req.Period),
		DepositPaise: req.DepositPaise,
		Images:       req.Images,
		Status:       domain.ProductStatusAvailable,
	}
	if err := h.products.AddProduct(r.Context(), product); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, product)
}

// Get handles GET /api/products/{id}. Listings are public.
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	productID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	product, err := h.products.GetProduct(r.Context(), productID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

// Update handles PUT /api/products/{id}.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	productID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	product := &domain.Product{
		ID:           productID,
		Title:        req.Title,
		Description:  req.Description,
		PricePaise:   req.PricePaise,
		Period:       domain.RatePeriod(req.Period),
		DepositPaise: req.DepositPaise,
		Images:       req.Images,
		Status:       domain.ProductStatus(req.Status),
	}
	if err := h.products.UpdateProduct(r.Context(), userID, product); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

// List handles GET /api/products (available listings, public).
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	products, total, err := h.products.ListAvailableProducts(r.Context(), page, pageSize)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, productListResponse{
		Products:   products,
		TotalCount: total,
		Page:       page,
		PageSize:   pageSize,
	})
}

// ListMine handles GET /api/my/products.
func (h *ProductHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	page, pageSize := pagination(r)
	products, total, err := h.products.ListMyProducts(r.Context(), userID, page, pageSize)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, productListResponse{
		Products:   products,
		TotalCount: total,
		Page:       page,
		PageSize:   pageSize,
	})
}
