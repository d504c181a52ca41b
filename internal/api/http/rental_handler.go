package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"borrowbay-backend/internal/domain"
	"borrowbay-backend/internal/service"

	"github.com/gorilla/mux"
)

const dateLayout = "2006-01-02"

// RentalHandler exposes the rental lifecycle over HTTP.
type RentalHandler struct {
	rentals service.RentalService
}

func NewRentalHandler(rentals service.RentalService) *RentalHandler {
	return &RentalHandler{rentals: rentals}
}

type createRentalRequest struct {
	ProductID int64  `json:"product_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type decisionRequest struct {
	Decision string `json:"decision"`
}

type extensionRequest struct {
	NewEndDate string `json:"new_end_date"`
}

type rentalListResponse struct {
	Rentals    []domain.Rental `json:"rentals"`
	TotalCount int64           `json:"total_count"`
	Page       int64           `json:"page"`
	PageSize   int64           `json:"page_size"`
}

// Create handles POST /api/rentals.
func (h *RentalHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req createRentalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	start, end, err := parseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	rental, err := h.rentals.CreateRental(r.Context(), userID, req.ProductID, start, end)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rental)
}

// Get handles GET /api/rentals/{id}.
func (h *RentalHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	rentalID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	rental, err := h.rentals.GetRental(r.Context(), userID, rentalID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rental)
}

// Decide handles POST /api/rentals/{id}/decision (owner approves or rejects
// a pending booking).
func (h *RentalHandler) Decide(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	rentalID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var req decisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rental, err := h.rentals.DecideBooking(r.Context(), userID, rentalID, service.Decision(req.Decision))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rental)
}

// RequestExtension handles POST /api/rentals/{id}/extension.
func (h *RentalHandler) RequestExtension(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	rentalID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var req extensionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	newEnd, err := time.Parse(dateLayout, req.NewEndDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "new_end_date must be YYYY-MM-DD")
		return
	}

	outcome, err := h.rentals.RequestExtension(r.Context(), userID, rentalID, newEnd)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	// 200 when the extension applied immediately, 202 when it awaits the owner.
	status := http.StatusOK
	if outcome.Extension != nil {
		status = http.StatusAccepted
	}
	writeJSON(w, status, outcome)
}

// DecideExtension handles POST /api/extensions/{id}/decision.
func (h *RentalHandler) DecideExtension(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	extensionID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var req decisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rental, err := h.rentals.DecideExtension(r.Context(), userID, extensionID, service.Decision(req.Decision))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rental)
}

// Complete handles POST /api/rentals/{id}/complete.
func (h *RentalHandler) Complete(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	rentalID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	rental, err := h.rentals.CompleteRental(r.Context(), userID, rentalID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rental)
}

// List handles GET /api/rentals?role=borrowed|owned&status=&page=&page_size=.
func (h *RentalHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	status := r.URL.Query().Get("status")
	page, pageSize := pagination(r)

	var (
		rentals []domain.Rental
		total   int64
		err     error
	)
	switch role := r.URL.Query().Get("role"); role {
	case "", "borrowed":
		rentals, total, err = h.rentals.ListBorrowed(r.Context(), userID, status, page, pageSize)
	case "owned":
		rentals, total, err = h.rentals.ListOwned(r.Context(), userID, status, page, pageSize)
	default:
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown role %q", role))
		return
	}
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rentalListResponse{
		Rentals:    rentals,
		TotalCount: total,
		Page:       page,
		PageSize:   pageSize,
	})
}

// ListExtensions handles GET /api/rentals/{id}/extensions.
func (h *RentalHandler) ListExtensions(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	rentalID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	extensions, err := h.rentals.ListExtensions(r.Context(), userID, rentalID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"extensions": extensions})
}

func pathID(r *http.Request, name string) (int64, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s %q", name, raw)
	}
	return id, nil
}

func pagination(r *http.Request) (page, pageSize int64) {
	page, _ = strconv.ParseInt(r.URL.Query().Get("page"), 10, 64)
	pageSize, _ = strconv.ParseInt(r.URL.Query().Get("page_size"), 10, 64)
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}

func parseDateRange(start, end string) (time.Time, time.Time, error) {
	s, err := time.Parse(dateLayout, start)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("start_date must be YYYY-MM-DD")
	}
	e, err := time.Parse(dateLayout, end)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("end_date must be YYYY-MM-DD")
	}
	return s, e, nil
}
