package http

import (
	"net/http"

	"borrowbay-backend/internal/config"
	"borrowbay-backend/internal/security"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Auth          *AuthHandler
	Products      *ProductHandler
	Rentals       *RentalHandler
	Cart          *CartHandler
	Notifications *NotificationHandler
}

// NewRouter wires all routes and middleware. Authenticated routes sit behind
// the JWT middleware; listings, auth, health and metrics stay public.
func NewRouter(cfg *config.Config, tokens security.TokenManager, h Handlers) http.Handler {
	r := mux.NewRouter()

	r.Use(RequestIDMiddleware)
	r.Use(RecoveryMiddleware)
	r.Use(LoggingMiddleware)
	r.Use(MetricsMiddleware)

	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()

	// Public routes.
	api.HandleFunc("/auth/signup", h.Auth.Signup).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", h.Auth.Login).Methods(http.MethodPost)
	api.HandleFunc("/products", h.Products.List).Methods(http.MethodGet)
	api.HandleFunc("/products/{id:[0-9]+}", h.Products.Get).Methods(http.MethodGet)
	api.HandleFunc("/cart/total", h.Cart.Total).Methods(http.MethodPost)
	api.HandleFunc("/cart/checkout-total", h.Cart.CheckoutTotal).Methods(http.MethodPost)

	// Authenticated routes.
	auth := api.NewRoute().Subrouter()
	auth.Use(AuthMiddleware(tokens))

	auth.HandleFunc("/products", h.Products.Create).Methods(http.MethodPost)
	auth.HandleFunc("/products/{id:[0-9]+}", h.Products.Update).Methods(http.MethodPut)
	auth.HandleFunc("/my/products", h.Products.ListMine).Methods(http.MethodGet)

	auth.HandleFunc("/rentals", h.Rentals.Create).Methods(http.MethodPost)
	auth.HandleFunc("/rentals", h.Rentals.List).Methods(http.MethodGet)
	auth.HandleFunc("/rentals/{id:[0-9]+}", h.Rentals.Get).Methods(http.MethodGet)
	auth.HandleFunc("/rentals/{id:[0-9]+}/decision", h.Rentals.Decide).Methods(http.MethodPost)
	auth.HandleFunc("/rentals/{id:[0-9]+}/extension", h.Rentals.RequestExtension).Methods(http.MethodPost)
	auth.HandleFunc("/rentals/{id:[0-9]+}/extensions", h.Rentals.ListExtensions).Methods(http.MethodGet)
	auth.HandleFunc("/rentals/{id:[0-9]+}/complete", h.Rentals.Complete).Methods(http.MethodPost)
	auth.HandleFunc("/extensions/{id:[0-9]+}/decision", h.Rentals.DecideExtension).Methods(http.MethodPost)

	auth.HandleFunc("/notifications", h.Notifications.List).Methods(http.MethodGet)
	auth.HandleFunc("/notifications/{id:[0-9]+}/read", h.Notifications.MarkAsRead).Methods(http.MethodPost)

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.Server.CorsAllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
	})

	return c.Handler(r)
}
