package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"bitary-listing-service/internal/domain"
	"bitary-listing-service/internal/service"
)

// ShopBrowser is the shop use case consumed by the transports.
type ShopBrowser interface {
	Browse(ctx context.Context, q service.ShopQuery) (*service.ShopPage, error)
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
}

// ClinicBrowser is the clinics use case consumed by the transports.
type ClinicBrowser interface {
	Browse(ctx context.Context, q service.ClinicQuery) (*service.ClinicPage, error)
	GetClinic(ctx context.Context, id int64) (*domain.Clinic, error)
}

// HTTPHandler holds dependencies for HTTP handlers.
type HTTPHandler struct {
	shop     ShopBrowser
	clinics  ClinicBrowser
	validate *validator.Validate
	logger   *zap.Logger
}

// NewHTTPHandler creates a new HTTPHandler with dependencies.
func NewHTTPHandler(shop ShopBrowser, clinics ClinicBrowser, logger *zap.Logger) *HTTPHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTPHandler{
		shop:     shop,
		clinics:  clinics,
		validate: validator.New(),
		logger:   logger,
	}
}

// --- Helpers ---

// ErrorResponse defines the structure for JSON error responses.
type ErrorResponse struct {
	Error     string `json:"error"`
	Retryable bool   `json:"retryable,omitempty"`
}

func (h *HTTPHandler) respondWithError(w http.ResponseWriter, code int, message string, retryable bool) {
	h.respondWithJSON(w, code, ErrorResponse{Error: message, Retryable: retryable})
}

func (h *HTTPHandler) respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			h.logger.Error("failed to encode JSON response", zap.Error(err))
		}
	}
}

// respondWithServiceError maps use case errors onto HTTP statuses.
func (h *HTTPHandler) respondWithServiceError(w http.ResponseWriter, err error, notFoundMsg string) {
	switch {
	case errors.Is(err, service.ErrInvalidQuery):
		h.respondWithError(w, http.StatusBadRequest, err.Error(), false)
	case errors.Is(err, service.ErrNotFound):
		h.respondWithError(w, http.StatusNotFound, notFoundMsg, false)
	case errors.Is(err, service.ErrUpstream):
		retryable := service.IsRetryable(err)
		msg := "Failed to load listing"
		if retryable {
			msg += ", please retry"
		}
		h.logger.Warn("upstream failure", zap.Bool("retryable", retryable), zap.Error(err))
		h.respondWithError(w, http.StatusBadGateway, msg, retryable)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		h.respondWithError(w, http.StatusGatewayTimeout, "Request timed out", true)
	default:
		h.logger.Error("unhandled service error", zap.Error(err))
		h.respondWithError(w, http.StatusInternalServerError, "Internal server error", false)
	}
}

func parseID(r *http.Request, param string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, param), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// --- Shop Handlers ---

// ShopQueryInput defines the accepted shop listing query parameters.
type ShopQueryInput struct {
	Search   string `validate:"max=200"`
	Category string `validate:"max=255"`
	Sort     string `validate:"omitempty,oneof=default relevance price-asc price-desc name-asc name-desc"`
	Page     int    `validate:"gte=1"`
}

// PaginationInfo matches the pagination block of list responses.
type PaginationInfo struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalItems int `json:"total_items"`
	TotalPages int `json:"total_pages"`
}

// ShopListResponse is the body of GET /api/v1/shop/products.
type ShopListResponse struct {
	Data       []domain.Product  `json:"data"`
	Categories []domain.Category `json:"categories"`
	Pagination PaginationInfo    `json:"pagination"`
}

func (h *HTTPHandler) ListShopProducts(w http.ResponseWriter, r *http.Request) {
	qParams := r.URL.Query()

	page, err := strconv.Atoi(qParams.Get("page"))
	if err != nil || page <= 0 {
		page = 1 // Default page
	}
	input := ShopQueryInput{
		Search:   qParams.Get("q"),
		Category: qParams.Get("category"),
		Sort:     qParams.Get("sort"),
		Page:     page,
	}
	if err := h.validate.Struct(input); err != nil {
		h.respondWithError(w, http.StatusBadRequest, "Validation failed: "+err.Error(), false)
		return
	}

	result, err := h.shop.Browse(r.Context(), service.ShopQuery(input))
	if err != nil {
		h.respondWithServiceError(w, err, "")
		return
	}

	h.respondWithJSON(w, http.StatusOK, ShopListResponse{
		Data:       nonNil(result.Products),
		Categories: nonNil(result.Categories),
		Pagination: PaginationInfo{
			Page:       result.Page.Page,
			Limit:      result.Page.PageSize,
			TotalItems: result.Page.TotalItems,
			TotalPages: result.Page.TotalPages,
		},
	})
}

func (h *HTTPHandler) GetProductByID(w http.ResponseWriter, r *http.Request) {
	productID, ok := parseID(r, "productId")
	if !ok {
		h.respondWithError(w, http.StatusBadRequest, "Invalid product ID format", false)
		return
	}
	product, err := h.shop.GetProduct(r.Context(), productID)
	if err != nil {
		h.respondWithServiceError(w, err, "Product not found")
		return
	}
	h.respondWithJSON(w, http.StatusOK, product)
}

// --- Clinic Handlers ---

// ClinicQueryInput defines the accepted clinics listing query parameters.
type ClinicQueryInput struct {
	Search   string `validate:"max=200"`
	Location string `validate:"max=200"`
	Tag      string `validate:"omitempty,oneof=all premium"`
	Sort     string `validate:"omitempty,oneof=default relevance rating name-asc name-desc"`
}

// ClinicListResponse is the body of GET /api/v1/clinics.
type ClinicListResponse struct {
	Data    []domain.Clinic `json:"data"`
	Count   int             `json:"count"`
	Summary string          `json:"summary"`
}

func (h *HTTPHandler) ListClinics(w http.ResponseWriter, r *http.Request) {
	qParams := r.URL.Query()
	input := ClinicQueryInput{
		Search:   qParams.Get("search"),
		Location: qParams.Get("location"),
		Tag:      qParams.Get("tag"),
		Sort:     qParams.Get("sort"),
	}
	if err := h.validate.Struct(input); err != nil {
		h.respondWithError(w, http.StatusBadRequest, "Validation failed: "+err.Error(), false)
		return
	}

	result, err := h.clinics.Browse(r.Context(), service.ClinicQuery(input))
	if err != nil {
		h.respondWithServiceError(w, err, "")
		return
	}

	h.respondWithJSON(w, http.StatusOK, ClinicListResponse{
		Data:    nonNil(result.Clinics),
		Count:   result.Count,
		Summary: result.Summary,
	})
}

func (h *HTTPHandler) GetClinicByID(w http.ResponseWriter, r *http.Request) {
	clinicID, ok := parseID(r, "clinicId")
	if !ok {
		h.respondWithError(w, http.StatusBadRequest, "Invalid clinic ID format", false)
		return
	}
	clinic, err := h.clinics.GetClinic(r.Context(), clinicID)
	if err != nil {
		h.respondWithServiceError(w, err, "Clinic not found")
		return
	}
	h.respondWithJSON(w, http.StatusOK, clinic)
}

// nonNil ensures an empty list encodes as [] rather than null.
func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

// --- Route Registration ---

// RegisterRoutes sets up the HTTP routes for the service.
func (h *HTTPHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/shop/products", func(r chi.Router) {
		r.Get("/", h.ListShopProducts)          // GET /api/v1/shop/products
		r.Get("/{productId}", h.GetProductByID) // GET /api/v1/shop/products/{productId}
	})

	r.Route("/api/v1/clinics", func(r chi.Router) {
		r.Get("/", h.ListClinics)             // GET /api/v1/clinics
		r.Get("/{clinicId}", h.GetClinicByID) // GET /api/v1/clinics/{clinicId}
	})
}
