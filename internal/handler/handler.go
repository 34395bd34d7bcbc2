// Package handler provides the HTTP and MCP surface of the invoice gateway.
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"wc-invoice-gateway/internal/assets"
	"wc-invoice-gateway/internal/i18n"
	"wc-invoice-gateway/internal/middleware"
	"wc-invoice-gateway/internal/model"
	"wc-invoice-gateway/internal/plugin"
	"wc-invoice-gateway/internal/settings"
)

// Handler holds dependencies for HTTP handlers.
type Handler struct {
	plugin   *plugin.Plugin
	settings *settings.Loader
	scripts  *assets.Registry
	logger   *slog.Logger
}

// New creates a Handler serving p. Settings are re-read from loader on
// every request.
func New(p *plugin.Plugin, loader *settings.Loader, scripts *assets.Registry, logger *slog.Logger) *Handler {
	return &Handler{
		plugin:   p,
		settings: loader,
		scripts:  scripts,
		logger:   logger,
	}
}

// RegisterRoutes registers all HTTP routes with the given ServeMux.
// Uses Go 1.22+ method routing patterns.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	// Checkout block
	mux.HandleFunc("GET /payment-methods", h.handleListPaymentMethods)
	mux.HandleFunc("GET /payment-methods/{name}", h.handleGetPaymentMethod)
	mux.HandleFunc("GET /scripts", h.handleListScripts)

	// Checkout and orders
	mux.HandleFunc("POST /checkout/availability", h.handleAvailability)
	mux.HandleFunc("POST /orders/{id}/payment", h.handleProcessPayment)
	mux.HandleFunc("POST /orders/actions", h.handleOrderActions)
	mux.HandleFunc("GET /orders/{id}/instructions", h.handleOrderInstructions)

	// Admin
	mux.HandleFunc("GET /admin/notices", h.handleNotices)
	mux.HandleFunc("GET /admin/action-links", h.handleActionLinks)
	mux.HandleFunc("GET /admin/form-fields", h.handleFormFields)
	mux.HandleFunc("GET /admin/gateways", h.handleGateways)
	mux.HandleFunc("GET /admin/compat", h.handleCompat)

	// MCP transport - JSON-RPC endpoint using official MCP SDK
	mux.Handle("/mcp", h.NewMCPHandler())

	// Health check
	mux.HandleFunc("GET /health", h.handleHealth)
	mux.HandleFunc("GET /healthz", h.handleHealth)
}

// translator picks the response language from Accept-Language.
func (h *Handler) translator(r *http.Request) *i18n.Translator {
	return h.plugin.Translator(r.Header.Get("Accept-Language"))
}

// handleHealth returns a simple health check response.
// GET /health, GET /healthz
func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, healthResponse{
		Status:          "ok",
		WooCommerce:     h.plugin.WooCommerceActive(),
		GatewayIncluded: h.plugin.GatewayIncluded(),
	})
}

type healthResponse struct {
	Status          string `json:"status"`
	WooCommerce     bool   `json:"woocommerce"`
	GatewayIncluded bool   `json:"gateway_included"`
}

// === Response Helpers ===

// writeJSON sends a JSON response with the given status code.
func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", slog.Any("error", err))
	}
}

// writeError sends an error response, extracting status/code from APIError if present.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	apiErr, ok := model.AsAPIError(err)
	if ok {
		middleware.Annotate(r.Context(), slog.String("error_code", apiErr.Code))
		if apiErr.StoreCode != "" {
			middleware.Annotate(r.Context(), slog.String("store_code", apiErr.StoreCode))
		}
	} else {
		apiErr = model.NewInternalError(err)
		h.logger.Error("internal error", slog.Any("error", err))
	}

	h.writeJSON(w, apiErr.StatusCode, errorResponse{
		Error: errorBody{
			Code:    apiErr.Code,
			Message: apiErr.Message,
		},
	})
}

// errorResponse is the JSON structure for error responses.
type errorResponse struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MaxRequestBodySize limits JSON request bodies to 1MB to prevent DoS.
const MaxRequestBodySize = 1 << 20 // 1MB

// decodeJSON reads JSON from request body into v.
// Limits body size to MaxRequestBodySize to prevent memory exhaustion.
// Returns an APIError if decoding fails.
func decodeJSON(r *http.Request, v interface{}) error {
	r.Body = http.MaxBytesReader(nil, r.Body, MaxRequestBodySize)

	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		// Don't expose internal error details to client
		return model.NewValidationError("body", "invalid JSON")
	}
	return nil
}
