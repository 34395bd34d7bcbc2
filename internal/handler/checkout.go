package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"wc-invoice-gateway/internal/gateway"
	"wc-invoice-gateway/internal/middleware"
	"wc-invoice-gateway/internal/model"
)

// AvailabilityRequest is the cart state sent to POST /checkout/availability.
// The user comes from the Invoice-User header.
type AvailabilityRequest struct {
	NeedsShipping         bool     `json:"needs_shipping"`
	ChosenShippingMethods []string `json:"chosen_shipping_methods"`
}

// AvailabilityResponse reports whether the gateway is offered.
type AvailabilityResponse struct {
	Method    string `json:"method"`
	Available bool   `json:"available"`
}

// handleAvailability evaluates the gateway availability rule.
// POST /checkout/availability
func (h *Handler) handleAvailability(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, err := requestUser(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var req AvailabilityRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	available := h.available(r, gateway.CheckoutContext{
		User:                  user,
		NeedsShipping:         req.NeedsShipping,
		ChosenShippingMethods: req.ChosenShippingMethods,
	})

	h.logger.DebugContext(ctx, "checked gateway availability",
		slog.Bool("available", available),
		slog.Bool("needs_shipping", req.NeedsShipping),
		slog.Int("roles", len(user.Roles)),
	)

	h.writeJSON(w, http.StatusOK, AvailabilityResponse{Method: gateway.ID, Available: available})
}

func (h *Handler) available(r *http.Request, cc gateway.CheckoutContext) bool {
	if !h.plugin.GatewayIncluded() {
		return false
	}
	return h.plugin.Gateway().IsAvailable(h.settings.Resolve(r.Context()), cc)
}

// handleProcessPayment places an order with the invoice gateway.
// POST /orders/{id}/payment
func (h *Handler) handleProcessPayment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	orderID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || orderID <= 0 {
		h.writeError(w, r, model.NewValidationError("id", "order ID must be a positive integer"))
		return
	}

	middleware.Annotate(ctx, slog.Int("order_id", orderID), slog.String("payment_method", gateway.ID))

	if !h.plugin.GatewayIncluded() {
		h.writeError(w, r, model.NewNotFoundError("payment gateway"))
		return
	}

	result, err := h.plugin.Gateway().ProcessPayment(ctx, h.settings.Resolve(ctx), h.translator(r), orderID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, result)
}

// handleOrderInstructions returns the thank-you and email instructions
// for an invoice order. sent_to_admin=true asks for the admin copy of the
// email, which carries none.
// GET /orders/{id}/instructions
func (h *Handler) handleOrderInstructions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	orderID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || orderID <= 0 {
		h.writeError(w, r, model.NewValidationError("id", "order ID must be a positive integer"))
		return
	}
	middleware.Annotate(ctx, slog.Int("order_id", orderID), slog.String("payment_method", gateway.ID))

	var sentToAdmin bool
	if v := r.URL.Query().Get("sent_to_admin"); v != "" {
		if sentToAdmin, err = strconv.ParseBool(v); err != nil {
			h.writeError(w, r, model.NewValidationError("sent_to_admin", "must be a boolean"))
			return
		}
	}

	if !h.plugin.GatewayIncluded() {
		h.writeError(w, r, model.NewNotFoundError("payment gateway"))
		return
	}

	instructions, err := h.plugin.Gateway().OrderInstructions(ctx, h.settings.Resolve(ctx), h.translator(r), orderID, sentToAdmin)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, instructions)
}

// OrderActionsRequest is the body of POST /orders/actions.
type OrderActionsRequest struct {
	Order   model.Order         `json:"order"`
	Actions []model.OrderAction `json:"actions"`
}

// OrderActionsResponse carries the filtered actions.
type OrderActionsResponse struct {
	Actions []model.OrderAction `json:"actions"`
}

// handleOrderActions filters the My Account order actions.
// POST /orders/actions
func (h *Handler) handleOrderActions(w http.ResponseWriter, r *http.Request) {
	var req OrderActionsRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, OrderActionsResponse{
		Actions: h.orderActions(r, req),
	})
}

func (h *Handler) orderActions(r *http.Request, req OrderActionsRequest) []model.OrderAction {
	actions := h.plugin.OrderActions(r.Context(), req.Actions, req.Order)
	if actions == nil {
		actions = []model.OrderAction{}
	}
	return actions
}
