package handler

import (
	"log/slog"
	"net/http"

	"wc-invoice-gateway/internal/assets"
	"wc-invoice-gateway/internal/middleware"
	"wc-invoice-gateway/internal/model"
)

// PaymentMethodResponse describes one block payment method for the
// checkout script.
type PaymentMethodResponse struct {
	Name          string                  `json:"name"`
	Active        bool                    `json:"active"`
	ScriptHandles []string                `json:"script_handles"`
	Data          model.PaymentMethodData `json:"data"`
}

// handleListPaymentMethods returns the active block payment methods.
// GET /payment-methods
func (h *Handler) handleListPaymentMethods(w http.ResponseWriter, r *http.Request) {
	user, err := requestUser(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	resolver := h.settings.Resolve(r.Context())
	methods := h.plugin.PaymentMethods().Active(resolver)

	out := make([]PaymentMethodResponse, 0, len(methods))
	for _, m := range methods {
		out = append(out, PaymentMethodResponse{
			Name:          m.Name(),
			Active:        true,
			ScriptHandles: m.ScriptHandles(),
			Data:          m.Project(resolver, user),
		})
	}

	h.writeJSON(w, http.StatusOK, out)
}

// handleGetPaymentMethod returns the payload of one payment method,
// whether or not it is active.
// GET /payment-methods/{name}
func (h *Handler) handleGetPaymentMethod(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	name := r.PathValue("name")
	middleware.Annotate(ctx, slog.String("payment_method", name))

	method, ok := h.plugin.PaymentMethods().Get(name)
	if !ok {
		h.writeError(w, r, model.NewNotFoundError("payment method"))
		return
	}

	user, err := requestUser(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	resolver := h.settings.Resolve(ctx)
	h.logger.DebugContext(ctx, "projecting payment method data",
		slog.String("method", name),
		slog.Int("user_id", user.ID),
	)

	h.writeJSON(w, http.StatusOK, PaymentMethodResponse{
		Name:          method.Name(),
		Active:        method.IsActive(resolver),
		ScriptHandles: method.ScriptHandles(),
		Data:          method.Project(resolver, user),
	})
}

// handleListScripts returns the registered client scripts.
// GET /scripts
func (h *Handler) handleListScripts(w http.ResponseWriter, r *http.Request) {
	scripts := h.scripts.All()
	if scripts == nil {
		scripts = []assets.Script{}
	}
	h.writeJSON(w, http.StatusOK, scripts)
}
