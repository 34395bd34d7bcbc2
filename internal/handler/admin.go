package handler

import (
	"net/http"

	"wc-invoice-gateway/internal/compat"
	"wc-invoice-gateway/internal/gateway"
	"wc-invoice-gateway/internal/model"
)

// handleNotices returns the admin notices.
// GET /admin/notices
func (h *Handler) handleNotices(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, model.NoticeList{
		Items: h.plugin.Notices(r.Context(), h.translator(r)),
	})
}

// handleActionLinks returns the plugin action links.
// GET /admin/action-links
func (h *Handler) handleActionLinks(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.plugin.ActionLinks(r.Context(), h.translator(r)))
}

// FormFieldsResponse describes the gateway settings screen.
type FormFieldsResponse struct {
	ID                string              `json:"id"`
	MethodTitle       string              `json:"method_title"`
	MethodDescription string              `json:"method_description"`
	HasFields         bool                `json:"has_fields"`
	Supports          []string            `json:"supports"`
	Fields            []gateway.FormField `json:"fields"`
}

// handleFormFields returns the gateway settings form definition.
// GET /admin/form-fields
func (h *Handler) handleFormFields(w http.ResponseWriter, r *http.Request) {
	g := h.plugin.Gateway()
	t := h.translator(r)
	h.writeJSON(w, http.StatusOK, FormFieldsResponse{
		ID:                g.ID(),
		MethodTitle:       g.MethodTitle(t),
		MethodDescription: g.MethodDescription(t),
		HasFields:         g.HasFields(),
		Supports:          g.Supports(),
		Fields:            g.FormFields(t),
	})
}

// handleGateways returns the filtered payment gateway list.
// GET /admin/gateways
func (h *Handler) handleGateways(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.plugin.Gateways(r.Context()))
}

// CompatResponse reports the host store and feature declarations.
type CompatResponse struct {
	Host         *model.SystemStatus  `json:"host"`
	Requirements compat.Requirements  `json:"requirements"`
	Supported    bool                 `json:"supported"`
	Tested       bool                 `json:"tested"`
	Declarations []compat.Declaration `json:"declarations"`
}

// handleCompat reports the detected store against the plugin requirements.
// GET /admin/compat
func (h *Handler) handleCompat(w http.ResponseWriter, r *http.Request) {
	req := compat.PluginRequirements
	resp := CompatResponse{
		Requirements: req,
		Declarations: h.plugin.Features().Declarations(),
	}
	if host, ok := h.plugin.Host(); ok {
		resp.Host = host
		resp.Supported = req.SatisfiedBy(host.WooCommerceVersion) && req.WordPressSatisfiedBy(host.WordPressVersion)
		resp.Tested = req.Tested(host.WooCommerceVersion)
	}
	h.writeJSON(w, http.StatusOK, resp)
}
