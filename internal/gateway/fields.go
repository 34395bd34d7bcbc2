package gateway

import (
	"wc-invoice-gateway/internal/i18n"
	"wc-invoice-gateway/internal/settings"
)

// FormField is one field of the gateway's admin settings form.
type FormField struct {
	Key         string   `json:"key"`
	Type        string   `json:"type"`
	Title       string   `json:"title"`
	Label       string   `json:"label,omitempty"`
	Description string   `json:"description,omitempty"`
	DescTip     bool     `json:"desc_tip,omitempty"`
	Default     any      `json:"default"`
	Options     []Choice `json:"options,omitempty"`
}

// FormFields returns the admin form definition. Defaults are what a fresh
// install stores.
func (g *Gateway) FormFields(t *i18n.Translator) []FormField {
	statuses := settings.OrderStatuses()
	statusChoices := make([]Choice, len(statuses))
	for i, s := range statuses {
		statusChoices[i] = Choice{Value: "wc-" + string(s), Label: statusLabel(string(s))}
	}

	return []FormField{
		{
			Key:     settings.KeyEnabled,
			Type:    "checkbox",
			Title:   t.T(i18n.MsgFieldEnabled),
			Label:   t.T(i18n.MsgFieldEnabledLabel),
			Default: "no",
		},
		{
			Key:         settings.KeyTitle,
			Type:        "text",
			Title:       t.T(i18n.MsgFieldTitle),
			Description: t.T(i18n.MsgFieldTitleHelp),
			DescTip:     true,
			Default:     t.T(i18n.MsgDefaultTitle),
		},
		{
			Key:         settings.KeyDescription,
			Type:        "textarea",
			Title:       t.T(i18n.MsgFieldDescription),
			Description: t.T(i18n.MsgFieldDescriptionHelp),
			DescTip:     true,
			Default:     t.T(i18n.MsgDefaultDescription),
		},
		{
			Key:         settings.KeyInstructions,
			Type:        "textarea",
			Title:       t.T(i18n.MsgFieldInstructions),
			Description: t.T(i18n.MsgFieldInstructionsHelp),
			DescTip:     true,
			Default:     t.T(i18n.MsgDefaultInstructions),
		},
		{
			Key:         settings.KeyOrderStatus,
			Type:        "select",
			Title:       t.T(i18n.MsgFieldOrderStatus),
			Description: t.T(i18n.MsgFieldOrderStatusHelp),
			DescTip:     true,
			Default:     "wc-" + string(settings.DefaultOrderStatus),
			Options:     statusChoices,
		},
		{
			Key:         settings.KeyUserRoles,
			Type:        "multiselect",
			Title:       t.T(i18n.MsgFieldUserRoles),
			Description: t.T(i18n.MsgFieldUserRolesHelp),
			DescTip:     true,
			Default:     []string{},
			Options:     copyChoices(g.cfg.Roles),
		},
		{
			Key:         settings.KeyEnableForMethods,
			Type:        "multiselect",
			Title:       t.T(i18n.MsgFieldShippingMethods),
			Description: t.T(i18n.MsgFieldShippingHelp),
			DescTip:     true,
			Default:     []string{},
			Options:     copyChoices(g.cfg.ShippingMethods),
		},
		{
			Key:     settings.KeyEnableForVirtual,
			Type:    "checkbox",
			Title:   t.T(i18n.MsgFieldVirtual),
			Label:   t.T(i18n.MsgFieldVirtualLabel),
			Default: "yes",
		},
	}
}

var statusLabels = map[string]string{
	"pending":    "Pending payment",
	"processing": "Processing",
	"on-hold":    "On hold",
	"completed":  "Completed",
}

func statusLabel(s string) string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return s
}

func copyChoices(in []Choice) []Choice {
	out := make([]Choice, len(in))
	copy(out, in)
	return out
}
