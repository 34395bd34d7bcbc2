// Package blocks integrates the gateway with the block-based checkout:
// it registers the client script and projects the gateway settings into
// the payload the script reads.
package blocks

import (
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"wc-invoice-gateway/internal/assets"
	"wc-invoice-gateway/internal/model"
	"wc-invoice-gateway/internal/settings"
)

const (
	// ScriptHandle is the handle the checkout block script registers under.
	ScriptHandle = "wc-invoice-payments-blocks"

	// TextDomain is the translation domain of the script.
	TextDomain = "wc-invoice-gateway"

	scriptPath   = "/assets/js/frontend/blocks.js"
	manifestPath = "assets/js/frontend/blocks.asset.json"
	languagesDir = "languages/"
)

// InvoiceConfig configures the invoice payment method type.
type InvoiceConfig struct {
	Name      string   // payment method id, "invoice"
	PluginURL string   // public base URL of the plugin
	PluginDir string   // local directory holding assets/ and languages/
	Supports  []string // gateway feature tags
}

// Invoice is the block payment method type for the invoice gateway.
type Invoice struct {
	cfg     InvoiceConfig
	scripts *assets.Registry
	logger  *slog.Logger

	once    sync.Once
	handles []string
}

// NewInvoice returns the payment method type. Scripts are registered into
// scripts lazily, on first use.
func NewInvoice(cfg InvoiceConfig, scripts *assets.Registry, logger *slog.Logger) *Invoice {
	if cfg.Supports == nil {
		cfg.Supports = []string{}
	}
	return &Invoice{cfg: cfg, scripts: scripts, logger: logger}
}

// Name returns the payment method id.
func (m *Invoice) Name() string {
	return m.cfg.Name
}

// IsActive reports whether the method is enabled. Inactive methods do not
// get their scripts enqueued.
func (m *Invoice) IsActive(r *settings.Resolver) bool {
	return r.IsActive()
}

// ScriptHandles registers the checkout script on first call and returns its
// handle. Later calls return the same handles without registering again.
func (m *Invoice) ScriptHandles() []string {
	m.once.Do(m.registerScript)
	out := make([]string, len(m.handles))
	copy(out, m.handles)
	return out
}

// Project builds the payload for the checkout script. It never fails.
func (m *Invoice) Project(r *settings.Resolver, user model.User) model.PaymentMethodData {
	m.ScriptHandles()

	roles := make([]string, len(user.Roles))
	copy(roles, user.Roles)

	supports := make([]string, len(m.cfg.Supports))
	copy(supports, m.cfg.Supports)

	return model.PaymentMethodData{
		Title:                    r.Title(),
		Description:              r.Description(),
		Instructions:             r.Instructions(),
		OrderStatus:              string(r.OrderStatus()),
		EnableForUserRoles:       r.AllowedRoles(),
		CurrentUserRole:          roles,
		EnableForShippingMethods: r.AllowedShippingMethods(),
		EnableForVirtual:         r.VirtualAllowed(),
		Supports:                 supports,
	}
}

func (m *Invoice) registerScript() {
	path := filepath.Join(m.cfg.PluginDir, manifestPath)
	manifest, err := assets.LoadManifest(path)
	if err != nil {
		m.logger.Debug("asset manifest unavailable, using fallback",
			slog.String("path", path),
			slog.String("version", manifest.Version),
			slog.Any("error", err),
		)
	}

	registered := m.scripts.Register(assets.Script{
		Handle:       ScriptHandle,
		Src:          strings.TrimSuffix(m.cfg.PluginURL, "/") + scriptPath,
		Dependencies: manifest.Dependencies,
		Version:      manifest.Version,
		InFooter:     true,
	})
	m.scripts.SetTranslations(ScriptHandle, TextDomain, filepath.Join(m.cfg.PluginDir, languagesDir))

	if registered {
		m.logger.Info("registered checkout script",
			slog.String("handle", ScriptHandle),
			slog.String("version", manifest.Version),
		)
	}
	m.handles = []string{ScriptHandle}
}

// Verify Invoice implements PaymentMethodType at compile time.
var _ PaymentMethodType = (*Invoice)(nil)
