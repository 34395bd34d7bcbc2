// Package plugin binds the gateway to the store's lifecycle hooks and runs
// the bootstrap sequence: detect the host store, include the gateway,
// register the checkout block method and declare feature compatibility.
package plugin

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"wc-invoice-gateway/internal/adapter"
	"wc-invoice-gateway/internal/blocks"
	"wc-invoice-gateway/internal/compat"
	"wc-invoice-gateway/internal/gateway"
	"wc-invoice-gateway/internal/hooks"
	"wc-invoice-gateway/internal/i18n"
	"wc-invoice-gateway/internal/model"
	"wc-invoice-gateway/internal/orders"
)

const (
	// DefaultFile is the plugin basename used in compatibility declarations
	// and action link filters.
	DefaultFile = "wc-invoice-gateway/wc-invoice-gateway.php"

	// SettingsPath is the gateway section of the checkout settings, relative
	// to the admin URL.
	SettingsPath = "admin.php?page=wc-settings&tab=checkout&section=invoice"

	// InstallURL is where the missing-WooCommerce notice points to.
	InstallURL = "https://wordpress.org/plugins/woocommerce/"
)

// Config configures the plugin bootstrap.
type Config struct {
	File     string // plugin basename
	AdminURL string // store admin base URL, e.g. https://shop.example.com/wp-admin/
}

// Plugin is the bootstrapped extension.
type Plugin struct {
	cfg      Config
	hooks    *hooks.Registry
	store    adapter.Adapter
	gateway  *gateway.Gateway
	invoice  *blocks.Invoice
	methods  *blocks.PaymentMethodRegistry
	features *compat.FeaturesUtil
	logger   *slog.Logger

	bootOnce sync.Once

	mu              sync.RWMutex
	host            *model.SystemStatus
	wooActive       bool
	gatewayIncluded bool
	bundle          *i18n.Bundle
}

// Deps are the components the plugin wires into the hooks.
type Deps struct {
	Hooks    *hooks.Registry
	Store    adapter.Adapter
	Gateway  *gateway.Gateway
	Invoice  *blocks.Invoice
	Methods  *blocks.PaymentMethodRegistry
	Features *compat.FeaturesUtil
	Logger   *slog.Logger
}

// New returns an unbooted plugin. Call Init to bind the hooks and Boot to
// run the lifecycle.
func New(cfg Config, deps Deps) *Plugin {
	if cfg.File == "" {
		cfg.File = DefaultFile
	}
	if deps.Hooks == nil {
		deps.Hooks = hooks.NewRegistry()
	}
	if deps.Methods == nil {
		deps.Methods = blocks.NewPaymentMethodRegistry()
	}
	if deps.Features == nil {
		deps.Features = compat.NewFeaturesUtil()
	}
	return &Plugin{
		cfg:      cfg,
		hooks:    deps.Hooks,
		store:    deps.Store,
		gateway:  deps.Gateway,
		invoice:  deps.Invoice,
		methods:  deps.Methods,
		features: deps.Features,
		logger:   deps.Logger,
	}
}

// Init binds every handler the plugin contributes.
func (p *Plugin) Init() {
	p.hooks.AddAction(hooks.PluginsLoaded, p.includeGateway, 0)
	p.hooks.AddAction(hooks.Init, p.setup, hooks.DefaultPriority)
	p.hooks.AddAction(hooks.Init, p.loadTextDomain, hooks.DefaultPriority)
	p.hooks.AddAction(hooks.BeforeWooCommerceInit, p.declareCompatibility, hooks.DefaultPriority)
	p.hooks.AddAction(hooks.BlocksLoaded, p.registerBlockSupport, hooks.DefaultPriority)

	p.hooks.AddFilter(hooks.PaymentGateways, hooks.TypedFilter(p.addGateway), hooks.DefaultPriority)
	p.hooks.AddFilter(hooks.MyOrdersActions, hooks.TypedFilter(p.filterOrderActions), hooks.DefaultPriority)
}

// Boot detects the host store and dispatches the lifecycle events in the
// order the store fires them. A missing or unsupported store is not an
// error: the plugin then only shows the requires-WooCommerce notice.
// Only the first call has an effect.
func (p *Plugin) Boot(ctx context.Context) {
	p.bootOnce.Do(func() { p.boot(ctx) })
}

func (p *Plugin) boot(ctx context.Context) {
	p.detectHost(ctx)

	p.hooks.DoAction(ctx, hooks.PluginsLoaded)
	if p.WooCommerceActive() {
		p.hooks.DoAction(ctx, hooks.BlocksLoaded)
		p.hooks.DoAction(ctx, hooks.BeforeWooCommerceInit)
	}
	p.hooks.DoAction(ctx, hooks.Init)
	if p.WooCommerceActive() {
		p.hooks.DoAction(ctx, hooks.PaymentMethodTypeRegistration, p.methods)
	}
}

func (p *Plugin) detectHost(ctx context.Context) {
	status, err := p.store.SystemStatus(ctx)
	if err != nil {
		p.logger.WarnContext(ctx, "store not reachable, gateway stays inactive",
			slog.Any("error", err),
		)
		return
	}

	req := compat.PluginRequirements
	active := req.SatisfiedBy(status.WooCommerceVersion)

	switch {
	case !active:
		p.logger.WarnContext(ctx, "unsupported WooCommerce version",
			slog.String("version", status.WooCommerceVersion),
			slog.String("minimum", req.WooCommerceMin),
		)
	case !req.Tested(status.WooCommerceVersion):
		p.logger.InfoContext(ctx, "WooCommerce version newer than tested",
			slog.String("version", status.WooCommerceVersion),
			slog.String("tested", req.WooCommerceTested),
		)
	}
	if !req.WordPressSatisfiedBy(status.WordPressVersion) {
		p.logger.WarnContext(ctx, "unsupported WordPress version",
			slog.String("version", status.WordPressVersion),
			slog.String("minimum", req.WordPressMin),
		)
	}

	p.mu.Lock()
	p.host = status
	p.wooActive = active
	p.mu.Unlock()
}

// === Hook handlers ===

func (p *Plugin) includeGateway(ctx context.Context, _ ...any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.host == nil {
		return
	}
	p.gatewayIncluded = true
}

func (p *Plugin) setup(ctx context.Context, _ ...any) {
	if p.WooCommerceActive() {
		p.hooks.AddFilter(hooks.PluginActionLinks, hooks.TypedFilter(p.actionLinks), hooks.DefaultPriority)
		return
	}
	p.hooks.AddAction(hooks.AdminNotices, p.missingWooCommerceNotice, hooks.DefaultPriority)
}

func (p *Plugin) loadTextDomain(ctx context.Context, _ ...any) {
	bundle, err := i18n.NewBundle()
	if err != nil {
		p.logger.ErrorContext(ctx, "loading translations failed",
			slog.String("domain", i18n.Domain),
			slog.Any("error", err),
		)
		return
	}
	p.mu.Lock()
	p.bundle = bundle
	p.mu.Unlock()
}

func (p *Plugin) declareCompatibility(ctx context.Context, _ ...any) {
	if !p.features.DeclareCompatibility(compat.FeatureCustomOrderTables, p.cfg.File, true) {
		p.logger.WarnContext(ctx, "conflicting compatibility declaration",
			slog.String("feature", compat.FeatureCustomOrderTables),
		)
	}
}

func (p *Plugin) registerBlockSupport(ctx context.Context, _ ...any) {
	p.hooks.AddAction(hooks.PaymentMethodTypeRegistration, func(ctx context.Context, args ...any) {
		if len(args) == 0 {
			return
		}
		registry, ok := args[0].(*blocks.PaymentMethodRegistry)
		if !ok {
			return
		}
		if err := registry.Register(p.invoice); err != nil {
			p.logger.WarnContext(ctx, "registering block payment method failed",
				slog.Any("error", err),
			)
		}
	}, hooks.DefaultPriority)
}

func (p *Plugin) addGateway(ctx context.Context, gateways []string, _ ...any) []string {
	if !p.GatewayIncluded() {
		return gateways
	}
	for _, g := range gateways {
		if g == gateway.ClassName {
			return gateways
		}
	}
	return append(gateways, gateway.ClassName)
}

func (p *Plugin) filterOrderActions(ctx context.Context, actions []model.OrderAction, args ...any) []model.OrderAction {
	if len(args) == 0 {
		return actions
	}
	order, ok := args[0].(model.Order)
	if !ok {
		return actions
	}
	return orders.FilterActions(actions, order)
}

func (p *Plugin) actionLinks(ctx context.Context, links []model.ActionLink, args ...any) []model.ActionLink {
	if len(args) == 0 || args[0] != p.cfg.File {
		return links
	}
	t := translatorArg(args)
	settingsLink := model.ActionLink{
		Key:   "settings",
		URL:   p.adminURL(SettingsPath),
		Title: t.T(i18n.MsgViewSettings),
		Text:  t.T(i18n.MsgSettings),
	}
	return append([]model.ActionLink{settingsLink}, links...)
}

func (p *Plugin) missingWooCommerceNotice(ctx context.Context, args ...any) {
	if len(args) == 0 {
		return
	}
	list, ok := args[0].(*model.NoticeList)
	if !ok {
		return
	}
	t := translatorArg(args)
	list.Add(model.Notice{
		Type:     "error",
		Message:  t.T(i18n.MsgRequiresWooCommerce),
		LinkText: t.T(i18n.MsgInstallWooCommerce),
		LinkURL:  InstallURL,
	})
}

func translatorArg(args []any) *i18n.Translator {
	for _, a := range args {
		if t, ok := a.(*i18n.Translator); ok && t != nil {
			return t
		}
	}
	return i18n.Untranslated()
}

func (p *Plugin) adminURL(path string) string {
	if p.cfg.AdminURL == "" {
		return path
	}
	return strings.TrimSuffix(p.cfg.AdminURL, "/") + "/" + path
}

// === Accessors ===

// Translator returns a translator for an Accept-Language value. Before the
// text domain is loaded every message is English.
func (p *Plugin) Translator(acceptLanguage string) *i18n.Translator {
	p.mu.RLock()
	bundle := p.bundle
	p.mu.RUnlock()
	if bundle == nil {
		return i18n.Untranslated()
	}
	return bundle.Translator(acceptLanguage)
}

// Notices runs admin_notices and returns what the handlers emitted.
func (p *Plugin) Notices(ctx context.Context, t *i18n.Translator) []model.Notice {
	list := &model.NoticeList{Items: []model.Notice{}}
	p.hooks.DoAction(ctx, hooks.AdminNotices, list, t)
	return list.Items
}

// ActionLinks returns the plugin's links on the plugins screen.
func (p *Plugin) ActionLinks(ctx context.Context, t *i18n.Translator) []model.ActionLink {
	return hooks.Filter(ctx, p.hooks, hooks.PluginActionLinks, []model.ActionLink{}, p.cfg.File, t)
}

// Gateways returns the payment gateway class list after filtering.
func (p *Plugin) Gateways(ctx context.Context) []string {
	return hooks.Filter(ctx, p.hooks, hooks.PaymentGateways, []string{})
}

// OrderActions filters the My Account order actions for order.
func (p *Plugin) OrderActions(ctx context.Context, actions []model.OrderAction, order model.Order) []model.OrderAction {
	return hooks.Filter(ctx, p.hooks, hooks.MyOrdersActions, actions, order)
}

// PaymentMethods returns the block payment method registry.
func (p *Plugin) PaymentMethods() *blocks.PaymentMethodRegistry { return p.methods }

// Features returns the compatibility declarations.
func (p *Plugin) Features() *compat.FeaturesUtil { return p.features }

// Gateway returns the payment gateway.
func (p *Plugin) Gateway() *gateway.Gateway { return p.gateway }

// File returns the plugin basename.
func (p *Plugin) File() string { return p.cfg.File }

// Host returns the detected store, if any.
func (p *Plugin) Host() (*model.SystemStatus, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.host, p.host != nil
}

// WooCommerceActive reports whether a supported WooCommerce was detected.
func (p *Plugin) WooCommerceActive() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.wooActive
}

// GatewayIncluded reports whether plugins_loaded included the gateway.
func (p *Plugin) GatewayIncluded() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.gatewayIncluded
}
