// Package gateway is the invoice payment method itself: its admin form,
// the availability rule evaluated at checkout and the order placement step.
package gateway

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"wc-invoice-gateway/internal/adapter"
	"wc-invoice-gateway/internal/i18n"
	"wc-invoice-gateway/internal/model"
	"wc-invoice-gateway/internal/settings"
)

const (
	// ID is the payment method id stored on orders.
	ID = "invoice"

	// ClassName is the name the gateway is listed under in the store's
	// payment gateway list.
	ClassName = "WC_Gateway_Invoice"
)

// Choice is one option of a select field.
type Choice struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Config configures the gateway.
type Config struct {
	// StoreURL is the public store URL used to build the order-received redirect.
	StoreURL string

	// Roles offered in the user role field. Defaults to the WordPress and
	// WooCommerce built-in roles.
	Roles []Choice

	// ShippingMethods offered in the shipping method field. Defaults to the
	// WooCommerce core methods.
	ShippingMethods []Choice
}

// DefaultRoles are the built-in WordPress and WooCommerce roles.
var DefaultRoles = []Choice{
	{Value: "administrator", Label: "Administrator"},
	{Value: "editor", Label: "Editor"},
	{Value: "author", Label: "Author"},
	{Value: "contributor", Label: "Contributor"},
	{Value: "subscriber", Label: "Subscriber"},
	{Value: "customer", Label: "Customer"},
	{Value: "shop_manager", Label: "Shop manager"},
}

// DefaultShippingMethods are the WooCommerce core shipping methods.
var DefaultShippingMethods = []Choice{
	{Value: "flat_rate", Label: "Flat rate"},
	{Value: "free_shipping", Label: "Free shipping"},
	{Value: "local_pickup", Label: "Local pickup"},
}

// Gateway is the invoice payment gateway.
type Gateway struct {
	cfg    Config
	store  adapter.Adapter
	logger *slog.Logger
}

// New returns a gateway placing orders through store.
func New(cfg Config, store adapter.Adapter, logger *slog.Logger) *Gateway {
	if cfg.Roles == nil {
		cfg.Roles = DefaultRoles
	}
	if cfg.ShippingMethods == nil {
		cfg.ShippingMethods = DefaultShippingMethods
	}
	cfg.StoreURL = strings.TrimSuffix(cfg.StoreURL, "/")
	return &Gateway{cfg: cfg, store: store, logger: logger}
}

// ID returns the payment method id.
func (g *Gateway) ID() string { return ID }

// HasFields is false: the invoice method collects nothing at checkout.
func (g *Gateway) HasFields() bool { return false }

// Supports returns the gateway feature tags.
func (g *Gateway) Supports() []string {
	return []string{"products"}
}

// MethodTitle is the name shown in the admin payment method list.
func (g *Gateway) MethodTitle(t *i18n.Translator) string {
	return t.T(i18n.MsgMethodTitle)
}

// MethodDescription is the admin description of the method.
func (g *Gateway) MethodDescription(t *i18n.Translator) string {
	return t.T(i18n.MsgMethodDescription)
}

// CheckoutContext is the cart state availability is decided on.
type CheckoutContext struct {
	User model.User `json:"user"`

	// NeedsShipping is false when every item in the cart is virtual.
	NeedsShipping bool `json:"needs_shipping"`

	// ChosenShippingMethods are the selected rate ids, e.g. "flat_rate:3".
	ChosenShippingMethods []string `json:"chosen_shipping_methods"`
}

// IsAvailable reports whether the gateway can be offered for cc.
func (g *Gateway) IsAvailable(r *settings.Resolver, cc CheckoutContext) bool {
	if !r.IsActive() {
		return false
	}

	if roles := r.AllowedRoles(); len(roles) > 0 && !cc.User.HasAnyRole(roles) {
		return false
	}

	if !cc.NeedsShipping {
		return r.VirtualAllowed()
	}

	allowed := r.AllowedShippingMethods()
	if len(allowed) == 0 {
		return true
	}
	if len(cc.ChosenShippingMethods) == 0 {
		return false
	}
	for _, rate := range cc.ChosenShippingMethods {
		if !matchesShippingMethod(rate, allowed) {
			return false
		}
	}
	return true
}

// matchesShippingMethod accepts an allowlist entry naming either the exact
// rate instance ("flat_rate:3") or its method type ("flat_rate").
func matchesShippingMethod(rate string, allowed []string) bool {
	methodType, _, _ := strings.Cut(rate, ":")
	for _, a := range allowed {
		if a == rate || a == methodType {
			return true
		}
	}
	return false
}

// ProcessPayment places order orderID with the gateway: the order moves to
// the configured status with a private note, and the customer is sent to
// the order-received page.
func (g *Gateway) ProcessPayment(ctx context.Context, r *settings.Resolver, t *i18n.Translator, orderID int) (*model.PaymentResult, error) {
	order, err := g.store.GetOrder(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("fetching order %d: %w", orderID, err)
	}
	if order.PaymentMethod != ID {
		return nil, model.NewPaymentError(t.T(i18n.MsgNotInvoiceOrder))
	}

	status := r.OrderStatus()
	updated, err := g.store.UpdateOrderStatus(ctx, orderID, status)
	if err != nil {
		return nil, fmt.Errorf("updating order %d: %w", orderID, err)
	}
	if updated != nil && updated.OrderKey != "" {
		order = updated
	}

	if err := g.store.AddOrderNote(ctx, orderID, t.T(i18n.MsgAwaitingPayment), false); err != nil {
		// Status is already changed at this point.
		g.logger.WarnContext(ctx, "adding order note failed",
			slog.Int("order_id", orderID),
			slog.Any("error", err),
		)
	}

	g.logger.InfoContext(ctx, "invoice order placed",
		slog.Int("order_id", orderID),
		slog.String("status", string(status)),
	)

	return &model.PaymentResult{
		Result:   "success",
		Redirect: g.orderReceivedURL(order),
	}, nil
}

func (g *Gateway) orderReceivedURL(order *model.Order) string {
	u := fmt.Sprintf("%s/checkout/order-received/%d/", g.cfg.StoreURL, order.ID)
	if order.OrderKey != "" {
		u += "?key=" + url.QueryEscape(order.OrderKey)
	}
	return u
}

// ThankYouText is shown on the order-received page.
func (g *Gateway) ThankYouText(r *settings.Resolver) string {
	return strings.TrimSpace(r.Instructions())
}

// EmailInstructions returns the instructions to add to a customer email
// for order, or "" when the email should carry none.
func (g *Gateway) EmailInstructions(r *settings.Resolver, order *model.Order, sentToAdmin bool) string {
	if sentToAdmin || order == nil || order.PaymentMethod != ID {
		return ""
	}
	if !order.HasStatus(r.OrderStatus()) {
		return ""
	}
	return strings.TrimSpace(r.Instructions())
}

// Instructions are the payment instructions shown for a placed order.
type Instructions struct {
	OrderID  int    `json:"order_id"`
	ThankYou string `json:"thank_you"`

	// Email is empty when the customer email for the order's current
	// status carries no instructions.
	Email string `json:"email"`
}

// OrderInstructions returns the thank-you page text and the customer email
// text for order orderID.
func (g *Gateway) OrderInstructions(ctx context.Context, r *settings.Resolver, t *i18n.Translator, orderID int, sentToAdmin bool) (*Instructions, error) {
	order, err := g.store.GetOrder(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("fetching order %d: %w", orderID, err)
	}
	if order.PaymentMethod != ID {
		return nil, model.NewPaymentError(t.T(i18n.MsgNotInvoiceOrder))
	}
	return &Instructions{
		OrderID:  orderID,
		ThankYou: g.ThankYouText(r),
		Email:    g.EmailInstructions(r, order, sentToAdmin),
	}, nil
}
