package settings

import (
	"wc-invoice-gateway/internal/model"
)

// Resolver derives effective gateway settings from a raw bucket.
// It is immutable once built and safe for concurrent use.
type Resolver struct {
	settings Settings
	bools    *BoolParser
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithBoolParser replaces the default lenient boolean parser.
func WithBoolParser(p *BoolParser) Option {
	return func(r *Resolver) {
		if p != nil {
			r.bools = p
		}
	}
}

// WithTruthyTokens accepts a custom set of truthy tokens.
func WithTruthyTokens(tokens ...string) Option {
	return func(r *Resolver) {
		r.bools = NewBoolParser(tokens...)
	}
}

// NewResolver wraps s. A nil bucket behaves like an empty one.
func NewResolver(s Settings, opts ...Option) *Resolver {
	r := &Resolver{
		settings: s.Clone(),
		bools:    NewBoolParser(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// IsActive reports whether the gateway is enabled.
func (r *Resolver) IsActive() bool {
	v, _ := r.settings.Get(KeyEnabled)
	return r.bools.Parse(v)
}

// VirtualAllowed reports whether orders with only virtual products may use
// the gateway. Defaults to false.
func (r *Resolver) VirtualAllowed() bool {
	v, _ := r.settings.Get(KeyEnableForVirtual)
	return r.bools.Parse(v)
}

// AllowedShippingMethods returns the shipping-method allowlist.
// Empty means every method is allowed.
func (r *Resolver) AllowedShippingMethods() []string {
	v, _ := r.settings.Get(KeyEnableForMethods)
	return stringSet(v)
}

// AllowedRoles returns the user-role allowlist.
// Empty means every role is allowed.
func (r *Resolver) AllowedRoles() []string {
	v, _ := r.settings.Get(KeyUserRoles)
	return stringSet(v)
}

// Title is the payment method name shown at checkout.
func (r *Resolver) Title() string {
	return r.text(KeyTitle, DefaultTitle)
}

// Description is shown under the payment method at checkout.
func (r *Resolver) Description() string {
	return r.text(KeyDescription, DefaultDescription)
}

// Instructions are added to the thank-you page and order emails.
func (r *Resolver) Instructions() string {
	return r.text(KeyInstructions, DefaultInstructions)
}

// OrderStatus is the status a newly placed invoice order moves to.
// Unknown statuses fall back to on-hold.
func (r *Resolver) OrderStatus() model.OrderStatus {
	status := model.OrderStatus(r.text(KeyOrderStatus, string(DefaultOrderStatus))).Normalize()
	if !validOrderStatus(status) {
		return DefaultOrderStatus
	}
	return status
}

// Settings returns a copy of the raw bucket.
func (r *Resolver) Settings() Settings {
	return r.settings.Clone()
}

// text returns the stored string for key. Only a missing or non-string
// value yields def; an explicitly stored "" is kept.
func (r *Resolver) text(key, def string) string {
	v, ok := r.settings.Get(key)
	if !ok {
		return def
	}
	s, ok := v.(string)
	if !ok {
		return def
	}
	return s
}

// orderStatuses are the statuses the settings form offers.
var orderStatuses = []model.OrderStatus{
	model.OrderStatusPending,
	model.OrderStatusProcessing,
	model.OrderStatusOnHold,
	model.OrderStatusCompleted,
}

// OrderStatuses returns the statuses an invoice order may be placed in.
func OrderStatuses() []model.OrderStatus {
	out := make([]model.OrderStatus, len(orderStatuses))
	copy(out, orderStatuses)
	return out
}

func validOrderStatus(s model.OrderStatus) bool {
	for _, known := range orderStatuses {
		if s == known {
			return true
		}
	}
	return false
}
