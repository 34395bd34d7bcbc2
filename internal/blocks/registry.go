package blocks

import (
	"fmt"
	"sync"

	"wc-invoice-gateway/internal/model"
	"wc-invoice-gateway/internal/settings"
)

// PaymentMethodType is a payment method the block checkout can render.
type PaymentMethodType interface {
	Name() string
	IsActive(r *settings.Resolver) bool
	ScriptHandles() []string
	Project(r *settings.Resolver, user model.User) model.PaymentMethodData
}

// PaymentMethodRegistry holds the payment method types registered during
// the payment-method-type registration hook.
type PaymentMethodRegistry struct {
	mu      sync.RWMutex
	methods map[string]PaymentMethodType
	order   []string
}

// NewPaymentMethodRegistry returns an empty registry.
func NewPaymentMethodRegistry() *PaymentMethodRegistry {
	return &PaymentMethodRegistry{methods: make(map[string]PaymentMethodType)}
}

// Register adds m. Registering a name twice is an error.
func (r *PaymentMethodRegistry) Register(m PaymentMethodType) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.methods[m.Name()]; exists {
		return fmt.Errorf("payment method type %q is already registered", m.Name())
	}
	r.methods[m.Name()] = m
	r.order = append(r.order, m.Name())
	return nil
}

// Get returns the method registered under name.
func (r *PaymentMethodRegistry) Get(name string) (PaymentMethodType, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.methods[name]
	return m, ok
}

// All returns the registered methods in registration order.
func (r *PaymentMethodRegistry) All() []PaymentMethodType {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]PaymentMethodType, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.methods[name])
	}
	return out
}

// Active returns the methods whose IsActive reports true.
func (r *PaymentMethodRegistry) Active(s *settings.Resolver) []PaymentMethodType {
	var out []PaymentMethodType
	for _, m := range r.All() {
		if m.IsActive(s) {
			out = append(out, m)
		}
	}
	return out
}
