// Package hooks is an explicit lifecycle-event registry: each named hook
// maps to handlers ordered by priority, mirroring the action/filter model
// of the store the gateway plugs into.
package hooks

import (
	"context"
	"sort"
	"sync"
)

// Hook names an extension point.
type Hook string

// Lifecycle actions.
const (
	PluginsLoaded                 Hook = "plugins_loaded"
	Init                          Hook = "init"
	BeforeWooCommerceInit         Hook = "before_woocommerce_init"
	BlocksLoaded                  Hook = "woocommerce_blocks_loaded"
	PaymentMethodTypeRegistration Hook = "woocommerce_blocks_payment_method_type_registration"
	AdminNotices                  Hook = "admin_notices"
)

// Filters.
const (
	PaymentGateways   Hook = "woocommerce_payment_gateways"
	MyOrdersActions   Hook = "woocommerce_my_account_my_orders_actions"
	PluginActionLinks Hook = "plugin_action_links"
)

// DefaultPriority is used by most handlers. Lower runs first.
const DefaultPriority = 10

// ActionFunc handles an action. Actions have no return value.
type ActionFunc func(ctx context.Context, args ...any)

// FilterFunc receives the current value and returns the (possibly new) value.
type FilterFunc func(ctx context.Context, value any, args ...any) any

type entry[F any] struct {
	fn       F
	priority int
}

// Registry holds action and filter handlers. Safe for concurrent use;
// handlers may register further handlers while they run.
type Registry struct {
	mu      sync.RWMutex
	actions map[Hook][]entry[ActionFunc]
	filters map[Hook][]entry[FilterFunc]
	fired   map[Hook]int
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		actions: make(map[Hook][]entry[ActionFunc]),
		filters: make(map[Hook][]entry[FilterFunc]),
		fired:   make(map[Hook]int),
	}
}

// AddAction registers fn on h. Handlers with equal priority run in
// registration order.
func (r *Registry) AddAction(h Hook, fn ActionFunc, priority int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.actions[h] = insert(r.actions[h], entry[ActionFunc]{fn: fn, priority: priority})
}

// AddFilter registers fn on h.
func (r *Registry) AddFilter(h Hook, fn FilterFunc, priority int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.filters[h] = insert(r.filters[h], entry[FilterFunc]{fn: fn, priority: priority})
}

// DoAction runs the handlers registered on h.
// Handlers added while h runs take effect on the next dispatch.
func (r *Registry) DoAction(ctx context.Context, h Hook, args ...any) {
	r.mu.Lock()
	handlers := append([]entry[ActionFunc](nil), r.actions[h]...)
	r.fired[h]++
	r.mu.Unlock()

	for _, e := range handlers {
		e.fn(ctx, args...)
	}
}

// ApplyFilters passes value through the handlers registered on h and
// returns the result. With no handlers, value is returned unchanged.
func (r *Registry) ApplyFilters(ctx context.Context, h Hook, value any, args ...any) any {
	r.mu.RLock()
	handlers := append([]entry[FilterFunc](nil), r.filters[h]...)
	r.mu.RUnlock()

	for _, e := range handlers {
		value = e.fn(ctx, value, args...)
	}
	return value
}

// HasAction reports whether any handler is registered on action h.
func (r *Registry) HasAction(h Hook) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.actions[h]) > 0
}

// HasFilter reports whether any handler is registered on filter h.
func (r *Registry) HasFilter(h Hook) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.filters[h]) > 0
}

// DidAction returns how many times action h has been dispatched.
func (r *Registry) DidAction(h Hook) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.fired[h]
}

func insert[F any](list []entry[F], e entry[F]) []entry[F] {
	list = append(list, e)
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].priority < list[j].priority
	})
	return list
}
