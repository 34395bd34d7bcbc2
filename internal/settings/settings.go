// Package settings resolves the invoice gateway's persisted option bucket
// into effective values: eligibility allowlists, lenient booleans and
// display text. Nothing here fails; missing or malformed values fall back
// to documented defaults.
package settings

import (
	"sort"
	"strconv"
	"strings"

	"wc-invoice-gateway/internal/model"
)

// OptionName is the option bucket the store keeps the gateway settings in.
const OptionName = "woocommerce_invoice_settings"

// Option keys inside the bucket.
const (
	KeyEnabled          = "enabled"
	KeyTitle            = "title"
	KeyDescription      = "description"
	KeyInstructions     = "instructions"
	KeyOrderStatus      = "order_status"
	KeyEnableForVirtual = "enable_for_virtual"
	KeyEnableForMethods = "enable_for_methods"
	KeyUserRoles        = "user_roles"
)

// Defaults used when the bucket has no value for a display field.
// They match the defaults of the admin settings form.
const (
	DefaultTitle        = "Invoice Payment"
	DefaultDescription  = "Thank you for your order. You'll be invoiced soon."
	DefaultInstructions = "Your order will be processed upon receipt of payment."
	DefaultOrderStatus  = model.OrderStatusOnHold
)

// Settings is the raw option bucket as persisted by the store: option name
// to scalar, list or map value (whatever JSON/YAML decoding produced).
type Settings map[string]any

// Get returns the raw value for key.
func (s Settings) Get(key string) (any, bool) {
	if s == nil {
		return nil, false
	}
	v, ok := s[key]
	return v, ok
}

// Clone returns a shallow copy.
func (s Settings) Clone() Settings {
	out := make(Settings, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// stringSet normalizes a set-typed option into a de-duplicated list.
// Missing, null and "" all mean "no restriction" and yield an empty,
// non-nil slice. A single string is a one-element set. Maps (PHP arrays
// with explicit keys) are read in key order.
func stringSet(v any) []string {
	out := []string{}
	seen := make(map[string]struct{})
	add := func(s string) {
		s = strings.TrimSpace(s)
		if s == "" {
			return
		}
		if _, dup := seen[s]; dup {
			return
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}

	switch val := v.(type) {
	case nil:
	case string:
		add(val)
	case []string:
		for _, s := range val {
			add(s)
		}
	case []any:
		for _, item := range val {
			if s, ok := item.(string); ok {
				add(s)
			}
		}
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Slice(keys, func(i, j int) bool { return keyLess(keys[i], keys[j]) })
		for _, k := range keys {
			if s, ok := val[k].(string); ok {
				add(s)
			}
		}
	}
	return out
}

// keyLess orders numeric keys by value and before any other key, so a
// PHP-style list keyed "0".."10" keeps its order.
func keyLess(a, b string) bool {
	na, errA := strconv.Atoi(a)
	nb, errB := strconv.Atoi(b)
	switch {
	case errA == nil && errB == nil:
		return na < nb
	case errA == nil:
		return true
	case errB == nil:
		return false
	}
	return a < b
}
