// Package model holds the types shared by the gateway, the checkout block
// payload and the HTTP surface.
package model

import "strings"

// OrderStatus is a WooCommerce order status slug.
// Admin screens store statuses with a "wc-" prefix; Normalize strips it.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusOnHold     OrderStatus = "on-hold"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
	OrderStatusRefunded   OrderStatus = "refunded"
	OrderStatusFailed     OrderStatus = "failed"
)

// Normalize returns the status without the "wc-" prefix, lower-cased.
func (s OrderStatus) Normalize() OrderStatus {
	v := strings.ToLower(strings.TrimSpace(string(s)))
	return OrderStatus(strings.TrimPrefix(v, "wc-"))
}

// Order is the subset of a store order the gateway reads.
// The store owns the order; the gateway only changes its status and notes.
type Order struct {
	ID            int         `json:"id"`
	Status        OrderStatus `json:"status"`
	PaymentMethod string      `json:"payment_method"`
	OrderKey      string      `json:"order_key,omitempty"`
	Currency      string      `json:"currency,omitempty"`
	Total         string      `json:"total,omitempty"`
	BillingEmail  string      `json:"billing_email,omitempty"`
}

// HasStatus reports whether the order is in any of the given statuses.
func (o *Order) HasStatus(statuses ...OrderStatus) bool {
	current := o.Status.Normalize()
	for _, s := range statuses {
		if current == s.Normalize() {
			return true
		}
	}
	return false
}

// Order action keys rendered on My Account > Orders.
const (
	ActionPay    = "pay"
	ActionView   = "view"
	ActionCancel = "cancel"
)

// OrderAction is one button in the customer's order list.
type OrderAction struct {
	Key  string `json:"key"`
	URL  string `json:"url,omitempty"`
	Name string `json:"name"`
}

// PaymentResult is returned after an order has been placed with the gateway.
type PaymentResult struct {
	Result   string `json:"result"`
	Redirect string `json:"redirect"`
}

// SystemStatus describes the host store the gateway is attached to.
type SystemStatus struct {
	WooCommerceVersion string `json:"woocommerce_version"`
	WordPressVersion   string `json:"wordpress_version"`
	StoreURL           string `json:"store_url,omitempty"`
}
