// Package woocommerce implements the adapter for WooCommerce stores using the REST API v3.
// All WooCommerce-specific types, transforms, and HTTP client logic live here.
package woocommerce

// === WooCommerce REST API Types ===

// WooOrder represents an order from GET/PUT /wc/v3/orders/{id}.
// Only the fields the gateway reads are decoded.
type WooOrder struct {
	ID                 int        `json:"id"`
	Status             string     `json:"status"`
	Currency           string     `json:"currency"`
	Total              string     `json:"total"` // "99.00" - string decimal
	OrderKey           string     `json:"order_key"`
	PaymentMethod      string     `json:"payment_method"`
	PaymentMethodTitle string     `json:"payment_method_title"`
	CustomerID         int        `json:"customer_id"`
	Billing            WooBilling `json:"billing"`
}

// WooBilling is the billing block of an order.
type WooBilling struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Company   string `json:"company"`
	Email     string `json:"email"`
}

// WooOrderUpdate is the PUT /wc/v3/orders/{id} body for a status change.
type WooOrderUpdate struct {
	Status string `json:"status"`
}

// WooOrderNote is the POST /wc/v3/orders/{id}/notes body and response.
type WooOrderNote struct {
	ID           int    `json:"id,omitempty"`
	Note         string `json:"note"`
	CustomerNote bool   `json:"customer_note"`
}

// WooSystemStatus is the part of GET /wc/v3/system_status the gateway reads.
type WooSystemStatus struct {
	Environment WooEnvironment `json:"environment"`
}

// WooEnvironment describes the store's runtime.
type WooEnvironment struct {
	HomeURL   string `json:"home_url"`
	SiteURL   string `json:"site_url"`
	Version   string `json:"version"`    // WooCommerce version
	WPVersion string `json:"wp_version"` // WordPress version
}

// WooErrorResponse represents a WooCommerce API error.
type WooErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Data    struct {
		Status int `json:"status"`
	} `json:"data"`
}
