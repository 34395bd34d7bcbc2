// Package adapter defines the interface to the store the gateway is attached to.
// Implementations translate store-specific APIs to the gateway's model.
package adapter

import (
	"context"

	"wc-invoice-gateway/internal/model"
)

// Adapter abstracts the store operations the invoice gateway needs.
//
// All methods return model types. Store-specific error handling is
// encapsulated within each implementation and surfaces as *model.APIError.
type Adapter interface {
	// GetOrder fetches an order by id.
	GetOrder(ctx context.Context, orderID int) (*model.Order, error)

	// UpdateOrderStatus moves an order to status and returns the updated order.
	// For WooCommerce: status transitions also trigger stock reduction and
	// the new-order emails on the store side.
	UpdateOrderStatus(ctx context.Context, orderID int, status model.OrderStatus) (*model.Order, error)

	// AddOrderNote attaches a note to an order. Customer notes are emailed
	// to the customer; private notes are only visible to shop staff.
	AddOrderNote(ctx context.Context, orderID int, note string, customerNote bool) error

	// SystemStatus reports the store's software versions.
	// Used to decide whether the host store is present and new enough.
	SystemStatus(ctx context.Context) (*model.SystemStatus, error)
}

// Config holds common configuration for adapters.
type Config struct {
	StoreURL  string
	APIKey    string
	APISecret string
}
