package adapter

import (
	"context"

	"wc-invoice-gateway/internal/model"
)

// Mock implements Adapter for testing.
// Each method can be configured via function fields.
type Mock struct {
	GetOrderFunc          func(ctx context.Context, orderID int) (*model.Order, error)
	UpdateOrderStatusFunc func(ctx context.Context, orderID int, status model.OrderStatus) (*model.Order, error)
	AddOrderNoteFunc      func(ctx context.Context, orderID int, note string, customerNote bool) error
	SystemStatusFunc      func(ctx context.Context) (*model.SystemStatus, error)
}

// GetOrder calls the configured GetOrderFunc or returns a not-found error.
func (m *Mock) GetOrder(ctx context.Context, orderID int) (*model.Order, error) {
	if m.GetOrderFunc != nil {
		return m.GetOrderFunc(ctx, orderID)
	}
	return nil, model.NewOrderNotFoundError(orderID)
}

// UpdateOrderStatus calls the configured UpdateOrderStatusFunc or returns a not-found error.
func (m *Mock) UpdateOrderStatus(ctx context.Context, orderID int, status model.OrderStatus) (*model.Order, error) {
	if m.UpdateOrderStatusFunc != nil {
		return m.UpdateOrderStatusFunc(ctx, orderID, status)
	}
	return nil, model.NewOrderNotFoundError(orderID)
}

// AddOrderNote calls the configured AddOrderNoteFunc or succeeds.
func (m *Mock) AddOrderNote(ctx context.Context, orderID int, note string, customerNote bool) error {
	if m.AddOrderNoteFunc != nil {
		return m.AddOrderNoteFunc(ctx, orderID, note, customerNote)
	}
	return nil
}

// SystemStatus calls the configured SystemStatusFunc or reports a supported store.
func (m *Mock) SystemStatus(ctx context.Context) (*model.SystemStatus, error) {
	if m.SystemStatusFunc != nil {
		return m.SystemStatusFunc(ctx)
	}
	return &model.SystemStatus{
		WooCommerceVersion: "8.3.1",
		WordPressVersion:   "6.4.2",
	}, nil
}

// Verify Mock implements Adapter interface at compile time.
var _ Adapter = (*Mock)(nil)
