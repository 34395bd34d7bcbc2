// Package orders adjusts the customer-facing order list for invoice orders.
package orders

import "wc-invoice-gateway/internal/model"

// PaymentMethodID is the payment method id invoice orders carry.
const PaymentMethodID = "invoice"

// Restricted reports whether the customer must not pay or cancel the order
// themselves: it is awaiting an invoice that is settled outside checkout.
func Restricted(order model.Order) bool {
	return order.HasStatus(model.OrderStatusPending) && order.PaymentMethod == PaymentMethodID
}

// FilterActions removes the "pay" and "cancel" actions from restricted
// orders and returns every other input unchanged. Remaining actions keep
// their order.
func FilterActions(actions []model.OrderAction, order model.Order) []model.OrderAction {
	if !Restricted(order) {
		return actions
	}

	out := make([]model.OrderAction, 0, len(actions))
	for _, a := range actions {
		if a.Key == model.ActionPay || a.Key == model.ActionCancel {
			continue
		}
		out = append(out, a)
	}
	return out
}
