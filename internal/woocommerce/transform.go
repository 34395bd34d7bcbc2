package woocommerce

import (
	"wc-invoice-gateway/internal/model"
)

// OrderFromWoo converts a WooCommerce order to the gateway model.
func OrderFromWoo(o *WooOrder) *model.Order {
	if o == nil {
		return nil
	}
	return &model.Order{
		ID:            o.ID,
		Status:        model.OrderStatus(o.Status).Normalize(),
		PaymentMethod: o.PaymentMethod,
		OrderKey:      o.OrderKey,
		Currency:      o.Currency,
		Total:         o.Total,
		BillingEmail:  o.Billing.Email,
	}
}

// SystemStatusFromWoo converts the system status report.
func SystemStatusFromWoo(s *WooSystemStatus) *model.SystemStatus {
	if s == nil {
		return nil
	}
	storeURL := s.Environment.HomeURL
	if storeURL == "" {
		storeURL = s.Environment.SiteURL
	}
	return &model.SystemStatus{
		WooCommerceVersion: s.Environment.Version,
		WordPressVersion:   s.Environment.WPVersion,
		StoreURL:           storeURL,
	}
}
