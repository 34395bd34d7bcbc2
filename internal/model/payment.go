package model

// PaymentMethodData is the payload handed to the checkout block script.
// Field names are read by the front-end and must not change.
type PaymentMethodData struct {
	Title                    string   `json:"title"`
	Description              string   `json:"description"`
	Instructions             string   `json:"instructions"`
	OrderStatus              string   `json:"order_status"`
	EnableForUserRoles       []string `json:"enableForUserRoles"`
	CurrentUserRole          []string `json:"currentUserRole"`
	EnableForShippingMethods []string `json:"enableForShippingMethods"`
	EnableForVirtual         bool     `json:"enableForVirtual"`
	Supports                 []string `json:"supports"`
}

// Notice is an admin notice shown on the store dashboard.
type Notice struct {
	Type        string `json:"type"` // "error", "warning", "info", "success"
	Dismissible bool   `json:"dismissible"`
	Message     string `json:"message"`
	LinkText    string `json:"link_text,omitempty"`
	LinkURL     string `json:"link_url,omitempty"`
}

// NoticeList collects notices emitted while the admin_notices hook runs.
type NoticeList struct {
	Items []Notice `json:"notices"`
}

// Add appends a notice.
func (l *NoticeList) Add(n Notice) {
	l.Items = append(l.Items, n)
}

// ActionLink is a link shown under the plugin name on the plugins screen.
type ActionLink struct {
	Key   string `json:"key"`
	URL   string `json:"url"`
	Title string `json:"title,omitempty"`
	Text  string `json:"text"`
}
