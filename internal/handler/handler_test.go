package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"wc-invoice-gateway/internal/adapter"
	"wc-invoice-gateway/internal/assets"
	"wc-invoice-gateway/internal/blocks"
	"wc-invoice-gateway/internal/gateway"
	"wc-invoice-gateway/internal/middleware"
	"wc-invoice-gateway/internal/model"
	"wc-invoice-gateway/internal/plugin"
	"wc-invoice-gateway/internal/settings"
)

const testStoreURL = "https://shop.example.com"

// testHandler wires a booted plugin over mock and an in-memory settings bucket.
func testHandler(t *testing.T, mock *adapter.Mock, bucket settings.Settings) (*Handler, *http.ServeMux) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	scripts := assets.NewRegistry()

	p := plugin.New(plugin.Config{AdminURL: testStoreURL + "/wp-admin/"}, plugin.Deps{
		Store:   mock,
		Gateway: gateway.New(gateway.Config{StoreURL: testStoreURL}, mock, logger),
		Invoice: blocks.NewInvoice(blocks.InvoiceConfig{
			Name:      gateway.ID,
			PluginURL: testStoreURL + "/wp-content/plugins/wc-invoice-gateway",
			PluginDir: t.TempDir(),
			Supports:  []string{"products"},
		}, scripts, logger),
		Logger: logger,
	})
	p.Init()
	p.Boot(context.Background())

	loader := settings.NewLoader(settings.NewMemoryStore(bucket), logger)
	h := New(p, loader, scripts, logger)
	mux := http.NewServeMux()
	h.RegisterRoutes(mux)
	return h, mux
}

func enabledSettings() settings.Settings {
	return settings.Settings{
		"enabled":            "yes",
		"title":              "Pay by invoice",
		"description":        "We send you an invoice.",
		"instructions":       "Pay within 14 days.",
		"order_status":       "wc-on-hold",
		"enable_for_virtual": "no",
		"enable_for_methods": []any{"flat_rate"},
		"user_roles":         []any{"customer", "wholesale"},
	}
}

func errorCode(body []byte) string {
	var resp errorResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return ""
	}
	return resp.Error.Code
}

func TestHandleHealth(t *testing.T) {
	_, mux := testHandler(t, &adapter.Mock{}, nil)

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Status = %d, want %d", w.Code, http.StatusOK)
	}

	var resp healthResponse
	json.NewDecoder(w.Body).Decode(&resp)
	if resp.Status != "ok" {
		t.Errorf("Status = %s, want ok", resp.Status)
	}
	if !resp.WooCommerce || !resp.GatewayIncluded {
		t.Errorf("health = %+v, want WooCommerce detected", resp)
	}
}

func TestHandleGetPaymentMethod(t *testing.T) {
	_, mux := testHandler(t, &adapter.Mock{}, enabledSettings())

	req := httptest.NewRequest("GET", "/payment-methods/invoice", nil)
	req.Header.Set(UserHeader, `id=42, roles=("customer" "wholesale")`)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Status = %d, want %d\nBody: %s", w.Code, http.StatusOK, w.Body.String())
	}

	var resp PaymentMethodResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}

	want := model.PaymentMethodData{
		Title:                    "Pay by invoice",
		Description:              "We send you an invoice.",
		Instructions:             "Pay within 14 days.",
		OrderStatus:              "on-hold",
		EnableForUserRoles:       []string{"customer", "wholesale"},
		CurrentUserRole:          []string{"customer", "wholesale"},
		EnableForShippingMethods: []string{"flat_rate"},
		EnableForVirtual:         false,
		Supports:                 []string{"products"},
	}
	if !reflect.DeepEqual(resp.Data, want) {
		t.Errorf("Data = %+v\nwant %+v", resp.Data, want)
	}
	if !resp.Active {
		t.Error("Active = false, want true")
	}
	if len(resp.ScriptHandles) != 1 || resp.ScriptHandles[0] != blocks.ScriptHandle {
		t.Errorf("ScriptHandles = %v", resp.ScriptHandles)
	}
}

func TestHandleGetPaymentMethod_GuestDefaults(t *testing.T) {
	_, mux := testHandler(t, &adapter.Mock{}, settings.Settings{"enable_for_methods": "", "user_roles": nil})

	req := httptest.NewRequest("GET", "/payment-methods/invoice", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	// Sets must serialize as [] and never as null.
	body := w.Body.String()
	for _, field := range []string{`"enableForUserRoles":[]`, `"currentUserRole":[]`, `"enableForShippingMethods":[]`} {
		if !strings.Contains(body, field) {
			t.Errorf("body missing %s\nBody: %s", field, body)
		}
	}
	if !strings.Contains(body, `"title":"Invoice Payment"`) {
		t.Errorf("default title missing\nBody: %s", body)
	}
	if !strings.Contains(body, `"active":false`) {
		t.Errorf("gateway should be inactive\nBody: %s", body)
	}
}

func TestHandleGetPaymentMethod_Errors(t *testing.T) {
	_, mux := testHandler(t, &adapter.Mock{}, enabledSettings())

	tests := []struct {
		name       string
		path       string
		userHeader string
		wantStatus int
		wantCode   string
	}{
		{"unknown method", "/payment-methods/cod", "", http.StatusNotFound, "NOT_FOUND"},
		{"malformed user header", "/payment-methods/invoice", `roles=("customer"`, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"non-integer id", "/payment-methods/invoice", `id="abc"`, http.StatusBadRequest, "VALIDATION_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.path, nil)
			if tt.userHeader != "" {
				req.Header.Set(UserHeader, tt.userHeader)
			}
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("Status = %d, want %d", w.Code, tt.wantStatus)
			}
			if code := errorCode(w.Body.Bytes()); code != tt.wantCode {
				t.Errorf("Code = %q, want %q", code, tt.wantCode)
			}
		})
	}
}

func TestHandleListPaymentMethods(t *testing.T) {
	t.Run("enabled", func(t *testing.T) {
		_, mux := testHandler(t, &adapter.Mock{}, enabledSettings())
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, httptest.NewRequest("GET", "/payment-methods", nil))

		var resp []PaymentMethodResponse
		json.NewDecoder(w.Body).Decode(&resp)
		if len(resp) != 1 || resp[0].Name != gateway.ID {
			t.Errorf("methods = %+v, want invoice only", resp)
		}
	})

	t.Run("disabled", func(t *testing.T) {
		_, mux := testHandler(t, &adapter.Mock{}, settings.Settings{"enabled": "no"})
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, httptest.NewRequest("GET", "/payment-methods", nil))

		if got := strings.TrimSpace(w.Body.String()); got != "[]" {
			t.Errorf("body = %s, want []", got)
		}
	})
}

func TestHandleListScripts(t *testing.T) {
	_, mux := testHandler(t, &adapter.Mock{}, enabledSettings())

	// Nothing registered until the payload is first projected.
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest("GET", "/scripts", nil))
	if got := strings.TrimSpace(w.Body.String()); got != "[]" {
		t.Fatalf("scripts before projection = %s, want []", got)
	}

	for i := 0; i < 2; i++ {
		mux.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/payment-methods/invoice", nil))
	}

	w = httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest("GET", "/scripts", nil))

	var scripts []assets.Script
	json.NewDecoder(w.Body).Decode(&scripts)
	if len(scripts) != 1 {
		t.Fatalf("scripts = %d, want 1", len(scripts))
	}
	if scripts[0].Handle != blocks.ScriptHandle || scripts[0].Version != assets.FallbackVersion {
		t.Errorf("script = %+v", scripts[0])
	}
	if !strings.HasSuffix(scripts[0].Src, "/assets/js/frontend/blocks.js") {
		t.Errorf("Src = %s", scripts[0].Src)
	}
}

func TestHandleAvailability(t *testing.T) {
	_, mux := testHandler(t, &adapter.Mock{}, enabledSettings())

	tests := []struct {
		name   string
		user   string
		body   string
		want   bool
		status int
	}{
		{"allowed role and method", `id=1, roles=("customer")`, `{"needs_shipping":true,"chosen_shipping_methods":["flat_rate:2"]}`, true, http.StatusOK},
		{"guest rejected by role allowlist", "", `{"needs_shipping":true,"chosen_shipping_methods":["flat_rate:2"]}`, false, http.StatusOK},
		{"other shipping method", `id=1, roles=("customer")`, `{"needs_shipping":true,"chosen_shipping_methods":["local_pickup:1"]}`, false, http.StatusOK},
		{"virtual cart not allowed", `id=1, roles=customer`, `{"needs_shipping":false}`, false, http.StatusOK},
		{"invalid JSON", `id=1`, `{`, false, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/checkout/availability", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			if tt.user != "" {
				req.Header.Set(UserHeader, tt.user)
			}
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code != tt.status {
				t.Fatalf("Status = %d, want %d\nBody: %s", w.Code, tt.status, w.Body.String())
			}
			if tt.status != http.StatusOK {
				return
			}
			var resp AvailabilityResponse
			json.NewDecoder(w.Body).Decode(&resp)
			if resp.Available != tt.want {
				t.Errorf("Available = %v, want %v", resp.Available, tt.want)
			}
		})
	}
}

func TestHandleProcessPayment(t *testing.T) {
	var gotStatus model.OrderStatus
	mock := &adapter.Mock{
		GetOrderFunc: func(ctx context.Context, id int) (*model.Order, error) {
			switch id {
			case 100:
				return &model.Order{ID: id, Status: model.OrderStatusPending, PaymentMethod: "invoice", OrderKey: "wc_order_x"}, nil
			case 200:
				return &model.Order{ID: id, Status: model.OrderStatusPending, PaymentMethod: "bacs"}, nil
			}
			return nil, model.NewNotFoundError("order")
		},
		UpdateOrderStatusFunc: func(ctx context.Context, id int, status model.OrderStatus) (*model.Order, error) {
			gotStatus = status
			return &model.Order{ID: id, Status: status, PaymentMethod: "invoice", OrderKey: "wc_order_x"}, nil
		},
	}
	_, mux := testHandler(t, mock, enabledSettings())

	tests := []struct {
		name       string
		path       string
		wantStatus int
		wantCode   string
	}{
		{"success", "/orders/100/payment", http.StatusOK, ""},
		{"not an invoice order", "/orders/200/payment", http.StatusPaymentRequired, "PAYMENT_ERROR"},
		{"unknown order", "/orders/300/payment", http.StatusNotFound, "NOT_FOUND"},
		{"invalid id", "/orders/abc/payment", http.StatusBadRequest, "VALIDATION_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", tt.path, nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("Status = %d, want %d\nBody: %s", w.Code, tt.wantStatus, w.Body.String())
			}
			if tt.wantCode != "" {
				if code := errorCode(w.Body.Bytes()); code != tt.wantCode {
					t.Errorf("Code = %q, want %q", code, tt.wantCode)
				}
				return
			}

			var result model.PaymentResult
			json.NewDecoder(w.Body).Decode(&result)
			if result.Result != "success" {
				t.Errorf("Result = %q", result.Result)
			}
			if result.Redirect != testStoreURL+"/checkout/order-received/100/?key=wc_order_x" {
				t.Errorf("Redirect = %q", result.Redirect)
			}
			if gotStatus != model.OrderStatusOnHold {
				t.Errorf("status = %q, want on-hold", gotStatus)
			}
		})
	}
}

func TestHandleProcessPayment_StoreDown(t *testing.T) {
	mock := &adapter.Mock{
		GetOrderFunc: func(ctx context.Context, id int) (*model.Order, error) {
			return nil, model.NewStoreUnavailableError(errors.New("timeout"))
		},
	}
	_, mux := testHandler(t, mock, enabledSettings())

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest("POST", "/orders/1/payment", nil))

	if w.Code != http.StatusBadGateway {
		t.Errorf("Status = %d, want %d", w.Code, http.StatusBadGateway)
	}
	if strings.Contains(w.Body.String(), "timeout") {
		t.Error("upstream error details must not leak")
	}
}

func TestHandleOrderInstructions(t *testing.T) {
	mock := &adapter.Mock{
		GetOrderFunc: func(ctx context.Context, id int) (*model.Order, error) {
			switch id {
			case 100:
				return &model.Order{ID: id, Status: model.OrderStatusOnHold, PaymentMethod: "invoice"}, nil
			case 101:
				return &model.Order{ID: id, Status: model.OrderStatusProcessing, PaymentMethod: "invoice"}, nil
			case 200:
				return &model.Order{ID: id, Status: model.OrderStatusOnHold, PaymentMethod: "bacs"}, nil
			}
			return nil, model.NewOrderNotFoundError(id)
		},
	}
	_, mux := testHandler(t, mock, enabledSettings())

	tests := []struct {
		name       string
		path       string
		wantStatus int
		wantCode   string
		wantEmail  string
	}{
		{"awaiting payment", "/orders/100/instructions", http.StatusOK, "", "Pay within 14 days."},
		{"admin copy", "/orders/100/instructions?sent_to_admin=true", http.StatusOK, "", ""},
		{"already processing", "/orders/101/instructions", http.StatusOK, "", ""},
		{"not an invoice order", "/orders/200/instructions", http.StatusPaymentRequired, "PAYMENT_ERROR", ""},
		{"unknown order", "/orders/300/instructions", http.StatusNotFound, "NOT_FOUND", ""},
		{"invalid id", "/orders/0/instructions", http.StatusBadRequest, "VALIDATION_ERROR", ""},
		{"invalid flag", "/orders/100/instructions?sent_to_admin=maybe", http.StatusBadRequest, "VALIDATION_ERROR", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest("GET", tt.path, nil))

			if w.Code != tt.wantStatus {
				t.Fatalf("Status = %d, want %d\nBody: %s", w.Code, tt.wantStatus, w.Body.String())
			}
			if tt.wantCode != "" {
				if code := errorCode(w.Body.Bytes()); code != tt.wantCode {
					t.Errorf("Code = %q, want %q", code, tt.wantCode)
				}
				return
			}

			var got gateway.Instructions
			json.NewDecoder(w.Body).Decode(&got)
			if got.ThankYou != "Pay within 14 days." {
				t.Errorf("ThankYou = %q", got.ThankYou)
			}
			if got.Email != tt.wantEmail {
				t.Errorf("Email = %q, want %q", got.Email, tt.wantEmail)
			}
		})
	}
}

func TestAccessLogCarriesOrderAndStoreError(t *testing.T) {
	mock := &adapter.Mock{
		GetOrderFunc: func(ctx context.Context, id int) (*model.Order, error) {
			return nil, model.NewStoreError(http.StatusForbidden, "order 42", "woocommerce_rest_cannot_view", "Sorry, you cannot view this resource.")
		},
	}
	_, mux := testHandler(t, mock, enabledSettings())

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	srv := middleware.Chain(middleware.RequestID(), middleware.Logging(logger))(mux)

	w := httptest.NewRecorder()
	srv.ServeHTTP(w, httptest.NewRequest("POST", "/orders/42/payment", nil))

	if w.Code != http.StatusForbidden {
		t.Fatalf("Status = %d, want %d", w.Code, http.StatusForbidden)
	}
	var entry map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("access log: %v\n%s", err, buf.String())
	}
	want := map[string]any{
		"level":          "WARN",
		"order_id":       float64(42),
		"payment_method": "invoice",
		"error_code":     "FORBIDDEN",
		"store_code":     "woocommerce_rest_cannot_view",
	}
	for k, v := range want {
		if entry[k] != v {
			t.Errorf("%s = %v, want %v", k, entry[k], v)
		}
	}
}

func TestHandleOrderActions(t *testing.T) {
	_, mux := testHandler(t, &adapter.Mock{}, nil)

	tests := []struct {
		name     string
		status   string
		method   string
		wantKeys []string
	}{
		{"pending invoice", "pending", "invoice", []string{"view"}},
		{"pending with prefix", "wc-pending", "invoice", []string{"view"}},
		{"on-hold invoice", "on-hold", "invoice", []string{"pay", "view", "cancel"}},
		{"pending other method", "pending", "bacs", []string{"pay", "view", "cancel"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, _ := json.Marshal(map[string]any{
				"order": map[string]any{"id": 1, "status": tt.status, "payment_method": tt.method},
				"actions": []map[string]string{
					{"key": "pay", "name": "Pay"},
					{"key": "view", "name": "View"},
					{"key": "cancel", "name": "Cancel"},
				},
			})
			req := httptest.NewRequest("POST", "/orders/actions", bytes.NewReader(body))
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			var resp OrderActionsResponse
			json.NewDecoder(w.Body).Decode(&resp)

			var keys []string
			for _, a := range resp.Actions {
				keys = append(keys, a.Key)
			}
			if !reflect.DeepEqual(keys, tt.wantKeys) {
				t.Errorf("keys = %v, want %v", keys, tt.wantKeys)
			}
		})
	}
}

func TestHandleAdmin(t *testing.T) {
	_, mux := testHandler(t, &adapter.Mock{}, nil)

	t.Run("action links", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/admin/action-links", nil)
		req.Header.Set("Accept-Language", "de-DE")
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)

		var links []model.ActionLink
		json.NewDecoder(w.Body).Decode(&links)
		if len(links) != 1 || links[0].Text != "Einstellungen" {
			t.Fatalf("links = %+v", links)
		}
		if links[0].URL != testStoreURL+"/wp-admin/"+plugin.SettingsPath {
			t.Errorf("URL = %s", links[0].URL)
		}
	})

	t.Run("notices", func(t *testing.T) {
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, httptest.NewRequest("GET", "/admin/notices", nil))
		if got := strings.TrimSpace(w.Body.String()); got != `{"notices":[]}` {
			t.Errorf("body = %s", got)
		}
	})

	t.Run("form fields", func(t *testing.T) {
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, httptest.NewRequest("GET", "/admin/form-fields", nil))

		var resp FormFieldsResponse
		json.NewDecoder(w.Body).Decode(&resp)
		if len(resp.Fields) != 8 || resp.Fields[0].Key != "enabled" {
			t.Errorf("fields = %+v", resp.Fields)
		}
		if resp.ID != "invoice" || resp.MethodTitle != "Invoice Payments" || resp.HasFields {
			t.Errorf("method = %+v", resp)
		}
		if resp.MethodDescription == "" {
			t.Error("method description missing")
		}
		if !reflect.DeepEqual(resp.Supports, []string{"products"}) {
			t.Errorf("supports = %v", resp.Supports)
		}
	})

	t.Run("form fields translated", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/admin/form-fields", nil)
		req.Header.Set("Accept-Language", "de")
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)

		var resp FormFieldsResponse
		json.NewDecoder(w.Body).Decode(&resp)
		if resp.MethodTitle != "Zahlung auf Rechnung" {
			t.Errorf("method title = %q", resp.MethodTitle)
		}
	})

	t.Run("gateways", func(t *testing.T) {
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, httptest.NewRequest("GET", "/admin/gateways", nil))

		var gateways []string
		json.NewDecoder(w.Body).Decode(&gateways)
		if !reflect.DeepEqual(gateways, []string{gateway.ClassName}) {
			t.Errorf("gateways = %v", gateways)
		}
	})

	t.Run("compat", func(t *testing.T) {
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, httptest.NewRequest("GET", "/admin/compat", nil))

		var resp CompatResponse
		json.NewDecoder(w.Body).Decode(&resp)
		if !resp.Supported || !resp.Tested {
			t.Errorf("compat = %+v, want supported and tested", resp)
		}
		if len(resp.Declarations) != 1 || !resp.Declarations[0].Compatible {
			t.Errorf("declarations = %+v", resp.Declarations)
		}
	})
}

func TestHandleAdmin_WithoutWooCommerce(t *testing.T) {
	mock := &adapter.Mock{
		SystemStatusFunc: func(ctx context.Context) (*model.SystemStatus, error) {
			return nil, model.NewStoreUnavailableError(errors.New("connection refused"))
		},
	}
	_, mux := testHandler(t, mock, enabledSettings())

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest("GET", "/admin/notices", nil))

	var list model.NoticeList
	json.NewDecoder(w.Body).Decode(&list)
	if len(list.Items) != 1 || list.Items[0].LinkURL != plugin.InstallURL {
		t.Errorf("notices = %+v", list.Items)
	}

	w = httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest("POST", "/orders/1/payment", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("payment Status = %d, want %d", w.Code, http.StatusNotFound)
	}

	req := httptest.NewRequest("POST", "/checkout/availability", bytes.NewBufferString(`{"needs_shipping":false}`))
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	var resp AvailabilityResponse
	json.NewDecoder(w.Body).Decode(&resp)
	if resp.Available {
		t.Error("gateway must not be available without a store")
	}

	w = httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest("GET", "/payment-methods/invoice", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("payment method Status = %d, want %d", w.Code, http.StatusNotFound)
	}
	var errResp map[string]model.APIError
	json.NewDecoder(w.Body).Decode(&errResp)
	if errResp["error"].Code != model.CodeNotFound {
		t.Errorf("payment method code = %q, want %s", errResp["error"].Code, model.CodeNotFound)
	}

	body := `{"order":{"id":1,"status":"pending","payment_method":"invoice"},` +
		`"actions":[{"key":"pay","name":"Pay"},{"key":"view","name":"View"}]}`
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest("POST", "/orders/actions", bytes.NewBufferString(body)))
	var actions OrderActionsResponse
	json.NewDecoder(w.Body).Decode(&actions)
	if len(actions.Actions) != 1 || actions.Actions[0].Key != "view" {
		t.Errorf("order actions = %+v, want only view", actions.Actions)
	}
}

func TestErrorResponses(t *testing.T) {
	h, _ := testHandler(t, &adapter.Mock{}, nil)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"not found", model.NewNotFoundError("order"), http.StatusNotFound, "NOT_FOUND"},
		{"validation", model.NewValidationError("id", "bad"), http.StatusBadRequest, "VALIDATION_ERROR"},
		{"wrapped", errors.Join(errors.New("ctx"), model.NewStoreRateLimitedError()), http.StatusTooManyRequests, "RATE_LIMITED"},
		{"plain error", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			h.writeError(w, httptest.NewRequest("GET", "/", nil), tt.err)

			if w.Code != tt.wantStatus {
				t.Errorf("Status = %d, want %d", w.Code, tt.wantStatus)
			}
			if code := errorCode(w.Body.Bytes()); code != tt.wantCode {
				t.Errorf("Code = %q, want %q", code, tt.wantCode)
			}
			if strings.Contains(w.Body.String(), "boom") {
				t.Error("internal error details must not leak")
			}
		})
	}
}
