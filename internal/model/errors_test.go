package model

import (
	"errors"
	"fmt"
	"testing"
)

func TestAPIError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *APIError
		want string
	}{
		{
			name: "order not found",
			err:  NewOrderNotFoundError(42),
			want: "NOT_FOUND: order 42 not found",
		},
		{
			name: "store failure keeps cause and store code",
			err:  NewStoreError(500, "order 42", "internal_server_error", "fatal"),
			want: "UPSTREAM_ERROR: WooCommerce request failed [internal_server_error] (status 500: fatal)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewStoreError(t *testing.T) {
	tests := []struct {
		status    int
		message   string
		code      string
		wantMsg   string
		httpCode  int
		sentinel  error
		retryable bool
	}{
		{404, "Invalid ID.", CodeNotFound, "order 7 not found", 404, ErrNotFound, false},
		{401, "Sorry, you cannot view this resource.", CodeStoreAuth, "WooCommerce rejected the API credentials", 401, ErrStoreAuth, false},
		{403, "Sorry, you are not allowed to edit this resource.", CodeStoreForbidden, "Sorry, you are not allowed to edit this resource.", 403, ErrStoreForbidden, false},
		{403, "", CodeStoreForbidden, "WooCommerce API key lacks read/write permission", 403, ErrStoreForbidden, false},
		{400, "Invalid parameter(s): status", CodeValidation, "invalid request: Invalid parameter(s): status", 400, ErrInvalidRequest, false},
		{409, "", CodeValidation, "invalid request: invalid request", 400, ErrInvalidRequest, false},
		{429, "", CodeStoreRateLimited, "WooCommerce rate limit exceeded, please retry later", 429, ErrStoreRateLimited, true},
		{503, "maintenance", CodeStoreUnavailable, "WooCommerce request failed", 502, ErrStoreUnavailable, true},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d %s", tt.status, tt.message), func(t *testing.T) {
			err := NewStoreError(tt.status, "order 7", "woocommerce_rest_x", tt.message)

			if err.Code != tt.code {
				t.Errorf("Code = %q, want %q", err.Code, tt.code)
			}
			if err.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", err.Message, tt.wantMsg)
			}
			if err.StatusCode != tt.httpCode {
				t.Errorf("StatusCode = %d, want %d", err.StatusCode, tt.httpCode)
			}
			if !errors.Is(err, tt.sentinel) {
				t.Errorf("errors.Is(%v) = false", tt.sentinel)
			}
			if err.Retryable() != tt.retryable {
				t.Errorf("Retryable() = %v, want %v", err.Retryable(), tt.retryable)
			}
			if err.StoreCode != "woocommerce_rest_x" {
				t.Errorf("StoreCode = %q", err.StoreCode)
			}
		})
	}
}

func TestGatewayErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      *APIError
		code     string
		message  string
		status   int
		sentinel error
	}{
		{"payment method", NewNotFoundError("payment method"), CodeNotFound, "payment method not found", 404, ErrNotFound},
		{"user header", NewValidationError("Invoice-User", "id must be an integer"), CodeValidation, "invalid Invoice-User: id must be an integer", 400, ErrInvalidRequest},
		{"not an invoice order", NewPaymentError("This order was not placed with invoice payment."), CodePaymentRejected, "This order was not placed with invoice payment.", 402, ErrPaymentRejected},
		{"internal", NewInternalError(errors.New("nil resolver")), CodeInternal, "an internal error occurred", 500, ErrInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.code {
				t.Errorf("Code = %q, want %q", tt.err.Code, tt.code)
			}
			if tt.err.Message != tt.message {
				t.Errorf("Message = %q, want %q", tt.err.Message, tt.message)
			}
			if tt.err.StatusCode != tt.status {
				t.Errorf("StatusCode = %d, want %d", tt.err.StatusCode, tt.status)
			}
			if !errors.Is(tt.err, tt.sentinel) {
				t.Errorf("errors.Is(%v) = false", tt.sentinel)
			}
		})
	}
}

func TestStoreUnavailableKeepsCause(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := NewStoreUnavailableError(cause)

	if !errors.Is(err, cause) {
		t.Error("cause not reachable through errors.Is")
	}
	if !errors.Is(err, ErrStoreUnavailable) {
		t.Error("sentinel not reachable through errors.Is")
	}
	if err.Message != "WooCommerce request failed" {
		t.Errorf("Message = %q, cause must not leak", err.Message)
	}
}

func TestAsAPIError(t *testing.T) {
	wrapped := fmt.Errorf("processing order 42: %w", NewOrderNotFoundError(42))

	apiErr, ok := AsAPIError(wrapped)
	if !ok {
		t.Fatal("AsAPIError() ok = false, want true")
	}
	if apiErr.Code != CodeNotFound {
		t.Errorf("Code = %q, want NOT_FOUND", apiErr.Code)
	}

	if _, ok := AsAPIError(errors.New("plain")); ok {
		t.Error("AsAPIError() ok = true for a plain error")
	}
	if _, ok := AsAPIError(nil); ok {
		t.Error("AsAPIError() ok = true for nil")
	}
}
