package model

import (
	"errors"
	"fmt"
)

// Error codes returned in the "code" field of error responses.
const (
	CodeNotFound         = "NOT_FOUND"
	CodeValidation       = "VALIDATION_ERROR"
	CodeStoreAuth        = "UNAUTHORIZED"
	CodeStoreForbidden   = "FORBIDDEN"
	CodeStoreUnavailable = "UPSTREAM_ERROR"
	CodeStoreRateLimited = "RATE_LIMITED"
	CodePaymentRejected  = "PAYMENT_ERROR"
	CodeInternal         = "INTERNAL_ERROR"
)

// Sentinel errors, one per code. Use errors.Is() to check against these.
var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidRequest   = errors.New("invalid request")
	ErrStoreAuth        = errors.New("store rejected credentials")
	ErrStoreForbidden   = errors.New("store denied permission")
	ErrStoreUnavailable = errors.New("store unavailable")
	ErrStoreRateLimited = errors.New("store rate limited")
	ErrPaymentRejected  = errors.New("payment rejected")
	ErrInternal         = errors.New("internal error")
)

// StoreName names the store in error messages.
const StoreName = "WooCommerce"

type errorKind struct {
	status    int
	sentinel  error
	retryable bool
}

var errorKinds = map[string]errorKind{
	CodeNotFound:         {404, ErrNotFound, false},
	CodeValidation:       {400, ErrInvalidRequest, false},
	CodeStoreAuth:        {401, ErrStoreAuth, false},
	CodeStoreForbidden:   {403, ErrStoreForbidden, false},
	CodeStoreUnavailable: {502, ErrStoreUnavailable, true},
	CodeStoreRateLimited: {429, ErrStoreRateLimited, true},
	CodePaymentRejected:  {402, ErrPaymentRejected, false},
	CodeInternal:         {500, ErrInternal, false},
}

// APIError is an error the gateway reports to its callers. Code and
// Message are returned to clients; the rest stays in logs.
type APIError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`

	// StoreCode is the WooCommerce error code behind a store failure,
	// e.g. woocommerce_rest_shop_order_invalid_id.
	StoreCode string `json:"-"`

	// Err is the code's sentinel, joined with the cause when there is one.
	Err   error `json:"-"`
	cause error
}

func newAPIError(code, message string, cause error) *APIError {
	kind := errorKinds[code]
	err := kind.sentinel
	if cause != nil {
		err = fmt.Errorf("%w: %w", kind.sentinel, cause)
	}
	return &APIError{
		Code:       code,
		Message:    message,
		StatusCode: kind.status,
		Err:        err,
		cause:      cause,
	}
}

func (e *APIError) Error() string {
	msg := e.Code + ": " + e.Message
	if e.StoreCode != "" {
		msg += " [" + e.StoreCode + "]"
	}
	if e.cause != nil {
		msg += fmt.Sprintf(" (%v)", e.cause)
	}
	return msg
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// Retryable reports whether the same call may succeed later.
func (e *APIError) Retryable() bool {
	return errorKinds[e.Code].retryable
}

// NewNotFoundError reports a missing resource.
func NewNotFoundError(resource string) *APIError {
	return newAPIError(CodeNotFound, resource+" not found", nil)
}

// NewOrderNotFoundError reports an order id the store does not know.
func NewOrderNotFoundError(orderID int) *APIError {
	return newAPIError(CodeNotFound, fmt.Sprintf("order %d not found", orderID), nil)
}

// NewValidationError reports invalid caller input.
func NewValidationError(field, reason string) *APIError {
	return newAPIError(CodeValidation, fmt.Sprintf("invalid %s: %s", field, reason), nil)
}

// NewPaymentError reports an order the invoice gateway refuses to place.
// reason is shown to the shopper and is already translated.
func NewPaymentError(reason string) *APIError {
	return newAPIError(CodePaymentRejected, reason, nil)
}

// NewInternalError hides err behind a generic message.
func NewInternalError(err error) *APIError {
	return newAPIError(CodeInternal, "an internal error occurred", err)
}

// NewStoreAuthError reports consumer credentials the store rejected.
func NewStoreAuthError() *APIError {
	return newAPIError(CodeStoreAuth, StoreName+" rejected the API credentials", nil)
}

// NewStoreForbiddenError reports a key without the needed permission,
// typically a read-only key asked to update an order.
func NewStoreForbiddenError(storeMessage string) *APIError {
	if storeMessage == "" {
		storeMessage = StoreName + " API key lacks read/write permission"
	}
	return newAPIError(CodeStoreForbidden, storeMessage, nil)
}

// NewStoreUnavailableError reports a store that could not be reached or
// answered with a server error. err is kept for logs only.
func NewStoreUnavailableError(err error) *APIError {
	return newAPIError(CodeStoreUnavailable, StoreName+" request failed", err)
}

// NewStoreRateLimitedError reports a store throttling the gateway.
func NewStoreRateLimitedError() *APIError {
	return newAPIError(CodeStoreRateLimited, StoreName+" rate limit exceeded, please retry later", nil)
}

// NewStoreError maps a failed store response to the gateway taxonomy.
// resource names what the request addressed ("order 42"); storeCode and
// storeMessage come from the store's error body and may be empty.
func NewStoreError(status int, resource, storeCode, storeMessage string) *APIError {
	var e *APIError
	switch {
	case status == 404:
		e = NewNotFoundError(resource)
	case status == 401:
		e = NewStoreAuthError()
	case status == 403:
		e = NewStoreForbiddenError(storeMessage)
	case status == 429:
		e = NewStoreRateLimitedError()
	case status >= 400 && status < 500:
		if storeMessage == "" {
			storeMessage = "invalid request"
		}
		e = NewValidationError("request", storeMessage)
	default:
		e = NewStoreUnavailableError(fmt.Errorf("status %d: %s", status, storeMessage))
	}
	e.StoreCode = storeCode
	return e
}

// AsAPIError returns the APIError in err's chain, if any.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
