package middleware

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"wc-invoice-gateway/internal/model"
)

// Recovery returns middleware that turns a panic into the service's
// INTERNAL_ERROR response. The panic value and stack go to the log only.
// Nothing is written when the handler already sent its headers.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := record(w)
			defer func() {
				v := recover()
				if v == nil {
					return
				}
				if v == http.ErrAbortHandler {
					panic(v)
				}

				logger.ErrorContext(r.Context(), "panic recovered",
					slog.String("request_id", RequestIDFromContext(r.Context())),
					slog.Any("error", fmt.Errorf("panic: %v", v)),
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.String("stack", string(debug.Stack())),
				)

				if rec.wroteHeader {
					return
				}
				apiErr := model.NewInternalError(nil)
				rec.Header().Set("Content-Type", "application/json")
				rec.WriteHeader(apiErr.StatusCode)
				json.NewEncoder(rec).Encode(map[string]any{"error": apiErr})
			}()

			next.ServeHTTP(rec, r)
		})
	}
}
