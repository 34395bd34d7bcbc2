package hooks

import "context"

// Filter applies filter h to a typed value. If the chain ends on a value of
// another type, the input value is returned unchanged.
func Filter[T any](ctx context.Context, r *Registry, h Hook, value T, args ...any) T {
	out, ok := r.ApplyFilters(ctx, h, value, args...).(T)
	if !ok {
		return value
	}
	return out
}

// TypedFilter adapts a typed filter function to FilterFunc. Values of an
// unexpected type pass through untouched.
func TypedFilter[T any](fn func(ctx context.Context, value T, args ...any) T) FilterFunc {
	return func(ctx context.Context, value any, args ...any) any {
		v, ok := value.(T)
		if !ok {
			return value
		}
		return fn(ctx, v, args...)
	}
}
