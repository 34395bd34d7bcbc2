package settings

import (
	"context"
	"log/slog"
)

// Loader builds a Resolver from the store on every render, the way the
// checkout block re-reads the option on each request.
type Loader struct {
	store  Store
	opts   []Option
	logger *slog.Logger
}

// NewLoader returns a loader reading from store. opts apply to every Resolver.
func NewLoader(store Store, logger *slog.Logger, opts ...Option) *Loader {
	return &Loader{store: store, opts: opts, logger: logger}
}

// Resolve loads the bucket and wraps it. Store failures and invalid values
// are logged; the result then falls back to defaults instead of failing.
func (l *Loader) Resolve(ctx context.Context) *Resolver {
	s, err := l.store.Load(ctx)
	if err != nil {
		l.logger.WarnContext(ctx, "loading gateway settings failed, using defaults",
			slog.String("option", OptionName),
			slog.Any("error", err),
		)
		s = Settings{}
	}
	if err := Validate(s); err != nil {
		l.logger.WarnContext(ctx, "gateway settings contain invalid values",
			slog.String("option", OptionName),
			slog.Any("error", err),
		)
	}
	return NewResolver(s, l.opts...)
}
