// Invoice gateway service - runs the WooCommerce "pay by invoice" payment
// method against a store's REST API.
// Designed for Cloud Run deployment with stateless operation.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wc-invoice-gateway/internal/assets"
	"wc-invoice-gateway/internal/blocks"
	"wc-invoice-gateway/internal/config"
	"wc-invoice-gateway/internal/gateway"
	"wc-invoice-gateway/internal/handler"
	"wc-invoice-gateway/internal/logger"
	"wc-invoice-gateway/internal/middleware"
	"wc-invoice-gateway/internal/plugin"
	"wc-invoice-gateway/internal/settings"
	"wc-invoice-gateway/internal/woocommerce"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log := logger.New(os.Stdout, cfg.Environment, cfg.LogLevel)
	slog.SetDefault(log)

	log.Info("configuration loaded",
		slog.String("environment", cfg.Environment),
		slog.String("store_url", cfg.Store.URL),
		slog.String("settings_source", cfg.Settings.Source),
	)

	store, err := woocommerce.New(woocommerce.Config{
		StoreURL:  cfg.Store.URL,
		APIKey:    cfg.Store.APIKey,
		APISecret: cfg.Store.APISecret,

		Fingerprint: cfg.Store.TLSFingerprint,
	})
	if err != nil {
		return fmt.Errorf("creating store client: %w", err)
	}

	scripts := assets.NewRegistry()
	gw := gateway.New(gateway.Config{StoreURL: cfg.Store.URL}, store, log)

	p := plugin.New(plugin.Config{
		File:     cfg.Plugin.File,
		AdminURL: cfg.Store.AdminURL,
	}, plugin.Deps{
		Store:   store,
		Gateway: gw,
		Invoice: blocks.NewInvoice(blocks.InvoiceConfig{
			Name:      gateway.ID,
			PluginURL: cfg.Plugin.URL,
			PluginDir: cfg.Plugin.Dir,
			Supports:  gw.Supports(),
		}, scripts, log),
		Logger: log,
	})
	p.Init()

	// Boot checks the store once; a store that is down at startup leaves the
	// plugin in its "WooCommerce missing" state until the next restart.
	bootCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	p.Boot(bootCtx)
	cancel()

	log.Info("plugin booted",
		slog.Bool("woocommerce", p.WooCommerceActive()),
		slog.Bool("gateway_included", p.GatewayIncluded()),
	)

	loader := settings.NewLoader(cfg.SettingsStore(), log, cfg.SettingsOptions()...)
	h := handler.New(p, loader, scripts, log)

	mux := http.NewServeMux()
	h.RegisterRoutes(mux)

	// Apply middleware chain: recovery → request id → logging → CORS → handler
	// Recovery must be outermost to catch panics from logging middleware
	httpHandler := middleware.Chain(
		middleware.Recovery(log),
		middleware.RequestID(),
		middleware.Logging(log),
		middleware.CORS(cfg.CORSOrigins),
	)(mux)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      httpHandler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("server starting",
			slog.String("port", cfg.Port),
			slog.String("addr", server.Addr),
		)
		serverErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}

	case <-ctx.Done():
		log.Info("shutdown signal received")

		// Give outstanding requests time to complete
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			server.Close()
			return fmt.Errorf("shutdown error: %w", err)
		}
	}

	log.Info("server stopped")
	return nil
}
