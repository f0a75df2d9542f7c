package cmd

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

	"github.com/spf13/cobra"

	"github.com/btced/btced/internal/config"
	"github.com/btced/btced/internal/content"
	"github.com/btced/btced/internal/llm"
	"github.com/btced/btced/internal/price"
	"github.com/btced/btced/internal/server"
	"github.com/btced/btced/internal/session"
	"github.com/btced/btced/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
}

func runServe(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
	slog.SetDefault(logger)

	dbPath := cfg.DBPath
	if dbPath == "" {
		if dbPath, err = resolveDBPath(cmd); err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer st.Close()
	slog.Info("Event log opened", "path", dbPath)

	library, err := content.Load()
	if err != nil {
		return fmt.Errorf("load content packs: %w", err)
	}

	priceOpts := []price.Option{}
	if cfg.PriceBaseURL != "" {
		priceOpts = append(priceOpts, price.WithBaseURL(cfg.PriceBaseURL))
	}
	priceClient := price.NewClient(logger, priceOpts...)

	provider := buildProvider(cmd.Context(), st)

	sessions := session.NewManager(library, provider, st.EventRepo(), priceClient.USDPerBTC)
	srv := server.New(cfg, logger, sessions, library, priceClient)

	httpSrv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // tutor turns wait on the model
		IdleTimeout:  120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server listening", "addr", httpSrv.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}
	stop()

	slog.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// buildProvider resolves the chat model from the environment. A missing key
// is not an error: the tutor degrades to canned fallback responses.
func buildProvider(ctx context.Context, st *store.Store) llm.Provider {
	cfg := llm.ConfigFromEnv()
	if !cfg.Configured() {
		discovered, ok := llm.DiscoverConfig()
		if !ok {
			slog.Info("No model API key found; tutor personas run in fallback mode")
			return nil
		}
		cfg = discovered
	}

	provider, err := llm.NewProvider(ctx, cfg, st.EventRepo())
	if err != nil {
		slog.Warn("Model provider unavailable; tutor personas run in fallback mode", "error", err)
		return nil
	}
	slog.Info("Model provider ready", "provider", cfg.Provider, "model", provider.ModelID())
	return provider
}
