package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	cfg := LoadConfig(".env")

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("ledger server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg *Config, logger *slog.Logger) error {
	store, err := NewJSONFileStore(cfg.DataDir, logger)
	if err != nil {
		return err
	}

	seed, err := SeedAccounts(cfg.AdminEmail, cfg.AdminPassword, cfg.BcryptCost)
	if err != nil {
		return err
	}
	err = store.InitializeDataStore(seed)
	if err != nil {
		return err
	}

	ledger, err := NewLedger(store, logger, cfg.BcryptCost)
	if err != nil {
		return err
	}

	server := NewAPIServer(cfg, ledger, logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.RunServer()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		logger.Info("shutting down server", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return err
	}
	logger.Info("server stopped gracefully")
	return nil
}
