package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/docfold/docfold-go/sandbox"
)

var (
	sandboxListen string
	sandboxData   string
	sandboxKey    string
)

var sandboxCmd = &cobra.Command{
	Use:   "sandbox",
	Short: "Local sandbox server commands",
}

var sandboxRunCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a local stand-in for the Docfold service",
	Long:  `Run an in-process fake of the Docfold service for offline development. Point the client at it with --base-url.`,
	RunE:  runSandbox,
}

func init() {
	sandboxRunCmd.Flags().StringVar(&sandboxListen, "listen", "127.0.0.1:8745", "Listen address")
	sandboxRunCmd.Flags().StringVar(&sandboxData, "data", "", "Database file path (default a temporary file)")
	sandboxRunCmd.Flags().StringVar(&sandboxKey, "key", "", "Require this API key (default accept any)")

	sandboxCmd.AddCommand(sandboxRunCmd)
	rootCmd.AddCommand(sandboxCmd)
}

func runSandbox(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := cfg.Logger()

	srv, err := sandbox.New(sandbox.Config{
		APIKey:     sandboxKey,
		DataPath:   sandboxData,
		ListenAddr: sandboxListen,
		Version:    cfg.Version,
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create sandbox: %w", err)
	}
	defer srv.Close()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	fmt.Printf("Sandbox listening on http://%s/%s\n", sandboxListen, cfg.Version)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-sigCh:
		logger.Info("shutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			return err
		}
	}
	return nil
}
