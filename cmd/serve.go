package cmd

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"summagraph/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE:  serveCommand,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides server_addr)")
}

func serveCommand(cmd *cobra.Command, _ []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}
	srv, err := server.New(a.Orchestrator, a.Guidelines, server.Options{
		OutputRoot:         a.Config.OutputRoot,
		RateLimitPerMinute: a.Config.Server.RateLimitPerMinute,
		GenerateTimeout:    a.Config.Server.GenerateTimeout,
		Gatherer:           a.Registry,
		Logger:             a.Logger.With().Str("component", "http").Logger(),
	})
	if err != nil {
		return err
	}

	listen := a.Config.ServerAddr
	if serveAddr != "" {
		listen = serveAddr
	}
	if listen == "" {
		listen = ":8000"
	}

	httpSrv := &http.Server{
		Addr:              listen,
		Handler:           srv.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		a.Logger.Info().Str("addr", listen).Str("backend", a.Backend).Msg("starting web server")
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	a.Logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return httpSrv.Shutdown(shutdownCtx)
}
