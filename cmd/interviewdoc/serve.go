package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/consultpro/interviewdoc/internal/common"
	"github.com/consultpro/interviewdoc/internal/server"
	"github.com/consultpro/interviewdoc/internal/session"
)

var serveFlags struct {
	addr string
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP upload/report service",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveFlags.addr, "addr", "", "listen address (default $HTTP_ADDR or :8080)")
}

func runServe(cmd *cobra.Command, args []string) error {
	logger := slog.Default()
	cfg := common.LoadConfig()

	proc, err := buildProcessor(cfg, "", logger)
	if err != nil {
		return err
	}

	addr := serveFlags.addr
	if addr == "" {
		addr = cfg.Server.HTTPAddr
	}

	srv := server.New(proc, session.NewStore(), logger, cfg.Server.MaxUploadMB)
	httpSrv := &http.Server{
		Addr:    addr,
		Handler: srv.Router(),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("serve.listening", "addr", addr)
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		logger.Info("serve.shutdown")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return err
		}
	}
	return nil
}
