package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"fiscal/internal/cli"
	apphttp "fiscal/internal/http"
	"fiscal/internal/log"
)

func main() {
	cfg, logger := cli.Setup(log.ComponentApp)

	srv, err := apphttp.NewServer(cfg, logger)
	if err != nil {
		logger.Error("server setup failed", log.FieldError, err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("starting fiscald",
			"addr", srv.Addr,
			"start_month", cfg.FiscalStartMonth,
			"start_day", cfg.FiscalStartDay,
			"year_naming", cfg.FiscalYearNaming)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("server error", log.FieldError, err)
		os.Exit(1)
	}
	logger.Info("server stopped gracefully")
}
