// Command webresult-demo serves a small item catalog whose handlers answer
// with response.Result values.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/leeforge/webresult/logging"
)

func main() {
	if err := run(); err != nil {
		logging.Error("demo.exit", zap.Error(err))
		_ = logging.Sync()
		os.Exit(1)
	}
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger := logging.Init(cfg.Logging)
	defer func() {
		_ = logger.Sync()
		_ = logging.CloseAllWriters()
	}()

	a := newApp(cfg, logger, newStore(
		Item{ID: "1", Name: "Anvil", Price: 120},
		Item{ID: "2", Name: "Bellows", Price: 45.5},
		Item{ID: "3", Name: "Chisel", Price: 12},
	))

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           a.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("demo.listen", zap.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	logger.Info("demo.shutdown")
	return srv.Shutdown(shutdownCtx)
}
