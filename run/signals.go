package run

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/ridge/gate/tlog"
	"go.uber.org/zap"
)

var terminationSignals = []os.Signal{syscall.SIGTERM, syscall.SIGINT, syscall.SIGHUP}

// handleSignals returns once a termination signal arrives, which shuts down
// the tool gracefully. A second signal during the shutdown exits right away.
func handleSignals(ctx context.Context) error {
	signals := make(chan os.Signal, 2)
	signal.Notify(signals, terminationSignals...)

	select {
	case sig := <-signals:
		tlog.Get(ctx).Info("Received signal, terminating", zap.Stringer("signal", sig))
	case <-ctx.Done():
		signal.Stop(signals)
		return ctx.Err()
	}

	go func() {
		defer signal.Stop(signals)
		sig := <-signals
		tlog.Get(ctx).Error("Received second signal, exiting", zap.Stringer("signal", sig))
		os.Exit(1)
	}()
	return nil
}
