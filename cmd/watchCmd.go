package cmd

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Keep the Redis set in sync by polling the router",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfgInterval <= 0 {
			return errors.New("--interval must be positive")
		}
		sigCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		pl, cleanup, err := newPipeline(cmd, newSyncMetrics(reg))
		if err != nil {
			return err
		}
		defer cleanup()

		g, ctx := errgroup.WithContext(sigCtx)
		if cfgMetricsListen != "" {
			ln, err := net.Listen("tcp", cfgMetricsListen)
			if err != nil {
				return err
			}
			g.Go(func() error { return serveMetrics(ctx, ln, reg) })
		}
		g.Go(func() error {
			return watchLoop(ctx, cfgInterval, func(ctx context.Context) error {
				_, err := pl.syncOnce(ctx)
				return err
			})
		})
		err = g.Wait()
		if sigCtx.Err() != nil {
			// asked to stop
			return nil
		}
		return err
	},
}

// watchLoop polls immediately and then every interval until ctx is done. A
// failed poll is logged and does not stop the loop.
func watchLoop(ctx context.Context, interval time.Duration, poll func(context.Context) error) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		if err := poll(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			fields := []zap.Field{zap.Error(err)}
			if isMalformed(err) {
				fields = append(fields, zap.Bool("malformed", true))
			}
			logger.Error("poll failed", fields...)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// serveMetrics exposes reg on ln until ctx is done.
func serveMetrics(ctx context.Context, ln net.Listener, reg *prometheus.Registry) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()
	logger.Info("serving metrics", zap.String("addr", ln.Addr().String()))

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		<-errCh
		return ctx.Err()
	}
}
