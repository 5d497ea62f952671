package cmd

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/StinkyLord/ibuildhw/internal/output"
	"github.com/StinkyLord/ibuildhw/internal/watch"
)

var flagMetricsAddr string

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-resolve open slots whenever the build sheet changes",
	Long: `Refresh every open slot, then again each time the build sheet is saved.
Prometheus metrics are served on --metrics-addr at /metrics while watching.

Examples:
  ibuildhw watch
  ibuildhw watch --build rig.yaml --metrics-addr 127.0.0.1:9100`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	addOutputFlags(watchCmd)
	watchCmd.Flags().StringVar(&flagMetricsAddr, "metrics-addr", "", "Listen address for /metrics (default from config; 'off' disables)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	format, err := output.ParseFormat(flagFormat)
	if err != nil {
		return err
	}
	addr := cfg.Metrics.Addr
	if flagMetricsAddr != "" {
		addr = flagMetricsAddr
	}

	a := newApp()
	defer a.Close()

	refresh := func(ctx context.Context) {
		_, state, err := a.loadBuild(ctx, flagBuild)
		if err != nil {
			logger.Error("Failed to reload build sheet", zap.Error(err))
			return
		}
		slots := a.newSession(state).Refresh(ctx)
		if err := output.WriteSlots(slots, flagOutput, format); err != nil {
			logger.Error("Failed to write results", zap.Error(err))
		}
		for _, c := range a.resolver.Audit(state) {
			cmd.PrintErrf("conflict: %s\n", c.Message)
		}
	}

	g, ctx := errgroup.WithContext(cmd.Context())

	if addr != "" && addr != "off" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", a.metrics.Handler())
		srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

		g.Go(func() error {
			logger.Info("Serving metrics", zap.String("addr", addr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		g.Go(func() error {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
	}

	g.Go(func() error {
		refresh(ctx)
		return watch.New(flagBuild, watch.DefaultDebounce, refresh, logger).Run(ctx)
	})

	return g.Wait()
}
