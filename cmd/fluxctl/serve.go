package main

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/fluxgraph/flux/internal/metrics"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Evaluate the sample graph on a ticking clock, exposing Prometheus metrics over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := prometheus.NewRegistry()
			collector := metrics.NewPrometheus(reg)

			cfg := buildEngineConfig(appCfg, collector)
			g, root := buildSampleGraph(cfg)

			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
			srv := &http.Server{Addr: appCfg.MetricsAddr, Handler: mux}

			go func() {
				_ = srv.ListenAndServe()
			}()
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = srv.Shutdown(ctx)
			}()

			ticker := time.NewTicker(time.Second / 30)
			defer ticker.Stop()

			frame := uint64(0)
			start := time.Now()
			for range ticker.C {
				t := time.Since(start).Seconds()
				if _, err := g.Evaluate(root, 0, evalctxAt(t, frame)); err != nil {
					return err
				}
				frame++
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&appCfg.MetricsAddr, "metrics-addr", ":9090", "address to serve /metrics on")

	return cmd
}
