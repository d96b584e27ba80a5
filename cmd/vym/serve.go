package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/sz10101/vym"
	"github.com/sz10101/vym/internal/cli"
	httpAdapter "github.com/sz10101/vym/pkg/adapters/http"
)

var serveCmd = &cobra.Command{
	Use:   "serve [map...]",
	Short: "Serve the scripting objects over HTTP",
	Long: `Starts an HTTP server exposing every vym and map operation as a JSON
endpoint, with call events streamed over SSE. With metrics enabled in the
configuration, Prometheus metrics are served on /metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := sessionOptions(cmd, args)
		reg := prometheus.NewRegistry()
		opts.Registerer = reg

		env, err := cli.NewSession(opts)
		if err != nil {
			return err
		}
		defer env.Session.Close()

		addr, _ := cmd.Flags().GetString("addr")
		if addr == "" {
			addr = env.Config.HTTP.Addr
		}

		server := httpAdapter.NewServer(env.Session.App(),
			httpAdapter.WithLogger(env.Logger),
			httpAdapter.WithVersion(vym.Version))
		var extra []func(chi.Router)
		if env.Config.Metrics.Enabled {
			reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
			extra = append(extra, func(r chi.Router) {
				r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
			})
		}

		srv := &http.Server{
			Addr:              addr,
			Handler:           server.Routes(extra...),
			ReadHeaderTimeout: 10 * time.Second,
		}

		serverErrors := make(chan error, 1)
		go func() {
			env.Logger.Info("starting HTTP server", "addr", addr)
			fmt.Fprintf(os.Stderr, "vym serving on %s\n", addr)
			serverErrors <- srv.ListenAndServe()
		}()

		sigCtx := cli.NewSignalContext(context.Background())
		defer sigCtx.Cancel()

		select {
		case err := <-serverErrors:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return fmt.Errorf("server error: %w", err)
		case <-sigCtx.Done():
			fmt.Fprintf(os.Stderr, "\nshutting down (%v)\n", sigCtx.Signal())

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(ctx); err != nil {
				env.Logger.Warn("graceful shutdown incomplete", "err", err)
				return srv.Close()
			}
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("addr", "a", "", "Address to listen on (default from configuration)")
}
