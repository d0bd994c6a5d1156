package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	httpAdapter "github.com/hepworks/nllfit/pkg/adapters/http"
	"github.com/hepworks/nllfit/pkg/adapters/memory"
	redisStore "github.com/hepworks/nllfit/pkg/adapters/redis"
	"github.com/hepworks/nllfit/pkg/adapters/simplex"
	"github.com/hepworks/nllfit/pkg/observability"
	"github.com/hepworks/nllfit/pkg/ports"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the likelihood HTTP server",
	Long: `Starts the fit engine in server mode, exposing generate, fit, scan and
result retrieval as a JSON API, with Prometheus metrics on /metrics.`,
	Run: func(cmd *cobra.Command, args []string) {
		port, _ := cmd.Flags().GetString("port")
		redisAddr, _ := cmd.Flags().GetString("redis")

		scn, err := loadScenario(cmd)
		if err != nil {
			fmt.Printf("Error loading scenario: %v\n", err)
			os.Exit(1)
		}
		logger := newLogger(cmd)

		model, err := scn.Model()
		if err != nil {
			fmt.Printf("Error building model: %v\n", err)
			os.Exit(1)
		}
		data, err := model.Generate(scn.Events)
		if err != nil {
			fmt.Printf("Error generating events: %v\n", err)
			os.Exit(1)
		}

		var store ports.ResultStore
		if redisAddr != "" {
			rs := redisStore.New(redisAddr, "", 0)
			defer rs.Close()
			store = rs
		} else {
			store = memory.New()
		}

		reg := prometheus.NewRegistry()
		metrics := observability.New(reg)

		api, err := httpAdapter.NewHandler(httpAdapter.Config{
			Model:     model,
			Data:      data,
			Minimizer: simplex.New(),
			Store:     store,
			Logger:    logger,
			Hooks:     metrics.Hooks(),
		})
		if err != nil {
			fmt.Printf("Error building handler: %v\n", err)
			os.Exit(1)
		}

		mux := http.NewServeMux()
		mux.Handle("/", api)
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

		srv := &http.Server{
			Addr:    ":" + port,
			Handler: mux,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			fmt.Printf("Starting nllfit server on %s\n", srv.Addr)
			fmt.Printf("Scenario: %d events over %s in [%g, %g]\n",
				data.Len(), scn.Observable.Name, scn.Observable.Lo, scn.Observable.Hi)
			serverErrors <- srv.ListenAndServe()
		}()

		// Channel to listen for interrupt or terminate signals.
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		// Blocking main and waiting for shutdown.
		select {
		case err := <-serverErrors:
			// Error when starting HTTP server.
			fmt.Printf("Server error: %v\n", err)
			os.Exit(1)

		case sig := <-shutdown:
			fmt.Printf("\nStart shutdown... Signal: %v\n", sig)

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			// Asking listener to shut down and shed load.
			if err := srv.Shutdown(ctx); err != nil {
				fmt.Printf("Graceful shutdown did not complete in %v: %v\n", 5*time.Second, err)
				if err := srv.Close(); err != nil {
					fmt.Printf("Error killing server: %v\n", err)
				}
			}
			fmt.Println("nllfit server stopped gracefully")
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	serveCmd.Flags().String("redis", "", "Redis address for result persistence (default: in-memory)")
}
