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
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/aretw0/pips"
	httpAdapter "github.com/aretw0/pips/internal/adapters/http"
	"github.com/aretw0/pips/internal/compiler"
	"github.com/aretw0/pips/internal/config"
	"github.com/aretw0/pips/internal/logging"
	"github.com/aretw0/pips/internal/presentation/graph"
	loamAdapter "github.com/aretw0/pips/pkg/adapters/loam"
	"github.com/aretw0/pips/pkg/ports"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  `Starts the stateless evaluation server, exposing a JSON API over HTTP with Prometheus metrics and Swagger documentation.`,
	Run: func(cmd *cobra.Command, args []string) {
		configPath, _ := cmd.Flags().GetString("config")

		cfg, err := config.Load(configPath)
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			os.Exit(1)
		}
		if cmd.Flags().Changed("addr") {
			cfg.Addr, _ = cmd.Flags().GetString("addr")
		}

		level, err := logging.ParseLevel(cfg.LogLevel)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		logger := logging.New(level)

		var library ports.Library
		if cfg.Library != "" {
			lib, err := loamAdapter.New(cfg.Library)
			if err != nil {
				fmt.Printf("Error opening library %s: %v\n", cfg.Library, err)
				os.Exit(1)
			}
			library = lib
			logger.Info("expression library loaded", "path", cfg.Library)
		}

		registry := prometheus.NewRegistry()
		registry.MustRegister(collectors.NewGoCollector())
		registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

		handler := httpAdapter.NewHandler(
			compiler.NewParser(),
			&graph.Renderer{},
			registry,
			httpAdapter.WithLogger(logger),
			httpAdapter.WithVersion(pips.Version),
			httpAdapter.WithLibrary(library),
		)

		srv := &http.Server{
			Addr:    cfg.Addr,
			Handler: handler,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			logger.Info("server listening", "addr", srv.Addr)
			serverErrors <- srv.ListenAndServe()
		}()

		// Channel to listen for interrupt or terminate signals.
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		// Blocking main and waiting for shutdown.
		select {
		case err := <-serverErrors:
			fmt.Printf("Server error: %v\n", err)
			os.Exit(1)

		case sig := <-shutdown:
			logger.Info("shutdown started", "signal", sig.String())

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				logger.Error("graceful shutdown did not complete", "err", err)
				if err := srv.Close(); err != nil {
					logger.Error("forced close failed", "err", err)
				}
			}
			logger.Info("server stopped")
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("config", "c", "pips.yaml", "Path to the configuration file")
	serveCmd.Flags().String("addr", "", "Listen address (overrides config)")
}
