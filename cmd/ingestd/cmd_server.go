package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/catalog-ingest/app/routes"
	"github.com/shashiranjanraj/catalog-ingest/app/services"
	"github.com/shashiranjanraj/catalog-ingest/config"
	"github.com/shashiranjanraj/catalog-ingest/internal/kernel"
	"github.com/shashiranjanraj/catalog-ingest/internal/server"
	"github.com/shashiranjanraj/catalog-ingest/pkg/database"
	"github.com/shashiranjanraj/catalog-ingest/pkg/logger"
	"github.com/shashiranjanraj/catalog-ingest/pkg/middleware"
	"github.com/shashiranjanraj/catalog-ingest/pkg/router"
	"github.com/shashiranjanraj/catalog-ingest/pkg/workerpool"
)

// ingestd serve: start the ingestion endpoint.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the ingestion endpoint",
	RunE: func(cmd *cobra.Command, args []string) error {
		flush, err := bootLogger()
		if err != nil {
			return err
		}
		defer flush()

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		db, err := openDB()
		if err != nil {
			return err
		}
		defer database.Close(db) //nolint:errcheck

		var archiver *services.Archiver
		if config.ArchiveEnabled() {
			disk, err := openDisk(ctx)
			if err != nil {
				return err
			}
			pool := workerpool.New(config.ArchiveWorkers(), 0)
			defer func() {
				sctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()
				if err := pool.Shutdown(sctx); err != nil {
					logger.Warn("archive pool did not drain", "error", err)
				}
			}()
			archiver = services.NewArchiver(disk, pool)
		}

		limiter := middleware.NewLimiter(config.RateLimitRPS(), config.RateLimitBurst())
		go limiter.Run(ctx.Done())

		r := kernel.New(limiter, func(r *router.Router) {
			routes.RegisterAPI(r, routes.Deps{
				DB:           db,
				Archiver:     archiver,
				MaxBodyBytes: config.MaxBodyBytes(),
				JWTSecret:    config.IngestJWTSecret(),
			})
		})

		logger.Info("ingestd starting",
			"env", config.AppEnv(),
			"db_driver", config.DatabaseDriver(),
			"archive", archiver != nil,
			"auth", config.IngestJWTSecret() != "",
		)
		return server.Run(ctx, server.Options{
			Addr:         ":" + config.AppPort(),
			Handler:      r.Handler(),
			ReadTimeout:  config.HTTPReadTimeout(),
			WriteTimeout: config.HTTPWriteTimeout(),
		})
	},
}

// ingestd echo: start the diagnostic echo service.
var echoCmd = &cobra.Command{
	Use:   "echo",
	Short: "Start the echo service (no persistence)",
	RunE: func(cmd *cobra.Command, args []string) error {
		flush, err := bootLogger()
		if err != nil {
			return err
		}
		defer flush()

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		r := kernel.New(nil, func(r *router.Router) {
			routes.RegisterEcho(r, config.MaxBodyBytes())
		})
		return server.Run(ctx, server.Options{
			Addr:         ":" + config.EchoPort(),
			Handler:      r.Handler(),
			ReadTimeout:  config.HTTPReadTimeout(),
			WriteTimeout: config.HTTPWriteTimeout(),
		})
	},
}

// ingestd route:list: print all registered routes.
var routeListCmd = &cobra.Command{
	Use:   "route:list",
	Short: "List the routes of the ingest and echo services",
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "SERVICE\tMETHOD\tPATH\tNAME")
		fmt.Fprintln(w, "-------\t------\t----\t----")

		ingest := kernel.New(nil, func(r *router.Router) { routes.RegisterAPI(r, routes.Deps{}) })
		for _, ri := range ingest.Routes() {
			fmt.Fprintf(w, "serve\t%s\t%s\t%s\n", ri.Method, ri.Path, ri.Name)
		}
		echo := kernel.New(nil, func(r *router.Router) { routes.RegisterEcho(r, 0) })
		for _, ri := range echo.Routes() {
			fmt.Fprintf(w, "echo\t%s\t%s\t%s\n", ri.Method, ri.Path, ri.Name)
		}
		return w.Flush()
	},
}
