// Command ingestd runs the catalog ingestion service and its maintenance
// tasks.
//
//	ingestd serve              # ingestion endpoint on APP_PORT
//	ingestd echo               # diagnostic echo service on ECHO_PORT
//	ingestd migrate            # run pending migrations
//	ingestd migrate:rollback
//	ingestd migrate:status
//	ingestd seed               # gender rows with the ids ingestion assumes
//	ingestd route:list
//	ingestd token --subject zalando-scraper
//	ingestd archive:list --date 2024-03-01
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Registered through init().
	_ "github.com/shashiranjanraj/catalog-ingest/database/migrations"
	_ "github.com/shashiranjanraj/catalog-ingest/database/seeders"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "ingestd",
	Short:         "Catalog ingestion service",
	Long:          "ingestd reconciles batches of scraped products into the product catalog.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Server
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(echoCmd)
	rootCmd.AddCommand(routeListCmd)

	// Database
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(migrateRollbackCmd)
	rootCmd.AddCommand(migrateStatusCmd)
	rootCmd.AddCommand(seedCmd)

	// Operations
	rootCmd.AddCommand(tokenCmd)
	rootCmd.AddCommand(archiveListCmd)
}
