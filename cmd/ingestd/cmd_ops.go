package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/catalog-ingest/app/services"
	"github.com/shashiranjanraj/catalog-ingest/config"
	"github.com/shashiranjanraj/catalog-ingest/pkg/auth"
	"github.com/shashiranjanraj/catalog-ingest/pkg/workerpool"
)

var (
	tokenSubject  string
	tokenRetailer int
	tokenTTL      time.Duration
	archiveDate   string
)

// ingestd token: issue a bearer token for a scraper.
var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue a bearer token for a scraper (needs INGEST_JWT_SECRET)",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Load(); err != nil {
			return err
		}
		tok, err := auth.GenerateToken(config.IngestJWTSecret(), tokenSubject, tokenRetailer, tokenTTL)
		if err != nil {
			return err
		}
		fmt.Println(tok)
		return nil
	},
}

// ingestd archive:list: list archived batch bodies for a day.
var archiveListCmd = &cobra.Command{
	Use:   "archive:list",
	Short: "List archived batch bodies for a day (UTC)",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Load(); err != nil {
			return err
		}
		day := time.Now().UTC()
		if archiveDate != "" {
			d, err := time.Parse("2006-01-02", archiveDate)
			if err != nil {
				return fmt.Errorf("--date: %w", err)
			}
			day = d
		}

		ctx := context.Background()
		disk, err := openDisk(ctx)
		if err != nil {
			return err
		}
		pool := workerpool.New(1, 1)
		defer pool.Shutdown(ctx) //nolint:errcheck

		paths, err := services.NewArchiver(disk, pool).List(ctx, day)
		if err != nil {
			return err
		}
		if len(paths) == 0 {
			fmt.Println("No batches archived on", day.Format("2006-01-02"))
			return nil
		}
		for _, p := range paths {
			fmt.Println(p)
		}
		return nil
	},
}

func init() {
	tokenCmd.Flags().StringVarP(&tokenSubject, "subject", "s", "scraper", "Scraper name stored in the token subject")
	tokenCmd.Flags().IntVarP(&tokenRetailer, "retailer", "r", 0, "Retailer id the scraper posts for")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 30*24*time.Hour, "Token lifetime")

	archiveListCmd.Flags().StringVarP(&archiveDate, "date", "d", "", "Day to list, YYYY-MM-DD (default today)")
}
