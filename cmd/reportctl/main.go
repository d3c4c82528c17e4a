package main

import (
	"context"
	"database/sql"
	"os"
	"sync"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"

	"upahan/internal/adapters/observability"
	redisad "upahan/internal/adapters/redis"
	"upahan/internal/app"
	"upahan/internal/shared"
	mysqlstore "upahan/internal/storage/mysql"
)

func main() {
	cfg := shared.Load()
	log.Logger = observability.NewLogger(cfg.AppEnv)

	var format string

	root := &cobra.Command{
		Use:   "reportctl",
		Short: "Barangay rental analytics reports",
	}

	report := &cobra.Command{
		Use:   "report <barangay>",
		Short: "Compute one barangay report and print it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reports, cleanup, err := buildServices(cfg)
			if err != nil {
				return err
			}
			defer cleanup()
			snap := reports.Refresh(cmd.Context(), args[0])
			return app.ExportSnapshot(os.Stdout, format, snap)
		},
	}
	report.Flags().StringVarP(&format, "format", "f", app.FormatText, "output format: text|csv|json")

	warm := &cobra.Command{
		Use:   "warm",
		Short: "Precompute and cache reports for every barangay",
		RunE: func(cmd *cobra.Command, args []string) error {
			reports, cleanup, err := buildServices(cfg)
			if err != nil {
				return err
			}
			defer cleanup()
			return warmAll(cmd.Context(), cfg, reports)
		},
	}

	root.AddCommand(report, warm)
	if err := root.Execute(); err != nil {
		log.Fatal().Err(err).Msg("reportctl failed")
	}
}

func buildServices(cfg shared.Config) (*app.ReportService, func(), error) {
	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		return nil, nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, nil, err
	}
	store := mysqlstore.New(db)
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	analytics := app.NewAnalytics(store)
	reports := app.NewReportService(analytics, cache, cfg.CacheTTL)
	return reports, func() { db.Close() }, nil
}

// warmAll recomputes every barangay report, bounded by WARM_WORKERS and
// rate-limited so a full warm pass does not starve the shared database.
func warmAll(ctx context.Context, cfg shared.Config, reports *app.ReportService) error {
	barangays, err := reports.Barangays(ctx)
	if err != nil {
		return err
	}
	log.Info().Int("barangays", len(barangays)).Int("workers", cfg.WarmWorkers).Msg("warming report cache")

	sem := semaphore.NewWeighted(int64(cfg.WarmWorkers))
	rl := rate.NewLimiter(rate.Limit(cfg.WarmRPS), cfg.WarmRPS)
	var wg sync.WaitGroup

	for _, b := range barangays {
		if err := rl.Wait(ctx); err != nil {
			return err
		}
		if err := sem.Acquire(ctx, 1); err != nil {
			return err
		}

		wg.Add(1)
		go func(barangay string) {
			defer wg.Done()
			defer sem.Release(1)

			snap := reports.Refresh(ctx, barangay)
			log.Info().Str("barangay", barangay).Int("bookings", snap.Bookings.Total).Msg("report cached")
		}(b)
	}

	wg.Wait()
	log.Info().Msg("warm pass completed")
	return nil
}
