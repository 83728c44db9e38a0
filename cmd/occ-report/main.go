package main

import (
	"context"
	"flag"
	"log/slog"
	"time"

	"github.com/joho/godotenv"

	"github.com/prontabot/occ-dashboard/internal/config"
	"github.com/prontabot/occ-dashboard/internal/export"
	"github.com/prontabot/occ-dashboard/internal/fetch"
	"github.com/prontabot/occ-dashboard/internal/logging"
	"github.com/prontabot/occ-dashboard/internal/stats"
)

// occ-report fetches one interval worth of occurrences and writes the
// statistics workbook, without starting the server.
func main() {
	_ = godotenv.Load()

	interval := flag.String("interval", "1d", "interval token passed to the upstream API")
	output := flag.String("o", "occurrences.xlsx", "output file path")
	locationID := flag.String("location", "", "optional location id filter")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatalf("Fatal while loading config: %v", err)
	}
	logging.Setup(cfg.Logging.Level)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	client := fetch.NewClient(cfg.Upstream.BaseURL, cfg.Upstream.FetchTimeout, cfg.Upstream.RetryMax)
	occs, err := client.Occurrences(ctx, *interval)
	if err != nil {
		logging.Fatalf("Failed to fetch occurrences: %v", err)
	}
	occs = stats.FilterByLocation(occs, *locationID)

	f, err := export.Workbook(occs, cfg.StatsLocation())
	if err != nil {
		logging.Fatalf("Failed to build workbook: %v", err)
	}
	defer f.Close()

	if err := f.SaveAs(*output); err != nil {
		logging.Fatalf("Failed to write %s: %v", *output, err)
	}

	slog.Info("report written", "path", *output, "occurrences", len(occs), "interval", *interval)
}
