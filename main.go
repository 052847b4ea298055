package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"time"

	"expired-leads/config"
	"expired-leads/models"
	"expired-leads/services"
	"expired-leads/storage"
	"expired-leads/utils"
)

func main() {
	cfg := config.Load()
	logger := utils.NewLoggerWithLevel(cfg.LogLevel)

	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: expired-leads <export.csv> [more.csv ...]")
		os.Exit(2)
	}
	paths := os.Args[1:]

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Info("=== Expired listing import starting ===")
	logger.Info("Config: files: %d | store: %s | owner: %s | auto-import: %v",
		len(paths), cfg.StoreBackend, cfg.OwnerID, cfg.AutoImport)

	gazetteer := services.DefaultGazetteer()
	if cfg.GazetteerPath != "" {
		g, err := services.LoadGazetteer(cfg.GazetteerPath)
		if err != nil {
			logger.Error("Failed to load gazetteer: %v", err)
			os.Exit(1)
		}
		gazetteer = g
	}
	normalizer := services.NewNormalizer(services.NewLocationResolver(gazetteer), logger)

	start := time.Now()
	candidates := parseFiles(normalizer, paths, cfg.MaxConcurrency, logger)
	logger.Since("parse", start)

	if len(candidates) == 0 {
		logger.Error("No importable rows found. Exiting.")
		os.Exit(1)
	}

	preview := services.NewPreviewService(logger)
	preview.Print(preview.Generate(candidates))

	csvWriter, err := storage.NewCSVWriter(cfg.PreviewCSVPath)
	if err != nil {
		logger.Error("Failed to create preview CSV: %v", err)
	} else if err := savePreview(csvWriter, candidates); err != nil {
		logger.Error("Preview CSV write failed: %v", err)
	} else {
		logger.Info("Preview saved to %s", cfg.PreviewCSVPath)
	}

	if !cfg.AutoImport {
		logger.Info("AUTO_IMPORT is off; review %s and re-run with AUTO_IMPORT=true", cfg.PreviewCSVPath)
		return
	}

	store, err := openStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to open listing store: %v", err)
		os.Exit(1)
	}
	defer store.Close()

	importer := services.NewImporter(store, services.NewScoringEngine(), logger)
	res := importer.ImportSelected(ctx, candidates, cfg.OwnerID)

	fmt.Printf("  Imported: %d | Failed: %d | Needs review: %d\n\n",
		res.SuccessCount, res.FailedCount, res.Skipped)
	for _, f := range res.Failures {
		logger.Warn("[import] %s (%s): %s", f.MLSNumber, f.Address, f.Reason)
	}

	printTopLeads(ctx, store, services.NewListingService(store, services.NewScoringEngine(), logger), cfg.OwnerID, logger)
}

func printTopLeads(ctx context.Context, store storage.ListingStore, svc *services.ListingService, ownerID string, logger *utils.Logger) {
	top, err := store.List(ctx, models.ListingFilter{UserID: ownerID, Stage: models.StageNew, Limit: 5})
	if err != nil {
		logger.Error("Failed to list leads: %v", err)
		return
	}
	if len(top) == 0 {
		return
	}
	fmt.Println("  Top new leads:")
	for _, l := range top {
		b, err := svc.Breakdown(ctx, l.ID)
		if err != nil {
			logger.Warn("[main] No breakdown for %s: %v", l.ID, err)
			continue
		}
		fmt.Printf("  %3d  %-10s %s\n", b.Total, l.MLSNumber, l.Address)
		for _, f := range b.Factors {
			fmt.Printf("         %-15s %3d x %2d%% = %6.2f\n", f.Name, f.RawScore, f.WeightPct, f.Contribution)
		}
	}
	fmt.Println()
}

// parseFiles parses every export on the worker pool. Parsing is pure, so
// files can run in parallel; results keep the order of paths.
func parseFiles(n *services.Normalizer, paths []string, workers int, logger *utils.Logger) []*models.ParsedListing {
	pool := utils.NewWorkerPool(workers)
	results := make([][]*models.ParsedListing, len(paths))
	var mu sync.Mutex

	for i, path := range paths {
		i, path := i, path
		pool.Submit(func() {
			raw, err := os.ReadFile(path)
			if err != nil {
				logger.Error("[main] Cannot read %s: %v", path, err)
				return
			}
			parsed, err := n.ParseCSV(string(raw))
			if err != nil {
				logger.Error("[main] Cannot parse %s: %v", path, err)
				return
			}
			mu.Lock()
			results[i] = parsed
			mu.Unlock()
		})
	}
	pool.Wait()

	var all []*models.ParsedListing
	for _, r := range results {
		all = append(all, r...)
	}
	return all
}

func savePreview(w storage.PreviewWriter, candidates []*models.ParsedListing) error {
	defer w.Close()
	return w.WritePreview(candidates)
}

func openStore(ctx context.Context, cfg *config.Config, logger *utils.Logger) (storage.ListingStore, error) {
	switch cfg.StoreBackend {
	case "postgres":
		retry := &utils.RetryConfig{
			MaxAttempts: cfg.MaxRetries,
			BaseDelay:   time.Second,
			Logger:      logger,
		}
		return storage.NewPostgresStore(ctx, cfg.DSN(), retry, logger)
	case "memory", "":
		logger.Warn("[store] Using in-memory store; imported listings are not persisted")
		return storage.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown STORE_BACKEND %q", cfg.StoreBackend)
	}
}
