package app

import (
	"context"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"what-lunch/internal/restaurant"
)

// ImportResult reports what an import added to the pool.
type ImportResult struct {
	Added   []restaurant.Restaurant
	Skipped []string // names already in the pool
}

// ImportRestaurants reads an HTML restaurant table from a URL or a local file,
// merges it into the weekday pool and writes the pool to outPath.
func (a *App) ImportRestaurants(ctx context.Context, source, outPath string) (*ImportResult, error) {
	incoming, err := readRestaurants(ctx, source)
	if err != nil {
		return nil, err
	}
	a.logger.Info("parsed restaurant table", zap.String("source", source), zap.Int("rows", len(incoming)))

	before := len(a.pool.Weekday)
	merged, skipped := restaurant.Merge(a.pool.Weekday, incoming)
	if err := restaurant.ValidatePool(merged); err != nil {
		return nil, fmt.Errorf("failed to merge restaurants: %w", err)
	}

	updated := &restaurant.Pool{Weekday: merged, Weekend: a.pool.Weekend}
	if err := restaurant.SavePool(outPath, updated); err != nil {
		return nil, err
	}
	a.pool = updated

	for _, name := range skipped {
		a.logger.Debug("skipped duplicate restaurant", zap.String("name", name))
	}
	a.logger.Info("import complete",
		zap.Int("added", len(merged)-before),
		zap.Int("skipped", len(skipped)),
		zap.String("out", outPath),
	)
	return &ImportResult{Added: merged[before:], Skipped: skipped}, nil
}

func readRestaurants(ctx context.Context, source string) ([]restaurant.Restaurant, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return restaurant.FetchHTML(ctx, source)
	}
	f, err := os.Open(source)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", source, err)
	}
	defer f.Close()
	return restaurant.ParseHTMLTable(f)
}
