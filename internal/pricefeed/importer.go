package pricefeed

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"storefront/internal/model"

	"github.com/rs/zerolog"
)

// RowError records an entry the importer could not apply.
type RowError struct {
	Source    string
	Line      int
	VariantID int64
	Err       error
}

func (e RowError) Error() string {
	return fmt.Sprintf("%s line %d (variant %d): %v", e.Source, e.Line, e.VariantID, e.Err)
}

// Result summarises an import run.
type Result struct {
	Applied int
	Failed  []RowError
}

// Importer loads feeds and applies them through the variant service.
type Importer struct {
	loader  Loader
	updater VariantUpdater
	logger  zerolog.Logger
}

// NewImporter creates a new feed importer.
func NewImporter(loader Loader, updater VariantUpdater, logger zerolog.Logger) *Importer {
	return &Importer{
		loader:  loader,
		updater: updater,
		logger:  logger.With().Str("component", "pricefeed-importer").Logger(),
	}
}

// LoadAll reads every file concurrently and returns the feeds in the order
// of paths. Any load failure fails the whole run.
func (im *Importer) LoadAll(ctx context.Context, paths []string) ([]*Feed, error) {
	type loadResult struct {
		index int
		feed  *Feed
		err   error
	}

	resultChan := make(chan loadResult, len(paths))
	var wg sync.WaitGroup

	for i, path := range paths {
		wg.Add(1)
		go func(index int, path string) {
			defer wg.Done()
			feed, err := im.loader.Load(ctx, path)
			resultChan <- loadResult{index: index, feed: feed, err: err}
		}(i, path)
	}

	wg.Wait()
	close(resultChan)

	feeds := make([]*Feed, len(paths))
	var errs []error
	for r := range resultChan {
		if r.err != nil {
			errs = append(errs, fmt.Errorf("failed to load price feed %s: %w", paths[r.index], r.err))
			continue
		}
		feeds[r.index] = r.feed
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return feeds, nil
}

// Apply runs each entry as its own variant update, in file and line order,
// so a later row for the same variant wins. Business rule failures are
// recorded and skipped; a cancelled context stops the run.
func (im *Importer) Apply(ctx context.Context, feeds []*Feed) (Result, error) {
	var res Result

	for _, feed := range feeds {
		for _, e := range feed.Entries {
			if err := ctx.Err(); err != nil {
				return res, err
			}

			_, err := im.updater.Update(ctx, e.VariantID, &model.UpdateVariantRequest{
				Price:    e.Price,
				Quantity: e.Quantity,
			})
			if err != nil {
				var de *model.DomainError
				if !errors.As(err, &de) {
					im.logger.Warn().Err(err).
						Str("source", feed.Source).
						Int("line", e.Line).
						Msg("feed entry failed")
				}
				res.Failed = append(res.Failed, RowError{Source: feed.Source, Line: e.Line, VariantID: e.VariantID, Err: err})
				continue
			}
			res.Applied++
		}
	}

	im.logger.Info().
		Int("feeds", len(feeds)).
		Int("applied", res.Applied).
		Int("failed", len(res.Failed)).
		Msg("price feed applied")

	return res, nil
}

// Run loads and applies paths.
func (im *Importer) Run(ctx context.Context, paths []string) (Result, error) {
	feeds, err := im.LoadAll(ctx, paths)
	if err != nil {
		return Result{}, err
	}
	return im.Apply(ctx, feeds)
}
