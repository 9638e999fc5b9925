package pricefeed

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
)

// fileLoader implements Loader for local feed files.
type fileLoader struct {
	logger zerolog.Logger
}

// NewFileLoader creates a new file-based feed loader.
func NewFileLoader(logger zerolog.Logger) Loader {
	return &fileLoader{
		logger: logger.With().Str("component", "pricefeed-loader").Logger(),
	}
}

func (l *fileLoader) Load(ctx context.Context, path string) (*Feed, error) {
	l.logger.Info().Str("file", path).Msg("loading price feed")

	file, err := os.Open(path)
	if err != nil {
		l.logger.Error().Err(err).Str("file", path).Msg("failed to open price feed")
		return nil, fmt.Errorf("failed to open price feed %s: %w", path, err)
	}
	defer file.Close()

	feed, err := parseFeed(ctx, file, path)
	if err != nil {
		l.logger.Error().Err(err).Str("file", path).Msg("failed to parse price feed")
		return nil, err
	}

	l.logger.Info().
		Str("file", path).
		Int("entries", len(feed.Entries)).
		Msg("price feed loaded")

	return feed, nil
}
