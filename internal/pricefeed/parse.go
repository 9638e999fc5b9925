package pricefeed

import (
	"compress/gzip"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const checkEvery = 10_000

// parseFeed reads gzipped CSV rows of variant_id,price,quantity. A leading
// header row is skipped and blank lines are ignored.
func parseFeed(ctx context.Context, r io.Reader, source string) (*Feed, error) {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip reader for %s: %w", source, err)
	}
	defer gz.Close()

	cr := csv.NewReader(gz)
	cr.FieldsPerRecord = 3
	cr.TrimLeadingSpace = true

	feed := &Feed{Source: source}
	for {
		if len(feed.Entries)%checkEvery == 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			default:
			}
		}

		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading feed %s: %w", source, err)
		}

		line, _ := cr.FieldPos(0)
		if line == 1 && strings.EqualFold(strings.TrimSpace(record[0]), "variant_id") {
			continue
		}

		entry, err := parseRecord(record)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", source, line, err)
		}
		entry.Line = line
		feed.Entries = append(feed.Entries, entry)
	}

	return feed, nil
}

func parseRecord(record []string) (Entry, error) {
	var e Entry

	id, err := strconv.ParseInt(strings.TrimSpace(record[0]), 10, 64)
	if err != nil || id <= 0 {
		return e, fmt.Errorf("invalid variant id %q", record[0])
	}
	e.VariantID = id

	if s := strings.TrimSpace(record[1]); s != "" {
		price, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return e, fmt.Errorf("invalid price %q", s)
		}
		e.Price = &price
	}

	if s := strings.TrimSpace(record[2]); s != "" {
		qty, err := strconv.Atoi(s)
		if err != nil {
			return e, fmt.Errorf("invalid quantity %q", s)
		}
		e.Quantity = &qty
	}

	if e.Price == nil && e.Quantity == nil {
		return e, fmt.Errorf("variant %d: nothing to update", id)
	}
	return e, nil
}
