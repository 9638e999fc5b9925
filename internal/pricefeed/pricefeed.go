// Package pricefeed imports bulk reprice and restock files. Each row is
// applied as an ordinary variant update so the product, carts and unpaid
// orders follow it.
package pricefeed

import (
	"context"

	"storefront/internal/model"
)

// Entry is one row of a feed. A nil Price or Quantity leaves the variant's
// value unchanged.
type Entry struct {
	Line      int
	VariantID int64
	Price     *int64
	Quantity  *int
}

// Feed is the parsed content of one feed file.
type Feed struct {
	Source  string
	Entries []Entry
}

// Loader reads a gzipped feed file.
type Loader interface {
	Load(ctx context.Context, path string) (*Feed, error)
}

// VariantUpdater applies a partial variant change with full propagation.
type VariantUpdater interface {
	Update(ctx context.Context, id int64, req *model.UpdateVariantRequest) (*model.Variant, error)
}
