package service

import (
	"context"
	"fmt"

	"storefront/internal/model"
	"storefront/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// wishlistService implements WishlistService.
type wishlistService struct {
	db        repository.Querier
	txr       repository.Transactor
	wishlists repository.WishlistRepository
	catalog   repository.CatalogRepository
	logger    zerolog.Logger
}

// NewWishlistService creates a new wishlist service.
func NewWishlistService(
	db repository.Querier,
	txr repository.Transactor,
	wishlists repository.WishlistRepository,
	catalog repository.CatalogRepository,
	logger zerolog.Logger,
) WishlistService {
	return &wishlistService{
		db:        db,
		txr:       txr,
		wishlists: wishlists,
		catalog:   catalog,
		logger:    logger.With().Str("service", "wishlist").Logger(),
	}
}

func (s *wishlistService) Create(ctx context.Context) (*model.WishlistResponse, error) {
	w := &model.Wishlist{ID: uuid.New()}
	if err := s.wishlists.CreateWishlist(ctx, s.db, w); err != nil {
		return nil, fmt.Errorf("failed to create wishlist: %w", err)
	}

	s.logger.Debug().Str("wishlist_id", w.ID.String()).Msg("wishlist created")
	return &model.WishlistResponse{ID: w.ID, Lines: []model.WishlistLine{}}, nil
}

// Get returns the wishlist with each product's current price view.
func (s *wishlistService) Get(ctx context.Context, id uuid.UUID) (*model.WishlistResponse, error) {
	w, err := s.wishlists.GetWishlist(ctx, s.db, id)
	if err != nil {
		s.logger.Error().Err(err).Str("wishlist_id", id.String()).Msg("failed to get wishlist")
		return nil, fmt.Errorf("failed to get wishlist: %w", err)
	}
	if w == nil {
		return nil, model.ErrWishlistNotFound
	}

	lines, err := s.wishlists.ListLines(ctx, s.db, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get wishlist lines: %w", err)
	}
	if lines == nil {
		lines = []model.WishlistLine{}
	}
	return &model.WishlistResponse{ID: w.ID, Lines: lines}, nil
}

func (s *wishlistService) AddItem(ctx context.Context, wishlistID uuid.UUID, req *model.AddWishlistItemRequest) (*model.WishlistResponse, error) {
	err := runInTx(ctx, s.txr, s.logger, func(tx pgx.Tx) error {
		w, err := s.wishlists.GetWishlist(ctx, tx, wishlistID)
		if err != nil {
			return err
		}
		if w == nil {
			return model.ErrWishlistNotFound
		}

		product, err := s.catalog.GetProduct(ctx, tx, req.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return model.ErrProductNotFound
		}

		added, err := s.wishlists.AddItem(ctx, tx, &model.WishlistItem{WishlistID: wishlistID, ProductID: req.ProductID})
		if err != nil {
			return err
		}
		if !added {
			return model.ErrWishlistItemExists
		}
		return nil
	})
	if err != nil {
		s.logger.Debug().Err(err).
			Str("wishlist_id", wishlistID.String()).
			Int64("product_id", req.ProductID).
			Msg("add to wishlist rejected")
		return nil, err
	}

	return s.Get(ctx, wishlistID)
}

func (s *wishlistService) RemoveItem(ctx context.Context, wishlistID uuid.UUID, productID int64) error {
	removed, err := s.wishlists.RemoveItem(ctx, s.db, wishlistID, productID)
	if err != nil {
		return fmt.Errorf("failed to remove wishlist item: %w", err)
	}
	if !removed {
		return model.ErrWishlistItemMissing
	}
	return nil
}

func (s *wishlistService) Delete(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.wishlists.DeleteWishlist(ctx, s.db, id)
	if err != nil {
		return fmt.Errorf("failed to delete wishlist: %w", err)
	}
	if !deleted {
		return model.ErrWishlistNotFound
	}
	return nil
}
