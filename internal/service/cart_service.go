package service

import (
	"context"
	"fmt"

	"storefront/internal/model"
	"storefront/internal/pricing"
	"storefront/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// cartService implements CartService.
type cartService struct {
	db      repository.Querier
	txr     repository.Transactor
	carts   repository.CartRepository
	catalog repository.CatalogRepository
	logger  zerolog.Logger
}

// NewCartService creates a new cart service.
func NewCartService(
	db repository.Querier,
	txr repository.Transactor,
	carts repository.CartRepository,
	catalog repository.CatalogRepository,
	logger zerolog.Logger,
) CartService {
	return &cartService{
		db:      db,
		txr:     txr,
		carts:   carts,
		catalog: catalog,
		logger:  logger.With().Str("service", "cart").Logger(),
	}
}

func (s *cartService) Create(ctx context.Context) (*model.CartResponse, error) {
	cart := &model.Cart{ID: uuid.New()}
	if err := s.carts.CreateCart(ctx, s.db, cart); err != nil {
		return nil, fmt.Errorf("failed to create cart: %w", err)
	}

	s.logger.Debug().Str("cart_id", cart.ID.String()).Msg("cart created")
	return &model.CartResponse{ID: cart.ID, Lines: []model.CartLine{}}, nil
}

// Get returns the cart with each line priced at the variant's live unit price.
func (s *cartService) Get(ctx context.Context, id uuid.UUID) (*model.CartResponse, error) {
	cart, err := s.carts.GetCart(ctx, s.db, id)
	if err != nil {
		s.logger.Error().Err(err).Str("cart_id", id.String()).Msg("failed to get cart")
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}
	if cart == nil {
		return nil, model.ErrCartNotFound
	}

	lines, err := s.carts.ListLines(ctx, s.db, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get cart lines: %w", err)
	}
	if lines == nil {
		lines = []model.CartLine{}
	}

	return &model.CartResponse{
		ID:    cart.ID,
		Lines: lines,
		Total: pricing.CartTotal(lines),
	}, nil
}

// AddItem adds quantity of a variant to the cart. A repeated add merges into
// the existing line and the merged quantity must fit the stock.
func (s *cartService) AddItem(ctx context.Context, cartID uuid.UUID, req *model.AddCartItemRequest) (*model.CartResponse, error) {
	if req.Quantity <= 0 {
		return nil, model.ErrInvalidQuantity
	}

	err := runInTx(ctx, s.txr, s.logger, func(tx pgx.Tx) error {
		cart, err := s.carts.GetCartForUpdate(ctx, tx, cartID)
		if err != nil {
			return err
		}
		if cart == nil {
			return model.ErrCartNotFound
		}

		v, err := s.catalog.GetVariantForUpdate(ctx, tx, req.VariantID)
		if err != nil {
			return err
		}
		if v == nil {
			return model.ErrVariantNotFound
		}

		existing, err := s.carts.GetItemByVariant(ctx, tx, cartID, req.VariantID)
		if err != nil {
			return err
		}
		total := req.Quantity
		if existing != nil {
			total += existing.Quantity
		}
		if err := pricing.CheckStock(total, v.Quantity); err != nil {
			return err
		}

		return s.carts.SaveItem(ctx, tx, &model.CartItem{
			CartID:    cartID,
			VariantID: req.VariantID,
			Quantity:  total,
		})
	})
	if err != nil {
		s.logger.Debug().Err(err).
			Str("cart_id", cartID.String()).
			Int64("variant_id", req.VariantID).
			Msg("add to cart rejected")
		return nil, err
	}

	return s.Get(ctx, cartID)
}

// UpdateItemQuantity sets a line's quantity after checking it against stock.
func (s *cartService) UpdateItemQuantity(ctx context.Context, cartID uuid.UUID, itemID int64, quantity int) (*model.CartResponse, error) {
	if quantity <= 0 {
		return nil, model.ErrInvalidQuantity
	}

	err := runInTx(ctx, s.txr, s.logger, func(tx pgx.Tx) error {
		item, err := s.carts.GetItem(ctx, tx, cartID, itemID)
		if err != nil {
			return err
		}
		if item == nil {
			return model.ErrCartItemNotFound
		}

		v, err := s.catalog.GetVariantForUpdate(ctx, tx, item.VariantID)
		if err != nil {
			return err
		}
		if v == nil {
			return model.ErrVariantNotFound
		}
		if err := pricing.CheckStock(quantity, v.Quantity); err != nil {
			return err
		}

		item.Quantity = quantity
		return s.carts.SaveItem(ctx, tx, item)
	})
	if err != nil {
		return nil, err
	}

	return s.Get(ctx, cartID)
}

func (s *cartService) RemoveItem(ctx context.Context, cartID uuid.UUID, itemID int64) error {
	deleted, err := s.carts.DeleteItem(ctx, s.db, cartID, itemID)
	if err != nil {
		return fmt.Errorf("failed to remove cart item: %w", err)
	}
	if !deleted {
		return model.ErrCartItemNotFound
	}
	return nil
}

func (s *cartService) Delete(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.carts.DeleteCart(ctx, s.db, id)
	if err != nil {
		return fmt.Errorf("failed to delete cart: %w", err)
	}
	if !deleted {
		return model.ErrCartNotFound
	}
	return nil
}
