package services

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/dmitrijs2005/daastan/internal/client/models"
)

const (
	pathCart      = "/cart"
	pathCartItems = "/cart/items"
)

// GetCart returns the cart and caches the raw document in the cart slot.
func (s *Storefront) GetCart(ctx context.Context) (*models.Cart, error) {
	resp, err := s.api.Send(ctx, http.MethodGet, pathCart, nil, true)
	if err != nil {
		return nil, err
	}
	var c models.Cart
	if err := resp.Decode(&c); err != nil {
		return nil, err
	}
	if err := s.store.SaveCart(ctx, resp.Body); err != nil {
		s.log.Warn(ctx, "failed to cache cart", "error", err)
	}
	return &c, nil
}

// CachedCart returns the cart saved by the last GetCart, or nil.
func (s *Storefront) CachedCart(ctx context.Context) *models.Cart {
	raw := s.store.Cart(ctx)
	if raw == nil {
		return nil
	}
	c, err := decodeCart(raw)
	if err != nil {
		s.log.Warn(ctx, "cached cart is unreadable", "error", err)
		return nil
	}
	return c
}

func (s *Storefront) AddToCart(ctx context.Context, bookID string, quantity int) (*models.Message, error) {
	if bookID == "" {
		return nil, ErrMissingID
	}
	return s.mutateCart(ctx, http.MethodPost, pathCart, models.CartAdd{BookID: bookID, Quantity: quantity})
}

func (s *Storefront) UpdateCartItem(ctx context.Context, itemID string, quantity int) (*models.Message, error) {
	p, err := resource(pathCartItems, itemID)
	if err != nil {
		return nil, err
	}
	return s.mutateCart(ctx, http.MethodPut, p, models.CartUpdate{Quantity: quantity})
}

func (s *Storefront) RemoveCartItem(ctx context.Context, itemID string) (*models.Message, error) {
	p, err := resource(pathCartItems, itemID)
	if err != nil {
		return nil, err
	}
	return s.mutateCart(ctx, http.MethodDelete, p, nil)
}

func (s *Storefront) ClearCart(ctx context.Context) (*models.Message, error) {
	return s.mutateCart(ctx, http.MethodDelete, pathCart, nil)
}

// mutateCart sends a cart change and drops the cached cart on success.
func (s *Storefront) mutateCart(ctx context.Context, method, path string, body any) (*models.Message, error) {
	m, err := call[models.Message](ctx, s, method, path, body, true)
	if err != nil {
		return nil, err
	}
	s.dropCart(ctx)
	return &m, nil
}

func (s *Storefront) dropCart(ctx context.Context) {
	if err := s.store.SaveCart(ctx, nil); err != nil {
		s.log.Warn(ctx, "failed to drop cached cart", "error", err)
	}
}

func decodeCart(raw []byte) (*models.Cart, error) {
	var c models.Cart
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, err
	}
	return &c, nil
}
