package services

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/daastan/internal/client/models"
)

const (
	pathOrders      = "/orders"
	pathCheckout    = "/orders/checkout"
	pathAdminOrders = "/admin/orders"
)

// PlaceOrder creates an order from the current cart.
func (s *Storefront) PlaceOrder(ctx context.Context, d models.ShippingDetails) (*models.OrderResult, error) {
	return s.createOrder(ctx, pathOrders, d)
}

// Checkout is the checkout endpoint variant of PlaceOrder.
func (s *Storefront) Checkout(ctx context.Context, d models.ShippingDetails) (*models.OrderResult, error) {
	return s.createOrder(ctx, pathCheckout, d)
}

func (s *Storefront) createOrder(ctx context.Context, path string, d models.ShippingDetails) (*models.OrderResult, error) {
	r, err := call[models.OrderResult](ctx, s, http.MethodPost, path, d, true)
	if err != nil {
		return nil, err
	}
	s.dropCart(ctx)
	return &r, nil
}

func (s *Storefront) ListOrders(ctx context.Context) ([]models.Order, error) {
	return call[[]models.Order](ctx, s, http.MethodGet, pathOrders, nil, true)
}

func (s *Storefront) GetOrder(ctx context.Context, id string) (*models.OrderDetails, error) {
	p, err := resource(pathOrders, id)
	if err != nil {
		return nil, err
	}
	d, err := call[models.OrderDetails](ctx, s, http.MethodGet, p, nil, true)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// ListAllOrders is admin only; the server answers 403 otherwise.
func (s *Storefront) ListAllOrders(ctx context.Context) ([]models.Order, error) {
	return call[[]models.Order](ctx, s, http.MethodGet, pathAdminOrders, nil, true)
}

func (s *Storefront) UpdateOrderStatus(ctx context.Context, id, status string) (*models.Order, error) {
	p, err := resource(pathAdminOrders, id, "status")
	if err != nil {
		return nil, err
	}
	o, err := call[models.Order](ctx, s, http.MethodPut, p, models.OrderStatusUpdate{Status: status}, true)
	if err != nil {
		return nil, err
	}
	return &o, nil
}
