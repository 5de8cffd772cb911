package api

import (
	"context"

	"github.com/rapheephat/hiewhub-tui/internal/model"
)

// OrderService wraps the customer and vendor order endpoints.
type OrderService struct {
	client *Client
}

func NewOrderService(c *Client) *OrderService {
	return &OrderService{client: c}
}

type ordersResponse struct {
	Data []model.Order `json:"data"`
}

type orderResponse struct {
	Data model.Order `json:"data"`
}

// PlaceOrder checks out the current cart contents against an address.
func (s *OrderService) PlaceOrder(ctx context.Context, addressID string) (*model.Order, error) {
	body := map[string]string{"addressId": addressID}
	var resp orderResponse
	if err := s.client.Post(ctx, "/api/orders", body, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// MyOrders returns the user's order history, newest first.
func (s *OrderService) MyOrders(ctx context.Context) ([]model.Order, error) {
	var resp ordersResponse
	if err := s.client.Get(ctx, "/api/orders/my-orders", &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// GetOrder returns one order by ID.
func (s *OrderService) GetOrder(ctx context.Context, orderID string) (*model.Order, error) {
	var resp orderResponse
	if err := s.client.Get(ctx, "/api/orders/"+orderID, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// VendorOrders returns incoming orders for the authenticated vendor.
func (s *OrderService) VendorOrders(ctx context.Context) ([]model.Order, error) {
	var resp ordersResponse
	if err := s.client.Get(ctx, "/api/vendor/orders", &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// UpdateOrderStatus moves a vendor order to a new status.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, orderID, status string) error {
	body := map[string]string{"status": status}
	return s.client.Patch(ctx, "/api/vendor/orders/"+orderID+"/status", body, nil)
}
