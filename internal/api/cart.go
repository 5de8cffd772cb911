package api

import (
	"context"

	"github.com/rapheephat/hiewhub-tui/internal/model"
)

// CartService wraps the cart endpoints.
type CartService struct {
	client *Client
}

func NewCartService(c *Client) *CartService {
	return &CartService{client: c}
}

type cartResponse struct {
	Data []model.CartItem `json:"data"`
}

// GetCart returns all items in the user's cart.
func (s *CartService) GetCart(ctx context.Context) ([]model.CartItem, error) {
	var resp cartResponse
	if err := s.client.Get(ctx, "/api/cart", &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// AddItem puts quantity units of a vendor product into the cart.
func (s *CartService) AddItem(ctx context.Context, vendorProductID string, quantity int) error {
	body := map[string]interface{}{
		"vendorProductId": vendorProductID,
		"quantity":        quantity,
	}
	return s.client.Post(ctx, "/api/cart", body, nil)
}

// RemoveItem deletes a line from the cart by vendor product ID.
func (s *CartService) RemoveItem(ctx context.Context, vendorProductID string) error {
	return s.client.Delete(ctx, "/api/cart/"+vendorProductID, nil)
}
