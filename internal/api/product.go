package api

import (
	"context"
	"net/url"

	"github.com/rapheephat/hiewhub-tui/internal/model"
)

// ProductService wraps the catalog endpoints.
type ProductService struct {
	client *Client
}

func NewProductService(c *Client) *ProductService {
	return &ProductService{client: c}
}

type productsResponse struct {
	Data []model.Product `json:"data"`
}

type productResponse struct {
	Data model.Product `json:"data"`
}

// ListProducts returns catalog listings, optionally filtered by a
// search query and category.
func (s *ProductService) ListProducts(ctx context.Context, query, category string) ([]model.Product, error) {
	path := "/api/products"
	params := url.Values{}
	if query != "" {
		params.Set("q", query)
	}
	if category != "" {
		params.Set("category", category)
	}
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var resp productsResponse
	if err := s.client.Get(ctx, path, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// LatestProducts returns the newest listings for the landing view.
func (s *ProductService) LatestProducts(ctx context.Context) ([]model.Product, error) {
	var resp productsResponse
	if err := s.client.Get(ctx, "/api/products/latest", &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// GetProduct returns one listing by ID.
func (s *ProductService) GetProduct(ctx context.Context, productID string) (*model.Product, error) {
	var resp productResponse
	if err := s.client.Get(ctx, "/api/products/"+productID, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// RelatedProducts returns listings related to the given product.
func (s *ProductService) RelatedProducts(ctx context.Context, productID string) ([]model.Product, error) {
	var resp productsResponse
	if err := s.client.Get(ctx, "/api/products/related/"+productID, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

type shopResponse struct {
	Data model.Shop `json:"data"`
}

// GetShop returns a vendor's public storefront.
func (s *ProductService) GetShop(ctx context.Context, vendorID string) (*model.Shop, error) {
	var resp shopResponse
	if err := s.client.Get(ctx, "/api/shop/"+vendorID, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}
