package api

import (
	"context"

	"github.com/rapheephat/hiewhub-tui/internal/model"
)

// FavoriteService wraps the favorites endpoints.
type FavoriteService struct {
	client *Client
}

func NewFavoriteService(c *Client) *FavoriteService {
	return &FavoriteService{client: c}
}

type favoritesResponse struct {
	Data []model.Favorite `json:"data"`
}

type favoriteCheckResponse struct {
	IsFavorite bool `json:"isFavorite"`
}

// ListFavorites returns the user's bookmarked products.
func (s *FavoriteService) ListFavorites(ctx context.Context) ([]model.Favorite, error) {
	var resp favoritesResponse
	if err := s.client.Get(ctx, "/api/favorites", &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// Add bookmarks a product.
func (s *FavoriteService) Add(ctx context.Context, productID string) error {
	return s.client.Post(ctx, "/api/favorites/"+productID, nil, nil)
}

// Remove deletes a bookmark.
func (s *FavoriteService) Remove(ctx context.Context, productID string) error {
	return s.client.Delete(ctx, "/api/favorites/"+productID, nil)
}

// Check reports whether a product is bookmarked.
func (s *FavoriteService) Check(ctx context.Context, productID string) (bool, error) {
	var resp favoriteCheckResponse
	if err := s.client.Get(ctx, "/api/favorites/"+productID+"/check", &resp); err != nil {
		return false, err
	}
	return resp.IsFavorite, nil
}
