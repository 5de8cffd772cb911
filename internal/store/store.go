package store

import (
	"context"
	"os"
	"path/filepath"

	"github.com/rapheephat/hiewhub-tui/internal/model"
)

// Store is the catalog cache contract consumed by the UI layer.
type Store interface {
	UpsertProducts(ctx context.Context, products []model.Product) error
	GetProducts(ctx context.Context, opts ProductFilter) ([]model.Product, error)
	GetProductByID(ctx context.Context, id string) (*model.Product, error)

	UpsertOrders(ctx context.Context, orders []model.Order) error
	GetOrders(ctx context.Context) ([]model.Order, error)
	GetOrderByID(ctx context.Context, id string) (*model.Order, error)

	Close() error
}

// DefaultDBPath returns the default cache database location,
// ~/.config/hiewhub/cache.db.
func DefaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "cache.db")
	}
	return filepath.Join(home, ".config", "hiewhub", "cache.db")
}
