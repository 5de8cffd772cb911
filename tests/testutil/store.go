// Package testutil provides shared fixtures for store-backed tests.
package testutil

import (
	"context"
	"testing"

	"github.com/rapheephat/hiewhub-tui/internal/model"
	"github.com/rapheephat/hiewhub-tui/internal/store"
)

// NewTestStore returns an in-memory catalog cache with the schema
// applied, closed automatically when the test finishes.
func NewTestStore(t *testing.T) *store.SQLiteStore {
	t.Helper()

	s, err := store.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("creating test store: %v", err)
	}

	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("closing test store: %v", err)
		}
	})

	return s
}

// SeedProducts caches the given products, failing the test on error.
func SeedProducts(t *testing.T, s *store.SQLiteStore, products []model.Product) {
	t.Helper()
	if err := s.UpsertProducts(context.Background(), products); err != nil {
		t.Fatalf("seeding products: %v", err)
	}
}

// SeedOrders caches the given orders, failing the test on error.
func SeedOrders(t *testing.T, s *store.SQLiteStore, orders []model.Order) {
	t.Helper()
	if err := s.UpsertOrders(context.Background(), orders); err != nil {
		t.Fatalf("seeding orders: %v", err)
	}
}
