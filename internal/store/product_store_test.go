package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/rapheephat/hiewhub-tui/internal/model"
	"github.com/rapheephat/hiewhub-tui/internal/store"
	"github.com/rapheephat/hiewhub-tui/tests/testutil"
)

func sampleProducts() []model.Product {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return []model.Product{
		{
			ID:         "p1",
			VendorID:   "v1",
			Title:      "Pad Thai Kit",
			Detail:     "Everything for two servings",
			Category:   "FOOD",
			Hashtag:    "#padthai",
			Price:      250,
			OrderCount: 40,
			Images:     []string{"a.jpg", "b.jpg"},
			CreatedAt:  base,
		},
		{
			ID:            "p2",
			VendorID:      "v1",
			Title:         "Ceramic Mug",
			Detail:        "Handmade in Chiang Mai",
			Category:      "CRAFT",
			Hashtag:       "#ceramics",
			Price:         420,
			DiscountPrice: 350,
			OrderCount:    12,
			CreatedAt:     base.Add(time.Hour),
		},
		{
			ID:         "p3",
			VendorID:   "v2",
			Title:      "Mango Sticky Rice",
			Detail:     "Seasonal dessert box",
			Category:   "FOOD",
			Hashtag:    "#mango",
			Price:      120,
			OrderCount: 88,
			CreatedAt:  base.Add(2 * time.Hour),
		},
	}
}

func TestUpsertAndGetProducts(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	if err := s.UpsertProducts(ctx, sampleProducts()); err != nil {
		t.Fatalf("UpsertProducts: %v", err)
	}

	got, err := s.GetProducts(ctx, store.ProductFilter{})
	if err != nil {
		t.Fatalf("GetProducts: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d products, want 3", len(got))
	}
	// Default sort is created_at ascending.
	if got[0].ID != "p1" || got[2].ID != "p3" {
		t.Errorf("default order = %s..%s, want p1..p3", got[0].ID, got[2].ID)
	}
	if len(got[0].Images) != 2 || got[0].Images[0] != "a.jpg" {
		t.Errorf("Images round-trip = %v", got[0].Images)
	}
	if got[0].FetchedAt.IsZero() {
		t.Error("FetchedAt not stamped on upsert")
	}
}

func TestUpsertProductsReplaces(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	products := sampleProducts()
	testutil.SeedProducts(t, s, products)

	products[0].Price = 199
	products[0].OrderCount = 41
	if err := s.UpsertProducts(ctx, products[:1]); err != nil {
		t.Fatalf("UpsertProducts (replace): %v", err)
	}

	p, err := s.GetProductByID(ctx, "p1")
	if err != nil {
		t.Fatalf("GetProductByID: %v", err)
	}
	if p == nil || p.Price != 199 || p.OrderCount != 41 {
		t.Errorf("replaced product = %+v", p)
	}

	all, err := s.GetProducts(ctx, store.ProductFilter{})
	if err != nil {
		t.Fatalf("GetProducts: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("replace created duplicates: %d rows", len(all))
	}
}

func TestGetProductsFilters(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()
	testutil.SeedProducts(t, s, sampleProducts())

	category := "FOOD"
	food, err := s.GetProducts(ctx, store.ProductFilter{Category: &category})
	if err != nil {
		t.Fatalf("GetProducts: %v", err)
	}
	if len(food) != 2 {
		t.Errorf("category filter returned %d, want 2", len(food))
	}

	vendor := "v2"
	byVendor, err := s.GetProducts(ctx, store.ProductFilter{VendorID: &vendor})
	if err != nil {
		t.Fatalf("GetProducts: %v", err)
	}
	if len(byVendor) != 1 || byVendor[0].ID != "p3" {
		t.Errorf("vendor filter = %v", byVendor)
	}

	query := "chiang mai"
	matched, err := s.GetProducts(ctx, store.ProductFilter{Query: &query})
	if err != nil {
		t.Fatalf("GetProducts: %v", err)
	}
	if len(matched) != 1 || matched[0].ID != "p2" {
		t.Errorf("query filter = %v", matched)
	}
}

func TestGetProductsSorting(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()
	testutil.SeedProducts(t, s, sampleProducts())

	byPopularity, err := s.GetProducts(ctx, store.ProductFilter{SortBy: "order_count", SortDesc: true})
	if err != nil {
		t.Fatalf("GetProducts: %v", err)
	}
	if byPopularity[0].ID != "p3" {
		t.Errorf("top seller = %s, want p3", byPopularity[0].ID)
	}

	byPrice, err := s.GetProducts(ctx, store.ProductFilter{SortBy: "price"})
	if err != nil {
		t.Fatalf("GetProducts: %v", err)
	}
	if byPrice[0].ID != "p3" || byPrice[2].ID != "p2" {
		t.Errorf("price ascending = %s..%s", byPrice[0].ID, byPrice[2].ID)
	}

	// Unknown sort columns fall back to created_at instead of reaching SQL.
	fallback, err := s.GetProducts(ctx, store.ProductFilter{SortBy: "price; DROP TABLE products"})
	if err != nil {
		t.Fatalf("GetProducts with bogus sort: %v", err)
	}
	if fallback[0].ID != "p1" {
		t.Errorf("fallback sort first = %s, want p1", fallback[0].ID)
	}

	limited, err := s.GetProducts(ctx, store.ProductFilter{Limit: 2})
	if err != nil {
		t.Fatalf("GetProducts: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("limit returned %d rows", len(limited))
	}
}

func TestGetProductByIDMissing(t *testing.T) {
	s := testutil.NewTestStore(t)

	p, err := s.GetProductByID(context.Background(), "nope")
	if err != nil {
		t.Fatalf("GetProductByID: %v", err)
	}
	if p != nil {
		t.Errorf("missing product = %+v, want nil", p)
	}
}
