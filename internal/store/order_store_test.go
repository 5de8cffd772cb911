package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/rapheephat/hiewhub-tui/internal/model"
	"github.com/rapheephat/hiewhub-tui/tests/testutil"
)

func sampleOrders() []model.Order {
	base := time.Date(2025, 7, 10, 9, 0, 0, 0, time.UTC)
	return []model.Order{
		{
			ID:     "o1",
			Status: "DELIVERED",
			Total:  370,
			Items: []model.OrderItem{
				{ID: "i1", VendorProductID: "vp1", Title: "Pad Thai Kit", Quantity: 1, UnitPrice: 250},
				{ID: "i2", VendorProductID: "vp2", Title: "Mango Sticky Rice", Quantity: 1, UnitPrice: 120},
			},
			CreatedAt: base,
		},
		{
			ID:     "o2",
			Status: "PENDING",
			Total:  350,
			Items: []model.OrderItem{
				{ID: "i3", VendorProductID: "vp3", Title: "Ceramic Mug", Quantity: 1, UnitPrice: 350},
			},
			CreatedAt: base.Add(24 * time.Hour),
		},
	}
}

func TestUpsertAndGetOrders(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	if err := s.UpsertOrders(ctx, sampleOrders()); err != nil {
		t.Fatalf("UpsertOrders: %v", err)
	}

	got, err := s.GetOrders(ctx)
	if err != nil {
		t.Fatalf("GetOrders: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d orders, want 2", len(got))
	}
	// Newest first.
	if got[0].ID != "o2" {
		t.Errorf("first order = %s, want o2", got[0].ID)
	}
	if len(got[1].Items) != 2 || got[1].Items[0].Title != "Pad Thai Kit" {
		t.Errorf("line items round-trip = %+v", got[1].Items)
	}
}

func TestUpsertOrdersUpdatesStatus(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	orders := sampleOrders()
	testutil.SeedOrders(t, s, orders)

	orders[1].Status = "SHIPPED"
	if err := s.UpsertOrders(ctx, orders[1:]); err != nil {
		t.Fatalf("UpsertOrders (update): %v", err)
	}

	o, err := s.GetOrderByID(ctx, "o2")
	if err != nil {
		t.Fatalf("GetOrderByID: %v", err)
	}
	if o == nil || o.Status != "SHIPPED" {
		t.Errorf("updated order = %+v", o)
	}
}

func TestGetOrderByIDMissing(t *testing.T) {
	s := testutil.NewTestStore(t)

	o, err := s.GetOrderByID(context.Background(), "absent")
	if err != nil {
		t.Fatalf("GetOrderByID: %v", err)
	}
	if o != nil {
		t.Errorf("missing order = %+v, want nil", o)
	}
}

func TestEmptyUpsertsAreNoOps(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	if err := s.UpsertOrders(ctx, nil); err != nil {
		t.Errorf("UpsertOrders(nil): %v", err)
	}
	if err := s.UpsertProducts(ctx, nil); err != nil {
		t.Errorf("UpsertProducts(nil): %v", err)
	}
}
