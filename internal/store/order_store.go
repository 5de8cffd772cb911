package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rapheephat/hiewhub-tui/internal/model"
)

// orderRow is the flat database shape of a cached order.
type orderRow struct {
	ID        string    `db:"id"`
	Status    string    `db:"status"`
	Total     float64   `db:"total"`
	Items     string    `db:"items"`
	CreatedAt time.Time `db:"created_at"`
	FetchedAt time.Time `db:"fetched_at"`
}

// UpsertOrders inserts or replaces a batch of orders.
func (s *SQLiteStore) UpsertOrders(ctx context.Context, orders []model.Order) error {
	if len(orders) == 0 {
		return nil
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	const query = `
		INSERT OR REPLACE INTO orders (
			id, status, total, items, created_at, fetched_at
		) VALUES (?, ?, ?, ?, ?, ?)`

	stmt, err := tx.PreparexContext(ctx, query)
	if err != nil {
		return fmt.Errorf("preparing upsert statement: %w", err)
	}
	defer stmt.Close()

	now := time.Now()
	for _, o := range orders {
		items, err := json.Marshal(o.Items)
		if err != nil {
			return fmt.Errorf("marshaling items for order %s: %w", o.ID, err)
		}

		fetchedAt := o.FetchedAt
		if fetchedAt.IsZero() {
			fetchedAt = now
		}

		_, err = stmt.ExecContext(ctx,
			o.ID, o.Status, o.Total, string(items),
			o.CreatedAt.UTC(), fetchedAt.UTC(),
		)
		if err != nil {
			return fmt.Errorf("upserting order %s: %w", o.ID, err)
		}
	}

	return tx.Commit()
}

// GetOrders retrieves cached orders, newest first.
func (s *SQLiteStore) GetOrders(ctx context.Context) ([]model.Order, error) {
	var rows []orderRow
	err := s.db.SelectContext(ctx, &rows, "SELECT * FROM orders ORDER BY created_at DESC")
	if err != nil {
		return nil, fmt.Errorf("querying orders: %w", err)
	}

	orders := make([]model.Order, 0, len(rows))
	for _, r := range rows {
		orders = append(orders, r.toModel())
	}
	return orders, nil
}

// GetOrderByID returns a cached order, or nil when absent.
func (s *SQLiteStore) GetOrderByID(ctx context.Context, id string) (*model.Order, error) {
	var row orderRow
	err := s.db.GetContext(ctx, &row, "SELECT * FROM orders WHERE id = ?", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("querying order %s: %w", id, err)
	}
	o := row.toModel()
	return &o, nil
}

func (r orderRow) toModel() model.Order {
	var items []model.OrderItem
	_ = json.Unmarshal([]byte(r.Items), &items)

	return model.Order{
		ID:        r.ID,
		Status:    r.Status,
		Total:     r.Total,
		Items:     items,
		CreatedAt: r.CreatedAt,
		FetchedAt: r.FetchedAt,
	}
}
