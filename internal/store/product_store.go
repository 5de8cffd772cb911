package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rapheephat/hiewhub-tui/internal/model"
)

// ProductFilter narrows and orders catalog cache queries.
type ProductFilter struct {
	Query    *string
	Category *string
	VendorID *string
	SortBy   string
	SortDesc bool
	Limit    int
}

// productRow is the flat database shape of a cached product.
type productRow struct {
	ID            string    `db:"id"`
	VendorID      string    `db:"vendor_id"`
	Title         string    `db:"title"`
	Detail        string    `db:"detail"`
	Category      string    `db:"category"`
	Hashtag       string    `db:"hashtag"`
	Price         float64   `db:"price"`
	DiscountPrice float64   `db:"discount_price"`
	Images        string    `db:"images"`
	OrderCount    int       `db:"order_count"`
	CreatedAt     time.Time `db:"created_at"`
	FetchedAt     time.Time `db:"fetched_at"`
}

// UpsertProducts inserts or replaces a batch of catalog listings.
func (s *SQLiteStore) UpsertProducts(ctx context.Context, products []model.Product) error {
	if len(products) == 0 {
		return nil
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	const query = `
		INSERT OR REPLACE INTO products (
			id, vendor_id, title, detail, category, hashtag,
			price, discount_price, images, order_count,
			created_at, fetched_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	stmt, err := tx.PreparexContext(ctx, query)
	if err != nil {
		return fmt.Errorf("preparing upsert statement: %w", err)
	}
	defer stmt.Close()

	now := time.Now()
	for _, p := range products {
		images, err := json.Marshal(p.Images)
		if err != nil {
			return fmt.Errorf("marshaling images for product %s: %w", p.ID, err)
		}

		fetchedAt := p.FetchedAt
		if fetchedAt.IsZero() {
			fetchedAt = now
		}

		_, err = stmt.ExecContext(ctx,
			p.ID, p.VendorID, p.Title, p.Detail, p.Category, p.Hashtag,
			p.Price, p.DiscountPrice, string(images), p.OrderCount,
			p.CreatedAt.UTC(), fetchedAt.UTC(),
		)
		if err != nil {
			return fmt.Errorf("upserting product %s: %w", p.ID, err)
		}
	}

	return tx.Commit()
}

// GetProducts retrieves cached listings matching the filter.
func (s *SQLiteStore) GetProducts(ctx context.Context, opts ProductFilter) ([]model.Product, error) {
	var conditions []string
	var args []interface{}

	if opts.Category != nil {
		conditions = append(conditions, "category = ?")
		args = append(args, *opts.Category)
	}
	if opts.VendorID != nil {
		conditions = append(conditions, "vendor_id = ?")
		args = append(args, *opts.VendorID)
	}
	if opts.Query != nil && *opts.Query != "" {
		conditions = append(conditions, "(title LIKE ? OR detail LIKE ? OR hashtag LIKE ?)")
		q := "%" + *opts.Query + "%"
		args = append(args, q, q, q)
	}

	query := "SELECT * FROM products"
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	sortBy := opts.SortBy
	switch sortBy {
	case "title", "price", "order_count", "created_at", "fetched_at":
	default:
		sortBy = "created_at"
	}
	query += " ORDER BY " + sortBy
	if opts.SortDesc {
		query += " DESC"
	}
	if opts.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", opts.Limit)
	}

	var rows []productRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("querying products: %w", err)
	}

	products := make([]model.Product, 0, len(rows))
	for _, r := range rows {
		products = append(products, r.toModel())
	}
	return products, nil
}

// GetProductByID returns a cached listing, or nil when absent.
func (s *SQLiteStore) GetProductByID(ctx context.Context, id string) (*model.Product, error) {
	var row productRow
	err := s.db.GetContext(ctx, &row, "SELECT * FROM products WHERE id = ?", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("querying product %s: %w", id, err)
	}
	p := row.toModel()
	return &p, nil
}

func (r productRow) toModel() model.Product {
	var images []string
	_ = json.Unmarshal([]byte(r.Images), &images)

	return model.Product{
		ID:            r.ID,
		VendorID:      r.VendorID,
		Title:         r.Title,
		Detail:        r.Detail,
		Category:      r.Category,
		Hashtag:       r.Hashtag,
		Price:         r.Price,
		DiscountPrice: r.DiscountPrice,
		Images:        images,
		OrderCount:    r.OrderCount,
		CreatedAt:     r.CreatedAt,
		FetchedAt:     r.FetchedAt,
	}
}
