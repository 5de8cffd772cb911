package model

import "time"

// Product is a catalog listing. Price fields are in the store currency;
// DiscountPrice is zero when the product is not on sale.
type Product struct {
	ID            string    `json:"id"`
	VendorID      string    `json:"vendorId"`
	Title         string    `json:"title"`
	Detail        string    `json:"detail"`
	Category      string    `json:"category"`
	Hashtag       string    `json:"hashtag"`
	Price         float64   `json:"price"`
	DiscountPrice float64   `json:"discountPrice"`
	Images        []string  `json:"images"`
	OrderCount    int       `json:"orderCount"`
	Vendor        *User     `json:"vendor,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`

	// FetchedAt is client-side only: when this record was last pulled
	// from the API into the local catalog cache.
	FetchedAt time.Time `json:"-"`
}

// EffectivePrice returns the discount price when set, the list price otherwise.
func (p Product) EffectivePrice() float64 {
	if p.DiscountPrice > 0 && p.DiscountPrice < p.Price {
		return p.DiscountPrice
	}
	return p.Price
}

// Shop is a public vendor storefront: the vendor profile plus their listings.
type Shop struct {
	Vendor   User      `json:"vendor"`
	Products []Product `json:"products"`
}

// Favorite marks a product the user has bookmarked.
type Favorite struct {
	ID        string    `json:"id"`
	ProductID string    `json:"productId"`
	Product   *Product  `json:"product,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
