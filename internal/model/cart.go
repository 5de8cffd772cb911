package model

// VendorProduct is a sellable listing as referenced from the cart:
// the product plus its vendor-specific identity.
type VendorProduct struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Title  string   `json:"title"`
	Price  float64  `json:"price"`
	Images []string `json:"images"`
}

// CartItem is one line in the user's cart.
type CartItem struct {
	ID              string        `json:"id"`
	VendorProductID string        `json:"vendorProductId"`
	Quantity        int           `json:"quantity"`
	VendorProduct   VendorProduct `json:"vendorProduct"`
}

// Subtotal returns the line total for this item.
func (c CartItem) Subtotal() float64 {
	return c.VendorProduct.Price * float64(c.Quantity)
}

// CartTotal sums the line totals of all items.
func CartTotal(items []CartItem) float64 {
	var total float64
	for _, it := range items {
		total += it.Subtotal()
	}
	return total
}
