package model

import "testing"

func TestEffectivePrice(t *testing.T) {
	tests := []struct {
		name     string
		price    float64
		discount float64
		want     float64
	}{
		{"no discount", 100, 0, 100},
		{"discount applies", 100, 80, 80},
		{"discount above list price ignored", 100, 120, 100},
		{"discount equal to list price ignored", 100, 100, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Product{Price: tt.price, DiscountPrice: tt.discount}
			if got := p.EffectivePrice(); got != tt.want {
				t.Errorf("EffectivePrice() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDisplayName(t *testing.T) {
	u := User{Firstname: "Somchai", Lastname: "Jaidee"}
	if got := u.DisplayName(); got != "Somchai Jaidee" {
		t.Errorf("DisplayName() = %q", got)
	}

	u.VendorProfile = &VendorProfile{ShopName: "Somchai's Kitchen"}
	if got := u.DisplayName(); got != "Somchai's Kitchen" {
		t.Errorf("DisplayName() with shop = %q", got)
	}

	u.VendorProfile.ShopName = ""
	if got := u.DisplayName(); got != "Somchai Jaidee" {
		t.Errorf("DisplayName() with empty shop name = %q", got)
	}
}

func TestCartTotal(t *testing.T) {
	items := []CartItem{
		{Quantity: 2, VendorProduct: VendorProduct{Price: 120}},
		{Quantity: 1, VendorProduct: VendorProduct{Price: 350}},
	}
	if got := CartTotal(items); got != 590 {
		t.Errorf("CartTotal = %v, want 590", got)
	}
	if got := CartTotal(nil); got != 0 {
		t.Errorf("CartTotal(nil) = %v, want 0", got)
	}
}

func TestNotificationTitle(t *testing.T) {
	tests := []struct {
		typ  string
		want string
	}{
		{NotificationOrderStatusUpdate, "Order status updated"},
		{NotificationNewMessage, "New message"},
		{"SOMETHING_NEW", "Notification"},
	}
	for _, tt := range tests {
		n := Notification{Type: tt.typ}
		if got := n.Title(); got != tt.want {
			t.Errorf("Title(%s) = %q, want %q", tt.typ, got, tt.want)
		}
	}
}
