package model

// Role constants as returned by the profile endpoint.
const (
	RoleCustomer = "CUSTOMER"
	RoleVendor   = "VENDOR"
	RoleAdmin    = "ADMIN"
)

// User is the account record returned by the profile and admin endpoints.
type User struct {
	// ID is the server-assigned account identifier.
	ID string `json:"id"`

	// Email is the sign-in address.
	Email string `json:"email"`

	// Firstname and Lastname together form the display name.
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`

	// Role is one of the Role* constants.
	Role string `json:"role"`

	// Image is the avatar URL, empty when the user has none.
	Image string `json:"image"`

	// VendorProfile is present only for accounts with an approved shop.
	VendorProfile *VendorProfile `json:"vendorProfile,omitempty"`
}

// DisplayName returns the shop name for vendor accounts and the
// personal name otherwise.
func (u User) DisplayName() string {
	if u.VendorProfile != nil && u.VendorProfile.ShopName != "" {
		return u.VendorProfile.ShopName
	}
	return u.Firstname + " " + u.Lastname
}

// Address is a saved shipping address attached to a profile.
type Address struct {
	ID          string `json:"id"`
	Line1       string `json:"line1"`
	Subdistrict string `json:"subdistrict"`
	District    string `json:"district"`
	Province    string `json:"province"`
	PostalCode  string `json:"postalCode"`
	IsDefault   bool   `json:"isDefault"`
}

// Profile is the authenticated user together with their addresses.
type Profile struct {
	User      User      `json:"user"`
	Addresses []Address `json:"addresses"`
}
