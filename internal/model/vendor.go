package model

import "time"

// Vendor request status constants. Requests move PENDING -> APPROVED or
// PENDING -> REJECTED; NOT_APPLIED is the synthetic state for users who
// never submitted one.
const (
	VendorRequestNotApplied = "NOT_APPLIED"
	VendorRequestPending    = "PENDING"
	VendorRequestApproved   = "APPROVED"
	VendorRequestRejected   = "REJECTED"
)

// VendorProfile is the public shop identity of an approved vendor.
type VendorProfile struct {
	ID          string `json:"id"`
	ShopName    string `json:"shopName"`
	Description string `json:"description"`
	Logo        string `json:"logo"`
}

// VendorRequest is a pending or resolved application to open a shop.
type VendorRequest struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	ShopName    string    `json:"shopName"`
	Description string    `json:"description"`
	Phone       string    `json:"phone"`
	Status      string    `json:"status"`
	User        *User     `json:"user,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Product request status constants. Requests move
// SUBMITTED -> PROCESSING -> APPROVED or REJECTED; the final two are
// terminal.
const (
	ProductRequestSubmitted  = "SUBMITTED"
	ProductRequestProcessing = "PROCESSING"
	ProductRequestApproved   = "APPROVED"
	ProductRequestRejected   = "REJECTED"
)

// ProductRequest is a customer's ask for a product a shop does not
// list yet.
type ProductRequest struct {
	ID          string    `json:"id"`
	VendorID    string    `json:"vendorId"`
	Title       string    `json:"title"`
	Details     string    `json:"details,omitempty"`
	Budget      float64   `json:"budget,omitempty"`
	ProductLink string    `json:"productLink,omitempty"`
	Status      string    `json:"status"`
	User        *User     `json:"user,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}
