package api

import (
	"context"

	"github.com/rapheephat/hiewhub-tui/internal/model"
)

// VendorService wraps the vendor application endpoints.
type VendorService struct {
	client *Client
}

func NewVendorService(c *Client) *VendorService {
	return &VendorService{client: c}
}

// VendorRegistration is the application payload for opening a shop.
type VendorRegistration struct {
	ShopName    string `json:"shopName"`
	Description string `json:"description"`
	Phone       string `json:"phone"`
}

// Register submits a vendor application for admin review.
func (s *VendorService) Register(ctx context.Context, reg VendorRegistration) error {
	return s.client.Post(ctx, "/api/vendor/register", reg, nil)
}

type requestStatusResponse struct {
	Data struct {
		Status string `json:"status"`
	} `json:"data"`
}

// RequestStatus returns the state of the user's vendor application.
// A user with no application gets VendorRequestNotApplied.
func (s *VendorService) RequestStatus(ctx context.Context) (string, error) {
	var resp requestStatusResponse
	if err := s.client.Get(ctx, "/api/vendor/request-status", &resp); err != nil {
		return "", err
	}
	if resp.Data.Status == "" {
		return model.VendorRequestNotApplied, nil
	}
	return resp.Data.Status, nil
}

// ProductRequestInput is a customer's ask for a product a shop does
// not list yet.
type ProductRequestInput struct {
	VendorID    string  `json:"vendorId"`
	Title       string  `json:"title"`
	Details     string  `json:"details,omitempty"`
	Budget      float64 `json:"budget,omitempty"`
	ProductLink string  `json:"productLink,omitempty"`
}

// CreateProductRequest submits a product request to a shop.
func (s *VendorService) CreateProductRequest(ctx context.Context, in ProductRequestInput) error {
	return s.client.Post(ctx, "/api/vendor/product-request", in, nil)
}

type productRequestsResponse struct {
	Data []model.ProductRequest `json:"data"`
}

// ProductRequests lists the requests customers sent to a shop.
func (s *VendorService) ProductRequests(ctx context.Context, vendorID string) ([]model.ProductRequest, error) {
	var resp productRequestsResponse
	if err := s.client.Get(ctx, "/api/vendor/product-requests/"+vendorID, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// UpdateProductRequest moves a customer request to a new status.
func (s *VendorService) UpdateProductRequest(ctx context.Context, requestID, status string) error {
	body := map[string]string{"status": status}
	return s.client.Patch(ctx, "/api/vendor/product-request/"+requestID+"/status", body, nil)
}
