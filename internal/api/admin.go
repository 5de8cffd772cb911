package api

import (
	"context"

	"github.com/rapheephat/hiewhub-tui/internal/model"
)

// Admin review actions for vendor requests.
const (
	AdminActionApprove = "APPROVE"
	AdminActionReject  = "REJECT"
)

// AdminService wraps the admin-only endpoints.
type AdminService struct {
	client *Client
}

func NewAdminService(c *Client) *AdminService {
	return &AdminService{client: c}
}

type vendorRequestsResponse struct {
	Data []model.VendorRequest `json:"data"`
}

// GetVendorRequests returns all vendor applications, every status.
func (s *AdminService) GetVendorRequests(ctx context.Context) ([]model.VendorRequest, error) {
	var resp vendorRequestsResponse
	if err := s.client.Get(ctx, "/admin/vendor-requests", &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// ReviewVendorRequest approves or rejects a pending application.
func (s *AdminService) ReviewVendorRequest(ctx context.Context, requestID, action string) error {
	body := map[string]string{"action": action}
	return s.client.Post(ctx, "/admin/vendor-requests/"+requestID+"/status", body, nil)
}

type usersResponse struct {
	Data []model.User `json:"data"`
}

// GetUsers returns every account for the user management table.
func (s *AdminService) GetUsers(ctx context.Context) ([]model.User, error) {
	var resp usersResponse
	if err := s.client.Get(ctx, "/admin/users", &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// UpdateUserRole changes an account's role.
func (s *AdminService) UpdateUserRole(ctx context.Context, userID, role string) error {
	body := map[string]string{"role": role}
	return s.client.Patch(ctx, "/admin/users/"+userID+"/role", body, nil)
}

// DeleteUser removes an account.
func (s *AdminService) DeleteUser(ctx context.Context, userID string) error {
	return s.client.Delete(ctx, "/admin/users/"+userID, nil)
}
