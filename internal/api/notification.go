package api

import (
	"context"

	"github.com/rapheephat/hiewhub-tui/internal/model"
)

// NotificationService wraps the notification endpoints.
type NotificationService struct {
	client *Client
}

func NewNotificationService(c *Client) *NotificationService {
	return &NotificationService{client: c}
}

type notificationsResponse struct {
	Data []model.Notification `json:"data"`
}

type countResponse struct {
	Count int `json:"count"`
}

// GetNotifications returns the user's notifications, newest first.
func (s *NotificationService) GetNotifications(ctx context.Context) ([]model.Notification, error) {
	var resp notificationsResponse
	if err := s.client.Get(ctx, "/api/notifications", &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// GetUnreadCount returns the number of UNREAD notifications.
func (s *NotificationService) GetUnreadCount(ctx context.Context) (int, error) {
	var resp countResponse
	if err := s.client.Get(ctx, "/api/notifications/count", &resp); err != nil {
		return 0, err
	}
	return resp.Count, nil
}

// MarkAsRead transitions a notification UNREAD -> READ. The transition
// is one-way; marking an already-read notification is a no-op server-side.
func (s *NotificationService) MarkAsRead(ctx context.Context, notificationID string) error {
	return s.client.Patch(ctx, "/api/notifications/"+notificationID+"/read", nil, nil)
}

// Send creates a notification for another user (vendor/admin flows).
func (s *NotificationService) Send(ctx context.Context, userID, notifType, message string) error {
	body := map[string]interface{}{
		"userId":  userID,
		"type":    notifType,
		"content": model.NotificationContent{Message: message},
	}
	return s.client.Post(ctx, "/api/notifications", body, nil)
}
