package model

import "time"

// Notification type constants as delivered by the API.
const (
	NotificationOrderStatusUpdate = "ORDER_STATUS_UPDATE"
	NotificationNewOrder          = "NEW_ORDER"
	NotificationRequestApproved   = "REQUEST_APPROVED"
	NotificationRequestRejected   = "REQUEST_REJECTED"
	NotificationNewMessage        = "NEW_MESSAGE"
	NotificationAdminAlert        = "ADMIN_ALERT"
)

// Notification read status. The only legal transition is
// UNREAD -> READ; it is never reversed.
const (
	NotificationUnread = "UNREAD"
	NotificationRead   = "READ"
)

// NotificationContent is the payload body of a notification.
type NotificationContent struct {
	Message string `json:"message"`
}

// Notification is an alert delivered to the user about order, chat,
// vendor-request, or admin activity.
type Notification struct {
	ID        string              `json:"id"`
	Type      string              `json:"type"`
	Status    string              `json:"status"`
	Content   NotificationContent `json:"content"`
	CreatedAt time.Time           `json:"createdAt"`
}

// Title returns the human-readable heading for a notification type.
func (n Notification) Title() string {
	switch n.Type {
	case NotificationOrderStatusUpdate:
		return "Order status updated"
	case NotificationNewOrder:
		return "New order received"
	case NotificationRequestApproved:
		return "Request approved"
	case NotificationRequestRejected:
		return "Request rejected"
	case NotificationNewMessage:
		return "New message"
	case NotificationAdminAlert:
		return "Announcement"
	default:
		return "Notification"
	}
}
