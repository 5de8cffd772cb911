package api

import (
	"context"

	"github.com/rapheephat/hiewhub-tui/internal/model"
)

// ChatService wraps the chat room and message endpoints.
type ChatService struct {
	client *Client
}

func NewChatService(c *Client) *ChatService {
	return &ChatService{client: c}
}

type roomsResponse struct {
	Data []model.Conversation `json:"data"`
}

type messagesResponse struct {
	Data []model.Message `json:"data"`
}

// GetRooms returns the user's conversations, most recent first.
func (s *ChatService) GetRooms(ctx context.Context) ([]model.Conversation, error) {
	var resp roomsResponse
	if err := s.client.Get(ctx, "/api/chats", &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// GetMessages returns the messages of a room in server order,
// oldest first. That sequence is the authoritative display order.
func (s *ChatService) GetMessages(ctx context.Context, roomID string) ([]model.Message, error) {
	var resp messagesResponse
	if err := s.client.Get(ctx, "/api/chats/"+roomID+"/messages", &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// SendMessage posts a message to a room.
func (s *ChatService) SendMessage(ctx context.Context, roomID, content string, images []string) error {
	if images == nil {
		images = []string{}
	}
	body := map[string]interface{}{"content": content, "images": images}
	return s.client.Post(ctx, "/api/chats/"+roomID+"/messages", body, nil)
}

type initiateResponse struct {
	Data model.Conversation `json:"data"`
}

// Initiate opens (or returns the existing) room with another user.
func (s *ChatService) Initiate(ctx context.Context, targetUserID string) (*model.Conversation, error) {
	body := map[string]string{"targetUserId": targetUserID}
	var resp initiateResponse
	if err := s.client.Post(ctx, "/api/chats/initiate", body, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}
