package notifications

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rapheephat/hiewhub-tui/internal/model"
)

func loaded(m Model, items []model.Notification) Model {
	m, _ = m.Update(LoadedMsg{Notifications: items, FetchedAt: time.Now()})
	return m
}

func press(m Model, key string) (Model, tea.Cmd) {
	return m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)})
}

func sample() []model.Notification {
	return []model.Notification{
		{ID: "n1", Type: model.NotificationNewMessage, Status: model.NotificationUnread},
		{ID: "n2", Type: model.NotificationOrderStatusUpdate, Status: model.NotificationRead},
		{ID: "n3", Type: model.NotificationAdminAlert, Status: model.NotificationUnread},
	}
}

func TestUnreadCount(t *testing.T) {
	m := loaded(New(80, 24), sample())
	if got := m.UnreadCount(); got != 2 {
		t.Errorf("UnreadCount = %d, want 2", got)
	}
}

func TestTabFiltersToUnread(t *testing.T) {
	m := loaded(New(80, 24), sample())
	if got := len(m.visible()); got != 3 {
		t.Fatalf("all tab shows %d, want 3", got)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	vis := m.visible()
	if len(vis) != 2 {
		t.Fatalf("unread tab shows %d, want 2", len(vis))
	}
	for _, n := range vis {
		if n.Status != model.NotificationUnread {
			t.Errorf("unread tab contains %s with status %s", n.ID, n.Status)
		}
	}
}

func TestEnterMarksSelectedRead(t *testing.T) {
	m := loaded(New(80, 24), sample())

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter on an unread row produced no command")
	}
	msg, ok := cmd().(MarkReadRequestMsg)
	if !ok || msg.ID != "n1" {
		t.Fatalf("cmd = %#v, want MarkReadRequestMsg for n1", cmd())
	}
	if got := m.UnreadCount(); got != 1 {
		t.Errorf("UnreadCount after optimistic flip = %d, want 1", got)
	}
}

func TestEnterOnReadRowIsInert(t *testing.T) {
	m := loaded(New(80, 24), sample())
	m, _ = press(m, "j") // move to n2, already read

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Errorf("enter on a read row produced %#v", cmd())
	}
	if got := m.UnreadCount(); got != 2 {
		t.Errorf("UnreadCount = %d, read row must never flip back", got)
	}
}

func TestMarkAllRead(t *testing.T) {
	m := loaded(New(80, 24), sample())

	m, cmd := press(m, "A")
	if cmd == nil {
		t.Fatal("mark-all produced no command")
	}
	msg, ok := cmd().(MarkAllReadRequestMsg)
	if !ok {
		t.Fatalf("cmd = %#v", cmd())
	}
	if len(msg.IDs) != 2 || msg.IDs[0] != "n1" || msg.IDs[1] != "n3" {
		t.Errorf("IDs = %v, want the unread ones in order", msg.IDs)
	}
	if got := m.UnreadCount(); got != 0 {
		t.Errorf("UnreadCount after mark-all = %d", got)
	}

	// With nothing unread the key is inert.
	m, cmd = press(m, "A")
	if cmd != nil {
		t.Errorf("mark-all with no unread produced %#v", cmd())
	}
	_ = m
}

func TestReloadResetsOutOfRangeCursor(t *testing.T) {
	m := loaded(New(80, 24), sample())
	m, _ = press(m, "j")
	m, _ = press(m, "j")

	m = loaded(m, sample()[:1])
	if m.cursor != 0 {
		t.Errorf("cursor = %d after shrinking reload, want 0", m.cursor)
	}
}
