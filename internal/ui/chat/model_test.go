package chat

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rapheephat/hiewhub-tui/internal/keys"
	"github.com/rapheephat/hiewhub-tui/internal/model"
)

func newTestModel() Model {
	m := New(keys.DefaultKeyMap(), 80, 24)
	m.SetCurrentUser("me")
	m, _ = m.Update(RoomsLoadedMsg{
		Rooms: []model.Conversation{
			{ID: "room-1", OtherMember: model.User{Firstname: "Lek"}},
			{ID: "room-2", OtherMember: model.User{Firstname: "Mae"}},
		},
		FetchedAt: time.Now(),
	})
	return m
}

// drain runs a command, flattening one level of batching.
func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			if c != nil {
				out = append(out, c())
			}
		}
		return out
	}
	return []tea.Msg{msg}
}

func findRoomOpened(msgs []tea.Msg) (RoomOpenedMsg, bool) {
	for _, m := range msgs {
		if opened, ok := m.(RoomOpenedMsg); ok {
			return opened, true
		}
	}
	return RoomOpenedMsg{}, false
}

func TestEnterOpensSelectedRoom(t *testing.T) {
	m := newTestModel()
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	opened, ok := findRoomOpened(drain(cmd))
	if !ok || opened.RoomID != "room-2" {
		t.Fatalf("open command = %#v, want RoomOpenedMsg for room-2", opened)
	}
	if m.ActiveRoomID() != "room-2" {
		t.Errorf("ActiveRoomID = %q", m.ActiveRoomID())
	}
}

func TestStaleRoomSnapshotDropped(t *testing.T) {
	m := newTestModel()
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter}) // opens room-1

	// A snapshot for a room the user is not in must not land.
	m, _ = m.Update(MessagesLoadedMsg{
		RoomID:    "room-2",
		Messages:  []model.Message{{ID: "m9", SenderID: "them", Content: "wrong room"}},
		FetchedAt: time.Now(),
	})
	if !m.messages.Empty() {
		t.Fatalf("stale snapshot applied: %+v", m.messages.Items)
	}

	m, _ = m.Update(MessagesLoadedMsg{
		RoomID:    "room-1",
		Messages:  []model.Message{{ID: "m1", SenderID: "me", Content: "hello"}},
		FetchedAt: time.Now(),
	})
	if len(m.messages.Items) != 1 {
		t.Errorf("matching snapshot not applied: %+v", m.messages.Items)
	}
}

func TestSendTrimsAndSkipsEmpty(t *testing.T) {
	m := newTestModel()
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter}) // opens room-1

	m.input.SetValue("   ")
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Errorf("blank message produced %#v", cmd())
	}

	m.input.SetValue("  sawasdee ")
	m, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("send produced no command")
	}
	msg, ok := cmd().(SendRequestMsg)
	if !ok || msg.RoomID != "room-1" || msg.Content != "sawasdee" {
		t.Fatalf("cmd = %#v", cmd())
	}
	if m.input.Value() != "" {
		t.Errorf("input not cleared after send: %q", m.input.Value())
	}
}

func TestEscReturnsToRoomList(t *testing.T) {
	m := newTestModel()
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.ActiveRoomID() != "" {
		t.Errorf("ActiveRoomID = %q after esc", m.ActiveRoomID())
	}
	if cmd == nil {
		t.Fatal("esc produced no command")
	}
	if _, ok := cmd().(RoomClosedMsg); !ok {
		t.Errorf("cmd = %#v, want RoomClosedMsg", cmd())
	}
}

func TestOpenRoomDirectly(t *testing.T) {
	m := newTestModel()

	cmd := m.OpenRoom(model.Conversation{ID: "room-9", OtherMember: model.User{Firstname: "Nok"}})
	opened, ok := findRoomOpened(drain(cmd))
	if !ok || opened.RoomID != "room-9" {
		t.Fatalf("OpenRoom command = %#v", opened)
	}
	if m.ActiveRoomID() != "room-9" {
		t.Errorf("ActiveRoomID = %q", m.ActiveRoomID())
	}
}
