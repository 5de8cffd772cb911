package chat

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rapheephat/hiewhub-tui/internal/keys"
	"github.com/rapheephat/hiewhub-tui/internal/livesync"
	"github.com/rapheephat/hiewhub-tui/internal/model"
	"github.com/rapheephat/hiewhub-tui/internal/theme"
)

// RoomsLoadedMsg carries a fresh room-list snapshot.
type RoomsLoadedMsg struct {
	Rooms     []model.Conversation
	FetchedAt time.Time
}

// MessagesLoadedMsg carries a fresh message snapshot for one room.
type MessagesLoadedMsg struct {
	RoomID    string
	Messages  []model.Message
	FetchedAt time.Time
}

// SendRequestMsg asks the app layer to post a message to a room.
type SendRequestMsg struct {
	RoomID  string
	Content string
}

// RoomOpenedMsg tells the app layer the widget switched to a room, so
// the poller's fetch can follow.
type RoomOpenedMsg struct {
	RoomID string
}

// RoomClosedMsg tells the app layer the widget is back on the room list.
type RoomClosedMsg struct{}

// Model is the chat surface: a room list and an open-room message view,
// kept live by a 3-second poller owned by the app layer.
type Model struct {
	rooms    livesync.Snapshot[model.Conversation]
	messages livesync.Snapshot[model.Message]

	activeRoom  *model.Conversation
	cursor      int
	input       textinput.Model
	currentUser string
	loading     bool
	errMsg      string
	keys        *keys.KeyMap
	width       int
	height      int
}

// New creates the chat model. The current user ID is needed to align
// own messages on the right side of the transcript.
func New(k *keys.KeyMap, width, height int) Model {
	ti := textinput.New()
	ti.Placeholder = "type a message..."
	ti.Prompt = "> "
	ti.CharLimit = 2000

	return Model{
		input:   ti,
		loading: true,
		keys:    k,
		width:   width,
		height:  height,
	}
}

// SetCurrentUser records the signed-in user's ID.
func (m *Model) SetCurrentUser(userID string) {
	m.currentUser = userID
}

// SetError surfaces a failed foreground fetch. Background poll errors
// never reach the view.
func (m *Model) SetError(msg string) {
	m.loading = false
	m.errMsg = msg
}

// OpenRoom jumps straight into a room, used when a conversation was
// just initiated from a product page.
func (m *Model) OpenRoom(room model.Conversation) tea.Cmd {
	m.activeRoom = &room
	m.messages = livesync.Snapshot[model.Message]{}
	m.loading = true
	m.errMsg = ""
	m.input.Reset()
	focusCmd := m.input.Focus()
	roomID := room.ID
	return tea.Batch(focusCmd, func() tea.Msg {
		return RoomOpenedMsg{RoomID: roomID}
	})
}

// ActiveRoomID returns the open room's ID, empty on the room list.
func (m Model) ActiveRoomID() string {
	if m.activeRoom == nil {
		return ""
	}
	return m.activeRoom.ID
}

// Update handles messages for the chat surface.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case RoomsLoadedMsg:
		m.loading = false
		m.errMsg = ""
		m.rooms.Replace(msg.Rooms, 0)
		if m.cursor >= len(msg.Rooms) {
			m.cursor = 0
		}
		return m, nil

	case MessagesLoadedMsg:
		// A snapshot for a room the user already left is stale; the
		// generation guard catches most of these, this is the last line.
		if m.activeRoom == nil || m.activeRoom.ID != msg.RoomID {
			return m, nil
		}
		m.loading = false
		m.errMsg = ""
		m.messages.Replace(msg.Messages, 0)
		return m, nil

	case tea.KeyMsg:
		if m.activeRoom != nil {
			return m.handleRoomKeys(msg)
		}
		return m.handleListKeys(msg)
	}

	return m, nil
}

// handleListKeys processes key input on the room list.
func (m Model) handleListKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		if m.cursor < len(m.rooms.Items)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "enter":
		if m.cursor < len(m.rooms.Items) {
			room := m.rooms.Items[m.cursor]
			m.activeRoom = &room
			m.messages = livesync.Snapshot[model.Message]{}
			m.loading = true
			m.input.Reset()
			focusCmd := m.input.Focus()
			roomID := room.ID
			return m, tea.Batch(focusCmd, func() tea.Msg {
				return RoomOpenedMsg{RoomID: roomID}
			})
		}
	}
	return m, nil
}

// handleRoomKeys processes key input inside an open room.
func (m Model) handleRoomKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.activeRoom = nil
		m.loading = true
		m.input.Blur()
		return m, func() tea.Msg { return RoomClosedMsg{} }

	case "enter":
		content := strings.TrimSpace(m.input.Value())
		if content == "" {
			return m, nil
		}
		roomID := m.activeRoom.ID
		m.input.Reset()
		return m, func() tea.Msg {
			return SendRequestMsg{RoomID: roomID, Content: content}
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the chat surface.
func (m Model) View() string {
	if m.errMsg != "" {
		return theme.ErrorStyle.Render(m.errMsg)
	}
	if m.activeRoom != nil {
		return m.viewRoom()
	}
	return m.viewRoomList()
}

// viewRoomList renders the conversation list, or the empty placeholder.
func (m Model) viewRoomList() string {
	if m.loading {
		return theme.EmptyStateStyle.Render("loading conversations...")
	}

	if m.rooms.Empty() {
		return m.centered("(+)\n\nNo conversations yet.\nOpen a product and press m to message its vendor.")
	}

	var b strings.Builder
	b.WriteString(theme.HeaderStyle.Render("Messages") + "\n\n")
	for i, room := range m.rooms.Items {
		name := room.OtherMember.DisplayName()
		last := "start the conversation"
		stamp := ""
		if room.LastMessage != nil {
			last = room.LastMessage.Content
			stamp = formatTimeShort(room.LastMessage.CreatedAt)
		}

		line := fmt.Sprintf("%s  %s", name, theme.HelpStyle.Render(stamp))
		preview := theme.EmptyStateStyle.Render(truncate(last, m.width-6))
		if i == m.cursor {
			b.WriteString(theme.SelectedItemStyle.Render(line) + "\n")
			b.WriteString(theme.SelectedItemStyle.Render(preview) + "\n")
		} else {
			b.WriteString(theme.ListItemStyle.Render(line) + "\n")
			b.WriteString(theme.ListItemStyle.Render(preview) + "\n")
		}
	}
	return b.String()
}

// viewRoom renders the open room's transcript and the compose input.
func (m Model) viewRoom() string {
	var b strings.Builder
	title := m.activeRoom.OtherMember.DisplayName()
	b.WriteString(theme.HeaderStyle.Render(title) + "\n\n")

	switch {
	case m.loading:
		b.WriteString(theme.EmptyStateStyle.Render("loading messages...") + "\n")
	case m.messages.Empty():
		b.WriteString(theme.EmptyStateStyle.Render("No messages yet. Say hello!") + "\n")
	default:
		// Server order is authoritative: oldest first, render as-is.
		transcript := m.transcriptLines()
		b.WriteString(strings.Join(transcript, "\n") + "\n")
	}

	b.WriteString("\n" + m.input.View())
	return b.String()
}

// transcriptLines renders each message, aligning own messages right.
func (m Model) transcriptLines() []string {
	own := lipgloss.NewStyle().
		Foreground(theme.ColorWhite).
		Align(lipgloss.Right).
		Width(m.width - 2)
	other := lipgloss.NewStyle().Foreground(theme.ColorGray)

	visible := m.messages.Items
	maxLines := m.height - 6
	if maxLines > 0 && len(visible) > maxLines {
		visible = visible[len(visible)-maxLines:]
	}

	lines := make([]string, 0, len(visible))
	for _, msg := range visible {
		stamp := formatTimeShort(msg.CreatedAt)
		text := fmt.Sprintf("%s  %s", msg.Content, theme.HelpStyle.Render(stamp))
		if msg.SenderID == m.currentUser {
			lines = append(lines, own.Render(text))
		} else {
			lines = append(lines, other.Render(text))
		}
	}
	return lines
}

// centered renders placeholder text in the middle of the content area.
func (m Model) centered(text string) string {
	return lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.ColorGray).
		Render(text)
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.input.Width = width - 4
}

// formatTimeShort renders a timestamp the way the room list shows it:
// clock time today, date otherwise.
func formatTimeShort(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	now := time.Now()
	if t.Year() == now.Year() && t.YearDay() == now.YearDay() {
		return t.Format("15:04")
	}
	return t.Format("2 Jan")
}

// truncate shortens s to max runes with an ellipsis.
func truncate(s string, max int) string {
	if max <= 3 {
		return s
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
