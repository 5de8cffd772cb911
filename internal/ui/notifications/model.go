package notifications

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rapheephat/hiewhub-tui/internal/livesync"
	"github.com/rapheephat/hiewhub-tui/internal/model"
	"github.com/rapheephat/hiewhub-tui/internal/theme"
)

// LoadedMsg carries a fresh notification snapshot.
type LoadedMsg struct {
	Notifications []model.Notification
	FetchedAt     time.Time
}

// MarkReadRequestMsg asks the app layer to mark one notification read.
type MarkReadRequestMsg struct {
	ID string
}

// MarkAllReadRequestMsg asks the app layer to mark every unread
// notification read. IDs are the unread notifications at the time the
// user pressed the key.
type MarkAllReadRequestMsg struct {
	IDs []string
}

type tab int

const (
	tabAll tab = iota
	tabUnread
)

// Model is the notification center: a full list with an all/unread
// filter. Reads are one-way; a read notification never goes back to
// unread.
type Model struct {
	items   livesync.Snapshot[model.Notification]
	tab     tab
	cursor  int
	loading bool
	errMsg  string
	width   int
	height  int
}

// New creates the notification model.
func New(width, height int) Model {
	return Model{loading: true, width: width, height: height}
}

// SetError surfaces a failed foreground fetch.
func (m *Model) SetError(msg string) {
	m.loading = false
	m.errMsg = msg
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// visible returns the notifications for the active tab.
func (m Model) visible() []model.Notification {
	if m.tab == tabAll {
		return m.items.Items
	}
	out := make([]model.Notification, 0, len(m.items.Items))
	for _, n := range m.items.Items {
		if n.Status == model.NotificationUnread {
			out = append(out, n)
		}
	}
	return out
}

// Update handles messages for the notification center.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case LoadedMsg:
		m.loading = false
		m.errMsg = ""
		m.items.Replace(msg.Notifications, 0)
		if m.cursor >= len(m.visible()) {
			m.cursor = 0
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKeys(msg)
	}
	return m, nil
}

func (m Model) handleKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	visible := m.visible()

	switch msg.String() {
	case "j", "down":
		if m.cursor < len(visible)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "tab":
		if m.tab == tabAll {
			m.tab = tabUnread
		} else {
			m.tab = tabAll
		}
		m.cursor = 0
	case "enter":
		if m.cursor < len(visible) {
			n := visible[m.cursor]
			if n.Status != model.NotificationUnread {
				return m, nil
			}
			id := n.ID
			// Optimistic flip so the row updates before the next poll.
			m.markLocal(id)
			return m, func() tea.Msg { return MarkReadRequestMsg{ID: id} }
		}
	case "A":
		if !m.hasUnread() {
			return m, nil
		}
		var ids []string
		for i := range m.items.Items {
			if m.items.Items[i].Status == model.NotificationUnread {
				ids = append(ids, m.items.Items[i].ID)
				m.items.Items[i].Status = model.NotificationRead
			}
		}
		return m, func() tea.Msg { return MarkAllReadRequestMsg{IDs: ids} }
	}
	return m, nil
}

func (m *Model) markLocal(id string) {
	for i := range m.items.Items {
		if m.items.Items[i].ID == id {
			m.items.Items[i].Status = model.NotificationRead
			return
		}
	}
}

func (m Model) hasUnread() bool {
	for _, n := range m.items.Items {
		if n.Status == model.NotificationUnread {
			return true
		}
	}
	return false
}

// UnreadCount returns the number of unread notifications in the
// current snapshot.
func (m Model) UnreadCount() int {
	count := 0
	for _, n := range m.items.Items {
		if n.Status == model.NotificationUnread {
			count++
		}
	}
	return count
}

// View renders the notification center.
func (m Model) View() string {
	if m.errMsg != "" {
		return theme.ErrorStyle.Render(m.errMsg)
	}
	if m.loading {
		return theme.EmptyStateStyle.Render("loading notifications...")
	}

	var b strings.Builder
	b.WriteString(m.renderTabs() + "\n\n")

	visible := m.visible()
	if len(visible) == 0 {
		if m.tab == tabUnread {
			b.WriteString(theme.EmptyStateStyle.Render("You're all caught up."))
		} else {
			b.WriteString(theme.EmptyStateStyle.Render("No notifications yet."))
		}
		return b.String()
	}

	for i, n := range visible {
		b.WriteString(m.renderRow(n, i == m.cursor) + "\n")
	}
	return b.String()
}

func (m Model) renderTabs() string {
	all := fmt.Sprintf("All (%d)", len(m.items.Items))
	unread := fmt.Sprintf("Unread (%d)", m.UnreadCount())
	if m.tab == tabAll {
		return theme.SelectedItemStyle.Render(all) + "  " + theme.ListItemStyle.Render(unread)
	}
	return theme.ListItemStyle.Render(all) + "  " + theme.SelectedItemStyle.Render(unread)
}

func (m Model) renderRow(n model.Notification, selected bool) string {
	marker := " "
	if n.Status == model.NotificationUnread {
		marker = theme.BadgeStyle.Render("*")
	}
	stamp := theme.HelpStyle.Render(n.CreatedAt.Format("2 Jan 15:04"))
	line := fmt.Sprintf("%s %s  %s  %s", marker, n.Title(), n.Content.Message, stamp)
	if selected {
		return theme.SelectedItemStyle.Render(line)
	}
	return theme.ListItemStyle.Render(line)
}
