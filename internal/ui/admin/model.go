package admin

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rapheephat/hiewhub-tui/internal/api"
	"github.com/rapheephat/hiewhub-tui/internal/keys"
	"github.com/rapheephat/hiewhub-tui/internal/model"
	"github.com/rapheephat/hiewhub-tui/internal/theme"
)

// DataLoadedMsg carries the admin console data set.
type DataLoadedMsg struct {
	Requests []model.VendorRequest
	Users    []model.User
}

// ReviewRequestMsg asks the app layer to approve or reject an
// application. UserID identifies the applicant so they can be notified
// of the outcome.
type ReviewRequestMsg struct {
	RequestID string
	Action    string
	UserID    string
}

// ChangeRoleMsg asks the app layer to set a user's role.
type ChangeRoleMsg struct {
	UserID string
	Role   string
}

// DeleteUserMsg asks the app layer to remove an account.
type DeleteUserMsg struct {
	UserID string
}

type tab int

const (
	tabRequests tab = iota
	tabUsers
)

// roleCycle is the order the r key walks through when changing a role.
var roleCycle = []string{model.RoleCustomer, model.RoleVendor, model.RoleAdmin}

// Model is the admin console: vendor applications on one tab, the user
// table on the other.
type Model struct {
	requests    []model.VendorRequest
	users       []model.User
	tab         tab
	cursor      int
	pendingOnly bool
	confirmDel  string
	loading     bool
	errMsg      string
	keys        *keys.KeyMap
	width       int
	height      int
}

// New creates the admin model.
func New(k *keys.KeyMap, width, height int) Model {
	return Model{loading: true, pendingOnly: true, keys: k, width: width, height: height}
}

// SetError surfaces a failed fetch or action.
func (m *Model) SetError(msg string) {
	m.loading = false
	m.errMsg = msg
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// visibleRequests applies the pending-only filter.
func (m Model) visibleRequests() []model.VendorRequest {
	if !m.pendingOnly {
		return m.requests
	}
	out := make([]model.VendorRequest, 0, len(m.requests))
	for _, r := range m.requests {
		if r.Status == model.VendorRequestPending {
			out = append(out, r)
		}
	}
	return out
}

// Update handles messages for the admin console.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case DataLoadedMsg:
		m.loading = false
		m.errMsg = ""
		m.requests = msg.Requests
		m.users = msg.Users
		m.clampCursor()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeys(msg)
	}
	return m, nil
}

func (m *Model) clampCursor() {
	n := len(m.visibleRequests())
	if m.tab == tabUsers {
		n = len(m.users)
	}
	if m.cursor >= n {
		m.cursor = 0
	}
}

func (m Model) handleKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	// A pending delete confirmation swallows everything except y/n.
	if m.confirmDel != "" {
		switch msg.String() {
		case "y":
			id := m.confirmDel
			m.confirmDel = ""
			return m, func() tea.Msg { return DeleteUserMsg{UserID: id} }
		default:
			m.confirmDel = ""
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Down):
		n := len(m.visibleRequests())
		if m.tab == tabUsers {
			n = len(m.users)
		}
		if m.cursor < n-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.SwitchTab):
		if m.tab == tabRequests {
			m.tab = tabUsers
		} else {
			m.tab = tabRequests
		}
		m.cursor = 0
	case key.Matches(msg, m.keys.TogglePend):
		if m.tab == tabRequests {
			m.pendingOnly = !m.pendingOnly
			m.cursor = 0
		}
	case key.Matches(msg, m.keys.Approve):
		if m.tab == tabRequests {
			return m.review(api.AdminActionApprove)
		}
	case key.Matches(msg, m.keys.Reject):
		if m.tab == tabRequests {
			return m.review(api.AdminActionReject)
		}
	case msg.String() == "r":
		if m.tab == tabUsers && m.cursor < len(m.users) {
			u := m.users[m.cursor]
			next := nextRole(u.Role)
			return m, func() tea.Msg {
				return ChangeRoleMsg{UserID: u.ID, Role: next}
			}
		}
	case key.Matches(msg, m.keys.Remove):
		if m.tab == tabUsers && m.cursor < len(m.users) {
			m.confirmDel = m.users[m.cursor].ID
		}
	}
	return m, nil
}

// review emits a ReviewRequestMsg for the selected pending application.
// Resolved applications are left alone.
func (m Model) review(action string) (Model, tea.Cmd) {
	visible := m.visibleRequests()
	if m.cursor >= len(visible) {
		return m, nil
	}
	req := visible[m.cursor]
	if req.Status != model.VendorRequestPending {
		return m, nil
	}
	id := req.ID
	userID := req.UserID
	return m, func() tea.Msg {
		return ReviewRequestMsg{RequestID: id, Action: action, UserID: userID}
	}
}

func nextRole(role string) string {
	for i, r := range roleCycle {
		if r == role {
			return roleCycle[(i+1)%len(roleCycle)]
		}
	}
	return model.RoleCustomer
}

// View renders the admin console.
func (m Model) View() string {
	if m.loading {
		return theme.EmptyStateStyle.Render("loading admin data...")
	}

	var b strings.Builder
	b.WriteString(m.renderTabs() + "\n\n")

	if m.errMsg != "" {
		b.WriteString(theme.ErrorStyle.Render(m.errMsg) + "\n\n")
	}

	if m.tab == tabRequests {
		b.WriteString(m.viewRequests())
	} else {
		b.WriteString(m.viewUsers())
	}
	return b.String()
}

func (m Model) renderTabs() string {
	reqLabel := fmt.Sprintf("Vendor requests (%d)", len(m.visibleRequests()))
	userLabel := fmt.Sprintf("Users (%d)", len(m.users))
	if m.tab == tabRequests {
		return theme.SelectedItemStyle.Render(reqLabel) + "  " + theme.ListItemStyle.Render(userLabel)
	}
	return theme.ListItemStyle.Render(reqLabel) + "  " + theme.SelectedItemStyle.Render(userLabel)
}

func (m Model) viewRequests() string {
	visible := m.visibleRequests()
	if len(visible) == 0 {
		if m.pendingOnly {
			return theme.EmptyStateStyle.Render("No pending applications. Press p to show all.")
		}
		return theme.EmptyStateStyle.Render("No vendor applications.")
	}

	var b strings.Builder
	for i, r := range visible {
		b.WriteString(m.renderRequest(r, i == m.cursor) + "\n")
	}
	b.WriteString("\n" + theme.HelpStyle.Render("a approve · x reject · p toggle pending filter"))
	return b.String()
}

func (m Model) renderRequest(r model.VendorRequest, selected bool) string {
	applicant := ""
	if r.User != nil {
		applicant = r.User.Email
	}
	line := fmt.Sprintf(
		"%s  %s  %s  %s",
		theme.RequestStatusStyle(r.Status).Render(r.Status),
		r.ShopName,
		theme.HelpStyle.Render(applicant),
		theme.HelpStyle.Render(r.CreatedAt.Format("2 Jan 2006")),
	)
	if selected {
		return theme.SelectedItemStyle.Render(line)
	}
	return theme.ListItemStyle.Render(line)
}

func (m Model) viewUsers() string {
	if len(m.users) == 0 {
		return theme.EmptyStateStyle.Render("No users.")
	}

	var b strings.Builder
	for i, u := range m.users {
		b.WriteString(m.renderUser(u, i == m.cursor) + "\n")
	}

	if m.confirmDel != "" {
		b.WriteString("\n" + lipgloss.NewStyle().
			Foreground(theme.ColorRed).
			Render("Delete this account? y to confirm, any other key to cancel"))
	} else {
		b.WriteString("\n" + theme.HelpStyle.Render("r change role · d delete"))
	}
	return b.String()
}

func (m Model) renderUser(u model.User, selected bool) string {
	line := fmt.Sprintf(
		"%s  %s %s  %s",
		theme.RoleStyle(u.Role).Render(u.Role),
		u.Firstname, u.Lastname,
		theme.HelpStyle.Render(u.Email),
	)
	if selected {
		return theme.SelectedItemStyle.Render(line)
	}
	return theme.ListItemStyle.Render(line)
}
