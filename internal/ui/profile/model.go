package profile

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rapheephat/hiewhub-tui/internal/model"
	"github.com/rapheephat/hiewhub-tui/internal/session"
	"github.com/rapheephat/hiewhub-tui/internal/theme"
)

// LoadedMsg carries the fetched profile. Claims is the token fallback
// shown when the profile endpoint cannot be reached.
type LoadedMsg struct {
	Profile *model.Profile
	Claims  *session.Claims
}

// Model is the account view: identity, role, and saved addresses.
type Model struct {
	profile *model.Profile
	claims  *session.Claims
	loading bool
	errMsg  string
	width   int
	height  int
}

// New creates the profile model.
func New(width, height int) Model {
	return Model{loading: true, width: width, height: height}
}

// SetError surfaces a failed fetch.
func (m *Model) SetError(msg string) {
	m.loading = false
	m.errMsg = msg
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages for the profile view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if loaded, ok := msg.(LoadedMsg); ok {
		m.loading = false
		m.errMsg = ""
		m.profile = loaded.Profile
		m.claims = loaded.Claims
	}
	return m, nil
}

// View renders the account view.
func (m Model) View() string {
	if m.loading {
		return theme.EmptyStateStyle.Render("loading profile...")
	}

	var parts []string
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)
	parts = append(parts, titleStyle.Render("Account"))

	if m.errMsg != "" {
		parts = append(parts, theme.ErrorStyle.Render(m.errMsg))
	}

	metaStyle := lipgloss.NewStyle().Foreground(theme.ColorGray)
	valStyle := lipgloss.NewStyle().Foreground(theme.ColorWhite)

	switch {
	case m.profile != nil:
		u := m.profile.User
		parts = append(parts, fmt.Sprintf("%s  %s",
			metaStyle.Render("Name:"), valStyle.Render(u.Firstname+" "+u.Lastname)))
		parts = append(parts, fmt.Sprintf("%s %s",
			metaStyle.Render("Email:"), valStyle.Render(u.Email)))
		parts = append(parts, fmt.Sprintf("%s  %s",
			metaStyle.Render("Role:"), theme.RoleStyle(u.Role).Render(u.Role)))
		if u.VendorProfile != nil {
			parts = append(parts, fmt.Sprintf("%s  %s",
				metaStyle.Render("Shop:"), valStyle.Render(u.VendorProfile.ShopName)))
		}
		parts = append(parts, "")
		parts = append(parts, m.renderAddresses())

	case m.claims != nil:
		// Token claims only: the profile fetch failed but the session
		// itself is still valid.
		parts = append(parts, fmt.Sprintf("%s %s",
			metaStyle.Render("Email:"), valStyle.Render(m.claims.Email)))
		if m.claims.Role != "" {
			parts = append(parts, fmt.Sprintf("%s  %s",
				metaStyle.Render("Role:"), theme.RoleStyle(m.claims.Role).Render(m.claims.Role)))
		}
		parts = append(parts, theme.HelpStyle.Render("showing cached session details, press r to retry"))

	default:
		parts = append(parts, theme.EmptyStateStyle.Render("No profile data."))
	}

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(strings.Join(parts, "\n"))
}

func (m Model) renderAddresses() string {
	header := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite)
	if len(m.profile.Addresses) == 0 {
		return header.Render("Addresses") + "\n" +
			theme.EmptyStateStyle.Render("No saved addresses.")
	}

	var b strings.Builder
	b.WriteString(header.Render(fmt.Sprintf("Addresses (%d)", len(m.profile.Addresses))) + "\n")
	for _, a := range m.profile.Addresses {
		marker := " "
		if a.IsDefault {
			marker = theme.BadgeStyle.Render("*")
		}
		b.WriteString(fmt.Sprintf("%s %s, %s, %s, %s %s\n",
			marker, a.Line1, a.Subdistrict, a.District, a.Province, a.PostalCode))
	}
	return b.String()
}
