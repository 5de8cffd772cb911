package favorites

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rapheephat/hiewhub-tui/internal/model"
	"github.com/rapheephat/hiewhub-tui/internal/theme"
)

// LoadedMsg carries the user's saved products.
type LoadedMsg struct {
	Favorites []model.Favorite
}

// SelectedProductMsg asks the parent to open a saved product's page.
type SelectedProductMsg struct {
	ProductID string
}

// RemoveRequestMsg asks the app layer to unfavorite a product.
type RemoveRequestMsg struct {
	ProductID string
}

// Model is the saved-products view.
type Model struct {
	favorites []model.Favorite
	cursor    int
	loading   bool
	busy      bool
	errMsg    string
	width     int
	height    int
}

// New creates the favorites model.
func New(width, height int) Model {
	return Model{loading: true, width: width, height: height}
}

// SetError surfaces a failed fetch or removal.
func (m *Model) SetError(msg string) {
	m.loading = false
	m.busy = false
	m.errMsg = msg
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages for the favorites view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case LoadedMsg:
		m.loading = false
		m.busy = false
		m.errMsg = ""
		m.favorites = msg.Favorites
		if m.cursor >= len(m.favorites) {
			m.cursor = 0
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKeys(msg)
	}
	return m, nil
}

func (m Model) handleKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.busy {
		return m, nil
	}

	switch msg.String() {
	case "j", "down":
		if m.cursor < len(m.favorites)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "enter":
		if m.cursor < len(m.favorites) {
			id := m.favorites[m.cursor].ProductID
			return m, func() tea.Msg { return SelectedProductMsg{ProductID: id} }
		}
	case "f", "d":
		if m.cursor < len(m.favorites) {
			id := m.favorites[m.cursor].ProductID
			m.busy = true
			return m, func() tea.Msg { return RemoveRequestMsg{ProductID: id} }
		}
	}
	return m, nil
}

// View renders the favorites view.
func (m Model) View() string {
	if m.loading {
		return theme.EmptyStateStyle.Render("loading favorites...")
	}

	var b strings.Builder
	b.WriteString(theme.HeaderStyle.Render("Favorites") + "\n\n")

	if m.errMsg != "" {
		b.WriteString(theme.ErrorStyle.Render(m.errMsg) + "\n\n")
	}

	if len(m.favorites) == 0 {
		b.WriteString(theme.EmptyStateStyle.Render("Nothing saved yet.\nPress f on a product to keep it here."))
		return b.String()
	}

	for i, fav := range m.favorites {
		b.WriteString(m.renderRow(fav, i == m.cursor) + "\n")
	}

	b.WriteString("\n")
	if m.busy {
		b.WriteString(theme.HelpStyle.Render("working..."))
	} else {
		b.WriteString(theme.HelpStyle.Render("enter open · f remove"))
	}
	return b.String()
}

func (m Model) renderRow(fav model.Favorite, selected bool) string {
	title := fav.ProductID
	price := ""
	if fav.Product != nil {
		title = fav.Product.Title
		price = theme.PriceStyle.Render(fmt.Sprintf("฿%.2f", fav.Product.EffectivePrice()))
	}
	line := fmt.Sprintf("%s %s  %s", theme.BadgeStyle.Render("♥"), title, price)
	if selected {
		return theme.SelectedItemStyle.Render(line)
	}
	return theme.ListItemStyle.Render(line)
}
