package cart

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rapheephat/hiewhub-tui/internal/keys"
	"github.com/rapheephat/hiewhub-tui/internal/livesync"
	"github.com/rapheephat/hiewhub-tui/internal/model"
	"github.com/rapheephat/hiewhub-tui/internal/theme"
)

// LoadedMsg carries a fresh cart snapshot.
type LoadedMsg struct {
	Items     []model.CartItem
	FetchedAt time.Time
}

// RemoveRequestMsg asks the app layer to remove one cart line.
type RemoveRequestMsg struct {
	VendorProductID string
}

// CheckoutRequestMsg asks the app layer to place an order for the
// current cart contents.
type CheckoutRequestMsg struct{}

// Model is the cart view: the line items, a running total, and a
// checkout action that is unavailable while the cart is empty.
type Model struct {
	items   livesync.Snapshot[model.CartItem]
	cursor  int
	loading bool
	busy    bool
	errMsg  string
	keys    *keys.KeyMap
	width   int
	height  int
}

// New creates the cart model.
func New(k *keys.KeyMap, width, height int) Model {
	return Model{loading: true, keys: k, width: width, height: height}
}

// SetError surfaces a failed foreground fetch or action.
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

// Count returns the number of lines in the current snapshot.
func (m Model) Count() int {
	return len(m.items.Items)
}

// Update handles messages for the cart view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case LoadedMsg:
		m.loading = false
		m.busy = false
		m.errMsg = ""
		m.items.Replace(msg.Items, 0)
		if m.cursor >= len(msg.Items) {
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

	switch {
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.items.Items)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Remove):
		if m.cursor < len(m.items.Items) {
			id := m.items.Items[m.cursor].VendorProductID
			m.busy = true
			return m, func() tea.Msg {
				return RemoveRequestMsg{VendorProductID: id}
			}
		}
	case key.Matches(msg, m.keys.Checkout):
		// Checkout stays inert on an empty cart.
		if m.items.Empty() {
			return m, nil
		}
		m.busy = true
		return m, func() tea.Msg { return CheckoutRequestMsg{} }
	}
	return m, nil
}

// View renders the cart view.
func (m Model) View() string {
	if m.loading {
		return theme.EmptyStateStyle.Render("loading cart...")
	}

	var b strings.Builder
	b.WriteString(theme.HeaderStyle.Render("Cart") + "\n\n")

	if m.errMsg != "" {
		b.WriteString(theme.ErrorStyle.Render(m.errMsg) + "\n\n")
	}

	if m.items.Empty() {
		b.WriteString(lipgloss.NewStyle().
			Width(m.width).
			Align(lipgloss.Center).
			Foreground(theme.ColorGray).
			Render("Your cart is empty.\nBrowse the catalog and press a on a product."))
		return b.String()
	}

	for i, item := range m.items.Items {
		b.WriteString(m.renderLine(item, i == m.cursor) + "\n")
	}

	b.WriteString("\n")
	total := theme.PriceStyle.Render(fmt.Sprintf("Total ฿%.2f", model.CartTotal(m.items.Items)))
	b.WriteString(total + "\n\n")

	if m.busy {
		b.WriteString(theme.HelpStyle.Render("working..."))
	} else {
		b.WriteString(theme.HelpStyle.Render("enter checkout · d remove"))
	}
	return b.String()
}

func (m Model) renderLine(item model.CartItem, selected bool) string {
	name := item.VendorProduct.Title
	if name == "" {
		name = item.VendorProduct.Name
	}
	line := fmt.Sprintf(
		"%s  x%d  %s",
		name,
		item.Quantity,
		theme.PriceStyle.Render(fmt.Sprintf("฿%.2f", item.Subtotal())),
	)
	if selected {
		return theme.SelectedItemStyle.Render(line)
	}
	return theme.ListItemStyle.Render(line)
}
