package orders

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rapheephat/hiewhub-tui/internal/keys"
	"github.com/rapheephat/hiewhub-tui/internal/model"
	"github.com/rapheephat/hiewhub-tui/internal/store"
	"github.com/rapheephat/hiewhub-tui/internal/theme"
)

// LoadedMsg carries the user's order history.
type LoadedMsg struct {
	Orders []model.Order
}

// RefreshRequestMsg asks the app layer to re-fetch one order so the
// expanded line items reflect its current fulfillment status.
type RefreshRequestMsg struct {
	OrderID string
}

// Model is the order history view. It renders from the local cache
// first and is refreshed when the app layer pulls from the API.
type Model struct {
	orders   []model.Order
	cursor   int
	expanded bool
	store    store.Store
	keys     *keys.KeyMap
	errMsg   string
	width    int
	height   int
}

// New creates the orders model backed by the given cache.
func New(s store.Store, k *keys.KeyMap, width, height int) Model {
	return Model{store: s, keys: k, width: width, height: height}
}

// Init returns a command that loads cached orders.
func (m Model) Init() tea.Cmd {
	return m.LoadOrders()
}

// LoadOrders returns a tea.Cmd that reads the order cache.
func (m Model) LoadOrders() tea.Cmd {
	s := m.store
	return func() tea.Msg {
		orders, err := s.GetOrders(context.Background())
		if err != nil {
			return LoadedMsg{Orders: nil}
		}
		return LoadedMsg{Orders: orders}
	}
}

// SetError surfaces a failed foreground fetch.
func (m *Model) SetError(msg string) {
	m.errMsg = msg
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages for the orders view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case LoadedMsg:
		m.errMsg = ""
		m.orders = msg.Orders
		if m.cursor >= len(msg.Orders) {
			m.cursor = 0
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.orders)-1 {
				m.cursor++
				m.expanded = false
			}
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
				m.expanded = false
			}
		case key.Matches(msg, m.keys.Select):
			if m.cursor < len(m.orders) {
				m.expanded = !m.expanded
				if m.expanded {
					id := m.orders[m.cursor].ID
					return m, func() tea.Msg { return RefreshRequestMsg{OrderID: id} }
				}
			}
		}
	}
	return m, nil
}

// View renders the order history.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(theme.HeaderStyle.Render("My Orders") + "\n\n")

	if m.errMsg != "" {
		b.WriteString(theme.ErrorStyle.Render(m.errMsg) + "\n\n")
	}

	if len(m.orders) == 0 {
		b.WriteString(lipgloss.NewStyle().
			Width(m.width).
			Align(lipgloss.Center).
			Foreground(theme.ColorGray).
			Render("No orders yet."))
		return b.String()
	}

	for i, o := range m.orders {
		b.WriteString(m.renderOrder(o, i == m.cursor) + "\n")
		if i == m.cursor && m.expanded {
			b.WriteString(m.renderItems(o))
		}
	}
	return b.String()
}

func (m Model) renderOrder(o model.Order, selected bool) string {
	status := theme.OrderStatusStyle(o.Status).Render(o.Status)
	line := fmt.Sprintf(
		"%s  %s  %s  %s",
		shortID(o.ID),
		status,
		theme.PriceStyle.Render(fmt.Sprintf("฿%.2f", o.Total)),
		theme.HelpStyle.Render(o.CreatedAt.Format("2 Jan 2006")),
	)
	if selected {
		return theme.SelectedItemStyle.Render(line)
	}
	return theme.ListItemStyle.Render(line)
}

func (m Model) renderItems(o model.Order) string {
	var b strings.Builder
	itemStyle := lipgloss.NewStyle().Foreground(theme.ColorGray).PaddingLeft(4)
	for _, it := range o.Items {
		b.WriteString(itemStyle.Render(fmt.Sprintf(
			"%s x%d @ ฿%.2f", it.Title, it.Quantity, it.UnitPrice,
		)) + "\n")
	}
	return b.String()
}

// shortID abbreviates a UUID for display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
