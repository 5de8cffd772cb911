package detail

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rapheephat/hiewhub-tui/internal/keys"
	"github.com/rapheephat/hiewhub-tui/internal/model"
	"github.com/rapheephat/hiewhub-tui/internal/theme"
)

// BackMsg signals the parent to navigate back to the catalog.
type BackMsg struct{}

// LoadedMsg carries the loaded product detail page.
type LoadedMsg struct {
	Product    *model.Product
	Related    []model.Product
	IsFavorite bool
}

// ActionMsg signals the parent to execute an action on the current product.
type ActionMsg struct {
	Action    string
	ProductID string
	VendorID  string
}

// Action names emitted by the detail view.
const (
	ActionAddToCart     = "add_to_cart"
	ActionToggleFav     = "toggle_favorite"
	ActionMessageVendor = "message_vendor"
	ActionVisitShop     = "visit_shop"
)

// Model is the product detail view component.
type Model struct {
	product    *model.Product
	related    []model.Product
	isFavorite bool
	viewport   viewport.Model
	keys       *keys.KeyMap
	width      int
	height     int
	loading    bool
}

// New creates a new detail view model.
func New(k *keys.KeyMap, width, height int) Model {
	vp := viewport.New(width, height-2)
	vp.Style = lipgloss.NewStyle()

	return Model{
		viewport: vp,
		keys:     k,
		width:    width,
		height:   height,
	}
}

// Init returns the initial command for the detail view.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the detail view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case LoadedMsg:
		m.product = msg.Product
		m.related = msg.Related
		m.isFavorite = msg.IsFavorite
		m.loading = false
		m.viewport.SetContent(m.renderContent())
		m.viewport.GotoTop()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Back):
			return m, func() tea.Msg {
				return BackMsg{}
			}

		case key.Matches(msg, m.keys.AddToCart):
			if m.product != nil {
				id := m.product.ID
				return m, func() tea.Msg {
					return ActionMsg{Action: ActionAddToCart, ProductID: id}
				}
			}

		case key.Matches(msg, m.keys.Favorite):
			if m.product != nil {
				// Flip locally so the heart updates before the API confirms.
				m.isFavorite = !m.isFavorite
				m.viewport.SetContent(m.renderContent())
				id := m.product.ID
				return m, func() tea.Msg {
					return ActionMsg{Action: ActionToggleFav, ProductID: id}
				}
			}

		case key.Matches(msg, m.keys.MessageSel):
			if m.product != nil {
				id := m.product.ID
				vendorID := m.product.VendorID
				return m, func() tea.Msg {
					return ActionMsg{Action: ActionMessageVendor, ProductID: id, VendorID: vendorID}
				}
			}

		case msg.String() == "S":
			if m.product != nil {
				id := m.product.ID
				vendorID := m.product.VendorID
				return m, func() tea.Msg {
					return ActionMsg{Action: ActionVisitShop, ProductID: id, VendorID: vendorID}
				}
			}
		}
	}

	// Delegate to viewport for scrolling (j/k, up/down, pgup/pgdn)
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the detail view.
func (m Model) View() string {
	if m.loading {
		return m.placeholder("Loading product...")
	}
	if m.product == nil {
		return m.placeholder("No product selected")
	}
	return m.viewport.View()
}

func (m Model) placeholder(text string) string {
	return lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.ColorGray).
		Render(text)
}

// renderContent builds the full detail content string for the viewport.
func (m Model) renderContent() string {
	if m.product == nil {
		return ""
	}

	p := m.product
	var sections []string

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite)
	heart := " "
	if m.isFavorite {
		heart = lipgloss.NewStyle().Foreground(theme.ColorRed).Render(" ♥")
	}
	sections = append(sections, titleStyle.Render(p.Title)+heart)

	priceLine := theme.PriceStyle.Render(fmt.Sprintf("฿%.2f", p.EffectivePrice()))
	if p.DiscountPrice > 0 && p.DiscountPrice < p.Price {
		priceLine += lipgloss.NewStyle().
			Foreground(theme.ColorGray).
			Strikethrough(true).
			Render(fmt.Sprintf("  ฿%.2f", p.Price))
	}
	sections = append(sections, priceLine)
	sections = append(sections, "")

	metaStyle := lipgloss.NewStyle().Foreground(theme.ColorGray)
	valStyle := lipgloss.NewStyle().Foreground(theme.ColorWhite)

	if p.Category != "" {
		sections = append(sections, fmt.Sprintf(
			"%s  %s",
			metaStyle.Render("Category:"),
			valStyle.Render(p.Category),
		))
	}
	if p.Vendor != nil {
		sections = append(sections, fmt.Sprintf(
			"%s    %s",
			metaStyle.Render("Vendor:"),
			valStyle.Render(p.Vendor.DisplayName()),
		))
	}
	if p.OrderCount > 0 {
		sections = append(sections, fmt.Sprintf(
			"%s      %s",
			metaStyle.Render("Sold:"),
			valStyle.Render(fmt.Sprintf("%d", p.OrderCount)),
		))
	}
	if p.Hashtag != "" {
		sections = append(sections, fmt.Sprintf(
			"%s      %s",
			metaStyle.Render("Tags:"),
			lipgloss.NewStyle().Foreground(theme.ColorMagenta).Render(p.Hashtag),
		))
	}

	sepStyle := lipgloss.NewStyle().Foreground(theme.ColorSubtle)
	separator := sepStyle.Render(strings.Repeat("─", min(m.width-4, 80)))
	sections = append(sections, "")
	sections = append(sections, separator)
	sections = append(sections, "")

	descHeaderStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)
	sections = append(sections, descHeaderStyle.Render("Detail"))

	body := p.Detail
	if body == "" {
		body = lipgloss.NewStyle().
			Foreground(theme.ColorGray).
			Italic(true).
			Render("No description")
	}
	sections = append(sections, body)

	if len(m.related) > 0 {
		sections = append(sections, "")
		sections = append(sections, separator)
		sections = append(sections, "")

		relHeaderStyle := lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.ColorWhite)
		sections = append(sections, relHeaderStyle.Render(
			fmt.Sprintf("Related (%d)", len(m.related)),
		))
		sections = append(sections, "")

		for _, r := range m.related {
			line := fmt.Sprintf(
				"• %s  %s",
				r.Title,
				theme.PriceStyle.Render(fmt.Sprintf("฿%.2f", r.EffectivePrice())),
			)
			sections = append(sections, line)
		}
	}

	hints := theme.HelpStyle.Render("a add to cart · f favorite · m message vendor · S visit shop · esc back")
	sections = append(sections, "")
	sections = append(sections, hints)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetLoading sets the loading state.
func (m *Model) SetLoading(loading bool) {
	m.loading = loading
}

// ProductID returns the displayed product's ID, empty when none.
func (m Model) ProductID() string {
	if m.product == nil {
		return ""
	}
	return m.product.ID
}

// SetSize updates the detail view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height - 2
}
