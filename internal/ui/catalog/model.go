package catalog

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rapheephat/hiewhub-tui/internal/keys"
	"github.com/rapheephat/hiewhub-tui/internal/model"
	"github.com/rapheephat/hiewhub-tui/internal/store"
	"github.com/rapheephat/hiewhub-tui/internal/theme"
)

// ProductsLoadedMsg is sent when products have been loaded from the cache.
type ProductsLoadedMsg struct {
	Products []model.Product
}

// SelectedProductMsg is sent when the user opens a product.
type SelectedProductMsg struct {
	ProductID string
}

// RequestProductMsg is sent from a shop storefront when the user wants
// to ask the shop for a product it does not list.
type RequestProductMsg struct {
	VendorID string
	ShopName string
}

// sortModes defines the available sort modes cycled by s.
var sortModes = []string{
	"created_at",
	"order_count",
	"price",
	"title",
}

// Model is the main catalog view. It renders from the local cache and
// is refreshed whenever the app layer pulls a new page from the API.
type Model struct {
	list        list.Model
	store       store.Store
	keys        *keys.KeyMap
	filter      store.ProductFilter
	sortIndex   int
	searchMode  bool
	searchInput textinput.Model
	width       int
	height      int
}

// New creates a new catalog model backed by the given cache.
func New(s store.Store, k *keys.KeyMap, width, height int) Model {
	delegate := ProductDelegate{}
	l := list.New([]list.Item{}, delegate, width, height-2)
	l.Title = "Products"
	l.SetShowStatusBar(true)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = theme.HeaderStyle

	si := textinput.New()
	si.Placeholder = "search products..."
	si.Prompt = "/ "
	si.Width = width - 4

	return Model{
		list:  l,
		store: s,
		keys:  k,
		filter: store.ProductFilter{
			SortBy:   "created_at",
			SortDesc: true,
		},
		searchInput: si,
		width:       width,
		height:      height,
	}
}

// Init returns a command that loads the initial catalog page.
func (m Model) Init() tea.Cmd {
	return m.LoadProducts()
}

// Update handles messages for the catalog view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ProductsLoadedMsg:
		items := make([]list.Item, len(msg.Products))
		for i, p := range msg.Products {
			items[i] = ProductItem{Product: p}
		}
		cmd := m.list.SetItems(items)
		return m, cmd

	case tea.KeyMsg:
		if m.searchMode {
			return m.handleSearchKeys(msg)
		}
		return m.handleNormalKeys(msg)
	}

	// Delegate to list model for other messages
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// handleSearchKeys processes key input while in search mode.
func (m Model) handleSearchKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searchMode = false
		query := m.searchInput.Value()
		if query != "" {
			m.filter.Query = &query
		} else {
			m.filter.Query = nil
		}
		return m, m.LoadProducts()

	case "esc":
		m.searchMode = false
		m.searchInput.Reset()
		m.filter.Query = nil
		return m, m.LoadProducts()
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

// handleNormalKeys processes key input in normal (non-search) mode.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Select):
		item, ok := m.list.SelectedItem().(ProductItem)
		if !ok {
			return m, nil
		}
		return m, func() tea.Msg {
			return SelectedProductMsg{ProductID: item.Product.ID}
		}

	case key.Matches(msg, m.keys.Search):
		m.searchMode = true
		m.searchInput.Reset()
		return m, m.searchInput.Focus()

	case msg.String() == "s":
		m.sortIndex = (m.sortIndex + 1) % len(sortModes)
		m.filter.SortBy = sortModes[m.sortIndex]
		// Newest-first and best-seller-first read better descending.
		m.filter.SortDesc = m.filter.SortBy == "created_at" || m.filter.SortBy == "order_count"
		return m, m.LoadProducts()

	case msg.String() == "w":
		// Ask the shop for something it does not list yet.
		if m.filter.VendorID == nil {
			break
		}
		vendorID := *m.filter.VendorID
		shopName := m.list.Title
		return m, func() tea.Msg {
			return RequestProductMsg{VendorID: vendorID, ShopName: shopName}
		}
	}

	// Delegate to the list for navigation keys (up/down/pgup/pgdn)
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// SearchMode reports whether the search input has focus, so the root
// model leaves every keystroke to this view.
func (m Model) SearchMode() bool {
	return m.searchMode
}

// SetVendorFilter narrows the catalog to one vendor's storefront.
func (m *Model) SetVendorFilter(vendorID, shopName string) tea.Cmd {
	m.filter.VendorID = &vendorID
	if shopName != "" {
		m.list.Title = shopName
	} else {
		m.list.Title = "Shop"
	}
	return m.LoadProducts()
}

// ClearVendorFilter returns from a storefront to the full catalog.
func (m *Model) ClearVendorFilter() tea.Cmd {
	m.filter.VendorID = nil
	m.list.Title = "Products"
	return m.LoadProducts()
}

// VendorFiltered reports whether a storefront filter is active.
func (m Model) VendorFiltered() bool {
	return m.filter.VendorID != nil
}

// SelectedProduct returns the product under the cursor, nil when the
// list is empty.
func (m Model) SelectedProduct() *model.Product {
	item, ok := m.list.SelectedItem().(ProductItem)
	if !ok {
		return nil
	}
	p := item.Product
	return &p
}

// View renders the catalog view.
func (m Model) View() string {
	if m.searchMode {
		searchBar := lipgloss.NewStyle().
			Foreground(theme.ColorWhite).
			Padding(0, 1).
			Render(m.searchInput.View())
		return lipgloss.JoinVertical(lipgloss.Left, searchBar, m.list.View())
	}

	if len(m.list.Items()) == 0 {
		return m.renderEmptyState()
	}

	return m.list.View()
}

// renderEmptyState shows guidance text when no products are available.
func (m Model) renderEmptyState() string {
	style := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.ColorGray)

	if m.filter.Query != nil {
		return style.Render("No matching products.\nPress / to change the search, esc to clear it.")
	}
	if m.filter.VendorID != nil {
		return style.Render("This shop has no listings yet.\nPress esc to go back.")
	}

	return style.Render("No products yet.\n\nPress r to refresh the catalog.")
}

// LoadProducts returns a tea.Cmd that queries the cache with the
// current filter.
func (m Model) LoadProducts() tea.Cmd {
	filter := m.filter
	s := m.store
	return func() tea.Msg {
		products, err := s.GetProducts(context.Background(), filter)
		if err != nil {
			return ProductsLoadedMsg{Products: nil}
		}
		return ProductsLoadedMsg{Products: products}
	}
}

// SetSize updates the list dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height-2)
	m.searchInput.Width = width - 4
}
