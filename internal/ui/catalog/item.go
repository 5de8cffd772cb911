package catalog

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rapheephat/hiewhub-tui/internal/model"
	"github.com/rapheephat/hiewhub-tui/internal/theme"
)

// StalenessThreshold defines how old FetchedAt can be before a cached
// product is marked as possibly out of date. Defaults to 5 minutes.
var StalenessThreshold = 5 * time.Minute

// ProductItem wraps a model.Product so it can be used in a bubbles/list.
type ProductItem struct {
	Product model.Product
}

// FilterValue returns the string used for fuzzy filtering.
func (i ProductItem) FilterValue() string { return i.Product.Title }

// Title returns the product title for the list.
func (i ProductItem) Title() string { return i.Product.Title }

// Description returns a short summary line for the list.
func (i ProductItem) Description() string {
	parts := []string{
		i.Product.Category,
		formatPrice(i.Product),
	}
	return strings.Join(parts, " | ")
}

// ProductDelegate implements list.ItemDelegate for rendering catalog rows.
type ProductDelegate struct{}

// Height returns the number of lines each item takes.
func (d ProductDelegate) Height() int { return 1 }

// Spacing returns the number of blank lines between items.
func (d ProductDelegate) Spacing() int { return 0 }

// Update handles per-item messages (unused for now).
func (d ProductDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render draws a single catalog row.
func (d ProductDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	pi, ok := item.(ProductItem)
	if !ok {
		return
	}

	p := pi.Product
	isSelected := index == m.Index()

	catBadge := ""
	if p.Category != "" {
		catBadge = lipgloss.NewStyle().
			Foreground(theme.ColorMagenta).
			Render(strings.ToUpper(p.Category)) + " "
	}

	price := theme.PriceStyle.Render(formatPrice(p))

	saleBadge := ""
	if p.DiscountPrice > 0 && p.DiscountPrice < p.Price {
		saleBadge = lipgloss.NewStyle().
			Foreground(theme.ColorRed).
			Render(" SALE")
	}

	popularity := ""
	if p.OrderCount > 0 {
		popularity = lipgloss.NewStyle().
			Foreground(theme.ColorGray).
			Render(fmt.Sprintf("  %d sold", p.OrderCount))
	}

	staleIndicator := ""
	if !p.FetchedAt.IsZero() && time.Since(p.FetchedAt) > StalenessThreshold {
		staleIndicator = lipgloss.NewStyle().
			Foreground(theme.ColorGray).
			Render(" ●")
	}

	line := fmt.Sprintf(
		"%s%s  %s%s%s%s",
		catBadge, p.Title, price, saleBadge, popularity, staleIndicator,
	)

	if isSelected {
		line = theme.SelectedItemStyle.Render(line)
	} else {
		line = theme.ListItemStyle.Render(line)
	}

	fmt.Fprint(w, line)
}

// formatPrice renders the effective price, showing the struck list
// price when the product is on sale.
func formatPrice(p model.Product) string {
	if p.DiscountPrice > 0 && p.DiscountPrice < p.Price {
		return fmt.Sprintf("฿%.2f (was ฿%.2f)", p.DiscountPrice, p.Price)
	}
	return fmt.Sprintf("฿%.2f", p.Price)
}
