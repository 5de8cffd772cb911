package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/rapheephat/hiewhub-tui/internal/theme"
)

// Layout manages the terminal frame: a header bar carrying the badge
// counters (the navbar of the storefront), the content area, and a
// status bar with key hints.
type Layout struct {
	Width           int
	Height          int
	HeaderHeight    int
	StatusBarHeight int
}

// NewLayout creates a Layout with the given terminal dimensions.
// HeaderHeight and StatusBarHeight default to 1.
func NewLayout(width, height int) Layout {
	return Layout{
		Width:           width,
		Height:          height,
		HeaderHeight:    1,
		StatusBarHeight: 1,
	}
}

// ContentWidth returns the full available width.
func (l Layout) ContentWidth() int {
	return l.Width
}

// ContentHeight returns the height available for the main content area,
// accounting for the header and status bar.
func (l Layout) ContentHeight() int {
	return l.Height - l.HeaderHeight - l.StatusBarHeight
}

// Badges renders the cart and unread-notification counters. A zero
// counter renders nothing, mirroring the hidden badge in the web navbar.
func Badges(cartCount, unreadCount int) string {
	var parts []string
	if cartCount > 0 {
		parts = append(parts, theme.BadgeStyle.Render(fmt.Sprintf("cart %d", cartCount)))
	}
	if unreadCount > 0 {
		parts = append(parts, theme.BadgeStyle.Render(fmt.Sprintf("inbox %d", unreadCount)))
	}
	if len(parts) == 0 {
		return ""
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

// RenderHeader renders the top header bar: title on the left, badge
// counters and sync status on the right.
func (l Layout) RenderHeader(title string, badges string, syncStatus string) string {
	titleRendered := theme.HeaderStyle.Render(title)

	right := badges
	if syncStatus != "" {
		statusRendered := theme.HeaderStyle.Align(lipgloss.Right).Render(syncStatus)
		if right != "" {
			right = lipgloss.JoinHorizontal(lipgloss.Top, right, statusRendered)
		} else {
			right = statusRendered
		}
	}

	gap := l.Width -
		lipgloss.Width(titleRendered) -
		lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	filler := theme.HeaderStyle.Render(
		lipgloss.NewStyle().
			Width(gap).
			Background(theme.HeaderStyle.GetBackground()).
			Render(""),
	)

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		titleRendered,
		filler,
		right,
	)
}

// RenderStatusBar renders the bottom status bar with keyboard hints.
func (l Layout) RenderStatusBar(hints string) string {
	rendered := theme.StatusBarStyle.Render(hints)

	gap := l.Width - lipgloss.Width(rendered)
	if gap < 0 {
		gap = 0
	}

	filler := theme.StatusBarStyle.Render(
		lipgloss.NewStyle().
			Width(gap).
			Background(theme.StatusBarStyle.GetBackground()).
			Render(""),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, rendered, filler)
}

// RenderWithFrame composes a full terminal view by vertically joining
// the header, content area, and status bar.
func (l Layout) RenderWithFrame(
	header string,
	content string,
	statusBar string,
) string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		content,
		statusBar,
	)
}
