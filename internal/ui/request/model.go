package request

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/rapheephat/hiewhub-tui/internal/api"
	"github.com/rapheephat/hiewhub-tui/internal/theme"
)

// SubmitMsg carries a validated product request for the app layer to
// post.
type SubmitMsg struct {
	Input api.ProductRequestInput
}

// CancelMsg signals the parent to return to the shop page.
type CancelMsg struct{}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	title   string
	details string
	budget  string
	link    string
}

// Model is the request-a-product form shown from a shop storefront.
type Model struct {
	form     *huh.Form
	fb       *formBindings
	vendorID string
	shopName string
	busy     bool
	errMsg   string
	width    int
	height   int
}

// New creates the request form model.
func New(width, height int) Model {
	return Model{fb: &formBindings{}, width: width, height: height}
}

// Start opens a fresh form addressed to the given shop.
func (m *Model) Start(vendorID, shopName string) tea.Cmd {
	m.vendorID = vendorID
	m.shopName = shopName
	m.busy = false
	m.errMsg = ""
	*m.fb = formBindings{}
	m.form = m.buildForm()
	return m.form.Init()
}

// SetError surfaces a failed submission and re-arms the form.
func (m *Model) SetError(msg string) tea.Cmd {
	m.busy = false
	m.errMsg = msg
	m.form = m.buildForm()
	return m.form.Init()
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages for the request form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil || m.busy {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.busy = true
		in := api.ProductRequestInput{
			VendorID:    m.vendorID,
			Title:       strings.TrimSpace(m.fb.title),
			Details:     strings.TrimSpace(m.fb.details),
			ProductLink: strings.TrimSpace(m.fb.link),
		}
		if b, err := strconv.ParseFloat(strings.TrimSpace(m.fb.budget), 64); err == nil {
			in.Budget = b
		}
		return m, func() tea.Msg { return SubmitMsg{Input: in} }
	}
	if m.form.State == huh.StateAborted {
		return m, func() tea.Msg { return CancelMsg{} }
	}

	return m, cmd
}

// View renders the request form.
func (m Model) View() string {
	var parts []string
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)
	parts = append(parts, titleStyle.Render("Request a product from "+m.shopName))

	if m.errMsg != "" {
		parts = append(parts, theme.ErrorStyle.Render(m.errMsg))
	}

	if m.busy {
		parts = append(parts, theme.HelpStyle.Render("sending..."))
	} else if m.form != nil {
		parts = append(parts, m.form.View())
	}

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(strings.Join(parts, "\n"))
}

func (m *Model) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("What are you looking for?").
				Placeholder("e.g. a Seiko Turtle watch").
				Value(&m.fb.title).
				Validate(validateRequired("Title")),
			huh.NewText().
				Title("Details").
				Placeholder("Color, size, model, anything that helps").
				Value(&m.fb.details),
			huh.NewInput().
				Title("Budget (฿)").
				Placeholder("e.g. 15000").
				Value(&m.fb.budget).
				Validate(validateBudget),
			huh.NewInput().
				Title("Reference link").
				Placeholder("URL from another store").
				Value(&m.fb.link),
		),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m Model) formWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 80 {
		w = 80
	}
	return w
}

func (m Model) formHeight() int {
	h := m.height - 8
	if h < 8 {
		h = 8
	}
	return h
}

func validateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
		return nil
	}
}

func validateBudget(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	b, err := strconv.ParseFloat(s, 64)
	if err != nil || b < 0 {
		return fmt.Errorf("Budget must be a number")
	}
	return nil
}
