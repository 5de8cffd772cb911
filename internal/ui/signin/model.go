package signin

import (
	"fmt"
	"net/mail"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/rapheephat/hiewhub-tui/internal/theme"
)

// LoginSubmitMsg carries validated credentials for the app layer to
// exchange for a session token.
type LoginSubmitMsg struct {
	Email    string
	Password string
}

// RegisterSubmitMsg carries a validated new-account request.
type RegisterSubmitMsg struct {
	Firstname string
	Lastname  string
	Email     string
	Password  string
}

// ResetRequestMsg asks the app layer to start a password reset for the
// given address.
type ResetRequestMsg struct {
	Email string
}

// ResetConfirmMsg carries the emailed reset token and the new password.
type ResetConfirmMsg struct {
	Token    string
	Password string
}

// QuitMsg is dispatched when the user aborts the sign-in form.
type QuitMsg struct{}

type mode int

const (
	modeLogin mode = iota
	modeRegister
	modeResetRequest
	modeResetConfirm
)

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	firstname  string
	lastname   string
	email      string
	password   string
	confirm    string
	resetToken string
}

// Model is the sign-in / registration gate. Nothing else in the app is
// reachable until it emits a LoginSubmitMsg that the app layer accepts.
type Model struct {
	form   *huh.Form
	fb     *formBindings
	mode   mode
	errMsg string
	notice string
	busy   bool
	width  int
	height int
}

// New creates the sign-in model.
func New(width, height int) Model {
	return Model{
		fb:     &formBindings{},
		width:  width,
		height: height,
	}
}

// StartLogin initializes the login form.
func (m *Model) StartLogin() tea.Cmd {
	m.mode = modeLogin
	return m.rearm(m.buildLoginForm())
}

// StartRegister initializes the new-account form.
func (m *Model) StartRegister() tea.Cmd {
	m.mode = modeRegister
	m.errMsg = ""
	m.notice = ""
	return m.rearm(m.buildRegisterForm())
}

// StartResetRequest initializes the forgot-password form.
func (m *Model) StartResetRequest() tea.Cmd {
	m.mode = modeResetRequest
	m.errMsg = ""
	m.notice = ""
	return m.rearm(m.buildResetRequestForm())
}

// StartResetConfirm initializes the token + new-password form, entered
// after the reset email has been sent.
func (m *Model) StartResetConfirm(notice string) tea.Cmd {
	m.mode = modeResetConfirm
	m.errMsg = ""
	m.notice = notice
	m.fb.resetToken = ""
	return m.rearm(m.buildResetConfirmForm())
}

func (m *Model) rearm(form *huh.Form) tea.Cmd {
	m.busy = false
	m.fb.password = ""
	m.fb.confirm = ""
	m.form = form
	return m.form.Init()
}

// SetError shows a server-side failure and re-arms the current form.
func (m *Model) SetError(msg string) tea.Cmd {
	var cmd tea.Cmd
	switch m.mode {
	case modeRegister:
		cmd = m.StartRegister()
	case modeResetRequest:
		cmd = m.StartResetRequest()
	case modeResetConfirm:
		cmd = m.StartResetConfirm("")
	default:
		cmd = m.StartLogin()
	}
	m.errMsg = msg
	m.notice = ""
	return cmd
}

// SetNotice shows a success line above the login form, used after
// registration or a password reset completes.
func (m *Model) SetNotice(msg string) tea.Cmd {
	cmd := m.StartLogin()
	m.errMsg = ""
	m.notice = msg
	return cmd
}

// SetBusy marks a submission in flight so the view can say so.
func (m *Model) SetBusy() {
	m.busy = true
}

// Update handles messages for the sign-in form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil || m.busy {
		return m, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "ctrl+r":
			if m.mode == modeLogin {
				return m, m.StartRegister()
			}
			return m, m.StartLogin()
		case "ctrl+f":
			if m.mode == modeLogin {
				return m, m.StartResetRequest()
			}
		}
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.busy = true
		return m, m.handleSubmit()
	}
	if m.form.State == huh.StateAborted {
		if m.mode != modeLogin {
			// Abandoning a secondary form falls back to sign-in.
			return m, m.StartLogin()
		}
		return m, func() tea.Msg { return QuitMsg{} }
	}

	return m, cmd
}

// View renders the sign-in form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleText := "Sign in to HiewHub"
	switch m.mode {
	case modeRegister:
		titleText = "Create an account"
	case modeResetRequest:
		titleText = "Reset your password"
	case modeResetConfirm:
		titleText = "Choose a new password"
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	var parts []string
	parts = append(parts, titleStyle.Render(titleText))
	if m.notice != "" {
		parts = append(parts, lipgloss.NewStyle().Foreground(theme.ColorGreen).Render(m.notice))
	}
	if m.errMsg != "" {
		parts = append(parts, theme.ErrorStyle.Render(m.errMsg))
	}
	if m.busy {
		parts = append(parts, theme.HelpStyle.Render("contacting server..."))
	} else {
		parts = append(parts, m.form.View())
		parts = append(parts, theme.HelpStyle.Render(m.toggleHint()))
	}

	content := strings.Join(parts, "\n")
	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(content)
}

func (m Model) toggleHint() string {
	switch m.mode {
	case modeLogin:
		return "ctrl+r create an account · ctrl+f forgot password"
	default:
		return "ctrl+r back to sign in"
	}
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) buildLoginForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Placeholder("you@example.com").
				Value(&m.fb.email).
				Validate(validateEmail),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&m.fb.password).
				Validate(validateRequired("Password")),
		),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m *Model) buildRegisterForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("First name").
				Value(&m.fb.firstname).
				Validate(validateRequired("First name")),
			huh.NewInput().
				Title("Last name").
				Value(&m.fb.lastname).
				Validate(validateRequired("Last name")),
			huh.NewInput().
				Title("Email").
				Placeholder("you@example.com").
				Value(&m.fb.email).
				Validate(validateEmail),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&m.fb.password).
				Validate(validatePassword),
			huh.NewInput().
				Title("Confirm password").
				EchoMode(huh.EchoModePassword).
				Value(&m.fb.confirm).
				Validate(func(s string) error {
					if s != m.fb.password {
						return fmt.Errorf("passwords do not match")
					}
					return nil
				}),
		),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m *Model) buildResetRequestForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Placeholder("you@example.com").
				Value(&m.fb.email).
				Validate(validateEmail),
		),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m *Model) buildResetConfirmForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Reset token").
				Placeholder("paste the token from the email").
				Value(&m.fb.resetToken).
				Validate(validateRequired("Reset token")),
			huh.NewInput().
				Title("New password").
				EchoMode(huh.EchoModePassword).
				Value(&m.fb.password).
				Validate(validatePassword),
			huh.NewInput().
				Title("Confirm password").
				EchoMode(huh.EchoModePassword).
				Value(&m.fb.confirm).
				Validate(func(s string) error {
					if s != m.fb.password {
						return fmt.Errorf("passwords do not match")
					}
					return nil
				}),
		),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m Model) handleSubmit() tea.Cmd {
	fb := *m.fb
	switch m.mode {
	case modeRegister:
		return func() tea.Msg {
			return RegisterSubmitMsg{
				Firstname: strings.TrimSpace(fb.firstname),
				Lastname:  strings.TrimSpace(fb.lastname),
				Email:     strings.TrimSpace(fb.email),
				Password:  fb.password,
			}
		}
	case modeResetRequest:
		return func() tea.Msg {
			return ResetRequestMsg{Email: strings.TrimSpace(fb.email)}
		}
	case modeResetConfirm:
		return func() tea.Msg {
			return ResetConfirmMsg{
				Token:    strings.TrimSpace(fb.resetToken),
				Password: fb.password,
			}
		}
	default:
		return func() tea.Msg {
			return LoginSubmitMsg{
				Email:    strings.TrimSpace(fb.email),
				Password: fb.password,
			}
		}
	}
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
	h := m.height - 6
	if h < 10 {
		h = 10
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

func validateEmail(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return fmt.Errorf("Email is required")
	}
	if _, err := mail.ParseAddress(s); err != nil {
		return fmt.Errorf("invalid email address")
	}
	return nil
}

func validatePassword(s string) error {
	if len(s) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}
	return nil
}
