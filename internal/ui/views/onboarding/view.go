package onboarding

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	authdto "careercompass/internal/modules/auth/dto"
	apperrors "careercompass/internal/platform/errors"
	"careercompass/internal/ui/components"
	"careercompass/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type AuthPort interface {
	Login(ctx context.Context, email, password string) (authdto.AuthOutput, error)
	Register(ctx context.Context, name, email, password, career string) (authdto.AuthOutput, error)
	Careers() []authdto.CareerOutput
}

// ─── messages ────────────────────────────────────────────────────────────────

// AuthenticatedMsg tells the root model that a session now exists.
type AuthenticatedMsg struct {
	Identity authdto.AuthOutput
}

type AuthResultMsg struct {
	Register bool
	Identity authdto.AuthOutput
	Err      error
}

// ─── fields ──────────────────────────────────────────────────────────────────

type field int

const (
	fieldName field = iota
	fieldEmail
	fieldPassword
	fieldCareer
)

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port       AuthPort
	careers    []authdto.CareerOutput
	register   bool
	name       textinput.Model
	email      textinput.Model
	password   textinput.Model
	careerIdx  int
	focus      field
	hint       string
	submitting bool
	width      int
	height     int
}

func New(port AuthPort) Model {
	name := textinput.New()
	name.Placeholder = "Full name"
	name.CharLimit = 128

	email := textinput.New()
	email.Placeholder = "you@example.com"
	email.CharLimit = 256

	password := textinput.New()
	password.Placeholder = "Password"
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'
	password.CharLimit = 256

	m := Model{
		port:      port,
		name:      name,
		email:     email,
		password:  password,
		focus:     fieldEmail,
		careerIdx: noCareer,
	}
	if port != nil {
		m.careers = port.Careers()
	}
	m.applyFocus()
	return m
}

// Reset returns the form to an empty login state, used after logout.
func (m Model) Reset() Model {
	fresh := New(m.port)
	fresh.width, fresh.height = m.width, m.height
	return fresh
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case AuthResultMsg:
		m.submitting = false
		if msg.Err != nil {
			fallback := "Authentication failed"
			if msg.Register {
				fallback = "Registration failed"
			}
			return m, components.ShowAlert("Error", apperrors.UserMessage(msg.Err, fallback))
		}
		identity := msg.Identity
		return m, func() tea.Msg { return AuthenticatedMsg{Identity: identity} }

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+t":
			m.register = !m.register
			m.hint = ""
			m.focus = m.fields()[0]
			m.applyFocus()
			return m, nil
		case "tab", "down":
			m.moveFocus(1)
			return m, nil
		case "shift+tab", "up":
			m.moveFocus(-1)
			return m, nil
		case "enter":
			return m.submit()
		}
		if m.focus == fieldCareer {
			switch msg.String() {
			case "left", "h":
				m.cycleCareer(-1)
			case "right", "l", " ":
				m.cycleCareer(1)
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.focus {
	case fieldName:
		m.name, cmd = m.name.Update(msg)
	case fieldEmail:
		m.email, cmd = m.email.Update(msg)
	case fieldPassword:
		m.password, cmd = m.password.Update(msg)
	}
	return m, cmd
}

// submit validates presence locally; an incomplete form issues no request.
func (m Model) submit() (Model, tea.Cmd) {
	if m.submitting || m.port == nil {
		return m, nil
	}
	email := strings.TrimSpace(m.email.Value())
	password := m.password.Value()
	name := strings.TrimSpace(m.name.Value())
	career := m.career()

	var missing []string
	if m.register && name == "" {
		missing = append(missing, "name")
	}
	if email == "" {
		missing = append(missing, "email")
	}
	if strings.TrimSpace(password) == "" {
		missing = append(missing, "password")
	}
	if m.register && career == "" {
		missing = append(missing, "career")
	}
	if len(missing) > 0 {
		m.hint = "Please fill in: " + strings.Join(missing, ", ")
		return m, nil
	}

	m.hint = ""
	m.submitting = true
	port := m.port
	if m.register {
		return m, func() tea.Msg {
			out, err := port.Register(context.Background(), name, email, password, career)
			return AuthResultMsg{Register: true, Identity: out, Err: err}
		}
	}
	return m, func() tea.Msg {
		out, err := port.Login(context.Background(), email, password)
		return AuthResultMsg{Identity: out, Err: err}
	}
}

func (m Model) fields() []field {
	if m.register {
		return []field{fieldName, fieldEmail, fieldPassword, fieldCareer}
	}
	return []field{fieldEmail, fieldPassword}
}

func (m *Model) moveFocus(delta int) {
	fields := m.fields()
	idx := 0
	for i, f := range fields {
		if f == m.focus {
			idx = i
		}
	}
	idx = (idx + delta + len(fields)) % len(fields)
	m.focus = fields[idx]
	m.applyFocus()
}

func (m *Model) applyFocus() {
	m.name.Blur()
	m.email.Blur()
	m.password.Blur()
	switch m.focus {
	case fieldName:
		m.name.Focus()
	case fieldEmail:
		m.email.Focus()
	case fieldPassword:
		m.password.Focus()
	}
}

// noCareer marks a register form where no career has been picked yet.
const noCareer = -1

func (m *Model) cycleCareer(delta int) {
	if len(m.careers) == 0 {
		return
	}
	if m.careerIdx == noCareer {
		if delta < 0 {
			m.careerIdx = len(m.careers) - 1
		} else {
			m.careerIdx = 0
		}
		return
	}
	m.careerIdx = (m.careerIdx + delta + len(m.careers)) % len(m.careers)
}

func (m Model) career() string {
	if m.careerIdx < 0 || m.careerIdx >= len(m.careers) {
		return ""
	}
	return m.careers[m.careerIdx].ID
}

// ─── view ────────────────────────────────────────────────────────────────────

var (
	labelStyle    = lipgloss.NewStyle().Foreground(theme.Subtext0).Width(10)
	selectedStyle = lipgloss.NewStyle().Foreground(theme.Base).Background(theme.Lavender).Padding(0, 1)
	optionStyle   = lipgloss.NewStyle().Foreground(theme.Text).Padding(0, 1)
)

func (m Model) View() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("🧭 CareerCompass AI") + "\n")
	if m.register {
		sb.WriteString(theme.Muted.Render("Create your account and pick a target career") + "\n\n")
	} else {
		sb.WriteString(theme.Muted.Render("Welcome back! Sign in to continue") + "\n\n")
	}

	if m.register {
		sb.WriteString(m.row(fieldName, "Name", m.name.View()) + "\n")
	}
	sb.WriteString(m.row(fieldEmail, "Email", m.email.View()) + "\n")
	sb.WriteString(m.row(fieldPassword, "Password", m.password.View()) + "\n")

	if m.register {
		sb.WriteString("\n" + m.row(fieldCareer, "Career", "") + "\n")
		for i, c := range m.careers {
			line := c.Icon + " " + c.Label + "  " + theme.Muted.Render(c.Summary)
			if i == m.careerIdx {
				sb.WriteString("  " + selectedStyle.Render(c.Icon+" "+c.Label) + "  " + theme.Muted.Render(c.Summary) + "\n")
				continue
			}
			sb.WriteString("  " + optionStyle.Render(line) + "\n")
		}
	}

	sb.WriteString("\n")
	if m.hint != "" {
		sb.WriteString(theme.Warn.Render(m.hint) + "\n")
	}
	if m.submitting {
		sb.WriteString(theme.Muted.Render("Submitting…") + "\n")
	}
	action, other := "login", "register"
	if m.register {
		action, other = "create account", "login"
	}
	sb.WriteString(theme.Muted.Render("enter: " + action + "  ·  tab: next field  ·  ctrl+t: switch to " + other))

	pane := theme.PaneActive
	if m.width > 8 {
		pane = pane.Width(min(m.width-4, 72))
	}
	return pane.Render(sb.String())
}

func (m Model) row(f field, label, input string) string {
	marker := "  "
	if m.focus == f {
		marker = theme.Hot.Render("▸ ")
	}
	return marker + labelStyle.Render(label) + input
}
