package components

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"careercompass/internal/ui/theme"
)

// AlertMsg asks the root model to raise a blocking alert.
type AlertMsg struct {
	Title string
	Body  string
}

// AlertDismissedMsg is emitted once the user acknowledges the alert.
type AlertDismissedMsg struct{}

// ShowAlert returns a command raising an alert.
func ShowAlert(title, body string) tea.Cmd {
	return func() tea.Msg { return AlertMsg{Title: title, Body: body} }
}

var alertStyle = lipgloss.NewStyle().
	BorderStyle(lipgloss.DoubleBorder()).
	BorderForeground(theme.Red).
	Background(theme.Mantle).
	Foreground(theme.Text).
	Padding(1, 2)

// Alert is a modal dialog. While visible it swallows every key except the
// ones that dismiss it.
type Alert struct {
	title   string
	body    string
	visible bool
	width   int
}

func NewAlert() Alert {
	return Alert{}
}

func (a *Alert) Show(title, body string) {
	a.title = title
	a.body = body
	a.visible = true
}

func (a Alert) Visible() bool { return a.visible }

func (a Alert) Body() string { return a.body }

func (a *Alert) SetWidth(w int) { a.width = w }

func (a Alert) Update(msg tea.Msg) (Alert, tea.Cmd) {
	if !a.visible {
		return a, nil
	}
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter", "esc", " ":
			a.visible = false
			return a, func() tea.Msg { return AlertDismissedMsg{} }
		}
	}
	return a, nil
}

func (a Alert) View() string {
	if !a.visible {
		return ""
	}
	var sb strings.Builder
	title := a.title
	if title == "" {
		title = "Alert"
	}
	sb.WriteString(theme.Bad.Render(title) + "\n\n")
	sb.WriteString(a.body + "\n\n")
	sb.WriteString(theme.Muted.Render("enter: OK"))

	w := a.width
	if w < 20 {
		w = 56
	}
	return alertStyle.Width(w - 2).Render(sb.String())
}
