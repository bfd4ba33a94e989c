package app

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	authdto "careercompass/internal/modules/auth/dto"
	sessiondto "careercompass/internal/modules/session/dto"
	trackerdto "careercompass/internal/modules/tracker/dto"
	apperrors "careercompass/internal/platform/errors"
	"careercompass/internal/ui/components"
	"careercompass/internal/ui/theme"
	dashboardview "careercompass/internal/ui/views/dashboard"
	onboardingview "careercompass/internal/ui/views/onboarding"
)

// ─── ports ───────────────────────────────────────────────────────────────────
// Each port is the minimal interface this orchestration layer requires.
// Sub-view ports are defined in their own packages and narrowed further.

type authPort interface {
	Login(ctx context.Context, email, password string) (authdto.AuthOutput, error)
	Register(ctx context.Context, name, email, password, career string) (authdto.AuthOutput, error)
	Careers() []authdto.CareerOutput
}

type sessionPort interface {
	Current(ctx context.Context) (sessiondto.SessionOutput, error)
	Logout(ctx context.Context) error
}

type trackerPort interface {
	LoadProfile(ctx context.Context) (trackerdto.ProfileOutput, error)
	ListActivities(ctx context.Context) ([]trackerdto.ActivityOutput, error)
	AddActivity(ctx context.Context, name, category string) (trackerdto.ActivityOutput, error)
	AnalyzeDrift(ctx context.Context, targetCareer string, activities []trackerdto.ActivityOutput) (trackerdto.DriftOutput, error)
	Categories() []trackerdto.CategoryOutput
}

// ─── screens ─────────────────────────────────────────────────────────────────

type screen int

const (
	screenLoading screen = iota
	screenOnboarding
	screenDashboard
)

// ─── async messages ───────────────────────────────────────────────────────────

type sessionLoadedMsg struct {
	session sessiondto.SessionOutput
	err     error
}

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Add     key.Binding
	Drift   key.Binding
	Refresh key.Binding
	Logout  key.Binding
	Help    key.Binding
	Palette key.Binding
	Quit    key.Binding
	Toggle  key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Add:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add activity")),
		Drift:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "analyze drift")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Logout:  key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "logout")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Toggle:  key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "login/register")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Add, k.Drift, k.Refresh, k.Logout},
		{k.Toggle},
		{k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It routes between onboarding and the
// dashboard, and owns the global alert, help overlay and command palette.
type Model struct {
	session sessionPort
	log     *zap.Logger

	screen     screen
	onboarding onboardingview.Model
	dashboard  dashboardview.Model

	keys     keyMap
	help     help.Model
	showHelp bool
	palette  components.Palette
	alert    components.Alert
	status   string
	width    int
	height   int
}

func NewModel(auth authPort, session sessionPort, tracker trackerPort, log *zap.Logger) Model {
	if log == nil {
		log = zap.NewNop()
	}
	var authV onboardingview.AuthPort
	if auth != nil {
		authV = auth
	}
	var trackerV dashboardview.TrackerPort
	if tracker != nil {
		trackerV = tracker
	}
	var sessionV dashboardview.SessionPort
	if session != nil {
		sessionV = session
	}
	return Model{
		session:    session,
		log:        log,
		screen:     screenLoading,
		onboarding: onboardingview.New(authV),
		dashboard:  dashboardview.New(trackerV, sessionV, log),
		keys:       defaultKeys(),
		help:       help.New(),
		palette:    components.NewPalette(),
		alert:      components.NewAlert(),
	}
}

// Init reads the stored session; nothing touches the backend until it is known.
func (m Model) Init() tea.Cmd {
	return m.loadSessionCmd()
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && k.String() == "ctrl+c" {
		return m, tea.Quit
	}

	// A visible alert blocks every key until acknowledged.
	if _, ok := msg.(tea.KeyMsg); ok && m.alert.Visible() {
		var cmd tea.Cmd
		m.alert, cmd = m.alert.Update(msg)
		return m, cmd
	}

	// The palette owns the keyboard while open; async results still flow
	// to the screens below it.
	if m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		if _, ok := msg.(tea.KeyMsg); ok {
			return m, cmd
		}
		next, screenCmd := m.route(msg)
		return next, tea.Batch(cmd, screenCmd)
	}
	return m.route(msg)
}

func (m Model) route(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.alert.SetWidth(min(m.width-4, 64))
		m.help.Width = m.width
		m.propagateSize()
		return m, nil

	case sessionLoadedMsg:
		if msg.err != nil {
			if !errors.Is(msg.err, apperrors.ErrNoSession) {
				m.log.Warn("load session", zap.Error(msg.err))
			}
			m.screen = screenOnboarding
			return m, m.onboarding.Init()
		}
		return m.enterDashboard(msg.session)

	case onboardingview.AuthenticatedMsg:
		m.status = "signed in as " + msg.Identity.Name
		return m.enterDashboard(sessiondto.SessionOutput{
			StudentID:    msg.Identity.StudentID,
			StudentName:  msg.Identity.Name,
			TargetCareer: msg.Identity.TargetCareer,
		})

	case dashboardview.LogoutMsg:
		m.screen = screenOnboarding
		m.onboarding = m.onboarding.Reset()
		m.status = "logged out"
		return m, m.onboarding.Init()

	case components.AlertMsg:
		m.alert.Show(msg.Title, msg.Body)
		return m, nil

	case components.AlertDismissedMsg:
		return m, nil

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = ""
		return m, nil

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}
		if m.screen == screenDashboard && !m.dashboard.Capturing() {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "?":
				m.showHelp = true
				return m, nil
			case ":":
				return m, m.palette.Open()
			}
		}
	}

	var cmd tea.Cmd
	switch m.screen {
	case screenOnboarding:
		m.onboarding, cmd = m.onboarding.Update(msg)
	case screenDashboard:
		m.dashboard, cmd = m.dashboard.Update(msg)
	}
	return m, cmd
}

func (m Model) enterDashboard(s sessiondto.SessionOutput) (tea.Model, tea.Cmd) {
	m.screen = screenDashboard
	var cmd tea.Cmd
	m.dashboard, cmd = m.dashboard.Mount(s)
	return m, cmd
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	statusBar := m.renderStatusBar()
	contentH := m.height - lipgloss.Height(statusBar)
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case m.alert.Visible():
		content = lipgloss.Place(m.width, contentH, lipgloss.Center, lipgloss.Center, m.alert.View())
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH, lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		content = m.activeView()
	}
	return lipgloss.JoinVertical(lipgloss.Left, content, statusBar)
}

func (m Model) activeView() string {
	switch m.screen {
	case screenOnboarding:
		if m.width > 0 {
			return lipgloss.Place(m.width, max(m.height-2, 1), lipgloss.Center, lipgloss.Center, m.onboarding.View())
		}
		return m.onboarding.View()
	case screenDashboard:
		return m.dashboard.View()
	}
	return theme.Muted.Render("Loading…")
}

func (m Model) renderStatusBar() string {
	left := m.status
	right := theme.Muted.Render("?:help  :::palette  ctrl+c:quit")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── palette execution ────────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	if strings.TrimSpace(input) == "" {
		return m, nil
	}
	if m.screen != screenDashboard {
		m.status = "palette commands need a signed-in session"
		return m, nil
	}
	parts := strings.Fields(input)

	var cmd tea.Cmd
	switch parts[0] {
	case "activity:add":
		if len(parts) < 3 {
			m.status = "usage: activity:add <category> <name>"
			return m, nil
		}
		m.dashboard, cmd = m.dashboard.AddActivity(strings.Join(parts[2:], " "), parts[1])
	case "drift:analyze":
		m.dashboard, cmd = m.dashboard.AnalyzeDrift()
	case "refresh":
		m.dashboard, cmd = m.dashboard.Refresh()
	case "logout":
		m.dashboard, cmd = m.dashboard.Logout()
	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, cmd
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 2}
	m.onboarding, _ = m.onboarding.Update(sz)
	m.dashboard, _ = m.dashboard.Update(sz)
}

func (m Model) loadSessionCmd() tea.Cmd {
	if m.session == nil {
		return func() tea.Msg { return sessionLoadedMsg{err: apperrors.ErrNoSession} }
	}
	session := m.session
	return func() tea.Msg {
		s, err := session.Current(context.Background())
		return sessionLoadedMsg{session: s, err: err}
	}
}
