package dashboard

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	sessiondto "careercompass/internal/modules/session/dto"
	trackerdomain "careercompass/internal/modules/tracker/domain"
	trackerdto "careercompass/internal/modules/tracker/dto"
	apperrors "careercompass/internal/platform/errors"
	"careercompass/internal/ui/components"
	"careercompass/internal/ui/theme"
)

// ─── ports ───────────────────────────────────────────────────────────────────

type TrackerPort interface {
	LoadProfile(ctx context.Context) (trackerdto.ProfileOutput, error)
	ListActivities(ctx context.Context) ([]trackerdto.ActivityOutput, error)
	AddActivity(ctx context.Context, name, category string) (trackerdto.ActivityOutput, error)
	AnalyzeDrift(ctx context.Context, targetCareer string, activities []trackerdto.ActivityOutput) (trackerdto.DriftOutput, error)
	Categories() []trackerdto.CategoryOutput
}

type SessionPort interface {
	Logout(ctx context.Context) error
}

// ─── messages ────────────────────────────────────────────────────────────────
// Every result carries the mount generation it was issued under; results
// from an earlier mount are dropped.

type ProfileLoadedMsg struct {
	Gen     uint64
	Profile trackerdto.ProfileOutput
	Err     error
}

type ActivitiesLoadedMsg struct {
	Gen        uint64
	Activities []trackerdto.ActivityOutput
	Err        error
}

type ActivitySavedMsg struct {
	Gen      uint64
	Activity trackerdto.ActivityOutput
	Err      error
}

type DriftAnalyzedMsg struct {
	Gen    uint64
	Seq    uint64
	Result trackerdto.DriftOutput
	Err    error
}

type loggedOutMsg struct{ err error }

// LogoutMsg tells the root model the session is gone.
type LogoutMsg struct{}

// ─── focus ───────────────────────────────────────────────────────────────────

type focus int

const (
	focusNone focus = iota
	focusName
	focusCategory
)

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	tracker TrackerPort
	session SessionPort
	log     *zap.Logger

	gen          uint64
	studentID    string
	name         string
	targetCareer string
	activities   []trackerdto.ActivityOutput
	categories   []trackerdto.CategoryOutput
	categoryIdx  int

	nameInput textinput.Model
	focus     focus
	logView   viewport.Model

	drift     trackerdto.DriftOutput
	hasDrift  bool
	sequencer trackerdomain.DriftSequencer

	width  int
	height int
}

func New(tracker TrackerPort, session SessionPort, log *zap.Logger) Model {
	if log == nil {
		log = zap.NewNop()
	}
	ti := textinput.New()
	ti.Placeholder = "e.g. React Hooks Deep Dive"
	ti.CharLimit = 256

	vp := viewport.New(0, 0)

	m := Model{
		tracker:   tracker,
		session:   session,
		log:       log,
		nameInput: ti,
		logView:   vp,
	}
	if tracker != nil {
		m.categories = tracker.Categories()
	}
	for i, c := range m.categories {
		if c.ID == string(trackerdomain.DefaultCategory) {
			m.categoryIdx = i
		}
	}
	return m
}

// Mount resets the view for the stored session and starts the profile and
// activity fetches. The two fetches resolve independently.
func (m Model) Mount(s sessiondto.SessionOutput) (Model, tea.Cmd) {
	fresh := New(m.tracker, m.session, m.log)
	fresh.gen = m.gen + 1
	fresh.width, fresh.height = m.width, m.height
	fresh.studentID = s.StudentID
	fresh.name = s.StudentName
	fresh.targetCareer = s.TargetCareer
	fresh.resize()
	return fresh, fresh.refreshCmd()
}

func (m Model) refreshCmd() tea.Cmd {
	if m.tracker == nil {
		return nil
	}
	tracker, gen := m.tracker, m.gen
	return tea.Batch(
		func() tea.Msg {
			p, err := tracker.LoadProfile(context.Background())
			return ProfileLoadedMsg{Gen: gen, Profile: p, Err: err}
		},
		func() tea.Msg {
			acts, err := tracker.ListActivities(context.Background())
			return ActivitiesLoadedMsg{Gen: gen, Activities: acts, Err: err}
		},
	)
}

// Capturing reports whether keystrokes go to a form field.
func (m Model) Capturing() bool { return m.focus != focusNone }

func (m Model) Activities() []trackerdto.ActivityOutput { return m.activities }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case ProfileLoadedMsg:
		if msg.Gen != m.gen {
			return m, nil
		}
		if msg.Err != nil {
			m.log.Warn("fetch profile", zap.String("student_id", m.studentID), zap.Error(msg.Err))
			return m, nil
		}
		if msg.Profile.Name != "" {
			m.name = msg.Profile.Name
		}
		if msg.Profile.TargetCareer != "" {
			m.targetCareer = msg.Profile.TargetCareer
		}
		return m, nil

	case ActivitiesLoadedMsg:
		if msg.Gen != m.gen {
			return m, nil
		}
		if msg.Err != nil {
			m.log.Warn("fetch activities", zap.String("student_id", m.studentID), zap.Error(msg.Err))
			return m, nil
		}
		m.activities = append([]trackerdto.ActivityOutput(nil), msg.Activities...)
		m.refreshLog()
		return m, nil

	case ActivitySavedMsg:
		if msg.Gen != m.gen {
			return m, nil
		}
		if msg.Err != nil {
			m.log.Warn("save activity", zap.Error(msg.Err))
			return m, components.ShowAlert("Error", apperrors.UserMessage(msg.Err, "Failed to save activity"))
		}
		m.activities = append(m.activities, msg.Activity)
		m.nameInput.SetValue("")
		m.refreshLog()
		m.logView.GotoBottom()
		return m, nil

	case DriftAnalyzedMsg:
		if msg.Gen != m.gen || !m.sequencer.Apply(msg.Seq) {
			return m, nil
		}
		if msg.Err != nil {
			m.log.Warn("analyze drift", zap.Uint64("seq", msg.Seq), zap.Error(msg.Err))
			return m, components.ShowAlert("Error", apperrors.ConnectivityMessage)
		}
		m.drift = msg.Result
		m.hasDrift = true
		return m, nil

	case loggedOutMsg:
		if msg.err != nil {
			m.log.Error("logout", zap.Error(msg.err))
			return m, components.ShowAlert("Error", "Failed to log out")
		}
		return m, func() tea.Msg { return LogoutMsg{} }

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.focus == focusName {
		var cmd tea.Cmd
		m.nameInput, cmd = m.nameInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch m.focus {
	case focusName, focusCategory:
		switch msg.String() {
		case "esc":
			m.setFocus(focusNone)
			return m, nil
		case "tab", "shift+tab":
			if m.focus == focusName {
				m.setFocus(focusCategory)
			} else {
				m.setFocus(focusName)
			}
			return m, nil
		case "enter":
			return m.AddActivity(m.nameInput.Value(), "")
		}
		if m.focus == focusCategory {
			switch msg.String() {
			case "left", "h", "up", "k":
				m.cycleCategory(-1)
			case "right", "l", "down", "j", " ":
				m.cycleCategory(1)
			}
			return m, nil
		}
		var cmd tea.Cmd
		m.nameInput, cmd = m.nameInput.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "a", "i":
		m.setFocus(focusName)
		return m, textinput.Blink
	case "c":
		m.setFocus(focusCategory)
		return m, nil
	case "d":
		return m.AnalyzeDrift()
	case "r":
		return m.Refresh()
	case "l":
		return m.Logout()
	}
	var cmd tea.Cmd
	m.logView, cmd = m.logView.Update(msg)
	return m, cmd
}

// AddActivity submits name under category, or the selected category when
// category is empty. A blank name issues nothing.
func (m Model) AddActivity(name, category string) (Model, tea.Cmd) {
	name = strings.TrimSpace(name)
	if name == "" || m.tracker == nil {
		return m, nil
	}
	if category == "" {
		category = m.selectedCategory()
	}
	tracker, gen := m.tracker, m.gen
	return m, func() tea.Msg {
		act, err := tracker.AddActivity(context.Background(), name, category)
		return ActivitySavedMsg{Gen: gen, Activity: act, Err: err}
	}
}

// AnalyzeDrift sends the target career and a snapshot of the activity list.
func (m Model) AnalyzeDrift() (Model, tea.Cmd) {
	if m.tracker == nil {
		return m, nil
	}
	seq := m.sequencer.Issue()
	tracker, gen, target := m.tracker, m.gen, m.targetCareer
	snapshot := append([]trackerdto.ActivityOutput(nil), m.activities...)
	return m, func() tea.Msg {
		res, err := tracker.AnalyzeDrift(context.Background(), target, snapshot)
		return DriftAnalyzedMsg{Gen: gen, Seq: seq, Result: res, Err: err}
	}
}

func (m Model) Refresh() (Model, tea.Cmd) {
	return m, m.refreshCmd()
}

// Logout clears the stored session; the backend is not told.
func (m Model) Logout() (Model, tea.Cmd) {
	if m.session == nil {
		return m, func() tea.Msg { return LogoutMsg{} }
	}
	session := m.session
	return m, func() tea.Msg {
		return loggedOutMsg{err: session.Logout(context.Background())}
	}
}

func (m *Model) setFocus(f focus) {
	m.focus = f
	if f == focusName {
		m.nameInput.Focus()
		return
	}
	m.nameInput.Blur()
}

func (m *Model) cycleCategory(delta int) {
	if len(m.categories) == 0 {
		return
	}
	m.categoryIdx = (m.categoryIdx + delta + len(m.categories)) % len(m.categories)
}

func (m Model) selectedCategory() string {
	if len(m.categories) == 0 {
		return string(trackerdomain.DefaultCategory)
	}
	return m.categories[m.categoryIdx].ID
}

func (m *Model) resize() {
	h := m.height - 14
	if h < 5 {
		h = 5
	}
	w := m.width/3 - 6
	if w < 24 {
		w = 24
	}
	m.logView.Width = w
	m.logView.Height = h
	m.refreshLog()
}

func (m *Model) refreshLog() {
	if len(m.activities) == 0 {
		m.logView.SetContent(theme.Muted.Render("No activities logged."))
		return
	}
	lines := make([]string, len(m.activities))
	for i, a := range m.activities {
		lines[i] = a.Name + "  " + theme.Chip.Render(a.Category)
	}
	m.logView.SetContent(strings.Join(lines, "\n"))
}

// ─── view ────────────────────────────────────────────────────────────────────

var scoreStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)

func (m Model) View() string {
	header := theme.Title.Render("🧭 CareerCompass AI") + "  " + theme.Muted.Render("Welcome, "+m.name)

	colW := 0
	if m.width > 0 {
		colW = m.width/3 - 2
	}
	pane := func(active bool) lipgloss.Style {
		s := theme.Pane
		if active {
			s = theme.PaneActive
		}
		if colW > 0 {
			s = s.Width(colW)
		}
		return s
	}

	profile := pane(m.focus != focusNone).Render(m.profileView())
	activity := pane(false).Render(theme.Log.Render("Activity Log") + "\n\n" + m.logView.View())
	insights := pane(false).Render(m.insightsView())

	body := lipgloss.JoinHorizontal(lipgloss.Top, profile, activity, insights)
	footer := theme.Muted.Render("a: add activity  ·  d: analyze drift  ·  r: refresh  ·  l: logout  ·  :: palette  ·  ?: help")
	return lipgloss.JoinVertical(lipgloss.Left, header, "", body, footer)
}

func (m Model) profileView() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Student Profile") + "\n\n")
	sb.WriteString(theme.Muted.Render("Target Career") + "\n")
	sb.WriteString(theme.Hot.Render(m.targetCareer) + "\n\n")
	sb.WriteString(theme.Muted.Render("ADD NEW ACTIVITY") + "\n")
	sb.WriteString(m.marker(focusName) + m.nameInput.View() + "\n")

	label := ""
	if len(m.categories) > 0 {
		label = m.categories[m.categoryIdx].Label
	}
	sb.WriteString(m.marker(focusCategory) + "‹ " + label + " ›\n")
	return sb.String()
}

func (m Model) marker(f focus) string {
	if m.focus == f {
		return theme.Hot.Render("▸ ")
	}
	return "  "
}

func (m Model) insightsView() string {
	var sb strings.Builder
	sb.WriteString(theme.Insight.Render("AI Insights") + "\n\n")
	if !m.hasDrift || !m.drift.HasScore {
		if m.hasDrift && m.drift.Error != "" {
			sb.WriteString(theme.Warn.Render(m.drift.Error) + "\n\n")
		}
		sb.WriteString(theme.Muted.Italic(true).Render("Add matching activities to analyze your progress."))
		if m.sequencer.Pending() {
			sb.WriteString("\n\n" + theme.Muted.Render("Analyzing…"))
		}
		return sb.String()
	}

	tone := theme.Good
	if m.drift.IsDrifting {
		tone = theme.Warn
	}
	sb.WriteString(scoreStyle.Inherit(tone).Render(m.drift.Percent) + "\n")
	sb.WriteString(theme.Muted.Render("ON-TRACK CONFIDENCE") + "\n\n")
	sb.WriteString(tone.Render(m.drift.Message) + "\n")
	if len(m.drift.Suggestions) > 0 {
		sb.WriteString("\n")
		for _, s := range m.drift.Suggestions {
			sb.WriteString("• " + s + "\n")
		}
	}
	if m.sequencer.Pending() {
		sb.WriteString("\n" + theme.Muted.Render("Analyzing…"))
	}
	return sb.String()
}
