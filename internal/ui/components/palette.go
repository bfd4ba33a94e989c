package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"careercompass/internal/ui/theme"
)

// PaletteSubmitMsg carries the confirmed command line.
type PaletteSubmitMsg struct{ Input string }

// PaletteCancelMsg is emitted when the palette closes without a command.
type PaletteCancelMsg struct{}

// PaletteCommand describes one palette verb.
type PaletteCommand struct {
	Name    string
	Args    string
	Summary string
}

// Commands understood by the dashboard; app/model.go executePalette
// dispatches on Name.
var PaletteCommands = []PaletteCommand{
	{Name: "activity:add", Args: "<category> <name>", Summary: "log a learning activity"},
	{Name: "drift:analyze", Summary: "ask the backend for a drift score"},
	{Name: "refresh", Summary: "reload profile and activities"},
	{Name: "logout", Summary: "forget the stored session"},
}

const historyLimit = 20

var (
	paletteBox = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Mauve).
			Background(theme.Mantle).
			Foreground(theme.Text).
			Padding(0, 1)
	paletteName = lipgloss.NewStyle().Foreground(theme.Lavender)
	paletteArgs = lipgloss.NewStyle().Foreground(theme.Subtext0)
)

// Palette is a one-line command prompt with completion and history.
type Palette struct {
	input   textinput.Model
	open    bool
	width   int
	history []string
	// cursor indexes history while browsing; len(history) means a fresh line.
	cursor int
}

func NewPalette() Palette {
	in := textinput.New()
	in.Prompt = ": "
	in.Placeholder = "activity:add backend-dev SQL joins"
	in.CharLimit = 256
	return Palette{input: in}
}

func (p Palette) Visible() bool { return p.open }

func (p *Palette) SetWidth(w int) { p.width = w }

// Open shows an empty prompt and returns the cursor focus command.
func (p *Palette) Open() tea.Cmd {
	p.open = true
	p.cursor = len(p.history)
	p.input.Reset()
	return p.input.Focus()
}

func (p *Palette) close() {
	p.open = false
	p.input.Blur()
}

func (p Palette) Update(msg tea.Msg) (Palette, tea.Cmd) {
	if !p.open {
		return p, nil
	}
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "esc":
			p.close()
			return p, func() tea.Msg { return PaletteCancelMsg{} }
		case "enter":
			line := strings.TrimSpace(p.input.Value())
			p.close()
			p.remember(line)
			return p, func() tea.Msg { return PaletteSubmitMsg{Input: line} }
		case "tab":
			p.complete()
			return p, nil
		case "up":
			p.recall(-1)
			return p, nil
		case "down":
			p.recall(1)
			return p, nil
		}
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

// complete fills in the command name when exactly one command matches.
func (p *Palette) complete() {
	matches := p.matches()
	if len(matches) != 1 {
		return
	}
	p.input.SetValue(matches[0].Name + " ")
	p.input.CursorEnd()
}

func (p *Palette) remember(line string) {
	if line == "" {
		return
	}
	if n := len(p.history); n > 0 && p.history[n-1] == line {
		return
	}
	p.history = append(p.history, line)
	if len(p.history) > historyLimit {
		p.history = p.history[len(p.history)-historyLimit:]
	}
}

func (p *Palette) recall(delta int) {
	next := p.cursor + delta
	if next < 0 || next > len(p.history) {
		return
	}
	p.cursor = next
	if next == len(p.history) {
		p.input.SetValue("")
		return
	}
	p.input.SetValue(p.history[next])
	p.input.CursorEnd()
}

// matches lists commands whose name starts with the first typed word.
func (p Palette) matches() []PaletteCommand {
	word := strings.ToLower(strings.TrimSpace(p.input.Value()))
	if i := strings.IndexByte(word, ' '); i >= 0 {
		word = word[:i]
	}
	var out []PaletteCommand
	for _, c := range PaletteCommands {
		if strings.HasPrefix(c.Name, word) {
			out = append(out, c)
		}
	}
	return out
}

func (p Palette) View() string {
	if !p.open {
		return ""
	}
	lines := []string{theme.Insight.Render("Command"), p.input.View(), ""}
	for _, c := range p.matches() {
		usage := paletteName.Render(c.Name)
		if c.Args != "" {
			usage += " " + paletteArgs.Render(c.Args)
		}
		lines = append(lines, "  "+usage+"  "+theme.Muted.Render(c.Summary))
	}
	w := p.width
	if w < 20 {
		w = 64
	}
	return paletteBox.Width(w - 2).Render(strings.Join(lines, "\n"))
}
