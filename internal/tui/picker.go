package tui

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/1broseidon/mediawin/internal/display"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cursorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	selectedStyle = lipgloss.NewStyle().Bold(true)
	dimStyle      = lipgloss.NewStyle().Faint(true)
	helpStyle     = lipgloss.NewStyle().Faint(true).Padding(1, 1, 0, 1)
)

// Selection is the mode and refresh rate chosen in the picker.
type Selection struct {
	Mode display.UniqueMode
	Rate display.RefreshRate
}

// model is the root bubbletea model for the mode picker.
type model struct {
	src        display.Source
	targetRate float64

	modes   []display.UniqueMode
	rates   []display.RefreshRate
	cursor  int
	rateIdx int

	chosen *Selection

	width  int
	height int
}

func newModel(src display.Source, preferredRate float64) model {
	m := model{
		src:        src,
		targetRate: src.Mode(display.ResDesktop).RefreshRate,
		modes:      display.ScreenResolutions(src, preferredRate),
	}
	m.reloadRates()
	return m
}

// reloadRates gathers the rates for the mode under the cursor and points the
// rate cursor at the best fit for the desktop rate.
func (m *model) reloadRates() {
	m.rates = nil
	m.rateIdx = 0
	if len(m.modes) == 0 {
		return
	}

	mode := m.modes[m.cursor]
	m.rates = display.RefreshRates(m.src, mode.Width, mode.Height, mode.Flags)

	best, err := display.DefaultRefreshRate(m.rates, m.targetRate)
	if err != nil {
		return
	}
	for i, r := range m.rates {
		if r == best {
			m.rateIdx = i
			return
		}
	}
}

// Init implements tea.Model.
func (m model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit

		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				m.reloadRates()
			}

		case "down", "j":
			if m.cursor < len(m.modes)-1 {
				m.cursor++
				m.reloadRates()
			}

		case "left", "h":
			if m.rateIdx > 0 {
				m.rateIdx--
			}

		case "right", "l":
			if m.rateIdx < len(m.rates)-1 {
				m.rateIdx++
			}

		case "enter":
			if len(m.modes) > 0 && len(m.rates) > 0 {
				m.chosen = &Selection{
					Mode: m.modes[m.cursor],
					Rate: m.rates[m.rateIdx],
				}
			}
			return m, tea.Quit
		}
	}

	return m, nil
}

// View implements tea.Model.
func (m model) View() string {
	s := titleStyle.Render("mediawin — display modes")
	s += "\n\n"

	if len(m.modes) == 0 {
		s += dimStyle.Render("  no modes detected")
		return s + "\n"
	}

	for i, mode := range m.modes {
		label := fmt.Sprintf("%dx%d", mode.Width, mode.Height)
		if mode.Flags&display.FlagInterlaced != 0 {
			label += "i"
		}

		if i == m.cursor {
			line := cursorStyle.Render("> ") + selectedStyle.Render(label)
			line += dimStyle.Render("  " + m.rateLine())
			s += line + "\n"
		} else {
			s += "  " + label + "\n"
		}
	}

	s += helpStyle.Render("↑/↓ mode · ←/→ refresh rate · enter select · q quit")
	return s + "\n"
}

// rateLine renders the rate carousel for the selected mode.
func (m model) rateLine() string {
	if len(m.rates) == 0 {
		return "no rates"
	}
	out := ""
	for i, r := range m.rates {
		if i > 0 {
			out += "  "
		}
		if i == m.rateIdx {
			out += fmt.Sprintf("[%.2fHz]", r.Rate)
		} else {
			out += fmt.Sprintf("%.2fHz", r.Rate)
		}
	}
	return out
}

// Run opens the interactive mode picker and returns the user's selection,
// or nil when the picker was dismissed.
func Run(src display.Source, preferredRate float64) (*Selection, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return nil, fmt.Errorf("mode picker requires an interactive terminal (stdin/stdout must be TTYs)")
	}

	p := tea.NewProgram(newModel(src, preferredRate), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return nil, err
	}

	if m, ok := final.(model); ok {
		return m.chosen, nil
	}
	return nil, nil
}
