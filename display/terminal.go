package display

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dasdy/monoframe/bitmap"
	"github.com/dasdy/monoframe/input"
	"github.com/dasdy/monoframe/model"
)

var (
	screenStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Foreground(lipgloss.Color("87"))
	statusStyle = lipgloss.NewStyle().Faint(true)
)

// Terminal emulates a display in a terminal window. Two pixel rows share one
// character cell using half block glyphs.
type Terminal struct {
	*Memory
}

func NewTerminal(width, height int) (*Terminal, error) {
	mem, err := NewMemory(width, height, model.PageVertical)
	if err != nil {
		return nil, err
	}

	return &Terminal{Memory: mem}, nil
}

// RenderHalfBlocks draws b with one character per 1x2 pixel cell.
func RenderHalfBlocks(b *bitmap.Bitmap) string {
	var sb strings.Builder

	for y := 0; y < b.Height(); y += 2 {
		if y > 0 {
			sb.WriteByte('\n')
		}

		for x := 0; x < b.Width(); x++ {
			top, bottom := b.Get(x, y), b.Get(x, y+1)

			switch {
			case top && bottom:
				sb.WriteRune('█')
			case top:
				sb.WriteRune('▀')
			case bottom:
				sb.WriteRune('▄')
			default:
				sb.WriteByte(' ')
			}
		}
	}

	return sb.String()
}

// TerminalModel is a bubbletea model showing a Terminal display and feeding
// key presses to a handler. Drawing happens inside Update, so the display is
// only touched from the program's goroutine.
type TerminalModel struct {
	term    *Terminal
	handler input.Handler
	status  string
	err     error
}

func NewTerminalModel(term *Terminal, handler input.Handler) TerminalModel {
	return TerminalModel{term: term, handler: handler}
}

func (m TerminalModel) Init() tea.Cmd {
	return nil
}

// Selected returns the text of the last selected entry.
func (m TerminalModel) Selected() string {
	return m.status
}

func (m TerminalModel) Err() error {
	return m.err
}

func (m TerminalModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	var cmd input.Command

	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "down", "j", "n", "right":
		cmd = input.CommandNext
	case "up", "k", "p", "left":
		cmd = input.CommandPrev
	case "enter", " ":
		cmd = input.CommandSelect
	default:
		return m, nil
	}

	selected, err := input.Apply(cmd, m.handler)
	if err != nil {
		m.err = err
	}

	if selected != "" {
		m.status = selected
	}

	return m, nil
}

func (m TerminalModel) View() string {
	b, err := m.term.Bitmap()
	if err != nil {
		return err.Error()
	}

	status := "↑/↓ move · enter select · q quit"
	if m.status != "" {
		status = "selected: " + m.status
	}

	if m.err != nil {
		status = "error: " + m.err.Error()
	}

	return screenStyle.Render(RenderHalfBlocks(b)) + "\n" + statusStyle.Render(status) + "\n"
}
