// Package preview renders a composed digest in the terminal, so the
// output can be checked before anything is posted to Slack.
package preview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212")).
			Padding(0, 1)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Padding(0, 1)
)

// Composer produces the digest text on demand. The CLI wires in the
// full collect-score-compose pipeline; tests wire in stubs.
type Composer func() (string, error)

// digestMsg carries a freshly composed digest into the model.
type digestMsg struct {
	text string
	err  error
}

// Model is the Bubble Tea model for the digest preview.
type Model struct {
	compose  Composer
	viewport viewport.Model
	spinner  spinner.Model
	loading  bool
	ready    bool
	err      error
	width    int
	height   int
}

// New creates a preview model around a composer.
func New(compose Composer) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot

	return Model{
		compose: compose,
		spinner: s,
		loading: true,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.refresh())
}

func (m Model) refresh() tea.Cmd {
	return func() tea.Msg {
		text, err := m.compose()
		return digestMsg{text: text, err: err}
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		headerHeight := 2
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-headerHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - headerHeight
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "r":
			m.loading = true
			m.err = nil
			return m, tea.Batch(m.spinner.Tick, m.refresh())
		}

	case digestMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil && m.ready {
			m.viewport.SetContent(msg.text)
			m.viewport.GotoTop()
		} else if msg.err == nil {
			// Window size not seen yet; stash content in a fresh viewport.
			m.viewport = viewport.New(80, 24)
			m.viewport.SetContent(msg.text)
			m.ready = true
		}
		return m, nil

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("govlens digest preview"))
	b.WriteString("\n")

	switch {
	case m.loading:
		b.WriteString(statusStyle.Render(fmt.Sprintf("%s composing...", m.spinner.View())))
	case m.err != nil:
		b.WriteString(errorStyle.Render("error: " + m.err.Error()))
	default:
		b.WriteString(m.viewport.View())
	}

	b.WriteString("\n")
	b.WriteString(statusStyle.Render("r refresh · q quit"))
	return b.String()
}
