// Package tui is the interactive terminal front end of the search client.
package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mikeboe/search-client/pkg/render"
	"github.com/mikeboe/search-client/pkg/session"
)

type focus int

const (
	focusInput focus = iota
	focusSources
)

const sidebarWidth = 36

type keyMap struct {
	Submit  key.Binding
	Switch  key.Binding
	Up      key.Binding
	Down    key.Binding
	Toggle  key.Binding
	Dismiss key.Binding
	Quit    key.Binding
}

var keys = keyMap{
	Submit:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "search")),
	Switch:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "input/sources")),
	Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Toggle:  key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "expand")),
	Dismiss: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "dismiss")),
	Quit:    key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
}

// resultMsg carries a finished submission back onto the update loop.
type resultMsg struct {
	res session.Result
}

// Model drives a session.Shell. All shell mutations happen in Update.
type Model struct {
	ctx      context.Context
	shell    *session.Shell
	renderer *render.Renderer

	input    textarea.Model
	spinner  spinner.Model
	viewport viewport.Model

	focus    focus
	selected int
	pending  bool
}

func New(ctx context.Context, shell *session.Shell, r *render.Renderer) Model {
	ta := textarea.New()
	ta.Placeholder = "Ask a research question..."
	ta.Prompt = "┃ "
	ta.ShowLineNumbers = false
	ta.CharLimit = 2000
	ta.SetHeight(3)
	ta.KeyMap.InsertNewline.SetEnabled(false)
	ta.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		ctx:      ctx,
		shell:    shell,
		renderer: r,
		input:    ta,
		spinner:  sp,
		viewport: viewport.New(80, 20),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		mainWidth := max(msg.Width-sidebarWidth-2, 20)
		m.input.SetWidth(mainWidth)
		m.viewport.Width = mainWidth
		m.viewport.Height = max(msg.Height-10, 5)
		m.refresh()
		return m, nil

	case resultMsg:
		m.pending = false
		m.shell.Apply(msg.res)
		m.selected = 0
		m.refresh()
		m.viewport.GotoTop()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.Switch):
			m.switchFocus()
			m.refresh()
			return m, nil
		case key.Matches(msg, keys.Dismiss):
			m.shell.Dismiss()
			m.refresh()
			return m, nil
		}

		if m.focus == focusSources {
			return m.updateSources(msg)
		}
		if key.Matches(msg, keys.Submit) {
			cmd := m.submit()
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m Model) updateSources(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	panels := m.shell.View().Panels
	switch {
	case key.Matches(msg, keys.Up):
		if m.selected > 0 {
			m.selected--
		}
	case key.Matches(msg, keys.Down):
		if m.selected < len(panels)-1 {
			m.selected++
		}
	case key.Matches(msg, keys.Toggle):
		if m.selected < len(panels) {
			m.shell.ToggleSource(panels[m.selected].SubQuery)
		}
	default:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	m.refresh()
	return m, nil
}

// submit refuses new work while a search is outstanding.
func (m *Model) submit() tea.Cmd {
	text := m.input.Value()
	if m.pending || m.shell.Busy() || strings.TrimSpace(text) == "" {
		return nil
	}
	m.pending = true
	m.shell.ClearError()
	m.refresh()

	ctx, controller := m.ctx, m.shell.Controller
	return func() tea.Msg {
		res, err := controller.Submit(ctx, text)
		if err != nil {
			return resultMsg{}
		}
		return resultMsg{res: res}
	}
}

func (m *Model) switchFocus() {
	if m.focus == focusInput {
		m.focus = focusSources
		m.input.Blur()
		return
	}
	m.focus = focusInput
	m.input.Focus()
}

func (m *Model) refresh() {
	v := m.shell.View()
	// the spinner line in View already covers the busy state
	v.Busy = false
	selected := -1
	if m.focus == focusSources {
		selected = m.selected
	}
	m.viewport.SetContent(m.renderer.Results(v, selected))
}

func (m Model) View() string {
	v := m.shell.View()

	var main strings.Builder
	main.WriteString(headerStyle.Render("Research Search"))
	main.WriteString("\n")
	main.WriteString(m.input.View())
	main.WriteString("\n")
	if m.pending || v.Busy {
		main.WriteString(m.spinner.View() + " " + render.BusyText)
	}
	main.WriteString("\n")
	main.WriteString(m.viewport.View())

	sidebar := sidebarStyle.Width(sidebarWidth).Render(m.renderer.History(v))
	body := lipgloss.JoinHorizontal(lipgloss.Top, main.String(), sidebar)

	return body + "\n" + helpStyle.Render(m.help())
}

func (m Model) help() string {
	bindings := []key.Binding{keys.Submit, keys.Switch, keys.Dismiss, keys.Quit}
	if m.focus == focusSources {
		bindings = []key.Binding{keys.Up, keys.Down, keys.Toggle, keys.Switch, keys.Quit}
	}
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " • ")
}

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#CDD6F4")).
			Background(lipgloss.Color("#4F46E5")).
			Padding(0, 2).
			MarginBottom(1)

	sidebarStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#45475A")).
			Padding(0, 1).
			MarginLeft(1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C7086")).
			MarginTop(1)
)
