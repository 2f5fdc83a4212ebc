// Package tui provides a terminal user interface for jazzgen
package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jcalhoun/jazzgen/pkg/render"
	"github.com/jcalhoun/jazzgen/pkg/solo"
	"github.com/jcalhoun/jazzgen/pkg/songbook"
)

// Late-night club color scheme
var (
	brassGold  = lipgloss.Color("#D4A017")
	smokeBlue  = lipgloss.Color("#5F9EA0")
	silverGray = lipgloss.Color("#C0C0C0")
	darkGray   = lipgloss.Color("#333333")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(brassGold).
			Background(darkGray).
			Padding(0, 2).
			MarginBottom(1)

	menuStyle = lipgloss.NewStyle().
			Foreground(silverGray).
			PaddingLeft(2)

	selectedStyle = lipgloss.NewStyle().
			Foreground(brassGold).
			Bold(true).
			PaddingLeft(2)

	statusStyle = lipgloss.NewStyle().
			Foreground(smokeBlue).
			PaddingTop(1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(brassGold).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")).
			MarginTop(1)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(brassGold).
			Padding(1, 2)
)

// State represents the current TUI state
type State int

const (
	StateMenu State = iota
	StateFilePicker
	StateGenerating
	StateResult
)

// MenuItem represents a menu option
type MenuItem struct {
	Title       string
	Description string
	SongName    string
	PickFile    bool
	Exit        bool
}

func buildMenu() []MenuItem {
	var items []MenuItem
	for _, name := range songbook.Names() {
		song, err := songbook.Get(name)
		if err != nil {
			continue
		}
		items = append(items, MenuItem{
			Title:       song.Name,
			Description: fmt.Sprintf("%d-chord form at %.0f bpm", len(song.Entries), song.Tempo),
			SongName:    name,
		})
	}
	items = append(items,
		MenuItem{Title: "Open song file…", Description: "Load a progression from a YAML file", PickFile: true},
		MenuItem{Title: "Exit", Description: "Exit the application", Exit: true},
	)
	return items
}

// Model represents the TUI model
type Model struct {
	state      State
	menuItems  []MenuItem
	menuIndex  int
	filePicker filepicker.Model
	spinner    spinner.Model
	songTitle  string
	outputFile string
	err        error
	width      int
	height     int
}

// generationDoneMsg signals generation completion
type generationDoneMsg struct {
	outputFile string
	err        error
}

// Init initializes the TUI model
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick)
}

// New creates a new TUI model
func New() Model {
	fp := filepicker.New()
	fp.AllowedTypes = []string{".yml", ".yaml"}
	fp.CurrentDirectory, _ = os.Getwd()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(brassGold)

	return Model{
		state:      StateMenu,
		menuItems:  buildMenu(),
		menuIndex:  0,
		filePicker: fp,
		spinner:    s,
	}
}

// Update handles TUI updates
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle file picker state first - it needs to receive all messages
	if m.state == StateFilePicker {
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			switch keyMsg.String() {
			case "esc":
				m.state = StateMenu
				return m, nil
			case "q", "ctrl+c":
				return m, tea.Quit
			}
		}

		var cmd tea.Cmd
		m.filePicker, cmd = m.filePicker.Update(msg)

		if didSelect, path := m.filePicker.DidSelectFile(msg); didSelect {
			m.songTitle = filepath.Base(path)
			m.state = StateGenerating
			return m, tea.Batch(m.spinner.Tick, m.generateFromFile(path))
		}

		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.filePicker.Height = msg.Height - 10
		return m, nil

	case tea.KeyMsg:
		switch m.state {
		case StateMenu:
			return m.updateMenu(msg)
		case StateResult:
			return m.updateResult(msg)
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case generationDoneMsg:
		m.state = StateResult
		m.outputFile = msg.outputFile
		m.err = msg.err
		return m, nil
	}

	return m, nil
}

func (m Model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.menuIndex > 0 {
			m.menuIndex--
		}
	case "down", "j":
		if m.menuIndex < len(m.menuItems)-1 {
			m.menuIndex++
		}
	case "enter":
		item := m.menuItems[m.menuIndex]
		if item.Exit {
			return m, tea.Quit
		}
		if item.PickFile {
			m.state = StateFilePicker
			return m, m.filePicker.Init()
		}
		m.songTitle = item.Title
		m.state = StateGenerating
		return m, tea.Batch(m.spinner.Tick, m.generateBuiltin(item.SongName))
	case "q", "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) updateResult(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc":
		m.state = StateMenu
		m.err = nil
		m.songTitle = ""
		m.outputFile = ""
		return m, nil
	case "q", "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) generateBuiltin(name string) tea.Cmd {
	return func() tea.Msg {
		song, err := songbook.Get(name)
		if err != nil {
			return generationDoneMsg{err: err}
		}
		return generate(song)
	}
}

func (m Model) generateFromFile(path string) tea.Cmd {
	return func() tea.Msg {
		song, err := songbook.Load(path)
		if err != nil {
			return generationDoneMsg{err: err}
		}
		return generate(song)
	}
}

func generate(song solo.Song) tea.Msg {
	perf, err := solo.Generate(song, solo.DefaultConfig())
	if err != nil {
		return generationDoneMsg{err: err}
	}

	outputFile := slugify(song.Name) + ".mid"
	if err := render.WriteFile(perf, render.Options{}, outputFile); err != nil {
		return generationDoneMsg{err: err}
	}

	return generationDoneMsg{outputFile: outputFile}
}

func slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = strings.ReplaceAll(s, " ", "-")
	if s == "" {
		s = "solo"
	}
	return s
}

// View renders the TUI
func (m Model) View() string {
	var s strings.Builder

	s.WriteString(asciiLogo())
	s.WriteString("\n")

	switch m.state {
	case StateMenu:
		s.WriteString(m.viewMenu())
	case StateFilePicker:
		s.WriteString(m.viewFilePicker())
	case StateGenerating:
		s.WriteString(m.viewGenerating())
	case StateResult:
		s.WriteString(m.viewResult())
	}

	s.WriteString("\n")
	s.WriteString(helpStyle.Render("↑/↓: navigate • enter: select • q: quit"))

	return s.String()
}

func (m Model) viewMenu() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render(" SELECT A SONG "))
	s.WriteString("\n\n")

	for i, item := range m.menuItems {
		if i == m.menuIndex {
			s.WriteString(selectedStyle.Render(fmt.Sprintf("▸ %s", item.Title)))
			s.WriteString("\n")
			s.WriteString(lipgloss.NewStyle().Foreground(smokeBlue).PaddingLeft(4).Render(item.Description))
		} else {
			s.WriteString(menuStyle.Render(fmt.Sprintf("  %s", item.Title)))
		}
		s.WriteString("\n")
	}

	return boxStyle.Render(s.String())
}

func (m Model) viewFilePicker() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render(" SELECT SONG FILE "))
	s.WriteString("\n\n")
	s.WriteString(m.filePicker.View())
	s.WriteString("\n")
	s.WriteString(helpStyle.Render("esc: back to menu"))

	return s.String()
}

func (m Model) viewGenerating() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render(" GENERATING "))
	s.WriteString("\n\n")
	s.WriteString(fmt.Sprintf("%s Improvising over %s...\n", m.spinner.View(), m.songTitle))
	s.WriteString(statusStyle.Render("  comping + solo → MIDI"))

	return boxStyle.Render(s.String())
}

func (m Model) viewResult() string {
	var s strings.Builder

	if m.err != nil {
		s.WriteString(titleStyle.Render(" ERROR "))
		s.WriteString("\n\n")
		s.WriteString(errorStyle.Render(fmt.Sprintf("✗ Generation failed: %s", m.err.Error())))
	} else {
		s.WriteString(titleStyle.Render(" SUCCESS "))
		s.WriteString("\n\n")
		s.WriteString(successStyle.Render("✓ Performance written!"))
		s.WriteString("\n\n")
		s.WriteString(fmt.Sprintf("Output: %s", filepath.Base(m.outputFile)))
	}

	s.WriteString("\n\n")
	s.WriteString(helpStyle.Render("Press enter to continue"))

	return boxStyle.Render(s.String())
}

func asciiLogo() string {
	logo := `
       _
      (_) __ _ ________   __ _  ___ _ __
      | |/ _` + "`" + ` |_  /_  /  / _` + "`" + ` |/ _ \ '_ \
      | | (_| |/ / / /  | (_| |  __/ | | |
     _/ |\__,_/___/___|  \__, |\___|_| |_|
    |__/                 |___/
`
	return lipgloss.NewStyle().Foreground(brassGold).Render(logo)
}

// Run starts the TUI application
func Run() error {
	p := tea.NewProgram(New(), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
