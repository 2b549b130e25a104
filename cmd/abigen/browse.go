package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/wippyai/abigen/abitype"
	"github.com/wippyai/abigen/codegen"
	"github.com/wippyai/abigen/internal/artifact"
	"github.com/wippyai/abigen/internal/driver"
	"github.com/wippyai/abigen/internal/manifest"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	funcStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	typeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

func newBrowseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse [abigen.toml | pool.mp]",
		Short: "Browse generated units interactively",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			source := ""
			if len(args) == 1 {
				source = args[0]
			}
			p := tea.NewProgram(newBrowseModel(source), tea.WithAltScreen())
			_, err := p.Run()
			return err
		},
	}
}

type browseState int

const (
	stateSelectUnit browseState = iota
	stateShowUnit
	stateInputTypes
)

type browseModel struct {
	err      error
	source   string
	units    []artifact.Unit
	input    textinput.Model
	view     viewport.Model
	selected int
	width    int
	height   int
	adhoc    int
	state    browseState
	loaded   bool
}

type loadedMsg struct {
	err   error
	units []artifact.Unit
}

type generatedMsg struct {
	err  error
	unit artifact.Unit
}

func newBrowseModel(source string) *browseModel {
	ti := textinput.New()
	ti.Prompt = "types: "
	ti.Placeholder = "uint8,bool -> uint8,bool [lib]"
	ti.Width = 60

	return &browseModel{
		source: source,
		input:  ti,
		view:   viewport.New(80, 20),
		width:  80,
		height: 24,
		state:  stateSelectUnit,
	}
}

func (m *browseModel) Init() tea.Cmd {
	return m.load
}

func (m *browseModel) load() tea.Msg {
	units, err := loadUnits(m.source)
	return loadedMsg{units: units, err: err}
}

// loadUnits reads a pool file or builds a manifest; an empty source starts
// with no units.
func loadUnits(source string) ([]artifact.Unit, error) {
	switch {
	case source == "":
		return nil, nil
	case strings.HasSuffix(source, ".mp"):
		return artifact.ReadFile(source)
	default:
		man, err := manifest.Load(source)
		if err != nil {
			return nil, err
		}
		return driver.Build(context.Background(), man, 0)
	}
}

func (m *browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.view.Width = msg.Width
		m.view.Height = max(msg.Height-6, 3)

	case tea.KeyMsg:
		if m.state == stateInputTypes {
			return m.updateInput(msg)
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "up", "k":
			if m.state == stateSelectUnit && m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.state == stateSelectUnit && m.selected < len(m.units)-1 {
				m.selected++
			}

		case "enter":
			if m.state == stateSelectUnit && len(m.units) > 0 {
				m.showUnit()
			}

		case "n":
			m.err = nil
			m.state = stateInputTypes
			m.input.SetValue("")
			return m, m.input.Focus()

		case "esc":
			m.state = stateSelectUnit
			m.err = nil
		}

	case loadedMsg:
		m.loaded = true
		m.err = msg.err
		m.units = msg.units

	case generatedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.state = stateSelectUnit
			return m, nil
		}
		m.units = append(m.units, msg.unit)
		m.selected = len(m.units) - 1
		m.showUnit()
	}

	if m.state == stateShowUnit {
		var cmd tea.Cmd
		m.view, cmd = m.view.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *browseModel) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.input.Blur()
		m.state = stateSelectUnit
		return m, nil
	case "enter":
		m.input.Blur()
		m.adhoc++
		return m, m.generate(m.input.Value(), "adhoc-"+strconv.Itoa(m.adhoc))
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *browseModel) generate(text, name string) tea.Cmd {
	return func() tea.Msg {
		u, err := parseAdhocUnit(name, text)
		if err != nil {
			return generatedMsg{err: err}
		}
		res, err := driver.BuildUnit(u, codegen.Logger())
		return generatedMsg{unit: res, err: err}
	}
}

// parseAdhocUnit reads "given -> target [lib]"; the target list is optional.
func parseAdhocUnit(name, text string) (manifest.Unit, error) {
	text = strings.TrimSpace(text)
	library := false
	if rest, ok := strings.CutSuffix(text, " lib"); ok {
		library = true
		text = strings.TrimSpace(rest)
	}
	givenText, targetText, hasTarget := strings.Cut(text, "->")

	givenStr := splitTypes(givenText)
	targetStr := givenStr
	if hasTarget {
		targetStr = splitTypes(targetText)
	}
	if len(givenStr) == 0 {
		return manifest.Unit{}, fmt.Errorf("no types given")
	}
	if len(givenStr) != len(targetStr) {
		return manifest.Unit{}, fmt.Errorf("%d given types for %d target types", len(givenStr), len(targetStr))
	}

	given, err := abitype.ParseList(givenStr)
	if err != nil {
		return manifest.Unit{}, err
	}
	target, err := abitype.ParseList(targetStr)
	if err != nil {
		return manifest.Unit{}, err
	}
	return manifest.Unit{Name: name, Given: given, Target: target, Library: library}, nil
}

func (m *browseModel) showUnit() {
	u := m.units[m.selected]
	var b strings.Builder
	b.WriteString(typeStyle.Render("// inline"))
	b.WriteString("\n")
	b.WriteString(u.Inline)
	for _, f := range u.Functions {
		b.WriteString("\n")
		b.WriteString(f.Code)
	}
	m.view.SetContent(b.String())
	m.view.GotoTop()
	m.state = stateShowUnit
}

func (m *browseModel) View() string {
	if !m.loaded {
		return "Loading units..."
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("abigen"))
	b.WriteString(" ")
	b.WriteString(m.source)
	b.WriteString("\n\n")

	switch m.state {
	case stateSelectUnit:
		if m.err != nil {
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
			b.WriteString("\n\n")
		}
		if len(m.units) == 0 {
			b.WriteString("No units yet. Press n to generate one.\n")
		}
		for i, u := range m.units {
			line := m.formatUnit(u)
			if i == m.selected {
				b.WriteString(selectedStyle.Render("> " + line))
			} else {
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter show • n new • q quit"))

	case stateShowUnit:
		u := m.units[m.selected]
		b.WriteString(funcStyle.Render(u.Name))
		b.WriteString(fmt.Sprintf(" (%d helpers)\n", len(u.Functions)))
		b.WriteString(m.view.View())
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ scroll • esc back • q quit"))

	case stateInputTypes:
		b.WriteString("Generate a tuple encoder\n\n")
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter generate • esc back"))
	}

	return b.String()
}

func (m *browseModel) formatUnit(u artifact.Unit) string {
	line := u.Name + " (" + strings.Join(u.Given, ", ") + ")"
	if u.Library {
		line += " lib"
	}
	line = runewidth.Truncate(line, max(m.width-12, 10), "…")
	return funcStyle.Render(line) + " " + typeStyle.Render(fmt.Sprintf("%d helpers", len(u.Functions)))
}
