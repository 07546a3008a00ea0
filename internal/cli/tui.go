package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/moddeps/pkg/errors"
	"github.com/matzehuels/moddeps/pkg/modgraph"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// runTUI runs the full-screen menu until the user quits.
func runTUI(ctx context.Context, g *modgraph.Graph, in io.Reader, out io.Writer) error {
	p := tea.NewProgram(NewMenuModel(g),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}

// =============================================================================
// MenuModel - Full-screen menu
// =============================================================================

// MenuModel is the bubbletea model behind --tui. Reports are rendered below
// the menu; choosing the mod report opens a [ModPickerModel].
type MenuModel struct {
	Graph  *modgraph.Graph
	Cursor int
	Output string
	Height int
	Picker *ModPickerModel
}

// NewMenuModel creates a menu over g.
func NewMenuModel(g *modgraph.Graph) MenuModel {
	return MenuModel{Graph: g}
}

func (m MenuModel) Init() tea.Cmd {
	return nil
}

func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.Picker != nil {
		return m.updatePicker(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(menuItems)-1 {
				m.Cursor++
			}
		case "enter":
			return m.choose(menuItems[m.Cursor].key)
		default:
			for i, it := range menuItems {
				if msg.String() == it.key {
					m.Cursor = i
					return m.choose(it.key)
				}
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height
	}
	return m, nil
}

func (m MenuModel) choose(key string) (tea.Model, tea.Cmd) {
	switch key {
	case actionQuit:
		return m, tea.Quit
	case actionMod:
		p := NewModPickerModel(modChoices(m.Graph))
		if m.Height > 0 {
			p.resize(m.Height)
		}
		m.Picker = &p
		m.Output = ""
		return m, nil
	}
	var b strings.Builder
	runAction(&b, m.Graph, key)
	m.Output = b.String()
	return m, nil
}

func (m MenuModel) updatePicker(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height
	}

	next, _ := m.Picker.Update(msg)
	p := next.(ModPickerModel)
	switch {
	case p.Cancelled:
		m.Picker = nil
	case p.Selected != "":
		var b strings.Builder
		if err := writeModReport(&b, m.Graph, p.Selected); err != nil {
			printWarning(&b, "%s", errors.UserMessage(err))
		}
		m.Output = b.String()
		m.Picker = nil
	default:
		m.Picker = &p
	}
	return m, nil
}

func (m MenuModel) View() string {
	if m.Picker != nil {
		return m.Picker.View()
	}

	var b strings.Builder
	b.WriteString(StyleTitle.Render("Minecraft Mod Dependency Checker"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("%d mods · ↑/↓ navigate  ⏎ select  q quit", m.Graph.Len())))
	b.WriteString("\n\n")

	for i, it := range menuItems {
		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render("▸ " + it.key + "  " + it.label))
		} else {
			b.WriteString(listNormalStyle.Render("  " + it.key + "  " + it.label))
		}
		b.WriteString("\n")
	}

	if m.Output != "" {
		b.WriteString("\n")
		b.WriteString(m.Output)
	}
	return b.String()
}

// modChoices lists installed mods followed by missing dependencies so both
// can be inspected.
func modChoices(g *modgraph.Graph) []string {
	ids := g.IDs()
	for _, m := range g.Missing() {
		ids = append(ids, m.ID)
	}
	return ids
}

// =============================================================================
// ModPickerModel - Interactive mod selection
// =============================================================================

// ModPickerModel lets the user pick a mod id. Typing filters the list by
// substring.
type ModPickerModel struct {
	IDs       []string
	Filter    string
	Cursor    int
	Offset    int
	Height    int
	Selected  string
	Cancelled bool
}

// NewModPickerModel creates a picker over ids.
func NewModPickerModel(ids []string) ModPickerModel {
	return ModPickerModel{IDs: ids, Height: 15}
}

func (m ModPickerModel) Init() tea.Cmd {
	return nil
}

func (m ModPickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		visible := m.visible()
		switch msg.Type {
		case tea.KeyEsc, tea.KeyCtrlC:
			m.Cancelled = true
			return m, tea.Quit
		case tea.KeyUp:
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case tea.KeyDown:
			if m.Cursor < len(visible)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case tea.KeyEnter:
			if len(visible) == 0 {
				return m, nil
			}
			m.Selected = visible[m.Cursor]
			return m, tea.Quit
		case tea.KeyBackspace:
			if m.Filter != "" {
				r := []rune(m.Filter)
				m.setFilter(string(r[:len(r)-1]))
			}
		case tea.KeyRunes:
			m.setFilter(m.Filter + string(msg.Runes))
		}
	case tea.WindowSizeMsg:
		m.resize(msg.Height)
	}
	return m, nil
}

func (m *ModPickerModel) setFilter(f string) {
	m.Filter = f
	m.Cursor = 0
	m.Offset = 0
}

func (m *ModPickerModel) resize(height int) {
	m.Height = max(height-6, 5)
}

// visible returns the ids matching the current filter.
func (m ModPickerModel) visible() []string {
	if m.Filter == "" {
		return m.IDs
	}
	f := strings.ToLower(m.Filter)
	var out []string
	for _, id := range m.IDs {
		if strings.Contains(strings.ToLower(id), f) {
			out = append(out, id)
		}
	}
	return out
}

func (m ModPickerModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Mod"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("type to filter  ↑/↓ navigate  ⏎ select  esc back"))
	b.WriteString("\n")
	b.WriteString(StyleHighlight.Render(iconInfo) + " " + m.Filter)
	b.WriteString("\n\n")

	visible := m.visible()
	if len(visible) == 0 {
		b.WriteString(listDimStyle.Render("  no matching mods"))
		return b.String()
	}

	end := min(m.Offset+m.Height, len(visible))
	for i := m.Offset; i < end; i++ {
		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render("▸ " + visible[i]))
		} else {
			b.WriteString(listNormalStyle.Render("  " + visible[i]))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(visible))))

	return b.String()
}
