package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/graphkit/pkg/graph"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	detailBoxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorDim).Padding(0, 1)
)

// browseCommand creates the browse command.
func (c *CLI) browseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "browse [file]",
		Short: "Explore a graph interactively",
		Long: `Explore a graph interactively.

The list starts with every node. Enter drills into the neighbors of the
selected node, backspace goes back, q quits.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := c.loadGraph(cmd, args[0])
			if err != nil {
				return err
			}
			p := tea.NewProgram(NewBrowseModel(g, args[0]), tea.WithContext(cmd.Context()), tea.WithAltScreen())
			_, err = p.Run()
			return err
		},
	}
}

// =============================================================================
// BrowseModel - Interactive node browser
// =============================================================================

// browseFrame is one level of the drill-down stack.
type browseFrame struct {
	title  string
	keys   []string
	cursor int
	offset int
}

// BrowseModel is the bubbletea model for graph browsing.
type BrowseModel struct {
	g      *graph.Graph
	stack  []browseFrame
	height int
}

// NewBrowseModel starts browsing at the node list of g.
func NewBrowseModel(g *graph.Graph, title string) BrowseModel {
	return BrowseModel{
		g:      g,
		stack:  []browseFrame{{title: title, keys: g.Nodes()}},
		height: 15,
	}
}

func (m BrowseModel) frame() *browseFrame { return &m.stack[len(m.stack)-1] }

// Current returns the node under the cursor, or "" for an empty list.
func (m BrowseModel) Current() string {
	f := m.frame()
	if len(f.keys) == 0 {
		return ""
	}
	return f.keys[f.cursor]
}

// Depth returns how many times the user drilled in.
func (m BrowseModel) Depth() int { return len(m.stack) - 1 }

func (m BrowseModel) Init() tea.Cmd {
	return nil
}

func (m BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m.move(-1)
		case "down", "j":
			m.move(1)
		case "enter", "l", "right":
			m.drill()
		case "backspace", "h", "left":
			if len(m.stack) > 1 {
				m.stack = m.stack[:len(m.stack)-1]
			}
		}
	case tea.WindowSizeMsg:
		m.height = max(msg.Height-8, 5)
	}
	return m, nil
}

// move shifts the cursor, scrolling the window to keep it visible. The
// stack is copied first so earlier model values stay unchanged.
func (m *BrowseModel) move(delta int) {
	m.stack = append([]browseFrame(nil), m.stack...)
	f := &m.stack[len(m.stack)-1]
	next := f.cursor + delta
	if next < 0 || next >= len(f.keys) {
		return
	}
	f.cursor = next
	if f.cursor < f.offset {
		f.offset = f.cursor
	}
	if f.cursor >= f.offset+m.height {
		f.offset = f.cursor - m.height + 1
	}
}

func (m *BrowseModel) drill() {
	node := m.Current()
	if node == "" {
		return
	}
	keys, err := m.g.Neighbors(node)
	if err != nil || len(keys) == 0 {
		return
	}
	m.stack = append(append([]browseFrame(nil), m.stack...), browseFrame{title: "neighbors of " + node, keys: keys})
}

func (m BrowseModel) View() string {
	f := m.frame()
	var b strings.Builder

	b.WriteString(StyleTitle.Render(f.title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ neighbors  ⌫ back  q quit"))
	b.WriteString("\n\n")

	end := min(f.offset+m.height, len(f.keys))
	rows := make([][]string, 0, end-f.offset)
	for i := f.offset; i < end; i++ {
		cursor := "  "
		if i == f.cursor {
			cursor = "▸ "
		}
		deg, _ := m.g.Degree(f.keys[i])
		rows = append(rows, []string{cursor, f.keys[i], strconv.Itoa(deg)})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Node", "Degree").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if f.offset+row == f.cursor {
				return listSelectedStyle
			}
			return listNormalStyle
		})

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, t.Render(), " ", m.details()))
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", f.cursor+1, len(f.keys))))
	return b.String()
}

// details renders degrees, attributes and neighbor families of the current
// node.
func (m BrowseModel) details() string {
	node := m.Current()
	if node == "" {
		return ""
	}
	var lines []string
	lines = append(lines, StyleHighlight.Render(node))

	if d, err := m.g.AllDegrees(node); err == nil {
		lines = append(lines, StyleDim.Render(fmt.Sprintf("in %d · out %d · undirected %d · loops %d", d.In, d.Out, d.Undirected, d.SelfLoops)))
	}
	if attrs, err := m.g.GetNodeAttributes(node); err == nil && len(attrs) > 0 {
		lines = append(lines, "")
		for _, k := range sortedKeys(attrs) {
			lines = append(lines, StyleDim.Render(k+":")+" "+StyleValue.Render(fmt.Sprint(attrs[k])))
		}
	}

	families := []struct {
		label string
		sel   graph.Selector
	}{
		{"out", graph.SelectOut},
		{"in", graph.SelectIn},
		{"undirected", graph.SelectUndirected},
	}
	for _, fam := range families {
		keys, err := m.g.NeighborKeys(fam.sel, node)
		if err != nil || len(keys) == 0 {
			continue
		}
		lines = append(lines, "", StyleDim.Render(fam.label+" "+iconArrow)+" "+strings.Join(keys, ", "))
	}
	return detailBoxStyle.Render(strings.Join(lines, "\n"))
}
