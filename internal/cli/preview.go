package cli

import (
	"fmt"
	"math"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/matzehuels/bigvalue/pkg/panel"
	"github.com/matzehuels/bigvalue/pkg/pipeline"
	"github.com/matzehuels/bigvalue/pkg/render/sink"
)

const (
	resizeStep      = 10.0
	resizeStepLarge = 50.0
	minPreviewSize  = 20.0
	maxPreviewCols  = 72
	maxPreviewRows  = 18
)

var sparkBars = []rune("▁▂▃▄▅▆▇█")

// previewCommand creates the preview command, an interactive view of how the
// layout reacts to panel size and mode changes.
func (c *CLI) previewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "preview <panel-file>",
		Short: "Interactively resize a panel and watch its layout change",
		Long: `Open an interactive terminal preview of a panel. When stdout is not a
terminal the initial view is printed once instead.

Keys:
  ←/→  width -/+ 10px (shift: 50px)    ↑/↓  height +/- 10px (shift: 50px)
  g    toggle graph mode                c    toggle color mode
  j    toggle justify mode              t    toggle theme
  r    reset                            q    quit`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completePanelFiles,
		RunE: func(cmd *cobra.Command, args []string) error {
			props, err := panel.Load(args[0])
			if err != nil {
				return err
			}
			m := newPreviewModel(args[0], props)
			if !isTerminal(os.Stdout) {
				fmt.Print(m.View())
				return nil
			}
			_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
			return err
		},
	}
}

// previewModel is the bubbletea model of the preview command.
type previewModel struct {
	path     string
	initial  panel.Props
	props    panel.Props
	frame    sink.Frame
	err      error
	termCols int
}

func newPreviewModel(path string, props panel.Props) previewModel {
	m := previewModel{path: path, initial: props, props: props, termCols: 80}
	m.relayout()
	return m
}

func (m *previewModel) relayout() {
	m.frame, m.err = pipeline.NewFrame(m.props, pipeline.Options{})
}

func (m previewModel) Init() tea.Cmd {
	return nil
}

func (m previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "left", "h":
			m.props.Width = math.Max(minPreviewSize, m.props.Width-resizeStep)
		case "right", "l":
			m.props.Width += resizeStep
		case "shift+left", "H":
			m.props.Width = math.Max(minPreviewSize, m.props.Width-resizeStepLarge)
		case "shift+right", "L":
			m.props.Width += resizeStepLarge
		case "up", "k":
			m.props.Height += resizeStep
		case "down":
			m.props.Height = math.Max(minPreviewSize, m.props.Height-resizeStep)
		case "shift+up", "K":
			m.props.Height += resizeStepLarge
		case "shift+down", "J":
			m.props.Height = math.Max(minPreviewSize, m.props.Height-resizeStepLarge)
		case "g":
			m.props.GraphMode = toggle(m.props.GraphMode, panel.GraphModeLine, panel.GraphModeArea)
		case "c":
			m.props.ColorMode = toggle(m.props.ColorMode, panel.ColorModeValue, panel.ColorModeBackground)
		case "j":
			m.props.JustifyMode = toggle(m.props.JustifyMode, panel.JustifyAuto, panel.JustifyCenter)
		case "t":
			if m.props.Theme.IsLight() {
				m.props.Theme = panel.DarkTheme()
			} else {
				m.props.Theme = panel.LightTheme()
			}
		case "r":
			m.props = m.initial
		default:
			return m, nil
		}
		m.relayout()
	case tea.WindowSizeMsg:
		m.termCols = msg.Width
	}
	return m, nil
}

func (m previewModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Preview · " + m.path))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("←/→ width  ↑/↓ height  g graph  c color  j justify  t theme  r reset  q quit"))
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(styleIconError.Render(iconError) + " " + m.err.Error())
		b.WriteString("\n")
		return b.String()
	}

	cols := min(maxPreviewCols, max(10, m.termCols-4))
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.frame.Layout.ValueColor))
	b.WriteString(border.Render(strings.Join(asciiPanel(m.frame, cols), "\n")))
	b.WriteString("\n")
	b.WriteString(layoutTable(m.frame))
	b.WriteString("\n")
	return b.String()
}

func toggle[T comparable](v, a, b T) T {
	if v == a {
		return b
	}
	return a
}

// asciiPanel draws a character-cell sketch of the frame cols cells wide.
// Terminal cells are about twice as tall as wide, so one row covers two
// columns worth of pixels.
func asciiPanel(f sink.Frame, cols int) []string {
	l := f.Layout
	if cols <= 0 || l.Width <= 0 || l.Height <= 0 {
		return nil
	}
	colPx := l.Width / float64(cols)
	rowPx := colPx * 2
	rows := min(maxPreviewRows, max(1, int(math.Round(l.Height/rowPx))))
	rowPx = l.Height / float64(rows)

	g := newGrid(cols, rows)

	if box := f.Placement.Chart; box != nil && f.Chart != nil {
		c0 := clampInt(int(box.Left/colPx), 0, cols-1)
		c1 := clampInt(int(math.Ceil(box.Right/colPx)), c0+1, cols)
		row := clampInt(int((box.Bottom-1)/rowPx), 0, rows-1)
		values := make([]float64, len(f.Chart.Data))
		for i, p := range f.Chart.Data {
			values[i] = p.Value
		}
		for i, r := range sparkRunes(values, c1-c0) {
			g.set(c0+i, row, string(r))
		}
	}

	if t := f.Placement.Title; t != nil {
		g.text(*t, colPx, rowPx)
	}
	g.text(f.Placement.Value, colPx, rowPx)

	return g.lines()
}

// sparkRunes resamples values to n bars scaled between their min and max.
func sparkRunes(values []float64, n int) []rune {
	if len(values) == 0 || n <= 0 {
		return nil
	}
	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}

	out := make([]rune, n)
	for i := range out {
		idx := 0
		if n > 1 {
			idx = int(math.Round(float64(i) * float64(len(values)-1) / float64(n-1)))
		}
		level := len(sparkBars) / 2
		if hi > lo {
			level = int(math.Round((values[idx] - lo) / (hi - lo) * float64(len(sparkBars)-1)))
		}
		out[i] = sparkBars[level]
	}
	return out
}

// grid is a fixed-size block of terminal cells. A wide rune fills its cell
// and blanks the next one.
type grid struct {
	cols, rows int
	cells      [][]string
}

func newGrid(cols, rows int) *grid {
	cells := make([][]string, rows)
	for r := range cells {
		cells[r] = make([]string, cols)
		for c := range cells[r] {
			cells[r][c] = " "
		}
	}
	return &grid{cols: cols, rows: rows, cells: cells}
}

func (g *grid) set(col, row int, s string) {
	if row < 0 || row >= g.rows || col < 0 || col >= g.cols {
		return
	}
	g.cells[row][col] = s
}

// text writes a text box at its anchor, truncated to the panel width.
func (g *grid) text(t sink.TextBox, colPx, rowPx float64) {
	if t.Text == "" {
		return
	}
	s := runewidth.Truncate(t.Text, g.cols, "…")
	w := runewidth.StringWidth(s)
	col := int(math.Round(t.X/colPx - float64(w)*t.Align.Fraction()))
	col = clampInt(col, 0, g.cols-w)
	row := clampInt(int(t.Y/rowPx), 0, g.rows-1)

	for _, r := range s {
		rw := runewidth.RuneWidth(r)
		if col+rw > g.cols {
			break
		}
		g.set(col, row, string(r))
		for k := 1; k < rw; k++ {
			g.set(col+k, row, "")
		}
		col += rw
	}
}

func (g *grid) lines() []string {
	out := make([]string, g.rows)
	for r, row := range g.cells {
		out[r] = strings.Join(row, "")
	}
	return out
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	return max(lo, min(v, hi))
}

