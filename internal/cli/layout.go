package cli

import (
	"fmt"
	"math"
	"slices"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/bigvalue/pkg/bigvalue"
	"github.com/matzehuels/bigvalue/pkg/panel"
	"github.com/matzehuels/bigvalue/pkg/pipeline"
	"github.com/matzehuels/bigvalue/pkg/render/sink"
)

// layoutCommand creates the layout command, which prints the computed layout
// and style dictionaries of a panel without rendering it.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		width, height float64
		styles        bool
	)

	cmd := &cobra.Command{
		Use:   "layout <panel-file>",
		Short: "Show the computed layout of a panel",
		Long: `Show the layout the calculator picks for a panel: layout type, font
sizes, chart size and the resulting text and chart boxes.

Use --width and --height to try other panel sizes without editing the file,
and --styles to also print the style dictionaries.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completePanelFiles,
		RunE: func(cmd *cobra.Command, args []string) error {
			props, err := panel.Load(args[0])
			if err != nil {
				return err
			}
			if width > 0 {
				props.Width = width
			}
			if height > 0 {
				props.Height = height
			}

			frame, err := pipeline.NewFrame(props, pipeline.Options{})
			if err != nil {
				return err
			}

			fmt.Println(StyleTitle.Render(fmt.Sprintf("Layout · %s", args[0])))
			fmt.Println(layoutTable(frame))
			if styles {
				l := frame.Layout
				fmt.Println(styleTable("panel", bigvalue.PanelStyles(l)))
				fmt.Println(styleTable("container", bigvalue.ValueAndTitleContainerStyles(l)))
				fmt.Println(styleTable("title", bigvalue.TitleStyles(l)))
				fmt.Println(styleTable("value", bigvalue.ValueStyles(l)))
			}
			printNextStep("Render", "bigvalue render "+args[0])
			return nil
		},
	}

	cmd.Flags().Float64Var(&width, "width", 0, "override the panel width")
	cmd.Flags().Float64Var(&height, "height", 0, "override the panel height")
	cmd.Flags().BoolVar(&styles, "styles", false, "also print the style dictionaries")

	return cmd
}

// layoutRows lists the layout properties shown by the layout and preview commands.
func layoutRows(f sink.Frame) [][]string {
	l := f.Layout
	rows := [][]string{
		{"type", l.Type.String()},
		{"size", fmt.Sprintf("%s × %s", num(l.Width), num(l.Height))},
		{"value font", num(l.ValueFontSize) + "px"},
		{"title font", num(l.TitleFontSize) + "px"},
		{"chart", chartSize(l)},
		{"color mode", string(l.ColorMode)},
		{"graph mode", string(l.GraphMode)},
		{"value color", l.ValueColor},
		{"justify center", strconv.FormatBool(l.JustifyCenter)},
		{"theme", string(l.Theme.Type)},
	}
	if t := f.Placement.Title; t != nil {
		rows = append(rows, []string{"title at", fmt.Sprintf("%s, %s (%s)", num(t.X), num(t.Y), t.Align.TextAnchor())})
	}
	v := f.Placement.Value
	rows = append(rows, []string{"value at", fmt.Sprintf("%s, %s (%s)", num(v.X), num(v.Y), v.Align.TextAnchor())})
	if b := f.Placement.Chart; b != nil {
		rows = append(rows, []string{"chart box", fmt.Sprintf("%s, %s → %s, %s", num(b.Left), num(b.Top), num(b.Right), num(b.Bottom))})
	}
	return rows
}

func layoutTable(f sink.Frame) string {
	return newTable("Property", "Value").Rows(layoutRows(f)...).Render()
}

// styleTable renders a style dictionary with its properties sorted.
func styleTable(name string, s bigvalue.Style) string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	rows := make([][]string, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, []string{k, s[k]})
	}
	return newTable(name, "").Rows(rows...).Render()
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return styleHeader.Padding(0, 1)
			case col == 0:
				return StyleHighlight.Padding(0, 1)
			default:
				return StyleValue.Padding(0, 1)
			}
		})
}

func chartSize(l bigvalue.Layout) string {
	if !l.Type.HasChart() {
		return "none"
	}
	return fmt.Sprintf("%s × %s", num(l.ChartWidth), num(l.ChartHeight))
}

// num formats a length with at most two decimals.
func num(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}
