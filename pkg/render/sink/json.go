package sink

import (
	"encoding/json"

	"github.com/matzehuels/bigvalue/pkg/bigvalue"
	"github.com/matzehuels/bigvalue/pkg/errors"
	"github.com/matzehuels/bigvalue/pkg/panel"
)

type jsonOutput struct {
	Layout    bigvalue.Layout `json:"layout"`
	Styles    jsonStyles      `json:"styles"`
	Gradient  *jsonGradient   `json:"gradient,omitempty"`
	Chart     *bigvalue.Chart `json:"chart,omitempty"`
	Placement Placement       `json:"placement"`
}

type jsonStyles struct {
	Panel     bigvalue.Style `json:"panel"`
	Container bigvalue.Style `json:"container"`
	Title     bigvalue.Style `json:"title"`
	Value     bigvalue.Style `json:"value"`
}

type jsonGradient struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// RenderJSON exports the layout, the four style dictionaries, the chart
// instructions and the resolved placement as pretty-printed JSON. The
// gradient stops are included in background color mode.
func RenderJSON(f Frame) ([]byte, error) {
	l := f.Layout
	out := jsonOutput{
		Layout: l,
		Styles: jsonStyles{
			Panel:     bigvalue.PanelStyles(l),
			Container: bigvalue.ValueAndTitleContainerStyles(l),
			Title:     bigvalue.TitleStyles(l),
			Value:     bigvalue.ValueStyles(l),
		},
		Chart:     f.Chart,
		Placement: f.Placement,
	}
	if l.ColorMode == panel.ColorModeBackground {
		from, to := bigvalue.PanelGradient(l)
		out.Gradient = &jsonGradient{From: from, To: to}
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode json")
	}
	return data, nil
}
