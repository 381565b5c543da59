package sink

import (
	"bytes"
	"html/template"

	"github.com/matzehuels/bigvalue/pkg/bigvalue"
	"github.com/matzehuels/bigvalue/pkg/errors"
	"github.com/matzehuels/bigvalue/pkg/textfit"
)

var htmlTemplate = template.Must(template.New("bigvalue").Parse(`<div class="bigvalue" style="{{.Panel}}">
  <div class="bigvalue-text" style="{{.Container}}">
{{- if .Title}}
    <div class="bigvalue-title" style="{{.TitleStyle}}">{{.Title}}</div>
{{- end}}
    <div class="bigvalue-value" style="{{.ValueStyle}}">{{.Value}}</div>
  </div>
{{- if .Chart}}
  <div class="bigvalue-chart" style="{{.ChartStyle}}">{{.Chart}}</div>
{{- end}}
</div>
`))

type htmlPanel struct {
	Panel      template.CSS
	Container  template.CSS
	Title      string
	TitleStyle template.CSS
	Value      string
	ValueStyle template.CSS
	Chart      template.HTML
	ChartStyle template.CSS
}

// RenderHTML renders the panel as nested divs carrying the style
// dictionaries verbatim, with the sparkline inlined as SVG.
func RenderHTML(f Frame, opts ...SVGOption) ([]byte, error) {
	l := f.Layout
	panelStyle := bigvalue.PanelStyles(l)
	panelStyle["font-family"] = textfit.FontFamily
	panelStyle["box-sizing"] = "border-box"

	data := htmlPanel{
		Panel:      template.CSS(panelStyle.CSS()),
		Container:  template.CSS(bigvalue.ValueAndTitleContainerStyles(l).CSS()),
		Title:      f.Value.Title,
		TitleStyle: template.CSS(bigvalue.TitleStyles(l).CSS()),
		Value:      f.Value.Text,
		ValueStyle: template.CSS(bigvalue.ValueStyles(l).CSS()),
	}
	if f.Chart != nil {
		data.Chart = template.HTML(inlineSVG(RenderChartSVG(f.Chart, opts...)))
		data.ChartStyle = template.CSS(f.Chart.Style.CSS())
	}

	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render html")
	}
	return buf.Bytes(), nil
}

// inlineSVG strips the XML declaration so the document can be embedded.
func inlineSVG(doc []byte) []byte {
	if i := bytes.Index(doc, []byte("<svg")); i > 0 {
		return doc[i:]
	}
	return doc
}
