package render

import (
	"html/template"
	"io"
)

var funcs = template.FuncMap{
	"badgeStyle": func(color string) template.CSS {
		if color == "" {
			return ""
		}
		return template.CSS("border-color:" + color + "; color:" + color + ";")
	},
}

var listTemplate = template.Must(template.New("list").Funcs(funcs).Parse(
	`{{- if not .Cards}}<div class="muted">{{.Message}}</div>
{{- else}}{{range .Cards}}
<div class="eventCard" data-key="{{.Key}}">
  <div class="name">{{.Name}}</div>
  <div class="meta">{{range .Badges}}<span class="badge"{{with badgeStyle .Color}} style="{{.}}"{{end}}>{{.Text}}</span>{{end}}</div>
</div>{{end}}
{{- with .Notice}}
<div class="muted small">{{.}}</div>{{end}}{{end}}
`))

var tooltipTemplate = template.Must(template.New("tooltip").Parse(
	`<div class="tname">{{.Name}}</div>
<div class="tmeta">{{range .Lines}}
  <div><b>{{index . 0}}:</b> {{index . 1}}</div>{{end}}
</div>
`))

// ListHTML writes the list as an HTML fragment.
func ListHTML(w io.Writer, l List) error {
	return listTemplate.Execute(w, l)
}

// TooltipHTML writes the tooltip as an HTML fragment.
func TooltipHTML(w io.Writer, t Tooltip) error {
	return tooltipTemplate.Execute(w, t)
}
