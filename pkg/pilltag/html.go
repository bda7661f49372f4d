package pilltag

import (
	"bytes"
	"fmt"
	"html/template"
)

var htmlTemplate = template.Must(template.New("pilltag").Parse(`
{{- define "remove" -}}
<button type="button" class="pill-tag__remove" aria-label="Remove {{.Value}}" style="border:0;border-radius:50%;cursor:pointer;padding:0 0.3em;color:{{.S.RemoveColor}};background:{{.S.RemoveBackground}}">×</button>
{{- end -}}
{{- if not .Detached -}}
<style>.pill-tag[data-id="{{.ID}}"] .pill-tag__remove:hover{color:{{.S.RemoveHoverColor}};background:{{.S.RemoveHoverBackground}}}</style>
<span class="pill-tag" data-id="{{.ID}}"{{if .Editable}} data-editable{{end}}{{if .Removable}} data-removable{{end}} style="display:inline-flex;align-items:center;gap:0.25em;padding:0.125em 0.625em;border-radius:{{.S.CornerRadius}}px;font-family:{{.S.FontFamily}};font-size:{{.S.FontSize}};color:{{.S.TextColor}};background:{{if .Editing}}{{.S.EditBackground}}{{else}}{{.S.Background}}{{end}}">
{{- if .Editing -}}
<span class="pill-tag__editor" contenteditable="true">{{.Draft}}</span>
{{- if .Hint}}<span class="pill-tag__hint" style="color:{{.S.PlaceholderColor}}">{{.Placeholder}}</span>{{end -}}
{{- if .Ghost}}<span class="pill-tag__ghost" style="color:{{.S.GhostColor}}">{{.Ghost}}</span>{{end -}}
{{- else -}}
<span class="pill-tag__label">{{.Value}}</span>
{{- if .Removable}}{{template "remove" .}}{{end -}}
{{- end -}}
</span>
{{- end -}}
`))

type htmlView struct {
	ID          string
	Value       string
	Draft       string
	Ghost       string
	Placeholder string
	Editable    bool
	Removable   bool
	Editing     bool
	Detached    bool
	Hint        bool
	S           Styles
}

// RenderHTML renders the tag as an HTML fragment with inline CSS built from
// its Styles. Colours are emitted as #rrggbb. A detached tag renders as "".
func RenderHTML(m *Model) (string, error) {
	s := m.styles
	for _, c := range []*string{
		&s.TextColor, &s.Background, &s.EditBackground,
		&s.RemoveColor, &s.RemoveHoverColor, &s.RemoveBackground, &s.RemoveHoverBackground,
		&s.PlaceholderColor, &s.GhostColor,
	} {
		*c = cssColor(*c)
	}

	view := htmlView{
		ID:          m.id,
		Value:       m.machine.Value(),
		Draft:       m.machine.Draft(),
		Ghost:       m.machine.Prediction().Ghost,
		Placeholder: Placeholder,
		Editable:    m.machine.Editable(),
		Removable:   m.machine.Removable(),
		Editing:     m.machine.Editing(),
		Detached:    m.machine.Detached(),
		Hint:        m.machine.HintVisible(),
		S:           s,
	}

	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("render html: %w", err)
	}
	return buf.String(), nil
}

// cssColor turns a colour token (hex or ANSI index) into #rrggbb. An empty
// token inherits from the page.
func cssColor(token string) string {
	c := colorOf(token)
	if c == nil {
		return "inherit"
	}
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8)
}
