package view

import (
	"io"
	"text/template"
)

const layouts = `
{{- define "catalog" -}}
{{- range .Items}}
[{{.ID}}] {{.Name}}
    {{.Category}}
    Precio: {{.Price}}    Stock: {{.Stock}}
{{- with .Description}}
    {{.}}
{{- end}}
{{end -}}
{{- with .EmptyMessage}}{{.}}
{{end -}}
{{- end -}}

{{- define "product" -}}
[{{.ID}}] {{.Name}}
    {{.Category}}
    Precio: {{.Price}}    Stock: {{.Stock}}
{{- with .Description}}
    {{.}}
{{- end}}
{{end -}}

{{- define "suggestion" -}}
Precio Sugerido: {{.Suggested}}
Precio Mínimo:   {{.Min}}
Precio Promedio: {{.Avg}}
Precio Máximo:   {{.Max}}

Fuentes del Mercado
{{- range .Sources}}
    {{.Source}}    {{.Price}}{{if .URL}}    {{.LinkLabel}}: {{.URL}}{{end}}
{{- end}}
{{end -}}

{{- define "history" -}}
{{- range .}}
#{{.ID}} {{.Product}}    {{.Suggested}}    ({{.Range}}, {{.SourceCount}} fuentes)    {{.CreatedAt}}
{{- end}}
{{end -}}

{{- define "alerts" -}}
{{- range .}}
{{.Product}}    {{.OldPrice}} -> {{.NewPrice}}    {{.Variation}}    {{.CreatedAt}}
{{- end}}
{{end -}}

{{- define "user" -}}
{{.FullName}} <{{.Email}}>
    Rol: {{.Role}}
    Sesión: {{.State}}
{{- with .TokenExpires}}
    Token vence: {{.}}{{if $.TokenExpired}} (vencido){{end}}
{{- end}}
{{end -}}
`

var templates = template.Must(template.New("view").Parse(layouts))

func RenderCatalog(w io.Writer, v CatalogView) error {
	return templates.ExecuteTemplate(w, "catalog", v)
}

func RenderProduct(w io.Writer, card ProductCard) error {
	return templates.ExecuteTemplate(w, "product", card)
}

func RenderSuggestion(w io.Writer, p SuggestionPanel) error {
	return templates.ExecuteTemplate(w, "suggestion", p)
}

func RenderHistory(w io.Writer, rows []HistoryRow) error {
	return templates.ExecuteTemplate(w, "history", rows)
}

func RenderAlerts(w io.Writer, rows []AlertRow) error {
	return templates.ExecuteTemplate(w, "alerts", rows)
}

func RenderUser(w io.Writer, card UserCard) error {
	return templates.ExecuteTemplate(w, "user", card)
}
