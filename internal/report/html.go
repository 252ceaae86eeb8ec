package report

import (
	"fmt"
	"html/template"
	"io"

	"go-alttext-generator/pkg/models"
)

// reportTemplate renders records as a self-contained review page: one card
// per image, one row per language. Over-limit alt text is highlighted, not
// hidden.
const reportTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Alt Text Report</title>
<style>
body { font-family: sans-serif; margin: 2em; color: #222; }
.record { border: 1px solid #ccc; border-radius: 6px; padding: 1em; margin-bottom: 1.5em; }
.record h2 { margin-top: 0; font-size: 1em; word-break: break-all; }
.meta { color: #666; font-size: 0.85em; margin-bottom: 0.75em; }
table { border-collapse: collapse; width: 100%; }
th, td { border: 1px solid #ddd; padding: 0.4em 0.6em; text-align: left; vertical-align: top; }
th { background: #f5f5f5; }
.failed { background: #fdecea; }
.overlimit { color: #b00; font-weight: bold; }
</style>
</head>
<body>
<h1>Alt Text Report</h1>
{{range .Records}}
<div class="record">
<h2>{{.ImageReference}}</h2>
<div class="meta">
{{if .Source.PageURL}}Page: {{.Source.PageURL}} &middot; {{end}}Mode: {{.TranslationMethod}} &middot; {{printf "%.2f" .ProcessingTimeSeconds}}s &middot; {{.Timestamp.Format "2006-01-02 15:04:05 MST"}}{{if not .FullySucceeded}} &middot; <strong>partial failure</strong>{{end}}
</div>
<table>
<tr><th>Language</th><th>Type</th><th>Alt Text</th><th>Chars</th><th>Reasoning</th></tr>
{{range .LocalizedOutputs}}
<tr{{if not .Succeeded}} class="failed"{{end}}>
<td>{{.LanguageCode}}</td>
<td>{{.ImageType}}</td>
<td>{{.AltText}}</td>
<td{{if .OverLengthLimit}} class="overlimit"{{end}}>{{.CharacterCount}}</td>
<td>{{.Reasoning}}</td>
</tr>
{{end}}
</table>
</div>
{{end}}
</body>
</html>
`

var htmlTmpl = template.Must(template.New("report").Parse(reportTemplate))

// WriteHTML renders generation records as a standalone HTML review page
func WriteHTML(w io.Writer, records []*models.GenerationRecord) error {
	data := struct {
		Records []*models.GenerationRecord
	}{Records: records}
	if err := htmlTmpl.Execute(w, data); err != nil {
		return fmt.Errorf("failed to render html report: %w", err)
	}
	return nil
}
