package backup

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/cockroachdb/errors"
)

// infoTimeFormat is the timestamp layout used in backup_info.txt.
const infoTimeFormat = "2006-01-02 15:04:05 UTC"

var infoTemplate = template.Must(template.New("info").Funcs(template.FuncMap{
	"utc": func(m *Manifest) string { return m.CreatedAt.UTC().Format(infoTimeFormat) },
}).Parse(`Theme Name: {{.Name}}
Created: {{utc .}}
Saved at: {{.Location}}
Components:
{{- range .Entries}}
- {{.DisplayName}} [{{.Category}}]: {{.Summary}} ({{.Status}})
{{- else}}
- none selected
{{- end}}

Successfully copied files:
{{- range $e := .Entries}}{{range .Files}}
- {{$e.DisplayName}}: {{.Source}} -> {{.RelPath}}
{{- end}}{{end}}
{{- if eq .Copied 0}}
No files were copied
{{- end}}

Skipped files:
{{- range $e := .Entries}}{{range .Skipped}}
- {{$e.DisplayName}}: {{.Path}} ({{.Reason}})
{{- end}}{{range .Errors}}
- {{$e.DisplayName}}: {{.}}
{{- end}}{{end}}
{{- if and (eq .SkippedCount 0) (eq (len .Failed) 0)}}
No files were skipped
{{- end}}

Runtime info:
- USER: {{.Runtime.User}}
- HOME: {{.Runtime.Home}}
- SUDO_USER: {{.Runtime.SudoUser}}
`))

// RenderInfo renders the human-readable backup_info.txt for m.
func RenderInfo(m *Manifest) ([]byte, error) {
	var buf bytes.Buffer
	if err := infoTemplate.Execute(&buf, m); err != nil {
		return nil, errors.Wrapf(err, "rendering %s", InfoFile)
	}
	return buf.Bytes(), nil
}

// WriteSummary prints the completion summary shown after a backup.
func WriteSummary(w io.Writer, m *Manifest) {
	rule := strings.Repeat("=", 60)
	fmt.Fprintf(w, "\n%s\n", rule)
	fmt.Fprintln(w, "BACKUP COMPLETE")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Name: %s\n", m.Name)
	fmt.Fprintf(w, "Saved at: %s\n", m.Location)
	fmt.Fprintf(w, "Components included: %d\n", len(m.Entries))
	fmt.Fprintf(w, "Files successfully copied: %d\n", m.Copied())
	if n := m.SkippedCount(); n > 0 {
		fmt.Fprintf(w, "Files skipped/not found: %d\n", n)
	}
	for _, e := range m.Failed() {
		fmt.Fprintf(w, "Failed: %s\n", e.DisplayName)
	}
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Details are in %s\n", InfoFile)
	if m.Copied() == 0 && len(m.Entries) > 0 {
		fmt.Fprintln(w, "\nWarning: no files were copied. Check the paths and permissions.")
	}
}
