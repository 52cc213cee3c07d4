package cli

import (
	"fmt"
	"text/template"

	"github.com/iudanet/treesync/internal/client/workspace"
)

const workspaceStatusTemplate = `
=== Working Copy ===

Head:  {{if .Head}}{{.Head}}{{else}}(no commits yet){{end}}
State: {{.State}}
Files: {{.Files}}
{{- if .Changes}}

Local changes:
{{- range .Changes}}
  {{printf "%-9s" .Type}} {{if .From}}{{.From}} -> {{end}}{{.Path}}
{{- end}}
{{- else}}

Working copy is clean.
{{- end}}
`

// renderWorkspaceStatus выводит состояние рабочей копии через io
func (c *Cli) renderWorkspaceStatus(status *workspace.Status) error {
	tmpl, err := template.New("status").Parse(workspaceStatusTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse status template: %w", err)
	}
	return tmpl.Execute(c.io, status)
}
