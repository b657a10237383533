// Command docgen renders the configuration schema tables into the markdown
// reference under docs/config.
package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"text/template"

	"github.com/steffann/dhcp6vppd/pkg/config"
)

const outputDir = "docs/config"

const sectionTemplate = `# {{.Type}}

{{.Doc}}

## Section name

{{.NameDoc}}
{{- if .Keys}}

## Keys
{{- range .Keys}}

### {{.Name}}

{{.Doc}}

| | |
|---|---|
| Type | {{.Type}} |
{{- if .Default}}
| Default | {{.Default}} |
{{- end}}
{{- if .Required}}
| Required | yes |
{{- end}}
{{- end}}
{{- end}}
{{- if .Subsections}}

## Subsections
{{- range .Subsections}}

- [{{.Type}}]({{.Type}}.md){{if .Required}} (required{{if .Multiple}}, multiple allowed{{end}}){{else}}{{if .Multiple}} (multiple allowed){{end}}{{end}}
{{- end}}
{{- end}}
`

func main() {
	tmpl := template.Must(template.New("section").Parse(sectionTemplate))

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		log.Fatalf("Failed to create %s: %v", outputDir, err)
	}

	for _, section := range config.Sections() {
		path := filepath.Join(outputDir, section.Type+".md")
		f, err := os.Create(path)
		if err != nil {
			log.Fatalf("Failed to create %s: %v", path, err)
		}
		if err := tmpl.Execute(f, section); err != nil {
			f.Close()
			log.Fatalf("Failed to render %s: %v", path, err)
		}
		if err := f.Close(); err != nil {
			log.Fatalf("Failed to write %s: %v", path, err)
		}
		fmt.Println("Generated", path)
	}
}
