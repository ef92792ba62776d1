package vanilla

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

// TemplatesFS exposes the embedded default template bundle so callers can
// copy and customise it.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}
