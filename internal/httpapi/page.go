package httpapi

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"wiregen/pkg/types"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = template.Must(template.ParseFS(templateFS, "templates/*.html"))

type indexData struct {
	Models      []types.Model
	MaxUploadMB int64
}

// renderIndex writes the home page. The template is rendered into a buffer so
// a failure can still produce a clean 500.
func renderIndex(w http.ResponseWriter, models []types.Model) error {
	var buf bytes.Buffer
	data := indexData{Models: models, MaxUploadMB: maxUploadBytes >> 20}
	if err := pages.ExecuteTemplate(&buf, "index.html", data); err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, err := buf.WriteTo(w)
	return err
}
