package services

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"kycadmin/internal/models"
	"kycadmin/internal/notifier"

	"go.uber.org/zap"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Tabs of the shell, in display order.
const (
	TabAnalytics = "analytics"
	TabBusiness  = "business"
	TabUpload    = "upload"
)

var tabs = []struct {
	Key   string
	Label string
	Path  string
}{
	{Key: TabAnalytics, Label: "Analytics", Path: "/analytics"},
	{Key: TabBusiness, Label: "Business", Path: "/business"},
	{Key: TabUpload, Label: "Upload", Path: "/upload"},
}

// Page is what every section template receives. Only the active tab's
// section is rendered.
type Page struct {
	Tab           string
	Notifications []models.Notification
	Data          any
}

type Renderer struct {
	pages map[string]*template.Template
}

var templateFuncs = template.FuncMap{
	"mb": func(f models.FileHandle) string {
		return fmt.Sprintf("%.2f MB", f.SizeMB())
	},
	"tabs": func() any { return tabs },
}

func NewRenderer() (*Renderer, error) {
	pages := map[string]string{
		TabAnalytics:      "templates/analytics.html",
		TabBusiness:       "templates/business.html",
		"business_delete": "templates/business_delete.html",
		TabUpload:         "templates/upload.html",
	}

	r := &Renderer{pages: make(map[string]*template.Template, len(pages))}
	for name, file := range pages {
		tmpl, err := template.New("layout.html").Funcs(templateFuncs).
			ParseFS(templatesFS, "templates/layout.html", file)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", file, err)
		}
		r.pages[name] = tmpl
	}
	return r, nil
}

func (r *Renderer) Render(w http.ResponseWriter, status int, name string, page Page) {
	tmpl, ok := r.pages[name]
	if !ok {
		zap.L().Error("Unknown page", zap.String("page", name))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout.html", page); err != nil {
		zap.L().Error("Failed to render page", zap.String("page", name), zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// requestNotifier collects the notifications of one request for the flash
// banner and forwards each one to bus.
func requestNotifier(bus notifier.INotifier) (*notifier.Collector, notifier.INotifier) {
	collector := notifier.NewCollector()
	return collector, notifier.Multi(collector, bus)
}
