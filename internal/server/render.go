package server

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"

	"go.uber.org/zap"

	"github.com/jonathan/resume-analyzer/internal/server/middleware"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page templates. Each is parsed together with layout.html.
const (
	pageRoleChoice   = "role_choice.html"
	pageLogin        = "login.html"
	pageRegister     = "register.html"
	pageUpload       = "upload.html"
	pageResult       = "result.html"
	pageDashboard    = "dashboard.html"
	pageProfile      = "profile.html"
	pageATSResume    = "ats_resume.html"
	pageCoverLetter  = "cover_letter.html"
	pageApplications = "applications.html"
)

var pages = []string{
	pageRoleChoice, pageLogin, pageRegister, pageUpload, pageResult,
	pageDashboard, pageProfile, pageATSResume, pageCoverLetter, pageApplications,
}

// pageData is the root value every page template receives.
type pageData struct {
	Title  string
	User   *middleware.RequestContext
	Error  string
	Notice string
	Data   any
}

// renderer holds one parsed template set per page.
type renderer struct {
	templates map[string]*template.Template
}

func newRenderer() (*renderer, error) {
	r := &renderer{templates: make(map[string]*template.Template, len(pages))}
	for _, page := range pages {
		t, err := template.New(page).ParseFS(templateFS, "templates/layout.html", "templates/"+page)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", page, err)
		}
		r.templates[page] = t
	}
	return r, nil
}

// render executes page into a buffer first so a template error never leaves a half-written response.
func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, page string, data pageData) {
	t, ok := s.renderer.templates[page]
	if !ok {
		s.logger.Error("unknown page template", zap.String("page", page))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	if data.User == nil {
		data.User, _ = middleware.FromContext(r.Context())
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		s.logger.Error("failed to render page", zap.String("page", page), zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		s.logger.Debug("failed to write page", zap.String("page", page), zap.Error(err))
	}
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode JSON response", zap.Error(err))
	}
}

// attachment writes a downloadable file.
func attachment(w http.ResponseWriter, filename, contentType string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(body)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

// internalError logs err and writes a plain 500.
func (s *Server) internalError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	s.logger.Error(msg,
		zap.String("path", r.URL.Path),
		zap.Error(err))
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}
