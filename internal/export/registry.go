package export

import (
	"fmt"
	"strings"
	"sync"
)

// Format is a downloadable document format.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
)

// Renderer converts plain text into document bytes.
type Renderer interface {
	Format() Format
	ContentType() string
	Render(text string) ([]byte, error)
}

// Registry holds the renderers available to the process.
type Registry struct {
	mu        sync.RWMutex
	renderers map[Format]Renderer
}

// NewRegistry creates a registry with the given renderers.
func NewRegistry(renderers ...Renderer) *Registry {
	r := &Registry{renderers: make(map[Format]Renderer)}
	for _, rd := range renderers {
		r.Register(rd)
	}
	return r
}

// DefaultRegistry returns a registry with the PDF and DOCX renderers.
func DefaultRegistry() *Registry {
	return NewRegistry(NewPDFRenderer(), NewDOCXRenderer())
}

// Register adds or replaces the renderer for its format.
func (r *Registry) Register(rd Renderer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.renderers[rd.Format()] = rd
}

// Get returns the renderer for a format, or ErrRenderingUnavailable.
func (r *Registry) Get(f Format) (Renderer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rd, ok := r.renderers[f]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrRenderingUnavailable, f)
	}
	return rd, nil
}

// Render renders text with the renderer registered for f.
func (r *Registry) Render(f Format, text string) ([]byte, string, error) {
	rd, err := r.Get(f)
	if err != nil {
		return nil, "", err
	}
	data, err := rd.Render(text)
	if err != nil {
		return nil, "", err
	}
	return data, rd.ContentType(), nil
}

// isHeading reports whether a line is an all-caps section heading such as "EXPERIENCE".
func isHeading(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || len(trimmed) > 60 {
		return false
	}
	return trimmed == strings.ToUpper(trimmed) && strings.ToLower(trimmed) != trimmed
}
