// Package export renders plain-text documents to downloadable PDF and DOCX files.
package export

import (
	"errors"
	"fmt"
	"strings"
)

// ErrRenderingUnavailable indicates no renderer is registered for the requested format.
var ErrRenderingUnavailable = errors.New("rendering unavailable")

// RenderError represents a general rendering failure
type RenderError struct {
	Format  Format
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("render error (%s): %s: %v", e.Format, e.Message, e.Cause)
	}
	return fmt.Sprintf("render error (%s): %s", e.Format, e.Message)
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}

// FailedMessage is shown when a registered renderer fails on a document.
func FailedMessage(f Format) string {
	return fmt.Sprintf("Could not generate the %s file. Please try again.", strings.ToUpper(string(f)))
}

// UnavailableMessage is the fixed message shown when a format cannot be rendered.
func UnavailableMessage(f Format) string {
	switch f {
	case FormatPDF:
		return "PDF export dependency missing. Install requirements and retry."
	case FormatDOCX:
		return "DOCX export dependency missing. Install requirements and retry."
	default:
		return fmt.Sprintf("%s export dependency missing. Install requirements and retry.", f)
	}
}
