// Package extraction converts uploaded resume documents into plain text.
package extraction

import (
	"errors"
	"fmt"
)

// ErrEmptyExtraction indicates the document was read but yielded no usable text.
var ErrEmptyExtraction = errors.New("document contains no readable text")

// UnsupportedFormatError indicates the filename extension is not a supported document type.
type UnsupportedFormatError struct {
	Extension string
}

func (e *UnsupportedFormatError) Error() string {
	if e.Extension == "" {
		return "unsupported file format: file has no extension"
	}
	return fmt.Sprintf("unsupported file format: %s", e.Extension)
}

// Error represents a failure reading a document of a supported format
// (malformed archive, corrupt PDF, missing XML part).
type Error struct {
	Format  Format
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("extraction error (%s): %s: %v", e.Format, e.Message, e.Cause)
	}
	return fmt.Sprintf("extraction error (%s): %s", e.Format, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// User-facing messages for extraction outcomes.
const (
	MessageUnsupportedFormat = "Unsupported file format. Upload a PDF, DOCX, ODT, TXT, MD or RTF file."
	MessageEmptyDocument     = "Could not read document content"
	MessageUnreadable        = "Could not read this document. Try another file format or a cleaner document."
)

// UserMessage maps an extraction error to the message shown on the upload page.
// It returns an empty string for a nil error.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var unsupported *UnsupportedFormatError
	switch {
	case errors.As(err, &unsupported):
		return MessageUnsupportedFormat
	case errors.Is(err, ErrEmptyExtraction):
		return MessageEmptyDocument
	default:
		return MessageUnreadable
	}
}

// Kind classifies an extraction error for metrics labels.
func Kind(err error) string {
	var unsupported *UnsupportedFormatError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &unsupported):
		return "unsupported_format"
	case errors.Is(err, ErrEmptyExtraction):
		return "empty"
	default:
		return "unreadable"
	}
}
