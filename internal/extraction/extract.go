package extraction

import (
	"path/filepath"
	"strings"
)

// Format identifies a supported document format.
type Format string

const (
	// FormatPDF is a Portable Document Format file
	FormatPDF Format = "pdf"
	// FormatText covers plain text and Markdown files
	FormatText Format = "text"
	// FormatDOCX is an Office Open XML word processing document
	FormatDOCX Format = "docx"
	// FormatODT is an OpenDocument text document
	FormatODT Format = "odt"
	// FormatRTF is a Rich Text Format document
	FormatRTF Format = "rtf"
)

// SupportedExtensions lists accepted upload extensions, used for the upload form's accept attribute.
var SupportedExtensions = []string{".pdf", ".docx", ".odt", ".txt", ".md", ".rtf"}

// DetectFormat returns the document format for a filename based on its
// case-insensitive extension.
func DetectFormat(filename string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".pdf":
		return FormatPDF, nil
	case ".txt", ".md":
		return FormatText, nil
	case ".docx":
		return FormatDOCX, nil
	case ".odt":
		return FormatODT, nil
	case ".rtf":
		return FormatRTF, nil
	default:
		return "", &UnsupportedFormatError{Extension: ext}
	}
}

// Extract converts document bytes into plain text, dispatching on the filename extension.
//
// Unknown extensions fail with *UnsupportedFormatError before any bytes are read.
// Read failures are returned as *Error. When extraction succeeds but the text is
// empty or whitespace only, the text is returned together with ErrEmptyExtraction.
func Extract(data []byte, filename string) (string, error) {
	format, err := DetectFormat(filename)
	if err != nil {
		return "", err
	}

	var text string
	switch format {
	case FormatPDF:
		text, err = extractPDF(data)
	case FormatText:
		text = decodeText(data)
	case FormatDOCX:
		text, err = extractDOCX(data)
	case FormatODT:
		text, err = extractODT(data)
	case FormatRTF:
		text = stripRTF(decodeText(data))
	}
	if err != nil {
		return "", err
	}

	if strings.TrimSpace(text) == "" {
		return text, ErrEmptyExtraction
	}
	return text, nil
}
