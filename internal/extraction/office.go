package extraction

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/nguyenthenguyen/docx"
)

const (
	wordprocessingNS = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	odtContentPart   = "content.xml"
	docxDocumentPart = "word/document.xml"
)

var errPartNotFound = errors.New("part not found")

// readZipPart returns the contents of the named archive member.
func readZipPart(data []byte, name string) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", err
		}
		defer rc.Close()
		b, err := io.ReadAll(rc)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
	return "", fmt.Errorf("%w: %s", errPartNotFound, name)
}

// extractDOCX reads word/document.xml and joins the text of every w:t run with single spaces.
// Packages the docx library rejects (missing relationship or header parts) are read
// directly from the zip.
func extractDOCX(data []byte) (string, error) {
	var content string
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err == nil {
		defer doc.Close()
		content = doc.Editable().GetContent()
	} else {
		content, err = readZipPart(data, docxDocumentPart)
		if err != nil {
			return "", &Error{Format: FormatDOCX, Message: "failed to open archive", Cause: err}
		}
	}
	if content == "" {
		return "", &Error{Format: FormatDOCX, Message: "word/document.xml is empty"}
	}

	parts, err := collectRunText(strings.NewReader(content))
	if err != nil {
		return "", &Error{Format: FormatDOCX, Message: "failed to parse word/document.xml", Cause: err}
	}
	return strings.Join(parts, " "), nil
}

// collectRunText returns the character data of every w:t element in document order.
func collectRunText(r io.Reader) ([]string, error) {
	dec := xml.NewDecoder(r)
	var parts []string
	var inRun bool
	var current strings.Builder

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Space == wordprocessingNS && t.Name.Local == "t" {
				inRun = true
				current.Reset()
			}
		case xml.EndElement:
			if inRun && t.Name.Space == wordprocessingNS && t.Name.Local == "t" {
				inRun = false
				if current.Len() > 0 {
					parts = append(parts, current.String())
				}
			}
		case xml.CharData:
			if inRun {
				current.Write(t)
			}
		}
	}
	return parts, nil
}

// extractODT reads content.xml and joins every non-whitespace text node with single spaces.
func extractODT(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &Error{Format: FormatODT, Message: "failed to open archive", Cause: err}
	}

	var part *zip.File
	for _, f := range zr.File {
		if f.Name == odtContentPart {
			part = f
			break
		}
	}
	if part == nil {
		return "", &Error{Format: FormatODT, Message: fmt.Sprintf("%s not found", odtContentPart)}
	}

	rc, err := part.Open()
	if err != nil {
		return "", &Error{Format: FormatODT, Message: fmt.Sprintf("failed to open %s", odtContentPart), Cause: err}
	}
	defer rc.Close()

	parts, err := collectTextNodes(rc)
	if err != nil {
		return "", &Error{Format: FormatODT, Message: fmt.Sprintf("failed to parse %s", odtContentPart), Cause: err}
	}
	return strings.Join(parts, " "), nil
}

// collectTextNodes returns every character data segment that is not pure whitespace, trimmed.
func collectTextNodes(r io.Reader) ([]string, error) {
	dec := xml.NewDecoder(r)
	var parts []string

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if cd, ok := tok.(xml.CharData); ok {
			if s := strings.TrimSpace(string(cd)); s != "" {
				parts = append(parts, s)
			}
		}
	}
	return parts, nil
}
