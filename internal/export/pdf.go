package export

import (
	"bytes"
	"strings"

	"github.com/go-pdf/fpdf"
)

// PDFRenderer lays text out on A4 pages with a core font.
type PDFRenderer struct {
	FontFamily  string
	FontSize    float64
	LineHeight  float64
	MarginMM    float64
	HeadingSize float64
}

// NewPDFRenderer returns a renderer with Helvetica 11pt body text.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{
		FontFamily:  "Helvetica",
		FontSize:    11,
		LineHeight:  5.5,
		MarginMM:    18,
		HeadingSize: 12,
	}
}

func (r *PDFRenderer) Format() Format { return FormatPDF }

func (r *PDFRenderer) ContentType() string { return "application/pdf" }

// Render writes each line as a wrapped paragraph. All-caps lines are set in bold.
// Characters outside Windows-1252 cannot be shown by the core fonts.
func (r *PDFRenderer) Render(text string) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(r.MarginMM, r.MarginMM, r.MarginMM)
	pdf.SetAutoPageBreak(true, r.MarginMM)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	for _, line := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		if strings.TrimSpace(line) == "" {
			pdf.Ln(r.LineHeight)
			continue
		}
		if isHeading(line) {
			pdf.SetFont(r.FontFamily, "B", r.HeadingSize)
		} else {
			pdf.SetFont(r.FontFamily, "", r.FontSize)
		}
		pdf.MultiCell(0, r.LineHeight, tr(line), "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, &RenderError{Format: FormatPDF, Message: "failed to write PDF", Cause: err}
	}
	return buf.Bytes(), nil
}
