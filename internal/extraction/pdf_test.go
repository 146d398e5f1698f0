package extraction

import (
	"bytes"
	"strings"
	"testing"

	"github.com/go-pdf/fpdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-analyzer/internal/export"
)

// buildPDF writes one page per entry; an empty entry produces a page with no text.
func buildPDF(t *testing.T, pages ...string) []byte {
	t.Helper()
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetFont("Helvetica", "", 11)
	for _, text := range pages {
		doc.AddPage()
		if text != "" {
			doc.Cell(0, 10, text)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, doc.Output(&buf))
	return buf.Bytes()
}

func TestExtract_PDF(t *testing.T) {
	t.Run("rendered resume", func(t *testing.T) {
		data, err := export.NewPDFRenderer().Render("JANE DOE\n\nSKILLS\nPython, SQL\n\nEXPERIENCE\nLed a team of five engineers")
		require.NoError(t, err)

		text, err := Extract(data, "resume.pdf")
		require.NoError(t, err)
		assert.Contains(t, text, "SKILLS")
		assert.Contains(t, text, "Python, SQL")
		assert.Contains(t, text, "Led a team")
	})

	t.Run("pages in order", func(t *testing.T) {
		data := buildPDF(t, "Summary page one", "Experience page two", "Education page three")

		text, err := Extract(data, "resume.pdf")
		require.NoError(t, err)
		first := strings.Index(text, "Summary page one")
		second := strings.Index(text, "Experience page two")
		third := strings.Index(text, "Education page three")
		require.GreaterOrEqual(t, first, 0)
		assert.Greater(t, second, first)
		assert.Greater(t, third, second)
	})

	t.Run("blank page contributes nothing", func(t *testing.T) {
		withBlank, err := Extract(buildPDF(t, "Jane Doe", "", "Kubernetes"), "resume.pdf")
		require.NoError(t, err)
		assert.Contains(t, withBlank, "Jane Doe")
		assert.Contains(t, withBlank, "Kubernetes")
		assert.Less(t, strings.Index(withBlank, "Jane Doe"), strings.Index(withBlank, "Kubernetes"))
	})

	t.Run("only blank pages", func(t *testing.T) {
		_, err := Extract(buildPDF(t, "", ""), "resume.pdf")
		assert.ErrorIs(t, err, ErrEmptyExtraction)
	})
}
