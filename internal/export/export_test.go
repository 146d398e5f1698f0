package export

import (
	"archive/zip"
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-analyzer/internal/extraction"
)

const sampleText = "JANE DOE\njane@example.com | Berlin\n\nSKILLS\nGo, SQL & <Kafka>\n\nEXPERIENCE\nAcme Corp - Engineer"

func TestPDFRenderer_Render(t *testing.T) {
	data, err := NewPDFRenderer().Render(sampleText)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
	assert.Contains(t, string(data[len(data)-16:]), "%%EOF")
}

func TestPDFRenderer_LongText(t *testing.T) {
	var buf bytes.Buffer
	for i := 0; i < 400; i++ {
		buf.WriteString("A line long enough to wrap across the page width when rendered with an eleven point font size.\n")
	}
	data, err := NewPDFRenderer().Render(buf.String())
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestDOCXRenderer_Render(t *testing.T) {
	data, err := NewDOCXRenderer().Render(sampleText)
	require.NoError(t, err)

	t.Run("valid archive with document part", func(t *testing.T) {
		zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
		require.NoError(t, err)

		var document string
		for _, f := range zr.File {
			if f.Name != "word/document.xml" {
				continue
			}
			rc, err := f.Open()
			require.NoError(t, err)
			b, err := io.ReadAll(rc)
			require.NoError(t, err)
			rc.Close()
			document = string(b)
		}
		require.NotEmpty(t, document)
		assert.NotContains(t, document, "{{BODY}}")
		assert.Contains(t, document, "Go, SQL &amp; &lt;Kafka&gt;")
		assert.Contains(t, document, `<w:rPr><w:b/></w:rPr><w:t xml:space="preserve">SKILLS</w:t>`)
	})

	t.Run("text extracts back", func(t *testing.T) {
		text, err := extraction.Extract(data, "resume.docx")
		require.NoError(t, err)
		assert.Equal(t, "JANE DOE jane@example.com | Berlin SKILLS Go, SQL & <Kafka> EXPERIENCE Acme Corp - Engineer", text)
	})
}

func TestDOCXRenderer_BadTemplate(t *testing.T) {
	r := &DOCXRenderer{template: []byte("not a zip")}
	_, err := r.Render("hello")

	var renderErr *RenderError
	require.ErrorAs(t, err, &renderErr)
	assert.Equal(t, FormatDOCX, renderErr.Format)
}

func TestRegistry(t *testing.T) {
	t.Run("default has both formats", func(t *testing.T) {
		reg := DefaultRegistry()
		for _, f := range []Format{FormatPDF, FormatDOCX} {
			data, contentType, err := reg.Render(f, "hello")
			require.NoError(t, err, f)
			assert.NotEmpty(t, data)
			assert.NotEmpty(t, contentType)
		}
	})

	t.Run("missing renderer", func(t *testing.T) {
		reg := NewRegistry(NewPDFRenderer())
		_, _, err := reg.Render(FormatDOCX, "hello")
		assert.True(t, errors.Is(err, ErrRenderingUnavailable))
	})
}

func TestUnavailableMessage(t *testing.T) {
	assert.Equal(t, "PDF export dependency missing. Install requirements and retry.", UnavailableMessage(FormatPDF))
	assert.Equal(t, "DOCX export dependency missing. Install requirements and retry.", UnavailableMessage(FormatDOCX))
}

func TestFailedMessage(t *testing.T) {
	assert.Equal(t, "Could not generate the PDF file. Please try again.", FailedMessage(FormatPDF))
	assert.Equal(t, "Could not generate the DOCX file. Please try again.", FailedMessage(FormatDOCX))
}

func TestIsHeading(t *testing.T) {
	assert.True(t, isHeading("PROFESSIONAL SUMMARY"))
	assert.True(t, isHeading("JANE DOE"))
	assert.False(t, isHeading("Jane Doe"))
	assert.False(t, isHeading("2020 - 2024"))
	assert.False(t, isHeading(""))
}
