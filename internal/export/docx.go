package export

import (
	"bytes"
	_ "embed"
	"encoding/xml"
	"strings"
	"text/template"

	"github.com/nguyenthenguyen/docx"
)

//go:embed template.docx
var docxTemplate []byte

// docxPlaceholder is the paragraph in template.docx replaced by the rendered body.
const docxPlaceholder = `<w:p><w:r><w:t>{{BODY}}</w:t></w:r></w:p>`

var paragraphTemplate = template.Must(template.New("paragraphs").Funcs(template.FuncMap{
	"xml": escapeXML,
}).Parse(`{{range .}}<w:p>{{if .Text}}<w:r>{{if .Bold}}<w:rPr><w:b/></w:rPr>{{end}}<w:t xml:space="preserve">{{xml .Text}}</w:t></w:r>{{end}}</w:p>{{end}}`))

type paragraph struct {
	Text string
	Bold bool
}

// DOCXRenderer fills the bundled Word template with one paragraph per line.
type DOCXRenderer struct {
	template []byte
}

// NewDOCXRenderer returns a renderer using the bundled template.
func NewDOCXRenderer() *DOCXRenderer {
	return &DOCXRenderer{template: docxTemplate}
}

func (r *DOCXRenderer) Format() Format { return FormatDOCX }

func (r *DOCXRenderer) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
}

// Render writes each line as a paragraph; all-caps lines are bold and blank lines stay empty paragraphs.
func (r *DOCXRenderer) Render(text string) ([]byte, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(r.template), int64(len(r.template)))
	if err != nil {
		return nil, &RenderError{Format: FormatDOCX, Message: "failed to open template", Cause: err}
	}
	defer doc.Close()

	editable := doc.Editable()
	content := editable.GetContent()
	if !strings.Contains(content, docxPlaceholder) {
		return nil, &RenderError{Format: FormatDOCX, Message: "template has no body placeholder"}
	}

	var paragraphs []paragraph
	for _, line := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		paragraphs = append(paragraphs, paragraph{Text: line, Bold: isHeading(line)})
	}

	var body strings.Builder
	if err := paragraphTemplate.Execute(&body, paragraphs); err != nil {
		return nil, &RenderError{Format: FormatDOCX, Message: "failed to build document body", Cause: err}
	}

	editable.SetContent(strings.Replace(content, docxPlaceholder, body.String(), 1))

	var buf bytes.Buffer
	if err := editable.Write(&buf); err != nil {
		return nil, &RenderError{Format: FormatDOCX, Message: "failed to write document", Cause: err}
	}
	return buf.Bytes(), nil
}

func escapeXML(s string) (string, error) {
	var sb strings.Builder
	if err := xml.EscapeText(&sb, []byte(s)); err != nil {
		return "", err
	}
	return sb.String(), nil
}
