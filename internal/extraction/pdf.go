package extraction

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// extractPDF concatenates the plain text of every page in page order.
// Pages without a content stream contribute nothing.
func extractPDF(data []byte) (text string, err error) {
	// ledongthuc/pdf panics on some malformed xref tables and streams
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = &Error{Format: FormatPDF, Message: "corrupt PDF", Cause: fmt.Errorf("%v", r)}
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &Error{Format: FormatPDF, Message: "failed to open PDF", Cause: err}
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return "", &Error{Format: FormatPDF, Message: fmt.Sprintf("failed to read page %d", i), Cause: err}
		}
		sb.WriteString(pageText)
	}

	return sb.String(), nil
}
