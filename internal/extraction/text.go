package extraction

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// decodeText decodes UTF-8, falling back to Windows-1252 with undecodable bytes dropped.
func decodeText(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}

	decoded, err := charmap.Windows1252.NewDecoder().Bytes(data)
	if err != nil {
		// keep whatever is valid UTF-8
		return strings.ToValidUTF8(string(data), "")
	}
	return strings.ReplaceAll(string(decoded), string(utf8.RuneError), "")
}

var (
	rtfHexEscape   = regexp.MustCompile(`\\'[0-9a-fA-F]{2}`)
	rtfControlWord = regexp.MustCompile(`\\[a-zA-Z]+-?\d* ?`)
	rtfBraces      = regexp.MustCompile(`[{}]`)
	whitespaceRun  = regexp.MustCompile(`\s+`)
)

// stripRTF removes hex escapes, control words and braces, then collapses whitespace.
func stripRTF(s string) string {
	s = rtfHexEscape.ReplaceAllString(s, " ")
	s = rtfControlWord.ReplaceAllString(s, " ")
	s = rtfBraces.ReplaceAllString(s, " ")
	s = whitespaceRun.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
