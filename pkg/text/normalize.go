package text

import (
	"regexp"
	"strings"
	"unicode"
)

var blankLines = regexp.MustCompile(`\n[ \t]*\n[\s]*`)

// Clean strips backend control artifacts from extracted text: carriage
// returns, form feeds, zero-width and other non-printable characters that
// have no markdown representation. Already-clean text passes through
// unchanged.
func Clean(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	text = strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}

		if unicode.IsControl(r) {
			return -1
		}

		// Zero-width space, non-joiner, joiner, BOM
		switch r {
		case '\u200b', '\u200c', '\u200d', '\ufeff':
			return -1
		}

		return r
	}, text)

	text = blankLines.ReplaceAllString(text, "\n\n")

	return strings.TrimSpace(text)
}

// Join concatenates page texts with a single blank line between pages,
// skipping empty pages.
func Join(pages []string) string {
	var parts []string

	for _, page := range pages {
		page = strings.TrimSpace(page)

		if page == "" {
			continue
		}

		parts = append(parts, page)
	}

	return strings.Join(parts, "\n\n")
}
