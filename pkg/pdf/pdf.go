// Package pdf provides the minimal PDF introspection needed to enforce
// backend page limits before a document is sent anywhere.
package pdf

import (
	"bytes"
)

var header = []byte("%PDF-")

// IsPDF reports whether data starts with a PDF header.
func IsPDF(data []byte) bool {
	return bytes.HasPrefix(data, header)
}

// PageCount counts page objects in a PDF. It scans for /Type /Page entries
// rather than parsing the cross-reference table, which is sufficient for
// limit checks. Falls back to a size-based estimate (one page per 75KB)
// when no page objects are found, matching the behavior of backends that
// cannot inspect the document.
func PageCount(data []byte) int {
	count := 0

	for i := 0; i < len(data); {
		j := bytes.Index(data[i:], []byte("/Type"))

		if j < 0 {
			break
		}

		i += j + len("/Type")

		for i < len(data) && (data[i] == ' ' || data[i] == '\r' || data[i] == '\n' || data[i] == '\t') {
			i++
		}

		if !bytes.HasPrefix(data[i:], []byte("/Page")) {
			continue
		}

		// Exclude /Pages tree nodes
		rest := data[i+len("/Page"):]

		if len(rest) > 0 && rest[0] == 's' {
			continue
		}

		count++
	}

	if count > 0 {
		return count
	}

	estimate := len(data) / 75000

	if estimate < 1 {
		estimate = 1
	}

	return estimate
}
