package text

import "regexp"

var (
	atxHeadingPattern     = regexp.MustCompile(`(?m)^#{1,6}\s+.+$`)
	codeFencePattern      = regexp.MustCompile("(?m)^```|^~~~")
	listPattern           = regexp.MustCompile(`(?m)^[\s]*([-*+]|\d+\.)\s+.+$`)
	linkPattern           = regexp.MustCompile(`!?\[[^\]]*\]\([^)]+\)`)
	blockquotePattern     = regexp.MustCompile(`(?m)^>\s+.+$`)
	tableRowPattern       = regexp.MustCompile(`(?m)^\|.+\|\s*$`)
	horizontalRulePattern = regexp.MustCompile(`(?m)^(---|\*\*\*|___)\s*$`)
)

// IsMarkdown detects whether text already contains markdown formatting.
// Requires at least two distinct markdown features so plain text with an
// occasional # or - is not misclassified.
func IsMarkdown(text string) bool {
	if len(text) == 0 {
		return false
	}

	indicators := 0

	for _, pattern := range []*regexp.Regexp{
		atxHeadingPattern,
		codeFencePattern,
		listPattern,
		linkPattern,
		blockquotePattern,
		tableRowPattern,
		horizontalRulePattern,
	} {
		if pattern.MatchString(text) {
			indicators++
		}
	}

	return indicators >= 2
}
