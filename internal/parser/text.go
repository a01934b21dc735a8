package parser

import (
	"regexp"
	"strings"
)

var (
	// horizontal whitespace only; line breaks survive cleaning so the
	// section scanner still sees real lines
	spaceRunPattern   = regexp.MustCompile(`[^\S\n]+`)
	disallowedPattern = regexp.MustCompile(`[^\w\s.,;:+@()/-]`)
	blankLinesPattern = regexp.MustCompile(`\n{3,}`)
)

// CleanText normalizes raw document text: runs of spaces and tabs collapse
// to one space, characters outside the allowed set are removed, and runs of
// blank lines shrink to one.
func CleanText(text string) string {
	text = spaceRunPattern.ReplaceAllString(text, " ")
	text = disallowedPattern.ReplaceAllString(text, "")
	text = blankLinesPattern.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

// titleCase upper-cases the first letter of every word, where a word starts
// after any non-letter. "node.js" becomes "Node.Js".
func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevLetter := false
	for _, r := range s {
		isLetter := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		switch {
		case isLetter && !prevLetter:
			b.WriteRune(r &^ 0x20)
		case isLetter:
			b.WriteRune(r | 0x20)
		default:
			b.WriteRune(r)
		}
		prevLetter = isLetter
	}
	return b.String()
}

// containsAny reports whether s contains any of the needles. All arguments
// are matched case-sensitively; callers lower-case first.
func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}

func wordCount(s string) int {
	return len(strings.Fields(s))
}

func hasLetter(s string) bool {
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			return true
		}
	}
	return false
}
