// Package parser extracts structured candidate profiles and role
// requirements from plain-text resumes and job descriptions. Parsing is
// heuristic and never fails: unreadable input yields a default record.
package parser

import "strings"

// SectionExtractor splits a document into labeled sections by scanning for
// header lines. Matching is a case-insensitive substring test, so a body
// line that merely mentions a header word starts a new section; callers
// depend on that permissiveness for headers like "Technical Skills".
type SectionExtractor struct {
	headers []string
}

// NewSectionExtractor builds an extractor for the given lower-case header
// vocabulary.
func NewSectionExtractor(headers []string) *SectionExtractor {
	return &SectionExtractor{headers: headers}
}

// Extract returns section name to section body. Text before the first header
// is discarded, blank lines are skipped, and when a header repeats the later
// occurrence wins.
func (x *SectionExtractor) Extract(text string) map[string]string {
	sections := make(map[string]string)
	current := ""
	var content []string

	flush := func() {
		if current != "" && len(content) > 0 {
			sections[current] = strings.Join(content, "\n")
		}
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		lower := strings.ToLower(line)
		matched := ""
		for _, h := range x.headers {
			if strings.Contains(lower, h) {
				matched = h
				break
			}
		}

		if matched != "" {
			flush()
			current = matched
			content = content[:0]
			continue
		}
		if current != "" {
			content = append(content, line)
		}
	}
	flush()

	return sections
}
