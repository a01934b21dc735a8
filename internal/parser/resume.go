package parser

import (
	"regexp"
	"strings"

	"relevancer/internal/errors"
	"relevancer/internal/types"
)

// resumeSectionHeaders is ordered: "skills" sits before "technical skills"
// so both header spellings land in the same section label.
var resumeSectionHeaders = []string{
	"summary", "objective", "profile", "about",
	"skills", "technical skills", "core competencies",
	"experience", "work experience", "employment",
	"education", "academic",
	"projects",
	"certifications", "certificates", "awards", "achievements",
}

// skillVocabulary is the fixed list of technical skills the extractor
// recognizes in resume text.
var skillVocabulary = []string{
	"python", "java", "javascript", "typescript", "c++", "c#", "go", "rust",
	"php", "ruby", "swift", "kotlin", "scala",
	"html", "css", "react", "angular", "vue", "node.js", "express",
	"django", "flask", "spring", "laravel",
	"sql", "mysql", "postgresql", "mongodb", "redis", "elasticsearch", "sqlite",
	"aws", "azure", "gcp", "docker", "kubernetes", "terraform", "ansible",
	"jenkins", "git", "ci/cd", "linux", "bash",
	"machine learning", "deep learning", "tensorflow", "pytorch",
	"pandas", "numpy", "scikit-learn", "data analysis",
	"rest apis", "graphql", "microservices", "agile", "scrum",
}

var (
	emailPattern = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	phonePattern = regexp.MustCompile(`(\+?1[-.\s]?)?\(?([0-9]{3})\)?[-.\s]?([0-9]{3})[-.\s]?([0-9]{4})`)

	degreePattern = regexp.MustCompile(`(?i)\b(bachelor|master|phd|doctorate|b\.?tech|m\.?tech|b\.?sc?|m\.?sc?|b\.?e|m\.?e|b\.?a|m\.?a|mba|diploma)\b`)
	yearPattern   = regexp.MustCompile(`\b(19|20)\d{2}\b`)

	institutionKeywords = []string{"university", "college", "institute", "school", "academy"}

	durationPattern = regexp.MustCompile(`(?i)((19|20)\d{2}\s*(-|to)\s*((19|20)\d{2}|present|current))|(\d+\.?\d*\s*(years?|yrs?|months?))`)

	titleLinePattern = regexp.MustCompile(`^[A-Z][A-Za-z]*`)
)

// ResumeParser turns raw resume text into a CandidateProfile. It never
// fails; input it cannot understand produces a default profile.
type ResumeParser struct {
	sections *SectionExtractor
	skills   []skillMatcher
	logger   *errors.Logger
}

// skillMatcher pairs one vocabulary skill with its compiled word-boundary
// pattern. Skills with non-word edge characters fall back to substring
// matching because \b does not anchor next to them.
type skillMatcher struct {
	name    string
	pattern *regexp.Regexp
}

// NewResumeParser builds a parser with the default section and skill
// vocabularies. logger may be nil.
func NewResumeParser(logger *errors.Logger) *ResumeParser {
	matchers := make([]skillMatcher, 0, len(skillVocabulary))
	for _, s := range skillVocabulary {
		m := skillMatcher{name: s}
		if wordEdged(s) {
			m.pattern = regexp.MustCompile(`\b` + regexp.QuoteMeta(s) + `\b`)
		}
		matchers = append(matchers, m)
	}
	return &ResumeParser{
		sections: NewSectionExtractor(resumeSectionHeaders),
		skills:   matchers,
		logger:   logger,
	}
}

func wordEdged(s string) bool {
	if s == "" {
		return false
	}
	isWord := func(r byte) bool {
		return r == '_' || (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
	}
	return isWord(s[0]) && isWord(s[len(s)-1])
}

// Parse extracts a CandidateProfile from raw resume text.
func (p *ResumeParser) Parse(raw string) types.CandidateProfile {
	profile := defaultProfile()

	text := CleanText(raw)
	if text == "" {
		if p.logger != nil {
			p.logger.LogError(
				errors.NewParseError(errors.ErrCodeEmptyDocument, "resume text is empty after cleaning", nil),
				"Resume parsing degraded to default profile",
			)
		}
		return profile
	}
	profile.RawText = text

	sections := p.sections.Extract(text)

	profile.Name = extractName(text)
	profile.Email = firstMatch(emailPattern, text)
	profile.Phone = extractPhone(text)
	profile.Skills = p.extractSkills(text, sections)
	profile.Education = extractEducation(sections)
	profile.Experience = extractExperience(sections)
	profile.Projects = extractProjects(sections)
	profile.Certifications = extractCertifications(sections)
	profile.Summary = extractSummary(sections)

	return profile
}

func defaultProfile() types.CandidateProfile {
	return types.CandidateProfile{
		Name:           "Unknown",
		Skills:         []string{},
		Education:      []types.EducationEntry{},
		Experience:     []types.ExperienceEntry{},
		Projects:       []types.ProjectEntry{},
		Certifications: []string{},
	}
}

// extractName assumes the name sits in the first few lines: short, mostly
// letters, no contact noise.
func extractName(text string) string {
	lines := strings.Split(text, "\n")
	if len(lines) > 5 {
		lines = lines[:5]
	}
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || !hasLetter(line) {
			continue
		}
		if strings.ContainsAny(line, "@0123456789") {
			continue
		}
		if n := wordCount(line); n >= 1 && n <= 4 {
			return line
		}
	}
	return "Unknown"
}

func firstMatch(p *regexp.Regexp, text string) string {
	return p.FindString(text)
}

func extractPhone(text string) string {
	m := phonePattern.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1] + m[2] + m[3] + m[4])
}

// extractSkills scans the skills section when present, the whole document
// otherwise, and reports recognized skills in display casing.
func (p *ResumeParser) extractSkills(text string, sections map[string]string) []string {
	searchText := text
	for _, label := range []string{"skills", "technical skills", "core competencies"} {
		if body, ok := sections[label]; ok {
			searchText = body
			break
		}
	}

	found := p.scanSkills(searchText)
	if len(found) == 0 && searchText != text {
		found = p.scanSkills(text)
	}
	return found
}

func (p *ResumeParser) scanSkills(text string) []string {
	lower := strings.ToLower(text)
	found := []string{}
	for _, m := range p.skills {
		hit := false
		if m.pattern != nil {
			hit = m.pattern.MatchString(lower)
		} else {
			hit = strings.Contains(lower, m.name)
		}
		if hit {
			found = append(found, titleCase(m.name))
		}
	}
	return found
}

func extractEducation(sections map[string]string) []types.EducationEntry {
	entries := []types.EducationEntry{}
	for _, label := range []string{"education", "academic"} {
		body, ok := sections[label]
		if !ok {
			continue
		}
		for _, line := range strings.Split(body, "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			lower := strings.ToLower(line)
			switch {
			case degreePattern.MatchString(line):
				entry := types.EducationEntry{Degree: line}
				if y := yearPattern.FindString(line); y != "" {
					entry.Year = y
				}
				entries = append(entries, entry)
			case containsAny(lower, institutionKeywords) && len(entries) > 0 && entries[len(entries)-1].Institution == "":
				entries[len(entries)-1].Institution = line
			case len(entries) > 0 && entries[len(entries)-1].Year == "":
				if y := yearPattern.FindString(line); y != "" {
					entries[len(entries)-1].Year = y
				}
			}
		}
	}
	return entries
}

// extractExperience builds one entry per experience-like section: the first
// short capitalized line is taken as the company, the next as the title,
// date-looking lines as the duration, and everything else accumulates into
// the description.
func extractExperience(sections map[string]string) []types.ExperienceEntry {
	entries := []types.ExperienceEntry{}
	for _, label := range []string{"experience", "work experience", "employment"} {
		body, ok := sections[label]
		if !ok {
			continue
		}

		var entry types.ExperienceEntry
		var description []string
		for _, line := range strings.Split(body, "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			switch {
			case durationPattern.MatchString(line) && entry.Duration == "":
				entry.Duration = durationPattern.FindString(line)
			case titleLinePattern.MatchString(line) && wordCount(line) <= 5 && entry.Company == "":
				entry.Company = line
			case titleLinePattern.MatchString(line) && wordCount(line) <= 5 && entry.Title == "":
				entry.Title = line
			default:
				description = append(description, line)
			}
		}
		entry.Description = strings.Join(description, " ")

		if entry.Company != "" || entry.Title != "" || entry.Description != "" {
			entries = append(entries, entry)
		}
	}
	return entries
}

func extractProjects(sections map[string]string) []types.ProjectEntry {
	projects := []types.ProjectEntry{}
	body, ok := sections["projects"]
	if !ok {
		return projects
	}

	var current *types.ProjectEntry
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if titleLinePattern.MatchString(line) && wordCount(line) <= 8 {
			if current != nil {
				projects = append(projects, *current)
			}
			current = &types.ProjectEntry{Title: line}
			continue
		}
		if current != nil {
			if current.Description != "" {
				current.Description += " "
			}
			current.Description += line
		}
	}
	if current != nil {
		projects = append(projects, *current)
	}
	return projects
}

func extractCertifications(sections map[string]string) []string {
	certs := []string{}
	for _, label := range []string{"certifications", "certificates", "awards", "achievements"} {
		body, ok := sections[label]
		if !ok {
			continue
		}
		for _, line := range strings.Split(body, "\n") {
			line = strings.TrimSpace(line)
			if line != "" {
				certs = append(certs, line)
			}
		}
	}
	return certs
}

func extractSummary(sections map[string]string) string {
	for _, label := range []string{"summary", "objective", "profile", "about"} {
		if body, ok := sections[label]; ok {
			return strings.TrimSpace(body)
		}
	}
	return ""
}
