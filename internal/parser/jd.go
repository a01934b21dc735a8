package parser

import (
	"regexp"
	"strings"

	"relevancer/internal/errors"
	"relevancer/internal/types"
)

var jdSectionHeaders = []string{
	"job description", "about the role", "overview", "responsibilities",
	"requirements", "required skills", "must have", "qualifications",
	"preferred", "good to have", "nice to have", "benefits", "about us",
}

var (
	roleTitleKeywords = []string{"engineer", "developer", "analyst", "manager", "specialist", "consultant", "architect", "scientist"}
	companyKeywords   = []string{"inc", "ltd", "corp", "company", "technologies", "solutions", "labs", "systems"}

	locationPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(bangalore|bengaluru|mumbai|delhi|hyderabad|chennai|pune|kolkata|gurgaon|noida)\b`),
		regexp.MustCompile(`(?i)\b(remote|work from home|wfh|hybrid)\b`),
		regexp.MustCompile(`(?i)\b(on-site|onsite|in office)\b`),
	}

	requiredIndicators  = []string{"required", "must have", "essential", "mandatory"}
	preferredIndicators = []string{"preferred", "good to have", "nice to have", "plus", "bonus"}

	qualificationKeywords = []string{"bachelor", "master", "phd", "degree", "b.tech", "m.tech", "bsc", "msc", "mba", "diploma"}

	experiencePhrasePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(\d+)\s*-\s*(\d+)\s*years?`),
		regexp.MustCompile(`(?i)(\d+)\+?\s*years?`),
	}

	jobTypes = []string{"full-time", "full time", "part-time", "part time", "contract", "internship", "freelance", "temporary"}
)

// JobParser turns raw job-description text into a RoleRequirement. Like the
// resume parser it never fails.
type JobParser struct {
	sections *SectionExtractor
	skills   []skillMatcher
	logger   *errors.Logger
}

// NewJobParser builds a parser with the default vocabularies. logger may be
// nil.
func NewJobParser(logger *errors.Logger) *JobParser {
	resume := NewResumeParser(nil)
	return &JobParser{
		sections: NewSectionExtractor(jdSectionHeaders),
		skills:   resume.skills,
		logger:   logger,
	}
}

// Parse extracts a RoleRequirement from raw job-description text.
func (p *JobParser) Parse(raw string) types.RoleRequirement {
	role := defaultRole()

	text := CleanText(raw)
	if text == "" {
		if p.logger != nil {
			p.logger.LogError(
				errors.NewParseError(errors.ErrCodeEmptyDocument, "job description is empty after cleaning", nil),
				"Job parsing degraded to default requirement",
			)
		}
		return role
	}
	role.RawText = text

	sections := p.sections.Extract(text)
	lines := strings.Split(text, "\n")

	role.Title = extractRoleTitle(lines)
	role.Company = extractCompany(lines)
	role.Location = extractLocation(text)
	role.MustHaveSkills, role.GoodToHaveSkills = p.extractSkillLists(text, sections)
	role.Qualifications = extractQualifications(text)
	role.ExperienceRequired = extractExperiencePhrase(text)
	role.JobType = extractJobType(text)
	role.Description = extractDescription(sections, lines)

	return role
}

func defaultRole() types.RoleRequirement {
	return types.RoleRequirement{
		Title:            "Unknown Position",
		Location:         "Not specified",
		MustHaveSkills:   []string{},
		GoodToHaveSkills: []string{},
		Qualifications:   []string{},
	}
}

// extractRoleTitle looks for a short role-sounding line near the top.
func extractRoleTitle(lines []string) string {
	limit := len(lines)
	if limit > 10 {
		limit = 10
	}
	for _, line := range lines[:limit] {
		line = strings.TrimSpace(line)
		if line == "" || wordCount(line) > 8 {
			continue
		}
		if containsAny(strings.ToLower(line), roleTitleKeywords) {
			return line
		}
	}
	return "Unknown Position"
}

func extractCompany(lines []string) string {
	limit := len(lines)
	if limit > 5 {
		limit = 5
	}
	for _, line := range lines[:limit] {
		line = strings.TrimSpace(line)
		if line == "" || wordCount(line) > 5 {
			continue
		}
		if containsAny(strings.ToLower(line), companyKeywords) {
			return line
		}
	}
	return ""
}

func extractLocation(text string) string {
	for _, p := range locationPatterns {
		if m := p.FindString(text); m != "" {
			return titleCase(strings.ToLower(m))
		}
	}
	return "Not specified"
}

// extractSkillLists classifies every recognized skill as must-have or
// good-to-have. Skills inside a requirements-flavored section are must-have;
// skills inside a preferred-flavored section are good-to-have; elsewhere the
// wording within 50 characters around the mention decides, defaulting to
// must-have.
func (p *JobParser) extractSkillLists(text string, sections map[string]string) ([]string, []string) {
	must := []string{}
	good := []string{}
	seen := map[string]string{}

	classify := func(body, class string) {
		lower := strings.ToLower(body)
		for _, m := range p.skills {
			hit := false
			if m.pattern != nil {
				hit = m.pattern.MatchString(lower)
			} else {
				hit = strings.Contains(lower, m.name)
			}
			if hit {
				if _, ok := seen[m.name]; !ok {
					seen[m.name] = class
				}
			}
		}
	}

	for _, label := range []string{"requirements", "required skills", "must have", "responsibilities"} {
		if body, ok := sections[label]; ok {
			classify(body, "must")
		}
	}
	for _, label := range []string{"preferred", "good to have", "nice to have"} {
		if body, ok := sections[label]; ok {
			classify(body, "good")
		}
	}

	// Mentions outside any classified section: inspect the surrounding text
	lower := strings.ToLower(text)
	for _, m := range p.skills {
		if _, ok := seen[m.name]; ok {
			continue
		}
		idx := -1
		if m.pattern != nil {
			if loc := m.pattern.FindStringIndex(lower); loc != nil {
				idx = loc[0]
			}
		} else {
			idx = strings.Index(lower, m.name)
		}
		if idx < 0 {
			continue
		}
		start := idx - 50
		if start < 0 {
			start = 0
		}
		end := idx + len(m.name) + 50
		if end > len(lower) {
			end = len(lower)
		}
		context := lower[start:end]
		switch {
		case containsAny(context, preferredIndicators):
			seen[m.name] = "good"
		default:
			seen[m.name] = "must"
		}
	}

	// Preserve vocabulary order for stable output
	for _, m := range p.skills {
		switch seen[m.name] {
		case "must":
			must = append(must, titleCase(m.name))
		case "good":
			good = append(good, titleCase(m.name))
		}
	}
	return must, good
}

func extractQualifications(text string) []string {
	quals := []string{}
	seen := map[string]struct{}{}
	lower := strings.ToLower(text)
	for _, kw := range qualificationKeywords {
		if strings.Contains(lower, kw) {
			if _, ok := seen[kw]; !ok {
				seen[kw] = struct{}{}
				quals = append(quals, kw)
			}
		}
	}
	return quals
}

// extractExperiencePhrase renders the years requirement back into a compact
// phrase: a range keeps both bounds, a single number becomes "N+ years".
func extractExperiencePhrase(text string) string {
	if m := experiencePhrasePatterns[0].FindStringSubmatch(text); m != nil {
		return m[1] + "-" + m[2] + " years"
	}
	if m := experiencePhrasePatterns[1].FindStringSubmatch(text); m != nil {
		return m[1] + "+ years"
	}
	return ""
}

func extractJobType(text string) string {
	lower := strings.ToLower(text)
	for _, jt := range jobTypes {
		if strings.Contains(lower, jt) {
			return jt
		}
	}
	return ""
}

// extractDescription prefers an explicit description-flavored section and
// otherwise falls back to the first few substantial lines.
func extractDescription(sections map[string]string, lines []string) string {
	for _, label := range []string{"job description", "about the role", "overview", "responsibilities"} {
		if body, ok := sections[label]; ok {
			return body
		}
	}

	substantial := []string{}
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if len(line) > 20 {
			substantial = append(substantial, line)
			if len(substantial) == 5 {
				break
			}
		}
	}
	return strings.Join(substantial, " ")
}
