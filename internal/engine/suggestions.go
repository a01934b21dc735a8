package engine

import (
	"fmt"
	"strings"

	"relevancer/internal/types"
)

const maxSuggestions = 6

const (
	suggestLowProgression   = "Career growth: highlight promotions, expanded responsibilities, and leadership moments in your experience entries"
	suggestNoExpertise      = "Specialization: deepen one skill area until you can show five or more related skills in it"
	suggestNoDiversity      = "Versatility: broaden your skill set across more technology areas to stand out"
	suggestLowSemantic      = "Keyword optimization: mirror the job description's terminology where it truthfully describes your work"
	suggestSeniorLeadership = "Leadership: emphasize mentoring, architecture decisions, and team leadership to match the seniority this role expects"
	suggestMidOwnership     = "Ownership: call out features or components you owned end to end"
	suggestEducation        = "Certifications: consider certifications or courses that map to the role's qualification requirements"
)

// buildSuggestions produces up to maxSuggestions improvement hints, ordered
// by priority: concrete skill gaps first, then positioning advice.
func (e *Engine) buildSuggestions(profile types.CandidateProfile, role types.RoleRequirement, analysis types.DetailedAnalysis) []string {
	suggestions := []string{}
	add := func(s string) {
		for _, existing := range suggestions {
			if existing == s {
				return
			}
		}
		suggestions = append(suggestions, s)
	}

	skills := analysis.SkillsMatch
	if len(skills.MissingSkills) > 0 {
		top := skills.MissingSkills
		if len(top) > 3 {
			top = top[:3]
		}
		add(fmt.Sprintf("Priority skills: focus on learning %s as they are critical for this role",
			strings.Join(top, ", ")))
	}

	covered := make(map[string]struct{}, len(skills.CategoryCoverage.CoveredCategories))
	for _, c := range skills.CategoryCoverage.CoveredCategories {
		covered[c] = struct{}{}
	}
	missingCats := []string{}
	for _, c := range skills.CategoryCoverage.RequiredCategories {
		if _, ok := covered[c]; !ok {
			missingCats = append(missingCats, c)
		}
	}
	if len(missingCats) > 0 {
		if len(missingCats) > 2 {
			missingCats = missingCats[:2]
		}
		add(fmt.Sprintf("Skill areas: develop expertise in %s", strings.Join(missingCats, " and ")))
	}

	level := analysis.ExperienceMatch.ExperienceLevel
	if level.CandidateLevel != level.RequiredLevel {
		switch level.RequiredLevel {
		case "senior":
			add(suggestSeniorLeadership)
		case "mid":
			add(suggestMidOwnership)
		}
	}

	if analysis.ExperienceMatch.ProgressionScore < 0.5 {
		add(suggestLowProgression)
	}
	if skills.Bonuses.ExpertiseBonus == 0 {
		add(suggestNoExpertise)
	}
	if skills.Bonuses.DiversityBonus == 0 {
		add(suggestNoDiversity)
	}
	if analysis.SemanticMatch.Similarity < 0.4 {
		add(suggestLowSemantic)
	}
	if len(profile.Projects) == 0 && len(role.MustHaveSkills) > 0 {
		top := role.MustHaveSkills
		if len(top) > 2 {
			top = top[:2]
		}
		add(fmt.Sprintf("Portfolio: add projects that showcase %s", strings.Join(top, " and ")))
	}
	if analysis.EducationMatch.Score < 0.7 {
		add(suggestEducation)
	}

	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}
	return suggestions
}
