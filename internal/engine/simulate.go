package engine

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"relevancer/internal/types"
)

// simulatedSkillPool feeds the missing-skills sample in simulation mode
var simulatedSkillPool = []string{
	"Python", "JavaScript", "React", "Node.js", "SQL", "AWS", "Docker",
	"Kubernetes", "Machine Learning", "Data Analysis", "Git", "REST APIs",
	"TypeScript", "MongoDB", "PostgreSQL", "CI/CD",
}

var simulatedSuggestionTemplates = []string{
	"Priority skills: focus on learning %s to strengthen your profile",
	"Portfolio: add a project that demonstrates %s in a realistic setting",
	"Keyword optimization: mirror the job description's terminology where it truthfully describes your work",
	"Career growth: highlight promotions and expanded responsibilities in your experience entries",
	"Specialization: deepen one skill area until you can show real expertise in it",
	"Certifications: consider a certification that maps to the role's qualification requirements",
}

// simulate fabricates a plausible evaluation without scoring anything. It
// picks a random band from the configured table, jitters sub-scores around
// the final score, and keeps verdict and confidence consistent with it.
func (e *Engine) simulate(role types.RoleRequirement) types.EvaluationResult {
	band := e.cfg.ScoreBands[rand.IntN(len(e.cfg.ScoreBands))]
	final := round2(randBetween(band.Min, band.Max))

	skills := round2(randBetween(max(20, final-15), min(100, final+10)))
	experience := round2(randBetween(max(15, final-20), min(100, final+15)))
	semantic := round2(randBetween(max(10, final-25), min(100, final+5)))
	education := round2(randBetween(max(30, final-10), min(100, final+20)))

	verdict := simulatedVerdict(final)
	confidence := simulatedConfidence(final)
	missing := sampleMissingSkills()
	suggestions := sampleSuggestions(role)

	skillsAnalysis := types.SkillsAnalysis{
		BaseScore:        skills / 100,
		MatchedSkills:    []string{},
		MissingSkills:    missing,
		SkillMatchScores: map[string]float64{},
		Bonuses: types.SkillBonuses{
			GoodToHaveBonus: round2(randBetween(0, 0.2)),
			DiversityBonus:  round2(randBetween(0, 0.1)),
			ExpertiseBonus:  round2(randBetween(0, 0.15)),
		},
		TotalSkillsRequired: len(role.MustHaveSkills),
		SkillsMatched:       max(0, len(role.MustHaveSkills)-len(missing)),
	}
	skillsAnalysis.Bonuses.TotalBonus = skillsAnalysis.Bonuses.GoodToHaveBonus +
		skillsAnalysis.Bonuses.DiversityBonus + skillsAnalysis.Bonuses.ExpertiseBonus

	summary := fmt.Sprintf("Overall Assessment: %s (%.1f%%) | Simulated evaluation, no documents were scored", verdict, final)

	return types.EvaluationResult{
		Kind:                 types.ResultSuccess,
		RelevanceScore:       final,
		Verdict:              verdict,
		MatchConfidence:      confidence,
		MissingSkills:        missing,
		Suggestions:          suggestions,
		SkillsMatchScore:     skills,
		ExperienceMatchScore: experience,
		SemanticMatchScore:   semantic,
		EducationMatchScore:  education,
		DetailedAnalysis: types.DetailedAnalysis{
			SkillsMatch: skillsAnalysis,
			ExperienceMatch: types.ExperienceAnalysis{
				FinalScore: experience / 100,
				ExperienceLevel: types.ExperienceLevel{
					RequiredLevel:  "mid",
					CandidateLevel: "mid",
					LevelScores:    map[string]int{},
				},
			},
			SemanticMatch:  types.SemanticAnalysis{Similarity: semantic / 100, Method: "simulated"},
			EducationMatch: types.EducationAnalysis{Score: education / 100},
		},
		EvaluationSummary: summary,
	}
}

// simulatedVerdict keeps the label consistent with the fabricated score by
// picking from the two labels plausible at that level.
func simulatedVerdict(final float64) string {
	var pair [2]string
	switch {
	case final >= 85:
		pair = [2]string{types.VerdictExcellent, types.VerdictStrong}
	case final >= 75:
		pair = [2]string{types.VerdictStrong, types.VerdictGood}
	case final >= 65:
		pair = [2]string{types.VerdictGood, types.VerdictPotential}
	case final >= 55:
		pair = [2]string{types.VerdictPotential, types.VerdictModerate}
	case final >= 45:
		pair = [2]string{types.VerdictModerate, types.VerdictWeak}
	default:
		pair = [2]string{types.VerdictWeak, types.VerdictPoor}
	}
	return pair[rand.IntN(2)]
}

func simulatedConfidence(final float64) string {
	switch {
	case final >= 80:
		return types.ConfidenceHigh
	case final >= 60:
		return types.ConfidenceMedium
	default:
		return types.ConfidenceLow
	}
}

func sampleMissingSkills() []string {
	n := rand.IntN(6)
	missing := make([]string, 0, n)
	for _, idx := range rand.Perm(len(simulatedSkillPool))[:n] {
		missing = append(missing, simulatedSkillPool[idx])
	}
	return missing
}

func sampleSuggestions(role types.RoleRequirement) []string {
	fill := "a key skill from the job description"
	if len(role.MustHaveSkills) > 0 {
		top := role.MustHaveSkills
		if len(top) > 2 {
			top = top[:2]
		}
		fill = strings.Join(top, " and ")
	}

	n := 3 + rand.IntN(4)
	suggestions := make([]string, 0, n)
	for _, idx := range rand.Perm(len(simulatedSuggestionTemplates))[:n] {
		tmpl := simulatedSuggestionTemplates[idx]
		if strings.Contains(tmpl, "%s") {
			suggestions = append(suggestions, fmt.Sprintf(tmpl, fill))
		} else {
			suggestions = append(suggestions, tmpl)
		}
	}
	return suggestions
}

func randBetween(lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + rand.Float64()*(hi-lo)
}
