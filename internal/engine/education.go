package engine

import (
	"strings"

	"relevancer/internal/types"
)

const educationNeutralScore = 0.5

// educationMatch scores the candidate's education against the role's
// qualification list by bidirectional substring containment. A role without
// qualifications scores neutral.
func (e *Engine) educationMatch(profile types.CandidateProfile, role types.RoleRequirement) (float64, types.EducationAnalysis) {
	analysis := types.EducationAnalysis{
		RequiredQualifications: role.Qualifications,
	}

	if len(role.Qualifications) == 0 {
		analysis.Score = educationNeutralScore
		return educationNeutralScore, analysis
	}

	degrees := make([]string, 0, len(profile.Education))
	for _, edu := range profile.Education {
		if d := strings.ToLower(strings.TrimSpace(edu.Degree)); d != "" {
			degrees = append(degrees, d)
		}
	}

	matches := 0
	for _, qual := range role.Qualifications {
		q := strings.ToLower(qual)
		for _, d := range degrees {
			if strings.Contains(d, q) || strings.Contains(q, d) {
				matches++
				break
			}
		}
	}

	score := float64(matches) / float64(len(role.Qualifications))
	analysis.MatchedCount = matches
	analysis.Score = score
	return score, analysis
}
