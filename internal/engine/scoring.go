package engine

import (
	"fmt"
	"math"
	"strings"

	"relevancer/internal/types"
)

const (
	manySkillsThreshold = 5

	highPerformerThreshold = 0.8
	highPerformerPull      = 0.3
	lowScoreThreshold      = 0.3
	lowScoreFactor         = 0.8
	exceptionalThreshold   = 0.9
	exceptionalSkillsAdd   = 0.1
	exceptionalExpAdd      = 0.05
)

// seniorRoleKeywords shift weight toward experience when they appear in the
// role's experience requirement phrase
var seniorRoleKeywords = []string{"senior", "lead", "architect", "manager"}

// dynamicWeights adapts the base dimension weights to the role's emphasis
// and renormalizes them to sum to one.
func (e *Engine) dynamicWeights(role types.RoleRequirement) types.Weights {
	w := e.cfg.BaseWeights

	if len(role.MustHaveSkills) > manySkillsThreshold {
		w.Skills += 0.10
		w.Semantic -= 0.05
		w.Education -= 0.05
	}

	expPhrase := strings.ToLower(role.ExperienceRequired)
	for _, kw := range seniorRoleKeywords {
		if strings.Contains(expPhrase, kw) {
			w.Experience += 0.10
			w.Skills -= 0.05
			w.Semantic -= 0.05
			break
		}
	}

	total := w.Skills + w.Experience + w.Education + w.Semantic
	if total > 0 {
		w.Skills /= total
		w.Experience /= total
		w.Education /= total
		w.Semantic /= total
	}
	return w
}

// applyScoringCurve shapes the weighted base score: strong candidates are
// pulled toward the top, weak ones pushed down, and near-perfect skill or
// experience sub-scores earn extra credit. The result stays in [0, 1].
func applyScoringCurve(base, skills, experience float64) (float64, types.ScoreAdjustments) {
	var adj types.ScoreAdjustments
	final := base

	if base >= highPerformerThreshold {
		final = base + (1.0-base)*highPerformerPull
		adj.HighPerformerBonus = final - base
	} else if base < lowScoreThreshold {
		final = base * lowScoreFactor
		adj.LowScorePenalty = base - final
	}

	if skills > exceptionalThreshold {
		final = math.Min(final+exceptionalSkillsAdd, 1.0)
		adj.ExceptionalSkillsBonus = exceptionalSkillsAdd
	}
	if experience > exceptionalThreshold {
		final = math.Min(final+exceptionalExpAdd, 1.0)
		adj.ExceptionalExperienceBonus = exceptionalExpAdd
	}

	return math.Max(0, math.Min(final, 1.0)), adj
}

// verdictFor maps the final percentage to a verdict label, with the two
// middle bands refined by the skills and experience percentages.
func verdictFor(finalPct, skillsPct, expPct float64) string {
	switch {
	case finalPct >= 85:
		return types.VerdictExcellent
	case finalPct >= 75:
		if skillsPct >= 80 || expPct >= 80 {
			return types.VerdictStrong
		}
		return types.VerdictGood
	case finalPct >= 60:
		if skillsPct >= 70 {
			return types.VerdictPotential
		}
		return types.VerdictModerate
	case finalPct >= 40:
		return types.VerdictWeak
	default:
		return types.VerdictPoor
	}
}

// confidenceFor rates how much the verdict can be trusted, from required-skill
// coverage and the experience sub-score.
func confidenceFor(skills types.SkillsAnalysis, experienceScore float64) string {
	coverage := 0.0
	if skills.TotalSkillsRequired > 0 {
		coverage = float64(skills.SkillsMatched) / float64(skills.TotalSkillsRequired)
	}

	switch {
	case coverage >= 0.8 && experienceScore >= 0.8:
		return types.ConfidenceVeryHigh
	case coverage >= 0.6 && experienceScore >= 0.6:
		return types.ConfidenceHigh
	case coverage >= 0.4 || experienceScore >= 0.6:
		return types.ConfidenceMedium
	default:
		return types.ConfidenceLow
	}
}

// buildSummary renders the one-line human-readable assessment.
func buildSummary(finalPct float64, verdict string, skills types.SkillsAnalysis, experience types.ExperienceAnalysis) string {
	parts := []string{
		fmt.Sprintf("Overall Assessment: %s (%.1f%%)", verdict, finalPct),
	}

	if skills.TotalSkillsRequired > 0 {
		pct := float64(skills.SkillsMatched) / float64(skills.TotalSkillsRequired) * 100
		parts = append(parts, fmt.Sprintf("Skills Match: %d/%d required skills (%.0f%%)",
			skills.SkillsMatched, skills.TotalSkillsRequired, pct))
	}
	if n := len(skills.MissingSkills); n > 0 {
		noun := "skill"
		if n > 1 {
			noun = "skills"
		}
		parts = append(parts, fmt.Sprintf("Missing %d critical %s", n, noun))
	}
	parts = append(parts, fmt.Sprintf("Experience Level: %s (required: %s)",
		experience.ExperienceLevel.CandidateLevel, experience.ExperienceLevel.RequiredLevel))

	return strings.Join(parts, " | ")
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
