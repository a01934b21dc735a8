package engine

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"relevancer/internal/types"
)

const (
	defaultEntryYears = 1.5

	yearsScoreCap        = 1.2
	yearsScoreNoRequired = 0.7

	relevanceTitleWeight  = 0.4
	relevanceSkillsWeight = 0.6

	levelBonusExact    = 0.2
	levelBonusOneAbove = 0.1

	progressionDefault  = 0.5
	progressionPerEntry = 0.2

	recencyCurrent = 1.0
	recencyPast    = 0.7

	weightYears       = 0.4
	weightRelevance   = 0.3
	weightProgression = 0.2
	weightRecency     = 0.1
)

var (
	durationYearsPattern  = regexp.MustCompile(`(\d+\.?\d*)\s*years?`)
	durationMonthsPattern = regexp.MustCompile(`(\d+)\s*months?`)
	durationYrsPattern    = regexp.MustCompile(`(\d+)\s*yrs?`)

	// Ordered so a range like "2-5 years" resolves to its lower bound before
	// the bare pattern can grab the upper number.
	requiredYearsPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(\d+)\s*-\s*\d+\s*years?`),
		regexp.MustCompile(`(?i)minimum\s*(\d+)\s*years?`),
		regexp.MustCompile(`(?i)at\s*least\s*(\d+)\s*years?`),
		regexp.MustCompile(`(?i)(\d+)\+?\s*years?`),
	}
)

// entryYears estimates the duration of one experience entry in years from
// free-text mentions in its duration, description or title. Entries with no
// usable mention count as defaultEntryYears.
func entryYears(entry types.ExperienceEntry) float64 {
	text := strings.ToLower(entry.Duration + " " + entry.Description + " " + entry.Title)

	if m := durationYearsPattern.FindStringSubmatch(text); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			return v
		}
	}
	if m := durationMonthsPattern.FindStringSubmatch(text); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			return v / 12.0
		}
	}
	if m := durationYrsPattern.FindStringSubmatch(text); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			return v
		}
	}
	return defaultEntryYears
}

// requiredYears extracts the number of years a role requirement phrase asks
// for. Ranges yield their lower bound; no recognizable phrase yields zero.
func requiredYears(phrase string) int {
	for _, p := range requiredYearsPatterns {
		if m := p.FindStringSubmatch(phrase); m != nil {
			if v, err := strconv.Atoi(m[1]); err == nil {
				return v
			}
		}
	}
	return 0
}

// evaluateExperience scores the candidate's work history against the role
// and returns the experience sub-score with its evidence.
func (e *Engine) evaluateExperience(profile types.CandidateProfile, role types.RoleRequirement) (float64, types.ExperienceAnalysis) {
	totalYears := 0.0
	for _, entry := range profile.Experience {
		totalYears += entryYears(entry)
	}
	required := requiredYears(role.ExperienceRequired)

	yearsScore := yearsScoreNoRequired
	if required > 0 {
		yearsScore = math.Min(totalYears/float64(required), yearsScoreCap)
	}

	relevance := e.experienceRelevance(profile, role)
	level := e.seniorityLevel(profile, role)
	progression := e.progressionScore(profile.Experience)
	recency := recencyScore(profile.Experience)

	final := math.Min(
		weightYears*yearsScore+
			weightRelevance*relevance+
			weightProgression*progression+
			weightRecency*recency+
			level.Bonus,
		1.0,
	)

	return final, types.ExperienceAnalysis{
		TotalYears:       totalYears,
		RequiredYears:    required,
		YearsScore:       yearsScore,
		RelevanceScore:   relevance,
		ProgressionScore: progression,
		RecencyScore:     recency,
		ExperienceLevel:  level,
		FinalScore:       final,
	}
}

// experienceRelevance averages per-entry relevance: 40% title similarity to
// the role title, 60% fraction of required skills mentioned in the entry.
func (e *Engine) experienceRelevance(profile types.CandidateProfile, role types.RoleRequirement) float64 {
	if len(profile.Experience) == 0 {
		return 0
	}

	roleTitle := strings.ToLower(role.Title)
	jdSkills := make([]string, 0, len(role.MustHaveSkills))
	for _, s := range role.MustHaveSkills {
		jdSkills = append(jdSkills, e.NormalizeSkill(s))
	}

	sum := 0.0
	for _, entry := range profile.Experience {
		entryText := strings.ToLower(entry.Title + " " + entry.Description)
		score := relevanceTitleWeight * similarityRatio(strings.ToLower(entry.Title), roleTitle)
		if len(jdSkills) > 0 {
			mentioned := 0
			for _, s := range jdSkills {
				if strings.Contains(entryText, s) {
					mentioned++
				}
			}
			score += relevanceSkillsWeight * float64(mentioned) / float64(len(jdSkills))
		}
		sum += score
	}
	return sum / float64(len(profile.Experience))
}

// seniorityLevel classifies both sides and grants a bonus when the candidate
// meets or exceeds the required level by exactly one step.
func (e *Engine) seniorityLevel(profile types.CandidateProfile, role types.RoleRequirement) types.ExperienceLevel {
	roleText := strings.ToLower(role.Title + " " + role.RawText)
	requiredLevel := "mid"
	for _, lvl := range e.tables.SeniorityLevels {
		hit := false
		for _, ind := range lvl.Indicators {
			if strings.Contains(roleText, ind) {
				hit = true
				break
			}
		}
		if hit {
			requiredLevel = lvl.Level
			break
		}
	}

	scores := make(map[string]int, len(e.tables.SeniorityLevels))
	for _, lvl := range e.tables.SeniorityLevels {
		scores[lvl.Level] = 0
	}
	for _, entry := range profile.Experience {
		entryText := strings.ToLower(entry.Title + " " + entry.Description)
		for _, lvl := range e.tables.SeniorityLevels {
			for _, ind := range lvl.Indicators {
				if strings.Contains(entryText, ind) {
					scores[lvl.Level]++
				}
			}
		}
	}

	// Highest-hit level wins; ties resolve toward the more senior level
	// because SeniorityLevels is ordered senior-first. No evidence means mid.
	candidateLevel := "mid"
	best := 0
	for _, lvl := range e.tables.SeniorityLevels {
		if scores[lvl.Level] > best {
			best = scores[lvl.Level]
			candidateLevel = lvl.Level
		}
	}

	bonus := 0.0
	switch {
	case candidateLevel == requiredLevel:
		bonus = levelBonusExact
	case candidateLevel == "senior" && requiredLevel == "mid",
		candidateLevel == "mid" && requiredLevel == "junior":
		bonus = levelBonusOneAbove
	}

	return types.ExperienceLevel{
		RequiredLevel:  requiredLevel,
		CandidateLevel: candidateLevel,
		LevelScores:    scores,
		Bonus:          bonus,
	}
}

// progressionScore rewards entries that show career growth. Fewer than two
// entries gives the neutral default.
func (e *Engine) progressionScore(entries []types.ExperienceEntry) float64 {
	if len(entries) < 2 {
		return progressionDefault
	}
	score := 0.0
	for _, entry := range entries {
		entryText := strings.ToLower(entry.Title + " " + entry.Description)
		for _, ind := range e.tables.ProgressionIndicators {
			if strings.Contains(entryText, ind) {
				score += progressionPerEntry
				break
			}
		}
	}
	return math.Min(score, 1.0)
}

// recencyScore checks whether the most recent entry looks like a current
// position. Entries are ordered most-recent first.
func recencyScore(entries []types.ExperienceEntry) float64 {
	if len(entries) == 0 {
		return 0
	}
	latest := strings.ToLower(entries[0].Description + " " + entries[0].Duration)
	if strings.Contains(latest, "current") || strings.Contains(latest, "present") {
		return recencyCurrent
	}
	return recencyPast
}
