package engine

import (
	"math"
	"slices"
	"strings"

	"relevancer/internal/types"
)

const (
	pairExact        = 1.0
	pairFuzzy        = 0.8
	pairSameCategory = 0.6

	skillMatchThreshold = 0.5
	fuzzyRatioThreshold = 0.75

	goodToHaveBonusMax = 0.2
	diversityBonus     = 0.1
	expertiseBonus     = 0.15

	diversityMinCategories = 3
	expertiseMinSkills     = 5
)

// NormalizeSkill lower-cases and trims a skill name and collapses known
// spelling variants onto their canonical form. It is idempotent: canonical
// names normalize to themselves.
func (e *Engine) NormalizeSkill(skill string) string {
	s := strings.ToLower(strings.TrimSpace(skill))
	for _, syn := range e.tables.Synonyms {
		if s == syn.Canonical || slices.Contains(syn.Variants, s) {
			return syn.Canonical
		}
	}
	return s
}

// skillCategory returns the name of the first category claiming the skill,
// or CategoryOther when no category does.
func (e *Engine) skillCategory(skill string) string {
	n := e.NormalizeSkill(skill)
	for _, cat := range e.tables.Categories {
		if _, ok := cat.Skills[n]; ok {
			return cat.Name
		}
	}
	return CategoryOther
}

// pairwiseSkillScore grades one required skill against one candidate skill.
// Both arguments must already be normalized.
func (e *Engine) pairwiseSkillScore(required, candidate string) float64 {
	if required == candidate {
		return pairExact
	}
	if e.fuzzySkillMatch(required, candidate) {
		return pairFuzzy
	}
	reqCat := e.skillCategory(required)
	if reqCat != CategoryOther && reqCat == e.skillCategory(candidate) {
		return pairSameCategory
	}
	return 0
}

// fuzzySkillMatch reports whether two skill names are close enough to count
// as the same skill spelled differently.
func (e *Engine) fuzzySkillMatch(a, b string) bool {
	if a == b {
		return true
	}
	if e.NormalizeSkill(a) == e.NormalizeSkill(b) {
		return true
	}
	if len(a) > 3 && len(b) > 3 && (strings.Contains(a, b) || strings.Contains(b, a)) {
		return true
	}
	return similarityRatio(a, b) >= fuzzyRatioThreshold
}

// matchSkills scores the candidate's skills against the role's must-have
// list and returns the final skills sub-score with its evidence.
func (e *Engine) matchSkills(profile types.CandidateProfile, role types.RoleRequirement) (float64, types.SkillsAnalysis) {
	candidate := make([]string, 0, len(profile.Skills))
	for _, s := range profile.Skills {
		candidate = append(candidate, e.NormalizeSkill(s))
	}
	must := make([]string, 0, len(role.MustHaveSkills))
	for _, s := range role.MustHaveSkills {
		must = append(must, e.NormalizeSkill(s))
	}
	good := make([]string, 0, len(role.GoodToHaveSkills))
	for _, s := range role.GoodToHaveSkills {
		good = append(good, e.NormalizeSkill(s))
	}

	matched := []string{}
	missing := []string{}
	scores := make(map[string]float64)
	for _, req := range must {
		best := 0.0
		for _, cand := range candidate {
			if score := e.pairwiseSkillScore(req, cand); score > best {
				best = score
			}
		}
		if best > skillMatchThreshold {
			matched = append(matched, req)
			scores[req] = best
		} else {
			missing = append(missing, req)
		}
	}

	base := 0.5
	if len(must) > 0 {
		sum := 0.0
		for _, v := range scores {
			sum += v
		}
		base = sum / float64(len(must))
	}

	bonuses := e.skillBonuses(candidate, good)
	final := math.Min(base+bonuses.TotalBonus, 1.0)
	coverage := e.categoryCoverage(candidate, must)

	return final, types.SkillsAnalysis{
		BaseScore:           base,
		MatchedSkills:       matched,
		MissingSkills:       missing,
		SkillMatchScores:    scores,
		Bonuses:             bonuses,
		CategoryCoverage:    coverage,
		TotalSkillsRequired: len(must),
		SkillsMatched:       len(matched),
	}
}

// skillBonuses computes the additive bonuses on top of the base aggregate:
// good-to-have coverage, category diversity, and single-category expertise.
func (e *Engine) skillBonuses(candidate, good []string) types.SkillBonuses {
	var b types.SkillBonuses

	if len(good) > 0 {
		goodMatched := 0
		for _, g := range good {
			for _, cand := range candidate {
				if e.fuzzySkillMatch(g, cand) {
					goodMatched++
					break
				}
			}
		}
		b.GoodToHaveBonus = float64(goodMatched) / float64(len(good)) * goodToHaveBonusMax
	}

	counts := make(map[string]int)
	for _, cand := range candidate {
		counts[e.skillCategory(cand)]++
	}
	if len(counts) >= diversityMinCategories {
		b.DiversityBonus = diversityBonus
	}
	for _, n := range counts {
		if n >= expertiseMinSkills {
			b.ExpertiseBonus = expertiseBonus
			break
		}
	}

	b.TotalBonus = b.GoodToHaveBonus + b.DiversityBonus + b.ExpertiseBonus
	return b
}

// categoryCoverage reports which skill categories the role requires and how
// many of them the candidate covers. A role requiring no categories is fully
// covered.
func (e *Engine) categoryCoverage(candidate, must []string) types.CategoryCoverage {
	required := make(map[string]struct{})
	requiredOrder := []string{}
	for _, req := range must {
		cat := e.skillCategory(req)
		if _, seen := required[cat]; !seen {
			required[cat] = struct{}{}
			requiredOrder = append(requiredOrder, cat)
		}
	}

	have := make(map[string]struct{})
	for _, cand := range candidate {
		have[e.skillCategory(cand)] = struct{}{}
	}

	covered := []string{}
	for _, cat := range requiredOrder {
		if _, ok := have[cat]; ok {
			covered = append(covered, cat)
		}
	}

	ratio := 1.0
	if len(requiredOrder) > 0 {
		ratio = float64(len(covered)) / float64(len(requiredOrder))
	}

	return types.CategoryCoverage{
		RequiredCategories: requiredOrder,
		CoveredCategories:  covered,
		CoverageRatio:      ratio,
	}
}
