package types

// EducationEntry is a single education record extracted from a resume
type EducationEntry struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Year        string `json:"year,omitempty"`
}

// ExperienceEntry is a single work-history record extracted from a resume.
// Entries are ordered most-recent first.
type ExperienceEntry struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Description string `json:"description"`
	Duration    string `json:"duration,omitempty"`
}

// ProjectEntry is a single project record extracted from a resume
type ProjectEntry struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// CandidateProfile is the structured representation of a resume.
// Skill strings are stored as extracted; normalization happens only inside
// the matching engine and never mutates the profile.
type CandidateProfile struct {
	Name           string            `json:"name"`
	Email          string            `json:"email,omitempty"`
	Phone          string            `json:"phone,omitempty"`
	Skills         []string          `json:"skills"`
	Education      []EducationEntry  `json:"education"`
	Experience     []ExperienceEntry `json:"experience"`
	Projects       []ProjectEntry    `json:"projects"`
	Certifications []string          `json:"certifications"`
	Summary        string            `json:"summary,omitempty"`
	RawText        string            `json:"raw_text"`
}

// RoleRequirement is the structured representation of a job description.
// MustHaveSkills and GoodToHaveSkills are disjoint in intent but not enforced
// disjoint in data; the matcher tolerates overlap.
type RoleRequirement struct {
	Title              string   `json:"title"`
	Company            string   `json:"company,omitempty"`
	Location           string   `json:"location"`
	MustHaveSkills     []string `json:"must_have_skills"`
	GoodToHaveSkills   []string `json:"good_to_have_skills"`
	Qualifications     []string `json:"qualifications"`
	ExperienceRequired string   `json:"experience_required,omitempty"`
	JobType            string   `json:"job_type,omitempty"`
	Description        string   `json:"description"`
	RawText            string   `json:"raw_text"`
}

// ResultKind distinguishes how an evaluation result was produced
type ResultKind string

const (
	// ResultSuccess means the full scoring pipeline ran as configured
	ResultSuccess ResultKind = "success"
	// ResultDegraded means scoring completed but an external dependency
	// (the embedding provider) failed and a lexical fallback was used
	ResultDegraded ResultKind = "degraded"
	// ResultError is the sentinel produced when scoring itself failed
	ResultError ResultKind = "error"
)

// SkillBonuses breaks down the additive bonuses applied to the skills score
type SkillBonuses struct {
	GoodToHaveBonus float64 `json:"good_to_have_bonus"`
	DiversityBonus  float64 `json:"diversity_bonus"`
	ExpertiseBonus  float64 `json:"expertise_bonus"`
	TotalBonus      float64 `json:"total_bonus"`
}

// CategoryCoverage reports how well candidate skills cover the skill
// categories required by the role
type CategoryCoverage struct {
	RequiredCategories []string `json:"required_categories"`
	CoveredCategories  []string `json:"covered_categories"`
	CoverageRatio      float64  `json:"coverage_ratio"`
}

// SkillsAnalysis carries the evidence behind the skills sub-score
type SkillsAnalysis struct {
	BaseScore           float64            `json:"base_score"`
	MatchedSkills       []string           `json:"matched_skills"`
	MissingSkills       []string           `json:"missing_skills"`
	SkillMatchScores    map[string]float64 `json:"skill_match_scores"`
	Bonuses             SkillBonuses       `json:"bonuses"`
	CategoryCoverage    CategoryCoverage   `json:"skill_categories_coverage"`
	TotalSkillsRequired int                `json:"total_skills_required"`
	SkillsMatched       int                `json:"skills_matched"`
}

// ExperienceLevel records the seniority determination for both sides
type ExperienceLevel struct {
	RequiredLevel  string         `json:"required_level"`
	CandidateLevel string         `json:"candidate_level"`
	LevelScores    map[string]int `json:"level_scores"`
	Bonus          float64        `json:"bonus"`
}

// ExperienceAnalysis carries the evidence behind the experience sub-score
type ExperienceAnalysis struct {
	TotalYears       float64         `json:"total_years"`
	RequiredYears    int             `json:"required_years"`
	YearsScore       float64         `json:"years_score"`
	RelevanceScore   float64         `json:"relevance_score"`
	ProgressionScore float64         `json:"progression_score"`
	RecencyScore     float64         `json:"recency_score"`
	ExperienceLevel  ExperienceLevel `json:"experience_level"`
	FinalScore       float64         `json:"final_score"`
}

// SemanticAnalysis carries the evidence behind the semantic sub-score
type SemanticAnalysis struct {
	Similarity float64 `json:"similarity"`
	Method     string  `json:"method"`
}

// EducationAnalysis carries the evidence behind the education sub-score
type EducationAnalysis struct {
	RequiredQualifications []string `json:"required_qualifications"`
	MatchedCount           int      `json:"matched_count"`
	Score                  float64  `json:"score"`
}

// Weights holds the dimension weights actually used for one evaluation
type Weights struct {
	Skills     float64 `json:"skills_match"`
	Experience float64 `json:"experience_relevance"`
	Education  float64 `json:"education_match"`
	Semantic   float64 `json:"semantic_similarity"`
}

// ScoreAdjustments details the non-linear shaping applied to the base score
type ScoreAdjustments struct {
	HighPerformerBonus         float64 `json:"high_performer_bonus"`
	LowScorePenalty            float64 `json:"low_score_penalty"`
	ExceptionalSkillsBonus     float64 `json:"exceptional_skills_bonus"`
	ExceptionalExperienceBonus float64 `json:"exceptional_experience_bonus"`
}

// ScoringBreakdown exposes the pre- and post-curve scores
type ScoringBreakdown struct {
	BaseScore   float64          `json:"base_score"`
	FinalScore  float64          `json:"final_score"`
	Adjustments ScoreAdjustments `json:"score_adjustments"`
}

// DetailedAnalysis bundles the intermediate evidence for every sub-score
type DetailedAnalysis struct {
	SkillsMatch      SkillsAnalysis     `json:"skills_match"`
	ExperienceMatch  ExperienceAnalysis `json:"experience_match"`
	SemanticMatch    SemanticAnalysis   `json:"semantic_match"`
	EducationMatch   EducationAnalysis  `json:"education_match"`
	DynamicWeights   Weights            `json:"dynamic_weights"`
	ScoringBreakdown ScoringBreakdown   `json:"scoring_breakdown"`
}

// EvaluationResult is the outcome of matching one CandidateProfile against
// one RoleRequirement. It is created fresh on every evaluation and never
// mutated after construction.
type EvaluationResult struct {
	Kind                 ResultKind       `json:"result_kind"`
	RelevanceScore       float64          `json:"relevance_score"`
	Verdict              string           `json:"verdict"`
	MatchConfidence      string           `json:"match_confidence"`
	MissingSkills        []string         `json:"missing_skills"`
	Suggestions          []string         `json:"suggestions"`
	SkillsMatchScore     float64          `json:"skills_match_score"`
	ExperienceMatchScore float64          `json:"experience_match_score"`
	SemanticMatchScore   float64          `json:"semantic_match_score"`
	EducationMatchScore  float64          `json:"education_match_score"`
	DetailedAnalysis     DetailedAnalysis `json:"detailed_analysis"`
	EvaluationSummary    string           `json:"evaluation_summary"`
}

// Verdict labels, ordered best to worst
const (
	VerdictExcellent = "Excellent Match"
	VerdictStrong    = "Strong Match"
	VerdictGood      = "Good Match"
	VerdictPotential = "Potential Match"
	VerdictModerate  = "Moderate Match"
	VerdictWeak      = "Weak Match"
	VerdictPoor      = "Poor Match"
	VerdictError     = "Error"
)

// Match-confidence labels
const (
	ConfidenceVeryHigh = "Very High"
	ConfidenceHigh     = "High"
	ConfidenceMedium   = "Medium"
	ConfidenceLow      = "Low"
)
