// Package engine scores how well a candidate profile fits a role requirement.
// Scoring is deterministic given the same inputs, tables and configuration;
// the optional simulation strategy is the only source of randomness.
package engine

import (
	"context"
	"fmt"

	"relevancer/internal/errors"
	"relevancer/internal/types"
)

// ScoreBand is one named range of final percentages used by the simulation
// strategy.
type ScoreBand struct {
	Name string
	Min  float64
	Max  float64
}

// Config holds the tunable scoring parameters. Zero BaseWeights are invalid;
// use DefaultConfig as the starting point.
type Config struct {
	BaseWeights types.Weights
	Simulation  bool
	ScoreBands  []ScoreBand
}

// DefaultConfig returns the standard weighting and band table.
func DefaultConfig() Config {
	return Config{
		BaseWeights: types.Weights{
			Skills:     0.45,
			Experience: 0.25,
			Education:  0.15,
			Semantic:   0.15,
		},
		ScoreBands: DefaultScoreBands(),
	}
}

// DefaultScoreBands returns the seven built-in simulation bands.
func DefaultScoreBands() []ScoreBand {
	return []ScoreBand{
		{Name: "excellent", Min: 85, Max: 95},
		{Name: "strong", Min: 75, Max: 84},
		{Name: "good", Min: 65, Max: 74},
		{Name: "potential", Min: 55, Max: 64},
		{Name: "moderate", Min: 45, Max: 54},
		{Name: "weak", Min: 30, Max: 44},
		{Name: "poor", Min: 15, Max: 29},
	}
}

// Engine evaluates candidate profiles against role requirements. It is
// stateless after construction and safe for concurrent use.
type Engine struct {
	cfg      Config
	tables   Tables
	embedder EmbeddingProvider
	logger   *errors.Logger
}

// New builds an engine. embedder may be nil, which selects the lexical
// semantic strategy; logger may be nil, which silences diagnostics.
func New(cfg Config, tables Tables, embedder EmbeddingProvider, logger *errors.Logger) *Engine {
	if len(cfg.ScoreBands) == 0 {
		cfg.ScoreBands = DefaultScoreBands()
	}
	return &Engine{
		cfg:      cfg,
		tables:   tables,
		embedder: embedder,
		logger:   logger,
	}
}

// Evaluate runs the full scoring pipeline and always returns a usable
// result: any internal failure is recovered into the Error-verdict sentinel
// instead of propagating.
func (e *Engine) Evaluate(ctx context.Context, profile types.CandidateProfile, role types.RoleRequirement) (result types.EvaluationResult) {
	defer func() {
		if r := recover(); r != nil {
			if e.logger != nil {
				e.logger.LogError(
					errors.NewEvaluationError(errors.ErrCodeEvaluationFailed,
						fmt.Sprintf("evaluation panicked: %v", r), nil),
					"Evaluation failed",
				)
			}
			result = errorResult()
		}
	}()

	if e.cfg.Simulation {
		return e.simulate(role)
	}

	skillsScore, skillsAnalysis := e.matchSkills(profile, role)
	expScore, expAnalysis := e.evaluateExperience(profile, role)
	semScore, semAnalysis, degraded := e.semanticMatch(ctx, profile, role)
	eduScore, eduAnalysis := e.educationMatch(profile, role)

	weights := e.dynamicWeights(role)
	base := skillsScore*weights.Skills +
		expScore*weights.Experience +
		eduScore*weights.Education +
		semScore*weights.Semantic
	final, adjustments := applyScoringCurve(base, skillsScore, expScore)

	finalPct := round2(final * 100)
	skillsPct := round2(skillsScore * 100)
	expPct := round2(expScore * 100)
	semPct := round2(semScore * 100)
	eduPct := round2(eduScore * 100)

	verdict := verdictFor(finalPct, skillsPct, expPct)
	confidence := confidenceFor(skillsAnalysis, expScore)

	analysis := types.DetailedAnalysis{
		SkillsMatch:     skillsAnalysis,
		ExperienceMatch: expAnalysis,
		SemanticMatch:   semAnalysis,
		EducationMatch:  eduAnalysis,
		DynamicWeights:  weights,
		ScoringBreakdown: types.ScoringBreakdown{
			BaseScore:   round2(base * 100),
			FinalScore:  finalPct,
			Adjustments: adjustments,
		},
	}

	kind := types.ResultSuccess
	if degraded {
		kind = types.ResultDegraded
	}

	return types.EvaluationResult{
		Kind:                 kind,
		RelevanceScore:       finalPct,
		Verdict:              verdict,
		MatchConfidence:      confidence,
		MissingSkills:        skillsAnalysis.MissingSkills,
		Suggestions:          e.buildSuggestions(profile, role, analysis),
		SkillsMatchScore:     skillsPct,
		ExperienceMatchScore: expPct,
		SemanticMatchScore:   semPct,
		EducationMatchScore:  eduPct,
		DetailedAnalysis:     analysis,
		EvaluationSummary:    buildSummary(finalPct, verdict, skillsAnalysis, expAnalysis),
	}
}

// errorResult is the sentinel returned when scoring itself failed.
func errorResult() types.EvaluationResult {
	return types.EvaluationResult{
		Kind:            types.ResultError,
		Verdict:         types.VerdictError,
		MatchConfidence: types.ConfidenceLow,
		MissingSkills:   []string{},
		Suggestions: []string{
			"Evaluation failed due to an internal error. Verify both documents contain readable text and try again",
		},
		EvaluationSummary: "Evaluation failed due to an internal error",
	}
}
