package engine

import (
	"context"
	"testing"

	"relevancer/internal/types"
)

func newSimulationEngine(bands []ScoreBand) *Engine {
	cfg := DefaultConfig()
	cfg.Simulation = true
	if bands != nil {
		cfg.ScoreBands = bands
	}
	return New(cfg, DefaultTables(), nil, nil)
}

func TestSimulateWithinConfiguredBands(t *testing.T) {
	e := newSimulationEngine(nil)
	bands := DefaultScoreBands()

	for i := 0; i < 50; i++ {
		result := e.Evaluate(context.Background(), types.CandidateProfile{}, types.RoleRequirement{})

		inBand := false
		for _, b := range bands {
			if result.RelevanceScore >= b.Min && result.RelevanceScore <= b.Max {
				inBand = true
				break
			}
		}
		if !inBand {
			t.Fatalf("score %v falls outside every configured band", result.RelevanceScore)
		}
	}
}

func TestSimulateSingleBand(t *testing.T) {
	e := newSimulationEngine([]ScoreBand{{Name: "excellent", Min: 85, Max: 95}})

	for i := 0; i < 20; i++ {
		result := e.Evaluate(context.Background(), types.CandidateProfile{}, types.RoleRequirement{})
		if result.RelevanceScore < 85 || result.RelevanceScore > 95 {
			t.Fatalf("score %v outside the single configured band [85,95]", result.RelevanceScore)
		}
		if result.Verdict != types.VerdictExcellent && result.Verdict != types.VerdictStrong {
			t.Errorf("verdict %q implausible for score %v", result.Verdict, result.RelevanceScore)
		}
	}
}

func TestSimulateSubScoreJitterRanges(t *testing.T) {
	e := newSimulationEngine(nil)

	for i := 0; i < 30; i++ {
		r := e.Evaluate(context.Background(), types.CandidateProfile{}, types.RoleRequirement{})
		f := r.RelevanceScore

		checks := []struct {
			label string
			score float64
			lo    float64
			hi    float64
		}{
			{"skills", r.SkillsMatchScore, max(20, f-15), min(100, f+10)},
			{"experience", r.ExperienceMatchScore, max(15, f-20), min(100, f+15)},
			{"semantic", r.SemanticMatchScore, max(10, f-25), min(100, f+5)},
			{"education", r.EducationMatchScore, max(30, f-10), min(100, f+20)},
		}
		for _, c := range checks {
			if c.score < c.lo || c.score > c.hi {
				t.Errorf("%s score %v outside jitter range [%v, %v] for final %v",
					c.label, c.score, c.lo, c.hi, f)
			}
		}
	}
}

func TestSimulateShapeComplete(t *testing.T) {
	e := newSimulationEngine(nil)

	role := types.RoleRequirement{MustHaveSkills: []string{"Go", "Kubernetes"}}
	r := e.Evaluate(context.Background(), types.CandidateProfile{}, role)

	if r.Kind != types.ResultSuccess {
		t.Errorf("kind = %q, want success", r.Kind)
	}
	if r.Verdict == "" || r.MatchConfidence == "" {
		t.Error("verdict or confidence missing")
	}
	if len(r.Suggestions) < 3 || len(r.Suggestions) > 6 {
		t.Errorf("%d suggestions, want 3 to 6", len(r.Suggestions))
	}
	if len(r.MissingSkills) > 5 {
		t.Errorf("%d missing skills, want at most 5", len(r.MissingSkills))
	}
	if r.EvaluationSummary == "" {
		t.Error("summary missing")
	}
}

func TestSimulateVaries(t *testing.T) {
	e := newSimulationEngine(nil)

	seen := make(map[float64]struct{})
	for i := 0; i < 20; i++ {
		r := e.Evaluate(context.Background(), types.CandidateProfile{}, types.RoleRequirement{})
		seen[r.RelevanceScore] = struct{}{}
	}
	if len(seen) < 2 {
		t.Error("simulation produced the same score 20 times in a row")
	}
}
