package engine

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"relevancer/internal/types"
)

// stubEmbedder returns canned vectors keyed by input text
type stubEmbedder struct {
	vectors map[string][]float32
	err     error
}

func (s *stubEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.vectors[text], nil
}

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a    []float32
		b    []float32
		want float64
	}{
		{name: "identical", a: []float32{1, 2, 3}, b: []float32{1, 2, 3}, want: 1.0},
		{name: "orthogonal", a: []float32{1, 0}, b: []float32{0, 1}, want: 0.0},
		{name: "opposite", a: []float32{1, 0}, b: []float32{-1, 0}, want: -1.0},
		{name: "mismatched lengths", a: []float32{1, 2}, b: []float32{1, 2, 3}, want: 0.0},
		{name: "zero vector", a: []float32{0, 0}, b: []float32{1, 2}, want: 0.0},
		{name: "both empty", a: nil, b: nil, want: 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cosineSimilarity(tt.a, tt.b); math.Abs(got-tt.want) > 1e-6 {
				t.Errorf("cosineSimilarity = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLexicalOverlap(t *testing.T) {
	stop := DefaultTables().StopWords

	tests := []struct {
		name string
		a    string
		b    string
		want float64
	}{
		{name: "identical docs", a: "python backend services", b: "python backend services", want: 1.0},
		{name: "no overlap", a: "python django", b: "photoshop illustrator", want: 0.0},
		{name: "empty side", a: "", b: "python", want: 0.0},
		{name: "stop words ignored", a: "the python", b: "a python", want: 1.0},
		{name: "half overlap", a: "python django", b: "python flask", want: 1.0 / 3.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := lexicalOverlap(tt.a, tt.b, stop); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("lexicalOverlap(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestSemanticMatchWithEmbedder(t *testing.T) {
	profile := types.CandidateProfile{Skills: []string{"python"}, RawText: "python developer"}
	role := types.RoleRequirement{Title: "Python Developer", RawText: "python role"}

	embedder := &stubEmbedder{vectors: map[string][]float32{
		profileText(profile): {1, 0, 1},
		roleText(role):       {1, 0, 1},
	}}
	e := New(DefaultConfig(), DefaultTables(), embedder, nil)

	sim, analysis, degraded := e.semanticMatch(context.Background(), profile, role)

	if degraded {
		t.Error("healthy embedder reported as degraded")
	}
	if analysis.Method != MethodEmbeddings {
		t.Errorf("method = %q, want %q", analysis.Method, MethodEmbeddings)
	}
	if math.Abs(sim-1.0) > 1e-6 {
		t.Errorf("similarity = %v, want 1.0 for identical vectors", sim)
	}
}

func TestSemanticMatchFallsBackOnError(t *testing.T) {
	embedder := &stubEmbedder{err: errors.New("provider unavailable")}
	e := New(DefaultConfig(), DefaultTables(), embedder, nil)

	profile := types.CandidateProfile{RawText: "python backend developer"}
	role := types.RoleRequirement{RawText: "python backend position"}

	sim, analysis, degraded := e.semanticMatch(context.Background(), profile, role)

	if !degraded {
		t.Error("failed embedder not reported as degraded")
	}
	if analysis.Method != MethodLexical {
		t.Errorf("method = %q, want lexical fallback", analysis.Method)
	}
	if sim <= 0 {
		t.Errorf("fallback similarity = %v, want > 0 for overlapping documents", sim)
	}
}

func TestSemanticMatchWithoutEmbedder(t *testing.T) {
	e := newTestEngine()

	profile := types.CandidateProfile{RawText: "python backend developer"}
	role := types.RoleRequirement{RawText: "python backend position"}

	_, analysis, degraded := e.semanticMatch(context.Background(), profile, role)

	if degraded {
		t.Error("lexical-only configuration is not a degradation")
	}
	if analysis.Method != MethodLexical {
		t.Errorf("method = %q, want %q", analysis.Method, MethodLexical)
	}
}

func TestProfileTextIncludesAllSections(t *testing.T) {
	p := types.CandidateProfile{
		Skills:     []string{"go"},
		Experience: []types.ExperienceEntry{{Title: "Engineer", Company: "Acme", Description: "built tooling"}},
		Projects:   []types.ProjectEntry{{Title: "Tracker", Description: "issue tracker"}},
		Education:  []types.EducationEntry{{Degree: "BSc Computer Science", Institution: "State University"}},
		Summary:    "pragmatic engineer",
		RawText:    "full resume text",
	}

	blob := profileText(p)
	for _, want := range []string{"go", "Engineer", "Acme", "built tooling", "Tracker", "BSc Computer Science", "State University", "pragmatic engineer", "full resume text"} {
		if !strings.Contains(blob, want) {
			t.Errorf("profile text missing %q", want)
		}
	}
}
