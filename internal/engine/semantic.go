package engine

import (
	"context"
	"math"
	"strings"

	"relevancer/internal/errors"
	"relevancer/internal/types"
)

// Similarity method labels surfaced in SemanticAnalysis
const (
	MethodEmbeddings = "embeddings"
	MethodLexical    = "lexical_overlap"
)

// EmbeddingProvider turns a document into a dense vector. Implementations
// live in internal/ai; the engine only needs this one call.
type EmbeddingProvider interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// semanticMatch compares the two documents as wholes. With an embedding
// provider configured it uses cosine similarity of the embedded blobs and
// falls back to lexical token overlap when the provider fails; degraded
// reports whether that fallback was taken.
func (e *Engine) semanticMatch(ctx context.Context, profile types.CandidateProfile, role types.RoleRequirement) (float64, types.SemanticAnalysis, bool) {
	profileBlob := profileText(profile)
	roleBlob := roleText(role)

	if e.embedder != nil {
		sim, err := e.embeddingSimilarity(ctx, profileBlob, roleBlob)
		if err == nil {
			return sim, types.SemanticAnalysis{Similarity: sim, Method: MethodEmbeddings}, false
		}
		if e.logger != nil {
			e.logger.LogError(
				errors.NewEmbeddingError(errors.ErrCodeEmbeddingFailed, "embedding provider failed, using lexical fallback", err),
				"Semantic similarity degraded",
			)
		}
		sim = lexicalOverlap(profileBlob, roleBlob, e.tables.StopWords)
		return sim, types.SemanticAnalysis{Similarity: sim, Method: MethodLexical}, true
	}

	sim := lexicalOverlap(profileBlob, roleBlob, e.tables.StopWords)
	return sim, types.SemanticAnalysis{Similarity: sim, Method: MethodLexical}, false
}

func (e *Engine) embeddingSimilarity(ctx context.Context, a, b string) (float64, error) {
	va, err := e.embedder.Embed(ctx, a)
	if err != nil {
		return 0, err
	}
	vb, err := e.embedder.Embed(ctx, b)
	if err != nil {
		return 0, err
	}
	return cosineSimilarity(va, vb), nil
}

// cosineSimilarity returns 0 for mismatched lengths or zero vectors rather
// than erroring; a similarity of zero degrades the score, nothing more.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

// lexicalOverlap is the Jaccard similarity of the two documents' token sets
// after stop-word and short-token filtering.
func lexicalOverlap(a, b string, stopWords map[string]struct{}) float64 {
	ta := tokenize(a, stopWords)
	tb := tokenize(b, stopWords)
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}
	intersection := 0
	for tok := range ta {
		if _, ok := tb[tok]; ok {
			intersection++
		}
	}
	union := len(ta) + len(tb) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

func tokenize(text string, stopWords map[string]struct{}) map[string]struct{} {
	tokens := make(map[string]struct{})
	for _, f := range strings.Fields(strings.ToLower(text)) {
		if len(f) <= 2 {
			continue
		}
		if _, stop := stopWords[f]; stop {
			continue
		}
		tokens[f] = struct{}{}
	}
	return tokens
}

// profileText flattens a candidate profile into one document for semantic
// comparison.
func profileText(p types.CandidateProfile) string {
	parts := []string{strings.Join(p.Skills, " ")}
	for _, exp := range p.Experience {
		parts = append(parts, exp.Title, exp.Company, exp.Description)
	}
	for _, proj := range p.Projects {
		parts = append(parts, proj.Title, proj.Description)
	}
	for _, edu := range p.Education {
		parts = append(parts, edu.Degree, edu.Institution)
	}
	parts = append(parts, p.Summary, p.RawText)
	return strings.Join(parts, " ")
}

// roleText flattens a role requirement into one document for semantic
// comparison.
func roleText(r types.RoleRequirement) string {
	parts := []string{
		r.Title,
		strings.Join(r.MustHaveSkills, " "),
		strings.Join(r.GoodToHaveSkills, " "),
		strings.Join(r.Qualifications, " "),
		r.Description,
		r.RawText,
	}
	return strings.Join(parts, " ")
}
