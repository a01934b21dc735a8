// Package formatters renders parsed records and evaluation results as
// json, text or markdown.
package formatters

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"relevancer/internal/errors"
	"relevancer/internal/types"
)

// Formatter renders one data type in one output format
type Formatter interface {
	Format(data any) (string, error)
}

// Registry maps output format and data type to a formatter. The "any" type
// key is the fallback within a format.
type Registry struct {
	formatters map[string]map[string]Formatter
}

// NewRegistry creates a registry with the built-in formatters registered.
func NewRegistry() *Registry {
	r := &Registry{formatters: make(map[string]map[string]Formatter)}

	r.Register("json", "any", &JSONFormatter{})
	r.Register("text", "EvaluationResult", &EvaluationTextFormatter{})
	r.Register("text", "CandidateProfile", &ProfileTextFormatter{})
	r.Register("text", "RoleRequirement", &RoleTextFormatter{})
	r.Register("markdown", "EvaluationResult", &EvaluationMarkdownFormatter{})

	return r
}

// Register adds a formatter for a format/type pair.
func (r *Registry) Register(format, dataType string, f Formatter) {
	if r.formatters[format] == nil {
		r.formatters[format] = make(map[string]Formatter)
	}
	r.formatters[format][dataType] = f
}

// Format renders data in the requested format, falling back to the format's
// "any" formatter when the concrete type has none.
func (r *Registry) Format(format string, data any) (string, error) {
	byType, ok := r.formatters[format]
	if !ok {
		return "", errors.NewValidationError(errors.ErrCodeInvalidFormat,
			fmt.Sprintf("unsupported output format: %s", format), nil)
	}

	dataType := typeName(data)
	if f, ok := byType[dataType]; ok {
		return f.Format(data)
	}
	if f, ok := byType["any"]; ok {
		return f.Format(data)
	}
	return "", errors.NewValidationError(errors.ErrCodeInvalidFormat,
		fmt.Sprintf("no %s formatter for %s", format, dataType), nil)
}

func typeName(data any) string {
	t := reflect.TypeOf(data)
	if t == nil {
		return "nil"
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Name()
}

// GlobalRegistry is the registry used by the CLI output path.
var GlobalRegistry = NewRegistry()

// JSONFormatter renders any value as indented JSON
type JSONFormatter struct{}

func (f *JSONFormatter) Format(data any) (string, error) {
	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", errors.NewInternalError(errors.ErrCodeInvalidFormat, "failed to marshal JSON", err)
	}
	return string(out), nil
}

// scoreMarker buckets a percentage for display
func scoreMarker(score float64) string {
	switch {
	case score >= 80:
		return "+"
	case score >= 60:
		return "~"
	default:
		return "-"
	}
}

// EvaluationTextFormatter renders an EvaluationResult as plain text
type EvaluationTextFormatter struct{}

func (f *EvaluationTextFormatter) Format(data any) (string, error) {
	result, ok := asEvaluation(data)
	if !ok {
		return "", errors.NewValidationError(errors.ErrCodeInvalidFormat, "expected an evaluation result", nil)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Relevance Score: %.1f%% [%s]\n", result.RelevanceScore, scoreMarker(result.RelevanceScore))
	fmt.Fprintf(&b, "Verdict: %s (confidence: %s)\n", result.Verdict, result.MatchConfidence)
	fmt.Fprintf(&b, "\nSub-scores:\n")
	fmt.Fprintf(&b, "  Skills:     %6.1f%%\n", result.SkillsMatchScore)
	fmt.Fprintf(&b, "  Experience: %6.1f%%\n", result.ExperienceMatchScore)
	fmt.Fprintf(&b, "  Semantic:   %6.1f%%\n", result.SemanticMatchScore)
	fmt.Fprintf(&b, "  Education:  %6.1f%%\n", result.EducationMatchScore)

	if len(result.MissingSkills) > 0 {
		fmt.Fprintf(&b, "\nMissing skills: %s\n", strings.Join(result.MissingSkills, ", "))
	}
	if len(result.Suggestions) > 0 {
		fmt.Fprintf(&b, "\nSuggestions:\n")
		for _, s := range result.Suggestions {
			fmt.Fprintf(&b, "  - %s\n", s)
		}
	}
	if result.EvaluationSummary != "" {
		fmt.Fprintf(&b, "\n%s\n", result.EvaluationSummary)
	}
	return b.String(), nil
}

// EvaluationMarkdownFormatter renders an EvaluationResult as markdown
type EvaluationMarkdownFormatter struct{}

func (f *EvaluationMarkdownFormatter) Format(data any) (string, error) {
	result, ok := asEvaluation(data)
	if !ok {
		return "", errors.NewValidationError(errors.ErrCodeInvalidFormat, "expected an evaluation result", nil)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Evaluation Result\n\n")
	fmt.Fprintf(&b, "**Relevance Score:** %.1f%%\n\n", result.RelevanceScore)
	fmt.Fprintf(&b, "**Verdict:** %s (confidence: %s)\n\n", result.Verdict, result.MatchConfidence)
	fmt.Fprintf(&b, "| Dimension | Score |\n|---|---|\n")
	fmt.Fprintf(&b, "| Skills | %.1f%% |\n", result.SkillsMatchScore)
	fmt.Fprintf(&b, "| Experience | %.1f%% |\n", result.ExperienceMatchScore)
	fmt.Fprintf(&b, "| Semantic | %.1f%% |\n", result.SemanticMatchScore)
	fmt.Fprintf(&b, "| Education | %.1f%% |\n", result.EducationMatchScore)

	if len(result.MissingSkills) > 0 {
		fmt.Fprintf(&b, "\n## Missing Skills\n\n")
		for _, s := range result.MissingSkills {
			fmt.Fprintf(&b, "- %s\n", s)
		}
	}
	if len(result.Suggestions) > 0 {
		fmt.Fprintf(&b, "\n## Suggestions\n\n")
		for _, s := range result.Suggestions {
			fmt.Fprintf(&b, "- %s\n", s)
		}
	}
	if result.EvaluationSummary != "" {
		fmt.Fprintf(&b, "\n## Summary\n\n%s\n", result.EvaluationSummary)
	}
	return b.String(), nil
}

// ProfileTextFormatter renders a CandidateProfile as plain text
type ProfileTextFormatter struct{}

func (f *ProfileTextFormatter) Format(data any) (string, error) {
	profile, ok := asProfile(data)
	if !ok {
		return "", errors.NewValidationError(errors.ErrCodeInvalidFormat, "expected a candidate profile", nil)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Name: %s\n", profile.Name)
	if profile.Email != "" {
		fmt.Fprintf(&b, "Email: %s\n", profile.Email)
	}
	if profile.Phone != "" {
		fmt.Fprintf(&b, "Phone: %s\n", profile.Phone)
	}
	if len(profile.Skills) > 0 {
		fmt.Fprintf(&b, "Skills: %s\n", strings.Join(profile.Skills, ", "))
	}
	for _, exp := range profile.Experience {
		fmt.Fprintf(&b, "Experience: %s at %s", exp.Title, exp.Company)
		if exp.Duration != "" {
			fmt.Fprintf(&b, " (%s)", exp.Duration)
		}
		b.WriteString("\n")
	}
	for _, edu := range profile.Education {
		fmt.Fprintf(&b, "Education: %s", edu.Degree)
		if edu.Institution != "" {
			fmt.Fprintf(&b, ", %s", edu.Institution)
		}
		b.WriteString("\n")
	}
	for _, proj := range profile.Projects {
		fmt.Fprintf(&b, "Project: %s\n", proj.Title)
	}
	if len(profile.Certifications) > 0 {
		fmt.Fprintf(&b, "Certifications: %s\n", strings.Join(profile.Certifications, ", "))
	}
	return b.String(), nil
}

// RoleTextFormatter renders a RoleRequirement as plain text
type RoleTextFormatter struct{}

func (f *RoleTextFormatter) Format(data any) (string, error) {
	role, ok := asRole(data)
	if !ok {
		return "", errors.NewValidationError(errors.ErrCodeInvalidFormat, "expected a role requirement", nil)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Title: %s\n", role.Title)
	if role.Company != "" {
		fmt.Fprintf(&b, "Company: %s\n", role.Company)
	}
	fmt.Fprintf(&b, "Location: %s\n", role.Location)
	if len(role.MustHaveSkills) > 0 {
		fmt.Fprintf(&b, "Must have: %s\n", strings.Join(role.MustHaveSkills, ", "))
	}
	if len(role.GoodToHaveSkills) > 0 {
		fmt.Fprintf(&b, "Good to have: %s\n", strings.Join(role.GoodToHaveSkills, ", "))
	}
	if len(role.Qualifications) > 0 {
		fmt.Fprintf(&b, "Qualifications: %s\n", strings.Join(role.Qualifications, ", "))
	}
	if role.ExperienceRequired != "" {
		fmt.Fprintf(&b, "Experience: %s\n", role.ExperienceRequired)
	}
	if role.JobType != "" {
		fmt.Fprintf(&b, "Job type: %s\n", role.JobType)
	}
	return b.String(), nil
}

func asEvaluation(data any) (types.EvaluationResult, bool) {
	switch v := data.(type) {
	case types.EvaluationResult:
		return v, true
	case *types.EvaluationResult:
		return *v, true
	}
	return types.EvaluationResult{}, false
}

func asProfile(data any) (types.CandidateProfile, bool) {
	switch v := data.(type) {
	case types.CandidateProfile:
		return v, true
	case *types.CandidateProfile:
		return *v, true
	}
	return types.CandidateProfile{}, false
}

func asRole(data any) (types.RoleRequirement, bool) {
	switch v := data.(type) {
	case types.RoleRequirement:
		return v, true
	case *types.RoleRequirement:
		return *v, true
	}
	return types.RoleRequirement{}, false
}
