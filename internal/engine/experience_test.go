package engine

import (
	"math"
	"testing"

	"relevancer/internal/types"
)

func TestEntryYears(t *testing.T) {
	tests := []struct {
		name  string
		entry types.ExperienceEntry
		want  float64
	}{
		{
			name:  "years in duration",
			entry: types.ExperienceEntry{Duration: "3 years"},
			want:  3.0,
		},
		{
			name:  "fractional years",
			entry: types.ExperienceEntry{Duration: "2.5 years"},
			want:  2.5,
		},
		{
			name:  "months converted",
			entry: types.ExperienceEntry{Duration: "18 months"},
			want:  1.5,
		},
		{
			name:  "yrs abbreviation",
			entry: types.ExperienceEntry{Description: "worked there for 4 yrs"},
			want:  4.0,
		},
		{
			name:  "mention in description",
			entry: types.ExperienceEntry{Description: "led the team for 2 years building services"},
			want:  2.0,
		},
		{
			name:  "no usable mention",
			entry: types.ExperienceEntry{Title: "Software Engineer", Company: "Acme"},
			want:  defaultEntryYears,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := entryYears(tt.entry); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("entryYears = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRequiredYears(t *testing.T) {
	tests := []struct {
		phrase string
		want   int
	}{
		{"5+ years", 5},
		{"3 years", 3},
		{"2-5 years", 2}, // ranges resolve to the lower bound
		{"minimum 4 years", 4},
		{"at least 7 years of experience", 7},
		{"Senior level", 0},
		{"", 0},
	}

	for _, tt := range tests {
		if got := requiredYears(tt.phrase); got != tt.want {
			t.Errorf("requiredYears(%q) = %d, want %d", tt.phrase, got, tt.want)
		}
	}
}

func TestEvaluateExperienceYearsScore(t *testing.T) {
	e := newTestEngine()

	profile := types.CandidateProfile{
		Experience: []types.ExperienceEntry{
			{Title: "Engineer", Duration: "2 years"},
			{Title: "Developer", Duration: "18 months"},
		},
	}
	role := types.RoleRequirement{ExperienceRequired: "3-5 years"}

	_, analysis := e.evaluateExperience(profile, role)

	if math.Abs(analysis.TotalYears-3.5) > 1e-9 {
		t.Errorf("total years = %v, want 3.5", analysis.TotalYears)
	}
	if analysis.RequiredYears != 3 {
		t.Errorf("required years = %d, want 3", analysis.RequiredYears)
	}
	want := 3.5 / 3.0
	if math.Abs(analysis.YearsScore-want) > 1e-9 {
		t.Errorf("years score = %v, want %v", analysis.YearsScore, want)
	}
}

func TestEvaluateExperienceNoRequirement(t *testing.T) {
	e := newTestEngine()

	profile := types.CandidateProfile{
		Experience: []types.ExperienceEntry{{Title: "Engineer", Duration: "2 years"}},
	}
	role := types.RoleRequirement{}

	_, analysis := e.evaluateExperience(profile, role)

	if analysis.YearsScore != yearsScoreNoRequired {
		t.Errorf("years score = %v, want neutral %v when the role asks for no years",
			analysis.YearsScore, yearsScoreNoRequired)
	}
}

func TestEvaluateExperienceYearsCapped(t *testing.T) {
	e := newTestEngine()

	profile := types.CandidateProfile{
		Experience: []types.ExperienceEntry{{Title: "Engineer", Duration: "20 years"}},
	}
	role := types.RoleRequirement{ExperienceRequired: "2 years"}

	_, analysis := e.evaluateExperience(profile, role)

	if analysis.YearsScore != yearsScoreCap {
		t.Errorf("years score = %v, want capped at %v", analysis.YearsScore, yearsScoreCap)
	}
}

func TestSeniorityLevel(t *testing.T) {
	e := newTestEngine()

	tests := []struct {
		name          string
		profile       types.CandidateProfile
		role          types.RoleRequirement
		wantRequired  string
		wantCandidate string
		wantBonus     float64
	}{
		{
			name: "senior role senior candidate",
			profile: types.CandidateProfile{Experience: []types.ExperienceEntry{
				{Title: "Senior Engineer"},
			}},
			role:          types.RoleRequirement{Title: "Senior Backend Engineer"},
			wantRequired:  "senior",
			wantCandidate: "senior",
			wantBonus:     levelBonusExact,
		},
		{
			name: "mid role senior candidate",
			profile: types.CandidateProfile{Experience: []types.ExperienceEntry{
				{Title: "Lead Engineer"},
			}},
			role:          types.RoleRequirement{Title: "Backend Engineer", RawText: "intermediate role"},
			wantRequired:  "mid",
			wantCandidate: "senior",
			wantBonus:     levelBonusOneAbove,
		},
		{
			name: "no signals default to mid",
			profile: types.CandidateProfile{Experience: []types.ExperienceEntry{
				{Title: "Engineer"},
			}},
			role:          types.RoleRequirement{Title: "Engineer"},
			wantRequired:  "mid",
			wantCandidate: "mid",
			wantBonus:     levelBonusExact,
		},
		{
			name: "junior candidate for senior role",
			profile: types.CandidateProfile{Experience: []types.ExperienceEntry{
				{Title: "Junior Developer"},
			}},
			role:          types.RoleRequirement{Title: "Senior Developer"},
			wantRequired:  "senior",
			wantCandidate: "junior",
			wantBonus:     0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			level := e.seniorityLevel(tt.profile, tt.role)
			if level.RequiredLevel != tt.wantRequired {
				t.Errorf("required level = %q, want %q", level.RequiredLevel, tt.wantRequired)
			}
			if level.CandidateLevel != tt.wantCandidate {
				t.Errorf("candidate level = %q, want %q", level.CandidateLevel, tt.wantCandidate)
			}
			if level.Bonus != tt.wantBonus {
				t.Errorf("bonus = %v, want %v", level.Bonus, tt.wantBonus)
			}
		})
	}
}

func TestProgressionScore(t *testing.T) {
	e := newTestEngine()

	tests := []struct {
		name    string
		entries []types.ExperienceEntry
		want    float64
	}{
		{name: "no entries", entries: nil, want: progressionDefault},
		{
			name:    "single entry",
			entries: []types.ExperienceEntry{{Title: "Senior Engineer"}},
			want:    progressionDefault,
		},
		{
			name: "growth in both entries",
			entries: []types.ExperienceEntry{
				{Title: "Engineering Manager"},
				{Title: "Engineer", Description: "promoted to team lead"},
			},
			want: 0.4,
		},
		{
			name: "no growth signals",
			entries: []types.ExperienceEntry{
				{Title: "Engineer"},
				{Title: "Engineer"},
			},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := e.progressionScore(tt.entries); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("progressionScore = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRecencyScore(t *testing.T) {
	tests := []struct {
		name    string
		entries []types.ExperienceEntry
		want    float64
	}{
		{name: "no entries", entries: nil, want: 0},
		{
			name:    "current position",
			entries: []types.ExperienceEntry{{Duration: "2021 - Present"}},
			want:    recencyCurrent,
		},
		{
			name:    "current in description",
			entries: []types.ExperienceEntry{{Description: "current role building APIs"}},
			want:    recencyCurrent,
		},
		{
			name:    "past position only",
			entries: []types.ExperienceEntry{{Duration: "2018 - 2020"}},
			want:    recencyPast,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := recencyScore(tt.entries); got != tt.want {
				t.Errorf("recencyScore = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExperienceRelevance(t *testing.T) {
	e := newTestEngine()

	role := types.RoleRequirement{
		Title:          "Backend Engineer",
		MustHaveSkills: []string{"Python", "PostgreSQL"},
	}

	matching := types.CandidateProfile{Experience: []types.ExperienceEntry{
		{Title: "Backend Engineer", Description: "built python services on postgresql"},
	}}
	unrelated := types.CandidateProfile{Experience: []types.ExperienceEntry{
		{Title: "Graphic Designer", Description: "produced brand assets"},
	}}

	high := e.experienceRelevance(matching, role)
	low := e.experienceRelevance(unrelated, role)

	if high <= low {
		t.Errorf("relevance for matching history (%v) not above unrelated (%v)", high, low)
	}
	if high < 0.9 {
		t.Errorf("relevance = %v, want near 1.0 for identical title and full skill mentions", high)
	}
	if e.experienceRelevance(types.CandidateProfile{}, role) != 0 {
		t.Error("relevance with no history should be 0")
	}
}

func TestEvaluateExperienceComposite(t *testing.T) {
	e := newTestEngine()

	profile := types.CandidateProfile{Experience: []types.ExperienceEntry{
		{Title: "Senior Backend Engineer", Duration: "4 years, current", Description: "python services"},
		{Title: "Backend Engineer", Duration: "3 years", Description: "promoted after one year"},
	}}
	role := types.RoleRequirement{
		Title:              "Senior Backend Engineer",
		MustHaveSkills:     []string{"Python"},
		ExperienceRequired: "5+ years",
	}

	score, analysis := e.evaluateExperience(profile, role)

	if score < 0 || score > 1 {
		t.Fatalf("composite score %v out of [0,1]", score)
	}
	if score != analysis.FinalScore {
		t.Errorf("returned score %v != analysis final %v", score, analysis.FinalScore)
	}
	if analysis.ExperienceLevel.Bonus != levelBonusExact {
		t.Errorf("level bonus = %v, want exact-match bonus", analysis.ExperienceLevel.Bonus)
	}
	if analysis.RecencyScore != recencyCurrent {
		t.Errorf("recency = %v, want current", analysis.RecencyScore)
	}
}
