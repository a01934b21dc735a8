package parser

import (
	"slices"
	"strings"
	"testing"
)

const sampleJob = `Acme Technologies
Senior Backend Engineer
Bangalore

Job Description
We are building the backbone of our logistics platform

Requirements
5+ years of experience in backend development
Strong Python and Django expertise
PostgreSQL knowledge is mandatory

Preferred
Docker and Kubernetes exposure

Qualifications
Bachelor degree in computer science

Full-time position
`

func TestParseJob(t *testing.T) {
	p := NewJobParser(nil)
	role := p.Parse(sampleJob)

	if role.Title != "Senior Backend Engineer" {
		t.Errorf("title = %q, want %q", role.Title, "Senior Backend Engineer")
	}
	if role.Company != "Acme Technologies" {
		t.Errorf("company = %q, want %q", role.Company, "Acme Technologies")
	}
	if role.Location != "Bangalore" {
		t.Errorf("location = %q, want %q", role.Location, "Bangalore")
	}

	for _, want := range []string{"Python", "Django", "Postgresql"} {
		if !slices.Contains(role.MustHaveSkills, want) {
			t.Errorf("must-have skills %v missing %q", role.MustHaveSkills, want)
		}
	}
	for _, want := range []string{"Docker", "Kubernetes"} {
		if !slices.Contains(role.GoodToHaveSkills, want) {
			t.Errorf("good-to-have skills %v missing %q", role.GoodToHaveSkills, want)
		}
	}
	for _, must := range role.MustHaveSkills {
		if slices.Contains(role.GoodToHaveSkills, must) {
			t.Errorf("skill %q classified as both must-have and good-to-have", must)
		}
	}

	if !slices.Contains(role.Qualifications, "bachelor") {
		t.Errorf("qualifications = %v, want to include bachelor", role.Qualifications)
	}
	if role.ExperienceRequired != "5+ years" {
		t.Errorf("experience required = %q, want %q", role.ExperienceRequired, "5+ years")
	}
	if role.JobType != "full-time" {
		t.Errorf("job type = %q, want %q", role.JobType, "full-time")
	}
	if !strings.Contains(role.Description, "logistics platform") {
		t.Errorf("description = %q", role.Description)
	}
	if role.RawText == "" {
		t.Error("raw text not carried on the role")
	}
}

func TestParseJobEmptyInput(t *testing.T) {
	p := NewJobParser(nil)

	for _, input := range []string{"", "  \n  "} {
		role := p.Parse(input)
		if role.Title != "Unknown Position" {
			t.Errorf("Parse(%q) title = %q, want default", input, role.Title)
		}
		if role.Location != "Not specified" {
			t.Errorf("Parse(%q) location = %q, want default", input, role.Location)
		}
		if role.MustHaveSkills == nil || role.GoodToHaveSkills == nil {
			t.Errorf("Parse(%q) returned nil skill lists", input)
		}
	}
}

func TestParseJobExperienceRange(t *testing.T) {
	p := NewJobParser(nil)

	role := p.Parse("Backend Developer\nLooking for 3-5 years of python experience")

	if role.ExperienceRequired != "3-5 years" {
		t.Errorf("experience required = %q, want %q", role.ExperienceRequired, "3-5 years")
	}
}

func TestParseJobContextClassification(t *testing.T) {
	p := NewJobParser(nil)

	// No labeled sections: classification falls back to the wording around
	// each mention, defaulting to must-have.
	role := p.Parse("Backend Developer role\nPython is essential for this position\nKubernetes experience is nice to have")

	if !slices.Contains(role.MustHaveSkills, "Python") {
		t.Errorf("must-have skills %v missing Python", role.MustHaveSkills)
	}
	if !slices.Contains(role.GoodToHaveSkills, "Kubernetes") {
		t.Errorf("good-to-have skills %v missing Kubernetes", role.GoodToHaveSkills)
	}
}

func TestExtractLocation(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"Position based in Mumbai", "Mumbai"},
		{"This role is fully remote", "Remote"},
		{"Work from home friendly", "Work From Home"},
		{"No location mentioned", "Not specified"},
	}

	for _, tt := range tests {
		if got := extractLocation(tt.text); got != tt.want {
			t.Errorf("extractLocation(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestExtractRoleTitle(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  string
	}{
		{name: "role keyword line", lines: []string{"Acme", "Data Analyst"}, want: "Data Analyst"},
		{name: "skips long lines", lines: []string{"We are hiring a wonderful software engineer to join our very large team", "Software Engineer"}, want: "Software Engineer"},
		{name: "no match", lines: []string{"Acme", "Join us"}, want: "Unknown Position"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractRoleTitle(tt.lines); got != tt.want {
				t.Errorf("extractRoleTitle = %q, want %q", got, tt.want)
			}
		})
	}
}
