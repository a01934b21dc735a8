package parser

import (
	"slices"
	"strings"
	"testing"
)

const sampleResume = `Jane Doe
jane.doe@example.com
(555) 123-4567

Summary
Backend engineer with a focus on Python services

Technical Skills
Python, Django, PostgreSQL, Docker, AWS

Experience
Acme Corp
Senior Engineer
2019 - Present
Built backend services and led a small team

Education
Bachelor of Science in Computer Science
State University
2015

Projects
Inventory Tracker
A Django service that tracks warehouse inventory in real time

Certifications
AWS Certified Solutions Architect
`

func TestParseResume(t *testing.T) {
	p := NewResumeParser(nil)
	profile := p.Parse(sampleResume)

	if profile.Name != "Jane Doe" {
		t.Errorf("name = %q, want %q", profile.Name, "Jane Doe")
	}
	if profile.Email != "jane.doe@example.com" {
		t.Errorf("email = %q, want %q", profile.Email, "jane.doe@example.com")
	}
	if profile.Phone != "5551234567" {
		t.Errorf("phone = %q, want %q", profile.Phone, "5551234567")
	}

	for _, want := range []string{"Python", "Django", "Postgresql", "Docker", "Aws"} {
		if !slices.Contains(profile.Skills, want) {
			t.Errorf("skills %v missing %q", profile.Skills, want)
		}
	}

	if len(profile.Education) != 1 {
		t.Fatalf("education = %v, want 1 entry", profile.Education)
	}
	edu := profile.Education[0]
	if !strings.Contains(edu.Degree, "Bachelor of Science") {
		t.Errorf("degree = %q", edu.Degree)
	}
	if edu.Institution != "State University" {
		t.Errorf("institution = %q, want %q", edu.Institution, "State University")
	}
	if edu.Year != "2015" {
		t.Errorf("year = %q, want %q", edu.Year, "2015")
	}

	if len(profile.Experience) != 1 {
		t.Fatalf("experience = %v, want 1 entry", profile.Experience)
	}
	exp := profile.Experience[0]
	if exp.Company != "Acme Corp" {
		t.Errorf("company = %q, want %q", exp.Company, "Acme Corp")
	}
	if exp.Title != "Senior Engineer" {
		t.Errorf("title = %q, want %q", exp.Title, "Senior Engineer")
	}
	if exp.Duration != "2019 - Present" {
		t.Errorf("duration = %q, want %q", exp.Duration, "2019 - Present")
	}
	if !strings.Contains(exp.Description, "Built backend services") {
		t.Errorf("description = %q", exp.Description)
	}

	if len(profile.Projects) != 1 {
		t.Fatalf("projects = %v, want 1 entry", profile.Projects)
	}
	if profile.Projects[0].Title != "Inventory Tracker" {
		t.Errorf("project title = %q", profile.Projects[0].Title)
	}
	if !strings.Contains(profile.Projects[0].Description, "warehouse inventory") {
		t.Errorf("project description = %q", profile.Projects[0].Description)
	}

	if len(profile.Certifications) != 1 || profile.Certifications[0] != "AWS Certified Solutions Architect" {
		t.Errorf("certifications = %v", profile.Certifications)
	}

	if !strings.Contains(profile.Summary, "Backend engineer") {
		t.Errorf("summary = %q", profile.Summary)
	}
	if profile.RawText == "" {
		t.Error("raw text not carried on the profile")
	}
}

func TestParseResumeEmptyInput(t *testing.T) {
	p := NewResumeParser(nil)

	for _, input := range []string{"", "   \n\t  ", "!!!***"} {
		profile := p.Parse(input)
		if profile.Name != "Unknown" {
			t.Errorf("Parse(%q) name = %q, want default", input, profile.Name)
		}
		if profile.Skills == nil || profile.Education == nil || profile.Experience == nil {
			t.Errorf("Parse(%q) returned nil collections", input)
		}
	}
}

func TestParseResumeNoSections(t *testing.T) {
	p := NewResumeParser(nil)

	// Free-form text without headers still yields contact info and skills
	profile := p.Parse("John Smith\njohn@example.com\nI write python and go services with docker")

	if profile.Name != "John Smith" {
		t.Errorf("name = %q, want %q", profile.Name, "John Smith")
	}
	if profile.Email != "john@example.com" {
		t.Errorf("email = %q", profile.Email)
	}
	for _, want := range []string{"Python", "Go", "Docker"} {
		if !slices.Contains(profile.Skills, want) {
			t.Errorf("skills %v missing %q", profile.Skills, want)
		}
	}
	if len(profile.Experience) != 0 {
		t.Errorf("experience = %v, want none without sections", profile.Experience)
	}
}

func TestExtractName(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{name: "plain name", text: "Jane Doe\nmore text", want: "Jane Doe"},
		{name: "skips contact lines", text: "jane@example.com\n555 123 4567\nJane Doe", want: "Jane Doe"},
		{name: "skips long lines", text: "A very long headline about a career in engineering\nJane Doe", want: "Jane Doe"},
		{name: "nothing suitable", text: "12345\n67890", want: "Unknown"},
		{name: "beyond the first five lines", text: "1\n2\n3\n4\n5\nJane Doe", want: "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractName(tt.text); got != tt.want {
				t.Errorf("extractName = %q, want %q", got, tt.want)
			}
		})
	}
}
