package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"relevancer/internal/config"
	"relevancer/internal/engine"
	"relevancer/internal/errors"
	"relevancer/internal/types"
)

func testServer(t *testing.T, mutate func(*config.Config)) *Server {
	t.Helper()

	cfg := &config.Config{}
	cfg.App.LogLevel = "error"
	cfg.Server.Port = 8080
	cfg.Server.MaxRequestSize = 1 << 20
	if mutate != nil {
		mutate(cfg)
	}

	logger, err := errors.New("error")
	if err != nil {
		t.Fatal(err)
	}

	eng := engine.New(engine.DefaultConfig(), engine.DefaultTables(), nil, logger)
	s := NewServer(cfg, logger, eng, nil)
	t.Cleanup(func() {
		if s.limiter != nil {
			s.limiter.Stop()
		}
	})
	return s
}

func TestHandleEvaluateWithRawTexts(t *testing.T) {
	s := testServer(t, nil)

	body := `{"resume_text": "Jane Doe\nSkills\nPython, Django", "job_text": "Backend Engineer\nRequirements\nPython and Django"}`
	req := httptest.NewRequest(http.MethodPost, "/evaluate", strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.httpServer.Handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var result types.EvaluationResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("response is not an evaluation result: %v", err)
	}
	if result.Kind != types.ResultSuccess {
		t.Errorf("kind = %q, want success", result.Kind)
	}
	if result.RelevanceScore < 0 || result.RelevanceScore > 100 {
		t.Errorf("score = %v, out of range", result.RelevanceScore)
	}
}

func TestHandleEvaluateWithStructuredRecords(t *testing.T) {
	s := testServer(t, nil)

	payload := EvaluateRequest{
		Profile: &types.CandidateProfile{Name: "Jane", Skills: []string{"python"}},
		Role:    &types.RoleRequirement{Title: "Engineer", MustHaveSkills: []string{"python"}},
	}
	data, _ := json.Marshal(payload)

	req := httptest.NewRequest(http.MethodPost, "/evaluate", strings.NewReader(string(data)))
	rec := httptest.NewRecorder()
	s.httpServer.Handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var result types.EvaluationResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatal(err)
	}
	if len(result.MissingSkills) != 0 {
		t.Errorf("missing skills = %v, want none for an exact match", result.MissingSkills)
	}
}

func TestHandleEvaluateMissingInput(t *testing.T) {
	s := testServer(t, nil)

	tests := []struct {
		name string
		body string
	}{
		{name: "empty body", body: `{}`},
		{name: "resume only", body: `{"resume_text": "Jane"}`},
		{name: "job only", body: `{"job_text": "Engineer"}`},
		{name: "malformed", body: `{not json`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/evaluate", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			s.httpServer.Handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
			var resp errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("error envelope malformed: %v", err)
			}
			if resp.Error.Code == "" {
				t.Error("error code missing from envelope")
			}
		})
	}
}

func TestHandleParseResume(t *testing.T) {
	s := testServer(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/parse/resume",
		strings.NewReader(`{"text": "Jane Doe\njane@example.com\nSkills\nPython"}`))
	rec := httptest.NewRecorder()
	s.httpServer.Handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var profile types.CandidateProfile
	if err := json.Unmarshal(rec.Body.Bytes(), &profile); err != nil {
		t.Fatal(err)
	}
	if profile.Name != "Jane Doe" {
		t.Errorf("name = %q", profile.Name)
	}
	if profile.Email != "jane@example.com" {
		t.Errorf("email = %q", profile.Email)
	}
}

func TestHandleParseJob(t *testing.T) {
	s := testServer(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/parse/job",
		strings.NewReader(`{"text": "Senior Backend Engineer\nRequirements\nPython, 5+ years"}`))
	rec := httptest.NewRecorder()
	s.httpServer.Handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var role types.RoleRequirement
	if err := json.Unmarshal(rec.Body.Bytes(), &role); err != nil {
		t.Fatal(err)
	}
	if role.Title != "Senior Backend Engineer" {
		t.Errorf("title = %q", role.Title)
	}
}

func TestHandleHealth(t *testing.T) {
	s := testServer(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	s.httpServer.Handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var health map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &health); err != nil {
		t.Fatal(err)
	}
	if health["status"] != "healthy" {
		t.Errorf("status = %v", health["status"])
	}
}

func TestAuthMiddleware(t *testing.T) {
	s := testServer(t, func(c *config.Config) {
		c.Server.APIKeys = []string{"secret-key-12345"}
	})

	req := httptest.NewRequest(http.MethodGet, "/stats", nil)
	rec := httptest.NewRecorder()
	s.httpServer.Handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("no key: status = %d, want 401", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/stats", nil)
	req.Header.Set("X-API-Key", "wrong")
	rec = httptest.NewRecorder()
	s.httpServer.Handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("wrong key: status = %d, want 401", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/stats", nil)
	req.Header.Set("Authorization", "Bearer secret-key-12345")
	rec = httptest.NewRecorder()
	s.httpServer.Handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("valid key: status = %d, want 200", rec.Code)
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	s := testServer(t, func(c *config.Config) {
		c.Server.RateLimit = config.RateLimitConfig{
			Enabled:           true,
			RequestsPerMinute: 1,
			BurstCapacity:     1,
		}
	})

	req := httptest.NewRequest(http.MethodGet, "/stats", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	rec := httptest.NewRecorder()
	s.httpServer.Handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("first request: status = %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/stats", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	rec = httptest.NewRecorder()
	s.httpServer.Handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("second request: status = %d, want 429", rec.Code)
	}

	// a different client has its own bucket
	req = httptest.NewRequest(http.MethodGet, "/stats", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	rec = httptest.NewRecorder()
	s.httpServer.Handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("other client: status = %d, want 200", rec.Code)
	}
}

func TestMaskAPIKey(t *testing.T) {
	if got := maskAPIKey("secret-key-12345"); got != "secr****2345" {
		t.Errorf("maskAPIKey = %q", got)
	}
	if got := maskAPIKey("short"); got != "****" {
		t.Errorf("maskAPIKey short = %q", got)
	}
}
