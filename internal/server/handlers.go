package server

import (
	"encoding/json"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"relevancer/internal/types"
)

// EvaluateRequest carries either raw document texts or pre-parsed records.
// Structured records take precedence over their raw counterpart.
type EvaluateRequest struct {
	ResumeText string                  `json:"resume_text,omitempty"`
	JobText    string                  `json:"job_text,omitempty"`
	Profile    *types.CandidateProfile `json:"profile,omitempty"`
	Role       *types.RoleRequirement  `json:"role,omitempty"`
}

// ParseRequest carries one raw document text.
type ParseRequest struct {
	Text string `json:"text"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeErrorResponse(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorResponse{Error: errorBody{Code: code, Message: message}})
}

func writeJSONResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func decodeJSONRequest(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_REQUEST", "invalid JSON request body: "+err.Error())
		return false
	}
	return true
}

func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	var req EvaluateRequest
	if !decodeJSONRequest(w, r, &req) {
		return
	}

	if req.Profile == nil && req.ResumeText == "" {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_REQUEST", "resume_text or profile is required")
		return
	}
	if req.Role == nil && req.JobText == "" {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_REQUEST", "job_text or role is required")
		return
	}

	ctx := r.Context()
	var span trace.Span
	if s.obs != nil {
		ctx, span = s.obs.Tracer("server").Start(ctx, "evaluate")
		defer span.End()
	}

	var profile types.CandidateProfile
	if req.Profile != nil {
		profile = *req.Profile
	} else {
		profile = s.resumes.Parse(req.ResumeText)
	}

	var role types.RoleRequirement
	if req.Role != nil {
		role = *req.Role
	} else {
		role = s.jobs.Parse(req.JobText)
	}

	start := time.Now()
	result := s.eng.Evaluate(ctx, profile, role)
	elapsed := time.Since(start)

	if s.obs != nil {
		s.obs.RecordEvaluation(ctx, string(result.Kind), result.Verdict,
			result.Kind == types.ResultDegraded, elapsed)
		span.SetAttributes(
			attribute.Float64("relevance_score", result.RelevanceScore),
			attribute.String("verdict", result.Verdict),
			attribute.String("result_kind", string(result.Kind)),
		)
	}
	s.logger.Info("Evaluation completed",
		"score", result.RelevanceScore,
		"verdict", result.Verdict,
		"kind", result.Kind,
		"duration_ms", elapsed.Milliseconds(),
	)

	writeJSONResponse(w, http.StatusOK, result)
}

func (s *Server) handleParseResume(w http.ResponseWriter, r *http.Request) {
	var req ParseRequest
	if !decodeJSONRequest(w, r, &req) {
		return
	}
	if req.Text == "" {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_REQUEST", "text is required")
		return
	}

	if s.obs != nil {
		s.obs.RecordParse(r.Context(), "resume")
	}
	writeJSONResponse(w, http.StatusOK, s.resumes.Parse(req.Text))
}

func (s *Server) handleParseJob(w http.ResponseWriter, r *http.Request) {
	var req ParseRequest
	if !decodeJSONRequest(w, r, &req) {
		return
	}
	if req.Text == "" {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_REQUEST", "text is required")
		return
	}

	if s.obs != nil {
		s.obs.RecordParse(r.Context(), "job")
	}
	writeJSONResponse(w, http.StatusOK, s.jobs.Parse(req.Text))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	health := map[string]any{
		"status":     "healthy",
		"simulation": s.cfg.Engine.Simulation.Enabled,
		"embeddings": s.cfg.AI.Enabled,
	}
	if !s.startedAt.IsZero() {
		health["uptime_seconds"] = int64(time.Since(s.startedAt).Seconds())
	}
	writeJSONResponse(w, http.StatusOK, health)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats := map[string]any{
		"simulation_enabled": s.cfg.Engine.Simulation.Enabled,
		"embeddings_enabled": s.cfg.AI.Enabled,
	}
	if s.limiter != nil {
		stats["rate_limiter"] = s.limiter.Stats()
	}
	writeJSONResponse(w, http.StatusOK, stats)
}
