package server

import (
	"crypto/subtle"
	"net/http"
)

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.Handle("POST /evaluate", s.protected(http.HandlerFunc(s.handleEvaluate)))
	mux.Handle("POST /parse/resume", s.protected(http.HandlerFunc(s.handleParseResume)))
	mux.Handle("POST /parse/job", s.protected(http.HandlerFunc(s.handleParseJob)))
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /stats", s.protected(http.HandlerFunc(s.handleStats)))

	return mux
}

// protected applies auth, rate limiting and the request size cap to API
// endpoints; health stays open for probes.
func (s *Server) protected(next http.Handler) http.Handler {
	h := s.requestSizeLimitMiddleware(next)
	if s.limiter != nil {
		h = s.rateLimitMiddleware(h)
	}
	if len(s.cfg.Server.APIKeys) > 0 {
		h = s.authMiddleware(h)
	}
	return h
}

func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		provided := requestAPIKey(r)
		if provided == "" {
			writeErrorResponse(w, http.StatusUnauthorized, "MISSING_API_KEY", "API key required")
			return
		}

		for _, key := range s.cfg.Server.APIKeys {
			if subtle.ConstantTimeCompare([]byte(provided), []byte(key)) == 1 {
				next.ServeHTTP(w, r)
				return
			}
		}

		if s.logger != nil {
			s.logger.Warn("Rejected request with invalid API key",
				"key", maskAPIKey(provided),
				"path", r.URL.Path,
			)
		}
		writeErrorResponse(w, http.StatusUnauthorized, "INVALID_API_KEY", "invalid API key")
	})
}

func (s *Server) requestSizeLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.cfg.Server.MaxRequestSize > 0 && r.Body != nil {
			r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Server.MaxRequestSize)
		}
		next.ServeHTTP(w, r)
	})
}

// maskAPIKey keeps enough of a key to correlate log lines without
// disclosing it.
func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "****" + key[len(key)-4:]
}
