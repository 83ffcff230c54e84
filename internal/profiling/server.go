// Package profiling serves pprof and health endpoints on a separate port so
// profiles can be taken without exposing them on the public UI.
package profiling

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// SessionCounter reports the number of live browser sessions
type SessionCounter interface {
	Count() int
}

// NewRouter builds the ops router: /healthz, /sessions and /debug/pprof
func NewRouter(sessions SessionCounter) http.Handler {
	started := time.Now()
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.NoCache)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, map[string]interface{}{
			"status": "ok",
			"uptime": time.Since(started).Round(time.Second).String(),
		})
	})
	r.Get("/sessions", func(w http.ResponseWriter, _ *http.Request) {
		count := 0
		if sessions != nil {
			count = sessions.Count()
		}
		writeJSON(w, map[string]int{"live": count})
	})
	r.Mount("/debug", middleware.Profiler())
	return r
}

// NewServer wraps the ops router in an http.Server listening on :port
func NewServer(port string, sessions SessionCounter) *http.Server {
	return &http.Server{
		Addr:              ":" + port,
		Handler:           NewRouter(sessions),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(v)
}
