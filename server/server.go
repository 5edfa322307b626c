// Package server exposes the bookkeeping operations as a small
// bearer-authenticated JSON API backed by the spreadsheet gateway.
package server

import (
	"log"
	"net/http"
	"strings"

	"github.com/etnz/pocketpilot"
	"github.com/etnz/pocketpilot/notion"
	"github.com/etnz/pocketpilot/sheets"
)

// Config wires the API to its collaborators.
type Config struct {
	// APIKey is the shared bearer secret every request must present.
	APIKey string
	// Profile is served on /profile.
	Profile pocketpilot.Profile
	// Sheets is the spreadsheet gateway.
	Sheets *sheets.Client
	// Notion is the workspace client; nil disables /notion/month-page.
	Notion *notion.Client
	// NotionParentPageID is the default parent of created month pages.
	NotionParentPageID string
	// SheetURL, when set, is bookmarked on created month pages unless the
	// request carries its own.
	SheetURL string
}

// Server is the HTTP handler of the bookkeeping API.
type Server struct {
	cfg Config
	mux *http.ServeMux
}

// New builds the API handler.
func New(cfg Config) *Server {
	s := &Server{cfg: cfg, mux: http.NewServeMux()}

	s.mux.HandleFunc("GET /profile", s.auth(s.handleProfile))
	s.mux.HandleFunc("POST /month/plan", s.auth(s.handleMonthPlan))
	s.mux.HandleFunc("POST /transactions", s.auth(s.handleTransactions))
	s.mux.HandleFunc("POST /holdings", s.auth(s.handleHoldings))
	s.mux.HandleFunc("POST /networth/snapshot", s.auth(s.handleNetWorthSnapshot))
	s.mux.HandleFunc("POST /month/close", s.auth(s.handleMonthClose))
	s.mux.HandleFunc("GET /settings", s.auth(s.handleSettingsGet))
	s.mux.HandleFunc("PUT /settings", s.auth(s.handleSettingsPut))
	s.mux.HandleFunc("GET /goals", s.auth(s.handleGoalsGet))
	s.mux.HandleFunc("POST /goals", s.auth(s.handleGoalsPost))
	s.mux.HandleFunc("GET /year/plan", s.auth(s.handleYearPlanGet))
	s.mux.HandleFunc("POST /year/plan", s.auth(s.handleYearPlanPost))
	s.mux.HandleFunc("POST /notion/month-page", s.auth(s.handleNotionMonthPage))

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log.Printf("%s %s", r.Method, r.URL.Path)
	s.mux.ServeHTTP(w, r)
}

// auth guards a handler with the shared bearer secret.
func (s *Server) auth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.cfg.APIKey == "" {
			writeDetail(w, http.StatusInternalServerError, "API key not configured")
			return
		}
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			writeDetail(w, http.StatusUnauthorized, "missing Bearer token")
			return
		}
		if token != s.cfg.APIKey {
			writeDetail(w, http.StatusUnauthorized, "invalid token")
			return
		}
		next(w, r)
	}
}
