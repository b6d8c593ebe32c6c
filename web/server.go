// Package web serves a localhost-only single-user UI; it intentionally has no
// auth/CSRF protection in this mode.
package web

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"timesheet/config"
	"timesheet/internal/apperr"
	"timesheet/internal/timeutil"
	"timesheet/interval"
	"timesheet/output"
	"timesheet/report"
	"timesheet/session"
)

//go:embed templates/*.html
var templateFS embed.FS

// Clock is the session controller surface the server drives.
type Clock interface {
	ClockIn() (session.OpenSession, bool)
	ClockOut() (interval.Interval, bool, error)
	Status() (session.Running, bool)
}

type Server struct {
	store report.IntervalQuerier
	clock Clock
	cfg   config.Config
	now   func() time.Time

	mux *http.ServeMux
}

type indexPageView struct {
	Title   string
	Status  StatusView
	Week    WeekView
	Format  string
	Formats []string
}

type clockInResponse struct {
	Started bool       `json:"started"`
	Status  StatusView `json:"status"`
}

type clockOutResponse struct {
	Closed   bool          `json:"closed"`
	Interval *IntervalView `json:"interval,omitempty"`
}

type exportResponse struct {
	File  string `json:"file"`
	Week  string `json:"week"`
	Title string `json:"title"`
}

type errorResponse struct {
	Title string `json:"title"`
	Error string `json:"error"`
}

func NewServer(store report.IntervalQuerier, clock Clock, cfg config.Config) http.Handler {
	server := &Server{
		store: store,
		clock: clock,
		cfg:   cfg,
		now:   time.Now,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", server.handleIndex)
	mux.HandleFunc("GET /api/status", server.handleAPIStatus)
	mux.HandleFunc("POST /api/clock-in", server.handleAPIClockIn)
	mux.HandleFunc("POST /api/clock-out", server.handleAPIClockOut)
	mux.HandleFunc("GET /api/week/{date}", server.handleAPIWeek)
	mux.HandleFunc("POST /api/export/{date}", server.handleAPIExport)
	server.mux = mux

	return server
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	raw := strings.TrimSpace(r.URL.Query().Get("date"))
	if raw == "" {
		raw = timeutil.DateKey(s.now())
	}
	selected, err := report.ParseSelection(raw)
	if err != nil {
		http.Error(w, err.Error(), errorStatus(err))
		return
	}

	weekly, err := report.BuildWeekly(selected, s.store)
	if err != nil {
		http.Error(w, err.Error(), errorStatus(err))
		return
	}

	data := indexPageView{
		Title:   "Timesheet",
		Status:  BuildStatusView(s.clock.Status()),
		Week:    BuildWeekView(weekly),
		Format:  s.cfg.Export.Format,
		Formats: []string{"pdf", "excel", "csv"},
	}
	if err := renderTemplate(w, "index.html", data); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handleAPIStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, BuildStatusView(s.clock.Status()))
}

func (s *Server) handleAPIClockIn(w http.ResponseWriter, r *http.Request) {
	_, started := s.clock.ClockIn()
	writeJSON(w, http.StatusOK, clockInResponse{
		Started: started,
		Status:  BuildStatusView(s.clock.Status()),
	})
}

func (s *Server) handleAPIClockOut(w http.ResponseWriter, r *http.Request) {
	item, closed, err := s.clock.ClockOut()
	if err != nil {
		writeError(w, err)
		return
	}
	if !closed {
		writeJSON(w, http.StatusOK, clockOutResponse{})
		return
	}
	view := BuildIntervalView(item)
	writeJSON(w, http.StatusOK, clockOutResponse{Closed: true, Interval: &view})
}

func (s *Server) handleAPIWeek(w http.ResponseWriter, r *http.Request) {
	selected, err := report.ParseSelection(r.PathValue("date"))
	if err != nil {
		writeError(w, err)
		return
	}

	weekly, err := report.BuildWeekly(selected, s.store)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, BuildWeekView(weekly))
}

func (s *Server) handleAPIExport(w http.ResponseWriter, r *http.Request) {
	selected, err := report.ParseSelection(r.PathValue("date"))
	if err != nil {
		writeError(w, err)
		return
	}

	format := strings.TrimSpace(r.URL.Query().Get("format"))
	if format == "" {
		format = s.cfg.Export.Format
	}
	dir, err := s.cfg.ResolveExportDir()
	if err != nil {
		writeError(w, apperr.Render("resolve export directory", err))
		return
	}

	weekly, err := report.BuildWeekly(selected, s.store)
	if err != nil {
		writeError(w, err)
		return
	}
	path, err := output.Export(dir, format, weekly)
	if err != nil {
		writeError(w, err)
		return
	}

	slog.Info("weekly report exported", "week", weekly.Label(), "file", path)
	writeJSON(w, http.StatusOK, exportResponse{File: path, Week: weekly.Label(), Title: weekly.Title()})
}

func renderTemplate(w http.ResponseWriter, pageTemplate string, data any) error {
	tmpl, err := template.New("base.html").Funcs(template.FuncMap{
		"fmtHours": fmtHours,
		"css": func(value string) template.CSS {
			return template.CSS(value)
		},
	}).ParseFS(templateFS, "templates/base.html", "templates/"+pageTemplate)
	if err != nil {
		return fmt.Errorf("parse template %s: %w", pageTemplate, err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, "base", data); err != nil {
		return fmt.Errorf("render template %s: %w", pageTemplate, err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	status := errorStatus(err)
	if status >= http.StatusInternalServerError {
		slog.Error("request failed", "error", err)
	}
	writeJSON(w, status, errorResponse{Title: apperr.Title(err), Error: err.Error()})
}

func errorStatus(err error) int {
	if apperr.IsKind(err, apperr.KindInvalidSelection) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
