package server

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/campuswellness/weekplan/internal/errors"
	"github.com/campuswellness/weekplan/internal/ics"
	"github.com/campuswellness/weekplan/internal/models"
	"github.com/campuswellness/weekplan/internal/reminder"
	"github.com/campuswellness/weekplan/internal/scheduler"
	"github.com/campuswellness/weekplan/internal/storage"
	"github.com/campuswellness/weekplan/internal/utils"
)

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// settings returns the stored settings and the current instant in their
// timezone.
func (s *Server) settings() (models.Settings, time.Time, error) {
	settings, err := s.store.GetSettings()
	if err != nil {
		return models.Settings{}, time.Time{}, err
	}
	models.ApplyDefaultSettings(&settings)
	loc, err := utils.LoadLocation(settings.Timezone)
	if err != nil {
		return models.Settings{}, time.Time{}, errors.NewConfigurationError("invalid timezone %q", settings.Timezone)
	}
	return settings, s.now().In(loc), nil
}

func (s *Server) week(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]
	settings, now, err := s.settings()
	if err != nil {
		s.writeError(w, err)
		return
	}
	data, err := storage.LoadUserData(s.store, username)
	if err != nil {
		s.writeError(w, err)
		return
	}

	view, err := s.sched.Week(nil, s.weekInput(username, now, settings, data))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view.Events)
}

func (s *Server) weekInput(username string, now time.Time, settings models.Settings, data storage.UserData) scheduler.WeekInput {
	return scheduler.WeekInput{
		Username:    username,
		Today:       now,
		Days:        settings.WeekHorizonDays,
		Sessions:    data.Sessions,
		Assignments: data.Assignments,
		Imported:    data.Events,
	}
}

func (s *Server) getSuggestion(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	settings, _, err := s.settings()
	if err != nil {
		s.writeError(w, err)
		return
	}
	date, err := utils.ResolveDate(vars["date"], settings)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if _, err := s.store.GetProfile(vars["username"]); err != nil {
		s.writeError(w, err)
		return
	}
	rec, err := s.store.GetSuggestion(vars["username"], utils.FormatDate(date))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) computeSuggestion(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	username := vars["username"]
	settings, _, err := s.settings()
	if err != nil {
		s.writeError(w, err)
		return
	}
	date, err := utils.ResolveDate(vars["date"], settings)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if _, err := s.store.GetProfile(username); err != nil {
		s.writeError(w, err)
		return
	}
	sessions, err := s.store.GetClassSessions(username)
	if err != nil {
		s.writeError(w, err)
		return
	}

	plan, err := s.sched.Suggest(s.store, username, date, sessions)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.metrics.SuggestionComputed()
	writeJSON(w, http.StatusOK, plan.Suggestion.Record())
}

func (s *Server) reminders(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]
	settings, now, err := s.settings()
	if err != nil {
		s.writeError(w, err)
		return
	}
	if at := r.URL.Query().Get("at"); at != "" {
		now, err = utils.ResolveInstant(at, settings)
		if err != nil {
			s.writeError(w, errors.NewParseError("at", at, err))
			return
		}
	}

	svc := reminder.NewService(s.store, reminder.WindowFromSettings(settings))
	reminders, err := svc.Check(username, now)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if reminders == nil {
		reminders = []models.Reminder{}
	}
	writeJSON(w, http.StatusOK, reminders)
}

type assignmentsResponse struct {
	Late     []models.Assignment `json:"late"`
	Upcoming []models.Assignment `json:"upcoming"`
	Invalid  []models.Assignment `json:"invalid,omitempty"`
}

func (s *Server) assignments(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]
	_, now, err := s.settings()
	if err != nil {
		s.writeError(w, err)
		return
	}
	if _, err := s.store.GetProfile(username); err != nil {
		s.writeError(w, err)
		return
	}
	list, err := s.store.GetAssignments(username)
	if err != nil {
		s.writeError(w, err)
		return
	}
	groups, invalid := models.GroupAssignments(list, now)
	for _, a := range invalid {
		s.log.Warn("assignment has unreadable due date", "user", username, "assignment", a.Name, "due", a.DueDate)
	}
	writeJSON(w, http.StatusOK, assignmentsResponse{Late: groups.Late, Upcoming: groups.Upcoming, Invalid: invalid})
}

func (s *Server) calendar(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]
	settings, now, err := s.settings()
	if err != nil {
		s.writeError(w, err)
		return
	}
	data, err := storage.LoadUserData(s.store, username)
	if err != nil {
		s.writeError(w, err)
		return
	}

	feed := ics.Feed{
		Username:    username,
		Now:         now,
		HorizonDays: settings.WeekHorizonDays,
		Sessions:    data.Sessions,
		Assignments: data.Assignments,
		Events:      data.Events,
	}
	var skipped []error
	feed.Suggestions, skipped = storage.LoadSuggestions(s.store, username, now, settings.WeekHorizonDays)
	for _, err := range skipped {
		s.log.Warn("skipping stored suggestion", "user", username, "err", err)
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", "inline; filename=\""+username+".ics\"")
	if err := ics.Write(w, feed); err != nil {
		s.log.Error("writing calendar feed", "user", username, "err", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps the error taxonomy onto status codes.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.IsNotFound(err):
		status = http.StatusNotFound
	case errors.IsParse(err), stderrors.Is(err, errors.ErrValidation):
		status = http.StatusBadRequest
	default:
		s.log.Error("request failed", "err", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
