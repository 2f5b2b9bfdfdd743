package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/loomworks/tasklight/internal/assist"
	"github.com/loomworks/tasklight/internal/events"
	"github.com/loomworks/tasklight/internal/store"
)

type taskRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Priority    string   `json:"priority"`
	Categories  []string `json:"category"`
	DueDate     string   `json:"due_date"` // YYYY-MM-DD
	DueTime     string   `json:"due_time"` // HH:MM, 24-hour
	Completed   bool     `json:"completed"`
}

// buildDue combines the form's date and time fields into one timestamp.
// A date without a time lands on midnight.
func buildDue(dateStr, timeStr string) (*time.Time, error) {
	if dateStr == "" {
		return nil, nil
	}
	if timeStr == "" {
		timeStr = "00:00"
	}
	due, err := time.Parse("2006-01-02 15:04", dateStr+" "+timeStr)
	if err != nil {
		return nil, err
	}
	due = due.UTC()
	return &due, nil
}

// taskFromRequest normalizes the request into a valid task, applying the
// same title and priority rules the extraction pipeline enforces.
func (s *Server) taskFromRequest(w http.ResponseWriter, r *http.Request, ownerID uuid.UUID) (*store.Task, bool) {
	var req taskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body", "")
		return nil, false
	}

	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		s.writeError(w, http.StatusBadRequest, "title is required", "")
		return nil, false
	}

	due, err := buildDue(req.DueDate, req.DueTime)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid due date or time", "")
		return nil, false
	}

	title, description := assist.ClampTitle(req.Title, req.Description)
	return &store.Task{
		OwnerID:     ownerID,
		Title:       title,
		Description: description,
		Priority:    assist.NormalizePriority(req.Priority),
		Categories:  assist.CleanLabels(req.Categories),
		DueDate:     due,
		Completed:   req.Completed,
	}, true
}

func (s *Server) listTasks(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerFromRequest(w, r)
	if !ok {
		return
	}

	tasks, err := s.store.ListTasks(r.Context(), ownerID)
	if err != nil {
		s.logger.Error("list tasks", "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to list tasks", "")
		return
	}

	if v := r.URL.Query().Get("completed"); v == "true" || v == "false" {
		tasks = filterTasks(tasks, func(t store.Task) bool {
			return t.Completed == (v == "true")
		})
	}
	if tf := assist.Timeframe(r.URL.Query().Get("timeframe")); tf.Valid() {
		now := time.Now()
		tasks = filterTasks(tasks, func(t store.Task) bool {
			return dueWithin(t, tf, now)
		})
	}

	s.writeJSON(w, http.StatusOK, map[string]any{"tasks": tasks})
}

func filterTasks(tasks []store.Task, keep func(store.Task) bool) []store.Task {
	out := tasks[:0:0]
	for _, t := range tasks {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}

// dueWithin reports whether a task's due date falls inside the timeframe.
// Weeks start on Monday. Undated tasks are excluded from timeframe views.
func dueWithin(t store.Task, tf assist.Timeframe, now time.Time) bool {
	if t.DueDate == nil {
		return false
	}
	due := t.DueDate.In(now.Location())
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	if tf == assist.TimeframeToday {
		return !due.Before(today) && due.Before(today.AddDate(0, 0, 1))
	}

	offset := (int(today.Weekday()) + 6) % 7 // days since Monday
	weekStart := today.AddDate(0, 0, -offset)
	return !due.Before(weekStart) && due.Before(weekStart.AddDate(0, 0, 7))
}

func (s *Server) createTask(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerFromRequest(w, r)
	if !ok {
		return
	}

	task, ok := s.taskFromRequest(w, r, ownerID)
	if !ok {
		return
	}

	if err := s.store.CreateTask(r.Context(), task); err != nil {
		s.logger.Error("create task", "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to create task", "")
		return
	}

	s.events.PublishTask(events.SubjectTaskCreated, task)
	s.writeJSON(w, http.StatusCreated, task)
}

func (s *Server) getTask(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerFromRequest(w, r)
	if !ok {
		return
	}
	id, ok := taskIDFromRequest(w, r, s)
	if !ok {
		return
	}

	task, err := s.store.GetTask(r.Context(), ownerID, id)
	if errors.Is(err, store.ErrNotFound) {
		s.writeError(w, http.StatusNotFound, "task not found", "")
		return
	}
	if err != nil {
		s.logger.Error("get task", "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to load task", "")
		return
	}

	s.writeJSON(w, http.StatusOK, task)
}

func (s *Server) updateTask(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerFromRequest(w, r)
	if !ok {
		return
	}
	id, ok := taskIDFromRequest(w, r, s)
	if !ok {
		return
	}

	task, ok := s.taskFromRequest(w, r, ownerID)
	if !ok {
		return
	}
	task.ID = id

	err := s.store.UpdateTask(r.Context(), task)
	if errors.Is(err, store.ErrNotFound) {
		s.writeError(w, http.StatusNotFound, "task not found", "")
		return
	}
	if err != nil {
		s.logger.Error("update task", "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to update task", "")
		return
	}

	s.events.PublishTask(events.SubjectTaskUpdated, task)
	s.writeJSON(w, http.StatusOK, task)
}

func (s *Server) toggleTask(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerFromRequest(w, r)
	if !ok {
		return
	}
	id, ok := taskIDFromRequest(w, r, s)
	if !ok {
		return
	}

	// An explicit {"completed": bool} body wins; an empty body flips.
	var req struct {
		Completed *bool `json:"completed"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body", "")
		return
	}

	target := req.Completed
	if target == nil {
		current, err := s.store.GetTask(r.Context(), ownerID, id)
		if errors.Is(err, store.ErrNotFound) {
			s.writeError(w, http.StatusNotFound, "task not found", "")
			return
		}
		if err != nil {
			s.logger.Error("get task", "error", err)
			s.writeError(w, http.StatusInternalServerError, "failed to load task", "")
			return
		}
		flipped := !current.Completed
		target = &flipped
	}

	task, err := s.store.SetCompleted(r.Context(), ownerID, id, *target)
	if errors.Is(err, store.ErrNotFound) {
		s.writeError(w, http.StatusNotFound, "task not found", "")
		return
	}
	if err != nil {
		s.logger.Error("toggle task", "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to update task", "")
		return
	}

	subject := events.SubjectTaskUpdated
	if task.Completed {
		subject = events.SubjectTaskCompleted
	}
	s.events.PublishTask(subject, task)
	s.writeJSON(w, http.StatusOK, task)
}

func (s *Server) deleteTask(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerFromRequest(w, r)
	if !ok {
		return
	}
	id, ok := taskIDFromRequest(w, r, s)
	if !ok {
		return
	}

	task, err := s.store.GetTask(r.Context(), ownerID, id)
	if errors.Is(err, store.ErrNotFound) {
		s.writeError(w, http.StatusNotFound, "task not found", "")
		return
	}
	if err != nil {
		s.logger.Error("get task", "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to delete task", "")
		return
	}

	if err := s.store.DeleteTask(r.Context(), ownerID, id); err != nil {
		s.logger.Error("delete task", "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to delete task", "")
		return
	}

	s.events.PublishTask(events.SubjectTaskDeleted, task)
	w.WriteHeader(http.StatusNoContent)
}

func taskIDFromRequest(w http.ResponseWriter, r *http.Request, s *Server) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid task id", "")
		return uuid.Nil, false
	}
	return id, true
}
