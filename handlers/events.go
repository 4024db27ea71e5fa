// Copyright (c) 2025 Shane Orto.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/shanerto/ama-tool-2/auth"
	"github.com/shanerto/ama-tool-2/cliparse"
	"github.com/shanerto/ama-tool-2/middleware"
	"github.com/shanerto/ama-tool-2/models"
)

type EventHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewEventHandler(db *sql.DB, cfg cliparse.Config) *EventHandler {
	return &EventHandler{db: db, cfg: cfg}
}

// CreateEvent handles POST /events
func (h *EventHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req models.CreateEventRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.CodeValidationError, "Invalid JSON")
		return
	}

	// Validate input
	if req.Title == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.CodeValidationError, "title is required")
		return
	}
	if req.EventType == "" {
		req.EventType = models.EventTypeCompany
	}
	if req.EventType != models.EventTypeCompany && req.EventType != models.EventTypeTeam {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.CodeValidationError, "event_type must be company or team")
		return
	}

	// Generate event ID
	eventID, err := auth.GenerateID(16)
	if err != nil {
		slog.Error("failed to generate event ID", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "", "Failed to create event")
		return
	}

	// Host key and share slug are deterministic from the event ID
	hostKey := auth.GenerateHostKey(eventID, h.cfg.HostKeySalt)
	shareSlug := auth.GenerateShareSlug(eventID, h.cfg.EventSlugSalt)

	_, err = h.db.Exec(`
		INSERT INTO event (id, title, description, host_name, event_type, scheduled_at, active, voting_open, status, share_slug, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, TRUE, TRUE, $7, $8, $9)
	`, eventID, req.Title, req.Description, req.HostName, req.EventType, req.ScheduledAt, models.EventStatusOpen, shareSlug, time.Now())

	if err != nil {
		slog.Error("failed to insert event", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "", "Failed to create event")
		return
	}

	slog.Info("event created", "event_id", eventID, "title", req.Title)

	middleware.JSONResponse(w, http.StatusCreated, models.CreateEventResponse{
		EventID:   eventID,
		HostKey:   hostKey,
		ShareSlug: shareSlug,
		ShareURL:  h.cfg.BaseURL + "/events/" + shareSlug,
	})
}

// GetEvent handles GET /events/:slug
func (h *EventHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
	shareSlug := r.PathValue("slug")
	if shareSlug == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.CodeValidationError, "slug is required")
		return
	}

	event, err := getEventBySlug(h.db, shareSlug)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, models.CodeNotFound, "Event not found")
		return
	}
	if err != nil {
		slog.Error("failed to query event", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "", "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, event)
}

// EditEvent handles POST /events/:id/edit
func (h *EventHandler) EditEvent(w http.ResponseWriter, r *http.Request) {
	eventID, ok := h.requireHost(w, r)
	if !ok {
		return
	}

	var req models.EditEventRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.CodeValidationError, "Invalid JSON")
		return
	}

	if req.Title == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.CodeValidationError, "title is required")
		return
	}
	if req.EventType == "" {
		req.EventType = models.EventTypeCompany
	}
	if req.EventType != models.EventTypeCompany && req.EventType != models.EventTypeTeam {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.CodeValidationError, "event_type must be company or team")
		return
	}

	res, err := h.db.Exec(`
		UPDATE event
		SET title = $1, description = $2, host_name = $3, event_type = $4, scheduled_at = $5
		WHERE id = $6
	`, req.Title, req.Description, req.HostName, req.EventType, req.ScheduledAt, eventID)

	if err != nil {
		slog.Error("failed to update event", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "", "Failed to update event")
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, models.CodeNotFound, "Event not found")
		return
	}

	event, err := getEventByID(h.db, eventID)
	if err != nil {
		slog.Error("failed to reload event", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "", "Database error")
		return
	}

	slog.Info("event updated", "event_id", eventID)

	middleware.JSONResponse(w, http.StatusOK, event)
}

// SetVoting handles POST /events/:id/voting
func (h *EventHandler) SetVoting(w http.ResponseWriter, r *http.Request) {
	eventID, ok := h.requireHost(w, r)
	if !ok {
		return
	}

	var req models.SetVotingRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.CodeValidationError, "Invalid JSON")
		return
	}

	var status string
	err := h.db.QueryRow("SELECT status FROM event WHERE id = $1", eventID).Scan(&status)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, models.CodeNotFound, "Event not found")
		return
	}
	if err != nil {
		slog.Error("failed to query event", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "", "Database error")
		return
	}

	if status != models.EventStatusOpen {
		middleware.ErrorResponse(w, http.StatusConflict, models.CodeVotingClosed, "Event is closed")
		return
	}

	_, err = h.db.Exec("UPDATE event SET voting_open = $1 WHERE id = $2", req.Open, eventID)
	if err != nil {
		slog.Error("failed to toggle voting", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "", "Failed to update event")
		return
	}

	slog.Info("voting toggled", "event_id", eventID, "open", req.Open)

	middleware.JSONResponse(w, http.StatusOK, map[string]interface{}{
		"event_id":    eventID,
		"voting_open": req.Open,
	})
}

// CloseEvent handles POST /events/:id/close
func (h *EventHandler) CloseEvent(w http.ResponseWriter, r *http.Request) {
	eventID, ok := h.requireHost(w, r)
	if !ok {
		return
	}

	var status string
	err := h.db.QueryRow("SELECT status FROM event WHERE id = $1", eventID).Scan(&status)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, models.CodeNotFound, "Event not found")
		return
	}
	if err != nil {
		slog.Error("failed to query event", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "", "Database error")
		return
	}

	if status != models.EventStatusOpen {
		middleware.ErrorResponse(w, http.StatusConflict, models.CodeVotingClosed, "Event is already closed")
		return
	}

	_, err = h.db.Exec("UPDATE event SET status = $1 WHERE id = $2", models.EventStatusClosed, eventID)
	if err != nil {
		slog.Error("failed to close event", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "", "Failed to close event")
		return
	}

	slog.Info("event closed", "event_id", eventID)

	middleware.JSONResponse(w, http.StatusOK, map[string]interface{}{
		"event_id": eventID,
		"status":   models.EventStatusClosed,
	})
}

// DeleteEvent handles POST /events/:id/delete
// Cascades to the event's questions and their votes.
func (h *EventHandler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	eventID, ok := h.requireHost(w, r)
	if !ok {
		return
	}

	res, err := h.db.Exec("DELETE FROM event WHERE id = $1", eventID)
	if err != nil {
		slog.Error("failed to delete event", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "", "Failed to delete event")
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, models.CodeNotFound, "Event not found")
		return
	}

	slog.Info("event deleted", "event_id", eventID)

	middleware.JSONResponse(w, http.StatusOK, map[string]interface{}{
		"event_id": eventID,
		"message":  "Event deleted",
	})
}

// requireHost validates the X-Host-Key header against the event ID in
// the request path. Returns the event ID and whether to proceed.
func (h *EventHandler) requireHost(w http.ResponseWriter, r *http.Request) (string, bool) {
	eventID := r.PathValue("id")
	if eventID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.CodeValidationError, "event_id is required")
		return "", false
	}

	hostKey := r.Header.Get("X-Host-Key")
	if err := auth.ValidateHostKey(eventID, hostKey, h.cfg.HostKeySalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, models.CodeUnauthorized, "Invalid host key")
		return "", false
	}

	return eventID, true
}

// getEventBySlug loads a full event row by its share slug.
func getEventBySlug(db *sql.DB, shareSlug string) (models.Event, error) {
	var ev models.Event
	err := db.QueryRow(`
		SELECT id, title, description, host_name, event_type, scheduled_at,
		       active, voting_open, status, share_slug, created_at
		FROM event
		WHERE share_slug = $1
	`, shareSlug).Scan(
		&ev.ID, &ev.Title, &ev.Description, &ev.HostName, &ev.EventType,
		&ev.ScheduledAt, &ev.Active, &ev.VotingOpen, &ev.Status,
		&ev.ShareSlug, &ev.CreatedAt,
	)
	return ev, err
}

// getEventByID loads a full event row by ID.
func getEventByID(db *sql.DB, eventID string) (models.Event, error) {
	var ev models.Event
	err := db.QueryRow(`
		SELECT id, title, description, host_name, event_type, scheduled_at,
		       active, voting_open, status, share_slug, created_at
		FROM event
		WHERE id = $1
	`, eventID).Scan(
		&ev.ID, &ev.Title, &ev.Description, &ev.HostName, &ev.EventType,
		&ev.ScheduledAt, &ev.Active, &ev.VotingOpen, &ev.Status,
		&ev.ShareSlug, &ev.CreatedAt,
	)
	return ev, err
}
