// Copyright (c) 2025 Shane Orto.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shanerto/ama-tool-2/auth"
	"github.com/shanerto/ama-tool-2/cliparse"
	"github.com/shanerto/ama-tool-2/middleware"
	"github.com/shanerto/ama-tool-2/models"
)

type QuestionHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewQuestionHandler(db *sql.DB, cfg cliparse.Config) *QuestionHandler {
	return &QuestionHandler{db: db, cfg: cfg}
}

// SubmitQuestion handles POST /events/:slug/questions
func (h *QuestionHandler) SubmitQuestion(w http.ResponseWriter, r *http.Request) {
	shareSlug := r.PathValue("slug")
	if shareSlug == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.CodeValidationError, "slug is required")
		return
	}

	voterID, _ := middleware.ResolveVoter(w, r)

	var req models.SubmitQuestionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.CodeValidationError, "Invalid JSON")
		return
	}

	if msg := validateQuestionBody(req.Body); msg != "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.CodeValidationError, msg)
		return
	}
	req.DisplayName = strings.TrimSpace(req.DisplayName)
	if !req.Anonymous && req.DisplayName == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.CodeValidationError, "display_name is required unless anonymous")
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

	if event.Status != models.EventStatusOpen {
		middleware.ErrorResponse(w, http.StatusConflict, models.CodeVotingClosed, "Event is closed")
		return
	}

	questionID, err := auth.GenerateID(12)
	if err != nil {
		slog.Error("failed to generate question ID", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "", "Failed to submit question")
		return
	}

	// Anonymous submissions keep the submitter identity for edit and
	// retract rights; only the public display name is suppressed.
	var displayName *string
	if !req.Anonymous {
		displayName = &req.DisplayName
	}

	ipHash := auth.HashIP(middleware.GetClientIP(r), h.cfg.HostKeySalt)

	_, err = h.db.Exec(`
		INSERT INTO question (id, event_id, body, display_name, anonymous, voter_id, status, hidden, ip_hash, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, FALSE, $8, $9)
	`, questionID, event.ID, req.Body, displayName, req.Anonymous, voterID, models.QuestionStatusOpen, ipHash, time.Now())

	if err != nil {
		slog.Error("failed to insert question", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "", "Failed to submit question")
		return
	}

	slog.Info("question submitted", "event_id", event.ID, "question_id", questionID, "anonymous", req.Anonymous)

	view, err := loadQuestionView(h.db, h.cfg, questionID, voterID)
	if err != nil {
		slog.Error("failed to load question view", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "", "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, view)
}

// EditQuestion handles POST /questions/:id/edit
// Submitter-only, and only within the edit window from creation.
func (h *QuestionHandler) EditQuestion(w http.ResponseWriter, r *http.Request) {
	questionID := r.PathValue("id")
	if questionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.CodeValidationError, "question_id is required")
		return
	}

	voterID, _ := middleware.ResolveVoter(w, r)

	var req models.EditQuestionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.CodeValidationError, "Invalid JSON")
		return
	}

	if msg := validateQuestionBody(req.Body); msg != "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.CodeValidationError, msg)
		return
	}

	question, err := getQuestion(h.db, questionID)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, models.CodeNotFound, "Question not found")
		return
	}
	if err != nil {
		slog.Error("failed to query question", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "", "Database error")
		return
	}

	if !h.authorizeSubmitter(w, question, voterID) {
		return
	}

	_, err = h.db.Exec("UPDATE question SET body = $1 WHERE id = $2", req.Body, questionID)
	if err != nil {
		slog.Error("failed to update question", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "", "Failed to update question")
		return
	}

	slog.Info("question edited", "question_id", questionID)

	view, err := loadQuestionView(h.db, h.cfg, questionID, voterID)
	if err != nil {
		slog.Error("failed to load question view", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "", "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, view)
}

// RetractQuestion handles POST /questions/:id/retract
// Same guards as edit; deletes the question and its votes.
func (h *QuestionHandler) RetractQuestion(w http.ResponseWriter, r *http.Request) {
	questionID := r.PathValue("id")
	if questionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.CodeValidationError, "question_id is required")
		return
	}

	voterID, _ := middleware.ResolveVoter(w, r)

	question, err := getQuestion(h.db, questionID)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, models.CodeNotFound, "Question not found")
		return
	}
	if err != nil {
		slog.Error("failed to query question", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "", "Database error")
		return
	}

	if !h.authorizeSubmitter(w, question, voterID) {
		return
	}

	_, err = h.db.Exec("DELETE FROM question WHERE id = $1", questionID)
	if err != nil {
		slog.Error("failed to delete question", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "", "Failed to retract question")
		return
	}

	slog.Info("question retracted", "question_id", questionID)

	middleware.JSONResponse(w, http.StatusOK, models.RetractQuestionResponse{
		QuestionID: questionID,
		Message:    "Question retracted",
	})
}

// SetStatus handles POST /questions/:id/status (host only)
// Hidden and pin state are preserved across the transition.
func (h *QuestionHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	question, voterID, ok := h.requireHostForQuestion(w, r)
	if !ok {
		return
	}

	var req models.SetStatusRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.CodeValidationError, "Invalid JSON")
		return
	}

	if req.Status != models.QuestionStatusOpen && req.Status != models.QuestionStatusAnswered {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.CodeValidationError, "status must be open or answered")
		return
	}

	_, err := h.db.Exec("UPDATE question SET status = $1 WHERE id = $2", req.Status, question.ID)
	if err != nil {
		slog.Error("failed to set status", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "", "Failed to update question")
		return
	}

	slog.Info("question status changed", "question_id", question.ID, "status", req.Status)

	h.respondWithView(w, question.ID, voterID)
}

// SetHidden handles POST /questions/:id/hidden (host only)
// Orthogonal to status: hiding suppresses a question from the public
// board without marking it answered.
func (h *QuestionHandler) SetHidden(w http.ResponseWriter, r *http.Request) {
	question, voterID, ok := h.requireHostForQuestion(w, r)
	if !ok {
		return
	}

	var req models.SetHiddenRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.CodeValidationError, "Invalid JSON")
		return
	}

	_, err := h.db.Exec("UPDATE question SET hidden = $1 WHERE id = $2", req.Hidden, question.ID)
	if err != nil {
		slog.Error("failed to set hidden", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "", "Failed to update question")
		return
	}

	slog.Info("question hidden changed", "question_id", question.ID, "hidden", req.Hidden)

	h.respondWithView(w, question.ID, voterID)
}

// SetPinned handles POST /questions/:id/pin (host only)
// Pinning stamps the server clock; the timestamp is the pin-order
// tiebreak (most recently pinned first).
func (h *QuestionHandler) SetPinned(w http.ResponseWriter, r *http.Request) {
	question, voterID, ok := h.requireHostForQuestion(w, r)
	if !ok {
		return
	}

	var req models.SetPinnedRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.CodeValidationError, "Invalid JSON")
		return
	}

	var pinnedAt *time.Time
	if req.Pinned {
		now := time.Now()
		pinnedAt = &now
	}

	_, err := h.db.Exec("UPDATE question SET pinned_at = $1 WHERE id = $2", pinnedAt, question.ID)
	if err != nil {
		slog.Error("failed to set pinned", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "", "Failed to update question")
		return
	}

	slog.Info("question pin changed", "question_id", question.ID, "pinned", req.Pinned)

	h.respondWithView(w, question.ID, voterID)
}

// authorizeSubmitter enforces the submitter-only guards: identity match
// first, then the edit window measured against the server-side creation
// timestamp. Window expiry is permanent.
func (h *QuestionHandler) authorizeSubmitter(w http.ResponseWriter, question models.Question, voterID string) bool {
	if question.VoterID == nil || *question.VoterID != voterID {
		middleware.ErrorResponse(w, http.StatusForbidden, models.CodeForbidden, "Not allowed")
		return false
	}

	if time.Since(question.CreatedAt) > h.cfg.EditWindow {
		middleware.ErrorResponse(w, http.StatusGone, models.CodeWindowExpired, "The edit window for this question has closed")
		return false
	}

	return true
}

// requireHostForQuestion loads the question from the path and validates
// the X-Host-Key header against its parent event.
func (h *QuestionHandler) requireHostForQuestion(w http.ResponseWriter, r *http.Request) (models.Question, string, bool) {
	questionID := r.PathValue("id")
	if questionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.CodeValidationError, "question_id is required")
		return models.Question{}, "", false
	}

	voterID, _ := middleware.ResolveVoter(w, r)

	question, err := getQuestion(h.db, questionID)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, models.CodeNotFound, "Question not found")
		return models.Question{}, "", false
	}
	if err != nil {
		slog.Error("failed to query question", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "", "Database error")
		return models.Question{}, "", false
	}

	hostKey := r.Header.Get("X-Host-Key")
	if err := auth.ValidateHostKey(question.EventID, hostKey, h.cfg.HostKeySalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, models.CodeUnauthorized, "Invalid host key")
		return models.Question{}, "", false
	}

	return question, voterID, true
}

func (h *QuestionHandler) respondWithView(w http.ResponseWriter, questionID, voterID string) {
	view, err := loadQuestionView(h.db, h.cfg, questionID, voterID)
	if err != nil {
		slog.Error("failed to load question view", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "", "Database error")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, view)
}

// validateQuestionBody returns a problem description or "".
func validateQuestionBody(body string) string {
	if strings.TrimSpace(body) == "" {
		return "body is required"
	}
	if utf8.RuneCountInString(body) > models.MaxQuestionLen {
		return "body must be at most 280 characters"
	}
	return ""
}

// getQuestion loads a full question row by ID.
func getQuestion(db *sql.DB, questionID string) (models.Question, error) {
	var q models.Question
	err := db.QueryRow(`
		SELECT id, event_id, body, display_name, anonymous, voter_id,
		       status, hidden, pinned_at, ip_hash, created_at
		FROM question
		WHERE id = $1
	`, questionID).Scan(
		&q.ID, &q.EventID, &q.Body, &q.DisplayName, &q.Anonymous, &q.VoterID,
		&q.Status, &q.Hidden, &q.PinnedAt, &q.IPHash, &q.CreatedAt,
	)
	return q, err
}
