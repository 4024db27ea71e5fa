// Copyright (c) 2025 Shane Orto.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/shanerto/ama-tool-2/auth"
	"github.com/shanerto/ama-tool-2/cliparse"
	"github.com/shanerto/ama-tool-2/middleware"
	"github.com/shanerto/ama-tool-2/models"
)

type BoardHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewBoardHandler(db *sql.DB, cfg cliparse.Config) *BoardHandler {
	return &BoardHandler{db: db, cfg: cfg}
}

// GetBoard handles GET /events/:slug/questions?sort=score|newest
//
// Public callers see open, unhidden questions. A valid X-Host-Key
// reveals everything, including hidden and answered questions; an
// invalid key is rejected rather than silently downgraded so a host
// with a stale key notices immediately.
func (h *BoardHandler) GetBoard(w http.ResponseWriter, r *http.Request) {
	shareSlug := r.PathValue("slug")
	if shareSlug == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.CodeValidationError, "slug is required")
		return
	}

	voterID, _ := middleware.ResolveVoter(w, r)

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

	isHost := false
	if hostKey := r.Header.Get("X-Host-Key"); hostKey != "" {
		if err := auth.ValidateHostKey(event.ID, hostKey, h.cfg.HostKeySalt); err != nil {
			middleware.ErrorResponse(w, http.StatusUnauthorized, models.CodeUnauthorized, "Invalid host key")
			return
		}
		isHost = true
	}

	sortMode := r.URL.Query().Get("sort")
	if sortMode != models.SortNewest {
		sortMode = models.SortScore
	}

	questions, err := h.loadEventQuestions(event.ID)
	if err != nil {
		slog.Error("failed to query questions", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "", "Database error")
		return
	}

	scores, myVotes, err := h.loadVoteAggregates(event.ID, voterID)
	if err != nil {
		slog.Error("failed to aggregate votes", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "", "Database error")
		return
	}

	metrics := models.BoardMetrics{}
	views := make([]models.QuestionView, 0, len(questions))
	for _, q := range questions {
		metrics.Total++
		if q.Hidden {
			metrics.Hidden++
		}
		switch q.Status {
		case models.QuestionStatusOpen:
			metrics.Open++
		case models.QuestionStatusAnswered:
			metrics.Answered++
		}

		if !isHost && (q.Hidden || q.Status != models.QuestionStatusOpen) {
			continue
		}

		views = append(views, buildQuestionView(q, scores[q.ID], myVotes[q.ID], voterID, h.cfg.EditWindow))
	}

	SortQuestionViews(views, sortMode)

	middleware.JSONResponse(w, http.StatusOK, models.BoardResponse{
		Event:     event,
		Questions: views,
		Metrics:   metrics,
	})
}

// GetPresenter handles GET /events/:slug/presenter?interval=3|5|10
//
// A read-only projection for the big screen: open questions by score,
// plus the poll interval the page should refresh at.
func (h *BoardHandler) GetPresenter(w http.ResponseWriter, r *http.Request) {
	shareSlug := r.PathValue("slug")
	if shareSlug == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.CodeValidationError, "slug is required")
		return
	}

	voterID, _ := middleware.ResolveVoter(w, r)

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

	questions, err := h.loadEventQuestions(event.ID)
	if err != nil {
		slog.Error("failed to query questions", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "", "Database error")
		return
	}

	scores, myVotes, err := h.loadVoteAggregates(event.ID, voterID)
	if err != nil {
		slog.Error("failed to aggregate votes", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "", "Database error")
		return
	}

	views := make([]models.QuestionView, 0, len(questions))
	for _, q := range questions {
		if q.Hidden || q.Status != models.QuestionStatusOpen {
			continue
		}
		views = append(views, buildQuestionView(q, scores[q.ID], myVotes[q.ID], voterID, h.cfg.EditWindow))
	}

	SortQuestionViews(views, models.SortScore)

	interval := 3
	switch r.URL.Query().Get("interval") {
	case "5":
		interval = 5
	case "10":
		interval = 10
	}

	middleware.JSONResponse(w, http.StatusOK, models.PresenterResponse{
		Event:        event,
		Questions:    views,
		PollInterval: interval,
	})
}

// loadEventQuestions returns every question row for an event, hidden and
// answered ones included; visibility filtering is the caller's job.
func (h *BoardHandler) loadEventQuestions(eventID string) ([]models.Question, error) {
	rows, err := h.db.Query(`
		SELECT id, event_id, body, display_name, anonymous, voter_id,
		       status, hidden, pinned_at, ip_hash, created_at
		FROM question
		WHERE event_id = $1
	`, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []models.Question
	for rows.Next() {
		var q models.Question
		if err := rows.Scan(
			&q.ID, &q.EventID, &q.Body, &q.DisplayName, &q.Anonymous, &q.VoterID,
			&q.Status, &q.Hidden, &q.PinnedAt, &q.IPHash, &q.CreatedAt,
		); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

// loadVoteAggregates walks the event's vote rows once, accumulating
// per-question scores and picking out the caller's own votes.
func (h *BoardHandler) loadVoteAggregates(eventID, voterID string) (map[string]int, map[string]*int, error) {
	rows, err := h.db.Query(`
		SELECT v.question_id, v.voter_id, v.value
		FROM vote v
		JOIN question q ON v.question_id = q.id
		WHERE q.event_id = $1
	`, eventID)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	scores := make(map[string]int)
	myVotes := make(map[string]*int)
	for rows.Next() {
		var questionID, rowVoter string
		var value int
		if err := rows.Scan(&questionID, &rowVoter, &value); err != nil {
			return nil, nil, err
		}
		scores[questionID] += value
		if rowVoter == voterID {
			v := value
			myVotes[questionID] = &v
		}
	}
	return scores, myVotes, rows.Err()
}

// buildQuestionView projects a question row for one caller. Ownership
// and editability are evaluated here, against the server clock, on every
// read.
func buildQuestionView(q models.Question, score int, yourVote *int, voterID string, editWindow time.Duration) models.QuestionView {
	isOwner := q.VoterID != nil && *q.VoterID == voterID
	return models.QuestionView{
		ID:          q.ID,
		EventID:     q.EventID,
		Body:        q.Body,
		DisplayName: q.DisplayName,
		Anonymous:   q.Anonymous,
		Status:      q.Status,
		Hidden:      q.Hidden,
		PinnedAt:    q.PinnedAt,
		CreatedAt:   q.CreatedAt,
		CreatedAgo:  humanize.Time(q.CreatedAt),
		Score:       score,
		YourVote:    yourVote,
		IsOwner:     isOwner,
		CanEdit:     isOwner && time.Since(q.CreatedAt) <= editWindow,
	}
}

// loadQuestionView fetches one question fresh and projects it for the
// caller. Write handlers use it to echo the updated row back.
func loadQuestionView(db *sql.DB, cfg cliparse.Config, questionID, voterID string) (models.QuestionView, error) {
	q, err := getQuestion(db, questionID)
	if err != nil {
		return models.QuestionView{}, err
	}

	score, err := questionScore(db, questionID)
	if err != nil {
		return models.QuestionView{}, err
	}

	yourVote, err := voterVote(db, questionID, voterID)
	if err != nil {
		return models.QuestionView{}, err
	}

	return buildQuestionView(q, score, yourVote, voterID, cfg.EditWindow), nil
}
