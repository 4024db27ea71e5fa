// Copyright (c) 2025 Shane Orto.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/shanerto/ama-tool-2/cliparse"
	"github.com/shanerto/ama-tool-2/middleware"
	"github.com/shanerto/ama-tool-2/models"
)

type VoteHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewVoteHandler(db *sql.DB, cfg cliparse.Config) *VoteHandler {
	return &VoteHandler{db: db, cfg: cfg}
}

// errVotingClosed is returned by castVote when the target question is
// not currently votable (event closed, voting toggled off, question
// answered or hidden).
var errVotingClosed = errors.New("voting closed")

// CastVote handles POST /questions/:id/vote
//
// The request carries a fully resolved target value: -1, +1, or 0 to
// clear. Toggle semantics ("clicking the direction I already voted
// clears it") are the client's concern; see the reconcile package.
func (h *VoteHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	questionID := r.PathValue("id")
	if questionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.CodeValidationError, "question_id is required")
		return
	}

	voterID, _ := middleware.ResolveVoter(w, r)

	var req models.CastVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.CodeValidationError, "Invalid JSON")
		return
	}

	if req.Value != -1 && req.Value != 0 && req.Value != 1 {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.CodeValidationError, "value must be -1, 0, or 1")
		return
	}

	score, yourVote, err := castVote(h.db, questionID, voterID, req.Value)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, models.CodeNotFound, "Question not found")
		return
	}
	if errors.Is(err, errVotingClosed) {
		middleware.ErrorResponse(w, http.StatusConflict, models.CodeVotingClosed, "Voting is closed for this question")
		return
	}
	if err != nil {
		slog.Error("failed to cast vote", "error", err, "question_id", questionID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "", "Failed to cast vote")
		return
	}

	slog.Info("vote cast", "question_id", questionID, "value", req.Value, "score", score)

	middleware.JSONResponse(w, http.StatusOK, models.CastVoteResponse{
		QuestionID: questionID,
		Score:      score,
		YourVote:   yourVote,
	})
}

// castVote is the vote ledger operation: one signed vote per
// (question, voter) pair, enforced by the table's composite primary key.
//
// value = +1/-1 upserts in a single atomic statement; value = 0 deletes
// the row (no-op if absent). The returned score and vote state are
// recomputed from the table so the caller can reconcile without a
// second read.
func castVote(db *sql.DB, questionID, voterID string, value int) (int, *int, error) {
	// Precondition: the question must exist and be votable.
	var qStatus, eStatus string
	var hidden, votingOpen bool
	err := db.QueryRow(`
		SELECT q.status, q.hidden, e.status, e.voting_open
		FROM question q
		JOIN event e ON q.event_id = e.id
		WHERE q.id = $1
	`, questionID).Scan(&qStatus, &hidden, &eStatus, &votingOpen)
	if err != nil {
		return 0, nil, err
	}

	if eStatus != models.EventStatusOpen || !votingOpen ||
		qStatus != models.QuestionStatusOpen || hidden {
		return 0, nil, errVotingClosed
	}

	if value == 0 {
		_, err = db.Exec(`
			DELETE FROM vote WHERE question_id = $1 AND voter_id = $2
		`, questionID, voterID)
		if err != nil {
			return 0, nil, fmt.Errorf("failed to clear vote: %w", err)
		}
	} else {
		// Atomic upsert keyed on the (question, voter) primary key. A
		// check-then-write here would let two racing requests from one
		// browser insert two rows; the unique-key upsert cannot.
		now := time.Now()
		_, err = db.Exec(`
			INSERT INTO vote (question_id, voter_id, value, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (question_id, voter_id) DO UPDATE SET
				value = EXCLUDED.value,
				updated_at = EXCLUDED.updated_at
		`, questionID, voterID, value, now, now)
		if err != nil {
			return 0, nil, fmt.Errorf("failed to upsert vote: %w", err)
		}
	}

	score, err := questionScore(db, questionID)
	if err != nil {
		return 0, nil, err
	}

	yourVote, err := voterVote(db, questionID, voterID)
	if err != nil {
		return 0, nil, err
	}

	return score, yourVote, nil
}

// questionScore recomputes a question's score as the sum of its vote
// values. The score is derived, never stored.
func questionScore(db *sql.DB, questionID string) (int, error) {
	var score int
	err := db.QueryRow(`
		SELECT COALESCE(SUM(value), 0) FROM vote WHERE question_id = $1
	`, questionID).Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("failed to compute score: %w", err)
	}
	return score, nil
}

// voterVote returns the caller's current vote on a question, or nil.
func voterVote(db *sql.DB, questionID, voterID string) (*int, error) {
	var value int
	err := db.QueryRow(`
		SELECT value FROM vote WHERE question_id = $1 AND voter_id = $2
	`, questionID, voterID).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query vote: %w", err)
	}
	return &value, nil
}
