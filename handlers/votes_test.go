// Copyright (c) 2025 Shane Orto.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shanerto/ama-tool-2/models"
	"github.com/shanerto/ama-tool-2/testutil"
)

func castVoteRequest(questionID, voterID string, value int) *http.Request {
	req := testutil.MakeVoterRequest("POST", "/questions/"+questionID+"/vote",
		models.CastVoteRequest{Value: value}, nil, voterID)
	req.SetPathValue("id", questionID)
	return req
}

func TestCastVote_BasicFlow(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewVoteHandler(db, cfg)

	eventID, _, _ := testutil.CreateTestEvent(t, db, cfg, "open")
	questionID := testutil.CreateTestQuestion(t, db, eventID, "What is the roadmap?", "submitter-1")

	// Upvote from nothing
	w := httptest.NewRecorder()
	handler.CastVote(w, castVoteRequest(questionID, "voter-aaa-111", 1))
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.CastVoteResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Score != 1 {
		t.Errorf("Expected score 1, got %d", resp.Score)
	}
	if resp.YourVote == nil || *resp.YourVote != 1 {
		t.Errorf("Expected your_vote +1, got %v", resp.YourVote)
	}

	// Flip to downvote: the row is replaced, not added
	w = httptest.NewRecorder()
	handler.CastVote(w, castVoteRequest(questionID, "voter-aaa-111", -1))
	testutil.AssertStatus(t, w, http.StatusOK)

	testutil.AssertJSON(t, w, &resp)
	if resp.Score != -1 {
		t.Errorf("Expected score -1 after flip, got %d", resp.Score)
	}
	if resp.YourVote == nil || *resp.YourVote != -1 {
		t.Errorf("Expected your_vote -1, got %v", resp.YourVote)
	}

	// Clear the vote
	w = httptest.NewRecorder()
	handler.CastVote(w, castVoteRequest(questionID, "voter-aaa-111", 0))
	testutil.AssertStatus(t, w, http.StatusOK)

	testutil.AssertJSON(t, w, &resp)
	if resp.Score != 0 {
		t.Errorf("Expected score 0 after clearing, got %d", resp.Score)
	}
	if resp.YourVote != nil {
		t.Errorf("Expected no vote after clearing, got %d", *resp.YourVote)
	}

	var rows int
	if err := db.QueryRow("SELECT COUNT(*) FROM vote WHERE question_id = $1", questionID).Scan(&rows); err != nil {
		t.Fatalf("Failed to count votes: %v", err)
	}
	if rows != 0 {
		t.Errorf("Expected 0 vote rows after clearing, got %d", rows)
	}
}

func TestCastVote_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewVoteHandler(db, cfg)

	eventID, _, _ := testutil.CreateTestEvent(t, db, cfg, "open")
	questionID := testutil.CreateTestQuestion(t, db, eventID, "Repeat after me?", "submitter-1")

	// Casting the same value twice leaves one row and the same score
	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		handler.CastVote(w, castVoteRequest(questionID, "voter-bbb-222", 1))
		testutil.AssertStatus(t, w, http.StatusOK)
	}

	var rows, score int
	if err := db.QueryRow("SELECT COUNT(*), COALESCE(SUM(value), 0) FROM vote WHERE question_id = $1", questionID).Scan(&rows, &score); err != nil {
		t.Fatalf("Failed to query votes: %v", err)
	}
	if rows != 1 {
		t.Errorf("Expected 1 vote row, got %d", rows)
	}
	if score != 1 {
		t.Errorf("Expected score 1, got %d", score)
	}

	// Clearing twice is a no-op the second time
	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		handler.CastVote(w, castVoteRequest(questionID, "voter-bbb-222", 0))
		testutil.AssertStatus(t, w, http.StatusOK)
	}
}

func TestCastVote_ClearThenRecast(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewVoteHandler(db, cfg)

	eventID, _, _ := testutil.CreateTestEvent(t, db, cfg, "open")
	questionID := testutil.CreateTestQuestion(t, db, eventID, "Once more?", "submitter-1")

	w := httptest.NewRecorder()
	handler.CastVote(w, castVoteRequest(questionID, "voter-ccc-333", 1))
	testutil.AssertStatus(t, w, http.StatusOK)

	w = httptest.NewRecorder()
	handler.CastVote(w, castVoteRequest(questionID, "voter-ccc-333", 0))
	testutil.AssertStatus(t, w, http.StatusOK)

	w = httptest.NewRecorder()
	handler.CastVote(w, castVoteRequest(questionID, "voter-ccc-333", -1))
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.CastVoteResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Score != -1 {
		t.Errorf("Expected score -1, got %d", resp.Score)
	}
}

func TestCastVote_ScoreAggregation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewVoteHandler(db, cfg)

	eventID, _, _ := testutil.CreateTestEvent(t, db, cfg, "open")
	questionID := testutil.CreateTestQuestion(t, db, eventID, "Popular question?", "submitter-1")

	// Three upvotes and one downvote
	voters := []struct {
		id    string
		value int
	}{
		{"voter-agg-001", 1},
		{"voter-agg-002", 1},
		{"voter-agg-003", 1},
		{"voter-agg-004", -1},
	}

	var resp models.CastVoteResponse
	for _, v := range voters {
		w := httptest.NewRecorder()
		handler.CastVote(w, castVoteRequest(questionID, v.id, v.value))
		testutil.AssertStatus(t, w, http.StatusOK)
		testutil.AssertJSON(t, w, &resp)
	}

	if resp.Score != 2 {
		t.Errorf("Expected final score 2, got %d", resp.Score)
	}
}

func TestCastVote_Rejections(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewVoteHandler(db, cfg)

	openEventID, _, _ := testutil.CreateTestEvent(t, db, cfg, "open")
	closedEventID, _, _ := testutil.CreateTestEvent(t, db, cfg, "closed")
	pausedEventID, _, _ := testutil.CreateTestEvent(t, db, cfg, "open")
	testutil.SetVotingOpen(t, db, pausedEventID, false)

	openQ := testutil.CreateTestQuestion(t, db, openEventID, "Fine question", "submitter-1")
	closedQ := testutil.CreateTestQuestion(t, db, closedEventID, "Too late", "submitter-1")
	pausedQ := testutil.CreateTestQuestion(t, db, pausedEventID, "On hold", "submitter-1")

	answeredQ := testutil.CreateTestQuestion(t, db, openEventID, "Already answered", "submitter-1")
	if _, err := db.Exec("UPDATE question SET status = 'answered' WHERE id = $1", answeredQ); err != nil {
		t.Fatalf("Failed to mark answered: %v", err)
	}

	hiddenQ := testutil.CreateTestQuestion(t, db, openEventID, "Out of sight", "submitter-1")
	if _, err := db.Exec("UPDATE question SET hidden = TRUE WHERE id = $1", hiddenQ); err != nil {
		t.Fatalf("Failed to hide question: %v", err)
	}

	tests := []struct {
		name           string
		questionID     string
		value          int
		expectedStatus int
		expectedCode   string
	}{
		{"invalid value", openQ, 5, http.StatusBadRequest, models.CodeValidationError},
		{"unknown question", "no-such-question", 1, http.StatusNotFound, models.CodeNotFound},
		{"event closed", closedQ, 1, http.StatusConflict, models.CodeVotingClosed},
		{"voting paused", pausedQ, 1, http.StatusConflict, models.CodeVotingClosed},
		{"question answered", answeredQ, 1, http.StatusConflict, models.CodeVotingClosed},
		{"question hidden", hiddenQ, 1, http.StatusConflict, models.CodeVotingClosed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			handler.CastVote(w, castVoteRequest(tt.questionID, "voter-rej-999", tt.value))
			testutil.AssertStatus(t, w, tt.expectedStatus)

			var errResp models.ErrorResponse
			testutil.AssertJSON(t, w, &errResp)
			if errResp.Code != tt.expectedCode {
				t.Errorf("Expected code %s, got %s", tt.expectedCode, errResp.Code)
			}
		})
	}

	// The rejected casts must not have touched the ledger
	var rows int
	if err := db.QueryRow("SELECT COUNT(*) FROM vote").Scan(&rows); err != nil {
		t.Fatalf("Failed to count votes: %v", err)
	}
	if rows != 0 {
		t.Errorf("Expected ledger untouched by rejected votes, found %d rows", rows)
	}
}

func TestCastVote_IndependentAcrossQuestions(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewVoteHandler(db, cfg)

	eventID, _, _ := testutil.CreateTestEvent(t, db, cfg, "open")
	q1 := testutil.CreateTestQuestion(t, db, eventID, "First question", "submitter-1")
	q2 := testutil.CreateTestQuestion(t, db, eventID, "Second question", "submitter-1")

	w := httptest.NewRecorder()
	handler.CastVote(w, castVoteRequest(q1, "voter-ind-001", 1))
	testutil.AssertStatus(t, w, http.StatusOK)

	w = httptest.NewRecorder()
	handler.CastVote(w, castVoteRequest(q2, "voter-ind-001", -1))
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.CastVoteResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Score != -1 {
		t.Errorf("Expected q2 score -1, got %d", resp.Score)
	}

	// q1's vote is untouched
	var q1Score int
	if err := db.QueryRow("SELECT COALESCE(SUM(value), 0) FROM vote WHERE question_id = $1", q1).Scan(&q1Score); err != nil {
		t.Fatalf("Failed to query q1 score: %v", err)
	}
	if q1Score != 1 {
		t.Errorf("Expected q1 score 1, got %d", q1Score)
	}
}
