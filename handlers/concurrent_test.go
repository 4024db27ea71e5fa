// Copyright (c) 2025 Shane Orto.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/shanerto/ama-tool-2/testutil"
)

// TestConcurrentVotes_SameVoter verifies that racing requests from one
// browser collapse to a single ledger row.
func TestConcurrentVotes_SameVoter(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewVoteHandler(db, cfg)

	eventID, _, _ := testutil.CreateTestEvent(t, db, cfg, "open")
	questionID := testutil.CreateTestQuestion(t, db, eventID, "Race target", "submitter-1")

	numRequests := 10
	var successCount atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < numRequests; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			w := httptest.NewRecorder()
			handler.CastVote(w, castVoteRequest(questionID, "voter-race-001", 1))

			if w.Code == http.StatusOK {
				successCount.Add(1)
			}
		}()
	}

	wg.Wait()

	if int(successCount.Load()) != numRequests {
		t.Errorf("Expected %d successful requests, got %d", numRequests, successCount.Load())
	}

	var rows, score int
	err := db.QueryRow("SELECT COUNT(*), COALESCE(SUM(value), 0) FROM vote WHERE question_id = $1", questionID).Scan(&rows, &score)
	if err != nil {
		t.Fatalf("Failed to query votes: %v", err)
	}
	if rows != 1 {
		t.Errorf("Expected exactly 1 vote row, got %d", rows)
	}
	if score != 1 {
		t.Errorf("Expected score 1, got %d", score)
	}
}

// TestConcurrentVotes_ManyVoters verifies independent voters land one
// row each and the score sums correctly.
func TestConcurrentVotes_ManyVoters(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewVoteHandler(db, cfg)

	eventID, _, _ := testutil.CreateTestEvent(t, db, cfg, "open")
	questionID := testutil.CreateTestQuestion(t, db, eventID, "Popular target", "submitter-1")

	numVoters := 12
	var wg sync.WaitGroup

	for i := 0; i < numVoters; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			// Alternate up and down votes
			value := 1
			if idx%3 == 0 {
				value = -1
			}

			w := httptest.NewRecorder()
			handler.CastVote(w, castVoteRequest(questionID, "voter-many-"+strconv.Itoa(idx), value))
			if w.Code != http.StatusOK {
				t.Errorf("Voter %d: expected 200, got %d", idx, w.Code)
			}
		}(i)
	}

	wg.Wait()

	// 4 downvotes (idx 0,3,6,9) and 8 upvotes
	var rows, score int
	err := db.QueryRow("SELECT COUNT(*), COALESCE(SUM(value), 0) FROM vote WHERE question_id = $1", questionID).Scan(&rows, &score)
	if err != nil {
		t.Fatalf("Failed to query votes: %v", err)
	}
	if rows != numVoters {
		t.Errorf("Expected %d vote rows, got %d", numVoters, rows)
	}
	if score != 4 {
		t.Errorf("Expected score 4, got %d", score)
	}
}

// TestConcurrentQuestionSubmissions verifies simultaneous submissions
// all land without colliding on IDs.
func TestConcurrentQuestionSubmissions(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewQuestionHandler(db, cfg)

	eventID, _, shareSlug := testutil.CreateTestEvent(t, db, cfg, "open")

	numSubmitters := 8
	var successCount atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < numSubmitters; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			body := map[string]interface{}{
				"body":         "Concurrent question " + strconv.Itoa(idx),
				"display_name": "Submitter" + strconv.Itoa(idx),
			}
			req := testutil.MakeVoterRequest("POST", "/events/"+shareSlug+"/questions",
				body, nil, "voter-conc-"+strconv.Itoa(idx))
			req.SetPathValue("slug", shareSlug)
			w := httptest.NewRecorder()

			handler.SubmitQuestion(w, req)
			if w.Code == http.StatusCreated {
				successCount.Add(1)
			}
		}(i)
	}

	wg.Wait()

	if int(successCount.Load()) != numSubmitters {
		t.Errorf("Expected %d successful submissions, got %d", numSubmitters, successCount.Load())
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM question WHERE event_id = $1", eventID).Scan(&count); err != nil {
		t.Fatalf("Failed to count questions: %v", err)
	}
	if count != numSubmitters {
		t.Errorf("Expected %d questions, got %d", numSubmitters, count)
	}
}
