// Copyright (c) 2025 Shane Orto.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/shanerto/ama-tool-2/auth"
	"github.com/shanerto/ama-tool-2/cliparse"
	"github.com/shanerto/ama-tool-2/db"
	"github.com/shanerto/ama-tool-2/middleware"
)

// SetupTestDB creates a fresh in-memory SQLite database with the full
// schema. MaxOpenConns is pinned to 1 so every statement sees the same
// in-memory database.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := sql.Open("sqlite", "file::memory:?_pragma=foreign_keys(1)")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	conn.SetMaxOpenConns(1)

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:          3318,
		DatabaseType:  "sqlite",
		DatabaseURL:   "file::memory:",
		HostKeySalt:   "test-host-salt",
		EventSlugSalt: "test-slug-salt",
		EditWindow:    120 * time.Second,
		BaseURL:       "https://ama.test",
	}
}

// CreateTestEvent creates an event and returns its ID, host key, and
// share slug. status should be "open" or "closed".
func CreateTestEvent(t *testing.T, conn *sql.DB, cfg cliparse.Config, status string) (eventID, hostKey, shareSlug string) {
	t.Helper()

	eventID, _ = auth.GenerateID(16)
	hostKey = auth.GenerateHostKey(eventID, cfg.HostKeySalt)
	shareSlug = auth.GenerateShareSlug(eventID, cfg.EventSlugSalt)

	votingOpen := status == "open"

	_, err := conn.Exec(`
		INSERT INTO event (id, title, description, host_name, event_type, active, voting_open, status, share_slug, created_at)
		VALUES ($1, 'Test Event', 'A test event', 'TestHost', 'company', TRUE, $2, $3, $4, $5)
	`, eventID, votingOpen, status, shareSlug, time.Now())
	if err != nil {
		t.Fatalf("Failed to create test event: %v", err)
	}

	return eventID, hostKey, shareSlug
}

// CreateTestQuestion inserts an open question and returns its ID.
func CreateTestQuestion(t *testing.T, conn *sql.DB, eventID, body, voterID string) string {
	t.Helper()
	return CreateTestQuestionAt(t, conn, eventID, body, voterID, time.Now())
}

// CreateTestQuestionAt inserts an open question with an explicit
// creation time, for edit-window and ranking tests.
func CreateTestQuestionAt(t *testing.T, conn *sql.DB, eventID, body, voterID string, createdAt time.Time) string {
	t.Helper()

	questionID, _ := auth.GenerateID(12)
	_, err := conn.Exec(`
		INSERT INTO question (id, event_id, body, display_name, anonymous, voter_id, status, hidden, created_at)
		VALUES ($1, $2, $3, 'TestVoter', FALSE, $4, 'open', FALSE, $5)
	`, questionID, eventID, body, voterID, createdAt)
	if err != nil {
		t.Fatalf("Failed to create test question: %v", err)
	}

	return questionID
}

// CastTestVote writes a vote row directly, bypassing the HTTP layer.
func CastTestVote(t *testing.T, conn *sql.DB, questionID, voterID string, value int) {
	t.Helper()

	now := time.Now()
	_, err := conn.Exec(`
		INSERT INTO vote (question_id, voter_id, value, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (question_id, voter_id) DO UPDATE SET
			value = EXCLUDED.value,
			updated_at = EXCLUDED.updated_at
	`, questionID, voterID, value, now, now)
	if err != nil {
		t.Fatalf("Failed to cast test vote: %v", err)
	}
}

// SetVotingOpen flips an event's voting toggle directly.
func SetVotingOpen(t *testing.T, conn *sql.DB, eventID string, open bool) {
	t.Helper()

	_, err := conn.Exec("UPDATE event SET voting_open = $1 WHERE id = $2", open, eventID)
	if err != nil {
		t.Fatalf("Failed to toggle voting: %v", err)
	}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// MakeVoterRequest is MakeRequest plus a voter_token cookie, so the
// handler resolves the given identity instead of minting a fresh one.
func MakeVoterRequest(method, path string, body interface{}, headers map[string]string, voterID string) *http.Request {
	req := MakeRequest(method, path, body, headers)
	req.AddCookie(&http.Cookie{Name: middleware.VoterCookie, Value: voterID})
	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
