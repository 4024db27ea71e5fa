// Copyright (c) 2025 Shane Orto.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Event status constants
const (
	EventStatusOpen   = "open"
	EventStatusClosed = "closed"
)

// Event type constants
const (
	EventTypeCompany = "company"
	EventTypeTeam    = "team"
)

// Question status constants
const (
	QuestionStatusOpen     = "open"
	QuestionStatusAnswered = "answered"
)

// Sort mode constants
const (
	SortScore  = "score"
	SortNewest = "newest"
)

// Error codes carried in ErrorResponse.Code
const (
	CodeNotFound        = "not_found"
	CodeVotingClosed    = "voting_closed"
	CodeUnauthorized    = "unauthorized"
	CodeForbidden       = "forbidden"
	CodeWindowExpired   = "window_expired"
	CodeValidationError = "validation_error"
)

// MaxQuestionLen is the question body limit, counted in runes.
const MaxQuestionLen = 280

// Request types

type CreateEventRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	HostName    string     `json:"host_name"`
	EventType   string     `json:"event_type"`
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
}

type EditEventRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	HostName    string     `json:"host_name"`
	EventType   string     `json:"event_type"`
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
}

type SetVotingRequest struct {
	Open bool `json:"open"`
}

type SubmitQuestionRequest struct {
	Body        string `json:"body"`
	DisplayName string `json:"display_name"`
	Anonymous   bool   `json:"anonymous"`
}

type EditQuestionRequest struct {
	Body string `json:"body"`
}

// Value must be -1, 0, or +1; 0 clears the caller's vote.
type CastVoteRequest struct {
	Value int `json:"value"`
}

type SetStatusRequest struct {
	Status string `json:"status"`
}

type SetHiddenRequest struct {
	Hidden bool `json:"hidden"`
}

type SetPinnedRequest struct {
	Pinned bool `json:"pinned"`
}

// Response types

type CreateEventResponse struct {
	EventID   string `json:"event_id"`
	HostKey   string `json:"host_key"`
	ShareSlug string `json:"share_slug"`
	ShareURL  string `json:"share_url"`
}

type CastVoteResponse struct {
	QuestionID string `json:"question_id"`
	Score      int    `json:"score"`
	YourVote   *int   `json:"your_vote"`
}

type RetractQuestionResponse struct {
	QuestionID string `json:"question_id"`
	Message    string `json:"message"`
}

type BoardResponse struct {
	Event     Event          `json:"event"`
	Questions []QuestionView `json:"questions"`
	Metrics   BoardMetrics   `json:"metrics"`
}

type PresenterResponse struct {
	Event        Event          `json:"event"`
	Questions    []QuestionView `json:"questions"`
	PollInterval int            `json:"poll_interval"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

// Domain types

type Event struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	HostName    string     `json:"host_name"`
	EventType   string     `json:"event_type"`
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
	Active      bool       `json:"active"`
	VotingOpen  bool       `json:"voting_open"`
	Status      string     `json:"status"`
	ShareSlug   *string    `json:"share_slug,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

type Question struct {
	ID          string     `json:"id"`
	EventID     string     `json:"event_id"`
	Body        string     `json:"body"`
	DisplayName *string    `json:"display_name"`
	Anonymous   bool       `json:"anonymous"`
	VoterID     *string    `json:"-"` // Submitter identity, never exposed in JSON
	Status      string     `json:"status"`
	Hidden      bool       `json:"hidden"`
	PinnedAt    *time.Time `json:"pinned_at,omitempty"`
	IPHash      *string    `json:"-"` // Never expose in JSON
	CreatedAt   time.Time  `json:"created_at"`
}

// QuestionView is a Question projected for a specific caller: score and
// the caller's own vote are recomputed from the vote rows on every read,
// and ownership/editability are evaluated against the caller's voter
// identity at projection time, never cached.
type QuestionView struct {
	ID          string     `json:"id"`
	EventID     string     `json:"event_id"`
	Body        string     `json:"body"`
	DisplayName *string    `json:"display_name"`
	Anonymous   bool       `json:"anonymous"`
	Status      string     `json:"status"`
	Hidden      bool       `json:"hidden"`
	PinnedAt    *time.Time `json:"pinned_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	CreatedAgo  string     `json:"created_ago"`
	Score       int        `json:"score"`
	YourVote    *int       `json:"your_vote"`
	IsOwner     bool       `json:"is_owner"`
	CanEdit     bool       `json:"can_edit"`
}

type BoardMetrics struct {
	Total    int `json:"total"`
	Open     int `json:"open"`
	Answered int `json:"answered"`
	Hidden   int `json:"hidden"`
}
