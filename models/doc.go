// Copyright (c) 2025 Shane Orto.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - CreateEventRequest / EditEventRequest: title, description, host_name, event_type
  - SubmitQuestionRequest: body, display_name, anonymous
  - EditQuestionRequest: body
  - CastVoteRequest: value (-1, 0, +1)
  - SetVotingRequest / SetStatusRequest / SetHiddenRequest / SetPinnedRequest

# Response Types

  - CreateEventResponse: event_id, host_key, share_slug, share_url
  - CastVoteResponse: question_id, score, your_vote
  - BoardResponse: event, questions, metrics
  - PresenterResponse: event, questions, poll_interval
  - ErrorResponse: error, code, message

# Domain Types

  - Event: event metadata, voting flag, and lifecycle status
  - Question: a submitted question with status, hidden, and pin state
  - QuestionView: a Question annotated for one caller (score, your_vote,
    is_owner, can_edit) - the output of the board projection
  - BoardMetrics: aggregate question counts

# Constants

Event status:

	EventStatusOpen   = "open"
	EventStatusClosed = "closed"

Question status:

	QuestionStatusOpen     = "open"
	QuestionStatusAnswered = "answered"

Sort modes:

	SortScore  = "score"
	SortNewest = "newest"

Error codes map onto the failure taxonomy: not_found, voting_closed,
unauthorized, forbidden, window_expired, validation_error.
*/
package models
