// Copyright (c) 2025 Shane Orto.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the AMA board API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg)

# Endpoints

Health:

	GET /health

Event management (host, requires X-Host-Key):

	POST /events             - Create event
	POST /events/{id}/edit   - Update event metadata
	POST /events/{id}/voting - Toggle voting on/off
	POST /events/{id}/close  - Close event
	POST /events/{id}/delete - Delete event and all questions

Attendee surface (public, uses share slug):

	GET  /events/{slug}           - Event info
	GET  /events/{slug}/questions - Ranked board (host key reveals hidden)
	GET  /events/{slug}/presenter - Presenter projection
	POST /events/{slug}/questions - Submit question

Question operations:

	POST /questions/{id}/edit    - Edit body (submitter, within window)
	POST /questions/{id}/retract - Retract (submitter, within window)
	POST /questions/{id}/vote    - Cast, flip, or clear a vote
	POST /questions/{id}/status  - Mark open/answered (host)
	POST /questions/{id}/hidden  - Hide/unhide (host)
	POST /questions/{id}/pin     - Pin/unpin (host)

# Handler Initialization

The router creates handler instances with dependency injection:

	eventHandler := handlers.NewEventHandler(db, cfg)
	questionHandler := handlers.NewQuestionHandler(db, cfg)
	voteHandler := handlers.NewVoteHandler(db, cfg)
	boardHandler := handlers.NewBoardHandler(db, cfg)

All handlers receive the database connection and configuration.
*/
package router
