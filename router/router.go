// Copyright (c) 2025 Shane Orto.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/shanerto/ama-tool-2/cliparse"
	"github.com/shanerto/ama-tool-2/handlers"
	"github.com/shanerto/ama-tool-2/middleware"
)

func NewRouter(db *sql.DB, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	eventHandler := handlers.NewEventHandler(db, cfg)
	questionHandler := handlers.NewQuestionHandler(db, cfg)
	voteHandler := handlers.NewVoteHandler(db, cfg)
	boardHandler := handlers.NewBoardHandler(db, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Event management (host operations)
	mux.HandleFunc("POST /events", middleware.WithLogging(eventHandler.CreateEvent))
	mux.HandleFunc("POST /events/{id}/edit", middleware.WithLogging(eventHandler.EditEvent))
	mux.HandleFunc("POST /events/{id}/voting", middleware.WithLogging(eventHandler.SetVoting))
	mux.HandleFunc("POST /events/{id}/close", middleware.WithLogging(eventHandler.CloseEvent))
	mux.HandleFunc("POST /events/{id}/delete", middleware.WithLogging(eventHandler.DeleteEvent))

	// Attendee-facing event surface (by share slug)
	mux.HandleFunc("GET /events/{slug}", middleware.WithLogging(eventHandler.GetEvent))
	mux.HandleFunc("GET /events/{slug}/questions", middleware.WithLogging(boardHandler.GetBoard))
	mux.HandleFunc("GET /events/{slug}/presenter", middleware.WithLogging(boardHandler.GetPresenter))
	mux.HandleFunc("POST /events/{slug}/questions", middleware.WithLogging(questionHandler.SubmitQuestion))

	// Question operations (submitter or host)
	mux.HandleFunc("POST /questions/{id}/edit", middleware.WithLogging(questionHandler.EditQuestion))
	mux.HandleFunc("POST /questions/{id}/retract", middleware.WithLogging(questionHandler.RetractQuestion))
	mux.HandleFunc("POST /questions/{id}/vote", middleware.WithLogging(voteHandler.CastVote))
	mux.HandleFunc("POST /questions/{id}/status", middleware.WithLogging(questionHandler.SetStatus))
	mux.HandleFunc("POST /questions/{id}/hidden", middleware.WithLogging(questionHandler.SetHidden))
	mux.HandleFunc("POST /questions/{id}/pin", middleware.WithLogging(questionHandler.SetPinned))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ama-tool API v1"))
	})

	return mux
}
