// Copyright (c) 2025 Shane Orto.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package reconcile

import (
	"errors"
	"sync"

	"github.com/shanerto/ama-tool-2/models"
)

// ErrInFlight is returned by Begin while a vote request for the same
// question is still outstanding.
var ErrInFlight = errors.New("vote request already in flight")

// ErrUnknownQuestion is returned when the tracker has no local state
// for the question.
var ErrUnknownQuestion = errors.New("unknown question")

// pending records what a local view looked like before an optimistic
// vote was applied, so a failed request can be reverted exactly.
type pending struct {
	prevScore int
	prevVote  *int
}

// Tracker holds a client's local copy of a board and reconciles it
// against vote responses and periodic polls.
//
// The flow per vote: Begin applies the change locally and returns the
// resolved target value to send to the server; Confirm overwrites the
// optimistic state with the server's authoritative answer; Fail reverts
// to the pre-vote state. MergePoll folds a fresh board poll in without
// clobbering questions that have a vote outstanding.
type Tracker struct {
	mu       sync.Mutex
	views    map[string]models.QuestionView
	inflight map[string]pending
}

func NewTracker() *Tracker {
	return &Tracker{
		views:    make(map[string]models.QuestionView),
		inflight: make(map[string]pending),
	}
}

// Seed replaces all local state with a full board snapshot. Any
// in-flight bookkeeping is dropped.
func (t *Tracker) Seed(views []models.QuestionView) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.views = make(map[string]models.QuestionView, len(views))
	t.inflight = make(map[string]pending)
	for _, v := range views {
		t.views[v.ID] = v
	}
}

// Get returns the local view of a question.
func (t *Tracker) Get(questionID string) (models.QuestionView, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	v, ok := t.views[questionID]
	return v, ok
}

// InFlight reports whether a vote request is outstanding for a question.
func (t *Tracker) InFlight(questionID string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	_, ok := t.inflight[questionID]
	return ok
}

// Resolve maps a button press to the target vote value without changing
// any state: pressing the direction already voted clears the vote,
// anything else votes that direction.
func (t *Tracker) Resolve(questionID string, direction int) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	v, ok := t.views[questionID]
	if !ok {
		return 0, ErrUnknownQuestion
	}
	return resolveTarget(v.YourVote, direction), nil
}

// Begin applies an optimistic vote locally and returns the target value
// to send to the server. The target is resolved from the local state,
// confirmed or optimistic, at press time. A second press while the
// first request is outstanding returns ErrInFlight and changes nothing.
func (t *Tracker) Begin(questionID string, direction int) (int, error) {
	if direction != -1 && direction != 1 {
		return 0, errors.New("direction must be -1 or +1")
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	v, ok := t.views[questionID]
	if !ok {
		return 0, ErrUnknownQuestion
	}
	if _, busy := t.inflight[questionID]; busy {
		return 0, ErrInFlight
	}

	target := resolveTarget(v.YourVote, direction)

	t.inflight[questionID] = pending{
		prevScore: v.Score,
		prevVote:  v.YourVote,
	}

	v.Score += target - voteValue(v.YourVote)
	if target == 0 {
		v.YourVote = nil
	} else {
		tv := target
		v.YourVote = &tv
	}
	t.views[questionID] = v

	return target, nil
}

// Confirm replaces the optimistic state with the server's authoritative
// score and vote, and releases the in-flight guard.
func (t *Tracker) Confirm(questionID string, score int, yourVote *int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	v, ok := t.views[questionID]
	if !ok {
		return
	}

	v.Score = score
	v.YourVote = copyVote(yourVote)
	t.views[questionID] = v
	delete(t.inflight, questionID)
}

// Fail reverts a question to its exact pre-vote state and releases the
// in-flight guard. No-op if nothing is outstanding.
func (t *Tracker) Fail(questionID string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	p, ok := t.inflight[questionID]
	if !ok {
		return
	}

	v, ok := t.views[questionID]
	if ok {
		v.Score = p.prevScore
		v.YourVote = copyVote(p.prevVote)
		t.views[questionID] = v
	}
	delete(t.inflight, questionID)
}

// MergePoll folds a board poll into the local state. Questions with a
// vote outstanding keep their optimistic score and vote, because the
// poll may have been computed before the in-flight request landed;
// everything else is taken from the server. Questions absent from the
// poll are dropped (retracted or hidden since the last poll).
func (t *Tracker) MergePoll(views []models.QuestionView) {
	t.mu.Lock()
	defer t.mu.Unlock()

	merged := make(map[string]models.QuestionView, len(views))
	for _, v := range views {
		if _, busy := t.inflight[v.ID]; busy {
			if local, ok := t.views[v.ID]; ok {
				v.Score = local.Score
				v.YourVote = copyVote(local.YourVote)
			}
		}
		merged[v.ID] = v
	}
	t.views = merged

	for id := range t.inflight {
		if _, ok := merged[id]; !ok {
			delete(t.inflight, id)
		}
	}
}

// resolveTarget implements toggle semantics on a current vote.
func resolveTarget(current *int, direction int) int {
	if current != nil && *current == direction {
		return 0
	}
	return direction
}

func voteValue(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

func copyVote(v *int) *int {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
