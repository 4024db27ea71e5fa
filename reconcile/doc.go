// Copyright (c) 2025 Shane Orto.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package reconcile keeps a voting client's local board consistent while
vote requests are in flight.

A client polls the board every few seconds and also fires vote requests
as buttons are pressed. Without bookkeeping, a poll response computed
before an in-flight vote lands would visibly undo the optimistic update,
and a double-click would send two conflicting requests. Tracker handles
both:

	tracker := reconcile.NewTracker()
	tracker.Seed(board.Questions)

	// Button press: apply locally, get the value to send
	target, err := tracker.Begin(questionID, +1)
	if err == reconcile.ErrInFlight {
		return // ignore the double-click
	}

	// On the server's vote response
	tracker.Confirm(questionID, resp.Score, resp.YourVote)

	// On request failure
	tracker.Fail(questionID)

	// On each board poll
	tracker.MergePoll(board.Questions)

Begin resolves toggle semantics from the local state at press time:
pressing the direction already voted clears the vote, pressing the
other direction flips it. Confirm is always authoritative; Fail reverts
to the exact pre-press state. MergePoll prefers the local optimistic
score and vote only for questions whose request is still outstanding.

All methods are safe for concurrent use.
*/
package reconcile
