// Copyright (c) 2025 Shane Orto.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"sort"

	"github.com/shanerto/ama-tool-2/models"
)

// SortQuestionViews orders views in place for the requested mode.
//
// Pinned questions always rank above unpinned ones, newest pin first,
// regardless of mode. Within a bucket, "score" sorts by score descending
// and "newest" skips straight to recency. Ties fall through to creation
// time descending, then ID, so equal-score questions keep a stable order
// across polls.
func SortQuestionViews(views []models.QuestionView, mode string) {
	sort.SliceStable(views, func(i, j int) bool {
		return compareQuestionViews(views[i], views[j], mode) < 0
	})
}

// compareQuestionViews is a three-way comparator: negative means a ranks
// before b.
func compareQuestionViews(a, b models.QuestionView, mode string) int {
	aPinned := a.PinnedAt != nil
	bPinned := b.PinnedAt != nil

	if aPinned != bPinned {
		if aPinned {
			return -1
		}
		return 1
	}
	if aPinned && bPinned && !a.PinnedAt.Equal(*b.PinnedAt) {
		if a.PinnedAt.After(*b.PinnedAt) {
			return -1
		}
		return 1
	}

	if mode == models.SortScore && a.Score != b.Score {
		if a.Score > b.Score {
			return -1
		}
		return 1
	}

	if !a.CreatedAt.Equal(b.CreatedAt) {
		if a.CreatedAt.After(b.CreatedAt) {
			return -1
		}
		return 1
	}

	if a.ID < b.ID {
		return -1
	}
	if a.ID > b.ID {
		return 1
	}
	return 0
}
