package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/reviewhub/reviews-backend/internal/models"
)

// ReactionLedger enforces at-most-one-active-reaction-per-user-per-
// review with idempotent toggle semantics: a repeated reaction of the
// same kind removes it, the opposite kind switches it, so totals never
// double-count a single user.
type ReactionLedger struct {
	store ReviewStore
	locks *reviewLocks
}

func NewReactionLedger(store ReviewStore, locks *reviewLocks) *ReactionLedger {
	return &ReactionLedger{store: store, locks: locks}
}

// React applies kind on behalf of userID and returns the review's
// updated counters. Calls for the same review are serialized so
// concurrent reactions from different users never lose an update.
func (l *ReactionLedger) React(ctx context.Context, userID, reviewID uint, kind string) (likes, dislikes int, err error) {
	if kind != models.ReactionLike && kind != models.ReactionDislike {
		return 0, 0, NewValidationError("reaction type must be %q or %q", models.ReactionLike, models.ReactionDislike)
	}

	l.locks.Lock(reviewID)
	defer l.locks.Unlock(reviewID)

	if _, err := l.store.Get(ctx, reviewID); err != nil {
		return 0, 0, err
	}

	existing, err := l.store.GetReaction(ctx, userID, reviewID)
	switch {
	case errors.Is(err, ErrNotFound):
		// First reaction from this user on this review.
		reaction := &models.Reaction{UserID: userID, ReviewID: reviewID, Kind: kind}
		if err := l.store.SaveReaction(ctx, reaction); err != nil {
			return 0, 0, err
		}
		if err := l.store.ApplyReactionDelta(ctx, reviewID, kind, 1); err != nil {
			return 0, 0, err
		}

	case err != nil:
		return 0, 0, fmt.Errorf("lookup reaction: %w", err)

	case existing.Kind == kind:
		// Toggle off. A zero-row delete means another instance already
		// removed the record; the counter must not go down twice.
		switch err := l.store.DeleteReaction(ctx, userID, reviewID); {
		case errors.Is(err, ErrNotFound):
		case err != nil:
			return 0, 0, err
		default:
			if err := l.store.ApplyReactionDelta(ctx, reviewID, kind, -1); err != nil {
				return 0, 0, err
			}
		}

	default:
		// Switch like<->dislike.
		existing.Kind = kind
		if err := l.store.SaveReaction(ctx, existing); err != nil {
			return 0, 0, err
		}
		opposite := models.ReactionLike
		if kind == models.ReactionLike {
			opposite = models.ReactionDislike
		}
		if err := l.store.ApplyReactionDelta(ctx, reviewID, opposite, -1); err != nil {
			return 0, 0, err
		}
		if err := l.store.ApplyReactionDelta(ctx, reviewID, kind, 1); err != nil {
			return 0, 0, err
		}
	}

	review, err := l.store.Get(ctx, reviewID)
	if err != nil {
		return 0, 0, err
	}
	return review.Likes, review.Dislikes, nil
}
