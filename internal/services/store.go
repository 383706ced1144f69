package services

import (
	"context"

	"github.com/reviewhub/reviews-backend/internal/models"
)

// ListQuery selects a page of reviews, newest first. Page is 1-indexed.
// Search, when set, matches case-insensitively against comment and
// author name (moderation view only). UserID, when set, restricts the
// listing to reviews authored by that account; anonymous reviews never
// match.
type ListQuery struct {
	Page     int
	PageSize int
	Search   string
	UserID   *uint
}

// ReviewStore is the persistence boundary for reviews and their
// reaction records. Two implementations exist: a gorm/Postgres store
// and an in-memory store for single-node mode and tests.
type ReviewStore interface {
	// Create persists a new review. Implementations reject drafts that
	// break the rating or comment constraints with a ValidationError,
	// independent of callers' own checks.
	Create(ctx context.Context, review *models.Review) error
	Get(ctx context.Context, id uint) (*models.Review, error)
	List(ctx context.Context, q ListQuery) ([]models.Review, int64, error)
	// Delete removes the review and all its reaction records. Not reversible.
	Delete(ctx context.Context, id uint) error
	SetFlag(ctx context.Context, id uint, flagged bool) error
	// ApplyReactionDelta adjusts the like or dislike counter atomically
	// with respect to concurrent reactions on the same review.
	ApplyReactionDelta(ctx context.Context, id uint, kind string, delta int) error
	// Ratings returns every rating in the store, for whole-dataset
	// aggregation independent of the pagination window.
	Ratings(ctx context.Context) ([]int, error)

	GetReaction(ctx context.Context, userID, reviewID uint) (*models.Reaction, error)
	SaveReaction(ctx context.Context, reaction *models.Reaction) error
	DeleteReaction(ctx context.Context, userID, reviewID uint) error
}

func validateDraft(review *models.Review) error {
	if review.Rating < 1 || review.Rating > 5 {
		return NewValidationError("rating must be between 1 and 5")
	}
	if review.Comment == "" {
		return NewValidationError("comment must not be empty")
	}
	return nil
}

// UserStore persists accounts for the auth provider.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	FindUserByID(ctx context.Context, id uint) (*models.User, error)
}
