package services

import (
	"context"

	"github.com/reviewhub/reviews-backend/internal/metrics"
	"github.com/reviewhub/reviews-backend/internal/models"
	"github.com/reviewhub/reviews-backend/internal/utils"
	"github.com/reviewhub/reviews-backend/pkg/logger"
)

// FlagNotifier is told when a review gets flagged by a user. Best
// effort only; implementations must not block or fail the request.
type FlagNotifier interface {
	NotifyFlagged(review *models.Review)
}

// ReviewService orchestrates policy, sentiment, storage and the
// reaction ledger behind the public API surface.
type ReviewService struct {
	store     ReviewStore
	ledger    *ReactionLedger
	policy    *ModerationPolicy
	sentiment SentimentAnalyzer
	notifier  FlagNotifier
	locks     *reviewLocks

	maxPageSize     int
	defaultPageSize int
}

func NewReviewService(store ReviewStore, policy *ModerationPolicy, sentiment SentimentAnalyzer, notifier FlagNotifier, maxPageSize int) *ReviewService {
	if maxPageSize <= 0 {
		maxPageSize = 100
	}
	locks := newReviewLocks()
	return &ReviewService{
		store:           store,
		ledger:          NewReactionLedger(store, locks),
		policy:          policy,
		sentiment:       sentiment,
		notifier:        notifier,
		locks:           locks,
		maxPageSize:     maxPageSize,
		defaultPageSize: 10,
	}
}

type CreateReviewRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
	// The web client submits its own classifier result alongside the
	// review. It is advisory UI state only; classification here is
	// server-authoritative and these fields are never trusted.
	SentimentScore *float64 `json:"sentiment_score,omitempty"`
	SentimentLabel string   `json:"sentiment_label,omitempty"`
}

type ListReviewsResponse struct {
	Reviews []models.Review `json:"reviews"`
	Total   int64           `json:"total"`
	Stats   models.Stats    `json:"stats"`
}

// Submit creates a review. When an identity is present its name and
// email override the client-supplied draft, so nobody can post under
// another user's name. The classifier is consulted before persistence
// and without holding any review-level lock; its degraded result never
// blocks submission.
func (s *ReviewService) Submit(ctx context.Context, identity *models.Identity, req CreateReviewRequest) (*models.Review, error) {
	if err := s.policy.Authorize(identity, ActionCreate); err != nil {
		return nil, err
	}

	req.Name = utils.SanitizeString(req.Name)
	req.Email = utils.SanitizeString(req.Email)
	req.Comment = utils.SanitizeString(req.Comment)

	if !utils.IsValidRating(req.Rating) {
		return nil, NewValidationError("rating must be between 1 and 5")
	}
	if req.Comment == "" {
		return nil, NewValidationError("comment must not be empty")
	}

	review := &models.Review{
		Name:    req.Name,
		Email:   req.Email,
		Rating:  req.Rating,
		Comment: req.Comment,
	}
	if identity != nil {
		userID := identity.UserID
		review.UserID = &userID
		review.Name = identity.Name
		review.Email = identity.Email
	}
	if review.Name == "" {
		return nil, NewValidationError("name must not be empty")
	}

	sentiment := s.sentiment.Analyze(ctx, req.Comment)
	review.SentimentLabel = sentiment.Label
	review.SentimentScore = sentiment.Score

	if err := s.store.Create(ctx, review); err != nil {
		return nil, err
	}
	metrics.ReviewsCreated.Inc()
	logger.WithFields(map[string]interface{}{
		"review_id": review.ID,
		"rating":    review.Rating,
		"sentiment": review.SentimentLabel,
	}).Info("review created")
	return review, nil
}

// List returns a page of reviews plus aggregate statistics computed
// over the whole dataset, independent of the pagination window. A
// non-nil userID narrows the listing to that account's own reviews,
// which backs the profile view; the stats stay dataset-wide.
func (s *ReviewService) List(ctx context.Context, page, pageSize int, userID *uint) (*ListReviewsResponse, error) {
	q := s.clamp(page, pageSize, "")
	q.UserID = userID
	reviews, total, err := s.store.List(ctx, q)
	if err != nil {
		return nil, err
	}
	ratings, err := s.store.Ratings(ctx)
	if err != nil {
		return nil, err
	}
	return &ListReviewsResponse{
		Reviews: reviews,
		Total:   total,
		Stats:   ComputeStats(ratings),
	}, nil
}

// ListForAdmin is the moderation view: same listing with an optional
// case-insensitive search over comment and author name.
func (s *ReviewService) ListForAdmin(ctx context.Context, identity *models.Identity, page, pageSize int, search string) (*ListReviewsResponse, error) {
	if err := s.policy.Authorize(identity, ActionAdminList); err != nil {
		return nil, err
	}
	reviews, total, err := s.store.List(ctx, s.clamp(page, pageSize, search))
	if err != nil {
		return nil, err
	}
	return &ListReviewsResponse{Reviews: reviews, Total: total}, nil
}

// Delete hard-deletes a review and its reaction records. Admin only.
func (s *ReviewService) Delete(ctx context.Context, identity *models.Identity, id uint) error {
	if err := s.policy.Authorize(identity, ActionDelete); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	metrics.ReviewsDeleted.Inc()
	logger.WithFields(map[string]interface{}{
		"review_id": id,
		"admin_id":  identity.UserID,
	}).Info("review deleted")
	return nil
}

// React delegates to the reaction ledger and returns updated counts.
func (s *ReviewService) React(ctx context.Context, identity *models.Identity, id uint, kind string) (likes, dislikes int, err error) {
	if err := s.policy.Authorize(identity, ActionReact); err != nil {
		return 0, 0, err
	}
	return s.ledger.React(ctx, identity.UserID, id, kind)
}

// Flag toggles the peer-reporting flag on a review and returns the new
// state. When a review transitions to flagged, moderators are notified
// asynchronously.
func (s *ReviewService) Flag(ctx context.Context, identity *models.Identity, id uint) (bool, error) {
	if err := s.policy.Authorize(identity, ActionFlag); err != nil {
		return false, err
	}

	s.locks.Lock(id)
	defer s.locks.Unlock(id)

	review, err := s.store.Get(ctx, id)
	if err != nil {
		return false, err
	}
	flagged := !review.IsFlagged
	if err := s.store.SetFlag(ctx, id, flagged); err != nil {
		return false, err
	}

	if flagged && s.notifier != nil {
		review.IsFlagged = true
		go s.notifier.NotifyFlagged(review)
	}
	return flagged, nil
}

func (s *ReviewService) clamp(page, pageSize int, search string) ListQuery {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = s.defaultPageSize
	}
	if pageSize > s.maxPageSize {
		pageSize = s.maxPageSize
	}
	return ListQuery{Page: page, PageSize: pageSize, Search: search}
}
