package services

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/reviewhub/reviews-backend/internal/models"
)

type reactionKey struct {
	UserID   uint
	ReviewID uint
}

// MemoryReviewStore keeps reviews in process memory. It backs
// single-node mode (no DATABASE_URL configured) and the test suite.
type MemoryReviewStore struct {
	mu        sync.RWMutex
	nextID    uint
	reviews   map[uint]*models.Review
	reactions map[reactionKey]*models.Reaction
}

func NewMemoryReviewStore() *MemoryReviewStore {
	return &MemoryReviewStore{
		nextID:    1,
		reviews:   make(map[uint]*models.Review),
		reactions: make(map[reactionKey]*models.Reaction),
	}
}

func (s *MemoryReviewStore) Create(_ context.Context, review *models.Review) error {
	if err := validateDraft(review); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	review.ID = s.nextID
	s.nextID++
	if review.CreatedAt.IsZero() {
		review.CreatedAt = time.Now()
	}
	clone := *review
	s.reviews[review.ID] = &clone
	return nil
}

func (s *MemoryReviewStore) Get(_ context.Context, id uint) (*models.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	review, ok := s.reviews[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *review
	return &clone, nil
}

func (s *MemoryReviewStore) List(_ context.Context, q ListQuery) ([]models.Review, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]*models.Review, 0, len(s.reviews))
	needle := strings.ToLower(q.Search)
	for _, review := range s.reviews {
		if needle != "" &&
			!strings.Contains(strings.ToLower(review.Comment), needle) &&
			!strings.Contains(strings.ToLower(review.Name), needle) {
			continue
		}
		if q.UserID != nil && (review.UserID == nil || *review.UserID != *q.UserID) {
			continue
		}
		matched = append(matched, review)
	}

	// Newest first; id breaks ties for stable pagination.
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID > matched[j].ID
	})

	total := int64(len(matched))
	start := (q.Page - 1) * q.PageSize
	if start >= len(matched) {
		return []models.Review{}, total, nil
	}
	end := start + q.PageSize
	if end > len(matched) {
		end = len(matched)
	}

	page := make([]models.Review, 0, end-start)
	for _, review := range matched[start:end] {
		page = append(page, *review)
	}
	return page, total, nil
}

func (s *MemoryReviewStore) Delete(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.reviews[id]; !ok {
		return ErrNotFound
	}
	delete(s.reviews, id)
	for key := range s.reactions {
		if key.ReviewID == id {
			delete(s.reactions, key)
		}
	}
	return nil
}

func (s *MemoryReviewStore) SetFlag(_ context.Context, id uint, flagged bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	review, ok := s.reviews[id]
	if !ok {
		return ErrNotFound
	}
	review.IsFlagged = flagged
	return nil
}

func (s *MemoryReviewStore) ApplyReactionDelta(_ context.Context, id uint, kind string, delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	review, ok := s.reviews[id]
	if !ok {
		return ErrNotFound
	}
	if kind == models.ReactionDislike {
		review.Dislikes += delta
	} else {
		review.Likes += delta
	}
	return nil
}

func (s *MemoryReviewStore) Ratings(_ context.Context) ([]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ratings := make([]int, 0, len(s.reviews))
	for _, review := range s.reviews {
		ratings = append(ratings, review.Rating)
	}
	return ratings, nil
}

func (s *MemoryReviewStore) GetReaction(_ context.Context, userID, reviewID uint) (*models.Reaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	reaction, ok := s.reactions[reactionKey{UserID: userID, ReviewID: reviewID}]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *reaction
	return &clone, nil
}

func (s *MemoryReviewStore) SaveReaction(_ context.Context, reaction *models.Reaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := reactionKey{UserID: reaction.UserID, ReviewID: reaction.ReviewID}
	if existing, ok := s.reactions[key]; ok {
		existing.Kind = reaction.Kind
		reaction.ID = existing.ID
		return nil
	}
	reaction.ID = s.nextID
	s.nextID++
	clone := *reaction
	s.reactions[key] = &clone
	return nil
}

func (s *MemoryReviewStore) DeleteReaction(_ context.Context, userID, reviewID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := reactionKey{UserID: userID, ReviewID: reviewID}
	if _, ok := s.reactions[key]; !ok {
		return ErrNotFound
	}
	delete(s.reactions, key)
	return nil
}

// MemoryUserStore keeps accounts in process memory for single-node
// mode and tests. BeforeCreate hooks don't run outside gorm, so it
// hashes passwords itself via the model's hook with a nil tx.
type MemoryUserStore struct {
	mu      sync.RWMutex
	nextID  uint
	byID    map[uint]*models.User
	byEmail map[string]uint
}

func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{
		nextID:  1,
		byID:    make(map[uint]*models.User),
		byEmail: make(map[string]uint),
	}
}

func (s *MemoryUserStore) CreateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byEmail[user.Email]; ok {
		return NewValidationError("user already exists")
	}
	if err := user.BeforeCreate(nil); err != nil {
		return err
	}
	user.ID = s.nextID
	s.nextID++
	user.CreatedAt = time.Now()
	clone := *user
	s.byID[user.ID] = &clone
	s.byEmail[user.Email] = user.ID
	return nil
}

func (s *MemoryUserStore) FindUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[email]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *s.byID[id]
	return &clone, nil
}

func (s *MemoryUserStore) FindUserByID(_ context.Context, id uint) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *user
	return &clone, nil
}
