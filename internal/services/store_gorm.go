package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/reviewhub/reviews-backend/internal/models"
	"gorm.io/gorm"
)

// GormReviewStore persists reviews in Postgres via gorm.
type GormReviewStore struct {
	db *gorm.DB
}

func NewGormReviewStore(db *gorm.DB) *GormReviewStore {
	return &GormReviewStore{db: db}
}

func (s *GormReviewStore) Create(ctx context.Context, review *models.Review) error {
	if err := validateDraft(review); err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Create(review).Error; err != nil {
		return fmt.Errorf("create review: %w", err)
	}
	return nil
}

func (s *GormReviewStore) Get(ctx context.Context, id uint) (*models.Review, error) {
	var review models.Review
	if err := s.db.WithContext(ctx).First(&review, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get review: %w", err)
	}
	return &review, nil
}

func (s *GormReviewStore) List(ctx context.Context, q ListQuery) ([]models.Review, int64, error) {
	query := s.db.WithContext(ctx).Model(&models.Review{})
	if q.Search != "" {
		pattern := "%" + q.Search + "%"
		query = query.Where("comment ILIKE ? OR name ILIKE ?", pattern, pattern)
	}
	if q.UserID != nil {
		query = query.Where("user_id = ?", *q.UserID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count reviews: %w", err)
	}

	var reviews []models.Review
	offset := (q.Page - 1) * q.PageSize
	err := query.Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(q.PageSize).
		Find(&reviews).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list reviews: %w", err)
	}
	return reviews, total, nil
}

func (s *GormReviewStore) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Review{}, id)
		if res.Error != nil {
			return fmt.Errorf("delete review: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		if err := tx.Where("review_id = ?", id).Delete(&models.Reaction{}).Error; err != nil {
			return fmt.Errorf("delete reactions: %w", err)
		}
		return nil
	})
}

func (s *GormReviewStore) SetFlag(ctx context.Context, id uint, flagged bool) error {
	res := s.db.WithContext(ctx).Model(&models.Review{}).
		Where("id = ?", id).
		Update("is_flagged", flagged)
	if res.Error != nil {
		return fmt.Errorf("set flag: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormReviewStore) ApplyReactionDelta(ctx context.Context, id uint, kind string, delta int) error {
	column := "likes"
	if kind == models.ReactionDislike {
		column = "dislikes"
	}
	res := s.db.WithContext(ctx).Model(&models.Review{}).
		Where("id = ?", id).
		Update(column, gorm.Expr(column+" + ?", delta))
	if res.Error != nil {
		return fmt.Errorf("apply reaction delta: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormReviewStore) Ratings(ctx context.Context) ([]int, error) {
	var ratings []int
	if err := s.db.WithContext(ctx).Model(&models.Review{}).Pluck("rating", &ratings).Error; err != nil {
		return nil, fmt.Errorf("ratings: %w", err)
	}
	return ratings, nil
}

func (s *GormReviewStore) GetReaction(ctx context.Context, userID, reviewID uint) (*models.Reaction, error) {
	var reaction models.Reaction
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND review_id = ?", userID, reviewID).
		First(&reaction).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get reaction: %w", err)
	}
	return &reaction, nil
}

func (s *GormReviewStore) SaveReaction(ctx context.Context, reaction *models.Reaction) error {
	var existing models.Reaction
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND review_id = ?", reaction.UserID, reaction.ReviewID).
		First(&existing).Error
	if err == nil {
		existing.Kind = reaction.Kind
		if err := s.db.WithContext(ctx).Save(&existing).Error; err != nil {
			return fmt.Errorf("update reaction: %w", err)
		}
		reaction.ID = existing.ID
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("save reaction: %w", err)
	}
	if err := s.db.WithContext(ctx).Create(reaction).Error; err != nil {
		return fmt.Errorf("create reaction: %w", err)
	}
	return nil
}

func (s *GormReviewStore) DeleteReaction(ctx context.Context, userID, reviewID uint) error {
	res := s.db.WithContext(ctx).
		Where("user_id = ? AND review_id = ?", userID, reviewID).
		Delete(&models.Reaction{})
	if res.Error != nil {
		return fmt.Errorf("delete reaction: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// GormUserStore persists accounts in Postgres.
type GormUserStore struct {
	db *gorm.DB
}

func NewGormUserStore(db *gorm.DB) *GormUserStore {
	return &GormUserStore{db: db}
}

func (s *GormUserStore) CreateUser(ctx context.Context, user *models.User) error {
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (s *GormUserStore) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &user, nil
}

func (s *GormUserStore) FindUserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &user, nil
}
