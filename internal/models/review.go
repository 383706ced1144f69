package models

import (
	"time"
)

// Sentiment labels assigned by the external classifier. Unknown is the
// degraded result when the classifier is unreachable or returns garbage.
const (
	SentimentPositive = "positive"
	SentimentNeutral  = "neutral"
	SentimentNegative = "negative"
	SentimentUnknown  = "unknown"
)

// Reaction kinds a user may apply to a review.
const (
	ReactionLike    = "like"
	ReactionDislike = "dislike"
)

type Review struct {
	ID             uint       `json:"id" gorm:"primaryKey"`
	UserID         *uint      `json:"user_id,omitempty"` // nil for anonymous submissions
	Name           string     `json:"name" gorm:"not null"`
	Email          string     `json:"email"`
	Rating         int        `json:"rating" gorm:"check:rating >= 1 AND rating <= 5"`
	Comment        string     `json:"comment" gorm:"not null"`
	SentimentLabel string     `json:"sentiment_label" gorm:"default:unknown"`
	SentimentScore *float64   `json:"sentiment_score,omitempty"`
	Likes          int        `json:"likes" gorm:"not null;default:0"`
	Dislikes       int        `json:"dislikes" gorm:"not null;default:0"`
	IsFlagged      bool       `json:"is_flagged" gorm:"default:false"`
	CreatedAt      time.Time  `json:"created_at"`
	Reactions      []Reaction `json:"-" gorm:"foreignKey:ReviewID;constraint:OnDelete:CASCADE"`
}

// Reaction records which user applied which reaction to which review.
// At most one row per (user, review); switching like<->dislike rewrites
// the row, repeating the same kind deletes it.
type Reaction struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	UserID   uint   `json:"user_id" gorm:"not null;uniqueIndex:idx_reaction_user_review"`
	ReviewID uint   `json:"review_id" gorm:"not null;uniqueIndex:idx_reaction_user_review"`
	Kind     string `json:"kind" gorm:"not null"`
}

func (Reaction) TableName() string {
	return "reactions"
}

// Sentiment is the classifier's verdict for a piece of text. Score is
// nil when the label is unknown.
type Sentiment struct {
	Label string   `json:"label"`
	Score *float64 `json:"score,omitempty"`
}

// Stats is derived from the full review set on every list request and
// never persisted. JSON keys follow the stats panel of the web client.
type Stats struct {
	TotalReviews  int     `json:"totalReviews"`
	AverageRating float64 `json:"averageRating"`
	FiveStarCount int     `json:"fiveStarReviews"`
}
