package services

import (
	"math"

	"github.com/reviewhub/reviews-backend/internal/models"
)

// ComputeStats derives aggregate statistics from the full rating set.
// The average is rounded to one decimal and is 0 for an empty set.
func ComputeStats(ratings []int) models.Stats {
	stats := models.Stats{TotalReviews: len(ratings)}
	if len(ratings) == 0 {
		return stats
	}

	sum := 0
	for _, rating := range ratings {
		sum += rating
		if rating == 5 {
			stats.FiveStarCount++
		}
	}
	average := float64(sum) / float64(len(ratings))
	stats.AverageRating = math.Round(average*10) / 10
	return stats
}
