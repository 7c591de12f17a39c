// Package rating holds the arithmetic behind a product's average rating.
package rating

import "math"

// Mean returns the arithmetic mean of ratings, or 0 for an empty set.
func Mean(ratings []float64) float64 {
	if len(ratings) == 0 {
		return 0
	}
	var sum float64
	for _, r := range ratings {
		sum += r
	}
	return sum / float64(len(ratings))
}

// RoundToTenth rounds x to one decimal place, halves away from zero.
func RoundToTenth(x float64) float64 {
	return math.Round(x*10) / 10
}

// Average is the stored averageRating for a set of ratings.
func Average(ratings []float64) float64 {
	if len(ratings) == 0 {
		return 0
	}
	return RoundToTenth(Mean(ratings))
}
