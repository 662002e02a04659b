package model

import "strconv"

// ReviewStatistics is derived from the current review set on every read.
// TotalReviews, AverageRating and RatingDistribution count approved reviews
// only; the status counts cover every review in scope.
type ReviewStatistics struct {
	TotalReviews       int64         `json:"total_reviews"`
	AverageRating      float64       `json:"average_rating"`
	RatingDistribution map[int]int64 `json:"rating_distribution"`
	PendingReviews     int64         `json:"pending_reviews"`
	ApprovedReviews    int64         `json:"approved_reviews"`
	RejectedReviews    int64         `json:"rejected_reviews"`
}

// EmptyDistribution trả về map đủ 5 mức sao, tất cả = 0
func EmptyDistribution() map[int]int64 {
	dist := make(map[int]int64, MaxRating-MinRating+1)
	for r := MinRating; r <= MaxRating; r++ {
		dist[r] = 0
	}
	return dist
}

// Aggregate folds status/rating buckets into statistics.
// AverageRating keeps full precision; rounding happens in the response DTO.
func Aggregate(buckets []RatingBucket) ReviewStatistics {
	stats := ReviewStatistics{RatingDistribution: EmptyDistribution()}

	var ratingSum int64
	for _, b := range buckets {
		switch b.Status {
		case StatusPending:
			stats.PendingReviews += b.Count
		case StatusApproved:
			stats.ApprovedReviews += b.Count
			if b.Rating < MinRating || b.Rating > MaxRating {
				continue
			}
			stats.TotalReviews += b.Count
			stats.RatingDistribution[b.Rating] += b.Count
			ratingSum += int64(b.Rating) * b.Count
		case StatusRejected:
			stats.RejectedReviews += b.Count
		}
	}

	if stats.TotalReviews > 0 {
		stats.AverageRating = float64(ratingSum) / float64(stats.TotalReviews)
	}
	return stats
}

// Normalize đảm bảo distribution luôn đủ 5 key (vd. sau khi decode từ cache)
func (s *ReviewStatistics) Normalize() {
	if s.RatingDistribution == nil {
		s.RatingDistribution = EmptyDistribution()
		return
	}
	for r := MinRating; r <= MaxRating; r++ {
		if _, ok := s.RatingDistribution[r]; !ok {
			s.RatingDistribution[r] = 0
		}
	}
}

func itoa(v int64) string {
	return strconv.FormatInt(v, 10)
}
