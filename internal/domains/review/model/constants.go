package model

const (
	// Rating
	MinRating = 1
	MaxRating = 5

	MsgRatingRange = "rating must be between 1 and 5"

	// Content limits
	MaxPatientNameLength = 100
	MaxEmailLength       = 255
	MaxCommentLength     = 2000

	// Sort
	SortByCreatedAt = "created_at"
	SortByRating    = "rating"
	OrderAsc        = "asc"
	OrderDesc       = "desc"

	// Cache keys
	StatsCacheKeyGlobal       = "review:stats:global"
	StatsCacheKeyDoctorPrefix = "review:stats:doctor:"
)
