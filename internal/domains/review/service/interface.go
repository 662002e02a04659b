package service

import (
	"context"

	"ayurveda-backend/internal/domains/review/model"
)

// =====================================================
// REVIEW SERVICE INTERFACE
// =====================================================

type ServiceInterface interface {
	// ========================================
	// PUBLIC OPERATIONS
	// ========================================

	// SubmitReview validates and stores a patient review
	SubmitReview(ctx context.Context, req model.CreateReviewRequest) (*model.ReviewResponse, error)

	// ListPublicReviews lists approved reviews with statistics
	ListPublicReviews(ctx context.Context, req model.PublicListRequest) (*model.ListReviewsResponse, error)

	// ========================================
	// MODERATION OPERATIONS
	// ========================================

	// ListReviews lists reviews of all statuses visible to the actor
	ListReviews(ctx context.Context, actor model.Actor, req model.ListReviewsRequest) (*model.ListReviewsResponse, error)

	GetReview(ctx context.Context, actor model.Actor, id int64) (*model.ReviewResponse, error)

	// GetStatistics: doctor actors are always scoped to themselves
	GetStatistics(ctx context.Context, actor model.Actor, doctorID *int64) (*model.StatisticsResponse, error)

	UpdateStatus(ctx context.Context, actor model.Actor, id int64, req model.UpdateStatusRequest) (*model.ReviewResponse, error)

	DeleteReview(ctx context.Context, actor model.Actor, id int64) error
}

// DoctorLookup is the doctor directory as seen by review submission
type DoctorLookup interface {
	// ExistsActive reports whether the doctor exists and is listed
	ExistsActive(ctx context.Context, doctorID int64) (bool, error)
}

// StatisticsProvider is the single statistics path shared by every consumer
type StatisticsProvider interface {
	ComputeStatistics(ctx context.Context, scope model.Scope) (model.ReviewStatistics, error)
}
