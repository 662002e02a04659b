package repository

import (
	"context"

	"ayurveda-backend/internal/domains/review/model"
)

// =====================================================
// REVIEW REPOSITORY INTERFACE
// =====================================================

// ReviewRepository là Review Store: nguồn duy nhất ghi vào bảng reviews.
// Not-found được trả về dưới dạng model.ErrReviewNotFound.
type ReviewRepository interface {
	// ========================================
	// CRUD Operations
	// ========================================

	// Create inserts the review and fills ID, CreatedAt, UpdatedAt.
	// Unknown doctor -> model.ErrDoctorNotFound
	Create(ctx context.Context, review *model.Review) error

	GetByID(ctx context.Context, id int64) (*model.Review, error)

	// List trả về một page cùng tổng số record match filter
	List(ctx context.Context, filter model.ListFilter, opts model.ListOptions) ([]*model.Review, int64, error)

	// UpdateStatus ghi status mới trong một câu UPDATE (last write wins)
	UpdateStatus(ctx context.Context, id int64, status model.Status) (*model.Review, error)

	Delete(ctx context.Context, id int64) error

	// ========================================
	// STATISTICS
	// ========================================

	// RatingBuckets đếm review theo (status, rating) trong scope
	RatingBuckets(ctx context.Context, scope model.Scope) ([]model.RatingBucket, error)
}
