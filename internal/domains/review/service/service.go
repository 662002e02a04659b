package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"ayurveda-backend/internal/domains/review/model"
	"ayurveda-backend/internal/domains/review/repository"
	"ayurveda-backend/internal/shared/reqctx"
	"ayurveda-backend/internal/shared/utils"
)

// =====================================================
// SERVICE IMPLEMENTATION
// =====================================================

// Config là policy của review moderation
type Config struct {
	// AutoApprove: review mới được approved ngay thay vì pending
	AutoApprove bool
}

type reviewService struct {
	reviewRepo repository.ReviewRepository
	doctors    DoctorLookup
	aggregator *Aggregator
	cfg        Config
}

func NewReviewService(
	reviewRepo repository.ReviewRepository,
	doctors DoctorLookup,
	aggregator *Aggregator,
	cfg Config,
) ServiceInterface {
	return &reviewService{
		reviewRepo: reviewRepo,
		doctors:    doctors,
		aggregator: aggregator,
		cfg:        cfg,
	}
}

func (s *reviewService) initialStatus() model.Status {
	if s.cfg.AutoApprove {
		return model.StatusApproved
	}
	return model.StatusPending
}

// loadForActor trả về not-found cho review ngoài phạm vi của actor
// để không lộ sự tồn tại của review bác sĩ khác
func (s *reviewService) loadForActor(ctx context.Context, actor model.Actor, id int64) (*model.Review, error) {
	review, err := s.reviewRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrReviewNotFound) {
			return nil, model.NewReviewNotFoundError()
		}
		return nil, fmt.Errorf("failed to load review: %w", err)
	}
	if !actor.CanAccess(review) {
		return nil, model.NewReviewNotFoundError()
	}
	return review, nil
}

// =====================================================
// SUBMIT REVIEW
// =====================================================

func (s *reviewService) SubmitReview(ctx context.Context, req model.CreateReviewRequest) (*model.ReviewResponse, error) {
	// Step 1: Validate request
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, model.NewValidationError(err)
	}

	// Step 2: Check doctor
	exists, err := s.doctors.ExistsActive(ctx, req.DoctorID)
	if err != nil {
		return nil, fmt.Errorf("failed to check doctor: %w", err)
	}
	if !exists {
		return nil, model.NewDoctorNotFoundError()
	}

	// Step 3: Create review entity
	review := &model.Review{
		DoctorID:    req.DoctorID,
		PatientName: req.PatientName,
		Email:       req.Email,
		Rating:      req.Rating,
		Comment:     req.Comment,
		Status:      s.initialStatus(),
	}

	// Step 4: Save to database
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		if errors.Is(err, model.ErrDoctorNotFound) {
			return nil, model.NewDoctorNotFoundError()
		}
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	// Step 5: Invalidate statistics
	s.aggregator.Invalidate(ctx, review.DoctorID)
	reviewSubmissionsTotal.WithLabelValues(review.Status.String()).Inc()

	log.Info().
		Int64("review_id", review.ID).
		Int64("doctor_id", review.DoctorID).
		Str("status", review.Status.String()).
		Str("request_id", reqctx.RequestID(ctx)).
		Str("client_ip", reqctx.ClientIP(ctx)).
		Msg("[REVIEW] Review submitted")

	resp := model.ToReviewResponse(review, false)
	return &resp, nil
}

// =====================================================
// LIST PUBLIC REVIEWS
// =====================================================

func (s *reviewService) ListPublicReviews(ctx context.Context, req model.PublicListRequest) (*model.ListReviewsResponse, error) {
	// Step 1: Validate
	if req.DoctorID != nil && *req.DoctorID <= 0 {
		return nil, model.NewFieldError("doctor_id", "doctor_id must be a positive integer")
	}
	page, limit := utils.NormalizePage(req.Page, req.Limit)

	// Step 2: Query approved reviews only
	approved := model.StatusApproved
	filter := model.ListFilter{DoctorID: req.DoctorID, Status: &approved}
	opts := model.ListOptions{SortBy: model.SortByCreatedAt, Order: model.OrderDesc, Page: page, Limit: limit}

	reviews, total, err := s.reviewRepo.List(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}

	// Step 3: Statistics cho cùng scope
	scope := model.GlobalScope()
	if req.DoctorID != nil {
		scope = model.DoctorScope(*req.DoctorID)
	}
	stats, err := s.aggregator.ComputeStatistics(ctx, scope)
	if err != nil {
		return nil, err
	}
	statsResp := model.ToStatisticsResponse(stats)

	return &model.ListReviewsResponse{
		Reviews:    model.ToReviewResponses(reviews, false),
		Statistics: &statsResp,
		Pagination: model.NewPagination(page, limit, total),
	}, nil
}

// =====================================================
// MODERATION
// =====================================================

func (s *reviewService) ListReviews(
	ctx context.Context,
	actor model.Actor,
	req model.ListReviewsRequest,
) (*model.ListReviewsResponse, error) {
	// Step 1: Validate
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, model.NewValidationError(err)
	}

	// Step 2: Doctor chỉ thấy review của mình
	filter, opts := req.Filter()
	if !actor.Admin {
		own := actor.DoctorID
		filter.DoctorID = &own
	}

	// Step 3: Query
	reviews, total, err := s.reviewRepo.List(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}

	return &model.ListReviewsResponse{
		Reviews:    model.ToReviewResponses(reviews, true),
		Pagination: model.NewPagination(opts.Page, opts.Limit, total),
	}, nil
}

func (s *reviewService) GetReview(ctx context.Context, actor model.Actor, id int64) (*model.ReviewResponse, error) {
	review, err := s.loadForActor(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	resp := model.ToReviewResponse(review, true)
	return &resp, nil
}

func (s *reviewService) GetStatistics(ctx context.Context, actor model.Actor, doctorID *int64) (*model.StatisticsResponse, error) {
	scope := model.GlobalScope()
	switch {
	case !actor.Admin:
		scope = model.DoctorScope(actor.DoctorID)
	case doctorID != nil:
		if *doctorID <= 0 {
			return nil, model.NewFieldError("doctor_id", "doctor_id must be a positive integer")
		}
		scope = model.DoctorScope(*doctorID)
	}

	stats, err := s.aggregator.ComputeStatistics(ctx, scope)
	if err != nil {
		return nil, err
	}

	resp := model.ToStatisticsResponse(stats)
	return &resp, nil
}

// =====================================================
// UPDATE STATUS
// =====================================================

func (s *reviewService) UpdateStatus(
	ctx context.Context,
	actor model.Actor,
	id int64,
	req model.UpdateStatusRequest,
) (*model.ReviewResponse, error) {
	// Step 1: Validate target status trước mọi truy cập store
	target, err := model.ParseStatus(req.Status)
	if err != nil {
		return nil, err
	}

	// Step 2: Load current review
	current, err := s.loadForActor(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	// Step 3: Check transition
	changed, err := model.Transition(current.Status, target)
	if err != nil {
		return nil, err
	}
	if !changed {
		resp := model.ToReviewResponse(current, true)
		return &resp, nil
	}

	// Step 4: Write
	updated, err := s.reviewRepo.UpdateStatus(ctx, id, target)
	if err != nil {
		if errors.Is(err, model.ErrReviewNotFound) {
			return nil, model.NewReviewNotFoundError()
		}
		return nil, fmt.Errorf("failed to update review status: %w", err)
	}

	// Step 5: Invalidate statistics
	s.aggregator.Invalidate(ctx, updated.DoctorID)
	reviewTransitionsTotal.WithLabelValues(current.Status.String(), target.String()).Inc()

	log.Info().
		Int64("review_id", id).
		Int64("doctor_id", updated.DoctorID).
		Str("from", current.Status.String()).
		Str("to", target.String()).
		Bool("admin", actor.Admin).
		Msg("[REVIEW] Status changed")

	resp := model.ToReviewResponse(updated, true)
	return &resp, nil
}

// =====================================================
// DELETE REVIEW
// =====================================================

func (s *reviewService) DeleteReview(ctx context.Context, actor model.Actor, id int64) error {
	// Step 1: Load để kiểm tra quyền và lấy doctor scope
	review, err := s.loadForActor(ctx, actor, id)
	if err != nil {
		return err
	}

	// Step 2: Hard delete
	if err := s.reviewRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, model.ErrReviewNotFound) {
			return model.NewReviewNotFoundError()
		}
		return fmt.Errorf("failed to delete review: %w", err)
	}

	// Step 3: Invalidate statistics
	s.aggregator.Invalidate(ctx, review.DoctorID)

	log.Info().
		Int64("review_id", id).
		Int64("doctor_id", review.DoctorID).
		Bool("admin", actor.Admin).
		Msg("[REVIEW] Deleted")

	return nil
}
