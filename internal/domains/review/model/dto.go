package model

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"ayurveda-backend/internal/shared/utils"
)

// =====================================================
// REQUEST DTOs
// =====================================================

// CreateReviewRequest là body của public submission
type CreateReviewRequest struct {
	DoctorID    int64  `json:"doctor_id"`
	PatientName string `json:"patient_name"`
	Email       string `json:"email"`
	Rating      int    `json:"rating"`
	Comment     string `json:"comment"`
}

// Normalize trim whitespace; gọi trước Validate để chuỗi toàn khoảng trắng bị coi là rỗng
func (r *CreateReviewRequest) Normalize() {
	r.PatientName = strings.TrimSpace(r.PatientName)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Comment = strings.TrimSpace(r.Comment)
}

func (r CreateReviewRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.DoctorID,
			validation.Required.Error("doctor_id is required"),
			validation.Min(int64(1)).Error("doctor_id must be a positive integer"),
		),
		validation.Field(&r.PatientName,
			validation.Required.Error("patient_name is required"),
			validation.RuneLength(1, MaxPatientNameLength).Error("patient_name must be at most 100 characters"),
		),
		validation.Field(&r.Email,
			validation.Length(0, MaxEmailLength).Error("email must be at most 255 characters"),
			is.EmailFormat.Error("email must be a valid email address"),
		),
		validation.Field(&r.Rating,
			validation.Required.Error(MsgRatingRange),
			validation.Min(MinRating).Error(MsgRatingRange),
			validation.Max(MaxRating).Error(MsgRatingRange),
		),
		validation.Field(&r.Comment,
			validation.Required.Error("comment is required"),
			validation.RuneLength(1, MaxCommentLength).Error("comment must be at most 2000 characters"),
		),
	)
}

// UpdateStatusRequest body của PATCH /reviews/:id/status
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// ListReviewsRequest query của moderation list
type ListReviewsRequest struct {
	DoctorID *int64 `form:"doctor_id"`
	Status   string `form:"status"`
	Sort     string `form:"sort"`
	Order    string `form:"order"`
	Page     int    `form:"page"`
	Limit    int    `form:"limit"`
}

// Normalize áp default: created_at desc, page 1, limit 10
func (r *ListReviewsRequest) Normalize() {
	r.Status = strings.ToLower(strings.TrimSpace(r.Status))
	r.Sort = strings.ToLower(strings.TrimSpace(r.Sort))
	r.Order = strings.ToLower(strings.TrimSpace(r.Order))
	if r.Sort == "" {
		r.Sort = SortByCreatedAt
	}
	if r.Order == "" {
		r.Order = OrderDesc
	}
	r.Page, r.Limit = utils.NormalizePage(r.Page, r.Limit)
}

func (r ListReviewsRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.DoctorID, validation.NilOrNotEmpty, validation.Min(int64(1)).Error("doctor_id must be a positive integer")),
		validation.Field(&r.Status, validation.In("pending", "approved", "rejected").Error("status must be one of pending, approved, rejected")),
		validation.Field(&r.Sort, validation.In(SortByCreatedAt, SortByRating).Error("sort must be created_at or rating")),
		validation.Field(&r.Order, validation.In(OrderAsc, OrderDesc).Error("order must be asc or desc")),
	)
}

// Filter chuyển request thành ListFilter + ListOptions
func (r ListReviewsRequest) Filter() (ListFilter, ListOptions) {
	filter := ListFilter{DoctorID: r.DoctorID}
	if r.Status != "" {
		s := Status(r.Status)
		filter.Status = &s
	}
	return filter, ListOptions{SortBy: r.Sort, Order: r.Order, Page: r.Page, Limit: r.Limit}
}

// PublicListRequest query của GET /reviews/public
type PublicListRequest struct {
	DoctorID *int64 `form:"doctor_id"`
	Page     int    `form:"page"`
	Limit    int    `form:"limit"`
}

// =====================================================
// RESPONSE DTOs
// =====================================================

// ReviewResponse: email chỉ trả về cho moderator
type ReviewResponse struct {
	ID          int64     `json:"id"`
	DoctorID    int64     `json:"doctor_id"`
	PatientName string    `json:"patient_name"`
	Email       string    `json:"email,omitempty"`
	Rating      int       `json:"rating"`
	Comment     string    `json:"comment"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func ToReviewResponse(r *Review, includeEmail bool) ReviewResponse {
	resp := ReviewResponse{
		ID:          r.ID,
		DoctorID:    r.DoctorID,
		PatientName: r.PatientName,
		Rating:      r.Rating,
		Comment:     r.Comment,
		Status:      r.Status,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
	if includeEmail {
		resp.Email = r.Email
	}
	return resp
}

func ToReviewResponses(reviews []*Review, includeEmail bool) []ReviewResponse {
	out := make([]ReviewResponse, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, ToReviewResponse(r, includeEmail))
	}
	return out
}

// StatisticsResponse: average_rating làm tròn 1 chữ số, distribution key "1".."5"
type StatisticsResponse struct {
	TotalReviews       int64            `json:"total_reviews"`
	AverageRating      float64          `json:"average_rating"`
	RatingDistribution map[string]int64 `json:"rating_distribution"`
	PendingReviews     int64            `json:"pending_reviews"`
	ApprovedReviews    int64            `json:"approved_reviews"`
	RejectedReviews    int64            `json:"rejected_reviews"`
}

func ToStatisticsResponse(s ReviewStatistics) StatisticsResponse {
	s.Normalize()
	dist := make(map[string]int64, len(s.RatingDistribution))
	for rating, count := range s.RatingDistribution {
		dist[itoa(int64(rating))] = count
	}
	return StatisticsResponse{
		TotalReviews:       s.TotalReviews,
		AverageRating:      utils.RoundRating(s.AverageRating),
		RatingDistribution: dist,
		PendingReviews:     s.PendingReviews,
		ApprovedReviews:    s.ApprovedReviews,
		RejectedReviews:    s.RejectedReviews,
	}
}

// Pagination theo format current_page/total_pages/total_reviews/per_page
type Pagination struct {
	CurrentPage  int   `json:"current_page"`
	TotalPages   int   `json:"total_pages"`
	TotalReviews int64 `json:"total_reviews"`
	PerPage      int   `json:"per_page"`
}

func NewPagination(page, perPage int, total int64) Pagination {
	return Pagination{
		CurrentPage:  page,
		TotalPages:   utils.TotalPages(total, perPage),
		TotalReviews: total,
		PerPage:      perPage,
	}
}

// ListReviewsResponse kết quả của list (public hoặc moderation)
type ListReviewsResponse struct {
	Reviews    []ReviewResponse    `json:"reviews"`
	Statistics *StatisticsResponse `json:"statistics,omitempty"`
	Pagination Pagination          `json:"pagination"`
}
