package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"ayurveda-backend/internal/domains/review/model"
	"ayurveda-backend/internal/domains/review/service"
	"ayurveda-backend/internal/shared/middleware"
	"ayurveda-backend/internal/shared/response"
	"ayurveda-backend/internal/shared/utils"
)

// =====================================================
// REVIEW HANDLER
// =====================================================

type ReviewHandler struct {
	reviewService service.ServiceInterface
}

func NewReviewHandler(reviewService service.ServiceInterface) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
	}
}

// =====================================================
// HELPER FUNCTIONS
// =====================================================

// getActor đọc caller do AuthMiddleware gắn vào request context
func getActor(c *gin.Context) (model.Actor, bool) {
	caller, ok := middleware.CallerFromContext(c.Request.Context())
	if !ok {
		return model.Actor{}, false
	}
	return model.Actor{DoctorID: caller.DoctorID, Admin: caller.IsAdmin()}, true
}

func parseReviewID(c *gin.Context) (int64, bool) {
	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		response.ErrorWithDetails(c, http.StatusBadRequest, model.ErrCodeValidation, "invalid review id",
			map[string]string{"id": "id must be a positive integer"})
	}
	return id, ok
}

// =====================================================
// PUBLIC ENDPOINTS
// =====================================================

// SubmitReview creates a review from a patient
// POST /api/v1/reviews/public
func (h *ReviewHandler) SubmitReview(c *gin.Context) {
	// Step 1: Bind request body
	var req model.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.handleBindError(c, err)
		return
	}

	// Step 2: Call service (validates before persisting)
	review, err := h.reviewService.SubmitReview(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	// Step 3: Return success
	response.Created(c, gin.H{"review": review})
}

// ListPublicReviews lists approved reviews with statistics
// GET /api/v1/reviews/public?doctor_id=&page=&limit=
func (h *ReviewHandler) ListPublicReviews(c *gin.Context) {
	// Step 1: Bind query
	var req model.PublicListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters")
		return
	}

	// Step 2: Call service
	result, err := h.reviewService.ListPublicReviews(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	// Step 3: Return success
	response.OK(c, gin.H{
		"reviews":    result.Reviews,
		"statistics": result.Statistics,
		"pagination": result.Pagination,
	})
}

// =====================================================
// MODERATION ENDPOINTS
// =====================================================

// ListReviews lists reviews of every status
// GET /api/v1/reviews?page=&limit=&sort=&order=&status=&doctor_id=
func (h *ReviewHandler) ListReviews(c *gin.Context) {
	// Step 1: Get actor
	actor, ok := getActor(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	// Step 2: Bind query
	var req model.ListReviewsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters")
		return
	}

	// Step 3: Call service
	result, err := h.reviewService.ListReviews(c.Request.Context(), actor, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	// Step 4: Return success
	response.OK(c, gin.H{
		"reviews":    result.Reviews,
		"pagination": result.Pagination,
	})
}

// GetReview gets one review (moderation view)
// GET /api/v1/reviews/:id
func (h *ReviewHandler) GetReview(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	id, ok := parseReviewID(c)
	if !ok {
		return
	}

	review, err := h.reviewService.GetReview(c.Request.Context(), actor, id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.OK(c, gin.H{"review": review})
}

// GetStatistics returns review statistics for the caller's scope
// GET /api/v1/reviews/statistics?doctor_id=
func (h *ReviewHandler) GetStatistics(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	var doctorID *int64
	if raw := c.Query("doctor_id"); raw != "" {
		id, ok := utils.ParseID(raw)
		if !ok {
			h.handleError(c, model.NewFieldError("doctor_id", "doctor_id must be a positive integer"))
			return
		}
		doctorID = &id
	}

	stats, err := h.reviewService.GetStatistics(c.Request.Context(), actor, doctorID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.OK(c, gin.H{"statistics": stats})
}

// UpdateStatus moves a review through moderation
// PATCH /api/v1/reviews/:id/status
func (h *ReviewHandler) UpdateStatus(c *gin.Context) {
	// Step 1: Get actor
	actor, ok := getActor(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	// Step 2: Parse review ID
	id, ok := parseReviewID(c)
	if !ok {
		return
	}

	// Step 3: Bind request body
	var req model.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.handleBindError(c, err)
		return
	}

	// Step 4: Call service
	review, err := h.reviewService.UpdateStatus(c.Request.Context(), actor, id, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	// Step 5: Return success
	response.OK(c, gin.H{"review": review})
}

// DeleteReview hard-deletes a review
// DELETE /api/v1/reviews/:id
func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	id, ok := parseReviewID(c)
	if !ok {
		return
	}

	if err := h.reviewService.DeleteReview(c.Request.Context(), actor, id); err != nil {
		h.handleError(c, err)
		return
	}

	response.OK(c, gin.H{"message": "review deleted"})
}

// =====================================================
// ERROR MAPPING
// =====================================================

// mapReviewError maps domain errors to HTTP status codes
func mapReviewError(err error) (int, *model.ReviewError) {
	var re *model.ReviewError
	if !errors.As(err, &re) {
		return http.StatusInternalServerError, nil
	}

	switch re.Kind {
	case model.KindValidation:
		return http.StatusBadRequest, re
	case model.KindNotFound:
		return http.StatusNotFound, re
	case model.KindInvalidTransition:
		return http.StatusConflict, re
	default:
		return http.StatusInternalServerError, nil
	}
}

// handleError: store error được log và trả message chung chung
// handleBindError: field sai kiểu trả về REV003 kèm details, body hỏng trả BAD_REQUEST
func (h *ReviewHandler) handleBindError(c *gin.Context, err error) {
	field, message, ok := utils.JSONFieldTypeError(err)
	if !ok {
		response.BadRequest(c, "invalid request body")
		return
	}
	if field == "rating" {
		message = model.MsgRatingRange
	}
	h.handleError(c, model.NewFieldError(field, message))
}

func (h *ReviewHandler) handleError(c *gin.Context, err error) {
	status, re := mapReviewError(err)
	if re == nil {
		log.Error().
			Err(err).
			Str("request_id", c.GetString(middleware.RequestIDKey)).
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Msg("[REVIEW] Request failed")
		response.InternalServerError(c, "internal server error")
		return
	}

	if len(re.Details) > 0 {
		response.ErrorWithDetails(c, status, re.Code, re.Message, re.Details)
		return
	}
	response.Error(c, status, re.Code, re.Message)
}
