package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"ayurveda-backend/internal/domains/doctor/model"
	"ayurveda-backend/internal/domains/doctor/service"
	"ayurveda-backend/internal/shared/middleware"
	"ayurveda-backend/internal/shared/response"
	"ayurveda-backend/internal/shared/utils"
)

type DoctorHandler struct {
	doctorService service.ServiceInterface
}

func NewDoctorHandler(doctorService service.ServiceInterface) *DoctorHandler {
	return &DoctorHandler{doctorService: doctorService}
}

func parseDoctorID(c *gin.Context) (int64, bool) {
	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		response.ErrorWithDetails(c, http.StatusBadRequest, model.ErrCodeValidation, "invalid doctor id",
			map[string]string{"id": "id must be a positive integer"})
	}
	return id, ok
}

// selfID lấy doctor id của caller; admin token không có profile
func selfID(c *gin.Context) (int64, bool) {
	caller, ok := middleware.CallerFromContext(c.Request.Context())
	if !ok {
		response.Unauthorized(c, "authentication required")
		return 0, false
	}
	if caller.DoctorID <= 0 {
		response.Forbidden(c, "doctor account required")
		return 0, false
	}
	return caller.DoctorID, true
}

// =====================================================
// PUBLIC ENDPOINTS
// =====================================================

// ListDoctors GET /api/v1/doctors?city=&search=&page=&limit=
func (h *DoctorHandler) ListDoctors(c *gin.Context) {
	var req model.ListDoctorsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters")
		return
	}

	result, err := h.doctorService.ListDoctors(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.OK(c, gin.H{
		"doctors":    result.Doctors,
		"pagination": result.Pagination,
	})
}

// GetDoctor GET /api/v1/doctors/:id
func (h *DoctorHandler) GetDoctor(c *gin.Context) {
	id, ok := parseDoctorID(c)
	if !ok {
		return
	}

	doctor, err := h.doctorService.GetDoctor(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.OK(c, gin.H{"doctor": doctor})
}

// =====================================================
// DOCTOR ENDPOINTS
// =====================================================

// GetProfile GET /api/v1/doctors/me
func (h *DoctorHandler) GetProfile(c *gin.Context) {
	doctorID, ok := selfID(c)
	if !ok {
		return
	}

	doctor, err := h.doctorService.GetProfile(c.Request.Context(), doctorID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.OK(c, gin.H{"doctor": doctor})
}

// UpdateProfile PUT /api/v1/doctors/me
func (h *DoctorHandler) UpdateProfile(c *gin.Context) {
	// Step 1: Get caller
	doctorID, ok := selfID(c)
	if !ok {
		return
	}

	// Step 2: Bind request body
	var req model.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.handleBindError(c, err)
		return
	}

	// Step 3: Call service
	doctor, err := h.doctorService.UpdateProfile(c.Request.Context(), doctorID, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.OK(c, gin.H{"doctor": doctor})
}

// =====================================================
// ADMIN ENDPOINTS
// =====================================================

// CreateDoctor POST /api/v1/admin/doctors
func (h *DoctorHandler) CreateDoctor(c *gin.Context) {
	var req model.CreateDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.handleBindError(c, err)
		return
	}

	doctor, err := h.doctorService.CreateDoctor(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Created(c, gin.H{"doctor": doctor})
}

// SetActive PATCH /api/v1/admin/doctors/:id/status
func (h *DoctorHandler) SetActive(c *gin.Context) {
	id, ok := parseDoctorID(c)
	if !ok {
		return
	}

	var req model.UpdateActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.handleBindError(c, err)
		return
	}

	doctor, err := h.doctorService.SetActive(c.Request.Context(), id, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.OK(c, gin.H{"doctor": doctor})
}

// =====================================================
// ERROR MAPPING
// =====================================================

// handleBindError: field sai kiểu trả về DOC003 kèm details, body hỏng trả BAD_REQUEST
func (h *DoctorHandler) handleBindError(c *gin.Context, err error) {
	field, message, ok := utils.JSONFieldTypeError(err)
	if !ok {
		response.BadRequest(c, "invalid request body")
		return
	}
	h.handleError(c, model.NewFieldError(field, message))
}

func (h *DoctorHandler) handleError(c *gin.Context, err error) {
	var de *model.DoctorError
	if !errors.As(err, &de) {
		log.Error().
			Err(err).
			Str("request_id", c.GetString(middleware.RequestIDKey)).
			Str("path", c.FullPath()).
			Msg("[DOCTOR] Request failed")
		response.InternalServerError(c, "internal server error")
		return
	}

	status := http.StatusInternalServerError
	switch de.Kind {
	case model.KindValidation:
		status = http.StatusBadRequest
	case model.KindNotFound:
		status = http.StatusNotFound
	case model.KindConflict:
		status = http.StatusConflict
	}

	if len(de.Details) > 0 {
		response.ErrorWithDetails(c, status, de.Code, de.Message, de.Details)
		return
	}
	response.Error(c, status, de.Code, de.Message)
}
