package model

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	reviewmodel "ayurveda-backend/internal/domains/review/model"
	"ayurveda-backend/internal/shared/utils"
)

// =====================================================
// REQUEST DTOs
// =====================================================

// CreateDoctorRequest body của POST /admin/doctors
type CreateDoctorRequest struct {
	FullName        string `json:"full_name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Specialization  string `json:"specialization"`
	ClinicName      string `json:"clinic_name"`
	City            string `json:"city"`
	Bio             string `json:"bio"`
	ExperienceYears int    `json:"experience_years"`
}

func (r *CreateDoctorRequest) Normalize() {
	r.FullName = strings.TrimSpace(r.FullName)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Phone = strings.TrimSpace(r.Phone)
	r.Specialization = strings.TrimSpace(r.Specialization)
	r.ClinicName = strings.TrimSpace(r.ClinicName)
	r.City = strings.TrimSpace(r.City)
	r.Bio = strings.TrimSpace(r.Bio)
}

func (r CreateDoctorRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FullName,
			validation.Required.Error("full_name is required"),
			validation.RuneLength(1, MaxFullNameLength).Error("full_name must be at most 150 characters"),
		),
		validation.Field(&r.Email,
			validation.Required.Error("email is required"),
			validation.Length(0, MaxEmailLength).Error("email must be at most 255 characters"),
			is.EmailFormat.Error("email must be a valid email address"),
		),
		validation.Field(&r.Phone,
			validation.Length(0, MaxPhoneLength).Error("phone must be at most 32 characters"),
		),
		validation.Field(&r.Specialization,
			validation.Required.Error("specialization is required"),
			validation.RuneLength(1, MaxSpecializationLength).Error("specialization must be at most 150 characters"),
		),
		validation.Field(&r.ClinicName,
			validation.RuneLength(0, MaxClinicNameLength).Error("clinic_name must be at most 200 characters"),
		),
		validation.Field(&r.City,
			validation.RuneLength(0, MaxCityLength).Error("city must be at most 100 characters"),
		),
		validation.Field(&r.Bio,
			validation.RuneLength(0, MaxBioLength).Error("bio must be at most 5000 characters"),
		),
		validation.Field(&r.ExperienceYears,
			validation.Min(0).Error("experience_years must be between 0 and 80"),
			validation.Max(MaxExperienceYears).Error("experience_years must be between 0 and 80"),
		),
	)
}

// ToDoctor tạo entity active từ request đã validate
func (r CreateDoctorRequest) ToDoctor() *Doctor {
	return &Doctor{
		FullName:        r.FullName,
		Email:           r.Email,
		Phone:           r.Phone,
		Specialization:  r.Specialization,
		ClinicName:      r.ClinicName,
		City:            r.City,
		Bio:             r.Bio,
		ExperienceYears: r.ExperienceYears,
		IsActive:        true,
	}
}

// UpdateProfileRequest body của PUT /doctors/me.
// Field nil = giữ nguyên giá trị cũ.
type UpdateProfileRequest struct {
	FullName        *string `json:"full_name"`
	Phone           *string `json:"phone"`
	Specialization  *string `json:"specialization"`
	ClinicName      *string `json:"clinic_name"`
	City            *string `json:"city"`
	Bio             *string `json:"bio"`
	ExperienceYears *int    `json:"experience_years"`
}

func (r UpdateProfileRequest) IsEmpty() bool {
	return r.FullName == nil && r.Phone == nil && r.Specialization == nil &&
		r.ClinicName == nil && r.City == nil && r.Bio == nil && r.ExperienceYears == nil
}

// ApplyTo merge các field được gửi vào doctor
func (r UpdateProfileRequest) ApplyTo(d *Doctor) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}
	set(&d.FullName, r.FullName)
	set(&d.Phone, r.Phone)
	set(&d.Specialization, r.Specialization)
	set(&d.ClinicName, r.ClinicName)
	set(&d.City, r.City)
	set(&d.Bio, r.Bio)
	if r.ExperienceYears != nil {
		d.ExperienceYears = *r.ExperienceYears
	}
}

// ValidateDoctor kiểm tra entity sau khi merge partial update
func ValidateDoctor(d *Doctor) error {
	req := CreateDoctorRequest{
		FullName:        d.FullName,
		Email:           d.Email,
		Phone:           d.Phone,
		Specialization:  d.Specialization,
		ClinicName:      d.ClinicName,
		City:            d.City,
		Bio:             d.Bio,
		ExperienceYears: d.ExperienceYears,
	}
	return req.Validate()
}

// UpdateActiveRequest body của PATCH /admin/doctors/:id/status
type UpdateActiveRequest struct {
	IsActive *bool `json:"is_active"`
}

// ListDoctorsRequest query của GET /doctors
type ListDoctorsRequest struct {
	City   string `form:"city"`
	Search string `form:"search"`
	Page   int    `form:"page"`
	Limit  int    `form:"limit"`
}

func (r *ListDoctorsRequest) Normalize() {
	r.City = strings.TrimSpace(r.City)
	r.Search = strings.TrimSpace(r.Search)
	r.Page, r.Limit = utils.NormalizePage(r.Page, r.Limit)
}

func (r ListDoctorsRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.City,
			validation.RuneLength(0, MaxCityLength).Error("city must be at most 100 characters"),
		),
		validation.Field(&r.Search,
			validation.RuneLength(0, 100).Error("search must be at most 100 characters"),
		),
	)
}

// =====================================================
// RESPONSE DTOs
// =====================================================

type DoctorResponse struct {
	ID              int64     `json:"id"`
	FullName        string    `json:"full_name"`
	Email           string    `json:"email,omitempty"`
	Phone           string    `json:"phone,omitempty"`
	Specialization  string    `json:"specialization"`
	ClinicName      string    `json:"clinic_name,omitempty"`
	City            string    `json:"city,omitempty"`
	Bio             string    `json:"bio,omitempty"`
	ExperienceYears int       `json:"experience_years"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ToDoctorResponse: contact info chỉ trả về cho owner/admin
func ToDoctorResponse(d *Doctor, includeContact bool) DoctorResponse {
	resp := DoctorResponse{
		ID:              d.ID,
		FullName:        d.FullName,
		Specialization:  d.Specialization,
		ClinicName:      d.ClinicName,
		City:            d.City,
		Bio:             d.Bio,
		ExperienceYears: d.ExperienceYears,
		IsActive:        d.IsActive,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
	if includeContact {
		resp.Email = d.Email
		resp.Phone = d.Phone
	}
	return resp
}

// DoctorDetailResponse là doctor kèm review statistics
type DoctorDetailResponse struct {
	DoctorResponse
	Statistics reviewmodel.StatisticsResponse `json:"statistics"`
}

type Pagination struct {
	CurrentPage  int   `json:"current_page"`
	TotalPages   int   `json:"total_pages"`
	TotalDoctors int64 `json:"total_doctors"`
	PerPage      int   `json:"per_page"`
}

type ListDoctorsResponse struct {
	Doctors    []DoctorResponse `json:"doctors"`
	Pagination Pagination       `json:"pagination"`
}

func NewPagination(page, perPage int, total int64) Pagination {
	return Pagination{
		CurrentPage:  page,
		TotalPages:   utils.TotalPages(total, perPage),
		TotalDoctors: total,
		PerPage:      perPage,
	}
}
