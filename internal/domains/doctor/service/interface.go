package service

import (
	"context"

	"ayurveda-backend/internal/domains/doctor/model"
)

// =====================================================
// DOCTOR SERVICE INTERFACE
// =====================================================

type ServiceInterface interface {
	// Public directory
	ListDoctors(ctx context.Context, req model.ListDoctorsRequest) (*model.ListDoctorsResponse, error)
	GetDoctor(ctx context.Context, id int64) (*model.DoctorDetailResponse, error)

	// Doctor self-service
	GetProfile(ctx context.Context, doctorID int64) (*model.DoctorDetailResponse, error)
	UpdateProfile(ctx context.Context, doctorID int64, req model.UpdateProfileRequest) (*model.DoctorResponse, error)

	// Admin
	CreateDoctor(ctx context.Context, req model.CreateDoctorRequest) (*model.DoctorResponse, error)
	SetActive(ctx context.Context, id int64, req model.UpdateActiveRequest) (*model.DoctorResponse, error)
}
