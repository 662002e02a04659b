package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"ayurveda-backend/internal/domains/doctor/model"
	"ayurveda-backend/internal/domains/doctor/repository"
	reviewmodel "ayurveda-backend/internal/domains/review/model"
	reviewservice "ayurveda-backend/internal/domains/review/service"
)

type doctorService struct {
	doctorRepo repository.DoctorRepository
	stats      reviewservice.StatisticsProvider
}

// NewDoctorService: stats là Aggregator của review domain
func NewDoctorService(
	doctorRepo repository.DoctorRepository,
	stats reviewservice.StatisticsProvider,
) ServiceInterface {
	return &doctorService{
		doctorRepo: doctorRepo,
		stats:      stats,
	}
}

func (s *doctorService) load(ctx context.Context, id int64) (*model.Doctor, error) {
	d, err := s.doctorRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrDoctorNotFound) {
			return nil, model.NewDoctorNotFoundError()
		}
		return nil, fmt.Errorf("failed to load doctor: %w", err)
	}
	return d, nil
}

func (s *doctorService) withStatistics(ctx context.Context, d *model.Doctor, includeContact bool) (*model.DoctorDetailResponse, error) {
	stats, err := s.stats.ComputeStatistics(ctx, reviewmodel.DoctorScope(d.ID))
	if err != nil {
		return nil, fmt.Errorf("failed to compute statistics: %w", err)
	}
	return &model.DoctorDetailResponse{
		DoctorResponse: model.ToDoctorResponse(d, includeContact),
		Statistics:     reviewmodel.ToStatisticsResponse(stats),
	}, nil
}

// =====================================================
// PUBLIC DIRECTORY
// =====================================================

func (s *doctorService) ListDoctors(ctx context.Context, req model.ListDoctorsRequest) (*model.ListDoctorsResponse, error) {
	// Step 1: Normalize + validate
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, model.NewValidationError(err)
	}

	// Step 2: Query active doctors
	filter := model.ListFilter{City: req.City, Search: req.Search, ActiveOnly: true}
	doctors, total, err := s.doctorRepo.List(ctx, filter, req.Page, req.Limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}

	// Step 3: Map response
	items := make([]model.DoctorResponse, 0, len(doctors))
	for _, d := range doctors {
		items = append(items, model.ToDoctorResponse(d, false))
	}

	return &model.ListDoctorsResponse{
		Doctors:    items,
		Pagination: model.NewPagination(req.Page, req.Limit, total),
	}, nil
}

// GetDoctor trả về doctor active kèm statistics; doctor inactive coi như không tồn tại
func (s *doctorService) GetDoctor(ctx context.Context, id int64) (*model.DoctorDetailResponse, error) {
	d, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !d.IsActive {
		return nil, model.NewDoctorNotFoundError()
	}
	return s.withStatistics(ctx, d, false)
}

// =====================================================
// SELF-SERVICE
// =====================================================

func (s *doctorService) GetProfile(ctx context.Context, doctorID int64) (*model.DoctorDetailResponse, error) {
	d, err := s.load(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	return s.withStatistics(ctx, d, true)
}

func (s *doctorService) UpdateProfile(ctx context.Context, doctorID int64, req model.UpdateProfileRequest) (*model.DoctorResponse, error) {
	// Step 1: Reject empty patch
	if req.IsEmpty() {
		return nil, model.NewFieldError("body", "at least one field must be provided")
	}

	// Step 2: Load current profile
	d, err := s.load(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	// Step 3: Merge + validate
	req.ApplyTo(d)
	if err := model.ValidateDoctor(d); err != nil {
		return nil, model.NewValidationError(err)
	}

	// Step 4: Save
	if err := s.doctorRepo.Update(ctx, d); err != nil {
		if errors.Is(err, model.ErrDoctorNotFound) {
			return nil, model.NewDoctorNotFoundError()
		}
		return nil, fmt.Errorf("failed to update doctor: %w", err)
	}

	log.Info().Int64("doctor_id", d.ID).Msg("[DOCTOR] Profile updated")

	resp := model.ToDoctorResponse(d, true)
	return &resp, nil
}

// =====================================================
// ADMIN
// =====================================================

func (s *doctorService) CreateDoctor(ctx context.Context, req model.CreateDoctorRequest) (*model.DoctorResponse, error) {
	// Step 1: Validate
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, model.NewValidationError(err)
	}

	// Step 2: Save
	d := req.ToDoctor()
	if err := s.doctorRepo.Create(ctx, d); err != nil {
		if errors.Is(err, model.ErrEmailExists) {
			return nil, model.NewEmailExistsError()
		}
		return nil, fmt.Errorf("failed to create doctor: %w", err)
	}

	log.Info().Int64("doctor_id", d.ID).Msg("[DOCTOR] Doctor created")

	resp := model.ToDoctorResponse(d, true)
	return &resp, nil
}

func (s *doctorService) SetActive(ctx context.Context, id int64, req model.UpdateActiveRequest) (*model.DoctorResponse, error) {
	if req.IsActive == nil {
		return nil, model.NewFieldError("is_active", "is_active is required")
	}

	d, err := s.doctorRepo.SetActive(ctx, id, *req.IsActive)
	if err != nil {
		if errors.Is(err, model.ErrDoctorNotFound) {
			return nil, model.NewDoctorNotFoundError()
		}
		return nil, fmt.Errorf("failed to update doctor status: %w", err)
	}

	log.Info().
		Int64("doctor_id", d.ID).
		Bool("is_active", d.IsActive).
		Msg("[DOCTOR] Listing status changed")

	resp := model.ToDoctorResponse(d, true)
	return &resp, nil
}
