package repository

import (
	"context"

	"ayurveda-backend/internal/domains/doctor/model"
)

// DoctorRepository defines data access operations for the doctor directory
type DoctorRepository interface {
	Create(ctx context.Context, doctor *model.Doctor) error
	GetByID(ctx context.Context, id int64) (*model.Doctor, error)

	// ExistsActive reports whether the doctor exists and is listed.
	// Review submission depends on it.
	ExistsActive(ctx context.Context, id int64) (bool, error)

	List(ctx context.Context, filter model.ListFilter, page, limit int) ([]*model.Doctor, int64, error)
	Update(ctx context.Context, doctor *model.Doctor) error
	SetActive(ctx context.Context, id int64, active bool) (*model.Doctor, error)
}
