package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"ayurveda-backend/internal/domains/doctor/model"
	"ayurveda-backend/internal/shared/utils"
	"ayurveda-backend/pkg/database"
)

const doctorColumns = `id, full_name, email, phone, specialization, clinic_name, city, bio, experience_years, is_active, created_at, updated_at`

// likeEscaper escape ký tự đặc biệt của ILIKE trong search term
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type postgresDoctorRepository struct {
	db database.DBTX
}

func NewPostgresDoctorRepository(db database.DBTX) DoctorRepository {
	return &postgresDoctorRepository{db: db}
}

func scanDoctor(row pgx.Row) (*model.Doctor, error) {
	d := &model.Doctor{}
	err := row.Scan(
		&d.ID,
		&d.FullName,
		&d.Email,
		&d.Phone,
		&d.Specialization,
		&d.ClinicName,
		&d.City,
		&d.Bio,
		&d.ExperienceYears,
		&d.IsActive,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (r *postgresDoctorRepository) Create(ctx context.Context, d *model.Doctor) error {
	query := `
		INSERT INTO doctors (full_name, email, phone, specialization, clinic_name, city, bio, experience_years, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		d.FullName,
		d.Email,
		d.Phone,
		d.Specialization,
		d.ClinicName,
		d.City,
		d.Bio,
		d.ExperienceYears,
		d.IsActive,
	).Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt)

	if err != nil {
		if database.IsPgError(err, database.PgUniqueViolation) {
			return model.ErrEmailExists
		}
		return fmt.Errorf("failed to create doctor: %w", err)
	}
	return nil
}

func (r *postgresDoctorRepository) GetByID(ctx context.Context, id int64) (*model.Doctor, error) {
	query := `SELECT ` + doctorColumns + ` FROM doctors WHERE id = $1`

	d, err := scanDoctor(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrDoctorNotFound
		}
		return nil, fmt.Errorf("failed to get doctor: %w", err)
	}
	return d, nil
}

func (r *postgresDoctorRepository) ExistsActive(ctx context.Context, id int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM doctors WHERE id = $1 AND is_active)`
	if err := r.db.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check doctor: %w", err)
	}
	return exists, nil
}

func buildWhere(filter model.ListFilter) (string, []interface{}) {
	var (
		conditions []string
		args       []interface{}
	)

	if filter.ActiveOnly {
		conditions = append(conditions, "is_active")
	}
	if filter.City != "" {
		args = append(args, filter.City)
		conditions = append(conditions, fmt.Sprintf("LOWER(city) = LOWER($%d)", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+likeEscaper.Replace(filter.Search)+"%")
		n := len(args)
		conditions = append(conditions, fmt.Sprintf("(full_name ILIKE $%d OR specialization ILIKE $%d)", n, n))
	}

	if len(conditions) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

func (r *postgresDoctorRepository) List(
	ctx context.Context,
	filter model.ListFilter,
	page, limit int,
) ([]*model.Doctor, int64, error) {
	page, limit = utils.NormalizePage(page, limit)
	where, args := buildWhere(filter)

	// Step 1: Count
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM doctors`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count doctors: %w", err)
	}

	doctors := make([]*model.Doctor, 0, limit)
	if total == 0 {
		return doctors, 0, nil
	}

	// Step 2: Page
	args = append(args, limit, utils.Offset(page, limit))
	query := `SELECT ` + doctorColumns + ` FROM doctors` + where +
		fmt.Sprintf(" ORDER BY full_name ASC, id ASC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list doctors: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		d, err := scanDoctor(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan doctor: %w", err)
		}
		doctors = append(doctors, d)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate doctors: %w", err)
	}

	return doctors, total, nil
}

func (r *postgresDoctorRepository) Update(ctx context.Context, d *model.Doctor) error {
	query := `
		UPDATE doctors
		SET full_name = $2, phone = $3, specialization = $4, clinic_name = $5,
		    city = $6, bio = $7, experience_years = $8, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.db.QueryRow(ctx, query,
		d.ID,
		d.FullName,
		d.Phone,
		d.Specialization,
		d.ClinicName,
		d.City,
		d.Bio,
		d.ExperienceYears,
	).Scan(&d.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.ErrDoctorNotFound
		}
		return fmt.Errorf("failed to update doctor: %w", err)
	}
	return nil
}

func (r *postgresDoctorRepository) SetActive(ctx context.Context, id int64, active bool) (*model.Doctor, error) {
	query := `
		UPDATE doctors
		SET is_active = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + doctorColumns

	d, err := scanDoctor(r.db.QueryRow(ctx, query, id, active))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrDoctorNotFound
		}
		return nil, fmt.Errorf("failed to update doctor status: %w", err)
	}
	return d, nil
}
