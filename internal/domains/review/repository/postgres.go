package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"ayurveda-backend/internal/domains/review/model"
	"ayurveda-backend/internal/shared/utils"
	"ayurveda-backend/pkg/database"
)

// =====================================================
// POSTGRES REPOSITORY IMPLEMENTATION
// =====================================================

const reviewColumns = `id, doctor_id, patient_name, email, rating, comment, status, created_at, updated_at`

// sortColumns whitelist cột được phép ORDER BY
var sortColumns = map[string]string{
	model.SortByCreatedAt: "created_at",
	model.SortByRating:    "rating",
}

type postgresReviewRepository struct {
	db database.DBTX
}

func NewPostgresReviewRepository(db database.DBTX) ReviewRepository {
	return &postgresReviewRepository{db: db}
}

func scanReview(row pgx.Row) (*model.Review, error) {
	review := &model.Review{}
	var status string

	err := row.Scan(
		&review.ID,
		&review.DoctorID,
		&review.PatientName,
		&review.Email,
		&review.Rating,
		&review.Comment,
		&status,
		&review.CreatedAt,
		&review.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	review.Status = model.Status(status)
	return review, nil
}

// =====================================================
// CREATE
// =====================================================

func (r *postgresReviewRepository) Create(ctx context.Context, review *model.Review) error {
	query := `
		INSERT INTO reviews (doctor_id, patient_name, email, rating, comment, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		review.DoctorID,
		review.PatientName,
		review.Email,
		review.Rating,
		review.Comment,
		string(review.Status),
	).Scan(&review.ID, &review.CreatedAt, &review.UpdatedAt)

	if err != nil {
		if database.IsPgError(err, database.PgForeignKeyViolation) {
			return model.ErrDoctorNotFound
		}
		return fmt.Errorf("failed to create review: %w", err)
	}

	return nil
}

// =====================================================
// GET BY ID
// =====================================================

func (r *postgresReviewRepository) GetByID(ctx context.Context, id int64) (*model.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE id = $1`

	review, err := scanReview(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrReviewNotFound
		}
		return nil, fmt.Errorf("failed to get review: %w", err)
	}

	return review, nil
}

// =====================================================
// LIST
// =====================================================

func buildWhere(filter model.ListFilter) (string, []interface{}) {
	var (
		conditions []string
		args       []interface{}
	)

	if filter.DoctorID != nil {
		args = append(args, *filter.DoctorID)
		conditions = append(conditions, fmt.Sprintf("doctor_id = $%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}

	if len(conditions) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

func orderClause(opts model.ListOptions) string {
	column, ok := sortColumns[opts.SortBy]
	if !ok {
		column = "created_at"
	}
	direction := "DESC"
	if opts.Order == model.OrderAsc {
		direction = "ASC"
	}
	// id làm tie-breaker để phân trang ổn định
	return fmt.Sprintf(" ORDER BY %s %s, id %s", column, direction, direction)
}

func (r *postgresReviewRepository) List(
	ctx context.Context,
	filter model.ListFilter,
	opts model.ListOptions,
) ([]*model.Review, int64, error) {
	page, limit := utils.NormalizePage(opts.Page, opts.Limit)
	where, args := buildWhere(filter)

	// Step 1: Count
	var total int64
	countQuery := `SELECT COUNT(*) FROM reviews` + where
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count reviews: %w", err)
	}

	reviews := make([]*model.Review, 0, limit)
	if total == 0 {
		return reviews, 0, nil
	}

	// Step 2: Page
	args = append(args, limit, utils.Offset(page, limit))
	query := `SELECT ` + reviewColumns + ` FROM reviews` + where + orderClause(opts) +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, review)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate reviews: %w", err)
	}

	return reviews, total, nil
}

// =====================================================
// UPDATE STATUS
// =====================================================

func (r *postgresReviewRepository) UpdateStatus(ctx context.Context, id int64, status model.Status) (*model.Review, error) {
	query := `
		UPDATE reviews
		SET status = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + reviewColumns

	review, err := scanReview(r.db.QueryRow(ctx, query, id, string(status)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrReviewNotFound
		}
		return nil, fmt.Errorf("failed to update review status: %w", err)
	}

	return review, nil
}

// =====================================================
// DELETE
// =====================================================

func (r *postgresReviewRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrReviewNotFound
	}
	return nil
}

// =====================================================
// STATISTICS
// =====================================================

func (r *postgresReviewRepository) RatingBuckets(ctx context.Context, scope model.Scope) ([]model.RatingBucket, error) {
	query := `SELECT status, rating, COUNT(*) FROM reviews`
	var args []interface{}
	if scope.DoctorID != nil {
		query += ` WHERE doctor_id = $1`
		args = append(args, *scope.DoctorID)
	}
	query += ` GROUP BY status, rating`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate reviews: %w", err)
	}
	defer rows.Close()

	var buckets []model.RatingBucket
	for rows.Next() {
		var (
			status string
			b      model.RatingBucket
		)
		if err := rows.Scan(&status, &b.Rating, &b.Count); err != nil {
			return nil, fmt.Errorf("failed to scan bucket: %w", err)
		}
		b.Status = model.Status(status)
		buckets = append(buckets, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate buckets: %w", err)
	}

	return buckets, nil
}
