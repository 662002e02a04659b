package repository

import (
	"context"
	"errors"
	"math"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ayurveda-backend/internal/domains/review/model"
	"ayurveda-backend/internal/shared/utils"
)

// ---------------------------------------------------------------------------
// helpers
// ---------------------------------------------------------------------------

func setupRepo(t *testing.T) (ReviewRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewPostgresReviewRepository(mock), mock
}

var fixedTime = time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)

func reviewColumnNames() []string {
	return []string{"id", "doctor_id", "patient_name", "email", "rating", "comment", "status", "created_at", "updated_at"}
}

func reviewRow(rows *pgxmock.Rows, id, doctorID int64, rating int, status string) *pgxmock.Rows {
	return rows.AddRow(id, doctorID, "Amal", "a@x.com", rating, "Great doctor", status, fixedTime, fixedTime)
}

// ---------------------------------------------------------------------------
// Create
// ---------------------------------------------------------------------------

func TestCreate_Success(t *testing.T) {
	repo, mock := setupRepo(t)

	review := &model.Review{
		DoctorID:    1,
		PatientName: "Amal",
		Email:       "a@x.com",
		Rating:      5,
		Comment:     "Great doctor",
		Status:      model.StatusPending,
	}

	mock.ExpectQuery("INSERT INTO reviews").
		WithArgs(int64(1), "Amal", "a@x.com", 5, "Great doctor", "pending").
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(10), fixedTime, fixedTime))

	err := repo.Create(context.Background(), review)
	require.NoError(t, err)
	assert.Equal(t, int64(10), review.ID)
	assert.Equal(t, fixedTime, review.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_UnknownDoctor(t *testing.T) {
	repo, mock := setupRepo(t)

	mock.ExpectQuery("INSERT INTO reviews").
		WithArgs(int64(404), "Amal", "", 3, "ok", "pending").
		WillReturnError(&pgconn.PgError{Code: "23503"})

	err := repo.Create(context.Background(), &model.Review{
		DoctorID: 404, PatientName: "Amal", Rating: 3, Comment: "ok", Status: model.StatusPending,
	})
	assert.ErrorIs(t, err, model.ErrDoctorNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_StoreFailure(t *testing.T) {
	repo, mock := setupRepo(t)

	mock.ExpectQuery("INSERT INTO reviews").
		WithArgs(int64(1), "Amal", "", 3, "ok", "approved").
		WillReturnError(errors.New("connection reset"))

	err := repo.Create(context.Background(), &model.Review{
		DoctorID: 1, PatientName: "Amal", Rating: 3, Comment: "ok", Status: model.StatusApproved,
	})
	require.Error(t, err)
	assert.NotErrorIs(t, err, model.ErrDoctorNotFound)
	assert.Contains(t, err.Error(), "connection reset")
}

// ---------------------------------------------------------------------------
// GetByID
// ---------------------------------------------------------------------------

func TestGetByID(t *testing.T) {
	repo, mock := setupRepo(t)

	mock.ExpectQuery("SELECT .+ FROM reviews WHERE id = \\$1").
		WithArgs(int64(10)).
		WillReturnRows(reviewRow(pgxmock.NewRows(reviewColumnNames()), 10, 1, 5, "approved"))

	review, err := repo.GetByID(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, int64(10), review.ID)
	assert.Equal(t, model.StatusApproved, review.Status)
	assert.Equal(t, 5, review.Rating)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock := setupRepo(t)

	mock.ExpectQuery("SELECT .+ FROM reviews WHERE id = \\$1").
		WithArgs(int64(99999)).
		WillReturnRows(pgxmock.NewRows(reviewColumnNames()))

	_, err := repo.GetByID(context.Background(), 99999)
	assert.ErrorIs(t, err, model.ErrReviewNotFound)
}

// ---------------------------------------------------------------------------
// List
// ---------------------------------------------------------------------------

func TestList_FilterSortAndPage(t *testing.T) {
	repo, mock := setupRepo(t)

	doctorID := int64(7)
	status := model.StatusApproved

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM reviews WHERE doctor_id = $1 AND status = $2")).
		WithArgs(int64(7), "approved").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(12)))

	rows := pgxmock.NewRows(reviewColumnNames())
	reviewRow(rows, 3, 7, 4, "approved")
	reviewRow(rows, 2, 7, 2, "approved")
	mock.ExpectQuery(regexp.QuoteMeta("WHERE doctor_id = $1 AND status = $2 ORDER BY rating ASC, id ASC LIMIT $3 OFFSET $4")).
		WithArgs(int64(7), "approved", 5, 10).
		WillReturnRows(rows)

	reviews, total, err := repo.List(context.Background(),
		model.ListFilter{DoctorID: &doctorID, Status: &status},
		model.ListOptions{SortBy: model.SortByRating, Order: model.OrderAsc, Page: 3, Limit: 5},
	)
	require.NoError(t, err)
	assert.Equal(t, int64(12), total)
	require.Len(t, reviews, 2)
	assert.Equal(t, int64(3), reviews[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestList_DefaultOrderAndUnknownSort(t *testing.T) {
	repo, mock := setupRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM reviews")).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(1)))
	mock.ExpectQuery(regexp.QuoteMeta("FROM reviews ORDER BY created_at DESC, id DESC LIMIT $1 OFFSET $2")).
		WithArgs(10, 0).
		WillReturnRows(reviewRow(pgxmock.NewRows(reviewColumnNames()), 1, 1, 5, "pending"))

	reviews, total, err := repo.List(context.Background(), model.ListFilter{},
		model.ListOptions{SortBy: "patient_name; DROP TABLE reviews"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, reviews, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestList_HugePageIsClamped(t *testing.T) {
	repo, mock := setupRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM reviews")).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(3)))
	mock.ExpectQuery(regexp.QuoteMeta("LIMIT $1 OFFSET $2")).
		WithArgs(100, (utils.MaxPage-1)*100).
		WillReturnRows(pgxmock.NewRows(reviewColumnNames()))

	reviews, total, err := repo.List(context.Background(), model.ListFilter{},
		model.ListOptions{Page: math.MaxInt, Limit: 100})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Empty(t, reviews)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestList_EmptySkipsPageQuery(t *testing.T) {
	repo, mock := setupRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM reviews WHERE doctor_id = $1")).
		WithArgs(int64(5)).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(0)))

	doctorID := int64(5)
	reviews, total, err := repo.List(context.Background(), model.ListFilter{DoctorID: &doctorID}, model.ListOptions{})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.NotNil(t, reviews)
	assert.Empty(t, reviews)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ---------------------------------------------------------------------------
// UpdateStatus
// ---------------------------------------------------------------------------

func TestUpdateStatus(t *testing.T) {
	repo, mock := setupRepo(t)

	mock.ExpectQuery("UPDATE reviews").
		WithArgs(int64(10), "rejected").
		WillReturnRows(reviewRow(pgxmock.NewRows(reviewColumnNames()), 10, 1, 5, "rejected"))

	review, err := repo.UpdateStatus(context.Background(), 10, model.StatusRejected)
	require.NoError(t, err)
	assert.Equal(t, model.StatusRejected, review.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatus_NotFound(t *testing.T) {
	repo, mock := setupRepo(t)

	mock.ExpectQuery("UPDATE reviews").
		WithArgs(int64(99999), "approved").
		WillReturnRows(pgxmock.NewRows(reviewColumnNames()))

	_, err := repo.UpdateStatus(context.Background(), 99999, model.StatusApproved)
	assert.ErrorIs(t, err, model.ErrReviewNotFound)
}

// ---------------------------------------------------------------------------
// Delete
// ---------------------------------------------------------------------------

func TestDelete(t *testing.T) {
	repo, mock := setupRepo(t)

	mock.ExpectExec("DELETE FROM reviews WHERE id = \\$1").
		WithArgs(int64(10)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec("DELETE FROM reviews WHERE id = \\$1").
		WithArgs(int64(10)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	require.NoError(t, repo.Delete(context.Background(), 10))
	assert.ErrorIs(t, repo.Delete(context.Background(), 10), model.ErrReviewNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ---------------------------------------------------------------------------
// RatingBuckets
// ---------------------------------------------------------------------------

func TestRatingBuckets_DoctorScope(t *testing.T) {
	repo, mock := setupRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT status, rating, COUNT(*) FROM reviews WHERE doctor_id = $1 GROUP BY status, rating")).
		WithArgs(int64(7)).
		WillReturnRows(pgxmock.NewRows([]string{"status", "rating", "count"}).
			AddRow("approved", 4, int64(1)).
			AddRow("approved", 2, int64(1)).
			AddRow("pending", 5, int64(3)))

	buckets, err := repo.RatingBuckets(context.Background(), model.DoctorScope(7))
	require.NoError(t, err)
	assert.Equal(t, []model.RatingBucket{
		{Status: model.StatusApproved, Rating: 4, Count: 1},
		{Status: model.StatusApproved, Rating: 2, Count: 1},
		{Status: model.StatusPending, Rating: 5, Count: 3},
	}, buckets)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRatingBuckets_Global(t *testing.T) {
	repo, mock := setupRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT status, rating, COUNT(*) FROM reviews GROUP BY status, rating")).
		WillReturnRows(pgxmock.NewRows([]string{"status", "rating", "count"}))

	buckets, err := repo.RatingBuckets(context.Background(), model.GlobalScope())
	require.NoError(t, err)
	assert.Empty(t, buckets)
	assert.NoError(t, mock.ExpectationsWereMet())
}
