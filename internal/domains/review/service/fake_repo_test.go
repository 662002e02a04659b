package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"ayurveda-backend/internal/domains/review/model"
	"ayurveda-backend/internal/shared/utils"
)

// memoryRepo is an in-memory ReviewRepository with the same observable
// behaviour as the postgres implementation.
type memoryRepo struct {
	mu      sync.Mutex
	nextID  int64
	rows    map[int64]model.Review
	doctors map[int64]bool

	// failWith makes every call return this error
	failWith error

	updateCalls int
	bucketCalls int
}

func newMemoryRepo(doctorIDs ...int64) *memoryRepo {
	r := &memoryRepo{rows: map[int64]model.Review{}, doctors: map[int64]bool{}}
	for _, id := range doctorIDs {
		r.doctors[id] = true
	}
	return r
}

func (r *memoryRepo) Create(_ context.Context, review *model.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return r.failWith
	}
	if !r.doctors[review.DoctorID] {
		return model.ErrDoctorNotFound
	}

	r.nextID++
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(r.nextID) * time.Minute)
	review.ID = r.nextID
	review.CreatedAt = now
	review.UpdatedAt = now
	r.rows[review.ID] = *review
	return nil
}

func (r *memoryRepo) GetByID(_ context.Context, id int64) (*model.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return nil, r.failWith
	}
	row, ok := r.rows[id]
	if !ok {
		return nil, model.ErrReviewNotFound
	}
	return &row, nil
}

func (r *memoryRepo) List(_ context.Context, filter model.ListFilter, opts model.ListOptions) ([]*model.Review, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return nil, 0, r.failWith
	}

	var matched []*model.Review
	for _, row := range r.rows {
		row := row
		if filter.DoctorID != nil && row.DoctorID != *filter.DoctorID {
			continue
		}
		if filter.Status != nil && row.Status != *filter.Status {
			continue
		}
		matched = append(matched, &row)
	}

	desc := opts.Order != model.OrderAsc
	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		var less bool
		switch {
		case opts.SortBy == model.SortByRating && a.Rating != b.Rating:
			less = a.Rating < b.Rating
		case opts.SortBy != model.SortByRating && !a.CreatedAt.Equal(b.CreatedAt):
			less = a.CreatedAt.Before(b.CreatedAt)
		default:
			less = a.ID < b.ID
		}
		if desc {
			return !less
		}
		return less
	})

	page, limit := utils.NormalizePage(opts.Page, opts.Limit)
	total := int64(len(matched))
	start := utils.Offset(page, limit)
	if start > len(matched) {
		start = len(matched)
	}
	end := start + limit
	if end > len(matched) {
		end = len(matched)
	}
	return append([]*model.Review{}, matched[start:end]...), total, nil
}

func (r *memoryRepo) UpdateStatus(_ context.Context, id int64, status model.Status) (*model.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updateCalls++
	if r.failWith != nil {
		return nil, r.failWith
	}
	row, ok := r.rows[id]
	if !ok {
		return nil, model.ErrReviewNotFound
	}
	row.Status = status
	row.UpdatedAt = row.UpdatedAt.Add(time.Second)
	r.rows[id] = row
	return &row, nil
}

func (r *memoryRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return r.failWith
	}
	if _, ok := r.rows[id]; !ok {
		return model.ErrReviewNotFound
	}
	delete(r.rows, id)
	return nil
}

func (r *memoryRepo) RatingBuckets(_ context.Context, scope model.Scope) ([]model.RatingBucket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bucketCalls++
	if r.failWith != nil {
		return nil, r.failWith
	}

	type key struct {
		status model.Status
		rating int
	}
	counts := map[key]int64{}
	for _, row := range r.rows {
		if scope.DoctorID != nil && row.DoctorID != *scope.DoctorID {
			continue
		}
		counts[key{row.Status, row.Rating}]++
	}

	buckets := make([]model.RatingBucket, 0, len(counts))
	for k, c := range counts {
		buckets = append(buckets, model.RatingBucket{Status: k.status, Rating: k.rating, Count: c})
	}
	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].Status != buckets[j].Status {
			return buckets[i].Status < buckets[j].Status
		}
		return buckets[i].Rating < buckets[j].Rating
	})
	return buckets, nil
}

func (r *memoryRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rows)
}

// ExistsActive lets memoryRepo double as the doctor directory
func (r *memoryRepo) ExistsActive(_ context.Context, doctorID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.doctors[doctorID], nil
}
