package model

import "time"

// Review là một đánh giá của bệnh nhân cho một bác sĩ
type Review struct {
	ID          int64  `json:"id"`
	DoctorID    int64  `json:"doctor_id"`
	PatientName string `json:"patient_name"`
	Email       string `json:"email"`

	Rating  int    `json:"rating"` // 1-5
	Comment string `json:"comment"`

	Status Status `json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Scope xác định tập review để thống kê: nil DoctorID = toàn hệ thống
type Scope struct {
	DoctorID *int64
}

func GlobalScope() Scope {
	return Scope{}
}

func DoctorScope(doctorID int64) Scope {
	return Scope{DoctorID: &doctorID}
}

// CacheKey cho statistics của scope
func (s Scope) CacheKey() string {
	if s.DoctorID == nil {
		return StatsCacheKeyGlobal
	}
	return StatsCacheKeyDoctorPrefix + itoa(*s.DoctorID)
}

// GenerationKey giữ counter tăng mỗi lần scope bị invalidate
func (s Scope) GenerationKey() string {
	return s.CacheKey() + ":gen"
}

// SnapshotKey là key của statistics tính tại generation gen
func (s Scope) SnapshotKey(gen int64) string {
	return s.CacheKey() + ":v" + itoa(gen)
}

// Actor là moderator đang thao tác.
// Admin thấy toàn bộ; doctor chỉ thấy review của chính mình.
type Actor struct {
	DoctorID int64
	Admin    bool
}

// CanAccess reports whether the actor may see or moderate the review
func (a Actor) CanAccess(r *Review) bool {
	return a.Admin || (a.DoctorID > 0 && r.DoctorID == a.DoctorID)
}

// ListFilter cho Store.List
type ListFilter struct {
	DoctorID *int64
	Status   *Status
}

// ListOptions: sort + pagination (page 1-indexed)
type ListOptions struct {
	SortBy string
	Order  string
	Page   int
	Limit  int
}

// RatingBucket là một dòng GROUP BY status, rating
type RatingBucket struct {
	Status Status
	Rating int
	Count  int64
}
