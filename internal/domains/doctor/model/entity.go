package model

import "time"

// Doctor là một practitioner trong directory.
// Chỉ doctor is_active mới hiện ở public listing và nhận review mới.
type Doctor struct {
	ID              int64
	FullName        string
	Email           string
	Phone           string
	Specialization  string
	ClinicName      string
	City            string
	Bio             string
	ExperienceYears int
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ListFilter là điều kiện của directory search
type ListFilter struct {
	City       string
	Search     string
	ActiveOnly bool
}
