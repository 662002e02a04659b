package model

const (
	MaxFullNameLength       = 150
	MaxEmailLength          = 255
	MaxPhoneLength          = 32
	MaxSpecializationLength = 150
	MaxClinicNameLength     = 200
	MaxCityLength           = 100
	MaxBioLength            = 5000
	MaxExperienceYears      = 80
)
