package dto

import (
	"github.com/google/uuid"
)

// Response DTOs

type DoctorProfileResponse struct {
	RegistrationNumber string `json:"registration_number"`
	Specialization     string `json:"specialization"`
	Languages          string `json:"languages,omitempty"`
	Biography          string `json:"biography,omitempty"`
}

type DoctorResponse struct {
	ID                 uuid.UUID `json:"id"`
	Email              string    `json:"email"`
	FullName           string    `json:"full_name"`
	RegistrationNumber string    `json:"registration_number"`
	Specialization     string    `json:"specialization"`
	Languages          string    `json:"languages,omitempty"`
	Biography          string    `json:"biography,omitempty"`
	IsActive           bool      `json:"is_active"`
}

type DoctorListResponse struct {
	Doctors []DoctorResponse `json:"doctors"`
	Total   int              `json:"total"`
}
