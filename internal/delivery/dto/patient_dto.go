package dto

import (
	"github.com/google/uuid"
)

// PatientProfileResponse represents patient profile data in responses
type PatientProfileResponse struct {
	UserID      uuid.UUID `json:"user_id"`
	PhoneNumber string    `json:"phone_number"`
	DateOfBirth string    `json:"date_of_birth"`
	Gender      string    `json:"gender"`
	Village     string    `json:"village,omitempty"`
	District    string    `json:"district,omitempty"`
	Language    string    `json:"language,omitempty"`
}
