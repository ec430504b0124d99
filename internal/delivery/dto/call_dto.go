package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateCallRequest struct {
	DoctorID      uuid.UUID  `json:"doctor_id" validate:"required"`
	ScheduledTime *time.Time `json:"scheduled_time" validate:"omitempty"`
	IsImmediate   bool       `json:"is_immediate"`
	Issue         string     `json:"issue" validate:"omitempty"`
}

type UpdateCallStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending active completed cancelled"`
}

// Response DTOs

type CallResponse struct {
	ID            string     `json:"id"`
	PatientID     uuid.UUID  `json:"patient_id"`
	DoctorID      uuid.UUID  `json:"doctor_id"`
	ScheduledTime *time.Time `json:"scheduled_time,omitempty"`
	IsImmediate   bool       `json:"is_immediate"`
	Status        string     `json:"status"`
	CallLink      string     `json:"call_link"`
	PatientName   string     `json:"patient_name"`
	PatientPhone  string     `json:"patient_phone,omitempty"`
	Issue         string     `json:"issue,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

type CallListResponse struct {
	Calls []CallResponse `json:"calls"`
	Total int            `json:"total"`
}
