package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

// ScheduleRuleRequest is one weekday's working window in an upsert.
type ScheduleRuleRequest struct {
	Day       string `json:"day" validate:"required,oneof=Sunday Monday Tuesday Wednesday Thursday Friday Saturday"`
	StartTime string `json:"start_time" validate:"required"` // Format: HH:MM
	EndTime   string `json:"end_time" validate:"required"`   // Format: HH:MM
	Enabled   bool   `json:"enabled"`
}

type UpsertScheduleRequest struct {
	Rules []ScheduleRuleRequest `json:"rules" validate:"required,min=1,max=7,dive"`
}

// Response DTOs

type ScheduleRuleResponse struct {
	Day       string    `json:"day"`
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time"`
	Enabled   bool      `json:"enabled"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ScheduleResponse struct {
	DoctorID uuid.UUID              `json:"doctor_id"`
	Rules    []ScheduleRuleResponse `json:"rules"`
}

type SlotListResponse struct {
	DoctorID uuid.UUID `json:"doctor_id"`
	Date     string    `json:"date"`
	Slots    []string  `json:"slots"`
	Total    int       `json:"total"`
}
