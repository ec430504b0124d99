package entity

import (
	"time"

	"github.com/google/uuid"
)

// CallStatus represents the lifecycle state of a consultation call
type CallStatus string

const (
	CallStatusPending   CallStatus = "pending"
	CallStatusActive    CallStatus = "active"
	CallStatusCompleted CallStatus = "completed"
	CallStatusCancelled CallStatus = "cancelled"
)

// callTransitions is the legal state machine: pending calls can start or be
// cancelled, active calls can end or be cancelled, terminal states stay put.
var callTransitions = map[CallStatus][]CallStatus{
	CallStatusPending: {CallStatusActive, CallStatusCancelled},
	CallStatusActive:  {CallStatusCompleted, CallStatusCancelled},
}

// IsValid reports whether s is a known call status.
func (s CallStatus) IsValid() bool {
	switch s {
	case CallStatusPending, CallStatusActive, CallStatusCompleted, CallStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether moving from s to next is a legal transition.
func (s CallStatus) CanTransitionTo(next CallStatus) bool {
	for _, allowed := range callTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// CallRecord holds the metadata of one tele-consultation session. The media
// stream itself is negotiated peer to peer and never touches this table.
//
// The id is generated client-side of the database (unix millis plus a random
// suffix) so the call link can be handed out before the insert confirms.
type CallRecord struct {
	ID            string     `gorm:"type:varchar(40);primaryKey" json:"id"`
	PatientID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"patient_id"`
	DoctorID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"doctor_id"`
	ScheduledTime *time.Time `gorm:"index" json:"scheduled_time,omitempty"`
	IsImmediate   bool       `gorm:"not null;default:false" json:"is_immediate"`
	Status        CallStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	CallLink      string     `gorm:"type:varchar(255);not null" json:"call_link"`
	PatientName   string     `gorm:"type:varchar(255);not null" json:"patient_name"`
	PatientPhone  string     `gorm:"type:varchar(20)" json:"patient_phone,omitempty"`
	Issue         string     `gorm:"type:text" json:"issue,omitempty"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient PatientProfile `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor  DoctorProfile  `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (CallRecord) TableName() string {
	return "call_records"
}

// IsPending checks if the call has not started yet
func (c *CallRecord) IsPending() bool {
	return c.Status == CallStatusPending
}
