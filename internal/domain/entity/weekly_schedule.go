package entity

import (
	"time"

	"github.com/google/uuid"
)

// Weekday names as stored on schedule rows. Matches time.Weekday.String().
var WeekdayNames = []string{
	"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday",
}

// IsWeekdayName reports whether day is one of the seven weekday names.
func IsWeekdayName(day string) bool {
	for _, name := range WeekdayNames {
		if name == day {
			return true
		}
	}
	return false
}

// WeeklySchedule is one weekday's working window for a doctor. A doctor has
// at most one row per weekday name; rules are overwritten, never deleted.
type WeeklySchedule struct {
	ID        int       `gorm:"primaryKey;autoIncrement" json:"id"`
	DoctorID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_doctor_day" json:"doctor_id"`
	Day       string    `gorm:"type:varchar(9);not null;uniqueIndex:idx_doctor_day" json:"day"`
	StartTime string    `gorm:"type:varchar(5);not null" json:"start_time"`
	EndTime   string    `gorm:"type:varchar(5);not null" json:"end_time"`
	Enabled   bool      `gorm:"not null;default:false" json:"enabled"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Doctor DoctorProfile `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (WeeklySchedule) TableName() string {
	return "weekly_schedules"
}
