package repository

import (
	"sehat-sathi-server/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WeeklyScheduleRepository interface {
	// Upsert overwrites the rule for (doctor, day), creating it when absent.
	Upsert(db *gorm.DB, schedule *entity.WeeklySchedule) error
	FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.WeeklySchedule, error)
}
