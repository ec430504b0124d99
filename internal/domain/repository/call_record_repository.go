package repository

import (
	"sehat-sathi-server/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CallRecordRepository interface {
	Create(db *gorm.DB, call *entity.CallRecord) error
	FindByID(db *gorm.DB, id string) (*entity.CallRecord, error)
	// FindPendingByPatientID returns pending calls ascending by scheduled time.
	FindPendingByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.CallRecord, error)
	// FindPendingScheduled returns pending, non-immediate calls with a
	// scheduled time; used to re-arm reminder timers after a restart.
	FindPendingScheduled(db *gorm.DB) ([]entity.CallRecord, error)
	UpdateStatus(db *gorm.DB, id string, status entity.CallStatus) error
}
